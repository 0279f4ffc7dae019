package trigger

import (
	"github.com/corvushealth/hl7gateway/hl7"
	"github.com/corvushealth/hl7gateway/marshal"
)

// Header is the MSH fields every projection depends on, populated by tagged
// struct unmarshaling rather than the positional Get/fieldValue helpers the
// rest of this package uses. It exists so callers that only need the header
// (the parse CLI's summary output, audit logging) don't pay for a full
// trigger-specific projection.
type Header struct {
	MessageType string `hl7:"MSH.9.1"`
	TriggerCode string `hl7:"MSH.9.2"`
	ControlID   string `hl7:"MSH.10"`
	Version     string `hl7:"MSH.12"`
}

var headerUnmarshaler = marshal.NewUnmarshaler()

// ParseHeader extracts the common MSH fields from msg.
func ParseHeader(msg hl7.Message) (*Header, error) {
	if msg == nil {
		return nil, ErrNilMessage
	}
	var h Header
	if err := headerUnmarshaler.Unmarshal(msg, &h); err != nil {
		return nil, err
	}
	return &h, nil
}
