package trigger

import (
	"fmt"
	"strings"

	"github.com/corvushealth/hl7gateway/hl7"
)

// ADT is the admission/discharge/transfer projection of a parsed message.
type ADT struct {
	// EventType is the substring of message_type after the first '^' (e.g. "A01").
	EventType string

	// PatientID is PID.3, first component. Required.
	PatientID string

	// PatientName is the raw PID.5 field value, preserved verbatim.
	PatientName string

	// DateOfBirth is PID.7, first component.
	DateOfBirth string

	// Gender is PID.8, first component.
	Gender string
}

// ParseADT builds an ADT projection from a parsed message.
// Returns an error if the message type does not begin with "ADT", if the
// message has no PID segment, or if PID.3 is empty.
func ParseADT(msg hl7.Message) (*ADT, error) {
	if msg == nil {
		return nil, ErrNilMessage
	}

	messageType := msg.Type()
	if !strings.HasPrefix(messageType, "ADT") {
		return nil, fmt.Errorf("%w: got %q", ErrNotADTMessage, messageType)
	}

	pid, ok := msg.Segment("PID")
	if !ok {
		return nil, ErrMissingPID
	}

	patientID := fieldComponent(pid, 3, 1)
	if patientID == "" {
		return nil, ErrMissingPatientID
	}

	return &ADT{
		EventType:   eventTypeFromMessageType(messageType),
		PatientID:   patientID,
		PatientName: fieldValue(pid, 5),
		DateOfBirth: fieldComponent(pid, 7, 1),
		Gender:      fieldComponent(pid, 8, 1),
	}, nil
}
