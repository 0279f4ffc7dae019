// Package trigger extracts domain-shaped views from parsed HL7 messages by
// positional field addressing, one type per supported trigger event.
package trigger

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/corvushealth/hl7gateway/hl7"
)

// Sentinel errors returned when a projection's required fields are absent.
var (
	// ErrNilMessage indicates a nil message was passed to a projection.
	ErrNilMessage = errors.New("message is nil")

	// ErrMissingPID indicates the message has no PID segment.
	ErrMissingPID = errors.New("message has no PID segment")

	// ErrMissingPatientID indicates PID.3 is empty.
	ErrMissingPatientID = errors.New("PID.3 (patient ID) is empty")

	// ErrMissingObservationID indicates an OBX segment's OBX.3 is empty.
	ErrMissingObservationID = errors.New("OBX.3 (observation ID) is empty")

	// ErrNotADTMessage indicates the message type does not begin with ADT.
	ErrNotADTMessage = errors.New("message type is not ADT")

	// ErrNotORUMessage indicates the message type does not begin with ORU.
	ErrNotORUMessage = errors.New("message type is not ORU")

	// ErrNotRDEMessage indicates the message type does not begin with RDE.
	ErrNotRDEMessage = errors.New("message type is not RDE")
)

// fieldValue returns the raw value of a field, or "" if absent.
func fieldValue(seg hl7.Segment, field int) string {
	val, err := seg.Get(strconv.Itoa(field))
	if err != nil {
		return ""
	}
	return val
}

// fieldComponent returns the value of a single component of a field, or "" if absent.
func fieldComponent(seg hl7.Segment, field, component int) string {
	val, err := seg.Get(fmt.Sprintf("%d.%d", field, component))
	if err != nil {
		return ""
	}
	return val
}

// patientIDFromPID extracts the required patient_id (PID.3, first component)
// shared by every projection that carries a patient context.
func patientIDFromPID(msg hl7.Message) (string, error) {
	pid, ok := msg.Segment("PID")
	if !ok {
		return "", ErrMissingPID
	}
	patientID := fieldComponent(pid, 3, 1)
	if patientID == "" {
		return "", ErrMissingPatientID
	}
	return patientID, nil
}

// eventTypeFromMessageType returns the substring after the first '^' in a
// message type composite (e.g. "A01" from "ADT^A01").
func eventTypeFromMessageType(messageType string) string {
	idx := strings.IndexByte(messageType, '^')
	if idx < 0 {
		return ""
	}
	return messageType[idx+1:]
}
