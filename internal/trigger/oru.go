package trigger

import (
	"fmt"
	"strings"

	"github.com/corvushealth/hl7gateway/hl7"
)

// Observation is one OBX segment's projected result fields.
type Observation struct {
	// TestID is OBX.3, first component. Required.
	TestID string

	// TestName is OBX.3, second component.
	TestName string

	// Value is OBX.5, first component.
	Value string

	// Units is the raw OBX.6 field value.
	Units string

	// ReferenceRange is the raw OBX.7 field value.
	ReferenceRange string

	// AbnormalFlags is the raw OBX.8 field value.
	AbnormalFlags string
}

// ORU is the observation-result projection of a parsed message.
type ORU struct {
	// PatientID is PID.3, first component. Required.
	PatientID string

	// Observations holds one entry per OBX segment, in document order.
	Observations []Observation
}

// ParseORU builds an ORU projection from a parsed message.
// Returns an error if the message type does not begin with "ORU", if the
// message has no PID segment, if PID.3 is empty, or if any OBX segment's
// OBX.3 is empty.
func ParseORU(msg hl7.Message) (*ORU, error) {
	if msg == nil {
		return nil, ErrNilMessage
	}

	messageType := msg.Type()
	if !strings.HasPrefix(messageType, "ORU") {
		return nil, fmt.Errorf("%w: got %q", ErrNotORUMessage, messageType)
	}

	patientID, err := patientIDFromPID(msg)
	if err != nil {
		return nil, err
	}

	obxSegs := msg.Segments("OBX")
	observations := make([]Observation, 0, len(obxSegs))
	for _, obx := range obxSegs {
		testID := fieldComponent(obx, 3, 1)
		if testID == "" {
			return nil, ErrMissingObservationID
		}

		observations = append(observations, Observation{
			TestID:         testID,
			TestName:       fieldComponent(obx, 3, 2),
			Value:          fieldComponent(obx, 5, 1),
			Units:          fieldValue(obx, 6),
			ReferenceRange: fieldValue(obx, 7),
			AbnormalFlags:  fieldValue(obx, 8),
		})
	}

	return &ORU{
		PatientID:    patientID,
		Observations: observations,
	}, nil
}
