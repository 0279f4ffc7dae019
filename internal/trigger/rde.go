package trigger

import (
	"fmt"
	"strings"

	"github.com/corvushealth/hl7gateway/hl7"
)

// unknownMedicationID is the fallback value for a medication order whose
// RXE.2 give-code is absent.
const unknownMedicationID = "UNKNOWN"

// MedicationOrder is one RXE segment's projected order fields, paired with
// the RXR segment at the same document position when one exists.
type MedicationOrder struct {
	// RxID is a synthetic 1-based identifier ("RX1", "RX2", ...).
	RxID string

	// MedicationID is RXE.2, first component. Falls back to "UNKNOWN" if absent.
	MedicationID string

	// MedicationName is RXE.2, second component.
	MedicationName string

	// Strength is RXE.3 concatenated with the units in RXE.4.
	Strength string

	// Form is the raw RXE.5 field value.
	Form string

	// Frequency is the raw RXE.6 field value.
	Frequency string

	// Dosage is the raw RXE.10 field value.
	Dosage string

	// StartDate is the raw RXE.20 field value.
	StartDate string

	// StopDate is the raw RXE.21 field value.
	StopDate string

	// Route is the paired RXR segment's RXR.1, first component.
	// Empty when no RXR segment exists at this position.
	Route string
}

// RDE is the pharmacy-order projection of a parsed message.
type RDE struct {
	// PatientID is PID.3, first component. Required.
	PatientID string

	// OrderControl is the first ORC segment's ORC.1, if an ORC segment is present.
	OrderControl string

	// OrderNumber is the first ORC segment's ORC.2, if an ORC segment is present.
	OrderNumber string

	// MedicationOrders holds one entry per RXE segment, in document order.
	MedicationOrders []MedicationOrder
}

// ParseRDE builds an RDE projection from a parsed message.
// Returns an error if the message type does not begin with "RDE", if the
// message has no PID segment, or if PID.3 is empty. An absent ORC segment
// leaves OrderControl/OrderNumber empty rather than failing.
func ParseRDE(msg hl7.Message) (*RDE, error) {
	if msg == nil {
		return nil, ErrNilMessage
	}

	messageType := msg.Type()
	if !strings.HasPrefix(messageType, "RDE") {
		return nil, fmt.Errorf("%w: got %q", ErrNotRDEMessage, messageType)
	}

	patientID, err := patientIDFromPID(msg)
	if err != nil {
		return nil, err
	}

	rde := &RDE{PatientID: patientID}

	if orc, ok := msg.Segment("ORC"); ok {
		rde.OrderControl = fieldValue(orc, 1)
		rde.OrderNumber = fieldValue(orc, 2)
	}

	rxeSegs := msg.Segments("RXE")
	rxrSegs := msg.Segments("RXR")

	rde.MedicationOrders = make([]MedicationOrder, 0, len(rxeSegs))
	for i, rxe := range rxeSegs {
		medicationID := fieldComponent(rxe, 2, 1)
		if medicationID == "" {
			medicationID = unknownMedicationID
		}

		route := ""
		if i < len(rxrSegs) {
			route = fieldComponent(rxrSegs[i], 1, 1)
		}

		rde.MedicationOrders = append(rde.MedicationOrders, MedicationOrder{
			RxID:           fmt.Sprintf("RX%d", i+1),
			MedicationID:   medicationID,
			MedicationName: fieldComponent(rxe, 2, 2),
			Strength:       fieldValue(rxe, 3) + fieldValue(rxe, 4),
			Form:           fieldValue(rxe, 5),
			Frequency:      fieldValue(rxe, 6),
			Dosage:         fieldValue(rxe, 10),
			StartDate:      fieldValue(rxe, 20),
			StopDate:       fieldValue(rxe, 21),
			Route:          route,
		})
	}

	return rde, nil
}
