package segments

import (
	"fmt"

	"github.com/corvushealth/hl7gateway/hl7"
)

// RXE represents the Pharmacy/Treatment Encoded Order segment.
// This segment carries the detail of a pharmacy order as encoded by the
// filling application: the dispense/give amount, route-independent dosage,
// and the identity of the ordered medication.
//
// Field positions follow the HL7 standard where RXE-1 is the first field
// after the segment name.
type RXE struct {
	// QuantityTiming is RXE-1: Quantity/timing (TQ - Timing/Quantity composite).
	QuantityTiming string `hl7:"RXE.1"`

	// GiveCode is RXE-2: Give code (CE - Coded Element identifying the medication).
	GiveCode string `hl7:"RXE.2"`

	// GiveAmountMinimum is RXE-3: Give amount - minimum.
	GiveAmountMinimum string `hl7:"RXE.3"`

	// GiveAmountMaximum is RXE-4: Give amount - maximum.
	GiveAmountMaximum string `hl7:"RXE.4"`

	// GiveUnits is RXE-5: Give units (CE).
	GiveUnits string `hl7:"RXE.5"`

	// GiveDosageForm is RXE-6: Give dosage form (CE).
	GiveDosageForm string `hl7:"RXE.6"`

	// ProvidersAdministrationInstructions is RXE-7: Provider's administration instructions (CE, can repeat).
	ProvidersAdministrationInstructions string `hl7:"RXE.7"`

	// DeliverToLocation is RXE-8: Deliver-to location.
	DeliverToLocation string `hl7:"RXE.8"`

	// SubstitutionStatus is RXE-9: Substitution status.
	SubstitutionStatus string `hl7:"RXE.9"`

	// DispenseAmount is RXE-10: Dispense amount.
	DispenseAmount string `hl7:"RXE.10"`

	// DispenseUnits is RXE-11: Dispense units (CE).
	DispenseUnits string `hl7:"RXE.11"`

	// NumberOfRefills is RXE-12: Number of refills.
	NumberOfRefills string `hl7:"RXE.12"`

	// OrderingProvidersDEANumber is RXE-13: Ordering provider's DEA number (XCN, can repeat).
	OrderingProvidersDEANumber string `hl7:"RXE.13"`

	// PharmacistTreatmentSuppliersVerifierID is RXE-14: Pharmacist/treatment supplier's verifier ID (XCN, can repeat).
	PharmacistTreatmentSuppliersVerifierID string `hl7:"RXE.14"`

	// PrescriptionNumber is RXE-15: Prescription number.
	PrescriptionNumber string `hl7:"RXE.15"`

	// NumberOfRefillsRemaining is RXE-16: Number of refills remaining.
	NumberOfRefillsRemaining string `hl7:"RXE.16"`

	// NumberOfRefillsDosesDispensed is RXE-17: Number of refills/doses dispensed.
	NumberOfRefillsDosesDispensed string `hl7:"RXE.17"`

	// DateTimeOfMostRecentRefillOrDoseDispensed is RXE-18: Date/time of most recent refill or dose dispensed.
	DateTimeOfMostRecentRefillOrDoseDispensed string `hl7:"RXE.18"`

	// TotalDailyDose is RXE-19: Total daily dose (CQ - Composite Quantity with units).
	TotalDailyDose string `hl7:"RXE.19"`

	// NeedsHumanReview is RXE-20: Needs human review.
	NeedsHumanReview string `hl7:"RXE.20"`

	// PharmacyTreatmentSuppliersSpecialDispensingInstructions is RXE-21: Special dispensing instructions (CE, can repeat).
	PharmacyTreatmentSuppliersSpecialDispensingInstructions string `hl7:"RXE.21"`

	// GivePerTimeUnit is RXE-22: Give per (time unit).
	GivePerTimeUnit string `hl7:"RXE.22"`

	// GiveRateAmount is RXE-23: Give rate amount.
	GiveRateAmount string `hl7:"RXE.23"`

	// GiveRateUnits is RXE-24: Give rate units (CE).
	GiveRateUnits string `hl7:"RXE.24"`
}

// ErrNotRXESegment indicates the segment is not an RXE segment.
var ErrNotRXESegment = fmt.Errorf("segment is not RXE")

// ParseRXE extracts field values from an hl7.Segment into an RXE struct.
// Returns an error if the segment is nil or not an RXE segment.
func ParseRXE(seg hl7.Segment) (*RXE, error) {
	if seg == nil {
		return nil, ErrNilSegment
	}

	if seg.Name() != "RXE" {
		return nil, fmt.Errorf("%w: got %s", ErrNotRXESegment, seg.Name())
	}

	rxe := &RXE{
		QuantityTiming:                          getFieldValue(seg, 1),
		GiveCode:                                getFieldValue(seg, 2),
		GiveAmountMinimum:                        getFieldValue(seg, 3),
		GiveAmountMaximum:                        getFieldValue(seg, 4),
		GiveUnits:                                getFieldValue(seg, 5),
		GiveDosageForm:                           getFieldValue(seg, 6),
		ProvidersAdministrationInstructions:      getFieldValue(seg, 7),
		DeliverToLocation:                        getFieldValue(seg, 8),
		SubstitutionStatus:                       getFieldValue(seg, 9),
		DispenseAmount:                           getFieldValue(seg, 10),
		DispenseUnits:                            getFieldValue(seg, 11),
		NumberOfRefills:                          getFieldValue(seg, 12),
		OrderingProvidersDEANumber:               getFieldValue(seg, 13),
		PharmacistTreatmentSuppliersVerifierID:   getFieldValue(seg, 14),
		PrescriptionNumber:                       getFieldValue(seg, 15),
		NumberOfRefillsRemaining:                 getFieldValue(seg, 16),
		NumberOfRefillsDosesDispensed:            getFieldValue(seg, 17),
		DateTimeOfMostRecentRefillOrDoseDispensed: getFieldValue(seg, 18),
		TotalDailyDose: getFieldValue(seg, 19),
		NeedsHumanReview: getFieldValue(seg, 20),
		PharmacyTreatmentSuppliersSpecialDispensingInstructions: getFieldValue(seg, 21),
		GivePerTimeUnit: getFieldValue(seg, 22),
		GiveRateAmount:  getFieldValue(seg, 23),
		GiveRateUnits:   getFieldValue(seg, 24),
	}

	return rxe, nil
}

// ToSegment converts the RXE struct into an hl7.Segment.
// The delims parameter specifies the delimiters to use for encoding.
// If delims is nil, default delimiters are used.
func (r *RXE) ToSegment(delims *hl7.Delimiters) (hl7.Segment, error) {
	if delims == nil {
		delims = hl7.DefaultDelimiters()
	}

	fields := []string{
		r.QuantityTiming,
		r.GiveCode,
		r.GiveAmountMinimum,
		r.GiveAmountMaximum,
		r.GiveUnits,
		r.GiveDosageForm,
		r.ProvidersAdministrationInstructions,
		r.DeliverToLocation,
		r.SubstitutionStatus,
		r.DispenseAmount,
		r.DispenseUnits,
		r.NumberOfRefills,
		r.OrderingProvidersDEANumber,
		r.PharmacistTreatmentSuppliersVerifierID,
		r.PrescriptionNumber,
		r.NumberOfRefillsRemaining,
		r.NumberOfRefillsDosesDispensed,
		r.DateTimeOfMostRecentRefillOrDoseDispensed,
		r.TotalDailyDose,
		r.NeedsHumanReview,
		r.PharmacyTreatmentSuppliersSpecialDispensingInstructions,
		r.GivePerTimeUnit,
		r.GiveRateAmount,
		r.GiveRateUnits,
	}

	data := buildSegmentData("RXE", fields, delims)

	seg, err := hl7.ParseSegment([]rune(data), delims)
	if err != nil {
		return nil, fmt.Errorf("failed to create RXE segment: %w", err)
	}

	return seg, nil
}
