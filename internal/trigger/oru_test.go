package trigger

import (
	"errors"
	"testing"
)

func TestParseORU_MultipleObservations(t *testing.T) {
	raw := "MSH|^~\\&|LAB|HOSP|ORU_FEED|HOSP|20260730140000||ORU^R01|MSG00003|P|2.5\r" +
		"PID|1||12345^^^MRN||DOE^JOHN\r" +
		"OBR|1|ORD001|FIL001|CBC^Complete Blood Count^L\r" +
		"OBX|1|NM|WBC^LEUKOCYTES^L||10.5|10*3/uL|4.0-11.0|N|||F\r" +
		"OBX|2|NM|RBC^ERYTHROCYTES^L||4.8|10*6/uL|4.2-5.9|N|||F\r" +
		"OBX|3|NM|HGB^HEMOGLOBIN^L||14.1|g/dL|13.5-17.5|N|||F\r" +
		"OBX|4|NM|HCT^HEMATOCRIT^L||42.0|%|41.0-53.0|N|||F\r" +
		"OBX|5|NM|PLT^PLATELETS^L||250|10*3/uL|150-400|N|||F\r"

	msg := mustParse(t, raw)

	oru, err := ParseORU(msg)
	if err != nil {
		t.Fatalf("ParseORU() unexpected error: %v", err)
	}

	if oru.PatientID != "12345" {
		t.Errorf("PatientID = %q, want %q", oru.PatientID, "12345")
	}

	if len(oru.Observations) != 5 {
		t.Fatalf("len(Observations) = %d, want 5", len(oru.Observations))
	}

	first := oru.Observations[0]
	if first.TestID != "WBC" {
		t.Errorf("Observations[0].TestID = %q, want %q", first.TestID, "WBC")
	}
	if first.TestName != "LEUKOCYTES" {
		t.Errorf("Observations[0].TestName = %q, want %q", first.TestName, "LEUKOCYTES")
	}
	if first.Value != "10.5" {
		t.Errorf("Observations[0].Value = %q, want %q", first.Value, "10.5")
	}
	if first.Units != "10*3/uL" {
		t.Errorf("Observations[0].Units = %q, want %q", first.Units, "10*3/uL")
	}
	if first.ReferenceRange != "4.0-11.0" {
		t.Errorf("Observations[0].ReferenceRange = %q, want %q", first.ReferenceRange, "4.0-11.0")
	}
}

func TestParseORU_WrongMessageType(t *testing.T) {
	raw := "MSH|^~\\&|A|B|C|D|20230401123000||ADT^A01|MSG1|P|2.5\rPID|1||1||DOE^JOHN\r"
	msg := mustParse(t, raw)

	_, err := ParseORU(msg)
	if !errors.Is(err, ErrNotORUMessage) {
		t.Errorf("ParseORU() error = %v, want ErrNotORUMessage", err)
	}
}

func TestParseORU_MissingObservationID(t *testing.T) {
	raw := "MSH|^~\\&|A|B|C|D|20230401123000||ORU^R01|MSG1|P|2.5\r" +
		"PID|1||12345||DOE^JOHN\r" +
		"OBX|1|NM||||10.5\r"
	msg := mustParse(t, raw)

	_, err := ParseORU(msg)
	if !errors.Is(err, ErrMissingObservationID) {
		t.Errorf("ParseORU() error = %v, want ErrMissingObservationID", err)
	}
}

func TestParseORU_MissingPatientID(t *testing.T) {
	raw := "MSH|^~\\&|A|B|C|D|20230401123000||ORU^R01|MSG1|P|2.5\rPID|1\r"
	msg := mustParse(t, raw)

	_, err := ParseORU(msg)
	if !errors.Is(err, ErrMissingPatientID) {
		t.Errorf("ParseORU() error = %v, want ErrMissingPatientID", err)
	}
}
