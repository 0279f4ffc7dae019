package ack

import (
	"strings"
	"testing"
	"time"
)

func TestExtractControlID(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{
			name:    "standard MSH line",
			payload: "MSH|^~\\&|SENDING_APP|SENDING_FACILITY|RECEIVING_APP|RECEIVING_FACILITY|20230401123000||ADT^A01|MSG00001|P|2.5\rPID|1||12345\r",
			want:    "MSG00001",
		},
		{
			name:    "too few fields",
			payload: "MSH|^~\\&|A|B\r",
			want:    literalControlID,
		},
		{
			name:    "empty payload",
			payload: "",
			want:    literalControlID,
		},
		{
			name:    "empty control id field",
			payload: "MSH|^~\\&|A|B|C|D|T||ADT^A01||P|2.5\r",
			want:    literalControlID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractControlID([]byte(tt.payload))
			if got != tt.want {
				t.Errorf("ExtractControlID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildLiteralAccept(t *testing.T) {
	now := time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC)
	msg := BuildLiteralAccept("MSG00001", now)

	raw := msg.String()
	if !strings.HasPrefix(raw, "MSH|^~\\&|RECEIVING_APP|RECEIVING_FACILITY|SENDING_APP|SENDING_FACILITY|20260730120000||ACK|MSG00001|P|2.5") {
		t.Errorf("unexpected MSH segment: %s", raw)
	}
	if !strings.Contains(raw, "MSA|AA|MSG00001|Message processed successfully") {
		t.Errorf("unexpected MSA segment: %s", raw)
	}
}

func TestBuildLiteralError(t *testing.T) {
	now := time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC)
	msg := BuildLiteralError("MSG00002", "unexpected EOF", now)

	raw := msg.String()
	if !strings.Contains(raw, "MSA|AE|MSG00002|Error processing message: unexpected EOF") {
		t.Errorf("unexpected MSA segment: %s", raw)
	}
}

func TestBuildLiteralError_SanitizesFieldDelimiter(t *testing.T) {
	now := time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC)
	msg := BuildLiteralError("MSG00003", "bad field|separator", now)

	raw := msg.String()
	if strings.Contains(raw, "bad field|separator") {
		t.Errorf("expected field delimiter to be sanitized, got: %s", raw)
	}
	if !strings.Contains(raw, "bad field\\F\\separator") {
		t.Errorf("expected sanitized reason marker, got: %s", raw)
	}
}
