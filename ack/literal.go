package ack

import (
	"fmt"
	"strings"
	"time"

	"github.com/corvushealth/hl7gateway/hl7"
)

// literalControlID is used when a control ID cannot be extracted from a payload.
const literalControlID = "UNKNOWN"

// These literals back the connection handler's wire-format ACK, distinct
// from the Builder's field-swapping behavior: the handler always addresses
// the same fixed sending/receiving identity regardless of who sent the
// original message.
const (
	literalReceivingApp      = "RECEIVING_APP"
	literalReceivingFacility = "RECEIVING_FACILITY"
	literalSendingApp        = "SENDING_APP"
	literalSendingFacility   = "SENDING_FACILITY"
	literalVersion           = "2.5"
)

// ExtractControlID returns the message control ID (MSH.10) from a raw HL7
// payload by splitting the first line on the field delimiter and taking the
// 10th token. Returns "UNKNOWN" if the payload has fewer than 10 tokens on
// its first line.
func ExtractControlID(payload []byte) string {
	first := payload
	if idx := indexAny(payload, "\r\n"); idx >= 0 {
		first = payload[:idx]
	}

	fields := strings.Split(string(first), "|")
	if len(fields) < 10 {
		return literalControlID
	}
	controlID := fields[9]
	if controlID == "" {
		return literalControlID
	}
	return controlID
}

// indexAny returns the index of the first byte in b matching any rune in cutset, or -1.
func indexAny(b []byte, cutset string) int {
	for i, c := range b {
		for _, r := range cutset {
			if byte(r) == c {
				return i
			}
		}
	}
	return -1
}

// sanitizeReason replaces the field delimiter with a safe marker so an error
// reason cannot corrupt the ACK's pipe-delimited structure.
func sanitizeReason(reason string, delims *hl7.Delimiters) string {
	if delims == nil {
		delims = hl7.DefaultDelimiters()
	}
	return strings.ReplaceAll(reason, string(delims.Field), "\\F\\")
}

// BuildLiteralAccept builds a fixed-template AA acknowledgment citing
// controlID, with timestamp now.
func BuildLiteralAccept(controlID string, now time.Time) hl7.Message {
	return buildLiteralACK(controlID, "AA", "Message processed successfully", now)
}

// BuildLiteralError builds a fixed-template AE acknowledgment citing
// controlID and reason, with timestamp now. The field delimiter is
// substituted out of reason so it cannot break MSH parsing.
func BuildLiteralError(controlID, reason string, now time.Time) hl7.Message {
	text := fmt.Sprintf("Error processing message: %s", sanitizeReason(reason, hl7.DefaultDelimiters()))
	return buildLiteralACK(controlID, "AE", text, now)
}

// buildLiteralACK constructs the two-segment MSH/MSA ACK payload mandated
// for the connection handler: fixed application/facility identities, the
// current timestamp, and the given code/text in MSA.
func buildLiteralACK(controlID, code, text string, now time.Time) hl7.Message {
	delims := hl7.DefaultDelimiters()
	msg := newSimpleMessage(delims)

	msh := newSimpleSegment("MSH", delims)
	_ = msh.Set("2", string([]rune{delims.Component, delims.Repetition, delims.Escape, delims.SubComponent}))
	_ = msh.Set("3", literalReceivingApp)
	_ = msh.Set("4", literalReceivingFacility)
	_ = msh.Set("5", literalSendingApp)
	_ = msh.Set("6", literalSendingFacility)
	_ = msh.Set("7", now.Format("20060102150405"))
	_ = msh.Set("9", "ACK")
	_ = msh.Set("10", controlID)
	_ = msh.Set("11", "P")
	_ = msh.Set("12", literalVersion)
	_ = msg.AddSegment(msh)

	msa := newSimpleSegment("MSA", delims)
	_ = msa.Set("1", code)
	_ = msa.Set("2", controlID)
	_ = msa.Set("3", text)
	_ = msg.AddSegment(msa)

	return msg
}
