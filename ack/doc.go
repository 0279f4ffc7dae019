// Package ack builds HL7 v2.x acknowledgment (ACK) messages in response to
// inbound traffic.
//
// Two code paths produce acknowledgments, for two different callers:
//
//   - Builder (ack.go) builds a full ACK against an original message, mirroring
//     its MSH fields with sender/receiver swapped. This is what a caller
//     reaches for when it has the original message on hand and wants an ACK
//     that reflects its encoding, version, and delimiters.
//   - BuildLiteralAccept / BuildLiteralError (literal.go) build a minimal ACK
//     from nothing but a control ID and, for errors, a reason string. The
//     connection handler in package mllp uses these: it must always be able
//     to answer, even when the inbound bytes failed to parse into a Message
//     at all, so there is no original MSH to mirror. The resulting MSH
//     carries a fixed sending application/facility rather than a swapped one.
//
// # Builder
//
//	b := ack.NewBuilder()
//	ackMsg, err := b.Accept(original)
//	ackMsg, err := b.Error(original, err)
//	ackMsg, err := b.Reject(original, "unsupported message type")
//
// NewBuilder accepts options for overriding the message factory, clock, or
// control ID generator (WithMessageFactory, WithTimeFunc, WithControlIDFunc),
// which is how tests pin down the ACK's timestamp and control ID.
//
// For full control over the acknowledgment code, error code, location, and
// severity, use Builder.Custom with an ACK value built by NewAcceptACK,
// NewErrorACK, or NewRejectACK.
//
// # Literal acknowledgments
//
//	ackMsg := ack.BuildLiteralAccept(controlID, time.Now())
//	ackMsg := ack.BuildLiteralError(controlID, "parse error: ...", time.Now())
//
// ExtractControlID pulls MSH-10 out of a raw, possibly-unparseable frame so
// a literal ACK can still correlate with the message it answers.
//
// # Acknowledgment codes
//
// AA (Application Accept), AE (Application Error), and AR (Application
// Reject) are the codes the Accept, Error, Reject, and literal paths emit;
// CA/CE/CR (commit-level codes) are modeled in Code and appear in an ACK only
// when passed to Builder.Custom.
package ack
