// Package demo provides the reference mllp.Handler wired into
// cmd/hl7ingestd's serve subcommand: it projects each message through the
// trigger-event parsers and logs what it finds.
package demo

import (
	"context"
	"fmt"

	"github.com/corvushealth/hl7gateway/hl7"
	"github.com/corvushealth/hl7gateway/internal/logging"
	"github.com/corvushealth/hl7gateway/internal/stats"
	"github.com/corvushealth/hl7gateway/internal/trigger"
	"github.com/corvushealth/hl7gateway/mllp"
	"github.com/corvushealth/hl7gateway/validate"
)

// headerRules gates every message before it is worth routing to a
// projection: a message type, control ID, and version must all be present.
var headerRules = validate.NewWithRuleSet(validate.MSHRules())

// Per-trigger-event rule sets. These run after headerRules and after the
// event type is known; failures are logged but don't block the projection,
// which has its own typed errors (ErrMissingPID, etc.) for fields it
// actually depends on.
var (
	adtRules = validate.NewWithRuleSet(validate.ADTRules())
	oruRules = validate.NewWithRuleSet(validate.ORURules())
	rdeRules = validate.NewWithRuleSet(validate.RDERules())
)

// Handler implements mllp.Handler, routing each message to the matching
// trigger-event projection and recording it in stats. It holds no
// connection-specific state, so one Handler is shared across every
// connection the server accepts.
type Handler struct {
	logger *logging.Logger
	stats  *stats.Registry
}

// New builds a Handler that logs through logger and records counts in registry.
func New(logger *logging.Logger, registry *stats.Registry) *Handler {
	return &Handler{logger: logger, stats: registry}
}

// HandleMessage projects msg through the matching trigger-event parser and
// logs the result. It returns an error when the MSH header rules fail or
// when the ADT, ORU, or RDE projection cannot be built; a message of any
// other type is logged and accepted without a projection.
func (h *Handler) HandleMessage(ctx context.Context, msg hl7.Message) (hl7.Message, error) {
	if result := headerRules.Validate(msg); !result.Valid() {
		err := fmt.Errorf("demo: header validation failed: %v", result.Errors())
		h.logger.Warn(err)
		return nil, err
	}

	eventType := msg.TriggerEvent()
	h.stats.RecordMessage(eventType)

	switch eventType {
	case "ADT":
		return h.handleADT(msg)
	case "ORU":
		return h.handleORU(msg)
	case "RDE":
		return h.handleRDE(msg)
	default:
		h.logger.Info("demo: unrecognized message type, accepting without projection: ", msg.Type())
		return msg, nil
	}
}

func (h *Handler) handleADT(msg hl7.Message) (hl7.Message, error) {
	if result := adtRules.Validate(msg); !result.Valid() {
		h.logger.Warn("demo: ADT rule check found issues (continuing): ", result.Errors())
	}

	adt, err := trigger.ParseADT(msg)
	if err != nil {
		h.logger.Warn("demo: ADT projection failed: ", err)
		return nil, err
	}
	h.logger.Info("demo: admit event ", adt.EventType, " for patient ", adt.PatientID)
	return msg, nil
}

func (h *Handler) handleORU(msg hl7.Message) (hl7.Message, error) {
	if result := oruRules.Validate(msg); !result.Valid() {
		h.logger.Warn("demo: ORU rule check found issues (continuing): ", result.Errors())
	}

	oru, err := trigger.ParseORU(msg)
	if err != nil {
		h.logger.Warn("demo: ORU projection failed: ", err)
		return nil, err
	}
	for _, obs := range oru.Observations {
		h.logger.Info("demo: observation ", obs.TestID, "=", obs.Value, " ", obs.Units, " for patient ", oru.PatientID)
	}
	return msg, nil
}

func (h *Handler) handleRDE(msg hl7.Message) (hl7.Message, error) {
	if result := rdeRules.Validate(msg); !result.Valid() {
		h.logger.Warn("demo: RDE rule check found issues (continuing): ", result.Errors())
	}

	rde, err := trigger.ParseRDE(msg)
	if err != nil {
		h.logger.Warn("demo: RDE projection failed: ", err)
		return nil, err
	}
	for _, order := range rde.MedicationOrders {
		h.logger.Info("demo: medication order ", order.RxID, " (", order.MedicationName, ") for patient ", rde.PatientID)
	}
	return msg, nil
}

// Ensure Handler implements mllp.Handler at compile time.
var _ mllp.Handler = (*Handler)(nil)
