// Package stats tracks lightweight operational counters for the gateway:
// per-trigger-event message counts, acknowledgment codes sent, and active
// connections. It deliberately avoids a metrics client library - these
// counters exist for the demo dispatcher's own status reporting, not for
// scraping by an external system.
package stats

import "sync/atomic"

// Registry holds a fixed set of atomic counters.
type Registry struct {
	adt    atomic.Int64
	oru    atomic.Int64
	rde    atomic.Int64
	other  atomic.Int64
	ackAA  atomic.Int64
	ackAE  atomic.Int64
	active atomic.Int64
}

// NewRegistry returns a zeroed Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// RecordMessage increments the counter for the given message type prefix
// ("ADT", "ORU", "RDE"), or the catch-all counter for anything else.
func (r *Registry) RecordMessage(triggerPrefix string) {
	switch triggerPrefix {
	case "ADT":
		r.adt.Add(1)
	case "ORU":
		r.oru.Add(1)
	case "RDE":
		r.rde.Add(1)
	default:
		r.other.Add(1)
	}
}

// RecordACK increments the counter for the acknowledgment code sent ("AA" or "AE").
func (r *Registry) RecordACK(code string) {
	if code == "AA" {
		r.ackAA.Add(1)
		return
	}
	r.ackAE.Add(1)
}

// ConnectionOpened increments the active connection count.
func (r *Registry) ConnectionOpened() { r.active.Add(1) }

// ConnectionClosed decrements the active connection count.
func (r *Registry) ConnectionClosed() { r.active.Add(-1) }

// Snapshot is a point-in-time copy of the registry's counters.
type Snapshot struct {
	ADTMessages       int64
	ORUMessages       int64
	RDEMessages       int64
	OtherMessages     int64
	AcceptsSent       int64
	ErrorsSent        int64
	ActiveConnections int64
}

// Snapshot returns the current values of every counter.
func (r *Registry) Snapshot() Snapshot {
	return Snapshot{
		ADTMessages:       r.adt.Load(),
		ORUMessages:       r.oru.Load(),
		RDEMessages:       r.rde.Load(),
		OtherMessages:     r.other.Load(),
		AcceptsSent:       r.ackAA.Load(),
		ErrorsSent:        r.ackAE.Load(),
		ActiveConnections: r.active.Load(),
	}
}
