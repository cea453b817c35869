// FILE: state.go
package loggers

import (
	"sync/atomic"
)

// State holds the runtime counters of one logger pipeline
type State struct {
	Enqueued      atomic.Uint64 // Records accepted by the channel
	Delivered     atomic.Uint64 // Records written by the drain
	Dropped       atomic.Uint64 // Records discarded on overflow or after close
	ReportedDrops atomic.Uint64 // Dropped records announced by a drop report
	WriteErrors   atomic.Uint64 // Records that needed the fallback path
	Rotations     atomic.Uint64 // Successful file rotations
}

// Stats is a point-in-time copy of State
type Stats struct {
	Enqueued      uint64
	Delivered     uint64
	Dropped       uint64
	ReportedDrops uint64
	WriteErrors   uint64
	Rotations     uint64
}

// snapshot copies the counters
func (s *State) snapshot() Stats {
	return Stats{
		Enqueued:      s.Enqueued.Load(),
		Delivered:     s.Delivered.Load(),
		Dropped:       s.Dropped.Load(),
		ReportedDrops: s.ReportedDrops.Load(),
		WriteErrors:   s.WriteErrors.Load(),
		Rotations:     s.Rotations.Load(),
	}
}
