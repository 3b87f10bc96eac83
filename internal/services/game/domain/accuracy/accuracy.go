// Package accuracy scores player decisions against chart recommendations.
//
// A decision is counted only when the chart had an opinion. Decisions the
// chart could not answer are skipped and never affect the accuracy ratio.
package accuracy

import (
	"context"
	"sync"

	"github.com/louisbranch/hitstand/internal/services/game/domain/chart"
)

// Decision is one scored player choice.
type Decision struct {
	Situation   chart.Situation `json:"situation"`
	Chosen      chart.Action    `json:"chosen"`
	Recommended chart.Action    `json:"recommended"`
}

// Counted reports whether the chart had a row for the situation.
func (d Decision) Counted() bool {
	return d.Recommended != chart.ActionNone
}

// Correct reports a counted decision that matched the chart.
func (d Decision) Correct() bool {
	return d.Counted() && d.Chosen == d.Recommended
}

// WasCorrect returns nil for skipped decisions.
func (d Decision) WasCorrect() *bool {
	if !d.Counted() {
		return nil
	}
	correct := d.Correct()
	return &correct
}

// Stats accumulates decisions. The zero value is ready to use.
type Stats struct {
	Counted int `json:"counted"`
	Correct int `json:"correct"`
	Skipped int `json:"skipped"`
}

// Record folds one decision into the tally.
func (s *Stats) Record(d Decision) {
	if !d.Counted() {
		s.Skipped++
		return
	}
	s.Counted++
	if d.Correct() {
		s.Correct++
	}
}

// Decisions returns the number of recorded decisions.
func (s Stats) Decisions() int {
	return s.Counted + s.Skipped
}

// Accuracy returns correct/counted. The bool is false when nothing was counted.
func (s Stats) Accuracy() (float64, bool) {
	if s.Counted == 0 {
		return 0, false
	}
	return float64(s.Correct) / float64(s.Counted), true
}

// Tracker is the session-scope tally shared by one player's rounds.
type Tracker struct {
	mu    sync.Mutex
	stats Stats
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// RecordDecision folds d into the session tally. It never fails.
func (t *Tracker) RecordDecision(_ context.Context, d Decision) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stats.Record(d)
	return nil
}

// Stats returns a copy of the current tally.
func (t *Tracker) Stats() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stats
}
