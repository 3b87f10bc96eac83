package round

import (
	"context"

	"github.com/louisbranch/hitstand/internal/services/game/domain/accuracy"
)

// Recorder receives every scored decision before the hand changes.
type Recorder interface {
	RecordDecision(ctx context.Context, decision accuracy.Decision) error
}

// RecorderFunc adapts a function to Recorder.
type RecorderFunc func(ctx context.Context, decision accuracy.Decision) error

// RecordDecision implements Recorder.
func (f RecorderFunc) RecordDecision(ctx context.Context, decision accuracy.Decision) error {
	return f(ctx, decision)
}

type chain []Recorder

func (c chain) RecordDecision(ctx context.Context, decision accuracy.Decision) error {
	for _, r := range c {
		if err := r.RecordDecision(ctx, decision); err != nil {
			return err
		}
	}
	return nil
}

// Recorders runs recorders in order and stops at the first error. Nil
// entries are ignored.
func Recorders(recorders ...Recorder) Recorder {
	out := make(chain, 0, len(recorders))
	for _, r := range recorders {
		if r != nil {
			out = append(out, r)
		}
	}
	return out
}

// Capture keeps the last decision it saw.
type Capture struct {
	Decision accuracy.Decision
	Seen     bool
}

// RecordDecision implements Recorder.
func (c *Capture) RecordDecision(_ context.Context, decision accuracy.Decision) error {
	c.Decision = decision
	c.Seen = true
	return nil
}
