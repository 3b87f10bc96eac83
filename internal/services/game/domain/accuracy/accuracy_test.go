package accuracy

import (
	"context"
	"math/rand"
	"sync"
	"testing"

	"github.com/louisbranch/hitstand/internal/services/game/domain/chart"
)

var hard16 = chart.Situation{Kind: chart.HandHard, PlayerTotal: 16, DealerUpcard: "10"}

func TestStatsRecord(t *testing.T) {
	t.Parallel()

	var stats Stats
	stats.Record(Decision{Situation: hard16, Chosen: chart.ActionStand, Recommended: chart.ActionHit})
	if stats != (Stats{Counted: 1, Correct: 0}) {
		t.Fatalf("after wrong decision = %+v", stats)
	}
	stats.Record(Decision{Situation: hard16, Chosen: chart.ActionHit, Recommended: chart.ActionHit})
	if stats != (Stats{Counted: 2, Correct: 1}) {
		t.Fatalf("after right decision = %+v", stats)
	}
	stats.Record(Decision{Situation: hard16, Chosen: chart.ActionHit, Recommended: chart.ActionNone})
	if stats != (Stats{Counted: 2, Correct: 1, Skipped: 1}) {
		t.Fatalf("after skipped decision = %+v", stats)
	}
}

func TestDecisionWasCorrect(t *testing.T) {
	t.Parallel()

	if (Decision{Chosen: chart.ActionHit}).WasCorrect() != nil {
		t.Fatal("expected nil for skipped decision")
	}
	right := Decision{Chosen: chart.ActionStand, Recommended: chart.ActionStand}.WasCorrect()
	if right == nil || !*right {
		t.Fatal("expected true for matching decision")
	}
	wrong := Decision{Chosen: chart.ActionHit, Recommended: chart.ActionStand}.WasCorrect()
	if wrong == nil || *wrong {
		t.Fatal("expected false for mismatched decision")
	}
}

func TestAccuracy(t *testing.T) {
	t.Parallel()

	if _, ok := (Stats{Skipped: 3}).Accuracy(); ok {
		t.Fatal("expected not applicable with nothing counted")
	}
	ratio, ok := Stats{Counted: 4, Correct: 3}.Accuracy()
	if !ok || ratio != 0.75 {
		t.Fatalf("Accuracy() = (%v, %v), want (0.75, true)", ratio, ok)
	}
}

func TestPartitionInvariant(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(11))
	actions := []chart.Action{chart.ActionNone, chart.ActionHit, chart.ActionStand}
	var stats Stats
	for i := 1; i <= 1000; i++ {
		stats.Record(Decision{
			Situation:   hard16,
			Chosen:      actions[1+rng.Intn(2)],
			Recommended: actions[rng.Intn(3)],
		})
		if stats.Decisions() != i {
			t.Fatalf("decisions = %d after %d records", stats.Decisions(), i)
		}
		if stats.Correct > stats.Counted {
			t.Fatalf("correct %d exceeds counted %d", stats.Correct, stats.Counted)
		}
	}
}

func TestTrackerConcurrentRecords(t *testing.T) {
	t.Parallel()

	tracker := NewTracker()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = tracker.RecordDecision(context.Background(), Decision{Chosen: chart.ActionHit, Recommended: chart.ActionHit})
			}
		}()
	}
	wg.Wait()

	if got := tracker.Stats(); got != (Stats{Counted: 1000, Correct: 1000}) {
		t.Fatalf("Stats() = %+v", got)
	}
}
