// Package storagetest holds the behavior suite every storage.Store
// implementation must pass.
package storagetest

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/louisbranch/hitstand/internal/services/game/domain/accuracy"
	"github.com/louisbranch/hitstand/internal/services/game/domain/chart"
	"github.com/louisbranch/hitstand/internal/services/game/storage"
)

// Opener returns a fresh, empty store for one subtest.
type Opener func(t *testing.T) storage.Store

// Run exercises the full storage contract against stores from open.
func Run(t *testing.T, open Opener) {
	t.Helper()

	t.Run("chart put and get", func(t *testing.T) { testChartPutGet(t, open(t)) })
	t.Run("chart rows replace and lookup", func(t *testing.T) { testChartRows(t, open(t)) })
	t.Run("chart rows require chart", func(t *testing.T) { testChartRowsRequireChart(t, open(t)) })
	t.Run("sessions", func(t *testing.T) { testSessions(t, open(t)) })
	t.Run("round state", func(t *testing.T) { testRoundState(t, open(t)) })
	t.Run("decision aggregates", func(t *testing.T) { testDecisionAggregates(t, open(t)) })
	t.Run("commit decision is atomic", func(t *testing.T) { testCommitDecisionAtomic(t, open(t)) })
}

var (
	hard16 = chart.Situation{Kind: chart.HandHard, PlayerTotal: 16, DealerUpcard: "10"}
	soft12 = chart.Situation{Kind: chart.HandSoft, PlayerTotal: 12, DealerUpcard: "6"}
	epoch  = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
)

func seedChart(t *testing.T, store storage.Store, chartID int64) {
	t.Helper()
	ctx := context.Background()
	if err := store.PutChart(ctx, storage.ChartRecord{ID: chartID, Name: "test", CreatedAt: epoch}); err != nil {
		t.Fatalf("put chart: %v", err)
	}
	rows := []chart.Row{
		{Kind: chart.HandHard, PlayerTotal: 16, DealerUpcard: "10", Action: chart.ActionHit},
		{Kind: chart.HandHard, PlayerTotal: 12, DealerUpcard: "4", Action: chart.ActionStand},
	}
	if err := store.ReplaceChartRows(ctx, chartID, rows); err != nil {
		t.Fatalf("replace chart rows: %v", err)
	}
}

func seedSession(t *testing.T, store storage.Store, sessionID string, chartID int64) {
	t.Helper()
	if err := store.CreateSession(context.Background(), storage.PlaySession{ID: sessionID, ChartID: chartID, StartedAt: epoch}); err != nil {
		t.Fatalf("create session: %v", err)
	}
}

func decision(sessionID string, situation chart.Situation, chosen, recommended chart.Action) storage.Decision {
	return storage.Decision{
		SessionID: sessionID,
		Decision:  accuracy.Decision{Situation: situation, Chosen: chosen, Recommended: recommended},
		DecidedAt: epoch,
	}
}

func testChartPutGet(t *testing.T, store storage.Store) {
	ctx := context.Background()
	if err := store.PutChart(ctx, storage.ChartRecord{ID: 1, Name: "basic", Notes: "v1", CreatedAt: epoch}); err != nil {
		t.Fatalf("put chart: %v", err)
	}
	if err := store.PutChart(ctx, storage.ChartRecord{ID: 1, Name: "basic", Notes: "v2"}); err != nil {
		t.Fatalf("update chart: %v", err)
	}
	got, err := store.GetChart(ctx, 1)
	if err != nil {
		t.Fatalf("get chart: %v", err)
	}
	if got.Name != "basic" || got.Notes != "v2" {
		t.Fatalf("chart = %+v", got)
	}
	if !got.CreatedAt.Equal(epoch) {
		t.Fatalf("created at = %v, want %v", got.CreatedAt, epoch)
	}
	if _, err := store.GetChart(ctx, 99); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("missing chart error = %v, want ErrNotFound", err)
	}
	if err := store.PutChart(ctx, storage.ChartRecord{ID: 0, Name: "bad"}); err == nil {
		t.Fatal("expected error for non-positive chart id")
	}
}

func testChartRows(t *testing.T, store storage.Store) {
	ctx := context.Background()
	seedChart(t, store, 1)

	action, err := store.LookupAction(ctx, 1, chart.HandHard, 16, "10")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if action != chart.ActionHit {
		t.Fatalf("action = %q, want H", action)
	}
	action, err = store.LookupAction(ctx, 1, soft12.Kind, soft12.PlayerTotal, soft12.DealerUpcard)
	if err != nil {
		t.Fatalf("lookup missing row: %v", err)
	}
	if action != chart.ActionNone {
		t.Fatalf("missing row action = %q, want none", action)
	}
	if count, err := store.CountChartRows(ctx, 1); err != nil || count != 2 {
		t.Fatalf("count = %d, %v; want 2", count, err)
	}

	replacement := []chart.Row{{Kind: chart.HandSoft, PlayerTotal: 18, DealerUpcard: "A", Action: chart.ActionHit}}
	if err := store.ReplaceChartRows(ctx, 1, replacement); err != nil {
		t.Fatalf("replace rows: %v", err)
	}
	if count, _ := store.CountChartRows(ctx, 1); count != 1 {
		t.Fatalf("count after replace = %d, want 1", count)
	}
	if action, _ := store.LookupAction(ctx, 1, chart.HandHard, 16, "10"); action != chart.ActionNone {
		t.Fatalf("old row still present: %q", action)
	}

	duplicate := []chart.Row{replacement[0], replacement[0]}
	if err := store.ReplaceChartRows(ctx, 1, duplicate); !errors.Is(err, storage.ErrAlreadyExists) {
		t.Fatalf("duplicate rows error = %v, want ErrAlreadyExists", err)
	}
	if count, _ := store.CountChartRows(ctx, 1); count != 1 {
		t.Fatalf("failed replace changed rows: count = %d", count)
	}
}

func testChartRowsRequireChart(t *testing.T, store storage.Store) {
	err := store.ReplaceChartRows(context.Background(), 5, []chart.Row{{Kind: chart.HandHard, PlayerTotal: 8, DealerUpcard: "2", Action: chart.ActionHit}})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func testSessions(t *testing.T, store storage.Store) {
	ctx := context.Background()
	seedChart(t, store, 1)
	seedSession(t, store, "s1", 1)

	got, err := store.GetSession(ctx, "s1")
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if got.ChartID != 1 || !got.StartedAt.Equal(epoch) {
		t.Fatalf("session = %+v", got)
	}
	if err := store.CreateSession(ctx, storage.PlaySession{ID: "s1", ChartID: 1}); !errors.Is(err, storage.ErrAlreadyExists) {
		t.Fatalf("duplicate session error = %v, want ErrAlreadyExists", err)
	}
	if err := store.CreateSession(ctx, storage.PlaySession{ID: "s2", ChartID: 42}); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("unknown chart error = %v, want ErrNotFound", err)
	}
	if _, err := store.GetSession(ctx, "nope"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("missing session error = %v, want ErrNotFound", err)
	}
}

func testRoundState(t *testing.T, store storage.Store) {
	ctx := context.Background()
	seedChart(t, store, 1)
	seedSession(t, store, "s1", 1)

	if _, err := store.GetRoundState(ctx, "s1"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("empty round state error = %v, want ErrNotFound", err)
	}
	for _, payload := range []string{`{"v":1}`, `{"v":2}`} {
		if err := store.SaveRoundState(ctx, storage.RoundState{SessionID: "s1", Payload: json.RawMessage(payload)}); err != nil {
			t.Fatalf("save round state: %v", err)
		}
	}
	got, err := store.GetRoundState(ctx, "s1")
	if err != nil {
		t.Fatalf("get round state: %v", err)
	}
	if string(got.Payload) != `{"v":2}` {
		t.Fatalf("payload = %s", got.Payload)
	}
	if err := store.SaveRoundState(ctx, storage.RoundState{SessionID: "ghost", Payload: json.RawMessage(`{}`)}); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("unknown session error = %v, want ErrNotFound", err)
	}
}

func testDecisionAggregates(t *testing.T, store storage.Store) {
	ctx := context.Background()
	seedChart(t, store, 1)
	seedChart(t, store, 2)
	seedSession(t, store, "a", 1)
	seedSession(t, store, "b", 1)
	seedSession(t, store, "c", 2)

	empty, err := store.SessionAccuracy(ctx, "a")
	if err != nil {
		t.Fatalf("empty session accuracy: %v", err)
	}
	if empty != (accuracy.Stats{}) {
		t.Fatalf("empty stats = %+v", empty)
	}

	logs := []storage.Decision{
		decision("a", hard16, chart.ActionHit, chart.ActionHit),
		decision("a", hard16, chart.ActionStand, chart.ActionHit),
		decision("a", soft12, chart.ActionHit, chart.ActionNone),
		decision("b", hard16, chart.ActionHit, chart.ActionHit),
		decision("c", hard16, chart.ActionStand, chart.ActionHit),
	}
	for _, d := range logs {
		if err := store.LogDecision(ctx, d); err != nil {
			t.Fatalf("log decision: %v", err)
		}
	}

	session, err := store.SessionAccuracy(ctx, "a")
	if err != nil {
		t.Fatalf("session accuracy: %v", err)
	}
	if session != (accuracy.Stats{Counted: 2, Correct: 1, Skipped: 1}) {
		t.Fatalf("session stats = %+v", session)
	}
	allTime, err := store.AllTimeAccuracy(ctx, 1)
	if err != nil {
		t.Fatalf("all-time accuracy: %v", err)
	}
	if allTime != (accuracy.Stats{Counted: 3, Correct: 2, Skipped: 1}) {
		t.Fatalf("all-time stats = %+v", allTime)
	}
	other, _ := store.AllTimeAccuracy(ctx, 2)
	if other != (accuracy.Stats{Counted: 1}) {
		t.Fatalf("chart 2 stats = %+v", other)
	}

	if err := store.LogDecision(ctx, decision("ghost", hard16, chart.ActionHit, chart.ActionHit)); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("unknown session error = %v, want ErrNotFound", err)
	}
}

func testCommitDecisionAtomic(t *testing.T, store storage.Store) {
	ctx := context.Background()
	seedChart(t, store, 1)
	seedSession(t, store, "s1", 1)

	d := decision("s1", hard16, chart.ActionHit, chart.ActionHit)
	if err := store.CommitDecision(ctx, d, storage.RoundState{SessionID: "s1", Payload: json.RawMessage(`{"n":1}`)}); err != nil {
		t.Fatalf("commit decision: %v", err)
	}

	if err := store.CommitDecision(ctx, d, storage.RoundState{SessionID: "s1", Payload: json.RawMessage(`not json`)}); err == nil {
		t.Fatal("expected commit with invalid payload to fail")
	}
	if err := store.CommitDecision(ctx, d, storage.RoundState{SessionID: "other", Payload: json.RawMessage(`{}`)}); err == nil {
		t.Fatal("expected commit with mismatched sessions to fail")
	}

	stats, err := store.SessionAccuracy(ctx, "s1")
	if err != nil {
		t.Fatalf("session accuracy: %v", err)
	}
	if stats != (accuracy.Stats{Counted: 1, Correct: 1}) {
		t.Fatalf("stats = %+v, want only the committed decision", stats)
	}
	state, err := store.GetRoundState(ctx, "s1")
	if err != nil {
		t.Fatalf("get round state: %v", err)
	}
	if string(state.Payload) != `{"n":1}` {
		t.Fatalf("payload = %s, want committed state", state.Payload)
	}
}
