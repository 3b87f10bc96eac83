package chart

import (
	"context"
	"errors"
	"testing"

	apperrors "github.com/louisbranch/hitstand/internal/platform/errors"
)

type fakeLookup struct {
	rows    map[Situation]Action
	err     error
	chartID int64
}

func (f *fakeLookup) LookupAction(_ context.Context, chartID int64, kind HandKind, playerTotal int, dealerUpcard string) (Action, error) {
	f.chartID = chartID
	if f.err != nil {
		return ActionNone, f.err
	}
	return f.rows[Situation{Kind: kind, PlayerTotal: playerTotal, DealerUpcard: dealerUpcard}], nil
}

func TestStoreOracleReturnsRow(t *testing.T) {
	t.Parallel()

	situation := Situation{Kind: HandHard, PlayerTotal: 16, DealerUpcard: "10"}
	store := &fakeLookup{rows: map[Situation]Action{situation: ActionHit}}
	oracle := NewStoreOracle(store, 7)

	got, err := oracle.Recommend(context.Background(), situation)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if got != ActionHit {
		t.Fatalf("Recommend() = %q, want H", got)
	}
	if store.chartID != 7 {
		t.Fatalf("chart id = %d, want 7", store.chartID)
	}
}

func TestStoreOracleMissingRowIsNone(t *testing.T) {
	t.Parallel()

	oracle := NewStoreOracle(&fakeLookup{}, 1)
	got, err := oracle.Recommend(context.Background(), Situation{Kind: HandSoft, PlayerTotal: 12, DealerUpcard: "6"})
	if err != nil {
		t.Fatalf("expected nil error for missing row, got %v", err)
	}
	if got != ActionNone {
		t.Fatalf("Recommend() = %q, want none", got)
	}
}

func TestStoreOracleFailureIsUnavailable(t *testing.T) {
	t.Parallel()

	cause := errors.New("database is locked")
	oracle := NewStoreOracle(&fakeLookup{err: cause}, 1)
	_, err := oracle.Recommend(context.Background(), Situation{Kind: HandHard, PlayerTotal: 12, DealerUpcard: "2"})
	if apperrors.CodeOf(err) != apperrors.CodeChartUnavailable {
		t.Fatalf("code = %s, want CHART_UNAVAILABLE", apperrors.CodeOf(err))
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected store cause in chain")
	}
}

func TestStoreOracleRejectsUnknownAction(t *testing.T) {
	t.Parallel()

	situation := Situation{Kind: HandHard, PlayerTotal: 10, DealerUpcard: "A"}
	oracle := NewStoreOracle(&fakeLookup{rows: map[Situation]Action{situation: "D"}}, 1)
	if _, err := oracle.Recommend(context.Background(), situation); apperrors.CodeOf(err) != apperrors.CodeChartUnavailable {
		t.Fatalf("code = %s, want CHART_UNAVAILABLE", apperrors.CodeOf(err))
	}
}

func TestStoreOracleWithoutStore(t *testing.T) {
	t.Parallel()

	if _, err := NewStoreOracle(nil, 1).Recommend(context.Background(), Situation{}); apperrors.CodeOf(err) != apperrors.CodeChartUnavailable {
		t.Fatalf("code = %s, want CHART_UNAVAILABLE", apperrors.CodeOf(err))
	}
}
