package chart

import (
	"context"
	"fmt"
	"strconv"

	apperrors "github.com/louisbranch/hitstand/internal/platform/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const tracerName = "github.com/louisbranch/hitstand/internal/services/game/domain/chart"

// Oracle recommends an action for a situation. A missing chart row returns
// ActionNone and a nil error.
type Oracle interface {
	Recommend(ctx context.Context, situation Situation) (Action, error)
}

// Lookup is the read side of a chart backend.
type Lookup interface {
	LookupAction(ctx context.Context, chartID int64, kind HandKind, playerTotal int, dealerUpcard string) (Action, error)
}

// StoreOracle answers from one chart in a Lookup backend.
type StoreOracle struct {
	store   Lookup
	chartID int64
}

// NewStoreOracle binds an oracle to chartID.
func NewStoreOracle(store Lookup, chartID int64) *StoreOracle {
	return &StoreOracle{store: store, chartID: chartID}
}

// Recommend implements Oracle. Backend failures and unreadable rows are
// reported as CHART_UNAVAILABLE.
func (o *StoreOracle) Recommend(ctx context.Context, situation Situation) (Action, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "chart.Recommend")
	defer span.End()
	span.SetAttributes(
		attribute.String("chart.id", strconv.FormatInt(o.chartID, 10)),
		attribute.String("chart.hand_kind", string(situation.Kind)),
		attribute.Int("chart.player_total", situation.PlayerTotal),
		attribute.String("chart.dealer_upcard", situation.DealerUpcard),
	)

	if o.store == nil {
		err := apperrors.New(apperrors.CodeChartUnavailable, "strategy chart unavailable")
		span.SetStatus(codes.Error, err.Error())
		return ActionNone, err
	}

	action, err := o.store.LookupAction(ctx, o.chartID, situation.Kind, situation.PlayerTotal, situation.DealerUpcard)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "chart lookup failed")
		return ActionNone, apperrors.Classify(apperrors.CodeChartUnavailable, "strategy chart unavailable", err)
	}
	if action != ActionNone && !action.Valid() {
		err := apperrors.Wrap(apperrors.CodeChartUnavailable, "strategy chart unavailable",
			fmt.Errorf("chart %d row %s holds unknown action %q", o.chartID, situation, action))
		span.SetStatus(codes.Error, "unknown chart action")
		return ActionNone, err
	}
	span.SetAttributes(attribute.String("chart.action", action.Label()))
	return action, nil
}

// OracleFunc adapts a function to Oracle.
type OracleFunc func(ctx context.Context, situation Situation) (Action, error)

// Recommend implements Oracle.
func (f OracleFunc) Recommend(ctx context.Context, situation Situation) (Action, error) {
	return f(ctx, situation)
}
