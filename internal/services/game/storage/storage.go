package storage

import (
	"context"
	"encoding/json"
	"time"

	apperrors "github.com/louisbranch/hitstand/internal/platform/errors"
	"github.com/louisbranch/hitstand/internal/services/game/domain/accuracy"
	"github.com/louisbranch/hitstand/internal/services/game/domain/chart"
)

// ErrNotFound indicates a requested persistence record is missing.
var ErrNotFound = apperrors.New(apperrors.CodeNotFound, "record not found")

// ErrAlreadyExists indicates an insert collided with an existing key.
var ErrAlreadyExists = apperrors.New(apperrors.CodeAlreadyExists, "record already exists")

// ChartRecord is a stored chart header.
type ChartRecord struct {
	ID        int64
	Name      string
	Notes     string
	CreatedAt time.Time
}

// ChartStore persists strategy charts and answers lookups.
type ChartStore interface {
	// PutChart creates the chart header or updates its name and notes.
	PutChart(ctx context.Context, record ChartRecord) error
	GetChart(ctx context.Context, chartID int64) (ChartRecord, error)
	// ReplaceChartRows swaps every row of a chart in one transaction.
	ReplaceChartRows(ctx context.Context, chartID int64, rows []chart.Row) error
	CountChartRows(ctx context.Context, chartID int64) (int, error)
	// LookupAction returns chart.ActionNone with a nil error when no row matches.
	LookupAction(ctx context.Context, chartID int64, kind chart.HandKind, playerTotal int, dealerUpcard string) (chart.Action, error)
}

// Decision is one logged player decision.
type Decision struct {
	SessionID string
	accuracy.Decision
	DecidedAt time.Time
}

// DecisionStore appends decisions and aggregates them.
type DecisionStore interface {
	LogDecision(ctx context.Context, decision Decision) error
	SessionAccuracy(ctx context.Context, sessionID string) (accuracy.Stats, error)
	// AllTimeAccuracy aggregates every session played against chartID.
	AllTimeAccuracy(ctx context.Context, chartID int64) (accuracy.Stats, error)
}

// PlaySession is one player's run against a chart.
type PlaySession struct {
	ID        string
	ChartID   int64
	StartedAt time.Time
}

// RoundState is the opaque round carrier of a web session.
type RoundState struct {
	SessionID string
	Payload   json.RawMessage
	UpdatedAt time.Time
}

// SessionStore persists play sessions and their in-flight round.
type SessionStore interface {
	CreateSession(ctx context.Context, session PlaySession) error
	GetSession(ctx context.Context, sessionID string) (PlaySession, error)
	GetRoundState(ctx context.Context, sessionID string) (RoundState, error)
	SaveRoundState(ctx context.Context, state RoundState) error
	// CommitDecision logs decision and saves state together. Either both are
	// written or neither is.
	CommitDecision(ctx context.Context, decision Decision, state RoundState) error
}

// Store is the full persistence surface used by the front ends.
type Store interface {
	ChartStore
	DecisionStore
	SessionStore
	Close() error
}
