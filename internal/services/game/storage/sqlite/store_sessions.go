package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/louisbranch/hitstand/internal/services/game/domain/accuracy"
	"github.com/louisbranch/hitstand/internal/services/game/storage"
)

// CreateSession inserts a play session bound to an existing chart.
func (s *Store) CreateSession(ctx context.Context, session storage.PlaySession) error {
	if session.ID == "" {
		return fmt.Errorf("session id is required")
	}
	_, err := s.sqlDB.ExecContext(ctx,
		"INSERT INTO play_sessions (id, chart_id, started_at) VALUES (?, ?, ?)",
		session.ID, session.ChartID, s.stamp(session.StartedAt),
	)
	switch {
	case isUniqueViolation(err):
		return fmt.Errorf("session %s: %w", session.ID, storage.ErrAlreadyExists)
	case isForeignKeyViolation(err):
		return fmt.Errorf("session %s chart %d: %w", session.ID, session.ChartID, storage.ErrNotFound)
	case err != nil:
		return fmt.Errorf("create session %s: %w", session.ID, err)
	}
	return nil
}

// GetSession returns a play session.
func (s *Store) GetSession(ctx context.Context, sessionID string) (storage.PlaySession, error) {
	var session storage.PlaySession
	var startedAt int64
	err := s.sqlDB.QueryRowContext(ctx,
		"SELECT id, chart_id, started_at FROM play_sessions WHERE id = ?", sessionID,
	).Scan(&session.ID, &session.ChartID, &startedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.PlaySession{}, fmt.Errorf("session %s: %w", sessionID, storage.ErrNotFound)
	}
	if err != nil {
		return storage.PlaySession{}, fmt.Errorf("get session %s: %w", sessionID, err)
	}
	session.StartedAt = fromMillis(startedAt)
	return session, nil
}

// GetRoundState returns the saved round carrier of a session.
func (s *Store) GetRoundState(ctx context.Context, sessionID string) (storage.RoundState, error) {
	var state storage.RoundState
	var payload string
	var updatedAt int64
	err := s.sqlDB.QueryRowContext(ctx,
		"SELECT session_id, payload, updated_at FROM round_states WHERE session_id = ?", sessionID,
	).Scan(&state.SessionID, &payload, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.RoundState{}, fmt.Errorf("round state %s: %w", sessionID, storage.ErrNotFound)
	}
	if err != nil {
		return storage.RoundState{}, fmt.Errorf("get round state %s: %w", sessionID, err)
	}
	state.Payload = []byte(payload)
	state.UpdatedAt = fromMillis(updatedAt)
	return state, nil
}

// SaveRoundState upserts the round carrier of a session.
func (s *Store) SaveRoundState(ctx context.Context, state storage.RoundState) error {
	return s.saveRoundState(ctx, s.sqlDB, state)
}

func (s *Store) saveRoundState(ctx context.Context, q querier, state storage.RoundState) error {
	_, err := q.ExecContext(ctx, `
INSERT INTO round_states (session_id, payload, updated_at) VALUES (?, ?, ?)
ON CONFLICT(session_id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		state.SessionID, string(state.Payload), s.stamp(state.UpdatedAt),
	)
	if isForeignKeyViolation(err) {
		return fmt.Errorf("round state %s: %w", state.SessionID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("save round state %s: %w", state.SessionID, err)
	}
	return nil
}

// LogDecision appends one decision.
func (s *Store) LogDecision(ctx context.Context, decision storage.Decision) error {
	return s.logDecision(ctx, s.sqlDB, decision)
}

func (s *Store) logDecision(ctx context.Context, q querier, decision storage.Decision) error {
	var wasCorrect sql.NullBool
	if correct := decision.WasCorrect(); correct != nil {
		wasCorrect = sql.NullBool{Bool: *correct, Valid: true}
	}
	_, err := q.ExecContext(ctx, `
INSERT INTO decisions (session_id, hand_kind, player_total, dealer_upcard, chosen_action, recommended_action, was_correct, decided_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		decision.SessionID,
		string(decision.Situation.Kind),
		decision.Situation.PlayerTotal,
		decision.Situation.DealerUpcard,
		string(decision.Chosen),
		string(decision.Recommended),
		wasCorrect,
		s.stamp(decision.DecidedAt),
	)
	if isForeignKeyViolation(err) {
		return fmt.Errorf("decision session %s: %w", decision.SessionID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("log decision for session %s: %w", decision.SessionID, err)
	}
	return nil
}

// CommitDecision logs decision and saves state in one transaction.
func (s *Store) CommitDecision(ctx context.Context, decision storage.Decision, state storage.RoundState) error {
	if decision.SessionID != state.SessionID {
		return fmt.Errorf("decision session %s does not match round state session %s", decision.SessionID, state.SessionID)
	}
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if err := s.logDecision(ctx, tx, decision); err != nil {
			return err
		}
		return s.saveRoundState(ctx, tx, state)
	})
}

// SessionAccuracy aggregates the decisions of one session.
func (s *Store) SessionAccuracy(ctx context.Context, sessionID string) (accuracy.Stats, error) {
	stats, err := s.aggregate(ctx, `
SELECT COUNT(was_correct), COALESCE(SUM(was_correct), 0), COUNT(*) - COUNT(was_correct)
FROM decisions WHERE session_id = ?`, sessionID)
	if err != nil {
		return accuracy.Stats{}, fmt.Errorf("session accuracy %s: %w", sessionID, err)
	}
	return stats, nil
}

// AllTimeAccuracy aggregates every decision logged against a chart.
func (s *Store) AllTimeAccuracy(ctx context.Context, chartID int64) (accuracy.Stats, error) {
	stats, err := s.aggregate(ctx, `
SELECT COUNT(d.was_correct), COALESCE(SUM(d.was_correct), 0), COUNT(*) - COUNT(d.was_correct)
FROM decisions d
JOIN play_sessions p ON p.id = d.session_id
WHERE p.chart_id = ?`, chartID)
	if err != nil {
		return accuracy.Stats{}, fmt.Errorf("all-time accuracy chart %d: %w", chartID, err)
	}
	return stats, nil
}

func (s *Store) aggregate(ctx context.Context, query string, arg any) (accuracy.Stats, error) {
	var stats accuracy.Stats
	if err := s.sqlDB.QueryRowContext(ctx, query, arg).Scan(&stats.Counted, &stats.Correct, &stats.Skipped); err != nil {
		return accuracy.Stats{}, err
	}
	return stats, nil
}
