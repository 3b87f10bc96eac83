// Package memory implements the game storage contracts with mutex-guarded
// maps. Nothing survives the process.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/louisbranch/hitstand/internal/services/game/domain/accuracy"
	"github.com/louisbranch/hitstand/internal/services/game/domain/chart"
	"github.com/louisbranch/hitstand/internal/services/game/storage"
)

var _ storage.Store = (*Store)(nil)

// Store keeps every record in memory.
type Store struct {
	mu          sync.RWMutex
	now         func() time.Time
	charts      map[int64]storage.ChartRecord
	rows        map[int64]map[chart.Situation]chart.Action
	sessions    map[string]storage.PlaySession
	decisions   []storage.Decision
	roundStates map[string]storage.RoundState
}

// New returns an empty store.
func New() *Store {
	return &Store{
		now:         time.Now,
		charts:      make(map[int64]storage.ChartRecord),
		rows:        make(map[int64]map[chart.Situation]chart.Action),
		sessions:    make(map[string]storage.PlaySession),
		roundStates: make(map[string]storage.RoundState),
	}
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}

func (s *Store) stamp(value time.Time) time.Time {
	if value.IsZero() {
		value = s.now()
	}
	return value.UTC()
}

// PutChart creates the chart or updates its name and notes.
func (s *Store) PutChart(_ context.Context, record storage.ChartRecord) error {
	if record.ID <= 0 {
		return fmt.Errorf("chart id must be positive")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.charts[record.ID]; ok {
		existing.Name = record.Name
		existing.Notes = record.Notes
		s.charts[record.ID] = existing
		return nil
	}
	record.CreatedAt = s.stamp(record.CreatedAt)
	s.charts[record.ID] = record
	return nil
}

// GetChart returns the chart header.
func (s *Store) GetChart(_ context.Context, chartID int64) (storage.ChartRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.charts[chartID]
	if !ok {
		return storage.ChartRecord{}, fmt.Errorf("chart %d: %w", chartID, storage.ErrNotFound)
	}
	return record, nil
}

// ReplaceChartRows swaps every row of the chart.
func (s *Store) ReplaceChartRows(_ context.Context, chartID int64, rows []chart.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.charts[chartID]; !ok {
		return fmt.Errorf("chart %d: %w", chartID, storage.ErrNotFound)
	}
	next := make(map[chart.Situation]chart.Action, len(rows))
	for _, row := range rows {
		key := row.Situation()
		if _, dup := next[key]; dup {
			return fmt.Errorf("chart %d row %s: %w", chartID, key, storage.ErrAlreadyExists)
		}
		next[key] = row.Action
	}
	s.rows[chartID] = next
	return nil
}

// CountChartRows returns the number of rows in a chart.
func (s *Store) CountChartRows(_ context.Context, chartID int64) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows[chartID]), nil
}

// LookupAction returns the row action or chart.ActionNone.
func (s *Store) LookupAction(_ context.Context, chartID int64, kind chart.HandKind, playerTotal int, dealerUpcard string) (chart.Action, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rows[chartID][chart.Situation{Kind: kind, PlayerTotal: playerTotal, DealerUpcard: dealerUpcard}], nil
}

// CreateSession inserts a play session bound to an existing chart.
func (s *Store) CreateSession(_ context.Context, session storage.PlaySession) error {
	if session.ID == "" {
		return fmt.Errorf("session id is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[session.ID]; ok {
		return fmt.Errorf("session %s: %w", session.ID, storage.ErrAlreadyExists)
	}
	if _, ok := s.charts[session.ChartID]; !ok {
		return fmt.Errorf("session %s chart %d: %w", session.ID, session.ChartID, storage.ErrNotFound)
	}
	session.StartedAt = s.stamp(session.StartedAt)
	s.sessions[session.ID] = session
	return nil
}

// GetSession returns a play session.
func (s *Store) GetSession(_ context.Context, sessionID string) (storage.PlaySession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return storage.PlaySession{}, fmt.Errorf("session %s: %w", sessionID, storage.ErrNotFound)
	}
	return session, nil
}

// GetRoundState returns the saved round carrier of a session.
func (s *Store) GetRoundState(_ context.Context, sessionID string) (storage.RoundState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.roundStates[sessionID]
	if !ok {
		return storage.RoundState{}, fmt.Errorf("round state %s: %w", sessionID, storage.ErrNotFound)
	}
	state.Payload = append([]byte(nil), state.Payload...)
	return state, nil
}

// SaveRoundState upserts the round carrier of a session.
func (s *Store) SaveRoundState(_ context.Context, state storage.RoundState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkRoundState(state); err != nil {
		return err
	}
	s.putRoundState(state)
	return nil
}

// LogDecision appends one decision.
func (s *Store) LogDecision(_ context.Context, decision storage.Decision) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkDecision(decision); err != nil {
		return err
	}
	s.putDecision(decision)
	return nil
}

// CommitDecision validates both writes before applying either.
func (s *Store) CommitDecision(_ context.Context, decision storage.Decision, state storage.RoundState) error {
	if decision.SessionID != state.SessionID {
		return fmt.Errorf("decision session %s does not match round state session %s", decision.SessionID, state.SessionID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkDecision(decision); err != nil {
		return err
	}
	if err := s.checkRoundState(state); err != nil {
		return err
	}
	s.putDecision(decision)
	s.putRoundState(state)
	return nil
}

// SessionAccuracy aggregates the decisions of one session.
func (s *Store) SessionAccuracy(_ context.Context, sessionID string) (accuracy.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats accuracy.Stats
	for _, decision := range s.decisions {
		if decision.SessionID == sessionID {
			stats.Record(decision.Decision)
		}
	}
	return stats, nil
}

// AllTimeAccuracy aggregates every decision logged against a chart.
func (s *Store) AllTimeAccuracy(_ context.Context, chartID int64) (accuracy.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats accuracy.Stats
	for _, decision := range s.decisions {
		if s.sessions[decision.SessionID].ChartID == chartID {
			stats.Record(decision.Decision)
		}
	}
	return stats, nil
}

func (s *Store) checkDecision(decision storage.Decision) error {
	if _, ok := s.sessions[decision.SessionID]; !ok {
		return fmt.Errorf("decision session %s: %w", decision.SessionID, storage.ErrNotFound)
	}
	if !decision.Chosen.Valid() {
		return fmt.Errorf("log decision for session %s: chosen action %q", decision.SessionID, decision.Chosen)
	}
	return nil
}

func (s *Store) putDecision(decision storage.Decision) {
	decision.DecidedAt = s.stamp(decision.DecidedAt)
	s.decisions = append(s.decisions, decision)
}

func (s *Store) checkRoundState(state storage.RoundState) error {
	if _, ok := s.sessions[state.SessionID]; !ok {
		return fmt.Errorf("round state %s: %w", state.SessionID, storage.ErrNotFound)
	}
	if !json.Valid(state.Payload) {
		return fmt.Errorf("save round state %s: payload is not valid JSON", state.SessionID)
	}
	return nil
}

func (s *Store) putRoundState(state storage.RoundState) {
	state.Payload = append([]byte(nil), state.Payload...)
	state.UpdatedAt = s.stamp(state.UpdatedAt)
	s.roundStates[state.SessionID] = state
}
