package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	apperrors "github.com/louisbranch/hitstand/internal/platform/errors"
	"github.com/louisbranch/hitstand/internal/random"
	"github.com/louisbranch/hitstand/internal/services/game/app"
	"github.com/louisbranch/hitstand/internal/services/game/domain/blackjack"
	"github.com/louisbranch/hitstand/internal/services/game/domain/chart"
	"github.com/louisbranch/hitstand/internal/services/game/domain/round"
	"github.com/louisbranch/hitstand/internal/services/game/storage"
	"github.com/louisbranch/hitstand/internal/services/web/session"
)

const tracerName = "github.com/louisbranch/hitstand/internal/services/web"

// Rules are the table settings shared by every web session.
type Rules struct {
	ChartID        int64
	NumDecks       int
	ReshuffleBelow int
	HitsSoft17     bool
	// Seed makes deck shuffles reproducible; 0 draws a crypto seed.
	Seed int64
}

// Trainer runs rounds for web play sessions against a store.
type Trainer struct {
	store  storage.Store
	rules  Rules
	oracle chart.Oracle
	locks  *session.Locker
	now    func() time.Time

	seedMu sync.Mutex
	seeds  *rand.Rand
}

// NewTrainer validates the rules and prepares the shared seed source.
func NewTrainer(store storage.Store, rules Rules) (*Trainer, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}
	if rules.ChartID <= 0 {
		return nil, fmt.Errorf("chart id must be positive, got %d", rules.ChartID)
	}
	if _, err := blackjack.NewDeck(rules.NumDecks, rules.ReshuffleBelow, rand.New(rand.NewSource(1))); err != nil {
		return nil, fmt.Errorf("invalid deck rules: %w", err)
	}
	seeds, err := random.NewRand(rules.Seed)
	if err != nil {
		return nil, fmt.Errorf("seed deck shuffles: %w", err)
	}
	return &Trainer{
		store:  store,
		rules:  rules,
		oracle: chart.NewStoreOracle(store, rules.ChartID),
		locks:  session.NewLocker(),
		now:    time.Now,
		seeds:  seeds,
	}, nil
}

func (t *Trainer) nextRand() *rand.Rand {
	t.seedMu.Lock()
	defer t.seedMu.Unlock()
	return rand.New(rand.NewSource(t.seeds.Int63()))
}

// EnsureSession returns the play session for sessionID, creating a new one
// when the id is empty, unknown or bound to another chart. The bool reports
// creation.
func (t *Trainer) EnsureSession(ctx context.Context, sessionID string) (storage.PlaySession, bool, error) {
	if sessionID != "" {
		existing, err := t.store.GetSession(ctx, sessionID)
		switch {
		case err == nil && existing.ChartID == t.rules.ChartID:
			return existing, false, nil
		case err != nil && !errors.Is(err, storage.ErrNotFound):
			return storage.PlaySession{}, false, apperrors.Wrap(apperrors.CodeSessionUnavailable, "play session unavailable", err)
		}
	}
	created, err := app.StartSession(ctx, t.store, t.rules.ChartID)
	if err != nil {
		return storage.PlaySession{}, false, apperrors.Classify(apperrors.CodeSessionUnavailable, "play session unavailable", err)
	}
	log.Printf("play session started session_id=%s chart_id=%d", created.ID, created.ChartID)
	return created, true, nil
}

// Start resumes the round in progress or deals a new one.
func (t *Trainer) Start(ctx context.Context, sess storage.PlaySession) (Snapshot, error) {
	unlock := t.locks.Lock(sess.ID)
	defer unlock()

	carrier, err := t.load(ctx, sess.ID)
	if err != nil {
		return Snapshot{}, err
	}
	if !carrier.InProgress() {
		if carrier, err = t.deal(ctx, sess.ID, carrier); err != nil {
			return Snapshot{}, err
		}
	}
	return t.snapshot(ctx, sess, carrier)
}

// NewRound deals a fresh round, abandoning any round in progress.
func (t *Trainer) NewRound(ctx context.Context, sess storage.PlaySession) (Snapshot, error) {
	unlock := t.locks.Lock(sess.ID)
	defer unlock()

	carrier, err := t.load(ctx, sess.ID)
	if err != nil {
		return Snapshot{}, err
	}
	if carrier, err = t.deal(ctx, sess.ID, carrier); err != nil {
		return Snapshot{}, err
	}
	return t.snapshot(ctx, sess, carrier)
}

// Act applies a player action. The decision and the new round state are
// committed together; on any error the stored round is unchanged.
func (t *Trainer) Act(ctx context.Context, sess storage.PlaySession, action chart.Action) (Snapshot, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "web.Act")
	defer span.End()
	span.SetAttributes(
		attribute.String("session.id", sess.ID),
		attribute.String("chart.id", strconv.FormatInt(t.rules.ChartID, 10)),
		attribute.String("player.action", action.Label()),
	)

	snap, err := t.act(ctx, sess, action)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(apperrors.CodeOf(err)))
	}
	return snap, err
}

func (t *Trainer) act(ctx context.Context, sess storage.PlaySession, action chart.Action) (Snapshot, error) {
	unlock := t.locks.Lock(sess.ID)
	defer unlock()

	carrier, err := t.load(ctx, sess.ID)
	if err != nil {
		return Snapshot{}, err
	}
	if !carrier.InProgress() {
		return Snapshot{}, apperrors.New(apperrors.CodeRoundOver, "round is over, start a new round")
	}
	deck, err := carrier.Restore(t.nextRand())
	if err != nil {
		return Snapshot{}, apperrors.Wrap(apperrors.CodeSessionUnavailable, "play session unavailable", err)
	}

	capture := &round.Capture{}
	engine := round.NewEngine(deck, t.policy(), t.oracle, capture)
	next, decision, err := engine.Act(ctx, *carrier.Round, action)
	if err != nil {
		return Snapshot{}, err
	}

	updated := session.Carrier{Deck: deck.State(), Round: &next, LastDecision: &decision}
	payload, err := session.Encode(updated)
	if err != nil {
		return Snapshot{}, apperrors.Wrap(apperrors.CodeSessionUnavailable, "play session unavailable", err)
	}
	now := t.now().UTC()
	err = t.store.CommitDecision(ctx,
		storage.Decision{SessionID: sess.ID, Decision: capture.Decision, DecidedAt: now},
		storage.RoundState{SessionID: sess.ID, Payload: payload, UpdatedAt: now},
	)
	if err != nil {
		return Snapshot{}, apperrors.Wrap(apperrors.CodeDecisionLogFailed, "decision could not be recorded", err)
	}
	if next.Over() {
		log.Printf("round resolved session_id=%s outcome=%s", sess.ID, next.Outcome)
	}
	return t.snapshot(ctx, sess, updated)
}

// State returns the stored table without changing it.
func (t *Trainer) State(ctx context.Context, sess storage.PlaySession) (Snapshot, error) {
	unlock := t.locks.Lock(sess.ID)
	defer unlock()

	carrier, err := t.load(ctx, sess.ID)
	if err != nil {
		return Snapshot{}, err
	}
	if carrier.Round == nil {
		return Snapshot{}, apperrors.New(apperrors.CodeNotFound, "no round has been dealt")
	}
	return t.snapshot(ctx, sess, carrier)
}

func (t *Trainer) policy() blackjack.DealerPolicy {
	return blackjack.DealerPolicy{HitsSoft17: t.rules.HitsSoft17}
}

// load reads the session carrier. A missing or unreadable carrier starts
// over with a fresh shoe.
func (t *Trainer) load(ctx context.Context, sessionID string) (session.Carrier, error) {
	stored, err := t.store.GetRoundState(ctx, sessionID)
	switch {
	case err == nil:
		carrier, decodeErr := session.Decode(stored.Payload)
		if decodeErr == nil {
			return carrier, nil
		}
		log.Printf("discarding unreadable round state session_id=%s: %v", sessionID, decodeErr)
	case !errors.Is(err, storage.ErrNotFound):
		return session.Carrier{}, apperrors.Wrap(apperrors.CodeSessionUnavailable, "play session unavailable", err)
	}

	deck, err := blackjack.NewDeck(t.rules.NumDecks, t.rules.ReshuffleBelow, t.nextRand())
	if err != nil {
		return session.Carrier{}, fmt.Errorf("build shoe: %w", err)
	}
	return session.Carrier{Deck: deck.State()}, nil
}

func (t *Trainer) deal(ctx context.Context, sessionID string, carrier session.Carrier) (session.Carrier, error) {
	deck, err := carrier.Restore(t.nextRand())
	if err != nil {
		return session.Carrier{}, apperrors.Wrap(apperrors.CodeSessionUnavailable, "play session unavailable", err)
	}
	state := round.NewEngine(deck, t.policy(), t.oracle, nil).Deal()
	updated := session.Carrier{Deck: deck.State(), Round: &state}

	payload, err := session.Encode(updated)
	if err != nil {
		return session.Carrier{}, apperrors.Wrap(apperrors.CodeSessionUnavailable, "play session unavailable", err)
	}
	err = t.store.SaveRoundState(ctx, storage.RoundState{SessionID: sessionID, Payload: payload, UpdatedAt: t.now().UTC()})
	if err != nil {
		return session.Carrier{}, apperrors.Wrap(apperrors.CodeSessionUnavailable, "play session unavailable", err)
	}
	return updated, nil
}

func (t *Trainer) snapshot(ctx context.Context, sess storage.PlaySession, carrier session.Carrier) (Snapshot, error) {
	sessionStats, err := t.store.SessionAccuracy(ctx, sess.ID)
	if err != nil {
		return Snapshot{}, apperrors.Wrap(apperrors.CodeSessionUnavailable, "accuracy unavailable", err)
	}
	allTime, err := t.store.AllTimeAccuracy(ctx, t.rules.ChartID)
	if err != nil {
		return Snapshot{}, apperrors.Wrap(apperrors.CodeSessionUnavailable, "accuracy unavailable", err)
	}
	return newSnapshot(carrier, sessionStats, allTime), nil
}
