package web

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/louisbranch/hitstand/internal/platform/timeouts"
	"github.com/louisbranch/hitstand/internal/services/game/app"
	"github.com/louisbranch/hitstand/internal/services/game/domain/chart"
	"github.com/louisbranch/hitstand/internal/services/game/storage"
	"github.com/louisbranch/hitstand/internal/services/web/platform/httpx"
	"github.com/louisbranch/hitstand/internal/services/web/platform/observability"
	"github.com/louisbranch/hitstand/internal/services/web/platform/sessioncookie"
)

// Config defines the web server settings.
type Config struct {
	HTTPAddr      string
	Store         app.StoreConfig
	Rules         Rules
	SessionSecret string
	SessionTTL    time.Duration
	DefaultLang   language.Tag
	// AccessLog receives one line per request; nil uses the standard logger.
	AccessLog *log.Logger
}

// Server hosts the trainer over HTTP.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	store      storage.Store
}

// NewServer opens the store, seeds the chart when it is empty and builds
// the HTTP server.
func NewServer(ctx context.Context, config Config) (*Server, error) {
	httpAddr := strings.TrimSpace(config.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	store, err := app.OpenStore(config.Store)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if _, err := app.EnsureChart(ctx, store, config.Rules.ChartID, chart.DefaultDefinition()); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("ensure chart: %w", err)
	}
	handler, err := NewHandler(config, store)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
		store: store,
	}, nil
}

// NewHandler builds the routed, instrumented handler over store.
func NewHandler(config Config, store storage.Store) (http.Handler, error) {
	trainer, err := NewTrainer(store, config.Rules)
	if err != nil {
		return nil, err
	}
	secret, err := sessionSecret(config.SessionSecret)
	if err != nil {
		return nil, err
	}
	cookies, err := sessioncookie.NewCodec(secret, config.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("session cookies: %w", err)
	}
	h := &handler{trainer: trainer, cookies: cookies, defaultLang: config.DefaultLang}
	return httpx.Chain(h.routes(),
		httpx.RequestID(),
		httpx.RecoverPanic(),
		observability.Trace(),
		observability.RequestLogger(config.AccessLog),
	), nil
}

// sessionSecret returns the configured secret, or a random one that only
// lives as long as the process.
func sessionSecret(configured string) ([]byte, error) {
	if configured = strings.TrimSpace(configured); configured != "" {
		return []byte(configured), nil
	}
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("generate session secret: %w", err)
	}
	log.Printf("session secret not configured; sessions will not survive a restart")
	return secret, nil
}

// ListenAndServe runs the HTTP server until the context ends.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	log.Printf("web trainer listening on %s", s.httpAddr)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

// Close releases the store.
func (s *Server) Close() {
	if s == nil || s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		log.Printf("close store: %v", err)
	}
}
