package web

import (
	"errors"
	"log"
	"net/http"

	"github.com/a-h/templ"
	"golang.org/x/text/language"

	apperrors "github.com/louisbranch/hitstand/internal/platform/errors"
	"github.com/louisbranch/hitstand/internal/platform/i18n"
	"github.com/louisbranch/hitstand/internal/services/game/domain/chart"
	"github.com/louisbranch/hitstand/internal/services/game/storage"
	"github.com/louisbranch/hitstand/internal/services/web/platform/httpx"
	"github.com/louisbranch/hitstand/internal/services/web/platform/sessioncookie"
	"github.com/louisbranch/hitstand/internal/services/web/static"
	"github.com/louisbranch/hitstand/internal/services/web/templates"
)

// maxActionBody bounds the /api/action request body.
const maxActionBody = 1 << 10

type handler struct {
	trainer     *Trainer
	cookies     *sessioncookie.Codec
	defaultLang language.Tag
}

type actionRequest struct {
	Action string `json:"action"`
}

func (h *handler) routes() http.Handler {
	mux := http.NewServeMux()
	get := httpx.RequireMethod(http.MethodGet)
	post := httpx.RequireMethod(http.MethodPost)

	mux.Handle("/{$}", httpx.Chain(http.HandlerFunc(h.handlePage), get))
	mux.Handle("/static/", httpx.Chain(http.StripPrefix("/static/", http.FileServerFS(static.FS)), get))
	mux.Handle("/healthz", httpx.Chain(http.HandlerFunc(h.handleHealth), get))
	mux.Handle("/api/start", httpx.Chain(http.HandlerFunc(h.handleStart), get))
	mux.Handle("/api/new-round", httpx.Chain(http.HandlerFunc(h.handleNewRound), post))
	mux.Handle("/api/action", httpx.Chain(http.HandlerFunc(h.handleAction), post))
	mux.Handle("/api/state", httpx.Chain(http.HandlerFunc(h.handleState), get))
	return mux
}

func (h *handler) handlePage(w http.ResponseWriter, r *http.Request) {
	tag, fromQuery := i18n.ResolveTag(r)
	if fromQuery {
		i18n.SetLanguageCookie(w, tag)
	} else if !hasLanguageHint(r) && h.defaultLang != language.Und {
		tag = i18n.ParseTag(h.defaultLang.String())
	}
	templ.Handler(templates.Page(templates.NewPageView(tag))).ServeHTTP(w, r)
}

func hasLanguageHint(r *http.Request) bool {
	if _, err := r.Cookie(i18n.LangCookieName); err == nil {
		return true
	}
	return r.Header.Get("Accept-Language") != ""
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	_ = httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) handleStart(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	snap, err := h.trainer.Start(r.Context(), sess)
	h.respond(w, r, snap, err)
}

func (h *handler) handleNewRound(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	snap, err := h.trainer.NewRound(r.Context(), sess)
	h.respond(w, r, snap, err)
}

func (h *handler) handleAction(w http.ResponseWriter, r *http.Request) {
	var body actionRequest
	if err := httpx.DecodeJSON(r, &body, maxActionBody); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	action, err := chart.ParseAction(body.Action)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	snap, err := h.trainer.Act(r.Context(), sess, action)
	h.respond(w, r, snap, err)
}

// handleState never creates a session.
func (h *handler) handleState(w http.ResponseWriter, r *http.Request) {
	sessionID, err := h.cookies.Read(r)
	if err != nil {
		if !errors.Is(err, sessioncookie.ErrMissing) {
			sessioncookie.Clear(w, r)
		}
		httpx.WriteError(w, r, apperrors.New(apperrors.CodeNotFound, "no play session"))
		return
	}
	sess, err := h.trainer.store.GetSession(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			sessioncookie.Clear(w, r)
			httpx.WriteError(w, r, apperrors.New(apperrors.CodeNotFound, "no play session"))
			return
		}
		httpx.WriteError(w, r, apperrors.Wrap(apperrors.CodeSessionUnavailable, "play session unavailable", err))
		return
	}
	snap, err := h.trainer.State(r.Context(), sess)
	h.respond(w, r, snap, err)
}

// session resolves the caller's play session and refreshes the cookie when
// a new one had to be created.
func (h *handler) session(w http.ResponseWriter, r *http.Request) (storage.PlaySession, bool) {
	sessionID, err := h.cookies.Read(r)
	if err != nil && !errors.Is(err, sessioncookie.ErrMissing) {
		log.Printf("ignoring session cookie request_id=%s: %v", r.Header.Get(httpx.RequestIDHeader), err)
	}
	sess, created, err := h.trainer.EnsureSession(r.Context(), sessionID)
	if err != nil {
		httpx.WriteError(w, r, err)
		return storage.PlaySession{}, false
	}
	if created {
		if err := h.cookies.Write(w, r, sess.ID); err != nil {
			httpx.WriteError(w, r, apperrors.Wrap(apperrors.CodeSessionUnavailable, "play session unavailable", err))
			return storage.PlaySession{}, false
		}
	}
	return sess, true
}

func (h *handler) respond(w http.ResponseWriter, r *http.Request, snap Snapshot, err error) {
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	if err := httpx.WriteJSON(w, http.StatusOK, snap); err != nil {
		log.Printf("write response request_id=%s: %v", r.Header.Get(httpx.RequestIDHeader), err)
	}
}
