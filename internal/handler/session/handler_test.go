package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/akashvani/voicenews/backend/internal/model/conversation"
	sessionService "github.com/akashvani/voicenews/backend/internal/service/session"
)

func setupRouter() (*chi.Mux, *sessionService.Store) {
	store := sessionService.NewStore(0)
	handler := New(store)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, store
}

func TestGetSessionReturnsSnapshot(t *testing.T) {
	r, store := setupRouter()
	store.Turn("abc", func(s *conversation.Session) { s.TurnCount = 3 })

	req := httptest.NewRequest(http.MethodGet, "/session/abc", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestClearSessionResets(t *testing.T) {
	r, store := setupRouter()
	store.Turn("abc", func(s *conversation.Session) { s.TurnCount = 3 })

	req := httptest.NewRequest(http.MethodPost, "/session/abc/clear", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if sess := store.Get("abc"); sess.TurnCount != 0 {
		t.Fatalf("session not cleared, turn count %d", sess.TurnCount)
	}
}

func TestClearUnknownSessionSucceeds(t *testing.T) {
	r, _ := setupRouter()

	req := httptest.NewRequest(http.MethodPost, "/session/never-seen/clear", nil)
	resp := httptest.NewRecorder()

	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}
