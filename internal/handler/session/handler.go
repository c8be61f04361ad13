package session

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	sessionService "github.com/akashvani/voicenews/backend/internal/service/session"
	"github.com/akashvani/voicenews/backend/pkg/utils"
)

// Handler exposes session inspection and clearing.
type Handler struct {
	store *sessionService.Store
}

// New creates the session handler.
func New(store *sessionService.Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes mounts the session endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/session/{sessionID}", h.handleGetSession)
	r.Post("/session/{sessionID}/clear", h.handleClearSession)
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		utils.RespondError(w, http.StatusBadRequest, "sessionID is required")
		return
	}
	utils.RespondJSON(w, http.StatusOK, h.store.Get(sessionID))
}

func (h *Handler) handleClearSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		utils.RespondError(w, http.StatusBadRequest, "sessionID is required")
		return
	}
	h.store.Clear(sessionID)
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}
