package news

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	newsModel "github.com/akashvani/voicenews/backend/internal/model/news"
	conversationService "github.com/akashvani/voicenews/backend/internal/service/conversation"
	"github.com/akashvani/voicenews/backend/pkg/utils"
)

// Handler exposes the category enumeration and direct article retrieval.
type Handler struct {
	provider conversationService.Provider
}

// New creates the news handler.
func New(provider conversationService.Provider) *Handler {
	return &Handler{provider: provider}
}

// RegisterRoutes mounts the news endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/categories", h.handleListCategories)
	r.Post("/news", h.handleFetchNews)
}

func (h *Handler) handleListCategories(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"categories": newsModel.Categories(),
	})
}

// handleFetchNews retrieves articles directly, bypassing the conversation
// layer. Used by the UI to populate the article list panel.
func (h *Handler) handleFetchNews(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Category string `json:"category"`
		Query    string `json:"query"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var (
		articles []newsModel.Article
		err      error
	)
	switch {
	case payload.Category != "":
		cat, ok := newsModel.Normalize(payload.Category)
		if !ok {
			utils.RespondError(w, http.StatusBadRequest, "unknown category")
			return
		}
		articles, err = h.provider.FetchByCategory(r.Context(), cat, 5)
	case payload.Query != "":
		articles, err = h.provider.Search(r.Context(), payload.Query, 5)
	default:
		utils.RespondError(w, http.StatusBadRequest, "category or query is required")
		return
	}

	if err != nil {
		log.Printf("[news] fetch failed: %v", err)
		utils.RespondError(w, http.StatusBadGateway, "news provider unavailable")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"articles": articles})
}
