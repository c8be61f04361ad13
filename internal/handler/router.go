package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	conversationHandler "github.com/akashvani/voicenews/backend/internal/handler/conversation"
	newsHandler "github.com/akashvani/voicenews/backend/internal/handler/news"
	sessionHandler "github.com/akashvani/voicenews/backend/internal/handler/session"
	middlewarePkg "github.com/akashvani/voicenews/backend/internal/middleware"
	conversationService "github.com/akashvani/voicenews/backend/internal/service/conversation"
	sessionService "github.com/akashvani/voicenews/backend/internal/service/session"
	speechService "github.com/akashvani/voicenews/backend/internal/service/speech"
	"github.com/akashvani/voicenews/backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services. speechClient may be nil when
// the speech pass-through is not configured; voice endpoints then report
// unavailable while text endpoints keep working.
func NewRouter(convSvc *conversationService.Service, sessions *sessionService.Store, provider conversationService.Provider, speechClient *speechService.Client) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	// Avoid a typed-nil interface when speech is disabled.
	var speech conversationHandler.Speech
	if speechClient != nil {
		speech = speechClient
	}

	convHandler := conversationHandler.New(convSvc, speech)
	wsHandler := conversationHandler.NewWebSocketHandler(convSvc, speech)
	newsHdl := newsHandler.New(provider)
	sessHdl := sessionHandler.New(sessions)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(api chi.Router) {
		convHandler.RegisterRoutes(api)
		wsHandler.RegisterWebSocketRoutes(api)
		newsHdl.RegisterRoutes(api)
		sessHdl.RegisterRoutes(api)
	})

	return r
}
