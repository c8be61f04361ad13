package conversation

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/akashvani/voicenews/backend/internal/model/conversation"
	conversationService "github.com/akashvani/voicenews/backend/internal/service/conversation"
	"github.com/akashvani/voicenews/backend/pkg/utils"
)

const maxAudioUpload = 10 << 20

// Speech abstracts the STT/TTS pass-through so handlers can run without it
// and tests can fake it.
type Speech interface {
	Transcribe(ctx context.Context, audio []byte, mimetype string) (string, error)
	Synthesize(ctx context.Context, text, voice string) ([]byte, error)
}

// Handler serves the text and voice turn endpoints.
type Handler struct {
	svc    *conversationService.Service
	speech Speech // nil when speech is not configured
}

// New creates the conversation handler.
func New(svc *conversationService.Service, speech Speech) *Handler {
	return &Handler{svc: svc, speech: speech}
}

// RegisterRoutes mounts the turn endpoints.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/text", h.handleText)
	r.Post("/voice", h.handleVoice)
}

// turnResponse is the transport envelope around a composed turn.
type turnResponse struct {
	SessionID string `json:"sessionId"`
	conversation.Response
	Audio string `json:"audio,omitempty"` // base64-encoded synthesized speech
}

func (h *Handler) handleText(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Text      string `json:"text"`
		SessionID string `json:"sessionId"`
		VoiceType string `json:"voiceType"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	utt := conversation.Utterance{
		Text:       payload.Text,
		Source:     conversation.SourceText,
		ReceivedAt: time.Now().UTC(),
	}
	h.runTurn(w, r, utt, payload.SessionID, payload.VoiceType)
}

func (h *Handler) handleVoice(w http.ResponseWriter, r *http.Request) {
	if h.speech == nil {
		utils.RespondError(w, http.StatusServiceUnavailable, "speech service unavailable")
		return
	}

	if err := r.ParseMultipartForm(maxAudioUpload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("audio")
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "audio file is required")
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "failed to read audio")
		return
	}

	transcript, err := h.speech.Transcribe(r.Context(), audio, header.Header.Get("Content-Type"))
	if err != nil {
		log.Printf("[voice] transcription failed: %v", err)
		utils.RespondError(w, http.StatusBadGateway, "could not transcribe audio")
		return
	}

	utt := conversation.Utterance{
		Text:       transcript,
		Source:     conversation.SourceVoice,
		ReceivedAt: time.Now().UTC(),
	}
	h.runTurn(w, r, utt, r.FormValue("sessionId"), r.FormValue("voiceType"))
}

// runTurn drives the orchestrator and attaches synthesized audio when the
// speech pass-through is configured. The session id is transport-owned: one
// is generated here when the caller did not supply any.
func (h *Handler) runTurn(w http.ResponseWriter, r *http.Request, utt conversation.Utterance, sessionID, voiceType string) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	resp, err := h.svc.Handle(r.Context(), utt, sessionID)
	if err != nil {
		if errors.Is(err, conversationService.ErrEmptyUtterance) {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("[conversation] turn failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "turn failed")
		return
	}

	out := turnResponse{SessionID: sessionID, Response: resp}
	if h.speech != nil {
		audio, err := h.speech.Synthesize(r.Context(), resp.SpokenText, voiceType)
		if err != nil {
			// A failed synthesis still leaves a usable text response.
			log.Printf("[voice] synthesis failed: %v", err)
		} else {
			out.Audio = base64.StdEncoding.EncodeToString(audio)
		}
	}

	utils.RespondJSON(w, http.StatusOK, out)
}
