package conversation

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/akashvani/voicenews/backend/internal/model/conversation"
	conversationService "github.com/akashvani/voicenews/backend/internal/service/conversation"
)

// WebSocketHandler carries conversation turns over a persistent connection.
type WebSocketHandler struct {
	svc      *conversationService.Service
	speech   Speech
	upgrader websocket.Upgrader
}

// NewWebSocketHandler creates the websocket turn handler.
func NewWebSocketHandler(svc *conversationService.Service, speech Speech) *WebSocketHandler {
	return &WebSocketHandler{
		svc:    svc,
		speech: speech,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterWebSocketRoutes mounts the websocket endpoint.
func (h *WebSocketHandler) RegisterWebSocketRoutes(r chi.Router) {
	r.Get("/ws", h.handleWebSocket)
	r.Get("/ws/{sessionID}", h.handleWebSocket)
}

type inboundMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type utterancePayload struct {
	Text      string `json:"text"`
	VoiceType string `json:"voiceType"`
}

type outboundMessage struct {
	Type      string      `json:"type"`
	SessionID string      `json:"sessionId"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// handleWebSocket serves one conversation per connection. The session id is
// taken from the URL when present, otherwise generated for the connection.
func (h *WebSocketHandler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	log.Printf("[ws] connection opened for session=%s", sessionID)
	h.send(conn, sessionID, "connected", map[string]string{"sessionId": sessionID})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[ws] read failed for session=%s: %v", sessionID, err)
			}
			return
		}

		var msg inboundMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			h.send(conn, sessionID, "error", map[string]string{"error": "invalid message"})
			continue
		}

		switch msg.Type {
		case "utterance":
			h.handleUtterance(r, conn, sessionID, msg.Data)
		case "ping":
			h.send(conn, sessionID, "pong", nil)
		default:
			h.send(conn, sessionID, "error", map[string]string{"error": "unknown message type"})
		}
	}
}

func (h *WebSocketHandler) handleUtterance(r *http.Request, conn *websocket.Conn, sessionID string, data json.RawMessage) {
	var payload utterancePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		h.send(conn, sessionID, "error", map[string]string{"error": "invalid utterance payload"})
		return
	}

	utt := conversation.Utterance{
		Text:       payload.Text,
		Source:     conversation.SourceText,
		ReceivedAt: time.Now().UTC(),
	}

	resp, err := h.svc.Handle(r.Context(), utt, sessionID)
	if err != nil {
		if errors.Is(err, conversationService.ErrEmptyUtterance) {
			h.send(conn, sessionID, "error", map[string]string{"error": err.Error()})
			return
		}
		log.Printf("[ws] turn failed for session=%s: %v", sessionID, err)
		h.send(conn, sessionID, "error", map[string]string{"error": "turn failed"})
		return
	}

	out := turnResponse{SessionID: sessionID, Response: resp}
	if h.speech != nil {
		audio, err := h.speech.Synthesize(r.Context(), resp.SpokenText, payload.VoiceType)
		if err != nil {
			log.Printf("[ws] synthesis failed for session=%s: %v", sessionID, err)
		} else {
			out.Audio = base64.StdEncoding.EncodeToString(audio)
		}
	}
	h.send(conn, sessionID, "response", out)
}

func (h *WebSocketHandler) send(conn *websocket.Conn, sessionID, msgType string, data interface{}) {
	msg := outboundMessage{
		Type:      msgType,
		SessionID: sessionID,
		Data:      data,
		Timestamp: time.Now().UnixMilli(),
	}
	if err := conn.WriteJSON(msg); err != nil {
		log.Printf("[ws] write failed for session=%s: %v", sessionID, err)
	}
}
