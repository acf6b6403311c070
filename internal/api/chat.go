package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/charadehq/charade/internal/chat"
	"github.com/charadehq/charade/internal/store"
	"github.com/charadehq/charade/internal/ws"
)

// ChatHandler coordinates a chat turn: resolve the character, validate the
// message, normalize the history and run the reply chain.
type ChatHandler struct {
	Store     *store.Store
	Responder *chat.Responder
	Hub       *ws.Hub
}

type chatRequest struct {
	CharacterID string          `json:"characterId"`
	Message     string          `json:"message"`
	History     json.RawMessage `json:"history"`
}

type chatResponse struct {
	CharacterID string      `json:"characterId"`
	Reply       string      `json:"reply"`
	Voice       store.Voice `json:"voice"`
}

type chatTurnEvent struct {
	CharacterID string      `json:"characterId"`
	Source      chat.Source `json:"source"`
}

// Handle handles POST /api/chat.
func (h *ChatHandler) Handle(w http.ResponseWriter, r *http.Request) {
	// An empty body reads as an empty turn, which fails message
	// validation below rather than JSON parsing.
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		sendJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON payload."})
		return
	}

	// Unknown ids resolve to the first character rather than failing the
	// turn; an empty roster leaves the turn characterless.
	var character *store.Character
	if found, err := h.Store.FindByID(req.CharacterID); err == nil {
		character = &found
	} else if first, ok := h.Store.First(); ok {
		character = &first
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		sendJSON(w, http.StatusBadRequest, errorResponse{Error: "Message is required."})
		return
	}

	history := chat.NormalizeHistory(req.History)
	reply, source := h.Responder.Reply(r.Context(), character, message, history)

	resp := chatResponse{Reply: reply}
	if character != nil {
		resp.CharacterID = character.ID
		resp.Voice = character.Voice
	}

	if h.Hub != nil {
		h.Hub.Broadcast(ws.EventChatTurnCompleted, chatTurnEvent{
			CharacterID: resp.CharacterID,
			Source:      source,
		})
	}
	sendJSON(w, http.StatusOK, resp)
}
