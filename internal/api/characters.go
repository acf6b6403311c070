package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/charadehq/charade/internal/store"
	"github.com/charadehq/charade/internal/ws"
)

// CharactersHandler manages the character roster endpoints.
type CharactersHandler struct {
	Store *store.Store
	Hub   *ws.Hub
}

type charactersResponse struct {
	Characters []store.Character `json:"characters"`
}

type characterResponse struct {
	Character store.Character `json:"character"`
}

// List handles GET /api/characters.
func (h *CharactersHandler) List(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, charactersResponse{Characters: h.Store.List()})
}

// Create handles POST /api/characters.
func (h *CharactersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload store.CharacterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
		sendJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON payload."})
		return
	}

	created, err := h.Store.Insert(payload)
	if err != nil {
		sendStoreError(w, err)
		return
	}

	h.notify(ws.EventCharacterCreated, created)
	sendJSON(w, http.StatusCreated, characterResponse{Character: created})
}

// Update handles PUT /api/characters/{id}.
func (h *CharactersHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payload store.CharacterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
		sendJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON payload."})
		return
	}

	updated, err := h.Store.Update(chi.URLParam(r, "id"), payload)
	if err != nil {
		sendStoreError(w, err)
		return
	}

	h.notify(ws.EventCharacterUpdated, updated)
	sendJSON(w, http.StatusOK, characterResponse{Character: updated})
}

// Delete handles DELETE /api/characters/{id}.
func (h *CharactersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	removed, err := h.Store.Delete(chi.URLParam(r, "id"))
	if err != nil {
		sendStoreError(w, err)
		return
	}

	h.notify(ws.EventCharacterDeleted, removed)
	sendJSON(w, http.StatusOK, characterResponse{Character: removed})
}

func (h *CharactersHandler) notify(eventType ws.EventType, character store.Character) {
	if h.Hub == nil {
		return
	}
	h.Hub.Broadcast(eventType, character)
}
