package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charadehq/charade/internal/chat"
	"github.com/charadehq/charade/internal/store"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, characters ...store.Character) *store.Store {
	t.Helper()
	s, err := store.Open(store.NewMemPersistence(characters...))
	require.NoError(t, err)
	return s
}

func newTestRouter(t *testing.T, s *store.Store) http.Handler {
	t.Helper()
	return NewRouter(Options{Store: s, Responder: chat.NewResponder(nil)})
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func socratesRecord() store.Character {
	pitch, rate := 0.95, 0.9
	return store.Character{
		ID:           "socrates",
		Name:         "Socrates",
		Greeting:     "Greetings. I am Socrates. Shall we examine the question together? ",
		Personality:  "Philosophical, inquisitive, calm, thought-provoking",
		Background:   "Classical Greek philosopher renowned for the Socratic method and a relentless pursuit of truth.",
		SpeakingTips: "Ask questions, encourage reflection, keep tone calm yet curious.",
		Voice:        store.Voice{Pitch: &pitch, Rate: &rate},
	}
}

func TestListCharactersEmptyRosterIsAnArray(t *testing.T) {
	router := newTestRouter(t, newTestStore(t))

	rec := doJSON(t, router, http.MethodGet, "/api/characters", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"characters":[]}`, rec.Body.String())
}

func TestCreateCharacterDerivesSlug(t *testing.T) {
	s := newTestStore(t)
	router := newTestRouter(t, s)

	rec := doJSON(t, router, http.MethodPost, "/api/characters",
		`{"name":"Harry Potter!","greeting":"Hello there!","voice":{"pitch":1.05,"rate":"1.05"}}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp characterResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, "harry-potter", resp.Character.ID)
	require.Equal(t, "Harry Potter!", resp.Character.Name)
	require.NotNil(t, resp.Character.Voice.Pitch)
	require.Equal(t, 1.05, *resp.Character.Voice.Pitch)
	require.NotNil(t, resp.Character.Voice.Rate)
	require.Equal(t, 1.05, *resp.Character.Voice.Rate)

	require.Len(t, s.List(), 1)
}

func TestCreateCharacterValidation(t *testing.T) {
	router := newTestRouter(t, newTestStore(t))

	rec := doJSON(t, router, http.MethodPost, "/api/characters", `{"greeting":"hi"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp errorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotEmpty(t, resp.Error)
}

func TestCreateCharacterMalformedBody(t *testing.T) {
	router := newTestRouter(t, newTestStore(t))

	rec := doJSON(t, router, http.MethodPost, "/api/characters", `{"name":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.JSONEq(t, `{"error":"Invalid JSON payload."}`, rec.Body.String())
}

func TestCreateCharacterConflictLeavesStoreUnchanged(t *testing.T) {
	s := newTestStore(t, socratesRecord())
	router := newTestRouter(t, s)

	before := len(s.List())
	rec := doJSON(t, router, http.MethodPost, "/api/characters",
		`{"name":"Socrates","greeting":"Greetings again."}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Len(t, s.List(), before)
}

func TestUpdateCharacterMergesVoice(t *testing.T) {
	s := newTestStore(t, socratesRecord())
	router := newTestRouter(t, s)

	rec := doJSON(t, router, http.MethodPut, "/api/characters/socrates",
		`{"voice":{"pitch":1.1}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp characterResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, 1.1, *resp.Character.Voice.Pitch)
	require.Equal(t, 0.9, *resp.Character.Voice.Rate)
}

func TestUpdateCharacterNotFound(t *testing.T) {
	router := newTestRouter(t, newTestStore(t))

	rec := doJSON(t, router, http.MethodPut, "/api/characters/ghost-id", `{"name":"Ghost"}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteCharacterReturnsRemovedRecord(t *testing.T) {
	s := newTestStore(t, socratesRecord())
	router := newTestRouter(t, s)

	rec := doJSON(t, router, http.MethodDelete, "/api/characters/socrates", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp characterResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, "socrates", resp.Character.ID)
	require.Empty(t, s.List())
}

func TestDeleteCharacterNotFoundLeavesStoreUnchanged(t *testing.T) {
	s := newTestStore(t, socratesRecord())
	router := newTestRouter(t, s)

	rec := doJSON(t, router, http.MethodDelete, "/api/characters/ghost-id", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp errorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotEmpty(t, resp.Error)
	require.Len(t, s.List(), 1)
}
