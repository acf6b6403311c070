package api

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/charadehq/charade/internal/chat"
	"github.com/charadehq/charade/internal/store"
	"github.com/charadehq/charade/internal/ws"
)

var startTime = time.Now()

type HealthResponse struct {
	Status   string  `json:"status"`
	Uptime   float64 `json:"uptime"`
	Hostname string  `json:"hostname"`
}

// Options configures the router.
type Options struct {
	Store         *store.Store
	Responder     *chat.Responder
	AllowedOrigin string
}

// NewRouter wires the HTTP surface: CORS on every route, JSON everywhere,
// and a websocket event stream for connected UIs.
func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	hub := ws.NewHub()
	go hub.Run()

	allowedOrigin := opts.AllowedOrigin
	if allowedOrigin == "" {
		allowedOrigin = "*"
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{allowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(recoverJSON)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		sendJSON(w, http.StatusNotFound, errorResponse{Error: "Not found"})
	})

	r.Get("/api/health", handleHealth)
	r.Handle("/ws", &ws.Handler{Hub: hub})

	characters := &CharactersHandler{Store: opts.Store, Hub: hub}
	r.Get("/api/characters", characters.List)
	r.Post("/api/characters", characters.Create)
	r.Put("/api/characters/{id}", characters.Update)
	r.Delete("/api/characters/{id}", characters.Delete)

	chatHandler := &ChatHandler{Store: opts.Store, Responder: opts.Responder, Hub: hub}
	r.Post("/api/chat", chatHandler.Handle)

	return r
}

// recoverJSON converts panics into the JSON 500 body the API promises.
func recoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("[api] panic serving %s %s: %v", r.Method, r.URL.Path, rec)
				sendJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	sendJSON(w, http.StatusOK, HealthResponse{
		Status:   "ok",
		Uptime:   time.Since(startTime).Seconds(),
		Hostname: hostname,
	})
}
