package main

import (
	"log"
	"net/http"

	"github.com/charadehq/charade/internal/api"
	"github.com/charadehq/charade/internal/chat"
	"github.com/charadehq/charade/internal/config"
	"github.com/charadehq/charade/internal/llm"
	"github.com/charadehq/charade/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	characters, err := store.Open(&store.FilePersistence{Path: cfg.CharactersFile})
	if err != nil {
		log.Fatalf("Character store error: %v", err)
	}

	var provider chat.Completer
	if cfg.OpenAI.Enabled() {
		client, err := llm.NewClient(llm.ClientConfig{
			BaseURL: cfg.OpenAI.BaseURL,
			Model:   cfg.OpenAI.Model,
			APIKey:  cfg.OpenAI.APIKey,
		}, nil)
		if err != nil {
			log.Fatalf("Provider config error: %v", err)
		}
		provider = client
	} else {
		log.Printf("API_KEY not set. Using scripted fallback responses.")
	}

	router := api.NewRouter(api.Options{
		Store:         characters,
		Responder:     chat.NewResponder(provider),
		AllowedOrigin: cfg.AllowedOrigin,
	})

	log.Printf("Charade backend listening on http://%s", cfg.Addr())
	if err := http.ListenAndServe(cfg.Addr(), router); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
