package chat

import (
	"context"
	"log"

	"github.com/charadehq/charade/internal/llm"
	"github.com/charadehq/charade/internal/store"
)

// Source identifies which arm of the reply chain produced the outcome.
type Source string

const (
	SourceProvider Source = "provider"
	SourceFallback Source = "fallback"
)

// Completer is the external completion provider. *llm.Client satisfies it.
type Completer interface {
	Complete(ctx context.Context, messages []llm.Message) (string, error)
}

// Responder runs the reply chain for a chat turn: a single provider
// attempt, then the scripted fallback. Provider failures of any kind are
// absorbed here and never reach the caller.
type Responder struct {
	provider Completer
}

// NewResponder builds a responder. Pass nil when no API credential is
// configured; every turn then resolves from the fallback.
func NewResponder(provider Completer) *Responder {
	return &Responder{provider: provider}
}

// Reply produces the reply text for a turn. character may be nil when the
// roster is empty; message must already be trimmed and non-empty checks
// done by the caller.
func (r *Responder) Reply(ctx context.Context, character *store.Character, message string, history []llm.Message) (string, Source) {
	if r.provider != nil {
		messages := make([]llm.Message, 0, len(history)+2)
		messages = append(messages, llm.Message{Role: "system", Content: BuildSystemPrompt(character)})
		messages = append(messages, history...)
		messages = append(messages, llm.Message{Role: "user", Content: message})

		reply, err := r.provider.Complete(ctx, messages)
		if err != nil {
			log.Printf("[chat] provider fallback triggered: %v", err)
		} else if reply != "" {
			return reply, SourceProvider
		}
	}
	return FallbackReply(character, message), SourceFallback
}
