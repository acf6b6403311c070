// Package chat assembles the bounded conversation context for a turn and
// produces exactly one reply, from the provider when possible and from the
// scripted fallback otherwise.
package chat

import (
	"encoding/json"
	"strconv"

	"github.com/charadehq/charade/internal/llm"
)

// maxHistoryMessages bounds the context sent to the provider; older
// entries are discarded to keep cost and latency predictable.
const maxHistoryMessages = 10

// NormalizeHistory turns an arbitrary client-supplied history value into a
// provider-ready message sequence. Anything that is not an array yields an
// empty sequence, entries without a usable role and content are dropped,
// unknown roles coerce to "user", and only the most recent ten entries
// survive.
func NormalizeHistory(raw json.RawMessage) []llm.Message {
	var entries []any
	if len(raw) == 0 || json.Unmarshal(raw, &entries) != nil {
		return []llm.Message{}
	}

	messages := make([]llm.Message, 0, len(entries))
	for _, entry := range entries {
		obj, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		role, content := obj["role"], obj["content"]
		if !truthy(role) || !truthy(content) {
			continue
		}
		normalizedRole := "user"
		if role == "assistant" {
			normalizedRole = "assistant"
		}
		messages = append(messages, llm.Message{
			Role:    normalizedRole,
			Content: stringify(content),
		})
	}

	if len(messages) > maxHistoryMessages {
		messages = messages[len(messages)-maxHistoryMessages:]
	}
	return messages
}

// truthy mirrors the loose validity check clients rely on: empty strings,
// zero, false and null all drop the entry.
func truthy(v any) bool {
	switch value := v.(type) {
	case nil:
		return false
	case string:
		return value != ""
	case float64:
		return value != 0
	case bool:
		return value
	default:
		return true
	}
}

func stringify(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	default:
		encoded, err := json.Marshal(value)
		if err != nil {
			return ""
		}
		return string(encoded)
	}
}
