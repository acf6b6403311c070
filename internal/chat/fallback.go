package chat

import (
	"strings"

	"github.com/charadehq/charade/internal/store"
)

const (
	noCharacterReply   = "I'm not sure which character I am right now, but I'm happy to chat!"
	genericCannedReply = "That sounds exciting! Tell me more so we can make it even better."
)

// cannedReplies maps the stock persona ids to their scripted lines. Unknown
// personas fall through to the generic canned reply.
var cannedReplies = map[string]string{
	"harry-potter": "That sounds like a challenge worthy of a spell or two. Have you tried Lumos on the problem?",
	"socrates":     "Let us examine that more closely. Why do you think it appears that way?",
}

// FallbackReply produces a deterministic scripted reply. It is total: for
// any character and message it returns a non-empty string, which is what
// keeps a chat turn from ever failing on provider trouble alone.
func FallbackReply(character *store.Character, userMessage string) string {
	if character == nil {
		return noCharacterReply
	}
	if userMessage == "" {
		return character.Greeting
	}

	base := character.Name + " here: "
	lower := strings.ToLower(userMessage)
	if strings.Contains(lower, "hello") || strings.Contains(lower, "hi") {
		return base + character.Greeting
	}
	if canned, ok := cannedReplies[character.ID]; ok {
		return base + canned
	}
	return base + genericCannedReply
}
