package chat

import (
	"fmt"

	"github.com/charadehq/charade/internal/store"
)

// BuildSystemPrompt renders the roleplay instruction for a character. A nil
// character yields the generic companion instruction so a turn can proceed
// even when the roster is empty.
func BuildSystemPrompt(character *store.Character) string {
	if character == nil {
		return "You are a friendly AI companion. Respond in two concise sentences."
	}
	return fmt.Sprintf(
		"You are roleplaying as %s. Personality: %s. Background: %s. Speaking tips: %s. Keep replies to 2-3 concise sentences, staying in character.",
		character.Name, character.Personality, character.Background, character.SpeakingTips,
	)
}
