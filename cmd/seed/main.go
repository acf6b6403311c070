// Command seed writes the stock persona roster to the characters file.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/charadehq/charade/internal/config"
	"github.com/charadehq/charade/internal/store"
)

func stockCharacters() []store.Character {
	num := func(v float64) *float64 { return &v }
	return []store.Character{
		{
			ID:           "harry-potter",
			Name:         "Harry Potter",
			Greeting:     "Hello there! I'm Harry Potter. Looking for a bit of magic today?",
			Personality:  "Brave, loyal, optimistic, slightly informal",
			Background:   "Wizard trained at Hogwarts. Known for courage, friendship, and a knack for getting into adventures.",
			SpeakingTips: "Use references to magic, Hogwarts, and friendships.",
			Voice:        store.Voice{Pitch: num(1.05), Rate: num(1.05)},
		},
		{
			ID:           "socrates",
			Name:         "Socrates",
			Greeting:     "Greetings. I am Socrates. Shall we examine the question together? ",
			Personality:  "Philosophical, inquisitive, calm, thought-provoking",
			Background:   "Classical Greek philosopher renowned for the Socratic method and a relentless pursuit of truth.",
			SpeakingTips: "Ask questions, encourage reflection, keep tone calm yet curious.",
			Voice:        store.Voice{Pitch: num(0.95), Rate: num(0.9)},
		},
		{
			ID:           "princess-moon",
			Name:         "Princess Moon",
			Greeting:     "Hi there! Princess Moon reporting for sparkle duty. Ready for some fun? ",
			Personality:  "Playful, bubbly, energetic, encouraging",
			Background:   "A fictional magical heroine who loves adventure and cheering up friends.",
			SpeakingTips: "Keep sentences upbeat, include whimsical imagery.",
			Voice:        store.Voice{Pitch: num(1.2), Rate: num(1.1)},
		},
	}
}

func main() {
	force := flag.Bool("force", false, "overwrite an existing non-empty characters file")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	persist := &store.FilePersistence{Path: cfg.CharactersFile}
	existing, err := persist.Load()
	if err != nil {
		log.Fatalf("Failed to read %s: %v", cfg.CharactersFile, err)
	}
	if len(existing) > 0 && !*force {
		log.Fatalf("%s already has %d characters; re-run with -force to overwrite", cfg.CharactersFile, len(existing))
	}

	roster := stockCharacters()
	if err := persist.Save(roster); err != nil {
		log.Fatalf("Failed to write %s: %v", cfg.CharactersFile, err)
	}
	fmt.Printf("Seeded %d characters into %s\n", len(roster), cfg.CharactersFile)
}
