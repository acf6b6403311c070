// Package store owns the character roster: an ordered in-memory collection
// persisted wholesale to a flat JSON file after every mutation.
package store

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Voice carries client-side speech-synthesis hints. The core never
// interprets them. Absent fields are omitted from JSON, never stored as
// zero placeholders.
type Voice struct {
	Pitch *float64 `json:"pitch,omitempty"`
	Rate  *float64 `json:"rate,omitempty"`
}

// Merge returns a copy of v with any fields set in patch overwriting the
// corresponding field. Fields absent from patch keep their prior values.
func (v Voice) Merge(patch Voice) Voice {
	out := v
	if patch.Pitch != nil {
		out.Pitch = patch.Pitch
	}
	if patch.Rate != nil {
		out.Rate = patch.Rate
	}
	return out
}

// Character is a scripted persona.
type Character struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Greeting     string `json:"greeting"`
	Personality  string `json:"personality"`
	Background   string `json:"background"`
	SpeakingTips string `json:"speakingTips"`
	Voice        Voice  `json:"voice"`
}

// CharacterPayload is the wire shape accepted by insert and update.
// Pointer fields distinguish "absent" from "present but empty" so updates
// can patch individual fields.
type CharacterPayload struct {
	ID           *string       `json:"id,omitempty"`
	Name         *string       `json:"name,omitempty"`
	Greeting     *string       `json:"greeting,omitempty"`
	Personality  *string       `json:"personality,omitempty"`
	Background   *string       `json:"background,omitempty"`
	SpeakingTips *string       `json:"speakingTips,omitempty"`
	Voice        *VoicePayload `json:"voice,omitempty"`
}

// VoicePayload accepts pitch/rate as arbitrary JSON values; browsers and
// form-driven clients send them as strings as often as numbers.
type VoicePayload struct {
	Pitch any `json:"pitch"`
	Rate  any `json:"rate"`
}

// parseVoice converts a voice payload into stored voice fields, dropping
// anything that is not a finite number.
func parseVoice(p *VoicePayload) Voice {
	if p == nil {
		return Voice{}
	}
	return Voice{
		Pitch: toFiniteNumber(p.Pitch),
		Rate:  toFiniteNumber(p.Rate),
	}
}

func toFiniteNumber(v any) *float64 {
	switch n := v.(type) {
	case nil:
		return nil
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return nil
		}
		return &n
	case string:
		trimmed := strings.TrimSpace(n)
		if trimmed == "" {
			return nil
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
			return nil
		}
		return &parsed
	default:
		return nil
	}
}

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a character id from a display name: lowercase, runs of
// non-alphanumerics collapsed to a single hyphen, edge hyphens trimmed,
// truncated to 60 characters. An empty result falls back to a
// timestamp-based id so inserts never fail on exotic names.
func Slugify(name string) string {
	slug := strings.ToLower(name)
	slug = nonAlphanumeric.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > 60 {
		slug = slug[:60]
	}
	if slug == "" {
		return fmt.Sprintf("character-%d", time.Now().UnixMilli())
	}
	return slug
}
