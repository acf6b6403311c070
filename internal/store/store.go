package store

import (
	"fmt"
	"strings"
	"sync"
)

// Persistence is the backing representation of the character collection.
// Load is called once when the store opens; Save rewrites the whole
// collection after every mutation.
type Persistence interface {
	Load() ([]Character, error)
	Save(characters []Character) error
}

// Store holds the ordered character collection. Reads return snapshots;
// mutations serialize under the lock and persist the next collection
// before committing it, so a failed save leaves memory and disk at the
// previous consistent state.
type Store struct {
	mu         sync.RWMutex
	characters []Character
	persist    Persistence
}

// Open loads the collection from the persistence port. An empty collection
// (including a missing backing file) is written out once so the backing
// representation always exists after startup.
func Open(persist Persistence) (*Store, error) {
	characters, err := persist.Load()
	if err != nil {
		return nil, fmt.Errorf("load characters: %w", err)
	}

	s := &Store{characters: characters, persist: persist}
	if len(characters) == 0 {
		if err := persist.Save([]Character{}); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
		}
	}
	return s, nil
}

// List returns a snapshot of the collection in insertion order.
func (s *Store) List() []Character {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Character, len(s.characters))
	copy(out, s.characters)
	return out
}

// FindByID returns the character with the given id, or ErrNotFound.
func (s *Store) FindByID(id string) (Character, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.characters {
		if c.ID == id {
			return c, nil
		}
	}
	return Character{}, ErrNotFound
}

// First returns the first character in the collection, used as the default
// persona when a chat turn names an unknown id. ok is false when the
// collection is empty.
func (s *Store) First() (Character, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.characters) == 0 {
		return Character{}, false
	}
	return s.characters[0], true
}

// Insert validates the payload, assigns an id, appends the character and
// persists the collection. A caller-supplied id wins when free; otherwise
// the id is derived from the name via Slugify.
func (s *Store) Insert(payload CharacterPayload) (Character, error) {
	name := trimmed(payload.Name)
	if name == "" {
		return Character{}, fmt.Errorf("%w: name must not be empty", ErrValidation)
	}
	greeting := trimmed(payload.Greeting)
	if greeting == "" {
		return Character{}, fmt.Errorf("%w: greeting must not be empty", ErrValidation)
	}

	id := trimmed(payload.ID)
	if id == "" {
		id = Slugify(name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(id) != -1 {
		return Character{}, fmt.Errorf("%w: %q", ErrConflict, id)
	}

	character := Character{
		ID:           id,
		Name:         name,
		Greeting:     greeting,
		Personality:  trimmed(payload.Personality),
		Background:   trimmed(payload.Background),
		SpeakingTips: trimmed(payload.SpeakingTips),
		Voice:        parseVoice(payload.Voice),
	}

	next := make([]Character, len(s.characters), len(s.characters)+1)
	copy(next, s.characters)
	next = append(next, character)

	if err := s.persist.Save(next); err != nil {
		return Character{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	s.characters = next
	return character, nil
}

// Update merges the payload into the stored character. Fields present in
// the payload overwrite, absent fields keep their prior values, and the id
// is immutable. Voice merges field-by-field rather than wholesale.
func (s *Store) Update(id string, payload CharacterPayload) (Character, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx == -1 {
		return Character{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}

	character := s.characters[idx]
	if payload.Name != nil {
		character.Name = strings.TrimSpace(*payload.Name)
	}
	if payload.Greeting != nil {
		character.Greeting = strings.TrimSpace(*payload.Greeting)
	}
	if payload.Personality != nil {
		character.Personality = strings.TrimSpace(*payload.Personality)
	}
	if payload.Background != nil {
		character.Background = strings.TrimSpace(*payload.Background)
	}
	if payload.SpeakingTips != nil {
		character.SpeakingTips = strings.TrimSpace(*payload.SpeakingTips)
	}
	character.Voice = character.Voice.Merge(parseVoice(payload.Voice))

	next := make([]Character, len(s.characters))
	copy(next, s.characters)
	next[idx] = character

	if err := s.persist.Save(next); err != nil {
		return Character{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	s.characters = next
	return character, nil
}

// Delete removes the character and persists the collection, returning the
// removed record.
func (s *Store) Delete(id string) (Character, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx == -1 {
		return Character{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}

	removed := s.characters[idx]
	next := make([]Character, 0, len(s.characters)-1)
	next = append(next, s.characters[:idx]...)
	next = append(next, s.characters[idx+1:]...)

	if err := s.persist.Save(next); err != nil {
		return Character{}, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	s.characters = next
	return removed, nil
}

// indexOf must be called with the lock held.
func (s *Store) indexOf(id string) int {
	for i, c := range s.characters {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
