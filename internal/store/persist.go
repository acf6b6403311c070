package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FilePersistence stores the collection as a pretty-printed JSON array,
// newline-terminated, rewritten wholesale on every save. A missing file
// loads as an empty collection; a malformed file is a load error.
type FilePersistence struct {
	Path string
}

func (p *FilePersistence) Load() ([]Character, error) {
	data, err := os.ReadFile(p.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", p.Path, err)
	}

	var characters []Character
	if err := json.Unmarshal(data, &characters); err != nil {
		return nil, fmt.Errorf("parse %s: %w", p.Path, err)
	}
	return characters, nil
}

func (p *FilePersistence) Save(characters []Character) error {
	if characters == nil {
		characters = []Character{}
	}
	data, err := json.MarshalIndent(characters, "", "  ")
	if err != nil {
		return fmt.Errorf("encode characters: %w", err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(p.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(p.Path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", p.Path, err)
	}
	return nil
}

// MemPersistence is an in-process persistence port for tests. SaveErr, when
// set, fails every save so write-failure handling can be exercised.
type MemPersistence struct {
	mu         sync.Mutex
	characters []Character
	SaveErr    error
}

// NewMemPersistence seeds the port with an initial collection.
func NewMemPersistence(characters ...Character) *MemPersistence {
	return &MemPersistence{characters: characters}
}

func (p *MemPersistence) Load() ([]Character, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Character, len(p.characters))
	copy(out, p.characters)
	return out, nil
}

func (p *MemPersistence) Save(characters []Character) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.SaveErr != nil {
		return p.SaveErr
	}
	p.characters = make([]Character, len(characters))
	copy(p.characters, characters)
	return nil
}

// Saved returns the last persisted collection.
func (p *MemPersistence) Saved() []Character {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Character, len(p.characters))
	copy(out, p.characters)
	return out
}
