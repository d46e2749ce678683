package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Selection records one sent dish. The engine never reads this file
// itself; the caller loads recent ids, passes them into the selector
// and appends the results afterwards.
type Selection struct {
	RecipeID   string    `json:"recipe_id"`
	Name       string    `json:"name"`
	Mode       string    `json:"mode"`
	SelectedAt time.Time `json:"selected_at"`
}

type Storage struct {
	storagePath string
	window      int
}

type history struct {
	Selections []Selection `json:"selections"`
}

// NewStorage returns a file-backed selection log. window is the number
// of most recent selections excluded from repeat candidacy.
func NewStorage(storagePath string, window int) *Storage {
	return &Storage{
		storagePath: storagePath,
		window:      window,
	}
}

// RecentIDs returns the recipe ids of the last window selections,
// newest last. Older entries have no effect on eligibility.
func (s *Storage) RecentIDs() ([]string, error) {
	h, err := s.load()
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	start := 0
	if s.window > 0 && len(h.Selections) > s.window {
		start = len(h.Selections) - s.window
	}

	ids := make([]string, 0, len(h.Selections)-start)
	for _, sel := range h.Selections[start:] {
		ids = append(ids, sel.RecipeID)
	}
	return ids, nil
}

// Append records selections and trims entries that fell out of the
// repeat-avoidance window.
func (s *Storage) Append(selections ...Selection) error {
	h, err := s.load()
	if err != nil {
		return fmt.Errorf("failed to load existing history: %w", err)
	}

	now := time.Now()
	for _, sel := range selections {
		if sel.SelectedAt.IsZero() {
			sel.SelectedAt = now
		}
		h.Selections = append(h.Selections, sel)
	}

	s.trim(&h)

	return s.save(h)
}

func (s *Storage) trim(h *history) {
	if s.window <= 0 || len(h.Selections) <= s.window {
		return
	}
	h.Selections = h.Selections[len(h.Selections)-s.window:]
}

func (s *Storage) load() (history, error) {
	var h history

	if err := s.ensureStorageDir(); err != nil {
		return h, err
	}

	if _, err := os.Stat(s.storagePath); os.IsNotExist(err) {
		return h, nil
	}

	data, err := os.ReadFile(s.storagePath)
	if err != nil {
		return h, fmt.Errorf("failed to read history file: %w", err)
	}

	if err := json.Unmarshal(data, &h); err != nil {
		return h, fmt.Errorf("failed to unmarshal history: %w", err)
	}

	return h, nil
}

func (s *Storage) save(h history) error {
	if err := s.ensureStorageDir(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	if err := os.WriteFile(s.storagePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write history file: %w", err)
	}

	return nil
}

func (s *Storage) ensureStorageDir() error {
	dir := filepath.Dir(s.storagePath)
	return os.MkdirAll(dir, 0755)
}
