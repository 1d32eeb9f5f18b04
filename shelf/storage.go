package shelf

import (
	"encoding/json"
	"fmt"
	"neoshelf/config"
)

// Storage handles saving and loading the shelf catalogue using the state interface
type Storage struct {
	state config.ShelfStorage
}

// NewStorage creates a new storage instance
func NewStorage(state config.ShelfStorage) *Storage {
	return &Storage{state: state}
}

// SaveShelves saves all shelves to disk
func (s *Storage) SaveShelves(shelves map[string]*Shelf) error {
	data := make(map[string]json.RawMessage, len(shelves))
	for name, sh := range shelves {
		raw, err := json.Marshal(sh)
		if err != nil {
			return fmt.Errorf("failed to marshal shelf %q: %w", name, err)
		}
		data[name] = raw
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal shelves: %w", err)
	}

	return s.state.SaveShelves(jsonData)
}

// LoadShelves loads all shelves from disk
func (s *Storage) LoadShelves() (map[string]*Shelf, error) {
	raw := s.state.GetShelves()
	shelves := make(map[string]*Shelf)
	if len(raw) == 0 {
		return shelves, nil
	}

	var data map[string]json.RawMessage
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal shelves: %w", err)
	}

	for name, shelfRaw := range data {
		sh := DefaultShelf(name)
		if err := json.Unmarshal(shelfRaw, sh); err != nil {
			return nil, fmt.Errorf("failed to unmarshal shelf %q: %w", name, err)
		}
		sh.Name = name
		shelves[name] = sh
	}
	return shelves, nil
}

// DeleteAllShelves removes all stored shelves
func (s *Storage) DeleteAllShelves() error {
	return s.state.DeleteAllShelves()
}
