package config

import (
	"context"
	"encoding/json"
	"fmt"
	"neoshelf/log"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

const StateFileName = "state.json"

// refreshWarnEvery throttles the refresh-failure warning: GetShelves and
// GetTriggers re-read the state file on every call, so a persistently
// unreadable file would otherwise flood the log.
var refreshWarnEvery = log.NewEvery(30 * time.Second)

// ShelfStorage handles the persisted shelf catalogue payload
type ShelfStorage interface {
	// SaveShelves saves the raw shelf catalogue data
	SaveShelves(shelvesJSON json.RawMessage) error
	// GetShelves returns the raw shelf catalogue data
	GetShelves() json.RawMessage
	// DeleteAllShelves removes all stored shelves
	DeleteAllShelves() error
}

// TriggerStorage handles the persisted trigger map payload
type TriggerStorage interface {
	// SaveTriggers saves the raw trigger map data
	SaveTriggers(triggersJSON json.RawMessage) error
	// GetTriggers returns the raw trigger map data
	GetTriggers() json.RawMessage
}

// AppState handles application-level state
type AppState interface {
	// GetActiveShelf returns the name of the shelf shown on startup
	GetActiveShelf() string
	// SetActiveShelf updates the shelf shown on startup
	SetActiveShelf(name string) error
}

// StateManager combines shelf storage, trigger storage and app state management
type StateManager interface {
	ShelfStorage
	TriggerStorage
	AppState

	// RefreshState reloads state from disk to detect changes made by other processes
	RefreshState() error

	// Close releases any resources held by the state manager
	Close() error
}

// State represents the application state that persists between sessions
type State struct {
	// ActiveShelf is the shelf shown on startup
	ActiveShelf string `json:"active_shelf"`
	// ShelvesData stores the serialized shelf catalogue as raw JSON
	ShelvesData json.RawMessage `json:"shelves"`
	// TriggersData stores the serialized trigger map as raw JSON
	TriggersData json.RawMessage `json:"triggers"`

	// Lock file for coordinating state access across processes
	lockFile    *flock.Flock  `json:"-"`
	lockTimeout time.Duration `json:"-"`
}

const (
	// DefaultLockTimeout is the default timeout for acquiring locks
	DefaultLockTimeout = 5 * time.Second
	// LockFileName is the name of the lock file
	LockFileName = "state.lock"
)

// DefaultState returns the default state
func DefaultState() *State {
	configDir, err := GetConfigDir()
	if err != nil {
		log.ErrorLog.Printf("failed to get config directory: %v", err)
		// Return a minimal state without locking if we can't get the config dir
		return &State{
			ActiveShelf:  "",
			ShelvesData:  json.RawMessage("{}"),
			TriggersData: json.RawMessage("{}"),
		}
	}

	lockPath := filepath.Join(configDir, LockFileName)
	fileLock := flock.New(lockPath)

	return &State{
		ActiveShelf:  "",
		ShelvesData:  json.RawMessage("{}"),
		TriggersData: json.RawMessage("{}"),
		lockFile:     fileLock,
		lockTimeout:  DefaultLockTimeout,
	}
}

// LoadState loads the state from disk with locking. If it cannot be done, we return the default state.
func LoadState() *State {
	state := DefaultState()

	if err := state.loadFromDisk(); err != nil {
		log.WarningLog.Printf("failed to load state from disk: %v", err)
		// We already have the default state, so just continue
	}

	return state
}

// loadFromDisk loads state from disk with a shared read lock
func (s *State) loadFromDisk() error {
	if s.lockFile == nil {
		log.WarningLog.Printf("lock file not initialized, loading state without locking")
		return s.loadFromDiskWithoutLocking()
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.lockTimeout)
	defer cancel()

	locked, err := s.lockFile.TryRLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to acquire read lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("could not acquire read lock within timeout")
	}
	defer s.lockFile.Unlock()

	return s.loadFromDiskWithoutLocking()
}

// loadFromDiskWithoutLocking loads state from disk without locking
// This is used internally by loadFromDisk after acquiring a lock
func (s *State) loadFromDiskWithoutLocking() error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	statePath := filepath.Join(configDir, StateFileName)
	data, err := os.ReadFile(statePath)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist yet - keep the default state
			return nil
		}
		return fmt.Errorf("failed to read state file: %w", err)
	}

	var newState State
	if err := json.Unmarshal(data, &newState); err != nil {
		return fmt.Errorf("failed to parse state file: %w", err)
	}

	// Update our fields but keep the lock file and timeout
	s.ActiveShelf = newState.ActiveShelf
	s.ShelvesData = newState.ShelvesData
	s.TriggersData = newState.TriggersData
	if len(s.ShelvesData) == 0 {
		s.ShelvesData = json.RawMessage("{}")
	}
	if len(s.TriggersData) == 0 {
		s.TriggersData = json.RawMessage("{}")
	}

	return nil
}

// SaveState saves the state to disk with locking
func SaveState(state *State) error {
	return state.saveToDisk()
}

// saveToDisk saves state to disk with an exclusive write lock
func (s *State) saveToDisk() error {
	if s.lockFile == nil {
		log.WarningLog.Printf("lock file not initialized, saving state without locking")
		return s.saveToDiskWithoutLocking()
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.lockTimeout)
	defer cancel()

	locked, err := s.lockFile.TryLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to acquire write lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("could not acquire write lock within timeout")
	}
	defer s.lockFile.Unlock()

	return s.saveToDiskWithoutLocking()
}

// saveToDiskWithoutLocking saves state to disk without locking
// This is used internally by saveToDisk after acquiring a lock
func (s *State) saveToDiskWithoutLocking() error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	statePath := filepath.Join(configDir, StateFileName)
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	// Write to a temporary file first to ensure atomicity
	tmpPath := statePath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary state file: %w", err)
	}

	// Atomically rename the temporary file to the actual file
	if err := os.Rename(tmpPath, statePath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to atomically update state file: %w", err)
	}

	return nil
}

// ShelfStorage interface implementation

// SaveShelves saves the raw shelf catalogue data with locking
func (s *State) SaveShelves(shelvesJSON json.RawMessage) error {
	s.ShelvesData = shelvesJSON
	return SaveState(s)
}

// GetShelves returns the raw shelf catalogue data after refreshing from disk
func (s *State) GetShelves() json.RawMessage {
	if err := s.RefreshState(); err != nil && refreshWarnEvery.ShouldLog() {
		log.WarningLog.Printf("failed to refresh state: %v", err)
		// Continue with current state
	}
	return s.ShelvesData
}

// DeleteAllShelves removes all stored shelves with locking
func (s *State) DeleteAllShelves() error {
	s.ShelvesData = json.RawMessage("{}")
	s.ActiveShelf = ""
	return SaveState(s)
}

// TriggerStorage interface implementation

// SaveTriggers saves the raw trigger map data with locking
func (s *State) SaveTriggers(triggersJSON json.RawMessage) error {
	s.TriggersData = triggersJSON
	return SaveState(s)
}

// GetTriggers returns the raw trigger map data after refreshing from disk
func (s *State) GetTriggers() json.RawMessage {
	if err := s.RefreshState(); err != nil && refreshWarnEvery.ShouldLog() {
		log.WarningLog.Printf("failed to refresh state: %v", err)
	}
	return s.TriggersData
}

// AppState interface implementation

// GetActiveShelf returns the name of the shelf shown on startup
func (s *State) GetActiveShelf() string {
	return s.ActiveShelf
}

// SetActiveShelf updates the shelf shown on startup
func (s *State) SetActiveShelf(name string) error {
	s.ActiveShelf = name
	return SaveState(s)
}

// RefreshState reloads state from disk with locking
func (s *State) RefreshState() error {
	return s.loadFromDisk()
}

// Close releases any locks held by this state
func (s *State) Close() error {
	if s.lockFile != nil {
		return s.lockFile.Unlock()
	}
	return nil
}
