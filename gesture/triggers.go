package gesture

import (
	"encoding/json"
	"fmt"
	"neoshelf/config"
	"neoshelf/log"
)

// Action is one of the four user-meaningful outcomes a raw trigger can be
// bound to.
type Action string

const (
	ActionMainCommand      Action = "main_command"
	ActionSecondaryCommand Action = "secondary_command"
	ActionOpenManager      Action = "open_manager"
	ActionShowSubmenu      Action = "show_submenu"
)

// Actions returns the four action keys in display order.
func Actions() []Action {
	return []Action{
		ActionMainCommand,
		ActionSecondaryCommand,
		ActionOpenManager,
		ActionShowSubmenu,
	}
}

// Trigger is one physical input gesture kind.
type Trigger string

const (
	TriggerClick       Trigger = "lmb_click"
	TriggerShiftClick  Trigger = "shift_lmb_click"
	TriggerHold        Trigger = "lmb_hold"
	TriggerRightClick  Trigger = "rmb_click"
	TriggerDoubleClick Trigger = "lmb_double_click"
	TriggerUnset       Trigger = "not_set"
)

// Triggers returns every raw trigger kind in display order.
func Triggers() []Trigger {
	return []Trigger{
		TriggerClick,
		TriggerShiftClick,
		TriggerHold,
		TriggerRightClick,
		TriggerDoubleClick,
		TriggerUnset,
	}
}

// ParseAction validates an action key name.
func ParseAction(s string) (Action, error) {
	for _, a := range Actions() {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown action %q", s)
}

// ParseTrigger validates a raw trigger name.
func ParseTrigger(s string) (Trigger, error) {
	for _, t := range Triggers() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown trigger %q", s)
}

// TriggerMap binds each logical action to a raw trigger. Among set entries
// no trigger is ever bound twice; Set maintains that invariant on every
// mutation.
type TriggerMap map[Action]Trigger

// DefaultTriggerMap returns the stock bindings.
func DefaultTriggerMap() TriggerMap {
	return TriggerMap{
		ActionMainCommand:      TriggerClick,
		ActionSecondaryCommand: TriggerShiftClick,
		ActionOpenManager:      TriggerRightClick,
		ActionShowSubmenu:      TriggerHold,
	}
}

// Get returns the trigger bound to an action, TriggerUnset if none.
func (m TriggerMap) Get(action Action) Trigger {
	if t, ok := m[action]; ok {
		return t
	}
	return TriggerUnset
}

// Set binds an action to a trigger. Binding a non-unset trigger first
// resets every other action holding that trigger, so the injectivity
// invariant holds before and after every call and callers never need a
// separate validation pass.
func (m TriggerMap) Set(action Action, trigger Trigger) {
	if trigger != TriggerUnset {
		for other, bound := range m {
			if other != action && bound == trigger {
				m[other] = TriggerUnset
			}
		}
	}
	m[action] = trigger
}

// ActionFor returns the unique action bound to a raw trigger, or "" if the
// trigger is unbound. TriggerUnset never resolves to an action.
func (m TriggerMap) ActionFor(trigger Trigger) (Action, bool) {
	if trigger == TriggerUnset {
		return "", false
	}
	for action, bound := range m {
		if bound == trigger {
			return action, true
		}
	}
	return "", false
}

// UsesDoubleClick reports whether any action is bound to the double-click
// trigger. When none is, single clicks fire without the disambiguation
// delay.
func (m TriggerMap) UsesDoubleClick() bool {
	_, ok := m.ActionFor(TriggerDoubleClick)
	return ok
}

// Valid reports whether every action is set and no trigger is bound twice.
// An incomplete map may be held in memory but is not ready to persist.
func (m TriggerMap) Valid() bool {
	seen := make(map[Trigger]bool, len(m))
	for _, action := range Actions() {
		t := m.Get(action)
		if t == TriggerUnset {
			return false
		}
		if seen[t] {
			return false
		}
		seen[t] = true
	}
	return true
}

// Clone returns an independent copy.
func (m TriggerMap) Clone() TriggerMap {
	out := make(TriggerMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Store persists the trigger map through the config state layer.
type Store struct {
	state config.TriggerStorage
}

// NewStore creates a trigger map store.
func NewStore(state config.TriggerStorage) *Store {
	return &Store{state: state}
}

// Load reads the trigger map from the state, falling back to the defaults
// when nothing is stored. Unknown names are dropped and the bindings are
// replayed through Set so the injectivity invariant holds even for
// hand-edited state files.
func (s *Store) Load() TriggerMap {
	raw := s.state.GetTriggers()

	var stored map[string]string
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &stored); err != nil {
			log.WarningLog.Printf("failed to parse stored triggers: %v", err)
		}
	}
	if len(stored) == 0 {
		return DefaultTriggerMap()
	}

	m := make(TriggerMap, len(stored))
	for _, action := range Actions() {
		name, ok := stored[string(action)]
		if !ok {
			m[action] = TriggerUnset
			continue
		}
		trigger, err := ParseTrigger(name)
		if err != nil {
			log.WarningLog.Printf("dropping binding for %s: %v", action, err)
			trigger = TriggerUnset
		}
		m.Set(action, trigger)
	}
	return m
}

// Save persists the trigger map. Incomplete or conflicting maps are
// rejected rather than written.
func (s *Store) Save(m TriggerMap) error {
	if !m.Valid() {
		return fmt.Errorf("trigger map is incomplete or has duplicate bindings")
	}

	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal triggers: %w", err)
	}
	return s.state.SaveTriggers(data)
}
