package shelf

import (
	"fmt"
	"neoshelf/config"
	"sort"
)

// Catalogue owns every shelf and is the only writer of the persisted shelf
// data. UI code and the importer hold transient references to its items.
type Catalogue struct {
	storage  *Storage
	appState config.AppState

	shelves map[string]*Shelf
}

// NewCatalogue loads the catalogue from the given state.
func NewCatalogue(state config.ShelfStorage, appState config.AppState) (*Catalogue, error) {
	storage := NewStorage(state)
	shelves, err := storage.LoadShelves()
	if err != nil {
		return nil, fmt.Errorf("failed to load shelves: %w", err)
	}

	return &Catalogue{
		storage:  storage,
		appState: appState,
		shelves:  shelves,
	}, nil
}

func (c *Catalogue) save() error {
	return c.storage.SaveShelves(c.shelves)
}

// Names returns all shelf names, sorted.
func (c *Catalogue) Names() []string {
	names := make([]string, 0, len(c.shelves))
	for name := range c.shelves {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the named shelf, or nil if it does not exist.
func (c *Catalogue) Get(name string) *Shelf {
	return c.shelves[name]
}

// Exists reports whether a shelf with the given name exists.
func (c *Catalogue) Exists(name string) bool {
	_, ok := c.shelves[name]
	return ok
}

// ActiveShelf returns the shelf marked active, or nil if none is.
func (c *Catalogue) ActiveShelf() *Shelf {
	return c.shelves[c.appState.GetActiveShelf()]
}

// SetActiveShelf marks the named shelf active.
func (c *Catalogue) SetActiveShelf(name string) error {
	return c.appState.SetActiveShelf(name)
}

// Create adds a new empty shelf. It fails if the name is taken.
func (c *Catalogue) Create(name string) (*Shelf, error) {
	if name == "" {
		return nil, fmt.Errorf("shelf name must not be empty")
	}
	if _, exists := c.shelves[name]; exists {
		return nil, fmt.Errorf("shelf %q already exists", name)
	}

	sh := DefaultShelf(name)
	c.shelves[name] = sh
	if err := c.save(); err != nil {
		delete(c.shelves, name)
		return nil, err
	}
	return sh, nil
}

// Delete removes a shelf. Deleting the active shelf clears the active marker.
func (c *Catalogue) Delete(name string) error {
	if _, exists := c.shelves[name]; !exists {
		return fmt.Errorf("shelf %q does not exist", name)
	}
	delete(c.shelves, name)

	if c.appState.GetActiveShelf() == name {
		if err := c.appState.SetActiveShelf(""); err != nil {
			return err
		}
	}
	return c.save()
}

// Rename changes a shelf's name, carrying the active marker along.
func (c *Catalogue) Rename(oldName, newName string) error {
	sh, exists := c.shelves[oldName]
	if !exists {
		return fmt.Errorf("shelf %q does not exist", oldName)
	}
	if _, taken := c.shelves[newName]; taken {
		return fmt.Errorf("shelf %q already exists", newName)
	}

	delete(c.shelves, oldName)
	sh.Name = newName
	c.shelves[newName] = sh

	if c.appState.GetActiveShelf() == oldName {
		if err := c.appState.SetActiveShelf(newName); err != nil {
			return err
		}
	}
	return c.save()
}

// Duplicate copies a shelf and its items under a fresh name.
func (c *Catalogue) Duplicate(name string) (*Shelf, error) {
	src, exists := c.shelves[name]
	if !exists {
		return nil, fmt.Errorf("shelf %q does not exist", name)
	}

	copyName := c.UniqueName(name)
	dup := *src
	dup.Name = copyName
	dup.Items = make([]Item, len(src.Items))
	for i, it := range src.Items {
		switch v := it.(type) {
		case *Separator:
			dup.Items[i] = &Separator{}
		case *Button:
			b := *v
			b.Submenu = append([]SubmenuItem(nil), v.Submenu...)
			dup.Items[i] = &b
		}
	}

	c.shelves[copyName] = &dup
	if err := c.save(); err != nil {
		delete(c.shelves, copyName)
		return nil, err
	}
	return &dup, nil
}

// UniqueName returns base if free, otherwise base_1, base_2, ...
func (c *Catalogue) UniqueName(base string) string {
	name := base
	for counter := 1; ; counter++ {
		if _, exists := c.shelves[name]; !exists {
			return name
		}
		name = fmt.Sprintf("%s_%d", base, counter)
	}
}

// AddItem appends an item to a shelf, or inserts it at index if index >= 0.
// The shelf is created if it does not exist yet.
func (c *Catalogue) AddItem(shelfName string, item Item, index int) error {
	sh, exists := c.shelves[shelfName]
	if !exists {
		sh = DefaultShelf(shelfName)
		c.shelves[shelfName] = sh
	}

	if index < 0 || index >= len(sh.Items) {
		sh.Items = append(sh.Items, item)
	} else {
		sh.Items = append(sh.Items[:index], append([]Item{item}, sh.Items[index:]...)...)
	}
	return c.save()
}

// UpdateItem replaces the item at index on a shelf.
func (c *Catalogue) UpdateItem(shelfName string, index int, item Item) error {
	sh, exists := c.shelves[shelfName]
	if !exists {
		return fmt.Errorf("shelf %q does not exist", shelfName)
	}
	if index < 0 || index >= len(sh.Items) {
		return fmt.Errorf("item index %d out of range", index)
	}
	sh.Items[index] = item
	return c.save()
}

// RemoveItem deletes the item at index from a shelf.
func (c *Catalogue) RemoveItem(shelfName string, index int) error {
	sh, exists := c.shelves[shelfName]
	if !exists {
		return fmt.Errorf("shelf %q does not exist", shelfName)
	}
	if index < 0 || index >= len(sh.Items) {
		return fmt.Errorf("item index %d out of range", index)
	}
	sh.Items = append(sh.Items[:index], sh.Items[index+1:]...)
	return c.save()
}

// MoveItem moves the item at from to position to on the same shelf.
// to may equal len(items) to move the item to the end.
func (c *Catalogue) MoveItem(shelfName string, from, to int) error {
	sh, exists := c.shelves[shelfName]
	if !exists {
		return fmt.Errorf("shelf %q does not exist", shelfName)
	}
	if from < 0 || from >= len(sh.Items) {
		return fmt.Errorf("item index %d out of range", from)
	}
	if to < 0 || to > len(sh.Items) {
		return fmt.Errorf("target index %d out of range", to)
	}

	item := sh.Items[from]
	sh.Items = append(sh.Items[:from], sh.Items[from+1:]...)
	if to > from {
		to--
	}
	sh.Items = append(sh.Items[:to], append([]Item{item}, sh.Items[to:]...)...)
	return c.save()
}

// TransferItem moves the item at index from one shelf to the end of another.
func (c *Catalogue) TransferItem(srcShelf string, index int, dstShelf string) error {
	src, exists := c.shelves[srcShelf]
	if !exists {
		return fmt.Errorf("shelf %q does not exist", srcShelf)
	}
	dst, exists := c.shelves[dstShelf]
	if !exists {
		return fmt.Errorf("shelf %q does not exist", dstShelf)
	}
	if index < 0 || index >= len(src.Items) {
		return fmt.Errorf("item index %d out of range", index)
	}

	item := src.Items[index]
	src.Items = append(src.Items[:index], src.Items[index+1:]...)
	dst.Items = append(dst.Items, item)
	return c.save()
}

// ReplaceItems swaps out a shelf's entire item sequence.
func (c *Catalogue) ReplaceItems(shelfName string, items []Item) error {
	sh, exists := c.shelves[shelfName]
	if !exists {
		return fmt.Errorf("shelf %q does not exist", shelfName)
	}
	sh.Items = items
	return c.save()
}

// UpdateSettings applies fn to the named shelf's settings and persists.
func (c *Catalogue) UpdateSettings(shelfName string, fn func(*Shelf)) error {
	sh, exists := c.shelves[shelfName]
	if !exists {
		return fmt.Errorf("shelf %q does not exist", shelfName)
	}
	fn(sh)
	return c.save()
}
