package shelf

import "encoding/json"

// Shelf is a named, ordered collection of buttons and separators plus its
// display settings. The name is the key in the catalogue, not part of the
// serialized value.
type Shelf struct {
	Name string `json:"-"`

	Layout               string     `json:"layout"`
	Alignment            string     `json:"alignment"`
	IconSize             int        `json:"icon_size"`
	BgColor              [3]float64 `json:"bg_color"`
	ActiveHighlightColor [3]float64 `json:"active_highlight_color"`
	HideHighlight        bool       `json:"hide_highlight"`

	Items []Item `json:"-"`
}

// DefaultShelf returns an empty shelf with the standard display settings.
func DefaultShelf(name string) *Shelf {
	return &Shelf{
		Name:                 name,
		Layout:               "horizontal",
		Alignment:            "left",
		IconSize:             55,
		BgColor:              [3]float64{0.22, 0.22, 0.22},
		ActiveHighlightColor: [3]float64{0.3, 0.5, 0.7},
	}
}

// Buttons returns the shelf's buttons, skipping separators.
func (s *Shelf) Buttons() []*Button {
	var btns []*Button
	for _, it := range s.Items {
		if b, ok := it.(*Button); ok {
			btns = append(btns, b)
		}
	}
	return btns
}

func (s *Shelf) MarshalJSON() ([]byte, error) {
	type shelfAlias Shelf
	items, err := MarshalItems(s.Items)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		*shelfAlias
		Items json.RawMessage `json:"items"`
	}{shelfAlias: (*shelfAlias)(s), Items: items})
}

func (s *Shelf) UnmarshalJSON(data []byte) error {
	type shelfAlias Shelf
	aux := struct {
		*shelfAlias
		Items json.RawMessage `json:"items"`
	}{shelfAlias: (*shelfAlias)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	items, err := UnmarshalItems(aux.Items)
	if err != nil {
		return err
	}
	s.Items = items
	return nil
}
