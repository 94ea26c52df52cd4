package model

import (
	"fmt"
	"strings"
)

// Category is the item-type tag that decides which bucket an item goes to.
// Only Fruit and Vegetable are valid; the zero value is not a category.
type Category int

const (
	categoryInvalid Category = iota
	Fruit
	Vegetable
)

func (c Category) String() string {
	switch c {
	case Fruit:
		return "Fruit"
	case Vegetable:
		return "Vegetable"
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool { return c == Fruit || c == Vegetable }

// ParseCategory maps a seed tag to a Category. Matching is exact, the
// seed format only ever uses "Fruit" and "Vegetable".
func ParseCategory(tag string) (Category, error) {
	switch strings.TrimSpace(tag) {
	case "Fruit":
		return Fruit, nil
	case "Vegetable":
		return Vegetable, nil
	}
	return categoryInvalid, fmt.Errorf("unsupported category %q", tag)
}

// MarshalText encodes the category as "Fruit" or "Vegetable".
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("unsupported category %v", c)
	}
	return []byte(c.String()), nil
}

// UnmarshalText keeps unknown tags as an invalid category instead of
// failing, so callers can report the offending item by name.
func (c *Category) UnmarshalText(b []byte) error {
	parsed, err := ParseCategory(string(b))
	if err != nil {
		*c = categoryInvalid
		return nil
	}
	*c = parsed
	return nil
}

// Item is a single grocery entry. Identity is by Name.
// TTL counts the ticks left before a bucketed item returns to main;
// zero means the item is not bucketed.
type Item struct {
	Name     string   `json:"name" yaml:"name"`
	Category Category `json:"type" yaml:"type"`
	TTL      int      `json:"ttl,omitempty" yaml:"ttl,omitempty"`
}

// Bucketed reports whether the item carries a TTL.
func (i Item) Bucketed() bool { return i.TTL > 0 }

func (i Item) String() string {
	if i.TTL > 0 {
		return fmt.Sprintf("%s(ttl=%d)", i.Name, i.TTL)
	}
	return i.Name
}
