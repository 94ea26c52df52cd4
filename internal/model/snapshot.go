package model

import "fmt"

// Bucket is one of the two destination lists.
type Bucket int

const (
	Fruits Bucket = iota + 1
	Vegetables
)

func (b Bucket) String() string {
	switch b {
	case Fruits:
		return "fruits"
	case Vegetables:
		return "vegetables"
	}
	return fmt.Sprintf("Bucket(%d)", int(b))
}

// BucketFor is the exhaustive category table: Fruit -> fruits,
// Vegetable -> vegetables. Anything else is an error.
func BucketFor(c Category) (Bucket, error) {
	switch c {
	case Fruit:
		return Fruits, nil
	case Vegetable:
		return Vegetables, nil
	}
	return 0, fmt.Errorf("no bucket for category %v", c)
}

// Snapshot is a point-in-time copy of the three lists. Callers own the
// slices; mutating them does not affect the store. Seq increases with every
// intent, so observers can drop snapshots that arrive out of order.
type Snapshot struct {
	Seq        uint64 `json:"seq" yaml:"seq"`
	Main       []Item `json:"main" yaml:"main"`
	Fruits     []Item `json:"fruits" yaml:"fruits"`
	Vegetables []Item `json:"vegetables" yaml:"vegetables"`
}

// Bucket returns the slice for b.
func (s Snapshot) Bucket(b Bucket) []Item {
	switch b {
	case Fruits:
		return s.Fruits
	case Vegetables:
		return s.Vegetables
	}
	return nil
}

// Len is the total number of items across all lists.
func (s Snapshot) Len() int { return len(s.Main) + len(s.Fruits) + len(s.Vegetables) }

// Bucketed is the number of items in fruits and vegetables.
func (s Snapshot) Bucketed() int { return len(s.Fruits) + len(s.Vegetables) }

// Find looks an item up by name and reports which list holds it
// ("main", "fruits" or "vegetables").
func (s Snapshot) Find(name string) (Item, string, bool) {
	for _, l := range []struct {
		name  string
		items []Item
	}{
		{"main", s.Main},
		{Fruits.String(), s.Fruits},
		{Vegetables.String(), s.Vegetables},
	} {
		for _, it := range l.items {
			if it.Name == name {
				return it, l.name, true
			}
		}
	}
	return Item{}, "", false
}

// Names returns the item names of a list in order.
func Names(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}
