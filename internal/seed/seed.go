// Package seed loads the static item list the store starts from.
// The built-in list is embedded; a JSON or YAML file can replace it.
package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	serrors "github.com/idilsaglam/sorter/internal/errors"
	"github.com/idilsaglam/sorter/internal/model"
)

//go:embed data.json
var defaultData []byte

// entry is the on-disk shape. Type stays a string so unknown tags can be
// reported by name.
type entry struct {
	Type string `json:"type" yaml:"type"`
	Name string `json:"name" yaml:"name"`
}

// Default returns the built-in seed list.
func Default() []model.Item {
	items, err := decode("builtin", defaultData, json.Unmarshal)
	if err != nil {
		panic(fmt.Sprintf("embedded seed is invalid: %v", err))
	}
	return items
}

// Load reads a seed list from path. The format is picked by extension:
// .yaml and .yml are YAML, anything else is JSON. An empty path returns
// the built-in list.
func Load(path string) ([]model.Item, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, serrors.SeedReadError(path, err)
	}
	unmarshal := json.Unmarshal
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		unmarshal = yaml.Unmarshal
	}
	return decode(path, b, unmarshal)
}

func decode(source string, b []byte, unmarshal func([]byte, any) error) ([]model.Item, error) {
	var entries []entry
	if err := unmarshal(b, &entries); err != nil {
		return nil, serrors.SeedReadError(source, err)
	}
	items := make([]model.Item, 0, len(entries))
	var problems []string
	for _, e := range entries {
		cat, err := model.ParseCategory(e.Type)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%q has unsupported type %q", e.Name, e.Type))
			continue
		}
		items = append(items, model.Item{Name: strings.TrimSpace(e.Name), Category: cat})
	}
	problems = append(problems, Validate(items)...)
	if len(problems) > 0 {
		return nil, serrors.SeedInvalid(source, problems)
	}
	return items, nil
}

// Validate returns a description of every empty or duplicate name in items.
func Validate(items []model.Item) []string {
	var problems []string
	seen := make(map[string]bool, len(items))
	for i, it := range items {
		if it.Name == "" {
			problems = append(problems, fmt.Sprintf("entry %d has no name", i+1))
			continue
		}
		if seen[it.Name] {
			problems = append(problems, fmt.Sprintf("duplicate name %q", it.Name))
		}
		seen[it.Name] = true
	}
	return problems
}

// MarshalYAML renders items in the seed file shape.
func MarshalYAML(items []model.Item) ([]byte, error) {
	return yaml.Marshal(toEntries(items))
}

// MarshalJSON renders items in the seed file shape.
func MarshalJSON(items []model.Item) ([]byte, error) {
	return json.MarshalIndent(toEntries(items), "", "  ")
}

func toEntries(items []model.Item) []entry {
	out := make([]entry, len(items))
	for i, it := range items {
		out[i] = entry{Type: it.Category.String(), Name: it.Name}
	}
	return out
}
