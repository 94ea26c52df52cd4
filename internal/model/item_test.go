package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		tag     string
		want    Category
		wantErr bool
	}{
		{"Fruit", Fruit, false},
		{"Vegetable", Vegetable, false},
		{" Fruit ", Fruit, false},
		{"fruit", categoryInvalid, true},
		{"Meat", categoryInvalid, true},
		{"", categoryInvalid, true},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			got, err := ParseCategory(tt.tag)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBucketFor(t *testing.T) {
	b, err := BucketFor(Fruit)
	require.NoError(t, err)
	assert.Equal(t, Fruits, b)

	b, err = BucketFor(Vegetable)
	require.NoError(t, err)
	assert.Equal(t, Vegetables, b)

	_, err = BucketFor(Category(42))
	assert.Error(t, err)
}

func TestItemDecodeSeedShape(t *testing.T) {
	var items []Item
	require.NoError(t, json.Unmarshal([]byte(`[{"type":"Fruit","name":"Apple"},{"type":"Meat","name":"Ham"}]`), &items))
	require.Len(t, items, 2)
	assert.Equal(t, Fruit, items[0].Category)
	assert.False(t, items[1].Category.Valid(), "unknown tags decode to an invalid category")

	var fromYAML []Item
	require.NoError(t, yaml.Unmarshal([]byte("- type: Vegetable\n  name: Carrot\n"), &fromYAML))
	assert.Equal(t, []Item{{Name: "Carrot", Category: Vegetable}}, fromYAML)
}

func TestSnapshotFind(t *testing.T) {
	s := Snapshot{
		Main:   []Item{{Name: "Carrot", Category: Vegetable}},
		Fruits: []Item{{Name: "Apple", Category: Fruit, TTL: 2}},
	}
	it, where, ok := s.Find("Apple")
	require.True(t, ok)
	assert.Equal(t, "fruits", where)
	assert.Equal(t, 2, it.TTL)
	assert.Equal(t, "Apple(ttl=2)", it.String())

	_, _, ok = s.Find("Banana")
	assert.False(t, ok)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 1, s.Bucketed())
	assert.Equal(t, []string{"Carrot"}, Names(s.Main))
}
