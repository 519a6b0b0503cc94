package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hammamikhairi/craftbox/internal/logger"
)

func TestSuggest(t *testing.T) {
	src := NewMemorySource(logger.New(logger.LevelOff, nil))

	tests := []struct {
		query string
		want  []string
	}{
		{"Axe", []string{"Axe"}},
		{"axe", []string{"Axe"}},
		{"  basic   hat ", []string{"Basic Hat"}},
		{"pickax", []string{"Pickaxe"}},
		{"Basic Hatt", []string{"Basic Hat"}},
		{"dol", []string{"Doll"}},
		{"zzzzzz", []string{}},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, src.Suggest(tt.query, 3))
		})
	}
}

func TestLookup(t *testing.T) {
	src := NewMemorySource(logger.New(logger.LevelOff, nil))

	name, ok := src.Lookup("basic hat")
	assert.True(t, ok)
	assert.Equal(t, "Basic Hat", name)

	_, ok = src.Lookup("nothing like it")
	assert.False(t, ok)
}
