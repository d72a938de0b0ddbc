package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubstituteWholeStringKeepsType(t *testing.T) {
	resolver := func(placeholder string) (interface{}, bool) {
		switch placeholder {
		case "list":
			return []interface{}{"a", "b"}, true
		case "num":
			return 42, true
		case "obj":
			return map[string]interface{}{"k": "v"}, true
		}
		return nil, false
	}

	assert.Equal(t, []interface{}{"a", "b"}, SubstitutePlaceholders("{list}", resolver))
	assert.Equal(t, 42, SubstitutePlaceholders("{num}", resolver))
	assert.Equal(t, map[string]interface{}{"k": "v"}, SubstitutePlaceholders("{obj}", resolver))
}

func TestSubstituteEmbedded(t *testing.T) {
	resolver := func(placeholder string) (interface{}, bool) {
		switch placeholder {
		case "name":
			return "World", true
		case "count":
			return 3, true
		}
		return nil, false
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "string replacement uses raw text",
			input:    "Hello {name}!",
			expected: "Hello World!",
		},
		{
			name:     "non-string replacement serializes as JSON",
			input:    "count={count}",
			expected: "count=3",
		},
		{
			name:     "multiple placeholders",
			input:    "{name} x{count}",
			expected: "World x3",
		},
		{
			name:     "declined placeholder passes through",
			input:    "keep {unknown} here, {name}",
			expected: "keep {unknown} here, World",
		},
		{
			name:     "unmatched brace terminates scan",
			input:    "broken {name",
			expected: "broken {name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SubstitutePlaceholders(tt.input, resolver))
		})
	}
}

func TestSubstituteDeclinedWholeStringUnchanged(t *testing.T) {
	decline := func(string) (interface{}, bool) { return nil, false }

	input := "{objects.missing}"
	result := SubstitutePlaceholders(input, decline)
	assert.Equal(t, input, result)
}

func TestSubstituteWalksTree(t *testing.T) {
	resolver := func(placeholder string) (interface{}, bool) {
		if placeholder == "id" {
			return "xyz", true
		}
		return nil, false
	}

	input := map[string]interface{}{
		"id":     "{id}",
		"nested": map[string]interface{}{"label": "id is {id}"},
		"items":  []interface{}{"{id}", 7, true},
	}

	expected := map[string]interface{}{
		"id":     "xyz",
		"nested": map[string]interface{}{"label": "id is xyz"},
		"items":  []interface{}{"xyz", 7, true},
	}

	assert.Equal(t, expected, SubstitutePlaceholders(input, resolver))
}

func TestSubstituteLeavesNonStringsAlone(t *testing.T) {
	resolver := func(string) (interface{}, bool) { return "never", true }

	assert.Equal(t, 10, SubstitutePlaceholders(10, resolver))
	assert.Equal(t, true, SubstitutePlaceholders(true, resolver))
	assert.Nil(t, SubstitutePlaceholders(nil, resolver))
}
