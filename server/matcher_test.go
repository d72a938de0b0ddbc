package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchPathPatternWithParams(t *testing.T) {
	tests := []struct {
		name           string
		pattern        string
		path           string
		expectMatch    bool
		expectedParams map[string]string
	}{
		{
			name:           "exact match without params",
			pattern:        "/orders",
			path:           "/orders",
			expectMatch:    true,
			expectedParams: map[string]string{},
		},
		{
			name:           "single parameter",
			pattern:        "/orders/{id}",
			path:           "/orders/abc-123",
			expectMatch:    true,
			expectedParams: map[string]string{"id": "abc-123"},
		},
		{
			name:           "parameter followed by a literal segment",
			pattern:        "/inventory/order/{id}/items",
			path:           "/inventory/order/42/items",
			expectMatch:    true,
			expectedParams: map[string]string{"id": "42"},
		},
		{
			name:        "segment count mismatch",
			pattern:     "/orders/{id}",
			path:        "/orders/1/items",
			expectMatch: false,
		},
		{
			name:        "literal mismatch",
			pattern:     "/orders/{id}",
			path:        "/users/1",
			expectMatch: false,
		},
		{
			name:        "no trailing slash tolerance",
			pattern:     "/orders",
			path:        "/orders/",
			expectMatch: false,
		},
		{
			name:           "parameter in the middle",
			pattern:        "/users/{name}/posts",
			path:           "/users/jane/posts",
			expectMatch:    true,
			expectedParams: map[string]string{"name": "jane"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := matchPathPatternWithParams(tt.pattern, tt.path)
			assert.Equal(t, tt.expectMatch, result.Matches)
			if tt.expectMatch {
				assert.Equal(t, tt.expectedParams, result.PathParams)
			}
		})
	}
}

func TestExtractPathParameters(t *testing.T) {
	params := extractPathParameters("/orders/{id}/items/{sku}", "/orders/9/items/widget")
	assert.Equal(t, map[string]string{"id": "9", "sku": "widget"}, params)

	// Shape mismatch yields no bindings
	params = extractPathParameters("/orders/{id}", "/orders")
	assert.Empty(t, params)
}
