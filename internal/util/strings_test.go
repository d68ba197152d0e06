package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinOrNone(t *testing.T) {
	tests := []struct {
		name  string
		items []string
		want  string
	}{
		{name: "nil slice returns (none)", items: nil, want: "(none)"},
		{name: "empty slice returns (none)", items: []string{}, want: "(none)"},
		{name: "single item returns item", items: []string{"prod"}, want: "prod"},
		{name: "multiple items joined with comma", items: []string{"dev", "prod", "staging"}, want: "dev, prod, staging"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, JoinOrNone(tt.items))
		})
	}
}

func TestJoinOrDefault(t *testing.T) {
	assert.Equal(t, "N/A", JoinOrDefault(nil, "N/A"))
	assert.Equal(t, "", JoinOrDefault([]string{}, ""))
	assert.Equal(t, "a, b", JoinOrDefault([]string{"a", "b"}, "default"))
}

func TestPluralize(t *testing.T) {
	assert.Equal(t, "tasks", Pluralize(0, "task", "tasks"))
	assert.Equal(t, "task", Pluralize(1, "task", "tasks"))
	assert.Equal(t, "tasks", Pluralize(2, "task", "tasks"))
}

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"test", "tset", 2},
		{"test", "tests", 1},
		{"tests", "test", 1},
		{"test", "Test", 1},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
	}

	for _, tt := range tests {
		t.Run(tt.a+"->"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.expected, LevenshteinDistance(tt.a, tt.b))
		})
	}
}

func TestSuggestSimilar(t *testing.T) {
	candidates := []string{"deploy", "build", "test", "tests", "lint"}

	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "transposition", input: "tset", expected: []string{"test"}},
		{name: "swapped letters", input: "deplyo", expected: []string{"deploy"}},
		{name: "prefix suggests closest first", input: "tes", expected: []string{"test", "tests"}},
		{name: "no close match returns nil", input: "xyz", expected: nil},
		{name: "empty input returns nil", input: "", expected: nil},
		{name: "case insensitive exact match", input: "TEST", expected: []string{"test"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SuggestSimilar(tt.input, candidates, 2))
		})
	}
}

func TestSuggestSimilar_EmptyCandidates(t *testing.T) {
	assert.Nil(t, SuggestSimilar("test", nil, 2))
	assert.Nil(t, SuggestSimilar("test", []string{}, 2))
}
