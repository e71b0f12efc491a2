package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestSortContentVersions(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "numeric versions",
			input:    []string{"1.10.0", "1.2.0", "1.9.1"},
			expected: []string{"1.2.0", "1.9.1", "1.10.0"},
		},
		{
			name:     "prerelease before release",
			input:    []string{"2.0.0", "2.0.0rc1"},
			expected: []string{"2.0.0rc1", "2.0.0"},
		},
		{
			name:     "debian style revisions",
			input:    []string{"1.0-2", "1.0-10", "1.0-1"},
			expected: []string{"1.0-1", "1.0-2", "1.0-10"},
		},
		{
			name:     "lexicographic fallback",
			input:    []string{"snapshot-b", "snapshot-a"},
			expected: []string{"snapshot-a", "snapshot-b"},
		},
		{
			name:     "empty",
			input:    nil,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SortContentVersions(tt.input)
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Fatalf("unexpected order (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSortContentVersionsDoesNotMutateInput(t *testing.T) {
	input := []string{"2.0", "1.0"}
	_ = SortContentVersions(input)
	assert.Equal(t, []string{"2.0", "1.0"}, input)
}

func TestIntersect(t *testing.T) {
	tests := []struct {
		name     string
		a        []string
		b        []string
		expected []string
	}{
		{
			name:     "overlap keeps a's order",
			a:        []string{"1", "2", "3"},
			b:        []string{"3", "2", "4"},
			expected: []string{"2", "3"},
		},
		{
			name:     "disjoint",
			a:        []string{"1", "2"},
			b:        []string{"3", "4"},
			expected: nil,
		},
		{
			name:     "empty a",
			a:        nil,
			b:        []string{"1"},
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := intersect(tt.a, tt.b)
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Fatalf("unexpected intersection (-want +got):\n%s", diff)
			}
		})
	}
}

func TestVersionCacheCompare(t *testing.T) {
	cache := newVersionCache()
	assert.Equal(t, -1, cache.compare("1.0.0", "1.0.1"))
	assert.Equal(t, 1, cache.compare("1.0.1", "1.0.0"))
	assert.Equal(t, 0, cache.compare("1.0.0", "1.0.0"))
	// Second comparison hits the memoized parse.
	assert.Equal(t, -1, cache.compare("1.0.0", "1.0.1"))
}
