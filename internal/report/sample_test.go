package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func seed(v uint32) *uint32 {
	return &v
}

func TestSelect(t *testing.T) {
	files := []string{"a", "b", "c", "d", "e"}

	tests := []struct {
		name     string
		all      bool
		sample   int
		seed     *uint32
		expected []string
	}{
		{"all ignores sample", true, 2, seed(42), files},
		{"discovery order without seed", false, 3, nil, []string{"a", "b", "c"}},
		{"sample larger than input", false, 200, nil, files},
		{"zero sample", false, 0, nil, []string{}},
		{"seeded shuffle", false, 3, seed(42), []string{"c", "d", "e"}},
		{"seeded shuffle keeps every file", false, 200, seed(42), []string{"c", "d", "e", "a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Select(files, tt.all, tt.sample, tt.seed))
		})
	}
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, files)
}

func TestSelectIsDeterministic(t *testing.T) {
	var files []string
	for i := 0; i < 100; i++ {
		files = append(files, string(rune('A'+i%26))+string(rune('a'+i/26)))
	}
	first := Select(files, false, 10, seed(42))
	second := Select(files, false, 10, seed(42))
	assert.Equal(t, first, second)
	assert.Len(t, first, 10)
	assert.Subset(t, files, first)
	assert.NotEqual(t, files[:10], first)
	assert.NotEqual(t, first, Select(files, false, 10, seed(7)))

	assert.Equal(t, files[:10], Select(files, false, 10, nil))
}
