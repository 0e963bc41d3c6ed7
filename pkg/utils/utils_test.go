package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestChunk(t *testing.T) {
	tests := []struct {
		name  string
		items []int
		size  int
		want  [][]int
	}{
		{"empty", nil, 3, nil},
		{"exact", []int{1, 2, 3, 4}, 2, [][]int{{1, 2}, {3, 4}}},
		{"remainder", []int{1, 2, 3}, 2, [][]int{{1, 2}, {3}}},
		{"invalid size", []int{1}, 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Chunk(tt.items, tt.size))
		})
	}
}

func TestEnvDuration(t *testing.T) {
	t.Setenv("TEST_DURATION", "90")
	assert.Equal(t, 90*time.Second, EnvDuration("TEST_DURATION", time.Second))

	t.Setenv("TEST_DURATION", "2m")
	assert.Equal(t, 2*time.Minute, EnvDuration("TEST_DURATION", time.Second))

	t.Setenv("TEST_DURATION", "nope")
	assert.Equal(t, time.Second, EnvDuration("TEST_DURATION", time.Second))
}

func TestEnvList(t *testing.T) {
	t.Setenv("TEST_LIST", " http://a/ , ,http://b")
	assert.Equal(t, []string{"http://a/", "http://b"}, EnvList("TEST_LIST", nil))
	assert.Equal(t, []string{"x"}, EnvList("TEST_LIST_UNSET", []string{"x"}))
}

func TestEnvUint64(t *testing.T) {
	_, ok := EnvUint64("TEST_UINT_UNSET")
	assert.False(t, ok)

	t.Setenv("TEST_UINT", "12345")
	v, ok := EnvUint64("TEST_UINT")
	assert.True(t, ok)
	assert.Equal(t, uint64(12345), v)
}

func TestUniqueAndDedup(t *testing.T) {
	in := []string{"b", "a/", "a", "b", "a/"}

	assert.Equal(t, []string{"b", "a/", "a"}, Unique(in))
	assert.Equal(t, []string{"b", "a"}, Dedup(in))
	assert.Empty(t, Unique(nil))
}
