package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEpisodeIDFromURL(t *testing.T) {
	tests := []struct {
		ref    string
		wantID string
		wantOK bool
	}{
		{"https://x/episode/9", "9", true},
		{"https://rickandmortyapi.com/api/episode/51", "51", true},
		{"https://rickandmortyapi.com/api/episode/51/", "51", true},
		{"https://x/episode/", "", false},
		{"https://x/episode/abc", "", false},
		{"https://x/location/3", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		id, ok := EpisodeIDFromURL(tt.ref)
		assert.Equal(t, tt.wantOK, ok, tt.ref)
		assert.Equal(t, tt.wantID, id, tt.ref)
	}
}

func TestResourceIDFromURL(t *testing.T) {
	kind, id, ok := ResourceIDFromURL("https://rickandmortyapi.com/api/location/20")
	assert.True(t, ok)
	assert.Equal(t, "location", kind)
	assert.Equal(t, "20", id)

	_, _, ok = ResourceIDFromURL("")
	assert.False(t, ok)
}

func TestResourceURL(t *testing.T) {
	assert.Equal(t, "https://rickandmortyapi.com/api/origin/1", ResourceURL("https://rickandmortyapi.com/api/", "origin", "1"))
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0))
	assert.Equal(t, 1, TotalPages(1))
	assert.Equal(t, 1, TotalPages(20))
	assert.Equal(t, 2, TotalPages(21))
	assert.Equal(t, 42, TotalPages(826))
}
