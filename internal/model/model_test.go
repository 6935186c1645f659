package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGenresDedupes(t *testing.T) {
	g := NewGenres("Jazz", " Reggae ", "", "Jazz")
	assert.Equal(t, Genres{"Jazz", "Reggae"}, g)
	assert.True(t, g.Contains("Reggae"))
	assert.False(t, g.Contains("Rock n Roll"))
	assert.Equal(t, "Jazz, Reggae", g.String())
}

func TestGenresValueAndScan(t *testing.T) {
	v, err := Genres{"Jazz", "Hip-Hop"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["Jazz","Hip-Hop"]`, v)

	var fromString Genres
	require.NoError(t, fromString.Scan(v))
	assert.Equal(t, Genres{"Jazz", "Hip-Hop"}, fromString)

	var fromBytes Genres
	require.NoError(t, fromBytes.Scan([]byte(`["Folk"]`)))
	assert.Equal(t, Genres{"Folk"}, fromBytes)

	var empty Genres
	require.NoError(t, empty.Scan(nil))
	assert.Empty(t, empty)

	nilValue, err := Genres(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", nilValue)

	var bad Genres
	assert.Error(t, bad.Scan(42))
	assert.Error(t, bad.Scan("not json"))
}

func TestIsUpcomingBoundary(t *testing.T) {
	now := time.Date(2026, 10, 14, 20, 0, 0, 0, time.UTC)
	assert.True(t, IsUpcoming(now.Add(time.Second), now))
	assert.False(t, IsUpcoming(now, now), "a show starting now is past")
	assert.False(t, IsUpcoming(now.Add(-time.Hour), now))
}

func TestDetailCounts(t *testing.T) {
	d := VenueDetail{PastShows: make([]ArtistAppearance, 2), UpcomingShows: make([]ArtistAppearance, 1)}
	assert.Equal(t, 2, d.PastShowsCount())
	assert.Equal(t, 1, d.UpcomingShowsCount())
}
