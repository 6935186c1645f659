package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/fyyur/internal/config"
	"github.com/iliyamo/fyyur/internal/database"
	"github.com/iliyamo/fyyur/internal/model"
)

var testNow = time.Date(2026, 10, 14, 20, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "repo.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, database.Migrate(context.Background(), db, config.DriverSQLite))
	return db
}

func musicalHop() *model.Venue {
	return &model.Venue{
		Name:         "The Musical Hop",
		City:         "San Francisco",
		State:        "CA",
		Address:      "1015 Folsom St",
		Phone:        "123-123-1234",
		FacebookLink: "https://www.facebook.com/TheMusicalHop",
		Genres:       model.Genres{"Jazz", "Reggae"},
	}
}

func TestVenueCreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewVenueRepo(newTestDB(t))

	v := musicalHop()
	require.NoError(t, repo.Create(ctx, v))
	require.NotZero(t, v.ID)

	got, err := repo.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, v, got)
}

func TestVenueGetMissing(t *testing.T) {
	_, err := NewVenueRepo(newTestDB(t)).GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrVenueNotFound)
}

func TestVenueUpdateOverwritesAllFields(t *testing.T) {
	ctx := context.Background()
	repo := NewVenueRepo(newTestDB(t))
	v := musicalHop()
	require.NoError(t, repo.Create(ctx, v))

	updated := &model.Venue{ID: v.ID, Name: "The Dueling Pianos Bar", City: "New York", State: "NY", Address: "335 Delancey Street", Genres: model.Genres{"Classical"}}
	require.NoError(t, repo.Update(ctx, updated))
	// unchanged rewrite is fine
	require.NoError(t, repo.Update(ctx, updated))

	got, err := repo.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
	assert.Empty(t, got.Phone, "full overwrite clears fields left blank")
}

func TestUpdateMissingRow(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	venues, artists := NewVenueRepo(db), NewArtistRepo(db)

	v := musicalHop()
	v.ID = 99
	assert.ErrorIs(t, venues.Update(ctx, v), ErrVenueNotFound)
	a := &model.Artist{ID: 99, Name: "Guns N Petals", City: "San Francisco", State: "CA", Genres: model.Genres{"Rock n Roll"}}
	assert.ErrorIs(t, artists.Update(ctx, a), ErrArtistNotFound)
}

func TestVenueDelete(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	venues, artists, shows := NewVenueRepo(db), NewArtistRepo(db), NewShowRepo(db)

	v := musicalHop()
	require.NoError(t, venues.Create(ctx, v))
	a := &model.Artist{Name: "Guns N Petals", City: "San Francisco", State: "CA", Genres: model.Genres{"Rock n Roll"}}
	require.NoError(t, artists.Create(ctx, a))
	require.NoError(t, shows.Create(ctx, &model.Show{VenueID: v.ID, ArtistID: a.ID, StartTime: testNow.Add(time.Hour)}))

	require.NoError(t, venues.Delete(ctx, v.ID))
	_, err := venues.GetByID(ctx, v.ID)
	assert.ErrorIs(t, err, ErrVenueNotFound)

	all, err := shows.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all, "shows of a deleted venue are removed with it")
}

func TestVenueDeleteMissingHasNoSideEffects(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	venues, artists, shows := NewVenueRepo(db), NewArtistRepo(db), NewShowRepo(db)

	v := musicalHop()
	require.NoError(t, venues.Create(ctx, v))
	a := &model.Artist{Name: "Matt Quevedo", City: "New York", State: "NY", Genres: model.Genres{"Jazz"}}
	require.NoError(t, artists.Create(ctx, a))
	require.NoError(t, shows.Create(ctx, &model.Show{VenueID: v.ID, ArtistID: a.ID, StartTime: testNow}))

	assert.ErrorIs(t, venues.Delete(ctx, v.ID+100), ErrVenueNotFound)

	all, err := shows.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	_, err = venues.GetByID(ctx, v.ID)
	assert.NoError(t, err)
}

func TestVenueSearch(t *testing.T) {
	ctx := context.Background()
	repo := NewVenueRepo(newTestDB(t))
	for _, name := range []string{"The Musical Hop", "Park Square Live Music & Coffee", "The Dueling Pianos Bar", "100%_Club"} {
		v := musicalHop()
		v.Name = name
		require.NoError(t, repo.Create(ctx, v))
	}

	got, err := repo.Search(ctx, "Hop")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "The Musical Hop", got[0].Name)

	got, err = repo.Search(ctx, "music")
	require.NoError(t, err)
	assert.Equal(t, []string{"Park Square Live Music & Coffee", "The Musical Hop"}, venueNames(got))

	got, err = repo.Search(ctx, "%_")
	require.NoError(t, err)
	assert.Equal(t, []string{"100%_Club"}, venueNames(got), "wildcards match literally")

	got, err = repo.Search(ctx, "")
	require.NoError(t, err)
	assert.Len(t, got, 4)

	got, err = repo.Search(ctx, "nothing like this")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSearchFoldsNonASCIINames(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	venues, artists := NewVenueRepo(db), NewArtistRepo(db)

	v := musicalHop()
	v.Name = "CAFÉ ÉCLAIR"
	require.NoError(t, venues.Create(ctx, v))
	require.NoError(t, artists.Create(ctx, &model.Artist{Name: "ØYSTEIN SEVÅG", City: "Oslo", State: "NY", Genres: model.Genres{"Classical"}}))

	for _, term := range []string{"CAFÉ", "É", "éclair", "afé é"} {
		got, err := venues.Search(ctx, term)
		require.NoError(t, err)
		assert.Len(t, got, 1, term)
	}
	for _, term := range []string{"ØYSTEIN", "øystein", "sevåg"} {
		got, err := artists.Search(ctx, term)
		require.NoError(t, err)
		assert.Len(t, got, 1, term)
	}
	got, err := venues.Search(ctx, "ÉCLAIRS")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestVenueListAreas(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	venues, artists, shows := NewVenueRepo(db), NewArtistRepo(db), NewShowRepo(db)

	mk := func(name, city, state string) *model.Venue {
		v := musicalHop()
		v.Name, v.City, v.State = name, city, state
		require.NoError(t, venues.Create(ctx, v))
		return v
	}
	hop := mk("The Musical Hop", "San Francisco", "CA")
	park := mk("Park Square Live Music & Coffee", "San Francisco", "CA")
	pianos := mk("The Dueling Pianos Bar", "New York", "NY")

	a := &model.Artist{Name: "The Wild Sax Band", City: "San Francisco", State: "CA", Genres: model.Genres{"Jazz"}}
	require.NoError(t, artists.Create(ctx, a))
	for _, s := range []model.Show{
		{VenueID: hop.ID, ArtistID: a.ID, StartTime: testNow.Add(24 * time.Hour)},
		{VenueID: hop.ID, ArtistID: a.ID, StartTime: testNow.Add(48 * time.Hour)},
		{VenueID: hop.ID, ArtistID: a.ID, StartTime: testNow.Add(-24 * time.Hour)},
		{VenueID: hop.ID, ArtistID: a.ID, StartTime: testNow},
		{VenueID: park.ID, ArtistID: a.ID, StartTime: testNow.Add(-time.Hour)},
	} {
		s := s
		require.NoError(t, shows.Create(ctx, &s))
	}

	areas, err := venues.ListAreas(ctx, testNow)
	require.NoError(t, err)
	require.Len(t, areas, 2)

	assert.Equal(t, "San Francisco", areas[0].City)
	assert.Equal(t, "CA", areas[0].State)
	assert.Equal(t, []model.VenueSummary{
		{ID: park.ID, Name: "Park Square Live Music & Coffee", NumUpcomingShows: 0},
		{ID: hop.ID, Name: "The Musical Hop", NumUpcomingShows: 2},
	}, areas[0].Venues)

	assert.Equal(t, "New York", areas[1].City)
	assert.Equal(t, []model.VenueSummary{{ID: pianos.ID, Name: "The Dueling Pianos Bar"}}, areas[1].Venues)
}

func TestVenueListRecent(t *testing.T) {
	ctx := context.Background()
	repo := NewVenueRepo(newTestDB(t))
	for i := 0; i < 12; i++ {
		require.NoError(t, repo.Create(ctx, musicalHop()))
	}
	got, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 10)
	assert.Equal(t, uint64(12), got[0].ID)
	assert.Equal(t, uint64(3), got[9].ID)
}

func TestArtistCreateGetUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewArtistRepo(newTestDB(t))

	a := &model.Artist{Name: "Guns N Petals", City: "San Francisco", State: "CA", Phone: "326-123-5000",
		ImageLink: "https://images.example.com/gnp.jpg", FacebookLink: "https://www.facebook.com/GunsNPetals", Genres: model.Genres{"Rock n Roll"}}
	require.NoError(t, repo.Create(ctx, a))

	got, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a, got)

	a.Name = "Guns N Roses"
	a.Genres = model.Genres{"Rock n Roll", "Punk"}
	require.NoError(t, repo.Update(ctx, a))
	got, err = repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a, got)

	_, err = repo.GetByID(ctx, a.ID+1)
	assert.ErrorIs(t, err, ErrArtistNotFound)
}

func TestArtistListAndSearch(t *testing.T) {
	ctx := context.Background()
	repo := NewArtistRepo(newTestDB(t))
	for _, name := range []string{"The Wild Sax Band", "Guns N Petals", "Matt Quevedo"} {
		require.NoError(t, repo.Create(ctx, &model.Artist{Name: name, City: "New York", State: "NY", Genres: model.Genres{"Jazz"}}))
	}

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Guns N Petals", "Matt Quevedo", "The Wild Sax Band"}, artistNames(all))

	got, err := repo.Search(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, []string{"Guns N Petals", "Matt Quevedo", "The Wild Sax Band"}, artistNames(got))

	got, err = repo.Search(ctx, "band")
	require.NoError(t, err)
	assert.Equal(t, []string{"The Wild Sax Band"}, artistNames(got))

	recent, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Matt Quevedo", "Guns N Petals"}, artistNames(recent))
}

func TestShowsSplitAtNow(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	venues, artists, shows := NewVenueRepo(db), NewArtistRepo(db), NewShowRepo(db)

	v := musicalHop()
	require.NoError(t, venues.Create(ctx, v))
	a := &model.Artist{Name: "Guns N Petals", City: "San Francisco", State: "CA", ImageLink: "https://img/gnp.jpg", Genres: model.Genres{"Rock n Roll"}}
	require.NoError(t, artists.Create(ctx, a))

	future := testNow.Add(72 * time.Hour)
	past := testNow.Add(-72 * time.Hour)
	for _, at := range []time.Time{future, past, testNow} {
		require.NoError(t, shows.Create(ctx, &model.Show{VenueID: v.ID, ArtistID: a.ID, StartTime: at}))
	}

	vPast, vUpcoming, err := shows.ForVenue(ctx, v.ID, testNow)
	require.NoError(t, err)
	require.Len(t, vUpcoming, 1)
	assert.True(t, future.Equal(vUpcoming[0].StartTime))
	assert.Equal(t, "Guns N Petals", vUpcoming[0].ArtistName)
	assert.Equal(t, "https://img/gnp.jpg", vUpcoming[0].ArtistImageLink)
	require.Len(t, vPast, 2, "a show starting exactly now is past")
	assert.True(t, past.Equal(vPast[0].StartTime))
	assert.True(t, testNow.Equal(vPast[1].StartTime))

	aPast, aUpcoming, err := shows.ForArtist(ctx, a.ID, testNow)
	require.NoError(t, err)
	assert.Len(t, aPast, 2)
	require.Len(t, aUpcoming, 1)
	assert.Equal(t, v.ID, aUpcoming[0].VenueID)
	assert.Equal(t, "The Musical Hop", aUpcoming[0].VenueName)

	areas, err := venues.ListAreas(ctx, testNow)
	require.NoError(t, err)
	assert.Equal(t, 1, areas[0].Venues[0].NumUpcomingShows, "listing count uses the same boundary")

	listed, err := shows.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.True(t, past.Equal(listed[0].StartTime))
	assert.Equal(t, "The Musical Hop", listed[0].VenueName)
	assert.Equal(t, "Guns N Petals", listed[0].ArtistName)
}

func TestShowCreateRequiresExistingRows(t *testing.T) {
	err := NewShowRepo(newTestDB(t)).Create(context.Background(), &model.Show{VenueID: 1, ArtistID: 2, StartTime: testNow})
	assert.Error(t, err)
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%hop%", containsPattern("Hop"))
	assert.Equal(t, "%!%!_!!%", containsPattern("%_!"))
	assert.Equal(t, "%%", containsPattern(""))
}

func venueNames(vs []model.Venue) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.Name)
	}
	return out
}

func artistNames(as []model.Artist) []string {
	out := make([]string, 0, len(as))
	for _, a := range as {
		out = append(out, a.Name)
	}
	return out
}
