package model

// Artist represents a performer that can appear in shows.  It mirrors a
// row in the `artists` table and has the same shape as Venue minus the
// street address.
type Artist struct {
    ID           uint64 // artists.id
    Name         string // artists.name
    City         string // artists.city
    State        string // artists.state
    Phone        string // artists.phone
    ImageLink    string // artists.image_link
    FacebookLink string // artists.facebook_link
    Genres       Genres // artists.genres (JSON array)
}

// ArtistDetail is an artist with its shows split at the current time.
type ArtistDetail struct {
    Artist
    PastShows     []VenueAppearance
    UpcomingShows []VenueAppearance
}

func (d ArtistDetail) PastShowsCount() int     { return len(d.PastShows) }
func (d ArtistDetail) UpcomingShowsCount() int { return len(d.UpcomingShows) }
