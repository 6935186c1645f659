package model

// Venue represents a location that can host shows.  This struct
// corresponds to a row in the `venues` table.
//
// Fields:
//  ID           – primary key identifier, assigned by the database.
//  Name         – display name of the venue.
//  City, State  – location; venues are grouped by this pair.
//  Address      – street address.
//  Phone        – contact phone (may be empty).
//  ImageLink    – URL of a picture (may be empty).
//  FacebookLink – URL of the facebook page (may be empty).
//  Genres       – set of genres played at the venue.
type Venue struct {
    ID           uint64 // venues.id
    Name         string // venues.name
    City         string // venues.city
    State        string // venues.state
    Address      string // venues.address
    Phone        string // venues.phone
    ImageLink    string // venues.image_link
    FacebookLink string // venues.facebook_link
    Genres       Genres // venues.genres (JSON array)
}

// VenueSummary is a venue as listed inside an Area, with the number of
// shows still to come.
type VenueSummary struct {
    ID               uint64
    Name             string
    NumUpcomingShows int
}

// Area groups the venues sharing a (city, state) pair.
type Area struct {
    City   string
    State  string
    Venues []VenueSummary
}

// VenueDetail is a venue with its shows split at the current time.
type VenueDetail struct {
    Venue
    PastShows     []ArtistAppearance
    UpcomingShows []ArtistAppearance
}

func (d VenueDetail) PastShowsCount() int     { return len(d.PastShows) }
func (d VenueDetail) UpcomingShowsCount() int { return len(d.UpcomingShows) }
