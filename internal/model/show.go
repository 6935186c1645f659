package model

import "time"

// Show is a scheduled appearance of one artist at one venue.  It has no
// identity of its own beyond the (venue, artist, start time) triple and is
// never updated once created.
//
// Fields:
//  VenueID   – venue hosting the show (must exist).
//  ArtistID  – artist performing (must exist).
//  StartTime – when the show begins, stored in UTC.
type Show struct {
    VenueID   uint64    // shows.venue_id
    ArtistID  uint64    // shows.artist_id
    StartTime time.Time // shows.start_time
}

// IsUpcoming reports whether a show starting at start is still to come at
// now.  A show starting exactly at now counts as past.
func IsUpcoming(start, now time.Time) bool {
    return start.After(now)
}

// ShowListing is a show joined with the display fields of its venue and
// artist, as shown on the shows page.
type ShowListing struct {
    VenueID         uint64
    VenueName       string
    ArtistID        uint64
    ArtistName      string
    ArtistImageLink string
    StartTime       time.Time
}

// ArtistAppearance is a show seen from a venue page.
type ArtistAppearance struct {
    ArtistID        uint64
    ArtistName      string
    ArtistImageLink string
    StartTime       time.Time
}

// VenueAppearance is a show seen from an artist page.
type VenueAppearance struct {
    VenueID        uint64
    VenueName      string
    VenueImageLink string
    StartTime      time.Time
}
