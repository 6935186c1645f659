// Package queue defines message payloads exchanged over the message broker
// and the consumer that records them.
package queue

// ListingCreatedQueue is the durable queue listing events are published to.
const ListingCreatedQueue = "listing.created"

// Listing kinds.
const (
    KindVenue  = "venue"
    KindArtist = "artist"
    KindShow   = "show"
)

// ListingCreatedEvent is published after a venue, artist or show has been
// stored.  For shows ID is zero and VenueID/ArtistID identify the show.
type ListingCreatedEvent struct {
    Kind      string `json:"kind"`
    ID        uint64 `json:"id,omitempty"`
    Name      string `json:"name,omitempty"`
    City      string `json:"city,omitempty"`
    State     string `json:"state,omitempty"`
    VenueID   uint64 `json:"venue_id,omitempty"`
    ArtistID  uint64 `json:"artist_id,omitempty"`
    StartTime string `json:"start_time,omitempty"`
    CreatedAt string `json:"created_at"`
}
