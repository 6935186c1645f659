// Package repository contains data access logic for Show domain operations.
// A Show joins one venue and one artist at a start time.  Shows are only
// ever inserted and read; past/upcoming is decided at read time.
package repository

import (
	"context"      // context for controlling query lifetime
	"database/sql" // sql provides DB abstraction
	"fmt"
	"time"

	"github.com/iliyamo/fyyur/internal/model"
)

// ShowRepo manages persistence for shows.
type ShowRepo struct {
	db *sql.DB
}

// NewShowRepo constructs a ShowRepo with the given DB handle.
func NewShowRepo(db *sql.DB) *ShowRepo {
	return &ShowRepo{db: db}
}

// Create inserts a new show.  The venue and artist must exist; the
// database rejects the row otherwise.
func (r *ShowRepo) Create(ctx context.Context, s *model.Show) error {
	const q = `INSERT INTO shows (venue_id, artist_id, start_time) VALUES (?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, q, s.VenueID, s.ArtistID, s.StartTime.UTC()); err != nil {
		return fmt.Errorf("insert show: %w", err)
	}
	return nil
}

// List returns every show with its venue and artist display fields,
// ordered by start time.
func (r *ShowRepo) List(ctx context.Context) ([]model.ShowListing, error) {
	const q = `SELECT v.id, v.name, a.id, a.name, a.image_link, s.start_time
	           FROM shows s
	           JOIN venues v  ON v.id = s.venue_id
	           JOIN artists a ON a.id = s.artist_id
	           ORDER BY s.start_time, s.id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list shows: %w", err)
	}
	defer rows.Close()

	out := []model.ShowListing{}
	for rows.Next() {
		var l model.ShowListing
		if err := rows.Scan(&l.VenueID, &l.VenueName, &l.ArtistID, &l.ArtistName, &l.ArtistImageLink, &l.StartTime); err != nil {
			return nil, err
		}
		l.StartTime = l.StartTime.UTC()
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ForVenue returns the shows hosted by a venue split into past and
// upcoming at now (see model.IsUpcoming).
func (r *ShowRepo) ForVenue(ctx context.Context, venueID uint64, now time.Time) (past, upcoming []model.ArtistAppearance, err error) {
	const q = `SELECT a.id, a.name, a.image_link, s.start_time
	           FROM shows s
	           JOIN artists a ON a.id = s.artist_id
	           WHERE s.venue_id = ?
	           ORDER BY s.start_time, s.id`
	rows, err := r.db.QueryContext(ctx, q, venueID)
	if err != nil {
		return nil, nil, fmt.Errorf("list shows of venue %d: %w", venueID, err)
	}
	defer rows.Close()

	past, upcoming = []model.ArtistAppearance{}, []model.ArtistAppearance{}
	for rows.Next() {
		var ap model.ArtistAppearance
		if err := rows.Scan(&ap.ArtistID, &ap.ArtistName, &ap.ArtistImageLink, &ap.StartTime); err != nil {
			return nil, nil, err
		}
		ap.StartTime = ap.StartTime.UTC()
		if model.IsUpcoming(ap.StartTime, now) {
			upcoming = append(upcoming, ap)
		} else {
			past = append(past, ap)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return past, upcoming, nil
}

// ForArtist returns the shows an artist plays split into past and upcoming
// at now.
func (r *ShowRepo) ForArtist(ctx context.Context, artistID uint64, now time.Time) (past, upcoming []model.VenueAppearance, err error) {
	const q = `SELECT v.id, v.name, v.image_link, s.start_time
	           FROM shows s
	           JOIN venues v ON v.id = s.venue_id
	           WHERE s.artist_id = ?
	           ORDER BY s.start_time, s.id`
	rows, err := r.db.QueryContext(ctx, q, artistID)
	if err != nil {
		return nil, nil, fmt.Errorf("list shows of artist %d: %w", artistID, err)
	}
	defer rows.Close()

	past, upcoming = []model.VenueAppearance{}, []model.VenueAppearance{}
	for rows.Next() {
		var ap model.VenueAppearance
		if err := rows.Scan(&ap.VenueID, &ap.VenueName, &ap.VenueImageLink, &ap.StartTime); err != nil {
			return nil, nil, err
		}
		ap.StartTime = ap.StartTime.UTC()
		if model.IsUpcoming(ap.StartTime, now) {
			upcoming = append(upcoming, ap)
		} else {
			past = append(past, ap)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return past, upcoming, nil
}
