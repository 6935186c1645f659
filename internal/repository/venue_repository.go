// Package repository contains data access logic separated from HTTP handlers.
// This file defines repository methods for venues: CRUD, search and the
// city/state grouping used by the venues page.
package repository

import (
	"context"      // context allows passing deadlines and cancellation signals to DB operations
	"database/sql" // sql provides generic database operations and drivers
	"errors"       // errors is used to match sentinel values
	"fmt"
	"time"

	"github.com/iliyamo/fyyur/internal/model"
)

const venueColumns = "id, name, city, state, address, phone, image_link, facebook_link, genres"

// VenueRepo encapsulates all database queries related to venues.  It
// depends on a sql.DB connection which should be configured elsewhere.
type VenueRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewVenueRepo constructs a VenueRepo with the provided DB handle.
func NewVenueRepo(db *sql.DB) *VenueRepo {
	return &VenueRepo{db: db}
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanVenue(s rowScanner, v *model.Venue) error {
	return s.Scan(&v.ID, &v.Name, &v.City, &v.State, &v.Address, &v.Phone, &v.ImageLink, &v.FacebookLink, &v.Genres)
}

// Create inserts a new venue.  On success the venue's ID field is
// populated with the auto-generated value.
func (r *VenueRepo) Create(ctx context.Context, v *model.Venue) error {
	const q = `INSERT INTO venues (name, city, state, address, phone, image_link, facebook_link, genres)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, v.Name, v.City, v.State, v.Address, v.Phone, v.ImageLink, v.FacebookLink, v.Genres)
	if err != nil {
		return fmt.Errorf("insert venue: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert venue: %w", err)
	}
	v.ID = uint64(id)
	return nil
}

// GetByID fetches a venue by its ID.  It returns ErrVenueNotFound if no
// row is found.
func (r *VenueRepo) GetByID(ctx context.Context, id uint64) (*model.Venue, error) {
	const q = "SELECT " + venueColumns + " FROM venues WHERE id = ?"
	var v model.Venue
	if err := scanVenue(r.db.QueryRowContext(ctx, q, id), &v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVenueNotFound
		}
		return nil, fmt.Errorf("get venue %d: %w", id, err)
	}
	return &v, nil
}

// Update overwrites every column of the venue identified by v.ID.  There
// is no partial update and no concurrency check: the last writer wins.
// An unchanged row is not an error; a row that no longer exists yields
// ErrVenueNotFound.
func (r *VenueRepo) Update(ctx context.Context, v *model.Venue) error {
	const q = `UPDATE venues
	           SET name = ?, city = ?, state = ?, address = ?, phone = ?, image_link = ?, facebook_link = ?, genres = ?
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, v.Name, v.City, v.State, v.Address, v.Phone, v.ImageLink, v.FacebookLink, v.Genres, v.ID)
	if err != nil {
		return fmt.Errorf("update venue %d: %w", v.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update venue %d: %w", v.ID, err)
	}
	if n == 0 {
		return ErrVenueNotFound
	}
	return nil
}

// Delete removes a venue and the shows it hosts inside one transaction.
// If the venue does not exist ErrVenueNotFound is returned and nothing is
// changed.
func (r *VenueRepo) Delete(ctx context.Context, id uint64) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	if _, err = tx.ExecContext(ctx, `DELETE FROM shows WHERE venue_id = ?`, id); err != nil {
		return fmt.Errorf("delete shows of venue %d: %w", id, err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM venues WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete venue %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		err = ErrVenueNotFound
		return err
	}
	return nil
}

// ListRecent returns the most recently created venues, newest first.
func (r *VenueRepo) ListRecent(ctx context.Context, limit int) ([]model.Venue, error) {
	const q = "SELECT " + venueColumns + " FROM venues ORDER BY id DESC LIMIT ?"
	return r.list(ctx, q, limit)
}

// Search returns the venues whose name contains term, ignoring case.  An
// empty term matches every venue.
func (r *VenueRepo) Search(ctx context.Context, term string) ([]model.Venue, error) {
	const q = "SELECT " + venueColumns + " FROM venues WHERE LOWER(name) LIKE ? ESCAPE '" + likeEscape + "' ORDER BY name, id"
	return r.list(ctx, q, containsPattern(term))
}

func (r *VenueRepo) list(ctx context.Context, q string, args ...any) ([]model.Venue, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	defer rows.Close()

	out := []model.Venue{}
	for rows.Next() {
		var v model.Venue
		if err := scanVenue(rows, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListAreas groups venues by (city, state) and counts, per venue, the
// shows starting after now.  Areas are ordered by state then city and the
// venues inside an area by name.  It is recomputed on every call.
func (r *VenueRepo) ListAreas(ctx context.Context, now time.Time) ([]model.Area, error) {
	const q = `SELECT v.city, v.state, v.id, v.name, COUNT(s.id) AS num_upcoming_shows
	           FROM venues v
	           LEFT JOIN shows s ON s.venue_id = v.id AND s.start_time > ?
	           GROUP BY v.id, v.city, v.state, v.name
	           ORDER BY v.state, v.city, v.name, v.id`
	rows, err := r.db.QueryContext(ctx, q, now.UTC())
	if err != nil {
		return nil, fmt.Errorf("list venue areas: %w", err)
	}
	defer rows.Close()

	areas := []model.Area{}
	for rows.Next() {
		var (
			city, state string
			vs          model.VenueSummary
		)
		if err := rows.Scan(&city, &state, &vs.ID, &vs.Name, &vs.NumUpcomingShows); err != nil {
			return nil, err
		}
		// Rows arrive sorted by (state, city) so a new area starts whenever the pair changes.
		if n := len(areas); n == 0 || areas[n-1].City != city || areas[n-1].State != state {
			areas = append(areas, model.Area{City: city, State: state})
		}
		last := &areas[len(areas)-1]
		last.Venues = append(last.Venues, vs)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return areas, nil
}
