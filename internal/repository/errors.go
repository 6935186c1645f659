// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish a missing row from a failed query.
package repository

import (
	"errors"
	"strings"
)

// ErrVenueNotFound is returned when no venue has the requested id.
var ErrVenueNotFound = errors.New("venue not found")

// ErrArtistNotFound is returned when no artist has the requested id.
var ErrArtistNotFound = errors.New("artist not found")

// likeEscape is the ESCAPE character used in substring searches.  A
// backslash would need different quoting in MySQL and SQLite.
const likeEscape = "!"

// containsPattern turns a search term into a LIKE pattern matching any
// value that contains it.  The term is lower-cased and its wildcard
// characters are escaped so they match literally.
func containsPattern(term string) string {
	r := strings.NewReplacer(likeEscape, likeEscape+likeEscape, "%", likeEscape+"%", "_", likeEscape+"_")
	return "%" + r.Replace(strings.ToLower(term)) + "%"
}
