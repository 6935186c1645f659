package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Genres is a set of genre names kept in submission order.  It is stored
// as a JSON array in a text column.
type Genres []string

// NewGenres drops blanks and duplicates while keeping the first occurrence
// of each name.
func NewGenres(names ...string) Genres {
	seen := make(map[string]bool, len(names))
	out := make(Genres, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// Contains reports whether name is in the set.
func (g Genres) Contains(name string) bool {
	for _, n := range g {
		if n == name {
			return true
		}
	}
	return false
}

func (g Genres) String() string { return strings.Join(g, ", ") }

// Value implements driver.Valuer.
func (g Genres) Value() (driver.Value, error) {
	if g == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(g))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.  MySQL hands back []byte, SQLite a string.
func (g *Genres) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*g = Genres{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("genres: unsupported source type %T", src)
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		*g = Genres{}
		return nil
	}
	var names []string
	if err := json.Unmarshal(raw, &names); err != nil {
		return fmt.Errorf("genres: %w", err)
	}
	*g = Genres(names)
	return nil
}
