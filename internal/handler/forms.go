package handler

import (
    "net/url"
    "regexp"
    "strconv"
    "strings"
    "time"

    "github.com/iliyamo/fyyur/internal/model"
)

// FieldErrors maps a form field name to its validation message.
type FieldErrors map[string]string

func (fe FieldErrors) add(field, msg string) {
    if _, ok := fe[field]; !ok {
        fe[field] = msg
    }
}

const msgRequired = "This field is required."

var phonePattern = regexp.MustCompile(`^\d{3}-\d{3}-\d{4}$`)

// showTimeLayouts are the accepted start_time formats.  Layouts without a
// zone are read as UTC.
var showTimeLayouts = []string{"2006-01-02 15:04:05", "2006-01-02T15:04", time.RFC3339}

// VenueForm is the body of the venue create and edit forms.
type VenueForm struct {
    Name         string   `form:"name"`
    City         string   `form:"city"`
    State        string   `form:"state"`
    Address      string   `form:"address"`
    Phone        string   `form:"phone"`
    ImageLink    string   `form:"image_link"`
    FacebookLink string   `form:"facebook_link"`
    Genres       []string `form:"genres"`
}

// ArtistForm is the body of the artist create and edit forms.
type ArtistForm struct {
    Name         string   `form:"name"`
    City         string   `form:"city"`
    State        string   `form:"state"`
    Phone        string   `form:"phone"`
    ImageLink    string   `form:"image_link"`
    FacebookLink string   `form:"facebook_link"`
    Genres       []string `form:"genres"`
}

// ShowForm is the body of the show create form.  Fields stay strings so
// the submitted text can be shown back on errors.
type ShowForm struct {
    ArtistID  string `form:"artist_id"`
    VenueID   string `form:"venue_id"`
    StartTime string `form:"start_time"`
}

// listing holds the fields venues and artists share.
type listing struct {
    name, city, state, phone, imageLink, facebookLink *string
    genres                                            *[]string
}

func (l listing) normalize() {
    for _, p := range []*string{l.name, l.city, l.state, l.phone, l.imageLink, l.facebookLink} {
        *p = strings.TrimSpace(*p)
    }
    *l.genres = model.NewGenres(*l.genres...)
}

func (l listing) validate(fe FieldErrors) {
    if *l.name == "" {
        fe.add("name", msgRequired)
    }
    if *l.city == "" {
        fe.add("city", msgRequired)
    }
    if *l.state == "" {
        fe.add("state", msgRequired)
    } else if s, ok := matchChoice(StateChoices, *l.state); ok {
        *l.state = s
    } else {
        fe.add("state", "Not a valid choice.")
    }
    if *l.phone != "" && !phonePattern.MatchString(*l.phone) {
        fe.add("phone", "Phone must look like xxx-xxx-xxxx.")
    }
    if *l.imageLink != "" && !validURL(*l.imageLink) {
        fe.add("image_link", "Invalid URL.")
    }
    if *l.facebookLink != "" && !validURL(*l.facebookLink) {
        fe.add("facebook_link", "Invalid URL.")
    }

    genres := *l.genres
    if len(genres) == 0 {
        fe.add("genres", msgRequired)
    }
    for i, g := range genres {
        c, ok := matchChoice(GenreChoices, g)
        if !ok {
            fe.add("genres", "'"+g+"' is not a valid choice.")
            continue
        }
        genres[i] = c
    }
    *l.genres = model.NewGenres(genres...)
}

func validURL(raw string) bool {
    u, err := url.ParseRequestURI(raw)
    if err != nil {
        return false
    }
    return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func (f *VenueForm) listing() listing {
    return listing{&f.Name, &f.City, &f.State, &f.Phone, &f.ImageLink, &f.FacebookLink, &f.Genres}
}

// Validate normalizes the form in place and reports per-field errors.  It
// returns nil when the form is valid.
func (f *VenueForm) Validate() FieldErrors {
    fe := FieldErrors{}
    l := f.listing()
    l.normalize()
    f.Address = strings.TrimSpace(f.Address)
    l.validate(fe)
    if f.Address == "" {
        fe.add("address", msgRequired)
    }
    if len(fe) == 0 {
        return nil
    }
    return fe
}

// ToModel converts a validated form into a venue with the given id.
func (f *VenueForm) ToModel(id uint64) *model.Venue {
    return &model.Venue{
        ID:           id,
        Name:         f.Name,
        City:         f.City,
        State:        f.State,
        Address:      f.Address,
        Phone:        f.Phone,
        ImageLink:    f.ImageLink,
        FacebookLink: f.FacebookLink,
        Genres:       model.NewGenres(f.Genres...),
    }
}

// VenueFormFrom pre-fills a form from a stored venue.
func VenueFormFrom(v *model.Venue) VenueForm {
    return VenueForm{
        Name:         v.Name,
        City:         v.City,
        State:        v.State,
        Address:      v.Address,
        Phone:        v.Phone,
        ImageLink:    v.ImageLink,
        FacebookLink: v.FacebookLink,
        Genres:       []string(v.Genres),
    }
}

func (f *ArtistForm) listing() listing {
    return listing{&f.Name, &f.City, &f.State, &f.Phone, &f.ImageLink, &f.FacebookLink, &f.Genres}
}

// Validate normalizes the form in place and reports per-field errors.
func (f *ArtistForm) Validate() FieldErrors {
    fe := FieldErrors{}
    l := f.listing()
    l.normalize()
    l.validate(fe)
    if len(fe) == 0 {
        return nil
    }
    return fe
}

// ToModel converts a validated form into an artist with the given id.
func (f *ArtistForm) ToModel(id uint64) *model.Artist {
    return &model.Artist{
        ID:           id,
        Name:         f.Name,
        City:         f.City,
        State:        f.State,
        Phone:        f.Phone,
        ImageLink:    f.ImageLink,
        FacebookLink: f.FacebookLink,
        Genres:       model.NewGenres(f.Genres...),
    }
}

// ArtistFormFrom pre-fills a form from a stored artist.
func ArtistFormFrom(a *model.Artist) ArtistForm {
    return ArtistForm{
        Name:         a.Name,
        City:         a.City,
        State:        a.State,
        Phone:        a.Phone,
        ImageLink:    a.ImageLink,
        FacebookLink: a.FacebookLink,
        Genres:       []string(a.Genres),
    }
}

// Validate checks the ids and the start time and returns the show they
// describe.  The show is only meaningful when the returned errors are nil.
func (f *ShowForm) Validate() (model.Show, FieldErrors) {
    fe := FieldErrors{}
    f.ArtistID = strings.TrimSpace(f.ArtistID)
    f.VenueID = strings.TrimSpace(f.VenueID)
    f.StartTime = strings.TrimSpace(f.StartTime)

    var s model.Show
    s.ArtistID = parseFormID(fe, "artist_id", f.ArtistID)
    s.VenueID = parseFormID(fe, "venue_id", f.VenueID)
    if f.StartTime == "" {
        fe.add("start_time", msgRequired)
    } else if t, ok := parseShowTime(f.StartTime); ok {
        s.StartTime = t
    } else {
        fe.add("start_time", "Not a valid datetime value.")
    }
    if len(fe) == 0 {
        return s, nil
    }
    return s, fe
}

func parseFormID(fe FieldErrors, field, raw string) uint64 {
    if raw == "" {
        fe.add(field, msgRequired)
        return 0
    }
    id, err := strconv.ParseUint(raw, 10, 64)
    if err != nil || id == 0 {
        fe.add(field, "Must be a positive whole number.")
        return 0
    }
    return id
}

func parseShowTime(raw string) (time.Time, bool) {
    for _, layout := range showTimeLayouts {
        if t, err := time.Parse(layout, raw); err == nil {
            return t.UTC(), true
        }
    }
    return time.Time{}, false
}
