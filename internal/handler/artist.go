package handler

import (
    "errors"
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"
    "go.uber.org/zap"

    "github.com/iliyamo/fyyur/internal/model"
    "github.com/iliyamo/fyyur/internal/queue"
    "github.com/iliyamo/fyyur/internal/repository"
)

// ListArtists lists every artist ordered by name.
func (h *Handler) ListArtists(c echo.Context) error {
    ctx, cancel := h.dbContext(c)
    defer cancel()
    artists, err := h.Artists.List(ctx)
    if err != nil {
        return err
    }
    return h.render(c, http.StatusOK, "pages/artists", "Artists", nil, artists)
}

// SearchArtists lists the artists whose name contains search_term.
func (h *Handler) SearchArtists(c echo.Context) error {
    term := c.FormValue("search_term")
    ctx, cancel := h.dbContext(c)
    defer cancel()
    artists, err := h.Artists.Search(ctx, term)
    if err != nil {
        return err
    }
    return h.render(c, http.StatusOK, "pages/search_artists", "Search artists", nil, SearchView{
        SearchTerm: term,
        Count:      len(artists),
        Artists:    artists,
    })
}

// ShowArtist renders one artist with the venues of its past and upcoming
// shows.
func (h *Handler) ShowArtist(c echo.Context) error {
    id, err := parseID(c)
    if err != nil {
        return err
    }
    now := h.now()
    ctx, cancel := h.dbContext(c)
    defer cancel()

    a, err := h.Artists.GetByID(ctx, id)
    if errors.Is(err, repository.ErrArtistNotFound) {
        return echo.ErrNotFound
    }
    if err != nil {
        return err
    }
    past, upcoming, err := h.Shows.ForArtist(ctx, id, now)
    if err != nil {
        return err
    }
    return h.render(c, http.StatusOK, "pages/show_artist", a.Name, nil, model.ArtistDetail{
        Artist:        *a,
        PastShows:     past,
        UpcomingShows: upcoming,
    })
}

// NewArtistForm renders the empty artist form.
func (h *Handler) NewArtistForm(c echo.Context) error {
    return h.renderForm(c, http.StatusOK, "forms/new_artist", "New artist", nil, 0, ArtistForm{}, nil)
}

// CreateArtist validates and stores an artist, then renders the home page
// with the outcome.
func (h *Handler) CreateArtist(c echo.Context) error {
    var f ArtistForm
    if err := c.Bind(&f); err != nil {
        return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
    }
    if fe := f.Validate(); fe != nil {
        return h.renderForm(c, http.StatusUnprocessableEntity, "forms/new_artist", "New artist",
            dangerFlash("An error occurred due to form validation. Artist "+f.Name+" could not be listed."), 0, f, fe)
    }

    a := f.ToModel(0)
    ctx, cancel := h.dbContext(c)
    err := h.Artists.Create(ctx, a)
    cancel()
    if err != nil {
        h.logError(c, "create artist failed", err, zap.String("name", a.Name))
        return h.renderHome(c, http.StatusInternalServerError,
            dangerFlash("An error occurred due to database insertion error. Artist "+a.Name+" could not be listed."))
    }

    h.publish(c, queue.ListingCreatedEvent{Kind: queue.KindArtist, ID: a.ID, Name: a.Name, City: a.City, State: a.State})
    return h.renderHome(c, http.StatusOK, successFlash("Artist "+a.Name+" was successfully listed!"))
}

// EditArtistForm renders the artist form pre-filled from the stored row.
func (h *Handler) EditArtistForm(c echo.Context) error {
    id, err := parseID(c)
    if err != nil {
        return err
    }
    ctx, cancel := h.dbContext(c)
    defer cancel()
    a, err := h.Artists.GetByID(ctx, id)
    if errors.Is(err, repository.ErrArtistNotFound) {
        return echo.ErrNotFound
    }
    if err != nil {
        return err
    }
    return h.renderForm(c, http.StatusOK, "forms/edit_artist", "Edit artist", nil, id, ArtistFormFrom(a), nil)
}

// UpdateArtist overwrites every field of an artist and redirects to its
// page.
func (h *Handler) UpdateArtist(c echo.Context) error {
    id, err := parseID(c)
    if err != nil {
        return err
    }
    ctx, cancel := h.dbContext(c)
    defer cancel()
    if _, err := h.Artists.GetByID(ctx, id); errors.Is(err, repository.ErrArtistNotFound) {
        return echo.ErrNotFound
    } else if err != nil {
        return err
    }

    var f ArtistForm
    if err := c.Bind(&f); err != nil {
        return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
    }
    if fe := f.Validate(); fe != nil {
        return h.renderForm(c, http.StatusUnprocessableEntity, "forms/edit_artist", "Edit artist",
            dangerFlash("An error occurred due to form validation. Artist "+f.Name+" could not be updated."), id, f, fe)
    }
    if err := h.Artists.Update(ctx, f.ToModel(id)); errors.Is(err, repository.ErrArtistNotFound) {
        return echo.ErrNotFound
    } else if err != nil {
        return err
    }
    return c.Redirect(http.StatusSeeOther, "/artists/"+strconv.FormatUint(id, 10))
}
