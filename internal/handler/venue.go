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

// ListVenues lists every venue grouped by city and state with its number of
// upcoming shows.
func (h *Handler) ListVenues(c echo.Context) error {
    ctx, cancel := h.dbContext(c)
    defer cancel()
    areas, err := h.Venues.ListAreas(ctx, h.now())
    if err != nil {
        return err
    }
    return h.render(c, http.StatusOK, "pages/venues", "Venues", nil, areas)
}

// SearchVenues lists the venues whose name contains the search_term form
// field, ignoring case.
func (h *Handler) SearchVenues(c echo.Context) error {
    term := c.FormValue("search_term")
    ctx, cancel := h.dbContext(c)
    defer cancel()
    venues, err := h.Venues.Search(ctx, term)
    if err != nil {
        return err
    }
    return h.render(c, http.StatusOK, "pages/search_venues", "Search venues", nil, SearchView{
        SearchTerm: term,
        Count:      len(venues),
        Venues:     venues,
    })
}

// ShowVenue renders one venue with its past and upcoming shows.
func (h *Handler) ShowVenue(c echo.Context) error {
    id, err := parseID(c)
    if err != nil {
        return err
    }
    now := h.now()
    ctx, cancel := h.dbContext(c)
    defer cancel()

    v, err := h.Venues.GetByID(ctx, id)
    if errors.Is(err, repository.ErrVenueNotFound) {
        return echo.ErrNotFound
    }
    if err != nil {
        return err
    }
    past, upcoming, err := h.Shows.ForVenue(ctx, id, now)
    if err != nil {
        return err
    }
    return h.render(c, http.StatusOK, "pages/show_venue", v.Name, nil, model.VenueDetail{
        Venue:         *v,
        PastShows:     past,
        UpcomingShows: upcoming,
    })
}

// NewVenueForm renders the empty venue form.
func (h *Handler) NewVenueForm(c echo.Context) error {
    return h.renderForm(c, http.StatusOK, "forms/new_venue", "New venue", nil, 0, VenueForm{}, nil)
}

// CreateVenue validates and stores a venue, then renders the home page with
// the outcome.
func (h *Handler) CreateVenue(c echo.Context) error {
    var f VenueForm
    if err := c.Bind(&f); err != nil {
        return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
    }
    if fe := f.Validate(); fe != nil {
        return h.renderForm(c, http.StatusUnprocessableEntity, "forms/new_venue", "New venue",
            dangerFlash("An error occurred due to form validation. Venue "+f.Name+" could not be listed."), 0, f, fe)
    }

    v := f.ToModel(0)
    ctx, cancel := h.dbContext(c)
    err := h.Venues.Create(ctx, v)
    cancel()
    if err != nil {
        h.logError(c, "create venue failed", err, zap.String("name", v.Name))
        return h.renderHome(c, http.StatusInternalServerError,
            dangerFlash("An error occurred due to database insertion error. Venue "+v.Name+" could not be listed."))
    }

    h.publish(c, queue.ListingCreatedEvent{Kind: queue.KindVenue, ID: v.ID, Name: v.Name, City: v.City, State: v.State})
    return h.renderHome(c, http.StatusOK, successFlash("Venue "+v.Name+" was successfully listed!"))
}

// EditVenueForm renders the venue form pre-filled from the stored row.
func (h *Handler) EditVenueForm(c echo.Context) error {
    id, err := parseID(c)
    if err != nil {
        return err
    }
    ctx, cancel := h.dbContext(c)
    defer cancel()
    v, err := h.Venues.GetByID(ctx, id)
    if errors.Is(err, repository.ErrVenueNotFound) {
        return echo.ErrNotFound
    }
    if err != nil {
        return err
    }
    return h.renderForm(c, http.StatusOK, "forms/edit_venue", "Edit venue", nil, id, VenueFormFrom(v), nil)
}

// UpdateVenue overwrites every field of a venue and redirects to its page.
func (h *Handler) UpdateVenue(c echo.Context) error {
    id, err := parseID(c)
    if err != nil {
        return err
    }
    ctx, cancel := h.dbContext(c)
    defer cancel()
    if _, err := h.Venues.GetByID(ctx, id); errors.Is(err, repository.ErrVenueNotFound) {
        return echo.ErrNotFound
    } else if err != nil {
        return err
    }

    var f VenueForm
    if err := c.Bind(&f); err != nil {
        return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
    }
    if fe := f.Validate(); fe != nil {
        return h.renderForm(c, http.StatusUnprocessableEntity, "forms/edit_venue", "Edit venue",
            dangerFlash("An error occurred due to form validation. Venue "+f.Name+" could not be updated."), id, f, fe)
    }
    if err := h.Venues.Update(ctx, f.ToModel(id)); errors.Is(err, repository.ErrVenueNotFound) {
        return echo.ErrNotFound
    } else if err != nil {
        return err
    }
    return c.Redirect(http.StatusSeeOther, "/venues/"+strconv.FormatUint(id, 10))
}

// DeleteVenue removes a venue and its shows.  The response is JSON
// {"success": bool}; a missing or malformed id reports false.
func (h *Handler) DeleteVenue(c echo.Context) error {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return c.JSON(http.StatusNotFound, echo.Map{"success": false})
    }
    ctx, cancel := h.dbContext(c)
    defer cancel()
    switch err := h.Venues.Delete(ctx, id); {
    case errors.Is(err, repository.ErrVenueNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"success": false})
    case err != nil:
        h.logError(c, "delete venue failed", err, zap.Uint64("venue_id", id))
        return c.JSON(http.StatusInternalServerError, echo.Map{"success": false})
    }
    return c.JSON(http.StatusOK, echo.Map{"success": true})
}
