package handler

import (
    "net/http"
    "time"

    "github.com/labstack/echo/v4"
    "go.uber.org/zap"

    "github.com/iliyamo/fyyur/internal/queue"
)

// ListShows lists every show ordered by start time.
func (h *Handler) ListShows(c echo.Context) error {
    ctx, cancel := h.dbContext(c)
    defer cancel()
    shows, err := h.Shows.List(ctx)
    if err != nil {
        return err
    }
    return h.render(c, http.StatusOK, "pages/shows", "Shows", nil, shows)
}

// NewShowForm renders the empty show form.
func (h *Handler) NewShowForm(c echo.Context) error {
    return h.renderForm(c, http.StatusOK, "forms/new_show", "New show", nil, 0, ShowForm{}, nil)
}

// CreateShow validates and stores a show.  A venue or artist that does not
// exist is rejected by the database and reported like any insert failure.
func (h *Handler) CreateShow(c echo.Context) error {
    var f ShowForm
    if err := c.Bind(&f); err != nil {
        return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
    }
    s, fe := f.Validate()
    if fe != nil {
        return h.renderForm(c, http.StatusUnprocessableEntity, "forms/new_show", "New show",
            dangerFlash("An error occurred due to form validation. Show could not be listed."), 0, f, fe)
    }

    ctx, cancel := h.dbContext(c)
    err := h.Shows.Create(ctx, &s)
    cancel()
    if err != nil {
        h.logError(c, "create show failed", err, zap.Uint64("venue_id", s.VenueID), zap.Uint64("artist_id", s.ArtistID))
        return h.renderHome(c, http.StatusInternalServerError,
            dangerFlash("An error occurred due to database insertion error. Show could not be listed."))
    }

    h.publish(c, queue.ListingCreatedEvent{
        Kind:      queue.KindShow,
        VenueID:   s.VenueID,
        ArtistID:  s.ArtistID,
        StartTime: s.StartTime.Format(time.RFC3339),
    })
    return h.renderHome(c, http.StatusOK, successFlash("Show was successfully listed!"))
}
