// Package handler defines the HTTP handlers of the site.  Every handler
// performs a single operation, renders an HTML page through echo's renderer
// and maps repository errors onto HTTP outcomes.
package handler

import (
    "context"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"
    "go.uber.org/zap"

    "github.com/iliyamo/fyyur/internal/model"
    "github.com/iliyamo/fyyur/internal/queue"
    "github.com/iliyamo/fyyur/internal/service"
    "github.com/iliyamo/fyyur/internal/utils"
    "github.com/iliyamo/fyyur/internal/view"
)

const (
    // recentLimit is how many artists and venues the home page shows.
    recentLimit = 10
    // defaultDBTimeout bounds each database call made by a handler.
    defaultDBTimeout = 5 * time.Second
    // publishTimeout bounds the best-effort event publication after a create.
    publishTimeout = 3 * time.Second
)

// VenueStore is the persistence the venue handlers need.
type VenueStore interface {
    Create(ctx context.Context, v *model.Venue) error
    GetByID(ctx context.Context, id uint64) (*model.Venue, error)
    Update(ctx context.Context, v *model.Venue) error
    Delete(ctx context.Context, id uint64) error
    ListRecent(ctx context.Context, limit int) ([]model.Venue, error)
    Search(ctx context.Context, term string) ([]model.Venue, error)
    ListAreas(ctx context.Context, now time.Time) ([]model.Area, error)
}

// ArtistStore is the persistence the artist handlers need.
type ArtistStore interface {
    Create(ctx context.Context, a *model.Artist) error
    GetByID(ctx context.Context, id uint64) (*model.Artist, error)
    Update(ctx context.Context, a *model.Artist) error
    List(ctx context.Context) ([]model.Artist, error)
    ListRecent(ctx context.Context, limit int) ([]model.Artist, error)
    Search(ctx context.Context, term string) ([]model.Artist, error)
}

// ShowStore is the persistence the show handlers need.
type ShowStore interface {
    Create(ctx context.Context, s *model.Show) error
    List(ctx context.Context) ([]model.ShowListing, error)
    ForVenue(ctx context.Context, venueID uint64, now time.Time) (past, upcoming []model.ArtistAppearance, err error)
    ForArtist(ctx context.Context, artistID uint64, now time.Time) (past, upcoming []model.VenueAppearance, err error)
}

// TokenIssuer issues the form tokens embedded in every page.
type TokenIssuer interface {
    Issue() (utils.FormToken, error)
}

// Handler bundles the stores and collaborators used by every route.
type Handler struct {
    Venues  VenueStore        // Venues provides venue persistence
    Artists ArtistStore       // Artists provides artist persistence
    Shows   ShowStore         // Shows provides show persistence
    Tokens  TokenIssuer       // Tokens signs form tokens
    Events  service.Publisher // Events receives listing.created events
    Log     *zap.Logger       // Log records failures
    Now     func() time.Time  // Now is the clock used for past/upcoming
    // DBTimeout bounds each database call.
    DBTimeout time.Duration
}

// New constructs a Handler and panics if a store or the token issuer is nil.
// A nil publisher disables events and a nil logger discards logs.
func New(venues VenueStore, artists ArtistStore, shows ShowStore, tokens TokenIssuer, events service.Publisher, logger *zap.Logger) *Handler {
    if venues == nil || artists == nil || shows == nil || tokens == nil {
        panic("nil dependency passed to handler.New")
    }
    if events == nil {
        events = service.NopPublisher{}
    }
    if logger == nil {
        logger = zap.NewNop()
    }
    return &Handler{
        Venues:    venues,
        Artists:   artists,
        Shows:     shows,
        Tokens:    tokens,
        Events:    events,
        Log:       logger,
        Now:       time.Now,
        DBTimeout: defaultDBTimeout,
    }
}

// FormView is the Data of every form page.
type FormView struct {
    ID     uint64 // ID is the edited row, zero on create forms
    Form   any
    Errors FieldErrors
    Genres []string
    States []string
}

// SearchView is the Data of the search result pages.
type SearchView struct {
    SearchTerm string
    Count      int
    Venues     []model.Venue
    Artists    []model.Artist
}

// HomeView is the Data of the home page.
type HomeView struct {
    Venues  []model.Venue
    Artists []model.Artist
}

func (h *Handler) now() time.Time {
    return h.Now().UTC()
}

// dbContext derives the context for database calls from the request.
func (h *Handler) dbContext(c echo.Context) (context.Context, context.CancelFunc) {
    timeout := h.DBTimeout
    if timeout <= 0 {
        timeout = defaultDBTimeout
    }
    return context.WithTimeout(c.Request().Context(), timeout)
}

// render executes a page inside the layout with a fresh form token.
func (h *Handler) render(c echo.Context, status int, name, title string, flash *view.Flash, data any) error {
    tok, err := h.Tokens.Issue()
    if err != nil {
        return err
    }
    return c.Render(status, name, view.Page{Title: title, Flash: flash, Token: tok.Token, Data: data})
}

func (h *Handler) renderForm(c echo.Context, status int, name, title string, flash *view.Flash, id uint64, form any, fe FieldErrors) error {
    return h.render(c, status, name, title, flash, FormView{
        ID:     id,
        Form:   form,
        Errors: fe,
        Genres: GenreChoices,
        States: StateChoices,
    })
}

// renderHome renders the home page with the most recent listings.
func (h *Handler) renderHome(c echo.Context, status int, flash *view.Flash) error {
    ctx, cancel := h.dbContext(c)
    defer cancel()
    venues, err := h.Venues.ListRecent(ctx, recentLimit)
    if err != nil {
        return err
    }
    artists, err := h.Artists.ListRecent(ctx, recentLimit)
    if err != nil {
        return err
    }
    return h.render(c, status, "pages/home", "Home", flash, HomeView{Venues: venues, Artists: artists})
}

func (h *Handler) logError(c echo.Context, msg string, err error, fields ...zap.Field) {
    fields = append(fields,
        zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
        zap.String("path", c.Request().URL.Path),
        zap.Error(err),
    )
    h.Log.Error(msg, fields...)
}

// publish sends ev without failing the request; the publisher logs errors.
func (h *Handler) publish(c echo.Context, ev queue.ListingCreatedEvent) {
    ev.CreatedAt = h.now().Format(time.RFC3339)
    ctx, cancel := context.WithTimeout(c.Request().Context(), publishTimeout)
    defer cancel()
    _ = h.Events.PublishListingCreated(ctx, ev)
}

// parseID reads the :id path parameter.  Anything that is not a positive
// integer is treated as a missing page.
func parseID(c echo.Context) (uint64, error) {
    id, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || id == 0 {
        return 0, echo.ErrNotFound
    }
    return id, nil
}

func successFlash(msg string) *view.Flash {
    return &view.Flash{Type: view.FlashSuccess, Messages: []string{msg}}
}

func dangerFlash(msgs ...string) *view.Flash {
    return &view.Flash{Type: view.FlashDanger, Messages: msgs}
}

// Home renders the landing page.
func (h *Handler) Home(c echo.Context) error {
    return h.renderHome(c, http.StatusOK, nil)
}
