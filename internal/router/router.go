package router // package router defines how HTTP routes are registered for the site

import (
	"github.com/google/uuid"                         // request id generator
	"github.com/labstack/echo/v4"                    // import the Echo web framework to handle routing
	echomw "github.com/labstack/echo/v4/middleware" // echo's bundled request id and recover middleware
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iliyamo/fyyur/internal/config"
	"github.com/iliyamo/fyyur/internal/handler"    // import the handlers that implement the site
	"github.com/iliyamo/fyyur/internal/middleware" // import middleware for logging, rate limiting and form tokens
	"github.com/iliyamo/fyyur/internal/view"
)

// Options carries everything New needs to assemble the server.
type Options struct {
	Handler   *handler.Handler
	Renderer  echo.Renderer
	Logger    *zap.Logger
	Tokens    middleware.TokenVerifier
	RateLimit config.RateLimitConfig
	// Redis may be nil, in which case submissions are not rate limited.
	Redis *redis.Client
}

// New builds the echo instance with the global middleware chain, the
// static assets and every route of the site.
func New(opts Options) *echo.Echo {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = opts.Renderer
	e.HTTPErrorHandler = opts.Handler.HandleError

	// The request id must exist before the logger reads it.
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLogger(logger))
	e.Use(echomw.Recover())

	e.StaticFS("/static", view.Static())

	// Unsafe methods are rate limited first, then their form token is checked.
	writes := []echo.MiddlewareFunc{
		middleware.NewTokenBucket(opts.RateLimit, opts.Redis, logger),
		middleware.RequireFormToken(opts.Tokens),
	}

	RegisterRoutes(e)
	RegisterHome(e, opts.Handler)
	RegisterVenues(e, opts.Handler, writes...)
	RegisterArtists(e, opts.Handler, writes...)
	RegisterShows(e, opts.Handler, writes...)
	return e
}

// RegisterRoutes registers routes that are not part of the site itself.
// At the moment it only exposes a health check endpoint.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterHome registers the landing page.
func RegisterHome(e *echo.Echo, h *handler.Handler) {
	e.GET("/", h.Home)
}
