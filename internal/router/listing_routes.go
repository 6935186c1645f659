package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/handler"
)

// RegisterVenues registers the venue pages.  The writes middleware guards
// every POST and DELETE route.
func RegisterVenues(e *echo.Echo, h *handler.Handler, writes ...echo.MiddlewareFunc) {
	e.GET("/venues", h.ListVenues)
	e.POST("/venues/search", h.SearchVenues, writes...)
	e.GET("/venues/create", h.NewVenueForm)
	e.POST("/venues/create", h.CreateVenue, writes...)
	e.GET("/venues/:id", h.ShowVenue)
	e.DELETE("/venues/:id", h.DeleteVenue, writes...)
	e.GET("/venues/:id/edit", h.EditVenueForm)
	e.POST("/venues/:id/edit", h.UpdateVenue, writes...)
}

// RegisterArtists registers the artist pages.  Artists cannot be deleted.
func RegisterArtists(e *echo.Echo, h *handler.Handler, writes ...echo.MiddlewareFunc) {
	e.GET("/artists", h.ListArtists)
	e.POST("/artists/search", h.SearchArtists, writes...)
	e.GET("/artists/create", h.NewArtistForm)
	e.POST("/artists/create", h.CreateArtist, writes...)
	e.GET("/artists/:id", h.ShowArtist)
	e.GET("/artists/:id/edit", h.EditArtistForm)
	e.POST("/artists/:id/edit", h.UpdateArtist, writes...)
}

// RegisterShows registers the show pages.  Shows are only listed and
// created.
func RegisterShows(e *echo.Echo, h *handler.Handler, writes ...echo.MiddlewareFunc) {
	e.GET("/shows", h.ListShows)
	e.GET("/shows/create", h.NewShowForm)
	e.POST("/shows/create", h.CreateShow, writes...)
}
