package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cinefiles/cinefiles-backend/internal/handlers"
)

// Handlers bundles everything SetupRoutes needs to wire the API.
type Handlers struct {
	Auth    *handlers.AuthHandler
	Lists   *handlers.ListHandler
	Filters *handlers.FilterHandler
	Movies  *handlers.MovieHandler
	News    *handlers.NewsHandler
}

func SetupRoutes(r *chi.Mux, h Handlers, requireAuth func(http.Handler) http.Handler) {
	// Auth routes
	r.Post("/api/auth/signup", h.Auth.Signup)
	r.Post("/api/auth/login", h.Auth.Login)
	r.Post("/api/auth/refresh", h.Auth.Refresh)

	// Catalog routes (public, read-only proxy)
	r.Get("/api/movies/popular", h.Movies.Popular)
	r.Get("/api/movies/top-rated", h.Movies.TopRated)
	r.Get("/api/movies/upcoming", h.Movies.Upcoming)
	r.Get("/api/movies/now-playing", h.Movies.NowPlaying)
	r.Get("/api/movies/search", h.Movies.Search)
	r.Get("/api/movies/discover", h.Movies.Discover)
	r.Get("/api/movies/genres", h.Movies.Genres)
	r.Get("/api/movies/{movieID}", h.Movies.Details)
	r.Get("/api/movies/{movieID}/credits", h.Movies.Credits)
	r.Get("/api/movies/{movieID}/videos", h.Movies.Videos)
	r.Get("/api/movies/{movieID}/watch-providers", h.Movies.WatchProviders)
	r.Get("/api/people/{personID}", h.Movies.PersonDetails)
	r.Get("/api/people/{personID}/credits", h.Movies.PersonCredits)

	// News routes
	r.Get("/api/news/movies", h.News.MovieNews)

	// Everything below needs a valid access token
	r.Group(func(r chi.Router) {
		r.Use(requireAuth)

		r.Get("/api/auth/me", h.Auth.Me)

		// List routes
		r.Post("/api/lists", h.Lists.CreateList)
		r.Get("/api/lists", h.Lists.GetLists)
		r.Get("/api/lists/{listID}", h.Lists.GetList)
		r.Put("/api/lists/{listID}", h.Lists.UpdateList)
		r.Delete("/api/lists/{listID}", h.Lists.DeleteList)
		r.Post("/api/lists/{listID}/items", h.Lists.AddItem)
		r.Delete("/api/lists/{listID}/items/{movieID}", h.Lists.RemoveItem)

		// Watch state toggles (default lists are managed, so movie id is the key)
		r.Post("/api/lists/watched/{movieID}", h.Lists.ToggleWatched)
		r.Post("/api/lists/watchlist/{movieID}", h.Lists.ToggleWatchlist)

		// Filter preset routes
		r.Post("/api/filters", h.Filters.Create)
		r.Get("/api/filters", h.Filters.List)
		r.Get("/api/filters/homepage", h.Filters.Homepage)
		r.Put("/api/filters/homepage/order", h.Filters.ReorderHomepage)
		r.Get("/api/filters/{presetID}", h.Filters.Get)
		r.Put("/api/filters/{presetID}", h.Filters.Update)
		r.Delete("/api/filters/{presetID}", h.Filters.Delete)
	})
}
