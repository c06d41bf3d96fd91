package api

import (
	"github.com/go-chi/chi/v5"
)

// setupPublicRoutes sets up the read-only catalog views
func setupPublicRoutes(r chi.Router, handlers *routeHandlers) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/health", handlers.catalogHandler.health())
		r.Get("/stats", handlers.catalogHandler.getStats())
		r.Get("/tabs", handlers.catalogHandler.listTabs())
		r.Get("/albums", handlers.catalogHandler.listAlbums())
		r.Get("/artists", handlers.catalogHandler.listArtists())
		r.Get("/api/search", handlers.catalogHandler.search())

		// Hierarchical pages, addressed by slug
		r.Get("/tabs/{artistSlug}", handlers.catalogHandler.getArtistPage())
		r.Get("/tabs/{artistSlug}/{albumSlug}", handlers.catalogHandler.getAlbumPage())
		r.Get("/tabs/{artistSlug}/{albumSlug}/{songSlug}", handlers.catalogHandler.getSongPage())
	})
}

// setupAdminRoutes sets up catalog administration
func setupAdminRoutes(r chi.Router, handlers *routeHandlers) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		// Artist Handler endpoints
		r.Get("/artists", handlers.artistHandler.getAllArtists())
		r.Post("/artists", handlers.artistHandler.createArtist())
		r.Get("/artists/{artistID}", handlers.artistHandler.getArtist())
		r.Put("/artists/{artistID}", handlers.artistHandler.updateArtist())
		r.Delete("/artists/{artistID}", handlers.artistHandler.deleteArtist())
		r.Put("/artists/{artistID}/image", handlers.assetHandler.uploadArtistImage())

		// Album Handler endpoints
		r.Get("/albums", handlers.albumHandler.getAlbums())
		r.Post("/albums", handlers.albumHandler.createAlbum())
		r.Get("/albums/{albumID}", handlers.albumHandler.getAlbum())
		r.Put("/albums/{albumID}", handlers.albumHandler.updateAlbum())
		r.Delete("/albums/{albumID}", handlers.albumHandler.deleteAlbum())
		r.Put("/albums/{albumID}/image", handlers.assetHandler.uploadAlbumArt())

		// Song Handler endpoints
		r.Get("/songs", handlers.songHandler.getSongs())
		r.Post("/songs", handlers.songHandler.createSong())
		r.Get("/songs/{songID}", handlers.songHandler.getSong())
		r.Put("/songs/{songID}", handlers.songHandler.updateSong())
		r.Delete("/songs/{songID}", handlers.songHandler.deleteSong())
		r.Get("/songs/{songID}/changelog", handlers.songHandler.getChangeLog())
		r.Post("/songs/{songID}/changelog", handlers.songHandler.addChangeLogEntry())
		r.Put("/songs/{songID}/tab-file", handlers.assetHandler.uploadTabFile())

		// Tabber Handler endpoints
		r.Get("/tabbers", handlers.tabberHandler.getAllTabbers())
		r.Post("/tabbers", handlers.tabberHandler.createTabber())
		r.Get("/tabbers/{tabberID}", handlers.tabberHandler.getTabber())
		r.Put("/tabbers/{tabberID}", handlers.tabberHandler.updateTabber())
		r.Delete("/tabbers/{tabberID}", handlers.tabberHandler.deleteTabber())
		r.Put("/tabbers/{tabberID}/image", handlers.assetHandler.uploadTabberPicture())

		r.Post("/recount", handlers.catalogHandler.recount())
	})
}
