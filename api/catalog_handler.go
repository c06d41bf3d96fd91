package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/afras-tabs/catalog-backend/database"
	"github.com/afras-tabs/catalog-backend/errs"
	"github.com/afras-tabs/catalog-backend/models"
)

// relatedSongsLimit is how many album mates a song page carries.
const relatedSongsLimit = 4

// catalogHandler serves the public, read-only catalog views.
type catalogHandler struct {
	responder   Responder
	logger      zerolog.Logger
	artistRepo  *database.ArtistRepo
	albumRepo   *database.AlbumRepo
	songRepo    *database.SongRepo
	statsRepo   *database.StatsRepo
	searchRepo  *database.SearchRepo
	counterRepo *database.CounterRepo
	pageSize    int
	startupTime time.Time
}

func newCatalogHandler(db database.Database, pageSize int, startupTime time.Time) catalogHandler {
	logger := log.With().Str("handlerName", "catalogHandler").Logger()

	return catalogHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		artistRepo:  db.ArtistRepo(),
		albumRepo:   db.AlbumRepo(),
		songRepo:    db.SongRepo(),
		statsRepo:   db.StatsRepo(),
		searchRepo:  db.SearchRepo(),
		counterRepo: db.CounterRepo(),
		pageSize:    pageSize,
		startupTime: startupTime,
	}
}

// HealthResponse reports liveness
type HealthResponse struct {
	Status        string    `json:"status" example:"ok"`
	StartedAt     time.Time `json:"startedAt"`
	UptimeSeconds int64     `json:"uptimeSeconds"`
}

// ArtistPage is an artist with its albums and songs
type ArtistPage struct {
	Artist *models.Artist          `json:"artist"`
	Albums []database.AlbumListing `json:"albums"`
	Songs  []*models.Song          `json:"songs"`
}

// AlbumPage is an album with its full track list
type AlbumPage struct {
	Album *models.Album  `json:"album"`
	Songs []*models.Song `json:"songs"`
}

// SongPage is a song with other songs from its album
type SongPage struct {
	Song    *models.Song   `json:"song"`
	Related []*models.Song `json:"related"`
}

// SearchResponse is the quick-search dropdown payload
type SearchResponse struct {
	Results []database.SearchResult `json:"results"`
}

// health reports that the server is up
// @Summary Health check
// @Tags Catalog
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (h catalogHandler) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, HealthResponse{
			Status:        "ok",
			StartedAt:     h.startupTime,
			UptimeSeconds: int64(time.Since(h.startupTime).Seconds()),
		})
	}
}

// getStats returns catalog-wide totals and the latest songs
// @Summary Catalog statistics
// @Tags Catalog
// @Produce json
// @Success 200 {object} database.CatalogStats
// @Failure 500 {object} ErrorResponse
// @Router /stats [get]
func (h catalogHandler) getStats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := h.statsRepo.Catalog(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("load", "catalog stats", err))
			return
		}
		h.responder.WriteJSON(w, stats)
	}
}

// listTabs returns a page of non-filler songs
// @Summary List tabs
// @Tags Catalog
// @Produce json
// @Param search query string false "Matches song title, artist name or album title"
// @Param tuning query string false "Exact tuning; 'All Tunings' disables the filter"
// @Param min_difficulty query int false "Minimum difficulty"
// @Param max_difficulty query int false "Maximum difficulty"
// @Param sort query string false "A to Z, Z to A, Recently Added or Most Popular"
// @Param page query int false "Page number"
// @Success 200 {object} database.Page[models.Song]
// @Failure 400 {object} ErrorResponse
// @Router /tabs [get]
func (h catalogHandler) listTabs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		minDifficulty, err := optionalIntQuery(r, "min_difficulty")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		maxDifficulty, err := optionalIntQuery(r, "max_difficulty")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		page, err := h.songRepo.List(r.Context(), database.SongFilter{
			ListOptions:   listOptions(r, h.pageSize),
			Tuning:        r.URL.Query().Get("tuning"),
			MinDifficulty: minDifficulty,
			MaxDifficulty: maxDifficulty,
		})
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "songs", err))
			return
		}
		h.responder.WriteJSON(w, page)
	}
}

// listAlbums returns a page of albums with their song counts
// @Summary List albums
// @Tags Catalog
// @Produce json
// @Param search query string false "Matches album title or artist name"
// @Param sort query string false "A to Z, Z to A or Recently Added"
// @Param page query int false "Page number"
// @Success 200 {object} database.Page[database.AlbumListing]
// @Router /albums [get]
func (h catalogHandler) listAlbums() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := h.albumRepo.List(r.Context(), listOptions(r, h.pageSize))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "albums", err))
			return
		}
		h.responder.WriteJSON(w, page)
	}
}

// listArtists returns a page of artists with their song counts
// @Summary List artists
// @Tags Catalog
// @Produce json
// @Param search query string false "Matches artist name"
// @Param sort query string false "A to Z, Z to A or Recently Added"
// @Param page query int false "Page number"
// @Success 200 {object} database.Page[database.ArtistListing]
// @Router /artists [get]
func (h catalogHandler) listArtists() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := h.artistRepo.List(r.Context(), listOptions(r, h.pageSize))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "artists", err))
			return
		}
		h.responder.WriteJSON(w, page)
	}
}

// search answers the quick-search dropdown
// @Summary Quick search
// @Tags Catalog
// @Produce json
// @Param q query string true "At least two characters"
// @Success 200 {object} SearchResponse
// @Router /api/search [get]
func (h catalogHandler) search() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		results, err := h.searchRepo.Search(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("search", "catalog", err))
			return
		}
		h.responder.WriteJSON(w, SearchResponse{Results: results})
	}
}

// getArtistPage returns an artist by slug with its albums and songs
// @Summary Artist page
// @Tags Catalog
// @Produce json
// @Param artistSlug path string true "Artist slug"
// @Success 200 {object} ArtistPage
// @Failure 404 {object} ErrorResponse
// @Router /tabs/{artistSlug} [get]
func (h catalogHandler) getArtistPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		artist, err := h.artistRepo.FindBySlug(ctx, chi.URLParam(r, "artistSlug"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "artist", err))
			return
		}
		albums, err := h.albumRepo.ListByArtist(ctx, artist.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "albums", err))
			return
		}
		songs, err := h.songRepo.ListByArtist(ctx, artist.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "songs", err))
			return
		}
		h.responder.WriteJSON(w, ArtistPage{Artist: artist, Albums: albums, Songs: songs})
	}
}

// getAlbumPage returns an album by artist and album slug with its track list
// @Summary Album page
// @Tags Catalog
// @Produce json
// @Param artistSlug path string true "Artist slug"
// @Param albumSlug path string true "Album slug"
// @Success 200 {object} AlbumPage
// @Failure 404 {object} ErrorResponse
// @Router /tabs/{artistSlug}/{albumSlug} [get]
func (h catalogHandler) getAlbumPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		album, err := h.albumRepo.FindBySlugs(ctx, chi.URLParam(r, "artistSlug"), chi.URLParam(r, "albumSlug"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "album", err))
			return
		}
		songs, err := h.songRepo.ListByAlbum(ctx, album.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "songs", err))
			return
		}
		h.responder.WriteJSON(w, AlbumPage{Album: album, Songs: songs})
	}
}

// getSongPage returns a non-filler song by its path
// @Summary Song page
// @Tags Catalog
// @Produce json
// @Param artistSlug path string true "Artist slug"
// @Param albumSlug path string true "Album slug"
// @Param songSlug path string true "Song slug"
// @Success 200 {object} SongPage
// @Failure 404 {object} ErrorResponse
// @Router /tabs/{artistSlug}/{albumSlug}/{songSlug} [get]
func (h catalogHandler) getSongPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		song, err := h.songRepo.FindByPath(ctx,
			chi.URLParam(r, "artistSlug"), chi.URLParam(r, "albumSlug"), chi.URLParam(r, "songSlug"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "song", err))
			return
		}
		related, err := h.songRepo.Related(ctx, song, relatedSongsLimit)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "related songs", err))
			return
		}
		h.responder.WriteJSON(w, SongPage{Song: song, Related: related})
	}
}

// recount reconciles every album and artist tab counter
// @Summary Recount tab counters
// @Tags Admin
// @Produce json
// @Success 200 {object} StatusResponse
// @Failure 500 {object} ErrorResponse
// @Router /admin/recount [post]
func (h catalogHandler) recount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.counterRepo.RecountAll(r.Context()); err != nil {
			h.responder.WriteError(w, errs.NewTransactionFailedError("recount", err))
			return
		}
		h.logger.Info().Msg("recounted all tab counters")
		h.responder.WriteJSON(w, StatusResponse{Status: "success", Message: "tab counters recounted"})
	}
}
