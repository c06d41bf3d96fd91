package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/afras-tabs/catalog-backend/database"
	"github.com/afras-tabs/catalog-backend/models"
)

type albumHandler struct {
	responder Responder
	logger    zerolog.Logger
	albumRepo *database.AlbumRepo
	pageSize  int
}

func newAlbumHandler(albumRepo *database.AlbumRepo, pageSize int) albumHandler {
	logger := log.With().Str("handlerName", "albumHandler").Logger()

	return albumHandler{
		responder: NewResponder(logger),
		logger:    logger,
		albumRepo: albumRepo,
		pageSize:  pageSize,
	}
}

// getAlbums lists albums page by page
// @Summary List albums
// @Tags Albums
// @Produce json
// @Param search query string false "Matches album title or artist name"
// @Param sort query string false "A to Z, Z to A or Recently Added"
// @Param page query int false "Page number"
// @Success 200 {object} database.Page[database.AlbumListing]
// @Router /admin/albums [get]
func (h albumHandler) getAlbums() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := h.albumRepo.List(r.Context(), listOptions(r, h.pageSize))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "albums", err))
			return
		}
		h.responder.WriteJSON(w, page)
	}
}

// getAlbum retrieves an album by ID
// @Summary Get album
// @Tags Albums
// @Produce json
// @Param albumID path string true "Album ID" format(uuid)
// @Success 200 {object} models.Album
// @Failure 404 {object} ErrorResponse
// @Router /admin/albums/{albumID} [get]
func (h albumHandler) getAlbum() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		albumID, err := uuidParam(r, "albumID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		album, err := h.albumRepo.FindByID(r.Context(), albumID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "album", err))
			return
		}
		h.responder.WriteJSON(w, album)
	}
}

// createAlbum creates a new album
// @Summary Create album
// @Tags Albums
// @Accept json
// @Produce json
// @Param album body albumInput true "Album data"
// @Success 201 {object} models.Album
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Artist not found"
// @Router /admin/albums [post]
func (h albumHandler) createAlbum() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in albumInput
		if err := decodeJSON(w, r, &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := in.validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var album models.Album
		in.apply(&album)
		if err := h.albumRepo.Add(r.Context(), &album); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "album", err))
			return
		}

		created, err := h.albumRepo.FindByID(r.Context(), album.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find created", "album", err))
			return
		}
		h.logger.Info().Str("albumId", album.ID.String()).Str("path", album.Path).Msg("album created")
		h.responder.WriteJSONStatus(w, http.StatusCreated, created)
	}
}

// updateAlbum updates an existing album; song paths follow a new slug
// @Summary Update album
// @Tags Albums
// @Accept json
// @Produce json
// @Param albumID path string true "Album ID" format(uuid)
// @Param album body albumInput true "Album data"
// @Success 200 {object} models.Album
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/albums/{albumID} [put]
func (h albumHandler) updateAlbum() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		albumID, err := uuidParam(r, "albumID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var in albumInput
		if err := decodeJSON(w, r, &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := in.validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		album := models.Album{ID: albumID}
		in.apply(&album)
		if err := h.albumRepo.Update(r.Context(), &album); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "album", err))
			return
		}
		h.responder.WriteJSON(w, album)
	}
}

// deleteAlbum deletes an album and its songs, then recounts the artist
// @Summary Delete album
// @Tags Albums
// @Produce json
// @Param albumID path string true "Album ID" format(uuid)
// @Success 200 {object} StatusResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/albums/{albumID} [delete]
func (h albumHandler) deleteAlbum() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		albumID, err := uuidParam(r, "albumID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.albumRepo.Delete(r.Context(), albumID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "album", err))
			return
		}
		h.logger.Info().Str("albumId", albumID.String()).Msg("album deleted")
		h.responder.writeDeleted(w, "album")
	}
}
