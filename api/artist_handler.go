package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/afras-tabs/catalog-backend/database"
	"github.com/afras-tabs/catalog-backend/models"
)

type artistHandler struct {
	responder  Responder
	logger     zerolog.Logger
	artistRepo *database.ArtistRepo
}

func newArtistHandler(artistRepo *database.ArtistRepo) artistHandler {
	logger := log.With().Str("handlerName", "artistHandler").Logger()

	return artistHandler{
		responder:  NewResponder(logger),
		logger:     logger,
		artistRepo: artistRepo,
	}
}

// getAllArtists retrieves all artists
// @Summary Get all artists
// @Tags Artists
// @Produce json
// @Success 200 {array} models.Artist
// @Failure 500 {object} ErrorResponse
// @Router /admin/artists [get]
func (h artistHandler) getAllArtists() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		artists, err := h.artistRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "artists", err))
			return
		}
		h.responder.WriteJSON(w, artists)
	}
}

// getArtist retrieves an artist by ID
// @Summary Get artist
// @Tags Artists
// @Produce json
// @Param artistID path string true "Artist ID" format(uuid)
// @Success 200 {object} models.Artist
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/artists/{artistID} [get]
func (h artistHandler) getArtist() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		artistID, err := uuidParam(r, "artistID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		artist, err := h.artistRepo.FindByID(r.Context(), artistID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "artist", err))
			return
		}
		h.responder.WriteJSON(w, artist)
	}
}

// createArtist creates a new artist
// @Summary Create artist
// @Tags Artists
// @Accept json
// @Produce json
// @Param artist body artistInput true "Artist data"
// @Success 201 {object} models.Artist
// @Failure 400 {object} ErrorResponse
// @Router /admin/artists [post]
func (h artistHandler) createArtist() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in artistInput
		if err := decodeJSON(w, r, &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := in.validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var artist models.Artist
		in.apply(&artist)
		if err := h.artistRepo.Add(r.Context(), &artist); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "artist", err))
			return
		}

		h.logger.Info().Str("artistId", artist.ID.String()).Str("slug", artist.Slug).Msg("artist created")
		h.responder.WriteJSONStatus(w, http.StatusCreated, artist)
	}
}

// updateArtist updates an existing artist; album and song paths follow a new slug
// @Summary Update artist
// @Tags Artists
// @Accept json
// @Produce json
// @Param artistID path string true "Artist ID" format(uuid)
// @Param artist body artistInput true "Artist data"
// @Success 200 {object} models.Artist
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/artists/{artistID} [put]
func (h artistHandler) updateArtist() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		artistID, err := uuidParam(r, "artistID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var in artistInput
		if err := decodeJSON(w, r, &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := in.validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		artist := models.Artist{ID: artistID}
		in.apply(&artist)
		if err := h.artistRepo.Update(r.Context(), &artist); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "artist", err))
			return
		}
		h.responder.WriteJSON(w, artist)
	}
}

// deleteArtist deletes an artist with its albums and songs
// @Summary Delete artist
// @Tags Artists
// @Produce json
// @Param artistID path string true "Artist ID" format(uuid)
// @Success 200 {object} StatusResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/artists/{artistID} [delete]
func (h artistHandler) deleteArtist() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		artistID, err := uuidParam(r, "artistID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.artistRepo.Delete(r.Context(), artistID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "artist", err))
			return
		}
		h.logger.Info().Str("artistId", artistID.String()).Msg("artist deleted")
		h.responder.writeDeleted(w, "artist")
	}
}
