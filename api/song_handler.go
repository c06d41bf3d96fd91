package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/afras-tabs/catalog-backend/database"
	"github.com/afras-tabs/catalog-backend/errs"
	"github.com/afras-tabs/catalog-backend/models"
)

type songHandler struct {
	responder     Responder
	logger        zerolog.Logger
	songRepo      *database.SongRepo
	changeLogRepo *database.ChangeLogRepo
	pageSize      int
}

func newSongHandler(songRepo *database.SongRepo, changeLogRepo *database.ChangeLogRepo, pageSize int) songHandler {
	logger := log.With().Str("handlerName", "songHandler").Logger()

	return songHandler{
		responder:     NewResponder(logger),
		logger:        logger,
		songRepo:      songRepo,
		changeLogRepo: changeLogRepo,
		pageSize:      pageSize,
	}
}

// getSongs lists an album's full track list when albumId is given, otherwise a page of
// non-filler songs
// @Summary List songs
// @Tags Songs
// @Produce json
// @Param albumId query string false "Album ID" format(uuid)
// @Param search query string false "Matches song title, artist name or album title"
// @Param page query int false "Page number"
// @Success 200 {object} database.Page[models.Song]
// @Failure 400 {object} ErrorResponse
// @Router /admin/songs [get]
func (h songHandler) getSongs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if raw := r.URL.Query().Get("albumId"); raw != "" {
			albumID, err := uuid.Parse(raw)
			if err != nil {
				h.responder.WriteError(w, errs.NewInvalidFieldError("albumId", "must be a UUID"))
				return
			}
			songs, err := h.songRepo.ListByAlbum(r.Context(), albumID)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("list", "songs", err))
				return
			}
			h.responder.WriteJSON(w, songs)
			return
		}

		page, err := h.songRepo.List(r.Context(), database.SongFilter{ListOptions: listOptions(r, h.pageSize)})
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "songs", err))
			return
		}
		h.responder.WriteJSON(w, page)
	}
}

// getSong retrieves a song by ID with its artist, album and tabbers
// @Summary Get song
// @Tags Songs
// @Produce json
// @Param songID path string true "Song ID" format(uuid)
// @Success 200 {object} models.Song
// @Failure 404 {object} ErrorResponse
// @Router /admin/songs/{songID} [get]
func (h songHandler) getSong() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		songID, err := uuidParam(r, "songID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		song, err := h.songRepo.FindByID(r.Context(), songID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "song", err))
			return
		}
		h.responder.WriteJSON(w, song)
	}
}

// createSong creates a new song; its album and artist counters are recounted
// @Summary Create song
// @Tags Songs
// @Accept json
// @Produce json
// @Param song body songInput true "Song data"
// @Success 201 {object} models.Song
// @Failure 400 {object} ErrorResponse "Invalid data, or no artist can be credited"
// @Failure 404 {object} ErrorResponse "Tabber not found"
// @Router /admin/songs [post]
func (h songHandler) createSong() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in songInput
		if err := decodeJSON(w, r, &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := in.validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var song models.Song
		in.apply(&song)
		var tabberIDs []uuid.UUID
		if in.TabberIDs != nil {
			tabberIDs = *in.TabberIDs
		}
		if err := h.songRepo.AddWithTabbers(r.Context(), &song, tabberIDs); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "song", err))
			return
		}

		created, err := h.songRepo.FindByID(r.Context(), song.ID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find created", "song", err))
			return
		}
		h.logger.Info().Str("songId", song.ID.String()).Str("path", song.Path).Msg("song created")
		h.responder.WriteJSONStatus(w, http.StatusCreated, created)
	}
}

// updateSong updates an existing song; old and new parents are recounted
// @Summary Update song
// @Tags Songs
// @Accept json
// @Produce json
// @Param songID path string true "Song ID" format(uuid)
// @Param song body songInput true "Song data"
// @Success 200 {object} models.Song
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/songs/{songID} [put]
func (h songHandler) updateSong() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		songID, err := uuidParam(r, "songID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var in songInput
		if err := decodeJSON(w, r, &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := in.validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		song, err := h.songRepo.FindByID(r.Context(), songID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "song", err))
			return
		}
		song.Artist, song.Album, song.Tabbers = nil, nil, nil
		in.apply(song)

		if in.TabberIDs != nil {
			err = h.songRepo.UpdateWithTabbers(r.Context(), song, *in.TabberIDs)
		} else {
			err = h.songRepo.Update(r.Context(), song)
		}
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "song", err))
			return
		}
		h.responder.WriteJSON(w, song)
	}
}

// deleteSong deletes a song; its album and artist are recounted
// @Summary Delete song
// @Tags Songs
// @Produce json
// @Param songID path string true "Song ID" format(uuid)
// @Success 200 {object} StatusResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/songs/{songID} [delete]
func (h songHandler) deleteSong() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		songID, err := uuidParam(r, "songID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.songRepo.Delete(r.Context(), songID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "song", err))
			return
		}
		h.logger.Info().Str("songId", songID.String()).Msg("song deleted")
		h.responder.writeDeleted(w, "song")
	}
}

// getChangeLog lists a song's change log, newest first
// @Summary Get song change log
// @Tags Songs
// @Produce json
// @Param songID path string true "Song ID" format(uuid)
// @Success 200 {array} models.SongChangeLog
// @Failure 404 {object} ErrorResponse
// @Router /admin/songs/{songID}/changelog [get]
func (h songHandler) getChangeLog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		songID, err := uuidParam(r, "songID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if _, err := h.songRepo.FindByID(r.Context(), songID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "song", err))
			return
		}
		entries, err := h.changeLogRepo.ListForSong(r.Context(), songID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("list", "song change log", err))
			return
		}
		h.responder.WriteJSON(w, entries)
	}
}

// addChangeLogEntry appends to a song's change log
// @Summary Append to song change log
// @Tags Songs
// @Accept json
// @Produce json
// @Param songID path string true "Song ID" format(uuid)
// @Param entry body changeLogInput true "Change summary"
// @Success 201 {object} models.SongChangeLog
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /admin/songs/{songID}/changelog [post]
func (h songHandler) addChangeLogEntry() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		songID, err := uuidParam(r, "songID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var in changeLogInput
		if err := decodeJSON(w, r, &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if _, err := h.songRepo.FindByID(r.Context(), songID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "song", err))
			return
		}
		entry := models.SongChangeLog{SongID: songID, ChangeSummary: in.ChangeSummary}
		if err := h.changeLogRepo.Add(r.Context(), &entry); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "song change log entry", err))
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, entry)
	}
}
