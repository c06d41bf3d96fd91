package api

import (
	"bytes"
	"errors"
	"io"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/afras-tabs/catalog-backend/database"
	"github.com/afras-tabs/catalog-backend/errs"
	"github.com/afras-tabs/catalog-backend/models"
	"github.com/afras-tabs/catalog-backend/storage"
)

// maxAssetSize bounds a single uploaded picture or tab file.
const maxAssetSize = 32 << 20

var imageContentTypes = []string{"image/jpeg", "image/png", "image/webp"}

// UploadResponse is where an uploaded asset was stored
type UploadResponse struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
	URL    string `json:"url"`
}

type assetHandler struct {
	responder  Responder
	logger     zerolog.Logger
	store      storage.AssetStore
	artistRepo *database.ArtistRepo
	albumRepo  *database.AlbumRepo
	songRepo   *database.SongRepo
	tabberRepo *database.TabberRepo
}

func newAssetHandler(store storage.AssetStore, db database.Database) assetHandler {
	logger := log.With().Str("handlerName", "assetHandler").Logger()

	return assetHandler{
		responder:  NewResponder(logger),
		logger:     logger,
		store:      store,
		artistRepo: db.ArtistRepo(),
		albumRepo:  db.AlbumRepo(),
		songRepo:   db.SongRepo(),
		tabberRepo: db.TabberRepo(),
	}
}

// uploadArtistImage stores the artist picture at its derived location
// @Summary Upload artist picture
// @Tags Assets
// @Accept image/jpeg
// @Produce json
// @Param artistID path string true "Artist ID" format(uuid)
// @Success 200 {object} UploadResponse
// @Failure 404 {object} ErrorResponse
// @Failure 415 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse "Storage not configured or unreachable"
// @Router /admin/artists/{artistID}/image [put]
func (h assetHandler) uploadArtistImage() http.HandlerFunc {
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
		h.putImage(w, r, artist.ImageLocation())
	}
}

// uploadAlbumArt stores the album art at its derived location
// @Summary Upload album art
// @Tags Assets
// @Accept image/jpeg
// @Produce json
// @Param albumID path string true "Album ID" format(uuid)
// @Success 200 {object} UploadResponse
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /admin/albums/{albumID}/image [put]
func (h assetHandler) uploadAlbumArt() http.HandlerFunc {
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
		h.putImage(w, r, album.ImageLocation())
	}
}

// uploadTabberPicture stores the tabber picture at its derived location
// @Summary Upload tabber picture
// @Tags Assets
// @Accept image/jpeg
// @Produce json
// @Param tabberID path string true "Tabber ID" format(uuid)
// @Success 200 {object} UploadResponse
// @Failure 404 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /admin/tabbers/{tabberID}/image [put]
func (h assetHandler) uploadTabberPicture() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tabberID, err := uuidParam(r, "tabberID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		tabber, err := h.tabberRepo.FindByID(r.Context(), tabberID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "tabber", err))
			return
		}
		h.putImage(w, r, tabber.ImageLocation())
	}
}

// uploadTabFile stores one file in the song's tab-file directory
// @Summary Upload tab file
// @Tags Assets
// @Accept application/octet-stream
// @Produce json
// @Param songID path string true "Song ID" format(uuid)
// @Param name query string true "File name, e.g. guitar.gp5"
// @Success 200 {object} UploadResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Filler songs have no tab files"
// @Failure 503 {object} ErrorResponse
// @Router /admin/songs/{songID}/tab-file [put]
func (h assetHandler) uploadTabFile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		songID, err := uuidParam(r, "songID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		name := r.URL.Query().Get("name")
		if name == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("name"))
			return
		}
		if path.Base(name) != name || name == "." || name == ".." || strings.ContainsRune(name, '\\') {
			h.responder.WriteError(w, errs.NewInvalidFieldError("name", "must be a plain file name"))
			return
		}

		song, err := h.songRepo.FindByID(r.Context(), songID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "song", err))
			return
		}
		dir, ok := song.TabFilesLocation()
		if !ok {
			h.responder.WriteError(w, errs.NewNoTabFilesError(song.Title))
			return
		}

		contentType := r.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		h.put(w, r, models.AssetLocation{Bucket: dir.Bucket, Key: dir.Key + "/" + name}, contentType)
	}
}

func (h assetHandler) putImage(w http.ResponseWriter, r *http.Request, loc models.AssetLocation) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || !isImageType(mediaType) {
		h.responder.WriteError(w, errs.NewUnsupportedMediaTypeError(r.Header.Get("Content-Type"), imageContentTypes))
		return
	}
	h.put(w, r, loc, mediaType)
}

func (h assetHandler) put(w http.ResponseWriter, r *http.Request, loc models.AssetLocation, contentType string) {
	if h.store == nil {
		h.responder.WriteError(w, errs.NewStorageUnavailableError("upload", errors.New("asset storage is not configured")))
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxAssetSize))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.responder.WriteError(w, errs.NewMaxBodySizeExceededError(maxErr.Limit))
			return
		}
		h.responder.WriteError(w, errs.NewBadRequestError("failed to read request body"))
		return
	}
	if len(body) == 0 {
		h.responder.WriteError(w, errs.NewMissingRequiredFieldError("body"))
		return
	}

	if err := h.store.Put(r.Context(), loc, bytes.NewReader(body), int64(len(body)), contentType); err != nil {
		h.responder.WriteError(w, errs.NewStorageUnavailableError("upload", err))
		return
	}
	h.logger.Info().Str("bucket", loc.Bucket).Str("key", loc.Key).Msg("asset stored")
	h.responder.WriteJSON(w, UploadResponse{Bucket: loc.Bucket, Key: loc.Key, URL: loc.URL()})
}

func isImageType(mediaType string) bool {
	for _, t := range imageContentTypes {
		if mediaType == t {
			return true
		}
	}
	return false
}
