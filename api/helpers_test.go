package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/afras-tabs/catalog-backend/database"
	"github.com/afras-tabs/catalog-backend/dbtest"
	"github.com/afras-tabs/catalog-backend/models"
	"github.com/afras-tabs/catalog-backend/storage"
)

type storedAsset struct {
	loc         models.AssetLocation
	body        string
	contentType string
}

type fakeStore struct {
	stored []storedAsset
	err    error
}

func (s *fakeStore) Put(_ context.Context, loc models.AssetLocation, body io.Reader, size int64, contentType string) error {
	if s.err != nil {
		return s.err
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	if int64(len(b)) != size {
		return errors.New("size mismatch")
	}
	s.stored = append(s.stored, storedAsset{loc: loc, body: string(b), contentType: contentType})
	return nil
}

func newTestRouter(t *testing.T, store storage.AssetStore, c map[string]string) (http.Handler, *gorm.DB) {
	t.Helper()
	db := dbtest.Open(t)
	return newRouter(database.New(db), store, withConfig(c)), db
}

func doJSON(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func doUpload(t *testing.T, h http.Handler, target, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPut, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

// createCatalog builds artist Foo, album Bar and song Baz through the admin API.
func createCatalog(t *testing.T, h http.Handler) (models.Artist, models.Album, models.Song) {
	t.Helper()

	rec := doJSON(t, h, http.MethodPost, "/admin/artists", map[string]any{"name": "Foo"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	artist := decodeBody[models.Artist](t, rec)

	rec = doJSON(t, h, http.MethodPost, "/admin/albums", map[string]any{
		"title": "Bar", "artistId": artist.ID, "releaseYear": "2001",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	album := decodeBody[models.Album](t, rec)

	rec = doJSON(t, h, http.MethodPost, "/admin/songs", map[string]any{
		"title": "Baz", "albumId": album.ID, "trackNum": 1,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	song := decodeBody[models.Song](t, rec)

	return artist, album, song
}
