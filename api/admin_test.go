package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afras-tabs/catalog-backend/models"
)

func TestAdmin_CreateDerivesFieldsAndCounts(t *testing.T) {
	h, _ := newTestRouter(t, nil, nil)
	artist, album, song := createCatalog(t, h)

	assert.Equal(t, "foo", artist.Slug)
	assert.Equal(t, "/tabs/foo", artist.Path)
	assert.Equal(t, "https://f005.backblazeb2.com/file/afras-tabs-artist-images/foo.jpg", artist.ImageURL)
	assert.Equal(t, "/tabs/foo/bar", album.Path)
	assert.Equal(t, "https://f005.backblazeb2.com/file/afras-tabs-album-arts/bar.jpg", album.ImageURL)

	assert.Equal(t, artist.ID, song.ArtistID, "song inherits the album's artist")
	assert.Equal(t, "/tabs/foo/bar/baz", song.Path)
	require.NotNil(t, song.TabFiles)
	assert.Equal(t, "https://f005.backblazeb2.com/file/afras-tabs-tab-files/foo/bar/baz", *song.TabFiles)
	require.NotNil(t, song.Difficulty)
	assert.Equal(t, 1, *song.Difficulty)

	rec := doJSON(t, h, http.MethodGet, "/admin/albums/"+album.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decodeBody[models.Album](t, rec).NumTabs)

	rec = doJSON(t, h, http.MethodGet, "/admin/artists/"+artist.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, decodeBody[models.Artist](t, rec).NumTabs)

	rec = doJSON(t, h, http.MethodDelete, "/admin/songs/"+song.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", decodeBody[StatusResponse](t, rec).Status)

	rec = doJSON(t, h, http.MethodGet, "/admin/albums/"+album.ID.String(), nil)
	assert.Equal(t, 0, decodeBody[models.Album](t, rec).NumTabs)
	rec = doJSON(t, h, http.MethodGet, "/admin/artists/"+artist.ID.String(), nil)
	assert.Equal(t, 0, decodeBody[models.Artist](t, rec).NumTabs)
}

func TestAdmin_FillerSongHasNoPath(t *testing.T) {
	h, _ := newTestRouter(t, nil, nil)
	_, album, _ := createCatalog(t, h)

	rec := doJSON(t, h, http.MethodPost, "/admin/songs", map[string]any{
		"title": "Interlude", "albumId": album.ID, "isFiller": true,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	song := decodeBody[models.Song](t, rec)
	assert.Empty(t, song.Path)
	assert.Nil(t, song.TabFiles)
	assert.Equal(t, album.ArtistID, song.ArtistID)

	rec = doJSON(t, h, http.MethodGet, "/admin/songs?albumId="+album.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]models.Song](t, rec), 2)
}

func TestAdmin_UpdateSongMovesCounters(t *testing.T) {
	h, _ := newTestRouter(t, nil, nil)
	artist, album, song := createCatalog(t, h)

	rec := doJSON(t, h, http.MethodPost, "/admin/albums", map[string]any{
		"title": "Qux", "artistId": artist.ID, "releaseYear": "2004",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	other := decodeBody[models.Album](t, rec)

	rec = doJSON(t, h, http.MethodPut, "/admin/songs/"+song.ID.String(), map[string]any{
		"title": "Baz", "albumId": other.ID, "difficulty": 3,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decodeBody[models.Song](t, rec)
	assert.Equal(t, "/tabs/foo/qux/baz", updated.Path)
	require.NotNil(t, updated.Difficulty)
	assert.Equal(t, 3, *updated.Difficulty)

	rec = doJSON(t, h, http.MethodGet, "/admin/albums/"+album.ID.String(), nil)
	assert.Equal(t, 0, decodeBody[models.Album](t, rec).NumTabs)
	rec = doJSON(t, h, http.MethodGet, "/admin/albums/"+other.ID.String(), nil)
	assert.Equal(t, 1, decodeBody[models.Album](t, rec).NumTabs)
}

func TestAdmin_DeleteAlbumRecountsArtist(t *testing.T) {
	h, _ := newTestRouter(t, nil, nil)
	artist, album, _ := createCatalog(t, h)

	rec := doJSON(t, h, http.MethodDelete, "/admin/albums/"+album.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, h, http.MethodGet, "/admin/artists/"+artist.ID.String(), nil)
	assert.Equal(t, 0, decodeBody[models.Artist](t, rec).NumTabs)

	rec = doJSON(t, h, http.MethodDelete, "/admin/albums/"+album.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdmin_SongTabbers(t *testing.T) {
	h, _ := newTestRouter(t, nil, nil)
	_, album, song := createCatalog(t, h)

	rec := doJSON(t, h, http.MethodPost, "/admin/tabbers", map[string]any{"name": "Jöhn Smith"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	tabber := decodeBody[models.Tabber](t, rec)
	assert.Equal(t, "john-smith", tabber.Slug)

	rec = doJSON(t, h, http.MethodPut, "/admin/songs/"+song.ID.String(), map[string]any{
		"title": "Baz", "albumId": album.ID, "tabberIds": []uuid.UUID{tabber.ID},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decodeBody[models.Song](t, rec)
	require.Len(t, updated.Tabbers, 1)
	assert.Equal(t, tabber.ID, updated.Tabbers[0].ID)

	// Omitting tabberIds leaves the credits alone
	rec = doJSON(t, h, http.MethodPut, "/admin/songs/"+song.ID.String(), map[string]any{
		"title": "Baz", "albumId": album.ID,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[models.Song](t, rec).Tabbers, 1)

	rec = doJSON(t, h, http.MethodPost, "/admin/songs", map[string]any{
		"title": "Ghost", "albumId": album.ID, "tabberIds": []uuid.UUID{uuid.New()},
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/admin/songs?albumId="+album.ID.String(), nil)
	assert.Len(t, decodeBody[[]models.Song](t, rec), 1, "a failed create leaves no song behind")
}

func TestAdmin_ChangeLog(t *testing.T) {
	h, _ := newTestRouter(t, nil, nil)
	_, _, song := createCatalog(t, h)
	target := "/admin/songs/" + song.ID.String() + "/changelog"

	rec := doJSON(t, h, http.MethodPost, target, map[string]any{"changeSummary": "Fixed the solo"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	entry := decodeBody[models.SongChangeLog](t, rec)
	assert.Equal(t, song.ID, entry.SongID)
	assert.False(t, entry.ChangeDate.IsZero())

	rec = doJSON(t, h, http.MethodPost, target, map[string]any{"changeSummary": ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodPost, target, map[string]any{"changeSummary": strings.Repeat("x", 501)})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, h, http.MethodGet, target, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	entries := decodeBody[[]models.SongChangeLog](t, rec)
	require.Len(t, entries, 1)
	assert.Equal(t, "Fixed the solo", entries[0].ChangeSummary)

	rec = doJSON(t, h, http.MethodPost, "/admin/songs/"+uuid.NewString()+"/changelog",
		map[string]any{"changeSummary": "orphan"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdmin_RejectsBadRequests(t *testing.T) {
	h, _ := newTestRouter(t, nil, nil)
	_, album, song := createCatalog(t, h)

	tests := []struct {
		name   string
		method string
		target string
		body   any
		want   int
	}{
		{"missing name", http.MethodPost, "/admin/artists", map[string]any{}, http.StatusBadRequest},
		{"unknown field", http.MethodPost, "/admin/artists", map[string]any{"name": "X", "numTabs": 9}, http.StatusBadRequest},
		{"malformed json", http.MethodPost, "/admin/artists", "{", http.StatusBadRequest},
		{"empty body", http.MethodPost, "/admin/tabbers", "", http.StatusBadRequest},
		{"invalid id", http.MethodGet, "/admin/artists/not-a-uuid", nil, http.StatusBadRequest},
		{"unknown artist", http.MethodGet, "/admin/artists/" + uuid.NewString(), nil, http.StatusNotFound},
		{"album for unknown artist", http.MethodPost, "/admin/albums",
			map[string]any{"title": "Lost", "artistId": uuid.New()}, http.StatusNotFound},
		{"release year too long", http.MethodPost, "/admin/albums",
			map[string]any{"title": "Long", "artistId": uuid.New(), "releaseYear": "20011"}, http.StatusBadRequest},
		{"song for unknown album", http.MethodPost, "/admin/songs",
			map[string]any{"title": "Stray", "albumId": uuid.New(), "artistId": album.ArtistID}, http.StatusBadRequest},
		{"difficulty out of range", http.MethodPost, "/admin/songs",
			map[string]any{"title": "Hard", "albumId": album.ID, "difficulty": 5}, http.StatusBadRequest},
		{"negative riffs", http.MethodPut, "/admin/songs/" + song.ID.String(),
			map[string]any{"title": "Baz", "albumId": album.ID, "riffs": -1}, http.StatusBadRequest},
		{"update unknown tabber", http.MethodPut, "/admin/tabbers/" + uuid.NewString(),
			map[string]any{"name": "Nobody"}, http.StatusNotFound},
		{"bad albumId filter", http.MethodGet, "/admin/songs?albumId=x", nil, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, h, tt.method, tt.target, tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
			assert.Equal(t, "error", decodeBody[ErrorResponse](t, rec).Status)
		})
	}
}

func TestAdmin_Recount(t *testing.T) {
	h, db := newTestRouter(t, nil, nil)
	_, album, _ := createCatalog(t, h)

	require.NoError(t, db.Model(&models.Album{}).Where("id = ?", album.ID).UpdateColumn("num_tabs", 42).Error)

	rec := doJSON(t, h, http.MethodPost, "/admin/recount", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, h, http.MethodGet, "/admin/albums/"+album.ID.String(), nil)
	assert.Equal(t, 1, decodeBody[models.Album](t, rec).NumTabs)
}
