package models_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/afras-tabs/catalog-backend/dbtest"
	"github.com/afras-tabs/catalog-backend/errs"
	"github.com/afras-tabs/catalog-backend/models"
)

func createArtist(t *testing.T, db *gorm.DB, name string) *models.Artist {
	t.Helper()
	artist := &models.Artist{Name: name}
	require.NoError(t, db.Create(artist).Error)
	return artist
}

func createAlbum(t *testing.T, db *gorm.DB, artist *models.Artist, title string) *models.Album {
	t.Helper()
	album := &models.Album{Title: title, ArtistID: artist.ID, ReleaseYear: "2001"}
	require.NoError(t, db.Create(album).Error)
	return album
}

func createSong(t *testing.T, db *gorm.DB, album *models.Album, title string, filler bool) *models.Song {
	t.Helper()
	song := &models.Song{Title: title, ArtistID: album.ArtistID, AlbumID: album.ID, IsFiller: filler}
	require.NoError(t, db.Create(song).Error)
	return song
}

func reloadAlbum(t *testing.T, db *gorm.DB, id uuid.UUID) models.Album {
	t.Helper()
	var album models.Album
	require.NoError(t, db.First(&album, "id = ?", id).Error)
	return album
}

func reloadArtist(t *testing.T, db *gorm.DB, id uuid.UUID) models.Artist {
	t.Helper()
	var artist models.Artist
	require.NoError(t, db.First(&artist, "id = ?", id).Error)
	return artist
}

func reloadSong(t *testing.T, db *gorm.DB, id uuid.UUID) models.Song {
	t.Helper()
	var song models.Song
	require.NoError(t, db.First(&song, "id = ?", id).Error)
	return song
}

func countSongs(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Song{}).Count(&n).Error)
	return n
}

func TestArtist_DerivedFields(t *testing.T) {
	db := dbtest.Open(t)

	artist := createArtist(t, db, "Foo Fighters")

	stored := reloadArtist(t, db, artist.ID)
	assert.NotEqual(t, uuid.Nil, stored.ID)
	assert.Equal(t, "foo-fighters", stored.Slug)
	assert.Equal(t, "/tabs/foo-fighters", stored.Path)
	assert.Equal(t, "https://f005.backblazeb2.com/file/afras-tabs-artist-images/foo-fighters.jpg", stored.ImageURL)
	assert.Equal(t, 0, stored.NumTabs)
}

func TestArtist_CounterCannotBeSeededOnCreate(t *testing.T) {
	db := dbtest.Open(t)

	artist := &models.Artist{Name: "Foo", NumTabs: 12}
	require.NoError(t, db.Create(artist).Error)

	assert.Equal(t, 0, reloadArtist(t, db, artist.ID).NumTabs)
}

func TestAlbum_DerivedFields(t *testing.T) {
	db := dbtest.Open(t)
	artist := createArtist(t, db, "Foo")

	album := createAlbum(t, db, artist, "The Colour and the Shape")

	stored := reloadAlbum(t, db, album.ID)
	assert.Equal(t, "the-colour-and-the-shape", stored.Slug)
	assert.Equal(t, "/tabs/foo/the-colour-and-the-shape", stored.Path)
	assert.Equal(t, "https://f005.backblazeb2.com/file/afras-tabs-album-arts/the-colour-and-the-shape.jpg", stored.ImageURL)
}

func TestAlbum_UnknownArtistAbortsSave(t *testing.T) {
	db := dbtest.Open(t)

	err := db.Create(&models.Album{Title: "Orphan", ArtistID: uuid.New()}).Error

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	var n int64
	require.NoError(t, db.Model(&models.Album{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestTabber_DerivedFields(t *testing.T) {
	db := dbtest.Open(t)
	yt := "https://youtube.com/@someone"

	tabber := &models.Tabber{Name: "Jöhn Smith", YouTube: &yt}
	require.NoError(t, db.Create(tabber).Error)

	var stored models.Tabber
	require.NoError(t, db.First(&stored, "id = ?", tabber.ID).Error)
	assert.Equal(t, "john-smith", stored.Slug)
	assert.Equal(t, "https://f005.backblazeb2.com/file/afras-tabs-tabber-pictures/john-smith.jpg", stored.ImageURL)
	assert.Equal(t, yt, *stored.YouTube)
}

func TestCatalogScenario(t *testing.T) {
	db := dbtest.Open(t)

	artist := createArtist(t, db, "Foo")
	assert.Equal(t, 0, reloadArtist(t, db, artist.ID).NumTabs)

	album := createAlbum(t, db, artist, "Bar")
	assert.Equal(t, 0, reloadAlbum(t, db, album.ID).NumTabs)

	song := createSong(t, db, album, "Baz", false)
	assert.Equal(t, 1, reloadAlbum(t, db, album.ID).NumTabs)
	assert.Equal(t, 1, reloadArtist(t, db, artist.ID).NumTabs)

	stored := reloadSong(t, db, song.ID)
	assert.Equal(t, "/tabs/foo/bar/baz", stored.Path)
	require.NotNil(t, stored.TabFiles)
	assert.Equal(t, "https://f005.backblazeb2.com/file/afras-tabs-tab-files/foo/bar/baz", *stored.TabFiles)

	require.NoError(t, db.Delete(&stored).Error)
	assert.Equal(t, 0, reloadAlbum(t, db, album.ID).NumTabs)
	assert.Equal(t, 0, reloadArtist(t, db, artist.ID).NumTabs)
}

func TestSong_Defaults(t *testing.T) {
	db := dbtest.Open(t)
	album := createAlbum(t, db, createArtist(t, db, "Foo"), "Bar")

	song := reloadSong(t, db, createSong(t, db, album, "Baz", false).ID)

	require.NotNil(t, song.Difficulty)
	assert.Equal(t, 1, *song.Difficulty)
	require.NotNil(t, song.TabDescription)
	assert.Equal(t, models.DefaultTabDescription, *song.TabDescription)
	assert.Equal(t, 0, song.Riffs)
	assert.False(t, song.DateAdded.IsZero())
}

func TestSong_Filler(t *testing.T) {
	db := dbtest.Open(t)
	artist := createArtist(t, db, "Foo")
	album := createAlbum(t, db, artist, "Bar")

	filler := reloadSong(t, db, createSong(t, db, album, "Interlude", true).ID)

	assert.Equal(t, "interlude", filler.Slug)
	assert.Equal(t, "", filler.Path)
	assert.Nil(t, filler.TabFiles)
	_, ok := filler.TabFilesLocation()
	assert.False(t, ok)

	// every song row counts, filler included
	assert.Equal(t, 1, reloadAlbum(t, db, album.ID).NumTabs)
	assert.Equal(t, 1, reloadArtist(t, db, artist.ID).NumTabs)
}

func TestSong_BecomingFillerClearsPath(t *testing.T) {
	db := dbtest.Open(t)
	album := createAlbum(t, db, createArtist(t, db, "Foo"), "Bar")
	song := reloadSong(t, db, createSong(t, db, album, "Baz", false).ID)

	song.IsFiller = true
	require.NoError(t, db.Save(&song).Error)

	stored := reloadSong(t, db, song.ID)
	assert.Equal(t, "", stored.Path)
	assert.Nil(t, stored.TabFiles)
}

func TestSong_InheritsArtistFromAlbum(t *testing.T) {
	db := dbtest.Open(t)
	artist := createArtist(t, db, "Foo")
	album := createAlbum(t, db, artist, "Bar")

	song := &models.Song{Title: "Baz", AlbumID: album.ID}
	require.NoError(t, db.Create(song).Error)

	assert.Equal(t, artist.ID, song.ArtistID)
	assert.Equal(t, "/tabs/foo/bar/baz", reloadSong(t, db, song.ID).Path)
	assert.Equal(t, 1, reloadArtist(t, db, artist.ID).NumTabs)
}

func TestSong_WithoutResolvableArtistIsRejected(t *testing.T) {
	db := dbtest.Open(t)

	err := db.Create(&models.Song{Title: "Lost", AlbumID: uuid.New()}).Error

	require.Error(t, err)
	assert.True(t, errs.IsSongArtistRequiredError(err))
	assert.Zero(t, countSongs(t, db))
}

func TestSong_UnknownAlbumIsInvalidReference(t *testing.T) {
	db := dbtest.Open(t)
	artist := createArtist(t, db, "Foo")
	missing := uuid.New()

	err := db.Create(&models.Song{Title: "Stray", AlbumID: missing, ArtistID: artist.ID}).Error

	require.Error(t, err)
	assert.True(t, errs.IsForeignKeyConstraintError(err))
	var apiErr *errs.ApiErr
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "albumId", apiErr.Field)
	assert.Contains(t, apiErr.Details, missing.String())
	assert.Zero(t, countSongs(t, db))
}

func TestSong_FillerInheritsArtistFromAlbum(t *testing.T) {
	db := dbtest.Open(t)
	artist := createArtist(t, db, "Foo")
	album := createAlbum(t, db, artist, "Bar")

	filler := &models.Song{Title: "Interlude", AlbumID: album.ID, IsFiller: true}
	require.NoError(t, db.Create(filler).Error)

	stored := reloadSong(t, db, filler.ID)
	assert.Equal(t, artist.ID, stored.ArtistID)
	assert.Equal(t, "", stored.Path)
	assert.Nil(t, stored.TabFiles)
	assert.Equal(t, 1, reloadArtist(t, db, artist.ID).NumTabs)

	// an update that drops the artist falls back to the album's again
	stored.ArtistID = uuid.Nil
	stored.Title = "Outro"
	require.NoError(t, db.Save(&stored).Error)
	assert.Equal(t, artist.ID, reloadSong(t, db, filler.ID).ArtistID)
	assert.Equal(t, 1, reloadArtist(t, db, artist.ID).NumTabs)
}

func TestSong_DifficultyBounds(t *testing.T) {
	db := dbtest.Open(t)
	album := createAlbum(t, db, createArtist(t, db, "Foo"), "Bar")

	for _, d := range []int{0, 5} {
		d := d
		err := db.Create(&models.Song{Title: "Hard", AlbumID: album.ID, ArtistID: album.ArtistID, Difficulty: &d}).Error
		assert.True(t, errs.IsInvalidFieldError(err), "difficulty %d", d)
	}
	assert.Zero(t, countSongs(t, db))
	assert.Equal(t, 0, reloadAlbum(t, db, album.ID).NumTabs)
}

func TestSong_MoveBetweenAlbumsRecountsBoth(t *testing.T) {
	db := dbtest.Open(t)
	foo := createArtist(t, db, "Foo")
	qux := createArtist(t, db, "Qux")
	bar := createAlbum(t, db, foo, "Bar")
	other := createAlbum(t, db, qux, "Other")
	createSong(t, db, bar, "Stays", false)
	song := reloadSong(t, db, createSong(t, db, bar, "Moves", false).ID)
	require.Equal(t, 2, reloadAlbum(t, db, bar.ID).NumTabs)

	song.AlbumID = other.ID
	song.ArtistID = qux.ID
	require.NoError(t, db.Save(&song).Error)

	assert.Equal(t, 1, reloadAlbum(t, db, bar.ID).NumTabs)
	assert.Equal(t, 1, reloadAlbum(t, db, other.ID).NumTabs)
	assert.Equal(t, 1, reloadArtist(t, db, foo.ID).NumTabs)
	assert.Equal(t, 1, reloadArtist(t, db, qux.ID).NumTabs)
	assert.Equal(t, "/tabs/qux/other/moves", reloadSong(t, db, song.ID).Path)
}

func TestSong_DeleteByPrimaryKeyStillRecounts(t *testing.T) {
	db := dbtest.Open(t)
	artist := createArtist(t, db, "Foo")
	album := createAlbum(t, db, artist, "Bar")
	song := createSong(t, db, album, "Baz", false)

	require.NoError(t, db.Delete(&models.Song{ID: song.ID}).Error)

	assert.Equal(t, 0, reloadAlbum(t, db, album.ID).NumTabs)
	assert.Equal(t, 0, reloadArtist(t, db, artist.ID).NumTabs)
}

func TestSong_DeleteRemovesTabberLinksAndChangeLog(t *testing.T) {
	db := dbtest.Open(t)
	album := createAlbum(t, db, createArtist(t, db, "Foo"), "Bar")
	tabber := &models.Tabber{Name: "Someone"}
	require.NoError(t, db.Create(tabber).Error)
	song := &models.Song{Title: "Baz", AlbumID: album.ID, Tabbers: []models.Tabber{*tabber}}
	require.NoError(t, db.Create(song).Error)
	require.NoError(t, db.Create(&models.SongChangeLog{SongID: song.ID, ChangeSummary: "first version"}).Error)

	require.NoError(t, db.Delete(song).Error)

	var links, logs int64
	require.NoError(t, db.Table("song_tabbers").Count(&links).Error)
	require.NoError(t, db.Model(&models.SongChangeLog{}).Count(&logs).Error)
	assert.Zero(t, links)
	assert.Zero(t, logs)
	var tabbers int64
	require.NoError(t, db.Model(&models.Tabber{}).Count(&tabbers).Error)
	assert.Equal(t, int64(1), tabbers)
}

func TestAlbum_DeleteRecountsArtistAfterCascade(t *testing.T) {
	db := dbtest.Open(t)
	artist := createArtist(t, db, "Foo")
	doomed := createAlbum(t, db, artist, "Doomed")
	kept := createAlbum(t, db, artist, "Kept")
	createSong(t, db, doomed, "One", false)
	createSong(t, db, doomed, "Two", true)
	createSong(t, db, kept, "Three", false)
	require.Equal(t, 3, reloadArtist(t, db, artist.ID).NumTabs)

	stored := reloadAlbum(t, db, doomed.ID)
	require.NoError(t, db.Delete(&stored).Error)

	assert.Equal(t, 1, reloadArtist(t, db, artist.ID).NumTabs)
	assert.Equal(t, int64(1), countSongs(t, db))
	assert.Equal(t, 1, reloadAlbum(t, db, kept.ID).NumTabs)
}

func TestAlbum_DeleteRecountsGuestArtists(t *testing.T) {
	db := dbtest.Open(t)
	owner := createArtist(t, db, "Foo")
	guest := createArtist(t, db, "Guest")
	album := createAlbum(t, db, owner, "Bar")
	createSong(t, db, album, "Own", false)
	require.NoError(t, db.Create(&models.Song{Title: "Feature", AlbumID: album.ID, ArtistID: guest.ID}).Error)
	require.Equal(t, 1, reloadArtist(t, db, guest.ID).NumTabs)

	require.NoError(t, db.Delete(&models.Album{ID: album.ID}).Error)

	assert.Zero(t, countSongs(t, db))
	assert.Equal(t, 0, reloadArtist(t, db, owner.ID).NumTabs)
	assert.Equal(t, 0, reloadArtist(t, db, guest.ID).NumTabs)
}

func TestAlbum_MoveKeepsGuestCredits(t *testing.T) {
	db := dbtest.Open(t)
	owner := createArtist(t, db, "Foo")
	buyer := createArtist(t, db, "Qux")
	guest := createArtist(t, db, "Guest")
	album := createAlbum(t, db, owner, "Bar")
	createSong(t, db, album, "Own", false)
	feature := &models.Song{Title: "Feature", AlbumID: album.ID, ArtistID: guest.ID}
	require.NoError(t, db.Create(feature).Error)

	stored := reloadAlbum(t, db, album.ID)
	stored.ArtistID = buyer.ID
	require.NoError(t, db.Save(&stored).Error)

	assert.Equal(t, guest.ID, reloadSong(t, db, feature.ID).ArtistID)
	assert.Equal(t, 1, reloadArtist(t, db, guest.ID).NumTabs)
	assert.Equal(t, 1, reloadArtist(t, db, buyer.ID).NumTabs)
	assert.Equal(t, 0, reloadArtist(t, db, owner.ID).NumTabs)
	assert.Equal(t, 2, reloadAlbum(t, db, album.ID).NumTabs)
}

func TestAlbum_DeleteByPrimaryKeyLooksUpArtist(t *testing.T) {
	db := dbtest.Open(t)
	artist := createArtist(t, db, "Foo")
	album := createAlbum(t, db, artist, "Bar")
	createSong(t, db, album, "Baz", false)

	require.NoError(t, db.Delete(&models.Album{ID: album.ID}).Error)

	assert.Equal(t, 0, reloadArtist(t, db, artist.ID).NumTabs)
	assert.Zero(t, countSongs(t, db))
}

func TestArtist_DeleteCascades(t *testing.T) {
	db := dbtest.Open(t)
	foo := createArtist(t, db, "Foo")
	guest := createArtist(t, db, "Guest")
	bar := createAlbum(t, db, foo, "Bar")
	guestAlbum := createAlbum(t, db, guest, "Guest Album")
	createSong(t, db, bar, "Baz", false)
	// a Foo song filed on another artist's album
	require.NoError(t, db.Create(&models.Song{Title: "Feature", AlbumID: guestAlbum.ID, ArtistID: foo.ID}).Error)
	createSong(t, db, guestAlbum, "Own", false)
	require.Equal(t, 2, reloadAlbum(t, db, guestAlbum.ID).NumTabs)

	stored := reloadArtist(t, db, foo.ID)
	require.NoError(t, db.Delete(&stored).Error)

	var albums int64
	require.NoError(t, db.Model(&models.Album{}).Count(&albums).Error)
	assert.Equal(t, int64(1), albums)
	assert.Equal(t, int64(1), countSongs(t, db))
	assert.Equal(t, 1, reloadAlbum(t, db, guestAlbum.ID).NumTabs)
	assert.Equal(t, 1, reloadArtist(t, db, guest.ID).NumTabs)
}

func TestArtist_RenamePropagatesPaths(t *testing.T) {
	db := dbtest.Open(t)
	artist := createArtist(t, db, "Foo")
	album := createAlbum(t, db, artist, "Bar")
	song := createSong(t, db, album, "Baz", false)
	filler := createSong(t, db, album, "Skit", true)

	stored := reloadArtist(t, db, artist.ID)
	stored.Name = "Foo Reborn"
	require.NoError(t, db.Save(&stored).Error)

	assert.Equal(t, "/tabs/foo-reborn", reloadArtist(t, db, artist.ID).Path)
	assert.Equal(t, "/tabs/foo-reborn/bar", reloadAlbum(t, db, album.ID).Path)
	renamed := reloadSong(t, db, song.ID)
	assert.Equal(t, "/tabs/foo-reborn/bar/baz", renamed.Path)
	require.NotNil(t, renamed.TabFiles)
	assert.Equal(t, "https://f005.backblazeb2.com/file/afras-tabs-tab-files/foo-reborn/bar/baz", *renamed.TabFiles)
	assert.Equal(t, "", reloadSong(t, db, filler.ID).Path)
}

func TestAlbum_RenamePropagatesSongPaths(t *testing.T) {
	db := dbtest.Open(t)
	album := createAlbum(t, db, createArtist(t, db, "Foo"), "Bar")
	song := createSong(t, db, album, "Baz", false)

	stored := reloadAlbum(t, db, album.ID)
	stored.Title = "Bar (Deluxe)"
	require.NoError(t, db.Save(&stored).Error)

	renamed := reloadSong(t, db, song.ID)
	assert.Equal(t, "/tabs/foo/bar-deluxe/baz", renamed.Path)
	assert.Equal(t, "https://f005.backblazeb2.com/file/afras-tabs-tab-files/foo/bar-deluxe/baz", *renamed.TabFiles)
	assert.Equal(t, 1, reloadAlbum(t, db, album.ID).NumTabs)
}

func TestSongChangeLog_AppendOnly(t *testing.T) {
	db := dbtest.Open(t)
	album := createAlbum(t, db, createArtist(t, db, "Foo"), "Bar")
	song := createSong(t, db, album, "Baz", false)
	entry := &models.SongChangeLog{SongID: song.ID, ChangeSummary: "fixed bridge timing"}
	require.NoError(t, db.Create(entry).Error)
	assert.False(t, entry.ChangeDate.IsZero())

	entry.ChangeSummary = "rewritten history"
	err := db.Save(entry).Error

	assert.True(t, errs.IsAppendOnlyError(err))
	var stored models.SongChangeLog
	require.NoError(t, db.First(&stored, "id = ?", entry.ID).Error)
	assert.Equal(t, "fixed bridge timing", stored.ChangeSummary)
}

func TestSongChangeLog_Validation(t *testing.T) {
	db := dbtest.Open(t)
	song := createSong(t, db, createAlbum(t, db, createArtist(t, db, "Foo"), "Bar"), "Baz", false)

	err := db.Create(&models.SongChangeLog{SongID: song.ID}).Error
	assert.True(t, errs.IsMissingRequiredFieldError(err))

	long := make([]rune, models.MaxChangeSummaryLength+1)
	for i := range long {
		long[i] = 'x'
	}
	err = db.Create(&models.SongChangeLog{SongID: song.ID, ChangeSummary: string(long)}).Error
	assert.True(t, errs.IsInvalidFieldError(err))
}

func TestRecountAllTabs_RepairsDrift(t *testing.T) {
	db := dbtest.Open(t)
	artist := createArtist(t, db, "Foo")
	album := createAlbum(t, db, artist, "Bar")
	createSong(t, db, album, "One", false)
	createSong(t, db, album, "Two", false)
	require.NoError(t, db.Model(&models.Album{}).Where("id = ?", album.ID).UpdateColumn("num_tabs", 40).Error)
	require.NoError(t, db.Model(&models.Artist{}).Where("id = ?", artist.ID).UpdateColumn("num_tabs", 0).Error)

	require.NoError(t, db.Transaction(models.RecountAllTabs))

	assert.Equal(t, 2, reloadAlbum(t, db, album.ID).NumTabs)
	assert.Equal(t, 2, reloadArtist(t, db, artist.ID).NumTabs)
}

func TestAssetLocations(t *testing.T) {
	t.Cleanup(func() { models.SetAssetBaseURL("") })
	models.SetAssetBaseURL("https://cdn.example.com/files/")

	artist := models.Artist{Slug: "foo"}
	assert.Equal(t, "https://cdn.example.com/files/afras-tabs-artist-images/foo.jpg", artist.ImageLocation().URL())

	song := models.Song{Path: "/tabs/foo/bar/baz"}
	loc, ok := song.TabFilesLocation()
	require.True(t, ok)
	assert.Equal(t, models.AssetLocation{Bucket: models.TabFilesBucket, Key: "foo/bar/baz"}, loc)

	models.SetAssetBaseURL("")
	assert.Equal(t, models.DefaultAssetBaseURL, models.AssetBaseURL())
}
