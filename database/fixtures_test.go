package database_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/afras-tabs/catalog-backend/database"
	"github.com/afras-tabs/catalog-backend/dbtest"
	"github.com/afras-tabs/catalog-backend/models"
)

func newDatabase(t *testing.T) (database.Database, *gorm.DB) {
	t.Helper()
	db := dbtest.Open(t)
	return database.New(db), db
}

func addArtist(t *testing.T, db *gorm.DB, name string) *models.Artist {
	t.Helper()
	artist := &models.Artist{Name: name}
	require.NoError(t, db.Create(artist).Error)
	return artist
}

func addAlbum(t *testing.T, db *gorm.DB, artist *models.Artist, title, year string) *models.Album {
	t.Helper()
	album := &models.Album{Title: title, ArtistID: artist.ID, ReleaseYear: year}
	require.NoError(t, db.Create(album).Error)
	return album
}

type songOpt func(*models.Song)

func filler(s *models.Song) { s.IsFiller = true }

func verified(s *models.Song) { s.ArtistVerified = true }

func tuning(t string) songOpt {
	return func(s *models.Song) { s.Tuning = &t }
}

func difficulty(d int) songOpt {
	return func(s *models.Song) { s.Difficulty = &d }
}

func track(n int) songOpt {
	return func(s *models.Song) { s.TrackNum = &n }
}

func riffs(n int) songOpt {
	return func(s *models.Song) { s.Riffs = n }
}

func duration(seconds int) songOpt {
	return func(s *models.Song) { s.DurationSeconds = &seconds }
}

func added(at time.Time) songOpt {
	return func(s *models.Song) { s.DateAdded = at }
}

func addSong(t *testing.T, db *gorm.DB, album *models.Album, title string, opts ...songOpt) *models.Song {
	t.Helper()
	song := &models.Song{Title: title, AlbumID: album.ID, ArtistID: album.ArtistID}
	for _, opt := range opts {
		opt(song)
	}
	require.NoError(t, db.Create(song).Error)
	return song
}

func titles(songs []models.Song) []string {
	out := make([]string, len(songs))
	for i, s := range songs {
		out[i] = s.Title
	}
	return out
}
