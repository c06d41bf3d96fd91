package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/afras-tabs/catalog-backend/models"
)

// ArtistListing is an artist with the number of its non-filler songs.
type ArtistListing struct {
	models.Artist
	SongCount int64 `json:"songCount"`
}

// AlbumListing is an album with the number of its non-filler songs.
type AlbumListing struct {
	models.Album
	SongCount int64 `json:"songCount"`
}

type songCountRow struct {
	ParentID  uuid.UUID
	SongCount int64
}

// nonFillerSongCounts counts non-filler songs grouped by column ("album_id" or "artist_id")
// for the given parent ids.
func nonFillerSongCounts(db *gorm.DB, column string, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}
	var rows []songCountRow
	err := db.Model(&models.Song{}).
		Select(column+" AS parent_id, COUNT(*) AS song_count").
		Where(column+" IN ? AND is_filler = ?", ids, false).
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.ParentID] = row.SongCount
	}
	return counts, nil
}

func artistListings(db *gorm.DB, artists []models.Artist) ([]ArtistListing, error) {
	ids := make([]uuid.UUID, len(artists))
	for i, a := range artists {
		ids[i] = a.ID
	}
	counts, err := nonFillerSongCounts(db, "artist_id", ids)
	if err != nil {
		return nil, err
	}
	listings := make([]ArtistListing, len(artists))
	for i, a := range artists {
		listings[i] = ArtistListing{Artist: a, SongCount: counts[a.ID]}
	}
	return listings, nil
}

func albumListings(db *gorm.DB, albums []models.Album) ([]AlbumListing, error) {
	ids := make([]uuid.UUID, len(albums))
	for i, al := range albums {
		ids[i] = al.ID
	}
	counts, err := nonFillerSongCounts(db, "album_id", ids)
	if err != nil {
		return nil, err
	}
	listings := make([]AlbumListing, len(albums))
	for i, al := range albums {
		listings[i] = AlbumListing{Album: al, SongCount: counts[al.ID]}
	}
	return listings, nil
}

func repage[T, U any](p *Page[T], items []U) *Page[U] {
	return &Page[U]{Items: items, Page: p.Page, PageSize: p.PageSize, TotalPages: p.TotalPages, Total: p.Total}
}
