package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func loadArtistSlug(tx *gorm.DB, id uuid.UUID) (*Artist, error) {
	var artist Artist
	if err := tx.Select("id", "slug").Where("id = ?", id).Take(&artist).Error; err != nil {
		return nil, err
	}
	return &artist, nil
}

func loadAlbumRefs(tx *gorm.DB, id uuid.UUID) (*Album, error) {
	var album Album
	if err := tx.Select("id", "slug", "artist_id").Where("id = ?", id).Take(&album).Error; err != nil {
		return nil, err
	}
	return &album, nil
}

// propagateArtistSlug rebuilds the paths of the artist's albums and non-filler songs from
// the artist's current slug.
func propagateArtistSlug(tx *gorm.DB, a *Artist) error {
	prefix := tabsPath(a.Slug) + "/"
	if err := tx.Exec(
		"UPDATE albums SET path = ? || slug WHERE artist_id = ?",
		prefix, a.ID,
	).Error; err != nil {
		return err
	}
	return tx.Exec(
		`UPDATE songs SET
			path = ? || (SELECT albums.slug FROM albums WHERE albums.id = songs.album_id) || '/' || slug,
			tab_files = ? || (SELECT albums.slug FROM albums WHERE albums.id = songs.album_id) || '/' || slug
		WHERE artist_id = ? AND is_filler = ?`,
		prefix,
		AssetLocation{Bucket: TabFilesBucket, Key: a.Slug + "/"}.URL(),
		a.ID, false,
	).Error
}

// propagateAlbumSlug rebuilds the paths of the album's non-filler songs from the album's
// current slug.
func propagateAlbumSlug(tx *gorm.DB, al *Album) error {
	return tx.Exec(
		`UPDATE songs SET
			path = ? || (SELECT artists.slug FROM artists WHERE artists.id = songs.artist_id) || '/' || ? || '/' || slug,
			tab_files = ? || (SELECT artists.slug FROM artists WHERE artists.id = songs.artist_id) || '/' || ? || '/' || slug
		WHERE album_id = ? AND is_filler = ?`,
		tabsRoot, al.Slug,
		assetBaseURL+"/"+TabFilesBucket+"/", al.Slug,
		al.ID, false,
	).Error
}
