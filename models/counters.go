package models

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// RecountAlbumTabs sets albums.num_tabs to the number of songs referencing the album. The
// count and the write are one statement, so a concurrent writer never sees them apart.
func RecountAlbumTabs(tx *gorm.DB, albumID uuid.UUID) error {
	if albumID == uuid.Nil {
		return nil
	}
	count := tx.Model(&Song{}).Select("COUNT(*)").Where("album_id = ?", albumID)
	if err := tx.Model(&Album{}).Where("id = ?", albumID).UpdateColumn("num_tabs", count).Error; err != nil {
		return err
	}
	log.Debug().Str("albumId", albumID.String()).Msg("recounted album tabs")
	return nil
}

// RecountArtistTabs sets artists.num_tabs to the number of songs referencing the artist.
func RecountArtistTabs(tx *gorm.DB, artistID uuid.UUID) error {
	if artistID == uuid.Nil {
		return nil
	}
	count := tx.Model(&Song{}).Select("COUNT(*)").Where("artist_id = ?", artistID)
	if err := tx.Model(&Artist{}).Where("id = ?", artistID).UpdateColumn("num_tabs", count).Error; err != nil {
		return err
	}
	log.Debug().Str("artistId", artistID.String()).Msg("recounted artist tabs")
	return nil
}

// RecountAllTabs reconciles every album and artist counter with the song table.
func RecountAllTabs(tx *gorm.DB) error {
	if err := tx.Exec("UPDATE albums SET num_tabs = (SELECT COUNT(*) FROM songs WHERE songs.album_id = albums.id)").Error; err != nil {
		return err
	}
	return tx.Exec("UPDATE artists SET num_tabs = (SELECT COUNT(*) FROM songs WHERE songs.artist_id = artists.id)").Error
}

func recountSongParents(tx *gorm.DB, albumID, artistID uuid.UUID) error {
	if err := RecountAlbumTabs(tx, albumID); err != nil {
		return err
	}
	return RecountArtistTabs(tx, artistID)
}

// deleteSongDependents removes tabber links and change log entries of the songs selected
// by songIDs, a subquery returning song ids.
func deleteSongDependents(tx *gorm.DB, songIDs *gorm.DB) error {
	if err := tx.Exec("DELETE FROM song_tabbers WHERE song_id IN (?)", songIDs).Error; err != nil {
		return err
	}
	return tx.Exec("DELETE FROM song_change_logs WHERE song_id IN (?)", songIDs).Error
}

func withoutHooks(tx *gorm.DB) *gorm.DB {
	return tx.Session(&gorm.Session{NewDB: true, SkipHooks: true})
}

// moveAlbumSongs hands the album's songs credited to the previous artist over to the new
// one and recounts both artists.
func moveAlbumSongs(tx *gorm.DB, albumID, from, to uuid.UUID) error {
	if err := withoutHooks(tx).Model(&Song{}).
		Where("album_id = ? AND artist_id = ?", albumID, from).
		UpdateColumn("artist_id", to).Error; err != nil {
		return err
	}
	if err := RecountArtistTabs(tx, from); err != nil {
		return err
	}
	return RecountArtistTabs(tx, to)
}

// cascadeAlbum deletes the album's songs without running per-song hooks and returns the
// distinct artists those songs were credited to, so the caller can recount each of them.
func cascadeAlbum(tx *gorm.DB, albumID uuid.UUID) ([]uuid.UUID, error) {
	var credited []uuid.UUID
	if err := tx.Model(&Song{}).Distinct("artist_id").Where("album_id = ?", albumID).Pluck("artist_id", &credited).Error; err != nil {
		return nil, err
	}
	if err := deleteSongDependents(tx, tx.Model(&Song{}).Select("id").Where("album_id = ?", albumID)); err != nil {
		return nil, err
	}
	if err := withoutHooks(tx).Where("album_id = ?", albumID).Delete(&Song{}).Error; err != nil {
		return nil, err
	}
	return credited, nil
}

// cascadeArtist deletes the artist's albums and every song that references the artist or
// one of those albums. Albums and artists outside the cascade that lose songs are recounted.
func cascadeArtist(tx *gorm.DB, artistID uuid.UUID) error {
	ownedAlbums := tx.Model(&Album{}).Select("id").Where("artist_id = ?", artistID)

	var songs []Song
	if err := tx.Select("id", "album_id", "artist_id").
		Where("artist_id = ? OR album_id IN (?)", artistID, ownedAlbums).
		Find(&songs).Error; err != nil {
		return err
	}
	if len(songs) > 0 {
		ids := make([]uuid.UUID, 0, len(songs))
		for _, s := range songs {
			ids = append(ids, s.ID)
		}
		if err := deleteSongDependents(tx, tx.Model(&Song{}).Select("id").Where("id IN ?", ids)); err != nil {
			return err
		}
		if err := withoutHooks(tx).Where("id IN ?", ids).Delete(&Song{}).Error; err != nil {
			return err
		}
	}

	var owned []Album
	if err := tx.Select("id").Where("artist_id = ?", artistID).Find(&owned).Error; err != nil {
		return err
	}
	ownedSet := make(map[uuid.UUID]bool, len(owned))
	for _, al := range owned {
		ownedSet[al.ID] = true
	}
	if err := withoutHooks(tx).Where("artist_id = ?", artistID).Delete(&Album{}).Error; err != nil {
		return err
	}

	recountedAlbums := map[uuid.UUID]bool{}
	recountedArtists := map[uuid.UUID]bool{}
	for _, s := range songs {
		if !ownedSet[s.AlbumID] && !recountedAlbums[s.AlbumID] {
			recountedAlbums[s.AlbumID] = true
			if err := RecountAlbumTabs(tx, s.AlbumID); err != nil {
				return err
			}
		}
		if s.ArtistID != artistID && !recountedArtists[s.ArtistID] {
			recountedArtists[s.ArtistID] = true
			if err := RecountArtistTabs(tx, s.ArtistID); err != nil {
				return err
			}
		}
	}
	return nil
}
