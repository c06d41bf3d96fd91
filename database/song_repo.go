package database

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/afras-tabs/catalog-backend/models"
)

// AllTunings is the tuning filter value meaning "no tuning filter".
const AllTunings = "All Tunings"

// SongFilter narrows the public song listing. Filler songs are never listed.
type SongFilter struct {
	ListOptions
	Tuning        string
	MinDifficulty *int
	MaxDifficulty *int
}

type SongRepo struct {
	db *gorm.DB
}

func NewSongRepo(db *gorm.DB) *SongRepo {
	return &SongRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *SongRepo) GetDB() *gorm.DB {
	return r.db
}

// FindByID returns a song with its artist, album and tabbers
func (r *SongRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Song, error) {
	var song models.Song
	err := r.db.WithContext(ctx).
		Preload("Artist").Preload("Album").Preload("Tabbers").
		First(&song, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &song, nil
}

// FindByPath returns the non-filler song published under /tabs/<artist>/<album>/<song>
func (r *SongRepo) FindByPath(ctx context.Context, artistSlug, albumSlug, songSlug string) (*models.Song, error) {
	var song models.Song
	err := r.db.WithContext(ctx).
		Preload("Artist").Preload("Album").Preload("Tabbers").
		Joins("JOIN artists ON artists.id = songs.artist_id").
		Joins("JOIN albums ON albums.id = songs.album_id").
		Where("artists.slug = ? AND albums.slug = ? AND songs.slug = ? AND songs.is_filler = ?",
			artistSlug, albumSlug, songSlug, false).
		Select("songs.*").
		Order("songs.date_added").
		Take(&song).Error
	if err != nil {
		return nil, err
	}
	return &song, nil
}

// Related returns up to limit other non-filler songs from the same album
func (r *SongRepo) Related(ctx context.Context, song *models.Song, limit int) ([]*models.Song, error) {
	songs := []*models.Song{}
	err := r.db.WithContext(ctx).
		Preload("Artist").Preload("Album").
		Where("album_id = ? AND id <> ? AND is_filler = ?", song.AlbumID, song.ID, false).
		Order("track_num, title").
		Limit(limit).
		Find(&songs).Error
	return songs, err
}

// ListByAlbum returns the album's full track list, filler included
func (r *SongRepo) ListByAlbum(ctx context.Context, albumID uuid.UUID) ([]*models.Song, error) {
	songs := []*models.Song{}
	err := r.db.WithContext(ctx).
		Preload("Artist").
		Where("album_id = ?", albumID).
		Order("track_num, title").
		Find(&songs).Error
	return songs, err
}

// ListByArtist returns the artist's non-filler songs, newest first
func (r *SongRepo) ListByArtist(ctx context.Context, artistID uuid.UUID) ([]*models.Song, error) {
	songs := []*models.Song{}
	err := r.db.WithContext(ctx).
		Preload("Album").
		Where("artist_id = ? AND is_filler = ?", artistID, false).
		Order("date_added DESC, id").
		Find(&songs).Error
	return songs, err
}

// List returns one page of non-filler songs matching the filter. The search matches the
// song title, the artist name or the album title.
func (r *SongRepo) List(ctx context.Context, f SongFilter) (*Page[models.Song], error) {
	q := r.db.WithContext(ctx).Model(&models.Song{}).Where("songs.is_filler = ?", false)
	if f.Search != "" {
		pattern := containsPattern(f.Search)
		q = q.Joins("JOIN artists ON artists.id = songs.artist_id").
			Joins("JOIN albums ON albums.id = songs.album_id").
			Where(likeClause("songs.title")+" OR "+likeClause("artists.name")+" OR "+likeClause("albums.title"),
				pattern, pattern, pattern)
	}
	if f.Tuning != "" && f.Tuning != AllTunings {
		q = q.Where("songs.tuning = ?", f.Tuning)
	}
	if f.MinDifficulty != nil {
		q = q.Where("songs.difficulty >= ?", *f.MinDifficulty)
	}
	if f.MaxDifficulty != nil {
		q = q.Where("songs.difficulty <= ?", *f.MaxDifficulty)
	}

	order := "songs.title ASC, songs.id"
	switch f.Sort {
	case SortZToA:
		order = "songs.title DESC, songs.id"
	case SortRecentlyAdded, SortMostPopular:
		order = "songs.date_added DESC, songs.id"
	}

	return fetchPage[models.Song](q, f.ListOptions, "songs.*", order, "Artist", "Album")
}

// Latest returns the n most recently added non-filler songs
func (r *SongRepo) Latest(ctx context.Context, n int) ([]*models.Song, error) {
	songs := []*models.Song{}
	err := r.db.WithContext(ctx).
		Preload("Artist").Preload("Album").
		Where("is_filler = ?", false).
		Order("date_added DESC, id").
		Limit(n).
		Find(&songs).Error
	return songs, err
}

// Add inserts a new song; the album and artist counters are recounted in the same transaction
func (r *SongRepo) Add(ctx context.Context, song *models.Song) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(song).Error
}

// AddWithTabbers inserts a new song credited to the given tabbers in one transaction
func (r *SongRepo) AddWithTabbers(ctx context.Context, song *models.Song, tabberIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(song).Error; err != nil {
			return err
		}
		return replaceTabbers(tx, song.ID, tabberIDs)
	})
}

// Update saves the song's editable fields and reloads it with its relations
func (r *SongRepo) Update(ctx context.Context, song *models.Song) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return updateSong(tx, song, nil)
	})
}

// UpdateWithTabbers saves the song and replaces its tabbers in one transaction
func (r *SongRepo) UpdateWithTabbers(ctx context.Context, song *models.Song, tabberIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return updateSong(tx, song, func() error {
			return replaceTabbers(tx, song.ID, tabberIDs)
		})
	})
}

func updateSong(tx *gorm.DB, song *models.Song, beforeReload func() error) error {
	if err := tx.Select("id").Take(&models.Song{}, "id = ?", song.ID).Error; err != nil {
		return err
	}
	if err := tx.Omit(clause.Associations, "DateAdded").Save(song).Error; err != nil {
		return err
	}
	if beforeReload != nil {
		if err := beforeReload(); err != nil {
			return err
		}
	}
	return tx.Preload("Artist").Preload("Album").Preload("Tabbers").First(song, "id = ?", song.ID).Error
}

// Delete removes a song; its album and artist are recounted in the same transaction
func (r *SongRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var song models.Song
		if err := tx.First(&song, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&song).Error
	})
}

// SetTabbers replaces the tabbers credited on a song. Every id must exist.
func (r *SongRepo) SetTabbers(ctx context.Context, songID uuid.UUID, tabberIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").Take(&models.Song{}, "id = ?", songID).Error; err != nil {
			return err
		}
		return replaceTabbers(tx, songID, tabberIDs)
	})
}

func replaceTabbers(tx *gorm.DB, songID uuid.UUID, tabberIDs []uuid.UUID) error {
	unique := make([]uuid.UUID, 0, len(tabberIDs))
	seen := make(map[uuid.UUID]bool, len(tabberIDs))
	for _, id := range tabberIDs {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	if len(unique) > 0 {
		var found int64
		if err := tx.Model(&models.Tabber{}).Where("id IN ?", unique).Count(&found).Error; err != nil {
			return err
		}
		if found != int64(len(unique)) {
			return gorm.ErrRecordNotFound
		}
	}

	if err := tx.Exec("DELETE FROM song_tabbers WHERE song_id = ?", songID).Error; err != nil {
		return err
	}
	if len(unique) == 0 {
		return nil
	}
	links := make([]map[string]any, len(unique))
	for i, id := range unique {
		links[i] = map[string]any{"song_id": songID, "tabber_id": id}
	}
	return tx.Table("song_tabbers").Create(links).Error
}
