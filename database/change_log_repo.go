package database

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/afras-tabs/catalog-backend/models"
)

// ChangeLogRepo appends to and reads song change logs. Entries are never edited or removed
// individually; they go away with their song.
type ChangeLogRepo struct {
	db *gorm.DB
}

func NewChangeLogRepo(db *gorm.DB) *ChangeLogRepo {
	return &ChangeLogRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *ChangeLogRepo) GetDB() *gorm.DB {
	return r.db
}

// Add appends an entry to a song's change log
func (r *ChangeLogRepo) Add(ctx context.Context, entry *models.SongChangeLog) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(entry).Error
}

// ListForSong returns a song's change log, newest first
func (r *ChangeLogRepo) ListForSong(ctx context.Context, songID uuid.UUID) ([]*models.SongChangeLog, error) {
	entries := []*models.SongChangeLog{}
	err := r.db.WithContext(ctx).
		Where("song_id = ?", songID).
		Order("change_date DESC, id").
		Find(&entries).Error
	return entries, err
}
