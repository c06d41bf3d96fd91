package database

import (
	"context"

	"gorm.io/gorm"

	"github.com/afras-tabs/catalog-backend/models"
)

// CounterRepo runs counter maintenance that is not tied to a single write.
type CounterRepo struct {
	db *gorm.DB
}

func NewCounterRepo(db *gorm.DB) *CounterRepo {
	return &CounterRepo{db}
}

// RecountAll rewrites every album and artist num_tabs from the song table in one transaction
func (r *CounterRepo) RecountAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Transaction(models.RecountAllTabs)
}
