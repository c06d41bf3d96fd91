package database

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/afras-tabs/catalog-backend/models"
)

type TabberRepo struct {
	db *gorm.DB
}

func NewTabberRepo(db *gorm.DB) *TabberRepo {
	return &TabberRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *TabberRepo) GetDB() *gorm.DB {
	return r.db
}

// FindAll returns all tabbers ordered by name
func (r *TabberRepo) FindAll(ctx context.Context) ([]*models.Tabber, error) {
	tabbers := []*models.Tabber{}
	err := r.db.WithContext(ctx).Order("name").Find(&tabbers).Error
	return tabbers, err
}

// FindByID returns a tabber by its ID
func (r *TabberRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Tabber, error) {
	var tabber models.Tabber
	err := r.db.WithContext(ctx).First(&tabber, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &tabber, nil
}

// Add inserts a new tabber into the database
func (r *TabberRepo) Add(ctx context.Context, tabber *models.Tabber) error {
	return r.db.WithContext(ctx).Create(tabber).Error
}

// Update updates an existing tabber in the database
func (r *TabberRepo) Update(ctx context.Context, tabber *models.Tabber) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").Take(&models.Tabber{}, "id = ?", tabber.ID).Error; err != nil {
			return err
		}
		if err := tx.Omit("CreatedAt").Save(tabber).Error; err != nil {
			return err
		}
		return tx.First(tabber, "id = ?", tabber.ID).Error
	})
}

// Delete removes a tabber and its song credits
func (r *TabberRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tabber models.Tabber
		if err := tx.First(&tabber, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&tabber).Error
	})
}
