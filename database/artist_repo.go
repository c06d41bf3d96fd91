package database

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/afras-tabs/catalog-backend/models"
)

type ArtistRepo struct {
	db *gorm.DB
}

func NewArtistRepo(db *gorm.DB) *ArtistRepo {
	return &ArtistRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *ArtistRepo) GetDB() *gorm.DB {
	return r.db
}

// FindAll returns all artists ordered by name
func (r *ArtistRepo) FindAll(ctx context.Context) ([]*models.Artist, error) {
	var artists []*models.Artist
	err := r.db.WithContext(ctx).Order("name").Find(&artists).Error
	return artists, err
}

// FindByID returns an artist by its ID
func (r *ArtistRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Artist, error) {
	var artist models.Artist
	err := r.db.WithContext(ctx).First(&artist, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &artist, nil
}

// FindBySlug returns the artist published under /tabs/<slug>
func (r *ArtistRepo) FindBySlug(ctx context.Context, slug string) (*models.Artist, error) {
	var artist models.Artist
	err := r.db.WithContext(ctx).Where("slug = ?", slug).Order("created_at").Take(&artist).Error
	if err != nil {
		return nil, err
	}
	return &artist, nil
}

// List returns one page of artists matching opts.Search on the name.
func (r *ArtistRepo) List(ctx context.Context, opts ListOptions) (*Page[ArtistListing], error) {
	db := r.db.WithContext(ctx)
	q := db.Model(&models.Artist{})
	if opts.Search != "" {
		q = q.Where(likeClause("name"), containsPattern(opts.Search))
	}

	order := "name ASC, id"
	switch opts.Sort {
	case SortZToA:
		order = "name DESC, id"
	case SortRecentlyAdded, SortMostPopular:
		order = "created_at DESC, id"
	}

	page, err := fetchPage[models.Artist](q, opts, "*", order)
	if err != nil {
		return nil, err
	}
	listings, err := artistListings(db, page.Items)
	if err != nil {
		return nil, err
	}
	return repage(page, listings), nil
}

// Add inserts a new artist; its counter always starts at zero
func (r *ArtistRepo) Add(ctx context.Context, artist *models.Artist) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(artist).Error
}

// Update saves the artist's editable fields and reloads it. The tab counter is owned by the
// counter hooks and never written here.
func (r *ArtistRepo) Update(ctx context.Context, artist *models.Artist) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").Take(&models.Artist{}, "id = ?", artist.ID).Error; err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations, "NumTabs", "CreatedAt").Save(artist).Error; err != nil {
			return err
		}
		return tx.First(artist, "id = ?", artist.ID).Error
	})
}

// Delete removes an artist together with its albums and songs
func (r *ArtistRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var artist models.Artist
		if err := tx.First(&artist, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&artist).Error
	})
}
