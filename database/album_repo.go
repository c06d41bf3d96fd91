package database

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/afras-tabs/catalog-backend/models"
)

type AlbumRepo struct {
	db *gorm.DB
}

func NewAlbumRepo(db *gorm.DB) *AlbumRepo {
	return &AlbumRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *AlbumRepo) GetDB() *gorm.DB {
	return r.db
}

// FindByID returns an album with its artist
func (r *AlbumRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Album, error) {
	var album models.Album
	err := r.db.WithContext(ctx).Preload("Artist").First(&album, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &album, nil
}

// FindBySlugs returns the album published under /tabs/<artistSlug>/<albumSlug>
func (r *AlbumRepo) FindBySlugs(ctx context.Context, artistSlug, albumSlug string) (*models.Album, error) {
	var album models.Album
	err := r.db.WithContext(ctx).
		Preload("Artist").
		Joins("JOIN artists ON artists.id = albums.artist_id").
		Where("artists.slug = ? AND albums.slug = ?", artistSlug, albumSlug).
		Select("albums.*").
		Order("albums.created_at").
		Take(&album).Error
	if err != nil {
		return nil, err
	}
	return &album, nil
}

// ListByArtist returns every album of an artist in release order
func (r *AlbumRepo) ListByArtist(ctx context.Context, artistID uuid.UUID) ([]AlbumListing, error) {
	db := r.db.WithContext(ctx)
	var albums []models.Album
	if err := db.Where("artist_id = ?", artistID).Order("release_year, title").Find(&albums).Error; err != nil {
		return nil, err
	}
	return albumListings(db, albums)
}

// List returns one page of albums whose title or artist name matches opts.Search.
func (r *AlbumRepo) List(ctx context.Context, opts ListOptions) (*Page[AlbumListing], error) {
	db := r.db.WithContext(ctx)
	q := db.Model(&models.Album{})
	if opts.Search != "" {
		pattern := containsPattern(opts.Search)
		q = q.Joins("JOIN artists ON artists.id = albums.artist_id").
			Where(likeClause("albums.title")+" OR "+likeClause("artists.name"), pattern, pattern)
	}

	order := "albums.title ASC, albums.id"
	switch opts.Sort {
	case SortZToA:
		order = "albums.title DESC, albums.id"
	case SortRecentlyAdded, SortMostPopular:
		order = "albums.created_at DESC, albums.id"
	}

	page, err := fetchPage[models.Album](q, opts, "albums.*", order, "Artist")
	if err != nil {
		return nil, err
	}
	listings, err := albumListings(db, page.Items)
	if err != nil {
		return nil, err
	}
	return repage(page, listings), nil
}

// Add inserts a new album under an existing artist
func (r *AlbumRepo) Add(ctx context.Context, album *models.Album) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(album).Error
}

// Update saves the album's editable fields and reloads it with its artist. Moving the album
// to another artist moves the songs credited to the old artist with it.
func (r *AlbumRepo) Update(ctx context.Context, album *models.Album) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").Take(&models.Album{}, "id = ?", album.ID).Error; err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations, "NumTabs", "CreatedAt").Save(album).Error; err != nil {
			return err
		}
		return tx.Preload("Artist").First(album, "id = ?", album.ID).Error
	})
}

// Delete removes an album; its songs go with it and the artist is recounted
func (r *AlbumRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var album models.Album
		if err := tx.First(&album, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&album).Error
	})
}
