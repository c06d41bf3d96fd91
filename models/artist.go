package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/afras-tabs/catalog-backend/slug"
)

// Artist is a performer whose songs are tabbed. NumTabs counts every song row of the artist.
type Artist struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"column:id;type:uuid;primaryKey;not null"`
	Name      string    `json:"name" db:"name" gorm:"column:name;type:varchar(100);not null"`
	Slug      string    `json:"slug" db:"slug" gorm:"column:slug;type:varchar(100);not null;index:idx_artist_slug"`
	NumTabs   int       `json:"numTabs" db:"num_tabs" gorm:"column:num_tabs;type:integer;not null;default:0"`
	ImageURL  string    `json:"imageUrl" db:"image_url" gorm:"column:image_url;type:text;not null"`
	Path      string    `json:"path" db:"path" gorm:"column:path;type:varchar(200);not null;default:''"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"column:created_at;autoCreateTime"`

	Albums []Album `json:"albums,omitempty" gorm:"foreignKey:ArtistID;references:ID;constraint:OnDelete:CASCADE"`
}

// ImageLocation is where the artist picture lives in the asset store.
func (a *Artist) ImageLocation() AssetLocation {
	return imageLocation(ArtistImagesBucket, a.Slug)
}

func (a *Artist) deriveFields() {
	a.Slug = slug.Make(a.Name)
	a.Path = tabsPath(a.Slug)
	a.ImageURL = a.ImageLocation().URL()
}

func (a *Artist) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.NumTabs = 0
	return nil
}

func (a *Artist) BeforeSave(tx *gorm.DB) error {
	a.deriveFields()
	return nil
}

// AfterUpdate rewrites the paths of albums and songs that embed the artist slug.
func (a *Artist) AfterUpdate(tx *gorm.DB) error {
	return propagateArtistSlug(tx, a)
}

func (a *Artist) BeforeDelete(tx *gorm.DB) error {
	return cascadeArtist(tx, a.ID)
}
