package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/afras-tabs/catalog-backend/slug"
)

// Tabber is a person credited with transcribing songs.
type Tabber struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"column:id;type:uuid;primaryKey;not null"`
	Name      string    `json:"name" db:"name" gorm:"column:name;type:varchar(100);not null"`
	Slug      string    `json:"slug" db:"slug" gorm:"column:slug;type:varchar(100);not null"`
	ImageURL  string    `json:"imageUrl" db:"image_url" gorm:"column:image_url;type:text;not null"`
	YouTube   *string   `json:"youtube,omitempty" db:"youtube" gorm:"column:youtube;type:text"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" gorm:"column:created_at;autoCreateTime"`
}

// ImageLocation is where the tabber picture lives in the asset store.
func (tb *Tabber) ImageLocation() AssetLocation {
	return imageLocation(TabberPicturesBucket, tb.Slug)
}

func (tb *Tabber) BeforeCreate(tx *gorm.DB) error {
	if tb.ID == uuid.Nil {
		tb.ID = uuid.New()
	}
	return nil
}

func (tb *Tabber) BeforeSave(tx *gorm.DB) error {
	tb.Slug = slug.Make(tb.Name)
	tb.ImageURL = tb.ImageLocation().URL()
	return nil
}

func (tb *Tabber) BeforeDelete(tx *gorm.DB) error {
	return tx.Exec("DELETE FROM song_tabbers WHERE tabber_id = ?", tb.ID).Error
}
