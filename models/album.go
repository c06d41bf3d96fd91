package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/afras-tabs/catalog-backend/slug"
)

// Album belongs to exactly one Artist. NumTabs counts every song row of the album.
type Album struct {
	ID            uuid.UUID `json:"id" db:"id" gorm:"column:id;type:uuid;primaryKey;not null"`
	Title         string    `json:"title" db:"title" gorm:"column:title;type:varchar(100);not null"`
	Slug          string    `json:"slug" db:"slug" gorm:"column:slug;type:varchar(100);not null;index:idx_album_slug"`
	ArtistID      uuid.UUID `json:"artistId" db:"artist_id" gorm:"column:artist_id;type:uuid;not null;index:idx_album_artist_id"`
	ReleaseYear   string    `json:"releaseYear" db:"release_year" gorm:"column:release_year;type:varchar(4);not null;default:''"`
	ImageURL      string    `json:"imageUrl" db:"image_url" gorm:"column:image_url;type:text;not null"`
	NumTabs       int       `json:"numTabs" db:"num_tabs" gorm:"column:num_tabs;type:integer;not null;default:0"`
	Tuning        *string   `json:"tuning,omitempty" db:"tuning" gorm:"column:tuning;type:varchar(100)"`
	IsComplete    bool      `json:"isComplete" db:"is_complete" gorm:"column:is_complete;not null;default:false"`
	HasFiller     bool      `json:"hasFiller" db:"has_filler" gorm:"column:has_filler;not null;default:false"`
	CoverPlaylist string    `json:"coverPlaylist" db:"cover_playlist" gorm:"column:cover_playlist;type:text;not null;default:''"`
	Path          string    `json:"path" db:"path" gorm:"column:path;type:varchar(200);not null;default:''"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at" gorm:"column:created_at;autoCreateTime"`

	Artist *Artist `json:"artist,omitempty" gorm:"foreignKey:ArtistID;references:ID"`
	Songs  []Song  `json:"songs,omitempty" gorm:"foreignKey:AlbumID;references:ID;constraint:OnDelete:CASCADE"`

	previousArtistID uuid.UUID
}

// ImageLocation is where the album art lives in the asset store.
func (al *Album) ImageLocation() AssetLocation {
	return imageLocation(AlbumArtsBucket, al.Slug)
}

func (al *Album) deriveFields(artistSlug string) {
	al.Slug = slug.Make(al.Title)
	al.ImageURL = al.ImageLocation().URL()
	al.Path = tabsPath(artistSlug, al.Slug)
}

func (al *Album) BeforeCreate(tx *gorm.DB) error {
	if al.ID == uuid.Nil {
		al.ID = uuid.New()
	}
	al.NumTabs = 0
	return nil
}

func (al *Album) BeforeSave(tx *gorm.DB) error {
	if al.ID != uuid.Nil {
		var stored []Album
		if err := tx.Select("id", "artist_id").Where("id = ?", al.ID).Limit(1).Find(&stored).Error; err != nil {
			return err
		}
		if len(stored) == 1 {
			al.previousArtistID = stored[0].ArtistID
		}
	}
	artist, err := loadArtistSlug(tx, al.ArtistID)
	if err != nil {
		return err
	}
	al.deriveFields(artist.Slug)
	return nil
}

// AfterUpdate moves the album's songs along when the album changed artist, then rewrites
// the paths of songs that embed the album slug.
func (al *Album) AfterUpdate(tx *gorm.DB) error {
	if prev := al.previousArtistID; prev != uuid.Nil && prev != al.ArtistID {
		al.previousArtistID = uuid.Nil
		if err := moveAlbumSongs(tx, al.ID, prev, al.ArtistID); err != nil {
			return err
		}
	}
	return propagateAlbumSlug(tx, al)
}

// BeforeDelete removes the album's songs and then recounts the owning artist and every
// guest artist credited on them, so their totals reflect the state after the cascade.
func (al *Album) BeforeDelete(tx *gorm.DB) error {
	if al.ArtistID == uuid.Nil && al.ID != uuid.Nil {
		var stored Album
		if err := tx.Select("id", "artist_id").Where("id = ?", al.ID).Take(&stored).Error; err != nil {
			return err
		}
		al.ArtistID = stored.ArtistID
	}
	credited, err := cascadeAlbum(tx, al.ID)
	if err != nil {
		return err
	}
	if err := RecountArtistTabs(tx, al.ArtistID); err != nil {
		return err
	}
	for _, artistID := range credited {
		if artistID == al.ArtistID {
			continue
		}
		if err := RecountArtistTabs(tx, artistID); err != nil {
			return err
		}
	}
	return nil
}
