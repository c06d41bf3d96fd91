package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/afras-tabs/catalog-backend/errs"
	"github.com/afras-tabs/catalog-backend/slug"
)

// DefaultTabDescription is stored when a song is created without a description.
const DefaultTabDescription = "Description not provided"

// Difficulty bounds, inclusive.
const (
	MinDifficulty = 1
	MaxDifficulty = 4
)

// Song is one tabbed track. Filler songs are placeholders on an album's track list: they
// have no path and no tab files.
type Song struct {
	ID              uuid.UUID `json:"id" db:"id" gorm:"column:id;type:uuid;primaryKey;not null"`
	Title           string    `json:"title" db:"title" gorm:"column:title;type:varchar(100);not null"`
	Slug            string    `json:"slug" db:"slug" gorm:"column:slug;type:varchar(100);not null;default:'';index:idx_song_slug"`
	ArtistID        uuid.UUID `json:"artistId" db:"artist_id" gorm:"column:artist_id;type:uuid;not null;index:idx_song_artist_id"`
	AlbumID         uuid.UUID `json:"albumId" db:"album_id" gorm:"column:album_id;type:uuid;not null;index:idx_song_album_id"`
	DurationSeconds *int      `json:"durationSeconds,omitempty" db:"duration_seconds" gorm:"column:duration_seconds;type:integer"`
	TrackNum        *int      `json:"trackNum,omitempty" db:"track_num" gorm:"column:track_num;type:integer"`
	Tuning          *string   `json:"tuning,omitempty" db:"tuning" gorm:"column:tuning;type:varchar(100)"`
	Difficulty      *int      `json:"difficulty,omitempty" db:"difficulty" gorm:"column:difficulty;type:integer;default:1"`
	Riffs           int       `json:"riffs" db:"riffs" gorm:"column:riffs;type:integer;not null;default:0"`
	ArtistVerified  bool      `json:"artistVerified" db:"artist_verified" gorm:"column:artist_verified;not null;default:false"`
	CoverVideo      string    `json:"coverVideo" db:"cover_video" gorm:"column:cover_video;type:text;not null;default:''"`
	WasRequest      bool      `json:"wasRequest" db:"was_request" gorm:"column:was_request;not null;default:false"`
	IsFiller        bool      `json:"isFiller" db:"is_filler" gorm:"column:is_filler;not null;default:false;index:idx_song_is_filler"`
	DateAdded       time.Time `json:"dateAdded" db:"date_added" gorm:"column:date_added;autoCreateTime"`
	DateLastEdited  time.Time `json:"dateLastEdited" db:"date_last_edited" gorm:"column:date_last_edited;autoUpdateTime"`
	TabFiles        *string   `json:"tabFiles,omitempty" db:"tab_files" gorm:"column:tab_files;type:text"`
	TabDescription  *string   `json:"tabDescription,omitempty" db:"tab_description" gorm:"column:tab_description;type:text"`
	Path            string    `json:"path" db:"path" gorm:"column:path;type:varchar(200);not null;default:''"`

	Artist  *Artist  `json:"artist,omitempty" gorm:"foreignKey:ArtistID;references:ID"`
	Album   *Album   `json:"album,omitempty" gorm:"foreignKey:AlbumID;references:ID"`
	Tabbers []Tabber `json:"tabbers,omitempty" gorm:"many2many:song_tabbers;constraint:OnDelete:CASCADE"`

	// album and artist the row pointed at before the current update
	previousAlbumID  uuid.UUID
	previousArtistID uuid.UUID
}

// TabFilesLocation is the asset directory holding the song's tab files. Filler songs and
// songs that were never saved have none.
func (s *Song) TabFilesLocation() (AssetLocation, bool) {
	if s.IsFiller || !strings.HasPrefix(s.Path, tabsRoot) {
		return AssetLocation{}, false
	}
	return AssetLocation{Bucket: TabFilesBucket, Key: strings.TrimPrefix(s.Path, tabsRoot)}, true
}

func (s *Song) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.Difficulty == nil {
		d := MinDifficulty
		s.Difficulty = &d
	}
	if s.TabDescription == nil {
		desc := DefaultTabDescription
		s.TabDescription = &desc
	}
	return nil
}

func (s *Song) BeforeSave(tx *gorm.DB) error {
	if s.Difficulty != nil && (*s.Difficulty < MinDifficulty || *s.Difficulty > MaxDifficulty) {
		return errs.NewInvalidFieldError("difficulty", "must be between 1 and 4")
	}
	if err := s.rememberReferences(tx); err != nil {
		return err
	}
	return s.deriveFields(tx)
}

// rememberReferences records where an existing row pointed before this write so AfterSave
// can recount an album or artist the song is moving away from.
func (s *Song) rememberReferences(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		return nil
	}
	var stored []Song
	if err := tx.Select("id", "album_id", "artist_id").Where("id = ?", s.ID).Limit(1).Find(&stored).Error; err != nil {
		return err
	}
	if len(stored) == 1 {
		s.previousAlbumID = stored[0].AlbumID
		s.previousArtistID = stored[0].ArtistID
	}
	return nil
}

func (s *Song) deriveFields(tx *gorm.DB) error {
	s.Slug = slug.Make(s.Title)

	album, err := loadAlbumRefs(tx, s.AlbumID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	// filler songs are credited to the album's artist like any other row
	if s.ArtistID == uuid.Nil && album != nil {
		s.ArtistID = album.ArtistID
	}
	if s.ArtistID == uuid.Nil {
		return errs.NewSongArtistRequiredError()
	}
	if album == nil {
		return errs.NewInvalidReferenceError("albumId", "album", s.AlbumID.String())
	}

	if s.IsFiller {
		s.TabFiles = nil
		s.Path = ""
		return nil
	}

	artist, err := loadArtistSlug(tx, s.ArtistID)
	if err != nil {
		return err
	}

	artistSlug := strings.ToLower(artist.Slug)
	albumSlug := strings.ToLower(album.Slug)
	tabFiles := tabFilesLocation(artistSlug, albumSlug, s.Slug).URL()
	s.TabFiles = &tabFiles
	s.Path = tabsPath(artistSlug, albumSlug, s.Slug)
	return nil
}

func (s *Song) AfterSave(tx *gorm.DB) error {
	if err := recountSongParents(tx, s.AlbumID, s.ArtistID); err != nil {
		return err
	}
	if s.previousAlbumID != uuid.Nil && s.previousAlbumID != s.AlbumID {
		if err := RecountAlbumTabs(tx, s.previousAlbumID); err != nil {
			return err
		}
	}
	if s.previousArtistID != uuid.Nil && s.previousArtistID != s.ArtistID {
		if err := RecountArtistTabs(tx, s.previousArtistID); err != nil {
			return err
		}
	}
	s.previousAlbumID, s.previousArtistID = uuid.Nil, uuid.Nil
	return nil
}

// BeforeDelete drops the song's tabber links and change log, and fills in the parent ids
// when the caller deleted by primary key only.
func (s *Song) BeforeDelete(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		return nil
	}
	if s.AlbumID == uuid.Nil || s.ArtistID == uuid.Nil {
		var stored Song
		if err := tx.Select("id", "album_id", "artist_id").Where("id = ?", s.ID).Take(&stored).Error; err != nil {
			return err
		}
		s.AlbumID, s.ArtistID = stored.AlbumID, stored.ArtistID
	}
	return deleteSongDependents(tx, tx.Model(&Song{}).Select("id").Where("id = ?", s.ID))
}

// AfterDelete recounts with the ids the row had before it was removed.
func (s *Song) AfterDelete(tx *gorm.DB) error {
	return recountSongParents(tx, s.AlbumID, s.ArtistID)
}
