package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/afras-tabs/catalog-backend/errs"
)

// MaxChangeSummaryLength bounds SongChangeLog.ChangeSummary.
const MaxChangeSummaryLength = 500

// SongChangeLog is an append-only note about an edit to a song's tab.
type SongChangeLog struct {
	ID            uuid.UUID `json:"id" db:"id" gorm:"column:id;type:uuid;primaryKey;not null"`
	SongID        uuid.UUID `json:"songId" db:"song_id" gorm:"column:song_id;type:uuid;not null;index:idx_song_change_log_song_id"`
	ChangeDate    time.Time `json:"changeDate" db:"change_date" gorm:"column:change_date;autoCreateTime"`
	ChangeSummary string    `json:"changeSummary" db:"change_summary" gorm:"column:change_summary;type:varchar(500);not null"`

	Song *Song `json:"song,omitempty" gorm:"foreignKey:SongID;references:ID;constraint:OnDelete:CASCADE"`
}

func (c *SongChangeLog) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	switch {
	case c.ChangeSummary == "":
		return errs.NewMissingRequiredFieldError("changeSummary")
	case len([]rune(c.ChangeSummary)) > MaxChangeSummaryLength:
		return errs.NewInvalidFieldError("changeSummary", "must be at most 500 characters")
	}
	return nil
}

// BeforeUpdate rejects every update: entries are never changed once written.
func (c *SongChangeLog) BeforeUpdate(tx *gorm.DB) error {
	return errs.NewAppendOnlyError("song change log")
}
