package api

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/afras-tabs/catalog-backend/errs"
	"github.com/afras-tabs/catalog-backend/models"
)

const maxNameLength = 100

func requireName(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return errs.NewMissingRequiredFieldError(field)
	}
	if utf8.RuneCountInString(value) > maxNameLength {
		return errs.NewInvalidFieldError(field, "must be at most 100 characters")
	}
	return nil
}

// artistInput is the writable part of an artist
type artistInput struct {
	Name string `json:"name"`
}

func (in artistInput) validate() error {
	return requireName("name", in.Name)
}

func (in artistInput) apply(a *models.Artist) {
	a.Name = strings.TrimSpace(in.Name)
}

// albumInput is the writable part of an album
type albumInput struct {
	Title         string    `json:"title"`
	ArtistID      uuid.UUID `json:"artistId"`
	ReleaseYear   string    `json:"releaseYear"`
	Tuning        *string   `json:"tuning"`
	IsComplete    bool      `json:"isComplete"`
	HasFiller     bool      `json:"hasFiller"`
	CoverPlaylist string    `json:"coverPlaylist"`
}

func (in albumInput) validate() error {
	if err := requireName("title", in.Title); err != nil {
		return err
	}
	if in.ArtistID == uuid.Nil {
		return errs.NewMissingRequiredFieldError("artistId")
	}
	if utf8.RuneCountInString(in.ReleaseYear) > 4 {
		return errs.NewInvalidFieldError("releaseYear", "must be at most 4 characters")
	}
	return nil
}

func (in albumInput) apply(al *models.Album) {
	al.Title = strings.TrimSpace(in.Title)
	al.ArtistID = in.ArtistID
	al.ReleaseYear = in.ReleaseYear
	al.Tuning = in.Tuning
	al.IsComplete = in.IsComplete
	al.HasFiller = in.HasFiller
	al.CoverPlaylist = in.CoverPlaylist
}

// songInput is the writable part of a song. ArtistID may be omitted to credit the album's
// artist. Omitted Difficulty and TabDescription keep their current (or default) value.
// TabberIDs, when present, replaces the song's tabbers.
type songInput struct {
	Title           string       `json:"title"`
	ArtistID        *uuid.UUID   `json:"artistId"`
	AlbumID         uuid.UUID    `json:"albumId"`
	DurationSeconds *int         `json:"durationSeconds"`
	TrackNum        *int         `json:"trackNum"`
	Tuning          *string      `json:"tuning"`
	Difficulty      *int         `json:"difficulty"`
	Riffs           int          `json:"riffs"`
	ArtistVerified  bool         `json:"artistVerified"`
	CoverVideo      string       `json:"coverVideo"`
	WasRequest      bool         `json:"wasRequest"`
	IsFiller        bool         `json:"isFiller"`
	TabDescription  *string      `json:"tabDescription"`
	TabberIDs       *[]uuid.UUID `json:"tabberIds"`
}

func (in songInput) validate() error {
	if err := requireName("title", in.Title); err != nil {
		return err
	}
	if in.AlbumID == uuid.Nil {
		return errs.NewMissingRequiredFieldError("albumId")
	}
	if in.Riffs < 0 {
		return errs.NewInvalidFieldError("riffs", "must not be negative")
	}
	if in.DurationSeconds != nil && *in.DurationSeconds < 0 {
		return errs.NewInvalidFieldError("durationSeconds", "must not be negative")
	}
	return nil
}

func (in songInput) apply(s *models.Song) {
	s.Title = strings.TrimSpace(in.Title)
	s.ArtistID = uuid.Nil
	if in.ArtistID != nil {
		s.ArtistID = *in.ArtistID
	}
	s.AlbumID = in.AlbumID
	s.DurationSeconds = in.DurationSeconds
	s.TrackNum = in.TrackNum
	s.Tuning = in.Tuning
	if in.Difficulty != nil {
		s.Difficulty = in.Difficulty
	}
	s.Riffs = in.Riffs
	s.ArtistVerified = in.ArtistVerified
	s.CoverVideo = in.CoverVideo
	s.WasRequest = in.WasRequest
	s.IsFiller = in.IsFiller
	if in.TabDescription != nil {
		s.TabDescription = in.TabDescription
	}
}

// tabberInput is the writable part of a tabber
type tabberInput struct {
	Name    string  `json:"name"`
	YouTube *string `json:"youtube"`
}

func (in tabberInput) validate() error {
	return requireName("name", in.Name)
}

func (in tabberInput) apply(tb *models.Tabber) {
	tb.Name = strings.TrimSpace(in.Name)
	tb.YouTube = in.YouTube
}

type changeLogInput struct {
	ChangeSummary string `json:"changeSummary"`
}
