package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Catalog Rule Errors
var (
	ErrSongArtistRequired = errors.New("song must have an associated artist")
	ErrAppendOnly         = errors.New("record is append-only")
	ErrNoTabFiles         = errors.New("song has no tab files")
)

// NewSongArtistRequiredError is returned when a non-filler song has no artist and its album
// has none to inherit.
func NewSongArtistRequiredError() *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadRequest,
		err:        ErrSongArtistRequired,
		Field:      "artist",
	}
}

func NewAppendOnlyError(entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        ErrAppendOnly,
		Details:    fmt.Sprintf("%s entries cannot be modified", entity),
	}
}

func NewNoTabFilesError(songTitle string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        ErrNoTabFiles,
		Details:    fmt.Sprintf("%q is filler content", songTitle),
		Field:      "isFiller",
	}
}

func IsSongArtistRequiredError(err error) bool {
	return errors.Is(err, ErrSongArtistRequired)
}

func IsAppendOnlyError(err error) bool {
	return errors.Is(err, ErrAppendOnly)
}

func IsNoTabFilesError(err error) bool {
	return errors.Is(err, ErrNoTabFiles)
}
