package database

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/afras-tabs/catalog-backend/models"
)

// Search limits per result type and overall.
const (
	MinSearchLength    = 2
	maxSongResults     = 2
	maxAlbumResults    = 2
	maxArtistResults   = 1
	MaxSearchResults   = 5
	SearchResultSong   = "song"
	SearchResultAlbum  = "album"
	SearchResultArtist = "artist"
)

// SearchResult is one entry of the quick-search dropdown.
type SearchResult struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	URL      string `json:"url"`
	Verified bool   `json:"verified"`
}

type SearchRepo struct {
	db *gorm.DB
}

func NewSearchRepo(db *gorm.DB) *SearchRepo {
	return &SearchRepo{db}
}

// Search matches query against song titles, album titles and artist names. Songs come
// first, then albums, then artists.
func (r *SearchRepo) Search(ctx context.Context, query string) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	results := []SearchResult{}
	if utf8.RuneCountInString(query) < MinSearchLength {
		return results, nil
	}
	db := r.db.WithContext(ctx)
	pattern := containsPattern(query)

	var songs []models.Song
	if err := db.Preload("Artist").Preload("Album").
		Where(likeClause("title")+" AND is_filler = ?", pattern, false).
		Order("title, id").Limit(maxSongResults).
		Find(&songs).Error; err != nil {
		return nil, err
	}
	for _, s := range songs {
		results = append(results, SearchResult{
			Type:     SearchResultSong,
			Title:    s.Title,
			Subtitle: artistName(s.Artist) + " - " + albumTitle(s.Album),
			URL:      s.Path + "/",
			Verified: s.ArtistVerified,
		})
	}

	var albums []models.Album
	if err := db.Preload("Artist").
		Where(likeClause("title"), pattern).
		Order("title, id").Limit(maxAlbumResults).
		Find(&albums).Error; err != nil {
		return nil, err
	}
	for _, al := range albums {
		results = append(results, SearchResult{
			Type:     SearchResultAlbum,
			Title:    al.Title,
			Subtitle: fmt.Sprintf("%s (%s)", artistName(al.Artist), al.ReleaseYear),
			URL:      al.Path + "/",
		})
	}

	var artists []models.Artist
	if err := db.Where(likeClause("name"), pattern).
		Order("name, id").Limit(maxArtistResults).
		Find(&artists).Error; err != nil {
		return nil, err
	}
	for _, a := range artists {
		results = append(results, SearchResult{
			Type:     SearchResultArtist,
			Title:    a.Name,
			Subtitle: tabCount(a.NumTabs),
			URL:      a.Path + "/",
		})
	}

	if len(results) > MaxSearchResults {
		results = results[:MaxSearchResults]
	}
	return results, nil
}

func tabCount(n int) string {
	if n == 1 {
		return "1 tab"
	}
	return fmt.Sprintf("%d tabs", n)
}

func artistName(a *models.Artist) string {
	if a == nil {
		return ""
	}
	return a.Name
}

func albumTitle(al *models.Album) string {
	if al == nil {
		return ""
	}
	return al.Title
}
