package database

import (
	"context"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/afras-tabs/catalog-backend/models"
)

// LatestSongsOnHome is how many recent songs CatalogStats carries.
const LatestSongsOnHome = 4

// CatalogStats are the catalog-wide numbers shown on the home page.
type CatalogStats struct {
	TotalTabs    int64          `json:"totalTabs"`
	TotalAlbums  int64          `json:"totalAlbums"`
	TotalArtists int64          `json:"totalArtists"`
	VerifiedTabs int64          `json:"verifiedTabs"`
	TotalRiffs   int64          `json:"totalRiffs"`
	TotalHours   int64          `json:"totalHours"`
	LatestSongs  []*models.Song `json:"latestSongs"`
}

type StatsRepo struct {
	db    *gorm.DB
	songs *SongRepo
}

func NewStatsRepo(db *gorm.DB) *StatsRepo {
	return &StatsRepo{db: db, songs: NewSongRepo(db)}
}

// Catalog runs the stats queries concurrently and returns once all of them finished.
func (r *StatsRepo) Catalog(ctx context.Context) (*CatalogStats, error) {
	var stats CatalogStats
	var totalSeconds int64

	g, ctx := errgroup.WithContext(ctx)
	songs := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&models.Song{})
	}

	g.Go(func() error {
		return songs().Where("is_filler = ?", false).Count(&stats.TotalTabs).Error
	})
	g.Go(func() error {
		return r.db.WithContext(ctx).Model(&models.Album{}).Count(&stats.TotalAlbums).Error
	})
	g.Go(func() error {
		return r.db.WithContext(ctx).Model(&models.Artist{}).Count(&stats.TotalArtists).Error
	})
	g.Go(func() error {
		return songs().Where("artist_verified = ? AND is_filler = ?", true, false).Count(&stats.VerifiedTabs).Error
	})
	g.Go(func() error {
		return songs().Select("COALESCE(SUM(riffs), 0)").Scan(&stats.TotalRiffs).Error
	})
	g.Go(func() error {
		return songs().Select("COALESCE(SUM(duration_seconds), 0)").Where("is_filler = ?", false).Scan(&totalSeconds).Error
	})
	g.Go(func() error {
		latest, err := r.songs.Latest(ctx, LatestSongsOnHome)
		stats.LatestSongs = latest
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	stats.TotalHours = totalSeconds / 3600
	return &stats, nil
}
