package database

import (
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"

	"github.com/afras-tabs/catalog-backend/models"
)

type Database struct {
	db            *gorm.DB
	artistRepo    *ArtistRepo
	albumRepo     *AlbumRepo
	songRepo      *SongRepo
	tabberRepo    *TabberRepo
	changeLogRepo *ChangeLogRepo
	counterRepo   *CounterRepo
	statsRepo     *StatsRepo
	searchRepo    *SearchRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:            db,
		artistRepo:    NewArtistRepo(db),
		albumRepo:     NewAlbumRepo(db),
		songRepo:      NewSongRepo(db),
		tabberRepo:    NewTabberRepo(db),
		changeLogRepo: NewChangeLogRepo(db),
		counterRepo:   NewCounterRepo(db),
		statsRepo:     NewStatsRepo(db),
		searchRepo:    NewSearchRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ArtistRepo() *ArtistRepo {
	return d.artistRepo
}

func (d Database) AlbumRepo() *AlbumRepo {
	return d.albumRepo
}

func (d Database) SongRepo() *SongRepo {
	return d.songRepo
}

func (d Database) TabberRepo() *TabberRepo {
	return d.tabberRepo
}

func (d Database) ChangeLogRepo() *ChangeLogRepo {
	return d.changeLogRepo
}

func (d Database) CounterRepo() *CounterRepo {
	return d.counterRepo
}

func (d Database) StatsRepo() *StatsRepo {
	return d.statsRepo
}

func (d Database) SearchRepo() *SearchRepo {
	return d.searchRepo
}

// Migrate creates or alters the catalog tables to match the models.
func (d Database) Migrate() error {
	return d.db.AutoMigrate(models.All()...)
}

// UseReplicas routes reads to the given replicas. Writes, and every statement inside a
// transaction, stay on the primary connection.
func UseReplicas(db *gorm.DB, replicas []gorm.Dialector) error {
	if len(replicas) == 0 {
		return nil
	}
	return db.Use(dbresolver.Register(dbresolver.Config{
		Replicas: replicas,
		Policy:   dbresolver.RandomPolicy{},
	}))
}
