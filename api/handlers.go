package api

import (
	"time"

	"github.com/afras-tabs/catalog-backend/database"
	"github.com/afras-tabs/catalog-backend/storage"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, store storage.AssetStore, pageSize int, startupTime time.Time) *routeHandlers {
	return &routeHandlers{
		catalogHandler: newCatalogHandler(db, pageSize, startupTime),
		artistHandler:  newArtistHandler(db.ArtistRepo()),
		albumHandler:   newAlbumHandler(db.AlbumRepo(), pageSize),
		songHandler:    newSongHandler(db.SongRepo(), db.ChangeLogRepo(), pageSize),
		tabberHandler:  newTabberHandler(db.TabberRepo()),
		assetHandler:   newAssetHandler(store, db),
	}
}
