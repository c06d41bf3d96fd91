package models

import "strings"

// DefaultAssetBaseURL is the public download root of the asset buckets.
const DefaultAssetBaseURL = "https://f005.backblazeb2.com/file"

// One bucket per asset category.
const (
	ArtistImagesBucket   = "afras-tabs-artist-images"
	AlbumArtsBucket      = "afras-tabs-album-arts"
	TabberPicturesBucket = "afras-tabs-tabber-pictures"
	TabFilesBucket       = "afras-tabs-tab-files"
)

const tabsRoot = "/tabs/"

var assetBaseURL = DefaultAssetBaseURL

// SetAssetBaseURL changes the root used for every derived asset URL. It must be called
// before the first save; an empty base restores the default.
func SetAssetBaseURL(base string) {
	base = strings.TrimRight(base, "/")
	if base == "" {
		base = DefaultAssetBaseURL
	}
	assetBaseURL = base
}

// AssetBaseURL returns the root currently used for derived asset URLs.
func AssetBaseURL() string {
	return assetBaseURL
}

// AssetLocation addresses one object in the asset store.
type AssetLocation struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
}

// URL returns the public download URL of the object.
func (l AssetLocation) URL() string {
	return assetBaseURL + "/" + l.Bucket + "/" + l.Key
}

func imageLocation(bucket, slug string) AssetLocation {
	return AssetLocation{Bucket: bucket, Key: slug + ".jpg"}
}

// tabFilesLocation is the directory-style location holding a song's tab files.
func tabFilesLocation(artistSlug, albumSlug, songSlug string) AssetLocation {
	return AssetLocation{Bucket: TabFilesBucket, Key: artistSlug + "/" + albumSlug + "/" + songSlug}
}

func tabsPath(slugs ...string) string {
	return tabsRoot + strings.Join(slugs, "/")
}
