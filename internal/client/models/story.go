// Package models defines story record types persisted in the local store.
package models

import "time"

// PendingStatus is the only status a locally authored story can carry.
// Pending records are never updated in place; they are deleted on
// successful sync or explicit user delete.
const PendingStatus = "pending"

// Story is a single story as returned by the Distory API and as cached
// locally. While a story is pending upload, Photo holds the raw image
// bytes and PhotoURL is empty; once synced the server hosts the image.
type Story struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	PhotoURL    string     `json:"photoUrl,omitempty"`
	Photo       []byte     `json:"photo,omitempty"`
	Lat         *float64   `json:"lat,omitempty"`
	Lon         *float64   `json:"lon,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	CachedAt    *time.Time `json:"cachedAt,omitempty"`
}

// Bookmark is a full copy of a story plus the time it was bookmarked.
// Copying rather than referencing means a bookmarked story survives the
// original falling out of the synced cache.
type Bookmark struct {
	Story
	BookmarkedAt time.Time `json:"bookmarkedAt"`
}

// PendingStory is a story authored while offline, awaiting upload.
// DeviceID scopes which installation may sync or delete the record.
type PendingStory struct {
	Story
	DeviceID string `json:"deviceId"`
	Status   string `json:"status"`
}
