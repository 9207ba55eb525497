package models

import (
	"time"
)

// DefaultStorageQuota is the storage allotment for new accounts (15 GiB).
const DefaultStorageQuota int64 = 16106127360

// User represents an account that owns folders, files and shares.
//
// StorageUsed tracks the combined size of all files that have not been
// permanently deleted; trashed files still count against it. The counter
// is only ever mutated through the store's ReserveStorage/ReleaseStorage
// operations so that the quota check stays atomic.
type User struct {
	ID           string `gorm:"primaryKey;type:text"`
	Email        string `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash string `gorm:"type:text;not null"`
	FirstName    string `gorm:"type:text"`
	LastName     string `gorm:"type:text"`

	StorageUsed  int64 `gorm:"not null;default:0"`
	StorageQuota int64 `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
