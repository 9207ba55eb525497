package models

import (
	"time"
)

// Resource types a share can point at.
const (
	ResourceFile   = "FILE"
	ResourceFolder = "FOLDER"
)

// Share permissions.
const (
	PermissionViewer = "VIEWER"
	PermissionEditor = "EDITOR"
)

// Share grants access to a file or folder beyond its owner.
//
// Exactly one of SharedWith (direct grant to a user) or Token (public link)
// is set per record. Direct shares are unique per (ResourceID, SharedWith);
// re-sharing updates the permission in place. Public links are never
// deduplicated: every creation mints a fresh token.
type Share struct {
	ID           string `gorm:"primaryKey;type:text"`
	ResourceID   string `gorm:"type:text;not null;index:idx_share_resource_user"`
	ResourceType string `gorm:"type:text;not null"`
	OwnerID      string `gorm:"type:text;not null;index"`

	SharedWith *string `gorm:"type:text;index:idx_share_resource_user"`
	Token      *string `gorm:"type:text;uniqueIndex"`

	Permission string `gorm:"type:text;not null"`

	// Link gates
	PasswordHash string `gorm:"type:text"`
	ExpiresAt    *time.Time

	AccessCount int64 `gorm:"default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
