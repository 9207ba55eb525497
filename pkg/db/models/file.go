package models

import (
	"time"
)

// File represents metadata for a stored file. The content itself lives in
// the blob store under BlobID; Size is fixed at upload time and never
// changes afterwards (renames touch the name only).
type File struct {
	ID       string  `gorm:"primaryKey;type:text"`
	Name     string  `gorm:"type:text;not null;index"`
	OwnerID  string  `gorm:"type:text;not null;index:idx_file_owner_folder"`
	FolderID *string `gorm:"type:text;index:idx_file_owner_folder"` // nil means root

	BlobID    string `gorm:"type:text;not null"`
	Size      int64  `gorm:"not null"`
	MimeType  string `gorm:"type:text"`
	Extension string `gorm:"type:text"`

	Starred   bool `gorm:"default:false"`
	Trashed   bool `gorm:"default:false;index"`
	TrashedAt *time.Time

	DownloadCount  int64 `gorm:"default:0"`
	LastAccessedAt time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
