package models

import (
	"time"
)

// Folder represents a node in a user's folder hierarchy.
//
// Path is the materialized position of the folder: always exactly
// parent.Path + "/" + Name, or "/" + Name at root. It is rewritten for the
// whole subtree whenever an ancestor is renamed, so descendant lookups are
// plain prefix scans on this column.
type Folder struct {
	ID       string  `gorm:"primaryKey;type:text"`
	Name     string  `gorm:"type:text;not null;index"`
	OwnerID  string  `gorm:"type:text;not null;index:idx_folder_owner_parent"`
	ParentID *string `gorm:"type:text;index:idx_folder_owner_parent"` // nil means root
	Path     string  `gorm:"type:text;not null;index"`

	Starred   bool `gorm:"default:false"`
	Trashed   bool `gorm:"default:false;index"`
	TrashedAt *time.Time

	// Password protection
	Locked       bool   `gorm:"default:false"`
	PasswordHash string `gorm:"type:text"` // set only while locked

	CreatedAt time.Time
	UpdatedAt time.Time
}
