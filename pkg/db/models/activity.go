package models

import (
	"time"
)

// Activity is a single audit-log entry. Rows are appended by the activity
// recorder and never updated.
type Activity struct {
	ID           string `gorm:"primaryKey;type:text"`
	UserID       string `gorm:"type:text;not null;index"`
	Action       string `gorm:"type:text;not null"` // UPLOAD, DOWNLOAD, DELETE, SHARE, ...
	ResourceID   string `gorm:"type:text;index"`
	ResourceType string `gorm:"type:text"`
	ResourceName string `gorm:"type:text"`

	CreatedAt time.Time
}
