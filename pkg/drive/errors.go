// Package drive contains the core services of the file store: the folder
// hierarchy, the file/quota lifecycle and the share/link issuer. Services
// validate ownership, apply changes through the metadata store and emit
// activity records; HTTP plumbing and authentication live elsewhere and
// always pass caller identity explicitly.
package drive

import (
	"errors"

	"gorm.io/gorm"
)

// Typed failures surfaced to callers. None are retried internally; retry
// policy belongs to the calling layer.
var (
	ErrNotFound        = errors.New("resource not found")
	ErrAccessDenied    = errors.New("access denied")
	ErrDuplicateName   = errors.New("name already exists")
	ErrQuotaExceeded   = errors.New("storage quota exceeded")
	ErrFolderLocked    = errors.New("folder is already locked")
	ErrFolderNotLocked = errors.New("folder is not locked")
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidLink     = errors.New("invalid share link")
	ErrLinkExpired     = errors.New("share link has expired")
)

func recordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
