package store

import (
	"context"
	"errors"
	"time"

	"github.com/cyber08jk/Fire-cloud-data/pkg/db/models"
)

// ErrQuotaExceeded is returned by ReserveStorage when the requested size
// would push the user's consumed storage past their quota.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// MetadataStore defines the interface for database operations
type MetadataStore interface {
	// Lifecycle
	Connect(ctx context.Context) error
	Close() error
	Migrate(ctx context.Context) error
	Health(ctx context.Context) error

	// User operations. ReserveStorage performs the quota check and the
	// counter increment as a single conditional update so that concurrent
	// uploads can never jointly overrun the quota. ReleaseStorage is the
	// matching decrement, floored at zero.
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ReserveStorage(ctx context.Context, userID string, size int64) error
	ReleaseStorage(ctx context.Context, userID string, size int64) error

	// Folder operations. RenameFolderTree and TrashFolderTree apply the
	// folder row and all its path-prefixed descendants in one transaction.
	// CreateFolder re-verifies a non-nil parent as owned and active inside
	// the insert transaction, so a create can never land under a
	// concurrently trashed ancestor.
	CreateFolder(ctx context.Context, folder *models.Folder) error
	GetFolder(ctx context.Context, id string) (*models.Folder, error)
	FindFolderByName(ctx context.Context, ownerID string, parentID *string, name string) (*models.Folder, error)
	ListFolders(ctx context.Context, ownerID string, parentID *string) ([]models.Folder, error)
	UpdateFolder(ctx context.Context, folder *models.Folder) error
	RenameFolderTree(ctx context.Context, folder *models.Folder, oldPath string) error
	TrashFolderTree(ctx context.Context, folder *models.Folder, at time.Time) error

	// File operations. DeleteFileWithQuota removes the metadata row and
	// releases the owner's storage in one transaction. TouchFileAccess is a
	// best-effort counter bump.
	CreateFile(ctx context.Context, file *models.File) error
	GetFile(ctx context.Context, id string) (*models.File, error)
	ListFiles(ctx context.Context, ownerID string, folderID *string) ([]models.File, error)
	ListStarredFiles(ctx context.Context, ownerID string) ([]models.File, error)
	ListRecentFiles(ctx context.Context, ownerID string, since time.Time, limit, offset int) ([]models.File, error)
	SearchFiles(ctx context.Context, ownerID, query string, limit, offset int) ([]models.File, error)
	UpdateFile(ctx context.Context, file *models.File) error
	TouchFileAccess(ctx context.Context, id string, at time.Time) error
	DeleteFileWithQuota(ctx context.Context, file *models.File) error

	// Share operations
	CreateShare(ctx context.Context, share *models.Share) error
	GetShare(ctx context.Context, id string) (*models.Share, error)
	GetShareByToken(ctx context.Context, token string) (*models.Share, error)
	FindShareForUser(ctx context.Context, resourceID, userID string) (*models.Share, error)
	ListSharesWithUser(ctx context.Context, userID string) ([]models.Share, error)
	ListSharesByOwner(ctx context.Context, ownerID string) ([]models.Share, error)
	UpdateShare(ctx context.Context, share *models.Share) error
	TouchShareAccess(ctx context.Context, id string) error
	DeleteShare(ctx context.Context, id string) error

	// Activity operations
	AppendActivity(ctx context.Context, activity *models.Activity) error
	ListUserActivities(ctx context.Context, userID string, limit, offset int) ([]models.Activity, error)
	ListResourceActivities(ctx context.Context, resourceID string) ([]models.Activity, error)
}
