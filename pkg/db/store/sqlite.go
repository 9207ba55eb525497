package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/cyber08jk/Fire-cloud-data/pkg/db/models"
)

// SQLiteStore implements MetadataStore using SQLite
type SQLiteStore struct {
	db   *gorm.DB
	path string
}

// DB returns the underlying GORM database instance
func (s *SQLiteStore) DB() *gorm.DB {
	return s.db
}

// SQLiteConfig holds SQLite-specific configuration
type SQLiteConfig struct {
	Path     string
	LogLevel logger.LogLevel
}

// NewSQLiteStore creates a new SQLite-backed metadata store
func NewSQLiteStore(cfg SQLiteConfig) (*SQLiteStore, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	// Default to silent logging
	if cfg.LogLevel == 0 {
		cfg.LogLevel = logger.Silent
	}

	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: logger.Default.LogMode(cfg.LogLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	return &SQLiteStore{
		db:   db,
		path: cfg.Path,
	}, nil
}

// Connect initializes the database connection
func (s *SQLiteStore) Connect(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	// SQLite only supports 1 writer
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return sqlDB.PingContext(ctx)
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Close()
}

// Migrate runs database migrations
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(
		&models.User{},
		&models.Folder{},
		&models.File{},
		&models.Share{},
		&models.Activity{},
	)
}

// Health checks database connectivity
func (s *SQLiteStore) Health(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// User operations

func (s *SQLiteStore) CreateUser(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *SQLiteStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ReserveStorage atomically increments storage_used by size, but only when
// the result stays within the quota. Read-check-write would let two
// concurrent uploads both pass the check; the conditional update cannot.
func (s *SQLiteStore) ReserveStorage(ctx context.Context, userID string, size int64) error {
	res := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND storage_used + ? <= storage_quota", userID, size).
		Update("storage_used", gorm.Expr("storage_used + ?", size))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Distinguish a missing user from an exceeded quota.
		if _, err := s.GetUserByID(ctx, userID); err != nil {
			return err
		}
		return ErrQuotaExceeded
	}
	return nil
}

// ReleaseStorage decrements storage_used by size, floored at zero.
func (s *SQLiteStore) ReleaseStorage(ctx context.Context, userID string, size int64) error {
	return s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("storage_used", gorm.Expr("MAX(storage_used - ?, 0)", size)).Error
}

// Folder operations

// escapeLike escapes LIKE metacharacters so names and queries containing
// "%" or "_" match literally under `LIKE ? ESCAPE '\'`.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func whereParent(q *gorm.DB, parentID *string) *gorm.DB {
	if parentID == nil {
		return q.Where("parent_id IS NULL")
	}
	return q.Where("parent_id = ?", *parentID)
}

// CreateFolder inserts the folder. A non-nil parent is re-verified inside
// the insert transaction to be owned and not trashed; a check done before
// calling could otherwise race a concurrent subtree trash, whose path scan
// cannot see a row inserted after it commits.
func (s *SQLiteStore) CreateFolder(ctx context.Context, folder *models.Folder) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if folder.ParentID != nil {
			var parent models.Folder
			err := tx.Where("id = ? AND owner_id = ? AND trashed = ?",
				*folder.ParentID, folder.OwnerID, false).First(&parent).Error
			if err != nil {
				return err
			}
		}
		return tx.Create(folder).Error
	})
}

func (s *SQLiteStore) GetFolder(ctx context.Context, id string) (*models.Folder, error) {
	var folder models.Folder
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&folder).Error
	if err != nil {
		return nil, err
	}
	return &folder, nil
}

func (s *SQLiteStore) FindFolderByName(ctx context.Context, ownerID string, parentID *string, name string) (*models.Folder, error) {
	var folder models.Folder
	query := s.db.WithContext(ctx).
		Where("owner_id = ? AND name = ? AND trashed = ?", ownerID, name, false)
	err := whereParent(query, parentID).First(&folder).Error
	if err != nil {
		return nil, err
	}
	return &folder, nil
}

func (s *SQLiteStore) ListFolders(ctx context.Context, ownerID string, parentID *string) ([]models.Folder, error) {
	var folders []models.Folder
	query := s.db.WithContext(ctx).
		Where("owner_id = ? AND trashed = ?", ownerID, false)
	err := whereParent(query, parentID).Order("name ASC").Find(&folders).Error
	return folders, err
}

func (s *SQLiteStore) UpdateFolder(ctx context.Context, folder *models.Folder) error {
	return s.db.WithContext(ctx).Save(folder).Error
}

// RenameFolderTree persists the renamed folder and rewrites every
// descendant's path by substituting the old prefix, all in one transaction.
// A concurrent reader sees either the old subtree or the new one, never a
// mix of prefixes.
func (s *SQLiteStore) RenameFolderTree(ctx context.Context, folder *models.Folder, oldPath string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(folder).Error; err != nil {
			return err
		}
		return tx.Model(&models.Folder{}).
			Where(`owner_id = ? AND path LIKE ? ESCAPE '\'`, folder.OwnerID, escapeLike(oldPath)+"/%").
			Update("path", gorm.Expr("? || SUBSTR(path, LENGTH(?) + 1)", folder.Path, oldPath)).
			Error
	})
}

// TrashFolderTree marks the folder and all its descendants trashed in one
// transaction.
func (s *SQLiteStore) TrashFolderTree(ctx context.Context, folder *models.Folder, at time.Time) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(folder).Error; err != nil {
			return err
		}
		return tx.Model(&models.Folder{}).
			Where(`owner_id = ? AND path LIKE ? ESCAPE '\' AND trashed = ?`, folder.OwnerID, escapeLike(folder.Path)+"/%", false).
			Updates(map[string]any{"trashed": true, "trashed_at": at}).
			Error
	})
}

// File operations

func (s *SQLiteStore) CreateFile(ctx context.Context, file *models.File) error {
	return s.db.WithContext(ctx).Create(file).Error
}

func (s *SQLiteStore) GetFile(ctx context.Context, id string) (*models.File, error) {
	var file models.File
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&file).Error
	if err != nil {
		return nil, err
	}
	return &file, nil
}

func (s *SQLiteStore) ListFiles(ctx context.Context, ownerID string, folderID *string) ([]models.File, error) {
	var files []models.File
	query := s.db.WithContext(ctx).
		Where("owner_id = ? AND trashed = ?", ownerID, false)
	if folderID == nil {
		query = query.Where("folder_id IS NULL")
	} else {
		query = query.Where("folder_id = ?", *folderID)
	}
	err := query.Order("name ASC").Find(&files).Error
	return files, err
}

func (s *SQLiteStore) ListStarredFiles(ctx context.Context, ownerID string) ([]models.File, error) {
	var files []models.File
	err := s.db.WithContext(ctx).
		Where("owner_id = ? AND starred = ? AND trashed = ?", ownerID, true, false).
		Order("name ASC").
		Find(&files).Error
	return files, err
}

func (s *SQLiteStore) ListRecentFiles(ctx context.Context, ownerID string, since time.Time, limit, offset int) ([]models.File, error) {
	var files []models.File
	query := s.db.WithContext(ctx).
		Where("owner_id = ? AND trashed = ? AND last_accessed_at >= ?", ownerID, false, since).
		Order("last_accessed_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	err := query.Find(&files).Error
	return files, err
}

func (s *SQLiteStore) SearchFiles(ctx context.Context, ownerID, query string, limit, offset int) ([]models.File, error) {
	var files []models.File
	q := s.db.WithContext(ctx).
		Where(`owner_id = ? AND trashed = ? AND LOWER(name) LIKE ? ESCAPE '\'`,
			ownerID, false, "%"+escapeLike(strings.ToLower(query))+"%").
		Order("name ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	err := q.Find(&files).Error
	return files, err
}

func (s *SQLiteStore) UpdateFile(ctx context.Context, file *models.File) error {
	return s.db.WithContext(ctx).Save(file).Error
}

// TouchFileAccess bumps the download counter and access timestamp. Lost
// updates under contention are tolerated.
func (s *SQLiteStore) TouchFileAccess(ctx context.Context, id string, at time.Time) error {
	return s.db.WithContext(ctx).
		Model(&models.File{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"download_count":   gorm.Expr("download_count + 1"),
			"last_accessed_at": at,
		}).Error
}

// DeleteFileWithQuota removes the metadata row and returns the file's size
// to the owner's quota as one atomic release.
func (s *SQLiteStore) DeleteFileWithQuota(ctx context.Context, file *models.File) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.File{}, "id = ?", file.ID).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("id = ?", file.OwnerID).
			Update("storage_used", gorm.Expr("MAX(storage_used - ?, 0)", file.Size)).
			Error
	})
}

// Share operations

func (s *SQLiteStore) CreateShare(ctx context.Context, share *models.Share) error {
	return s.db.WithContext(ctx).Create(share).Error
}

func (s *SQLiteStore) GetShare(ctx context.Context, id string) (*models.Share, error) {
	var share models.Share
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&share).Error
	if err != nil {
		return nil, err
	}
	return &share, nil
}

func (s *SQLiteStore) GetShareByToken(ctx context.Context, token string) (*models.Share, error) {
	var share models.Share
	err := s.db.WithContext(ctx).Where("token = ?", token).First(&share).Error
	if err != nil {
		return nil, err
	}
	return &share, nil
}

func (s *SQLiteStore) FindShareForUser(ctx context.Context, resourceID, userID string) (*models.Share, error) {
	var share models.Share
	err := s.db.WithContext(ctx).
		Where("resource_id = ? AND shared_with = ?", resourceID, userID).
		First(&share).Error
	if err != nil {
		return nil, err
	}
	return &share, nil
}

func (s *SQLiteStore) ListSharesWithUser(ctx context.Context, userID string) ([]models.Share, error) {
	var shares []models.Share
	err := s.db.WithContext(ctx).
		Where("shared_with = ?", userID).
		Order("created_at DESC").
		Find(&shares).Error
	return shares, err
}

func (s *SQLiteStore) ListSharesByOwner(ctx context.Context, ownerID string) ([]models.Share, error) {
	var shares []models.Share
	err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&shares).Error
	return shares, err
}

func (s *SQLiteStore) UpdateShare(ctx context.Context, share *models.Share) error {
	return s.db.WithContext(ctx).Save(share).Error
}

// TouchShareAccess bumps a link's access counter. Best effort.
func (s *SQLiteStore) TouchShareAccess(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).
		Model(&models.Share{}).
		Where("id = ?", id).
		Update("access_count", gorm.Expr("access_count + 1")).
		Error
}

func (s *SQLiteStore) DeleteShare(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&models.Share{}, "id = ?", id).Error
}

// Activity operations

func (s *SQLiteStore) AppendActivity(ctx context.Context, activity *models.Activity) error {
	return s.db.WithContext(ctx).Create(activity).Error
}

func (s *SQLiteStore) ListUserActivities(ctx context.Context, userID string, limit, offset int) ([]models.Activity, error) {
	var activities []models.Activity
	query := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	err := query.Find(&activities).Error
	return activities, err
}

func (s *SQLiteStore) ListResourceActivities(ctx context.Context, resourceID string) ([]models.Activity, error) {
	var activities []models.Activity
	err := s.db.WithContext(ctx).
		Where("resource_id = ?", resourceID).
		Order("created_at DESC").
		Find(&activities).Error
	return activities, err
}
