package drive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cyber08jk/Fire-cloud-data/pkg/blob"
	"github.com/cyber08jk/Fire-cloud-data/pkg/db/models"
	"github.com/cyber08jk/Fire-cloud-data/pkg/db/store"
	"github.com/cyber08jk/Fire-cloud-data/pkg/log"
)

// RecentWindow bounds how far back Recent looks by last access time.
const RecentWindow = 30 * 24 * time.Hour

// ShareAccess extends read access beyond ownership. Only direct-user grants
// are consulted here; public-link access is resolved explicitly through
// ShareService.GetByToken and never folds into this check.
type ShareAccess interface {
	HasAccess(ctx context.Context, resourceID, userID string) (bool, error)
}

// FileService owns file metadata lifecycle and quota accounting. Content
// bytes live in the blob store; the quota ledger lives on the user row and
// is only touched through the store's atomic reserve/release operations.
type FileService struct {
	store    store.MetadataStore
	blobs    blob.Store
	shares   ShareAccess
	activity *ActivityRecorder
	log      log.LoggerService
}

func NewFileService(st store.MetadataStore, blobs blob.Store, shares ShareAccess, activity *ActivityRecorder, logger log.LoggerService) *FileService {
	return &FileService{
		store:    st,
		blobs:    blobs,
		shares:   shares,
		activity: activity,
		log:      logger,
	}
}

// UploadInput describes an incoming file.
type UploadInput struct {
	Name     string
	MimeType string
	Size     int64
	Content  io.Reader
}

// Upload reserves quota, stores the content and creates the metadata row.
//
// The quota check and increment are one conditional update, so concurrent
// uploads that individually fit cannot jointly overrun the quota. If blob
// storage or metadata persistence fails after the reservation, both the
// reservation and any stored blob are rolled back so nothing leaks.
func (s *FileService) Upload(ctx context.Context, in UploadInput, ownerID string, folderID *string) (*models.File, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("file name is required")
	}
	if in.Size < 0 {
		return nil, fmt.Errorf("file size must not be negative")
	}

	if err := s.store.ReserveStorage(ctx, ownerID, in.Size); err != nil {
		if errors.Is(err, store.ErrQuotaExceeded) {
			return nil, fmt.Errorf("upload of %q: %w", in.Name, ErrQuotaExceeded)
		}
		if recordNotFound(err) {
			return nil, fmt.Errorf("user %s: %w", ownerID, ErrNotFound)
		}
		return nil, err
	}

	blobID := uuid.NewString()
	if err := s.blobs.Put(ctx, blobID, in.Content, in.Size); err != nil {
		s.releaseQuota(ctx, ownerID, in.Size)
		return nil, fmt.Errorf("failed to store content for %q: %w", in.Name, err)
	}

	file := &models.File{
		ID:             uuid.NewString(),
		Name:           in.Name,
		OwnerID:        ownerID,
		FolderID:       folderID,
		BlobID:         blobID,
		Size:           in.Size,
		MimeType:       in.MimeType,
		Extension:      fileExtension(in.Name),
		LastAccessedAt: time.Now().UTC(),
	}

	if err := s.store.CreateFile(ctx, file); err != nil {
		// Orphaned blobs would consume storage invisibly.
		if derr := s.blobs.Delete(ctx, blobID); derr != nil {
			s.log.Error("Failed to delete orphan blob %s after metadata failure: %v", blobID, derr)
		}
		s.releaseQuota(ctx, ownerID, in.Size)
		return nil, fmt.Errorf("failed to persist metadata for %q: %w", in.Name, err)
	}

	s.activity.Record(ownerID, ActionUpload, file.ID, models.ResourceFile, file.Name)
	return file, nil
}

func (s *FileService) releaseQuota(ctx context.Context, ownerID string, size int64) {
	if err := s.store.ReleaseStorage(ctx, ownerID, size); err != nil {
		s.log.Error("Failed to release %d bytes for user %s: %v", size, ownerID, err)
	}
}

// Get returns file metadata for the owner or a user holding a direct share.
// Every successful read bumps the download counter and access timestamp;
// the bump is best effort and never fails the read.
func (s *FileService) Get(ctx context.Context, id, requesterID string) (*models.File, error) {
	file, err := s.store.GetFile(ctx, id)
	if err != nil {
		if recordNotFound(err) {
			return nil, fmt.Errorf("file %s: %w", id, ErrNotFound)
		}
		return nil, err
	}

	if file.OwnerID != requesterID {
		ok, err := s.shares.HasAccess(ctx, id, requesterID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("file %s: %w", id, ErrAccessDenied)
		}
	}

	now := time.Now().UTC()
	if err := s.store.TouchFileAccess(ctx, id, now); err != nil {
		s.log.Warn("Failed to track access for file %s: %v", id, err)
	} else {
		file.DownloadCount++
		file.LastAccessedAt = now
	}

	return file, nil
}

// Download resolves access through Get and opens the content stream. The
// caller owns the returned reader.
func (s *FileService) Download(ctx context.Context, id, requesterID string) (io.ReadCloser, *models.File, error) {
	file, err := s.Get(ctx, id, requesterID)
	if err != nil {
		return nil, nil, err
	}

	rc, err := s.blobs.Get(ctx, file.BlobID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open content for file %s: %w", id, err)
	}

	s.activity.Record(requesterID, ActionDownload, file.ID, models.ResourceFile, file.Name)
	return rc, file, nil
}

// List returns the caller's active files in folderID (nil means root).
func (s *FileService) List(ctx context.Context, ownerID string, folderID *string) ([]models.File, error) {
	return s.store.ListFiles(ctx, ownerID, folderID)
}

// Starred returns the caller's active starred files.
func (s *FileService) Starred(ctx context.Context, ownerID string) ([]models.File, error) {
	return s.store.ListStarredFiles(ctx, ownerID)
}

// Recent returns active files accessed within RecentWindow, newest first.
func (s *FileService) Recent(ctx context.Context, ownerID string, limit, offset int) ([]models.File, error) {
	since := time.Now().UTC().Add(-RecentWindow)
	return s.store.ListRecentFiles(ctx, ownerID, since, limit, offset)
}

// Search matches active file names case-insensitively by substring.
func (s *FileService) Search(ctx context.Context, ownerID, query string, limit, offset int) ([]models.File, error) {
	return s.store.SearchFiles(ctx, ownerID, query, limit, offset)
}

// ToggleStar flips the starred flag. Owner only.
func (s *FileService) ToggleStar(ctx context.Context, id, ownerID string) (*models.File, error) {
	file, err := s.getOwned(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	file.Starred = !file.Starred
	if err := s.store.UpdateFile(ctx, file); err != nil {
		return nil, err
	}
	return file, nil
}

// Rename changes the display name only; size and content are immutable.
func (s *FileService) Rename(ctx context.Context, id, newName, ownerID string) (*models.File, error) {
	if newName == "" {
		return nil, fmt.Errorf("file name is required")
	}

	file, err := s.getOwned(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	file.Name = newName
	if err := s.store.UpdateFile(ctx, file); err != nil {
		return nil, err
	}
	return file, nil
}

// Trash soft-deletes a file. Quota is not freed until the file is purged.
func (s *FileService) Trash(ctx context.Context, id, ownerID string) error {
	file, err := s.getOwned(ctx, id, ownerID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	file.Trashed = true
	file.TrashedAt = &now

	if err := s.store.UpdateFile(ctx, file); err != nil {
		return err
	}

	s.activity.Record(ownerID, ActionDelete, file.ID, models.ResourceFile, file.Name)
	return nil
}

// Purge permanently deletes a file: content first, then metadata row and
// quota release together in one transaction.
func (s *FileService) Purge(ctx context.Context, id, ownerID string) error {
	file, err := s.getOwned(ctx, id, ownerID)
	if err != nil {
		return err
	}

	if err := s.blobs.Delete(ctx, file.BlobID); err != nil {
		return fmt.Errorf("failed to delete content for file %s: %w", id, err)
	}

	if err := s.store.DeleteFileWithQuota(ctx, file); err != nil {
		return fmt.Errorf("failed to purge file %s: %w", id, err)
	}
	return nil
}

func (s *FileService) getOwned(ctx context.Context, id, ownerID string) (*models.File, error) {
	file, err := s.store.GetFile(ctx, id)
	if err != nil {
		if recordNotFound(err) {
			return nil, fmt.Errorf("file %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	if err := requireOwner(file.OwnerID, ownerID); err != nil {
		return nil, err
	}
	return file, nil
}

func fileExtension(name string) string {
	ext := filepath.Ext(name)
	return strings.TrimPrefix(ext, ".")
}
