package drive

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cyber08jk/Fire-cloud-data/pkg/db/models"
	"github.com/cyber08jk/Fire-cloud-data/pkg/db/store"
	"github.com/cyber08jk/Fire-cloud-data/pkg/log"
	"github.com/cyber08jk/Fire-cloud-data/pkg/secret"
)

// FolderService owns the folder hierarchy: creation, naming uniqueness,
// materialized-path maintenance, cascading rename/trash across subtrees and
// the password lock state machine.
type FolderService struct {
	store    store.MetadataStore
	hasher   secret.Hasher
	activity *ActivityRecorder
	log      log.LoggerService
}

func NewFolderService(st store.MetadataStore, hasher secret.Hasher, activity *ActivityRecorder, logger log.LoggerService) *FolderService {
	return &FolderService{
		store:    st,
		hasher:   hasher,
		activity: activity,
		log:      logger,
	}
}

// Create makes a new active folder under parentID (nil means root). The
// materialized path is derived from the parent's path. Creating under a
// trashed parent is rejected: a trashed folder is not addressable.
func (s *FolderService) Create(ctx context.Context, name string, parentID *string, ownerID string) (*models.Folder, error) {
	if name == "" {
		return nil, fmt.Errorf("folder name is required")
	}
	if strings.Contains(name, "/") {
		return nil, fmt.Errorf("folder name must not contain '/'")
	}

	if _, err := s.store.FindFolderByName(ctx, ownerID, parentID, name); err == nil {
		return nil, fmt.Errorf("folder %q: %w", name, ErrDuplicateName)
	} else if !recordNotFound(err) {
		return nil, err
	}

	path := "/" + name
	if parentID != nil {
		parent, err := s.store.GetFolder(ctx, *parentID)
		if err != nil {
			if recordNotFound(err) {
				return nil, fmt.Errorf("parent folder: %w", ErrNotFound)
			}
			return nil, err
		}
		if err := requireOwner(parent.OwnerID, ownerID); err != nil {
			return nil, err
		}
		if parent.Trashed {
			return nil, fmt.Errorf("parent folder is trashed: %w", ErrNotFound)
		}
		path = parent.Path + "/" + name
	}

	folder := &models.Folder{
		ID:       uuid.NewString(),
		Name:     name,
		OwnerID:  ownerID,
		ParentID: parentID,
		Path:     path,
	}

	if err := s.store.CreateFolder(ctx, folder); err != nil {
		// The store re-verifies the parent inside the insert transaction;
		// a parent trashed since the check above surfaces here.
		if recordNotFound(err) {
			return nil, fmt.Errorf("parent folder: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}

	s.activity.Record(ownerID, ActionCreateFolder, folder.ID, models.ResourceFolder, name)
	return folder, nil
}

// Get returns a folder owned by the caller.
func (s *FolderService) Get(ctx context.Context, id, ownerID string) (*models.Folder, error) {
	folder, err := s.store.GetFolder(ctx, id)
	if err != nil {
		if recordNotFound(err) {
			return nil, fmt.Errorf("folder %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	if err := requireOwner(folder.OwnerID, ownerID); err != nil {
		return nil, err
	}
	return folder, nil
}

// List returns the caller's active folders under parentID (nil means root).
func (s *FolderService) List(ctx context.Context, ownerID string, parentID *string) ([]models.Folder, error) {
	return s.store.ListFolders(ctx, ownerID, parentID)
}

// Rename changes a folder's name and rewrites the paths of the whole
// subtree in one batch. Descendant paths are rewritten by prefix
// substitution, not re-derived per folder.
func (s *FolderService) Rename(ctx context.Context, id, newName, ownerID string) (*models.Folder, error) {
	if newName == "" {
		return nil, fmt.Errorf("folder name is required")
	}
	if strings.Contains(newName, "/") {
		return nil, fmt.Errorf("folder name must not contain '/'")
	}

	folder, err := s.Get(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if existing, err := s.store.FindFolderByName(ctx, ownerID, folder.ParentID, newName); err == nil {
		if existing.ID != folder.ID {
			return nil, fmt.Errorf("folder %q: %w", newName, ErrDuplicateName)
		}
	} else if !recordNotFound(err) {
		return nil, err
	}

	oldPath := folder.Path
	parentPath := strings.TrimSuffix(oldPath, "/"+folder.Name)

	folder.Name = newName
	folder.Path = parentPath + "/" + newName

	if err := s.store.RenameFolderTree(ctx, folder, oldPath); err != nil {
		return nil, fmt.Errorf("failed to rename folder subtree: %w", err)
	}

	return folder, nil
}

// Trash soft-deletes a folder and every descendant in one batch. Files
// inside trashed folders are left untouched; file trash is its own
// operation.
func (s *FolderService) Trash(ctx context.Context, id, ownerID string) error {
	folder, err := s.Get(ctx, id, ownerID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	folder.Trashed = true
	folder.TrashedAt = &now

	if err := s.store.TrashFolderTree(ctx, folder, now); err != nil {
		return fmt.Errorf("failed to trash folder subtree: %w", err)
	}

	s.activity.Record(ownerID, ActionDeleteFolder, folder.ID, models.ResourceFolder, folder.Name)
	return nil
}

// ToggleStar flips the starred flag.
func (s *FolderService) ToggleStar(ctx context.Context, id, ownerID string) (*models.Folder, error) {
	folder, err := s.Get(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	folder.Starred = !folder.Starred
	if err := s.store.UpdateFolder(ctx, folder); err != nil {
		return nil, err
	}
	return folder, nil
}

// Lock protects a folder with a password. Locking an already-locked folder
// fails; the existing password stays in force.
func (s *FolderService) Lock(ctx context.Context, id, password, ownerID string) (*models.Folder, error) {
	folder, err := s.Get(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if folder.Locked {
		return nil, fmt.Errorf("folder %s: %w", id, ErrFolderLocked)
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash folder password: %w", err)
	}

	folder.Locked = true
	folder.PasswordHash = digest

	if err := s.store.UpdateFolder(ctx, folder); err != nil {
		return nil, err
	}

	s.activity.Record(ownerID, ActionLockFolder, folder.ID, models.ResourceFolder, folder.Name)
	return folder, nil
}

// Unlock removes the password protection. A wrong password leaves the
// folder locked.
func (s *FolderService) Unlock(ctx context.Context, id, password, ownerID string) (*models.Folder, error) {
	folder, err := s.Get(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if !folder.Locked {
		return nil, fmt.Errorf("folder %s: %w", id, ErrFolderNotLocked)
	}
	if !s.hasher.Verify(password, folder.PasswordHash) {
		return nil, fmt.Errorf("folder %s: %w", id, ErrInvalidPassword)
	}

	folder.Locked = false
	folder.PasswordHash = ""

	if err := s.store.UpdateFolder(ctx, folder); err != nil {
		return nil, err
	}

	s.activity.Record(ownerID, ActionUnlockFolder, folder.ID, models.ResourceFolder, folder.Name)
	return folder, nil
}

// VerifyPassword checks a folder password without mutating anything. An
// unlocked folder accepts any input.
func (s *FolderService) VerifyPassword(ctx context.Context, id, password, ownerID string) (bool, error) {
	folder, err := s.Get(ctx, id, ownerID)
	if err != nil {
		return false, err
	}

	if !folder.Locked {
		return true, nil
	}
	return s.hasher.Verify(password, folder.PasswordHash), nil
}
