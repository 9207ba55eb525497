package drive

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cyber08jk/Fire-cloud-data/pkg/db/models"
	"github.com/cyber08jk/Fire-cloud-data/pkg/db/store"
	"github.com/cyber08jk/Fire-cloud-data/pkg/log"
	"github.com/cyber08jk/Fire-cloud-data/pkg/secret"
)

// ShareService issues and revokes access grants: direct user shares and
// public token links. It never mutates the shared resources themselves.
type ShareService struct {
	store    store.MetadataStore
	hasher   secret.Hasher
	activity *ActivityRecorder
	log      log.LoggerService
}

func NewShareService(st store.MetadataStore, hasher secret.Hasher, activity *ActivityRecorder, logger log.LoggerService) *ShareService {
	return &ShareService{
		store:    st,
		hasher:   hasher,
		activity: activity,
		log:      logger,
	}
}

func validPermission(permission string) bool {
	return permission == models.PermissionViewer || permission == models.PermissionEditor
}

// ShareWithUser grants a user access to a resource, resolving the target by
// email. Re-sharing the same (resource, user) pair updates the permission
// in place instead of creating a duplicate.
func (s *ShareService) ShareWithUser(ctx context.Context, resourceID, resourceType, ownerID, targetEmail, permission string) (*models.Share, error) {
	if !validPermission(permission) {
		return nil, fmt.Errorf("unknown permission %q", permission)
	}

	target, err := s.store.GetUserByEmail(ctx, targetEmail)
	if err != nil {
		if recordNotFound(err) {
			return nil, fmt.Errorf("user %s: %w", targetEmail, ErrNotFound)
		}
		return nil, err
	}

	if existing, err := s.store.FindShareForUser(ctx, resourceID, target.ID); err == nil {
		existing.Permission = permission
		if err := s.store.UpdateShare(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	} else if !recordNotFound(err) {
		return nil, err
	}

	share := &models.Share{
		ID:           uuid.NewString(),
		ResourceID:   resourceID,
		ResourceType: resourceType,
		OwnerID:      ownerID,
		SharedWith:   &target.ID,
		Permission:   permission,
	}

	if err := s.store.CreateShare(ctx, share); err != nil {
		return nil, fmt.Errorf("failed to create share: %w", err)
	}

	s.activity.Record(ownerID, ActionShare, resourceID, resourceType, "Shared with "+targetEmail)
	return share, nil
}

// CreatePublicLink mints a link share with a fresh unguessable token.
// Links always carry VIEWER permission and are never deduplicated: every
// call produces a new independent link. Password and expiry are optional
// gates.
func (s *ShareService) CreatePublicLink(ctx context.Context, resourceID, resourceType, ownerID, password string, expiresAt *time.Time) (*models.Share, error) {
	token := uuid.NewString()

	share := &models.Share{
		ID:           uuid.NewString(),
		ResourceID:   resourceID,
		ResourceType: resourceType,
		OwnerID:      ownerID,
		Token:        &token,
		Permission:   models.PermissionViewer,
		ExpiresAt:    expiresAt,
	}

	if password != "" {
		digest, err := s.hasher.Hash(password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash link password: %w", err)
		}
		share.PasswordHash = digest
	}

	if err := s.store.CreateShare(ctx, share); err != nil {
		return nil, fmt.Errorf("failed to create public link: %w", err)
	}
	return share, nil
}

// GetByToken resolves a public link, rejecting unknown and expired tokens.
// Each successful resolution counts as one access; the counter bump is best
// effort.
func (s *ShareService) GetByToken(ctx context.Context, token string) (*models.Share, error) {
	share, err := s.store.GetShareByToken(ctx, token)
	if err != nil {
		if recordNotFound(err) {
			return nil, ErrInvalidLink
		}
		return nil, err
	}

	if share.ExpiresAt != nil && share.ExpiresAt.Before(time.Now().UTC()) {
		return nil, fmt.Errorf("link %s: %w", share.ID, ErrLinkExpired)
	}

	if err := s.store.TouchShareAccess(ctx, share.ID); err != nil {
		s.log.Warn("Failed to count access for share %s: %v", share.ID, err)
	} else {
		share.AccessCount++
	}

	return share, nil
}

// ValidatePassword checks a link's password gate. A share without a gate
// accepts any input, including the empty string.
func (s *ShareService) ValidatePassword(ctx context.Context, shareID, password string) (bool, error) {
	share, err := s.store.GetShare(ctx, shareID)
	if err != nil {
		if recordNotFound(err) {
			return false, fmt.Errorf("share %s: %w", shareID, ErrNotFound)
		}
		return false, err
	}

	if share.PasswordHash == "" {
		return true, nil
	}
	return s.hasher.Verify(password, share.PasswordHash), nil
}

// HasAccess reports whether a direct share exists for (resource, user).
// Consumed by FileService to extend read access beyond ownership.
func (s *ShareService) HasAccess(ctx context.Context, resourceID, userID string) (bool, error) {
	if _, err := s.store.FindShareForUser(ctx, resourceID, userID); err != nil {
		if recordNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// SharedWithMe lists shares granted to the user.
func (s *ShareService) SharedWithMe(ctx context.Context, userID string) ([]models.Share, error) {
	return s.store.ListSharesWithUser(ctx, userID)
}

// SharedByMe lists shares the user has granted.
func (s *ShareService) SharedByMe(ctx context.Context, ownerID string) ([]models.Share, error) {
	return s.store.ListSharesByOwner(ctx, ownerID)
}

// Remove revokes a share. Owner only; hard delete, no tombstone.
func (s *ShareService) Remove(ctx context.Context, shareID, ownerID string) error {
	share, err := s.store.GetShare(ctx, shareID)
	if err != nil {
		if recordNotFound(err) {
			return fmt.Errorf("share %s: %w", shareID, ErrNotFound)
		}
		return err
	}
	if err := requireOwner(share.OwnerID, ownerID); err != nil {
		return err
	}

	return s.store.DeleteShare(ctx, shareID)
}
