package drive

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyber08jk/Fire-cloud-data/pkg/db/models"
)

func TestShareWithUserUpsertsPermission(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.newUser(t, 1000)
	target := env.newUser(t, 1000)

	file := uploadText(t, env, owner.ID, "shared.txt", "content")

	share, err := env.shares.ShareWithUser(ctx, file.ID, models.ResourceFile, owner.ID, target.Email, models.PermissionViewer)
	require.NoError(t, err)
	assert.Equal(t, models.PermissionViewer, share.Permission)

	// Re-sharing the same pair upgrades in place, no duplicate row.
	upgraded, err := env.shares.ShareWithUser(ctx, file.ID, models.ResourceFile, owner.ID, target.Email, models.PermissionEditor)
	require.NoError(t, err)
	assert.Equal(t, share.ID, upgraded.ID)
	assert.Equal(t, models.PermissionEditor, upgraded.Permission)

	withMe, err := env.shares.SharedWithMe(ctx, target.ID)
	require.NoError(t, err)
	require.Len(t, withMe, 1)

	byMe, err := env.shares.SharedByMe(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, byMe, 1)
}

func TestShareWithUserValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.newUser(t, 1000)

	file := uploadText(t, env, owner.ID, "shared.txt", "content")

	_, err := env.shares.ShareWithUser(ctx, file.ID, models.ResourceFile, owner.ID, owner.Email, "ADMIN")
	require.Error(t, err)

	_, err = env.shares.ShareWithUser(ctx, file.ID, models.ResourceFile, owner.ID, "nobody@example.com", models.PermissionViewer)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPublicLinkLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.newUser(t, 1000)

	file := uploadText(t, env, owner.ID, "public.txt", "content")

	link, err := env.shares.CreatePublicLink(ctx, file.ID, models.ResourceFile, owner.ID, "", nil)
	require.NoError(t, err)
	require.NotNil(t, link.Token)
	assert.Equal(t, models.PermissionViewer, link.Permission)

	// Every call mints an independent link.
	second, err := env.shares.CreatePublicLink(ctx, file.ID, models.ResourceFile, owner.ID, "", nil)
	require.NoError(t, err)
	assert.NotEqual(t, *link.Token, *second.Token)

	resolved, err := env.shares.GetByToken(ctx, *link.Token)
	require.NoError(t, err)
	assert.Equal(t, link.ID, resolved.ID)
	assert.Equal(t, int64(1), resolved.AccessCount)

	resolved, err = env.shares.GetByToken(ctx, *link.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(2), resolved.AccessCount)

	_, err = env.shares.GetByToken(ctx, "not-a-token")
	require.ErrorIs(t, err, ErrInvalidLink)
}

func TestPublicLinkExpiry(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.newUser(t, 1000)

	file := uploadText(t, env, owner.ID, "fleeting.txt", "content")

	past := time.Now().UTC().Add(-time.Minute)
	link, err := env.shares.CreatePublicLink(ctx, file.ID, models.ResourceFile, owner.ID, "", &past)
	require.NoError(t, err)

	_, err = env.shares.GetByToken(ctx, *link.Token)
	require.ErrorIs(t, err, ErrLinkExpired)

	future := time.Now().UTC().Add(time.Hour)
	link, err = env.shares.CreatePublicLink(ctx, file.ID, models.ResourceFile, owner.ID, "", &future)
	require.NoError(t, err)

	_, err = env.shares.GetByToken(ctx, *link.Token)
	require.NoError(t, err)
}

func TestPublicLinkPasswordGate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.newUser(t, 1000)

	file := uploadText(t, env, owner.ID, "gated.txt", "content")

	gated, err := env.shares.CreatePublicLink(ctx, file.ID, models.ResourceFile, owner.ID, "letmein", nil)
	require.NoError(t, err)

	ok, err := env.shares.ValidatePassword(ctx, gated.ID, "wrong")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = env.shares.ValidatePassword(ctx, gated.ID, "letmein")
	require.NoError(t, err)
	assert.True(t, ok)

	// A link without a gate accepts anything, including the empty string.
	open, err := env.shares.CreatePublicLink(ctx, file.ID, models.ResourceFile, owner.ID, "", nil)
	require.NoError(t, err)

	for _, input := range []string{"", "anything"} {
		ok, err = env.shares.ValidatePassword(ctx, open.ID, input)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestHasAccess(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.newUser(t, 1000)
	target := env.newUser(t, 1000)

	file := uploadText(t, env, owner.ID, "shared.txt", "content")

	ok, err := env.shares.HasAccess(ctx, file.ID, target.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = env.shares.ShareWithUser(ctx, file.ID, models.ResourceFile, owner.ID, target.Email, models.PermissionViewer)
	require.NoError(t, err)

	ok, err = env.shares.HasAccess(ctx, file.ID, target.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRemoveIsOwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.newUser(t, 1000)
	target := env.newUser(t, 1000)

	file := uploadText(t, env, owner.ID, "shared.txt", "content")

	share, err := env.shares.ShareWithUser(ctx, file.ID, models.ResourceFile, owner.ID, target.Email, models.PermissionViewer)
	require.NoError(t, err)

	err = env.shares.Remove(ctx, share.ID, target.ID)
	require.ErrorIs(t, err, ErrAccessDenied)

	require.NoError(t, env.shares.Remove(ctx, share.ID, owner.ID))

	ok, err := env.shares.HasAccess(ctx, file.ID, target.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	err = env.shares.Remove(ctx, share.ID, owner.ID)
	require.ErrorIs(t, err, ErrNotFound)
}
