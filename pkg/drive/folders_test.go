package drive

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFolderCreatePaths(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.newUser(t, 1000)

	docs, err := env.folders.Create(ctx, "Documents", nil, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "/Documents", docs.Path)

	work, err := env.folders.Create(ctx, "Work", &docs.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "/Documents/Work", work.Path)
	require.NotNil(t, work.ParentID)
	assert.Equal(t, docs.ID, *work.ParentID)
}

func TestFolderCreateRejectsDuplicates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.newUser(t, 1000)

	_, err := env.folders.Create(ctx, "Documents", nil, owner.ID)
	require.NoError(t, err)

	_, err = env.folders.Create(ctx, "Documents", nil, owner.ID)
	require.ErrorIs(t, err, ErrDuplicateName)

	// Same name under a different parent is fine.
	other, err := env.folders.Create(ctx, "Other", nil, owner.ID)
	require.NoError(t, err)
	_, err = env.folders.Create(ctx, "Documents", &other.ID, owner.ID)
	require.NoError(t, err)
}

func TestFolderCreateValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.newUser(t, 1000)

	_, err := env.folders.Create(ctx, "", nil, owner.ID)
	require.Error(t, err)

	_, err = env.folders.Create(ctx, "a/b", nil, owner.ID)
	require.Error(t, err)
}

func TestFolderCreateUnderTrashedParent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.newUser(t, 1000)

	parent, err := env.folders.Create(ctx, "Old", nil, owner.ID)
	require.NoError(t, err)
	require.NoError(t, env.folders.Trash(ctx, parent.ID, owner.ID))

	_, err = env.folders.Create(ctx, "Child", &parent.ID, owner.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFolderCreateUnderForeignParent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.newUser(t, 1000)
	intruder := env.newUser(t, 1000)

	parent, err := env.folders.Create(ctx, "Private", nil, owner.ID)
	require.NoError(t, err)

	_, err = env.folders.Create(ctx, "Sneaky", &parent.ID, intruder.ID)
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestFolderRenameRewritesSubtree(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.newUser(t, 1000)

	a, err := env.folders.Create(ctx, "A", nil, owner.ID)
	require.NoError(t, err)
	b, err := env.folders.Create(ctx, "B", &a.ID, owner.ID)
	require.NoError(t, err)
	c, err := env.folders.Create(ctx, "C", &b.ID, owner.ID)
	require.NoError(t, err)
	d, err := env.folders.Create(ctx, "D", nil, owner.ID)
	require.NoError(t, err)

	renamed, err := env.folders.Rename(ctx, a.ID, "X", owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "/X", renamed.Path)

	for id, want := range map[string]string{
		b.ID: "/X/B",
		c.ID: "/X/B/C",
		d.ID: "/D",
	} {
		got, err := env.folders.Get(ctx, id, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, want, got.Path)
	}
}

func TestFolderRenameRejectsSiblingCollision(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.newUser(t, 1000)

	a, err := env.folders.Create(ctx, "A", nil, owner.ID)
	require.NoError(t, err)
	_, err = env.folders.Create(ctx, "B", nil, owner.ID)
	require.NoError(t, err)

	_, err = env.folders.Rename(ctx, a.ID, "B", owner.ID)
	require.ErrorIs(t, err, ErrDuplicateName)

	// Renaming to its own current name is not a collision.
	_, err = env.folders.Rename(ctx, a.ID, "A", owner.ID)
	require.NoError(t, err)
}

func TestFolderTrashCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.newUser(t, 1000)

	a, err := env.folders.Create(ctx, "A", nil, owner.ID)
	require.NoError(t, err)
	b, err := env.folders.Create(ctx, "B", &a.ID, owner.ID)
	require.NoError(t, err)
	_, err = env.folders.Create(ctx, "D", nil, owner.ID)
	require.NoError(t, err)

	require.NoError(t, env.folders.Trash(ctx, a.ID, owner.ID))

	gotB, err := env.folders.Get(ctx, b.ID, owner.ID)
	require.NoError(t, err)
	assert.True(t, gotB.Trashed)
	require.NotNil(t, gotB.TrashedAt)

	// Only the untouched sibling remains listed at root.
	roots, err := env.folders.List(ctx, owner.ID, nil)
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, "D", roots[0].Name)
}

func TestFolderToggleStar(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.newUser(t, 1000)

	folder, err := env.folders.Create(ctx, "A", nil, owner.ID)
	require.NoError(t, err)

	folder, err = env.folders.ToggleStar(ctx, folder.ID, owner.ID)
	require.NoError(t, err)
	assert.True(t, folder.Starred)

	folder, err = env.folders.ToggleStar(ctx, folder.ID, owner.ID)
	require.NoError(t, err)
	assert.False(t, folder.Starred)
}

func TestFolderLockLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.newUser(t, 1000)

	folder, err := env.folders.Create(ctx, "Vault", nil, owner.ID)
	require.NoError(t, err)

	// Unlocked folders accept any password.
	ok, err := env.folders.VerifyPassword(ctx, folder.ID, "whatever", owner.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	folder, err = env.folders.Lock(ctx, folder.ID, "s3cret", owner.ID)
	require.NoError(t, err)
	assert.True(t, folder.Locked)

	_, err = env.folders.Lock(ctx, folder.ID, "another", owner.ID)
	require.ErrorIs(t, err, ErrFolderLocked)

	ok, err = env.folders.VerifyPassword(ctx, folder.ID, "wrong", owner.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = env.folders.VerifyPassword(ctx, folder.ID, "s3cret", owner.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	// A wrong password leaves the lock in place.
	_, err = env.folders.Unlock(ctx, folder.ID, "wrong", owner.ID)
	require.ErrorIs(t, err, ErrInvalidPassword)

	folder, err = env.folders.Unlock(ctx, folder.ID, "s3cret", owner.ID)
	require.NoError(t, err)
	assert.False(t, folder.Locked)
	assert.Empty(t, folder.PasswordHash)

	_, err = env.folders.Unlock(ctx, folder.ID, "s3cret", owner.ID)
	require.ErrorIs(t, err, ErrFolderNotLocked)
}

func TestFolderGetEnforcesOwnership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.newUser(t, 1000)
	intruder := env.newUser(t, 1000)

	folder, err := env.folders.Create(ctx, "Private", nil, owner.ID)
	require.NoError(t, err)

	_, err = env.folders.Get(ctx, folder.ID, intruder.ID)
	require.ErrorIs(t, err, ErrAccessDenied)

	_, err = env.folders.Get(ctx, "missing", owner.ID)
	require.ErrorIs(t, err, ErrNotFound)
}
