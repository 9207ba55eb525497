package drive

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	config "github.com/cyber08jk/Fire-cloud-data/internal/config/server"
	"github.com/cyber08jk/Fire-cloud-data/pkg/blob"
	"github.com/cyber08jk/Fire-cloud-data/pkg/db/models"
	"github.com/cyber08jk/Fire-cloud-data/pkg/db/store"
	"github.com/cyber08jk/Fire-cloud-data/pkg/log"
	"github.com/cyber08jk/Fire-cloud-data/pkg/secret"
)

// bcryptTestCost keeps password hashing cheap in tests.
const bcryptTestCost = 4

type testEnv struct {
	store    *store.SQLiteStore
	blobs    *blob.MemoryStore
	hasher   secret.Hasher
	recorder *ActivityRecorder

	folders *FolderService
	files   *FileService
	shares  *ShareService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := store.NewSQLiteStore(store.SQLiteConfig{Path: ":memory:"})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, st.Connect(ctx))
	require.NoError(t, st.Migrate(ctx))
	t.Cleanup(func() { st.Close() })

	logger := log.NewLoggerService("test", config.LogServerConfig{Level: "error", NoColor: true})
	hasher := secret.NewBcryptHasher(bcryptTestCost)
	blobs := blob.NewMemoryStore()

	recorder := NewActivityRecorder(st, logger, 16)
	t.Cleanup(recorder.Close)

	shares := NewShareService(st, hasher, recorder, logger)

	return &testEnv{
		store:    st,
		blobs:    blobs,
		hasher:   hasher,
		recorder: recorder,
		folders:  NewFolderService(st, hasher, recorder, logger),
		files:    NewFileService(st, blobs, shares, recorder, logger),
		shares:   shares,
	}
}

func (env *testEnv) newUser(t *testing.T, quota int64) *models.User {
	t.Helper()

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
		StorageQuota: quota,
	}
	require.NoError(t, env.store.CreateUser(context.Background(), user))
	return user
}

func (env *testEnv) storageUsed(t *testing.T, userID string) int64 {
	t.Helper()

	user, err := env.store.GetUserByID(context.Background(), userID)
	require.NoError(t, err)
	return user.StorageUsed
}
