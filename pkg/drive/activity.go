package drive

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/cyber08jk/Fire-cloud-data/pkg/db/models"
	"github.com/cyber08jk/Fire-cloud-data/pkg/db/store"
	"github.com/cyber08jk/Fire-cloud-data/pkg/log"
)

// Activity actions emitted by the services.
const (
	ActionUpload       = "UPLOAD"
	ActionDownload     = "DOWNLOAD"
	ActionDelete       = "DELETE"
	ActionShare        = "SHARE"
	ActionCreateFolder = "CREATE_FOLDER"
	ActionDeleteFolder = "DELETE_FOLDER"
	ActionLockFolder   = "LOCK_FOLDER"
	ActionUnlockFolder = "UNLOCK_FOLDER"
)

// ActivityRecorder is the fire-and-forget audit sink. Record never blocks
// and never fails the triggering operation: entries go through a buffered
// channel to a single writer goroutine, and are dropped (with a warning)
// when the buffer is full.
type ActivityRecorder struct {
	store store.MetadataStore
	log   log.LoggerService

	entries chan *models.Activity
	wait    sync.WaitGroup
	once    sync.Once
}

// NewActivityRecorder starts the writer goroutine. Close must be called to
// drain it on shutdown.
func NewActivityRecorder(st store.MetadataStore, logger log.LoggerService, buffer int) *ActivityRecorder {
	if buffer <= 0 {
		buffer = 256
	}

	r := &ActivityRecorder{
		store:   st,
		log:     logger,
		entries: make(chan *models.Activity, buffer),
	}

	r.wait.Add(1)
	go r.run()

	return r
}

func (r *ActivityRecorder) run() {
	defer r.wait.Done()

	for entry := range r.entries {
		if err := r.store.AppendActivity(context.Background(), entry); err != nil {
			r.log.Warn("Failed to append activity %s for user %s: %v", entry.Action, entry.UserID, err)
		}
	}
}

// Record enqueues an audit entry.
func (r *ActivityRecorder) Record(userID, action, resourceID, resourceType, resourceName string) {
	entry := &models.Activity{
		ID:           uuid.NewString(),
		UserID:       userID,
		Action:       action,
		ResourceID:   resourceID,
		ResourceType: resourceType,
		ResourceName: resourceName,
	}

	select {
	case r.entries <- entry:
	default:
		r.log.Warn("Activity buffer full, dropping %s for user %s", action, userID)
	}
}

// Close stops accepting entries and waits for the buffer to drain.
func (r *ActivityRecorder) Close() {
	r.once.Do(func() {
		close(r.entries)
	})
	r.wait.Wait()
}

// UserActivities returns a user's audit trail, newest first.
func (r *ActivityRecorder) UserActivities(ctx context.Context, userID string, limit, offset int) ([]models.Activity, error) {
	return r.store.ListUserActivities(ctx, userID, limit, offset)
}

// ResourceActivities returns the audit trail of a single resource.
func (r *ActivityRecorder) ResourceActivities(ctx context.Context, resourceID string) ([]models.Activity, error) {
	return r.store.ListResourceActivities(ctx, resourceID)
}
