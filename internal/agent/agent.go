package agent

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/mwantia/fabric/pkg/container"

	config "github.com/cyber08jk/Fire-cloud-data/internal/config/server"
	"github.com/cyber08jk/Fire-cloud-data/pkg/blob"
	"github.com/cyber08jk/Fire-cloud-data/pkg/db/migrations"
	"github.com/cyber08jk/Fire-cloud-data/pkg/db/store"
	"github.com/cyber08jk/Fire-cloud-data/pkg/drive"
	"github.com/cyber08jk/Fire-cloud-data/pkg/log"
	"github.com/cyber08jk/Fire-cloud-data/pkg/secret"
)

// FireCloudAgent wires the metadata store, blob store and drive services
// together and keeps them alive until shutdown.
type FireCloudAgent struct {
	mutex sync.RWMutex
	wait  sync.WaitGroup

	cfg *config.BaseServerConfig
	sc  *container.ServiceContainer
	log log.LoggerService

	metadata store.MetadataStore
	blobs    blob.Store
	activity *drive.ActivityRecorder
}

func NewAgent(cfg *config.BaseServerConfig) *FireCloudAgent {
	return &FireCloudAgent{
		cfg: cfg,
		sc:  container.NewServiceContainer(),
		log: log.NewLoggerService("firecloud", cfg.Log),
	}
}

func (fca *FireCloudAgent) setupServices(ctx context.Context) error {
	metadata, err := buildMetadataStore(fca.cfg.Metadata)
	if err != nil {
		return fmt.Errorf("failed to build metadata store: %w", err)
	}
	if err := metadata.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect metadata store: %w", err)
	}
	if err := migrations.NewMigrator(metadata.DB()).Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate metadata store: %w", err)
	}
	fca.metadata = metadata

	blobs, err := buildBlobStore(ctx, fca.cfg.Blob)
	if err != nil {
		return fmt.Errorf("failed to build blob store: %w", err)
	}
	fca.blobs = blobs

	hasher := secret.NewBcryptHasher(0)
	fca.activity = drive.NewActivityRecorder(metadata, fca.log.Named("activity"), 0)

	shares := drive.NewShareService(metadata, hasher, fca.activity, fca.log.Named("shares"))
	folders := drive.NewFolderService(metadata, hasher, fca.activity, fca.log.Named("folders"))
	files := drive.NewFileService(metadata, blobs, shares, fca.activity, fca.log.Named("files"))

	errs := container.Errors{}

	fca.log.Debug("Registering 'LoggerService'...")
	errs.Add(container.Register[log.LoggerServiceImpl](fca.sc,
		container.With[log.LoggerService](),
		container.WithInstance(fca.log)))

	fca.log.Debug("Registering 'MetadataStore'...")
	errs.Add(container.Register[store.SQLiteStore](fca.sc,
		container.With[store.MetadataStore](),
		container.WithInstance(metadata)))

	fca.log.Debug("Registering drive services...")
	errs.Add(container.Register[drive.FolderService](fca.sc,
		container.WithInstance(folders)))
	errs.Add(container.Register[drive.FileService](fca.sc,
		container.WithInstance(files)))
	errs.Add(container.Register[drive.ShareService](fca.sc,
		container.WithInstance(shares)))

	return errs.Errors()
}

func (fca *FireCloudAgent) Serve(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	fca.mutex.Lock()

	if err := fca.setupServices(ctx); err != nil {
		fca.mutex.Unlock()
		return err
	}

	fca.mutex.Unlock()

	fca.log.Info("Agent ready")
	<-ctx.Done()

	timeout, err := time.ParseDuration(fca.cfg.ShutdownTimeout)
	if err != nil {
		// Set default of 60 seconds if error
		timeout = 60 * time.Second
	}

	shutdown, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := fca.sc.Cleanup(shutdown); err != nil {
		return fmt.Errorf("failed to complete service container cleanup: %w", err)
	}

	fca.activity.Close()

	if err := fca.blobs.Close(); err != nil {
		fca.log.Error("Failed to close blob store: %v", err)
	}
	if err := fca.metadata.Close(); err != nil {
		fca.log.Error("Failed to close metadata store: %v", err)
	}

	fca.wait.Wait()
	return nil
}

func buildMetadataStore(cfg config.MetadataServerConfig) (*store.SQLiteStore, error) {
	switch cfg.Type {
	case "sqlite":
		return store.NewSQLiteStore(store.SQLiteConfig{Path: cfg.SQLite.Path})
	default:
		return nil, fmt.Errorf("unknown metadata store type %q", cfg.Type)
	}
}

func buildBlobStore(ctx context.Context, cfg config.BlobServerConfig) (blob.Store, error) {
	switch cfg.Type {
	case "filesystem":
		return blob.NewFilesystemStore(cfg.Filesystem.Path)
	case "memory":
		return blob.NewMemoryStore(), nil
	case "s3":
		return blob.NewS3Store(ctx, blob.S3Config{
			Region:    cfg.S3.Region,
			Bucket:    cfg.S3.Bucket,
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			KeyPrefix: cfg.S3.KeyPrefix,
		})
	case "badger":
		return blob.NewBadgerStore(cfg.Badger.Path)
	default:
		return nil, fmt.Errorf("unknown blob store type %q", cfg.Type)
	}
}
