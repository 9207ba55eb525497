package server

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	config "github.com/cyber08jk/Fire-cloud-data/internal/config/server"
	"github.com/cyber08jk/Fire-cloud-data/pkg/db/migrations"
	"github.com/cyber08jk/Fire-cloud-data/pkg/db/models"
	"github.com/cyber08jk/Fire-cloud-data/pkg/db/store"
	"github.com/cyber08jk/Fire-cloud-data/pkg/secret"
)

func NewUserCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
		Long:  "Create and inspect user accounts directly against the metadata store.",
	}

	cmd.AddCommand(newUserCreateCommand())

	return cmd
}

func newUserCreateCommand() *cobra.Command {
	var email, password, firstName, lastName, quota string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new user account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadServerConfig()
			if err != nil {
				return fmt.Errorf("failed to load server configuration: %w", err)
			}

			quotaBytes, err := cfg.Storage.QuotaBytes()
			if err != nil {
				return err
			}
			if quota != "" {
				n, err := humanize.ParseBytes(quota)
				if err != nil {
					return fmt.Errorf("invalid quota %q: %w", quota, err)
				}
				quotaBytes = int64(n)
			}

			hash, err := secret.NewBcryptHasher(0).Hash(password)
			if err != nil {
				return fmt.Errorf("failed to hash password: %w", err)
			}

			ctx := context.Background()

			st, err := store.NewSQLiteStore(store.SQLiteConfig{Path: cfg.Metadata.SQLite.Path})
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.Connect(ctx); err != nil {
				return err
			}
			if err := migrations.NewMigrator(st.DB()).Migrate(ctx); err != nil {
				return err
			}

			user := &models.User{
				ID:           uuid.NewString(),
				Email:        email,
				PasswordHash: hash,
				FirstName:    firstName,
				LastName:     lastName,
				StorageQuota: quotaBytes,
			}

			if err := st.CreateUser(ctx, user); err != nil {
				return fmt.Errorf("failed to create user: %w", err)
			}

			fmt.Printf("Created user %s (%s) with quota %s\n",
				user.Email, user.ID, humanize.IBytes(uint64(user.StorageQuota)))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email (required)")
	cmd.Flags().StringVar(&password, "password", "", "account password (required)")
	cmd.Flags().StringVar(&firstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&quota, "quota", "", "storage quota override (e.g. 20GiB)")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")

	return cmd
}
