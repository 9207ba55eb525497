package server

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cyber08jk/Fire-cloud-data/internal/agent"
	config "github.com/cyber08jk/Fire-cloud-data/internal/config/server"
)

func NewAgentCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agent",
		Short: "Start the Fire Cloud Data Agent",
		Long:  `Start the Fire Cloud Data Agent`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadServerConfig()
			if err != nil {
				return fmt.Errorf("failed to load server configuration: %w", err)
			}

			agent := agent.NewAgent(cfg)
			if err := agent.Serve(context.Background()); err != nil {
				return err
			}

			return nil
		},
	}

	return cmd
}
