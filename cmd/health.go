package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flext/flext-db-oracle/internal/metadata"
	"github.com/flext/flext-db-oracle/internal/pool"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check database connectivity and report the server version",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		log := newLogger()
		p := pool.New(cfg, log)
		defer p.Close()

		ctx := context.Background()
		status := p.TestConnection(ctx)
		if !status.Connected {
			if err := printStatus(status); err != nil {
				return err
			}
			return fmt.Errorf("health check failed: %s", status.ErrorMessage)
		}

		version, err := metadata.New(p, log).Version(ctx)
		if err != nil {
			return err
		}

		return render(
			[]string{"STATUS", "HOST", "PORT", "DATABASE", "VERSION"},
			[][]any{{"healthy", status.Host, status.Port, status.Database, version}},
		)
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
