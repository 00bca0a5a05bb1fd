package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/flext/flext-db-oracle/internal/metadata"
	"github.com/flext/flext-db-oracle/internal/pool"
)

var schemasCmd = &cobra.Command{
	Use:   "schemas",
	Short: "List schema owners visible to the current user",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		log := newLogger()
		p := pool.New(cfg, log)
		defer p.Close()

		owners, err := metadata.New(p, log).Schemas(context.Background())
		if err != nil {
			return err
		}

		rows := make([][]any, 0, len(owners))
		for _, owner := range owners {
			rows = append(rows, []any{owner})
		}
		return render([]string{"OWNER"}, rows)
	},
}

func init() {
	rootCmd.AddCommand(schemasCmd)
}
