package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flext/flext-db-oracle/internal/pool"
)

var querySQL string

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Execute a SQL statement",
	Long: `Query executes one statement. SELECTs print their rows in the
selected output format; any other statement prints its affected row
count.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if querySQL == "" {
			return fmt.Errorf("--sql is required")
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		p := pool.New(cfg, newLogger())
		defer p.Close()

		res, err := p.Execute(context.Background(), querySQL)
		if err != nil {
			return err
		}

		if res.Rows != nil {
			if err := render(res.Rows.Columns, res.Rows.Rows); err != nil {
				return err
			}
			fmt.Printf("%d rows in %s\n", res.Rows.RowCount, res.Rows.ExecutionTime)
			return nil
		}

		fmt.Printf("%d rows affected\n", res.RowsAffected)
		return nil
	},
}

func init() {
	queryCmd.Flags().StringVar(&querySQL, "sql", "", "SQL statement to execute")
	rootCmd.AddCommand(queryCmd)
}
