package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/flext/flext-db-oracle/internal/metadata"
	"github.com/flext/flext-db-oracle/internal/pool"
	"github.com/flext/flext-db-oracle/internal/schema"
)

var (
	tablesSchema string
	tablesExport string
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List tables in a schema",
	Long: `Tables lists every table in the given schema (default: the
connected user's own schema) with column counts and row estimates. A
schema with no tables yields an empty listing, not an error.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		log := newLogger()
		p := pool.New(cfg, log)
		defer p.Close()

		in := metadata.New(p, log)
		ctx := context.Background()

		tables, err := in.Tables(ctx, tablesSchema)
		if err != nil {
			return err
		}

		if tablesExport != "" {
			for i := range tables {
				full, err := in.TableMetadata(ctx, tables[i].Name, tablesSchema)
				if err != nil {
					return err
				}
				full.RowCount = tables[i].RowCount
				full.Tablespace = tables[i].Tablespace
				tables[i] = *full
			}

			now := time.Now()
			s := &schema.Schema{Name: metadata.Normalize(tablesSchema, cfg.Username), Tables: tables, CreatedDate: &now}
			if err := s.WriteYAML(tablesExport); err != nil {
				return err
			}
			fmt.Printf("%s written to %s\n", s.Summary(), tablesExport)
			return nil
		}

		rows := make([][]any, 0, len(tables))
		for _, t := range tables {
			var rowCount any
			if t.RowCount != nil {
				rowCount = *t.RowCount
			}
			rows = append(rows, []any{t.Name, len(t.Columns), rowCount, t.Tablespace})
		}
		return render([]string{"TABLE", "COLUMNS", "ROWS", "TABLESPACE"}, rows)
	},
}

func init() {
	tablesCmd.Flags().StringVar(&tablesSchema, "schema", "", "schema owner (default: connected user)")
	tablesCmd.Flags().StringVar(&tablesExport, "export", "", "write full schema metadata to a YAML file")
	rootCmd.AddCommand(tablesCmd)
}
