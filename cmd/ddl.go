package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flext/flext-db-oracle/internal/ddl"
	"github.com/flext/flext-db-oracle/internal/metadata"
	"github.com/flext/flext-db-oracle/internal/pool"
	"github.com/flext/flext-db-oracle/internal/schema"
)

var (
	ddlSchema string
	ddlTable  string
	ddlDrops  bool
	ddlOut    string
)

var ddlCmd = &cobra.Command{
	Use:   "ddl",
	Short: "Generate DDL from live database metadata",
	Long: `DDL introspects a table (--table) or a whole schema and prints the
CREATE TABLE, ALTER TABLE, and CREATE INDEX statements reproducing it.
Multi-table scripts are ordered by foreign-key dependency; --drops
prepends DROP TABLE statements in reverse order.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		log := newLogger()
		p := pool.New(cfg, log)
		defer p.Close()

		in := metadata.New(p, log)
		gen := ddl.New(log)
		ctx := context.Background()

		var script string
		if ddlTable != "" {
			t, err := in.TableMetadata(ctx, ddlTable, ddlSchema)
			if err != nil {
				return err
			}
			script, err = tableScript(gen, t)
			if err != nil {
				return err
			}
		} else {
			tables, err := in.Tables(ctx, ddlSchema)
			if err != nil {
				return err
			}
			for i := range tables {
				full, err := in.TableMetadata(ctx, tables[i].Name, ddlSchema)
				if err != nil {
					return err
				}
				tables[i] = *full
			}
			script, err = gen.SchemaDDL(tables, ddlDrops)
			if err != nil {
				return err
			}
		}

		if ddlOut != "" {
			if err := os.MkdirAll(filepath.Dir(ddlOut), 0o755); err != nil {
				return fmt.Errorf("creating output directory: %w", err)
			}
			if err := os.WriteFile(ddlOut, []byte(script+"\n"), 0o644); err != nil {
				return fmt.Errorf("writing script: %w", err)
			}
			fmt.Printf("DDL written to %s\n", ddlOut)
			return nil
		}

		fmt.Println(script)
		return nil
	},
}

// tableScript renders one table with its constraints and indexes.
func tableScript(gen *ddl.Generator, t *schema.Table) (string, error) {
	create, err := gen.TableDDL(t)
	if err != nil {
		return "", err
	}

	stmts := []string{create}
	for _, c := range t.Constraints {
		if stmt, ok := gen.ConstraintDDL(t.FullName(), c); ok {
			stmts = append(stmts, stmt)
		}
	}
	for _, idx := range t.Indexes {
		if stmt := gen.IndexDDL(idx); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return strings.Join(stmts, "\n"), nil
}

func init() {
	ddlCmd.Flags().StringVar(&ddlSchema, "schema", "", "schema owner (default: connected user)")
	ddlCmd.Flags().StringVar(&ddlTable, "table", "", "generate DDL for one table only")
	ddlCmd.Flags().BoolVar(&ddlDrops, "drops", false, "prepend DROP TABLE statements")
	ddlCmd.Flags().StringVarP(&ddlOut, "output-file", "f", "", "write the script to a file instead of stdout")
	rootCmd.AddCommand(ddlCmd)
}
