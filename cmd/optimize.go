package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flext/flext-db-oracle/internal/optimize"
)

var optimizeSQL string

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Analyze a SQL statement for common performance problems",
	Long: `Optimize runs static heuristics against a statement: SELECT *,
unbounded UPDATE/DELETE, missing row limits, leading wildcards, and
predicates that defeat index use. It never contacts the database.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := optimize.Analyze(optimizeSQL)
		if err != nil {
			return err
		}

		if len(report.Findings) == 0 {
			fmt.Printf("no findings (hash %s)\n", report.Hash)
			return nil
		}

		rows := make([][]any, 0, len(report.Findings))
		for _, f := range report.Findings {
			rows = append(rows, []any{string(f.Severity), f.Rule, f.Message})
		}
		return render([]string{"SEVERITY", "RULE", "MESSAGE"}, rows)
	},
}

func init() {
	optimizeCmd.Flags().StringVar(&optimizeSQL, "sql", "", "SQL statement to analyze")
	optimizeCmd.MarkFlagRequired("sql")
	rootCmd.AddCommand(optimizeCmd)
}
