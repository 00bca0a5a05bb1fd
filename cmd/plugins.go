package cmd

import (
	"github.com/spf13/cobra"

	"github.com/flext/flext-db-oracle/internal/plugins"
)

var pluginsCmd = &cobra.Command{
	Use:   "plugins",
	Short: "List the registered capability plugins",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := plugins.Default(version)

		rows := make([][]any, 0)
		for _, p := range reg.List() {
			rows = append(rows, []any{p.ID, p.Name, p.Version, p.Description})
		}
		return render([]string{"ID", "NAME", "VERSION", "DESCRIPTION"}, rows)
	},
}

func init() {
	rootCmd.AddCommand(pluginsCmd)
}
