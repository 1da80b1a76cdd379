package cmd

import (
	"time"

	"github.com/dydra/dydra/pkg/resource"
	"github.com/spf13/cobra"
)

var dropCmd = &cobra.Command{
	Use:     "drop REPOSITORY...",
	Aliases: []string{"destroy"},
	Short:   "Destroy repositories",
	Long: `Destroy one or several repositories, with all their contents.

Repositories must exist. Each operation runs as a server-side process.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var err error

		defer func(t0 time.Time) {
			cliUsage(t0, "drop", err)
		}(time.Now())

		ctx := cmdContext(cmd)
		client := mustClient()
		if client == nil {
			return
		}
		repositories, err := existingRepositories(ctx, client, args)
		if err != nil {
			return
		}
		err = startAll(ctx, "drop", repositories, (*resource.Repository).Destroy)
	},
}

func init() {
	addConcurrencyFlag(dropCmd)
	addProcessFlags(dropCmd)
	rootCmd.AddCommand(dropCmd)
}
