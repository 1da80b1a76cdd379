package cmd

import (
	"time"

	"github.com/dydra/dydra/pkg/resource"
	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear REPOSITORY...",
	Short: "Clear repositories",
	Long: `Delete all statements from one or several repositories. The repositories are kept.

Repositories must exist. Each operation runs as a server-side process.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var err error

		defer func(t0 time.Time) {
			cliUsage(t0, "clear", err)
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
		err = startAll(ctx, "clear", repositories, (*resource.Repository).Clear)
	},
}

func init() {
	addConcurrencyFlag(clearCmd)
	addProcessFlags(clearCmd)
	rootCmd.AddCommand(clearCmd)
}
