package cmd

import (
	"time"

	"github.com/dydra/dydra/pkg/resource"
	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:   "create REPOSITORY...",
	Short: "Create repositories",
	Long: `Create one or several repositories.

Each repository is created by a server-side process.`,
	Example: `% dydra create jhacker/foaf --wait
jhacker/foaf: process 2JX3zXDm2F0fLzUr8K3ie1QnFQY pending
jhacker/foaf: process 2JX3zXDm2F0fLzUr8K3ie1QnFQY succeeded after 2 seconds`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var err error

		defer func(t0 time.Time) {
			cliUsage(t0, "create", err)
		}(time.Now())

		client := mustClient()
		if client == nil {
			return
		}
		repositories, err := client.ParseRepositorySpecs(args)
		if err != nil {
			wrapFatalln("invalid repositories", err)
			return
		}
		err = startAll(cmdContext(cmd), "create", repositories, (*resource.Repository).Create)
	},
}

func init() {
	addProcessFlags(createCmd)
	rootCmd.AddCommand(createCmd)
}
