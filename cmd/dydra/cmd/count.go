package cmd

import (
	"time"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"
)

var countCmd = &cobra.Command{
	Use:   "count REPOSITORY...",
	Short: "Count statements in repositories",
	Long:  `Count the statements held in one or several repositories.`,
	Example: `% dydra count jhacker/foaf jhacker/data
jhacker/foaf  1024
jhacker/data  12`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var err error

		defer func(t0 time.Time) {
			cliUsage(t0, "count", err)
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
		table := uitable.New()
		table.Separator = "  "
		for _, repository := range repositories {
			var count int64
			count, err = repository.Count(ctx)
			if err != nil {
				wrapFatalln("count "+repository.String(), err)
				return
			}
			table.AddRow(repository.String(), count)
		}
		logStdOut("%s\n", table)
	},
}

func init() {
	addConcurrencyFlag(countCmd)
	rootCmd.AddCommand(countCmd)
}
