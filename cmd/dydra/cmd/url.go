package cmd

import (
	"time"

	"github.com/spf13/cobra"
)

var urlCmd = &cobra.Command{
	Use:   "url RESOURCE...",
	Short: "Print the URL of accounts or repositories",
	Long:  `Print the URL of accounts or repositories. Resources are not checked against the service.`,
	Example: `% dydra url jhacker/foaf
https://dydra.com/jhacker/foaf`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var err error

		defer func(t0 time.Time) {
			cliUsage(t0, "url", err)
		}(time.Now())

		client := mustClient()
		if client == nil {
			return
		}
		resources, err := client.ParseResourceSpecs(args)
		if err != nil {
			wrapFatalln("invalid resources", err)
			return
		}
		for _, r := range resources {
			logStdOut("%s\n", r.Identity())
		}
	},
}

func init() {
	rootCmd.AddCommand(urlCmd)
}
