package cmd

import (
	"context"
	"net/url"
	"time"

	"github.com/dydra/dydra/pkg/process"
	"github.com/dydra/dydra/pkg/resource"
	"github.com/spf13/cobra"
)

func importFrom(sources []string) startFunc {
	return func(repository *resource.Repository, ctx context.Context) (*process.Process, error) {
		// sources are imported one after the other: only the last process is returned
		var (
			p   *process.Process
			err error
		)
		for i, source := range sources {
			p, err = repository.Import(ctx, source)
			if err != nil {
				return nil, err
			}
			if i < len(sources)-1 {
				if _, err = follow(ctx, repository.String(), p); err != nil {
					return nil, err
				}
			}
		}
		return p, nil
	}
}

var importCmd = &cobra.Command{
	Use:   "import REPOSITORY URL...",
	Short: "Import RDF data into a repository",
	Long: `Import RDF data from one or several URLs into a repository.

The service fetches the data. Each import runs as a server-side process.`,
	Example: `% dydra import jhacker/foaf http://example.org/foaf.nt --wait`,
	Args:    cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		var err error

		defer func(t0 time.Time) {
			cliUsage(t0, "import", err)
		}(time.Now())

		sources := args[1:]
		for _, source := range sources {
			if _, err = url.ParseRequestURI(source); err != nil {
				wrapFatalln("invalid source URL "+source, err)
				return
			}
		}

		ctx := cmdContext(cmd)
		client := mustClient()
		if client == nil {
			return
		}
		repositories, err := existingRepositories(ctx, client, args[:1])
		if err != nil {
			return
		}
		err = startAll(ctx, "import into", repositories, importFrom(sources))
	},
}

func init() {
	addProcessFlags(importCmd)
	rootCmd.AddCommand(importCmd)
}
