package cmd

import (
	"bytes"
	"time"

	units "github.com/docker/go-units"
	"github.com/dydra/dydra/pkg/fetch"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export RESOURCE...",
	Short: "Export RDF data from accounts or repositories",
	Long: `Export the RDF statements of accounts or repositories, as N-Triples.

Statements are written to stdout, unless --output is specified.`,
	Example: `% dydra export jhacker/foaf > foaf.nt

% dydra export jhacker/foaf -o foaf.nt
exported 1024 statements (112.3kB) from jhacker/foaf`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var err error

		defer func(t0 time.Time) {
			cliUsage(t0, "export", err)
		}(time.Now())

		ctx := cmdContext(cmd)
		client := mustClient()
		if client == nil {
			return
		}
		resources, err := client.ValidateResourceSpecs(ctx, args)
		if err != nil {
			wrapFatalln("invalid resources", err)
			return
		}

		var buf bytes.Buffer
		for _, r := range resources {
			var statements fetch.Statements
			statements, err = r.FetchRDF(ctx)
			if err != nil {
				wrapFatalln("export "+r.String(), err)
				return
			}
			before := buf.Len()
			if err = statements.WriteNTriples(&buf); err != nil {
				wrapFatalln("serialize statements from "+r.String(), err)
				return
			}
			infoLogger.Printf("exported %d statements (%s) from %s",
				statements.Len(), units.HumanSize(float64(buf.Len()-before)), r)
		}

		if target := dydraFlags.core.Output; target != "" {
			in := newCliOptionInputs(config, &dydraFlags)
			if err = afero.WriteFile(in.fs, target, buf.Bytes(), 0644); err != nil {
				wrapFatalln("write "+target, err)
			}
			return
		}
		logStdOut("%s", buf.String())
	},
}

func init() {
	addOutputFlag(exportCmd)
	addConcurrencyFlag(exportCmd)
	rootCmd.AddCommand(exportCmd)
}
