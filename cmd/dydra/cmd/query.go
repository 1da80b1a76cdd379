package cmd

import (
	"errors"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// queryText reads the query from arguments or from the --file flag
func queryText(fs afero.Fs, args []string) (string, error) {
	source := dydraFlags.query.file
	switch {
	case source == "" && len(args) == 0:
		return "", errors.New("a query is required, either as argument or with --file")
	case source != "" && len(args) > 0:
		return "", errors.New("a query may be given either as argument or with --file, not both")
	case source == "":
		return strings.Join(args, " "), nil
	case source == "-":
		b, err := io.ReadAll(os.Stdin)
		return string(b), err
	default:
		b, err := afero.ReadFile(fs, source)
		return string(b), err
	}
}

var queryCmd = &cobra.Command{
	Use:   "query REPOSITORY [QUERY]",
	Short: "Query a repository",
	Long: `Run a SPARQL query against a repository.

The query runs as a server-side process: use --wait to get the result.`,
	Example: `% dydra query jhacker/foaf 'SELECT * WHERE { ?s ?p ?o } LIMIT 10' --wait

% dydra query jhacker/foaf --file query.rq --wait --timeout 1m`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var err error

		defer func(t0 time.Time) {
			cliUsage(t0, "query", err)
		}(time.Now())

		ctx := cmdContext(cmd)
		in := newCliOptionInputs(config, &dydraFlags)
		query, err := queryText(in.fs, args[1:])
		if err != nil {
			wrapFatalln("read query", err)
			return
		}
		client := mustClient()
		if client == nil {
			return
		}
		repositories, err := existingRepositories(ctx, client, args[:1])
		if err != nil {
			return
		}
		repository := repositories[0]
		p, err := repository.Query(ctx, query)
		if err != nil {
			wrapFatalln("query "+repository.String(), err)
			return
		}
		result, err := follow(ctx, repository.String(), p)
		if err != nil {
			wrapFatalln("query "+repository.String(), err)
			return
		}
		if err = printResult(result); err != nil {
			wrapFatalln("print query result", err)
			return
		}
	},
}

func init() {
	addQueryFileFlag(queryCmd)
	addProcessFlags(queryCmd)
	rootCmd.AddCommand(queryCmd)
}
