package cmd

import (
	"bytes"
	"context"
	"fmt"
	"text/template"
	"time"

	"github.com/dydra/dydra/pkg/resource"
	resourcestatus "github.com/dydra/dydra/pkg/resource/status"
	"github.com/spf13/cobra"
)

// repositoryLine is the data available to the list template
type repositoryLine struct {
	Spec    string
	Account string
	Name    string
	URL     string
}

func applyRepositoryTemplate(tmpl *template.Template, repository *resource.Repository) error {
	var buf bytes.Buffer
	line := repositoryLine{
		Spec:    repository.String(),
		Account: repository.Account().Name(),
		Name:    repository.Name(),
		URL:     repository.Identity().String(),
	}
	if err := tmpl.Execute(&buf, line); err != nil {
		return fmt.Errorf("executing template: %w", err)
	}
	logStdOut("%s\n", buf.String())
	return nil
}

func listAll(ctx context.Context, client *resource.Client, tmpl *template.Template) error {
	for repository, err := range client.Repositories(ctx, "") {
		if err != nil {
			return err
		}
		if err = applyRepositoryTemplate(tmpl, repository); err != nil {
			return err
		}
	}
	return nil
}

func listAccounts(ctx context.Context, client *resource.Client, tmpl *template.Template, specs []string) error {
	resources, err := client.ValidateResourceSpecs(ctx, specs)
	if err != nil {
		return err
	}
	for _, r := range resources {
		account, ok := resource.AsAccount(r)
		if !ok {
			return resourcestatus.ErrInvalidSpec.Wrapf("%q is not an account", r.String())
		}
		repositories, err := account.Repositories(ctx)
		if err != nil {
			return err
		}
		for _, repository := range repositories {
			if err = applyRepositoryTemplate(tmpl, repository); err != nil {
				return err
			}
		}
	}
	return nil
}

var listCmd = &cobra.Command{
	Use:     "list [ACCOUNT...]",
	Aliases: []string{"ls"},
	Short:   "List repositories",
	Long: `List repositories, optionally restricted to some accounts.

Output may be formatted with a Go template (see --template).`,
	Example: `% dydra list jhacker
jhacker/foaf
jhacker/data

% dydra list jhacker --template '{{.Name}} {{.URL}}'
foaf https://dydra.com/jhacker/foaf
data https://dydra.com/jhacker/data`,
	Run: func(cmd *cobra.Command, args []string) {
		var err error

		defer func(t0 time.Time) {
			cliUsage(t0, "list", err)
		}(time.Now())

		tmpl, err := repositoryTemplate(dydraFlags)
		if err != nil {
			wrapFatalln("list repositories", err)
			return
		}
		ctx := cmdContext(cmd)
		client := mustClient()
		if client == nil {
			return
		}
		if len(args) == 0 {
			err = listAll(ctx, client, tmpl)
		} else {
			err = listAccounts(ctx, client, tmpl, args)
		}
		if err != nil {
			wrapFatalln("list repositories", err)
			return
		}
	},
}

func init() {
	addTemplateFlag(listCmd)
	addConcurrencyFlag(listCmd)
	rootCmd.AddCommand(listCmd)
}
