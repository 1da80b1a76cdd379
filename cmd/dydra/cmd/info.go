package cmd

import (
	"bytes"
	"context"
	"fmt"
	"text/template"
	"time"

	"github.com/dydra/dydra/pkg/resource"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

// repositoryInfo is the data available to the info template
type repositoryInfo struct {
	Spec        string
	URL         string
	Summary     string
	Description string
	Created     time.Time
	Updated     time.Time
}

func applyInfoTemplate(ctx context.Context, tmpl *template.Template, repository *resource.Repository) error {
	info, err := repository.Info(ctx)
	if err != nil {
		return err
	}
	data := repositoryInfo{
		Spec:        repository.String(),
		URL:         repository.Identity().String(),
		Summary:     info.Summary,
		Description: info.Description,
		Created:     info.Created,
		Updated:     info.Updated,
	}
	var buf bytes.Buffer
	if err = tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("executing template: %w", err)
	}
	logStdOut("%s\n", buf.String())
	return nil
}

func printAccountInfo(ctx context.Context, account *resource.Account) error {
	info, err := account.Info(ctx)
	if err != nil {
		return err
	}
	out, err := yaml.Marshal(map[string]interface{}{account.String(): plain(info)})
	if err != nil {
		return fmt.Errorf("serialize account info: %w", err)
	}
	logStdOut("%s", out)
	return nil
}

var infoCmd = &cobra.Command{
	Use:   "info RESOURCE...",
	Short: "Describe accounts or repositories",
	Long: `Describe accounts or repositories.

Repository descriptions may be formatted with a Go template (see --template).`,
	Example: `% dydra info jhacker/foaf
jhacker/foaf: FOAF data
  url: https://dydra.com/jhacker/foaf
  created: 2024-01-05T10:00:00Z (10 months ago)

% dydra info jhacker/foaf --template '{{.Summary}}'
FOAF data`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var err error

		defer func(t0 time.Time) {
			cliUsage(t0, "info", err)
		}(time.Now())

		tmpl, err := infoTemplate(dydraFlags)
		if err != nil {
			wrapFatalln("describe resources", err)
			return
		}
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
		for _, r := range resources {
			if repository, ok := resource.AsRepository(r); ok {
				err = applyInfoTemplate(ctx, tmpl, repository)
			} else if account, ok := resource.AsAccount(r); ok {
				err = printAccountInfo(ctx, account)
			}
			if err != nil {
				wrapFatalln("describe "+r.String(), err)
				return
			}
		}
	},
}

func init() {
	addTemplateFlag(infoCmd)
	addConcurrencyFlag(infoCmd)
	rootCmd.AddCommand(infoCmd)
}
