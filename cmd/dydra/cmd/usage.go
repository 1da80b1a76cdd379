package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// frontMatter heads every markdown page with the command it documents and the client version
func frontMatter(filename string) string {
	command := strings.ReplaceAll(strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)), "_", " ")
	return fmt.Sprintf("---\ntitle: %q\nversion: %q\n---\n\n", command, NewVersionInfo().Version)
}

func linkHandler(name string) string {
	return name
}

var docCmd = &cobra.Command{
	Use:   "usage",
	Short: "Generates the dydra command reference",
	Long: `Generates the reference documentation of every dydra command, one page per command.

Pages are markdown files with a YAML front matter by default, or man pages (section 1) with --man.
`,
	Example: `  dydra usage --target-dir ./docs
  dydra usage --man --target-dir /usr/local/share/man/man1`,
	Run: func(cmd *cobra.Command, args []string) {
		var err error
		target := dydraFlags.doc.docTarget
		if dydraFlags.doc.man {
			err = doc.GenManTree(rootCmd, &doc.GenManHeader{
				Title:   "DYDRA",
				Section: "1",
				Source:  "dydra " + NewVersionInfo().Version,
				Manual:  "dydra manual",
			}, target)
		} else {
			err = doc.GenMarkdownTreeCustom(rootCmd, target, frontMatter, linkHandler)
		}
		if err != nil {
			wrapFatalln("generate documentation in "+target, err)
		}
	},
}

func init() {
	rootCmd.AddCommand(docCmd)
	addTargetFlag(docCmd)
	addManFlag(docCmd)
}
