package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

const (
	bash = "bash"
	zsh  = "zsh"
)

// completionCmd represents the completion command
var completionCmd = &cobra.Command{
	Use:   "completion SHELL",
	Short: "generate completions for the dydra command",
	Long: `Generate completions for your shell

	For bash add the following line to your ~/.bashrc

		eval "$(dydra completion bash)"

	For zsh generate a file:

		dydra completion zsh > /usr/local/share/zsh/site-functions/_dydra
	`,
	ValidArgs: []string{bash, zsh},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Run: func(cmd *cobra.Command, args []string) {
		var err error
		switch args[0] {
		case bash:
			err = rootCmd.GenBashCompletion(os.Stdout)
		case zsh:
			err = rootCmd.GenZshCompletion(os.Stdout)
		}
		if err != nil {
			wrapFatalln("failed to generate "+args[0]+" completion", err)
		}
	},
}

func init() {
	completionCmd.Hidden = true
	rootCmd.AddCommand(completionCmd)
}
