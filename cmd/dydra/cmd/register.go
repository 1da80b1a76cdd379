package cmd

import (
	"time"

	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register ACCOUNT",
	Short: "Register a new account",
	Long: `Register a new account on the service, protected by a password.

The password is prompted for when not provided with --password.`,
	Example: `% dydra register jhacker --password s3cr3t
jhacker: registered at https://dydra.com/jhacker`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var err error

		defer func(t0 time.Time) {
			cliUsage(t0, "register", err)
		}(time.Now())

		password, err := passwordOrPrompt("Password for " + args[0] + ": ")
		if err != nil {
			wrapFatalln("read password", err)
			return
		}
		client := mustClient()
		if client == nil {
			return
		}
		account, err := client.Register(cmdContext(cmd), args[0], password)
		if err != nil {
			wrapFatalln("register "+args[0], err)
			return
		}
		logStdOut("%s: registered at %s\n", account, account.Identity())
	},
}

func init() {
	addPasswordFlag(registerCmd)
	rootCmd.AddCommand(registerCmd)
}
