package cmd

import (
	"errors"
	"time"

	"github.com/dydra/dydra/pkg/auth"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Save credentials",
	Long: `Save credentials for subsequent commands.

Either an API token (--token) or an account name (--user) must be provided.
The password is prompted for when not provided with --password.

Credentials are saved in $HOME/` + auth.DefaultCredentialsFile + ` by default (see --credentials).
Credentials provided as flags, environment or config file take precedence over saved credentials.`,
	Example: `% dydra login --token 4a9fc3...
credentials saved in /home/jhacker/.dydra/credentials.yaml`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		var err error

		defer func(t0 time.Time) {
			cliUsage(t0, "login", err)
		}(time.Now())

		credentials := auth.Credentials{
			Token:    dydraFlags.root.token,
			User:     dydraFlags.root.user,
			Password: dydraFlags.root.password,
		}
		if credentials.Token == "" {
			if credentials.User == "" {
				err = errors.New("either --token or --user is required")
				wrapFatalln("login", err)
				return
			}
			if credentials.Password, err = passwordOrPrompt("Password for " + credentials.User + ": "); err != nil {
				wrapFatalln("read password", err)
				return
			}
		}

		store := newCliOptionInputs(config, &dydraFlags).store()
		if err = store.Save(credentials); err != nil {
			wrapFatalln("save credentials", err)
			return
		}
		logStdOut("credentials saved in %s\n", store.Path())
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove saved credentials",
	Long:  `Remove the credentials saved by the login command.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		var err error

		defer func(t0 time.Time) {
			cliUsage(t0, "logout", err)
		}(time.Now())

		store := newCliOptionInputs(config, &dydraFlags).store()
		if err = store.Remove(); err != nil {
			wrapFatalln("remove credentials", err)
			return
		}
		logStdOut("credentials removed from %s\n", store.Path())
	},
}

func init() {
	addPasswordFlag(loginCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}
