package cmd

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Commands to manage the local configuration",
}

var configSet = &cobra.Command{
	Use:   "set",
	Short: "Create a local config file",
	Long: `Creates a local config file holding flags that do not change, like the service URL or the RPC namespace.

	By default, this configuration file will be placed in ` + configFileLocation(false) + `.

	Use the ` + envConfigLocation + ` environment variable to change this default target.

	Passwords and tokens are not saved in the config file: use the login command instead.
	`,
	Example: `% dydra config set --url https://dydra.example.com --namespace dydra
config file created in /home/jhacker/.dydra/dydra.yaml`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		var err error

		defer func(t0 time.Time) {
			cliUsage(t0, "config set", err)
		}(time.Now())

		localConfig := CLIConfig{
			URL:         dydraFlags.root.url,
			RPC:         dydraFlags.root.rpc,
			Namespace:   dydraFlags.root.namespace,
			User:        dydraFlags.root.user,
			Credentials: dydraFlags.root.credentials,
			LogLevel:    dydraFlags.root.logLevel,
			Metrics:     dydraFlags.root.metrics,
		}

		file := configFileLocation(true)
		if ext := filepath.Ext(file); ext != ".yaml" {
			infoLogger.Printf("warning: the generated config file will contain a yaml document, but the file extension is %q", ext)
		}
		o, err := localConfig.MarshalConfig()
		if err != nil {
			wrapFatalln("could not serialize config to yaml", err)
			return
		}

		fs := newCliOptionInputs(config, &dydraFlags).fs
		err = fs.MkdirAll(filepath.Dir(file), 0700)
		if err != nil && !os.IsExist(err) {
			wrapFatalln("could not create directory to hold config "+filepath.Dir(file), err)
			return
		}
		if err = afero.WriteFile(fs, file, o, 0600); err != nil {
			wrapFatalln("error writing config file "+file, err)
			return
		}
		logStdOut("config file created in %s\n", file)
	},
}

func init() {
	configCmd.AddCommand(configSet)
	rootCmd.AddCommand(configCmd)
}
