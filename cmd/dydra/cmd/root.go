package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/dydra/dydra/internal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dydra",
	Short: "dydra manages RDF repositories hosted on dydra.com",
	Long: `dydra manages accounts and RDF repositories hosted on dydra.com.

Resources are designated by specs:
  - "account" designates an account
  - "account/repository" designates a repository

Operations which modify a repository (create, drop, clear, import, query) run as
server-side processes. Use --wait to follow a process until it completes.
`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if dydraFlags.root.profileDir == "" {
			return
		}
		var err error
		profiler, err = internal.StartProfiling(dydraFlags.root.profileDir, nil)
		if err != nil {
			wrapFatalln("start profiling", err)
		}
	},
	// upstream api note:  *PostRun functions aren't called in case of a panic() in Run
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if err := profiler.Stop(); err != nil {
			infoLogger.Printf("warning: could not write profiles: %v", err)
		}
		profiler = nil
	},
}

var profiler *internal.Profiler

var config *CLIConfig

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	log.SetFlags(0)
	cobra.OnInitialize(initConfig)

	addURLFlag(rootCmd)
	addRPCFlag(rootCmd)
	addNamespaceFlag(rootCmd)
	addTokenFlag(rootCmd)
	addUserFlag(rootCmd)
	addCredentialsFlag(rootCmd)
	addLogLevel(rootCmd)
	addMetricsFileFlag(rootCmd)
	addProfileFlag(rootCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.SetDefault("url", defaultURL)
	viper.SetDefault("loglevel", "none")
	if os.Getenv(envConfigLocation) != "" {
		viper.SetConfigFile(os.Getenv(envConfigLocation))
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.dydra")
		viper.AddConfigPath("/etc/dydra")
		viper.SetConfigName("dydra")
	}

	viper.SetEnvPrefix("dydra")
	viper.AutomaticEnv()
	for _, key := range configKeys {
		_ = viper.BindEnv(key)
	}
	if err := viper.ReadInConfig(); err == nil {
		infoLogger.Println("Using config file:", viper.ConfigFileUsed())
	}

	var err error
	config, err = newConfig()
	if err != nil {
		wrapFatalln("read config", err)
		return
	}
	if err = config.setDydraParams(&dydraFlags); err != nil {
		wrapFatalln("apply config", err)
	}
}
