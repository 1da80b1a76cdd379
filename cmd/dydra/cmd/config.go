package cmd

import (
	"os"
	"path/filepath"

	"github.com/imdario/mergo"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

const (
	envConfigLocation = "DYDRA_CONFIG"
	defaultURL        = "https://dydra.com"
)

// configKeys may be set by environment variables, e.g. DYDRA_TOKEN
var configKeys = []string{"url", "rpc", "namespace", "token", "user", "password", "credentials", "loglevel", "metrics"}

// CLIConfig describes the CLI configuration.
type CLIConfig struct {
	// keep field names the same as the serialized names, so viper can unmarshal them
	URL         string `json:"url" yaml:"url"`                                     // base URL of the service
	RPC         string `json:"rpc,omitempty" yaml:"rpc,omitempty"`                 // RPC endpoint, defaults to {url}/rpc
	Namespace   string `json:"namespace,omitempty" yaml:"namespace,omitempty"`     // prefix applied to RPC method names
	Token       string `json:"token,omitempty" yaml:"token,omitempty"`             // API token
	User        string `json:"user,omitempty" yaml:"user,omitempty"`               // account name for basic authentication
	Password    string `json:"password,omitempty" yaml:"password,omitempty"`       // password for basic authentication
	Credentials string `json:"credentials,omitempty" yaml:"credentials,omitempty"` // location of the credentials file
	LogLevel    string `json:"loglevel,omitempty" yaml:"loglevel,omitempty"`       // logging level for the SDK
	Metrics     string `json:"metrics,omitempty" yaml:"metrics,omitempty"`         // file to dump prometheus metrics into
}

func newConfig() (*CLIConfig, error) {
	var config CLIConfig
	err := viper.Unmarshal(&config)
	if err != nil {
		return nil, err
	}
	return &config, nil
}

// setDydraParams fills in flags left unset on the command line
func (c *CLIConfig) setDydraParams(flags *flagsT) error {
	if c == nil {
		return nil
	}
	effective := CLIConfig{
		URL:         flags.root.url,
		RPC:         flags.root.rpc,
		Namespace:   flags.root.namespace,
		Token:       flags.root.token,
		User:        flags.root.user,
		Password:    flags.root.password,
		Credentials: flags.root.credentials,
		LogLevel:    flags.root.logLevel,
		Metrics:     flags.root.metrics,
	}
	if err := mergo.Merge(&effective, *c); err != nil {
		return err
	}
	flags.root.url = effective.URL
	flags.root.rpc = effective.RPC
	flags.root.namespace = effective.Namespace
	flags.root.token = effective.Token
	flags.root.user = effective.User
	flags.root.password = effective.Password
	flags.root.credentials = effective.Credentials
	flags.root.logLevel = effective.LogLevel
	flags.root.metrics = effective.Metrics
	return nil
}

// MarshalConfig serializes the configuration as a yaml document
func (c *CLIConfig) MarshalConfig() ([]byte, error) {
	return yaml.Marshal(c)
}

// configFileLocation resolves the config file used by the CLI.
//
// When expandEnv is true, environment variables in the location are expanded.
func configFileLocation(expandEnv bool) string {
	if loc := os.Getenv(envConfigLocation); loc != "" {
		if expandEnv {
			return os.ExpandEnv(loc)
		}
		return loc
	}
	if !expandEnv {
		return filepath.Join("$HOME", ".dydra", "dydra.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".dydra", "dydra.yaml")
}
