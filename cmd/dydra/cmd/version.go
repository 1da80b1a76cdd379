package cmd

import (
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

// Build information, set with -ldflags at link time
var (
	Version   string
	BuildDate string
	GitCommit string
	GitState  string
)

// VersionInfo describes the build of this binary, and the service it talks to
type VersionInfo struct {
	Version   string `json:"version" yaml:"version"`
	BuildDate string `json:"buildDate,omitempty" yaml:"buildDate,omitempty"`
	GitCommit string `json:"gitCommit,omitempty" yaml:"gitCommit,omitempty"`
	GitState  string `json:"gitState,omitempty" yaml:"gitState,omitempty"`
	GoVersion string `json:"goVersion" yaml:"goVersion"`
	Service   string `json:"service,omitempty" yaml:"service,omitempty"`
	RPC       string `json:"rpc,omitempty" yaml:"rpc,omitempty"`
}

// NewVersionInfo yields the version info for this build.
//
// Binaries built with go install carry no link-time flags: the module version is used instead.
func NewVersionInfo() VersionInfo {
	ver := VersionInfo{
		Version:   Version,
		BuildDate: BuildDate,
		GitCommit: GitCommit,
		GitState:  GitState,
		GoVersion: runtime.Version(),
	}
	if ver.Version == "" {
		ver.Version = "dev"
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
			ver.Version = info.Main.Version
		}
	}
	if ver.GitState == "" && Version != "" {
		ver.GitState = "clean"
	}
	return ver
}

func (v VersionInfo) String() string {
	out, err := yaml.Marshal(v)
	if err != nil {
		return v.Version + "\n"
	}
	return string(out)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Prints the version of dydra and the service it is configured for",
	Long: `Prints the version of the dydra client, as YAML:
	* version: release tag, or module version for binaries built with go install
	* buildDate, gitCommit, gitState: build provenance, for release binaries
	* goVersion: the Go toolchain used for the build
	* service, rpc: the service base URL and RPC endpoint resolved from flags, environment and config
`,
	Run: func(cmd *cobra.Command, args []string) {
		ver := NewVersionInfo()
		inputs := newCliOptionInputs(config, &dydraFlags)
		if base, err := inputs.base(); err == nil {
			ver.Service = base.String()
			ver.RPC = inputs.endpoint(base)
		}
		logStdOut("%s", ver.String())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
