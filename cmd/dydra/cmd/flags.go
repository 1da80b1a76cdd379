package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/dydra/dydra/pkg/address"
	"github.com/dydra/dydra/pkg/auth"
	authstatus "github.com/dydra/dydra/pkg/auth/status"
	"github.com/dydra/dydra/pkg/dlogger"
	"github.com/dydra/dydra/pkg/errors"
	"github.com/dydra/dydra/pkg/fetch"
	"github.com/dydra/dydra/pkg/process"
	"github.com/dydra/dydra/pkg/resource"
	"github.com/dydra/dydra/pkg/rpc"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type flagsT struct {
	root struct {
		url         string
		rpc         string
		namespace   string
		token       string
		user        string
		password    string
		credentials string
		logLevel    string
		metrics     string
		profileDir  string
	}
	process struct {
		wait     bool
		timeout  time.Duration
		interval time.Duration
	}
	account struct {
		password string
	}
	query struct {
		file string
	}
	doc struct {
		docTarget string
		man       bool
	}
	core struct {
		Template    string
		Concurrency int
		Output      string
	}
}

var dydraFlags = flagsT{}

func addURLFlag(cmd *cobra.Command) string {
	u := "url"
	cmd.PersistentFlags().StringVar(&dydraFlags.root.url, u, "", "Base URL of the service (default "+defaultURL+")")
	return u
}

func addRPCFlag(cmd *cobra.Command) string {
	r := "rpc"
	cmd.PersistentFlags().StringVar(&dydraFlags.root.rpc, r, "", "RPC endpoint (default {url}/"+rpc.DefaultEndpointPath+")")
	return r
}

func addNamespaceFlag(cmd *cobra.Command) string {
	n := "namespace"
	cmd.PersistentFlags().StringVar(&dydraFlags.root.namespace, n, "", "Namespace prefixed to RPC method names, e.g. 'dydra'")
	return n
}

func addTokenFlag(cmd *cobra.Command) string {
	t := "token"
	cmd.PersistentFlags().StringVar(&dydraFlags.root.token, t, "", "API token. Takes precedence over user and password")
	return t
}

func addUserFlag(cmd *cobra.Command) string {
	u := "user"
	cmd.PersistentFlags().StringVar(&dydraFlags.root.user, u, "", "Account name for basic authentication")
	return u
}

func addCredentialsFlag(cmd *cobra.Command) string {
	c := "credentials"
	cmd.PersistentFlags().StringVar(&dydraFlags.root.credentials, c, "", "Location of the credentials file (default $HOME/"+auth.DefaultCredentialsFile+")")
	return c
}

func addLogLevel(cmd *cobra.Command) string {
	loglevel := "loglevel"
	cmd.PersistentFlags().StringVar(&dydraFlags.root.logLevel, loglevel, "", "The logging level. Levels by increasing order of verbosity: none, error, warn, info, debug")
	return loglevel
}

func addMetricsFileFlag(cmd *cobra.Command) string {
	m := "metrics-file"
	cmd.PersistentFlags().StringVar(&dydraFlags.root.metrics, m, "", "Dump usage metrics in the prometheus text format to this file")
	return m
}

func addProfileFlag(cmd *cobra.Command) string {
	p := "profile-dir"
	cmd.PersistentFlags().StringVar(&dydraFlags.root.profileDir, p, "", "Write CPU and heap profiles to this directory")
	_ = cmd.PersistentFlags().MarkHidden(p)
	return p
}

func addPasswordFlag(cmd *cobra.Command) string {
	p := "password"
	cmd.Flags().StringVar(&dydraFlags.root.password, p, "", "Account password")
	return p
}

func addWaitFlag(cmd *cobra.Command) string {
	w := "wait"
	cmd.Flags().BoolVar(&dydraFlags.process.wait, w, false, "Wait for the server-side process to complete")
	return w
}

func addTimeoutFlag(cmd *cobra.Command) string {
	t := "timeout"
	cmd.Flags().DurationVar(&dydraFlags.process.timeout, t, 0, "With --wait, give up waiting after this duration (default: no timeout)")
	return t
}

func addIntervalFlag(cmd *cobra.Command) string {
	i := "interval"
	cmd.Flags().DurationVar(&dydraFlags.process.interval, i, process.DefaultInterval, "With --wait, delay between two polls of the process status")
	return i
}

func addProcessFlags(cmd *cobra.Command) {
	addWaitFlag(cmd)
	addTimeoutFlag(cmd)
	addIntervalFlag(cmd)
}

func addQueryFileFlag(cmd *cobra.Command) string {
	f := "file"
	cmd.Flags().StringVar(&dydraFlags.query.file, f, "", "Read the query from a file. Use '-' to read from stdin")
	return f
}

func addTemplateFlag(cmd *cobra.Command) string {
	c := "template"
	cmd.Flags().StringVar(&dydraFlags.core.Template, c, "", `Pretty-print objects using a Go template. Use '{{ printf "%#v" . }}' to explore available fields`)
	return c
}

func addConcurrencyFlag(cmd *cobra.Command) string {
	c := "concurrency"
	cmd.Flags().IntVar(&dydraFlags.core.Concurrency, c, 8, "Maximum number of concurrent requests when checking resources")
	return c
}

func addOutputFlag(cmd *cobra.Command) string {
	o := "output"
	cmd.Flags().StringVarP(&dydraFlags.core.Output, o, "o", "", "Write to this file instead of stdout")
	return o
}

func addTargetFlag(cmd *cobra.Command) string {
	t := "target-dir"
	cmd.Flags().StringVar(&dydraFlags.doc.docTarget, t, ".", "The target directory where to generate the documentation")
	return t
}

func addManFlag(cmd *cobra.Command) string {
	m := "man"
	cmd.Flags().BoolVar(&dydraFlags.doc.man, m, false, "Generate man pages instead of markdown")
	return m
}

type cliOptionInputs struct {
	config *CLIConfig
	params *flagsT
	fs     afero.Fs
}

func newCliOptionInputs(config *CLIConfig, params *flagsT) *cliOptionInputs {
	return &cliOptionInputs{
		config: config,
		params: params,
		fs:     afero.NewOsFs(),
	}
}

func (in *cliOptionInputs) getLogger() (*zap.Logger, error) {
	level := in.params.root.logLevel
	if level == "" {
		level = dlogger.LogLevelNone
	}
	l, err := dlogger.GetLogger(level)
	if err != nil {
		return nil, fmt.Errorf("failed to set log level: %w", err)
	}
	return l, nil
}

func (in *cliOptionInputs) base() (address.Address, error) {
	u := in.params.root.url
	if u == "" {
		u = defaultURL
	}
	return address.Parse(u)
}

func (in *cliOptionInputs) store() *auth.FileStore {
	return auth.NewFileStore(
		auth.WithFs(in.fs),
		auth.WithPath(in.params.root.credentials),
	)
}

// credentials resolves credentials, by order of precedence: flags, environment
// or config file, then the credentials file saved by "dydra login".
func (in *cliOptionInputs) credentials() (auth.Credentials, error) {
	explicit := auth.Credentials{
		Token:    in.params.root.token,
		User:     in.params.root.user,
		Password: in.params.root.password,
	}
	if !explicit.IsZero() {
		return explicit, nil
	}
	stored, err := in.store().Credentials()
	if errors.Is(err, authstatus.ErrNoCredentials) {
		return auth.Credentials{}, nil
	}
	return stored, err
}

func (in *cliOptionInputs) endpoint(base address.Address) string {
	if in.params.root.rpc != "" {
		return in.params.root.rpc
	}
	return base.Join(rpc.DefaultEndpointPath).String()
}

// client builds a resource client from configuration and flags
func (in *cliOptionInputs) client() (*resource.Client, error) {
	logger, err := in.getLogger()
	if err != nil {
		return nil, err
	}
	base, err := in.base()
	if err != nil {
		return nil, fmt.Errorf("invalid service url: %w", err)
	}
	credentials, err := in.credentials()
	if err != nil {
		return nil, err
	}
	withMetrics := in.params.root.metrics != ""

	transport := rpc.NewClient(in.endpoint(base),
		rpc.WithCredentials(credentials),
		rpc.ClientLogger(logger),
	)
	dispatcher := rpc.NewDispatcher(transport,
		rpc.Namespace(in.params.root.namespace),
		rpc.Logger(logger),
		rpc.WithMetrics(withMetrics),
	)
	fetcher := fetch.New(
		fetch.WithCredentials(credentials),
		fetch.Logger(logger),
		fetch.WithMetrics(withMetrics),
	)

	opts := []resource.Option{
		resource.WithFetcher(fetcher),
		resource.Logger(logger),
	}
	if in.params.core.Concurrency > 0 {
		opts = append(opts, resource.WithConcurrency(in.params.core.Concurrency))
	}
	return resource.NewClient(base, dispatcher, opts...), nil
}

func (in *cliOptionInputs) waitOptions() []process.WaitOption {
	return []process.WaitOption{
		process.Interval(in.params.process.interval),
		process.Timeout(in.params.process.timeout),
	}
}

// mustClient builds a resource client, or exits
func mustClient() *resource.Client {
	client, err := newCliOptionInputs(config, &dydraFlags).client()
	if err != nil {
		wrapFatalln("failed to initialize client", err)
		return nil
	}
	return client
}

// cmdContext yields a context for a command, canceled when the command is interrupted
func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
