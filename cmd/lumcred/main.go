package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/hnrobert/lumcred/internal/accounts"
	"github.com/hnrobert/lumcred/internal/config"
	"github.com/hnrobert/lumcred/internal/creds"
	"github.com/hnrobert/lumcred/internal/logger"
)

var version = "v0.1.0" // injected by -ldflags during build

// app carries the flag values and the objects built from them by setup.
type app struct {
	configFile string
	directory  string
	hostRoot   string
	logLevel   string
	logDir     string
	jsonOutput bool

	// backend is overridden in tests.
	backend creds.Backend

	cfg *config.Config
	dir accounts.Directory
	acc *creds.Accessor
}

func main() {
	root := newRootCommand(&app{})
	err := root.Execute()
	logger.Close()
	if err != nil {
		code := exitCodeFor(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if code != ExitCodeGeneralError {
			fmt.Fprintf(os.Stderr, "(%s)\n", exitCodeDescription(code))
		}
		os.Exit(code)
	}
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:               "lumcred",
		Short:             "Inspect and change the identity of the running process",
		Long:              "lumcred reports the OS, process ids, supplementary groups and umask, and changes them through the same resolver and accessor a host runtime uses.",
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	bindGlobalFlags(root.PersistentFlags(), a)

	root.AddCommand(
		a.osCommand(),
		a.idCommand(),
		a.uidCommand(),
		a.gidCommand(),
		a.umaskCommand(),
		a.groupsCommand(),
		a.setgroupsCommand(),
		a.initgroupsCommand(),
		a.lookupCommand(),
		a.execCommand(),
		a.configCommand(),
		a.abortCommand(),
	)
	return root
}

func bindGlobalFlags(fs *pflag.FlagSet, a *app) {
	fs.StringVarP(&a.configFile, "config", "c", "", "Configuration file path (default: "+config.DefaultPath()+")")
	fs.StringVar(&a.directory, "directory", "", "Account directory: system or files")
	fs.StringVar(&a.hostRoot, "host-root", "", "Root holding etc/passwd and etc/group for the files directory")
	fs.StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&a.logDir, "log-dir", "", "Write a rotated log file below this directory")
	fs.BoolVar(&a.jsonOutput, "json", false, "Print machine-readable JSON")
}

// loadConfig returns the file and environment configuration with explicitly
// set flags applied on top.
func (a *app) loadConfig(flags *pflag.FlagSet) (*config.Config, error) {
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return nil, err
	}
	if flags.Changed("directory") {
		cfg.Directory = config.DirectoryKind(a.directory)
	}
	if flags.Changed("host-root") {
		cfg.HostRoot = a.hostRoot
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("log-dir") {
		cfg.Log.Dir = a.logDir
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", creds.ErrInvalidArgument, err)
	}
	return cfg, nil
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := a.loadConfig(cmd.Flags())
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.LoggerOptions()); err != nil {
		return fmt.Errorf("failed to setup logger: %w", err)
	}

	dir, err := cfg.OpenDirectory()
	if err != nil {
		return err
	}
	if a.backend == nil {
		a.backend = creds.DefaultBackend()
	}

	a.cfg = cfg
	a.dir = dir
	a.acc = creds.New(dir, a.backend, logger.L())

	logger.L().Debug("configuration loaded",
		zap.String("command", cmd.Name()),
		zap.String("directory", string(cfg.Directory)),
		zap.String("host_root", cfg.HostRoot))
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
