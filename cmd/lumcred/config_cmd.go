package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hnrobert/lumcred/internal/config"
	"github.com/hnrobert/lumcred/internal/creds"
	"github.com/hnrobert/lumcred/internal/logger"
)

func (a *app) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the lumcred configuration file",
		// config commands must work while the file is missing or invalid.
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return logger.Init(logger.Options{Level: a.logLevel})
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the default configuration unless the file exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := config.NewStore(a.configFile)
			created, err := store.Ensure()
			if err != nil {
				logger.Error("config init %s: %v", store.Path(), err)
				return fmt.Errorf("failed to write %s: %w", store.Path(), err)
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", store.Path())
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s already exists\n", store.Path())
			}
			return nil
		},
	})

	var fileOnly bool
	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration (file, environment and flags)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				cfg *config.Config
				err error
			)
			if fileOnly {
				cfg, err = config.NewStore(a.configFile).Get()
			} else {
				cfg, err = a.loadConfig(cmd.Flags())
			}
			if err != nil {
				return err
			}
			return a.printConfig(cmd.OutOrStdout(), cfg)
		},
	}
	show.Flags().BoolVar(&fileOnly, "file", false, "print only the file layer, without environment or flags")
	cmd.AddCommand(show)

	cmd.AddCommand(&cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Change one setting in the configuration file",
		Long: `Change one setting in the configuration file, creating it if needed.
Keys: directory, host_root, log.level, log.dir, log.file,
log.max_size_mb, log.max_backups, log.max_age_days.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := config.NewStore(a.configFile)
			cfg, err := store.Get()
			if err != nil {
				return err
			}
			if err := cfg.Set(args[0], args[1]); err != nil {
				return fmt.Errorf("%w: %w", creds.ErrInvalidArgument, err)
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("%w: %w", creds.ErrInvalidArgument, err)
			}
			if err := store.Save(cfg); err != nil {
				logger.Error("config set %s: %v", store.Path(), err)
				return fmt.Errorf("failed to write %s: %w", store.Path(), err)
			}
			logger.Info("config %s set to %q in %s", args[0], args[1], store.Path())
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], args[1])
			return nil
		},
	})

	return cmd
}

func (a *app) printConfig(w io.Writer, cfg *config.Config) error {
	if a.jsonOutput {
		return printJSON(w, cfg)
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}
