package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zabbix/svgmap/internal/config"
	"github.com/zabbix/svgmap/internal/ui"
)

func configCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file",
	}
	cmd.AddCommand(configInitCmd(opts), configPathCmd(opts))
	return cmd
}

func configInitCmd(opts *options) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a config file with the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(opts.configPath); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", opts.configPath)
			}
			cfg := config.Default()
			if opts.prefix != "" {
				cfg.Images.Prefix = opts.prefix
			}
			if err := config.Save(cfg, opts.configPath); err != nil {
				return err
			}
			if !opts.quiet {
				fmt.Fprintf(ui.Out, "%s wrote %s\n", ui.StatusIcon(true), opts.configPath)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing config file")
	return cmd
}

func configPathCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), opts.configPath)
		},
	}
}
