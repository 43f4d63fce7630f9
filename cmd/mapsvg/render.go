package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/zabbix/svgmap/internal/ui"
)

func renderCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "render <map.json|map.yaml>",
		Short: "Render a map document once",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			s, err := newSession(cfg, opts.imagesDir)
			if err != nil {
				return err
			}

			start := time.Now()
			if err := s.applyFile(cmd.Context(), args[0], false); err != nil {
				return err
			}
			n, err := s.write(opts.output, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if !opts.quiet {
				ui.Rendered(opts.output, n, time.Since(start))
			}
			return nil
		},
	}
}
