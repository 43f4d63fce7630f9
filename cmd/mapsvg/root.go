package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/zabbix/svgmap"
	"github.com/zabbix/svgmap/internal/config"
	"github.com/zabbix/svgmap/internal/ui"
)

// flags shared by every command.
type options struct {
	configPath string
	output     string
	imagesDir  string
	prefix     string
	verbose    bool
	quiet      bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "mapsvg",
		Short:         "Render network map documents to SVG",
		Version:       svgmap.Version,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if opts.verbose {
				level = slog.LevelDebug
			}
			svgmap.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}
	root.SetVersionTemplate("mapsvg {{ .Version }}\n")

	pf := root.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", config.DefaultPath(), "config file")
	pf.StringVarP(&opts.output, "output", "o", "-", `output SVG file, "-" for stdout`)
	pf.StringVar(&opts.imagesDir, "images", ".", "directory images are loaded from when the prefix is not a URL")
	pf.StringVar(&opts.prefix, "prefix", "", "image URL prefix (overrides the config file)")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "log reconciliation and image loading")
	pf.BoolVarP(&opts.quiet, "quiet", "q", false, "suppress status output")

	root.AddCommand(renderCmd(opts), watchCmd(opts), configCmd(opts))
	return root
}

// loadConfig reads the config file and applies flag overrides. A config
// file named on the command line that does not exist is reported.
func (o *options) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if f := cmd.Flag("config"); f != nil && f.Changed {
		if _, err := os.Stat(o.configPath); os.IsNotExist(err) {
			ui.Warning("config %s not found, using defaults", o.configPath)
		}
	}
	if o.prefix != "" {
		cfg.Images.Prefix = o.prefix
	}
	return cfg, nil
}
