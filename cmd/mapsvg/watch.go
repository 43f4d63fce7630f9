package main

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/zabbix/svgmap"
	"github.com/zabbix/svgmap/internal/ui"
)

func watchCmd(opts *options) *cobra.Command {
	var (
		incremental bool
		debounce    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "watch <map.json|map.yaml>",
		Short: "Re-render a map document whenever it changes",
		Long: "watch renders the document, then reconciles every saved version against\n" +
			"the previous one and rewrites the output. Only changed entities are redrawn.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			s, err := newSession(cfg, opts.imagesDir)
			if err != nil {
				return err
			}
			path, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if !opts.quiet {
				ui.Banner(svgmap.Version, "watch")
			}

			render := func(incremental bool) {
				start := time.Now()
				if err := s.applyFile(ctx, path, incremental); err != nil {
					ui.Failed(err)
					return
				}
				n, err := s.write(opts.output, cmd.OutOrStdout())
				if err != nil {
					ui.Failed(err)
					return
				}
				if !opts.quiet {
					ui.Rendered(opts.output, n, time.Since(start))
				}
			}

			watcher, err := fsnotify.NewWatcher()
			if err != nil {
				return err
			}
			defer watcher.Close()
			// Editors often replace the file, so watch its directory.
			if err := watcher.Add(filepath.Dir(path)); err != nil {
				return err
			}

			render(false)
			if !opts.quiet {
				ui.Watching(args[0])
			}

			fire := make(chan struct{}, 1)
			var timer *time.Timer
			defer func() {
				if timer != nil {
					timer.Stop()
				}
			}()
			for {
				select {
				case <-ctx.Done():
					return nil
				case ev, ok := <-watcher.Events:
					if !ok {
						return nil
					}
					if filepath.Clean(ev.Name) != path {
						continue
					}
					if ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
						ui.Warning("%s removed, waiting for it to come back", args[0])
						continue
					}
					if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
						continue
					}
					svgmap.Logger().Debug("mapsvg: document changed", "path", ev.Name, "op", ev.Op.String())
					if timer == nil {
						timer = time.AfterFunc(debounce, func() {
							select {
							case fire <- struct{}{}:
							default:
							}
						})
					} else {
						timer.Reset(debounce)
					}
				case <-fire:
					render(incremental)
				case err, ok := <-watcher.Errors:
					if !ok {
						return nil
					}
					ui.Failed(err)
				}
			}
		},
	}
	cmd.Flags().BoolVar(&incremental, "incremental", false, "keep entities missing from a changed document")
	cmd.Flags().DurationVar(&debounce, "debounce", 100*time.Millisecond, "wait this long for writes to settle")
	return cmd
}
