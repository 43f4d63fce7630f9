// Command mapsvg renders network map options documents to SVG.
//
// Usage:
//
//	mapsvg render map.json -o map.svg
//	mapsvg watch map.yaml -o map.svg --images ./icons
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
