package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
)

// Status colors
var (
	Brand  = color.New(color.FgHiGreen, color.Bold)
	Subtle = color.New(color.FgHiBlack)
	Warn   = color.New(color.FgYellow)
	Info   = color.New(color.FgCyan)
	Good   = color.New(color.FgGreen)
	Bad    = color.New(color.FgRed)
)

// Out receives status lines. It defaults to the colorable stderr so the
// SVG written to stdout stays clean.
var Out io.Writer = color.Error

// Banner prints the command banner.
func Banner(version, subtitle string) {
	fmt.Fprintf(Out, "%s %s %s\n", Brand.Sprint("mapsvg"), Subtle.Sprint(version), subtitle)
}

// Rendered reports a written SVG document.
func Rendered(path string, n int64, elapsed time.Duration) {
	fmt.Fprintf(Out, "%s %s %s\n", StatusIcon(true), path,
		Subtle.Sprintf("(%s, %s)", Bytes(n), elapsed.Round(time.Millisecond)))
}

// Failed reports an error without stopping a watch loop.
func Failed(err error) {
	fmt.Fprintf(Out, "%s %s\n", StatusIcon(false), Bad.Sprint(err))
}

// Watching reports the file being watched.
func Watching(path string) {
	fmt.Fprintf(Out, "%s watching %s %s\n", Info.Sprint("●"), path, Subtle.Sprint("(Ctrl+C to stop)"))
}

// Warning prints a non-fatal problem.
func Warning(format string, args ...any) {
	fmt.Fprintf(Out, "%s %s\n", WarnIcon(), fmt.Sprintf(format, args...))
}

// StatusIcon returns a status icon string.
func StatusIcon(ok bool) string {
	if ok {
		return Good.Sprint("✓")
	}
	return Bad.Sprint("✗")
}

// WarnIcon returns a warning icon.
func WarnIcon() string {
	return Warn.Sprint("⚠")
}

// Bytes formats a byte count.
func Bytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	}
	return fmt.Sprintf("%d B", n)
}
