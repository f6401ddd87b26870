package main

import (
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/gogpu/softrast"
)

// newLogger creates a charm logger writing to w at the given level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// newRootCmd builds the command tree. Logs go to logw.
func newRootCmd(logw io.Writer) *cobra.Command {
	var verbose bool
	logger := newLogger(logw, log.InfoLevel)

	root := &cobra.Command{
		Use:           "softrast",
		Short:         "Render scenes with a deterministic software rasterizer",
		Version:       softrast.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logger.SetLevel(log.DebugLevel)
			}
			// pipeline diagnostics go through the same handler
			softrast.SetLogger(slog.New(logger))
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			softrast.SetLogger(nil)
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newRenderCmd(logger))
	root.AddCommand(newDemoCmd(logger))
	return root
}

// progress logs the completion of an operation with its duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

func (p *progress) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "elapsed", time.Since(p.start).Round(time.Millisecond))
	p.logger.Info(msg, keyvals...)
}
