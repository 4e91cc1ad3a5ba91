package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/c360studio/ontoschema/generator"
)

// watchDebounce coalesces editor save bursts into one regeneration.
const watchDebounce = 300 * time.Millisecond

func newWatchCmd(global *globalOptions) *cobra.Command {
	flags := &generateFlags{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate schema documents whenever the sources change",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, cfg, err := global.setup()
			if err != nil {
				return err
			}
			if err := flags.apply(cfg); err != nil {
				return err
			}

			opts := flags.options(cfg)
			opts.Logger = logger

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return watch(ctx, logger, opts)
		},
	}

	flags.register(cmd)
	return cmd
}

func watch(ctx context.Context, logger *slog.Logger, opts generator.Options) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directories holding the sources; glob patterns watch
	// their static base directory.
	modelBase, _ := doublestar.SplitPattern(filepath.ToSlash(opts.ModelGlob))
	for _, dir := range []string{filepath.FromSlash(modelBase), filepath.Dir(opts.ShapesPath)} {
		if err := watcher.Add(dir); err != nil {
			return err
		}
		logger.Info("watching", slog.String("dir", dir))
	}

	// Initial run so the output is current before the first change. A
	// failure here is reported but does not stop the watch loop.
	runOnce(ctx, logger, opts)

	var timer *time.Timer
	pending := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			logger.Info("watch stopped")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			if !isSourceFile(event.Name) {
				continue
			}
			logger.Debug("source changed", slog.String("path", event.Name))
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", slog.String("error", err.Error()))
		case <-pending:
			runOnce(ctx, logger, opts)
		}
	}
}

func runOnce(ctx context.Context, logger *slog.Logger, opts generator.Options) {
	report, err := generator.Run(ctx, opts)
	if err != nil {
		logger.Error("generation failed", slog.String("error", err.Error()))
		return
	}
	logger.Info("regenerated",
		slog.Int("classes", len(report.Classes)),
		slog.Int("files", len(report.Files)))
}

func isSourceFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ttl", ".rdf", ".owl", ".xml", ".nt":
		return true
	}
	return false
}
