package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/mailpreview/pkg/debounce"
	"github.com/dmitrymomot/mailpreview/pkg/preview"
)

var watchFlags struct {
	templateFlags
	out   string
	delay time.Duration
}

var watchCmd = &cobra.Command{
	Use:   "watch BODY",
	Short: "Re-render a template whenever its files change",
	Long: `Watch renders BODY like the render command, then re-renders it after every
burst of changes to the body, header, footer or data files. Only the last
change of a burst triggers a render.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		watchFlags.body = args[0]
		if watchFlags.out == "" {
			return fmt.Errorf("--out is required")
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := newLogger(cfg)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return watch(ctx, log, &watchFlags.templateFlags, watchFlags.out, watchFlags.delay)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchFlags.register(watchCmd)
	watchCmd.Flags().StringVarP(&watchFlags.out, "out", "o", "", "output HTML file")
	watchCmd.Flags().DurationVar(&watchFlags.delay, "delay", 500*time.Millisecond, "quiet period before re-rendering")
}

// watch blocks until ctx is done, rendering files to out after each burst
// of changes.
func watch(ctx context.Context, log *slog.Logger, files *templateFlags, out string, delay time.Duration) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer w.Close()

	// Watch parent directories and filter by name: files replaced on save
	// drop a file-level watch.
	var names []string
	for _, p := range files.paths() {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		names = append(names, abs)
		dir := filepath.Dir(abs)
		if !slices.Contains(w.WatchList(), dir) {
			if err := w.Add(dir); err != nil {
				return fmt.Errorf("watch %s: %w", dir, err)
			}
		}
	}

	renderer := preview.New(preview.WithLogger(log))
	render := func(ctx context.Context, changed string) {
		in, err := files.read()
		if err != nil {
			log.ErrorContext(ctx, "read templates", slog.Any("error", err))
			return
		}
		res := renderer.Render(ctx, in)
		if !res.OK() {
			log.WarnContext(ctx, "render failed", slog.String("changed", changed), slog.String("error", res.Message))
			return
		}
		if err := os.WriteFile(out, []byte(res.HTML), 0o644); err != nil {
			log.ErrorContext(ctx, "write output", slog.Any("error", err))
			return
		}
		log.InfoContext(ctx, "rendered",
			slog.String("changed", changed),
			slog.String("subject", res.Subject),
			slog.Int("size", len(res.HTML)),
		)
	}

	d := debounce.New(delay, render, debounce.WithLogger(log), debounce.WithContext(ctx))
	defer d.Stop()

	render(ctx, "")
	log.InfoContext(ctx, "watching", slog.Int("files", len(names)), slog.String("out", out))

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if slices.Contains(names, filepath.Clean(ev.Name)) {
				d.Trigger(filepath.Base(ev.Name))
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.WarnContext(ctx, "watcher error", slog.Any("error", err))
		}
	}
}
