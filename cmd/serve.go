package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jsphweid/voicedex/catalog"
	"github.com/jsphweid/voicedex/logger"
	"github.com/jsphweid/voicedex/server"
	"github.com/spf13/cobra"
)

// set at build time with -ldflags "-X github.com/jsphweid/voicedex/cmd.release=..."
var release = "dev"

var flagWatch bool

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().BoolVar(&flagWatch, "watch", false, "reload the vocabulary when it changes (default from config)")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the catalog over HTTP",
	Long:  `Serves the catalog as a JSON API. With watching on, a vocabulary that fails to build is logged and the previous catalog keeps being served.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		flush, err := logger.InitSentry(cfg.Sentry, release)
		if err != nil {
			slog.Warn("sentry not initialized", "error", err)
		}
		defer flush()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		watch := cfg.Watch.Enabled
		if cmd.Flags().Changed("watch") {
			watch = flagWatch
		}
		return serve(ctx, watch)
	},
}

func serve(ctx context.Context, watch bool) error {
	cache := catalog.NewCache(cfg.CatalogOptions())
	store := catalog.NewStore(nil)

	c, err := cache.Get(cfg.Vocab.Path)
	switch {
	case err == nil:
		store.Set(c)
		slog.Info("catalog loaded", "path", cfg.Vocab.Path, "build", c.BuildID(), "chords", len(c.ChordNames()))
	case watch:
		// keep serving 503s until a good build appears
		slog.Error("loading vocabulary failed, waiting for a fix", "path", cfg.Vocab.Path, "error", err)
	default:
		return err
	}

	if watch {
		w := &catalog.Watcher{
			Path:     cfg.Vocab.Path,
			Interval: cfg.Watch.Interval,
			Debounce: cfg.Watch.Debounce,
			Cache:    cache,
			Store:    store,
			Logger:   slog.Default(),
		}
		go w.Run(ctx)
	}

	s := server.New(store, server.Options{
		DefaultOctave: cfg.Vocab.DefaultChordOctave,
		Midi:          cfg.MidiOptions(),
		CORS:          cfg.CORS,
		Logger:        slog.Default(),
	})
	return s.ListenAndServe(ctx, cfg.Server)
}
