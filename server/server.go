// Package server exposes the current catalog as a JSON API.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/jsphweid/voicedex/catalog"
	"github.com/jsphweid/voicedex/config"
	"github.com/jsphweid/voicedex/midi"
	"github.com/rs/cors"
)

type Options struct {
	// Octave for chord pitches written without register markers.
	DefaultOctave int
	Midi          midi.Options
	CORS          config.CORSConfig
	Logger        *slog.Logger
}

type Server struct {
	store  *catalog.Store
	opts   Options
	logger *slog.Logger
}

func New(store *catalog.Store, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{store: store, opts: opts, logger: logger}
}

// Handler returns the routed API wrapped in CORS, request id and access log
// middleware.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.Use(requestID, accessLog(s.logger))

	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/chords", s.withCatalog(s.handleChords)).Methods(http.MethodGet)
	router.HandleFunc("/chords/{name}", s.withCatalog(s.handleChord)).Methods(http.MethodGet)
	router.HandleFunc("/chords/{name}/voicings/{voicing}", s.withCatalog(s.handleVoicing)).Methods(http.MethodGet)
	router.HandleFunc("/chords/{name}/voicings/{voicing}/midi", s.withCatalog(s.handleVoicingMidi)).Methods(http.MethodGet)
	router.HandleFunc("/scales", s.withCatalog(s.handleScales)).Methods(http.MethodGet)
	router.HandleFunc("/scales/{name}", s.withCatalog(s.handleScale)).Methods(http.MethodGet)
	router.HandleFunc("/search", s.withCatalog(s.handleSearch)).Methods(http.MethodPost)

	c := cors.New(cors.Options{
		AllowedOrigins: s.opts.CORS.Origins(),
		AllowedMethods: s.opts.CORS.Methods(),
		AllowedHeaders: s.opts.CORS.Headers(),
		MaxAge:         s.opts.CORS.MaxAge,
	})
	return c.Handler(router)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, cfg config.ServerConfig) error {
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", srv.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	s.logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
