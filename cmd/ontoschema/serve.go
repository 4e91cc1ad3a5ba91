package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

// Content types handled by the Accept-header negotiation.
const (
	contentTypeSchema = "application/schema+json"
	contentTypeJTD    = "application/typedef+json"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ontoschema_requests_total",
		Help: "Schema document requests by negotiated flavor and status code.",
	}, []string{"flavor", "code"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ontoschema_request_duration_seconds",
		Help:    "Schema document request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"flavor"})
)

func newServeCmd(global *globalOptions) *cobra.Command {
	var addr, dir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve generated schema documents with format negotiation",
		Long: `Serve is a thin byte relay over the generator's output directory. It
routes /<class> to the class's schema document, picking the JSON Schema
or JTD flavor from the request's Accept header. It performs no
generation and no validation.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, cfg, err := global.setup()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Serve.Addr = addr
			}
			if dir != "" {
				cfg.Output.Dir = dir
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, logger, cfg.Serve.Addr, cfg.Output.Dir)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, :8080)")
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Directory of generated documents to serve")
	return cmd
}

func serve(ctx context.Context, logger *slog.Logger, addr, dir string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	mux.Handle("GET /{name}", documentHandler(logger, dir))

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("serving schema documents", slog.String("addr", addr), slog.String("dir", dir))
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// documentHandler resolves /<name> to a generated file. Requests naming a
// full file pass through unchanged; bare class names negotiate the flavor
// from the Accept header.
func documentHandler(logger *slog.Logger, dir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		name := path.Base(r.PathValue("name"))

		flavor := "schema"
		file := name
		if !strings.HasSuffix(name, ".json") {
			if negotiate(r.Header.Get("Accept")) == contentTypeJTD {
				flavor = "jtd"
				file = strings.ToLower(name) + ".jtd.json"
			} else {
				file = strings.ToLower(name) + ".schema.json"
			}
		} else if strings.HasSuffix(name, ".jtd.json") {
			flavor = "jtd"
		}

		full := filepath.Join(dir, file)
		if _, err := os.Stat(full); err != nil {
			requestsTotal.WithLabelValues(flavor, "404").Inc()
			http.NotFound(w, r)
			return
		}

		if flavor == "jtd" {
			w.Header().Set("Content-Type", contentTypeJTD)
		} else {
			w.Header().Set("Content-Type", contentTypeSchema)
		}
		http.ServeFile(w, r, full)

		requestsTotal.WithLabelValues(flavor, "200").Inc()
		requestDuration.WithLabelValues(flavor).Observe(time.Since(start).Seconds())
		logger.Debug("served document", slog.String("file", file), slog.String("flavor", flavor))
	})
}

// negotiate picks the response flavor from an Accept header. JTD is only
// chosen when explicitly requested; everything else gets JSON Schema.
func negotiate(accept string) string {
	for _, part := range strings.Split(accept, ",") {
		mediaType := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if mediaType == contentTypeJTD {
			return contentTypeJTD
		}
	}
	return contentTypeSchema
}
