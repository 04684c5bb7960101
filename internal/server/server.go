package server // import "github.com/Xunop/gutenbrowse/internal/server"

import (
	"context"
	"fmt"
	"net/http"
	"time"

	v1 "github.com/Xunop/gutenbrowse/internal/api/v1"
	"github.com/Xunop/gutenbrowse/internal/config"
	"github.com/Xunop/gutenbrowse/internal/http/response"
	"github.com/Xunop/gutenbrowse/internal/log"
	"github.com/Xunop/gutenbrowse/internal/middleware"
	"github.com/Xunop/gutenbrowse/internal/search"
	"github.com/Xunop/gutenbrowse/internal/session"
	"github.com/Xunop/gutenbrowse/internal/version"
	"github.com/Xunop/gutenbrowse/internal/web"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// NewServer builds the HTTP server from config.Opts.
func NewServer(fetcher search.Fetcher, sessions *session.Manager) (*http.Server, error) {
	handler, err := setupHandler(fetcher, sessions)
	if err != nil {
		return nil, err
	}

	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", config.Opts.Host, config.Opts.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}

// Run serves until ctx is cancelled, then shuts the server down gracefully.
func Run(ctx context.Context, server *http.Server) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("Starting HTTP server", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return errors.Wrap(err, "HTTP server error")
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func setupHandler(fetcher search.Fetcher, sessions *session.Manager) (http.Handler, error) {
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(response.NotFound)

	// Setup the API routes
	v1.Server(router, v1.NewHandler(sessions, fetcher))

	webHandler, err := web.NewHandler(sessions)
	if err != nil {
		return nil, err
	}
	web.Server(router, webHandler)

	router.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	}).Name("healthcheck")

	router.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(version.GetCurrentVersion()))
	}).Name("version")

	var handler http.Handler = router
	if config.Opts.Compression {
		handler = middleware.Compress(handler)
	}
	handler = middleware.Recover(handler)
	handler = middleware.LoggingRequest(handler)
	handler = middleware.RequestContext(handler)

	return handler, nil
}
