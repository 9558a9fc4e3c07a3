package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"tzbot/config"
	"tzbot/internal/handlers/health"
	"tzbot/shared/constant"
	"tzbot/transport/http/middleware"
	"tzbot/transport/http/router"
)

const (
	readHeaderTimeout = 10 * time.Second
)

type ServerState int32

const (
	ServerStateReady ServerState = iota + 1
	ServerStateInGracePeriod
	ServerStateInCleanupPeriod
)

type HTTP struct {
	Config     *config.Config
	Router     router.Router
	Middleware middleware.AppMiddleware
	state      atomic.Int32
}

func New(cfg *config.Config, r router.Router, mw middleware.AppMiddleware) *HTTP {
	h := &HTTP{
		Config:     cfg,
		Router:     r,
		Middleware: mw,
	}
	h.setState(ServerStateReady)

	return h
}

func (h *HTTP) State() ServerState {
	return ServerState(h.state.Load())
}

// Ready implements health.State.
func (h *HTTP) Ready() bool {
	return h.State() == ServerStateReady
}

func (h *HTTP) setState(state ServerState) {
	h.state.Store(int32(state))
}

// Handler builds the full route tree with the middleware chain applied.
func (h *HTTP) Handler() http.Handler {
	mux := chi.NewRouter()

	mux.Use(chiMiddleware.Recoverer)
	mux.Use(h.Middleware.RequestID)
	mux.Use(h.Middleware.Tracing)

	if corsConfig := h.Config.App.CORS; corsConfig.Enable {
		mux.Use(cors.Handler(cors.Options{
			AllowedOrigins:   corsConfig.AllowedOrigins,
			AllowedMethods:   corsConfig.AllowedMethods,
			AllowedHeaders:   corsConfig.AllowedHeaders,
			AllowCredentials: corsConfig.AllowCredentials,
			MaxAge:           corsConfig.MaxAgeSeconds,
		}))
	}

	healthHandler := health.New(h)
	healthHandler.Router(mux)

	h.Router.SetupRoutes(mux)

	return mux
}

// Serve runs the HTTP server until ctx is cancelled, then shuts it down
// through the configured grace and cleanup periods.
func (h *HTTP) Serve(ctx context.Context) error {
	if !h.Config.Server.Enable {
		log.Info().Msg("HTTP server disabled")

		return nil
	}

	addr := net.JoinHostPort(h.Config.Server.Host, h.Config.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           h.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)

	go func() {
		log.Info().Str("addr", addr).Msg("Starting up HTTP server.")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}

		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}

		return nil
	case <-ctx.Done():
	}

	return h.shutdown(server)
}

func (h *HTTP) shutdown(server *http.Server) error {
	shutdownConfig := h.Config.Server.Shutdown

	if h.Config.Server.Env == constant.ServerEnvDevelopment {
		log.Warn().Msg("Received shutdown signal. Shutting down now.")

		return server.Close() //nolint:wrapcheck
	}

	log.Info().Int64("seconds", shutdownConfig.GracePeriodSeconds).Msg("Entering grace period.")

	h.setState(ServerStateInGracePeriod)

	time.Sleep(time.Duration(shutdownConfig.GracePeriodSeconds) * time.Second)

	log.Info().Int64("seconds", shutdownConfig.CleanupPeriodSeconds).Msg("Entering cleanup period.")

	h.setState(ServerStateInCleanupPeriod)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(shutdownConfig.CleanupPeriodSeconds)*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}

	log.Info().Msg("Cleaning up completed. Shutting down now.")

	return nil
}
