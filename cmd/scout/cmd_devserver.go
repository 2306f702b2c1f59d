package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/startupscout/showcase/internal/api"
	"github.com/startupscout/showcase/internal/api/handler"
	"github.com/startupscout/showcase/internal/backend"
	"github.com/startupscout/showcase/pkg/logger"
)

var devserverPort string

var devserverCmd = &cobra.Command{
	Use:   "devserver",
	Short: "Run the in-memory reference backend",
	Long: `devserver serves the showcase REST API from memory. Data is lost on exit.
Swagger UI is available under /swagger/index.html and Prometheus metrics under /metrics.`,
	RunE: runDevserver,
}

func runDevserver(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	port := devserverPort
	if port == "" {
		port = cfg.DevServer.Port
	}

	e := newDevserver()
	srvLog := logger.For("devserver")

	errCh := make(chan error, 1)
	go func() {
		srvLog.Info().Str("port", port).Msg("reference backend listening")
		errCh <- e.Start(net.JoinHostPort("", port))
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srvLog.Info().Msg("shutting down")
	return e.Shutdown(shutdownCtx)
}

// newDevserver wires the reference backend from the loaded configuration.
func newDevserver() *echo.Echo {
	store := backend.NewStore()
	showcase := backend.NewShowcaseService(store, cfg.DevServer.MaxImageBytes, logger.For("showcase"))

	return api.NewRouter(api.Deps{
		Accounts:      backend.NewAccountService(store.Users, cfg.DevServer.JWTSecret, cfg.Session.TTL, cfg.DevServer.TelegramBotToken),
		Showcase:      showcase,
		JWTSecret:     cfg.DevServer.JWTSecret,
		Log:           logger.For("api"),
		PublicURL:     cfg.DevServer.PublicURL,
		MaxImageBytes: cfg.DevServer.MaxImageBytes,
		Checks: map[string]handler.Check{
			"store": func(ctx context.Context) error {
				_, err := showcase.Stats(ctx)
				return err
			},
		},
		Registry: prometheus.NewRegistry(),
	})
}

func init() {
	devserverCmd.Flags().StringVar(&devserverPort, "port", "", "listen port (overrides SCOUT_DEVSERVER_PORT)")
	rootCmd.AddCommand(devserverCmd)
}
