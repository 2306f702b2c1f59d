package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/startupscout/showcase/internal/core/service"
	"github.com/startupscout/showcase/pkg/logger"
)

var (
	watchRefresh     time.Duration
	watchMetricsAddr string
	watchTop         int
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow the leaderboard and keep the session checked",
	Long: `watch refreshes the project list periodically, checks the session
against its validity window and optionally serves Prometheus metrics.
It runs until interrupted.`,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	feed := service.NewProjectFeed(a.client, logger.For("projects"))
	defer feed.Close()

	events, unsubscribe := a.sessions.Subscribe()
	defer unsubscribe()

	out := cmd.OutOrStdout()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.monitor.Run(ctx)
		return nil
	})

	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case ev, ok := <-events:
				if !ok {
					return nil
				}
				expiryNotice(out, ev)
			}
		}
	})

	g.Go(func() error {
		ticker := time.NewTicker(watchRefresh)
		defer ticker.Stop()
		for {
			refreshLeaderboard(ctx, cmd, feed)
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
			}
		}
	})

	addr := watchMetricsAddr
	if addr == "" {
		addr = cfg.Metrics.Addr
	}
	if addr != "" {
		srv := &http.Server{Addr: addr, Handler: metricsMux(), ReadHeaderTimeout: 5 * time.Second}
		g.Go(func() error {
			log.Info().Str("addr", addr).Msg("serving metrics")
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	return g.Wait()
}

func metricsMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func refreshLeaderboard(ctx context.Context, cmd *cobra.Command, feed *service.ProjectFeed) {
	projects, err := feed.Fetch(ctx)
	if err != nil {
		if ctx.Err() == nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "refresh failed: %s\n", userMessage(err))
		}
		return
	}
	if len(projects) > watchTop {
		projects = projects[:watchTop]
	}
	fmt.Fprintf(cmd.OutOrStdout(), "--- %s ---\n", time.Now().Format("15:04:05"))
	_ = printProjects(cmd.OutOrStdout(), projects)
}

func init() {
	watchCmd.Flags().DurationVar(&watchRefresh, "refresh", 30*time.Second, "leaderboard refresh interval")
	watchCmd.Flags().StringVar(&watchMetricsAddr, "metrics-addr", "", "serve /metrics on this address (overrides SCOUT_METRICS_ADDR)")
	watchCmd.Flags().IntVar(&watchTop, "top", 10, "number of projects to show")
	rootCmd.AddCommand(watchCmd)
}
