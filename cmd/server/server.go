package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	grpc_logging "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"

	"github.com/KirkDiggler/rpg-fitness/internal/errors"
	toolsv1alpha1 "github.com/KirkDiggler/rpg-fitness/internal/handlers/tools/v1alpha1"
	"github.com/KirkDiggler/rpg-fitness/internal/orchestrators/coach"
)

const shutdownTimeout = 30 * time.Second

var grpcPort int

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the gRPC server",
	Long:  `Start the gRPC tool service with health checks, reflection, the metrics endpoint and the daily quest reset job.`,
	RunE:  runServer,
}

func init() {
	serverCmd.Flags().IntVar(&grpcPort, "port", 0, "gRPC server port (overrides FITNESS_GRPC_PORT)")
}

func runServer(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if grpcPort > 0 {
		cfg.GRPCPort = grpcPort
	}

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			slog.Error("failed to close storage", "error", err)
		}
	}()

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPCPort))
	if err != nil {
		return errors.Wrapf(err, "failed to listen on port %d", cfg.GRPCPort)
	}

	srv := newGRPCServer(slog.Default())

	handler, err := toolsv1alpha1.NewHandler(&toolsv1alpha1.HandlerConfig{CoachService: a.coach})
	if err != nil {
		return errors.Wrap(err, "failed to create tool handler")
	}
	toolsv1alpha1.RegisterToolServiceServer(srv, handler)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(toolsv1alpha1.ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	reflection.Register(srv)

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	scheduler := cron.New(cron.WithLocation(loc))
	if _, err := scheduler.AddFunc(cfg.QuestReset, func() { refreshQuests(ctx, a.coach) }); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid quest reset schedule")
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", a.metrics.Handler())
	metricsServer := &http.Server{
		Addr:              cfg.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("gRPC server starting", "port", cfg.GRPCPort, "storage", cfg.Storage)
		if err := srv.Serve(lis); err != nil {
			return errors.Wrap(err, "failed to serve")
		}
		return nil
	})

	g.Go(func() error {
		slog.Info("metrics endpoint starting", "addr", cfg.MetricsAddr)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return errors.Wrap(err, "metrics endpoint failed")
		}
		return nil
	})

	g.Go(func() error {
		scheduler.Start()
		slog.Info("quest reset scheduled", "spec", cfg.QuestReset, "location", loc.String())
		<-gctx.Done()
		<-scheduler.Stop().Done()
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")
		healthServer.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			slog.Warn("metrics endpoint shutdown failed", "error", err)
		}

		stopped := make(chan struct{})
		go func() {
			srv.GracefulStop()
			close(stopped)
		}()
		select {
		case <-shutdownCtx.Done():
			slog.Warn("graceful shutdown timeout exceeded, forcing stop")
			srv.Stop()
		case <-stopped:
			slog.Info("server stopped gracefully")
		}
		return nil
	})

	return g.Wait()
}

func newGRPCServer(logger *slog.Logger) *grpc.Server {
	logOpts := []grpc_logging.Option{
		grpc_logging.WithLogOnEvents(grpc_logging.FinishCall),
	}
	recoveryOpts := []grpc_recovery.Option{
		grpc_recovery.WithRecoveryHandlerContext(func(ctx context.Context, p any) error {
			logger.ErrorContext(ctx, "recovered from panic", "panic", fmt.Sprint(p))
			return errors.ToGRPCError(errors.Internal("internal error"))
		}),
	}

	return grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			grpc_logging.UnaryServerInterceptor(interceptorLogger(logger), logOpts...),
			grpc_recovery.UnaryServerInterceptor(recoveryOpts...),
		),
		grpc.ChainStreamInterceptor(
			grpc_logging.StreamServerInterceptor(interceptorLogger(logger), logOpts...),
			grpc_recovery.StreamServerInterceptor(recoveryOpts...),
		),
	)
}

// interceptorLogger bridges the middleware logger to slog
func interceptorLogger(l *slog.Logger) grpc_logging.Logger {
	return grpc_logging.LoggerFunc(func(ctx context.Context, lvl grpc_logging.Level, msg string, fields ...any) {
		l.Log(ctx, slog.Level(lvl), msg, fields...)
	})
}

func refreshQuests(ctx context.Context, svc coach.Service) {
	out, err := svc.RefreshDueQuests(ctx, &coach.RefreshDueQuestsInput{})
	if err != nil {
		slog.ErrorContext(ctx, "quest reset job failed", "error", err)
		return
	}
	if len(out.Failed) > 0 {
		slog.WarnContext(ctx, "quest reset job finished with failures", "failed", len(out.Failed))
	}
}
