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

	"github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kitbuilder587/kagi-search/internal/config"
	"github.com/kitbuilder587/kagi-search/internal/hostconfig"
	"github.com/kitbuilder587/kagi-search/internal/metrics"
	"github.com/kitbuilder587/kagi-search/internal/search/kagi"
	"github.com/kitbuilder587/kagi-search/internal/tool"
)

var version = "dev"

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "kagi-search: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	host, err := hostconfig.Load(cfg.HostConfigPath)
	if err != nil {
		logger.Error("failed to load host config", zap.String("path", cfg.HostConfigPath), zap.Error(err))
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	client := kagi.New(kagi.Config{
		BaseURL: cfg.Kagi.BaseURL,
		Timeout: cfg.Kagi.Timeout,
	}, logger.Named("kagi"), m)

	searchTool := tool.New(tool.Deps{
		Search:  client,
		Host:    host,
		Logger:  logger.Named("tool"),
		Metrics: m,
	})
	mcpServer := tool.NewServer(version, searchTool)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	switch cfg.Server.Transport {
	case config.TransportHTTP:
		serveHTTP(gctx, g, mcpServer, cfg.Server.HTTPAddr, logger)
	default:
		serveStdio(gctx, g, mcpServer, stop, logger)
	}

	if cfg.Metrics.Addr != "" {
		serveMetrics(gctx, g, reg, cfg.Metrics.Addr, logger)
	}

	logger.Info("kagi-search started",
		zap.String("version", version),
		zap.String("transport", cfg.Server.Transport),
		zap.String("metrics_addr", cfg.Metrics.Addr),
	)

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server stopped with error", zap.Error(err))
		return err
	}

	logger.Info("kagi-search stopped")
	return nil
}

// serveStdio - хост закрыл stdin, значит пора завершаться целиком
func serveStdio(ctx context.Context, g *errgroup.Group, srv *server.MCPServer, stop context.CancelFunc, logger *zap.Logger) {
	stdio := server.NewStdioServer(srv)
	stdio.SetErrorLogger(zap.NewStdLog(logger.Named("mcp")))

	g.Go(func() error {
		defer stop()
		return stdio.Listen(ctx, os.Stdin, os.Stdout)
	})
}

func serveHTTP(ctx context.Context, g *errgroup.Group, srv *server.MCPServer, addr string, logger *zap.Logger) {
	httpServer := server.NewStreamableHTTPServer(srv)

	g.Go(func() error {
		logger.Info("mcp http listening", zap.String("addr", addr))
		if err := httpServer.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("mcp http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
}

func serveMetrics(ctx context.Context, g *errgroup.Group, reg *prometheus.Registry, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(reg))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g.Go(func() error {
		logger.Info("metrics listening", zap.String("addr", addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
}
