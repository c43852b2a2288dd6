package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"google.golang.org/grpc"

	"github.com/spf13/cobra"

	"github.com/yuan-yuan-jia/lightflus/api/coordinatorapi"
	"github.com/yuan-yuan-jia/lightflus/pkg/config"
	"github.com/yuan-yuan-jia/lightflus/pkg/coordinator"
	"github.com/yuan-yuan-jia/lightflus/pkg/log"
	"github.com/yuan-yuan-jia/lightflus/pkg/metrics"
	"github.com/yuan-yuan-jia/lightflus/pkg/storage"
)

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "coordinator",
	Short: "Lightflus coordination-plane coordinator",
	Long: `coordinator runs the stream-processing coordination plane: dataflow
submission and placement, the cluster liveness probe, and the ack/heartbeat
RPC surface described in the coordinator's external interface.`,
	Version: Version,
	RunE:    runCoordinator,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"coordinator version %s\nCommit: %s\nBuilt: %s\n",
		Version, Commit, BuildTime,
	))

	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Output logs in JSON format")
	rootCmd.Flags().StringP("config", "c", "coordinator.yaml", "Path to the coordinator config file")
	rootCmd.Flags().String("metrics-addr", "127.0.0.1:9090", "Metrics HTTP listen address")

	cobra.OnInitialize(initLogging)
}

func initLogging() {
	logLevel, _ := rootCmd.PersistentFlags().GetString("log-level")
	logJSON, _ := rootCmd.PersistentFlags().GetBool("log-json")

	log.Init(log.Config{
		Level:      log.Level(logLevel),
		JSONOutput: logJSON,
	})
}

func runCoordinator(cmd *cobra.Command, args []string) error {
	logger := log.WithComponent("main")

	configPath, _ := cmd.Flags().GetString("config")
	metricsAddr, _ := cmd.Flags().GetString("metrics-addr")

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	metrics.SetVersion(Version)

	store, err := storage.New(cfg.Storage)
	if err != nil {
		metrics.RegisterComponent("storage", false, err.Error())
		return fmt.Errorf("failed to open storage: %w", err)
	}
	metrics.RegisterComponent("storage", true, "")

	coord := coordinator.New(store, cfg.Cluster)
	metrics.RegisterComponent("cluster", true, "")
	metrics.SetWorkerSnapshot(coord.Cluster().WorkerCounts)

	probeCtx, cancelProbe := context.WithCancel(context.Background())
	go coord.RunProbeLoop(probeCtx, cfg.ProbeInterval.AsTimeDuration())

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		mux.HandleFunc("/health", metrics.HealthHandler())
		mux.HandleFunc("/ready", metrics.ReadyHandler())
		mux.HandleFunc("/live", metrics.LivenessHandler())
		if err := http.ListenAndServe(metricsAddr, mux); err != nil {
			logger.Error().Err(err).Msg("metrics server error")
		}
	}()
	logger.Info().Str("addr", metricsAddr).Msg("metrics endpoint listening")

	addr := fmt.Sprintf(":%d", cfg.Port)
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		cancelProbe()
		return fmt.Errorf("failed to listen: %w", err)
	}

	grpcServer := grpc.NewServer()
	coordinatorapi.Register(grpcServer, coordinator.NewServer(coord))

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("coordinator gRPC API listening")
		if err := grpcServer.Serve(lis); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sigCh:
		logger.Info().Msg("shutdown signal received")
	case err := <-errCh:
		logger.Error().Err(err).Msg("server error")
	}

	cancelProbe()
	grpcServer.GracefulStop()
	if err := coord.Close(); err != nil {
		logger.Error().Err(err).Msg("error during shutdown")
	}

	logger.Info().Msg("shutdown complete")
	return nil
}
