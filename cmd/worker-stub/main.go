// Command worker-stub is a minimal TaskWorkerApi implementation used to
// exercise the RPC Gateway and Cluster Model end to end. The per-operator
// runtime that would actually execute a sub-dataflow is out of scope for
// this module; this binary only records what it was asked to do.
package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"

	"github.com/yuan-yuan-jia/lightflus/api/workerapi"
	"github.com/yuan-yuan-jia/lightflus/pkg/log"
	"github.com/yuan-yuan-jia/lightflus/pkg/types"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "worker-stub",
	Short: "Minimal worker RPC stub for integration testing",
	RunE:  run,
}

func init() {
	rootCmd.Flags().Int("port", 7171, "TCP port to listen on")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Output logs in JSON format")
	cobra.OnInitialize(initLogging)
}

func initLogging() {
	logLevel, _ := rootCmd.PersistentFlags().GetString("log-level")
	logJSON, _ := rootCmd.PersistentFlags().GetBool("log-json")
	log.Init(log.Config{Level: log.Level(logLevel), JSONOutput: logJSON})
}

func run(cmd *cobra.Command, args []string) error {
	logger := log.WithComponent("worker-stub")
	port, _ := cmd.Flags().GetInt("port")

	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	grpcServer := grpc.NewServer()
	workerapi.Register(grpcServer, newStub(logger))

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Int("port", port).Msg("worker stub listening")
		if err := grpcServer.Serve(lis); err != nil {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	select {
	case <-sigCh:
	case err := <-errCh:
		return err
	}

	grpcServer.GracefulStop()
	return nil
}

// stub records every inbound call in memory. Calls returns a copy of that
// record; it is not exposed over RPC and nothing in this module calls it.
type stub struct {
	mu     sync.Mutex
	calls  []string
	logger zerolog.Logger
}

func newStub(logger zerolog.Logger) *stub {
	return &stub{logger: logger}
}

func (s *stub) record(method string) {
	s.mu.Lock()
	s.calls = append(s.calls, method)
	s.mu.Unlock()
	s.logger.Debug().Str("method", method).Msg("worker stub call")
}

func (s *stub) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func (s *stub) CreateSubDataflow(ctx context.Context, req *types.CreateSubDataflowRequest) (*types.CreateSubDataflowResponse, error) {
	s.record("CreateSubDataflow")
	return &types.CreateSubDataflowResponse{Status: types.DataflowStatusRunning}, nil
}

func (s *stub) StopDataflow(ctx context.Context, jobID *types.JobId) (*types.StopDataflowResponse, error) {
	s.record("StopDataflow")
	return &types.StopDataflowResponse{Status: types.DataflowStatusClosed}, nil
}

func (s *stub) SendEventToOperator(ctx context.Context, event *types.KeyedDataEvent) (*types.SendEventToOperatorResponse, error) {
	s.record("SendEventToOperator")
	return &types.SendEventToOperatorResponse{Response: types.OkResponse()}, nil
}

func (s *stub) ReceiveHeartbeat(ctx context.Context, hb *types.Heartbeat) (*types.Response, error) {
	s.record("ReceiveHeartbeat")
	resp := types.OkResponse()
	return &resp, nil
}

func (s *stub) ReceiveAck(ctx context.Context, ack *types.Ack) (*types.Response, error) {
	s.record("ReceiveAck")
	resp := types.OkResponse()
	return &resp, nil
}
