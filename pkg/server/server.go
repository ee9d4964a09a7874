package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/getzep/zep-ner/config"
	"github.com/getzep/zep-ner/pkg/nerpb"
)

// State is the lifecycle position of a Server.
type State int32

const (
	StateCreated State = iota
	StateBound
	StateServing
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateBound:
		return "bound"
	case StateServing:
		return "serving"
	case StateStopped:
		return "stopped"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

var ErrInvalidState = errors.New("invalid server state")

// Server is the gRPC front of the NER service. It moves through
// created → bound → serving → stopped and cannot be reused once stopped.
type Server struct {
	cfg     *config.Config
	log     logrus.FieldLogger
	service nerpb.NERServer
	pool    *WorkerPool
	health  *health.Server
	grpc    *grpc.Server

	mu    sync.Mutex
	state State
	lis   net.Listener
}

// New creates a server in the created state.
func New(cfg *config.Config, service nerpb.NERServer, log logrus.FieldLogger) *Server {
	pool := NewWorkerPool(cfg.Server.Workers, cfg.Server.QueueSize, log)

	opts := []grpc.ServerOption{
		grpc.ChainUnaryInterceptor(
			RequestLogger(log),
			pool.UnaryServerInterceptor(),
			ErrorStatus,
			Recoverer,
		),
	}
	if cfg.Server.MaxRecvMsgSize > 0 {
		opts = append(opts, grpc.MaxRecvMsgSize(cfg.Server.MaxRecvMsgSize))
	}

	return &Server{
		cfg:     cfg,
		log:     log,
		service: service,
		pool:    pool,
		health:  health.NewServer(),
		grpc:    grpc.NewServer(opts...),
		state:   StateCreated,
	}
}

// State returns the current lifecycle state.
func (s *Server) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Addr returns the bound address, or nil before Bind.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lis == nil {
		return nil
	}
	return s.lis.Addr()
}

// Bind registers the services and opens the configured TCP port.
func (s *Server) Bind() error {
	if err := s.checkState(StateCreated); err != nil {
		return err
	}
	lis, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr(), err)
	}
	return s.BindListener(lis)
}

// BindListener registers the services and serves on lis instead of opening
// a port. The server takes ownership of lis.
func (s *Server) BindListener(lis net.Listener) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateCreated {
		_ = lis.Close()
		return fmt.Errorf("%w: bind from %s", ErrInvalidState, s.state)
	}

	nerpb.RegisterNERServer(s.grpc, s.service)
	healthpb.RegisterHealthServer(s.grpc, s.health)
	for _, name := range append([]string{""}, nerpb.ServiceNames...) {
		s.health.SetServingStatus(name, healthpb.HealthCheckResponse_NOT_SERVING)
	}

	s.lis = lis
	s.state = StateBound
	s.log.Infof("Bound to %s", lis.Addr())
	return nil
}

// Serve handles calls on the worker pool until Stop. It blocks.
func (s *Server) Serve() error {
	s.mu.Lock()
	if s.state != StateBound {
		state := s.state
		s.mu.Unlock()
		return fmt.Errorf("%w: serve from %s", ErrInvalidState, state)
	}
	s.state = StateServing
	lis := s.lis
	s.mu.Unlock()

	for _, name := range append([]string{""}, nerpb.ServiceNames...) {
		s.health.SetServingStatus(name, healthpb.HealthCheckResponse_SERVING)
	}

	s.log.Infof("Serving with %d workers", s.pool.Size())
	err := s.grpc.Serve(lis)
	if errors.Is(err, grpc.ErrServerStopped) {
		return nil
	}
	return err
}

// Stop drains in-flight calls until ctx ends, then closes remaining
// connections, the worker pool and the port.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	if s.state == StateStopped {
		s.mu.Unlock()
		return fmt.Errorf("%w: already stopped", ErrInvalidState)
	}
	prev := s.state
	s.state = StateStopped
	lis := s.lis
	s.mu.Unlock()

	s.health.Shutdown()

	done := make(chan struct{})
	go func() {
		s.grpc.GracefulStop()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		s.log.Warn("graceful stop timed out, closing connections")
		s.grpc.Stop()
		<-done
	}

	s.pool.Close()

	// grpc only owns the listener once Serve has been called.
	if prev == StateBound && lis != nil {
		_ = lis.Close()
	}

	s.log.Info("Server stopped")
	return nil
}

func (s *Server) checkState(want State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != want {
		return fmt.Errorf("%w: want %s, have %s", ErrInvalidState, want, s.state)
	}
	return nil
}
