package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc/grpclog"
	"gopkg.in/yaml.v3"

	"github.com/getzep/zep-ner/config"
	"github.com/getzep/zep-ner/internal"
	"github.com/getzep/zep-ner/pkg/server"
	"github.com/getzep/zep-ner/pkg/toolkit"
)

// run is the entrypoint for the zep-ner server
func run() {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		log.Fatalf("Error configuring zep-ner: %s", err)
	}

	handleCLIOptions(cfg)

	config.SetLogLevel(cfg)
	grpclog.SetLoggerV2(internal.NewGRPCLogrus(log))

	log.Infof("Starting zep-ner server version %s", config.VersionString)

	srv := NewServer(cfg)
	if err := srv.Bind(); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(srv.Serve)
	g.Go(func() error {
		<-ctx.Done()
		log.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Stop(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
}

// NewServer loads the toolkit models and builds a server in the created
// state.
func NewServer(cfg *config.Config) *server.Server {
	logger := log.WithField("component", "ner")

	log.Info("Loading toolkit models")
	processor := toolkit.NewProcessor(toolkit.NewProse(cfg.Toolkit.Binary))
	service := server.NewNERService(processor, logger)

	return server.New(cfg, service, logger.WithFields(logrus.Fields{
		"workers": cfg.Server.Workers,
	}))
}

// handleCLIOptions handles CLI options that don't require the server to run
func handleCLIOptions(cfg *config.Config) {
	if showVersion {
		fmt.Println(config.VersionString)
		os.Exit(0)
	}
	if dumpConfig {
		out, err := yaml.Marshal(cfg)
		if err != nil {
			log.Fatalf("Error dumping config: %s", err)
		}
		fmt.Print(string(out))
		os.Exit(0)
	}
}
