package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iamNilotpal/kvd/internal/config"
	"github.com/iamNilotpal/kvd/internal/dispatch"
	"github.com/iamNilotpal/kvd/internal/engine"
	"github.com/iamNilotpal/kvd/pkg/logger"
	"github.com/iamNilotpal/kvd/pkg/options"
)

func newServeCmd() *cobra.Command {
	var (
		configPath string
		addr       string
		useStdin   bool
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the request dispatcher over stdin or TCP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath, addr, useStdin, logLevel)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")
	cmd.Flags().StringVar(&addr, "addr", "", "TCP address to listen on, e.g. :6380 (overrides config listenAddr)")
	cmd.Flags().BoolVar(&useStdin, "stdin", false, "serve requests over stdin/stdout instead of TCP")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")

	return cmd
}

func runServe(configPath, addr string, useStdin bool, logLevel string) error {
	log, err := logger.New("kvd", logLevel)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer log.Sync()

	optFns, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if addr != "" {
		optFns = append(optFns, options.WithListenAddr(addr))
	}
	optFns = append(optFns, options.WithLogger(log))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	eng, err := engine.Open(ctx, "", optFns...)
	if err != nil {
		return fmt.Errorf("failed to open engine: %w", err)
	}
	defer eng.Close()

	handler := dispatch.NewHandler(eng)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Infow("shutdown signal received")
		cancel()
	}()

	if useStdin {
		log.Infow("serving over stdin")
		return dispatch.ServeStdin(ctx, os.Stdin, os.Stdout, handler)
	}

	var o options.Options
	for _, fn := range optFns {
		fn(&o)
	}

	ln, err := net.Listen("tcp", o.ListenAddr)
	if err != nil {
		return fmt.Errorf("failed to bind %s: %w", o.ListenAddr, err)
	}
	log.Infow("serving over tcp", "addr", o.ListenAddr)
	return dispatch.ServeTCP(ctx, ln, handler, log)
}
