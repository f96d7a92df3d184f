package main

import (
	"context"
	"time"

	"github.com/coder/quartz"
	"github.com/lox/showdown/internal/equity"
	"github.com/lox/showdown/internal/server"
)

type ServeCmd struct {
	Addr string `short:"a" help:"Server address to bind to (overrides config)"`
}

func (c *ServeCmd) Run(g *Globals) error {
	cfg, logger, err := g.setup()
	if err != nil {
		return err
	}

	addr := cfg.ServerAddress()
	if c.Addr != "" {
		addr = c.Addr
	}

	s := server.NewServer(server.Options{
		Addr: addr,
		Equity: equity.Options{
			Iterations: cfg.Equity.Iterations,
			Workers:    cfg.Equity.Workers,
		},
	}, logger, quartz.NewReal())

	ctx, cancel := signalContext(logger)
	defer cancel()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- s.Start()
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.Shutdown(shutdownCtx)
	case err := <-serverErr:
		return err
	}
}
