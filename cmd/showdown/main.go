package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/lox/showdown/internal/config"
	"github.com/lox/showdown/internal/display"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	Config   string           `short:"c" default:"showdown.hcl" help:"Path to HCL configuration file"`
	LogLevel string           `short:"l" help:"Log level (overrides config)"`
	NoColor  bool             `help:"Disable colored output"`
	Version  kong.VersionFlag `short:"v" help:"Show version"`

	out io.Writer
}

type CLI struct {
	Globals

	Deal  DealCmd  `cmd:"" help:"Deal hands at a table of calling stations"`
	Eval  EvalCmd  `cmd:"" help:"Classify exactly five cards"`
	Best  BestCmd  `cmd:"" help:"Find the best five-card hand from hole and board cards"`
	Odds  OddsCmd  `cmd:"" help:"Calculate win/tie equity for two or more hands"`
	Serve ServeCmd `cmd:"" help:"Run the WebSocket evaluation server"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("showdown"),
		kong.Description("Poker hand evaluation, equity and showdown tools"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}

// setup loads configuration, applies flag overrides and returns a logger
// writing to stderr.
func (g *Globals) setup() (*config.Config, *log.Logger, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	if g.LogLevel != "" {
		cfg.LogLevel = g.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	level, _ := log.ParseLevel(strings.ToLower(cfg.LogLevel)) // Validated above
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})

	display.SetColor(!g.NoColor)
	return cfg, logger, nil
}

func (g *Globals) stdout() io.Writer {
	if g.out != nil {
		return g.out
	}
	return os.Stdout
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(logger *log.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("Received signal, shutting down", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}
