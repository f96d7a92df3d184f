package main

import (
	"fmt"
	"time"

	"github.com/lox/showdown/internal/display"
	"github.com/lox/showdown/internal/equity"
	"github.com/lox/showdown/internal/randutil"
	"github.com/lox/showdown/poker"
)

type OddsCmd struct {
	Hands      []string `arg:"" help:"Player hands in format 'AcKd QhJs' (space separated, quoted)"`
	Board      string   `short:"b" help:"Community board cards (e.g., 'Td7s8h')"`
	Iterations int      `short:"i" help:"Number of Monte Carlo iterations (overrides config)"`
	Workers    int      `short:"w" help:"Parallel workers (overrides config)"`
	Seed       *int64   `help:"Random seed for reproducible results"`
	Categories bool     `short:"p" help:"Show how often each hand makes each category"`
}

func (c *OddsCmd) Run(g *Globals) error {
	cfg, logger, err := g.setup()
	if err != nil {
		return err
	}

	hands, err := parseHands(c.Hands)
	if err != nil {
		return err
	}
	var board []poker.Card
	if c.Board != "" {
		if board, err = poker.ParseCards(c.Board); err != nil {
			return fmt.Errorf("board: %w", err)
		}
	}

	opts := equity.Options{
		Iterations: cfg.Equity.Iterations,
		Workers:    cfg.Equity.Workers,
		Seed:       randutil.Seed(c.Seed),
	}
	if c.Iterations > 0 {
		opts.Iterations = c.Iterations
	}
	if c.Workers > 0 {
		opts.Workers = c.Workers
	}
	logger.Debug("Calculating equity", "hands", len(hands), "board", len(board), "iterations", opts.Iterations, "seed", opts.Seed)

	ctx, cancel := signalContext(logger)
	defer cancel()

	start := time.Now()
	result, err := equity.Calculate(ctx, hands, board, opts)
	if err != nil {
		return err
	}
	display.Equity(g.stdout(), result, c.Categories, time.Since(start))
	return nil
}
