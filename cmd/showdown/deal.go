package main

import (
	"errors"
	"fmt"

	"github.com/coder/quartz"
	"github.com/lox/showdown/internal/display"
	"github.com/lox/showdown/internal/game"
	"github.com/lox/showdown/internal/handid"
	"github.com/lox/showdown/internal/randutil"
	"github.com/lox/showdown/internal/statistics"
)

type DealCmd struct {
	Players int    `short:"p" help:"Number of players (overrides config)"`
	Hands   int    `short:"n" default:"1" help:"Number of hands to deal"`
	Chips   int    `help:"Starting chips per player (overrides config)"`
	Seed    *int64 `help:"Deterministic RNG seed (overrides config)"`
	Stats   bool   `short:"s" help:"Show per-player session statistics"`
	Quiet   bool   `short:"q" help:"Only print the final standings"`
	History string `type:"path" help:"Write every hand to this JSON file"`
}

func (c *DealCmd) Run(g *Globals) error {
	cfg, logger, err := g.setup()
	if err != nil {
		return err
	}

	settings := cfg.Table
	if c.Players > 0 {
		settings.Players = c.Players
	}
	if c.Chips > 0 {
		settings.StartingChips = c.Chips
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	seedFlag := settings.Seed
	if c.Seed != nil {
		seedFlag = c.Seed
	}
	seed := randutil.Seed(seedFlag)

	players := make([]*game.Player, settings.Players)
	for i := range players {
		players[i] = game.NewPlayer(fmt.Sprintf("Player %d", i+1), settings.StartingChips)
	}

	ids := handid.NewGenerator(quartz.NewReal(), nil)
	history := &game.History{
		Session:       ids.Next(),
		Seed:          seed,
		SmallBlind:    settings.SmallBlind,
		BigBlind:      settings.BigBlind,
		StartingChips: settings.StartingChips,
	}

	logger.Info("Dealing",
		"session", history.Session,
		"players", settings.Players,
		"hands", c.Hands,
		"stakes", fmt.Sprintf("%d/%d", settings.SmallBlind, settings.BigBlind),
		"seed", seed)

	table, err := game.NewTable(players, randutil.New(seed), logger,
		game.WithBlinds(settings.SmallBlind, settings.BigBlind))
	if err != nil {
		return err
	}

	session := statistics.NewSession(settings.BigBlind)
	out := g.stdout()
	for range c.Hands {
		result, err := table.PlayHand()
		if errors.Is(err, game.ErrNotEnoughPlayers) {
			logger.Info("Not enough players with chips, stopping", "hand", table.HandNumber())
			break
		}
		if err != nil {
			return err
		}
		session.Record(result)
		history.Add(ids.Next(), result)
		if !c.Quiet {
			display.Showdown(out, result)
			fmt.Fprintln(out)
		}
	}

	if err := session.Validate(); err != nil {
		return fmt.Errorf("session accounting: %w", err)
	}

	if c.History != "" {
		if err := history.WriteFile(c.History); err != nil {
			return fmt.Errorf("writing history: %w", err)
		}
		logger.Info("Wrote hand history", "path", c.History, "hands", len(history.Hands))
	}

	display.Standings(out, table.Players())
	if c.Stats && session.Hands() > 0 {
		fmt.Fprintln(out)
		display.Session(out, session)
	}
	return nil
}
