package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lox/showdown/internal/display"
	"github.com/lox/showdown/poker"
)

type EvalCmd struct {
	Cards string `arg:"" help:"Five cards, e.g. 'As Ks Qs Js Ts' or 'AsKsQsJsTs'"`
}

func (c *EvalCmd) Run(g *Globals) error {
	if _, _, err := g.setup(); err != nil {
		return err
	}

	cards, err := poker.ParseCards(c.Cards)
	if err != nil {
		return err
	}
	if len(cards) != 5 {
		return fmt.Errorf("eval needs exactly 5 cards, got %d", len(cards))
	}

	tier, err := poker.Evaluate([5]poker.Card(cards))
	if err != nil {
		return err
	}
	fmt.Fprintf(g.stdout(), "%s  %s\n", display.Cards(cards), display.Tier(tier))
	return nil
}

type BestCmd struct {
	Hole  string `arg:"" help:"Private cards, e.g. 'Ah Kh'"`
	Board string `short:"b" help:"Community cards, e.g. 'Qh Jh 2c 7d'"`
}

func (c *BestCmd) Run(g *Globals) error {
	if _, _, err := g.setup(); err != nil {
		return err
	}

	hole, err := poker.ParseCards(c.Hole)
	if err != nil {
		return fmt.Errorf("hole: %w", err)
	}
	var board []poker.Card
	if c.Board != "" {
		if board, err = poker.ParseCards(c.Board); err != nil {
			return fmt.Errorf("board: %w", err)
		}
	}

	best, err := poker.EvaluateBest(hole, board)
	if errors.Is(err, poker.ErrPoolTooSmall) {
		return fmt.Errorf("need at least 5 cards between hole and board: %w", err)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(g.stdout(), display.BestHand(best))
	return nil
}

// parseHands parses two-card hands such as "AcKh" or "Ac Kh".
func parseHands(handStrings []string) ([][]poker.Card, error) {
	hands := make([][]poker.Card, 0, len(handStrings))
	for i, handStr := range handStrings {
		hand, err := poker.ParseCards(strings.TrimSpace(handStr))
		if err != nil {
			return nil, fmt.Errorf("hand %d: %w", i+1, err)
		}
		if len(hand) != 2 {
			return nil, fmt.Errorf("hand %d: must contain exactly 2 cards, got %d", i+1, len(hand))
		}
		hands = append(hands, hand)
	}
	return hands, nil
}
