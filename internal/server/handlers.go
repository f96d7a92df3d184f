package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/lox/showdown/internal/equity"
	"github.com/lox/showdown/poker"
)

// MaxIterations bounds the Monte Carlo work a single equity request can ask for.
const MaxIterations = 200000

// errInvalidRequest marks requests that are well formed JSON but ask for
// something impossible.
var errInvalidRequest = errors.New("invalid request")

// errorCode maps an error to the code sent to clients.
func errorCode(err error) string {
	switch {
	case errors.Is(err, poker.ErrInvalidCard):
		return "invalid_cards"
	case errors.Is(err, poker.ErrInvalidHand):
		return "invalid_hand"
	case errors.Is(err, poker.ErrPoolTooSmall):
		return "pool_too_small"
	case errors.Is(err, poker.ErrInsufficientCards):
		return "insufficient_cards"
	case errors.Is(err, equity.ErrTooFewHands), errors.Is(err, errInvalidRequest):
		return "invalid_request"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "internal_error"
	}
}

func parseCards(field, s string) ([]poker.Card, error) {
	if s == "" {
		return nil, nil
	}
	cards, err := poker.ParseCards(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	return cards, nil
}

func bestHandResult(b poker.BestHand) BestHandResultData {
	cards := make([]string, len(b.Cards))
	for i, c := range b.Cards {
		cards[i] = c.String()
	}
	return BestHandResultData{
		Tier:     b.Tier.String(),
		Category: b.Tier.Category().String(),
		Cards:    cards,
	}
}

func (s *Server) evaluate(req EvaluateData) (EvaluateResultData, error) {
	cards, err := parseCards("cards", req.Cards)
	if err != nil {
		return EvaluateResultData{}, err
	}
	if len(cards) != 5 {
		return EvaluateResultData{}, fmt.Errorf("%w: need exactly 5 cards, got %d", poker.ErrInvalidHand, len(cards))
	}

	tier, err := poker.Evaluate([5]poker.Card(cards))
	if err != nil {
		return EvaluateResultData{}, err
	}
	return EvaluateResultData{Tier: tier.String(), Category: tier.Category().String()}, nil
}

func (s *Server) bestHand(req BestHandData) (BestHandResultData, error) {
	hole, err := parseCards("hole", req.Hole)
	if err != nil {
		return BestHandResultData{}, err
	}
	board, err := parseCards("board", req.Board)
	if err != nil {
		return BestHandResultData{}, err
	}

	best, err := poker.EvaluateBest(hole, board)
	if err != nil {
		return BestHandResultData{}, err
	}
	return bestHandResult(best), nil
}

func (s *Server) compare(req CompareData) (CompareResultData, error) {
	if len(req.Hands) == 0 {
		return CompareResultData{}, fmt.Errorf("%w: no hands to compare", errInvalidRequest)
	}
	board, err := parseCards("board", req.Board)
	if err != nil {
		return CompareResultData{}, err
	}

	var (
		results = make([]BestHandResultData, len(req.Hands))
		hands   = make([]poker.BestHand, len(req.Hands))
		seen    []poker.Card
		winners []int
	)
	seen = append(seen, board...)
	for i, handStr := range req.Hands {
		hole, err := parseCards(fmt.Sprintf("hand %d", i+1), handStr)
		if err != nil {
			return CompareResultData{}, err
		}
		seen = append(seen, hole...)

		best, err := poker.EvaluateBest(hole, board)
		if err != nil {
			return CompareResultData{}, fmt.Errorf("hand %d: %w", i+1, err)
		}
		hands[i] = best
		results[i] = bestHandResult(best)

		if len(winners) == 0 {
			winners = []int{i}
			continue
		}
		switch c := best.CompareStrength(hands[winners[0]]); {
		case c > 0:
			winners = []int{i}
		case c == 0:
			winners = append(winners, i)
		}
	}

	// A card may only be held by one hand.
	if err := poker.NewDeck(nil).Remove(seen...); err != nil {
		return CompareResultData{}, err
	}

	return CompareResultData{Results: results, Winners: winners}, nil
}

func (s *Server) equityOdds(ctx context.Context, req EquityData) (EquityResultData, error) {
	hands := make([][]poker.Card, len(req.Hands))
	for i, handStr := range req.Hands {
		hole, err := parseCards(fmt.Sprintf("hand %d", i+1), handStr)
		if err != nil {
			return EquityResultData{}, err
		}
		hands[i] = hole
	}
	board, err := parseCards("board", req.Board)
	if err != nil {
		return EquityResultData{}, err
	}

	opts := s.equity
	if req.Iterations < 0 || req.Iterations > MaxIterations {
		return EquityResultData{}, fmt.Errorf("%w: iterations must be between 0 and %d", errInvalidRequest, MaxIterations)
	}
	if req.Iterations > 0 {
		opts.Iterations = req.Iterations
	}
	if req.Seed != nil {
		opts.Seed = *req.Seed
	} else {
		opts.Seed = s.clock.Now().UnixNano()
	}

	start := s.clock.Now()
	result, err := equity.Calculate(ctx, hands, board, opts)
	if err != nil {
		return EquityResultData{}, err
	}

	data := EquityResultData{
		Hands:      make([]HandEquityData, len(result.Hands)),
		Trials:     result.Trials,
		Exact:      result.Exact,
		DurationMs: s.clock.Since(start).Milliseconds(),
	}
	for i, h := range result.Hands {
		data.Hands[i] = HandEquityData{
			Hand:   poker.FormatCards(h.Hole, " "),
			Win:    h.Win(),
			Tie:    h.Tie(),
			Equity: h.Equity(),
		}
	}
	return data, nil
}
