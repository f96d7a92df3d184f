// Package equity estimates how often each of several hole-card hands wins
// once the board is complete.
package equity

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/lox/showdown/internal/randutil"
	"github.com/lox/showdown/poker"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultIterations = 10000
	maxWorkers        = 8
	boardSize         = 5
	holeSize          = 2

	// ctx is polled once per this many trials.
	checkEvery = 64
)

var ErrTooFewHands = errors.New("equity needs at least two hands")

// Options controls a calculation. Zero values select defaults.
type Options struct {
	Iterations int // Monte Carlo trials; runouts are enumerated when there are no more than this
	Workers    int
	Seed       int64
}

func (o Options) withDefaults() Options {
	if o.Iterations <= 0 {
		o.Iterations = DefaultIterations
	}
	if o.Workers <= 0 {
		o.Workers = min(runtime.NumCPU(), maxWorkers)
	}
	return o
}

// HandEquity is the outcome tally for one hand.
type HandEquity struct {
	Hole   []poker.Card
	Trials int
	Wins   int
	Ties   int
	// TieShare sums 1/k over every k-way tie the hand was part of.
	TieShare float64
	// Categories counts the category of the hand's best five cards per trial.
	Categories [len(poker.Categories)]int
}

// Win returns the percentage of trials won outright.
func (h HandEquity) Win() float64 { return h.percent(float64(h.Wins)) }

// Tie returns the percentage of trials tied for best.
func (h HandEquity) Tie() float64 { return h.percent(float64(h.Ties)) }

// Equity returns the percentage of pots the hand would collect, with tied
// pots shared evenly.
func (h HandEquity) Equity() float64 { return h.percent(float64(h.Wins) + h.TieShare) }

// CategoryPercent returns how often the hand finished as category c.
func (h HandEquity) CategoryPercent(c poker.Category) float64 {
	return h.percent(float64(h.Categories[c]))
}

func (h HandEquity) percent(n float64) float64 {
	if h.Trials == 0 {
		return 0
	}
	return 100 * n / float64(h.Trials)
}

// Result holds the tallies for every hand, in input order.
type Result struct {
	Hands  []HandEquity
	Board  []poker.Card
	Trials int
	// Exact is set when every possible runout was evaluated.
	Exact bool
}

// Calculate deals out the rest of the board and tallies who wins. When the
// number of possible runouts is at most opts.Iterations they are enumerated
// and the result is exact; otherwise opts.Iterations random runouts are
// sampled. Work is split across opts.Workers goroutines, and for a given seed
// the result does not depend on scheduling.
func Calculate(ctx context.Context, hands [][]poker.Card, board []poker.Card, opts Options) (*Result, error) {
	opts = opts.withDefaults()

	known, err := validate(hands, board)
	if err != nil {
		return nil, err
	}

	remaining := poker.NewDeck(nil)
	if err := remaining.Remove(known...); err != nil {
		return nil, fmt.Errorf("remove known cards: %w", err)
	}
	available := remaining.Cards()
	need := boardSize - len(board)

	runouts := poker.CombinationCount(len(available), need)
	exact := runouts <= opts.Iterations
	workers := opts.Workers
	if exact {
		workers = min(workers, runouts)
	}

	tallies := make([]*tally, workers)
	g, ctx := errgroup.WithContext(ctx)
	for w := range workers {
		t := newTally(len(hands))
		tallies[w] = t

		g.Go(func() error {
			if exact {
				return t.enumerate(ctx, hands, board, available, need, w, workers)
			}
			trials := opts.Iterations / workers
			if w < opts.Iterations%workers {
				trials++
			}
			deck := poker.NewDeck(randutil.Stream(opts.Seed, w))
			return t.sample(ctx, hands, board, known, deck, need, trials)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := newTally(len(hands))
	for _, t := range tallies {
		total.merge(t)
	}

	result := &Result{
		Hands: make([]HandEquity, len(hands)),
		Board: append([]poker.Card(nil), board...),
		Exact: exact,
	}
	result.Trials = total.trials
	for i, hole := range hands {
		result.Hands[i] = total.hands[i]
		result.Hands[i].Hole = append([]poker.Card(nil), hole...)
		result.Hands[i].Trials = total.trials
	}
	return result, nil
}

func validate(hands [][]poker.Card, board []poker.Card) ([]poker.Card, error) {
	if len(hands) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewHands, len(hands))
	}
	if len(board) > boardSize {
		return nil, fmt.Errorf("%w: board has %d cards", poker.ErrInvalidHand, len(board))
	}
	if need := len(hands)*holeSize + boardSize; need > 52 {
		return nil, fmt.Errorf("%d hands need %d cards: %w", len(hands), need, poker.ErrInsufficientCards)
	}

	known := make([]poker.Card, 0, len(hands)*holeSize+len(board))
	for i, hole := range hands {
		if len(hole) != holeSize {
			return nil, fmt.Errorf("%w: hand %d has %d cards", poker.ErrInvalidHand, i+1, len(hole))
		}
		known = append(known, hole...)
	}
	known = append(known, board...)

	seen := make(map[poker.Card]bool, len(known))
	for _, card := range known {
		if !card.Valid() {
			return nil, fmt.Errorf("%w: %v", poker.ErrInvalidCard, card)
		}
		if seen[card] {
			return nil, fmt.Errorf("%w: %s appears twice", poker.ErrInvalidHand, card)
		}
		seen[card] = true
	}
	return known, nil
}

// tally accumulates outcomes for one worker.
type tally struct {
	trials int
	hands  []HandEquity
	best   []poker.BestHand
	top    []int
	full   []poker.Card
}

func newTally(n int) *tally {
	return &tally{
		hands: make([]HandEquity, n),
		best:  make([]poker.BestHand, n),
		top:   make([]int, 0, n),
		full:  make([]poker.Card, 0, boardSize),
	}
}

// enumerate evaluates every stride'th runout starting at offset.
func (t *tally) enumerate(ctx context.Context, hands [][]poker.Card, board, available []poker.Card, need, offset, stride int) error {
	combos := poker.NewCombinations(len(available), need)
	for i, n := 0, 0; combos.Next(); i++ {
		if i%stride != offset {
			continue
		}
		if n%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		n++

		t.full = append(t.full[:0], board...)
		for _, idx := range combos.Indices() {
			t.full = append(t.full, available[idx])
		}
		if err := t.record(hands, t.full); err != nil {
			return err
		}
	}
	return nil
}

// sample evaluates trials random runouts drawn from deck.
func (t *tally) sample(ctx context.Context, hands [][]poker.Card, board, known []poker.Card, deck *poker.Deck, need, trials int) error {
	for i := range trials {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		deck.Reset()
		if err := deck.Remove(known...); err != nil {
			return err
		}
		deck.Shuffle()
		runout, err := deck.Deal(need)
		if err != nil {
			return err
		}

		t.full = append(append(t.full[:0], board...), runout...)
		if err := t.record(hands, t.full); err != nil {
			return err
		}
	}
	return nil
}

// record scores one complete board.
func (t *tally) record(hands [][]poker.Card, full []poker.Card) error {
	t.top = t.top[:0]
	for i, hole := range hands {
		best, err := poker.EvaluateBest(hole, full)
		if err != nil {
			return err
		}
		t.best[i] = best
		t.hands[i].Categories[best.Tier.Category()]++

		if len(t.top) == 0 {
			t.top = append(t.top, i)
			continue
		}
		switch c := best.CompareStrength(t.best[t.top[0]]); {
		case c > 0:
			t.top = append(t.top[:0], i)
		case c == 0:
			t.top = append(t.top, i)
		}
	}

	t.trials++
	if len(t.top) == 1 {
		t.hands[t.top[0]].Wins++
		return nil
	}
	share := 1 / float64(len(t.top))
	for _, i := range t.top {
		t.hands[i].Ties++
		t.hands[i].TieShare += share
	}
	return nil
}

func (t *tally) merge(other *tally) {
	t.trials += other.trials
	for i := range t.hands {
		t.hands[i].Wins += other.hands[i].Wins
		t.hands[i].Ties += other.hands[i].Ties
		t.hands[i].TieShare += other.hands[i].TieShare
		for c, n := range other.hands[i].Categories {
			t.hands[i].Categories[c] += n
		}
	}
}
