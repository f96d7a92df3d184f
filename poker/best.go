package poker

import (
	"cmp"
	"fmt"
)

// BestHand is the strongest five-card hand found in a pool of cards.
type BestHand struct {
	Tier Tier
	// Cards holds the chosen five cards, highest card first.
	Cards [5]Card
}

// String renders the tier followed by the chosen cards.
func (b BestHand) String() string {
	return fmt.Sprintf("%s [%s]", b.Tier, FormatCards(b.Cards[:], ", "))
}

// Compare orders best hands by tier, then by the five cards using the card
// order (rank, then suit). Two distinct card sets never compare equal, which
// keeps the search deterministic.
func (b BestHand) Compare(other BestHand) int {
	if c := CompareTiers(b.Tier, other.Tier); c != 0 {
		return c
	}
	for i := range b.Cards {
		if c := b.Cards[i].Compare(other.Cards[i]); c != 0 {
			return c
		}
	}
	return 0
}

// CompareStrength orders best hands the way a showdown does: by tier, then by
// the ranks of the five cards. Hands that differ only in suits tie.
func (b BestHand) CompareStrength(other BestHand) int {
	if c := CompareTiers(b.Tier, other.Tier); c != 0 {
		return c
	}
	for i := range b.Cards {
		if c := cmp.Compare(b.Cards[i].Rank(), other.Cards[i].Rank()); c != 0 {
			return c
		}
	}
	return 0
}

// EvaluateBest finds the strongest five-card hand that can be made from the
// private and shared cards together. The pool needs at least five distinct
// cards; C(n,5) subsets are examined.
func EvaluateBest(private, shared []Card) (BestHand, error) {
	pool := make([]Card, 0, len(private)+len(shared))
	pool = append(pool, private...)
	pool = append(pool, shared...)

	if len(pool) < 5 {
		return BestHand{}, fmt.Errorf("%w: got %d", ErrPoolTooSmall, len(pool))
	}
	if err := validateCards(pool); err != nil {
		return BestHand{}, err
	}

	var (
		best  BestHand
		found bool
		hand  [5]Card
	)
	combos := NewCombinations(len(pool), 5)
	for combos.Next() {
		for i, idx := range combos.Indices() {
			hand[i] = pool[idx]
		}
		candidate := newBestHand(hand)
		if !found || candidate.Compare(best) > 0 {
			best = candidate
			found = true
		}
	}

	return best, nil
}

func newBestHand(hand [5]Card) BestHand {
	tier := classify(hand)
	SortDescending(hand[:])
	return BestHand{Tier: tier, Cards: hand}
}
