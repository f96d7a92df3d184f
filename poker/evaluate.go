package poker

import "fmt"

var (
	wheelRanks    = [5]Rank{Two, Three, Four, Five, Ace}
	broadwayRanks = [5]Rank{Ten, Jack, Queen, King, Ace}
)

// Evaluate classifies exactly five cards. It returns ErrInvalidHand if a card
// is out of range or appears twice; the result does not depend on card order.
func Evaluate(cards [5]Card) (Tier, error) {
	if err := validateCards(cards[:]); err != nil {
		return nil, err
	}
	return classify(cards), nil
}

// MustEvaluate is like Evaluate but panics on invalid input (for tests and fixtures)
func MustEvaluate(cards [5]Card) Tier {
	tier, err := Evaluate(cards)
	if err != nil {
		panic(err)
	}
	return tier
}

// classify assumes five distinct, valid cards. The checks run in a fixed
// order: each later check relies on the earlier ones having failed.
func classify(hand [5]Card) Tier {
	var rankCounts [Ace + 1]uint8
	var suitCounts [len(Suits)]uint8
	for _, card := range hand {
		rankCounts[card.rank]++
		suitCounts[card.suit]++
	}

	var (
		pairs    []Rank
		trips    Rank
		quads    Rank
		distinct []Rank // ascending
	)
	for _, rank := range Ranks {
		count := rankCounts[rank]
		if count == 0 {
			continue
		}
		distinct = append(distinct, rank)
		switch count {
		case 2:
			pairs = append(pairs, rank)
		case 3:
			trips = rank
		case 4:
			quads = rank
		}
	}
	suit := hand[0].suit
	suited := suitCounts[suit] == 5

	switch {
	case len(pairs) == 1 && trips != 0:
		return FullHouse{Trips: trips, Pair: pairs[0]}
	case len(pairs) == 1:
		return OnePair{Rank: pairs[0]}
	case len(pairs) == 2:
		return TwoPair{Low: pairs[0], High: pairs[1]}
	case trips != 0:
		return ThreeOfAKind{Rank: trips}
	case quads != 0:
		return FourOfAKind{Rank: quads}
	}

	// Only five distinct ranks remain from here on.
	var ranks [5]Rank
	copy(ranks[:], distinct)
	isRun := ranks[4]-ranks[0] == 4

	if suited {
		switch {
		case ranks == wheelRanks:
			// Ace first rather than in ascending rank order, so the last
			// card is the Five, matching the plain wheel Straight.
			return StraightFlush{Cards: suitedRun(wheelOrder(ranks), suit)}
		case ranks == broadwayRanks:
			return RoyalFlush{Cards: suitedRun(ranks, suit)}
		case isRun:
			return StraightFlush{Cards: suitedRun(ranks, suit)}
		}
	}

	switch {
	case ranks == wheelRanks:
		return Straight{Ranks: wheelOrder(ranks)}
	case isRun:
		return Straight{Ranks: ranks}
	case suited:
		return Flush{Suit: suit}
	default:
		return HighCard{Rank: ranks[4]}
	}
}

// wheelOrder moves the Ace of A-2-3-4-5 to the front so Five is the top card.
func wheelOrder(ranks [5]Rank) [5]Rank {
	return [5]Rank{ranks[4], ranks[0], ranks[1], ranks[2], ranks[3]}
}

func suitedRun(ranks [5]Rank, suit Suit) [5]Card {
	var cards [5]Card
	for i, rank := range ranks {
		cards[i] = NewCard(rank, suit)
	}
	return cards
}

// validateCards reports ErrInvalidHand for out-of-range or repeated cards.
func validateCards(cards []Card) error {
	var seen [52]bool
	for _, card := range cards {
		if !card.Valid() {
			return fmt.Errorf("%w: card %v out of range", ErrInvalidHand, card)
		}
		if seen[card.index()] {
			return fmt.Errorf("%w: duplicate card %s", ErrInvalidHand, card)
		}
		seen[card.index()] = true
	}
	return nil
}
