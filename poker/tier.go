package poker

import (
	"cmp"
	"fmt"
	"strings"
)

// Category enumerates the ten hand categories ordered from weakest to strongest.
type Category uint8

const (
	CategoryHighCard Category = iota
	CategoryOnePair
	CategoryTwoPair
	CategoryThreeOfAKind
	CategoryStraight
	CategoryFlush
	CategoryFullHouse
	CategoryFourOfAKind
	CategoryStraightFlush
	CategoryRoyalFlush
)

// Categories lists every category from weakest to strongest.
var Categories = [10]Category{
	CategoryHighCard, CategoryOnePair, CategoryTwoPair, CategoryThreeOfAKind,
	CategoryStraight, CategoryFlush, CategoryFullHouse, CategoryFourOfAKind,
	CategoryStraightFlush, CategoryRoyalFlush,
}

// String returns a human-readable category name.
func (c Category) String() string {
	switch c {
	case CategoryHighCard:
		return "High Card"
	case CategoryOnePair:
		return "One Pair"
	case CategoryTwoPair:
		return "Two Pair"
	case CategoryThreeOfAKind:
		return "Three of a Kind"
	case CategoryStraight:
		return "Straight"
	case CategoryFlush:
		return "Flush"
	case CategoryFullHouse:
		return "Full House"
	case CategoryFourOfAKind:
		return "Four of a Kind"
	case CategoryStraightFlush:
		return "Straight Flush"
	case CategoryRoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// Tier is the classification of a five-card hand: a category plus the
// payload needed to order hands inside that category. The set of
// implementations is closed; they are the ten variant types below.
type Tier interface {
	Category() Category
	String() string

	// compareSame orders two tiers of the same category by payload.
	compareSame(other Tier) int
}

// CompareTiers orders two tiers, returning -1, 0 or +1. Categories are
// compared first; the payload only breaks ties inside a category.
func CompareTiers(a, b Tier) int {
	if c := cmp.Compare(a.Category(), b.Category()); c != 0 {
		return c
	}
	return a.compareSame(b)
}

// HighCard is a hand with no pair, straight or flush.
type HighCard struct {
	Rank Rank
}

func (t HighCard) Category() Category { return CategoryHighCard }
func (t HighCard) String() string     { return labelRanks(t, t.Rank) }
func (t HighCard) compareSame(o Tier) int {
	return cmp.Compare(t.Rank, o.(HighCard).Rank)
}

// OnePair is a hand with exactly one pair.
type OnePair struct {
	Rank Rank
}

func (t OnePair) Category() Category { return CategoryOnePair }
func (t OnePair) String() string     { return labelRanks(t, t.Rank) }
func (t OnePair) compareSame(o Tier) int {
	return cmp.Compare(t.Rank, o.(OnePair).Rank)
}

// TwoPair holds the ranks of both pairs, Low < High.
type TwoPair struct {
	Low  Rank
	High Rank
}

func (t TwoPair) Category() Category { return CategoryTwoPair }
func (t TwoPair) String() string     { return labelRanks(t, t.High, t.Low) }
func (t TwoPair) compareSame(o Tier) int {
	other := o.(TwoPair)
	if c := cmp.Compare(t.High, other.High); c != 0 {
		return c
	}
	return cmp.Compare(t.Low, other.Low)
}

// ThreeOfAKind is a hand with three cards of one rank and no pair.
type ThreeOfAKind struct {
	Rank Rank
}

func (t ThreeOfAKind) Category() Category { return CategoryThreeOfAKind }
func (t ThreeOfAKind) String() string     { return labelRanks(t, t.Rank) }
func (t ThreeOfAKind) compareSame(o Tier) int {
	return cmp.Compare(t.Rank, o.(ThreeOfAKind).Rank)
}

// Straight holds five consecutive ranks ordered low to high. The wheel is
// stored as A,2,3,4,5 so the last element is always the top card.
type Straight struct {
	Ranks [5]Rank
}

func (t Straight) Category() Category { return CategoryStraight }

// Top returns the highest card of the straight (Five for the wheel).
func (t Straight) Top() Rank { return t.Ranks[4] }

func (t Straight) String() string {
	symbols := make([]string, len(t.Ranks))
	for i, r := range t.Ranks {
		symbols[i] = r.String()
	}
	return fmt.Sprintf("%s(%s)", t.Category(), strings.Join(symbols, ","))
}

func (t Straight) compareSame(o Tier) int {
	other := o.(Straight)
	for i := len(t.Ranks) - 1; i >= 0; i-- {
		if c := cmp.Compare(t.Ranks[i], other.Ranks[i]); c != 0 {
			return c
		}
	}
	return 0
}

// Flush is five cards of one suit that do not form a straight.
type Flush struct {
	Suit Suit
}

func (t Flush) Category() Category { return CategoryFlush }
func (t Flush) String() string     { return fmt.Sprintf("%s(%s)", t.Category(), t.Suit.Name()) }

// compareSame treats every flush as equal; suits carry no strength and the
// kickers are compared by the caller.
func (t Flush) compareSame(Tier) int { return 0 }

// FullHouse is three cards of one rank and two of another.
type FullHouse struct {
	Trips Rank
	Pair  Rank
}

func (t FullHouse) Category() Category { return CategoryFullHouse }
func (t FullHouse) String() string     { return labelRanks(t, t.Trips, t.Pair) }
func (t FullHouse) compareSame(o Tier) int {
	other := o.(FullHouse)
	if c := cmp.Compare(t.Trips, other.Trips); c != 0 {
		return c
	}
	return cmp.Compare(t.Pair, other.Pair)
}

// FourOfAKind is four cards of one rank.
type FourOfAKind struct {
	Rank Rank
}

func (t FourOfAKind) Category() Category { return CategoryFourOfAKind }
func (t FourOfAKind) String() string     { return labelRanks(t, t.Rank) }
func (t FourOfAKind) compareSame(o Tier) int {
	return cmp.Compare(t.Rank, o.(FourOfAKind).Rank)
}

// StraightFlush holds the five suited cards low to high, wheel Ace first.
type StraightFlush struct {
	Cards [5]Card
}

func (t StraightFlush) Category() Category { return CategoryStraightFlush }
func (t StraightFlush) String() string     { return labelCards(t, t.Cards) }

// Top returns the highest card of the straight flush.
func (t StraightFlush) Top() Rank { return t.Cards[4].Rank() }

func (t StraightFlush) compareSame(o Tier) int {
	return compareRunRanks(t.Cards, o.(StraightFlush).Cards)
}

// RoyalFlush holds Ten through Ace of one suit.
type RoyalFlush struct {
	Cards [5]Card
}

func (t RoyalFlush) Category() Category { return CategoryRoyalFlush }
func (t RoyalFlush) String() string     { return labelCards(t, t.Cards) }
func (t RoyalFlush) compareSame(o Tier) int {
	return compareRunRanks(t.Cards, o.(RoyalFlush).Cards)
}

// compareRunRanks compares two runs from the top card down, ignoring suits.
func compareRunRanks(a, b [5]Card) int {
	for i := len(a) - 1; i >= 0; i-- {
		if c := cmp.Compare(a[i].Rank(), b[i].Rank()); c != 0 {
			return c
		}
	}
	return 0
}

func labelRanks(t Tier, ranks ...Rank) string {
	names := make([]string, len(ranks))
	for i, r := range ranks {
		names[i] = r.Name()
	}
	return fmt.Sprintf("%s(%s)", t.Category(), strings.Join(names, ", "))
}

func labelCards(t Tier, cards [5]Card) string {
	return fmt.Sprintf("%s(%s)", t.Category(), FormatCards(cards[:], ","))
}
