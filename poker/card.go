package poker

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
)

// Suit represents a card suit. The numeric order is only used to give cards
// a stable total order; suits carry no strength in hand comparisons.
type Suit uint8

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// Suits lists every suit in ascending order.
var Suits = [4]Suit{Clubs, Diamonds, Hearts, Spades}

// String returns the suit symbol (e.g. "♠")
func (s Suit) String() string {
	switch s {
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	case Hearts:
		return "♥"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// Name returns the plural suit name used in hand labels (e.g. "Hearts").
func (s Suit) Name() string {
	switch s {
	case Clubs:
		return "Clubs"
	case Diamonds:
		return "Diamonds"
	case Hearts:
		return "Hearts"
	case Spades:
		return "Spades"
	default:
		return "Unknown"
	}
}

// Valid reports whether s is one of the four suits.
func (s Suit) Valid() bool {
	return s <= Spades
}

// Rank represents a card rank. The numeric value is the rank's strength,
// Two=2 through Ace=14.
type Rank uint8

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// Ranks lists every rank from Two to Ace.
var Ranks = [13]Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

// String returns the rank symbol (e.g. "10", "J", "A")
func (r Rank) String() string {
	switch r {
	case Ten:
		return "10"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		if r >= Two && r <= Nine {
			return string(rune('0' + r))
		}
		return "?"
	}
}

var rankNames = [...]string{
	Two: "Two", Three: "Three", Four: "Four", Five: "Five", Six: "Six",
	Seven: "Seven", Eight: "Eight", Nine: "Nine", Ten: "Ten", Jack: "Jack",
	Queen: "Queen", King: "King", Ace: "Ace",
}

// Name returns the spelled-out rank (e.g. "Queen").
func (r Rank) Name() string {
	if !r.Valid() {
		return "Unknown"
	}
	return rankNames[r]
}

// Valid reports whether r is between Two and Ace.
func (r Rank) Valid() bool {
	return r >= Two && r <= Ace
}

// Card is an immutable playing card. The zero value is not a valid card.
type Card struct {
	rank Rank
	suit Suit
}

// NewCard creates a card from a rank and suit.
func NewCard(rank Rank, suit Suit) Card {
	return Card{rank: rank, suit: suit}
}

// Rank returns the card's rank.
func (c Card) Rank() Rank { return c.rank }

// Suit returns the card's suit.
func (c Card) Suit() Suit { return c.suit }

// Valid reports whether both rank and suit are in range.
func (c Card) Valid() bool {
	return c.rank.Valid() && c.suit.Valid()
}

// String returns the display form of the card (e.g. "A♠", "10♥")
func (c Card) String() string {
	return c.rank.String() + c.suit.String()
}

// Compare orders cards by rank, then suit. It returns -1, 0 or +1.
func (c Card) Compare(other Card) int {
	switch {
	case c.rank < other.rank:
		return -1
	case c.rank > other.rank:
		return 1
	case c.suit < other.suit:
		return -1
	case c.suit > other.suit:
		return 1
	default:
		return 0
	}
}

// index maps a valid card onto 0..51.
func (c Card) index() int {
	return int(c.suit)*13 + int(c.rank-Two)
}

// AllCards returns the 52 cards of a standard deck, suit by suit, Two to Ace.
func AllCards() []Card {
	cards := make([]Card, 0, 52)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			cards = append(cards, NewCard(rank, suit))
		}
	}
	return cards
}

// SortAscending sorts cards in place by the card order.
func SortAscending(cards []Card) {
	slices.SortFunc(cards, Card.Compare)
}

// SortDescending sorts cards in place, highest card first.
func SortDescending(cards []Card) {
	slices.SortFunc(cards, func(a, b Card) int { return b.Compare(a) })
}

// FormatCards joins the display form of each card with a separator.
func FormatCards(cards []Card, sep string) string {
	parts := make([]string, len(cards))
	for i, card := range cards {
		parts[i] = card.String()
	}
	return strings.Join(parts, sep)
}

// ParseCard parses a single card such as "As", "Th", "10h" or "Q♦".
// Ranks and ASCII suits are case-insensitive.
func ParseCard(s string) (Card, error) {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) < 2 || len(runes) > 3 {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}

	rank, err := parseRank(string(runes[:len(runes)-1]))
	if err != nil {
		return Card{}, fmt.Errorf("%w: %q: %v", ErrInvalidCard, s, err)
	}

	suit, err := parseSuit(runes[len(runes)-1])
	if err != nil {
		return Card{}, fmt.Errorf("%w: %q: %v", ErrInvalidCard, s, err)
	}

	return NewCard(rank, suit), nil
}

// ParseCards parses a list of cards. Cards may be separated by spaces or
// commas ("A♠ 10♥", "As,Kd") or written back to back ("AsKdQh").
func ParseCards(s string) ([]Card, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == ','
	})

	cards := []Card{}
	for _, field := range fields {
		runes := []rune(field)
		start := 0
		for i, r := range runes {
			if !isSuitRune(r) {
				continue
			}
			card, err := ParseCard(string(runes[start : i+1]))
			if err != nil {
				return nil, err
			}
			cards = append(cards, card)
			start = i + 1
		}
		if start != len(runes) {
			return nil, fmt.Errorf("%w: incomplete card %q", ErrInvalidCard, string(runes[start:]))
		}
	}

	return cards, nil
}

// MustParseCards parses cards and panics on error (for tests and fixtures)
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse cards %q: %v", s, err))
	}
	return cards
}

func parseRank(s string) (Rank, error) {
	switch strings.ToUpper(s) {
	case "2":
		return Two, nil
	case "3":
		return Three, nil
	case "4":
		return Four, nil
	case "5":
		return Five, nil
	case "6":
		return Six, nil
	case "7":
		return Seven, nil
	case "8":
		return Eight, nil
	case "9":
		return Nine, nil
	case "T", "10":
		return Ten, nil
	case "J":
		return Jack, nil
	case "Q":
		return Queen, nil
	case "K":
		return King, nil
	case "A":
		return Ace, nil
	default:
		return 0, fmt.Errorf("unknown rank %q", s)
	}
}

func parseSuit(r rune) (Suit, error) {
	switch r {
	case 'c', 'C', '♣':
		return Clubs, nil
	case 'd', 'D', '♦':
		return Diamonds, nil
	case 'h', 'H', '♥':
		return Hearts, nil
	case 's', 'S', '♠':
		return Spades, nil
	default:
		return 0, fmt.Errorf("unknown suit %q", r)
	}
}

func isSuitRune(r rune) bool {
	_, err := parseSuit(r)
	return err == nil
}
