package game

import (
	"errors"
	"fmt"

	"github.com/lox/showdown/poker"
)

// ErrInsufficientChips is returned when a player cannot cover a bet.
var ErrInsufficientChips = errors.New("insufficient chips")

// Player is a seat at the table with a chip stack and the cards dealt to it
// for the current hand.
type Player struct {
	Name  string
	Chips int
	Hand  []poker.Card

	Playing    bool // Still contesting the current hand
	SmallBlind bool
	BigBlind   bool
}

// NewPlayer creates a player with a starting stack.
func NewPlayer(name string, chips int) *Player {
	return &Player{
		Name:    name,
		Chips:   chips,
		Hand:    make([]poker.Card, 0, 2),
		Playing: true,
	}
}

// ReceiveCard adds a card to the player's hand.
func (p *Player) ReceiveCard(card poker.Card) {
	p.Hand = append(p.Hand, card)
}

// Bet debits amount from the stack. Nothing is debited and false is returned
// when the player cannot afford it.
func (p *Player) Bet(amount int) bool {
	if amount < 0 || amount > p.Chips {
		return false
	}
	p.Chips -= amount
	return true
}

// Fold takes the player out of the current hand.
func (p *Player) Fold() {
	p.Playing = false
}

// PostSmallBlind marks the player as small blind and debits the blind.
func (p *Player) PostSmallBlind(amount int) bool {
	p.SmallBlind = true
	return p.Bet(amount)
}

// PostBigBlind marks the player as big blind and debits the blind.
func (p *Player) PostBigBlind(amount int) bool {
	p.BigBlind = true
	return p.Bet(amount)
}

// ClearHand discards the player's cards.
func (p *Player) ClearHand() {
	p.Hand = p.Hand[:0]
}

// ResetForHand prepares the player for a new hand. Busted players sit out.
func (p *Player) ResetForHand() {
	p.ClearHand()
	p.SmallBlind = false
	p.BigBlind = false
	p.Playing = !p.IsBusted()
}

// HandRanks returns the ranks of the player's cards in the order dealt.
func (p *Player) HandRanks() []poker.Rank {
	ranks := make([]poker.Rank, len(p.Hand))
	for i, card := range p.Hand {
		ranks[i] = card.Rank()
	}
	return ranks
}

// HandSuits returns the suits of the player's cards in the order dealt.
func (p *Player) HandSuits() []poker.Suit {
	suits := make([]poker.Suit, len(p.Hand))
	for i, card := range p.Hand {
		suits[i] = card.Suit()
	}
	return suits
}

// IsBusted reports whether the player has no chips left.
func (p *Player) IsBusted() bool {
	return p.Chips == 0
}

// Act applies an action to the player and returns the chips committed.
func (p *Player) Act(action Action) (int, error) {
	switch action.Kind {
	case Fold:
		p.Fold()
		return 0, nil
	case Check:
		return 0, nil
	case Call, Raise:
		if !p.Bet(action.Amount) {
			return 0, fmt.Errorf("%s %s with %d chips: %w", p.Name, action, p.Chips, ErrInsufficientChips)
		}
		return action.Amount, nil
	default:
		return 0, fmt.Errorf("unknown action %d", action.Kind)
	}
}

func (p *Player) String() string {
	return fmt.Sprintf("%s (Chips: %d)", p.Name, p.Chips)
}
