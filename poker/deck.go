package poker

import (
	"fmt"
	"math/rand/v2"
)

// Deck is an ordered collection of cards. Cards are drawn from the end of the
// slice. A Deck must only be used by one goroutine at a time.
type Deck struct {
	cards []Card
	rng   *rand.Rand // Random source for deterministic shuffling
}

// NewDeck creates a full, unshuffled 52-card deck. A nil rng falls back to
// the global math/rand/v2 source when shuffling.
func NewDeck(rng *rand.Rand) *Deck {
	return &Deck{
		cards: AllCards(),
		rng:   rng,
	}
}

// Shuffle applies a Fisher-Yates permutation to the remaining cards.
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		var j int
		if d.rng != nil {
			j = d.rng.IntN(i + 1)
		} else {
			j = rand.IntN(i + 1)
		}
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns one card. ok is false when the deck is empty.
func (d *Deck) Draw() (card Card, ok bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	card = d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card, true
}

// Deal removes and returns count cards. If fewer than count cards remain it
// returns ErrInsufficientCards and leaves the deck unchanged.
func (d *Deck) Deal(count int) ([]Card, error) {
	if count < 0 || count > len(d.cards) {
		return nil, fmt.Errorf("deal %d of %d cards: %w", count, len(d.cards), ErrInsufficientCards)
	}
	split := len(d.cards) - count
	dealt := make([]Card, count)
	copy(dealt, d.cards[split:])
	d.cards = d.cards[:split]
	return dealt, nil
}

// DealToPlayers deals perPlayer cards to each of players seats. Nothing is
// removed unless every seat can be served.
func (d *Deck) DealToPlayers(players, perPlayer int) ([][]Card, error) {
	if players < 0 || perPlayer < 0 || players*perPlayer > len(d.cards) {
		return nil, fmt.Errorf("deal %d cards to %d players from %d: %w",
			perPlayer, players, len(d.cards), ErrInsufficientCards)
	}

	hands := make([][]Card, players)
	for i := range hands {
		hand, err := d.Deal(perPlayer)
		if err != nil {
			return nil, err
		}
		hands[i] = hand
	}
	return hands, nil
}

// Remove takes specific cards out of the deck, e.g. cards already known to be
// in play. It fails without modifying the deck if any card is missing.
func (d *Deck) Remove(cards ...Card) error {
	var remove [52]bool
	for _, card := range cards {
		if !card.Valid() {
			return fmt.Errorf("remove %v: %w", card, ErrInvalidCard)
		}
		if remove[card.index()] {
			return fmt.Errorf("remove %s twice: %w", card, ErrInvalidHand)
		}
		remove[card.index()] = true
	}

	found := 0
	for _, card := range d.cards {
		if remove[card.index()] {
			found++
		}
	}
	if found != len(cards) {
		return fmt.Errorf("remove %s: card not in deck", FormatCards(cards, " "))
	}

	kept := d.cards[:0]
	for _, card := range d.cards {
		if !remove[card.index()] {
			kept = append(kept, card)
		}
	}
	d.cards = kept
	return nil
}

// Remaining returns the number of cards left in the deck.
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// Cards returns a copy of the remaining cards in deck order.
func (d *Deck) Cards() []Card {
	return append([]Card(nil), d.cards...)
}

// Reset restores the deck to the full 52 cards in canonical order.
func (d *Deck) Reset() {
	d.cards = append(d.cards[:0], AllCards()...)
}
