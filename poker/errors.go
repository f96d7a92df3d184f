package poker

import "errors"

var (
	// ErrInsufficientCards is returned when a deal asks for more cards than remain.
	ErrInsufficientCards = errors.New("insufficient cards in deck")

	// ErrInvalidHand is returned when a hand or pool contains duplicate or
	// out-of-range cards.
	ErrInvalidHand = errors.New("invalid hand")

	// ErrPoolTooSmall is returned when a best-hand search gets fewer than five cards.
	ErrPoolTooSmall = errors.New("card pool smaller than five cards")

	// ErrInvalidCard is returned when card notation cannot be parsed.
	ErrInvalidCard = errors.New("invalid card")
)
