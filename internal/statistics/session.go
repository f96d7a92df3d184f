package statistics

import (
	"fmt"

	"github.com/lox/showdown/internal/game"
)

// Session collects Statistics for every player over a run of hands.
type Session struct {
	bigBlind int
	players  map[string]*Statistics
	order    []string
	hands    int
	netChips int // Sum of every player's net; zero when chips are conserved
}

// NewSession creates a session measuring results in units of bigBlind.
func NewSession(bigBlind int) *Session {
	return &Session{
		bigBlind: bigBlind,
		players:  make(map[string]*Statistics),
	}
}

// Record adds every dealt-in player's outcome from a finished hand.
func (s *Session) Record(r *game.HandResult) {
	s.hands++

	button := 0
	for i, h := range r.Hands {
		if h.Player == r.Button {
			button = i
			break
		}
	}

	for i, h := range r.Hands {
		stats := s.player(h.Player)
		result := HandResult{
			NetBB:          stats.toBB(h.Net),
			Position:       (i - button + len(r.Hands)) % len(r.Hands),
			WentToShowdown: h.Best != nil,
			FinalPotSize:   r.Pot,
		}
		if h.Best != nil {
			result.Category = h.Best.Tier.Category()
		}
		stats.Add(result)
		s.netChips += h.Net
	}
}

func (s *Session) player(name string) *Statistics {
	stats, ok := s.players[name]
	if !ok {
		stats = &Statistics{BigBlind: s.bigBlind}
		s.players[name] = stats
		s.order = append(s.order, name)
	}
	return stats
}

// Hands returns the number of hands recorded.
func (s *Session) Hands() int {
	return s.hands
}

// Players returns player names in the order they were first seen.
func (s *Session) Players() []string {
	return append([]string(nil), s.order...)
}

// Player returns the statistics for name, or nil if they never played.
func (s *Session) Player(name string) *Statistics {
	return s.players[name]
}

// Validate checks each player's ledger and that no chips were created or
// destroyed across the session.
func (s *Session) Validate() error {
	if s.netChips != 0 {
		return fmt.Errorf("session is not zero-sum: net %d chips", s.netChips)
	}
	for _, name := range s.order {
		if err := s.players[name].Validate(); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}
