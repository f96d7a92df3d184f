package game

// Street is a stage of a hand.
type Street int

const (
	PreFlop Street = iota
	Flop
	Turn
	River
	Showdown
)

func (s Street) String() string {
	switch s {
	case PreFlop:
		return "Pre-flop"
	case Flop:
		return "Flop"
	case Turn:
		return "Turn"
	case River:
		return "River"
	case Showdown:
		return "Showdown"
	default:
		return "Unknown"
	}
}

// boardCards is the number of community cards dealt when entering a street.
func (s Street) boardCards() int {
	switch s {
	case Flop:
		return 3
	case Turn, River:
		return 1
	default:
		return 0
	}
}

// Round tracks the street a hand is on and whether it has finished.
type Round struct {
	Street Street
	over   bool
}

// NewRound starts a round at the pre-flop.
func NewRound() *Round {
	return &Round{Street: PreFlop}
}

// Advance moves to the next street. Reaching the showdown ends the round.
func (r *Round) Advance() Street {
	if r.over {
		return r.Street
	}
	r.Street++
	if r.Street == Showdown {
		r.over = true
	}
	return r.Street
}

// End finishes the round early, e.g. when everyone else has folded.
func (r *Round) End() {
	r.over = true
}

// IsOver reports whether the round has finished.
func (r *Round) IsOver() bool {
	return r.over
}
