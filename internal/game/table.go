package game

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lox/showdown/poker"
)

const (
	MinPlayers = 2
	MaxPlayers = 10

	DefaultSmallBlind = 25
	DefaultBigBlind   = 50
)

var (
	ErrTableSize        = errors.New("invalid number of players")
	ErrNotEnoughPlayers = errors.New("fewer than two players have chips")
	ErrInvalidAction    = errors.New("invalid action")
)

// TableOption configures a Table during creation.
type TableOption func(*tableConfig)

type tableConfig struct {
	smallBlind   int
	bigBlind     int
	agents       map[string]Agent
	defaultAgent Agent
}

// WithBlinds sets the blind sizes.
func WithBlinds(small, big int) TableOption {
	return func(c *tableConfig) {
		c.smallBlind = small
		c.bigBlind = big
	}
}

// WithAgent makes agent act for the named player.
func WithAgent(player string, agent Agent) TableOption {
	return func(c *tableConfig) {
		c.agents[player] = agent
	}
}

// WithDefaultAgent sets the agent used for players without their own.
// Defaults to CallingStation.
func WithDefaultAgent(agent Agent) TableOption {
	return func(c *tableConfig) {
		c.defaultAgent = agent
	}
}

// Table runs hands for a fixed set of players. It is not safe for
// concurrent use.
type Table struct {
	players      []*Player
	button       int // Seat index, -1 before the first hand
	smallBlind   int
	bigBlind     int
	agents       map[string]Agent
	defaultAgent Agent
	rng          *rand.Rand
	logger       *log.Logger
	handNumber   int
}

// NewTable seats players in the given order. The rng drives every shuffle,
// so a seeded rng replays the same sequence of hands.
func NewTable(players []*Player, rng *rand.Rand, logger *log.Logger, opts ...TableOption) (*Table, error) {
	if len(players) < MinPlayers || len(players) > MaxPlayers {
		return nil, fmt.Errorf("%w: got %d, need %d-%d", ErrTableSize, len(players), MinPlayers, MaxPlayers)
	}
	if rng == nil {
		return nil, errors.New("rng is required")
	}
	if logger == nil {
		logger = log.Default()
	}

	seen := make(map[string]bool, len(players))
	for _, p := range players {
		if p == nil || p.Name == "" {
			return nil, errors.New("every player needs a name")
		}
		if seen[p.Name] {
			return nil, fmt.Errorf("duplicate player name %q", p.Name)
		}
		seen[p.Name] = true
	}

	cfg := &tableConfig{
		smallBlind:   DefaultSmallBlind,
		bigBlind:     DefaultBigBlind,
		agents:       make(map[string]Agent),
		defaultAgent: CallingStation,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.smallBlind <= 0 || cfg.bigBlind < cfg.smallBlind {
		return nil, fmt.Errorf("invalid blinds %d/%d", cfg.smallBlind, cfg.bigBlind)
	}

	return &Table{
		players:      players,
		button:       -1,
		smallBlind:   cfg.smallBlind,
		bigBlind:     cfg.bigBlind,
		agents:       cfg.agents,
		defaultAgent: cfg.defaultAgent,
		rng:          rng,
		logger:       logger.WithPrefix("table"),
	}, nil
}

// Players returns the seated players in seat order.
func (t *Table) Players() []*Player {
	return t.players
}

// HandNumber returns the number of hands started so far.
func (t *Table) HandNumber() int {
	return t.handNumber
}

// Button returns the player holding the dealer button, or nil before the
// first hand.
func (t *Table) Button() *Player {
	if t.button < 0 {
		return nil
	}
	return t.players[t.button]
}

// PlayersWithChips returns how many players can still be dealt in.
func (t *Table) PlayersWithChips() int {
	count := 0
	for _, p := range t.players {
		if !p.IsBusted() {
			count++
		}
	}
	return count
}

// TotalChips returns the chips held by all players. Between hands it never
// changes.
func (t *Table) TotalChips() int {
	total := 0
	for _, p := range t.players {
		total += p.Chips
	}
	return total
}

// PlayerHand is one player's cards and, at showdown, their best hand.
type PlayerHand struct {
	Player string
	Hole   []poker.Card
	Best   *poker.BestHand // Nil unless the player reached showdown
	Folded bool
	Net    int // Chips won minus chips put in
}

// HandResult describes a finished hand.
type HandResult struct {
	Number     int
	Button     string
	SmallBlind string
	BigBlind   string
	Board      []poker.Card
	Hands      []PlayerHand
	Actions    []PlayerAction
	Winners    []string
	Pot        int
	Showdown   bool // More than one player was left at the end
	Tie        bool // The best hands tied and shared the pot
	Kicker     bool // The winner shared a tier with the runner-up
}

// Hand returns the entry for the named player.
func (r *HandResult) Hand(player string) (PlayerHand, bool) {
	for _, h := range r.Hands {
		if h.Player == player {
			return h, true
		}
	}
	return PlayerHand{}, false
}

// hand is the state of a single hand in progress.
type hand struct {
	table      *Table
	logger     *log.Logger
	round      *Round
	pot        *Pot
	deck       *poker.Deck
	board      []poker.Card
	bets       []int // Chips put in on the current street, by seat
	currentBet int
	minRaise   int
	result     *HandResult
}

// PlayHand plays one complete hand: the button moves, blinds are posted,
// cards are dealt street by street with a betting round on each, and the pot
// is settled.
func (t *Table) PlayHand() (*HandResult, error) {
	for _, p := range t.players {
		p.ResetForHand()
	}
	if t.PlayersWithChips() < MinPlayers {
		return nil, ErrNotEnoughPlayers
	}

	t.handNumber++
	t.button = t.nextSeat(t.button)
	sb := t.nextSeat(t.button)
	if t.PlayersWithChips() == 2 {
		sb = t.button
	}
	bb := t.nextSeat(sb)

	h := &hand{
		table:  t,
		logger: t.logger.With("hand", t.handNumber),
		round:  NewRound(),
		pot:    NewPot(),
		deck:   poker.NewDeck(t.rng),
		board:  make([]poker.Card, 0, 5),
		bets:   make([]int, len(t.players)),
		result: &HandResult{
			Number:     t.handNumber,
			Button:     t.players[t.button].Name,
			SmallBlind: t.players[sb].Name,
			BigBlind:   t.players[bb].Name,
		},
	}
	h.deck.Shuffle()

	if err := h.dealHoleCards(sb); err != nil {
		return nil, err
	}

	h.post(sb, t.smallBlind, (*Player).PostSmallBlind)
	h.post(bb, t.bigBlind, (*Player).PostBigBlind)
	h.currentBet = max(h.bets[sb], h.bets[bb])
	h.minRaise = t.bigBlind
	h.logger.Debug("Blinds posted", "small", t.players[sb].Name, "big", t.players[bb].Name, "pot", h.pot.Total())

	first := t.nextSeat(bb)
	for !h.round.IsOver() {
		h.bettingRound(first)
		if len(h.contenders()) < 2 {
			h.round.End()
			break
		}

		street := h.round.Advance()
		if n := street.boardCards(); n > 0 {
			cards, err := h.deck.Deal(n)
			if err != nil {
				return nil, fmt.Errorf("deal %s: %w", street, err)
			}
			h.board = append(h.board, cards...)
			h.logger.Debug("Dealt", "street", street, "cards", poker.FormatCards(cards, " "))
		}

		clear(h.bets)
		h.currentBet = 0
		h.minRaise = t.bigBlind
		first = t.nextSeat(t.button)
	}

	if err := h.settle(); err != nil {
		return nil, err
	}

	h.logger.Info("Hand complete",
		"winners", strings.Join(h.result.Winners, ","),
		"pot", h.result.Pot,
		"showdown", h.result.Showdown,
		"tie", h.result.Tie)
	return h.result, nil
}

// nextSeat returns the next seat after from whose player is in the hand.
func (t *Table) nextSeat(from int) int {
	n := len(t.players)
	for i := 1; i <= n; i++ {
		seat := (from + i + n) % n
		if t.players[seat].Playing {
			return seat
		}
	}
	return from
}

func (t *Table) agentFor(p *Player) Agent {
	if agent, ok := t.agents[p.Name]; ok {
		return agent
	}
	return t.defaultAgent
}

// dealHoleCards gives two cards to every player in the hand, starting with
// the small blind.
func (h *hand) dealHoleCards(start int) error {
	var seats []int
	for seat := start; ; {
		seats = append(seats, seat)
		seat = h.table.nextSeat(seat)
		if seat == start {
			break
		}
	}

	holes, err := h.deck.DealToPlayers(len(seats), 2)
	if err != nil {
		return fmt.Errorf("deal hole cards: %w", err)
	}
	for i, seat := range seats {
		p := h.table.players[seat]
		for _, card := range holes[i] {
			p.ReceiveCard(card)
		}
	}
	return nil
}

// post takes a blind, or the player's whole stack if it is shorter.
func (h *hand) post(seat, blind int, postFn func(*Player, int) bool) {
	p := h.table.players[seat]
	amount := min(blind, p.Chips)
	postFn(p, amount)
	h.pot.Add(p.Name, amount)
	h.bets[seat] += amount
}

// contenders returns the seats of players who have not folded.
func (h *hand) contenders() []int {
	var seats []int
	for seat, p := range h.table.players {
		if p.Playing {
			seats = append(seats, seat)
		}
	}
	return seats
}

// bettingRound asks players for actions, starting at first, until every
// player who can still bet has acted and matched the current bet.
func (h *hand) bettingRound(first int) {
	players := h.table.players
	acted := make([]bool, len(players))

	settled := func() bool {
		for seat, p := range players {
			if p.Playing && p.Chips > 0 && (!acted[seat] || h.bets[seat] != h.currentBet) {
				return false
			}
		}
		return true
	}

	// Every action either closes a seat or raises, and raises are bounded by
	// the chips on the table, so the loop terminates.
	for seat := first; len(h.contenders()) > 1 && !settled(); seat = (seat + 1) % len(players) {
		p := players[seat]
		if !p.Playing || p.Chips == 0 || (acted[seat] && h.bets[seat] == h.currentBet) {
			continue
		}

		previous := h.currentBet
		h.act(seat)
		acted[seat] = true

		if h.currentBet > previous {
			for other := range acted {
				if other != seat {
					acted[other] = false
				}
			}
		}
	}
}

func (h *hand) act(seat int) {
	p := h.table.players[seat]
	toCall := h.currentBet - h.bets[seat]

	decision := Decision{
		Player:   p,
		Street:   h.round.Street,
		Board:    slices.Clone(h.board),
		ToCall:   toCall,
		Pot:      h.pot.Total(),
		MinRaise: h.minRaise,
	}
	action := h.table.agentFor(p).Act(decision)
	if err := h.validate(p, toCall, action); err != nil {
		fallback := FoldAction()
		if toCall == 0 {
			fallback = CheckAction()
		}
		h.logger.Warn("Rejected action", "player", p.Name, "action", action, "error", err, "fallback", fallback)
		action = fallback
	}

	committed, err := p.Act(action)
	if err != nil {
		h.logger.Error("Failed to apply action", "player", p.Name, "action", action, "error", err)
		p.Fold()
		action = FoldAction()
	}

	h.pot.Add(p.Name, committed)
	h.bets[seat] += committed
	if raise := h.bets[seat] - h.currentBet; raise > 0 {
		h.minRaise = max(h.minRaise, raise)
		h.currentBet = h.bets[seat]
	}

	h.result.Actions = append(h.result.Actions, PlayerAction{
		Player: p.Name,
		Street: h.round.Street,
		Action: action,
	})
	h.logger.Debug("Player action", "player", p.Name, "street", h.round.Street, "action", action, "pot", h.pot.Total())
}

// validate checks an action against the amount owed and the player's stack.
// A short stack may call or raise all-in for less than the full amount.
func (h *hand) validate(p *Player, toCall int, action Action) error {
	switch action.Kind {
	case Fold:
		return nil
	case Check:
		if toCall > 0 {
			return fmt.Errorf("%w: check facing %d", ErrInvalidAction, toCall)
		}
		return nil
	case Call:
		if toCall == 0 {
			return fmt.Errorf("%w: nothing to call", ErrInvalidAction)
		}
		if want := min(toCall, p.Chips); action.Amount != want {
			return fmt.Errorf("%w: call %d, owe %d", ErrInvalidAction, action.Amount, want)
		}
		return nil
	case Raise:
		if action.Amount > p.Chips {
			return fmt.Errorf("%w: raise %d with %d chips", ErrInvalidAction, action.Amount, p.Chips)
		}
		if action.Amount <= toCall {
			return fmt.Errorf("%w: raise %d does not exceed %d to call", ErrInvalidAction, action.Amount, toCall)
		}
		if action.Amount-toCall < h.minRaise && action.Amount != p.Chips {
			return fmt.Errorf("%w: raise by %d below minimum %d", ErrInvalidAction, action.Amount-toCall, h.minRaise)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidAction, action.Kind)
	}
}

// settle awards or refunds the pot and fills in the result.
func (h *hand) settle() error {
	players := h.table.players
	contenders := h.contenders()

	r := h.result
	r.Board = slices.Clone(h.board)
	r.Pot = h.pot.Total()
	r.Showdown = len(contenders) > 1

	best := make(map[int]poker.BestHand, len(contenders))
	if r.Showdown {
		for _, seat := range contenders {
			p := players[seat]
			b, err := poker.EvaluateBest(p.Hand, h.board)
			if err != nil {
				return fmt.Errorf("evaluate %s: %w", p.Name, err)
			}
			best[seat] = b
		}
	}

	for seat, p := range players {
		if len(p.Hand) == 0 {
			continue
		}
		ph := PlayerHand{Player: p.Name, Hole: slices.Clone(p.Hand), Folded: !p.Playing}
		if b, ok := best[seat]; ok {
			ph.Best = &b
		}
		r.Hands = append(r.Hands, ph)
	}

	// Award and Split empty the pot, so contributions are read first.
	put := make(map[string]int, len(r.Hands))
	for _, ph := range r.Hands {
		put[ph.Player] = h.pot.Contributed(ph.Player)
	}
	payouts := make(map[string]int, len(players))
	defer func() {
		for i := range r.Hands {
			ph := &r.Hands[i]
			ph.Net = payouts[ph.Player] - put[ph.Player]
		}
	}()

	if !r.Showdown {
		winner := players[contenders[0]]
		payouts[winner.Name] = h.pot.Total()
		winner.Chips += h.pot.Award()
		r.Winners = []string{winner.Name}
		return nil
	}

	top := []int{contenders[0]}
	for _, seat := range contenders[1:] {
		switch c := best[seat].CompareStrength(best[top[0]]); {
		case c > 0:
			top = []int{seat}
		case c == 0:
			top = append(top, seat)
		}
	}

	if len(top) > 1 {
		r.Tie = true
		for _, seat := range top {
			r.Winners = append(r.Winners, players[seat].Name)
		}
		shares := h.pot.Split(r.Winners)
		for _, seat := range top {
			p := players[seat]
			payouts[p.Name] = shares[p.Name]
			p.Chips += shares[p.Name]
		}
		return nil
	}

	winner := top[0]
	var runnerUp *poker.BestHand
	for _, seat := range contenders {
		if seat == winner {
			continue
		}
		if b := best[seat]; runnerUp == nil || b.CompareStrength(*runnerUp) > 0 {
			runnerUp = &b
		}
	}
	r.Kicker = runnerUp != nil && poker.CompareTiers(best[winner].Tier, runnerUp.Tier) == 0

	payouts[players[winner].Name] = h.pot.Total()
	players[winner].Chips += h.pot.Award()
	r.Winners = []string{players[winner].Name}
	return nil
}
