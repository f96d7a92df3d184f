package game

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/showdown/internal/randutil"
	"github.com/lox/showdown/poker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

// folder checks when it can and folds to any bet.
var folder = AgentFunc(func(d Decision) Action {
	if d.ToCall == 0 {
		return CheckAction()
	}
	return FoldAction()
})

// shover puts its whole stack in at the first chance.
var shover = AgentFunc(func(d Decision) Action {
	if d.Player.Chips > d.ToCall {
		return RaiseAction(d.Player.Chips)
	}
	if d.ToCall > 0 {
		return CallAction(d.Player.Chips)
	}
	return CheckAction()
})

func newPlayers(chips ...int) []*Player {
	names := []string{"Alice", "Bob", "Carol", "Dave", "Eve", "Frank", "Grace", "Heidi", "Ivan", "Judy", "Mallory"}
	players := make([]*Player, len(chips))
	for i, c := range chips {
		players[i] = NewPlayer(names[i], c)
	}
	return players
}

func TestNewTableValidation(t *testing.T) {
	t.Parallel()

	rng := randutil.New(1)

	_, err := NewTable(newPlayers(1000), rng, testLogger())
	require.ErrorIs(t, err, ErrTableSize)

	_, err = NewTable(newPlayers(1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1), rng, testLogger())
	require.ErrorIs(t, err, ErrTableSize)

	_, err = NewTable([]*Player{NewPlayer("Alice", 10), NewPlayer("Alice", 10)}, rng, testLogger())
	require.Error(t, err)

	_, err = NewTable(newPlayers(1000, 1000), rng, testLogger(), WithBlinds(50, 25))
	require.Error(t, err)

	_, err = NewTable(newPlayers(1000, 1000), nil, testLogger())
	require.Error(t, err)

	table, err := NewTable(newPlayers(1000, 1000, 1000, 1000, 1000, 1000, 1000, 1000, 1000, 1000), rng, testLogger())
	require.NoError(t, err)
	assert.Nil(t, table.Button())
	assert.Equal(t, 0, table.HandNumber())
}

func TestPlayHandEveryoneFolds(t *testing.T) {
	t.Parallel()

	players := newPlayers(1000, 1000, 1000)
	table, err := NewTable(players, randutil.New(3), testLogger(), WithDefaultAgent(folder))
	require.NoError(t, err)

	result, err := table.PlayHand()
	require.NoError(t, err)

	assert.Equal(t, 1, result.Number)
	assert.Equal(t, "Alice", result.Button)
	assert.Equal(t, "Bob", result.SmallBlind)
	assert.Equal(t, "Carol", result.BigBlind)
	assert.False(t, result.Showdown)
	assert.Empty(t, result.Board)
	assert.Equal(t, []string{"Carol"}, result.Winners)
	assert.Equal(t, 75, result.Pot)

	require.Len(t, result.Actions, 2)
	assert.Equal(t, PlayerAction{Player: "Alice", Street: PreFlop, Action: FoldAction()}, result.Actions[0])
	assert.Equal(t, PlayerAction{Player: "Bob", Street: PreFlop, Action: FoldAction()}, result.Actions[1])

	assert.Equal(t, 1000, players[0].Chips)
	assert.Equal(t, 975, players[1].Chips)
	assert.Equal(t, 1025, players[2].Chips)

	require.Len(t, result.Hands, 3)
	for _, h := range result.Hands {
		assert.Len(t, h.Hole, 2)
		assert.Nil(t, h.Best)
	}
	alice, ok := result.Hand("Alice")
	require.True(t, ok)
	assert.True(t, alice.Folded)

	nets := map[string]int{}
	for _, h := range result.Hands {
		nets[h.Player] = h.Net
	}
	assert.Equal(t, map[string]int{"Alice": 0, "Bob": -25, "Carol": 25}, nets)
}

func TestButtonRotates(t *testing.T) {
	t.Parallel()

	table, err := NewTable(newPlayers(1000, 1000, 1000), randutil.New(5), testLogger(), WithDefaultAgent(folder))
	require.NoError(t, err)

	var buttons, winners []string
	for range 4 {
		result, err := table.PlayHand()
		require.NoError(t, err)
		buttons = append(buttons, result.Button)
		winners = append(winners, result.Winners...)
	}

	assert.Equal(t, []string{"Alice", "Bob", "Carol", "Alice"}, buttons)
	assert.Equal(t, []string{"Carol", "Alice", "Bob", "Carol"}, winners)
	assert.Equal(t, 4, table.HandNumber())
	assert.Equal(t, 3000, table.TotalChips())
}

func TestHeadsUpButtonPostsSmallBlind(t *testing.T) {
	t.Parallel()

	players := newPlayers(1000, 1000)
	table, err := NewTable(players, randutil.New(9), testLogger(), WithDefaultAgent(folder))
	require.NoError(t, err)

	result, err := table.PlayHand()
	require.NoError(t, err)

	assert.Equal(t, "Alice", result.Button)
	assert.Equal(t, "Alice", result.SmallBlind)
	assert.Equal(t, "Bob", result.BigBlind)
	assert.Equal(t, []string{"Bob"}, result.Winners)
	assert.Equal(t, 975, players[0].Chips)
	assert.Equal(t, 1025, players[1].Chips)
}

func TestRejectedActionFallsBack(t *testing.T) {
	t.Parallel()

	alwaysCheck := AgentFunc(func(Decision) Action { return CheckAction() })
	players := newPlayers(1000, 1000)
	table, err := NewTable(players, randutil.New(11), testLogger(), WithAgent("Alice", alwaysCheck))
	require.NoError(t, err)

	result, err := table.PlayHand()
	require.NoError(t, err)

	require.NotEmpty(t, result.Actions)
	assert.Equal(t, "Alice", result.Actions[0].Player)
	assert.Equal(t, FoldAction(), result.Actions[0].Action, "checking facing a bet is replaced by a fold")
	assert.Equal(t, []string{"Bob"}, result.Winners)
}

func TestBustedPlayersSitOut(t *testing.T) {
	t.Parallel()

	players := newPlayers(1000, 0, 1000)
	table, err := NewTable(players, randutil.New(13), testLogger(), WithDefaultAgent(folder))
	require.NoError(t, err)

	result, err := table.PlayHand()
	require.NoError(t, err)

	_, dealt := result.Hand("Bob")
	assert.False(t, dealt)
	assert.Len(t, result.Hands, 2)
	assert.Equal(t, "Alice", result.SmallBlind)
	assert.Equal(t, "Carol", result.BigBlind)
	assert.Equal(t, 0, players[1].Chips)
}

func TestNotEnoughPlayers(t *testing.T) {
	t.Parallel()

	table, err := NewTable(newPlayers(1000, 0), randutil.New(1), testLogger())
	require.NoError(t, err)

	_, err = table.PlayHand()
	require.ErrorIs(t, err, ErrNotEnoughPlayers)
	assert.Equal(t, 0, table.HandNumber())
}

func TestAllInShowdown(t *testing.T) {
	t.Parallel()

	for seed := int64(0); seed < 20; seed++ {
		players := newPlayers(1000, 1000)
		table, err := NewTable(players, randutil.New(seed), testLogger(), WithAgent("Alice", shover))
		require.NoError(t, err)

		result, err := table.PlayHand()
		require.NoError(t, err)

		require.True(t, result.Showdown)
		require.Len(t, result.Board, 5)
		assert.Equal(t, 2000, result.Pot)
		assert.Equal(t, 2000, table.TotalChips())
		for _, h := range result.Hands {
			require.NotNil(t, h.Best)
		}

		if result.Tie {
			assert.Equal(t, 1000, players[0].Chips)
			assert.Equal(t, 1000, players[1].Chips)
			assert.Len(t, result.Winners, 2)
			continue
		}
		require.Len(t, result.Winners, 1)
		winner, _ := result.Hand(result.Winners[0])
		for _, h := range result.Hands {
			if h.Player != winner.Player {
				assert.Positive(t, winner.Best.CompareStrength(*h.Best))
			}
		}
	}
}

func TestPlayHandDeterministic(t *testing.T) {
	t.Parallel()

	play := func() []*HandResult {
		table, err := NewTable(newPlayers(1000, 1000, 1000), randutil.New(7), testLogger())
		require.NoError(t, err)
		var results []*HandResult
		for range 5 {
			result, err := table.PlayHand()
			require.NoError(t, err)
			results = append(results, result)
		}
		return results
	}

	first, second := play(), play()
	for i := range first {
		assert.Equal(t, first[i].Board, second[i].Board)
		assert.Equal(t, first[i].Hands, second[i].Hands)
		assert.Equal(t, first[i].Winners, second[i].Winners)
	}
}

func TestChipsAreConserved(t *testing.T) {
	t.Parallel()

	table, err := NewTable(newPlayers(500, 500, 500, 500), randutil.New(21), testLogger(),
		WithAgent("Dave", shover))
	require.NoError(t, err)

	for range 100 {
		result, err := table.PlayHand()
		if err != nil {
			require.ErrorIs(t, err, ErrNotEnoughPlayers)
			break
		}
		require.Equal(t, 2000, table.TotalChips(), "hand %d", result.Number)
		if result.Showdown {
			require.Len(t, result.Board, 5)
		}
		if result.Kicker {
			require.False(t, result.Tie)
		}
	}
}

// settleHand builds a hand at showdown with fixed cards. Every player has
// put 100 chips into the pot from a 1000 stack.
func settleHand(t *testing.T, board string, holes ...string) (*hand, []*Player) {
	t.Helper()

	players := newPlayers(make([]int, len(holes))...)
	pot := NewPot()
	for i, p := range players {
		p.Chips = 900
		p.Hand = poker.MustParseCards(holes[i])
		pot.Add(p.Name, 100)
	}

	table, err := NewTable(players, randutil.New(1), testLogger())
	require.NoError(t, err)

	return &hand{
		table:  table,
		logger: table.logger,
		pot:    pot,
		board:  poker.MustParseCards(board),
		bets:   make([]int, len(players)),
		result: &HandResult{},
	}, players
}

func TestSettleTieFoldedPlayerPays(t *testing.T) {
	t.Parallel()

	h, players := settleHand(t, "As Ks Qs Js Ts", "2c 3d", "4h 5h", "9d 9c")
	players[2].Fold()

	require.NoError(t, h.settle())

	r := h.result
	assert.True(t, r.Showdown)
	assert.True(t, r.Tie)
	assert.False(t, r.Kicker)
	assert.Equal(t, []string{"Alice", "Bob"}, r.Winners)
	assert.Equal(t, 300, r.Pot)
	assert.Equal(t, 1050, players[0].Chips)
	assert.Equal(t, 1050, players[1].Chips)
	assert.Equal(t, 900, players[2].Chips)
	assert.Equal(t, 0, h.pot.Total())

	net := map[string]int{}
	for _, ph := range r.Hands {
		net[ph.Player] = ph.Net
	}
	assert.Equal(t, map[string]int{"Alice": 50, "Bob": 50, "Carol": -100}, net)
}

func TestSettleTieBeatenContenderPays(t *testing.T) {
	t.Parallel()

	h, players := settleHand(t, "Ah Kd 9c 5s 2h", "Qc Jc", "Qd Jd", "3c 6c")
	require.NoError(t, h.settle())

	r := h.result
	assert.True(t, r.Tie)
	assert.Equal(t, []string{"Alice", "Bob"}, r.Winners)
	assert.Equal(t, 1050, players[0].Chips)
	assert.Equal(t, 1050, players[1].Chips)
	assert.Equal(t, 900, players[2].Chips)

	carol, _ := r.Hand("Carol")
	require.NotNil(t, carol.Best)
	assert.Equal(t, -100, carol.Net)
}

func TestPlayHandFolderNeverProfitsFromTies(t *testing.T) {
	t.Parallel()

	players := newPlayers(5000, 5000, 5000)
	table, err := NewTable(players, randutil.New(11), testLogger(), WithAgent("Carol", folder))
	require.NoError(t, err)

	for range 300 {
		result, err := table.PlayHand()
		if err != nil {
			require.ErrorIs(t, err, ErrNotEnoughPlayers)
			break
		}
		require.Equal(t, 15000, table.TotalChips(), "hand %d", result.Number)

		total := 0
		for _, ph := range result.Hands {
			total += ph.Net
			if ph.Folded {
				assert.LessOrEqual(t, ph.Net, 0, "hand %d: %s folded", result.Number, ph.Player)
			}
		}
		assert.Zero(t, total, "hand %d", result.Number)

		if result.Tie {
			for _, name := range result.Winners {
				winner, _ := result.Hand(name)
				assert.False(t, winner.Folded)
				assert.GreaterOrEqual(t, winner.Net, 0, "hand %d: %s", result.Number, name)
			}
		}
	}
}

func TestSettleSuitsDoNotBreakTies(t *testing.T) {
	t.Parallel()

	h, players := settleHand(t, "Ah Kd 9c 5s 2h", "Qc Jc", "Qd Jd")
	require.NoError(t, h.settle())

	assert.True(t, h.result.Tie)
	assert.Equal(t, 1000, players[0].Chips)
	assert.Equal(t, 1000, players[1].Chips)
}

func TestSettleKicker(t *testing.T) {
	t.Parallel()

	h, players := settleHand(t, "Ah Kd 9c 5s 2h", "Ad 7c", "Ac 6c")
	require.NoError(t, h.settle())

	r := h.result
	assert.False(t, r.Tie)
	assert.True(t, r.Kicker)
	assert.Equal(t, []string{"Alice"}, r.Winners)
	assert.Equal(t, 1100, players[0].Chips)
	assert.Equal(t, 900, players[1].Chips)

	alice, _ := r.Hand("Alice")
	require.NotNil(t, alice.Best)
	assert.Equal(t, poker.OnePair{Rank: poker.Ace}, alice.Best.Tier)
	assert.Equal(t, 100, alice.Net)

	bob, _ := r.Hand("Bob")
	assert.Equal(t, -100, bob.Net)
}

func TestSettleBetterTier(t *testing.T) {
	t.Parallel()

	h, players := settleHand(t, "Ah Kd 9c 5s 2h", "Kh Ks", "Ad Ac")
	require.NoError(t, h.settle())

	r := h.result
	assert.False(t, r.Kicker)
	assert.Equal(t, []string{"Bob"}, r.Winners)
	assert.Equal(t, 900, players[0].Chips)
	assert.Equal(t, 1100, players[1].Chips)
}
