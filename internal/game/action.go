package game

import (
	"fmt"

	"github.com/lox/showdown/poker"
)

// ActionKind is the type of decision a player makes.
type ActionKind int

const (
	Fold ActionKind = iota
	Check
	Call
	Raise
)

func (k ActionKind) String() string {
	switch k {
	case Fold:
		return "fold"
	case Check:
		return "check"
	case Call:
		return "call"
	case Raise:
		return "raise"
	default:
		return "unknown"
	}
}

// Action is a player decision. Amount is the number of chips put in by this
// action and is only meaningful for Call and Raise.
type Action struct {
	Kind   ActionKind
	Amount int
}

// FoldAction, CheckAction, CallAction and RaiseAction build actions.
func FoldAction() Action            { return Action{Kind: Fold} }
func CheckAction() Action           { return Action{Kind: Check} }
func CallAction(amount int) Action  { return Action{Kind: Call, Amount: amount} }
func RaiseAction(amount int) Action { return Action{Kind: Raise, Amount: amount} }

func (a Action) String() string {
	switch a.Kind {
	case Call, Raise:
		return fmt.Sprintf("%s %d", a.Kind, a.Amount)
	default:
		return a.Kind.String()
	}
}

// PlayerAction records an action taken during a hand.
type PlayerAction struct {
	Player string
	Street Street
	Action Action
}

// Decision is what an Agent sees when it is asked to act.
type Decision struct {
	Player   *Player
	Street   Street
	Board    []poker.Card
	ToCall   int // Chips needed to match the current bet
	Pot      int
	MinRaise int
}

// Agent chooses actions for a player.
type Agent interface {
	Act(d Decision) Action
}

// AgentFunc adapts a function to the Agent interface.
type AgentFunc func(d Decision) Action

func (f AgentFunc) Act(d Decision) Action { return f(d) }

// CallingStation checks when it can and otherwise calls whatever it can
// afford. It never folds and never raises.
var CallingStation Agent = AgentFunc(func(d Decision) Action {
	if d.ToCall == 0 {
		return CheckAction()
	}
	return CallAction(min(d.ToCall, d.Player.Chips))
})
