// Package game runs complete hands of Texas Hold'em at a single table.
//
// A Table seats between two and ten players, rotates the button, posts the
// blinds, deals hole cards and the board from a seeded deck, asks each
// player's Agent for an action on every street, and settles the pot at
// showdown using poker.EvaluateBest.
//
// # Basic Usage
//
//	players := []*game.Player{game.NewPlayer("Alice", 1000), game.NewPlayer("Bob", 1000)}
//	table, err := game.NewTable(players, randutil.New(42), logger)
//	if err != nil {
//	    return err
//	}
//	result, err := table.PlayHand()
//
// # Settlement
//
// The strongest hand by poker.BestHand.CompareStrength takes the whole pot.
// When two or more hands tie exactly, every contribution is returned to the
// player who made it; pots are never split and no side pots are built.
package game
