// Package display renders cards, hands, showdowns and equity tables for the
// terminal.
package display

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/showdown/internal/equity"
	"github.com/lox/showdown/internal/game"
	"github.com/lox/showdown/internal/statistics"
	"github.com/lox/showdown/poker"
	"github.com/muesli/termenv"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	handStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	tieStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))

	percentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	redCardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	blackCardStyle = lipgloss.NewStyle().
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

// SetColor turns styled output on or off. With color off every style
// renders plain text.
func SetColor(enabled bool) {
	if enabled {
		lipgloss.SetColorProfile(termenv.EnvColorProfile())
		return
	}
	lipgloss.SetColorProfile(termenv.Ascii)
}

// Card renders a single card, red for hearts and diamonds.
func Card(c poker.Card) string {
	if c.Suit() == poker.Hearts || c.Suit() == poker.Diamonds {
		return redCardStyle.Render(c.String())
	}
	return blackCardStyle.Render(c.String())
}

// Cards renders cards in brackets, e.g. "[A♠ K♥]".
func Cards(cards []poker.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = Card(c)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Tier renders a tier label such as "Full House(Nine, Jack)".
func Tier(t poker.Tier) string {
	return categoryStyle.Render(t.String())
}

// BestHand renders a tier with the five cards that make it.
func BestHand(b poker.BestHand) string {
	return fmt.Sprintf("%s with %s", Tier(b.Tier), Cards(b.Cards[:]))
}

// Showdown writes the story of a finished hand: hole cards, board, every
// best hand and the outcome.
func Showdown(w io.Writer, r *game.HandResult) {
	fmt.Fprintf(w, "%s\n", headerStyle.Render(fmt.Sprintf("Hand #%d", r.Number)))
	fmt.Fprintf(w, "%s\n", mutedStyle.Render(fmt.Sprintf("button %s, blinds %s/%s", r.Button, r.SmallBlind, r.BigBlind)))

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, h := range r.Hands {
		status := ""
		if h.Folded {
			status = mutedStyle.Render("folded")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", handStyle.Render(h.Player), Cards(h.Hole), status)
	}
	tw.Flush()

	if len(r.Board) > 0 {
		fmt.Fprintf(w, "%s %s\n", headerStyle.Render("board"), Cards(r.Board))
	}

	if r.Showdown {
		tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, h := range r.Hands {
			if h.Best != nil {
				fmt.Fprintf(tw, "%s\t%s\n", handStyle.Render(h.Player), BestHand(*h.Best))
			}
		}
		tw.Flush()
	}

	fmt.Fprintln(w, Outcome(r))
}

// Outcome summarises who won a hand and why.
func Outcome(r *game.HandResult) string {
	switch {
	case r.Tie:
		return tieStyle.Render(fmt.Sprintf("Tie between %s, %d chips shared", strings.Join(r.Winners, " and "), r.Pot))
	case !r.Showdown:
		return winStyle.Render(fmt.Sprintf("%s wins %d uncontested", r.Winners[0], r.Pot))
	}

	h, _ := r.Hand(r.Winners[0])
	msg := fmt.Sprintf("%s wins %d with %s", h.Player, r.Pot, h.Best.Tier)
	if r.Kicker {
		msg += " (better kickers)"
	}
	return winStyle.Render(msg)
}

// Standings writes each player's stack.
func Standings(w io.Writer, players []*game.Player) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\n", headerStyle.Render("player"), headerStyle.Render("chips"))
	for _, p := range players {
		chips := fmt.Sprint(p.Chips)
		if p.IsBusted() {
			chips = mutedStyle.Render("busted")
		}
		fmt.Fprintf(tw, "%s\t%s\n", handStyle.Render(p.Name), chips)
	}
	tw.Flush()
}

// Equity writes a win/tie table for every hand. With categories set it
// adds how often each hand finished in each category.
func Equity(w io.Writer, r *equity.Result, categories bool, elapsed time.Duration) {
	if len(r.Board) > 0 {
		fmt.Fprintf(w, "%s\n%s\n\n", headerStyle.Render("board"), Cards(r.Board))
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
		headerStyle.Render("hand"),
		headerStyle.Render("win"),
		headerStyle.Render("tie"),
		headerStyle.Render("equity"))
	for _, h := range r.Hands {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			handStyle.Render(poker.FormatCards(h.Hole, " ")),
			winStyle.Render(fmt.Sprintf("%.1f%%", h.Win())),
			tieStyle.Render(fmt.Sprintf("%.1f%%", h.Tie())),
			percentStyle.Render(fmt.Sprintf("%.1f%%", h.Equity())))
	}
	tw.Flush()

	if categories && len(r.Hands) > 0 {
		fmt.Fprintln(w)
		categoryTable(w, r)
	}

	fmt.Fprintln(w)
	kind := "iterations"
	if r.Exact {
		kind = "runouts (exact)"
	}
	fmt.Fprintf(w, "%d %s in %v\n", r.Trials, kind, elapsed.Truncate(time.Millisecond))
}

func categoryTable(w io.Writer, r *equity.Result) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "%s", categoryStyle.Render("hand"))
	for _, h := range r.Hands {
		fmt.Fprintf(tw, "\t%s", handStyle.Render(poker.FormatCards(h.Hole, " ")))
	}
	fmt.Fprintln(tw)

	// Strongest first, skipping categories nobody made.
	for i := len(poker.Categories) - 1; i >= 0; i-- {
		c := poker.Categories[i]
		seen := false
		for _, h := range r.Hands {
			seen = seen || h.Categories[c] > 0
		}
		if !seen {
			continue
		}

		fmt.Fprintf(tw, "%s", categoryStyle.Render(c.String()))
		for _, h := range r.Hands {
			if h.Categories[c] == 0 {
				fmt.Fprintf(tw, "\t%s", percentStyle.Render("."))
				continue
			}
			fmt.Fprintf(tw, "\t%s", percentStyle.Render(fmt.Sprintf("%.1f%%", h.CategoryPercent(c))))
		}
		fmt.Fprintln(tw)
	}
	tw.Flush()
}

// Session writes each player's results over a run of hands, in big blinds.
func Session(w io.Writer, s *statistics.Session) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
		headerStyle.Render("player"),
		headerStyle.Render("hands"),
		headerStyle.Render("bb/hand"),
		headerStyle.Render("95% ci"),
		headerStyle.Render("showdowns won"),
		headerStyle.Render("uncontested"),
		headerStyle.Render("biggest pot"))
	for _, name := range s.Players() {
		st := s.Player(name)
		low, high := st.ConfidenceInterval95()
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%d/%d\t%d\t%s\n",
			handStyle.Render(name),
			st.Hands,
			percentStyle.Render(fmt.Sprintf("%+.2f", st.Mean())),
			mutedStyle.Render(fmt.Sprintf("[%+.2f, %+.2f]", low, high)),
			st.ShowdownWins, st.ShowdownCount(),
			st.NonShowdownWins,
			fmt.Sprintf("%.0fbb", st.MaxPotBB))
	}
	tw.Flush()
}
