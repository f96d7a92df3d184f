package game

import (
	"encoding/json"
	"io"
	"os"

	"github.com/lox/showdown/internal/fileutil"
	"github.com/lox/showdown/poker"
)

// History is a session of hands in a form that can be written to disk.
type History struct {
	Session       string       `json:"session"`
	Seed          int64        `json:"seed"`
	SmallBlind    int          `json:"small_blind"`
	BigBlind      int          `json:"big_blind"`
	StartingChips int          `json:"starting_chips"`
	Hands         []HandRecord `json:"hands"`
}

// HandRecord is the serialisable form of a HandResult.
type HandRecord struct {
	ID         string         `json:"id,omitempty"`
	Number     int            `json:"number"`
	Button     string         `json:"button"`
	SmallBlind string         `json:"small_blind"`
	BigBlind   string         `json:"big_blind"`
	Board      []string       `json:"board"`
	Seats      []SeatRecord   `json:"seats"`
	Actions    []ActionRecord `json:"actions"`
	Winners    []string       `json:"winners"`
	Pot        int            `json:"pot"`
	Showdown   bool           `json:"showdown"`
	Tie        bool           `json:"tie,omitempty"`
	Kicker     bool           `json:"kicker,omitempty"`
}

// SeatRecord is one player's part in a recorded hand.
type SeatRecord struct {
	Player   string   `json:"player"`
	Hole     []string `json:"hole"`
	Folded   bool     `json:"folded,omitempty"`
	Tier     string   `json:"tier,omitempty"`
	Category string   `json:"category,omitempty"`
	Best     []string `json:"best,omitempty"`
	Net      int      `json:"net"`
}

// ActionRecord is a single recorded decision.
type ActionRecord struct {
	Player string `json:"player"`
	Street string `json:"street"`
	Action string `json:"action"`
	Amount int    `json:"amount,omitempty"`
}

// Record converts the result into its serialisable form.
func (r *HandResult) Record(id string) HandRecord {
	rec := HandRecord{
		ID:         id,
		Number:     r.Number,
		Button:     r.Button,
		SmallBlind: r.SmallBlind,
		BigBlind:   r.BigBlind,
		Board:      cardStrings(r.Board),
		Seats:      make([]SeatRecord, len(r.Hands)),
		Actions:    make([]ActionRecord, len(r.Actions)),
		Winners:    append([]string(nil), r.Winners...),
		Pot:        r.Pot,
		Showdown:   r.Showdown,
		Tie:        r.Tie,
		Kicker:     r.Kicker,
	}
	for i, h := range r.Hands {
		seat := SeatRecord{
			Player: h.Player,
			Hole:   cardStrings(h.Hole),
			Folded: h.Folded,
			Net:    h.Net,
		}
		if h.Best != nil {
			seat.Tier = h.Best.Tier.String()
			seat.Category = h.Best.Tier.Category().String()
			seat.Best = cardStrings(h.Best.Cards[:])
		}
		rec.Seats[i] = seat
	}
	for i, a := range r.Actions {
		rec.Actions[i] = ActionRecord{
			Player: a.Player,
			Street: a.Street.String(),
			Action: a.Action.Kind.String(),
			Amount: a.Action.Amount,
		}
	}
	return rec
}

func cardStrings(cards []poker.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}

// Add appends a finished hand under the given ID.
func (h *History) Add(id string, r *HandResult) {
	h.Hands = append(h.Hands, r.Record(id))
}

// Encode writes the history as indented JSON.
func (h *History) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(h)
}

// WriteFile writes the history to filename atomically.
func (h *History) WriteFile(filename string) error {
	return fileutil.WriteAtomic(filename, 0o644, h.Encode)
}

// ReadHistory loads a history written by WriteFile.
func ReadHistory(filename string) (*History, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var h History
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, err
	}
	return &h, nil
}
