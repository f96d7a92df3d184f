package server

import (
	"encoding/json"
	"time"
)

// MessageType identifies the payload carried by a Message.
type MessageType string

const (
	// Client to server
	MessageTypeEvaluate MessageType = "evaluate"
	MessageTypeBestHand MessageType = "best_hand"
	MessageTypeCompare  MessageType = "compare"
	MessageTypeEquity   MessageType = "equity"

	// Server to client
	MessageTypeEvaluateResult MessageType = "evaluate_result"
	MessageTypeBestHandResult MessageType = "best_hand_result"
	MessageTypeCompareResult  MessageType = "compare_result"
	MessageTypeEquityResult   MessageType = "equity_result"
	MessageTypeError          MessageType = "error"
)

func (mt MessageType) String() string {
	return string(mt)
}

// Message is the envelope for every WebSocket frame. Responses echo the
// RequestID of the request they answer.
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// NewMessage wraps data in an envelope stamped with now.
func NewMessage(messageType MessageType, data any, now time.Time) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: now,
	}, nil
}

// Client → Server Messages

// EvaluateData asks for the tier of exactly five cards, e.g. "As Ks Qs Js Ts".
type EvaluateData struct {
	Cards string `json:"cards"`
}

// BestHandData asks for the best five cards from hole and board together.
type BestHandData struct {
	Hole  string `json:"hole"`
	Board string `json:"board"`
}

// CompareData asks which of several hole-card hands is strongest on a board.
type CompareData struct {
	Hands []string `json:"hands"`
	Board string   `json:"board"`
}

// EquityData asks for win/tie odds over the remaining board cards.
type EquityData struct {
	Hands      []string `json:"hands"`
	Board      string   `json:"board,omitempty"`
	Iterations int      `json:"iterations,omitempty"`
	Seed       *int64   `json:"seed,omitempty"`
}

// Server → Client Messages

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type EvaluateResultData struct {
	Tier     string `json:"tier"`
	Category string `json:"category"`
}

type BestHandResultData struct {
	Tier     string   `json:"tier"`
	Category string   `json:"category"`
	Cards    []string `json:"cards"`
}

type CompareResultData struct {
	Results []BestHandResultData `json:"results"`
	// Winners holds the indexes of the strongest hands; more than one means a tie.
	Winners []int `json:"winners"`
}

type HandEquityData struct {
	Hand   string  `json:"hand"`
	Win    float64 `json:"win"`
	Tie    float64 `json:"tie"`
	Equity float64 `json:"equity"`
}

type EquityResultData struct {
	Hands      []HandEquityData `json:"hands"`
	Trials     int              `json:"trials"`
	Exact      bool             `json:"exact"`
	DurationMs int64            `json:"durationMs"`
}
