package server

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/coder/quartz"
	"github.com/lox/showdown/internal/equity"
	"github.com/lox/showdown/poker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *quartz.Mock) {
	t.Helper()
	clock := quartz.NewMock(t)
	return NewServer(Options{Equity: equity.Options{Iterations: 2000, Workers: 2}}, testLogger(), clock), clock
}

func TestEvaluate(t *testing.T) {
	t.Parallel()
	srv, _ := newTestServer(t)

	tests := []struct {
		cards    string
		tier     string
		category string
		code     string
	}{
		{cards: "As Ks Qs Js Ts", tier: "Royal Flush(10♠,J♠,Q♠,K♠,A♠)", category: "Royal Flush"},
		{cards: "3h3c3d3sKh", tier: "Four of a Kind(Three)", category: "Four of a Kind"},
		{cards: "Ah 2c 3d 4s 5h", tier: "Straight(A,2,3,4,5)", category: "Straight"},
		{cards: "As Ks Qs Js", code: "invalid_hand"},
		{cards: "As As Qs Js Ts", code: "invalid_hand"},
		{cards: "Xx Ks Qs Js Ts", code: "invalid_cards"},
	}

	for _, tt := range tests {
		t.Run(tt.cards, func(t *testing.T) {
			t.Parallel()

			got, err := srv.evaluate(EvaluateData{Cards: tt.cards})
			if tt.code != "" {
				require.Error(t, err)
				assert.Equal(t, tt.code, errorCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.tier, got.Tier)
			assert.Equal(t, tt.category, got.Category)
		})
	}
}

func TestBestHand(t *testing.T) {
	t.Parallel()
	srv, _ := newTestServer(t)

	got, err := srv.bestHand(BestHandData{Hole: "7h 7c", Board: "Qc 7s 6d Kd Kc"})
	require.NoError(t, err)
	assert.Equal(t, "Full House(Seven, King)", got.Tier)
	assert.Equal(t, "Full House", got.Category)
	assert.Equal(t, []string{"K♦", "K♣", "7♠", "7♥", "7♣"}, got.Cards)

	_, err = srv.bestHand(BestHandData{Hole: "7h 7c", Board: "Qc"})
	assert.Equal(t, "pool_too_small", errorCode(err))

	_, err = srv.bestHand(BestHandData{Hole: "7h 7c", Board: "7h 2c 3d"})
	assert.Equal(t, "invalid_hand", errorCode(err))
}

func TestCompare(t *testing.T) {
	t.Parallel()
	srv, _ := newTestServer(t)

	got, err := srv.compare(CompareData{
		Hands: []string{"Ad 7c", "Ac 6c", "Kh Ks"},
		Board: "Ah Kd 9c 5s 2h",
	})
	require.NoError(t, err)
	require.Len(t, got.Results, 3)
	assert.Equal(t, []int{2}, got.Winners)
	assert.Equal(t, "Three of a Kind(King)", got.Results[2].Tier)

	tie, err := srv.compare(CompareData{Hands: []string{"Qc Jc", "Qd Jd"}, Board: "Ah Kd 9c 5s 2h"})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, tie.Winners)

	_, err = srv.compare(CompareData{Hands: []string{"Qc Jc", "Qc Jd"}, Board: "Ah Kd 9c 5s 2h"})
	assert.Equal(t, "invalid_hand", errorCode(err))

	_, err = srv.compare(CompareData{Board: "Ah Kd 9c 5s 2h"})
	assert.Equal(t, "invalid_request", errorCode(err))
}

func TestEquityOdds(t *testing.T) {
	t.Parallel()
	srv, _ := newTestServer(t)

	seed := int64(5)
	got, err := srv.equityOdds(context.Background(), EquityData{
		Hands: []string{"As Ad", "7c 2h"},
		Board: "Ah Kd 9c 5s",
		Seed:  &seed,
	})
	require.NoError(t, err)
	assert.True(t, got.Exact)
	assert.Equal(t, 44, got.Trials)
	require.Len(t, got.Hands, 2)
	assert.Equal(t, "A♠ A♦", got.Hands[0].Hand)
	assert.InDelta(t, 100.0, got.Hands[0].Equity, 1e-9)
	assert.Equal(t, int64(0), got.DurationMs, "mock clock does not move")

	mc, err := srv.equityOdds(context.Background(), EquityData{Hands: []string{"As Ad", "Kc Kh"}, Iterations: 500, Seed: &seed})
	require.NoError(t, err)
	assert.False(t, mc.Exact)
	assert.Equal(t, 500, mc.Trials)

	_, err = srv.equityOdds(context.Background(), EquityData{Hands: []string{"As Ad"}})
	assert.Equal(t, "invalid_request", errorCode(err))

	_, err = srv.equityOdds(context.Background(), EquityData{Hands: []string{"As Ad", "Kc Kh"}, Iterations: MaxIterations + 1})
	assert.Equal(t, "invalid_request", errorCode(err))
}

func TestErrorCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		code string
	}{
		{fmt.Errorf("wrapped: %w", poker.ErrInvalidCard), "invalid_cards"},
		{poker.ErrInvalidHand, "invalid_hand"},
		{poker.ErrPoolTooSmall, "pool_too_small"},
		{poker.ErrInsufficientCards, "insufficient_cards"},
		{equity.ErrTooFewHands, "invalid_request"},
		{context.Canceled, "cancelled"},
		{errors.New("boom"), "internal_error"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.code, errorCode(tt.err), tt.err.Error())
	}
}
