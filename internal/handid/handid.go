// Package handid generates sortable identifiers for dealt hands.
//
// An ID is a UUIDv7 written as 26 characters of Crockford base32, the TypeID
// encoding: a 48-bit millisecond timestamp, a 12-bit counter that keeps IDs
// ordered within a millisecond, and 62 random bits.
package handid

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	randv2 "math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/coder/quartz"
)

// Base32 alphabet used by TypeID (Crockford's base32)
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length is the number of characters in an ID.
const Length = 26

const maxCounter = 1<<12 - 1

// Generator hands out IDs. It is safe for concurrent use.
type Generator struct {
	clock quartz.Clock
	rng   *randv2.Rand // Nil means crypto/rand

	mu      sync.Mutex
	lastMs  int64
	counter uint16
}

// NewGenerator creates a generator. With a seeded rng and a mock clock the
// sequence of IDs is reproducible.
func NewGenerator(clock quartz.Clock, rng *randv2.Rand) *Generator {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Generator{clock: clock, rng: rng}
}

// Next returns a new ID, greater than every ID this generator returned before.
func (g *Generator) Next() string {
	g.mu.Lock()
	ms := g.clock.Now().UnixMilli()
	switch {
	case ms > g.lastMs:
		g.lastMs = ms
		g.counter = 0
	case g.counter < maxCounter:
		g.counter++
	default:
		// Counter exhausted: borrow the next millisecond.
		g.lastMs++
		g.counter = 0
	}
	ms, counter := g.lastMs, g.counter

	var id [16]byte
	g.fillRandom(id[8:])
	g.mu.Unlock()

	// 48-bit timestamp, big-endian
	id[0] = byte(ms >> 40)
	id[1] = byte(ms >> 32)
	id[2] = byte(ms >> 24)
	id[3] = byte(ms >> 16)
	id[4] = byte(ms >> 8)
	id[5] = byte(ms)

	// Version 7 and the counter in rand_a
	id[6] = 0x70 | byte(counter>>8)&0x0f
	id[7] = byte(counter)

	// Variant 10
	id[8] = (id[8] & 0x3f) | 0x80

	return encode(id)
}

func (g *Generator) fillRandom(b []byte) {
	if g.rng == nil {
		if _, err := rand.Read(b); err != nil {
			panic("failed to generate random bytes: " + err.Error())
		}
		return
	}
	binary.BigEndian.PutUint64(b, g.rng.Uint64())
}

// encode writes the 128 bits as 26 base32 characters, most significant
// first, with two implicit leading zero bits.
func encode(id [16]byte) string {
	hi := binary.BigEndian.Uint64(id[:8])
	lo := binary.BigEndian.Uint64(id[8:])

	var out [Length]byte
	for i := Length - 1; i >= 0; i-- {
		out[i] = alphabet[lo&0x1f]
		lo = lo>>5 | hi<<59
		hi >>= 5
	}
	return string(out[:])
}

// Time returns the millisecond timestamp embedded in id.
func Time(id string) (time.Time, error) {
	if err := Validate(id); err != nil {
		return time.Time{}, err
	}
	var hi uint64
	// The first 10 characters carry 2 zero bits plus 48 timestamp bits.
	for _, c := range id[:10] {
		hi = hi<<5 | uint64(strings.IndexRune(alphabet, c))
	}
	return time.UnixMilli(int64(hi)).UTC(), nil
}

// Validate checks if an ID is valid (26 characters, valid base32)
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("hand ID must be exactly %d characters, got %d", Length, len(id))
	}

	// The first character carries only 3 bits.
	if id[0] > '7' {
		return fmt.Errorf("hand ID first character must be 0-7, got %c", id[0])
	}

	for i, char := range id {
		if !strings.ContainsRune(alphabet, char) {
			return fmt.Errorf("invalid character %c at position %d", char, i)
		}
	}

	return nil
}
