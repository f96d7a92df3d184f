package randutil

import "testing"

func TestNewIsDeterministic(t *testing.T) {
	t.Parallel()
	a, b := New(42), New(42)
	for i := 0; i < 100; i++ {
		if x, y := a.Uint64(), b.Uint64(); x != y {
			t.Fatalf("Draw %d differs: %d vs %d", i, x, y)
		}
	}
}

func TestStreamsDiffer(t *testing.T) {
	t.Parallel()
	first, second := Stream(7, 0), Stream(7, 1)
	same := 0
	for i := 0; i < 32; i++ {
		if first.Uint64() == second.Uint64() {
			same++
		}
	}
	if same == 32 {
		t.Error("Streams 0 and 1 produced identical sequences")
	}

	again := Stream(7, 1)
	replay := Stream(7, 1)
	if again.Uint64() != replay.Uint64() {
		t.Error("Stream is not reproducible")
	}
}

func TestSeed(t *testing.T) {
	t.Parallel()
	seed := int64(12345)
	if got := Seed(&seed); got != seed {
		t.Errorf("Seed(&%d) = %d", seed, got)
	}
	if Seed(nil) == 0 {
		t.Error("Seed(nil) should derive a clock seed")
	}
}
