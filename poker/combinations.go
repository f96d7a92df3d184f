package poker

// Combinations generates every k-element subset of the indices 0..n-1 in
// lexicographic order. It is lazy and can be restarted with Reset.
//
//	combos := NewCombinations(7, 5)
//	for combos.Next() {
//		idx := combos.Indices() // [0 1 2 3 4], [0 1 2 3 5], ...
//	}
type Combinations struct {
	n, k    int
	idx     []int
	started bool
	done    bool
}

// NewCombinations creates a generator for k-of-n index tuples.
func NewCombinations(n, k int) *Combinations {
	return &Combinations{n: n, k: k, idx: make([]int, max(k, 0))}
}

// Next advances to the next combination and reports whether there is one.
func (c *Combinations) Next() bool {
	if c.done {
		return false
	}

	if !c.started {
		c.started = true
		if c.k < 0 || c.k > c.n {
			c.done = true
			return false
		}
		for i := range c.idx {
			c.idx[i] = i
		}
		return true
	}

	// Find the rightmost index that can still move right.
	i := c.k - 1
	for i >= 0 && c.idx[i] == c.n-c.k+i {
		i--
	}
	if i < 0 {
		c.done = true
		return false
	}

	c.idx[i]++
	for j := i + 1; j < c.k; j++ {
		c.idx[j] = c.idx[j-1] + 1
	}
	return true
}

// Indices returns the current combination. The slice is reused by Next and
// must not be modified or retained.
func (c *Combinations) Indices() []int {
	return c.idx
}

// Reset rewinds the generator to before the first combination.
func (c *Combinations) Reset() {
	c.started = false
	c.done = false
}

// CombinationCount returns C(n, k), or 0 when k is out of range.
func CombinationCount(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	k = min(k, n-k)
	count := 1
	for i := 1; i <= k; i++ {
		count = count * (n - k + i) / i
	}
	return count
}
