package game

// Pot collects chips for a single hand and remembers who put them in, so a tied
// hand can give contenders their chips back.
type Pot struct {
	total         int
	contributions map[string]int
	order         []string // Contributors in first-contribution order
}

// NewPot creates an empty pot.
func NewPot() *Pot {
	return &Pot{contributions: make(map[string]int)}
}

// Add puts amount into the pot on behalf of player.
func (p *Pot) Add(player string, amount int) {
	if amount <= 0 {
		return
	}
	if _, ok := p.contributions[player]; !ok {
		p.order = append(p.order, player)
	}
	p.contributions[player] += amount
	p.total += amount
}

// Total returns the number of chips in the pot.
func (p *Pot) Total() int {
	return p.total
}

// Contributed returns how much player has put in.
func (p *Pot) Contributed(player string) int {
	return p.contributions[player]
}

// Contributors returns the players who have put chips in, in the order they
// first did so.
func (p *Pot) Contributors() []string {
	return append([]string(nil), p.order...)
}

// Award empties the pot and returns its total.
func (p *Pot) Award() int {
	total := p.total
	p.clear()
	return total
}

// Split empties the pot for a tie between players. Each gets back what they
// put in, and everyone else's chips are shared evenly, odd chips going to the
// earliest players in the list.
func (p *Pot) Split(players []string) map[string]int {
	shares := make(map[string]int, len(players))
	if len(players) == 0 {
		return shares
	}

	dead := p.total
	for _, name := range players {
		shares[name] = p.contributions[name]
		dead -= p.contributions[name]
	}
	each, odd := dead/len(players), dead%len(players)
	for i, name := range players {
		shares[name] += each
		if i < odd {
			shares[name]++
		}
	}

	p.clear()
	return shares
}

func (p *Pot) clear() {
	p.total = 0
	p.order = nil
	clear(p.contributions)
}
