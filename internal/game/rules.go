package game

// Thresholds pairs the highest rank each player will try to exchange.
type Thresholds struct {
	P1 int `json:"p1" yaml:"p1"`
	P2 int `json:"p2" yaml:"p2"`
}

// Deal holds the ranks of the three cards in play: one per player and the
// card on top of the deck.
type Deal struct {
	P1   int
	P2   int
	Deck int
}

// Resolve plays out the exchanges and returns the ranks each player ends with.
//
// Player 1 offers a swap when holding at most t.P1. Player 2 refuses only when
// holding the highest rank. A player 2 left holding a lower card than player 1
// after that swap always draws from the deck. Otherwise player 2 draws when
// holding at most t.P2. Drawing the highest rank from the deck is refused.
func (c Config) Resolve(d Deal, t Thresholds) (p1, p2 int) {
	p1, p2 = d.P1, d.P2
	if p1 <= t.P1 {
		if p2 != c.Cards {
			p1, p2 = p2, p1
		}
		if p2 < p1 && d.Deck != c.Cards {
			p2 = d.Deck
		}
		return p1, p2
	}
	if p2 <= t.P2 && d.Deck != c.Cards {
		p2 = d.Deck
	}
	return p1, p2
}

// P1Wins reports whether player 1 holds the strictly higher card once both
// players have acted.
func (c Config) P1Wins(d Deal, t Thresholds) bool {
	p1, p2 := c.Resolve(d, t)
	return p1 > p2
}
