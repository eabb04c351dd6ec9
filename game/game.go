package game

import (
	"strconv"

	"github.com/durak-online/server/card"
	"github.com/durak-online/server/consts"
)

// Phase is the round-local state: attack until the defender commits a
// first cover, defend afterwards.
type Phase int

const (
	PhaseAttack Phase = iota
	PhaseDefend
)

func (p Phase) String() string {
	if p == PhaseDefend {
		return "defend"
	}
	return "attack"
}

// Condition is the match outcome reported by CheckFinished. Negative
// values are the non-loser outcomes, anything else is the loser's seat
// index.
type Condition int

const (
	ConditionOngoing Condition = -1
	ConditionDraw    Condition = -2
)

func (c Condition) Finished() bool {
	return c != ConditionOngoing
}

func (c Condition) Loser() (int, bool) {
	if c >= 0 {
		return int(c), true
	}
	return 0, false
}

func (c Condition) String() string {
	switch c {
	case ConditionOngoing:
		return "ongoing"
	case ConditionDraw:
		return "draw"
	}
	return strconv.Itoa(int(c))
}

// NoCover marks a play that does not target a table pair.
const NoCover = -1

// Game is the Durak rules state machine. It never blocks and does no
// locking of its own; the owning session serializes all access.
type Game struct {
	Seats   []*Hand
	Active  []bool
	Deck    *Deck
	Discard []card.Card
	Trump   card.Suit

	Attacker int
	Defender int
	Phase    Phase

	// Pairs is the table: each entry holds the attack card and, once
	// covered, the defender's covering card.
	Pairs [][]card.Card
}

func New(seats int) (*Game, error) {
	return newGame(seats, NewDeck())
}

func newGame(seats int, deck *Deck) (*Game, error) {
	if seats < consts.MinSeats || seats > consts.MaxSeats {
		return nil, consts.ErrorsSeatsInvalid
	}
	g := &Game{
		Seats:   make([]*Hand, seats),
		Active:  make([]bool, seats),
		Deck:    deck,
		Discard: make([]card.Card, 0, card.BackID),
		Pairs:   make([][]card.Card, 0, consts.HandSize),
		Phase:   PhaseAttack,
	}
	for seat := range g.Seats {
		g.Seats[seat] = NewHand()
		g.Active[seat] = true
		for i := 0; i < consts.HandSize; i++ {
			c, ok := g.Deck.Draw()
			if !ok {
				return nil, consts.ErrorsSeatsInvalid
			}
			g.Seats[seat].Deal(c)
		}
	}
	bottom, _ := g.Deck.Bottom()
	g.Trump = bottom.Suit()

	// The holder of the lowest trump opens the match. Ranks are unique
	// within a suit, so there is never a tie.
	g.Attacker = 0
	lowest := 13
	for seat, hand := range g.Seats {
		for _, c := range hand.Cards() {
			if c.Suit() == g.Trump && c.Rank() < lowest {
				lowest = c.Rank()
				g.Attacker = seat
			}
		}
	}
	g.Defender = (g.Attacker + 1) % seats
	return g, nil
}

// NextActive returns the next active seat after the given one,
// searching circularly. The second value is false when no other active
// seat exists, which ends the match for rotation purposes.
func (g *Game) NextActive(seat int) (int, bool) {
	index := seat
	for {
		index = (index + 1) % len(g.Seats)
		if index == seat {
			return 0, false
		}
		if g.Active[index] {
			return index, true
		}
	}
}

// Covers reports whether c beats target under the trump rule: a trump
// beats any non-trump, otherwise same suit and strictly higher rank.
func (g *Game) Covers(c, target card.Card) bool {
	if c.Suit() == g.Trump && target.Suit() != g.Trump {
		return true
	}
	return c.Suit() == target.Suit() && c.Rank() > target.Rank()
}

func (g *Game) uncovered() int {
	count := 0
	for _, pair := range g.Pairs {
		if len(pair) < 2 {
			count++
		}
	}
	return count
}

// canAddToAttack allows a card that shares rank with anything on the
// table, and only while the defender holds more cards than there are
// uncovered pairs, so the defender is never asked to cover more cards
// than they hold.
func (g *Game) canAddToAttack(c card.Card) bool {
	if g.Seats[g.Defender].Size() <= g.uncovered() {
		return false
	}
	for _, pair := range g.Pairs {
		for _, played := range pair {
			if c.Rank() == played.Rank() {
				return true
			}
		}
	}
	return false
}

// CanPlay is the pure legality predicate behind Play. It fails closed:
// a seat that does not hold the card can never play it.
func (g *Game) CanPlay(seat int, c card.Card, covering int) bool {
	if seat < 0 || seat >= len(g.Seats) || !g.Seats[seat].Has(c) {
		return false
	}
	if covering != NoCover {
		if covering < 0 || covering >= len(g.Pairs) || len(g.Pairs[covering]) != 1 {
			return false
		}
	}

	if seat != g.Defender {
		// First play of the round is unconstrained, later additions
		// need a rank match plus defender capacity.
		if covering != NoCover {
			return false
		}
		if g.Phase == PhaseAttack && len(g.Pairs) == 0 {
			return true
		}
		return g.canAddToAttack(c)
	}

	// Defender. Nothing to act on until the attack opens.
	if len(g.Pairs) == 0 {
		return false
	}
	if covering != NoCover {
		return g.Covers(c, g.Pairs[covering][0])
	}
	if g.Phase == PhaseDefend {
		// Once a cover is committed the attack can no longer be turned.
		return false
	}
	// Turning the attack passes the defense to the next active seat,
	// which must exist and must be able to cover everything.
	next, ok := g.NextActive(seat)
	if !ok {
		return false
	}
	if g.Seats[next].Size() <= len(g.Pairs) {
		return false
	}
	return c.Rank() == g.Pairs[0][0].Rank()
}

// Play validates and applies one card play. An invalid play returns
// ErrorsIllegalMove and mutates nothing; callers treat it as a
// protocol contract violation, not a game event.
func (g *Game) Play(seat int, c card.Card, covering int) error {
	if !g.CanPlay(seat, c, covering) {
		return consts.ErrorsIllegalMove
	}
	if seat == g.Defender {
		if covering != NoCover {
			g.Pairs[covering] = append(g.Pairs[covering], c)
			g.Phase = PhaseDefend
		} else {
			// Turning the attack: defense moves on, the round stays in
			// the attack phase.
			next, _ := g.NextActive(seat)
			g.Defender = next
			g.Pairs = append(g.Pairs, []card.Card{c})
		}
	} else {
		g.Pairs = append(g.Pairs, []card.Card{c})
	}
	g.Seats[seat].Play(c)
	return nil
}

// CheckFinished recomputes seat activity and reports the match state.
// A seat stays active while its hand is non-empty or the deck still
// has cards to refill from.
func (g *Game) CheckFinished() Condition {
	numActive := 0
	for seat, hand := range g.Seats {
		g.Active[seat] = !hand.Empty() || !g.Deck.Empty()
		if g.Active[seat] {
			numActive++
		}
	}
	if numActive > 1 {
		return ConditionOngoing
	}
	if numActive == 0 {
		return ConditionDraw
	}
	for seat := range g.Seats {
		if g.Active[seat] {
			return Condition(seat)
		}
	}
	return ConditionDraw
}

// RefillHands tops active seats back up to six, attacker first and
// onwards in attack order, defender strictly last. The moment the deck
// empties the refill stops, leaving later seats short.
func (g *Game) RefillHands() {
	for i := 0; i < len(g.Seats); i++ {
		seat := (g.Attacker + i) % len(g.Seats)
		if seat == g.Defender || !g.Active[seat] {
			continue
		}
		if !g.refillSeat(seat) {
			return
		}
	}
	if !g.Active[g.Defender] {
		return
	}
	g.refillSeat(g.Defender)
}

func (g *Game) refillSeat(seat int) bool {
	for g.Seats[seat].Size() < consts.HandSize {
		c, ok := g.Deck.Draw()
		if !ok {
			return false
		}
		g.Seats[seat].Deal(c)
	}
	return true
}

// ResetRound clears the table and rotates the turn. A defense is
// successful when every pair carries a cover: the table goes to the
// discard pile and the defender attacks next. Otherwise the defender
// takes the whole table and is skipped for the next attack. The match
// outcome is checked before refilling; a finished match refills
// nothing and rotates nobody.
func (g *Game) ResetRound() Condition {
	successful := true
	for _, pair := range g.Pairs {
		if len(pair) < 2 {
			successful = false
			break
		}
	}
	for _, pair := range g.Pairs {
		for _, c := range pair {
			if successful {
				g.Discard = append(g.Discard, c)
			} else {
				g.Seats[g.Defender].Deal(c)
			}
		}
	}
	g.Pairs = g.Pairs[:0]
	g.Phase = PhaseAttack

	condition := g.CheckFinished()
	if condition.Finished() {
		return condition
	}
	g.RefillHands()

	if successful {
		g.Attacker = g.Defender
	} else {
		// The failed defender does not attack next.
		g.Attacker, _ = g.NextActive(g.Defender)
	}
	g.Defender, _ = g.NextActive(g.Attacker)
	return ConditionOngoing
}
