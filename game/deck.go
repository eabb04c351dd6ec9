package game

import (
	"math/rand"

	"github.com/durak-online/server/card"
)

// Deck is the draw pile. Draws come off the top; the bottom card is
// never drawn out of order and stays visible to fix the trump suit.
type Deck struct {
	cards []card.Card
}

func NewDeck() *Deck {
	deck := &Deck{cards: make([]card.Card, 0, card.BackID)}
	for id := 0; id < card.BackID; id++ {
		c, _ := card.New(id)
		deck.cards = append(deck.cards, c)
	}
	rand.Shuffle(len(deck.cards), func(i, j int) {
		deck.cards[i], deck.cards[j] = deck.cards[j], deck.cards[i]
	})
	return deck
}

func newDeckOf(ids ...int) *Deck {
	deck := &Deck{cards: make([]card.Card, 0, len(ids))}
	for _, id := range ids {
		c, _ := card.New(id)
		deck.cards = append(deck.cards, c)
	}
	return deck
}

func (d *Deck) Draw() (card.Card, bool) {
	if len(d.cards) == 0 {
		return card.Back, false
	}
	c := d.cards[0]
	d.cards = d.cards[1:]
	return c, true
}

func (d *Deck) Bottom() (card.Card, bool) {
	if len(d.cards) == 0 {
		return card.Back, false
	}
	return d.cards[len(d.cards)-1], true
}

func (d *Deck) Size() int {
	return len(d.cards)
}

func (d *Deck) Empty() bool {
	return len(d.cards) == 0
}
