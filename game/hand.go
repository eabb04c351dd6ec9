package game

import (
	"sort"
	"strings"

	"github.com/durak-online/server/card"
)

// Hand is the unordered card collection of one seat. Card ids are
// unique, so it can never hold duplicates.
type Hand struct {
	cards []card.Card
}

func NewHand() *Hand {
	return &Hand{cards: make([]card.Card, 0, 8)}
}

func (h *Hand) Deal(c card.Card) {
	h.cards = append(h.cards, c)
}

// Play removes c by identity and reports whether it was present.
func (h *Hand) Play(c card.Card) bool {
	for index, held := range h.cards {
		if held == c {
			h.cards[index] = h.cards[len(h.cards)-1]
			h.cards = h.cards[:len(h.cards)-1]
			return true
		}
	}
	return false
}

func (h *Hand) Has(c card.Card) bool {
	for _, held := range h.cards {
		if held == c {
			return true
		}
	}
	return false
}

func (h *Hand) Cards() []card.Card {
	cards := make([]card.Card, len(h.cards))
	copy(cards, h.cards)
	return cards
}

func (h *Hand) IDs() []int {
	ids := make([]int, 0, len(h.cards))
	for _, held := range h.cards {
		ids = append(ids, held.ID())
	}
	return ids
}

func (h *Hand) Size() int {
	return len(h.cards)
}

func (h *Hand) Empty() bool {
	return len(h.cards) == 0
}

func (h *Hand) Sort() {
	sort.Slice(h.cards, func(i, j int) bool {
		return h.cards[i].ID() < h.cards[j].ID()
	})
}

func (h *Hand) String() string {
	parts := make([]string, 0, len(h.cards))
	for _, held := range h.cards {
		parts = append(parts, held.String())
	}
	return strings.Join(parts, " ")
}
