package card

import (
	"fmt"

	"github.com/fatih/color"
)

type Suit int

const (
	Spades Suit = iota
	Hearts
	Clubs
	Diamonds
)

// BackID is the hidden-back sentinel, one past the 52 real cards. It
// exists for display only and never enters game logic.
const BackID = 52

var suitSymbols = map[Suit]string{
	Spades:   "♠",
	Hearts:   "♥",
	Clubs:    "♣",
	Diamonds: "♦",
}

var suitPaints = map[Suit]func(string, ...interface{}) string{
	Spades:   color.New(color.FgHiWhite).SprintfFunc(),
	Hearts:   color.New(color.FgHiRed).SprintfFunc(),
	Clubs:    color.New(color.FgHiWhite).SprintfFunc(),
	Diamonds: color.New(color.FgHiRed).SprintfFunc(),
}

func (s Suit) String() string {
	return suitSymbols[s]
}

// Rank 0 is the ace and compares lowest; ranks 1..12 are the deuce
// through the king in stored order.
var rankNames = [13]string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

// Card identifies one of the 52 playing cards by id. Suit and rank are
// derived from the id, so a Card never changes after construction.
type Card struct {
	id int
}

func New(id int) (Card, error) {
	if id < 0 || id >= BackID {
		return Card{}, fmt.Errorf("card id %d out of range [0, %d)", id, BackID)
	}
	return Card{id: id}, nil
}

// Back is the face-down card clients render for other seats' hands.
var Back = Card{id: BackID}

func (c Card) ID() int {
	return c.id
}

func (c Card) Suit() Suit {
	return Suit(c.id / 13)
}

func (c Card) Rank() int {
	return c.id % 13
}

func (c Card) Hidden() bool {
	return c.id == BackID
}

func (c Card) String() string {
	if c.Hidden() {
		return "[**]"
	}
	suit := c.Suit()
	return suitPaints[suit]("[%s%s]", rankNames[c.Rank()], suitSymbols[suit])
}
