package game

import (
	"testing"

	"github.com/durak-online/server/card"
	"github.com/stretchr/testify/require"
)

func TestNewDeckHoldsEveryCardOnce(t *testing.T) {
	deck := NewDeck()
	require.Equal(t, card.BackID, deck.Size())
	seen := map[int]bool{}
	for !deck.Empty() {
		c, ok := deck.Draw()
		require.True(t, ok)
		require.False(t, seen[c.ID()])
		seen[c.ID()] = true
	}
	require.Len(t, seen, card.BackID)
	_, ok := deck.Draw()
	require.False(t, ok)
}

func TestDrawComesOffTheTop(t *testing.T) {
	deck := newDeckOf(3, 7, 11)
	c, ok := deck.Draw()
	require.True(t, ok)
	require.Equal(t, 3, c.ID())
	require.Equal(t, 2, deck.Size())
}

func TestBottomStaysUntilEmpty(t *testing.T) {
	deck := newDeckOf(3, 7, 11)
	for !deck.Empty() {
		bottom, ok := deck.Bottom()
		require.True(t, ok)
		require.Equal(t, 11, bottom.ID())
		deck.Draw()
	}
	_, ok := deck.Bottom()
	require.False(t, ok)
}
