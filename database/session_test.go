package database

import (
	"fmt"
	"sync"
	"testing"

	"github.com/durak-online/server/card"
	"github.com/durak-online/server/consts"
	"github.com/durak-online/server/game"
	"github.com/durak-online/server/model"
	"github.com/stretchr/testify/require"
)

func seatedSession(t *testing.T, id int64, seats int) (*Session, []*Player) {
	t.Helper()
	s := newSession(id, seats)
	players := make([]*Player, seats)
	for i := range players {
		players[i] = &Player{ID: id*100 + int64(i), Name: fmt.Sprintf("seat%d", i)}
		require.NoError(t, s.Join(players[i]))
		require.Equal(t, i, players[i].Seat)
	}
	return s, players
}

func handFrom(t *testing.T, ids ...int) *game.Hand {
	t.Helper()
	hand := game.NewHand()
	for _, id := range ids {
		c, err := card.New(id)
		require.NoError(t, err)
		hand.Deal(c)
	}
	return hand
}

func enginePartition(g *game.Game) int {
	count := g.Deck.Size() + len(g.Discard)
	for _, hand := range g.Seats {
		count += hand.Size()
	}
	for _, pair := range g.Pairs {
		count += len(pair)
	}
	return count
}

func TestJoinFillsSeatsThenCloses(t *testing.T) {
	s, _ := seatedSession(t, 1, 3)
	require.Equal(t, consts.SessionWaitingReady, s.State())

	late := &Player{ID: 999, Name: "late"}
	require.Equal(t, consts.ErrorsSessionRunning, s.Join(late))
}

func TestLeaveReindexesWhileGathering(t *testing.T) {
	s := newSession(2, 3)
	first := &Player{ID: 21, Name: "first"}
	second := &Player{ID: 22, Name: "second"}
	require.NoError(t, s.Join(first))
	require.NoError(t, s.Join(second))
	players.Set(first.ID, first)
	players.Set(second.ID, second)
	defer deletePlayer(first.ID)
	defer deletePlayer(second.ID)

	s.Leave(first)
	require.Equal(t, int64(0), first.SessionID)
	require.Equal(t, 0, second.Seat)
}

// A seat that readied and then left must not count toward the quorum:
// its signal leaves with it, so the replacement seat still has to ready
// before the engine is constructed.
func TestLeaveClearsReadySignalWhileGathering(t *testing.T) {
	s := newSession(9, 2)
	quitter := &Player{ID: 91, Name: "quitter"}
	require.NoError(t, s.Join(quitter))
	_, err := s.Ready(quitter)
	require.NoError(t, err)
	s.Leave(quitter)

	stayer := &Player{ID: 92, Name: "stayer"}
	joiner := &Player{ID: 93, Name: "joiner"}
	require.NoError(t, s.Join(stayer))
	require.NoError(t, s.Join(joiner))

	info, err := s.Ready(stayer)
	require.NoError(t, err)
	require.Equal(t, model.WaitInfo{Ready: 1, Desired: 2}, info)
	require.Nil(t, s.Game())
	require.Equal(t, consts.SessionWaitingReady, s.State())

	info, err = s.Ready(joiner)
	require.NoError(t, err)
	require.Equal(t, model.WaitInfo{Ready: 2, Desired: 2}, info)
	require.NotNil(t, s.Game())
	require.Equal(t, consts.SessionPlaying, s.State())
}

// Racing ready signals must fire the Playing transition exactly once:
// the engine pointer is check-and-set under the session lock.
func TestReadyQuorumConstructsEngineOnce(t *testing.T) {
	s, players := seatedSession(t, 3, 3)

	var wg sync.WaitGroup
	for _, p := range players {
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(p *Player) {
				defer wg.Done()
				_, _ = s.Ready(p)
			}(p)
		}
	}
	wg.Wait()

	require.NotNil(t, s.Game())
	require.Equal(t, consts.SessionPlaying, s.State())
	info, err := s.Ready(players[0])
	require.NoError(t, err)
	require.Equal(t, model.WaitInfo{Ready: 3, Desired: 3}, info)
	require.Equal(t, 52, enginePartition(s.Game()))
}

func TestSnapshotScopesToTheRequestingSeat(t *testing.T) {
	s, players := seatedSession(t, 4, 2)
	for _, p := range players {
		_, err := s.Ready(p)
		require.NoError(t, err)
	}

	snapshot, err := s.Snapshot(players[0])
	require.NoError(t, err)
	require.Equal(t, 0, snapshot.Seat)
	require.Len(t, snapshot.Hand, consts.HandSize)
	require.Equal(t, []int{6, 6}, snapshot.Sizes)
	require.Equal(t, []string{"seat0", "seat1"}, snapshot.Names)
	require.Equal(t, "attack", snapshot.Phase)
	require.Equal(t, 40, snapshot.DeckSize)
	require.Empty(t, snapshot.Pairs)

	g := s.Game()
	bottom, ok := g.Deck.Bottom()
	require.True(t, ok)
	require.Equal(t, bottom.ID(), snapshot.Bottom)
	require.ElementsMatch(t, g.Seats[0].IDs(), snapshot.Hand)
}

func TestSnapshotBeforeStart(t *testing.T) {
	s, players := seatedSession(t, 5, 2)
	_, err := s.Snapshot(players[0])
	require.Equal(t, consts.ErrorsNotPlaying, err)
}

func TestEndRoundGuards(t *testing.T) {
	s, players := seatedSession(t, 6, 2)
	_, err := s.EndRound(players[0])
	require.Equal(t, consts.ErrorsNotPlaying, err)

	for _, p := range players {
		_, err = s.Ready(p)
		require.NoError(t, err)
	}
	_, err = s.EndRound(players[0])
	require.Equal(t, consts.ErrorsTableEmpty, err)
}

// Only the round's attacker or defender may resolve the table; a
// bystander seat cannot force the defender to take.
func TestEndRoundRejectsBystanderSeats(t *testing.T) {
	s, players := seatedSession(t, 10, 3)
	for _, p := range players {
		_, err := s.Ready(p)
		require.NoError(t, err)
	}

	g := s.Game()
	opening := g.Seats[g.Attacker].IDs()[0]
	require.NoError(t, s.Play(players[g.Attacker], opening, game.NoCover))

	bystander := players[3-g.Attacker-g.Defender]
	_, err := s.EndRound(bystander)
	require.Equal(t, consts.ErrorsNotYourRound, err)
	require.Len(t, s.Game().Pairs, 1)

	// The defender taking the table is a legitimate resolution.
	condition, err := s.EndRound(players[g.Defender])
	require.NoError(t, err)
	require.Equal(t, game.ConditionOngoing, condition)
}

func TestEndRoundEndsTheSession(t *testing.T) {
	s, players := seatedSession(t, 7, 2)
	for _, p := range players {
		_, err := s.Ready(p)
		require.NoError(t, err)
	}

	// Craft an endgame: empty deck, seat 0 out after discard, seat 1
	// left holding a card.
	s.Lock()
	s.game = &game.Game{
		Seats:    []*game.Hand{handFrom(t), handFrom(t, 10)},
		Active:   []bool{true, true},
		Deck:     &game.Deck{},
		Trump:    card.Diamonds,
		Attacker: 0,
		Defender: 1,
		Phase:    game.PhaseDefend,
		Pairs:    [][]card.Card{{mustCard(t, 4), mustCard(t, 6)}},
	}
	s.Unlock()

	condition, err := s.EndRound(players[0])
	require.NoError(t, err)
	loser, ok := condition.Loser()
	require.True(t, ok)
	require.Equal(t, 1, loser)
	require.Equal(t, consts.SessionEnded, s.State())

	err = s.Play(players[1], 10, game.NoCover)
	require.Equal(t, consts.ErrorsMatchEnded, err)
	_, err = s.EndRound(players[0])
	require.Equal(t, consts.ErrorsMatchEnded, err)
}

func mustCard(t *testing.T, id int) card.Card {
	t.Helper()
	c, err := card.New(id)
	require.NoError(t, err)
	return c
}

// Concurrent pollers against one session: snapshots, plays and round
// resolutions interleave arbitrarily, yet the 52-card partition holds
// at every observation.
func TestConcurrentPollersKeepPartition(t *testing.T) {
	s, players := seatedSession(t, 8, 4)
	for _, p := range players {
		_, err := s.Ready(p)
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	for _, p := range players {
		wg.Add(1)
		go func(p *Player) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				snapshot, err := s.Snapshot(p)
				if err != nil {
					return
				}
				for _, id := range snapshot.Hand {
					if s.Play(p, id, game.NoCover) == nil {
						break
					}
				}
				_, _ = s.EndRound(p)
			}
		}(p)
	}
	wg.Wait()

	require.Equal(t, 52, enginePartition(s.Game()))
}
