package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/durak-online/server/consts"
	"github.com/durak-online/server/database"
	"github.com/stretchr/testify/require"
)

func TestDispatchRejectsUnknownInput(t *testing.T) {
	p := &database.Player{ID: 9100}
	_, err := Dispatch(p, "")
	require.Equal(t, consts.ErrorsInputInvalid, err)
	_, err = Dispatch(p, "bogus")
	require.Equal(t, consts.ErrorsInputInvalid, err)
	_, err = Dispatch(p, "start")
	require.Equal(t, consts.ErrorsInputInvalid, err)
}

func TestDispatchRequiresSeat(t *testing.T) {
	p := &database.Player{ID: 9200}
	for _, line := range []string{"ready", "wait", "play", "end"} {
		_, err := Dispatch(p, line)
		require.Equal(t, consts.ErrorsNotSeated, err, line)
	}
}

func TestProtocolFlow(t *testing.T) {
	oldSeats := database.DesiredSeats
	database.DesiredSeats = 2
	defer func() { database.DesiredSeats = oldSeats }()

	alice := &database.Player{ID: 9301}
	bob := &database.Player{ID: 9302}

	reply, err := Dispatch(alice, "start alice")
	require.NoError(t, err)
	require.Equal(t, "start", reply)

	// start is idempotent for a seated player.
	reply, err = Dispatch(alice, "start alice")
	require.NoError(t, err)
	require.Equal(t, "start", reply)

	reply, err = Dispatch(alice, "wait")
	require.NoError(t, err)
	require.Equal(t, "wait 0 2", reply)

	reply, err = Dispatch(bob, "start bob")
	require.NoError(t, err)
	require.Equal(t, "start", reply)

	reply, err = Dispatch(alice, "ready")
	require.NoError(t, err)
	require.Equal(t, "wait 1 2", reply)

	reply, err = Dispatch(bob, "ready")
	require.NoError(t, err)
	require.Equal(t, "wait 2 2", reply)

	// State poll: the requester sees its own hand, everyone else only
	// as counts.
	reply, err = Dispatch(alice, "play")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(reply, "play\n"))
	require.Contains(t, reply, "seat 0\n")
	require.Contains(t, reply, "sizes 6 6\n")
	require.Contains(t, reply, "names alice bob\n")
	require.Contains(t, reply, "phase attack\n")

	// Resolving an empty table is rejected.
	_, err = Dispatch(alice, "end")
	require.Equal(t, consts.ErrorsTableEmpty, err)

	session := database.GetSession(alice.SessionID)
	require.NotNil(t, session)
	g := session.Game()
	require.NotNil(t, g)

	attacker := alice
	if bob.Seat == g.Attacker {
		attacker = bob
	}
	opening := g.Seats[g.Attacker].IDs()[0]

	reply, err = Dispatch(attacker, fmt.Sprintf("play %d", opening))
	require.NoError(t, err)
	require.Equal(t, "ok", reply)

	// The card already left the attacker's hand: replaying it is a
	// structured rejection, not a dropped connection.
	reply, err = Dispatch(attacker, fmt.Sprintf("play %d", opening))
	require.NoError(t, err)
	require.Equal(t, "illegal", reply)

	reply, err = Dispatch(alice, "end")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(reply, "end "))

	_, err = Dispatch(alice, "play x")
	require.Equal(t, consts.ErrorsInputInvalid, err)
}
