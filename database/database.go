package database

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/awesome-cap/hashmap"
	"github.com/durak-online/server/consts"
	"github.com/ratel-online/core/log"
	"github.com/ratel-online/core/network"
	"github.com/ratel-online/core/util/async"
)

// DesiredSeats is the seat quorum for new sessions, set once at boot
// before any connection is accepted.
var DesiredSeats = consts.DefaultSeats

var playerIds int64 = 0
var sessionIds int64 = 0
var players = hashmap.New()
var sessions = hashmap.New()
var joinLock sync.Mutex

func init() {
	async.Async(func() {
		for {
			time.Sleep(consts.SessionSweepInterval)
			sessions.Foreach(func(e *hashmap.Entry) {
				sessionCancel(e.Value().(*Session))
			})
		}
	})
}

func Connected(conn *network.Conn) *Player {
	player := &Player{
		ID: atomic.AddInt64(&playerIds, 1),
	}
	player.Conn(conn)
	players.Set(player.ID, player)
	return player
}

func GetPlayer(playerId int64) *Player {
	if v, ok := players.Get(playerId); ok {
		return v.(*Player)
	}
	return nil
}

func deletePlayer(playerId int64) {
	players.Del(playerId)
}

func GetSession(sessionId int64) *Session {
	if v, ok := sessions.Get(sessionId); ok {
		return v.(*Session)
	}
	return nil
}

// JoinSession seats the player in the open gathering session, creating
// one when every existing session is already running. joinLock keeps
// two simultaneous joiners from both creating a session.
func JoinSession(player *Player) (*Session, error) {
	joinLock.Lock()
	defer joinLock.Unlock()
	var open *Session
	sessions.Foreach(func(e *hashmap.Entry) {
		candidate := e.Value().(*Session)
		if candidate.State() != consts.SessionWaitingSeats {
			return
		}
		if open == nil || candidate.ID < open.ID {
			open = candidate
		}
	})
	if open == nil {
		open = newSession(atomic.AddInt64(&sessionIds, 1), DesiredSeats)
		sessions.Set(open.ID, open)
	}
	if err := open.Join(player); err != nil {
		return nil, err
	}
	return open, nil
}

func deleteSession(session *Session) {
	if session != nil {
		sessions.Del(session.ID)
	}
}

func sessionCancel(session *Session) {
	if session == nil {
		return
	}
	if !session.alive() {
		log.Infof("session %d is not living, removed.\n", session.ID)
		deleteSession(session)
	}
}
