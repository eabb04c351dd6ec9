package database

import (
	"fmt"
	"sync/atomic"

	"github.com/ratel-online/core/network"
	"github.com/ratel-online/core/protocol"
)

// Player is one connected client. Seat and SessionID are assigned when
// the player joins a session and are only written under that session's
// lock. The online flag is atomic: the connection goroutine flips it
// while the session sweeper reads it.
type Player struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	SessionID int64  `json:"sessionId"`
	Seat      int    `json:"seat"`

	conn   *network.Conn
	online int32
}

func (p *Player) Conn(conn *network.Conn) {
	p.conn = conn
	atomic.StoreInt32(&p.online, 1)
}

func (p *Player) Online() bool {
	return atomic.LoadInt32(&p.online) == 1
}

func (p *Player) Read() (*protocol.Packet, error) {
	return p.conn.Read()
}

func (p *Player) WriteString(data string) error {
	return p.conn.Write(protocol.Packet{
		Body: []byte(data),
	})
}

func (p *Player) WriteError(err error) error {
	return p.conn.Write(protocol.Packet{
		Body: []byte(err.Error() + "\n"),
	})
}

// Offline marks the player gone and detaches them from their session.
// A running match keeps the seat's hand in place; activity flags
// already treat an idle seat correctly, so mid-round disconnects need
// no special handling.
func (p *Player) Offline() {
	atomic.StoreInt32(&p.online, 0)
	session := GetSession(p.SessionID)
	if session != nil {
		session.Leave(p)
		sessionCancel(session)
	}
	deletePlayer(p.ID)
}

func (p Player) String() string {
	return fmt.Sprintf("%s[%d]", p.Name, p.ID)
}
