package database

import (
	"sync"

	"github.com/durak-online/server/card"
	"github.com/durak-online/server/consts"
	"github.com/durak-online/server/game"
	"github.com/durak-online/server/model"
)

type seat struct {
	playerID int64
	name     string
	ready    bool
}

// Session owns one match: its seats, its readiness quorum, and at most
// one engine. The embedded mutex serializes every read and mutation of
// the engine, including its construction; it is never held across a
// network write.
type Session struct {
	sync.Mutex
	ID      int64 `json:"id"`
	Desired int   `json:"desired"`

	state      consts.SessionState
	seats      []seat
	readyCount int
	game       *game.Game
}

func newSession(id int64, desired int) *Session {
	return &Session{
		ID:      id,
		Desired: desired,
		state:   consts.SessionWaitingSeats,
		seats:   make([]seat, 0, desired),
	}
}

func (s *Session) State() consts.SessionState {
	s.Lock()
	defer s.Unlock()
	return s.state
}

// Join seats a player. Once the desired seat count is reached the
// session stops accepting and waits for the readiness quorum.
func (s *Session) Join(player *Player) error {
	s.Lock()
	defer s.Unlock()
	if s.state != consts.SessionWaitingSeats {
		return consts.ErrorsSessionRunning
	}
	if len(s.seats) >= s.Desired {
		return consts.ErrorsSessionFull
	}
	player.Seat = len(s.seats)
	player.SessionID = s.ID
	s.seats = append(s.seats, seat{playerID: player.ID, name: player.Name})
	if len(s.seats) == s.Desired {
		s.state = consts.SessionWaitingReady
	}
	return nil
}

// Leave frees a seat while the session is still gathering players. A
// running match keeps the seat; the engine treats it as idle.
func (s *Session) Leave(player *Player) {
	s.Lock()
	defer s.Unlock()
	if s.state != consts.SessionWaitingSeats {
		return
	}
	for index := range s.seats {
		if s.seats[index].playerID == player.ID {
			// The seat's ready signal leaves with it, or a later seat
			// would inherit it and fire the quorum short one player.
			if s.seats[index].ready {
				s.readyCount--
			}
			s.seats = append(s.seats[:index], s.seats[index+1:]...)
			break
		}
	}
	player.SessionID = 0
	player.Seat = 0
	for index, st := range s.seats {
		if p := GetPlayer(st.playerID); p != nil {
			p.Seat = index
		}
	}
}

// Ready records a seat's ready signal and reports the quorum. The
// engine is constructed here, under the session lock, with a
// check-and-set on the engine pointer: racing ready messages can fire
// the WaitingReady -> Playing transition only once.
func (s *Session) Ready(player *Player) (model.WaitInfo, error) {
	s.Lock()
	defer s.Unlock()
	if s.state == consts.SessionEnded {
		return model.WaitInfo{}, consts.ErrorsMatchEnded
	}
	if !s.seats[player.Seat].ready {
		s.seats[player.Seat].ready = true
		s.readyCount++
	}
	if s.readyCount == s.Desired && s.game == nil {
		g, err := game.New(s.Desired)
		if err != nil {
			return model.WaitInfo{}, err
		}
		s.game = g
		s.state = consts.SessionPlaying
	}
	return model.WaitInfo{Ready: s.readyCount, Desired: s.Desired}, nil
}

func (s *Session) Wait() model.WaitInfo {
	s.Lock()
	defer s.Unlock()
	return model.WaitInfo{Ready: s.readyCount, Desired: s.Desired}
}

// Snapshot builds the per-seat view of the running match. The caller's
// own hand is listed in full, every other seat only by size.
func (s *Session) Snapshot(player *Player) (model.Snapshot, error) {
	s.Lock()
	defer s.Unlock()
	if s.game == nil {
		return model.Snapshot{}, consts.ErrorsNotPlaying
	}
	g := s.game
	snapshot := model.Snapshot{
		Seat:     player.Seat,
		Hand:     g.Seats[player.Seat].IDs(),
		Sizes:    make([]int, len(g.Seats)),
		Names:    make([]string, len(s.seats)),
		Attacker: g.Attacker,
		Defender: g.Defender,
		Phase:    g.Phase.String(),
		DeckSize: g.Deck.Size(),
		Bottom:   -1,
		Pairs:    make([]model.Pair, 0, len(g.Pairs)),
	}
	for index, hand := range g.Seats {
		snapshot.Sizes[index] = hand.Size()
	}
	for index, st := range s.seats {
		snapshot.Names[index] = st.name
	}
	if bottom, ok := g.Deck.Bottom(); ok {
		snapshot.Bottom = bottom.ID()
	}
	for _, pair := range g.Pairs {
		wire := model.Pair{Attack: pair[0].ID(), Cover: game.NoCover}
		if len(pair) == 2 {
			wire.Cover = pair[1].ID()
		}
		snapshot.Pairs = append(snapshot.Pairs, wire)
	}
	return snapshot, nil
}

// Play submits one card play for the player's seat.
func (s *Session) Play(player *Player, cardID, covering int) error {
	c, err := card.New(cardID)
	if err != nil {
		return consts.ErrorsCardInvalid
	}
	s.Lock()
	defer s.Unlock()
	if s.game == nil {
		return consts.ErrorsNotPlaying
	}
	if s.state == consts.SessionEnded {
		return consts.ErrorsMatchEnded
	}
	return s.game.Play(player.Seat, c, covering)
}

// EndRound resolves the table and rotates the turn. Only the round's
// own attacker (conceding) or defender (taking) may trigger it, and
// never on an empty table; otherwise any seat could spin the turn
// order by polling end.
func (s *Session) EndRound(player *Player) (game.Condition, error) {
	s.Lock()
	defer s.Unlock()
	if s.game == nil {
		return game.ConditionOngoing, consts.ErrorsNotPlaying
	}
	if s.state == consts.SessionEnded {
		return game.ConditionOngoing, consts.ErrorsMatchEnded
	}
	if player.Seat != s.game.Attacker && player.Seat != s.game.Defender {
		return game.ConditionOngoing, consts.ErrorsNotYourRound
	}
	if len(s.game.Pairs) == 0 {
		return game.ConditionOngoing, consts.ErrorsTableEmpty
	}
	condition := s.game.ResetRound()
	if condition.Finished() {
		s.state = consts.SessionEnded
	}
	return condition, nil
}

// Game exposes the engine pointer for tests; production code goes
// through the session operations above.
func (s *Session) Game() *game.Game {
	s.Lock()
	defer s.Unlock()
	return s.game
}

func (s *Session) alive() bool {
	s.Lock()
	defer s.Unlock()
	for _, st := range s.seats {
		if p := GetPlayer(st.playerID); p != nil && p.Online() {
			return true
		}
	}
	return false
}
