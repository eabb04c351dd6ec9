package consts

import "time"

// SessionState is the lifecycle of one match session. Transitions only
// move forward: seats fill up, everyone readies, the match runs, the
// match ends.
type SessionState int

const (
	_ SessionState = iota
	SessionWaitingSeats
	SessionWaitingReady
	SessionPlaying
	SessionEnded
)

var SessionStates = map[SessionState]string{
	SessionWaitingSeats: "WaitingSeats",
	SessionWaitingReady: "WaitingReady",
	SessionPlaying:      "Playing",
	SessionEnded:        "Ended",
}

func (s SessionState) String() string {
	return SessionStates[s]
}

const (
	MinSeats = 2
	MaxSeats = 6
	HandSize = 6

	DefaultSeats = 4

	SessionSweepInterval = 1 * time.Minute
)

type Error struct {
	Code int
	Msg  string
	Exit bool
}

func (e Error) Error() string {
	return e.Msg
}

func NewErr(code int, exit bool, msg string) Error {
	return Error{Code: code, Msg: msg, Exit: exit}
}

var (
	ErrorsExist          = NewErr(1, true, "Exist. ")
	ErrorsInputInvalid   = NewErr(1, false, "Input invalid. ")
	ErrorsSessionInvalid = NewErr(1, true, "Session invalid. ")
	ErrorsSessionRunning = NewErr(1, false, "Join fail, session is running. ")
	ErrorsSessionFull    = NewErr(1, false, "Join fail, session seats are full. ")
	ErrorsNotSeated      = NewErr(1, false, "Not seated, send start first. ")
	ErrorsNotPlaying     = NewErr(1, false, "Match not started. ")
	ErrorsMatchEnded     = NewErr(1, false, "Match already ended. ")
	ErrorsCardInvalid    = NewErr(1, false, "Card invalid. ")
	ErrorsTableEmpty     = NewErr(1, false, "Table is empty. ")
	ErrorsNotYourRound   = NewErr(1, false, "Only attacker or defender can end the round. ")

	// ErrorsSeatsInvalid is the configuration error of game.New, a
	// caller bug rather than a game event.
	ErrorsSeatsInvalid = NewErr(2, true, "Seats invalid. ")

	// ErrorsIllegalMove marks a play that failed validation. Kept
	// distinct from transport errors so callers can answer it with a
	// structured rejection instead of dropping the connection.
	ErrorsIllegalMove = NewErr(3, false, "Illegal move. ")
)
