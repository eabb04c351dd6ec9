package service

import (
	"strconv"
	"strings"

	"github.com/durak-online/server/consts"
	"github.com/durak-online/server/database"
	"github.com/durak-online/server/game"
	"github.com/durak-online/server/render"
)

type servlet func(player *database.Player, args []string) (string, error)

var servlets = map[string]servlet{
	"start": start,
	"ready": ready,
	"wait":  wait,
	"play":  play,
	"end":   end,
}

// Dispatch routes one request line to its servlet and returns the
// reply payload. The caller writes the reply after every lock has been
// released.
func Dispatch(player *database.Player, line string) (string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", consts.ErrorsInputInvalid
	}
	s, ok := servlets[strings.ToLower(fields[0])]
	if !ok {
		return "", consts.ErrorsInputInvalid
	}
	return s(player, fields[1:])
}

func sessionOf(player *database.Player) (*database.Session, error) {
	if player.SessionID == 0 {
		return nil, consts.ErrorsNotSeated
	}
	session := database.GetSession(player.SessionID)
	if session == nil {
		return nil, consts.ErrorsSessionInvalid
	}
	return session, nil
}

func start(player *database.Player, args []string) (string, error) {
	if len(args) == 0 {
		return "", consts.ErrorsInputInvalid
	}
	if player.SessionID != 0 {
		return render.Start(), nil
	}
	player.Name = strings.Join(args, " ")
	if _, err := database.JoinSession(player); err != nil {
		return "", err
	}
	return render.Start(), nil
}

func ready(player *database.Player, args []string) (string, error) {
	session, err := sessionOf(player)
	if err != nil {
		return "", err
	}
	info, err := session.Ready(player)
	if err != nil {
		return "", err
	}
	return render.Wait(info), nil
}

func wait(player *database.Player, args []string) (string, error) {
	session, err := sessionOf(player)
	if err != nil {
		return "", err
	}
	return render.Wait(session.Wait()), nil
}

// play with no arguments is the per-tick state poll; with arguments it
// submits a move: play <cardID> [coverIndex]. A move that fails
// validation answers with a structured rejection instead of dropping
// the connection.
func play(player *database.Player, args []string) (string, error) {
	session, err := sessionOf(player)
	if err != nil {
		return "", err
	}
	if len(args) == 0 {
		snapshot, err := session.Snapshot(player)
		if err != nil {
			return "", err
		}
		return render.Snapshot(snapshot), nil
	}
	cardID, err := strconv.Atoi(args[0])
	if err != nil {
		return "", consts.ErrorsInputInvalid
	}
	covering := game.NoCover
	if len(args) > 1 {
		covering, err = strconv.Atoi(args[1])
		if err != nil {
			return "", consts.ErrorsInputInvalid
		}
	}
	err = session.Play(player, cardID, covering)
	if err == consts.ErrorsIllegalMove {
		return render.Illegal(), nil
	}
	if err != nil {
		return "", err
	}
	return render.Ok(), nil
}

func end(player *database.Player, args []string) (string, error) {
	session, err := sessionOf(player)
	if err != nil {
		return "", err
	}
	condition, err := session.EndRound(player)
	if err != nil {
		return "", err
	}
	return render.End(condition.String()), nil
}
