package network

import (
	"github.com/durak-online/server/consts"
	"github.com/durak-online/server/database"
	"github.com/durak-online/server/service"
	"github.com/ratel-online/core/log"
	"github.com/ratel-online/core/network"
	"github.com/ratel-online/core/protocol"
)

// Network is interface of all kinds of network.
type Network interface {
	Serve() error
}

// handle runs one seat's connection: read a request, dispatch it,
// write the reply. Any transport fault terminates only this handler;
// the session keeps serving the remaining seats.
func handle(rwc protocol.ReadWriteCloser) error {
	c := network.Wrapper(rwc)
	defer func() {
		err := c.Close()
		if err != nil {
			log.Error(err)
		}
	}()
	log.Info("new player connected! ")
	player := database.Connected(c)
	defer player.Offline()
	for {
		packet, err := player.Read()
		if err != nil {
			log.Error(err)
			return err
		}
		reply, err := service.Dispatch(player, packet.String())
		if err != nil {
			if e, ok := err.(consts.Error); ok && e.Exit {
				_ = player.WriteError(err)
				return err
			}
			if err = player.WriteError(err); err != nil {
				return err
			}
			continue
		}
		if err = player.WriteString(reply); err != nil {
			return err
		}
	}
}
