package main

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/durak-online/server/consts"
	"github.com/durak-online/server/database"
	"github.com/durak-online/server/network"
	"github.com/joho/godotenv"
	"github.com/ratel-online/core/log"
	"github.com/ratel-online/core/util/async"
)

func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Println("main", err)
			async.PrintStackTrace(err)
		}
	}()
	rand.Seed(time.Now().UnixNano())
	if err := godotenv.Load(); err != nil {
		log.Infof("no .env file loaded: %v\n", err)
	}
	if seats, err := strconv.Atoi(os.Getenv("DURAK_SEATS")); err == nil {
		if seats < consts.MinSeats || seats > consts.MaxSeats {
			log.Error(consts.ErrorsSeatsInvalid)
			return
		}
		database.DesiredSeats = seats
	}
	wss := network.NewWebsocketServer(envOr("DURAK_WS_ADDR", ":9998"))
	async.Async(func() {
		log.Error(wss.Serve())
	})
	server := network.NewTcpServer(envOr("DURAK_TCP_ADDR", ":9999"))
	log.Error(server.Serve())
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
