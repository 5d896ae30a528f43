package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	conf "watchsync/internal/config"
	"watchsync/internal/db"
	logs "watchsync/internal/logs"
	syncer "watchsync/internal/syncer"
)

var ver = "1.0.0"

func main() {
	log := logs.New("watchsync.log", true)
	log.Info().Str("ver", ver).Msg("watchsync starting")

	cfg := conf.Load()

	dbh, err := db.OpenAt(".")
	if err != nil {
		log.Fatal().Err(err).Msg("DB open error")
	}
	if err := dbh.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("DB migrate error")
	}
	sqlDB, _ := dbh.DB.DB()
	defer sqlDB.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	s := syncer.New(log, cfg, dbh.DB)

	// Fire-and-forget batch job: failures are printed, not propagated.
	// The process exits 0 either way.
	if err := s.RunOnce(ctx); err != nil {
		fmt.Println(describe(err))
		log.Error().Err(err).Msg("sync failed")
		return
	}
	log.Info().Msg("watchsync finished")
}

// describe maps an orchestration error onto one of the three human-readable
// failure messages: timeout, connection failure, or everything else.
func describe(err error) string {
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return "timed out waiting for the remote API..."
	}
	var operr *net.OpError
	if errors.As(err, &operr) {
		return fmt.Sprintf("%v — connection error", err)
	}
	return fmt.Sprintf("%v — unexpected error", err)
}
