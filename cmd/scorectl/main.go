package main

import (
	"log"
	"os"

	"github.com/jose-valero/match-scoreboard/internal/infra/config"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// SCORES_API_URL se puede pasar también por --api
	cfg, err := config.Read()
	if err != nil {
		log.Fatal(err)
	}
	if err := newRootCmd(cfg).Execute(); err != nil {
		os.Exit(1)
	}
}
