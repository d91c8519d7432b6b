package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/jose-valero/match-scoreboard/internal/adapters/discord"
	"github.com/jose-valero/match-scoreboard/internal/adapters/scoresapi"
	"github.com/jose-valero/match-scoreboard/internal/adapters/web"
	"github.com/jose-valero/match-scoreboard/internal/app/service"
	"github.com/jose-valero/match-scoreboard/internal/infra/config"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg := config.Load("SCORES_API_URL")

	// el request id de chi viaja hasta el backend de scores
	api := scoresapi.New(cfg.ScoresAPIURL,
		scoresapi.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
		scoresapi.WithRequestIDFunc(middleware.GetReqID),
	)
	log.Printf("✅ scores api en %s", api.BaseURL())

	var announcer service.Announcer
	if cfg.DiscordWebhookURL != "" {
		a, err := discord.NewAnnouncer(cfg.DiscordWebhookURL)
		if err != nil {
			log.Fatalf("discord: %v", err)
		}
		announcer = a
		log.Println("✅ anuncios de discord activos")
	}

	setupSvc := service.NewMatchSetupService(api, announcer)
	boardSvc := service.NewScoreboardService(api)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := web.New(boardSvc, setupSvc).Run(ctx, cfg.HTTPAddr); err != nil {
		log.Fatalf("http server: %v", err)
	}
	log.Println("👋 dashboard apagado")
}
