package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jose-valero/match-scoreboard/internal/adapters/ballchasing"
	"github.com/jose-valero/match-scoreboard/internal/adapters/httpapi"
	"github.com/jose-valero/match-scoreboard/internal/adapters/toornament"
	"github.com/jose-valero/match-scoreboard/internal/app/service"
	"github.com/jose-valero/match-scoreboard/internal/infra/config"
	"github.com/jose-valero/match-scoreboard/internal/infra/storage"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg := config.Load("DATABASE_URL")

	db, err := storage.Open(context.Background(), cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if err := storage.Migrate(db); err != nil {
		log.Fatal("migrate:", err)
	}
	log.Printf("✅ DB lista y migrada (%s)", cfg.DatabaseDriver)

	store := storage.NewStore(db)
	var opts []httpapi.Option
	var importer *service.ImportService
	if cfg.BallchasingAPIKey != "" {
		var tournaments service.TournamentSource
		if cfg.ToornamentConfigured() {
			tournaments = toornament.New(toornament.Credentials{
				APIKey:       cfg.ToornamentAPIKey,
				ClientID:     cfg.ToornamentClientID,
				ClientSecret: cfg.ToornamentClientSecret,
			})
		}
		importer = service.NewImportService(store, ballchasing.New(cfg.BallchasingAPIKey), tournaments)
		opts = append(opts, httpapi.WithImporter(importer))
		log.Printf("📥 import habilitado (toornament=%t)", tournaments != nil)
	}

	srv := httpapi.New(store, opts...)
	go srv.Start(cfg.HTTPAddr)

	// Esperar señal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	if importer != nil {
		log.Println("[import] esperando imports en curso...")
		importer.Wait()
	}
}
