package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/jose-valero/match-scoreboard/internal/adapters/httpapi"
	"github.com/jose-valero/match-scoreboard/internal/infra/config"
	"github.com/jose-valero/match-scoreboard/internal/infra/storage"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg := config.Load("DATABASE_URL")

	// una conexión por cold start, reusada entre invocaciones
	db, err := storage.OpenPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := storage.Migrate(db); err != nil {
		log.Fatal("migrate:", err)
	}

	srv := httpapi.New(storage.NewStore(db))
	lambda.Start(srv.HandleLambda)
}
