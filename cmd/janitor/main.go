package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/jose-valero/match-scoreboard/internal/infra/config"
	"github.com/jose-valero/match-scoreboard/internal/infra/storage"
)

// handler corre por schedule (EventBridge) y limpia acumulados viejos.
func handler(ctx context.Context) (string, error) {
	cfg, err := config.Read("DATABASE_URL")
	if err != nil {
		return err.Error(), nil
	}

	db, err := storage.OpenPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Sprintf("pool: %v", err), nil
	}
	defer db.Close()

	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := storage.NewScoreRepo(db).PruneStale(cctx, time.Now().Add(-cfg.ScoresRetention))
	if err != nil {
		return "", fmt.Errorf("prune: %w", err)
	}
	log.Printf("[janitor] %d acumulados borrados (retención %s)", n, cfg.ScoresRetention)
	return "ok", nil
}

func main() { lambda.Start(handler) }
