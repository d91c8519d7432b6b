package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	// backend de scores (dashboard / scorectl)
	ScoresAPIURL string        `env:"SCORES_API_URL"`
	HTTPAddr     string        `env:"HTTP_ADDR" env-default:":8080"`
	HTTPTimeout  time.Duration `env:"HTTP_TIMEOUT" env-default:"10s"`

	DatabaseDriver string `env:"DATABASE_DRIVER" env-default:"pgx"` // pgx | postgres | sqlite
	DatabaseURL    string `env:"DATABASE_URL"`

	// janitor: acumulados sin actualizar hace más de esto se borran
	ScoresRetention time.Duration `env:"SCORES_RETENTION" env-default:"720h"`

	// opcional: si viene, se anuncia cada streaming match guardado
	DiscordWebhookURL string `env:"DISCORD_WEBHOOK_URL"`

	// import de acumulados (/init_db); sin key de ballchasing el backend no lo expone
	BallchasingAPIKey      string `env:"BALLCHASING_API_KEY"`
	ToornamentAPIKey       string `env:"TOORNAMENT_API_KEY"`
	ToornamentClientID     string `env:"TOORNAMENT_CLIENT_ID"`
	ToornamentClientSecret string `env:"TOORNAMENT_CLIENT_SECRET"`
}

// ToornamentConfigured: hacen falta las tres credenciales para importar el torneo.
func (c Config) ToornamentConfigured() bool {
	return c.ToornamentAPIKey != "" && c.ToornamentClientID != "" && c.ToornamentClientSecret != ""
}

// Read: .env (si existe) + entorno, y chequea las claves requeridas.
func Read(required ...string) (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	values := map[string]string{
		"SCORES_API_URL":      cfg.ScoresAPIURL,
		"DATABASE_URL":        cfg.DatabaseURL,
		"DISCORD_WEBHOOK_URL": cfg.DiscordWebhookURL,
		"BALLCHASING_API_KEY": cfg.BallchasingAPIKey,
	}
	for _, k := range required {
		if strings.TrimSpace(values[k]) == "" {
			return Config{}, fmt.Errorf("faltante env %s", k)
		}
	}
	return cfg, nil
}

// Load es Read pero corta el proceso si falta algo.
func Load(required ...string) Config {
	cfg, err := Read(required...)
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}
