package storage

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"time"

	_ "github.com/glebarez/go-sqlite"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

const (
	DriverPgx      = "pgx"      // jackc/pgx stdlib (default)
	DriverPostgres = "postgres" // lib/pq
	DriverSQLite   = "sqlite"   // glebarez/go-sqlite, dev local y tests
)

// ErrUnknownTeam: un slot o un score apunta a un equipo que no existe.
var ErrUnknownTeam = errors.New("unknown team")

func init() {
	// las queries se escriben con ? y se rebindean por driver
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// Open abre la conexión y verifica health.
func Open(ctx context.Context, driver, url string) (*sqlx.DB, error) {
	switch driver {
	case DriverPgx, DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("db driver %q no soportado", driver)
	}

	db, err := sqlx.Open(driver, url)
	if err != nil {
		return nil, err
	}
	if driver == DriverSQLite {
		// un solo writer; además :memory: vive en una sola conexión
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
	}
	db.SetConnMaxLifetime(1 * time.Hour)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

// OpenPool es para las lambdas: pool de pgx chico, expuesto como *sqlx.DB para reusar los repos.
func OpenPool(ctx context.Context, url string) (*sqlx.DB, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("pgx parse config: %w", err)
	}
	cfg.MaxConns = 4
	cfg.MaxConnLifetime = 30 * time.Minute

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("pgxpool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return sqlx.NewDb(stdlib.OpenDBFromPool(pool), DriverPgx), nil
}

// Migrate aplica todas las migraciones embebidas.
func Migrate(db *sqlx.DB) error {
	goose.SetBaseFS(migrations)
	dialect := "postgres"
	if db.DriverName() == DriverSQLite {
		dialect = "sqlite3"
	}
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}
	return goose.Up(db.DB, "migrations")
}

// Store junta los repos; es lo que consume el backend HTTP.
type Store struct {
	*TeamRepo
	*MatchRepo
	*ScoreRepo
	*ImportRepo
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{
		TeamRepo:   NewTeamRepo(db),
		MatchRepo:  NewMatchRepo(db),
		ScoreRepo:  NewScoreRepo(db),
		ImportRepo: NewImportRepo(db),
	}
}
