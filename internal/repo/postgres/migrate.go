package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver name = "pgx"
	"github.com/pressly/goose/v3"

	"github.com/Gunvolt24/consumer_handler/internal/ports"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate — применяет встроенные миграции (goose) к базе dsn.
func Migrate(ctx context.Context, dsn string, log ports.Logger) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("migrations fs: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectPostgres, db, fsys,
		goose.WithLogger(gooseLogger{ctx: ctx, log: log}),
	)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	for _, r := range results {
		log.Infof(ctx, "migration applied: %s", r)
	}
	return nil
}

// gooseLogger — направляет вывод goose в логгер приложения.
type gooseLogger struct {
	ctx context.Context
	log ports.Logger
}

func (g gooseLogger) Printf(format string, v ...any) { g.log.Infof(g.ctx, format, v...) }
func (g gooseLogger) Fatalf(format string, v ...any) { g.log.Errorf(g.ctx, format, v...) }
