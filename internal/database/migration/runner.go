package migration

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/lock"
	"go.uber.org/zap"
)

//go:embed sql/*.sql
var embedded embed.FS

// Runner applies the embedded schema migrations under a postgres session lock
// so that concurrently starting instances migrate once.
type Runner struct {
	Logger *zap.Logger
}

func (r Runner) Run(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("nil db")
	}

	fsys, err := Files()
	if err != nil {
		return err
	}

	locker, err := lock.NewPostgresSessionLocker()
	if err != nil {
		return err
	}

	p, err := goose.NewProvider(goose.DialectPostgres, db, fsys, goose.WithSessionLocker(locker))
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}

	results, err := p.Up(ctx)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	if r.Logger != nil {
		for _, res := range results {
			r.Logger.Info("migration applied",
				zap.Int64("version", res.Source.Version),
				zap.String("file", res.Source.Path),
				zap.Duration("duration", res.Duration),
			)
		}
		if len(results) == 0 {
			r.Logger.Debug("schema up to date")
		}
	}
	return nil
}

// Files returns the migration sources rooted at the directory that holds them.
func Files() (fs.FS, error) {
	return fs.Sub(embedded, "sql")
}
