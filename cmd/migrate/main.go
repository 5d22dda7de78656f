package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pathways-hq/pathways/internal/config"
	"github.com/pathways-hq/pathways/internal/logger"
)

// Applies the SQL files under migrations/ in lexical order. Each file
// runs in its own transaction and is recorded in schema_migrations so
// reruns are no-ops.
func main() {
	dir := flag.String("dir", "migrations", "Directory containing migration SQL files")
	dryRun := flag.Bool("dry-run", false, "Print pending migrations without executing them")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logg, err := logger.NewLogger()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	db, err := sqlx.Connect("postgres", cfg.Postgres.GetDSN())
	if err != nil {
		logg.Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`); err != nil {
		logg.Fatalw("failed to ensure schema_migrations table", "error", err)
	}

	files, err := filepath.Glob(filepath.Join(*dir, "*.sql"))
	if err != nil {
		logg.Fatalw("failed to list migration files", "error", err)
	}
	sort.Strings(files)

	applied := map[string]bool{}
	var versions []string
	if err := db.SelectContext(ctx, &versions, `SELECT version FROM schema_migrations`); err != nil {
		logg.Fatalw("failed to read applied migrations", "error", err)
	}
	for _, v := range versions {
		applied[v] = true
	}

	ran := 0
	for _, file := range files {
		version := filepath.Base(file)
		if applied[version] {
			continue
		}

		if *dryRun {
			fmt.Printf("pending: %s\n", version)
			continue
		}

		contents, err := os.ReadFile(file)
		if err != nil {
			logg.Fatalw("failed to read migration", "file", file, "error", err)
		}

		tx, err := db.BeginTxx(ctx, nil)
		if err != nil {
			logg.Fatalw("failed to begin transaction", "error", err)
		}
		if _, err := tx.ExecContext(ctx, string(contents)); err != nil {
			_ = tx.Rollback()
			logg.Fatalw("migration failed", "file", version, "error", err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
			_ = tx.Rollback()
			logg.Fatalw("failed to record migration", "file", version, "error", err)
		}
		if err := tx.Commit(); err != nil {
			logg.Fatalw("failed to commit migration", "file", version, "error", err)
		}

		logg.Infow("applied migration", "file", version)
		ran++
	}

	logg.Infow("migration run complete", "applied", ran, "total", len(files))
}
