// Command seedaccess loads the document access list into Postgres. It is a
// one-shot, idempotent seeder: rerunning it updates names and emails in
// place.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"propale/internal/docaccess"
	"propale/internal/platform/logger"
)

const schema = `
CREATE TABLE IF NOT EXISTS document_access (
	document_id      TEXT PRIMARY KEY,
	client_email     TEXT NOT NULL,
	progineers_email TEXT NOT NULL,
	document_name    TEXT NOT NULL
)`

const upsert = `
INSERT INTO document_access (document_id, client_email, progineers_email, document_name)
VALUES ($1, $2, $3, $4)
ON CONFLICT (document_id) DO UPDATE SET
	client_email     = EXCLUDED.client_email,
	progineers_email = EXCLUDED.progineers_email,
	document_name    = EXCLUDED.document_name`

func main() {
	log := logger.New(true)

	if err := run(context.Background()); err != nil {
		log.Error("seed failed", "error", err.Error())
		os.Exit(1)
	}
	log.Info("document access list seeded", "entries", len(docaccess.Entries()))
}

func run(ctx context.Context) error {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	for _, e := range docaccess.Entries() {
		_, err := pool.Exec(ctx, upsert, e.DocumentID, e.ClientEmail, e.IssuerEmail, e.DocumentName)
		if err != nil {
			return fmt.Errorf("seed %s: %w", e.DocumentID, err)
		}
	}
	return nil
}
