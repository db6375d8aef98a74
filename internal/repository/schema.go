package repository

import (
	"context"
	"fmt"
	"log/slog"
)

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS categories (
	id         BIGSERIAL PRIMARY KEY,
	name       TEXT NOT NULL,
	slug       TEXT NOT NULL UNIQUE,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS products (
	id               BIGSERIAL PRIMARY KEY,
	title            TEXT NOT NULL,
	slug             TEXT NOT NULL UNIQUE,
	description      TEXT NOT NULL DEFAULT '',
	reviews          INTEGER NOT NULL DEFAULT 0,
	rating           DOUBLE PRECISION,
	brand            TEXT,
	asin             TEXT,
	features         TEXT,
	price            NUMERIC(12,2) NOT NULL,
	discounted_price NUMERIC(12,2) NOT NULL,
	thumbnails       TEXT NOT NULL,
	previews         TEXT NOT NULL,
	category_id      BIGINT NOT NULL REFERENCES categories(id),
	created_at       TIMESTAMPTZ NOT NULL,
	updated_at       TIMESTAMPTZ NOT NULL
);
`

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS categories (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT NOT NULL,
	slug       TEXT NOT NULL UNIQUE,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS products (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	title            TEXT NOT NULL,
	slug             TEXT NOT NULL UNIQUE,
	description      TEXT NOT NULL DEFAULT '',
	reviews          INTEGER NOT NULL DEFAULT 0,
	rating           REAL,
	brand            TEXT,
	asin             TEXT,
	features         TEXT,
	price            TEXT NOT NULL,
	discounted_price TEXT NOT NULL,
	thumbnails       TEXT NOT NULL,
	previews         TEXT NOT NULL,
	category_id      INTEGER NOT NULL REFERENCES categories(id),
	created_at       TIMESTAMP NOT NULL,
	updated_at       TIMESTAMP NOT NULL
);
`

// EnsureSchema bootstraps the catalog tables for the store's dialect. The
// storefront's own migration tooling owns the production schema; this keeps
// local and test stores usable without it.
func (d *DB) EnsureSchema(ctx context.Context, logger *slog.Logger) error {
	ddl := schemaSQLite
	if d.Dialect == DialectPostgres {
		ddl = schemaPostgres
	}
	if _, err := d.SQL.ExecContext(ctx, ddl); err != nil {
		logger.Error("failed to ensure schema", "error", err)
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
