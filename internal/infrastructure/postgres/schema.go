package postgres

import (
	"context"
	"fmt"
	"strings"
)

// schema crea las tablas del kardex. seq conserva el orden de inserción del ledger y del catálogo.
const schema = `
CREATE TABLE IF NOT EXISTS categories (
	seq         BIGSERIAL,
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL,
	updated_at  TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS products (
	seq          BIGSERIAL,
	id           TEXT PRIMARY KEY,
	sku          TEXT NOT NULL,
	name         TEXT NOT NULL,
	description  TEXT NOT NULL DEFAULT '',
	category_id  TEXT NOT NULL REFERENCES categories(id),
	price        NUMERIC NOT NULL DEFAULT 0,
	min_stock    NUMERIC NOT NULL DEFAULT 0,
	unit_measure TEXT NOT NULL DEFAULT '',
	created_at   TIMESTAMPTZ NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_products_sku ON products (LOWER(sku));
CREATE INDEX IF NOT EXISTS idx_products_category ON products (category_id);

CREATE TABLE IF NOT EXISTS transactions (
	seq        BIGSERIAL PRIMARY KEY,
	id         TEXT NOT NULL UNIQUE,
	product_id TEXT NOT NULL REFERENCES products(id),
	type       TEXT NOT NULL CHECK (type IN ('entry', 'exit')),
	quantity   NUMERIC NOT NULL CHECK (quantity > 0),
	unit_cost  NUMERIC NOT NULL DEFAULT 0,
	date       TIMESTAMPTZ NOT NULL,
	notes      TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL,
	created_by TEXT
);

CREATE INDEX IF NOT EXISTS idx_transactions_product ON transactions (product_id, seq);

CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	email         TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	name          TEXT NOT NULL,
	role          TEXT NOT NULL,
	status        TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL,
	updated_at    TIMESTAMPTZ NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users (LOWER(email));
`

// Migrate aplica el esquema (idempotente).
func Migrate(ctx context.Context, q Querier) error {
	for _, stmt := range strings.Split(schema, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
