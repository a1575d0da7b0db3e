package sqlstore

import "fmt"

type dialect struct {
	name       string
	driverName string
	lockClause string
	schema     string
}

func dialectFor(driver string) (dialect, error) {
	switch driver {
	case DriverSQLite:
		return dialect{name: DriverSQLite, driverName: "sqlite3", schema: sqliteSchema}, nil
	case DriverMySQL:
		return dialect{name: DriverMySQL, driverName: "mysql", lockClause: " FOR UPDATE", schema: mysqlSchema}, nil
	}
	return dialect{}, fmt.Errorf("sqlstore: driver no soportado %q", driver)
}

const sqliteSchema = `
PRAGMA foreign_keys = ON;
CREATE TABLE IF NOT EXISTS categories (
	seq         INTEGER PRIMARY KEY AUTOINCREMENT,
	id          TEXT NOT NULL UNIQUE,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	created_at  TEXT NOT NULL,
	updated_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS products (
	seq          INTEGER PRIMARY KEY AUTOINCREMENT,
	id           TEXT NOT NULL UNIQUE,
	sku          TEXT NOT NULL,
	name         TEXT NOT NULL,
	description  TEXT NOT NULL DEFAULT '',
	category_id  TEXT NOT NULL REFERENCES categories(id),
	price        TEXT NOT NULL DEFAULT '0',
	min_stock    TEXT NOT NULL DEFAULT '0',
	unit_measure TEXT NOT NULL DEFAULT '',
	created_at   TEXT NOT NULL,
	updated_at   TEXT NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_products_sku ON products (sku COLLATE NOCASE);
CREATE INDEX IF NOT EXISTS idx_products_category ON products (category_id);

CREATE TABLE IF NOT EXISTS transactions (
	seq        INTEGER PRIMARY KEY AUTOINCREMENT,
	id         TEXT NOT NULL UNIQUE,
	product_id TEXT NOT NULL REFERENCES products(id),
	type       TEXT NOT NULL CHECK (type IN ('entry', 'exit')),
	quantity   TEXT NOT NULL,
	unit_cost  TEXT NOT NULL DEFAULT '0',
	date       TEXT NOT NULL,
	notes      TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	created_by TEXT
);

CREATE INDEX IF NOT EXISTS idx_transactions_product ON transactions (product_id, seq);

CREATE TABLE IF NOT EXISTS users (
	seq           INTEGER PRIMARY KEY AUTOINCREMENT,
	id            TEXT NOT NULL UNIQUE,
	email         TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	name          TEXT NOT NULL,
	role          TEXT NOT NULL,
	status        TEXT NOT NULL,
	created_at    TEXT NOT NULL,
	updated_at    TEXT NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users (email COLLATE NOCASE);
`

// En MySQL la colación por defecto ya es case-insensitive, así que UNIQUE(sku) y UNIQUE(email) bastan.
const mysqlSchema = `
CREATE TABLE IF NOT EXISTS categories (
	seq         BIGINT AUTO_INCREMENT PRIMARY KEY,
	id          VARCHAR(64) NOT NULL UNIQUE,
	name        VARCHAR(255) NOT NULL,
	description TEXT NOT NULL,
	created_at  VARCHAR(40) NOT NULL,
	updated_at  VARCHAR(40) NOT NULL
) ENGINE=InnoDB;

CREATE TABLE IF NOT EXISTS products (
	seq          BIGINT AUTO_INCREMENT PRIMARY KEY,
	id           VARCHAR(64) NOT NULL UNIQUE,
	sku          VARCHAR(128) NOT NULL UNIQUE,
	name         VARCHAR(255) NOT NULL,
	description  TEXT NOT NULL,
	category_id  VARCHAR(64) NOT NULL,
	price        VARCHAR(64) NOT NULL,
	min_stock    VARCHAR(64) NOT NULL,
	unit_measure VARCHAR(32) NOT NULL,
	created_at   VARCHAR(40) NOT NULL,
	updated_at   VARCHAR(40) NOT NULL,
	INDEX idx_products_category (category_id),
	FOREIGN KEY (category_id) REFERENCES categories(id)
) ENGINE=InnoDB;

CREATE TABLE IF NOT EXISTS transactions (
	seq        BIGINT AUTO_INCREMENT PRIMARY KEY,
	id         VARCHAR(64) NOT NULL UNIQUE,
	product_id VARCHAR(64) NOT NULL,
	type       VARCHAR(8) NOT NULL,
	quantity   VARCHAR(64) NOT NULL,
	unit_cost  VARCHAR(64) NOT NULL,
	date       VARCHAR(40) NOT NULL,
	notes      TEXT NOT NULL,
	created_at VARCHAR(40) NOT NULL,
	created_by VARCHAR(64) NULL,
	INDEX idx_transactions_product (product_id, seq),
	FOREIGN KEY (product_id) REFERENCES products(id)
) ENGINE=InnoDB;

CREATE TABLE IF NOT EXISTS users (
	seq           BIGINT AUTO_INCREMENT PRIMARY KEY,
	id            VARCHAR(64) NOT NULL UNIQUE,
	email         VARCHAR(255) NOT NULL UNIQUE,
	password_hash VARCHAR(255) NOT NULL,
	name          VARCHAR(255) NOT NULL,
	role          VARCHAR(32) NOT NULL,
	status        VARCHAR(16) NOT NULL,
	created_at    VARCHAR(40) NOT NULL,
	updated_at    VARCHAR(40) NOT NULL
) ENGINE=InnoDB
`
