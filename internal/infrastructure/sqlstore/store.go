// Package sqlstore implementa los repositorios del kardex sobre database/sql, con SQLite o MySQL.
//
// Las cantidades y costos se guardan como texto decimal (sin pasar por float) y las fechas como
// RFC3339 en UTC. La columna seq conserva el orden de inserción del ledger.
//
// RunForProduct serializa las altas por producto con un mutex en proceso y una transacción SQL;
// en MySQL además bloquea la fila del producto con SELECT ... FOR UPDATE.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-sql-driver/mysql"
	"github.com/mattn/go-sqlite3"

	"github.com/jhoicas/kardex-api/internal/application/inventory"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// Drivers soportados.
const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

var _ inventory.TxRunner = (*Store)(nil)

// queryer es lo común entre *sql.DB y *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store agrupa la conexión y el dialecto.
type Store struct {
	db      *sql.DB
	dialect dialect
	locks   sync.Map // productID -> *sync.Mutex
}

// Open abre la base, aplica el esquema y devuelve el store.
// Con SQLite se limita el pool a una conexión: ":memory:" vive en una sola conexión y así se evitan SQLITE_BUSY.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	d, err := dialectFor(driver)
	if err != nil {
		return nil, err
	}
	if d.name == DriverMySQL {
		if dsn, err = mysqlDSN(dsn); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open(d.driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: abrir %s: %w", driver, err)
	}
	if d.name == DriverSQLite {
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlstore: ping %s: %w", driver, err)
	}
	s := &Store{db: db, dialect: d}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// mysqlDSN activa clientFoundRows: un UPDATE sin cambios reales debe contar la fila encontrada.
func mysqlDSN(dsn string) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("sqlstore: DSN mysql inválido: %w", err)
	}
	cfg.ClientFoundRows = true
	return cfg.FormatDSN(), nil
}

// Close cierra la conexión.
func (s *Store) Close() error {
	return s.db.Close()
}

// Categories devuelve el repositorio de categorías.
func (s *Store) Categories() *CategoryRepo { return &CategoryRepo{q: s.db} }

// Products devuelve el repositorio de productos.
func (s *Store) Products() *ProductRepo { return &ProductRepo{q: s.db} }

// Transactions devuelve el repositorio del ledger.
func (s *Store) Transactions() *TransactionRepo { return &TransactionRepo{q: s.db} }

// Users devuelve el repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{q: s.db} }

// RunForProduct ejecuta fn dentro de una transacción SQL con el producto bloqueado.
func (s *Store) RunForProduct(ctx context.Context, productID string, fn func(txRepo repository.TransactionRepository) error) error {
	mu := s.productLock(productID)
	mu.Lock()
	defer mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var id string
	err = tx.QueryRowContext(ctx, `SELECT id FROM products WHERE id = ?`+s.dialect.lockClause, productID).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("lock product: %w", err)
	}

	if err := fn(&TransactionRepo{q: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (s *Store) productLock(productID string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(productID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func (s *Store) migrate(ctx context.Context) error {
	for _, stmt := range strings.Split(s.dialect.schema, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			if s.dialect.name == DriverMySQL && isMySQLDuplicateIndex(err) {
				continue
			}
			return fmt.Errorf("sqlstore: migrate: %w", err)
		}
	}
	return nil
}

// =============================================================================
// ERRORES DEL DRIVER
// =============================================================================

func isUniqueViolation(err error) bool {
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique || liteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1451 || myErr.Number == 1452
	}
	return false
}

// isMySQLDuplicateIndex: MySQL no soporta CREATE INDEX IF NOT EXISTS; un índice repetido no es error de migración.
func isMySQLDuplicateIndex(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == 1061
}
