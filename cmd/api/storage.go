package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jhoicas/kardex-api/internal/application/inventory"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
	"github.com/jhoicas/kardex-api/internal/infrastructure/memory"
	"github.com/jhoicas/kardex-api/internal/infrastructure/postgres"
	"github.com/jhoicas/kardex-api/internal/infrastructure/sqlstore"
	"github.com/jhoicas/kardex-api/pkg/config"
	"github.com/jhoicas/kardex-api/pkg/logger"
)

// storage agrupa los repositorios del almacén elegido por configuración.
type storage struct {
	categories   repository.CategoryRepository
	products     repository.ProductRepository
	transactions repository.TransactionRepository
	users        repository.UserRepository
	txRunner     inventory.TxRunner
	close        func()
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrar esquema: %w", err)
		}
		return &storage{
			categories:   postgres.NewCategoryRepository(pool),
			products:     postgres.NewProductRepository(pool),
			transactions: postgres.NewTransactionRepository(pool),
			users:        postgres.NewUserRepository(pool),
			txRunner:     postgres.NewTxRunner(pool),
			close:        pool.Close,
		}, nil

	case config.StorageSQLite, config.StorageMySQL:
		s, err := sqlstore.Open(ctx, cfg.Storage.Driver, cfg.Storage.SQLDSN)
		if err != nil {
			return nil, fmt.Errorf("abrir %s: %w", cfg.Storage.Driver, err)
		}
		return &storage{
			categories:   s.Categories(),
			products:     s.Products(),
			transactions: s.Transactions(),
			users:        s.Users(),
			txRunner:     s,
			close: func() {
				if err := s.Close(); err != nil {
					log.Error().Err(err).Msg("cerrar base de datos")
				}
			},
		}, nil

	case config.StorageMemory:
		s := memory.NewStore()
		path := cfg.Storage.SnapshotPath
		if path != "" {
			if err := loadSnapshot(s, path); err != nil {
				return nil, err
			}
			log.Info().Str("path", path).Msg("snapshot cargado")
		}
		return &storage{
			categories:   s.Categories(),
			products:     s.Products(),
			transactions: s.Transactions(),
			users:        s.Users(),
			txRunner:     s,
			close: func() {
				if path == "" {
					return
				}
				if err := saveSnapshot(s, path); err != nil {
					log.Error().Err(err).Str("path", path).Msg("guardar snapshot")
					return
				}
				log.Info().Str("path", path).Msg("snapshot guardado")
			},
		}, nil
	}
	return nil, fmt.Errorf("almacén no soportado: %s", cfg.Storage.Driver)
}

func loadSnapshot(s *memory.Store, path string) error {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("abrir snapshot: %w", err)
	}
	defer f.Close()
	if err := s.Load(f); err != nil {
		return fmt.Errorf("leer snapshot: %w", err)
	}
	return nil
}

// saveSnapshot escribe a un archivo temporal y lo renombra para no dejar un snapshot a medias.
func saveSnapshot(s *memory.Store, path string) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := s.Save(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
