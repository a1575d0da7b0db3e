package repository

import (
	"context"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

// TransactionRepository define el puerto de persistencia del ledger de transacciones (append-only).
// Los listados devuelven un snapshot en orden de inserción; el orden por fecha lo impone el motor.
type TransactionRepository interface {
	Create(ctx context.Context, tx *entity.Transaction) error
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)
	List(ctx context.Context) ([]entity.Transaction, error)
	ListByProduct(ctx context.Context, productID string) ([]entity.Transaction, error)
	CountByProduct(ctx context.Context, productID string) (int, error)
}
