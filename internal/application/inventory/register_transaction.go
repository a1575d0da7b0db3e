package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/kardex"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
	"github.com/jhoicas/kardex-api/pkg/logger"
)

// RegisterTransactionUseCase registra entradas y salidas en el ledger.
// Es la única puerta que protege el invariante de stock no negativo: una salida solo se acepta
// si el stock actual (recalculado dentro de la transacción serializada por producto) la cubre.
type RegisterTransactionUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	log         *logger.Logger
	metrics     MetricsRecorder
	now         func() time.Time
}

// NewRegisterTransactionUseCase construye el caso de uso. metrics puede ser nil.
func NewRegisterTransactionUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	log *logger.Logger,
	metrics MetricsRecorder,
) *RegisterTransactionUseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &RegisterTransactionUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		log:         log,
		metrics:     metrics,
		now:         time.Now,
	}
}

// TransactionInputDTO entrada para registrar una transacción.
// UnitCost es obligatorio en entradas y se ignora en salidas. Date nil = ahora.
type TransactionInputDTO struct {
	UserID    string
	ProductID string
	Type      string
	Quantity  decimal.Decimal
	UnitCost  *decimal.Decimal
	Date      *time.Time
	Notes     string
}

// RegisterTransactionFromRequest adapta el request HTTP al caso de uso.
func (uc *RegisterTransactionUseCase) RegisterTransactionFromRequest(ctx context.Context, userID string, in dto.CreateTransactionRequest) (*dto.TransactionResponse, error) {
	input := TransactionInputDTO{
		UserID:    userID,
		ProductID: in.ProductID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		UnitCost:  in.UnitCost,
		Notes:     in.Notes,
	}
	if in.Date != "" {
		d, err := ParseDate(in.Date)
		if err != nil {
			return nil, err
		}
		input.Date = &d
	}
	tx, err := uc.RegisterTransaction(ctx, input)
	if err != nil {
		return nil, err
	}
	out := ToTransactionResponse(*tx)
	return &out, nil
}

// RegisterTransaction valida la entrada, bloquea el producto y agrega la transacción al ledger.
// Devuelve domain.ErrInsufficientStock si una salida dejaría el stock negativo; el ledger queda intacto.
func (uc *RegisterTransactionUseCase) RegisterTransaction(ctx context.Context, input TransactionInputDTO) (*entity.Transaction, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	product, err := uc.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	now := uc.now()
	tx := &entity.Transaction{
		ID:        uuid.New().String(),
		ProductID: input.ProductID,
		Type:      input.Type,
		Quantity:  input.Quantity,
		UnitCost:  decimal.Zero,
		Date:      now,
		Notes:     input.Notes,
		CreatedAt: now,
		CreatedBy: input.UserID,
	}
	if input.Type == entity.TransactionTypeEntry {
		tx.UnitCost = *input.UnitCost
	}
	if input.Date != nil {
		tx.Date = *input.Date
	}

	err = uc.txRunner.RunForProduct(ctx, input.ProductID, func(txRepo repository.TransactionRepository) error {
		if tx.IsExit() {
			current, err := txRepo.ListByProduct(ctx, input.ProductID)
			if err != nil {
				return err
			}
			stock := kardex.CurrentStock(current, input.ProductID)
			if stock.LessThan(tx.Quantity) {
				uc.log.Warn().
					Str("product_id", input.ProductID).
					Str("stock", stock.String()).
					Str("requested", tx.Quantity.String()).
					Msg("salida rechazada por stock insuficiente")
				return domain.ErrInsufficientStock
			}
		}
		return txRepo.Create(ctx, tx)
	})
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			uc.metrics.TransactionRejected("insufficient_stock")
		}
		return nil, err
	}

	uc.metrics.TransactionRegistered(tx.Type)
	uc.log.Info().
		Str("transaction_id", tx.ID).
		Str("product_id", tx.ProductID).
		Str("type", tx.Type).
		Str("quantity", tx.Quantity.String()).
		Msg("transacción registrada")
	return tx, nil
}

func validateInput(input TransactionInputDTO) error {
	if input.ProductID == "" || !entity.ValidTransactionType(input.Type) {
		return domain.ErrInvalidInput
	}
	if !input.Quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if input.Type == entity.TransactionTypeEntry && (input.UnitCost == nil || input.UnitCost.LessThan(decimal.Zero)) {
		return domain.ErrInvalidInput
	}
	return nil
}
