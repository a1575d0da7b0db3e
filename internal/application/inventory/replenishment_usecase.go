package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/kardex"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de reposición a partir de los productos en o bajo su stock mínimo.
type ReplenishmentUseCase struct {
	txRepo      repository.TransactionRepository
	productRepo repository.ProductRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(
	txRepo repository.TransactionRepository,
	productRepo repository.ProductRepository,
) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{
		txRepo:      txRepo,
		productRepo: productRepo,
	}
}

// GenerateReplenishmentList devuelve los productos con stock <= mínimo, con la cantidad sugerida
// de pedido (hasta 1.5 × mínimo) y su costo estimado al costo promedio ponderado actual.
// Ordena por mayor déficit primero.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	txs, err := uc.txRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	// 1. Productos en o bajo el mínimo
	low := kardex.LowStockProducts(products, txs)
	if len(low) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	byProduct := make(map[string][]entity.Transaction, len(low))
	for _, t := range txs {
		byProduct[t.ProductID] = append(byProduct[t.ProductID], t)
	}

	// 2. Sugerencias con costo promedio ponderado
	factor := decimal.NewFromFloat(1.5)
	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(low))
	for _, p := range low {
		b := kardex.Valuate(byProduct[p.ID], kardex.MethodWeightedAverage)
		current := kardex.CurrentStock(byProduct[p.ID], p.ID)

		idealStock := p.MinStock.Mul(factor)
		suggestedQty := idealStock.Sub(current)
		if suggestedQty.LessThanOrEqual(decimal.Zero) {
			suggestedQty = decimal.Zero
		}
		unitCost := b.AverageCost
		if unitCost.IsZero() {
			// Sin stock valorado: usar el último costo de entrada conocido
			unitCost = lastEntryCost(b.Entries)
		}

		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ProductID:          p.ID,
			SKU:                p.SKU,
			ProductName:        p.Name,
			CurrentStock:       current,
			MinStock:           p.MinStock,
			IdealStock:         idealStock,
			SuggestedOrderQty:  suggestedQty,
			UnitCost:           unitCost.Round(4),
			EstimatedOrderCost: suggestedQty.Mul(unitCost).Round(2),
		})
	}

	// 3. Ordenar por déficit (mínimo - stock) descendente
	sort.SliceStable(suggestions, func(i, j int) bool {
		defA := suggestions[i].MinStock.Sub(suggestions[i].CurrentStock)
		defB := suggestions[j].MinStock.Sub(suggestions[j].CurrentStock)
		return defA.GreaterThan(defB)
	})

	// 4. Asignar prioridad (1 = más urgente)
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}

	return suggestions, nil
}

func lastEntryCost(entries []entity.Transaction) decimal.Decimal {
	if len(entries) == 0 {
		return decimal.Zero
	}
	return entries[len(entries)-1].UnitCost
}
