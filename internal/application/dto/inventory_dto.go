package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductStockResponse stock calculado de un producto.
type ProductStockResponse struct {
	ProductID string          `json:"product_id"`
	Stock     decimal.Decimal `json:"stock"`
}

// LotDTO lote restante tras la simulación FIFO/LIFO.
type LotDTO struct {
	TransactionID string          `json:"transaction_id"`
	Date          time.Time       `json:"date"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	Total         decimal.Decimal `json:"total"`
}

// ExitCostDTO costo asignado a una salida.
type ExitCostDTO struct {
	TransactionID string          `json:"transaction_id"`
	Date          time.Time       `json:"date"`
	Quantity      decimal.Decimal `json:"quantity"`
	Consumed      decimal.Decimal `json:"consumed"`
	Cost          decimal.Decimal `json:"cost"`
}

// ValuationResponse desglose de costo para GET /api/inventory/valuation/:productId.
type ValuationResponse struct {
	ProductID      string                `json:"product_id"`
	Method         string                `json:"method"`
	StartDate      *time.Time            `json:"start_date,omitempty"`
	EndDate        *time.Time            `json:"end_date,omitempty"`
	Entries        []TransactionResponse `json:"entries"`
	Exits          []TransactionResponse `json:"exits"`
	RemainingStock decimal.Decimal       `json:"remaining_stock"`
	TotalCost      decimal.Decimal       `json:"total_cost"`
	AverageCost    decimal.Decimal       `json:"average_cost"`
	CostOfSales    decimal.Decimal       `json:"cost_of_sales"`
	Lots           []LotDTO              `json:"lots"`
	ExitCosts      []ExitCostDTO         `json:"exit_costs"`
}

// SummaryLineDTO valuación de un producto dentro del resumen de inventario.
type SummaryLineDTO struct {
	ProductID      string          `json:"product_id"`
	SKU            string          `json:"sku"`
	ProductName    string          `json:"product_name"`
	RemainingStock decimal.Decimal `json:"remaining_stock"`
	TotalCost      decimal.Decimal `json:"total_cost"`
	AverageCost    decimal.Decimal `json:"average_cost"`
}

// InventorySummaryResponse valuación de todo el catálogo con un método.
type InventorySummaryResponse struct {
	Method     string           `json:"method"`
	Items      []SummaryLineDTO `json:"items"`
	TotalUnits decimal.Decimal  `json:"total_units"`
	TotalCost  decimal.Decimal  `json:"total_cost"`
}

// ReplenishmentSuggestionDTO sugerencia de reposición para un producto en o bajo su stock mínimo.
type ReplenishmentSuggestionDTO struct {
	ProductID          string          `json:"product_id"`
	SKU                string          `json:"sku"`
	ProductName        string          `json:"product_name"`
	CurrentStock       decimal.Decimal `json:"current_stock"`
	MinStock           decimal.Decimal `json:"min_stock"`
	IdealStock         decimal.Decimal `json:"ideal_stock"`          // MinStock * 1.5
	SuggestedOrderQty  decimal.Decimal `json:"suggested_order_qty"`  // IdealStock - CurrentStock
	UnitCost           decimal.Decimal `json:"unit_cost"`            // costo promedio ponderado
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"` // SuggestedOrderQty * UnitCost
	Priority           int             `json:"priority"`             // 1 = más urgente
}

// LowStockProductDTO producto con stock actual menor o igual a su stock mínimo.
type LowStockProductDTO struct {
	ProductID   string          `json:"product_id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	CategoryID  string          `json:"category_id,omitempty"`
	MinStock    decimal.Decimal `json:"min_stock"`
	UnitMeasure string          `json:"unit_measure"`
}

// CategoryStockResponse stock de cada producto de una categoría.
type CategoryStockResponse struct {
	CategoryID string                 `json:"category_id"`
	Items      []ProductStockResponse `json:"items"`
	Total      decimal.Decimal        `json:"total"`
}
