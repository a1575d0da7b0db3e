package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// El stock no se guarda aquí: se calcula siempre desde las transacciones.
type Product struct {
	ID          string
	SKU         string // código único
	Name        string
	Description string
	CategoryID  string
	Price       decimal.Decimal // precio de venta
	MinStock    decimal.Decimal // umbral de reorden (inclusivo)
	UnitMeasure string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
