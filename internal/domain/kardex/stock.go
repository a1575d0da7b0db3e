package kardex

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

// ProductStock stock calculado de un producto.
type ProductStock struct {
	ProductID string
	Stock     decimal.Decimal
}

// CurrentStock suma entradas y resta salidas sobre TODAS las transacciones del producto.
// Devuelve 0 si el producto no tiene movimientos.
func CurrentStock(txs []entity.Transaction, productID string) decimal.Decimal {
	stock := decimal.Zero
	for _, t := range txs {
		if t.ProductID == productID {
			stock = stock.Add(t.SignedQuantity())
		}
	}
	return stock
}

// stockByProduct agrega el stock de todos los productos en una sola pasada.
func stockByProduct(txs []entity.Transaction) map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal)
	for _, t := range txs {
		m[t.ProductID] = m[t.ProductID].Add(t.SignedQuantity())
	}
	return m
}

// LowStockProducts devuelve, en orden de catálogo, los productos con stock <= MinStock.
// La comparación es inclusiva: estar en el mínimo ya amerita reorden.
func LowStockProducts(products []entity.Product, txs []entity.Transaction) []entity.Product {
	stock := stockByProduct(txs)
	out := make([]entity.Product, 0)
	for _, p := range products {
		if stock[p.ID].LessThanOrEqual(p.MinStock) {
			out = append(out, p)
		}
	}
	return out
}

// CategoryStock devuelve el stock de cada producto de la categoría, en orden de catálogo.
func CategoryStock(categoryID string, products []entity.Product, txs []entity.Transaction) []ProductStock {
	stock := stockByProduct(txs)
	out := make([]ProductStock, 0)
	for _, p := range products {
		if p.CategoryID != categoryID {
			continue
		}
		out = append(out, ProductStock{ProductID: p.ID, Stock: stock[p.ID]})
	}
	return out
}
