package kardex

import (
	"time"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

// FilterTransactions devuelve las transacciones del producto con start <= date <= end (ambos inclusivos),
// en el mismo orden del snapshot. Un rango invertido (start > end) devuelve vacío, nunca error.
// Un límite en cero (time.Time{}) se considera abierto.
func FilterTransactions(txs []entity.Transaction, productID string, start, end time.Time) []entity.Transaction {
	out := make([]entity.Transaction, 0)
	if !start.IsZero() && !end.IsZero() && start.After(end) {
		return out
	}
	for _, t := range txs {
		if t.ProductID != productID {
			continue
		}
		if !start.IsZero() && t.Date.Before(start) {
			continue
		}
		if !end.IsZero() && t.Date.After(end) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// partition separa entradas y salidas conservando el orden original.
func partition(txs []entity.Transaction) (entries, exits []entity.Transaction) {
	entries = make([]entity.Transaction, 0, len(txs))
	exits = make([]entity.Transaction, 0)
	for _, t := range txs {
		switch t.Type {
		case entity.TransactionTypeEntry:
			entries = append(entries, t)
		case entity.TransactionTypeExit:
			exits = append(exits, t)
		}
	}
	return entries, exits
}
