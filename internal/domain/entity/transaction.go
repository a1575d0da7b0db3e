package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción del kardex (conjunto cerrado).
const (
	TransactionTypeEntry = "entry" // entrada: suma stock
	TransactionTypeExit  = "exit"  // salida: resta stock
)

// Transaction representa un movimiento de stock inmutable (entrada o salida).
// Una vez registrado no se modifica ni se elimina; el stock se deriva siempre del ledger.
type Transaction struct {
	ID        string
	ProductID string
	Type      string          // entry, exit
	Quantity  decimal.Decimal // siempre > 0
	UnitCost  decimal.Decimal // solo tiene sentido en entradas; cero en salidas
	Date      time.Time
	Notes     string
	CreatedAt time.Time
	CreatedBy string // UserID
}

// IsEntry indica si la transacción suma stock.
func (t Transaction) IsEntry() bool { return t.Type == TransactionTypeEntry }

// IsExit indica si la transacción resta stock.
func (t Transaction) IsExit() bool { return t.Type == TransactionTypeExit }

// SignedQuantity devuelve la cantidad con signo: positiva en entradas, negativa en salidas.
// Cualquier otro tipo no aporta al stock.
func (t Transaction) SignedQuantity() decimal.Decimal {
	switch t.Type {
	case TransactionTypeEntry:
		return t.Quantity
	case TransactionTypeExit:
		return t.Quantity.Neg()
	}
	return decimal.Zero
}

// ValidTransactionType valida el tipo de transacción.
func ValidTransactionType(t string) bool {
	return t == TransactionTypeEntry || t == TransactionTypeExit
}
