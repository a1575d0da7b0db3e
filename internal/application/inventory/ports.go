package inventory

import (
	"context"

	"github.com/jhoicas/kardex-api/internal/domain/kardex"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción del almacén, serializada por producto.
// Garantiza que leer el stock y registrar la transacción sea atómico frente a escritores concurrentes.
// Devuelve domain.ErrNotFound si el producto no existe.
type TxRunner interface {
	RunForProduct(ctx context.Context, productID string, fn func(txRepo repository.TransactionRepository) error) error
}

// MetricsRecorder registra métricas de negocio del kardex. Lo implementa pkg/metrics.
type MetricsRecorder interface {
	TransactionRegistered(txType string)
	TransactionRejected(reason string)
	ValuationComputed(method string)
}

// ValuationPDFGenerator genera el reporte PDF de una valuación.
type ValuationPDFGenerator interface {
	GenerateValuationPDF(ctx context.Context, report ValuationReport) ([]byte, error)
}

// ValuationReport datos que necesita el generador de PDF.
type ValuationReport struct {
	ProductID   string
	SKU         string
	ProductName string
	Category    string
	Breakdown   kardex.CostBreakdown
	Range       DateRange
}

type noopMetrics struct{}

func (noopMetrics) TransactionRegistered(string) {}
func (noopMetrics) TransactionRejected(string)   {}
func (noopMetrics) ValuationComputed(string)     {}
