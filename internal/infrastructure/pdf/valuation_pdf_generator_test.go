package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kardex-api/internal/application/inventory"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/kardex"
)

func TestGenerateValuationPDF(t *testing.T) {
	d := func(n int) time.Time { return time.Date(2024, 1, n, 0, 0, 0, 0, time.UTC) }
	txs := []entity.Transaction{
		{ID: "e1", ProductID: "p", Type: entity.TransactionTypeEntry, Quantity: decimal.NewFromInt(10), UnitCost: decimal.NewFromInt(5), Date: d(1)},
		{ID: "e2", ProductID: "p", Type: entity.TransactionTypeEntry, Quantity: decimal.NewFromInt(10), UnitCost: decimal.NewFromInt(7), Date: d(2)},
		{ID: "s1", ProductID: "p", Type: entity.TransactionTypeExit, Quantity: decimal.NewFromInt(12), Date: d(3)},
	}
	report := inventory.ValuationReport{
		ProductID: "p", SKU: "MAR-01", ProductName: "Martillo", Category: "Herramientas",
		Breakdown: kardex.Valuate(txs, kardex.MethodFIFO),
		Range:     inventory.DateRange{Start: d(1)},
	}

	out, err := NewMarotoValuationGenerator().GenerateValuationPDF(context.Background(), report)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestGenerateValuationPDF_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewMarotoValuationGenerator().GenerateValuationPDF(ctx, inventory.ValuationReport{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFormatos(t *testing.T) {
	g := NewMarotoValuationGenerator()
	assert.Equal(t, "12", g.qty(decimal.NewFromInt(12)))
	assert.Equal(t, "Todo el historial", rangeLabel(inventory.DateRange{}))
	assert.Equal(t, "Promedio ponderado", methodLabel(kardex.MethodWeightedAverage))
	assert.Equal(t, "—", nonEmpty("", "—"))
}
