package kardex_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/kardex"
)

const productA = "prod-a"

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func entry(id, date string, qty, cost int64) entity.Transaction {
	return entity.Transaction{
		ID:        id,
		ProductID: productA,
		Type:      entity.TransactionTypeEntry,
		Quantity:  decimal.NewFromInt(qty),
		UnitCost:  decimal.NewFromInt(cost),
		Date:      day(date),
	}
}

func exit(id, date string, qty int64) entity.Transaction {
	return entity.Transaction{
		ID:        id,
		ProductID: productA,
		Type:      entity.TransactionTypeExit,
		Quantity:  decimal.NewFromInt(qty),
		Date:      day(date),
	}
}

func assertDecimal(t *testing.T, expected string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	want := decimal.RequireFromString(expected)
	assert.True(t, want.Equal(got), append([]interface{}{"esperado %s, obtenido %s", want, got}, msgAndArgs...)...)
}

// Ejemplo base: 10@5 (01-01), 10@7 (01-10), salida 12 (01-15).
func baseLedger() []entity.Transaction {
	return []entity.Transaction{
		entry("e1", "2024-01-01", 10, 5),
		entry("e2", "2024-01-10", 10, 7),
		exit("s1", "2024-01-15", 12),
	}
}

var fullRange = [2]time.Time{day("2024-01-01"), day("2024-12-31")}

// ──────────────────────────────────────────────────────────────────────────────
// Ejemplos de referencia
// ──────────────────────────────────────────────────────────────────────────────

func TestValuate_FIFO_EjemploBase(t *testing.T) {
	b := kardex.CalculateInventoryCost(baseLedger(), productA, kardex.MethodFIFO, fullRange[0], fullRange[1])

	assertDecimal(t, "8", b.RemainingStock)
	assertDecimal(t, "56", b.TotalCost)
	assertDecimal(t, "7", b.AverageCost)
	assert.Len(t, b.Entries, 2)
	assert.Len(t, b.Exits, 1)
	require.Len(t, b.Lots, 1)
	assert.Equal(t, "e2", b.Lots[0].TransactionID)
	require.Len(t, b.ExitCosts, 1)
	assertDecimal(t, "64", b.ExitCosts[0].Cost, "10×5 + 2×7")
	assertDecimal(t, "64", b.CostOfSales)
}

func TestValuate_LIFO_EjemploBase(t *testing.T) {
	b := kardex.CalculateInventoryCost(baseLedger(), productA, kardex.MethodLIFO, fullRange[0], fullRange[1])

	assertDecimal(t, "8", b.RemainingStock)
	assertDecimal(t, "40", b.TotalCost)
	assertDecimal(t, "5", b.AverageCost)
	require.Len(t, b.Lots, 1)
	assert.Equal(t, "e1", b.Lots[0].TransactionID)
	assertDecimal(t, "80", b.CostOfSales, "10×7 + 2×5")
}

func TestValuate_PromedioPonderado_EjemploBase(t *testing.T) {
	b := kardex.CalculateInventoryCost(baseLedger(), productA, kardex.MethodWeightedAverage, fullRange[0], fullRange[1])

	assertDecimal(t, "8", b.RemainingStock)
	assertDecimal(t, "48", b.TotalCost)
	assertDecimal(t, "6", b.AverageCost)
	assertDecimal(t, "72", b.CostOfSales)
	assert.Empty(t, b.Lots)
}

// ──────────────────────────────────────────────────────────────────────────────
// Casos degenerados: nunca error, siempre cero/vacío
// ──────────────────────────────────────────────────────────────────────────────

func TestValuate_SinTransacciones(t *testing.T) {
	for _, m := range []kardex.Method{kardex.MethodFIFO, kardex.MethodLIFO, kardex.MethodWeightedAverage} {
		b := kardex.Valuate(nil, m)
		assert.True(t, b.RemainingStock.IsZero(), m)
		assert.True(t, b.TotalCost.IsZero(), m)
		assert.True(t, b.AverageCost.IsZero(), m)
		assert.NotNil(t, b.Entries)
		assert.NotNil(t, b.Exits)
	}
}

func TestValuate_StockCero_PromedioCero(t *testing.T) {
	txs := []entity.Transaction{
		entry("e1", "2024-01-01", 5, 3),
		exit("s1", "2024-01-02", 5),
	}
	for _, m := range []kardex.Method{kardex.MethodFIFO, kardex.MethodLIFO, kardex.MethodWeightedAverage} {
		b := kardex.Valuate(txs, m)
		assert.True(t, b.RemainingStock.IsZero(), m)
		assert.True(t, b.TotalCost.IsZero(), m)
		assert.True(t, b.AverageCost.IsZero(), m)
	}
}

func TestValuate_SalidaSobrevendida_SeDescartaFaltante(t *testing.T) {
	txs := []entity.Transaction{
		entry("e1", "2024-01-01", 5, 3),
		exit("s1", "2024-01-02", 8),
	}
	b := kardex.Valuate(txs, kardex.MethodFIFO)
	assert.True(t, b.RemainingStock.IsZero())
	require.Len(t, b.ExitCosts, 1)
	assertDecimal(t, "5", b.ExitCosts[0].Consumed)
	assertDecimal(t, "15", b.ExitCosts[0].Cost)
}

func TestValuate_PromedioPonderado_SalidaSinUnidadesSeOmite(t *testing.T) {
	txs := []entity.Transaction{
		exit("s0", "2024-01-01", 4),
	}
	b := kardex.Valuate(txs, kardex.MethodWeightedAverage)
	assert.True(t, b.RemainingStock.IsZero())
	assert.True(t, b.TotalCost.IsZero())
	require.Len(t, b.ExitCosts, 1)
	assert.True(t, b.ExitCosts[0].Consumed.IsZero())
}

func TestValuate_MetodoDesconocido_ResultadoEnCero(t *testing.T) {
	b := kardex.Valuate(baseLedger(), kardex.Method("FEFO"))
	assert.True(t, b.RemainingStock.IsZero())
	assert.True(t, b.TotalCost.IsZero())
	assert.Len(t, b.Entries, 2)
}

func TestValuate_NoModificaElSnapshot(t *testing.T) {
	txs := []entity.Transaction{
		exit("s1", "2024-01-15", 12),
		entry("e2", "2024-01-10", 10, 7),
		entry("e1", "2024-01-01", 10, 5),
	}
	kardex.Valuate(txs, kardex.MethodFIFO)
	assert.Equal(t, "s1", txs[0].ID)
	assert.Equal(t, "e2", txs[1].ID)
	assert.Equal(t, "e1", txs[2].ID)
}

func TestValuate_EmpateDeFechas_RespetaOrdenDeInsercion(t *testing.T) {
	txs := []entity.Transaction{
		entry("e1", "2024-01-01", 5, 2),
		entry("e2", "2024-01-01", 5, 4),
		exit("s1", "2024-01-02", 5),
	}
	b := kardex.Valuate(txs, kardex.MethodFIFO)
	require.Len(t, b.Lots, 1)
	assert.Equal(t, "e2", b.Lots[0].TransactionID)
	assertDecimal(t, "20", b.TotalCost)
}

func TestValuate_CantidadesDecimales(t *testing.T) {
	txs := []entity.Transaction{
		{ID: "e1", ProductID: productA, Type: entity.TransactionTypeEntry, Quantity: decimal.RequireFromString("2.5"), UnitCost: decimal.RequireFromString("4"), Date: day("2024-01-01")},
		{ID: "s1", ProductID: productA, Type: entity.TransactionTypeExit, Quantity: decimal.RequireFromString("0.75"), Date: day("2024-01-02")},
	}
	b := kardex.Valuate(txs, kardex.MethodFIFO)
	assertDecimal(t, "1.75", b.RemainingStock)
	assertDecimal(t, "7", b.TotalCost)
	assertDecimal(t, "4", b.AverageCost)
}

// ──────────────────────────────────────────────────────────────────────────────
// Filtro por producto y rango
// ──────────────────────────────────────────────────────────────────────────────

func TestFilterTransactions_RangoInclusivo(t *testing.T) {
	txs := baseLedger()
	got := kardex.FilterTransactions(txs, productA, day("2024-01-10"), day("2024-01-15"))
	require.Len(t, got, 2)
	assert.Equal(t, "e2", got[0].ID)
	assert.Equal(t, "s1", got[1].ID)
}

func TestFilterTransactions_RangoInvertido_DevuelveVacio(t *testing.T) {
	got := kardex.FilterTransactions(baseLedger(), productA, day("2024-02-01"), day("2024-01-01"))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilterTransactions_OtroProducto(t *testing.T) {
	txs := append(baseLedger(), entity.Transaction{ID: "x", ProductID: "prod-b", Type: entity.TransactionTypeEntry, Quantity: decimal.NewFromInt(1), Date: day("2024-01-05")})
	got := kardex.FilterTransactions(txs, "prod-b", time.Time{}, time.Time{})
	require.Len(t, got, 1)
	assert.Equal(t, "x", got[0].ID)
}

func TestCalculateInventoryCost_RangoInvertido_EnCero(t *testing.T) {
	b := kardex.CalculateInventoryCost(baseLedger(), productA, kardex.MethodLIFO, day("2024-12-31"), day("2024-01-01"))
	assert.Empty(t, b.Entries)
	assert.True(t, b.TotalCost.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Stock y stock bajo
// ──────────────────────────────────────────────────────────────────────────────

func TestCurrentStock(t *testing.T) {
	assertDecimal(t, "8", kardex.CurrentStock(baseLedger(), productA))
	assertDecimal(t, "0", kardex.CurrentStock(baseLedger(), "sin-movimientos"))
}

func TestCurrentStock_InvarianteAlOrden(t *testing.T) {
	txs := []entity.Transaction{
		entry("e1", "2024-01-01", 10, 5),
		entry("e2", "2024-01-10", 7, 7),
		exit("s1", "2024-01-15", 12),
		exit("s2", "2024-01-16", 1),
		entry("e3", "2024-01-20", 3, 9),
	}
	want := kardex.CurrentStock(txs, productA)
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := append([]entity.Transaction(nil), txs...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.True(t, want.Equal(kardex.CurrentStock(shuffled, productA)))
	}
	assertDecimal(t, "7", want)
}

func TestLowStockProducts_UmbralInclusivo(t *testing.T) {
	products := []entity.Product{
		{ID: "p1", Name: "En el mínimo", MinStock: decimal.NewFromInt(20)},
		{ID: "p2", Name: "Sobre el mínimo", MinStock: decimal.NewFromInt(5)},
		{ID: "p3", Name: "Sin movimientos", MinStock: decimal.Zero},
	}
	txs := []entity.Transaction{
		{ID: "a", ProductID: "p1", Type: entity.TransactionTypeEntry, Quantity: decimal.NewFromInt(20)},
		{ID: "b", ProductID: "p2", Type: entity.TransactionTypeEntry, Quantity: decimal.NewFromInt(6)},
	}
	got := kardex.LowStockProducts(products, txs)
	require.Len(t, got, 2)
	assert.Equal(t, "p1", got[0].ID)
	assert.Equal(t, "p3", got[1].ID)
}

func TestCategoryStock_OrdenDeCatalogo(t *testing.T) {
	products := []entity.Product{
		{ID: "p1", CategoryID: "c1"},
		{ID: "p2", CategoryID: "c2"},
		{ID: "p3", CategoryID: "c1"},
	}
	txs := []entity.Transaction{
		{ProductID: "p3", Type: entity.TransactionTypeEntry, Quantity: decimal.NewFromInt(4)},
		{ProductID: "p1", Type: entity.TransactionTypeEntry, Quantity: decimal.NewFromInt(9)},
		{ProductID: "p1", Type: entity.TransactionTypeExit, Quantity: decimal.NewFromInt(2)},
	}
	got := kardex.CategoryStock("c1", products, txs)
	require.Len(t, got, 2)
	assert.Equal(t, "p1", got[0].ProductID)
	assertDecimal(t, "7", got[0].Stock)
	assert.Equal(t, "p3", got[1].ProductID)
	assertDecimal(t, "4", got[1].Stock)

	assert.Empty(t, kardex.CategoryStock("vacia", products, txs))
}

// ──────────────────────────────────────────────────────────────────────────────
// Propiedades
// ──────────────────────────────────────────────────────────────────────────────

// randomLedger genera un ledger válido: ninguna salida excede el stock acumulado a su fecha.
func randomLedger(rng *rand.Rand, n int, costOf func(i int) int64) []entity.Transaction {
	start := day("2024-01-01")
	var txs []entity.Transaction
	stock := int64(0)
	for i := 0; i < n; i++ {
		date := start.AddDate(0, 0, i)
		if stock > 0 && rng.Intn(3) == 0 {
			q := rng.Int63n(stock) + 1
			stock -= q
			txs = append(txs, entity.Transaction{ID: "s" + date.Format("0102"), ProductID: productA, Type: entity.TransactionTypeExit, Quantity: decimal.NewFromInt(q), Date: date})
			continue
		}
		q := rng.Int63n(20) + 1
		stock += q
		txs = append(txs, entity.Transaction{ID: "e" + date.Format("0102"), ProductID: productA, Type: entity.TransactionTypeEntry, Quantity: decimal.NewFromInt(q), UnitCost: decimal.NewFromInt(costOf(i)), Date: date})
	}
	return txs
}

func TestPropiedad_ConservacionDeCantidad(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		txs := randomLedger(rng, 30, func(int) int64 { return rng.Int63n(50) + 1 })
		fifo := kardex.Valuate(txs, kardex.MethodFIFO)
		lifo := kardex.Valuate(txs, kardex.MethodLIFO)
		avg := kardex.Valuate(txs, kardex.MethodWeightedAverage)
		stock := kardex.CurrentStock(txs, productA)

		assert.True(t, fifo.RemainingStock.Equal(stock), "FIFO %s vs stock %s", fifo.RemainingStock, stock)
		assert.True(t, lifo.RemainingStock.Equal(stock), "LIFO %s vs stock %s", lifo.RemainingStock, stock)
		assert.True(t, avg.RemainingStock.Equal(stock), "promedio %s vs stock %s", avg.RemainingStock, stock)
	}
}

func TestPropiedad_MonotoniaFIFOvsLIFO(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 50; i++ {
		rising := randomLedger(rng, 25, func(i int) int64 { return int64(10 + i) })
		f := kardex.Valuate(rising, kardex.MethodFIFO)
		l := kardex.Valuate(rising, kardex.MethodLIFO)
		assert.True(t, f.TotalCost.GreaterThanOrEqual(l.TotalCost), "costos crecientes: FIFO %s >= LIFO %s", f.TotalCost, l.TotalCost)

		falling := randomLedger(rng, 25, func(i int) int64 { return int64(100 - i) })
		f = kardex.Valuate(falling, kardex.MethodFIFO)
		l = kardex.Valuate(falling, kardex.MethodLIFO)
		assert.True(t, f.TotalCost.LessThanOrEqual(l.TotalCost), "costos decrecientes: FIFO %s <= LIFO %s", f.TotalCost, l.TotalCost)
	}
}

func TestPropiedad_PromedioAcotadoPorExtremos(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 50; i++ {
		txs := randomLedger(rng, 30, func(int) int64 { return rng.Int63n(90) + 10 })
		b := kardex.Valuate(txs, kardex.MethodWeightedAverage)
		if b.RemainingStock.IsZero() {
			continue
		}
		lo, hi := b.Entries[0].UnitCost, b.Entries[0].UnitCost
		for _, e := range b.Entries {
			lo = decimal.Min(lo, e.UnitCost)
			hi = decimal.Max(hi, e.UnitCost)
		}
		avg := b.AverageCost.Round(8)
		assert.True(t, avg.GreaterThanOrEqual(lo), "promedio %s < mínimo %s", avg, lo)
		assert.True(t, avg.LessThanOrEqual(hi), "promedio %s > máximo %s", avg, hi)
	}
}

func TestPropiedad_Idempotencia(t *testing.T) {
	txs := baseLedger()
	for _, m := range []kardex.Method{kardex.MethodFIFO, kardex.MethodLIFO, kardex.MethodWeightedAverage} {
		a := kardex.CalculateInventoryCost(txs, productA, m, fullRange[0], fullRange[1])
		b := kardex.CalculateInventoryCost(txs, productA, m, fullRange[0], fullRange[1])
		assert.True(t, a.TotalCost.Equal(b.TotalCost))
		assert.True(t, a.RemainingStock.Equal(b.RemainingStock))
		assert.True(t, a.AverageCost.Equal(b.AverageCost))
		assert.Equal(t, len(a.Lots), len(b.Lots))
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// ParseMethod
// ──────────────────────────────────────────────────────────────────────────────

func TestParseMethod(t *testing.T) {
	cases := map[string]kardex.Method{
		"":         kardex.DefaultMethod,
		"fifo":     kardex.MethodFIFO,
		"PEPS":     kardex.MethodFIFO,
		"lifo":     kardex.MethodLIFO,
		"ueps":     kardex.MethodLIFO,
		"weighted": kardex.MethodWeightedAverage,
		"Promedio": kardex.MethodWeightedAverage,
	}
	for in, want := range cases {
		got, err := kardex.ParseMethod(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := kardex.ParseMethod("fefo")
	assert.ErrorIs(t, err, domain.ErrInvalidMethod)
}
