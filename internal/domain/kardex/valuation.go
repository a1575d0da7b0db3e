package kardex

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

// Lot lote de entrada con la cantidad aún no consumida y su costo unitario.
type Lot struct {
	TransactionID string
	Date          time.Time
	Quantity      decimal.Decimal
	UnitCost      decimal.Decimal
}

// Total valor del lote (cantidad × costo unitario).
func (l Lot) Total() decimal.Decimal { return l.Quantity.Mul(l.UnitCost) }

// ExitCost costo asignado a una salida durante la simulación.
// Consumed puede ser menor que Quantity si la salida excedió el stock disponible (el resto se descarta).
type ExitCost struct {
	TransactionID string
	Date          time.Time
	Quantity      decimal.Decimal
	Consumed      decimal.Decimal
	Cost          decimal.Decimal
}

// CostBreakdown resultado de valorar un conjunto de transacciones. No se persiste.
type CostBreakdown struct {
	Method         Method
	Entries        []entity.Transaction // ordenadas por fecha ascendente
	Exits          []entity.Transaction // ordenadas por fecha ascendente
	RemainingStock decimal.Decimal
	TotalCost      decimal.Decimal
	AverageCost    decimal.Decimal // TotalCost / RemainingStock, o 0 si no hay stock
	CostOfSales    decimal.Decimal // suma del costo asignado a las salidas
	Lots           []Lot           // lotes restantes (solo FIFO/LIFO)
	ExitCosts      []ExitCost
}

// CalculateInventoryCost filtra las transacciones del producto en [start, end] y las valora con el método.
// Nunca falla: listas vacías, rango invertido o stock cero producen un resultado en cero.
func CalculateInventoryCost(txs []entity.Transaction, productID string, method Method, start, end time.Time) CostBreakdown {
	return Valuate(FilterTransactions(txs, productID, start, end), method)
}

// Valuate simula el consumo de las salidas contra las entradas según el método.
// Las transacciones ya deben corresponder a un solo producto. Un método desconocido
// devuelve el desglose con totales en cero.
func Valuate(txs []entity.Transaction, method Method) CostBreakdown {
	entries, exits := partition(txs)
	sortByDate(entries)
	sortByDate(exits)

	switch method {
	case MethodFIFO:
		lots, costs := consumeLots(entries, exits, oldestFirst)
		return fromLots(method, entries, exits, lots, costs)
	case MethodLIFO:
		lots, costs := consumeLots(entries, exits, newestFirst)
		return fromLots(method, entries, exits, lots, costs)
	case MethodWeightedAverage:
		units, value, costs := weightedAverage(entries, exits)
		return assemble(method, entries, exits, units, value, nil, costs)
	}
	return assemble(method, entries, exits, decimal.Zero, decimal.Zero, nil, nil)
}

// ordering política de orden de la cola de lotes.
type ordering int

const (
	oldestFirst ordering = iota // FIFO
	newestFirst                 // LIFO
)

func (o ordering) sort(lots []Lot) {
	sort.SliceStable(lots, func(i, j int) bool {
		if o == newestFirst {
			return lots[i].Date.After(lots[j].Date)
		}
		return lots[i].Date.Before(lots[j].Date)
	})
}

// sortByDate ordena por fecha ascendente; los empates conservan el orden de inserción.
func sortByDate(txs []entity.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date.Before(txs[j].Date)
	})
}

// consumeLots arma la cola de lotes con el orden indicado y la drena con cada salida (en orden de fecha).
// Si la cola se vacía antes de cubrir una salida, el faltante se descarta.
func consumeLots(entries, exits []entity.Transaction, order ordering) ([]Lot, []ExitCost) {
	queue := make([]Lot, 0, len(entries))
	for _, e := range entries {
		queue = append(queue, Lot{
			TransactionID: e.ID,
			Date:          e.Date,
			Quantity:      e.Quantity,
			UnitCost:      e.UnitCost,
		})
	}
	order.sort(queue)

	costs := make([]ExitCost, 0, len(exits))
	for _, x := range exits {
		need := x.Quantity
		cost := decimal.Zero
		for need.GreaterThan(decimal.Zero) && len(queue) > 0 {
			front := &queue[0]
			if front.Quantity.LessThanOrEqual(need) {
				cost = cost.Add(front.Total())
				need = need.Sub(front.Quantity)
				queue = queue[1:]
				continue
			}
			cost = cost.Add(need.Mul(front.UnitCost))
			front.Quantity = front.Quantity.Sub(need)
			need = decimal.Zero
		}
		costs = append(costs, ExitCost{
			TransactionID: x.ID,
			Date:          x.Date,
			Quantity:      x.Quantity,
			Consumed:      x.Quantity.Sub(need),
			Cost:          cost,
		})
	}
	return queue, costs
}

// weightedAverage acumula todas las entradas y luego descarga cada salida al costo promedio vigente.
// Las salidas sin unidades disponibles se omiten.
func weightedAverage(entries, exits []entity.Transaction) (units, value decimal.Decimal, costs []ExitCost) {
	units, value = decimal.Zero, decimal.Zero
	for _, e := range entries {
		units = units.Add(e.Quantity)
		value = value.Add(e.Quantity.Mul(e.UnitCost))
	}

	costs = make([]ExitCost, 0, len(exits))
	for _, x := range exits {
		if !units.GreaterThan(decimal.Zero) {
			costs = append(costs, ExitCost{TransactionID: x.ID, Date: x.Date, Quantity: x.Quantity, Consumed: decimal.Zero, Cost: decimal.Zero})
			continue
		}
		// q × (value/units), multiplicando primero para no arrastrar el redondeo del promedio.
		out := value.Mul(x.Quantity).Div(units)
		value = value.Sub(out)
		units = units.Sub(x.Quantity)
		costs = append(costs, ExitCost{TransactionID: x.ID, Date: x.Date, Quantity: x.Quantity, Consumed: x.Quantity, Cost: out})
	}
	return units, value, costs
}

func fromLots(method Method, entries, exits []entity.Transaction, lots []Lot, costs []ExitCost) CostBreakdown {
	remaining, total := decimal.Zero, decimal.Zero
	for _, l := range lots {
		remaining = remaining.Add(l.Quantity)
		total = total.Add(l.Total())
	}
	return assemble(method, entries, exits, remaining, total, lots, costs)
}

func assemble(method Method, entries, exits []entity.Transaction, remaining, total decimal.Decimal, lots []Lot, costs []ExitCost) CostBreakdown {
	avg := decimal.Zero
	if remaining.GreaterThan(decimal.Zero) {
		avg = total.Div(remaining)
	}
	cos := decimal.Zero
	for _, c := range costs {
		cos = cos.Add(c.Cost)
	}
	if lots == nil {
		lots = []Lot{}
	}
	if costs == nil {
		costs = []ExitCost{}
	}
	return CostBreakdown{
		Method:         method,
		Entries:        entries,
		Exits:          exits,
		RemainingStock: remaining,
		TotalCost:      total,
		AverageCost:    avg,
		CostOfSales:    cos,
		Lots:           lots,
		ExitCosts:      costs,
	}
}
