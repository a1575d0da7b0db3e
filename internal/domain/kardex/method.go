package kardex

import (
	"strings"

	"github.com/jhoicas/kardex-api/internal/domain"
)

// Method es la convención de costeo usada para valorar el inventario.
type Method string

const (
	// MethodFIFO primeras entradas, primeras salidas (PEPS).
	MethodFIFO Method = "FIFO"
	// MethodLIFO últimas entradas, primeras salidas (UEPS).
	MethodLIFO Method = "LIFO"
	// MethodWeightedAverage costo promedio ponderado.
	MethodWeightedAverage Method = "WEIGHTED_AVERAGE"
)

// DefaultMethod se usa cuando el cliente no indica método.
const DefaultMethod = MethodFIFO

// IsValid indica si el método es uno de los tres soportados.
func (m Method) IsValid() bool {
	switch m {
	case MethodFIFO, MethodLIFO, MethodWeightedAverage:
		return true
	}
	return false
}

func (m Method) String() string { return string(m) }

// UsesLayers indica si el método trabaja con lotes (FIFO/LIFO).
func (m Method) UsesLayers() bool {
	return m == MethodFIFO || m == MethodLIFO
}

// Description nombre legible del método (usado en reportes).
func (m Method) Description() string {
	switch m {
	case MethodFIFO:
		return "PEPS (primeras entradas, primeras salidas)"
	case MethodLIFO:
		return "UEPS (últimas entradas, primeras salidas)"
	case MethodWeightedAverage:
		return "Promedio ponderado"
	}
	return string(m)
}

// ParseMethod interpreta el método recibido desde HTTP, CLI o configuración.
// Acepta los nombres en inglés y en español (peps, ueps, promedio). Vacío = DefaultMethod.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DefaultMethod, nil
	case "fifo", "peps":
		return MethodFIFO, nil
	case "lifo", "ueps":
		return MethodLIFO, nil
	case "weighted", "weighted_average", "weighted-average", "average", "promedio":
		return MethodWeightedAverage, nil
	}
	return "", domain.ErrInvalidMethod
}
