package inventory

import (
	"strings"
	"time"

	"github.com/jhoicas/kardex-api/internal/domain"
)

// DateRange rango de fechas inclusivo de una consulta. Un extremo en cero significa abierto.
type DateRange struct {
	Start time.Time
	End   time.Time
}

const dateOnly = "2006-01-02"

// ParseDateRange interpreta start/end recibidos como RFC3339 o YYYY-MM-DD.
// Una fecha de fin sin hora cubre el día completo (23:59:59.999999999).
func ParseDateRange(start, end string) (DateRange, error) {
	var r DateRange
	var err error
	if r.Start, err = parseBound(start, false); err != nil {
		return DateRange{}, err
	}
	if r.End, err = parseBound(end, true); err != nil {
		return DateRange{}, err
	}
	return r, nil
}

// ParseDate interpreta una fecha puntual (RFC3339 o YYYY-MM-DD). Vacío devuelve cero.
func ParseDate(s string) (time.Time, error) {
	return parseBound(s, false)
}

func parseBound(s string, endOfDay bool) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(dateOnly, s)
	if err != nil {
		return time.Time{}, domain.ErrInvalidInput
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}
