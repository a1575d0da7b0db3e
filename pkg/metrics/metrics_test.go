package metrics_test

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kardex-api/pkg/metrics"
)

func TestMetrics_ContadoresDeNegocio(t *testing.T) {
	m := metrics.New("test")

	m.TransactionRegistered("entry")
	m.TransactionRegistered("entry")
	m.TransactionRejected("insufficient_stock")
	m.ValuationComputed("FIFO")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.TransactionsRegistered.WithLabelValues("test", "entry")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.TransactionsRejected.WithLabelValues("test", "insufficient_stock")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ValuationsComputed.WithLabelValues("test", "FIFO")))
}

func TestMetrics_MiddlewareYEndpoint(t *testing.T) {
	m := metrics.New("test")
	app := fiber.New()
	app.Use(m.Middleware())
	app.Get("/metrics", m.FiberHandler())
	app.Get("/items/:id", func(c *fiber.Ctx) error { return c.SendString("ok") })

	resp, err := app.Test(httptest.NewRequest("GET", "/items/42", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("test", "GET", "/items/:id", "200")))

	resp, err = app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "kardex_http_requests_total")
}
