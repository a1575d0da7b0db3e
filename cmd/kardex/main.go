// Command kardex consulta un snapshot JSON del kardex sin levantar el servidor.
//
// Uso:
//
//	kardex [-snapshot archivo.json] stock [-product ID|SKU]
//	kardex [-snapshot archivo.json] low-stock
//	kardex [-snapshot archivo.json] valuation -product ID|SKU [-method FIFO] [-start 2024-01-01] [-end 2024-01-31]
//	kardex [-snapshot archivo.json] summary [-method FIFO]
//
// Sin -snapshot se usa SNAPSHOT_PATH.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/kardex-api/internal/application/inventory"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/kardex"
	"github.com/jhoicas/kardex-api/internal/infrastructure/memory"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "kardex:", err)
		os.Exit(1)
	}
}

// cli ejecuta los subcomandos sobre un store en memoria cargado desde el snapshot.
type cli struct {
	store *memory.Store
	query *inventory.QueryUseCase
	out   io.Writer
	p     *message.Printer
}

func run(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("kardex", flag.ContinueOnError)
	fs.SetOutput(out)
	snapshot := fs.String("snapshot", os.Getenv("SNAPSHOT_PATH"), "archivo JSON del snapshot")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *snapshot == "" {
		return errors.New("indique -snapshot o SNAPSHOT_PATH")
	}
	if fs.NArg() == 0 {
		return errors.New("falta el subcomando: stock, low-stock, valuation o summary")
	}

	s, err := openSnapshot(*snapshot)
	if err != nil {
		return err
	}
	c := &cli{
		store: s,
		query: inventory.NewQueryUseCase(s.Transactions(), s.Products(), nil),
		out:   out,
		p:     message.NewPrinter(language.Spanish),
	}

	sub, rest := fs.Arg(0), fs.Args()[1:]
	switch sub {
	case "stock":
		return c.stock(ctx, rest)
	case "low-stock":
		return c.lowStock(ctx)
	case "valuation":
		return c.valuation(ctx, rest)
	case "summary":
		return c.summary(ctx, rest)
	}
	return fmt.Errorf("subcomando desconocido: %s", sub)
}

func openSnapshot(path string) (*memory.Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir snapshot: %w", err)
	}
	defer f.Close()
	s := memory.NewStore()
	if err := s.Load(f); err != nil {
		return nil, fmt.Errorf("leer snapshot: %w", err)
	}
	return s, nil
}

// findProduct busca por ID y, si no existe, por SKU.
func (c *cli) findProduct(ctx context.Context, ref string) (*entity.Product, error) {
	p, err := c.store.Products().GetByID(ctx, ref)
	if err != nil {
		return nil, err
	}
	if p == nil {
		if p, err = c.store.Products().GetBySKU(ctx, ref); err != nil {
			return nil, err
		}
	}
	if p == nil {
		return nil, fmt.Errorf("producto %q: %w", ref, domain.ErrNotFound)
	}
	return p, nil
}

func (c *cli) stock(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("stock", flag.ContinueOnError)
	fs.SetOutput(c.out)
	ref := fs.String("product", "", "ID o SKU; vacío = todos")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var products []entity.Product
	if *ref != "" {
		p, err := c.findProduct(ctx, *ref)
		if err != nil {
			return err
		}
		products = []entity.Product{*p}
	} else {
		list, err := c.store.Products().List(ctx)
		if err != nil {
			return err
		}
		products = list
	}

	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SKU\tPRODUCTO\tSTOCK\tMÍNIMO")
	for _, p := range products {
		stock, err := c.query.GetProductStock(ctx, p.ID)
		if err != nil {
			return err
		}
		c.p.Fprintf(w, "%s\t%s\t%s\t%s\n", p.SKU, p.Name, stock.String(), p.MinStock.String())
	}
	return w.Flush()
}

func (c *cli) lowStock(ctx context.Context) error {
	list, err := c.query.GetLowStockProducts(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		_, err := fmt.Fprintln(c.out, "sin productos con stock bajo")
		return err
	}
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SKU\tPRODUCTO\tMÍNIMO")
	for _, p := range list {
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.SKU, p.Name, p.MinStock.String())
	}
	return w.Flush()
}

func (c *cli) valuation(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("valuation", flag.ContinueOnError)
	fs.SetOutput(c.out)
	ref := fs.String("product", "", "ID o SKU del producto")
	rawMethod := fs.String("method", "", "FIFO, LIFO o WEIGHTED_AVERAGE")
	start := fs.String("start", "", "desde (RFC3339 o YYYY-MM-DD)")
	end := fs.String("end", "", "hasta (RFC3339 o YYYY-MM-DD)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *ref == "" {
		return errors.New("valuation: -product es obligatorio")
	}
	method, err := kardex.ParseMethod(*rawMethod)
	if err != nil {
		return err
	}
	r, err := inventory.ParseDateRange(*start, *end)
	if err != nil {
		return fmt.Errorf("valuation: rango de fechas: %w", err)
	}
	p, err := c.findProduct(ctx, *ref)
	if err != nil {
		return err
	}
	b, err := c.query.CalculateInventoryCost(ctx, p.ID, method, r)
	if err != nil {
		return err
	}

	c.p.Fprintf(c.out, "%s %s (%s)\n", p.SKU, p.Name, method.Description())
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	c.p.Fprintf(w, "Entradas\t%d\n", len(b.Entries))
	c.p.Fprintf(w, "Salidas\t%d\n", len(b.Exits))
	c.p.Fprintf(w, "Stock restante\t%s\n", b.RemainingStock.String())
	c.p.Fprintf(w, "Costo total\t%s\n", money(c.p, b.TotalCost.InexactFloat64()))
	c.p.Fprintf(w, "Costo promedio\t%s\n", money(c.p, b.AverageCost.InexactFloat64()))
	c.p.Fprintf(w, "Costo de ventas\t%s\n", money(c.p, b.CostOfSales.InexactFloat64()))
	if err := w.Flush(); err != nil {
		return err
	}
	if !method.UsesLayers() || len(b.Lots) == 0 {
		return nil
	}

	fmt.Fprintln(c.out, "\nLotes restantes")
	w = tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FECHA\tCANTIDAD\tCOSTO UNIT.\tTOTAL")
	for _, l := range b.Lots {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			l.Date.Format("2006-01-02"), l.Quantity.String(),
			money(c.p, l.UnitCost.InexactFloat64()), money(c.p, l.Total().InexactFloat64()))
	}
	return w.Flush()
}

func (c *cli) summary(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("summary", flag.ContinueOnError)
	fs.SetOutput(c.out)
	rawMethod := fs.String("method", "", "FIFO, LIFO o WEIGHTED_AVERAGE")
	if err := fs.Parse(args); err != nil {
		return err
	}
	method, err := kardex.ParseMethod(*rawMethod)
	if err != nil {
		return err
	}
	lines, units, total, err := c.query.InventorySummary(ctx, method)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SKU\tPRODUCTO\tSTOCK\tCOSTO TOTAL")
	for _, l := range lines {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", l.Product.SKU, l.Product.Name,
			l.Breakdown.RemainingStock.String(), money(c.p, l.Breakdown.TotalCost.InexactFloat64()))
	}
	fmt.Fprintf(w, "TOTAL (%s)\t\t%s\t%s\n", method, units.String(), money(c.p, total.InexactFloat64()))
	return w.Flush()
}

func money(p *message.Printer, v float64) string {
	return p.Sprintf("$ %.2f", v)
}
