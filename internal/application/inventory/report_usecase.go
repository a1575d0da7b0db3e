package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/kardex"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// ReportUseCase genera el reporte PDF de valuación de un producto.
type ReportUseCase struct {
	query        *QueryUseCase
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	generator    ValuationPDFGenerator
}

// NewReportUseCase construye el caso de uso inyectando sus dependencias.
func NewReportUseCase(
	query *QueryUseCase,
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	generator ValuationPDFGenerator,
) *ReportUseCase {
	return &ReportUseCase{
		query:        query,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		generator:    generator,
	}
}

// ValuationPDF valora el producto y genera el PDF.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - domain.ErrNotFound        si el producto no existe.
func (uc *ReportUseCase) ValuationPDF(ctx context.Context, productID string, method kardex.Method, r DateRange) ([]byte, string, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener producto: %w", err)
	}
	if product == nil {
		return nil, "", domain.ErrNotFound
	}

	categoryName := ""
	if product.CategoryID != "" {
		cat, err := uc.categoryRepo.GetByID(ctx, product.CategoryID)
		if err != nil {
			return nil, "", fmt.Errorf("pdf: obtener categoría: %w", err)
		}
		if cat != nil {
			categoryName = cat.Name
		}
	}

	b, err := uc.query.CalculateInventoryCost(ctx, productID, method, r)
	if err != nil {
		return nil, "", err
	}

	pdf, err := uc.generator.GenerateValuationPDF(ctx, ValuationReport{
		ProductID:   product.ID,
		SKU:         product.SKU,
		ProductName: product.Name,
		Category:    categoryName,
		Breakdown:   b,
		Range:       r,
	})
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("valuacion-%s-%s.pdf", safeName(product.SKU, product.ID), strings.ToLower(method.String()))
	return pdf, filename, nil
}

func safeName(sku, fallback string) string {
	s := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '-'
	}, sku)
	if s == "" {
		return fallback
	}
	return s
}
