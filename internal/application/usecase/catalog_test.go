package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kardex-api/internal/application/dto"
	"github.com/jhoicas/kardex-api/internal/application/usecase"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/infrastructure/memory"
)

type catalog struct {
	store      *memory.Store
	products   *usecase.ProductUseCase
	categories *usecase.CategoryUseCase
}

func newCatalog() catalog {
	s := memory.NewStore()
	return catalog{
		store:      s,
		products:   usecase.NewProductUseCase(s.Products(), s.Categories(), s.Transactions()),
		categories: usecase.NewCategoryUseCase(s.Categories(), s.Products()),
	}
}

func (c catalog) seedCategory(t *testing.T) string {
	t.Helper()
	cat, err := c.categories.Create(context.Background(), dto.CreateCategoryRequest{Name: "Herramientas"})
	require.NoError(t, err)
	return cat.ID
}

// ─── Productos ───────────────────────────────────────────────────────────────

func TestProductUseCase_Create(t *testing.T) {
	c := newCatalog()
	catID := c.seedCategory(t)

	p, err := c.products.Create(context.Background(), dto.CreateProductRequest{
		SKU: " MAR-01 ", Name: "Martillo", CategoryID: catID, MinStock: decimal.NewFromInt(5),
	})
	require.NoError(t, err)
	assert.Equal(t, "MAR-01", p.SKU)
	assert.Equal(t, "unidad", p.UnitMeasure)
}

func TestProductUseCase_Create_SKUDuplicado(t *testing.T) {
	c := newCatalog()
	catID := c.seedCategory(t)
	ctx := context.Background()

	_, err := c.products.Create(ctx, dto.CreateProductRequest{SKU: "MAR-01", Name: "Martillo", CategoryID: catID})
	require.NoError(t, err)
	_, err = c.products.Create(ctx, dto.CreateProductRequest{SKU: "mar-01", Name: "Otro", CategoryID: catID})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductUseCase_Create_CategoriaInexistente(t *testing.T) {
	c := newCatalog()
	_, err := c.products.Create(context.Background(), dto.CreateProductRequest{SKU: "X", Name: "X", CategoryID: "nope"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUseCase_Create_PrecioNegativo(t *testing.T) {
	c := newCatalog()
	catID := c.seedCategory(t)
	_, err := c.products.Create(context.Background(), dto.CreateProductRequest{SKU: "X", Name: "X", CategoryID: catID, Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUseCase_Update(t *testing.T) {
	c := newCatalog()
	catID := c.seedCategory(t)
	ctx := context.Background()
	p, err := c.products.Create(ctx, dto.CreateProductRequest{SKU: "MAR-01", Name: "Martillo", CategoryID: catID})
	require.NoError(t, err)

	name := "Martillo de bola"
	minStock := decimal.NewFromInt(8)
	updated, err := c.products.Update(ctx, p.ID, dto.UpdateProductRequest{Name: &name, MinStock: &minStock})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.True(t, updated.MinStock.Equal(minStock))

	_, err = c.products.Update(ctx, "nope", dto.UpdateProductRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUseCase_List_Paginado(t *testing.T) {
	c := newCatalog()
	catID := c.seedCategory(t)
	ctx := context.Background()
	for _, sku := range []string{"A", "B", "C"} {
		_, err := c.products.Create(ctx, dto.CreateProductRequest{SKU: sku, Name: sku, CategoryID: catID})
		require.NoError(t, err)
	}

	page, err := c.products.List(ctx, "", dto.PageRequest{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "B", page.Items[0].SKU)
	assert.Equal(t, 3, page.Page.Total)

	empty, err := c.products.List(ctx, "", dto.PageRequest{Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, empty.Items)
}

func TestProductUseCase_Delete_ConTransacciones(t *testing.T) {
	c := newCatalog()
	catID := c.seedCategory(t)
	ctx := context.Background()
	p, err := c.products.Create(ctx, dto.CreateProductRequest{SKU: "MAR-01", Name: "Martillo", CategoryID: catID})
	require.NoError(t, err)

	require.NoError(t, c.store.Transactions().Create(ctx, &entity.Transaction{
		ID: "t-1", ProductID: p.ID, Type: entity.TransactionTypeEntry,
		Quantity: decimal.NewFromInt(1), UnitCost: decimal.NewFromInt(1), Date: time.Now(),
	}))
	assert.ErrorIs(t, c.products.Delete(ctx, p.ID), domain.ErrProductHasTransactions)
}

// ─── Categorías ──────────────────────────────────────────────────────────────

func TestCategoryUseCase_Delete_EnUso(t *testing.T) {
	c := newCatalog()
	catID := c.seedCategory(t)
	ctx := context.Background()
	_, err := c.products.Create(ctx, dto.CreateProductRequest{SKU: "MAR-01", Name: "Martillo", CategoryID: catID})
	require.NoError(t, err)

	assert.ErrorIs(t, c.categories.Delete(ctx, catID), domain.ErrCategoryInUse)
}

func TestCategoryUseCase_CRUD(t *testing.T) {
	c := newCatalog()
	catID := c.seedCategory(t)
	ctx := context.Background()

	desc := "Manuales"
	updated, err := c.categories.Update(ctx, catID, dto.UpdateCategoryRequest{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "Manuales", updated.Description)

	list, err := c.categories.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, c.categories.Delete(ctx, catID))
	_, err = c.categories.GetByID(ctx, catID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
