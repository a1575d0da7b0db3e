package memory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

type categoryRecord struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toCategoryRecord(c entity.Category) categoryRecord {
	return categoryRecord{ID: c.ID, Name: c.Name, Description: c.Description, CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt}
}

func (r categoryRecord) toEntity() entity.Category {
	return entity.Category{ID: r.ID, Name: r.Name, Description: r.Description, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt}
}

type productRecord struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	CategoryID  string          `json:"category_id"`
	Price       decimal.Decimal `json:"price"`
	MinStock    decimal.Decimal `json:"min_stock"`
	UnitMeasure string          `json:"unit_measure,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func toProductRecord(p entity.Product) productRecord {
	return productRecord{
		ID: p.ID, SKU: p.SKU, Name: p.Name, Description: p.Description, CategoryID: p.CategoryID,
		Price: p.Price, MinStock: p.MinStock, UnitMeasure: p.UnitMeasure,
		CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	}
}

func (r productRecord) toEntity() entity.Product {
	return entity.Product{
		ID: r.ID, SKU: r.SKU, Name: r.Name, Description: r.Description, CategoryID: r.CategoryID,
		Price: r.Price, MinStock: r.MinStock, UnitMeasure: r.UnitMeasure,
		CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}

type transactionRecord struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Type      string          `json:"type"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Date      time.Time       `json:"date"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	CreatedBy string          `json:"created_by,omitempty"`
}

func toTransactionRecord(t entity.Transaction) transactionRecord {
	return transactionRecord{
		ID: t.ID, ProductID: t.ProductID, Type: t.Type, Quantity: t.Quantity, UnitCost: t.UnitCost,
		Date: t.Date, Notes: t.Notes, CreatedAt: t.CreatedAt, CreatedBy: t.CreatedBy,
	}
}

func (r transactionRecord) toEntity() entity.Transaction {
	return entity.Transaction{
		ID: r.ID, ProductID: r.ProductID, Type: r.Type, Quantity: r.Quantity, UnitCost: r.UnitCost,
		Date: r.Date, Notes: r.Notes, CreatedAt: r.CreatedAt, CreatedBy: r.CreatedBy,
	}
}

type userRecord struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toUserRecord(u entity.User) userRecord {
	return userRecord{
		ID: u.ID, Email: u.Email, PasswordHash: u.PasswordHash, Name: u.Name, Role: u.Role,
		Status: u.Status, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt,
	}
}

func (r userRecord) toEntity() entity.User {
	return entity.User{
		ID: r.ID, Email: r.Email, PasswordHash: r.PasswordHash, Name: r.Name, Role: r.Role,
		Status: r.Status, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt,
	}
}
