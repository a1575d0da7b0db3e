// Package memory implementa los puertos de repositorio en memoria.
// Se usa en tests, en el CLI de kardex y con STORAGE=memory; el estado puede volcarse a un snapshot JSON.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// Store guarda catálogo, usuarios y ledger en slices que conservan el orden de inserción.
// Un único RWMutex protege todo el estado; RunForProduct toma el lock de escritura.
type Store struct {
	mu           sync.RWMutex
	categories   []entity.Category
	products     []entity.Product
	transactions []entity.Transaction
	users        []entity.User
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{}
}

// Categories devuelve el repositorio de categorías respaldado por el store.
func (s *Store) Categories() *CategoryRepo { return &CategoryRepo{s: s} }

// Products devuelve el repositorio de productos respaldado por el store.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

// Transactions devuelve el repositorio del ledger respaldado por el store.
func (s *Store) Transactions() *TransactionRepo { return &TransactionRepo{s: s} }

// Users devuelve el repositorio de usuarios respaldado por el store.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// RunForProduct ejecuta fn con el lock de escritura tomado. Si fn falla se restaura el ledger.
func (s *Store) RunForProduct(ctx context.Context, productID string, fn func(txRepo repository.TransactionRepository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.productIndex(productID) < 0 {
		return domain.ErrNotFound
	}

	saved := len(s.transactions)
	if err := fn(&txView{s: s}); err != nil {
		s.transactions = s.transactions[:saved]
		return err
	}
	return nil
}

// =============================================================================
// SNAPSHOT
// =============================================================================

type snapshot struct {
	Categories   []categoryRecord    `json:"categories"`
	Products     []productRecord     `json:"products"`
	Transactions []transactionRecord `json:"transactions"`
	Users        []userRecord        `json:"users,omitempty"`
}

// Save escribe el estado completo como JSON.
func (s *Store) Save(w io.Writer) error {
	s.mu.RLock()
	snap := snapshot{
		Categories:   make([]categoryRecord, 0, len(s.categories)),
		Products:     make([]productRecord, 0, len(s.products)),
		Transactions: make([]transactionRecord, 0, len(s.transactions)),
	}
	for _, c := range s.categories {
		snap.Categories = append(snap.Categories, toCategoryRecord(c))
	}
	for _, p := range s.products {
		snap.Products = append(snap.Products, toProductRecord(p))
	}
	for _, t := range s.transactions {
		snap.Transactions = append(snap.Transactions, toTransactionRecord(t))
	}
	for _, u := range s.users {
		snap.Users = append(snap.Users, toUserRecord(u))
	}
	s.mu.RUnlock()

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("memory: guardar snapshot: %w", err)
	}
	return nil
}

// Load reemplaza el estado con el snapshot leído de r.
// Las transacciones se cargan tal cual: el snapshot es la fuente de verdad y no se revalida el stock.
func (s *Store) Load(r io.Reader) error {
	var snap snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return fmt.Errorf("memory: leer snapshot: %w", err)
	}

	categories := make([]entity.Category, 0, len(snap.Categories))
	for _, c := range snap.Categories {
		categories = append(categories, c.toEntity())
	}
	products := make([]entity.Product, 0, len(snap.Products))
	for _, p := range snap.Products {
		products = append(products, p.toEntity())
	}
	transactions := make([]entity.Transaction, 0, len(snap.Transactions))
	for _, t := range snap.Transactions {
		tx := t.toEntity()
		if !entity.ValidTransactionType(tx.Type) {
			return fmt.Errorf("memory: transacción %s con tipo %q: %w", tx.ID, tx.Type, domain.ErrInvalidInput)
		}
		transactions = append(transactions, tx)
	}
	users := make([]entity.User, 0, len(snap.Users))
	for _, u := range snap.Users {
		users = append(users, u.toEntity())
	}

	s.mu.Lock()
	s.categories = categories
	s.products = products
	s.transactions = transactions
	s.users = users
	s.mu.Unlock()
	return nil
}

func (s *Store) categoryIndex(id string) int {
	for i := range s.categories {
		if s.categories[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) productIndex(id string) int {
	for i := range s.products {
		if s.products[i].ID == id {
			return i
		}
	}
	return -1
}
