package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

var (
	_ repository.CategoryRepository    = (*CategoryRepo)(nil)
	_ repository.ProductRepository     = (*ProductRepo)(nil)
	_ repository.TransactionRepository = (*TransactionRepo)(nil)
	_ repository.TransactionRepository = (*txView)(nil)
	_ repository.UserRepository        = (*UserRepo)(nil)
)

// =============================================================================
// CATEGORÍAS
// =============================================================================

// CategoryRepo implementa repository.CategoryRepository sobre el Store.
type CategoryRepo struct {
	s *Store
}

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.categoryIndex(c.ID) >= 0 {
		return domain.ErrDuplicate
	}
	r.s.categories = append(r.s.categories, *c)
	return nil
}

func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	i := r.s.categoryIndex(id)
	if i < 0 {
		return nil, nil
	}
	c := r.s.categories[i]
	return &c, nil
}

func (r *CategoryRepo) Update(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := r.s.categoryIndex(c.ID)
	if i < 0 {
		return domain.ErrNotFound
	}
	r.s.categories[i] = *c
	return nil
}

func (r *CategoryRepo) List(_ context.Context) ([]entity.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]entity.Category, len(r.s.categories))
	copy(out, r.s.categories)
	return out, nil
}

func (r *CategoryRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := r.s.categoryIndex(id)
	if i < 0 {
		return domain.ErrNotFound
	}
	r.s.categories = append(r.s.categories[:i], r.s.categories[i+1:]...)
	return nil
}

// =============================================================================
// PRODUCTOS
// =============================================================================

// ProductRepo implementa repository.ProductRepository sobre el Store.
// El SKU es único sin distinguir mayúsculas.
type ProductRepo struct {
	s *Store
}

func (r *ProductRepo) skuTaken(sku, exceptID string) bool {
	for _, p := range r.s.products {
		if p.ID != exceptID && strings.EqualFold(p.SKU, sku) {
			return true
		}
	}
	return false
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.productIndex(p.ID) >= 0 || r.skuTaken(p.SKU, "") {
		return domain.ErrDuplicate
	}
	r.s.products = append(r.s.products, *p)
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	i := r.s.productIndex(id)
	if i < 0 {
		return nil, nil
	}
	p := r.s.products[i]
	return &p, nil
}

func (r *ProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.products {
		if strings.EqualFold(p.SKU, sku) {
			found := p
			return &found, nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := r.s.productIndex(p.ID)
	if i < 0 {
		return domain.ErrNotFound
	}
	if r.skuTaken(p.SKU, p.ID) {
		return domain.ErrDuplicate
	}
	r.s.products[i] = *p
	return nil
}

func (r *ProductRepo) List(_ context.Context) ([]entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]entity.Product, len(r.s.products))
	copy(out, r.s.products)
	return out, nil
}

func (r *ProductRepo) ListByCategory(_ context.Context, categoryID string) ([]entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]entity.Product, 0)
	for _, p := range r.s.products {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	i := r.s.productIndex(id)
	if i < 0 {
		return domain.ErrNotFound
	}
	r.s.products = append(r.s.products[:i], r.s.products[i+1:]...)
	return nil
}

// =============================================================================
// LEDGER
// =============================================================================

// TransactionRepo implementa repository.TransactionRepository tomando el lock en cada operación.
// Create no valida stock: esa verificación vive en el caso de uso, dentro de RunForProduct.
type TransactionRepo struct {
	s *Store
}

func (r *TransactionRepo) Create(ctx context.Context, tx *entity.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return (&txView{s: r.s}).Create(ctx, tx)
}

func (r *TransactionRepo) GetByID(ctx context.Context, id string) (*entity.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return (&txView{s: r.s}).GetByID(ctx, id)
}

func (r *TransactionRepo) List(ctx context.Context) ([]entity.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return (&txView{s: r.s}).List(ctx)
}

func (r *TransactionRepo) ListByProduct(ctx context.Context, productID string) ([]entity.Transaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return (&txView{s: r.s}).ListByProduct(ctx, productID)
}

func (r *TransactionRepo) CountByProduct(ctx context.Context, productID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return (&txView{s: r.s}).CountByProduct(ctx, productID)
}

// txView opera sobre el ledger asumiendo que el lock ya está tomado.
type txView struct {
	s *Store
}

func (v *txView) Create(_ context.Context, tx *entity.Transaction) error {
	for _, t := range v.s.transactions {
		if t.ID == tx.ID {
			return domain.ErrDuplicate
		}
	}
	v.s.transactions = append(v.s.transactions, *tx)
	return nil
}

func (v *txView) GetByID(_ context.Context, id string) (*entity.Transaction, error) {
	for _, t := range v.s.transactions {
		if t.ID == id {
			found := t
			return &found, nil
		}
	}
	return nil, nil
}

func (v *txView) List(_ context.Context) ([]entity.Transaction, error) {
	out := make([]entity.Transaction, len(v.s.transactions))
	copy(out, v.s.transactions)
	return out, nil
}

func (v *txView) ListByProduct(_ context.Context, productID string) ([]entity.Transaction, error) {
	out := make([]entity.Transaction, 0)
	for _, t := range v.s.transactions {
		if t.ProductID == productID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (v *txView) CountByProduct(_ context.Context, productID string) (int, error) {
	n := 0
	for _, t := range v.s.transactions {
		if t.ProductID == productID {
			n++
		}
	}
	return n, nil
}

// =============================================================================
// USUARIOS
// =============================================================================

// UserRepo implementa repository.UserRepository sobre el Store. El email es único sin distinguir mayúsculas.
type UserRepo struct {
	s *Store
}

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.users = append(r.s.users, *u)
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.ID == id {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}
