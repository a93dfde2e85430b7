package repository

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"smmagent/internal/models"
	"smmagent/pkg/utils"
)

var (
	ErrProductNotFound = errors.New("product doesn't exist")
	ErrProductLocked   = errors.New("product is immutable after content generation")
)

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) (string, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	List(ctx context.Context, skip, limit int) ([]*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Remove(ctx context.Context, id string) error
	Lock(ctx context.Context, id string) error
}

// productRepository keeps products in process memory. No data store is wired
// up for products; the repository interface keeps callers store-agnostic.
type productRepository struct {
	mu       sync.RWMutex
	products map[string]*models.Product
	order    []string
	locked   map[string]bool
}

func NewProductRepository() ProductRepository {
	return &productRepository{
		products: make(map[string]*models.Product),
		locked:   make(map[string]bool),
	}
}

func (r *productRepository) Create(ctx context.Context, product *models.Product) (string, error) {
	id, err := utils.NewID()
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}

	now := time.Now()
	product.ID = id
	product.CreatedAt = now
	product.UpdatedAt = now

	r.mu.Lock()
	r.products[id] = product
	r.order = append(r.order, id)
	r.mu.Unlock()

	return id, nil
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	return product, nil
}

func (r *productRepository) List(ctx context.Context, skip, limit int) ([]*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if skip < 0 {
		skip = 0
	}
	if skip >= len(r.order) {
		return nil, nil
	}

	end := len(r.order)
	if limit > 0 && skip+limit < end {
		end = skip + limit
	}

	products := make([]*models.Product, 0, end-skip)
	for _, id := range r.order[skip:end] {
		products = append(products, r.products[id])
	}
	return products, nil
}

func (r *productRepository) Update(ctx context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return ErrProductNotFound
	}
	if r.locked[product.ID] {
		return ErrProductLocked
	}

	product.UpdatedAt = time.Now()
	r.products[product.ID] = product
	return nil
}

func (r *productRepository) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return ErrProductNotFound
	}

	delete(r.products, id)
	delete(r.locked, id)
	for i, pid := range r.order {
		if pid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Lock marks a product immutable. Called once content generation has been
// requested for it.
func (r *productRepository) Lock(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return ErrProductNotFound
	}
	r.locked[id] = true
	return nil
}
