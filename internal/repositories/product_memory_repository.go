package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/oliweira/back-mrg/internal/models"
)

// MemoryProductRepository is an in-memory implementation of ProductRepository.
// IDs are assigned sequentially and never reused.
type MemoryProductRepository struct {
	products map[int64]models.Product
	nextID   int64
	mu       sync.RWMutex
}

// NewMemoryProductRepository creates a new instance of MemoryProductRepository.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		products: make(map[int64]models.Product),
	}
}

// GetAll returns all products ordered by ID.
func (r *MemoryProductRepository) GetAll(_ context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		productList = append(productList, stored(p))
	}
	sort.Slice(productList, func(i, j int) bool { return productList[i].ID < productList[j].ID })
	return productList, nil
}

// Create adds a new product.
func (r *MemoryProductRepository) Create(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	product.ID = r.nextID
	r.products[product.ID] = stored(*product)
	return nil
}

// Update replaces an existing product.
func (r *MemoryProductRepository) Update(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return fmt.Errorf("product with ID %d: %w", product.ID, ErrProductNotFound)
	}
	r.products[product.ID] = stored(*product)
	return nil
}

// Delete removes a product by its ID.
func (r *MemoryProductRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return fmt.Errorf("product with ID %d: %w", id, ErrProductNotFound)
	}
	delete(r.products, id)
	return nil
}

// stored copies the list fields so callers cannot mutate repository state, and
// reads NULL lists back as empty ones the way the SQL repository does.
func stored(p models.Product) models.Product {
	p.ExtraImageURLs = append(models.StringList{}, p.ExtraImageURLs...)
	p.ExtraVideoURLs = append(models.StringList{}, p.ExtraVideoURLs...)
	return p
}
