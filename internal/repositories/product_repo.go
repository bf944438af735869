package repositories

import (
	"context"
	"errors"

	"github.com/oliweira/back-mrg/internal/models"
)

// ErrProductNotFound is returned when no row matches the requested id.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id int64) error
}
