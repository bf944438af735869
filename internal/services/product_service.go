package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/oliweira/back-mrg/internal/models"
	"github.com/oliweira/back-mrg/internal/repositories"
)

// EventPublisher delivers product change events to a broker.
type EventPublisher interface {
	PublishProductEvent(event models.ProductEvent) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher
	validate  *validator.Validate
}

// NewProductService creates a new ProductService. publisher may be nil, in
// which case no events are emitted.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
		validate:  newValidator(),
	}
}

// ListProducts retrieves all products.
func (s *ProductService) ListProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, &StorageError{Op: "list products", Err: err}
	}
	return products, nil
}

// CreateProduct stores a new product. name, price and quantity fill the
// columns the input left unset, and absent list fields are stored as empty
// lists. The returned input carries the ID assigned by storage.
func (s *ProductService) CreateProduct(ctx context.Context, input *models.ProductInput) (*models.ProductInput, error) {
	if err := s.validateCreate(input); err != nil {
		return nil, err
	}

	input.FillColumns()
	product := &input.Product
	if product.ExtraImageURLs == nil {
		product.ExtraImageURLs = models.StringList{}
	}
	if product.ExtraVideoURLs == nil {
		product.ExtraVideoURLs = models.StringList{}
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, &StorageError{Op: "create product", Err: err}
	}

	s.publish(models.ProductCreated, product.ID, product)
	return input, nil
}

// UpdateProduct overwrites every field of the product with the given ID. Fields
// missing from the input are cleared, not merged with stored values.
func (s *ProductService) UpdateProduct(ctx context.Context, id int64, product *models.Product) (*models.Product, error) {
	product.ID = id
	if err := s.repo.Update(ctx, product); err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return nil, err
		}
		return nil, &StorageError{Op: "update product", Err: err}
	}

	s.publish(models.ProductUpdated, id, product)
	return product, nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return err
		}
		return &StorageError{Op: "delete product", Err: err}
	}

	s.publish(models.ProductDeleted, id, nil)
	return nil
}

// publish never fails the write it reports on.
func (s *ProductService) publish(eventType models.ProductEventType, id int64, product *models.Product) {
	if s.publisher == nil {
		return
	}

	event := models.ProductEvent{
		ID:         uuid.New().String(),
		Type:       eventType,
		ProductID:  id,
		Product:    product,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.publisher.PublishProductEvent(event); err != nil {
		log.Printf("Warning: failed to publish %s event for product %d: %v", eventType, id, err)
	}
}
