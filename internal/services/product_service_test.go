package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/oliweira/back-mrg/internal/models"
	"github.com/oliweira/back-mrg/internal/repositories"
	"github.com/oliweira/back-mrg/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of services.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishProductEvent(event models.ProductEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

func strPtr(s string) *string { return &s }

func intPtr(i int64) *int64 { return &i }

func decPtr(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}

func eventOfType(t models.ProductEventType, id int64) interface{} {
	return mock.MatchedBy(func(e models.ProductEvent) bool {
		return e.Type == t && e.ProductID == id && e.ID != ""
	})
}

func TestProductService_ListProducts(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	expectedProducts := []models.Product{
		{ID: 1, Name: strPtr("Product A"), Price: decPtr(10), Quantity: intPtr(100)},
		{ID: 2, Name: strPtr("Product B"), Price: decPtr(20), Quantity: intPtr(50)},
	}

	mockRepo.On("GetAll", ctx).Return(expectedProducts, nil).Once()

	products, err := service.ListProducts(ctx)
	assert.NoError(t, err)
	assert.Equal(t, expectedProducts, products)

	// Storage failure
	mockRepo.On("GetAll", ctx).Return(nil, fmt.Errorf("connection refused")).Once()
	products, err = service.ListProducts(ctx)
	assert.Nil(t, products)
	var storageErr *services.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Contains(t, err.Error(), "connection refused")
	mockRepo.AssertExpectations(t)
}

func newInput(name string, price float64, quantity int64) *models.ProductInput {
	return &models.ProductInput{InputName: strPtr(name), InputPrice: decPtr(price), InputQuantity: intPtr(quantity)}
}

func TestProductService_CreateProduct(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	mockMQ := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, mockMQ)

	input := newInput("Chair", 49.90, 3)

	mockRepo.On("Create", ctx, mock.MatchedBy(func(p *models.Product) bool {
		return *p.Name == "Chair" && p.Price.Equal(decimal.NewFromFloat(49.90)) && *p.Quantity == 3
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Product).ID = 7
	}).Return(nil).Once()
	mockMQ.On("PublishProductEvent", eventOfType(models.ProductCreated, 7)).Return(nil).Once()

	created, err := service.CreateProduct(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)
	assert.Equal(t, "Chair", *created.InputName)
	assert.Equal(t, "Chair", *created.Name)
	assert.Equal(t, models.StringList{}, created.ExtraImageURLs)
	assert.Equal(t, models.StringList{}, created.ExtraVideoURLs)

	mockRepo.AssertExpectations(t)
	mockMQ.AssertExpectations(t)
}

func TestProductService_CreateProduct_ZeroValuesArePresent(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	lamp := newInput("Lamp", 0, 0)
	mockRepo.On("Create", ctx, mock.MatchedBy(func(p *models.Product) bool {
		return p.Price.IsZero() && *p.Quantity == 0
	})).Return(nil).Once()

	_, err := service.CreateProduct(ctx, lamp)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct_ColumnKeysWin(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	input := newInput("Chair", 10, 1)
	input.Name = strPtr("Cadeira")
	input.Price = decPtr(12.5)

	mockRepo.On("Create", ctx, mock.MatchedBy(func(p *models.Product) bool {
		return *p.Name == "Cadeira" && p.Price.Equal(decimal.NewFromFloat(12.5)) && *p.Quantity == 1
	})).Return(nil).Once()

	created, err := service.CreateProduct(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, "Chair", *created.InputName)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct_MissingFields(t *testing.T) {
	testCases := []struct {
		name    string
		input   *models.ProductInput
		missing []string
	}{
		{"no name", &models.ProductInput{InputPrice: decPtr(1), InputQuantity: intPtr(1)}, []string{"name"}},
		{"empty name", &models.ProductInput{InputName: strPtr(""), InputPrice: decPtr(1), InputQuantity: intPtr(1)}, []string{"name"}},
		{"no price", &models.ProductInput{InputName: strPtr("X"), InputQuantity: intPtr(1)}, []string{"price"}},
		{"no quantity", &models.ProductInput{InputName: strPtr("X"), InputPrice: decPtr(1)}, []string{"quantity"}},
		{
			"column keys only",
			&models.ProductInput{Product: models.Product{Name: strPtr("X"), Price: decPtr(1), Quantity: intPtr(1)}},
			[]string{"name", "price", "quantity"},
		},
		{
			"nothing but extras",
			&models.ProductInput{Product: models.Product{Description: strPtr("d"), ExtraImageURLs: models.StringList{"a"}}},
			[]string{"name", "price", "quantity"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := new(MockProductRepository)
			service := services.NewProductService(mockRepo, nil)

			created, err := service.CreateProduct(context.Background(), tc.input)
			assert.Nil(t, created)

			var validationErr *services.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Len(t, validationErr.Fields, len(tc.missing))
			for _, field := range tc.missing {
				assert.Contains(t, validationErr.Fields, field)
			}
			mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestProductService_CreateProduct_StorageError(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	mockMQ := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, mockMQ)

	mockRepo.On("Create", ctx, mock.Anything).Return(fmt.Errorf("database error")).Once()

	_, err := service.CreateProduct(ctx, newInput("Chair", 1, 1))
	var storageErr *services.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, "create product", storageErr.Op)
	mockMQ.AssertNotCalled(t, "PublishProductEvent", mock.Anything)
}

func TestProductService_CreateProduct_PublishFailureIsIgnored(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	mockMQ := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, mockMQ)

	mockRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
	mockMQ.On("PublishProductEvent", mock.Anything).Return(errors.New("broker down")).Once()

	_, err := service.CreateProduct(ctx, newInput("Chair", 1, 1))
	assert.NoError(t, err)
	mockMQ.AssertExpectations(t)
}

func TestProductService_UpdateProduct(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	mockMQ := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, mockMQ)

	input := &models.Product{Name: strPtr("Product A Updated"), Price: decPtr(12)}

	mockRepo.On("Update", ctx, mock.MatchedBy(func(p *models.Product) bool {
		return p.ID == 1 && *p.Name == "Product A Updated" && p.ExtraImageURLs == nil
	})).Return(nil).Once()
	mockMQ.On("PublishProductEvent", eventOfType(models.ProductUpdated, 1)).Return(nil).Once()

	updated, err := service.UpdateProduct(ctx, 1, input)
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.ID)
	assert.Nil(t, updated.Quantity)

	// Product not found
	mockRepo.On("Update", ctx, mock.MatchedBy(func(p *models.Product) bool { return p.ID == 99 })).
		Return(fmt.Errorf("product with ID 99: %w", repositories.ErrProductNotFound)).Once()
	_, err = service.UpdateProduct(ctx, 99, &models.Product{Name: strPtr("NonExistent")})
	assert.ErrorIs(t, err, services.ErrProductNotFound)

	// Storage failure
	mockRepo.On("Update", ctx, mock.MatchedBy(func(p *models.Product) bool { return p.ID == 5 })).
		Return(fmt.Errorf("deadlock")).Once()
	_, err = service.UpdateProduct(ctx, 5, &models.Product{})
	var storageErr *services.StorageError
	assert.ErrorAs(t, err, &storageErr)

	mockRepo.AssertExpectations(t)
	mockMQ.AssertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	mockMQ := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, mockMQ)

	mockRepo.On("Delete", ctx, int64(1)).Return(nil).Once()
	mockMQ.On("PublishProductEvent", mock.MatchedBy(func(e models.ProductEvent) bool {
		return e.Type == models.ProductDeleted && e.ProductID == 1 && e.Product == nil
	})).Return(nil).Once()
	assert.NoError(t, service.DeleteProduct(ctx, 1))

	mockRepo.On("Delete", ctx, int64(99)).Return(fmt.Errorf("product with ID 99: %w", repositories.ErrProductNotFound)).Once()
	assert.ErrorIs(t, service.DeleteProduct(ctx, 99), services.ErrProductNotFound)

	mockRepo.On("Delete", ctx, int64(3)).Return(fmt.Errorf("connection reset")).Once()
	var storageErr *services.StorageError
	assert.ErrorAs(t, service.DeleteProduct(ctx, 3), &storageErr)

	mockRepo.AssertExpectations(t)
	mockMQ.AssertExpectations(t)
}
