package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"joyeria-api/internal/domain"
	"joyeria-api/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductDetail is everything the detail screen shows: the product itself,
// its buyer comments, and the average of their ratings.
type ProductDetail struct {
	Product       *domain.Product
	Comments      []*domain.Comment
	AverageRating float64
}

// ProductInput carries the admin-supplied fields of a catalog item.
type ProductInput struct {
	Name        string
	Price       float64
	Description string
	ImageURL    string
}

// CatalogService serves the browsing surface and the admin catalog CRUD.
type CatalogService interface {
	Browse(ctx context.Context, query string) ([]*domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Detail(ctx context.Context, id string) (*ProductDetail, error)
	CreateProduct(ctx context.Context, input ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, input ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

type catalogService struct {
	products repository.ProductRepository
	comments repository.CommentRepository
	logger   *zap.Logger
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(products repository.ProductRepository, comments repository.CommentRepository, logger *zap.Logger) CatalogService {
	return &catalogService{
		products: products,
		comments: comments,
		logger:   logger,
	}
}

// Browse lists the catalog, filtered by a case-insensitive substring match on
// name or description when a query is given.
func (s *catalogService) Browse(ctx context.Context, query string) ([]*domain.Product, error) {
	products, err := s.products.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to browse catalog: %w", err)
	}
	return products, nil
}

// Get loads a single product without its feedback.
func (s *catalogService) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.FindByID(ctx, id)
}

// Detail loads a product together with its comments and average rating.
func (s *catalogService) Detail(ctx context.Context, id string) (*ProductDetail, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load product comments: %w", err)
	}

	ratings := make([]int, 0, len(comments))
	for _, c := range comments {
		ratings = append(ratings, c.Rating)
	}

	return &ProductDetail{
		Product:       product,
		Comments:      comments,
		AverageRating: AverageRating(ratings),
	}, nil
}

// CreateProduct adds a catalog item
func (s *catalogService) CreateProduct(ctx context.Context, input ProductInput) (*domain.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	now := time.Now()
	product := &domain.Product{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(input.Name),
		Price:       input.Price,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("Product created",
		zap.String("product_id", product.ID),
		zap.String("name", product.Name),
	)

	return product, nil
}

// UpdateProduct replaces a catalog item's mutable fields
func (s *catalogService) UpdateProduct(ctx context.Context, id string, input ProductInput) (*domain.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Name = strings.TrimSpace(input.Name)
	product.Price = input.Price
	product.Description = input.Description
	product.ImageURL = input.ImageURL
	product.UpdatedAt = time.Now()

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// DeleteProduct removes a catalog item
func (s *catalogService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Product deleted", zap.String("product_id", id))
	return nil
}

func validateProductInput(input ProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be blank"}
	}
	if input.Price < 0 {
		return &ValidationError{Field: "price", Reason: "must not be negative"}
	}
	return nil
}
