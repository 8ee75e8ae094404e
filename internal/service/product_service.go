package service

import (
	"context"
	"errors"

	"grindhub/gym-platform/internal/domain"
	"grindhub/gym-platform/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrCategoryNotEmpty = errors.New("category still contains products")

type ProductInput struct {
	CategoryID    uuid.UUID
	Name          string
	Description   string
	Price         decimal.Decimal
	StockQuantity *int
	IsActive      *bool
}

type ProductService interface {
	CreateCategory(ctx context.Context, actor domain.Actor, name string) (*domain.ProductCategory, error)
	ListCategories(ctx context.Context, actor domain.Actor, page, limit int) ([]domain.ProductCategory, int64, error)
	UpdateCategory(ctx context.Context, actor domain.Actor, id uuid.UUID, name string) (*domain.ProductCategory, error)
	// DeleteCategory refuses to remove a category that still has live
	// products.
	DeleteCategory(ctx context.Context, actor domain.Actor, id uuid.UUID) error

	Create(ctx context.Context, actor domain.Actor, input ProductInput) (*domain.Product, error)
	Get(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Product, error)
	List(ctx context.Context, actor domain.Actor, page, limit int, activeOnly bool) ([]domain.Product, int64, error)
	Update(ctx context.Context, actor domain.Actor, id uuid.UUID, input ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error
}

type productService struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
}

func NewProductService(categories repository.CategoryRepository, products repository.ProductRepository) ProductService {
	return &productService{categories: categories, products: products}
}

func (s *productService) CreateCategory(ctx context.Context, actor domain.Actor, name string) (*domain.ProductCategory, error) {
	if actor.GymID == nil {
		return nil, validationError("categories must belong to a gym")
	}
	if name == "" {
		return nil, validationError("category name is required")
	}

	c := &domain.ProductCategory{
		ID:    uuid.New(),
		GymID: *actor.GymID,
		Name:  name,
	}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *productService) ListCategories(ctx context.Context, actor domain.Actor, page, limit int) ([]domain.ProductCategory, int64, error) {
	return s.categories.List(ctx, actor.TenantScope(), page, limit)
}

func (s *productService) UpdateCategory(ctx context.Context, actor domain.Actor, id uuid.UUID, name string) (*domain.ProductCategory, error) {
	c, err := s.categories.GetByID(ctx, actor.TenantScope(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if name == "" {
		return nil, validationError("category name is required")
	}
	c.Name = name
	if err := s.categories.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *productService) DeleteCategory(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	if _, err := s.categories.GetByID(ctx, actor.TenantScope(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	live, err := s.categories.CountLiveProducts(ctx, id)
	if err != nil {
		return err
	}
	if live > 0 {
		return ErrCategoryNotEmpty
	}
	return s.categories.SoftDelete(ctx, actor.TenantScope(), id)
}

func (s *productService) Create(ctx context.Context, actor domain.Actor, input ProductInput) (*domain.Product, error) {
	if actor.GymID == nil {
		return nil, validationError("products must belong to a gym")
	}
	if input.Name == "" {
		return nil, validationError("product name is required")
	}
	if input.Price.IsNegative() {
		return nil, validationError("price cannot be negative")
	}
	if _, err := s.categories.GetByID(ctx, actor.TenantScope(), input.CategoryID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, validationError("category not found in this gym")
		}
		return nil, err
	}

	// Product names are unique within a gym's category.
	if _, err := s.products.GetByName(ctx, *actor.GymID, input.CategoryID, input.Name); err == nil {
		return nil, conflictError("product %q already exists in this category", input.Name)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	stock := 0
	if input.StockQuantity != nil {
		if *input.StockQuantity < 0 {
			return nil, validationError("stock quantity cannot be negative")
		}
		stock = *input.StockQuantity
	}
	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	p := &domain.Product{
		ID:            uuid.New(),
		GymID:         *actor.GymID,
		CategoryID:    input.CategoryID,
		Name:          input.Name,
		Description:   input.Description,
		Price:         input.Price,
		StockQuantity: stock,
		IsActive:      active,
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *productService) Get(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Product, error) {
	p, err := s.products.GetByID(ctx, actor.TenantScope(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *productService) List(ctx context.Context, actor domain.Actor, page, limit int, activeOnly bool) ([]domain.Product, int64, error) {
	// Students browse the shop; inactive products stay hidden from them.
	if actor.IsStudent() {
		activeOnly = true
	}
	return s.products.List(ctx, actor.TenantScope(), page, limit, activeOnly)
}

func (s *productService) Update(ctx context.Context, actor domain.Actor, id uuid.UUID, input ProductInput) (*domain.Product, error) {
	p, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if input.CategoryID != uuid.Nil && input.CategoryID != p.CategoryID {
		if _, err := s.categories.GetByID(ctx, actor.TenantScope(), input.CategoryID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, validationError("category not found in this gym")
			}
			return nil, err
		}
		p.CategoryID = input.CategoryID
	}
	if input.Name != "" && input.Name != p.Name {
		if _, err := s.products.GetByName(ctx, p.GymID, p.CategoryID, input.Name); err == nil {
			return nil, conflictError("product %q already exists in this category", input.Name)
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		p.Name = input.Name
	}
	if input.Description != "" {
		p.Description = input.Description
	}
	if !input.Price.IsZero() {
		if input.Price.IsNegative() {
			return nil, validationError("price cannot be negative")
		}
		p.Price = input.Price
	}
	if input.StockQuantity != nil {
		if *input.StockQuantity < 0 {
			return nil, validationError("stock quantity cannot be negative")
		}
		p.StockQuantity = *input.StockQuantity
	}
	if input.IsActive != nil {
		p.IsActive = *input.IsActive
	}

	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *productService) Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	if err := s.products.SoftDelete(ctx, actor.TenantScope(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
