package postgres

import (
	"context"

	"grindhub/gym-platform/internal/domain"
	"grindhub/gym-platform/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type categoryRepository struct {
	db *gorm.DB
}

func (r *categoryRepository) Create(ctx context.Context, c *domain.ProductCategory) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return translate(r.db.WithContext(ctx).Create(c).Error)
}

func (r *categoryRepository) GetByID(ctx context.Context, gym *uuid.UUID, id uuid.UUID) (*domain.ProductCategory, error) {
	var c domain.ProductCategory
	err := gymScoped(r.db.WithContext(ctx), gym).First(&c, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *categoryRepository) List(ctx context.Context, gym *uuid.UUID, page, limit int) ([]domain.ProductCategory, int64, error) {
	var items []domain.ProductCategory
	var total int64

	q := gymScoped(r.db.WithContext(ctx).Model(&domain.ProductCategory{}), gym)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := paginate(q.Order("name"), page, limit).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *categoryRepository) Update(ctx context.Context, c *domain.ProductCategory) error {
	res := r.db.WithContext(ctx).Model(&domain.ProductCategory{}).Where("id = ?", c.ID).
		Update("name", c.Name)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *categoryRepository) SoftDelete(ctx context.Context, gym *uuid.UUID, id uuid.UUID) error {
	res := gymScoped(r.db.WithContext(ctx), gym).Delete(&domain.ProductCategory{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *categoryRepository) CountLiveProducts(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&domain.Product{}).
		Where("category_id = ?", categoryID).
		Count(&total).Error
	return total, err
}

type productRepository struct {
	db *gorm.DB
}

func (r *productRepository) Create(ctx context.Context, p *domain.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return translate(r.db.WithContext(ctx).Create(p).Error)
}

func (r *productRepository) GetByID(ctx context.Context, gym *uuid.UUID, id uuid.UUID) (*domain.Product, error) {
	var p domain.Product
	err := gymScoped(r.db.WithContext(ctx), gym).First(&p, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *productRepository) GetByName(ctx context.Context, gym uuid.UUID, categoryID uuid.UUID, name string) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).
		Where("gym_id = ? AND category_id = ? AND name = ?", gym, categoryID, name).
		First(&p).Error
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *productRepository) List(ctx context.Context, gym *uuid.UUID, page, limit int, activeOnly bool) ([]domain.Product, int64, error) {
	var items []domain.Product
	var total int64

	q := gymScoped(r.db.WithContext(ctx).Model(&domain.Product{}), gym)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := paginate(q.Order("name"), page, limit).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *productRepository) Update(ctx context.Context, p *domain.Product) error {
	res := r.db.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", p.ID).Updates(map[string]any{
		"name":           p.Name,
		"description":    p.Description,
		"category_id":    p.CategoryID,
		"price":          p.Price,
		"stock_quantity": p.StockQuantity,
		"is_active":      p.IsActive,
	})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *productRepository) SoftDelete(ctx context.Context, gym *uuid.UUID, id uuid.UUID) error {
	res := gymScoped(r.db.WithContext(ctx), gym).Delete(&domain.Product{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// GetActiveForUpdate takes FOR UPDATE locks on the selected rows so that
// the stock check and the decrement that follows cannot interleave with a
// concurrent order against the same products.
func (r *productRepository) GetActiveForUpdate(ctx context.Context, gym uuid.UUID, ids []uuid.UUID) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("gym_id = ? AND id IN ? AND is_active = ?", gym, ids, true).
		Find(&products).Error
	return products, err
}

func (r *productRepository) AdjustStock(ctx context.Context, id uuid.UUID, delta int) error {
	res := r.db.WithContext(ctx).Model(&domain.Product{}).
		Where("id = ?", id).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity + ?", delta))
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
