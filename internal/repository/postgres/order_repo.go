package postgres

import (
	"context"
	"time"

	"grindhub/gym-platform/internal/domain"
	"grindhub/gym-platform/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type orderRepository struct {
	db *gorm.DB
}

func (r *orderRepository) Create(ctx context.Context, o *domain.Order) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	for i := range o.Items {
		if o.Items[i].ID == uuid.Nil {
			o.Items[i].ID = uuid.New()
		}
		o.Items[i].OrderID = o.ID
	}
	return translate(r.db.WithContext(ctx).Create(o).Error)
}

func (r *orderRepository) GetByID(ctx context.Context, gym *uuid.UUID, id uuid.UUID) (*domain.Order, error) {
	var o domain.Order
	err := gymScoped(r.db.WithContext(ctx), gym).Preload("Items").First(&o, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &o, nil
}

func (r *orderRepository) List(ctx context.Context, f repository.OrderFilter) ([]domain.Order, int64, error) {
	var orders []domain.Order
	var total int64

	q := gymScoped(r.db.WithContext(ctx).Model(&domain.Order{}), f.Gym)
	switch {
	case len(f.UserIDs) > 0:
		q = q.Where("user_id IN ?", f.UserIDs)
	case f.UserID != nil:
		q = q.Where("user_id = ?", *f.UserID)
	}
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := paginate(q.Preload("Items").Order("created_at DESC"), f.Page, f.Limit).Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *orderRepository) Update(ctx context.Context, o *domain.Order) error {
	res := r.db.WithContext(ctx).Model(&domain.Order{}).Where("id = ?", o.ID).Updates(map[string]any{
		"status":   o.Status,
		"metadata": o.Metadata,
	})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *orderRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&domain.Order{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *orderRepository) Stats(ctx context.Context, gym *uuid.UUID) (*domain.OrderStats, error) {
	stats := &domain.OrderStats{
		CountsByStatus: make(map[domain.OrderStatus]int64),
		Revenue:        decimal.Zero,
	}

	type statusCount struct {
		Status domain.OrderStatus
		Count  int64
	}
	var counts []statusCount
	err := gymScoped(r.db.WithContext(ctx).Model(&domain.Order{}), gym).
		Select("status, count(*) as count").
		Group("status").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	for _, c := range counts {
		stats.CountsByStatus[c.Status] = c.Count
		stats.TotalOrders += c.Count
	}

	var revenue decimal.NullDecimal
	err = gymScoped(r.db.WithContext(ctx).Model(&domain.Order{}), gym).
		Where("status = ?", domain.OrderStatusCompleted).
		Select("sum(total_amount)").
		Scan(&revenue).Error
	if err != nil {
		return nil, err
	}
	if revenue.Valid {
		stats.Revenue = revenue.Decimal
	}
	return stats, nil
}

type orderCounterRepository struct {
	db *gorm.DB
}

// Next increments the (gym, day) counter and returns the new value. A
// single upsert creates the row on the first order of the day and bumps
// it atomically otherwise, so two transactions racing on the same day
// serialize on the row lock instead of aborting the caller's transaction
// on a duplicate-key error.
func (r *orderCounterRepository) Next(ctx context.Context, gymID uuid.UUID, day string) (int, error) {
	counter := domain.OrderCounter{GymID: gymID, Day: day, LastValue: 1, UpdatedAt: time.Now().UTC()}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "gym_id"}, {Name: "day"}},
			DoUpdates: clause.Assignments(map[string]any{
				"last_value": gorm.Expr("order_counters.last_value + 1"),
				"updated_at": time.Now().UTC(),
			}),
		}).
		Create(&counter).Error
	if err != nil {
		return 0, err
	}

	// Create does not report the conflict-path value, so read it back. The
	// upsert already locked the row for this transaction.
	err = r.db.WithContext(ctx).
		Where("gym_id = ? AND day = ?", gymID, day).
		First(&counter).Error
	if err != nil {
		return 0, err
	}
	return counter.LastValue, nil
}
