package service

import (
	"context"
	"errors"

	"grindhub/gym-platform/internal/domain"
	"grindhub/gym-platform/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrOrderCompleted = errors.New("completed orders cannot be cancelled or deleted")

// OrderItemInput is one requested line. Duplicate product IDs within a
// request are summed before the stock check.
type OrderItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

type OrderService interface {
	// Create places an order: validates and locks stock for every line,
	// mints the order number, snapshots prices and decrements stock, all
	// in one transaction.
	Create(ctx context.Context, actor domain.Actor, targetUserID uuid.UUID, items []OrderItemInput) (*domain.Order, error)
	Get(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Order, error)
	// List is role-scoped: students see their own orders, trainers their
	// matched students', everyone else the whole gym.
	List(ctx context.Context, actor domain.Actor, status *domain.OrderStatus, page, limit int) ([]domain.Order, int64, error)
	// UpdateStatus transitions the order. Moving to cancelled restores
	// every line's stock atomically with the status change.
	UpdateStatus(ctx context.Context, actor domain.Actor, id uuid.UUID, status domain.OrderStatus) (*domain.Order, error)
	// Delete soft-deletes an order, cancelling it and restoring stock if
	// it was not already cancelled. Students may only delete their own
	// orders while still pending approval.
	Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error
	Stats(ctx context.Context, actor domain.Actor) (*domain.OrderStats, error)
}

type orderService struct {
	orders  repository.OrderRepository
	users   repository.UserRepository
	matches repository.TrainerMatchRepository
	uow     repository.UnitOfWork
}

func NewOrderService(orders repository.OrderRepository, users repository.UserRepository, matches repository.TrainerMatchRepository, uow repository.UnitOfWork) OrderService {
	return &orderService{orders: orders, users: users, matches: matches, uow: uow}
}

func (s *orderService) Create(ctx context.Context, actor domain.Actor, targetUserID uuid.UUID, items []OrderItemInput) (*domain.Order, error) {
	if actor.GymID == nil {
		return nil, validationError("orders must belong to a gym")
	}
	if targetUserID == uuid.Nil {
		targetUserID = actor.UserID
	}
	if actor.IsStudent() && targetUserID != actor.UserID {
		return nil, ErrPermissionDenied
	}
	if len(items) == 0 {
		return nil, validationError("order must contain at least one item")
	}

	// Aggregate duplicate lines so the stock check sees the real total.
	quantities := make(map[uuid.UUID]int, len(items))
	productIDs := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, validationError("item quantity must be positive")
		}
		if _, seen := quantities[item.ProductID]; !seen {
			productIDs = append(productIDs, item.ProductID)
		}
		quantities[item.ProductID] += item.Quantity
	}

	if _, err := s.users.GetByID(ctx, actor.TenantScope(), targetUserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, validationError("target user not found in this gym")
		}
		return nil, err
	}

	gymID := *actor.GymID
	var order *domain.Order
	err := s.uow.Execute(ctx, func(r *repository.Repositories) error {
		// Row locks on every product: the stock check and the decrement
		// below cannot race with a concurrent order.
		products, err := r.Products.GetActiveForUpdate(ctx, gymID, productIDs)
		if err != nil {
			return err
		}
		if len(products) != len(productIDs) {
			return validationError("one or more products not found or inactive")
		}

		byID := make(map[uuid.UUID]*domain.Product, len(products))
		for i := range products {
			byID[products[i].ID] = &products[i]
		}
		for _, id := range productIDs {
			p := byID[id]
			if quantities[id] > p.StockQuantity {
				return &InsufficientStockError{
					ProductName: p.Name,
					Requested:   quantities[id],
					Available:   p.StockQuantity,
				}
			}
		}

		day := domain.OrderDay(timeNow())
		seq, err := r.Counters.Next(ctx, gymID, day)
		if err != nil {
			return err
		}

		total := decimal.Zero
		orderItems := make([]domain.OrderItem, 0, len(productIDs))
		for _, id := range productIDs {
			p := byID[id]
			qty := quantities[id]
			total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(qty))))
			orderItems = append(orderItems, domain.OrderItem{
				ID:        uuid.New(),
				ProductID: p.ID,
				Quantity:  qty,
				UnitPrice: p.Price,
			})
		}

		order = &domain.Order{
			ID:          uuid.New(),
			GymID:       gymID,
			UserID:      targetUserID,
			OrderNumber: domain.FormatOrderNumber(day, seq),
			TotalAmount: total,
			Status:      domain.OrderStatusPendingApproval,
			Items:       orderItems,
		}
		if err := r.Orders.Create(ctx, order); err != nil {
			return err
		}

		for _, id := range productIDs {
			if err := r.Products.AdjustStock(ctx, id, -quantities[id]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) Get(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, actor.TenantScope(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if actor.IsStudent() && order.UserID != actor.UserID {
		return nil, ErrNotFound
	}
	return order, nil
}

func (s *orderService) List(ctx context.Context, actor domain.Actor, status *domain.OrderStatus, page, limit int) ([]domain.Order, int64, error) {
	filter := repository.OrderFilter{
		Gym:    actor.TenantScope(),
		Status: status,
		Page:   page,
		Limit:  limit,
	}

	switch {
	case actor.IsStudent():
		uid := actor.UserID
		filter.UserID = &uid
	case actor.IsTrainer():
		// Trainers see their matched students' orders only.
		studentIDs, err := s.matches.ActiveStudentIDs(ctx, actor.UserID)
		if err != nil {
			return nil, 0, err
		}
		if len(studentIDs) == 0 {
			return []domain.Order{}, 0, nil
		}
		filter.UserIDs = studentIDs
	}

	return s.orders.List(ctx, filter)
}

func (s *orderService) UpdateStatus(ctx context.Context, actor domain.Actor, id uuid.UUID, status domain.OrderStatus) (*domain.Order, error) {
	if actor.IsStudent() {
		return nil, ErrPermissionDenied
	}
	if !status.Valid() {
		return nil, validationError("invalid order status %q", status)
	}

	var order *domain.Order
	err := s.uow.Execute(ctx, func(r *repository.Repositories) error {
		var err error
		order, err = r.Orders.GetByID(ctx, actor.TenantScope(), id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}
		if order.Status == status {
			return nil
		}

		if status == domain.OrderStatusCancelled {
			if !order.Status.Cancellable() {
				return ErrOrderCompleted
			}
			if err := restoreStock(ctx, r, order); err != nil {
				return err
			}
		}

		order.Status = status
		return r.Orders.Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	return s.uow.Execute(ctx, func(r *repository.Repositories) error {
		order, err := r.Orders.GetByID(ctx, actor.TenantScope(), id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}
		if order.Status == domain.OrderStatusCompleted {
			return ErrOrderCompleted
		}
		// Students get a self-service cancellation window: their own
		// orders, and only while still awaiting approval.
		if actor.IsStudent() {
			if order.UserID != actor.UserID {
				return ErrNotFound
			}
			if order.Status != domain.OrderStatusPendingApproval {
				return ErrPermissionDenied
			}
		}

		if order.Status != domain.OrderStatusCancelled {
			if err := restoreStock(ctx, r, order); err != nil {
				return err
			}
		}
		order.Status = domain.OrderStatusCancelled
		if err := r.Orders.Update(ctx, order); err != nil {
			return err
		}
		return r.Orders.SoftDelete(ctx, order.ID)
	})
}

// restoreStock puts every line's quantity back on the shelf.
func restoreStock(ctx context.Context, r *repository.Repositories, order *domain.Order) error {
	for _, item := range order.Items {
		if err := r.Products.AdjustStock(ctx, item.ProductID, item.Quantity); err != nil {
			return err
		}
	}
	return nil
}

func (s *orderService) Stats(ctx context.Context, actor domain.Actor) (*domain.OrderStats, error) {
	if actor.IsStudent() {
		return nil, ErrPermissionDenied
	}
	return s.orders.Stats(ctx, actor.TenantScope())
}
