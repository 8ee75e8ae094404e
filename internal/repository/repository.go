package repository

import (
	"context"

	"grindhub/gym-platform/internal/domain"

	"github.com/google/uuid"
)

// Sentinel errors for the repository layer. Services translate these into
// their own error vocabulary.
var (
	ErrNotFound = RepositoryError("not found")
	ErrConflict = RepositoryError("conflict")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string { return string(e) }

// Throughout this package a `gym *uuid.UUID` parameter is the tenant filter:
// non-nil restricts the query to that gym, nil (SuperAdmin) crosses tenants.
// An entity outside the caller's gym is reported as ErrNotFound, never as a
// permission failure, so tenant existence does not leak.

type GymRepository interface {
	Create(ctx context.Context, gym *domain.Gym) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Gym, error)
	List(ctx context.Context, page, limit int) ([]domain.Gym, int64, error)
	Update(ctx context.Context, gym *domain.Gym) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, gym *uuid.UUID, id uuid.UUID) (*domain.User, error)
	List(ctx context.Context, gym *uuid.UUID, page, limit int) ([]domain.User, int64, error)
	Update(ctx context.Context, user *domain.User) error
	SoftDelete(ctx context.Context, gym *uuid.UUID, id uuid.UUID) error
	CountAll(ctx context.Context) (int64, error)
	CountByRole(ctx context.Context, roleID uuid.UUID) (int64, error)
}

type RoleRepository interface {
	Create(ctx context.Context, role *domain.Role) error
	GetByID(ctx context.Context, gym *uuid.UUID, id uuid.UUID) (*domain.Role, error)
	GetByName(ctx context.Context, gym *uuid.UUID, name string) (*domain.Role, error)
	ListByGym(ctx context.Context, gym uuid.UUID) ([]domain.Role, error)
	Update(ctx context.Context, role *domain.Role) error
	Delete(ctx context.Context, gym *uuid.UUID, id uuid.UUID) error
}

type EquipmentRepository interface {
	Create(ctx context.Context, eq *domain.Equipment) error
	GetByID(ctx context.Context, gym *uuid.UUID, id uuid.UUID) (*domain.Equipment, error)
	GetByQRCodeID(ctx context.Context, gym *uuid.UUID, qrCodeID uuid.UUID) (*domain.Equipment, error)
	List(ctx context.Context, gym *uuid.UUID, page, limit int) ([]domain.Equipment, int64, error)
	Update(ctx context.Context, eq *domain.Equipment) error
	SoftDelete(ctx context.Context, gym *uuid.UUID, id uuid.UUID) error
}

type ExerciseRepository interface {
	Create(ctx context.Context, ex *domain.Exercise) error
	GetByID(ctx context.Context, gym *uuid.UUID, id uuid.UUID) (*domain.Exercise, error)
	List(ctx context.Context, gym *uuid.UUID, page, limit int) ([]domain.Exercise, int64, error)
	Update(ctx context.Context, ex *domain.Exercise) error
	SoftDelete(ctx context.Context, gym *uuid.UUID, id uuid.UUID) error
}

// ProgramRepository covers programs and their ordered exercise entries.
// Entry methods only ever touch live (non-deleted) rows.
type ProgramRepository interface {
	Create(ctx context.Context, p *domain.WorkoutProgram) error
	GetByID(ctx context.Context, gym *uuid.UUID, id uuid.UUID) (*domain.WorkoutProgram, error)
	List(ctx context.Context, gym *uuid.UUID, page, limit int) ([]domain.WorkoutProgram, int64, error)
	Update(ctx context.Context, p *domain.WorkoutProgram) error
	SoftDelete(ctx context.Context, gym *uuid.UUID, id uuid.UUID) error

	CreateEntry(ctx context.Context, e *domain.ProgramExercise) error
	GetEntry(ctx context.Context, programID, entryID uuid.UUID) (*domain.ProgramExercise, error)
	GetEntryByExercise(ctx context.Context, programID, exerciseID uuid.UUID) (*domain.ProgramExercise, error)
	ListEntries(ctx context.Context, programID uuid.UUID) ([]domain.ProgramExercise, error)
	UpdateEntry(ctx context.Context, e *domain.ProgramExercise) error
	SoftDeleteEntry(ctx context.Context, programID, entryID uuid.UUID) error
	// ShiftEntries adds delta to the order index of every live entry with
	// index in [from, to]; to < 0 means no upper bound.
	ShiftEntries(ctx context.Context, programID uuid.UUID, from, to, delta int) error
	// SetEntryIndexes applies a batch of index assignments.
	SetEntryIndexes(ctx context.Context, programID uuid.UUID, indexes map[uuid.UUID]int) error
}

type WorkoutLogRepository interface {
	Create(ctx context.Context, log *domain.WorkoutLog) error
	GetByID(ctx context.Context, gym *uuid.UUID, id uuid.UUID) (*domain.WorkoutLog, error)
	// GetActiveByUser returns the user's log with endedAt == nil, or
	// ErrNotFound when none is running.
	GetActiveByUser(ctx context.Context, userID uuid.UUID) (*domain.WorkoutLog, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page, limit int) ([]domain.WorkoutLog, int64, error)
	Update(ctx context.Context, log *domain.WorkoutLog) error
	CreateEntry(ctx context.Context, entry *domain.WorkoutLogEntry) error
	ListEntries(ctx context.Context, logID uuid.UUID) ([]domain.WorkoutLogEntry, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, c *domain.ProductCategory) error
	GetByID(ctx context.Context, gym *uuid.UUID, id uuid.UUID) (*domain.ProductCategory, error)
	List(ctx context.Context, gym *uuid.UUID, page, limit int) ([]domain.ProductCategory, int64, error)
	Update(ctx context.Context, c *domain.ProductCategory) error
	SoftDelete(ctx context.Context, gym *uuid.UUID, id uuid.UUID) error
	CountLiveProducts(ctx context.Context, categoryID uuid.UUID) (int64, error)
}

type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, gym *uuid.UUID, id uuid.UUID) (*domain.Product, error)
	GetByName(ctx context.Context, gym uuid.UUID, categoryID uuid.UUID, name string) (*domain.Product, error)
	List(ctx context.Context, gym *uuid.UUID, page, limit int, activeOnly bool) ([]domain.Product, int64, error)
	Update(ctx context.Context, p *domain.Product) error
	SoftDelete(ctx context.Context, gym *uuid.UUID, id uuid.UUID) error
	// GetActiveForUpdate resolves active, live products by ID, taking row
	// locks when running inside a transaction, so the stock check and the
	// later decrement cannot race with a concurrent order.
	GetActiveForUpdate(ctx context.Context, gym uuid.UUID, ids []uuid.UUID) ([]domain.Product, error)
	// AdjustStock adds delta (may be negative) to the product's stock.
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) error
}

// OrderFilter narrows order listings. UserIDs wins over UserID when set
// (trainer scoping to their students).
type OrderFilter struct {
	Gym     *uuid.UUID
	UserID  *uuid.UUID
	UserIDs []uuid.UUID
	Status  *domain.OrderStatus
	Page    int
	Limit   int
}

type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, gym *uuid.UUID, id uuid.UUID) (*domain.Order, error)
	List(ctx context.Context, f OrderFilter) ([]domain.Order, int64, error)
	Update(ctx context.Context, o *domain.Order) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context, gym *uuid.UUID) (*domain.OrderStats, error)
}

type OrderCounterRepository interface {
	// Next locks (or creates) the counter row for (gym, day), increments it
	// and returns the new sequence value. Must be called inside a
	// transaction.
	Next(ctx context.Context, gymID uuid.UUID, day string) (int, error)
}

type TrainerMatchRepository interface {
	Create(ctx context.Context, m *domain.TrainerMatch) error
	GetByID(ctx context.Context, gym *uuid.UUID, id uuid.UUID) (*domain.TrainerMatch, error)
	// GetByPair returns the match row for the pair regardless of status.
	GetByPair(ctx context.Context, gym *uuid.UUID, trainerID, studentID uuid.UUID) (*domain.TrainerMatch, error)
	ListByTrainer(ctx context.Context, gym *uuid.UUID, trainerID uuid.UUID) ([]domain.TrainerMatch, error)
	ListByStudent(ctx context.Context, gym *uuid.UUID, studentID uuid.UUID) ([]domain.TrainerMatch, error)
	Update(ctx context.Context, m *domain.TrainerMatch) error
	// ActiveStudentIDs returns the students currently matched to a trainer.
	ActiveStudentIDs(ctx context.Context, trainerID uuid.UUID) ([]uuid.UUID, error)
}

// Repositories bundles every repository over one backing store (or one
// transaction of it).
type Repositories struct {
	Gyms        GymRepository
	Users       UserRepository
	Roles       RoleRepository
	Equipment   EquipmentRepository
	Exercises   ExerciseRepository
	Programs    ProgramRepository
	WorkoutLogs WorkoutLogRepository
	Categories  CategoryRepository
	Products    ProductRepository
	Orders      OrderRepository
	Counters    OrderCounterRepository
	Matches     TrainerMatchRepository
}

// UnitOfWork runs fn against a transaction-bound Repositories value. Every
// write fn performs commits together or not at all.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(r *Repositories) error) error
}
