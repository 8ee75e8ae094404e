package postgres

import (
	"context"
	"errors"
	"time"

	"grindhub/gym-platform/internal/domain"
	"grindhub/gym-platform/internal/repository"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const defaultPingTimeout = 10 * time.Second

// Open connects to Postgres, verifies the connection with a ping, and
// configures the pool.
func Open(dsn string, maxIdleConns, maxOpenConns int) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if maxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(maxIdleConns)
	}
	if maxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(maxOpenConns)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultPingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the schema for every entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Gym{},
		&domain.Role{},
		&domain.User{},
		&domain.Equipment{},
		&domain.Exercise{},
		&domain.WorkoutProgram{},
		&domain.ProgramExercise{},
		&domain.WorkoutLog{},
		&domain.WorkoutLogEntry{},
		&domain.ProductCategory{},
		&domain.Product{},
		&domain.Order{},
		&domain.OrderItem{},
		&domain.OrderCounter{},
		&domain.TrainerMatch{},
	)
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// NewRepositories binds every repository to the given gorm handle (either
// the root connection or a transaction).
func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		Gyms:        &gymRepository{db: db},
		Users:       &userRepository{db: db},
		Roles:       &roleRepository{db: db},
		Equipment:   &equipmentRepository{db: db},
		Exercises:   &exerciseRepository{db: db},
		Programs:    &programRepository{db: db},
		WorkoutLogs: &workoutLogRepository{db: db},
		Categories:  &categoryRepository{db: db},
		Products:    &productRepository{db: db},
		Orders:      &orderRepository{db: db},
		Counters:    &orderCounterRepository{db: db},
		Matches:     &trainerMatchRepository{db: db},
	}
}

// unitOfWork implements repository.UnitOfWork over a gorm transaction.
type unitOfWork struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) repository.UnitOfWork {
	return &unitOfWork{db: db}
}

func (u *unitOfWork) Execute(ctx context.Context, fn func(r *repository.Repositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}

// gymScoped applies the tenant filter; nil gym crosses tenants.
func gymScoped(db *gorm.DB, gym *uuid.UUID) *gorm.DB {
	if gym != nil {
		return db.Where("gym_id = ?", *gym)
	}
	return db
}

func paginate(db *gorm.DB, page, limit int) *gorm.DB {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	return db.Offset((page - 1) * limit).Limit(limit)
}

// translate maps gorm errors to repository sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repository.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return repository.ErrConflict
	}
	return err
}
