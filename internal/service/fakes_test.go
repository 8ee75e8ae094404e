package service

import (
	"context"
	"sort"
	"time"

	"grindhub/gym-platform/internal/domain"
	"grindhub/gym-platform/internal/repository"

	"github.com/google/uuid"
)

// In-memory repository fakes. Each keeps rows in a map and mimics the
// postgres implementations' tenant filtering and sentinel errors.

func matchesGym(gym *uuid.UUID, rowGym uuid.UUID) bool {
	return gym == nil || *gym == rowGym
}

// --- users ---

type fakeUserRepo struct {
	users map[uuid.UUID]*domain.User
	roles *fakeRoleRepo
}

func newFakeUserRepo(roles *fakeRoleRepo) *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*domain.User), roles: roles}
}

func (f *fakeUserRepo) add(u *domain.User) { f.users[u.ID] = u }

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return repository.ErrConflict
		}
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

// withRole emulates the Role preload done by the real repository.
func (f *fakeUserRepo) withRole(u *domain.User) *domain.User {
	copied := *u
	if copied.Role == nil && f.roles != nil {
		copied.Role = f.roles.roles[copied.RoleID]
	}
	return &copied
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return f.withRole(u), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetByID(_ context.Context, gym *uuid.UUID, id uuid.UUID) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if gym != nil && (u.GymID == nil || *u.GymID != *gym) {
		return nil, repository.ErrNotFound
	}
	return f.withRole(u), nil
}

func (f *fakeUserRepo) List(_ context.Context, gym *uuid.UUID, page, limit int) ([]domain.User, int64, error) {
	var out []domain.User
	for _, u := range f.users {
		if gym == nil || (u.GymID != nil && *u.GymID == *gym) {
			out = append(out, *u)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserRepo) SoftDelete(_ context.Context, gym *uuid.UUID, id uuid.UUID) error {
	u, ok := f.users[id]
	if !ok || (gym != nil && (u.GymID == nil || *u.GymID != *gym)) {
		return repository.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) CountAll(context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

func (f *fakeUserRepo) CountByRole(_ context.Context, roleID uuid.UUID) (int64, error) {
	var n int64
	for _, u := range f.users {
		if u.RoleID == roleID {
			n++
		}
	}
	return n, nil
}

// --- roles ---

type fakeRoleRepo struct {
	roles map[uuid.UUID]*domain.Role
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{roles: make(map[uuid.UUID]*domain.Role)}
}

func (f *fakeRoleRepo) add(r *domain.Role) { f.roles[r.ID] = r }

func (f *fakeRoleRepo) Create(_ context.Context, role *domain.Role) error {
	for _, r := range f.roles {
		sameGym := (r.GymID == nil && role.GymID == nil) ||
			(r.GymID != nil && role.GymID != nil && *r.GymID == *role.GymID)
		if sameGym && r.Name == role.Name {
			return repository.ErrConflict
		}
	}
	f.roles[role.ID] = role
	return nil
}

func (f *fakeRoleRepo) GetByID(_ context.Context, gym *uuid.UUID, id uuid.UUID) (*domain.Role, error) {
	r, ok := f.roles[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if gym != nil && r.GymID != nil && *r.GymID != *gym {
		return nil, repository.ErrNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeRoleRepo) GetByName(_ context.Context, gym *uuid.UUID, name string) (*domain.Role, error) {
	for _, r := range f.roles {
		if r.Name != name {
			continue
		}
		if gym == nil && r.GymID == nil {
			copied := *r
			return &copied, nil
		}
		if gym != nil && r.GymID != nil && *r.GymID == *gym {
			copied := *r
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeRoleRepo) ListByGym(_ context.Context, gym uuid.UUID) ([]domain.Role, error) {
	var out []domain.Role
	for _, r := range f.roles {
		if r.GymID != nil && *r.GymID == gym {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRoleRepo) Update(_ context.Context, role *domain.Role) error {
	if _, ok := f.roles[role.ID]; !ok {
		return repository.ErrNotFound
	}
	f.roles[role.ID] = role
	return nil
}

func (f *fakeRoleRepo) Delete(_ context.Context, gym *uuid.UUID, id uuid.UUID) error {
	r, ok := f.roles[id]
	if !ok || (gym != nil && r.GymID != nil && *r.GymID != *gym) {
		return repository.ErrNotFound
	}
	delete(f.roles, id)
	return nil
}

// --- categories ---

type fakeCategoryRepo struct {
	categories map[uuid.UUID]*domain.ProductCategory
	products   *fakeProductRepo
}

func newFakeCategoryRepo(products *fakeProductRepo) *fakeCategoryRepo {
	return &fakeCategoryRepo{
		categories: make(map[uuid.UUID]*domain.ProductCategory),
		products:   products,
	}
}

func (f *fakeCategoryRepo) Create(_ context.Context, c *domain.ProductCategory) error {
	f.categories[c.ID] = c
	return nil
}

func (f *fakeCategoryRepo) GetByID(_ context.Context, gym *uuid.UUID, id uuid.UUID) (*domain.ProductCategory, error) {
	c, ok := f.categories[id]
	if !ok || !matchesGym(gym, c.GymID) {
		return nil, repository.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (f *fakeCategoryRepo) List(_ context.Context, gym *uuid.UUID, page, limit int) ([]domain.ProductCategory, int64, error) {
	var out []domain.ProductCategory
	for _, c := range f.categories {
		if matchesGym(gym, c.GymID) {
			out = append(out, *c)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeCategoryRepo) Update(_ context.Context, c *domain.ProductCategory) error {
	if _, ok := f.categories[c.ID]; !ok {
		return repository.ErrNotFound
	}
	f.categories[c.ID] = c
	return nil
}

func (f *fakeCategoryRepo) SoftDelete(_ context.Context, gym *uuid.UUID, id uuid.UUID) error {
	c, ok := f.categories[id]
	if !ok || !matchesGym(gym, c.GymID) {
		return repository.ErrNotFound
	}
	delete(f.categories, id)
	return nil
}

func (f *fakeCategoryRepo) CountLiveProducts(_ context.Context, categoryID uuid.UUID) (int64, error) {
	var n int64
	for _, p := range f.products.products {
		if p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

// --- products ---

type fakeProductRepo struct {
	products map[uuid.UUID]*domain.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*domain.Product)}
}

func (f *fakeProductRepo) add(p *domain.Product) { f.products[p.ID] = p }

func (f *fakeProductRepo) Create(_ context.Context, p *domain.Product) error {
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, gym *uuid.UUID, id uuid.UUID) (*domain.Product, error) {
	p, ok := f.products[id]
	if !ok || !matchesGym(gym, p.GymID) {
		return nil, repository.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakeProductRepo) GetByName(_ context.Context, gym uuid.UUID, categoryID uuid.UUID, name string) (*domain.Product, error) {
	for _, p := range f.products {
		if p.GymID == gym && p.CategoryID == categoryID && p.Name == name {
			copied := *p
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeProductRepo) List(_ context.Context, gym *uuid.UUID, page, limit int, activeOnly bool) ([]domain.Product, int64, error) {
	var out []domain.Product
	for _, p := range f.products {
		if matchesGym(gym, p.GymID) && (!activeOnly || p.IsActive) {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeProductRepo) Update(_ context.Context, p *domain.Product) error {
	if _, ok := f.products[p.ID]; !ok {
		return repository.ErrNotFound
	}
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) SoftDelete(_ context.Context, gym *uuid.UUID, id uuid.UUID) error {
	p, ok := f.products[id]
	if !ok || !matchesGym(gym, p.GymID) {
		return repository.ErrNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) GetActiveForUpdate(_ context.Context, gym uuid.UUID, ids []uuid.UUID) ([]domain.Product, error) {
	var out []domain.Product
	for _, id := range ids {
		p, ok := f.products[id]
		if ok && p.GymID == gym && p.IsActive {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) AdjustStock(_ context.Context, id uuid.UUID, delta int) error {
	p, ok := f.products[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.StockQuantity += delta
	return nil
}

// --- orders ---

type fakeOrderRepo struct {
	orders  map[uuid.UUID]*domain.Order
	deleted map[uuid.UUID]bool
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders:  make(map[uuid.UUID]*domain.Order),
		deleted: make(map[uuid.UUID]bool),
	}
}

func (f *fakeOrderRepo) Create(_ context.Context, o *domain.Order) error {
	for _, existing := range f.orders {
		if existing.OrderNumber == o.OrderNumber {
			return repository.ErrConflict
		}
	}
	f.orders[o.ID] = o
	return nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, gym *uuid.UUID, id uuid.UUID) (*domain.Order, error) {
	o, ok := f.orders[id]
	if !ok || f.deleted[id] || !matchesGym(gym, o.GymID) {
		return nil, repository.ErrNotFound
	}
	copied := *o
	return &copied, nil
}

func (f *fakeOrderRepo) List(_ context.Context, filter repository.OrderFilter) ([]domain.Order, int64, error) {
	var out []domain.Order
	for _, o := range f.orders {
		if f.deleted[o.ID] || !matchesGym(filter.Gym, o.GymID) {
			continue
		}
		if filter.Status != nil && o.Status != *filter.Status {
			continue
		}
		if len(filter.UserIDs) > 0 {
			found := false
			for _, id := range filter.UserIDs {
				if o.UserID == id {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		} else if filter.UserID != nil && o.UserID != *filter.UserID {
			continue
		}
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (f *fakeOrderRepo) Update(_ context.Context, o *domain.Order) error {
	if _, ok := f.orders[o.ID]; !ok {
		return repository.ErrNotFound
	}
	f.orders[o.ID] = o
	return nil
}

func (f *fakeOrderRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.orders[id]; !ok {
		return repository.ErrNotFound
	}
	f.deleted[id] = true
	return nil
}

func (f *fakeOrderRepo) Stats(_ context.Context, gym *uuid.UUID) (*domain.OrderStats, error) {
	stats := &domain.OrderStats{CountsByStatus: make(map[domain.OrderStatus]int64)}
	for _, o := range f.orders {
		if f.deleted[o.ID] || !matchesGym(gym, o.GymID) {
			continue
		}
		stats.TotalOrders++
		stats.CountsByStatus[o.Status]++
		if o.Status == domain.OrderStatusCompleted {
			stats.Revenue = stats.Revenue.Add(o.TotalAmount)
		}
	}
	return stats, nil
}

// --- order counters ---

type fakeCounterRepo struct {
	counts map[string]int
}

func newFakeCounterRepo() *fakeCounterRepo {
	return &fakeCounterRepo{counts: make(map[string]int)}
}

func (f *fakeCounterRepo) Next(_ context.Context, gymID uuid.UUID, day string) (int, error) {
	key := gymID.String() + "/" + day
	f.counts[key]++
	return f.counts[key], nil
}

// --- programs ---

type fakeProgramRepo struct {
	programs map[uuid.UUID]*domain.WorkoutProgram
	entries  map[uuid.UUID]*domain.ProgramExercise
}

func newFakeProgramRepo() *fakeProgramRepo {
	return &fakeProgramRepo{
		programs: make(map[uuid.UUID]*domain.WorkoutProgram),
		entries:  make(map[uuid.UUID]*domain.ProgramExercise),
	}
}

func (f *fakeProgramRepo) add(p *domain.WorkoutProgram) { f.programs[p.ID] = p }

func (f *fakeProgramRepo) Create(_ context.Context, p *domain.WorkoutProgram) error {
	f.programs[p.ID] = p
	return nil
}

func (f *fakeProgramRepo) GetByID(_ context.Context, gym *uuid.UUID, id uuid.UUID) (*domain.WorkoutProgram, error) {
	p, ok := f.programs[id]
	if !ok || !matchesGym(gym, p.GymID) {
		return nil, repository.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakeProgramRepo) List(_ context.Context, gym *uuid.UUID, page, limit int) ([]domain.WorkoutProgram, int64, error) {
	var out []domain.WorkoutProgram
	for _, p := range f.programs {
		if matchesGym(gym, p.GymID) {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeProgramRepo) Update(_ context.Context, p *domain.WorkoutProgram) error {
	if _, ok := f.programs[p.ID]; !ok {
		return repository.ErrNotFound
	}
	f.programs[p.ID] = p
	return nil
}

func (f *fakeProgramRepo) SoftDelete(_ context.Context, gym *uuid.UUID, id uuid.UUID) error {
	p, ok := f.programs[id]
	if !ok || !matchesGym(gym, p.GymID) {
		return repository.ErrNotFound
	}
	delete(f.programs, id)
	return nil
}

func (f *fakeProgramRepo) CreateEntry(_ context.Context, e *domain.ProgramExercise) error {
	f.entries[e.ID] = e
	return nil
}

func (f *fakeProgramRepo) GetEntry(_ context.Context, programID, entryID uuid.UUID) (*domain.ProgramExercise, error) {
	e, ok := f.entries[entryID]
	if !ok || e.ProgramID != programID {
		return nil, repository.ErrNotFound
	}
	copied := *e
	return &copied, nil
}

func (f *fakeProgramRepo) GetEntryByExercise(_ context.Context, programID, exerciseID uuid.UUID) (*domain.ProgramExercise, error) {
	for _, e := range f.entries {
		if e.ProgramID == programID && e.ExerciseID == exerciseID {
			copied := *e
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeProgramRepo) ListEntries(_ context.Context, programID uuid.UUID) ([]domain.ProgramExercise, error) {
	var out []domain.ProgramExercise
	for _, e := range f.entries {
		if e.ProgramID == programID {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out, nil
}

func (f *fakeProgramRepo) UpdateEntry(_ context.Context, e *domain.ProgramExercise) error {
	if _, ok := f.entries[e.ID]; !ok {
		return repository.ErrNotFound
	}
	f.entries[e.ID] = e
	return nil
}

func (f *fakeProgramRepo) SoftDeleteEntry(_ context.Context, programID, entryID uuid.UUID) error {
	e, ok := f.entries[entryID]
	if !ok || e.ProgramID != programID {
		return repository.ErrNotFound
	}
	delete(f.entries, entryID)
	return nil
}

func (f *fakeProgramRepo) ShiftEntries(_ context.Context, programID uuid.UUID, from, to, delta int) error {
	for _, e := range f.entries {
		if e.ProgramID != programID {
			continue
		}
		if e.OrderIndex >= from && (to < 0 || e.OrderIndex <= to) {
			e.OrderIndex += delta
		}
	}
	return nil
}

func (f *fakeProgramRepo) SetEntryIndexes(_ context.Context, programID uuid.UUID, indexes map[uuid.UUID]int) error {
	for id, idx := range indexes {
		e, ok := f.entries[id]
		if !ok || e.ProgramID != programID {
			return repository.ErrNotFound
		}
		e.OrderIndex = idx
	}
	return nil
}

// --- workout logs ---

type fakeWorkoutLogRepo struct {
	logs       map[uuid.UUID]*domain.WorkoutLog
	logEntries map[uuid.UUID][]domain.WorkoutLogEntry
}

func newFakeWorkoutLogRepo() *fakeWorkoutLogRepo {
	return &fakeWorkoutLogRepo{
		logs:       make(map[uuid.UUID]*domain.WorkoutLog),
		logEntries: make(map[uuid.UUID][]domain.WorkoutLogEntry),
	}
}

func (f *fakeWorkoutLogRepo) Create(_ context.Context, log *domain.WorkoutLog) error {
	f.logs[log.ID] = log
	return nil
}

func (f *fakeWorkoutLogRepo) GetByID(_ context.Context, gym *uuid.UUID, id uuid.UUID) (*domain.WorkoutLog, error) {
	l, ok := f.logs[id]
	if !ok || !matchesGym(gym, l.GymID) {
		return nil, repository.ErrNotFound
	}
	copied := *l
	return &copied, nil
}

func (f *fakeWorkoutLogRepo) GetActiveByUser(_ context.Context, userID uuid.UUID) (*domain.WorkoutLog, error) {
	for _, l := range f.logs {
		if l.UserID == userID && l.EndedAt == nil {
			copied := *l
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeWorkoutLogRepo) ListByUser(_ context.Context, userID uuid.UUID, page, limit int) ([]domain.WorkoutLog, int64, error) {
	var out []domain.WorkoutLog
	for _, l := range f.logs {
		if l.UserID == userID {
			out = append(out, *l)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeWorkoutLogRepo) Update(_ context.Context, log *domain.WorkoutLog) error {
	if _, ok := f.logs[log.ID]; !ok {
		return repository.ErrNotFound
	}
	f.logs[log.ID] = log
	return nil
}

func (f *fakeWorkoutLogRepo) CreateEntry(_ context.Context, entry *domain.WorkoutLogEntry) error {
	f.logEntries[entry.WorkoutLogID] = append(f.logEntries[entry.WorkoutLogID], *entry)
	return nil
}

func (f *fakeWorkoutLogRepo) ListEntries(_ context.Context, logID uuid.UUID) ([]domain.WorkoutLogEntry, error) {
	return f.logEntries[logID], nil
}

// --- equipment ---

type fakeEquipmentRepo struct {
	equipment map[uuid.UUID]*domain.Equipment
}

func newFakeEquipmentRepo() *fakeEquipmentRepo {
	return &fakeEquipmentRepo{equipment: make(map[uuid.UUID]*domain.Equipment)}
}

func (f *fakeEquipmentRepo) Create(_ context.Context, eq *domain.Equipment) error {
	f.equipment[eq.ID] = eq
	return nil
}

func (f *fakeEquipmentRepo) GetByID(_ context.Context, gym *uuid.UUID, id uuid.UUID) (*domain.Equipment, error) {
	eq, ok := f.equipment[id]
	if !ok || !matchesGym(gym, eq.GymID) {
		return nil, repository.ErrNotFound
	}
	copied := *eq
	return &copied, nil
}

func (f *fakeEquipmentRepo) GetByQRCodeID(_ context.Context, gym *uuid.UUID, qrCodeID uuid.UUID) (*domain.Equipment, error) {
	for _, eq := range f.equipment {
		if eq.QRCodeID == qrCodeID && matchesGym(gym, eq.GymID) {
			copied := *eq
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeEquipmentRepo) List(_ context.Context, gym *uuid.UUID, page, limit int) ([]domain.Equipment, int64, error) {
	var out []domain.Equipment
	for _, eq := range f.equipment {
		if matchesGym(gym, eq.GymID) {
			out = append(out, *eq)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeEquipmentRepo) Update(_ context.Context, eq *domain.Equipment) error {
	if _, ok := f.equipment[eq.ID]; !ok {
		return repository.ErrNotFound
	}
	copied := *eq
	f.equipment[eq.ID] = &copied
	return nil
}

func (f *fakeEquipmentRepo) SoftDelete(_ context.Context, gym *uuid.UUID, id uuid.UUID) error {
	eq, ok := f.equipment[id]
	if !ok || !matchesGym(gym, eq.GymID) {
		return repository.ErrNotFound
	}
	delete(f.equipment, id)
	return nil
}

// --- file storage ---

// stubFileStorage records presign calls and returns deterministic URLs.
type stubFileStorage struct {
	uploadCalls   int
	downloadCalls int
	downloadErr   error
	lastKey       string
	lastContent   string
}

func (s *stubFileStorage) GeneratePresignedUploadURL(_ context.Context, objectKey, contentType string, _ time.Duration) (string, error) {
	s.uploadCalls++
	s.lastKey = objectKey
	s.lastContent = contentType
	return "https://files.test/upload/" + objectKey, nil
}

func (s *stubFileStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	s.downloadCalls++
	s.lastKey = objectKey
	if s.downloadErr != nil {
		return "", s.downloadErr
	}
	return "https://files.test/download/" + objectKey, nil
}

func (s *stubFileStorage) DeleteObject(_ context.Context, objectKey string) error {
	s.lastKey = objectKey
	return nil
}

// --- exercises ---

type fakeExerciseRepo struct {
	exercises map[uuid.UUID]*domain.Exercise
}

func newFakeExerciseRepo() *fakeExerciseRepo {
	return &fakeExerciseRepo{exercises: make(map[uuid.UUID]*domain.Exercise)}
}

func (f *fakeExerciseRepo) add(e *domain.Exercise) { f.exercises[e.ID] = e }

func (f *fakeExerciseRepo) Create(_ context.Context, e *domain.Exercise) error {
	f.exercises[e.ID] = e
	return nil
}

func (f *fakeExerciseRepo) GetByID(_ context.Context, gym *uuid.UUID, id uuid.UUID) (*domain.Exercise, error) {
	e, ok := f.exercises[id]
	if !ok || !matchesGym(gym, e.GymID) {
		return nil, repository.ErrNotFound
	}
	copied := *e
	return &copied, nil
}

func (f *fakeExerciseRepo) List(_ context.Context, gym *uuid.UUID, page, limit int) ([]domain.Exercise, int64, error) {
	var out []domain.Exercise
	for _, e := range f.exercises {
		if matchesGym(gym, e.GymID) {
			out = append(out, *e)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeExerciseRepo) Update(_ context.Context, e *domain.Exercise) error {
	if _, ok := f.exercises[e.ID]; !ok {
		return repository.ErrNotFound
	}
	f.exercises[e.ID] = e
	return nil
}

func (f *fakeExerciseRepo) SoftDelete(_ context.Context, gym *uuid.UUID, id uuid.UUID) error {
	e, ok := f.exercises[id]
	if !ok || !matchesGym(gym, e.GymID) {
		return repository.ErrNotFound
	}
	delete(f.exercises, id)
	return nil
}

// --- matches ---

type fakeMatchRepo struct {
	matches map[uuid.UUID]*domain.TrainerMatch
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{matches: make(map[uuid.UUID]*domain.TrainerMatch)}
}

func (f *fakeMatchRepo) add(m *domain.TrainerMatch) { f.matches[m.ID] = m }

func (f *fakeMatchRepo) Create(_ context.Context, m *domain.TrainerMatch) error {
	for _, existing := range f.matches {
		if existing.TrainerID == m.TrainerID && existing.StudentID == m.StudentID {
			return repository.ErrConflict
		}
	}
	f.matches[m.ID] = m
	return nil
}

func (f *fakeMatchRepo) GetByID(_ context.Context, gym *uuid.UUID, id uuid.UUID) (*domain.TrainerMatch, error) {
	m, ok := f.matches[id]
	if !ok || !matchesGym(gym, m.GymID) {
		return nil, repository.ErrNotFound
	}
	copied := *m
	return &copied, nil
}

func (f *fakeMatchRepo) GetByPair(_ context.Context, gym *uuid.UUID, trainerID, studentID uuid.UUID) (*domain.TrainerMatch, error) {
	for _, m := range f.matches {
		if m.TrainerID == trainerID && m.StudentID == studentID && matchesGym(gym, m.GymID) {
			copied := *m
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeMatchRepo) ListByTrainer(_ context.Context, gym *uuid.UUID, trainerID uuid.UUID) ([]domain.TrainerMatch, error) {
	var out []domain.TrainerMatch
	for _, m := range f.matches {
		if m.TrainerID == trainerID && matchesGym(gym, m.GymID) {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeMatchRepo) ListByStudent(_ context.Context, gym *uuid.UUID, studentID uuid.UUID) ([]domain.TrainerMatch, error) {
	var out []domain.TrainerMatch
	for _, m := range f.matches {
		if m.StudentID == studentID && matchesGym(gym, m.GymID) {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeMatchRepo) Update(_ context.Context, m *domain.TrainerMatch) error {
	if _, ok := f.matches[m.ID]; !ok {
		return repository.ErrNotFound
	}
	f.matches[m.ID] = m
	return nil
}

func (f *fakeMatchRepo) ActiveStudentIDs(_ context.Context, trainerID uuid.UUID) ([]uuid.UUID, error) {
	var out []uuid.UUID
	for _, m := range f.matches {
		if m.TrainerID == trainerID && m.Status == domain.MatchActive {
			out = append(out, m.StudentID)
		}
	}
	return out, nil
}

// --- gyms ---

type fakeGymRepo struct {
	gyms map[uuid.UUID]*domain.Gym
}

func newFakeGymRepo() *fakeGymRepo {
	return &fakeGymRepo{gyms: make(map[uuid.UUID]*domain.Gym)}
}

func (f *fakeGymRepo) Create(_ context.Context, g *domain.Gym) error {
	f.gyms[g.ID] = g
	return nil
}

func (f *fakeGymRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Gym, error) {
	g, ok := f.gyms[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *g
	return &copied, nil
}

func (f *fakeGymRepo) List(_ context.Context, page, limit int) ([]domain.Gym, int64, error) {
	var out []domain.Gym
	for _, g := range f.gyms {
		out = append(out, *g)
	}
	return out, int64(len(out)), nil
}

func (f *fakeGymRepo) Update(_ context.Context, g *domain.Gym) error {
	if _, ok := f.gyms[g.ID]; !ok {
		return repository.ErrNotFound
	}
	f.gyms[g.ID] = g
	return nil
}

func (f *fakeGymRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.gyms[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.gyms, id)
	return nil
}

// --- unit of work ---

// fakeUOW hands the shared fakes to the callback. There is no rollback:
// tests that exercise failure paths assert that the service checks
// everything before it mutates anything.
type fakeUOW struct {
	repos *repository.Repositories
}

func (f *fakeUOW) Execute(_ context.Context, fn func(r *repository.Repositories) error) error {
	return fn(f.repos)
}

// testStore bundles the fakes one service test usually needs.
type testStore struct {
	gyms      *fakeGymRepo
	users     *fakeUserRepo
	roles     *fakeRoleRepo
	equipment  *fakeEquipmentRepo
	exercises  *fakeExerciseRepo
	programs   *fakeProgramRepo
	logs       *fakeWorkoutLogRepo
	categories *fakeCategoryRepo
	products   *fakeProductRepo
	orders     *fakeOrderRepo
	counters   *fakeCounterRepo
	matches    *fakeMatchRepo
}

func newTestStore() *testStore {
	roles := newFakeRoleRepo()
	products := newFakeProductRepo()
	return &testStore{
		gyms:       newFakeGymRepo(),
		users:      newFakeUserRepo(roles),
		roles:      roles,
		equipment:  newFakeEquipmentRepo(),
		exercises:  newFakeExerciseRepo(),
		programs:   newFakeProgramRepo(),
		logs:       newFakeWorkoutLogRepo(),
		categories: newFakeCategoryRepo(products),
		products:   products,
		orders:     newFakeOrderRepo(),
		counters:   newFakeCounterRepo(),
		matches:    newFakeMatchRepo(),
	}
}

func (s *testStore) uow() repository.UnitOfWork {
	return &fakeUOW{repos: &repository.Repositories{
		Gyms:        s.gyms,
		Users:       s.users,
		Roles:       s.roles,
		Equipment:   s.equipment,
		Exercises:   s.exercises,
		Programs:    s.programs,
		WorkoutLogs: s.logs,
		Categories:  s.categories,
		Products:    s.products,
		Orders:      s.orders,
		Counters:    s.counters,
		Matches:     s.matches,
	}}
}
