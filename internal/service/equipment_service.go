package service

import (
	"context"
	"errors"
	"time"

	"grindhub/gym-platform/internal/domain"
	"grindhub/gym-platform/internal/repository"
	"grindhub/gym-platform/internal/storage"

	"github.com/google/uuid"
)

// QRScanResult is what a member sees after scanning a machine's sticker:
// the equipment itself, a caution for non-operational status, and the
// exercises that use the machine.
type QRScanResult struct {
	Equipment *domain.Equipment `json:"equipment"`
	Warning   string            `json:"warning,omitempty"`
	PhotoURL  string            `json:"photoUrl,omitempty"`
}

type EquipmentService interface {
	Create(ctx context.Context, actor domain.Actor, name, description string, status domain.EquipmentStatus) (*domain.Equipment, error)
	Get(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Equipment, error)
	List(ctx context.Context, actor domain.Actor, page, limit int) ([]domain.Equipment, int64, error)
	Update(ctx context.Context, actor domain.Actor, id uuid.UUID, name, description string, status domain.EquipmentStatus) (*domain.Equipment, error)
	Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error
	// ResolveQRCode looks up equipment by the UUID embedded in its QR
	// sticker and attaches the status warning, if any.
	ResolveQRCode(ctx context.Context, actor domain.Actor, qrCodeID uuid.UUID) (*QRScanResult, error)
	// RegenerateQRCode issues a fresh sticker identity, invalidating
	// previously printed stickers.
	RegenerateQRCode(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Equipment, error)
	PhotoUploadURL(ctx context.Context, actor domain.Actor, id uuid.UUID, contentType string) (string, error)
}

type equipmentService struct {
	equipment repository.EquipmentRepository
	files     storage.FileStorage
}

func NewEquipmentService(equipment repository.EquipmentRepository, files storage.FileStorage) EquipmentService {
	return &equipmentService{equipment: equipment, files: files}
}

func (s *equipmentService) Create(ctx context.Context, actor domain.Actor, name, description string, status domain.EquipmentStatus) (*domain.Equipment, error) {
	if actor.GymID == nil {
		return nil, validationError("equipment must belong to a gym")
	}
	if name == "" {
		return nil, validationError("equipment name is required")
	}
	if status == "" {
		status = domain.EquipmentOperational
	}
	if !status.Valid() {
		return nil, validationError("invalid equipment status %q", status)
	}

	eq := &domain.Equipment{
		ID:          uuid.New(),
		GymID:       *actor.GymID,
		Name:        name,
		Description: description,
		Status:      status,
		QRCodeID:    uuid.New(),
	}
	if err := s.equipment.Create(ctx, eq); err != nil {
		return nil, err
	}
	return eq, nil
}

func (s *equipmentService) Get(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Equipment, error) {
	eq, err := s.equipment.GetByID(ctx, actor.TenantScope(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return eq, nil
}

func (s *equipmentService) List(ctx context.Context, actor domain.Actor, page, limit int) ([]domain.Equipment, int64, error) {
	return s.equipment.List(ctx, actor.TenantScope(), page, limit)
}

func (s *equipmentService) Update(ctx context.Context, actor domain.Actor, id uuid.UUID, name, description string, status domain.EquipmentStatus) (*domain.Equipment, error) {
	eq, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if name != "" {
		eq.Name = name
	}
	if description != "" {
		eq.Description = description
	}
	if status != "" {
		if !status.Valid() {
			return nil, validationError("invalid equipment status %q", status)
		}
		eq.Status = status
	}
	if err := s.equipment.Update(ctx, eq); err != nil {
		return nil, err
	}
	return eq, nil
}

func (s *equipmentService) Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	if err := s.equipment.SoftDelete(ctx, actor.TenantScope(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *equipmentService) ResolveQRCode(ctx context.Context, actor domain.Actor, qrCodeID uuid.UUID) (*QRScanResult, error) {
	eq, err := s.equipment.GetByQRCodeID(ctx, actor.TenantScope(), qrCodeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	result := &QRScanResult{
		Equipment: eq,
		Warning:   eq.Status.Warning(),
	}
	if eq.PhotoKey != "" {
		url, err := s.files.GeneratePresignedDownloadURL(ctx, eq.PhotoKey, 0)
		if err == nil {
			result.PhotoURL = url
		}
		// A presign failure degrades the scan result, it does not fail it.
	}
	return result, nil
}

func (s *equipmentService) RegenerateQRCode(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Equipment, error) {
	eq, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	eq.QRCodeID = uuid.New()
	if err := s.equipment.Update(ctx, eq); err != nil {
		return nil, err
	}
	return eq, nil
}

func (s *equipmentService) PhotoUploadURL(ctx context.Context, actor domain.Actor, id uuid.UUID, contentType string) (string, error) {
	if contentType == "" {
		return "", validationError("content type is required")
	}
	eq, err := s.Get(ctx, actor, id)
	if err != nil {
		return "", err
	}

	key := storage.EquipmentPhotoKey(eq.GymID, eq.ID)
	url, err := s.files.GeneratePresignedUploadURL(ctx, key, contentType, 15*time.Minute)
	if err != nil {
		return "", err
	}
	if eq.PhotoKey != key {
		eq.PhotoKey = key
		if err := s.equipment.Update(ctx, eq); err != nil {
			return "", err
		}
	}
	return url, nil
}
