package service

import (
	"context"
	"errors"
	"testing"

	"grindhub/gym-platform/internal/domain"
	"grindhub/gym-platform/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newEquipmentSetup(t *testing.T) (*testStore, *stubFileStorage, EquipmentService, domain.Actor) {
	t.Helper()
	store := newTestStore()
	files := &stubFileStorage{}
	gymID := uuid.New()
	owner := seedGymMember(store, gymID, domain.RoleGymOwner)
	svc := NewEquipmentService(store.equipment, files)
	return store, files, svc, owner
}

func TestEquipmentCreateAssignsQRCode(t *testing.T) {
	_, _, svc, owner := newEquipmentSetup(t)

	eq, err := svc.Create(context.Background(), owner, "Leg Press", "", "")
	require.NoError(t, err)
	require.Equal(t, domain.EquipmentOperational, eq.Status)
	require.NotEqual(t, uuid.Nil, eq.QRCodeID)
	require.NotEqual(t, eq.ID, eq.QRCodeID)

	_, err = svc.Create(context.Background(), owner, "Bad", "", "exploded")
	require.ErrorIs(t, err, ErrValidation)
}

func TestEquipmentQRScanCarriesStatusWarning(t *testing.T) {
	store, _, svc, owner := newEquipmentSetup(t)
	student := seedGymMember(store, *owner.GymID, domain.RoleStudent)

	eq, err := svc.Create(context.Background(), owner, "Leg Press", "", "")
	require.NoError(t, err)

	result, err := svc.ResolveQRCode(context.Background(), student, eq.QRCodeID)
	require.NoError(t, err)
	require.Equal(t, eq.ID, result.Equipment.ID)
	require.Empty(t, result.Warning)

	_, err = svc.Update(context.Background(), owner, eq.ID, "", "", domain.EquipmentBroken)
	require.NoError(t, err)

	result, err = svc.ResolveQRCode(context.Background(), student, eq.QRCodeID)
	require.NoError(t, err)
	require.Equal(t, domain.EquipmentBroken.Warning(), result.Warning)

	_, err = svc.ResolveQRCode(context.Background(), student, uuid.New())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestEquipmentRegenerateQRCodeInvalidatesOldSticker(t *testing.T) {
	_, _, svc, owner := newEquipmentSetup(t)

	eq, err := svc.Create(context.Background(), owner, "Leg Press", "", "")
	require.NoError(t, err)
	oldCode := eq.QRCodeID

	fresh, err := svc.RegenerateQRCode(context.Background(), owner, eq.ID)
	require.NoError(t, err)
	require.NotEqual(t, oldCode, fresh.QRCodeID)

	_, err = svc.ResolveQRCode(context.Background(), owner, oldCode)
	require.ErrorIs(t, err, ErrNotFound)

	result, err := svc.ResolveQRCode(context.Background(), owner, fresh.QRCodeID)
	require.NoError(t, err)
	require.Equal(t, eq.ID, result.Equipment.ID)
}

func TestEquipmentPhotoUploadURL(t *testing.T) {
	store, files, svc, owner := newEquipmentSetup(t)

	eq, err := svc.Create(context.Background(), owner, "Leg Press", "", "")
	require.NoError(t, err)

	url, err := svc.PhotoUploadURL(context.Background(), owner, eq.ID, "image/jpeg")
	require.NoError(t, err)
	require.NotEmpty(t, url)
	require.Equal(t, 1, files.uploadCalls)
	require.Equal(t, "image/jpeg", files.lastContent)

	// The photo key is persisted so later scans can presign a download.
	wantKey := storage.EquipmentPhotoKey(eq.GymID, eq.ID)
	require.Equal(t, wantKey, store.equipment.equipment[eq.ID].PhotoKey)

	_, err = svc.PhotoUploadURL(context.Background(), owner, eq.ID, "")
	require.ErrorIs(t, err, ErrValidation)
}

func TestEquipmentQRScanPresignFailureDegrades(t *testing.T) {
	store, files, svc, owner := newEquipmentSetup(t)

	eq, err := svc.Create(context.Background(), owner, "Leg Press", "", "")
	require.NoError(t, err)
	_, err = svc.PhotoUploadURL(context.Background(), owner, eq.ID, "image/jpeg")
	require.NoError(t, err)

	result, err := svc.ResolveQRCode(context.Background(), owner, eq.QRCodeID)
	require.NoError(t, err)
	require.NotEmpty(t, result.PhotoURL)

	// A storage hiccup drops the photo URL but not the scan.
	files.downloadErr = errors.New("s3 unavailable")
	result, err = svc.ResolveQRCode(context.Background(), owner, eq.QRCodeID)
	require.NoError(t, err)
	require.Empty(t, result.PhotoURL)
	require.Equal(t, store.equipment.equipment[eq.ID].QRCodeID, result.Equipment.QRCodeID)
}
