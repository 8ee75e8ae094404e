package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DefaultPresignedURLExpiry bounds how long a presigned URL stays usable.
const DefaultPresignedURLExpiry = 15 * time.Minute

// FileStorage is the object-storage surface the services depend on.
// Clients upload and download media (equipment photos, exercise demo
// videos) directly against presigned URLs; the API never proxies bytes.
type FileStorage interface {
	// GeneratePresignedUploadURL creates a temporary URL that allows a PUT
	// of the object directly to the storage provider. The client must send
	// the same Content-Type it requested the URL with.
	GeneratePresignedUploadURL(ctx context.Context, objectKey string, contentType string, expires time.Duration) (string, error)

	// GeneratePresignedDownloadURL creates a temporary URL that allows a GET
	// of the object directly from the storage provider.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	// DeleteObject removes an object from the storage provider.
	DeleteObject(ctx context.Context, objectKey string) error
}

// EquipmentPhotoKey builds the object key for an equipment photo.
func EquipmentPhotoKey(gymID, equipmentID uuid.UUID) string {
	return fmt.Sprintf("gyms/%s/equipment/%s/photo", gymID, equipmentID)
}

// ExerciseVideoKey builds the object key for an exercise demo video.
func ExerciseVideoKey(gymID, exerciseID uuid.UUID) string {
	return fmt.Sprintf("gyms/%s/exercises/%s/video", gymID, exerciseID)
}
