package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

// ClassificationRepository defines persistence for classification audit records
type ClassificationRepository interface {
	// Create stores a new record including its immutable result
	Create(ctx context.Context, record *entities.ClassificationRecord) error

	// FindByID returns nil, nil when no record exists
	FindByID(ctx context.Context, id uuid.UUID) (*entities.ClassificationRecord, error)

	// Update persists gate and extraction state. The original result is never rewritten.
	Update(ctx context.Context, record *entities.ClassificationRecord) error
}
