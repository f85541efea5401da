package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
	"github.com/johnquangdev/meeting-summarizer/internal/domain/repositories"
)

// classificationRepository implements the ClassificationRepository interface
type classificationRepository struct {
	db *gorm.DB
}

// NewClassificationRepository creates a new classification repository
func NewClassificationRepository(db *gorm.DB) repositories.ClassificationRepository {
	return &classificationRepository{db: db}
}

// Create stores a new classification record
func (r *classificationRepository) Create(ctx context.Context, record *entities.ClassificationRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// FindByID retrieves a classification record by its ID
func (r *classificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.ClassificationRecord, error) {
	var record entities.ClassificationRecord
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&record).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// Update saves gate and extraction state; the original result and transcript are never rewritten
func (r *classificationRepository) Update(ctx context.Context, record *entities.ClassificationRecord) error {
	return r.db.WithContext(ctx).
		Model(record).
		Select("*").
		Omit("result", "transcript", "fingerprint", "created_at").
		Updates(record).Error
}
