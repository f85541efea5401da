package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
	"github.com/johnquangdev/meeting-summarizer/internal/domain/repositories"
)

// overrideRepository is the postgres-backed override log. Every append is
// its own INSERT, so concurrent corrections never conflict.
type overrideRepository struct {
	db *gorm.DB
}

// NewOverrideRepository creates a postgres override log
func NewOverrideRepository(db *gorm.DB) repositories.OverrideLog {
	return &overrideRepository{db: db}
}

// Append inserts an override
func (r *overrideRepository) Append(ctx context.Context, override entities.UserOverride) error {
	return r.db.WithContext(ctx).Create(&override).Error
}

// List returns every override, oldest first
func (r *overrideRepository) List(ctx context.Context) ([]entities.UserOverride, error) {
	var overrides []entities.UserOverride
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Order("id ASC").
		Find(&overrides).Error
	if err != nil {
		return nil, err
	}
	return overrides, nil
}
