package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
	"github.com/johnquangdev/meeting-summarizer/internal/domain/repositories"
)

// memoryClassificationRepository keeps records in memory for the watcher and
// for running the API without a database
type memoryClassificationRepository struct {
	mu      sync.RWMutex
	records map[uuid.UUID]entities.ClassificationRecord
}

// NewMemoryClassificationRepository creates an empty in-memory repository
func NewMemoryClassificationRepository() repositories.ClassificationRepository {
	return &memoryClassificationRepository{records: make(map[uuid.UUID]entities.ClassificationRecord)}
}

func (r *memoryClassificationRepository) Create(_ context.Context, record *entities.ClassificationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[record.ID]; exists {
		return fmt.Errorf("classification %s already exists", record.ID)
	}
	r.records[record.ID] = *record
	return nil
}

func (r *memoryClassificationRepository) FindByID(_ context.Context, id uuid.UUID) (*entities.ClassificationRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[id]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (r *memoryClassificationRepository) Update(_ context.Context, record *entities.ClassificationRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.records[record.ID]
	if !ok {
		return fmt.Errorf("classification %s not found", record.ID)
	}
	updated := *record
	updated.Result = stored.Result
	updated.Transcript = stored.Transcript
	updated.Fingerprint = stored.Fingerprint
	updated.CreatedAt = stored.CreatedAt
	r.records[record.ID] = updated
	return nil
}
