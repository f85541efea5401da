package cache

import (
	"context"
	"sync"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

// MemoryOverrideLog keeps corrections in process memory. Entries are lost on
// restart; use the redis or postgres log when learning must persist.
type MemoryOverrideLog struct {
	mu      sync.RWMutex
	entries []entities.UserOverride
}

// NewMemoryOverrideLog creates an empty in-memory override log
func NewMemoryOverrideLog() *MemoryOverrideLog {
	return &MemoryOverrideLog{}
}

// Append adds an override
func (l *MemoryOverrideLog) Append(_ context.Context, override entities.UserOverride) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, override)
	return nil
}

// List returns a copy of every override in append order
func (l *MemoryOverrideLog) List(_ context.Context) ([]entities.UserOverride, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]entities.UserOverride, len(l.entries))
	copy(out, l.entries)
	return out, nil
}
