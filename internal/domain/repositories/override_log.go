package repositories

import (
	"context"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

// OverrideLog is the append-only record of user corrections. Implementations
// must accept concurrent appends without losing entries.
type OverrideLog interface {
	Append(ctx context.Context, override entities.UserOverride) error
	List(ctx context.Context) ([]entities.UserOverride, error)
}
