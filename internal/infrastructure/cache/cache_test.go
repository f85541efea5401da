package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

func TestMemoryOverrideLog_ConcurrentAppends(t *testing.T) {
	log := NewMemoryOverrideLog()
	ctx := context.Background()

	const writers, perWriter = 16, 50
	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				o := entities.NewUserOverride(uuid.New(), entities.MeetingTypeClient, entities.MeetingTypeArchitecture, "fp", "")
				if err := log.Append(ctx, o); err != nil {
					t.Errorf("Append() error = %v", err)
				}
			}
		}()
	}
	wg.Wait()

	entries, err := log.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(entries) != writers*perWriter {
		t.Fatalf("expected %d entries, got %d", writers*perWriter, len(entries))
	}
	seen := make(map[uuid.UUID]bool, len(entries))
	for _, e := range entries {
		if seen[e.ID] {
			t.Fatalf("duplicate entry %s", e.ID)
		}
		seen[e.ID] = true
	}
}

func TestMemoryOverrideLog_ListReturnsCopy(t *testing.T) {
	log := NewMemoryOverrideLog()
	ctx := context.Background()
	_ = log.Append(ctx, entities.NewUserOverride(uuid.New(), entities.MeetingTypeClient, entities.MeetingTypeStandup, "fp", ""))

	entries, _ := log.List(ctx)
	entries[0].CorrectedType = entities.MeetingTypeGeneral

	again, _ := log.List(ctx)
	if again[0].CorrectedType != entities.MeetingTypeStandup {
		t.Fatal("List must not expose internal storage")
	}
}

func TestOverrideFromStream(t *testing.T) {
	id, cid := uuid.New(), uuid.New()
	at := time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC)

	o, err := overrideFromStream(map[string]any{
		"id":                     id.String(),
		"classification_id":      cid.String(),
		"original_type":          "client",
		"corrected_type":         "architecture",
		"transcript_fingerprint": "fp",
		"corrected_by":           "ana",
		"created_at":             at.Format(time.RFC3339Nano),
	})
	if err != nil {
		t.Fatalf("overrideFromStream() error = %v", err)
	}
	if o.ID != id || o.ClassificationID != cid || o.CorrectedType != entities.MeetingTypeArchitecture || !o.CreatedAt.Equal(at) {
		t.Fatalf("unexpected override %+v", o)
	}

	if _, err := overrideFromStream(map[string]any{"id": "nope"}); err == nil {
		t.Fatal("expected error for malformed entry")
	}
}
