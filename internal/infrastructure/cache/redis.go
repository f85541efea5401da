package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
	"github.com/johnquangdev/meeting-summarizer/pkg/config"
)

// NewRedisClient connects to Redis and verifies the connection
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Println("✅ Redis connected successfully")
	return client, nil
}

// RedisOverrideLog stores corrections in a Redis stream. XADD is atomic, so
// concurrent appends from several instances never overwrite each other.
type RedisOverrideLog struct {
	client *redis.Client
	stream string
}

// NewRedisOverrideLog creates an override log backed by the given stream
func NewRedisOverrideLog(client *redis.Client, stream string) *RedisOverrideLog {
	return &RedisOverrideLog{client: client, stream: stream}
}

// Append adds an override to the stream
func (l *RedisOverrideLog) Append(ctx context.Context, o entities.UserOverride) error {
	err := l.client.XAdd(ctx, &redis.XAddArgs{
		Stream: l.stream,
		Values: map[string]any{
			"id":                     o.ID.String(),
			"classification_id":      o.ClassificationID.String(),
			"original_type":          string(o.OriginalType),
			"corrected_type":         string(o.CorrectedType),
			"transcript_fingerprint": o.TranscriptFingerprint,
			"corrected_by":           o.CorrectedBy,
			"created_at":             o.CreatedAt.UTC().Format(time.RFC3339Nano),
		},
	}).Err()
	if err != nil {
		return fmt.Errorf("append override: %w", err)
	}
	return nil
}

// List reads the whole stream in order
func (l *RedisOverrideLog) List(ctx context.Context) ([]entities.UserOverride, error) {
	msgs, err := l.client.XRange(ctx, l.stream, "-", "+").Result()
	if err != nil {
		return nil, fmt.Errorf("list overrides: %w", err)
	}

	out := make([]entities.UserOverride, 0, len(msgs))
	for _, msg := range msgs {
		o, err := overrideFromStream(msg.Values)
		if err != nil {
			return nil, fmt.Errorf("decode override %s: %w", msg.ID, err)
		}
		out = append(out, o)
	}
	return out, nil
}

func overrideFromStream(values map[string]any) (entities.UserOverride, error) {
	str := func(key string) string {
		s, _ := values[key].(string)
		return s
	}

	id, err := uuid.Parse(str("id"))
	if err != nil {
		return entities.UserOverride{}, fmt.Errorf("id: %w", err)
	}
	classificationID, err := uuid.Parse(str("classification_id"))
	if err != nil {
		return entities.UserOverride{}, fmt.Errorf("classification_id: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, str("created_at"))
	if err != nil {
		return entities.UserOverride{}, fmt.Errorf("created_at: %w", err)
	}

	return entities.UserOverride{
		ID:                    id,
		ClassificationID:      classificationID,
		OriginalType:          entities.MeetingType(str("original_type")),
		CorrectedType:         entities.MeetingType(str("corrected_type")),
		TranscriptFingerprint: str("transcript_fingerprint"),
		CorrectedBy:           str("corrected_by"),
		CreatedAt:             createdAt,
	}, nil
}
