package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/studyweave/studyweave-backend/internal/platform/envutil"
	"github.com/studyweave/studyweave-backend/internal/platform/logger"
)

// CompletionEvent is published whenever a student completes a local object.
type CompletionEvent struct {
	StudentID uuid.UUID `json:"student_id"`
	ObjectID  uuid.UUID `json:"object_id"`
	DoneAt    time.Time `json:"done_at"`
}

type CompletionBus interface {
	Publish(ctx context.Context, ev CompletionEvent) error
	Close() error
}

type completionBus struct {
	log     *logger.Logger
	rdb     *goredis.Client
	channel string
}

func NewCompletionBus(log *logger.Logger) (CompletionBus, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(envutil.Str("REDIS_ADDR", ""))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	ch := envutil.Str("REDIS_COMPLETION_CHANNEL", "completions")

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &completionBus{
		log:     log.With("client", "RedisCompletionBus"),
		rdb:     rdb,
		channel: ch,
	}, nil
}

func (b *completionBus) Publish(ctx context.Context, ev CompletionEvent) error {
	if b == nil || b.rdb == nil {
		return fmt.Errorf("completion bus not initialized")
	}
	raw, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, b.channel, raw).Err()
}

func (b *completionBus) Close() error {
	if b == nil || b.rdb == nil {
		return nil
	}
	return b.rdb.Close()
}
