package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/tair/catalog-service/internal/product/domain"
)

const recentKeywordsKey = "catalog:search:recent"

// RedisKeywordHistory keeps recent search keywords in a capped Redis list,
// newest first and without duplicates.
type RedisKeywordHistory struct {
	client *redis.Client
	max    int64
}

func NewRedisKeywordHistory(client *redis.Client, max int) *RedisKeywordHistory {
	if max <= 0 {
		max = 10
	}
	return &RedisKeywordHistory{client: client, max: int64(max)}
}

func (h *RedisKeywordHistory) Record(ctx context.Context, keyword string) error {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil
	}

	pipe := h.client.TxPipeline()
	pipe.LRem(ctx, recentKeywordsKey, 0, keyword)
	pipe.LPush(ctx, recentKeywordsKey, keyword)
	pipe.LTrim(ctx, recentKeywordsKey, 0, h.max-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record keyword: %w", err)
	}
	return nil
}

func (h *RedisKeywordHistory) Recent(ctx context.Context) ([]string, error) {
	keywords, err := h.client.LRange(ctx, recentKeywordsKey, 0, h.max-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read recent keywords: %w", err)
	}
	return keywords, nil
}

// MemoryKeywordHistory is the process-local KeywordHistory.
type MemoryKeywordHistory struct {
	mu       sync.Mutex
	max      int
	keywords []string
}

func NewMemoryKeywordHistory(max int) *MemoryKeywordHistory {
	if max <= 0 {
		max = 10
	}
	return &MemoryKeywordHistory{max: max}
}

func (h *MemoryKeywordHistory) Record(_ context.Context, keyword string) error {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	next := []string{keyword}
	for _, k := range h.keywords {
		if k != keyword && len(next) < h.max {
			next = append(next, k)
		}
	}
	h.keywords = next
	return nil
}

func (h *MemoryKeywordHistory) Recent(_ context.Context) ([]string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string{}, h.keywords...), nil
}

var (
	_ domain.KeywordHistory = (*RedisKeywordHistory)(nil)
	_ domain.KeywordHistory = (*MemoryKeywordHistory)(nil)
)
