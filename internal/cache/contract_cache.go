// Package cache provides a read-through redis cache for assembled contract
// records, invalidated on every save.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/clausedesk/clausedesk-backend/internal/logger"
	"github.com/clausedesk/clausedesk-backend/internal/types"
	"github.com/clausedesk/clausedesk-backend/internal/utils"
)

// ContractRecord is the aggregate the storage collaborator hands the core:
// the contract with its sections, clause items, and categories.
type ContractRecord struct {
	Contract   types.Contract           `json:"contract"`
	Sections   []*types.ContractSection `json:"sections"`
	Items      []*types.SectionItem     `json:"items"`
	Clauses    []*types.Clause          `json:"clauses"`
	Categories []*types.Category        `json:"categories"`
	Members    []*types.CategoryMember  `json:"members"`
}

type ContractCache interface {
	Get(ctx context.Context, contractID uuid.UUID) (*ContractRecord, bool)
	Set(ctx context.Context, record *ContractRecord)
	Invalidate(ctx context.Context, contractID uuid.UUID)
	Close() error
}

type contractCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewContractCache(log *logger.Logger) (ContractCache, error) {
	cacheLog := log.With("service", "ContractCache")

	addr := strings.TrimSpace(utils.GetEnv("REDIS_ADDR", "", log))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	ttlSeconds := utils.GetEnvAsInt("CONTRACT_CACHE_TTL_SECONDS", 300, log)

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

	return &contractCache{
		log: cacheLog,
		rdb: rdb,
		ttl: time.Duration(ttlSeconds) * time.Second,
	}, nil
}

func cacheKey(contractID uuid.UUID) string {
	return "contract:record:" + contractID.String()
}

func (c *contractCache) Get(ctx context.Context, contractID uuid.UUID) (*ContractRecord, bool) {
	raw, err := c.rdb.Get(ctx, cacheKey(contractID)).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.log.Warn("Cache read failed", "contract_id", contractID, "error", err)
		}
		return nil, false
	}
	var record ContractRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		c.log.Warn("Cache entry corrupt, dropping", "contract_id", contractID, "error", err)
		_ = c.rdb.Del(ctx, cacheKey(contractID)).Err()
		return nil, false
	}
	return &record, true
}

func (c *contractCache) Set(ctx context.Context, record *ContractRecord) {
	raw, err := json.Marshal(record)
	if err != nil {
		c.log.Warn("Cache marshal failed", "contract_id", record.Contract.ID, "error", err)
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(record.Contract.ID), raw, c.ttl).Err(); err != nil {
		c.log.Warn("Cache write failed", "contract_id", record.Contract.ID, "error", err)
	}
}

func (c *contractCache) Invalidate(ctx context.Context, contractID uuid.UUID) {
	if err := c.rdb.Del(ctx, cacheKey(contractID)).Err(); err != nil {
		c.log.Warn("Cache invalidation failed", "contract_id", contractID, "error", err)
	}
}

func (c *contractCache) Close() error {
	return c.rdb.Close()
}

// NoopCache is used when redis is not configured; every read misses.
type NoopCache struct{}

func (NoopCache) Get(ctx context.Context, contractID uuid.UUID) (*ContractRecord, bool) {
	return nil, false
}
func (NoopCache) Set(ctx context.Context, record *ContractRecord)      {}
func (NoopCache) Invalidate(ctx context.Context, contractID uuid.UUID) {}
func (NoopCache) Close() error                                         { return nil }
