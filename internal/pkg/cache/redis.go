package cache

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"flexgen/internal/config"
)

// RedisCache Redis 封装，只保存生成计数，不保存生成内容
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache 创建 Redis 客户端
func NewRedisCache(cfg *config.RedisConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// 测试连接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return NewRedisCacheWithClient(client), nil
}

// NewRedisCacheWithClient 使用已有客户端
func NewRedisCacheWithClient(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Close 关闭连接
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Ping 检查连接，供就绪检查使用
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// 计数 key 与字段
const (
	GenerationStatsKey = "flexgen:stats:generations"

	statsFieldTotal          = "total"
	statsFieldOutcomePrefix  = "outcome:"
	statsFieldPlatformPrefix = "platform:"
)

// GenerationStats 生成计数快照
type GenerationStats struct {
	Total      int64            `json:"total"`
	ByOutcome  map[string]int64 `json:"by_outcome"`
	ByPlatform map[string]int64 `json:"by_platform"`
}

// IncrGeneration 原子地累加一次生成的计数，platform 为空时不计平台维度
func (c *RedisCache) IncrGeneration(ctx context.Context, platform, outcome string) error {
	pipe := c.client.TxPipeline()
	pipe.HIncrBy(ctx, GenerationStatsKey, statsFieldTotal, 1)
	pipe.HIncrBy(ctx, GenerationStatsKey, statsFieldOutcomePrefix+outcome, 1)
	if platform != "" {
		pipe.HIncrBy(ctx, GenerationStatsKey, statsFieldPlatformPrefix+platform, 1)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// GetGenerationStats 读取计数
func (c *RedisCache) GetGenerationStats(ctx context.Context) (*GenerationStats, error) {
	fields, err := c.client.HGetAll(ctx, GenerationStatsKey).Result()
	if err != nil {
		return nil, err
	}
	return parseGenerationStats(fields), nil
}

func parseGenerationStats(fields map[string]string) *GenerationStats {
	stats := &GenerationStats{
		ByOutcome:  make(map[string]int64),
		ByPlatform: make(map[string]int64),
	}
	for field, raw := range fields {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		switch {
		case field == statsFieldTotal:
			stats.Total = n
		case strings.HasPrefix(field, statsFieldOutcomePrefix):
			stats.ByOutcome[strings.TrimPrefix(field, statsFieldOutcomePrefix)] = n
		case strings.HasPrefix(field, statsFieldPlatformPrefix):
			stats.ByPlatform[strings.TrimPrefix(field, statsFieldPlatformPrefix)] = n
		}
	}
	return stats
}
