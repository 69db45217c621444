package testutil

import (
	"context"
	"sort"
	"sync"

	"github.com/redis/go-redis/v9"
)

// MockRedisClient is an in-memory stand-in for the sorted-set surface the
// leaderboard uses.
type MockRedisClient struct {
	mutex sync.Mutex
	zsets map[string]map[string]float64
}

func NewMockRedisClient() *MockRedisClient {
	return &MockRedisClient{zsets: make(map[string]map[string]float64)}
}

func (c *MockRedisClient) Exist(ctx context.Context, key string) (bool, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	_, ok := c.zsets[key]
	return ok, nil
}

func (c *MockRedisClient) Del(ctx context.Context, keys ...string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	for _, key := range keys {
		delete(c.zsets, key)
	}
	return nil
}

func (c *MockRedisClient) ZAdd(ctx context.Context, key string, z redis.Z) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.zsets[key] == nil {
		c.zsets[key] = make(map[string]float64)
	}
	c.zsets[key][z.Member.(string)] = z.Score
	return nil
}

func (c *MockRedisClient) ZIncrBy(ctx context.Context, key string, incr int64, member string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.zsets[key] == nil {
		c.zsets[key] = make(map[string]float64)
	}
	c.zsets[key][member] += float64(incr)
	return nil
}

func (c *MockRedisClient) ZRevRangeWithScores(
	ctx context.Context, key string, offset, limit int,
) ([]redis.Z, error) {
	members := c.sorted(key)
	if offset >= len(members) {
		return nil, nil
	}

	end := offset + limit
	if end > len(members) {
		end = len(members)
	}

	return members[offset:end], nil
}

func (c *MockRedisClient) ZRevRank(ctx context.Context, key string, member string) (uint64, error) {
	for i, z := range c.sorted(key) {
		if z.Member == member {
			return uint64(i), nil
		}
	}

	return 0, redis.Nil
}

func (c *MockRedisClient) sorted(key string) []redis.Z {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	members := make([]redis.Z, 0, len(c.zsets[key]))
	for member, score := range c.zsets[key] {
		members = append(members, redis.Z{Member: member, Score: score})
	}

	sort.Slice(members, func(i, j int) bool { return members[i].Score > members[j].Score })
	return members
}
