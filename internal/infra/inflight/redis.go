package inflight

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const releaseTimeout = 2 * time.Second

// Удаляем ключ только если он все еще принадлежит нам
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisGuard блокировки в Redis (SET NX с TTL), общие для всех инстансов
type RedisGuard struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	log    Logger
}

func NewRedisGuard(client *redis.Client, prefix string, ttl time.Duration, log Logger) *RedisGuard {
	return &RedisGuard{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		log:    log,
	}
}

// Acquire захватывает ключ. TTL страхует от зависших блокировок при падении процесса.
func (g *RedisGuard) Acquire(ctx context.Context, key string) (ReleaseFunc, error) {
	redisKey := g.prefix + key
	token := uuid.NewString()

	ok, err := g.client.SetNX(ctx, redisKey, token, g.ttl).Result()
	if err != nil {
		g.log.Error("Redis guard acquire failed: key=%s, error=%v", redisKey, err)
		return nil, fmt.Errorf("%w: acquire key=%s: %v", ErrGuardUnavailable, redisKey, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: key=%s", ErrInFlight, key)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			releaseCtx, cancel := context.WithTimeout(context.Background(), releaseTimeout)
			defer cancel()

			if err := releaseScript.Run(releaseCtx, g.client, []string{redisKey}, token).Err(); err != nil {
				g.log.Warn("Redis guard release failed, key expires in %s: key=%s, error=%v", g.ttl, redisKey, err)
			}
		})
	}, nil
}
