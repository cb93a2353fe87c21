package worker

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// releaseScript deletes the lock only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end
`)

// Queue is the job transport the certificate worker consumes.
type Queue interface {
	Enqueue(ctx context.Context, certificateID string) error
	// Dequeue blocks up to timeout and returns "" when nothing arrived.
	Dequeue(ctx context.Context, timeout time.Duration) (string, error)
	// Retry puts a failed job back unless it has failed maxFailures times.
	Retry(ctx context.Context, certificateID string, maxFailures int) (bool, error)
	Done(ctx context.Context, certificateID string) error
	// Lock takes the per-certificate lock. The returned func releases it.
	Lock(ctx context.Context, certificateID string, ttl time.Duration) (func(), bool, error)
}

// RedisQueue is a redis list (LPUSH/BRPOP) with a SETNX lock per certificate.
type RedisQueue struct {
	rdb  *redis.Client
	name string
}

func NewRedisQueue(rdb *redis.Client, name string) *RedisQueue {
	return &RedisQueue{rdb: rdb, name: name}
}

func (q *RedisQueue) failuresKey() string {
	return q.name + ":failures"
}

func (q *RedisQueue) lockKey(certificateID string) string {
	return q.name + ":lock:" + certificateID
}

func (q *RedisQueue) Enqueue(ctx context.Context, certificateID string) error {
	return q.rdb.LPush(ctx, q.name, certificateID).Err()
}

func (q *RedisQueue) Dequeue(ctx context.Context, timeout time.Duration) (string, error) {
	res, err := q.rdb.BRPop(ctx, timeout, q.name).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	// res is [queue, value]
	if len(res) < 2 {
		return "", nil
	}
	return res[1], nil
}

func (q *RedisQueue) Retry(ctx context.Context, certificateID string, maxFailures int) (bool, error) {
	failures, err := q.rdb.HIncrBy(ctx, q.failuresKey(), certificateID, 1).Result()
	if err != nil {
		return false, err
	}
	if int(failures) >= maxFailures {
		return false, q.rdb.HDel(ctx, q.failuresKey(), certificateID).Err()
	}
	return true, q.rdb.LPush(ctx, q.name, certificateID).Err()
}

func (q *RedisQueue) Done(ctx context.Context, certificateID string) error {
	return q.rdb.HDel(ctx, q.failuresKey(), certificateID).Err()
}

func (q *RedisQueue) Lock(ctx context.Context, certificateID string, ttl time.Duration) (func(), bool, error) {
	key := q.lockKey(certificateID)
	token := uuid.NewString()

	ok, err := q.rdb.SetNX(ctx, key, token, ttl).Result()
	if err != nil || !ok {
		return func() {}, false, err
	}

	release := func() {
		// the job context may already be cancelled at release time
		releaseScript.Run(context.Background(), q.rdb, []string{key}, token)
	}
	return release, true, nil
}
