package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// promoteDue moves delayed jobs whose retry time has passed onto the pending list.
var promoteDue = redis.NewScript(`
local due = redis.call('ZRANGEBYSCORE', KEYS[1], '-inf', ARGV[1], 'LIMIT', 0, 100)
for _, payload in ipairs(due) do
	redis.call('ZREM', KEYS[1], payload)
	redis.call('LPUSH', KEYS[2], payload)
end
return #due
`)

// RedisQueue is a reliable list-based queue. Dequeue atomically moves a job
// to a processing list; Ack removes it from there and records the result.
// Retry parks a job in a sorted set scored by its retry time until Dequeue
// promotes it. Jobs left in the processing list by a crashed worker are moved
// back by Recover.
type RedisQueue struct {
	client     *redis.Client
	pending    string
	processing string
	delayed    string
	results    string
	history    int64
}

func NewRedisQueue(client *redis.Client, name string, history int) *RedisQueue {
	if history <= 0 {
		history = 1000
	}
	return &RedisQueue{
		client:     client,
		pending:    name,
		processing: name + ":processing",
		delayed:    name + ":delayed",
		results:    name + ":results",
		history:    int64(history),
	}
}

// DialRedisQueue connects to the Redis server at url and checks it responds.
func DialRedisQueue(ctx context.Context, url, name string, history int) (*RedisQueue, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewRedisQueue(client, name, history), nil
}

func (q *RedisQueue) Enqueue(ctx context.Context, job Job) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("encode job: %w", err)
	}
	if err := q.client.LPush(ctx, q.pending, payload).Err(); err != nil {
		return fmt.Errorf("push job %s: %w", job.ID, err)
	}
	return nil
}

// Dequeue waits up to wait for a job. Delayed jobs are promoted on entry, so a
// retry can be picked up up to one wait later than its due time on an idle queue.
func (q *RedisQueue) Dequeue(ctx context.Context, wait time.Duration) (Job, error) {
	if err := q.promote(ctx); err != nil {
		if ctx.Err() != nil {
			return Job{}, ctx.Err()
		}
		return Job{}, err
	}

	payload, err := q.client.BLMove(ctx, q.pending, q.processing, "RIGHT", "LEFT", wait).Result()
	if errors.Is(err, redis.Nil) {
		return Job{}, ErrEmpty
	}
	if err != nil {
		if ctx.Err() != nil {
			return Job{}, ctx.Err()
		}
		return Job{}, fmt.Errorf("move job: %w", err)
	}

	var job Job
	if err := json.Unmarshal([]byte(payload), &job); err != nil {
		// Unreadable entries would block the processing list forever.
		q.client.LRem(ctx, q.processing, 1, payload)
		return Job{}, fmt.Errorf("decode job: %w", err)
	}
	job.payload = payload
	return job, nil
}

func (q *RedisQueue) Ack(ctx context.Context, job Job, result Result) error {
	encoded, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	_, err = q.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if job.payload != "" {
			pipe.LRem(ctx, q.processing, 1, job.payload)
		}
		pipe.LPush(ctx, q.results, encoded)
		pipe.LTrim(ctx, q.results, 0, q.history-1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("ack job %s: %w", job.ID, err)
	}
	return nil
}

func (q *RedisQueue) Retry(ctx context.Context, job Job, delay time.Duration) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("encode job: %w", err)
	}
	due := time.Now().Add(delay).UnixMilli()
	_, err = q.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if job.payload != "" {
			pipe.LRem(ctx, q.processing, 1, job.payload)
		}
		pipe.ZAdd(ctx, q.delayed, redis.Z{Score: float64(due), Member: payload})
		return nil
	})
	if err != nil {
		return fmt.Errorf("retry job %s: %w", job.ID, err)
	}
	return nil
}

func (q *RedisQueue) promote(ctx context.Context) error {
	now := time.Now().UnixMilli()
	if err := promoteDue.Run(ctx, q.client, []string{q.delayed, q.pending}, now).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("promote delayed jobs: %w", err)
	}
	return nil
}

// Results returns up to limit terminal results, newest first.
func (q *RedisQueue) Results(ctx context.Context, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = int(q.history)
	}
	raw, err := q.client.LRange(ctx, q.results, 0, int64(limit)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("read results: %w", err)
	}
	results := make([]Result, 0, len(raw))
	for _, entry := range raw {
		var r Result
		if err := json.Unmarshal([]byte(entry), &r); err != nil {
			continue
		}
		results = append(results, r)
	}
	return results, nil
}

// Recover moves every job in the processing list back to the pending list.
// Jobs waiting out a retry delay are not touched. Only call it when no other
// consumer is running, or their in-flight jobs are delivered twice.
func (q *RedisQueue) Recover(ctx context.Context) (int, error) {
	moved := 0
	for {
		err := q.client.LMove(ctx, q.processing, q.pending, "RIGHT", "RIGHT").Err()
		if errors.Is(err, redis.Nil) {
			return moved, nil
		}
		if err != nil {
			return moved, fmt.Errorf("recover jobs: %w", err)
		}
		moved++
	}
}

func (q *RedisQueue) Close() error {
	return q.client.Close()
}
