package otp

import (
	"context"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Key pattern: otp:{email} - hash with fields code, expires_at_ms.
// The Redis TTL is a backstop set past the logical expiry; expiry itself
// is checked lazily by the caller so an expired entry can still be
// observed and reported as expired on its first read.

const keyPrefix = "otp:"

// ttlMargin keeps an expired entry readable for a while after its
// logical expiry before Redis reclaims it.
const ttlMargin = 10 * time.Minute

// RedisStore is a Redis-backed OTP store, shareable across instances.
type RedisStore struct {
	client *goredis.Client
}

func NewRedisStore(client *goredis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Put(ctx context.Context, email string, e Entry) error {
	key := keyPrefix + email
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, "code", e.Code, "expires_at_ms", e.ExpiresAt.UnixMilli())
	pipe.PExpireAt(ctx, key, e.ExpiresAt.Add(ttlMargin))
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisStore) Get(ctx context.Context, email string) (Entry, bool, error) {
	fields, err := s.client.HGetAll(ctx, keyPrefix+email).Result()
	if err != nil {
		return Entry{}, false, err
	}
	if len(fields) == 0 {
		return Entry{}, false, nil
	}

	code, err := strconv.Atoi(fields["code"])
	if err != nil {
		return Entry{}, false, err
	}
	expiresMs, err := strconv.ParseInt(fields["expires_at_ms"], 10, 64)
	if err != nil {
		return Entry{}, false, err
	}

	return Entry{Code: code, ExpiresAt: time.UnixMilli(expiresMs)}, true, nil
}

func (s *RedisStore) Delete(ctx context.Context, email string) error {
	return s.client.Del(ctx, keyPrefix+email).Err()
}

// claimScript deletes the entry only when the submitted code matches.
// Returns 1 on match, 0 on mismatch, -1 when no entry exists.
var claimScript = goredis.NewScript(`
	local stored = redis.call('HGET', KEYS[1], 'code')
	if stored == false then
		return -1
	end
	if stored == ARGV[1] then
		redis.call('DEL', KEYS[1])
		return 1
	end
	return 0
`)

func (s *RedisStore) ClaimIfMatch(ctx context.Context, email string, code int) (Result, error) {
	res, err := claimScript.Run(ctx, s.client, []string{keyPrefix + email}, code).Int()
	if err != nil {
		return ResultNotFound, err
	}
	switch res {
	case 1:
		return ResultMatched, nil
	case 0:
		return ResultMismatch, nil
	default:
		return ResultNotFound, nil
	}
}
