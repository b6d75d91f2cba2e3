package redisrepo

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/thriveremote/thrive-server/sessions"
)

var _ sessions.Repo = (*Repo)(nil)

const defaultKeyPrefix = "session:"

// Repo stores sessions in Redis as JSON values whose TTL mirrors the session
// expiry, so abandoned tokens fall out of memory without a sweep.
type Repo struct {
	client redis.UniversalClient
	prefix string
}

func New(client redis.UniversalClient) *Repo {
	return &Repo{client: client, prefix: defaultKeyPrefix}
}

func (r *Repo) key(token string) string {
	return r.prefix + token
}

func (r *Repo) Put(ctx context.Context, s *sessions.Session) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "[redisrepo.Put] json.Marshal")
	}
	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return errors.New("[redisrepo.Put] session already expired")
	}
	if err := r.client.Set(ctx, r.key(s.Token), payload, ttl).Err(); err != nil {
		return errors.Wrap(err, "[redisrepo.Put] client.Set")
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, token string) (*sessions.Session, error) {
	payload, err := r.client.Get(ctx, r.key(token)).Bytes()
	if err == redis.Nil {
		return nil, sessions.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "[redisrepo.Get] client.Get")
	}
	var s sessions.Session
	if err := json.Unmarshal(payload, &s); err != nil {
		return nil, errors.Wrap(err, "[redisrepo.Get] json.Unmarshal")
	}
	return &s, nil
}

func (r *Repo) Touch(ctx context.Context, token string, now time.Time) error {
	s, err := r.Get(ctx, token)
	if err != nil {
		return err
	}
	s.LastUsedAt = now

	payload, err := json.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "[redisrepo.Touch] json.Marshal")
	}
	// KeepTTL preserves the key's expiry so touching never extends a session.
	if err := r.client.Set(ctx, r.key(token), payload, redis.KeepTTL).Err(); err != nil {
		return errors.Wrap(err, "[redisrepo.Touch] client.Set")
	}
	return nil
}

func (r *Repo) Delete(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, r.key(token)).Err(); err != nil {
		return errors.Wrap(err, "[redisrepo.Delete] client.Del")
	}
	return nil
}

// DeleteExpired walks the session keyspace and removes entries already past
// the cutoff. Redis key TTLs make this mostly redundant; it exists to honour
// the Repo contract when TTLs and session expiries drift.
func (r *Repo) DeleteExpired(ctx context.Context, cutoff time.Time) (int, error) {
	var removed int
	iter := r.client.Scan(ctx, 0, r.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		payload, err := r.client.Get(ctx, key).Bytes()
		if err != nil {
			continue // expired between scan and get
		}
		var s sessions.Session
		if err := json.Unmarshal(payload, &s); err != nil {
			continue
		}
		if !cutoff.Before(s.ExpiresAt) {
			if err := r.client.Del(ctx, key).Err(); err == nil {
				removed++
			}
		}
	}
	if err := iter.Err(); err != nil {
		return removed, errors.Wrap(err, "[redisrepo.DeleteExpired] scan")
	}
	return removed, nil
}
