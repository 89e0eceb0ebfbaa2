package draft

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps drafts as TTL'd JSON blobs in Redis.  It is the
// default backend; abandoned drafts expire on their own.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore wraps an existing client.  A non-positive ttl falls
// back to 24 hours.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisStore{rdb: rdb, ttl: ttl}
}

// inflightTTL bounds how long the in-flight marker can outlive a
// crashed request.  The backend client caps calls at 30 seconds, so
// the marker never expires under a live submission.
const inflightTTL = 35 * time.Second

func draftKey(sessionID, flightID string) string {
	return fmt.Sprintf("draft:%s:%s", sessionID, flightID)
}

func inflightKey(sessionID, flightID string) string {
	return fmt.Sprintf("inflight:%s:%s", sessionID, flightID)
}

// Load fetches and decodes a draft.  Missing keys, undecodable
// payloads and schema-version mismatches all read as "no draft".
func (s *RedisStore) Load(ctx context.Context, sessionID, flightID string) (*Draft, error) {
	bs, err := s.rdb.Get(ctx, draftKey(sessionID, flightID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var d Draft
	if err := json.Unmarshal(bs, &d); err != nil {
		return nil, nil
	}
	if d.SchemaVersion != SchemaVersion {
		return nil, nil
	}
	return &d, nil
}

// Save writes the draft under the session/flight key and refreshes
// the TTL.
func (s *RedisStore) Save(ctx context.Context, sessionID string, d *Draft) error {
	d.SchemaVersion = SchemaVersion
	d.SavedAt = time.Now().UTC()
	bs, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return s.rdb.SetEx(ctx, draftKey(sessionID, d.FlightID), bs, s.ttl).Err()
}

// Clear deletes the draft for the key; deleting a missing key is not
// an error.
func (s *RedisStore) Clear(ctx context.Context, sessionID, flightID string) error {
	return s.rdb.Del(ctx, draftKey(sessionID, flightID)).Err()
}

// Acquire sets the in-flight marker with SETNX so every gateway
// instance sees the same holder.
func (s *RedisStore) Acquire(ctx context.Context, sessionID, flightID string) (bool, error) {
	return s.rdb.SetNX(ctx, inflightKey(sessionID, flightID), 1, inflightTTL).Result()
}

// Release drops the in-flight marker.
func (s *RedisStore) Release(ctx context.Context, sessionID, flightID string) error {
	return s.rdb.Del(ctx, inflightKey(sessionID, flightID)).Err()
}
