package watchlist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"anilistbot/pkg/models"
)

const keyPrefix = "rewatch:"

// RedisStore keeps one hash per user under rewatch:<user_id>. Each field is
// an anime id and each value the entry as a JSON document.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// NewRedisClient parses url and checks the server answers.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

func userKey(userID string) string {
	return keyPrefix + userID
}

func (s *RedisStore) Add(ctx context.Context, e models.WatchlistEntry) (bool, error) {
	if err := validate(e); err != nil {
		return false, err
	}
	if e.AddedAt.IsZero() {
		e.AddedAt = time.Now().UTC()
	}
	key, field := userKey(e.UserID), strconv.Itoa(e.AnimeID)

	doc, err := json.Marshal(e)
	if err != nil {
		return false, fmt.Errorf("marshal rewatch entry: %w", err)
	}
	added, err := s.client.HSetNX(ctx, key, field, doc).Result()
	if err != nil {
		return false, fmt.Errorf("insert rewatch entry: %w", err)
	}
	if added {
		return true, nil
	}

	existing, err := s.Get(ctx, e.UserID, e.AnimeID)
	if err != nil {
		return false, err
	}
	if existing != nil {
		e.AddedAt = existing.AddedAt
	}
	if doc, err = json.Marshal(e); err != nil {
		return false, fmt.Errorf("marshal rewatch entry: %w", err)
	}
	if err := s.client.HSet(ctx, key, field, doc).Err(); err != nil {
		return false, fmt.Errorf("refresh rewatch entry: %w", err)
	}
	return false, nil
}

func (s *RedisStore) List(ctx context.Context, userID string) ([]models.WatchlistEntry, error) {
	docs, err := s.client.HGetAll(ctx, userKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("list rewatch: %w", err)
	}
	out := make([]models.WatchlistEntry, 0, len(docs))
	for field, doc := range docs {
		var e models.WatchlistEntry
		if err := json.Unmarshal([]byte(doc), &e); err != nil {
			return nil, fmt.Errorf("decode rewatch entry %s: %w", field, err)
		}
		out = append(out, e)
	}
	sortEntries(out)
	return out, nil
}

func (s *RedisStore) Get(ctx context.Context, userID string, animeID int) (*models.WatchlistEntry, error) {
	doc, err := s.client.HGet(ctx, userKey(userID), strconv.Itoa(animeID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get rewatch entry: %w", err)
	}
	var e models.WatchlistEntry
	if err := json.Unmarshal([]byte(doc), &e); err != nil {
		return nil, fmt.Errorf("decode rewatch entry: %w", err)
	}
	return &e, nil
}

func (s *RedisStore) Remove(ctx context.Context, userID string, animeID int) (*models.WatchlistEntry, error) {
	e, err := s.Get(ctx, userID, animeID)
	if err != nil || e == nil {
		return nil, err
	}
	n, err := s.client.HDel(ctx, userKey(userID), strconv.Itoa(animeID)).Result()
	if err != nil {
		return nil, fmt.Errorf("delete rewatch entry: %w", err)
	}
	if n == 0 {
		return nil, nil
	}
	return e, nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
