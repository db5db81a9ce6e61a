package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/loan-portal/internal/preapproval"
	"github.com/iwvelando/loan-portal/pkg/constants"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each document as a JSON string and indexes a user's
// documents in a sorted set scored by creation time.
//
// Keys:
//
//	<prefix>:doc:<id>          document JSON
//	<prefix>:user:<id>:docs    sorted set of document ids, score = createdAt unix milliseconds
//	<prefix>:agent:<id>        agent JSON
type RedisStore struct {
	client *redis.Client
	prefix string
}

// DialRedisStore connects to redis and checks the connection.
func DialRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return NewRedisStore(client, cfg.KeyPrefix), nil
}

// NewRedisStore wraps an existing client. An empty prefix uses the default.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = constants.DefaultRedisKeyPrefix
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) docKey(id uuid.UUID) string {
	return s.prefix + ":doc:" + id.String()
}

func (s *RedisStore) userKey(id uuid.UUID) string {
	return s.prefix + ":user:" + id.String() + ":docs"
}

func (s *RedisStore) agentKey(id uuid.UUID) string {
	return s.prefix + ":agent:" + id.String()
}

func (s *RedisStore) GetDocument(ctx context.Context, id uuid.UUID) (preapproval.Document, error) {
	body, err := s.client.Get(ctx, s.docKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return preapproval.Document{}, fmt.Errorf("document %s: %w", id, ErrNotFound)
		}
		return preapproval.Document{}, fmt.Errorf("failed to get document: %w", err)
	}
	var doc preapproval.Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return preapproval.Document{}, fmt.Errorf("failed to decode document %s: %w", id, err)
	}
	return doc, nil
}

// InsertDocument writes the body and the owner's index entry in one MULTI/EXEC.
// The document key is watched, so a concurrent insert of the same id fails the
// transaction instead of leaving an index entry behind.
func (s *RedisStore) InsertDocument(ctx context.Context, doc preapproval.Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	key := s.docKey(doc.ID)

	err = s.client.Watch(ctx, func(tx *redis.Tx) error {
		n, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("document %s: %w", doc.ID, ErrAlreadyExists)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, body, 0)
			return s.index(ctx, pipe, doc)
		})
		return err
	}, key)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrAlreadyExists):
		return err
	case errors.Is(err, redis.TxFailedErr):
		return fmt.Errorf("document %s: %w", doc.ID, ErrAlreadyExists)
	default:
		return fmt.Errorf("failed to insert document: %w", err)
	}
}

func (s *RedisStore) ReplaceDocument(ctx context.Context, doc preapproval.Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}
	key := s.docKey(doc.ID)

	err = s.client.Watch(ctx, func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return fmt.Errorf("document %s: %w", doc.ID, ErrNotFound)
		}
		if err != nil {
			return err
		}
		var previous preapproval.Document
		if err := json.Unmarshal(raw, &previous); err != nil {
			return fmt.Errorf("failed to decode document %s: %w", doc.ID, err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, body, 0)
			if previous.UserID != doc.UserID {
				pipe.ZRem(ctx, s.userKey(previous.UserID), doc.ID.String())
			}
			return s.index(ctx, pipe, doc)
		})
		return err
	}, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to replace document: %w", err)
	}
	return nil
}

func (s *RedisStore) index(ctx context.Context, cmd redis.Cmdable, doc preapproval.Document) error {
	return cmd.ZAdd(ctx, s.userKey(doc.UserID), redis.Z{
		Score:  float64(doc.CreatedAt.UTC().UnixMilli()),
		Member: doc.ID.String(),
	}).Err()
}

func (s *RedisStore) DeleteDocuments(ctx context.Context, ids []uuid.UUID) error {
	for _, id := range ids {
		doc, err := s.GetDocument(ctx, id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, s.docKey(id))
			pipe.ZRem(ctx, s.userKey(doc.UserID), id.String())
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to delete document %s: %w", id, err)
		}
	}
	return nil
}

func (s *RedisStore) ListDocuments(ctx context.Context, userID uuid.UUID) ([]preapproval.Document, error) {
	ids, err := s.client.ZRange(ctx, s.userKey(userID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return s.load(ctx, ids)
}

func (s *RedisStore) ListCreatedBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]preapproval.Document, error) {
	ids, err := s.client.ZRangeByScore(ctx, s.userKey(userID), &redis.ZRangeBy{
		Min: strconv.FormatInt(from.UTC().UnixMilli(), 10),
		Max: "(" + strconv.FormatInt(to.UTC().UnixMilli(), 10),
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return s.load(ctx, ids)
}

func (s *RedisStore) ListPreApprovedBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]preapproval.Document, error) {
	docs, err := s.ListDocuments(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := []preapproval.Document{}
	for _, doc := range docs {
		if preApprovedBetween(doc, from, to) {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (s *RedisStore) load(ctx context.Context, ids []string) ([]preapproval.Document, error) {
	docs := []preapproval.Document{}
	if len(ids) == 0 {
		return docs, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = s.prefix + ":doc:" + id
	}
	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load documents: %w", err)
	}
	for i, value := range values {
		body, ok := value.(string)
		if !ok {
			// Index entry without a document body.
			continue
		}
		var doc preapproval.Document
		if err := json.Unmarshal([]byte(body), &doc); err != nil {
			return nil, fmt.Errorf("failed to decode document %s: %w", ids[i], err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (s *RedisStore) GetAgent(ctx context.Context, id uuid.UUID) (preapproval.Agent, error) {
	body, err := s.client.Get(ctx, s.agentKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return preapproval.Agent{}, fmt.Errorf("agent %s: %w", id, ErrNotFound)
		}
		return preapproval.Agent{}, fmt.Errorf("failed to get agent: %w", err)
	}
	var agent preapproval.Agent
	if err := json.Unmarshal(body, &agent); err != nil {
		return preapproval.Agent{}, fmt.Errorf("failed to decode agent %s: %w", id, err)
	}
	return agent, nil
}

func (s *RedisStore) PutAgent(ctx context.Context, agent preapproval.Agent) error {
	body, err := json.Marshal(agent)
	if err != nil {
		return fmt.Errorf("failed to encode agent: %w", err)
	}
	if err := s.client.Set(ctx, s.agentKey(agent.ID), body, 0).Err(); err != nil {
		return fmt.Errorf("failed to save agent: %w", err)
	}
	return nil
}

// Close closes the redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
