package chat

import (
	"context"
	"encoding/json"
	"time"

	"central/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	draftKeyPrefix   = "chat:draft:"
	convKeyPrefix    = "chat:conv:"
	pendingKeyPrefix = "chat:pending:"

	// maxStoredConversationLines bounds the serialized history per conversation.
	maxStoredConversationLines = 200
)

// RedisSessionStore is the production SessionStore backed by Redis. Malformed
// stored values are logged and treated as absent, never surfaced to the user.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl, logger: logger}
}

func (s *RedisSessionStore) GetDraft(ctx context.Context, conversationID string) (*models.ReservationDraft, error) {
	return s.getDraft(ctx, draftKeyPrefix+conversationID)
}

func (s *RedisSessionStore) SaveDraft(ctx context.Context, conversationID string, draft *models.ReservationDraft) error {
	return s.setJSON(ctx, draftKeyPrefix+conversationID, draft)
}

func (s *RedisSessionStore) GetConversation(ctx context.Context, conversationID string) ([]string, error) {
	key := convKeyPrefix + conversationID
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var lines []string
	if err := json.Unmarshal([]byte(data), &lines); err != nil {
		s.logger.Warn("stored conversation is malformed, resetting",
			zap.String("conversationId", conversationID), zap.Error(err))
		s.client.Del(ctx, key)
		return nil, nil
	}
	return lines, nil
}

func (s *RedisSessionStore) SaveConversation(ctx context.Context, conversationID string, lines []string) error {
	if len(lines) > maxStoredConversationLines {
		lines = lines[len(lines)-maxStoredConversationLines:]
	}
	return s.setJSON(ctx, convKeyPrefix+conversationID, lines)
}

func (s *RedisSessionStore) GetPendingDraft(ctx context.Context, conversationID string) (*models.ReservationDraft, error) {
	return s.getDraft(ctx, pendingKeyPrefix+conversationID)
}

func (s *RedisSessionStore) SavePendingDraft(ctx context.Context, conversationID string, draft *models.ReservationDraft) error {
	return s.setJSON(ctx, pendingKeyPrefix+conversationID, draft)
}

func (s *RedisSessionStore) ClearPendingDraft(ctx context.Context, conversationID string) error {
	return s.client.Del(ctx, pendingKeyPrefix+conversationID).Err()
}

// Clear drops all state for a conversation.
func (s *RedisSessionStore) Clear(ctx context.Context, conversationID string) error {
	return s.client.Del(ctx,
		draftKeyPrefix+conversationID,
		convKeyPrefix+conversationID,
		pendingKeyPrefix+conversationID,
	).Err()
}

func (s *RedisSessionStore) getDraft(ctx context.Context, key string) (*models.ReservationDraft, error) {
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var draft models.ReservationDraft
	if err := json.Unmarshal([]byte(data), &draft); err != nil {
		s.logger.Warn("stored draft is malformed, resetting",
			zap.String("key", key), zap.Error(err))
		s.client.Del(ctx, key)
		return nil, nil
	}
	return &draft, nil
}

func (s *RedisSessionStore) setJSON(ctx context.Context, key string, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, b, s.ttl).Err()
}
