package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go_course_keep/internal/cache"
	"go_course_keep/internal/model"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	quizSessionKeyPrefix = "quiz:session:"
	quizSessionTTL       = 24 * time.Hour
)

// redisQuizSessionStore はクイズセッションのRedis実装です
type redisQuizSessionStore struct {
	cache *cache.Cache
}

func NewRedisQuizSessionStore(c *cache.Cache) QuizSessionStore {
	return &redisQuizSessionStore{cache: c}
}

func (s *redisQuizSessionStore) key(userID, lessonID uuid.UUID) string {
	return quizSessionKeyPrefix + sessionKey(userID, lessonID)
}

func (s *redisQuizSessionStore) Get(ctx context.Context, userID, lessonID uuid.UUID) (*model.QuizSession, error) {
	data, err := s.cache.Client.Get(ctx, s.key(userID, lessonID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redisQuizSessionStore.Get: %w", err)
	}
	var session model.QuizSession
	if err := json.Unmarshal(data, &session); err != nil {
		_ = s.cache.Client.Del(ctx, s.key(userID, lessonID)).Err()
		return nil, nil
	}
	return &session, nil
}

func (s *redisQuizSessionStore) Save(ctx context.Context, userID, lessonID uuid.UUID, session *model.QuizSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("redisQuizSessionStore.Save: marshal: %w", err)
	}
	if err := s.cache.Client.Set(ctx, s.key(userID, lessonID), data, quizSessionTTL).Err(); err != nil {
		return fmt.Errorf("redisQuizSessionStore.Save: %w", err)
	}
	return nil
}

func (s *redisQuizSessionStore) Delete(ctx context.Context, userID, lessonID uuid.UUID) error {
	if err := s.cache.Client.Del(ctx, s.key(userID, lessonID)).Err(); err != nil {
		return fmt.Errorf("redisQuizSessionStore.Delete: %w", err)
	}
	return nil
}
