//go:generate mockery --name QuizSessionStore --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"sync"

	"go_course_keep/internal/model"

	"github.com/google/uuid"
)

// QuizSessionStore は (user, lesson) ごとの実行中クイズ状態の置き場です。
// あくまで一時状態で、失われても修了記録 (quiz_completions) から
// 正しい初期状態を再構成できる。
type QuizSessionStore interface {
	// Get はセッションが無ければ (nil, nil) を返します
	Get(ctx context.Context, userID, lessonID uuid.UUID) (*model.QuizSession, error)
	Save(ctx context.Context, userID, lessonID uuid.UUID, session *model.QuizSession) error
	Delete(ctx context.Context, userID, lessonID uuid.UUID) error
}

type memoryQuizSessionStore struct {
	mu       sync.RWMutex
	sessions map[string]model.QuizSession
}

func NewMemoryQuizSessionStore() QuizSessionStore {
	return &memoryQuizSessionStore{sessions: make(map[string]model.QuizSession)}
}

func sessionKey(userID, lessonID uuid.UUID) string {
	return userID.String() + ":" + lessonID.String()
}

func (s *memoryQuizSessionStore) Get(ctx context.Context, userID, lessonID uuid.UUID) (*model.QuizSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionKey(userID, lessonID)]
	if !ok {
		return nil, nil
	}
	return &session, nil
}

func (s *memoryQuizSessionStore) Save(ctx context.Context, userID, lessonID uuid.UUID, session *model.QuizSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionKey(userID, lessonID)] = *session
	return nil
}

func (s *memoryQuizSessionStore) Delete(ctx context.Context, userID, lessonID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionKey(userID, lessonID))
	return nil
}
