//go:generate mockery --name DraftSlotStore --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"sync"

	"go_course_keep/internal/model"
)

// DraftSlotStore は端末スコープの下書きスロット (ローカル側) の抽象です。
// キーは端末ID。1端末1スロットで、保存は同期的に完了する。
// ユーザー単位のリモート行 (DraftRepository) とは独立した保存先であり、
// ネットワーク越しの永続化が失敗してもこちらは生き残る。
type DraftSlotStore interface {
	Save(ctx context.Context, deviceID string, snapshot *model.DraftSnapshot) error
	// Load はスロットが空なら (nil, nil) を返します
	Load(ctx context.Context, deviceID string) (*model.DraftSnapshot, error)
	Delete(ctx context.Context, deviceID string) error
	Exists(ctx context.Context, deviceID string) (bool, error)
}

// memoryDraftSlotStore はテスト用のインメモリ実装です
type memoryDraftSlotStore struct {
	mu    sync.RWMutex
	slots map[string]model.DraftSnapshot
}

func NewMemoryDraftSlotStore() DraftSlotStore {
	return &memoryDraftSlotStore{slots: make(map[string]model.DraftSnapshot)}
}

func (s *memoryDraftSlotStore) Save(ctx context.Context, deviceID string, snapshot *model.DraftSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[deviceID] = *snapshot
	return nil
}

func (s *memoryDraftSlotStore) Load(ctx context.Context, deviceID string) (*model.DraftSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot, ok := s.slots[deviceID]
	if !ok {
		return nil, nil
	}
	return &snapshot, nil
}

func (s *memoryDraftSlotStore) Delete(ctx context.Context, deviceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.slots, deviceID)
	return nil
}

func (s *memoryDraftSlotStore) Exists(ctx context.Context, deviceID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.slots[deviceID]
	return ok, nil
}
