//go:generate mockery --name DraftService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"go_course_keep/internal/middleware"
	"go_course_keep/internal/model"
	"go_course_keep/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DraftService はコース作成フォームの下書きを2箇所に保存します。
//   - ローカルスロット (端末スコープ): 毎回同期的に書く
//   - リモート行 (ユーザースコープ): デバウンスしてまとめて書く
//
// 全フィールドが空のスナップショットは保存せず、逆に両方のスロットを
// クリアする。復元はリモート優先。
type DraftService interface {
	Save(ctx context.Context, userID uuid.UUID, deviceID string, snapshot *model.DraftSnapshot) error
	Presence(ctx context.Context, userID uuid.UUID, deviceID string) (*model.DraftPresenceResponse, error)
	Restore(ctx context.Context, userID uuid.UUID, deviceID string) (*model.DraftSnapshot, error)
	Clear(ctx context.Context, userID uuid.UUID, deviceID string) error
}

type draftService struct {
	db        *gorm.DB
	draftRepo repository.DraftRepository
	slots     DraftSlotStore
	debounce  time.Duration

	mu     sync.Mutex
	timers map[uuid.UUID]*time.Timer
}

func NewDraftService(db *gorm.DB, draftRepo repository.DraftRepository, slots DraftSlotStore, debounce time.Duration) DraftService {
	return &draftService{
		db:        db,
		draftRepo: draftRepo,
		slots:     slots,
		debounce:  debounce,
		timers:    make(map[uuid.UUID]*time.Timer),
	}
}

func (s *draftService) Save(ctx context.Context, userID uuid.UUID, deviceID string, snapshot *model.DraftSnapshot) error {
	logger := middleware.GetLogger(ctx)

	if !snapshot.HasContent() {
		// 空のスナップショットは「下書きを消した」とみなす。消し損ねは
		// 次の保存サイクルで上書きされるだけなので利用者には返さない
		if err := s.Clear(ctx, userID, deviceID); err != nil {
			logger.Warn("Failed to clear draft for empty snapshot", "error", err, "user_id", userID.String())
		}
		return nil
	}

	// ローカルスロットの書き損じは「このサイクルは保存なし」に格下げする。
	// リモート側のデバウンス書き込みは生きているので致命ではない
	if err := s.slots.Save(ctx, deviceID, snapshot); err != nil {
		logger.Warn("Failed to save draft to local slot", "error", err, "device_id", deviceID)
	}

	s.scheduleRemoteUpsert(userID, snapshot, logger)
	return nil
}

// scheduleRemoteUpsert はユーザーごとのデバウンスタイマーを張り直します。
// 入力が続く間はリモート書き込みが先送りされ、最後の1回だけが飛ぶ。
func (s *draftService) scheduleRemoteUpsert(userID uuid.UUID, snapshot *model.DraftSnapshot, logger *slog.Logger) {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		logger.Error("Failed to marshal draft snapshot", "error", err, "user_id", userID.String())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[userID]; ok {
		t.Stop()
	}
	s.timers[userID] = time.AfterFunc(s.debounce, func() {
		s.mu.Lock()
		delete(s.timers, userID)
		s.mu.Unlock()

		// リクエストのctxは既に死んでいるので独立したctxで書く
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		draft := &model.CourseDraft{UserID: userID, Payload: payload}
		if err := s.draftRepo.Upsert(ctx, s.db, draft); err != nil {
			// リモート保存失敗はローカルスロットが生きているので致命ではない
			logger.Warn("Debounced remote draft upsert failed", "error", err, "user_id", userID.String())
			return
		}
		logger.Debug("Debounced remote draft upsert done", "user_id", userID.String())
	})
}

func (s *draftService) Presence(ctx context.Context, userID uuid.UUID, deviceID string) (*model.DraftPresenceResponse, error) {
	logger := middleware.GetLogger(ctx)

	hasLocal := false
	if deviceID != "" {
		ok, err := s.slots.Exists(ctx, deviceID)
		if err != nil {
			logger.Warn("Failed to check local draft slot", "error", err, "device_id", deviceID)
		} else {
			hasLocal = ok
		}
	}

	hasServer := false
	if _, err := s.draftRepo.FindByUser(ctx, s.db, userID); err == nil {
		hasServer = true
	} else if !errors.Is(err, model.ErrNotFound) {
		logger.Error("Failed to check server draft", "error", err, "user_id", userID.String())
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "下書きの確認に失敗しました。", "", err)
	}

	return &model.DraftPresenceResponse{HasLocalDraft: hasLocal, HasServerDraft: hasServer}, nil
}

func (s *draftService) Restore(ctx context.Context, userID uuid.UUID, deviceID string) (*model.DraftSnapshot, error) {
	logger := middleware.GetLogger(ctx)

	// リモート行が存在すればそちらを正とする (デバウンス済みの最新確定値)
	draft, err := s.draftRepo.FindByUser(ctx, s.db, userID)
	if err == nil {
		var snapshot model.DraftSnapshot
		if uerr := json.Unmarshal(draft.Payload, &snapshot); uerr == nil {
			return &snapshot, nil
		}
		logger.Warn("Server draft payload is corrupt, falling back to local slot", "user_id", userID.String())
	} else if !errors.Is(err, model.ErrNotFound) {
		logger.Error("Failed to load server draft", "error", err, "user_id", userID.String())
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "下書きの取得に失敗しました。", "", err)
	}

	if deviceID != "" {
		snapshot, serr := s.slots.Load(ctx, deviceID)
		if serr != nil {
			logger.Error("Failed to load local draft slot", "error", serr, "device_id", deviceID)
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "下書きの取得に失敗しました。", "", serr)
		}
		if snapshot != nil {
			return snapshot, nil
		}
	}

	return nil, model.NewAppError("NOT_FOUND", "復元できる下書きがありません。", "", model.ErrNotFound)
}

func (s *draftService) Clear(ctx context.Context, userID uuid.UUID, deviceID string) error {
	logger := middleware.GetLogger(ctx)

	// 飛んでいく途中のデバウンス書き込みを止める
	s.mu.Lock()
	if t, ok := s.timers[userID]; ok {
		t.Stop()
		delete(s.timers, userID)
	}
	s.mu.Unlock()

	if deviceID != "" {
		if err := s.slots.Delete(ctx, deviceID); err != nil {
			// ローカルの掃除はベストエフォート
			logger.Warn("Failed to clear local draft slot", "error", err, "device_id", deviceID)
		}
	}

	if err := s.draftRepo.DeleteByUser(ctx, s.db, userID); err != nil {
		logger.Error("Failed to clear server draft", "error", err, "user_id", userID.String())
		return model.NewAppError("INTERNAL_SERVER_ERROR", "下書きの破棄に失敗しました。", "", err)
	}
	return nil
}
