//go:generate mockery --name SyncService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go_course_keep/internal/middleware"
	"go_course_keep/internal/model"
	"go_course_keep/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SyncService は編集用のレッスンリストを永続状態へ突き合わせる保存処理です。
//
// 方針:
//   - レッスンは編集リストの並び順どおりに step_order を振り直す
//   - 確定IDを持つレッスンはUPDATE、持たないものはINSERTして採番IDを
//     編集要素へ書き戻す (確定IDは以後の再保存で保たれる)
//   - ダウンロード資料はレッスン単位で keep-set 方式: リストに残っている
//     確定IDだけを残して他を削除し、その後UPDATE/INSERTする
//   - 最初の失敗で中断する。途中まで適用された変更は巻き戻さない。
//     各ステップが冪等なので、同じリストでの再実行が続きから収束する
type SyncService interface {
	// SyncLessons は編集リストを保存し、採番IDを書き戻した同じスライスを返します
	SyncLessons(ctx context.Context, db *gorm.DB, courseID uuid.UUID, lessons []model.EditableLesson) ([]model.EditableLesson, error)
	DeleteLesson(ctx context.Context, lessonID uuid.UUID, req *model.DeleteLessonRequest) error
}

type syncService struct {
	db          *gorm.DB
	lessonRepo  repository.LessonRepository
	saveTimeout time.Duration
}

func NewSyncService(db *gorm.DB, lessonRepo repository.LessonRepository, saveTimeout time.Duration) SyncService {
	return &syncService{db: db, lessonRepo: lessonRepo, saveTimeout: saveTimeout}
}

func (s *syncService) SyncLessons(ctx context.Context, db *gorm.DB, courseID uuid.UUID, lessons []model.EditableLesson) ([]model.EditableLesson, error) {
	logger := middleware.GetLogger(ctx)

	if db == nil {
		db = s.db
	}

	// DTOのvalidateタグと同じ上限を、ストアへ書く直前にも守る
	for i := range lessons {
		if len(lessons[i].Downloads) > model.MaxDownloadsPerLesson {
			return lessons, model.NewAppError("INVALID_INPUT",
				fmt.Sprintf("ダウンロード資料は1レッスンにつき%d件までです。", model.MaxDownloadsPerLesson),
				"downloads", model.ErrInvalidInput)
		}
	}

	// 保存全体に締め切りを付ける。超過は504としてクライアントに再試行させる
	ctx, cancel := context.WithTimeout(ctx, s.saveTimeout)
	defer cancel()

	for i := range lessons {
		lesson := &lessons[i]
		if err := s.syncLesson(ctx, db, courseID, lesson, i+1); err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				logger.Warn("Lesson sync timed out",
					"course_id", courseID.String(),
					"lesson_index", i,
					"timeout", s.saveTimeout,
				)
				return lessons, model.NewAppError("TIMEOUT", "保存がタイムアウトしました。もう一度お試しください。", "", model.ErrTimeout)
			}
			logger.Error("Lesson sync aborted",
				"error", err,
				"course_id", courseID.String(),
				"lesson_index", i,
			)
			return lessons, model.NewAppError("INTERNAL_SERVER_ERROR", "レッスンの保存に失敗しました。", "", err)
		}
	}
	return lessons, nil
}

func (s *syncService) syncLesson(ctx context.Context, db *gorm.DB, courseID uuid.UUID, lesson *model.EditableLesson, stepOrder int) error {
	topics := model.EditableListToTopicsMap(lesson.Topics)

	if lesson.IsPersisted() {
		// 空マップも明示的に書く (トピックを全部消した編集を反映する)
		updates := map[string]interface{}{
			"title":            lesson.Title,
			"description":      lesson.Description,
			"video_url":        lesson.VideoURL,
			"duration_minutes": lesson.DurationMinutes,
			"step_order":       stepOrder,
			"topics":           topics,
		}
		if err := s.lessonRepo.Update(ctx, db, *lesson.LessonID, updates); err != nil {
			return fmt.Errorf("update lesson: %w", err)
		}
	} else {
		row := &model.Lesson{
			CourseID:        courseID,
			StepOrder:       stepOrder,
			Title:           lesson.Title,
			Description:     lesson.Description,
			VideoURL:        lesson.VideoURL,
			DurationMinutes: lesson.DurationMinutes,
			Topics:          topics,
		}
		if err := s.lessonRepo.Create(ctx, db, row); err != nil {
			return fmt.Errorf("insert lesson: %w", err)
		}
		id := row.LessonID
		lesson.LessonID = &id
	}

	return s.syncDownloads(ctx, db, *lesson.LessonID, lesson)
}

func (s *syncService) syncDownloads(ctx context.Context, db *gorm.DB, lessonID uuid.UUID, lesson *model.EditableLesson) error {
	keepIDs := make([]uuid.UUID, 0, len(lesson.Downloads))
	for i := range lesson.Downloads {
		if d := &lesson.Downloads[i]; d.DownloadID != nil {
			keepIDs = append(keepIDs, *d.DownloadID)
		}
	}

	// リストから外れた資料を先に消す
	if _, err := s.lessonRepo.DeleteDownloadsExcept(ctx, db, lessonID, keepIDs); err != nil {
		return fmt.Errorf("delete removed downloads: %w", err)
	}

	for i := range lesson.Downloads {
		d := &lesson.Downloads[i]
		if d.DownloadID != nil {
			updates := map[string]interface{}{
				"title":       d.Title,
				"description": d.Description,
				"file_url":    d.FileURL,
				"file_type":   d.FileType,
				"file_size":   d.FileSize,
			}
			if err := s.lessonRepo.UpdateDownload(ctx, db, *d.DownloadID, updates); err != nil {
				return fmt.Errorf("update download: %w", err)
			}
		} else {
			row := &model.Download{
				LessonID:    lessonID,
				Title:       d.Title,
				Description: d.Description,
				FileURL:     d.FileURL,
				FileType:    d.FileType,
				FileSize:    d.FileSize,
			}
			if err := s.lessonRepo.CreateDownload(ctx, db, row); err != nil {
				return fmt.Errorf("insert download: %w", err)
			}
			id := row.DownloadID
			d.DownloadID = &id
		}
	}
	return nil
}

// DeleteLesson はレッスンを即時削除します。誤操作防止のため、表示中の
// タイトルをそのまま打ち直させて一致した場合のみ実行する。
func (s *syncService) DeleteLesson(ctx context.Context, lessonID uuid.UUID, req *model.DeleteLessonRequest) error {
	logger := middleware.GetLogger(ctx)

	lesson, err := s.lessonRepo.FindByID(ctx, s.db, lessonID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("NOT_FOUND", "レッスンが見つかりません。", "", model.ErrNotFound)
		}
		return model.NewAppError("INTERNAL_SERVER_ERROR", "レッスンの取得に失敗しました。", "", err)
	}

	// 照合は大文字小文字を区別し、前後の空白だけ許容する
	if strings.TrimSpace(req.ConfirmTitle) != lesson.Title {
		logger.Warn("Lesson delete confirmation mismatch", "lesson_id", lessonID.String())
		return model.NewAppError("NAME_MISMATCH", "入力されたタイトルが一致しません。", "confirm_title", model.ErrNameMismatch)
	}

	if err := s.lessonRepo.Delete(ctx, s.db, lessonID); err != nil {
		logger.Error("Failed to delete lesson", "error", err, "lesson_id", lessonID.String())
		return model.NewAppError("INTERNAL_SERVER_ERROR", "レッスンの削除に失敗しました。", "", err)
	}
	logger.Info("Lesson deleted", "lesson_id", lessonID.String(), "title", lesson.Title)
	return nil
}
