//go:generate mockery --name LessonRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"go_course_keep/internal/middleware"
	"go_course_keep/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LessonRepository はレッスンとその配下のダウンロード資料の永続化を担います。
// インサート時の確定IDの採番はストア側の責務なので、Create が LessonID /
// DownloadID を発行して引数のモデルに書き戻します。
type LessonRepository interface {
	Create(ctx context.Context, db *gorm.DB, lesson *model.Lesson) error
	FindByID(ctx context.Context, db *gorm.DB, lessonID uuid.UUID) (*model.Lesson, error)
	FindByCourse(ctx context.Context, db *gorm.DB, courseID uuid.UUID) ([]*model.Lesson, error)
	Update(ctx context.Context, db *gorm.DB, lessonID uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, db *gorm.DB, lessonID uuid.UUID) error

	CreateDownload(ctx context.Context, db *gorm.DB, download *model.Download) error
	UpdateDownload(ctx context.Context, db *gorm.DB, downloadID uuid.UUID, updates map[string]interface{}) error
	// DeleteDownloadsExcept は keep-set (残すID集合) に含まれない永続済み
	// ダウンロード資料を削除し、削除件数を返します。keepIDs が空なら
	// そのレッスンの全資料を削除する。
	DeleteDownloadsExcept(ctx context.Context, db *gorm.DB, lessonID uuid.UUID, keepIDs []uuid.UUID) (int64, error)
	FindDownloadsByLesson(ctx context.Context, db *gorm.DB, lessonID uuid.UUID) ([]*model.Download, error)
}

type gormLessonRepository struct{}

func NewGormLessonRepository() LessonRepository {
	return &gormLessonRepository{}
}

func (r *gormLessonRepository) Create(ctx context.Context, db *gorm.DB, lesson *model.Lesson) error {
	logger := middleware.GetLogger(ctx)
	if lesson.LessonID == uuid.Nil {
		lesson.LessonID = uuid.New()
	}
	result := db.WithContext(ctx).Create(lesson)
	if result.Error != nil {
		logger.Error("Error creating lesson in DB",
			"error", result.Error,
			"course_id", lesson.CourseID.String(),
			"title", lesson.Title,
		)
		return fmt.Errorf("gormLessonRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormLessonRepository) FindByID(ctx context.Context, db *gorm.DB, lessonID uuid.UUID) (*model.Lesson, error) {
	logger := middleware.GetLogger(ctx)
	var lesson model.Lesson
	result := db.WithContext(ctx).Preload("Downloads").Where("lesson_id = ?", lessonID).First(&lesson)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding lesson by ID in DB", "error", result.Error, "lesson_id", lessonID.String())
		return nil, fmt.Errorf("gormLessonRepository.FindByID: %w", result.Error)
	}
	return &lesson, nil
}

func (r *gormLessonRepository) FindByCourse(ctx context.Context, db *gorm.DB, courseID uuid.UUID) ([]*model.Lesson, error) {
	logger := middleware.GetLogger(ctx)
	var lessons []*model.Lesson
	result := db.WithContext(ctx).
		Preload("Downloads").
		Where("course_id = ?", courseID).
		Order("step_order ASC").
		Find(&lessons)
	if result.Error != nil {
		logger.Error("Error finding lessons by course in DB", "error", result.Error, "course_id", courseID.String())
		return nil, fmt.Errorf("gormLessonRepository.FindByCourse: %w", result.Error)
	}
	return lessons, nil
}

func (r *gormLessonRepository) Update(ctx context.Context, db *gorm.DB, lessonID uuid.UUID, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := db.WithContext(ctx).Model(&model.Lesson{}).Where("lesson_id = ?", lessonID).Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating lesson in DB", "error", result.Error, "lesson_id", lessonID.String())
		return fmt.Errorf("gormLessonRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormLessonRepository) Delete(ctx context.Context, db *gorm.DB, lessonID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)

	// 配下のダウンロード資料から先に消す
	if err := db.WithContext(ctx).Where("lesson_id = ?", lessonID).Delete(&model.Download{}).Error; err != nil {
		logger.Error("Error cascade-deleting downloads for lesson", "error", err, "lesson_id", lessonID.String())
		return fmt.Errorf("gormLessonRepository.Delete: %w", err)
	}

	result := db.WithContext(ctx).Where("lesson_id = ?", lessonID).Delete(&model.Lesson{})
	if result.Error != nil {
		logger.Error("Error deleting lesson in DB", "error", result.Error, "lesson_id", lessonID.String())
		return fmt.Errorf("gormLessonRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormLessonRepository) CreateDownload(ctx context.Context, db *gorm.DB, download *model.Download) error {
	logger := middleware.GetLogger(ctx)
	if download.DownloadID == uuid.Nil {
		download.DownloadID = uuid.New()
	}
	result := db.WithContext(ctx).Create(download)
	if result.Error != nil {
		logger.Error("Error creating download in DB",
			"error", result.Error,
			"lesson_id", download.LessonID.String(),
			"title", download.Title,
		)
		return fmt.Errorf("gormLessonRepository.CreateDownload: %w", result.Error)
	}
	return nil
}

func (r *gormLessonRepository) UpdateDownload(ctx context.Context, db *gorm.DB, downloadID uuid.UUID, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := db.WithContext(ctx).Model(&model.Download{}).Where("download_id = ?", downloadID).Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating download in DB", "error", result.Error, "download_id", downloadID.String())
		return fmt.Errorf("gormLessonRepository.UpdateDownload: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormLessonRepository) DeleteDownloadsExcept(ctx context.Context, db *gorm.DB, lessonID uuid.UUID, keepIDs []uuid.UUID) (int64, error) {
	logger := middleware.GetLogger(ctx)

	query := db.WithContext(ctx).Where("lesson_id = ?", lessonID)
	// keep-setが空の場合は全削除 (資料を全て外した編集を正しく反映する)
	if len(keepIDs) > 0 {
		query = query.Where("download_id NOT IN ?", keepIDs)
	}
	result := query.Delete(&model.Download{})
	if result.Error != nil {
		logger.Error("Error deleting downloads outside keep-set",
			"error", result.Error,
			"lesson_id", lessonID.String(),
			"keep_count", len(keepIDs),
		)
		return 0, fmt.Errorf("gormLessonRepository.DeleteDownloadsExcept: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *gormLessonRepository) FindDownloadsByLesson(ctx context.Context, db *gorm.DB, lessonID uuid.UUID) ([]*model.Download, error) {
	logger := middleware.GetLogger(ctx)
	var downloads []*model.Download
	result := db.WithContext(ctx).Where("lesson_id = ?", lessonID).Order("created_at ASC").Find(&downloads)
	if result.Error != nil {
		logger.Error("Error finding downloads by lesson in DB", "error", result.Error, "lesson_id", lessonID.String())
		return nil, fmt.Errorf("gormLessonRepository.FindDownloadsByLesson: %w", result.Error)
	}
	return downloads, nil
}
