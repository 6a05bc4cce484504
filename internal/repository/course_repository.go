//go:generate mockery --name CourseRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"go_course_keep/internal/middleware"
	"go_course_keep/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// CourseFilter はコース一覧の絞り込み条件です
type CourseFilter struct {
	PublishedOnly bool
	Category      string
	FeaturedOnly  bool
	Limit         int
	Offset        int
}

type CourseRepository interface {
	Create(ctx context.Context, db *gorm.DB, course *model.Course) error
	FindByID(ctx context.Context, db *gorm.DB, courseID uuid.UUID) (*model.Course, error)
	FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*model.Course, error)
	List(ctx context.Context, db *gorm.DB, filter CourseFilter) ([]*model.Course, error)
	Update(ctx context.Context, db *gorm.DB, courseID uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, db *gorm.DB, courseID uuid.UUID) error
	CheckSlugExists(ctx context.Context, db *gorm.DB, slug string, excludeCourseID *uuid.UUID) (bool, error)
}

type gormCourseRepository struct{}

func NewGormCourseRepository() CourseRepository {
	return &gormCourseRepository{}
}

func (r *gormCourseRepository) Create(ctx context.Context, db *gorm.DB, course *model.Course) error {
	logger := middleware.GetLogger(ctx)
	result := db.WithContext(ctx).Create(course)
	if result.Error != nil {
		// slugの一意制約違反はConflictへ変換
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == "23505" {
			logger.Warn("Duplicate slug on create course", "error", result.Error, "slug", course.Slug)
			return model.ErrConflict
		}
		logger.Error("Error creating course in DB", "error", result.Error, "title", course.Title)
		return fmt.Errorf("gormCourseRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormCourseRepository) FindByID(ctx context.Context, db *gorm.DB, courseID uuid.UUID) (*model.Course, error) {
	logger := middleware.GetLogger(ctx)
	var course model.Course
	result := db.WithContext(ctx).Where("course_id = ?", courseID).First(&course)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding course by ID in DB", "error", result.Error, "course_id", courseID.String())
		return nil, fmt.Errorf("gormCourseRepository.FindByID: %w", result.Error)
	}
	return &course, nil
}

func (r *gormCourseRepository) FindBySlug(ctx context.Context, db *gorm.DB, slug string) (*model.Course, error) {
	logger := middleware.GetLogger(ctx)
	var course model.Course
	result := db.WithContext(ctx).Where("slug = ?", slug).First(&course)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding course by slug in DB", "error", result.Error, "slug", slug)
		return nil, fmt.Errorf("gormCourseRepository.FindBySlug: %w", result.Error)
	}
	return &course, nil
}

func (r *gormCourseRepository) List(ctx context.Context, db *gorm.DB, filter CourseFilter) ([]*model.Course, error) {
	logger := middleware.GetLogger(ctx)
	var courses []*model.Course

	query := db.WithContext(ctx).Model(&model.Course{})
	if filter.PublishedOnly {
		query = query.Where("status = ?", model.CourseStatusPublished)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.FeaturedOnly {
		query = query.Where("is_featured = ?", true)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	result := query.Order("created_at DESC").Find(&courses)
	if result.Error != nil {
		logger.Error("Error listing courses in DB", "error", result.Error)
		return nil, fmt.Errorf("gormCourseRepository.List: %w", result.Error)
	}
	return courses, nil
}

func (r *gormCourseRepository) Update(ctx context.Context, db *gorm.DB, courseID uuid.UUID, updates map[string]interface{}) error {
	logger := middleware.GetLogger(ctx)
	if len(updates) == 0 {
		return nil
	}
	result := db.WithContext(ctx).Model(&model.Course{}).Where("course_id = ?", courseID).Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating course in DB", "error", result.Error, "course_id", courseID.String())
		return fmt.Errorf("gormCourseRepository.Update: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// Delete はコースとその配下のレッスン・ダウンロード資料を論理削除します
func (r *gormCourseRepository) Delete(ctx context.Context, db *gorm.DB, courseID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)

	// 配下のダウンロード資料 -> レッスン -> コース本体の順でカスケード
	var lessonIDs []uuid.UUID
	if err := db.WithContext(ctx).Model(&model.Lesson{}).Where("course_id = ?", courseID).Pluck("lesson_id", &lessonIDs).Error; err != nil {
		logger.Error("Error collecting lesson IDs for cascade delete", "error", err, "course_id", courseID.String())
		return fmt.Errorf("gormCourseRepository.Delete: %w", err)
	}
	if len(lessonIDs) > 0 {
		if err := db.WithContext(ctx).Where("lesson_id IN ?", lessonIDs).Delete(&model.Download{}).Error; err != nil {
			logger.Error("Error cascade-deleting downloads", "error", err, "course_id", courseID.String())
			return fmt.Errorf("gormCourseRepository.Delete: %w", err)
		}
		if err := db.WithContext(ctx).Where("course_id = ?", courseID).Delete(&model.Lesson{}).Error; err != nil {
			logger.Error("Error cascade-deleting lessons", "error", err, "course_id", courseID.String())
			return fmt.Errorf("gormCourseRepository.Delete: %w", err)
		}
	}

	result := db.WithContext(ctx).Where("course_id = ?", courseID).Delete(&model.Course{})
	if result.Error != nil {
		logger.Error("Error deleting course in DB", "error", result.Error, "course_id", courseID.String())
		return fmt.Errorf("gormCourseRepository.Delete: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *gormCourseRepository) CheckSlugExists(ctx context.Context, db *gorm.DB, slug string, excludeCourseID *uuid.UUID) (bool, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	query := db.WithContext(ctx).Model(&model.Course{}).Where("slug = ?", slug)
	if excludeCourseID != nil {
		query = query.Where("course_id != ?", *excludeCourseID)
	}
	if err := query.Count(&count).Error; err != nil {
		logger.Error("Error checking slug existence in DB", "error", err, "slug", slug)
		return false, fmt.Errorf("gormCourseRepository.CheckSlugExists: %w", err)
	}
	return count > 0, nil
}
