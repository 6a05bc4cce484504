//go:generate mockery --name EnrollmentRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go_course_keep/internal/middleware"
	"go_course_keep/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// EnrollmentRepository は受講登録と進捗行の永続化を担います。
// 進捗パーセンテージの算出は RecomputeProgress に集約されており、
// 呼び出し側 (サービス/ハンドラ) はこの値を決して自前計算しない。
type EnrollmentRepository interface {
	Create(ctx context.Context, db *gorm.DB, enrollment *model.Enrollment) error
	FindByUserAndCourse(ctx context.Context, db *gorm.DB, userID, courseID uuid.UUID) (*model.Enrollment, error)
	ListByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.Enrollment, error)
	CreateProgress(ctx context.Context, db *gorm.DB, progress *model.ProgressRecord) error
	FindProgressByEnrollment(ctx context.Context, db *gorm.DB, enrollmentID uuid.UUID) (*model.ProgressRecord, error)
	// RecomputeProgress はコース内の必須クイズ修了数から進捗率を再計算し、
	// 進捗行を更新したうえで新しい値を返します。
	RecomputeProgress(ctx context.Context, db *gorm.DB, userID, courseID uuid.UUID) (*model.ProgressRecord, error)
}

type gormEnrollmentRepository struct{}

func NewGormEnrollmentRepository() EnrollmentRepository {
	return &gormEnrollmentRepository{}
}

func (r *gormEnrollmentRepository) Create(ctx context.Context, db *gorm.DB, enrollment *model.Enrollment) error {
	logger := middleware.GetLogger(ctx)
	if enrollment.EnrollmentID == uuid.Nil {
		enrollment.EnrollmentID = uuid.New()
	}
	if enrollment.EnrolledAt.IsZero() {
		enrollment.EnrolledAt = time.Now()
	}
	result := db.WithContext(ctx).Create(enrollment)
	if result.Error != nil {
		// 同時リクエストによる二重登録はConflictへ変換 (呼び出し側で成功同等に扱う)
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == "23505" {
			logger.Warn("Duplicate key error on create enrollment",
				"error", result.Error,
				"user_id", enrollment.UserID.String(),
				"course_id", enrollment.CourseID.String(),
			)
			return model.ErrConflict
		}
		logger.Error("Error creating enrollment in DB", "error", result.Error, "user_id", enrollment.UserID.String())
		return fmt.Errorf("gormEnrollmentRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormEnrollmentRepository) FindByUserAndCourse(ctx context.Context, db *gorm.DB, userID, courseID uuid.UUID) (*model.Enrollment, error) {
	logger := middleware.GetLogger(ctx)
	var enrollment model.Enrollment
	result := db.WithContext(ctx).
		Preload("Progress").
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&enrollment)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding enrollment in DB", "error", result.Error, "user_id", userID.String())
		return nil, fmt.Errorf("gormEnrollmentRepository.FindByUserAndCourse: %w", result.Error)
	}
	return &enrollment, nil
}

func (r *gormEnrollmentRepository) ListByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]*model.Enrollment, error) {
	logger := middleware.GetLogger(ctx)
	var enrollments []*model.Enrollment
	result := db.WithContext(ctx).
		Preload("Course").
		Preload("Progress").
		Where("user_id = ?", userID).
		Order("enrolled_at DESC").
		Find(&enrollments)
	if result.Error != nil {
		logger.Error("Error listing enrollments in DB", "error", result.Error, "user_id", userID.String())
		return nil, fmt.Errorf("gormEnrollmentRepository.ListByUser: %w", result.Error)
	}
	return enrollments, nil
}

func (r *gormEnrollmentRepository) CreateProgress(ctx context.Context, db *gorm.DB, progress *model.ProgressRecord) error {
	logger := middleware.GetLogger(ctx)
	if progress.ProgressID == uuid.Nil {
		progress.ProgressID = uuid.New()
	}
	result := db.WithContext(ctx).Create(progress)
	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == "23505" {
			logger.Warn("Duplicate key error on create progress record",
				"error", result.Error,
				"enrollment_id", progress.EnrollmentID.String(),
			)
			return model.ErrConflict
		}
		logger.Error("Error creating progress record in DB", "error", result.Error, "enrollment_id", progress.EnrollmentID.String())
		return fmt.Errorf("gormEnrollmentRepository.CreateProgress: %w", result.Error)
	}
	return nil
}

func (r *gormEnrollmentRepository) FindProgressByEnrollment(ctx context.Context, db *gorm.DB, enrollmentID uuid.UUID) (*model.ProgressRecord, error) {
	logger := middleware.GetLogger(ctx)
	var progress model.ProgressRecord
	result := db.WithContext(ctx).Where("enrollment_id = ?", enrollmentID).First(&progress)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding progress record in DB", "error", result.Error, "enrollment_id", enrollmentID.String())
		return nil, fmt.Errorf("gormEnrollmentRepository.FindProgressByEnrollment: %w", result.Error)
	}
	return &progress, nil
}

func (r *gormEnrollmentRepository) RecomputeProgress(ctx context.Context, db *gorm.DB, userID, courseID uuid.UUID) (*model.ProgressRecord, error) {
	logger := middleware.GetLogger(ctx)

	enrollment, err := r.FindByUserAndCourse(ctx, db, userID, courseID)
	if err != nil {
		return nil, err
	}

	// 進捗率 = 必須クイズを修了したレッスン数 / 必須クイズ付きレッスン総数。
	// どちらのカウントもDB側で行う。
	var total int64
	if err := db.WithContext(ctx).Model(&model.Quiz{}).
		Joins("JOIN lessons ON lessons.lesson_id = quizzes.lesson_id").
		Where("lessons.course_id = ? AND quizzes.is_required = ?", courseID, true).
		Count(&total).Error; err != nil {
		logger.Error("Error counting required quizzes in DB", "error", err, "course_id", courseID.String())
		return nil, fmt.Errorf("gormEnrollmentRepository.RecomputeProgress: %w", err)
	}

	var done int64
	if err := db.WithContext(ctx).Model(&model.QuizCompletion{}).
		Joins("JOIN lessons ON lessons.lesson_id = quiz_completions.lesson_id").
		Joins("JOIN quizzes ON quizzes.lesson_id = lessons.lesson_id").
		Where("quiz_completions.user_id = ? AND lessons.course_id = ? AND quizzes.is_required = ?", userID, courseID, true).
		Count(&done).Error; err != nil {
		logger.Error("Error counting quiz completions in DB", "error", err, "course_id", courseID.String())
		return nil, fmt.Errorf("gormEnrollmentRepository.RecomputeProgress: %w", err)
	}

	percent := 0
	if total > 0 {
		percent = int(done * 100 / total)
	}
	completed := total > 0 && done >= total

	updates := map[string]interface{}{
		"percent":   percent,
		"completed": completed,
	}
	result := db.WithContext(ctx).Model(&model.ProgressRecord{}).
		Where("enrollment_id = ?", enrollment.EnrollmentID).
		Updates(updates)
	if result.Error != nil {
		logger.Error("Error updating progress record in DB", "error", result.Error, "enrollment_id", enrollment.EnrollmentID.String())
		return nil, fmt.Errorf("gormEnrollmentRepository.RecomputeProgress: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, model.ErrNotFound
	}

	return r.FindProgressByEnrollment(ctx, db, enrollment.EnrollmentID)
}
