//go:generate mockery --name DraftRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"go_course_keep/internal/middleware"
	"go_course_keep/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DraftRepository はユーザー単位のサーバー側下書き行 (1ユーザー1行) を扱います。
type DraftRepository interface {
	Upsert(ctx context.Context, db *gorm.DB, draft *model.CourseDraft) error
	FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.CourseDraft, error)
	DeleteByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) error
}

type gormDraftRepository struct{}

func NewGormDraftRepository() DraftRepository {
	return &gormDraftRepository{}
}

func (r *gormDraftRepository) Upsert(ctx context.Context, db *gorm.DB, draft *model.CourseDraft) error {
	logger := middleware.GetLogger(ctx)
	result := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(draft)
	if result.Error != nil {
		logger.Error("Error upserting course draft in DB", "error", result.Error, "user_id", draft.UserID.String())
		return fmt.Errorf("gormDraftRepository.Upsert: %w", result.Error)
	}
	return nil
}

func (r *gormDraftRepository) FindByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.CourseDraft, error) {
	logger := middleware.GetLogger(ctx)
	var draft model.CourseDraft
	result := db.WithContext(ctx).Where("user_id = ?", userID).First(&draft)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding course draft in DB", "error", result.Error, "user_id", userID.String())
		return nil, fmt.Errorf("gormDraftRepository.FindByUser: %w", result.Error)
	}
	return &draft, nil
}

func (r *gormDraftRepository) DeleteByUser(ctx context.Context, db *gorm.DB, userID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)
	// 存在しない下書きの破棄は成功扱い (RowsAffected は見ない)
	result := db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.CourseDraft{})
	if result.Error != nil {
		logger.Error("Error deleting course draft in DB", "error", result.Error, "user_id", userID.String())
		return fmt.Errorf("gormDraftRepository.DeleteByUser: %w", result.Error)
	}
	return nil
}
