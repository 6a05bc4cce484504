//go:generate mockery --name QuizRepository --output ./mocks --outpkg mocks --case=underscore
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
	"gorm.io/gorm/clause"
)

// QuizRepository はクイズ・設問・修了記録の永続化を担います。
// 修了記録は (user_id, lesson_id) の一意制約で多重記録を防ぎ、
// CreateCompletion は衝突時に何もしない (冪等なINSERT) 仕様です。
type QuizRepository interface {
	CreateQuiz(ctx context.Context, db *gorm.DB, quiz *model.Quiz, questions []*model.Question) error
	FindByLesson(ctx context.Context, db *gorm.DB, lessonID uuid.UUID) (*model.Quiz, error)
	CreateCompletion(ctx context.Context, db *gorm.DB, completion *model.QuizCompletion) error
	HasCompletion(ctx context.Context, db *gorm.DB, userID, lessonID uuid.UUID) (bool, error)
}

type gormQuizRepository struct{}

func NewGormQuizRepository() QuizRepository {
	return &gormQuizRepository{}
}

func (r *gormQuizRepository) CreateQuiz(ctx context.Context, db *gorm.DB, quiz *model.Quiz, questions []*model.Question) error {
	logger := middleware.GetLogger(ctx)
	if quiz.QuizID == uuid.Nil {
		quiz.QuizID = uuid.New()
	}
	if result := db.WithContext(ctx).Create(quiz); result.Error != nil {
		// レッスンあたりクイズ1件の一意制約違反はConflictへ変換
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == "23505" {
			logger.Warn("Duplicate key error on create quiz", "error", result.Error, "lesson_id", quiz.LessonID.String())
			return model.ErrConflict
		}
		logger.Error("Error creating quiz in DB", "error", result.Error, "lesson_id", quiz.LessonID.String())
		return fmt.Errorf("gormQuizRepository.CreateQuiz: %w", result.Error)
	}
	for i, q := range questions {
		if q.QuestionID == uuid.Nil {
			q.QuestionID = uuid.New()
		}
		q.QuizID = quiz.QuizID
		q.Position = i
		if result := db.WithContext(ctx).Create(q); result.Error != nil {
			logger.Error("Error creating quiz question in DB",
				"error", result.Error,
				"quiz_id", quiz.QuizID.String(),
				"position", i,
			)
			return fmt.Errorf("gormQuizRepository.CreateQuiz: %w", result.Error)
		}
	}
	return nil
}

func (r *gormQuizRepository) FindByLesson(ctx context.Context, db *gorm.DB, lessonID uuid.UUID) (*model.Quiz, error) {
	logger := middleware.GetLogger(ctx)
	var quiz model.Quiz
	result := db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("lesson_id = ?", lessonID).
		First(&quiz)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding quiz by lesson in DB", "error", result.Error, "lesson_id", lessonID.String())
		return nil, fmt.Errorf("gormQuizRepository.FindByLesson: %w", result.Error)
	}
	return &quiz, nil
}

func (r *gormQuizRepository) CreateCompletion(ctx context.Context, db *gorm.DB, completion *model.QuizCompletion) error {
	logger := middleware.GetLogger(ctx)
	if completion.CompletionID == uuid.Nil {
		completion.CompletionID = uuid.New()
	}
	// 同一 (user, lesson) の2回目以降の修了は黙って無視する
	result := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
		DoNothing: true,
	}).Create(completion)
	if result.Error != nil {
		logger.Error("Error creating quiz completion in DB",
			"error", result.Error,
			"user_id", completion.UserID.String(),
			"lesson_id", completion.LessonID.String(),
		)
		return fmt.Errorf("gormQuizRepository.CreateCompletion: %w", result.Error)
	}
	return nil
}

func (r *gormQuizRepository) HasCompletion(ctx context.Context, db *gorm.DB, userID, lessonID uuid.UUID) (bool, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	result := db.WithContext(ctx).Model(&model.QuizCompletion{}).
		Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		Count(&count)
	if result.Error != nil {
		logger.Error("Error counting quiz completions in DB", "error", result.Error, "user_id", userID.String())
		return false, fmt.Errorf("gormQuizRepository.HasCompletion: %w", result.Error)
	}
	return count > 0, nil
}
