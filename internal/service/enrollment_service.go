//go:generate mockery --name EnrollmentService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"

	"go_course_keep/internal/middleware"
	"go_course_keep/internal/model"
	"go_course_keep/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EnrollmentService は受講登録と進捗の読み取りを担います。
//
// 登録は「受講行のINSERT」「進捗行のINSERT」の2段階で、トランザクション
// では囲まない。1段目の後に落ちると進捗行のない受講が残るが、進捗読み取り
// 側が欠損を検出して作り直す (lazy heal) ので自己修復する。
// 二重登録はDBの複合ユニーク制約が弾き、呼び出し側には成功と同等に映る。
type EnrollmentService interface {
	Enroll(ctx context.Context, userID uuid.UUID, courseID uuid.UUID) (*model.Enrollment, error)
	GetProgress(ctx context.Context, userID, courseID uuid.UUID) (*model.ProgressView, error)
	ListEnrollments(ctx context.Context, userID uuid.UUID) ([]*model.Enrollment, error)
}

type enrollmentService struct {
	db             *gorm.DB
	enrollmentRepo repository.EnrollmentRepository
	courseRepo     repository.CourseRepository
}

func NewEnrollmentService(db *gorm.DB, enrollmentRepo repository.EnrollmentRepository, courseRepo repository.CourseRepository) EnrollmentService {
	return &enrollmentService{db: db, enrollmentRepo: enrollmentRepo, courseRepo: courseRepo}
}

func (s *enrollmentService) Enroll(ctx context.Context, userID uuid.UUID, courseID uuid.UUID) (*model.Enrollment, error) {
	logger := middleware.GetLogger(ctx)

	course, err := s.courseRepo.FindByID(ctx, s.db, courseID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "コースが見つかりません。", "", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "受講登録に失敗しました。", "", err)
	}
	if course.Status != model.CourseStatusPublished {
		return nil, model.NewAppError("FORBIDDEN", "このコースはまだ公開されていません。", "", model.ErrForbidden)
	}

	// 既存の受講を先に確認する。重複の大半はここで拾い、確認とINSERTの
	// 間に滑り込んだ分だけをユニーク制約に任せる
	if _, err := s.enrollmentRepo.FindByUserAndCourse(ctx, s.db, userID, courseID); err == nil {
		logger.Info("Enrollment already exists", "user_id", userID.String(), "course_id", courseID.String())
		return s.healAndReturn(ctx, userID, courseID)
	} else if !errors.Is(err, model.ErrNotFound) {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "受講登録に失敗しました。", "", err)
	}

	enrollment := &model.Enrollment{UserID: userID, CourseID: courseID}
	if err := s.enrollmentRepo.Create(ctx, s.db, enrollment); err != nil {
		if errors.Is(err, model.ErrConflict) {
			// 確認後に別リクエストが先に登録した。成功と同じ扱い
			logger.Info("Enrollment already exists", "user_id", userID.String(), "course_id", courseID.String())
			return s.healAndReturn(ctx, userID, courseID)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "受講登録に失敗しました。", "", err)
	}

	// 2段目: 進捗行。失敗しても登録は成立しており、読み取り側が治す
	progress := &model.ProgressRecord{EnrollmentID: enrollment.EnrollmentID}
	if err := s.enrollmentRepo.CreateProgress(ctx, s.db, progress); err != nil && !errors.Is(err, model.ErrConflict) {
		logger.Warn("Failed to create progress record on enroll, will lazy-heal on read",
			"error", err,
			"enrollment_id", enrollment.EnrollmentID.String(),
		)
	}

	// 表示用カウンタの加算はベストエフォート
	if err := s.courseRepo.Update(ctx, s.db, courseID, map[string]interface{}{
		"student_count": gorm.Expr("student_count + 1"),
	}); err != nil {
		logger.Warn("Failed to bump student count", "error", err, "course_id", courseID.String())
	}

	logger.Info("Enrolled", "user_id", userID.String(), "course_id", courseID.String())
	return s.enrollmentRepo.FindByUserAndCourse(ctx, s.db, userID, courseID)
}

func (s *enrollmentService) GetProgress(ctx context.Context, userID, courseID uuid.UUID) (*model.ProgressView, error) {
	enrollment, err := s.healAndReturn(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if enrollment.Progress == nil {
		return &model.ProgressView{}, nil
	}
	return &model.ProgressView{
		Percent:   enrollment.Progress.Percent,
		Completed: enrollment.Progress.Completed,
	}, nil
}

func (s *enrollmentService) ListEnrollments(ctx context.Context, userID uuid.UUID) ([]*model.Enrollment, error) {
	enrollments, err := s.enrollmentRepo.ListByUser(ctx, s.db, userID)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "受講一覧の取得に失敗しました。", "", err)
	}
	return enrollments, nil
}

// healAndReturn は受講行を取得し、進捗行が欠けていれば作り直してから
// 返します (2段階登録の途中で落ちた痕跡の修復)。
func (s *enrollmentService) healAndReturn(ctx context.Context, userID, courseID uuid.UUID) (*model.Enrollment, error) {
	logger := middleware.GetLogger(ctx)

	enrollment, err := s.enrollmentRepo.FindByUserAndCourse(ctx, s.db, userID, courseID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "受講登録が見つかりません。", "", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "受講情報の取得に失敗しました。", "", err)
	}

	if enrollment.Progress == nil {
		logger.Info("Healing missing progress record", "enrollment_id", enrollment.EnrollmentID.String())
		progress := &model.ProgressRecord{EnrollmentID: enrollment.EnrollmentID}
		if err := s.enrollmentRepo.CreateProgress(ctx, s.db, progress); err != nil && !errors.Is(err, model.ErrConflict) {
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "受講情報の取得に失敗しました。", "", err)
		}
		return s.enrollmentRepo.FindByUserAndCourse(ctx, s.db, userID, courseID)
	}
	return enrollment, nil
}
