package service

import (
	"context"
	"errors"
	"testing"

	"go_course_keep/internal/model"
	"go_course_keep/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDBEnrollment() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect database for testing: " + err.Error())
	}
	return db
}

// --- Test Enroll ---
func Test_enrollmentService_Enroll(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBEnrollment()

	userID := uuid.New()
	courseID := uuid.New()
	publishedCourse := &model.Course{
		CourseID: courseID,
		Title:    "Go入門",
		Slug:     "go-basics",
		Status:   model.CourseStatusPublished,
	}
	enrollmentID := uuid.New()
	existing := &model.Enrollment{
		EnrollmentID: enrollmentID,
		UserID:       userID,
		CourseID:     courseID,
		Progress:     &model.ProgressRecord{EnrollmentID: enrollmentID, Percent: 40},
	}

	t.Run("正常系: 受講行と進捗行が作られカウンタが増える", func(t *testing.T) {
		mockEnrollmentRepo := new(mocks.EnrollmentRepository)
		mockCourseRepo := new(mocks.CourseRepository)
		enrollmentService := NewEnrollmentService(db, mockEnrollmentRepo, mockCourseRepo)

		mockCourseRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), courseID).
			Return(publishedCourse, nil).Once()
		// 事前チェックでは未登録
		mockEnrollmentRepo.On("FindByUserAndCourse", ctx, mock.AnythingOfType("*gorm.DB"), userID, courseID).
			Return(nil, model.ErrNotFound).Once()
		mockEnrollmentRepo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.Enrollment")).
			Run(func(args mock.Arguments) {
				enrollment := args.Get(2).(*model.Enrollment)
				assert.Equal(t, userID, enrollment.UserID)
				assert.Equal(t, courseID, enrollment.CourseID)
				enrollment.EnrollmentID = enrollmentID
			}).Return(nil).Once()
		mockEnrollmentRepo.On("CreateProgress", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.ProgressRecord")).
			Run(func(args mock.Arguments) {
				progress := args.Get(2).(*model.ProgressRecord)
				assert.Equal(t, enrollmentID, progress.EnrollmentID)
			}).Return(nil).Once()
		mockCourseRepo.On("Update", ctx, mock.AnythingOfType("*gorm.DB"), courseID, mock.AnythingOfType("map[string]interface {}")).
			Return(nil).Once()
		mockEnrollmentRepo.On("FindByUserAndCourse", ctx, mock.AnythingOfType("*gorm.DB"), userID, courseID).
			Return(existing, nil).Once()

		enrollment, err := enrollmentService.Enroll(ctx, userID, courseID)

		require.NoError(t, err)
		require.NotNil(t, enrollment)
		assert.Equal(t, enrollmentID, enrollment.EnrollmentID)
		mockEnrollmentRepo.AssertExpectations(t)
		mockCourseRepo.AssertExpectations(t)
	})

	t.Run("正常系: 登録済みなら事前チェックで既存行を返す", func(t *testing.T) {
		mockEnrollmentRepo := new(mocks.EnrollmentRepository)
		mockCourseRepo := new(mocks.CourseRepository)
		enrollmentService := NewEnrollmentService(db, mockEnrollmentRepo, mockCourseRepo)

		mockCourseRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), courseID).
			Return(publishedCourse, nil).Once()
		mockEnrollmentRepo.On("FindByUserAndCourse", ctx, mock.AnythingOfType("*gorm.DB"), userID, courseID).
			Return(existing, nil).Twice()

		enrollment, err := enrollmentService.Enroll(ctx, userID, courseID)

		require.NoError(t, err)
		require.NotNil(t, enrollment)
		assert.Equal(t, enrollmentID, enrollment.EnrollmentID)
		// INSERTまで行かず、カウンタの二重加算もしない
		mockEnrollmentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
		mockCourseRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mockEnrollmentRepo.AssertExpectations(t)
	})

	t.Run("正常系: 事前チェック後に割り込まれても成功と同等に既存行を返す", func(t *testing.T) {
		mockEnrollmentRepo := new(mocks.EnrollmentRepository)
		mockCourseRepo := new(mocks.CourseRepository)
		enrollmentService := NewEnrollmentService(db, mockEnrollmentRepo, mockCourseRepo)

		mockCourseRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), courseID).
			Return(publishedCourse, nil).Once()
		mockEnrollmentRepo.On("FindByUserAndCourse", ctx, mock.AnythingOfType("*gorm.DB"), userID, courseID).
			Return(nil, model.ErrNotFound).Once()
		// 複合ユニーク制約に弾かれた
		mockEnrollmentRepo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.Enrollment")).
			Return(model.ErrConflict).Once()
		mockEnrollmentRepo.On("FindByUserAndCourse", ctx, mock.AnythingOfType("*gorm.DB"), userID, courseID).
			Return(existing, nil).Once()

		enrollment, err := enrollmentService.Enroll(ctx, userID, courseID)

		require.NoError(t, err)
		require.NotNil(t, enrollment)
		assert.Equal(t, enrollmentID, enrollment.EnrollmentID)
		// カウンタの二重加算はしない
		mockCourseRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mockEnrollmentRepo.AssertExpectations(t)
	})

	t.Run("正常系: 進捗行の作成失敗でも登録は成立する", func(t *testing.T) {
		mockEnrollmentRepo := new(mocks.EnrollmentRepository)
		mockCourseRepo := new(mocks.CourseRepository)
		enrollmentService := NewEnrollmentService(db, mockEnrollmentRepo, mockCourseRepo)

		mockCourseRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), courseID).
			Return(publishedCourse, nil).Once()
		mockEnrollmentRepo.On("FindByUserAndCourse", ctx, mock.AnythingOfType("*gorm.DB"), userID, courseID).
			Return(nil, model.ErrNotFound).Once()
		mockEnrollmentRepo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.Enrollment")).
			Return(nil).Once()
		// 2段目で落ちる。読み取り側のlazy healに委ねる
		mockEnrollmentRepo.On("CreateProgress", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.ProgressRecord")).
			Return(errors.New("db error on progress")).Once()
		mockCourseRepo.On("Update", ctx, mock.AnythingOfType("*gorm.DB"), courseID, mock.AnythingOfType("map[string]interface {}")).
			Return(nil).Once()
		mockEnrollmentRepo.On("FindByUserAndCourse", ctx, mock.AnythingOfType("*gorm.DB"), userID, courseID).
			Return(existing, nil).Once()

		enrollment, err := enrollmentService.Enroll(ctx, userID, courseID)

		require.NoError(t, err)
		require.NotNil(t, enrollment)
		mockEnrollmentRepo.AssertExpectations(t)
	})

	t.Run("異常系: 未公開コースには登録できない", func(t *testing.T) {
		mockEnrollmentRepo := new(mocks.EnrollmentRepository)
		mockCourseRepo := new(mocks.CourseRepository)
		enrollmentService := NewEnrollmentService(db, mockEnrollmentRepo, mockCourseRepo)

		draftCourse := &model.Course{CourseID: courseID, Title: "下書きコース", Status: model.CourseStatusDraft}
		mockCourseRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), courseID).
			Return(draftCourse, nil).Once()

		_, err := enrollmentService.Enroll(ctx, userID, courseID)

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrForbidden)
		mockEnrollmentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("異常系: コースが存在しない", func(t *testing.T) {
		mockEnrollmentRepo := new(mocks.EnrollmentRepository)
		mockCourseRepo := new(mocks.CourseRepository)
		enrollmentService := NewEnrollmentService(db, mockEnrollmentRepo, mockCourseRepo)

		mockCourseRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), courseID).
			Return(nil, model.ErrNotFound).Once()

		_, err := enrollmentService.Enroll(ctx, userID, courseID)

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

// --- Test GetProgress ---
func Test_enrollmentService_GetProgress(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBEnrollment()

	userID := uuid.New()
	courseID := uuid.New()
	enrollmentID := uuid.New()

	t.Run("正常系: 進捗行があればそのまま返す", func(t *testing.T) {
		mockEnrollmentRepo := new(mocks.EnrollmentRepository)
		mockCourseRepo := new(mocks.CourseRepository)
		enrollmentService := NewEnrollmentService(db, mockEnrollmentRepo, mockCourseRepo)

		enrollment := &model.Enrollment{
			EnrollmentID: enrollmentID,
			UserID:       userID,
			CourseID:     courseID,
			Progress:     &model.ProgressRecord{EnrollmentID: enrollmentID, Percent: 67, Completed: false},
		}
		mockEnrollmentRepo.On("FindByUserAndCourse", ctx, mock.AnythingOfType("*gorm.DB"), userID, courseID).
			Return(enrollment, nil).Once()

		progress, err := enrollmentService.GetProgress(ctx, userID, courseID)

		require.NoError(t, err)
		assert.Equal(t, 67, progress.Percent)
		assert.False(t, progress.Completed)
		mockEnrollmentRepo.AssertExpectations(t)
	})

	t.Run("正常系: 進捗行の欠損は読み取り時に治される (lazy heal)", func(t *testing.T) {
		mockEnrollmentRepo := new(mocks.EnrollmentRepository)
		mockCourseRepo := new(mocks.CourseRepository)
		enrollmentService := NewEnrollmentService(db, mockEnrollmentRepo, mockCourseRepo)

		broken := &model.Enrollment{EnrollmentID: enrollmentID, UserID: userID, CourseID: courseID, Progress: nil}
		healed := &model.Enrollment{
			EnrollmentID: enrollmentID,
			UserID:       userID,
			CourseID:     courseID,
			Progress:     &model.ProgressRecord{EnrollmentID: enrollmentID, Percent: 0},
		}
		mockEnrollmentRepo.On("FindByUserAndCourse", ctx, mock.AnythingOfType("*gorm.DB"), userID, courseID).
			Return(broken, nil).Once()
		mockEnrollmentRepo.On("CreateProgress", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.ProgressRecord")).
			Run(func(args mock.Arguments) {
				progress := args.Get(2).(*model.ProgressRecord)
				assert.Equal(t, enrollmentID, progress.EnrollmentID)
			}).Return(nil).Once()
		mockEnrollmentRepo.On("FindByUserAndCourse", ctx, mock.AnythingOfType("*gorm.DB"), userID, courseID).
			Return(healed, nil).Once()

		progress, err := enrollmentService.GetProgress(ctx, userID, courseID)

		require.NoError(t, err)
		assert.Equal(t, 0, progress.Percent)
		mockEnrollmentRepo.AssertExpectations(t)
	})

	t.Run("正常系: 同時修復の競合 (ErrConflict) は成功扱い", func(t *testing.T) {
		mockEnrollmentRepo := new(mocks.EnrollmentRepository)
		mockCourseRepo := new(mocks.CourseRepository)
		enrollmentService := NewEnrollmentService(db, mockEnrollmentRepo, mockCourseRepo)

		broken := &model.Enrollment{EnrollmentID: enrollmentID, UserID: userID, CourseID: courseID, Progress: nil}
		healed := &model.Enrollment{
			EnrollmentID: enrollmentID,
			UserID:       userID,
			CourseID:     courseID,
			Progress:     &model.ProgressRecord{EnrollmentID: enrollmentID, Percent: 10},
		}
		mockEnrollmentRepo.On("FindByUserAndCourse", ctx, mock.AnythingOfType("*gorm.DB"), userID, courseID).
			Return(broken, nil).Once()
		// 別リクエストが先に治していた
		mockEnrollmentRepo.On("CreateProgress", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.ProgressRecord")).
			Return(model.ErrConflict).Once()
		mockEnrollmentRepo.On("FindByUserAndCourse", ctx, mock.AnythingOfType("*gorm.DB"), userID, courseID).
			Return(healed, nil).Once()

		progress, err := enrollmentService.GetProgress(ctx, userID, courseID)

		require.NoError(t, err)
		assert.Equal(t, 10, progress.Percent)
		mockEnrollmentRepo.AssertExpectations(t)
	})

	t.Run("異常系: 受講登録が無い", func(t *testing.T) {
		mockEnrollmentRepo := new(mocks.EnrollmentRepository)
		mockCourseRepo := new(mocks.CourseRepository)
		enrollmentService := NewEnrollmentService(db, mockEnrollmentRepo, mockCourseRepo)

		mockEnrollmentRepo.On("FindByUserAndCourse", ctx, mock.AnythingOfType("*gorm.DB"), userID, courseID).
			Return(nil, model.ErrNotFound).Once()

		_, err := enrollmentService.GetProgress(ctx, userID, courseID)

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

// --- Test ListEnrollments ---
func Test_enrollmentService_ListEnrollments(t *testing.T) {
	ctx := context.Background()
	db := setupTestDBEnrollment()
	userID := uuid.New()

	t.Run("正常系: 受講一覧を返す", func(t *testing.T) {
		mockEnrollmentRepo := new(mocks.EnrollmentRepository)
		mockCourseRepo := new(mocks.CourseRepository)
		enrollmentService := NewEnrollmentService(db, mockEnrollmentRepo, mockCourseRepo)

		expected := []*model.Enrollment{
			{EnrollmentID: uuid.New(), UserID: userID},
			{EnrollmentID: uuid.New(), UserID: userID},
		}
		mockEnrollmentRepo.On("ListByUser", ctx, mock.AnythingOfType("*gorm.DB"), userID).
			Return(expected, nil).Once()

		enrollments, err := enrollmentService.ListEnrollments(ctx, userID)

		require.NoError(t, err)
		assert.Len(t, enrollments, 2)
		mockEnrollmentRepo.AssertExpectations(t)
	})

	t.Run("異常系: DBエラー", func(t *testing.T) {
		mockEnrollmentRepo := new(mocks.EnrollmentRepository)
		mockCourseRepo := new(mocks.CourseRepository)
		enrollmentService := NewEnrollmentService(db, mockEnrollmentRepo, mockCourseRepo)

		mockEnrollmentRepo.On("ListByUser", ctx, mock.AnythingOfType("*gorm.DB"), userID).
			Return(nil, errors.New("db error")).Once()

		_, err := enrollmentService.ListEnrollments(ctx, userID)

		require.Error(t, err)
	})
}
