package service

import (
	"context"
	"testing"

	"go_course_keep/internal/config"
	"go_course_keep/internal/model"
	"go_course_keep/internal/repository"
	repomocks "go_course_keep/internal/repository/mocks"
	"go_course_keep/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDBCourse() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect database for testing: " + err.Error())
	}
	return db
}

type courseServiceFixture struct {
	service      CourseService
	courseRepo   *repomocks.CourseRepository
	lessonRepo   *repomocks.LessonRepository
	syncService  *mocks.SyncService
	draftService *mocks.DraftService
}

func newCourseServiceFixture() *courseServiceFixture {
	cfg := &config.Config{
		App: config.AppConfig{
			AdminDeleteSecret: "super-secret",
			CatalogPageSize:   20,
		},
	}
	f := &courseServiceFixture{
		courseRepo:   new(repomocks.CourseRepository),
		lessonRepo:   new(repomocks.LessonRepository),
		syncService:  new(mocks.SyncService),
		draftService: new(mocks.DraftService),
	}
	f.service = NewCourseService(setupTestDBCourse(), cfg, f.courseRepo, f.lessonRepo, f.syncService, f.draftService)
	return f
}

// --- Test Create ---
func Test_courseService_Create(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	deviceID := "device-abc"

	baseReq := func() *model.CreateCourseRequest {
		return &model.CreateCourseRequest{
			Title: "Go Basics",
			Lessons: []model.EditableLesson{
				{Title: "第1回", VideoURL: "https://example.com/1.mp4"},
			},
		}
	}

	t.Run("正常系: スラグ導出・レッスン保存・下書き破棄まで走る", func(t *testing.T) {
		f := newCourseServiceFixture()
		req := baseReq()

		f.courseRepo.On("CheckSlugExists", ctx, mock.AnythingOfType("*gorm.DB"), "go-basics", (*uuid.UUID)(nil)).
			Return(false, nil).Once()

		var createdID uuid.UUID
		f.courseRepo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.Course")).
			Run(func(args mock.Arguments) {
				course := args.Get(2).(*model.Course)
				assert.Equal(t, "Go Basics", course.Title)
				assert.Equal(t, "go-basics", course.Slug)
				assert.Equal(t, model.CourseStatusDraft, course.Status)
				assert.Equal(t, model.LevelBeginner, course.Level) // 未指定時の既定
				assert.NotEqual(t, uuid.Nil, course.CourseID)
				createdID = course.CourseID
			}).Return(nil).Once()
		f.syncService.On("SyncLessons", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("uuid.UUID"), req.Lessons).
			Return(req.Lessons, nil).Once()
		f.draftService.On("Clear", ctx, userID, deviceID).Return(nil).Once()
		f.courseRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("uuid.UUID")).
			Run(func(args mock.Arguments) {
				assert.Equal(t, createdID, args.Get(2).(uuid.UUID))
			}).Return(&model.Course{CourseID: uuid.New(), Title: "Go Basics", Slug: "go-basics"}, nil).Once()

		course, err := f.service.Create(ctx, userID, deviceID, req)

		require.NoError(t, err)
		require.NotNil(t, course)
		assert.Equal(t, "go-basics", course.Slug)
		f.courseRepo.AssertExpectations(t)
		f.syncService.AssertExpectations(t)
		f.draftService.AssertExpectations(t)
	})

	t.Run("正常系: 明示スラグは導出より優先される", func(t *testing.T) {
		f := newCourseServiceFixture()
		req := baseReq()
		req.Slug = "custom-slug"

		f.courseRepo.On("CheckSlugExists", ctx, mock.AnythingOfType("*gorm.DB"), "custom-slug", (*uuid.UUID)(nil)).
			Return(false, nil).Once()
		f.courseRepo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.Course")).
			Return(nil).Once()
		f.syncService.On("SyncLessons", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("uuid.UUID"), req.Lessons).
			Return(req.Lessons, nil).Once()
		f.draftService.On("Clear", ctx, userID, deviceID).Return(nil).Once()
		f.courseRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("uuid.UUID")).
			Return(&model.Course{Slug: "custom-slug"}, nil).Once()

		course, err := f.service.Create(ctx, userID, deviceID, req)

		require.NoError(t, err)
		assert.Equal(t, "custom-slug", course.Slug)
		f.courseRepo.AssertExpectations(t)
	})

	t.Run("異常系: スラグが導出できない", func(t *testing.T) {
		f := newCourseServiceFixture()
		req := baseReq()
		req.Title = "日本語だけのタイトル"

		_, err := f.service.Create(ctx, userID, deviceID, req)

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrInvalidInput)
		f.courseRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("異常系: スラグ重複", func(t *testing.T) {
		f := newCourseServiceFixture()
		req := baseReq()

		f.courseRepo.On("CheckSlugExists", ctx, mock.AnythingOfType("*gorm.DB"), "go-basics", (*uuid.UUID)(nil)).
			Return(true, nil).Once()

		_, err := f.service.Create(ctx, userID, deviceID, req)

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrConflict)
		f.courseRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("異常系: レッスン保存失敗でもコース行は残る (再送で収束させる)", func(t *testing.T) {
		f := newCourseServiceFixture()
		req := baseReq()

		f.courseRepo.On("CheckSlugExists", ctx, mock.AnythingOfType("*gorm.DB"), "go-basics", (*uuid.UUID)(nil)).
			Return(false, nil).Once()
		f.courseRepo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.Course")).
			Return(nil).Once()
		syncErr := model.NewAppError("TIMEOUT", "保存がタイムアウトしました。", "", model.ErrTimeout)
		f.syncService.On("SyncLessons", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("uuid.UUID"), req.Lessons).
			Return(req.Lessons, syncErr).Once()

		_, err := f.service.Create(ctx, userID, deviceID, req)

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrTimeout)
		// 下書きは消さない (復元して再送できるように)
		f.draftService.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything, mock.Anything)
		f.courseRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})
}

// --- Test Publish ---
func Test_courseService_Publish(t *testing.T) {
	ctx := context.Background()
	courseID := uuid.New()

	t.Run("正常系: レッスンのあるコースは公開できる", func(t *testing.T) {
		f := newCourseServiceFixture()
		f.lessonRepo.On("FindByCourse", ctx, mock.AnythingOfType("*gorm.DB"), courseID).
			Return([]*model.Lesson{{LessonID: uuid.New()}}, nil).Once()
		f.courseRepo.On("Update", ctx, mock.AnythingOfType("*gorm.DB"), courseID,
			map[string]interface{}{"status": model.CourseStatusPublished}).
			Return(nil).Once()

		err := f.service.Publish(ctx, courseID)

		require.NoError(t, err)
		f.courseRepo.AssertExpectations(t)
		f.lessonRepo.AssertExpectations(t)
	})

	t.Run("異常系: レッスンゼロ件では公開できない", func(t *testing.T) {
		f := newCourseServiceFixture()
		f.lessonRepo.On("FindByCourse", ctx, mock.AnythingOfType("*gorm.DB"), courseID).
			Return([]*model.Lesson{}, nil).Once()

		err := f.service.Publish(ctx, courseID)

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrInvalidInput)
		f.courseRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

// --- Test Delete ---
func Test_courseService_Delete(t *testing.T) {
	ctx := context.Background()
	courseID := uuid.New()
	course := &model.Course{CourseID: courseID, Title: "消したいコース", Slug: "to-delete"}

	tests := []struct {
		name      string
		req       *model.DeleteCourseRequest
		setupMock func(m *repomocks.CourseRepository)
		wantErr   error
	}{
		{
			name: "正常系: 名前とシークレットが揃えば削除できる",
			req:  &model.DeleteCourseRequest{ConfirmTitle: "消したいコース", AdminSecret: "super-secret"},
			setupMock: func(m *repomocks.CourseRepository) {
				m.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), courseID).
					Return(course, nil).Once()
				m.On("Delete", ctx, mock.AnythingOfType("*gorm.DB"), courseID).
					Return(nil).Once()
			},
			wantErr: nil,
		},
		{
			// 前後の空白は許容する
			name: "正常系: 打ち直した名前の前後に空白が付いていても削除できる",
			req:  &model.DeleteCourseRequest{ConfirmTitle: " 消したいコース ", AdminSecret: "super-secret"},
			setupMock: func(m *repomocks.CourseRepository) {
				m.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), courseID).
					Return(course, nil).Once()
				m.On("Delete", ctx, mock.AnythingOfType("*gorm.DB"), courseID).
					Return(nil).Once()
			},
			wantErr: nil,
		},
		{
			// 名前チェックが先。シークレットが合っていても名前不一致は弾く
			name: "異常系: コース名の打ち直しが一致しない",
			req:  &model.DeleteCourseRequest{ConfirmTitle: "別のコース", AdminSecret: "super-secret"},
			setupMock: func(m *repomocks.CourseRepository) {
				m.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), courseID).
					Return(course, nil).Once()
			},
			wantErr: model.ErrNameMismatch,
		},
		{
			name: "異常系: シークレットが違う",
			req:  &model.DeleteCourseRequest{ConfirmTitle: "消したいコース", AdminSecret: "wrong-secret"},
			setupMock: func(m *repomocks.CourseRepository) {
				m.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), courseID).
					Return(course, nil).Once()
			},
			wantErr: model.ErrInvalidCredential,
		},
		{
			name: "異常系: コースが存在しない",
			req:  &model.DeleteCourseRequest{ConfirmTitle: "消したいコース", AdminSecret: "super-secret"},
			setupMock: func(m *repomocks.CourseRepository) {
				m.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), courseID).
					Return(nil, model.ErrNotFound).Once()
			},
			wantErr: model.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCourseServiceFixture()
			if tt.setupMock != nil {
				tt.setupMock(f.courseRepo)
			}

			err := f.service.Delete(ctx, courseID, tt.req)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				f.courseRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
			}
			f.courseRepo.AssertExpectations(t)
		})
	}
}

// --- Test List ---
func Test_courseService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: 件数未指定はページサイズ上限に丸められる", func(t *testing.T) {
		f := newCourseServiceFixture()
		f.courseRepo.On("List", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("repository.CourseFilter")).
			Run(func(args mock.Arguments) {
				filter := args.Get(2).(repository.CourseFilter)
				assert.Equal(t, 20, filter.Limit)
			}).Return([]*model.Course{}, nil).Once()

		_, err := f.service.List(ctx, repository.CourseFilter{Limit: 0})
		require.NoError(t, err)
		f.courseRepo.AssertExpectations(t)
	})

	t.Run("正常系: 上限超過の指定も丸められる", func(t *testing.T) {
		f := newCourseServiceFixture()
		f.courseRepo.On("List", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("repository.CourseFilter")).
			Run(func(args mock.Arguments) {
				filter := args.Get(2).(repository.CourseFilter)
				assert.Equal(t, 20, filter.Limit)
			}).Return([]*model.Course{}, nil).Once()

		_, err := f.service.List(ctx, repository.CourseFilter{Limit: 500})
		require.NoError(t, err)
	})

	t.Run("正常系: 範囲内の指定はそのまま", func(t *testing.T) {
		f := newCourseServiceFixture()
		f.courseRepo.On("List", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("repository.CourseFilter")).
			Run(func(args mock.Arguments) {
				filter := args.Get(2).(repository.CourseFilter)
				assert.Equal(t, 5, filter.Limit)
				assert.True(t, filter.PublishedOnly)
			}).Return([]*model.Course{}, nil).Once()

		_, err := f.service.List(ctx, repository.CourseFilter{Limit: 5, PublishedOnly: true})
		require.NoError(t, err)
	})
}

// --- Test GetEditableLessons ---
func Test_courseService_GetEditableLessons(t *testing.T) {
	ctx := context.Background()
	courseID := uuid.New()

	t.Run("正常系: 行が編集用表現で返る", func(t *testing.T) {
		f := newCourseServiceFixture()
		lessonID := uuid.New()
		f.lessonRepo.On("FindByCourse", ctx, mock.AnythingOfType("*gorm.DB"), courseID).
			Return([]*model.Lesson{
				{LessonID: lessonID, CourseID: courseID, StepOrder: 1, Title: "第1回"},
			}, nil).Once()

		lessons, err := f.service.GetEditableLessons(ctx, courseID)

		require.NoError(t, err)
		require.Len(t, lessons, 1)
		require.NotNil(t, lessons[0].LessonID)
		assert.Equal(t, lessonID, *lessons[0].LessonID)
		assert.Equal(t, "第1回", lessons[0].Title)
	})

	t.Run("正常系: レッスンが無ければ空スライス", func(t *testing.T) {
		f := newCourseServiceFixture()
		f.lessonRepo.On("FindByCourse", ctx, mock.AnythingOfType("*gorm.DB"), courseID).
			Return([]*model.Lesson{}, nil).Once()

		lessons, err := f.service.GetEditableLessons(ctx, courseID)

		require.NoError(t, err)
		assert.Empty(t, lessons)
	})
}
