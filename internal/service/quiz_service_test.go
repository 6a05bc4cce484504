package service

import (
	"context"
	"testing"

	"go_course_keep/internal/model"
	"go_course_keep/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDBQuiz() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic("failed to connect database for testing: " + err.Error())
	}
	return db
}

type quizServiceFixture struct {
	service        QuizService
	quizRepo       *mocks.QuizRepository
	lessonRepo     *mocks.LessonRepository
	enrollmentRepo *mocks.EnrollmentRepository
	sessions       QuizSessionStore
}

func newQuizServiceFixture() *quizServiceFixture {
	f := &quizServiceFixture{
		quizRepo:       new(mocks.QuizRepository),
		lessonRepo:     new(mocks.LessonRepository),
		enrollmentRepo: new(mocks.EnrollmentRepository),
		sessions:       NewMemoryQuizSessionStore(),
	}
	f.service = NewQuizService(setupTestDBQuiz(), f.quizRepo, f.lessonRepo, f.enrollmentRepo, f.sessions)
	return f
}

func threeQuestionQuiz(lessonID uuid.UUID) *model.Quiz {
	quizID := uuid.New()
	return &model.Quiz{
		QuizID:     quizID,
		LessonID:   lessonID,
		IsRequired: true,
		Questions: []model.Question{
			{QuestionID: uuid.New(), QuizID: quizID, Position: 0, Text: "Q1", Options: datatypes.NewJSONSlice([]string{"a", "b", "c"}), CorrectIndex: 1},
			{QuestionID: uuid.New(), QuizID: quizID, Position: 1, Text: "Q2", Options: datatypes.NewJSONSlice([]string{"x", "y"}), CorrectIndex: 0},
			{QuestionID: uuid.New(), QuizID: quizID, Position: 2, Text: "Q3", Options: datatypes.NewJSONSlice([]string{"p", "q", "r"}), CorrectIndex: 2},
		},
	}
}

// --- Test GetState ---
func Test_quizService_GetState(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	lessonID := uuid.New()
	quiz := threeQuestionQuiz(lessonID)

	t.Run("正常系: 初回アクセスは先頭設問のidle状態になる", func(t *testing.T) {
		f := newQuizServiceFixture()
		f.quizRepo.On("FindByLesson", ctx, mock.AnythingOfType("*gorm.DB"), lessonID).Return(quiz, nil).Once()
		f.quizRepo.On("HasCompletion", ctx, mock.AnythingOfType("*gorm.DB"), userID, lessonID).Return(false, nil).Once()

		state, err := f.service.GetState(ctx, userID, lessonID)

		require.NoError(t, err)
		assert.Equal(t, model.QuizStateIdle, state.State)
		assert.Equal(t, 0, state.QuestionIndex)
		assert.Equal(t, 3, state.QuestionCount)
		assert.False(t, state.QuizCompleted)
		assert.Nil(t, state.SelectedOption)
		require.NotNil(t, state.Question)
		assert.Equal(t, "Q1", state.Question.Text)
		f.quizRepo.AssertExpectations(t)
	})

	t.Run("正常系: 修了済みは終端状態で設問を返さない", func(t *testing.T) {
		f := newQuizServiceFixture()
		f.quizRepo.On("FindByLesson", ctx, mock.AnythingOfType("*gorm.DB"), lessonID).Return(quiz, nil).Once()
		f.quizRepo.On("HasCompletion", ctx, mock.AnythingOfType("*gorm.DB"), userID, lessonID).Return(true, nil).Once()

		state, err := f.service.GetState(ctx, userID, lessonID)

		require.NoError(t, err)
		assert.Equal(t, model.QuizStateCompleted, state.State)
		assert.True(t, state.QuizCompleted)
		assert.Equal(t, 3, state.QuestionIndex)
		assert.Nil(t, state.Question)
		f.quizRepo.AssertExpectations(t)
	})

	t.Run("異常系: クイズのないレッスン", func(t *testing.T) {
		f := newQuizServiceFixture()
		f.quizRepo.On("FindByLesson", ctx, mock.AnythingOfType("*gorm.DB"), lessonID).Return(nil, model.ErrNotFound).Once()

		_, err := f.service.GetState(ctx, userID, lessonID)

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

// --- Test SelectOption ---
func Test_quizService_SelectOption(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	lessonID := uuid.New()
	quiz := threeQuestionQuiz(lessonID)

	t.Run("正常系: 選択でanswer_selectedに遷移する", func(t *testing.T) {
		f := newQuizServiceFixture()
		f.quizRepo.On("FindByLesson", ctx, mock.AnythingOfType("*gorm.DB"), lessonID).Return(quiz, nil)
		f.quizRepo.On("HasCompletion", ctx, mock.AnythingOfType("*gorm.DB"), userID, lessonID).Return(false, nil)

		state, err := f.service.SelectOption(ctx, userID, lessonID, 2)

		require.NoError(t, err)
		assert.Equal(t, model.QuizStateAnswerSelected, state.State)
		require.NotNil(t, state.SelectedOption)
		assert.Equal(t, 2, *state.SelectedOption)

		// 選択し直しは何度でもできる
		state, err = f.service.SelectOption(ctx, userID, lessonID, 0)
		require.NoError(t, err)
		assert.Equal(t, 0, *state.SelectedOption)
	})

	t.Run("異常系: 選択肢番号が範囲外", func(t *testing.T) {
		f := newQuizServiceFixture()
		f.quizRepo.On("FindByLesson", ctx, mock.AnythingOfType("*gorm.DB"), lessonID).Return(quiz, nil)
		f.quizRepo.On("HasCompletion", ctx, mock.AnythingOfType("*gorm.DB"), userID, lessonID).Return(false, nil)

		_, err := f.service.SelectOption(ctx, userID, lessonID, 3)
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrInvalidInput)

		_, err = f.service.SelectOption(ctx, userID, lessonID, -1)
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrInvalidInput)
	})

	t.Run("異常系: 修了後の選択は受け付けない", func(t *testing.T) {
		f := newQuizServiceFixture()
		f.quizRepo.On("FindByLesson", ctx, mock.AnythingOfType("*gorm.DB"), lessonID).Return(quiz, nil)
		f.quizRepo.On("HasCompletion", ctx, mock.AnythingOfType("*gorm.DB"), userID, lessonID).Return(true, nil)

		_, err := f.service.SelectOption(ctx, userID, lessonID, 0)
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrConflict)
	})
}

// --- Test SubmitAnswer ---
func Test_quizService_SubmitAnswer(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	lessonID := uuid.New()
	quiz := threeQuestionQuiz(lessonID)

	t.Run("異常系: 未選択での送信は弾く", func(t *testing.T) {
		f := newQuizServiceFixture()
		f.quizRepo.On("FindByLesson", ctx, mock.AnythingOfType("*gorm.DB"), lessonID).Return(quiz, nil)
		f.quizRepo.On("HasCompletion", ctx, mock.AnythingOfType("*gorm.DB"), userID, lessonID).Return(false, nil)

		_, err := f.service.SubmitAnswer(ctx, userID, lessonID)
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrInvalidInput)
	})

	t.Run("正常系: 最終問以外の不正解は同じ設問をidleでやり直す", func(t *testing.T) {
		f := newQuizServiceFixture()
		f.quizRepo.On("FindByLesson", ctx, mock.AnythingOfType("*gorm.DB"), lessonID).Return(quiz, nil)
		f.quizRepo.On("HasCompletion", ctx, mock.AnythingOfType("*gorm.DB"), userID, lessonID).Return(false, nil)

		_, err := f.service.SelectOption(ctx, userID, lessonID, 0) // Q1の正解は1
		require.NoError(t, err)

		resp, err := f.service.SubmitAnswer(ctx, userID, lessonID)
		require.NoError(t, err)
		assert.False(t, resp.IsCorrect)
		assert.Equal(t, 1, resp.CorrectIndex)
		assert.False(t, resp.Completed)
		assert.Equal(t, 0, resp.QuestionIndex) // 同じ設問

		// 選択はクリアされidleへ戻っている
		state, err := f.service.GetState(ctx, userID, lessonID)
		require.NoError(t, err)
		assert.Equal(t, model.QuizStateIdle, state.State)
		assert.Nil(t, state.SelectedOption)
		assert.Equal(t, 0, state.QuestionIndex)
	})

	t.Run("正常系: 正解で次の設問へ進む", func(t *testing.T) {
		f := newQuizServiceFixture()
		f.quizRepo.On("FindByLesson", ctx, mock.AnythingOfType("*gorm.DB"), lessonID).Return(quiz, nil)
		f.quizRepo.On("HasCompletion", ctx, mock.AnythingOfType("*gorm.DB"), userID, lessonID).Return(false, nil)

		_, err := f.service.SelectOption(ctx, userID, lessonID, 1)
		require.NoError(t, err)

		resp, err := f.service.SubmitAnswer(ctx, userID, lessonID)
		require.NoError(t, err)
		assert.True(t, resp.IsCorrect)
		assert.False(t, resp.Completed)
		assert.Equal(t, 1, resp.QuestionIndex)

		state, err := f.service.GetState(ctx, userID, lessonID)
		require.NoError(t, err)
		assert.Equal(t, model.QuizStateIdle, state.State)
		assert.Equal(t, "Q2", state.Question.Text)
	})

	t.Run("正常系: 最終問正解で修了が記録され進捗が返る", func(t *testing.T) {
		f := newQuizServiceFixture()
		courseID := uuid.New()
		f.quizRepo.On("FindByLesson", ctx, mock.AnythingOfType("*gorm.DB"), lessonID).Return(quiz, nil)
		f.quizRepo.On("HasCompletion", ctx, mock.AnythingOfType("*gorm.DB"), userID, lessonID).Return(false, nil)

		// 最終設問から開始するセッションを仕込む
		require.NoError(t, f.sessions.Save(ctx, userID, lessonID, &model.QuizSession{
			QuizID:        quiz.QuizID,
			LessonID:      lessonID,
			QuestionIndex: 2,
			State:         model.QuizStateIdle,
		}))
		_, err := f.service.SelectOption(ctx, userID, lessonID, 2) // Q3の正解は2
		require.NoError(t, err)

		f.quizRepo.On("CreateCompletion", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.QuizCompletion")).
			Run(func(args mock.Arguments) {
				completion := args.Get(2).(*model.QuizCompletion)
				assert.Equal(t, userID, completion.UserID)
				assert.Equal(t, lessonID, completion.LessonID)
				assert.Equal(t, quiz.QuizID, completion.QuizID)
				assert.False(t, completion.CompletedAt.IsZero())
			}).Return(nil).Once()
		f.lessonRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), lessonID).
			Return(&model.Lesson{LessonID: lessonID, CourseID: courseID}, nil).Once()
		f.enrollmentRepo.On("RecomputeProgress", ctx, mock.AnythingOfType("*gorm.DB"), userID, courseID).
			Return(&model.ProgressRecord{Percent: 100, Completed: true}, nil).Once()

		resp, err := f.service.SubmitAnswer(ctx, userID, lessonID)

		require.NoError(t, err)
		assert.True(t, resp.IsCorrect)
		assert.True(t, resp.Completed)
		require.NotNil(t, resp.Progress)
		assert.Equal(t, 100, resp.Progress.Percent)
		assert.True(t, resp.Progress.Completed)

		// セッションは破棄されている
		session, serr := f.sessions.Get(ctx, userID, lessonID)
		require.NoError(t, serr)
		assert.Nil(t, session)

		f.quizRepo.AssertExpectations(t)
		f.lessonRepo.AssertExpectations(t)
		f.enrollmentRepo.AssertExpectations(t)
	})

	t.Run("正常系: 最終問は不正解でも送信で修了が記録される", func(t *testing.T) {
		f := newQuizServiceFixture()
		courseID := uuid.New()
		f.quizRepo.On("FindByLesson", ctx, mock.AnythingOfType("*gorm.DB"), lessonID).Return(quiz, nil)
		f.quizRepo.On("HasCompletion", ctx, mock.AnythingOfType("*gorm.DB"), userID, lessonID).Return(false, nil)

		require.NoError(t, f.sessions.Save(ctx, userID, lessonID, &model.QuizSession{
			QuizID:        quiz.QuizID,
			LessonID:      lessonID,
			QuestionIndex: 2,
			State:         model.QuizStateIdle,
		}))
		_, err := f.service.SelectOption(ctx, userID, lessonID, 0) // Q3の正解は2

		require.NoError(t, err)

		f.quizRepo.On("CreateCompletion", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.QuizCompletion")).
			Return(nil).Once()
		f.lessonRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), lessonID).
			Return(&model.Lesson{LessonID: lessonID, CourseID: courseID}, nil).Once()
		f.enrollmentRepo.On("RecomputeProgress", ctx, mock.AnythingOfType("*gorm.DB"), userID, courseID).
			Return(&model.ProgressRecord{Percent: 100, Completed: true}, nil).Once()

		resp, err := f.service.SubmitAnswer(ctx, userID, lessonID)

		require.NoError(t, err)
		// 正誤は表示用フィードバックに留まり、修了の成立は左右しない
		assert.False(t, resp.IsCorrect)
		assert.Equal(t, 2, resp.CorrectIndex)
		assert.True(t, resp.Completed)
		assert.Equal(t, 3, resp.QuestionIndex)

		session, serr := f.sessions.Get(ctx, userID, lessonID)
		require.NoError(t, serr)
		assert.Nil(t, session)

		f.quizRepo.AssertExpectations(t)
		f.enrollmentRepo.AssertExpectations(t)
	})

	t.Run("正常系: 未受講なら進捗なしで完走できる", func(t *testing.T) {
		f := newQuizServiceFixture()
		courseID := uuid.New()
		f.quizRepo.On("FindByLesson", ctx, mock.AnythingOfType("*gorm.DB"), lessonID).Return(quiz, nil)
		f.quizRepo.On("HasCompletion", ctx, mock.AnythingOfType("*gorm.DB"), userID, lessonID).Return(false, nil)

		require.NoError(t, f.sessions.Save(ctx, userID, lessonID, &model.QuizSession{
			QuizID:        quiz.QuizID,
			LessonID:      lessonID,
			QuestionIndex: 2,
			State:         model.QuizStateIdle,
		}))
		_, err := f.service.SelectOption(ctx, userID, lessonID, 2)
		require.NoError(t, err)

		f.quizRepo.On("CreateCompletion", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.QuizCompletion")).
			Return(nil).Once()
		f.lessonRepo.On("FindByID", ctx, mock.AnythingOfType("*gorm.DB"), lessonID).
			Return(&model.Lesson{LessonID: lessonID, CourseID: courseID}, nil).Once()
		// 受講登録が無い場合は黙ってスキップされる
		f.enrollmentRepo.On("RecomputeProgress", ctx, mock.AnythingOfType("*gorm.DB"), userID, courseID).
			Return(nil, model.ErrNotFound).Once()

		resp, err := f.service.SubmitAnswer(ctx, userID, lessonID)

		require.NoError(t, err)
		assert.True(t, resp.Completed)
		assert.Nil(t, resp.Progress)
		f.enrollmentRepo.AssertExpectations(t)
	})

	t.Run("異常系: 修了済みの再送信は弾く", func(t *testing.T) {
		f := newQuizServiceFixture()
		f.quizRepo.On("FindByLesson", ctx, mock.AnythingOfType("*gorm.DB"), lessonID).Return(quiz, nil)
		f.quizRepo.On("HasCompletion", ctx, mock.AnythingOfType("*gorm.DB"), userID, lessonID).Return(true, nil)

		_, err := f.service.SubmitAnswer(ctx, userID, lessonID)
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrConflict)
		f.quizRepo.AssertNotCalled(t, "CreateCompletion", mock.Anything, mock.Anything, mock.Anything)
	})
}

// --- Test CanAdvance ---
func Test_quizService_CanAdvance(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	lessonID := uuid.New()

	tests := []struct {
		name      string
		setupMock func(m *mocks.QuizRepository)
		want      bool
	}{
		{
			name: "クイズの無いレッスンは常に進める",
			setupMock: func(m *mocks.QuizRepository) {
				m.On("FindByLesson", ctx, mock.AnythingOfType("*gorm.DB"), lessonID).
					Return(nil, model.ErrNotFound).Once()
			},
			want: true,
		},
		{
			name: "任意クイズは未修了でも進める",
			setupMock: func(m *mocks.QuizRepository) {
				quiz := threeQuestionQuiz(lessonID)
				quiz.IsRequired = false
				m.On("FindByLesson", ctx, mock.AnythingOfType("*gorm.DB"), lessonID).
					Return(quiz, nil).Once()
			},
			want: true,
		},
		{
			name: "必須クイズが未修了なら進めない",
			setupMock: func(m *mocks.QuizRepository) {
				m.On("FindByLesson", ctx, mock.AnythingOfType("*gorm.DB"), lessonID).
					Return(threeQuestionQuiz(lessonID), nil).Once()
				m.On("HasCompletion", ctx, mock.AnythingOfType("*gorm.DB"), userID, lessonID).
					Return(false, nil).Once()
			},
			want: false,
		},
		{
			name: "必須クイズを修了していれば進める",
			setupMock: func(m *mocks.QuizRepository) {
				m.On("FindByLesson", ctx, mock.AnythingOfType("*gorm.DB"), lessonID).
					Return(threeQuestionQuiz(lessonID), nil).Once()
				m.On("HasCompletion", ctx, mock.AnythingOfType("*gorm.DB"), userID, lessonID).
					Return(true, nil).Once()
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newQuizServiceFixture()
			if tt.setupMock != nil {
				tt.setupMock(f.quizRepo)
			}

			got, err := f.service.CanAdvance(ctx, userID, lessonID)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			f.quizRepo.AssertExpectations(t)
		})
	}
}

// --- Test CreateQuiz ---
func Test_quizService_CreateQuiz(t *testing.T) {
	ctx := context.Background()
	lessonID := uuid.New()

	t.Run("正常系: クイズと設問が作成される", func(t *testing.T) {
		f := newQuizServiceFixture()
		req := &model.CreateQuizRequest{
			IsRequired: true,
			Questions: []model.CreateQuestionRequest{
				{Text: "Q1", Options: []string{"a", "b"}, CorrectIndex: 1},
			},
		}

		f.quizRepo.On("CreateQuiz", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.Quiz"), mock.AnythingOfType("[]*model.Question")).
			Run(func(args mock.Arguments) {
				quiz := args.Get(2).(*model.Quiz)
				questions := args.Get(3).([]*model.Question)
				assert.Equal(t, lessonID, quiz.LessonID)
				assert.True(t, quiz.IsRequired)
				require.Len(t, questions, 1)
				assert.Equal(t, "Q1", questions[0].Text)
			}).Return(nil).Once()
		f.quizRepo.On("FindByLesson", ctx, mock.AnythingOfType("*gorm.DB"), lessonID).
			Return(threeQuestionQuiz(lessonID), nil).Once()

		quiz, err := f.service.CreateQuiz(ctx, lessonID, req)

		require.NoError(t, err)
		require.NotNil(t, quiz)
		f.quizRepo.AssertExpectations(t)
	})

	t.Run("異常系: 正解インデックスが選択肢の範囲外", func(t *testing.T) {
		f := newQuizServiceFixture()
		req := &model.CreateQuizRequest{
			Questions: []model.CreateQuestionRequest{
				{Text: "Q1", Options: []string{"a", "b"}, CorrectIndex: 2},
			},
		}

		_, err := f.service.CreateQuiz(ctx, lessonID, req)

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrInvalidInput)
		f.quizRepo.AssertNotCalled(t, "CreateQuiz", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("異常系: 既にクイズのあるレッスン", func(t *testing.T) {
		f := newQuizServiceFixture()
		req := &model.CreateQuizRequest{
			Questions: []model.CreateQuestionRequest{
				{Text: "Q1", Options: []string{"a", "b"}, CorrectIndex: 0},
			},
		}

		f.quizRepo.On("CreateQuiz", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.Quiz"), mock.AnythingOfType("[]*model.Question")).
			Return(model.ErrConflict).Once()

		_, err := f.service.CreateQuiz(ctx, lessonID, req)

		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrConflict)
		f.quizRepo.AssertExpectations(t)
	})
}
