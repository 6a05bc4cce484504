//go:generate mockery --name QuizService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"
	"time"

	"go_course_keep/internal/middleware"
	"go_course_keep/internal/model"
	"go_course_keep/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QuizService はレッスンプレイヤーのクイズ実行を担います。
//
// 状態機械: idle -> answer_selected -> submitting -> idle (不正解・最終問以外)
//                                                  | 次の設問 (正解)
//                                                  | completed (最終問は送信で終端)
//
// 修了は (user, lesson) ごとに高々1回だけ記録される。2回目以降の
// 完走では記録も進捗再計算も走らない。
type QuizService interface {
	GetState(ctx context.Context, userID, lessonID uuid.UUID) (*model.QuizStateResponse, error)
	SelectOption(ctx context.Context, userID, lessonID uuid.UUID, optionIndex int) (*model.QuizStateResponse, error)
	SubmitAnswer(ctx context.Context, userID, lessonID uuid.UUID) (*model.SubmitAnswerResponse, error)
	// CanAdvance は「次のレッスンへ」ボタンの活性判定です。
	// 必須クイズが未修了の間だけ false を返す。
	CanAdvance(ctx context.Context, userID, lessonID uuid.UUID) (bool, error)
	CreateQuiz(ctx context.Context, lessonID uuid.UUID, req *model.CreateQuizRequest) (*model.Quiz, error)
}

type quizService struct {
	db             *gorm.DB
	quizRepo       repository.QuizRepository
	lessonRepo     repository.LessonRepository
	enrollmentRepo repository.EnrollmentRepository
	sessions       QuizSessionStore
}

func NewQuizService(
	db *gorm.DB,
	quizRepo repository.QuizRepository,
	lessonRepo repository.LessonRepository,
	enrollmentRepo repository.EnrollmentRepository,
	sessions QuizSessionStore,
) QuizService {
	return &quizService{
		db:             db,
		quizRepo:       quizRepo,
		lessonRepo:     lessonRepo,
		enrollmentRepo: enrollmentRepo,
		sessions:       sessions,
	}
}

func (s *quizService) GetState(ctx context.Context, userID, lessonID uuid.UUID) (*model.QuizStateResponse, error) {
	quiz, err := s.findQuiz(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	completed, err := s.hasCompletion(ctx, userID, lessonID)
	if err != nil {
		return nil, err
	}
	if completed {
		// 終端。設問は返さない (全問disabled表示)
		return &model.QuizStateResponse{
			QuizID:        quiz.QuizID,
			IsRequired:    quiz.IsRequired,
			QuizCompleted: true,
			State:         model.QuizStateCompleted,
			QuestionIndex: len(quiz.Questions),
			QuestionCount: len(quiz.Questions),
		}, nil
	}

	session, err := s.loadOrInitSession(ctx, userID, lessonID, quiz)
	if err != nil {
		return nil, err
	}
	return s.stateResponse(quiz, session), nil
}

func (s *quizService) SelectOption(ctx context.Context, userID, lessonID uuid.UUID, optionIndex int) (*model.QuizStateResponse, error) {
	quiz, err := s.findQuiz(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	completed, err := s.hasCompletion(ctx, userID, lessonID)
	if err != nil {
		return nil, err
	}
	if completed {
		// 修了後の選択は受け付けない
		return nil, model.NewAppError("CONFLICT", "このクイズは既に完了しています。", "", model.ErrConflict)
	}

	session, err := s.loadOrInitSession(ctx, userID, lessonID, quiz)
	if err != nil {
		return nil, err
	}
	if session.State == model.QuizStateSubmitting {
		return nil, model.NewAppError("CONFLICT", "回答を送信中です。", "", model.ErrConflict)
	}

	question := quiz.Questions[session.QuestionIndex]
	if optionIndex < 0 || optionIndex >= len(question.Options) {
		return nil, model.NewAppError("INVALID_INPUT", "選択肢の番号が不正です。", "option_index", model.ErrInvalidInput)
	}

	// 選択し直しは何度でもできる (idle/answer_selected のどちらからでも)
	session.SelectedOption = &optionIndex
	session.State = model.QuizStateAnswerSelected
	if err := s.sessions.Save(ctx, userID, lessonID, session); err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "クイズ状態の保存に失敗しました。", "", err)
	}
	return s.stateResponse(quiz, session), nil
}

func (s *quizService) SubmitAnswer(ctx context.Context, userID, lessonID uuid.UUID) (*model.SubmitAnswerResponse, error) {
	logger := middleware.GetLogger(ctx)

	quiz, err := s.findQuiz(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	completed, err := s.hasCompletion(ctx, userID, lessonID)
	if err != nil {
		return nil, err
	}
	if completed {
		return nil, model.NewAppError("CONFLICT", "このクイズは既に完了しています。", "", model.ErrConflict)
	}

	session, err := s.loadOrInitSession(ctx, userID, lessonID, quiz)
	if err != nil {
		return nil, err
	}
	if session.State != model.QuizStateAnswerSelected || session.SelectedOption == nil {
		// 未選択での送信はUI側でdisableされているが、二重送信などで来うる
		return nil, model.NewAppError("INVALID_INPUT", "選択肢が選ばれていません。", "", model.ErrInvalidInput)
	}

	// 送信中状態を先に永続化して二重送信を弾く
	session.State = model.QuizStateSubmitting
	if err := s.sessions.Save(ctx, userID, lessonID, session); err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "クイズ状態の保存に失敗しました。", "", err)
	}

	question := quiz.Questions[session.QuestionIndex]
	correct := *session.SelectedOption == question.CorrectIndex

	nextIndex := session.QuestionIndex + 1
	if nextIndex < len(quiz.Questions) {
		if !correct {
			// 同じ設問をやり直し。選択はクリアして idle へ戻す
			session.SelectedOption = nil
			session.State = model.QuizStateIdle
			if err := s.sessions.Save(ctx, userID, lessonID, session); err != nil {
				return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "クイズ状態の保存に失敗しました。", "", err)
			}
			return &model.SubmitAnswerResponse{
				IsCorrect:     false,
				CorrectIndex:  question.CorrectIndex,
				QuestionIndex: session.QuestionIndex,
			}, nil
		}
		session.QuestionIndex = nextIndex
		session.SelectedOption = nil
		session.State = model.QuizStateIdle
		if err := s.sessions.Save(ctx, userID, lessonID, session); err != nil {
			return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "クイズ状態の保存に失敗しました。", "", err)
		}
		return &model.SubmitAnswerResponse{
			IsCorrect:     true,
			CorrectIndex:  question.CorrectIndex,
			QuestionIndex: nextIndex,
		}, nil
	}

	// 最終問は正誤によらず送信で完走。IsCorrect は表示用フィードバックに
	// 留まる。修了記録は一意制約付きの冪等INSERT
	completion := &model.QuizCompletion{
		UserID:      userID,
		LessonID:    lessonID,
		QuizID:      quiz.QuizID,
		CompletedAt: time.Now(),
	}
	if err := s.quizRepo.CreateCompletion(ctx, s.db, completion); err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "修了の記録に失敗しました。", "", err)
	}

	if err := s.sessions.Delete(ctx, userID, lessonID); err != nil {
		logger.Warn("Failed to delete quiz session after completion", "error", err, "user_id", userID.String())
	}

	resp := &model.SubmitAnswerResponse{
		IsCorrect:     correct,
		CorrectIndex:  question.CorrectIndex,
		Completed:     true,
		QuestionIndex: len(quiz.Questions),
	}

	// 進捗はストア側で再計算する。未受講 (登録なし) なら黙ってスキップ
	lesson, err := s.lessonRepo.FindByID(ctx, s.db, lessonID)
	if err != nil {
		logger.Warn("Failed to resolve lesson for progress recompute", "error", err, "lesson_id", lessonID.String())
		return resp, nil
	}
	progress, err := s.enrollmentRepo.RecomputeProgress(ctx, s.db, userID, lesson.CourseID)
	if err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			logger.Warn("Failed to recompute progress", "error", err, "user_id", userID.String(), "course_id", lesson.CourseID.String())
		}
		return resp, nil
	}
	resp.Progress = &model.ProgressView{Percent: progress.Percent, Completed: progress.Completed}
	return resp, nil
}

func (s *quizService) CanAdvance(ctx context.Context, userID, lessonID uuid.UUID) (bool, error) {
	quiz, err := s.quizRepo.FindByLesson(ctx, s.db, lessonID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			// クイズのないレッスンは常に先へ進める
			return true, nil
		}
		return false, model.NewAppError("INTERNAL_SERVER_ERROR", "クイズの取得に失敗しました。", "", err)
	}
	if !quiz.IsRequired {
		return true, nil
	}
	completed, err := s.hasCompletion(ctx, userID, lessonID)
	if err != nil {
		return false, err
	}
	return completed, nil
}

func (s *quizService) CreateQuiz(ctx context.Context, lessonID uuid.UUID, req *model.CreateQuizRequest) (*model.Quiz, error) {
	logger := middleware.GetLogger(ctx)

	for _, q := range req.Questions {
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			return nil, model.NewAppError("INVALID_INPUT", "正解の選択肢番号が範囲外です。", "correct_index", model.ErrInvalidInput)
		}
	}

	quiz := &model.Quiz{LessonID: lessonID, IsRequired: req.IsRequired}
	questions := make([]*model.Question, 0, len(req.Questions))
	for _, q := range req.Questions {
		questions = append(questions, &model.Question{
			Text:         q.Text,
			Options:      q.Options,
			CorrectIndex: q.CorrectIndex,
		})
	}

	if err := s.quizRepo.CreateQuiz(ctx, s.db, quiz, questions); err != nil {
		if errors.Is(err, model.ErrConflict) {
			return nil, model.NewAppError("CONFLICT", "このレッスンには既にクイズがあります。", "", model.ErrConflict)
		}
		logger.Error("Failed to create quiz", "error", err, "lesson_id", lessonID.String())
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "クイズの作成に失敗しました。", "", err)
	}
	return s.findQuiz(ctx, lessonID)
}

func (s *quizService) findQuiz(ctx context.Context, lessonID uuid.UUID) (*model.Quiz, error) {
	quiz, err := s.quizRepo.FindByLesson(ctx, s.db, lessonID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "このレッスンにクイズはありません。", "", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "クイズの取得に失敗しました。", "", err)
	}
	if len(quiz.Questions) == 0 {
		return nil, model.NewAppError("NOT_FOUND", "このクイズには設問がありません。", "", model.ErrNotFound)
	}
	return quiz, nil
}

func (s *quizService) hasCompletion(ctx context.Context, userID, lessonID uuid.UUID) (bool, error) {
	completed, err := s.quizRepo.HasCompletion(ctx, s.db, userID, lessonID)
	if err != nil {
		return false, model.NewAppError("INTERNAL_SERVER_ERROR", "修了状態の取得に失敗しました。", "", err)
	}
	return completed, nil
}

// loadOrInitSession はセッションを読み、無ければ先頭設問の idle 状態を
// 新規に作ります。範囲外に壊れたセッションも作り直す。
func (s *quizService) loadOrInitSession(ctx context.Context, userID, lessonID uuid.UUID, quiz *model.Quiz) (*model.QuizSession, error) {
	session, err := s.sessions.Get(ctx, userID, lessonID)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "クイズ状態の取得に失敗しました。", "", err)
	}
	if session != nil && session.QuizID == quiz.QuizID &&
		session.QuestionIndex >= 0 && session.QuestionIndex < len(quiz.Questions) {
		return session, nil
	}
	session = &model.QuizSession{
		QuizID:   quiz.QuizID,
		LessonID: lessonID,
		State:    model.QuizStateIdle,
	}
	if err := s.sessions.Save(ctx, userID, lessonID, session); err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "クイズ状態の保存に失敗しました。", "", err)
	}
	return session, nil
}

func (s *quizService) stateResponse(quiz *model.Quiz, session *model.QuizSession) *model.QuizStateResponse {
	q := quiz.Questions[session.QuestionIndex]
	return &model.QuizStateResponse{
		QuizID:         quiz.QuizID,
		IsRequired:     quiz.IsRequired,
		State:          session.State,
		QuestionIndex:  session.QuestionIndex,
		QuestionCount:  len(quiz.Questions),
		SelectedOption: session.SelectedOption,
		Question: &model.QuestionView{
			QuestionID: q.QuestionID,
			Position:   q.Position,
			Text:       q.Text,
			Options:    q.Options,
		},
	}
}
