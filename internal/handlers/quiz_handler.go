package handlers

import (
	"log/slog"
	"net/http"

	"go_course_keep/internal/middleware"
	"go_course_keep/internal/model"
	"go_course_keep/internal/service"
	"go_course_keep/internal/webutil"

	"github.com/google/uuid"
)

type QuizHandler struct {
	service service.QuizService
	logger  *slog.Logger
}

func NewQuizHandler(s service.QuizService, logger *slog.Logger) *QuizHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &QuizHandler{service: s, logger: logger}
}

// GetQuizState はレッスンプレイヤー表示用のクイズ状態を返すハンドラ
func (h *QuizHandler) GetQuizState(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetQuizState"))

	userID, lessonID, appErr := h.identify(r)
	if appErr != nil {
		webutil.HandleError(w, logger, appErr)
		return
	}

	state, err := h.service.GetState(r.Context(), userID, lessonID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, state, logger)
}

// PostSelectOption は選択肢の選択 (送信前) のハンドラ
func (h *QuizHandler) PostSelectOption(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostSelectOption"))

	userID, lessonID, appErr := h.identify(r)
	if appErr != nil {
		webutil.HandleError(w, logger, appErr)
		return
	}

	var req model.SelectOptionRequest
	if appErr := webutil.DecodeAndValidate(r, logger, &req); appErr != nil {
		webutil.HandleError(w, logger, appErr)
		return
	}

	state, err := h.service.SelectOption(r.Context(), userID, lessonID, *req.OptionIndex)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, state, logger)
}

// PostSubmitAnswer は選択済み回答の採点のハンドラ
func (h *QuizHandler) PostSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostSubmitAnswer"))

	userID, lessonID, appErr := h.identify(r)
	if appErr != nil {
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()), slog.String("lesson_id", lessonID.String()))

	result, err := h.service.SubmitAnswer(r.Context(), userID, lessonID)
	if err != nil {
		logger.Warn("Answer submission rejected or failed", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if result.Completed {
		logger.Info("Quiz completed")
	}
	webutil.RespondWithJSON(w, http.StatusOK, result, logger)
}

// GetCanAdvance は「次のレッスンへ」ボタンの活性判定を返すハンドラ
func (h *QuizHandler) GetCanAdvance(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetCanAdvance"))

	userID, lessonID, appErr := h.identify(r)
	if appErr != nil {
		webutil.HandleError(w, logger, appErr)
		return
	}

	canAdvance, err := h.service.CanAdvance(r.Context(), userID, lessonID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, map[string]bool{"can_advance": canAdvance}, logger)
}

// PostQuiz はオーサリング側のクイズ作成のハンドラ
func (h *QuizHandler) PostQuiz(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostQuiz"))

	lessonID, appErr := parseUUIDParam(r, "lesson_id")
	if appErr != nil {
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("lesson_id", lessonID.String()))

	var req model.CreateQuizRequest
	if appErr := webutil.DecodeAndValidate(r, logger, &req); appErr != nil {
		webutil.HandleError(w, logger, appErr)
		return
	}

	quiz, err := h.service.CreateQuiz(r.Context(), lessonID, &req)
	if err != nil {
		logger.Error("Error creating quiz in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Quiz created successfully", slog.String("quiz_id", quiz.QuizID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, quiz, logger)
}

func (h *QuizHandler) identify(r *http.Request) (userID, lessonID uuid.UUID, appErr *model.AppError) {
	id, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		return uuid.Nil, uuid.Nil, model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
	}
	lessonID, appErr = parseUUIDParam(r, "lesson_id")
	if appErr != nil {
		return uuid.Nil, uuid.Nil, appErr
	}
	return id, lessonID, nil
}
