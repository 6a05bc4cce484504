package handlers

import (
	"log/slog"
	"net/http"

	"go_course_keep/internal/model"
	"go_course_keep/internal/service"
	"go_course_keep/internal/webutil"
)

type LessonHandler struct {
	service service.SyncService
	logger  *slog.Logger
}

func NewLessonHandler(s service.SyncService, logger *slog.Logger) *LessonHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &LessonHandler{service: s, logger: logger}
}

// SyncLessonsRequest は編集中レッスンリスト全体の保存リクエスト
type SyncLessonsRequest struct {
	Lessons []model.EditableLesson `json:"lessons" validate:"required,dive"`
}

// PutLessons は編集リストを永続状態へ突き合わせるハンドラ。
// 採番された確定IDを書き戻したリストを返すので、クライアントは
// このレスポンスで編集状態を置き換える。
func (h *LessonHandler) PutLessons(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PutLessons"))

	courseID, appErr := parseUUIDParam(r, "course_id")
	if appErr != nil {
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("course_id", courseID.String()))

	var req SyncLessonsRequest
	if appErr := webutil.DecodeAndValidate(r, logger, &req); appErr != nil {
		webutil.HandleError(w, logger, appErr)
		return
	}

	lessons, err := h.service.SyncLessons(r.Context(), nil, courseID, req.Lessons)
	if err != nil {
		logger.Error("Error syncing lessons in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Lessons synced successfully", slog.Int("count", len(lessons)))
	webutil.RespondWithJSON(w, http.StatusOK, SyncLessonsRequest{Lessons: lessons}, logger)
}

// DeleteLesson はタイトル打ち直し確認付きのレッスン即時削除のハンドラ
func (h *LessonHandler) DeleteLesson(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteLesson"))

	lessonID, appErr := parseUUIDParam(r, "lesson_id")
	if appErr != nil {
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("lesson_id", lessonID.String()))

	var req model.DeleteLessonRequest
	if appErr := webutil.DecodeAndValidate(r, logger, &req); appErr != nil {
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := h.service.DeleteLesson(r.Context(), lessonID, &req); err != nil {
		logger.Warn("Lesson delete rejected or failed", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Lesson deleted successfully")
	w.WriteHeader(http.StatusNoContent)
}
