package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"go_course_keep/internal/middleware"
	"go_course_keep/internal/model"
	"go_course_keep/internal/repository"
	"go_course_keep/internal/service"
	"go_course_keep/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type CourseHandler struct {
	service service.CourseService
	logger  *slog.Logger
}

func NewCourseHandler(s service.CourseService, logger *slog.Logger) *CourseHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CourseHandler{service: s, logger: logger}
}

// PostCourse はオーサリング画面の最終送信 (コース作成) のハンドラ
func (h *CourseHandler) PostCourse(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostCourse"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		appErr := model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))
	deviceID := middleware.GetDeviceIDFromContext(r.Context())

	var req model.CreateCourseRequest
	if appErr := webutil.DecodeAndValidate(r, logger, &req); appErr != nil {
		webutil.HandleError(w, logger, appErr)
		return
	}

	course, err := h.service.Create(r.Context(), userID, deviceID, &req)
	if err != nil {
		logger.Error("Error creating course in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Course created successfully", slog.String("course_id", course.CourseID.String()))
	webutil.RespondWithJSON(w, http.StatusCreated, course, logger)
}

// GetCourse はコース詳細取得のハンドラ
func (h *CourseHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetCourse"))

	courseID, appErr := parseUUIDParam(r, "course_id")
	if appErr != nil {
		webutil.HandleError(w, logger, appErr)
		return
	}

	course, err := h.service.GetByID(r.Context(), courseID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Course not found", slog.String("course_id", courseID.String()))
		} else {
			logger.Error("Error getting course from service", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, course, logger)
}

// GetCourseBySlug はスラグによるコース詳細取得のハンドラ
func (h *CourseHandler) GetCourseBySlug(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetCourseBySlug"))

	slug := chi.URLParam(r, "slug")
	if slug == "" {
		appErr := model.NewAppError("INVALID_URL_PARAM", "スラグが指定されていません。", "slug", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	course, err := h.service.GetBySlug(r.Context(), slug)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, course, logger)
}

// GetCourses はコースカタログ (一覧) のハンドラ
func (h *CourseHandler) GetCourses(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetCourses"))

	q := r.URL.Query()
	filter := repository.CourseFilter{
		PublishedOnly: q.Get("include_drafts") != "true",
		Category:      q.Get("category"),
		FeaturedOnly:  q.Get("featured") == "true",
	}
	if limitStr := q.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			filter.Limit = limit
		}
	}
	if offsetStr := q.Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil && offset >= 0 {
			filter.Offset = offset
		}
	}

	courses, err := h.service.List(r.Context(), filter)
	if err != nil {
		logger.Error("Error listing courses in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	if courses == nil {
		courses = []*model.Course{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, courses, logger)
}

// PatchCourse はコースの部分更新のハンドラ
func (h *CourseHandler) PatchCourse(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PatchCourse"))

	courseID, appErr := parseUUIDParam(r, "course_id")
	if appErr != nil {
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("course_id", courseID.String()))

	var req model.UpdateCourseRequest
	if appErr := webutil.DecodeAndValidate(r, logger, &req); appErr != nil {
		webutil.HandleError(w, logger, appErr)
		return
	}

	course, err := h.service.Update(r.Context(), courseID, &req)
	if err != nil {
		logger.Error("Error updating course in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Course updated successfully")
	webutil.RespondWithJSON(w, http.StatusOK, course, logger)
}

// PublishCourse はコース公開のハンドラ
func (h *CourseHandler) PublishCourse(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PublishCourse"))

	courseID, appErr := parseUUIDParam(r, "course_id")
	if appErr != nil {
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := h.service.Publish(r.Context(), courseID); err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Course published successfully", slog.String("course_id", courseID.String()))
	webutil.RespondWithJSON(w, http.StatusOK, map[string]string{"status": model.CourseStatusPublished}, logger)
}

// DeleteCourse は二要素確認付きのコース削除のハンドラ
func (h *CourseHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteCourse"))

	courseID, appErr := parseUUIDParam(r, "course_id")
	if appErr != nil {
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("course_id", courseID.String()))

	var req model.DeleteCourseRequest
	if appErr := webutil.DecodeAndValidate(r, logger, &req); appErr != nil {
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := h.service.Delete(r.Context(), courseID, &req); err != nil {
		logger.Warn("Course delete rejected or failed", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Course deleted successfully")
	w.WriteHeader(http.StatusNoContent)
}

// GetCourseLessons はコースのレッスンツリーを編集用表現で返すハンドラ
func (h *CourseHandler) GetCourseLessons(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetCourseLessons"))

	courseID, appErr := parseUUIDParam(r, "course_id")
	if appErr != nil {
		webutil.HandleError(w, logger, appErr)
		return
	}

	lessons, err := h.service.GetEditableLessons(r.Context(), courseID)
	if err != nil {
		logger.Error("Error getting editable lessons in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, lessons, logger)
}

// parseUUIDParam はURLパスパラメータをUUIDとして取り出します
func parseUUIDParam(r *http.Request, name string) (uuid.UUID, *model.AppError) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, model.NewAppError("INVALID_URL_PARAM", name+"の形式が正しくありません。", name, model.ErrInvalidInput)
	}
	return id, nil
}
