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

type DraftHandler struct {
	service service.DraftService
	logger  *slog.Logger
}

func NewDraftHandler(s service.DraftService, logger *slog.Logger) *DraftHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DraftHandler{service: s, logger: logger}
}

// PutDraft はフォーム入力のたびに呼ばれる下書き保存のハンドラ。
// 端末スロットには同期で書き、サーバー行への反映はデバウンスされる。
func (h *DraftHandler) PutDraft(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PutDraft"))

	userID, deviceID, appErr := h.identify(r)
	if appErr != nil {
		webutil.HandleError(w, logger, appErr)
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	var snapshot model.DraftSnapshot
	if err := webutil.DecodeJSONBody(r, &snapshot); err != nil {
		logger.Warn("Failed to decode draft snapshot", slog.String("error", err.Error()))
		appErr := model.NewAppError("INVALID_REQUEST_BODY", "リクエストボディの形式が正しくありません。", "", model.ErrInvalidInput)
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := h.service.Save(r.Context(), userID, deviceID, &snapshot); err != nil {
		logger.Error("Error saving draft in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetDraftPresence は「下書きから再開」表示の判定フラグを返すハンドラ
func (h *DraftHandler) GetDraftPresence(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetDraftPresence"))

	userID, deviceID, appErr := h.identify(r)
	if appErr != nil {
		webutil.HandleError(w, logger, appErr)
		return
	}

	presence, err := h.service.Presence(r.Context(), userID, deviceID)
	if err != nil {
		logger.Error("Error checking draft presence in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, presence, logger)
}

// GetDraft は下書きの復元 (リモート優先) のハンドラ
func (h *DraftHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetDraft"))

	userID, deviceID, appErr := h.identify(r)
	if appErr != nil {
		webutil.HandleError(w, logger, appErr)
		return
	}

	snapshot, err := h.service.Restore(r.Context(), userID, deviceID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, snapshot, logger)
}

// DeleteDraft は下書きの明示的な破棄のハンドラ
func (h *DraftHandler) DeleteDraft(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "DeleteDraft"))

	userID, deviceID, appErr := h.identify(r)
	if appErr != nil {
		webutil.HandleError(w, logger, appErr)
		return
	}

	if err := h.service.Clear(r.Context(), userID, deviceID); err != nil {
		logger.Error("Error clearing draft in service", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *DraftHandler) identify(r *http.Request) (userID uuid.UUID, deviceID string, appErr *model.AppError) {
	id, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		return uuid.Nil, "", model.NewAppError("UNAUTHORIZED", "認証情報が見つかりません。", "", model.ErrForbidden)
	}
	return id, middleware.GetDeviceIDFromContext(r.Context()), nil
}
