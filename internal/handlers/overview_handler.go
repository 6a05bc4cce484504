package handlers

import (
	"log/slog"
	"net/http"

	"go_course_keep/internal/config"
	"go_course_keep/internal/webutil"
)

// OverviewHandler はダッシュボードの統計カードを返します。
// 値は設定ファイルの静的な表示値で、集計は行わない。
type OverviewHandler struct {
	cfg    *config.Config
	logger *slog.Logger
}

func NewOverviewHandler(cfg *config.Config, logger *slog.Logger) *OverviewHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &OverviewHandler{cfg: cfg, logger: logger}
}

type OverviewResponse struct {
	Stats []config.DashboardStat `json:"stats"`
}

func (h *OverviewHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetOverview"))

	stats := h.cfg.App.DashboardStats
	if stats == nil {
		stats = []config.DashboardStat{}
	}
	webutil.RespondWithJSON(w, http.StatusOK, OverviewResponse{Stats: stats}, logger)
}
