package service

import (
	"context"
	"log/slog"

	"go_course_keep/internal/config"
	"go_course_keep/internal/middleware"
)

type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// --- LogMailer ---
// ローカル開発用。実際には送らずログに出すだけ。
type LogMailer struct{}

func (m *LogMailer) Send(ctx context.Context, to, subject, body string) error {
	logger := middleware.GetLogger(ctx)
	logger.Info("--- Sending Email (LogMailer) ---", "to", to, "subject", subject, "body", body)
	return nil
}

// NewMailer はSESのリージョン設定があればSES、なければLogMailerを返します
func NewMailer(cfg *config.Config) Mailer {
	logger := slog.Default()
	if cfg.SES.Region != "" {
		logger.Info("Initializing SES mailer...", "region", cfg.SES.Region)
		return NewSESMailer(cfg)
	}
	logger.Info("Initializing Log mailer...")
	return &LogMailer{}
}
