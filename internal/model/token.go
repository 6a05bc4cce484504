package model

import (
	"time"

	"github.com/google/uuid"
)

// EmailToken はメールで配布する使い切りトークンの共通形です。
// トークン文字列そのものが主キーで、使用後は行ごと消す。
type EmailToken struct {
	Token     string    `gorm:"primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null"`
	ExpiresAt time.Time `gorm:"not null"`
}

// IsExpired は now 時点で有効期限が切れているかどうかを返します
func (t EmailToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// UserVerificationToken はアカウント有効化用のトークンです
type UserVerificationToken struct {
	EmailToken `gorm:"embedded"`
}

func (UserVerificationToken) TableName() string {
	return "user_verification_tokens"
}

// PasswordResetToken はパスワード再設定用のトークンです
type PasswordResetToken struct {
	EmailToken `gorm:"embedded"`
}

func (PasswordResetToken) TableName() string {
	return "password_reset_tokens"
}
