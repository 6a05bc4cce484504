package model

import (
	"time"

	"github.com/google/uuid"
)

// Enrollment は (user, course) の受講登録です。複合ユニーク制約で
// 高々1件 (クライアント側のチェックは競合窓を狭めるだけ)。
type Enrollment struct {
	EnrollmentID uuid.UUID `gorm:"type:uuid;primaryKey" json:"enrollment_id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index:idx_user_course,unique" json:"user_id"`
	CourseID     uuid.UUID `gorm:"type:uuid;not null;index:idx_user_course,unique" json:"course_id"`
	EnrolledAt   time.Time `gorm:"not null" json:"enrolled_at"`

	// 関連 (Preload用)
	Course   *Course         `gorm:"foreignKey:CourseID;references:CourseID" json:"course,omitempty"`
	Progress *ProgressRecord `gorm:"foreignKey:EnrollmentID;references:EnrollmentID" json:"progress,omitempty"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

// ProgressRecord は受講登録1件につき1行の進捗状態です。
// パーセンテージの計算はストア側 (RecomputeProgress) だけが行い、
// クライアント/サービス層では決して導出しない。
type ProgressRecord struct {
	ProgressID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"progress_id"`
	EnrollmentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"enrollment_id"`
	Percent      int       `gorm:"not null;default:0" json:"percent"` // 0-100
	Completed    bool      `gorm:"not null;default:false" json:"completed"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (ProgressRecord) TableName() string {
	return "progress_records"
}

// ProgressView はクライアントに返す進捗の読み取り表現
type ProgressView struct {
	Percent   int  `json:"percent"`
	Completed bool `json:"completed"`
}

// EnrollRequest は受講登録リクエストのDTO
type EnrollRequest struct {
	CourseID uuid.UUID `json:"course_id" validate:"required"`
}
