package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// 1レッスンに添付できるダウンロード資料の上限 (オーサリング時)
const MaxDownloadsPerLesson = 4

// Lesson はコース内の1レッスンを表します
type Lesson struct {
	LessonID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"lesson_id"`
	CourseID    uuid.UUID `gorm:"type:uuid;not null;index" json:"course_id"`
	StepOrder   int       `gorm:"not null" json:"step_order"` // 1始まりの連番
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	VideoURL    string    `json:"video_url"`
	DurationMinutes int   `json:"duration_minutes"`
	// トピックは key -> 説明文 の連想マップとして永続化される。
	// 空マップも「トピックなし」として明示的に保存する (省略しない)。
	Topics    datatypes.JSONMap `gorm:"type:jsonb" json:"topics"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	DeletedAt gorm.DeletedAt    `gorm:"index" json:"-"`

	// 関連 (Preload用)
	Downloads []Download `gorm:"foreignKey:LessonID;references:LessonID" json:"downloads,omitempty"`
	Quiz      *Quiz      `gorm:"foreignKey:LessonID;references:LessonID" json:"-"`
}

func (Lesson) TableName() string {
	return "lessons"
}

// Download はレッスンに紐づくダウンロード資料を表します
type Download struct {
	DownloadID  uuid.UUID      `gorm:"type:uuid;primaryKey" json:"download_id"`
	LessonID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"lesson_id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `json:"description"`
	FileURL     string         `json:"file_url"`
	FileType    string         `json:"file_type"`
	FileSize    int64          `json:"file_size"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Download) TableName() string {
	return "downloads"
}

// DeleteLessonRequest はレッスン削除 (即時実行) の確認DTO。
// 表示タイトルの打ち直しを要求する。
type DeleteLessonRequest struct {
	ConfirmTitle string `json:"confirm_title" validate:"required"`
}
