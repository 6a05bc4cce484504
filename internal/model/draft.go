package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CourseDraft はオーサリング途中のフォーム全体のスナップショットを
// ユーザー単位で1件だけ保持する行です (user_id で upsert)。
type CourseDraft struct {
	UserID    uuid.UUID      `gorm:"type:uuid;primaryKey" json:"user_id"`
	Payload   datatypes.JSON `gorm:"type:jsonb;not null" json:"payload"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (CourseDraft) TableName() string {
	return "course_drafts"
}

// DraftSnapshot はコース作成フォームの編集中状態の直列化形です。
// ローカルスロット (端末スコープ) とリモート行 (ユーザースコープ) の
// 両方に同じ形で保存される。
type DraftSnapshot struct {
	StepIndex       int              `json:"step_index"`
	Title           string           `json:"title"`
	Slug            string           `json:"slug"`
	Description     string           `json:"description"`
	HeroImageURL    string           `json:"hero_image_url"`
	Category        string           `json:"category"`
	Level           CourseLevel      `json:"level"`
	DurationMinutes int              `json:"duration_minutes"`
	Requirements    string           `json:"requirements"`
	Skills          string           `json:"skills"`
	IsFeatured      bool             `json:"is_featured"`
	IsPaid          bool             `json:"is_paid"`
	StudentCount    int              `json:"student_count"`
	Rating          float64          `json:"rating"`
	LessonCount     int              `json:"lesson_count"`
	Lessons         []EditableLesson `json:"lessons"`
}

// HasContent はコンテンツ有無の判定述語です。
// 全フィールドが空/ゼロのスナップショットは保存に値しない (両スロットを
// クリアする)。どれか1つでも入力があれば true。
func (s *DraftSnapshot) HasContent() bool {
	if s == nil {
		return false
	}
	for _, v := range []string{
		s.Title, s.Slug, s.Description, s.HeroImageURL,
		s.Category, s.Requirements, s.Skills,
	} {
		if strings.TrimSpace(v) != "" {
			return true
		}
	}
	if s.DurationMinutes != 0 || s.StudentCount != 0 || s.Rating != 0 {
		return true
	}
	if s.IsFeatured {
		return true
	}
	if s.LessonCount != 0 {
		return true
	}
	for i := range s.Lessons {
		l := &s.Lessons[i]
		if strings.TrimSpace(l.Title) != "" ||
			strings.TrimSpace(l.Description) != "" ||
			strings.TrimSpace(l.VideoURL) != "" ||
			l.DurationMinutes != 0 ||
			len(l.Topics) > 0 ||
			len(l.Downloads) > 0 {
			return true
		}
	}
	return false
}

// DraftPresenceResponse は「復元」ボタンの活性制御に使うフラグです
type DraftPresenceResponse struct {
	HasLocalDraft  bool `json:"has_local_draft"`
	HasServerDraft bool `json:"has_server_draft"`
}
