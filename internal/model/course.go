package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// コースの難易度
type CourseLevel string

const (
	LevelBeginner     CourseLevel = "Beginner"
	LevelIntermediate CourseLevel = "Intermediate"
	LevelAdvanced     CourseLevel = "Advanced"
)

// コースの公開状態
const (
	CourseStatusDraft     = "draft"
	CourseStatusPublished = "published"
)

// Course はコースを表します
type Course struct {
	CourseID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"course_id"`
	Title           string         `gorm:"not null" json:"title"`
	Slug            string         `gorm:"unique;not null" json:"slug"`
	Description     string         `json:"description"`
	HeroImageURL    string         `json:"hero_image_url"`
	Category        string         `gorm:"index" json:"category"`
	Level           CourseLevel    `gorm:"type:varchar(20);not null;default:'Beginner'" json:"level"`
	DurationMinutes int            `json:"duration_minutes"`
	Requirements    string         `json:"requirements"`
	Skills          string         `json:"skills"`
	IsFeatured      bool           `gorm:"default:false" json:"is_featured"`
	IsPaid          bool           `gorm:"default:false" json:"is_paid"`
	Status          string         `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	// 非正規化カウンタ (表示用。整合性はバッチ/publish時の再計算に委ねる)
	StudentCount int            `gorm:"default:0" json:"student_count"`
	Rating       float64        `gorm:"default:0" json:"rating"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// 関連 (Preload用)
	Lessons []Lesson `gorm:"foreignKey:CourseID;references:CourseID" json:"lessons,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// DeriveSlug はタイトルからURLスラグを導出します。
// slug未指定時のフォールバックとして使用します。
func DeriveSlug(title string) string {
	var b strings.Builder
	lastHyphen := true // 先頭のハイフンを抑制
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteRune('-')
				lastHyphen = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

// CreateCourseRequest はコース作成 (オーサリング画面の最終送信) のDTO
type CreateCourseRequest struct {
	Title           string           `json:"title" validate:"required,min=1,max=200"`
	Slug            string           `json:"slug" validate:"omitempty,max=200"`
	Description     string           `json:"description"`
	HeroImageURL    string           `json:"hero_image_url" validate:"omitempty,url"`
	Category        string           `json:"category"`
	Level           CourseLevel      `json:"level" validate:"omitempty,oneof=Beginner Intermediate Advanced"`
	DurationMinutes int              `json:"duration_minutes" validate:"omitempty,min=0"`
	Requirements    string           `json:"requirements"`
	Skills          string           `json:"skills"`
	IsFeatured      bool             `json:"is_featured"`
	IsPaid          bool             `json:"is_paid"`
	Lessons         []EditableLesson `json:"lessons" validate:"required,min=1,dive"`
}

// UpdateCourseRequest はコース編集 (管理画面) のDTO。
// レッスンツリーは別途 /lessons/sync で同期する。
type UpdateCourseRequest struct {
	Title           *string      `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description     *string      `json:"description,omitempty"`
	HeroImageURL    *string      `json:"hero_image_url,omitempty" validate:"omitempty,url"`
	Category        *string      `json:"category,omitempty"`
	Level           *CourseLevel `json:"level,omitempty" validate:"omitempty,oneof=Beginner Intermediate Advanced"`
	DurationMinutes *int         `json:"duration_minutes,omitempty" validate:"omitempty,min=0"`
	Requirements    *string      `json:"requirements,omitempty"`
	Skills          *string      `json:"skills,omitempty"`
	IsFeatured      *bool        `json:"is_featured,omitempty"`
	IsPaid          *bool        `json:"is_paid,omitempty"`
}

// DeleteCourseRequest はコース削除の二要素確認DTO。
// コース名の打ち直しと共有シークレットの両方を要求する。
type DeleteCourseRequest struct {
	ConfirmTitle string `json:"confirm_title" validate:"required"`
	AdminSecret  string `json:"admin_secret" validate:"required"`
}
