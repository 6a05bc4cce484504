package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Quiz はレッスンに最大1つ付く小テストを表します
type Quiz struct {
	QuizID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"quiz_id"`
	LessonID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"lesson_id"`
	IsRequired bool      `gorm:"default:false" json:"is_required"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// 関連 (Preload用)
	Questions []Question `gorm:"foreignKey:QuizID;references:QuizID" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// Question は設問を表します。正解は0始まりの選択肢インデックス。
type Question struct {
	QuestionID   uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"question_id"`
	QuizID       uuid.UUID                   `gorm:"type:uuid;not null;index" json:"quiz_id"`
	Position     int                         `gorm:"not null" json:"position"`
	Text         string                      `gorm:"not null" json:"text"`
	Options      datatypes.JSONSlice[string] `gorm:"type:jsonb" json:"options"`
	CorrectIndex int                         `gorm:"not null" json:"-"` // クライアントには返さない
}

func (Question) TableName() string {
	return "questions"
}

// QuizCompletion は (user, lesson) ごとに高々1件の完了ファクトです。
// 一意性はクライアントロジックではなくこの複合ユニーク制約で担保する
// (同時タブではクライアントは排他を保証できない)。
type QuizCompletion struct {
	CompletionID uuid.UUID `gorm:"type:uuid;primaryKey" json:"completion_id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index:idx_user_lesson,unique" json:"user_id"`
	LessonID     uuid.UUID `gorm:"type:uuid;not null;index:idx_user_lesson,unique" json:"lesson_id"`
	QuizID       uuid.UUID `gorm:"type:uuid;not null" json:"quiz_id"`
	CompletedAt  time.Time `gorm:"not null" json:"completed_at"`
}

func (QuizCompletion) TableName() string {
	return "quiz_completions"
}

// クイズ実行の状態機械の状態
const (
	QuizStateIdle           = "idle"            // 設問表示中・未選択
	QuizStateAnswerSelected = "answer_selected" // 選択済み・未送信
	QuizStateSubmitting     = "submitting"      // 送信中
	QuizStateCompleted      = "completed"       // 終端
)

// QuizSession は (user, lesson) ごとの実行中状態。セッションストアに置く
// 一時状態であり、完了の真偽はストアの QuizCompletion から再導出する。
type QuizSession struct {
	QuizID         uuid.UUID `json:"quiz_id"`
	LessonID       uuid.UUID `json:"lesson_id"`
	QuestionIndex  int       `json:"question_index"`
	SelectedOption *int      `json:"selected_option,omitempty"`
	State          string    `json:"state"`
}

// QuestionView はクライアントに返す設問 (正解インデックスを含まない)
type QuestionView struct {
	QuestionID uuid.UUID `json:"question_id"`
	Position   int       `json:"position"`
	Text       string    `json:"text"`
	Options    []string  `json:"options"`
}

// QuizStateResponse はレッスンプレイヤーのクイズ描画用状態です
type QuizStateResponse struct {
	QuizID         uuid.UUID     `json:"quiz_id"`
	IsRequired     bool          `json:"is_required"`
	QuizCompleted  bool          `json:"quiz_completed"`
	State          string        `json:"state"`
	QuestionIndex  int           `json:"question_index"`
	QuestionCount  int           `json:"question_count"`
	SelectedOption *int          `json:"selected_option,omitempty"`
	Question       *QuestionView `json:"question,omitempty"` // 完了時はnil (全問disabled)
}

// SelectOptionRequest は選択肢選択のDTO
type SelectOptionRequest struct {
	OptionIndex *int `json:"option_index" validate:"required,min=0"`
}

// SubmitAnswerResponse は回答送信結果。IsCorrect は一時的なUI状態で
// あり永続化されない。
type SubmitAnswerResponse struct {
	IsCorrect     bool          `json:"is_correct"`
	CorrectIndex  int           `json:"correct_index"`
	Completed     bool          `json:"completed"`
	QuestionIndex int           `json:"question_index"` // 次に表示する設問
	Progress      *ProgressView `json:"progress,omitempty"`
}

// CreateQuizRequest はオーサリング側のクイズ作成DTO
type CreateQuizRequest struct {
	IsRequired bool                    `json:"is_required"`
	Questions  []CreateQuestionRequest `json:"questions" validate:"required,min=1,dive"`
}

type CreateQuestionRequest struct {
	Text         string   `json:"text" validate:"required"`
	Options      []string `json:"options" validate:"required,min=2"`
	CorrectIndex int      `json:"correct_index" validate:"min=0"`
}
