package model

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ここはエンティティ正規化層。オーサリング画面で編集される形
// (順序付きトピックリスト・未保存ID) と、ストアの永続形 (連想マップ・
// 確定ID) の相互変換を担う純粋関数群です。変換は決して失敗せず、
// 欠損フィールドは既定値 (空文字・空リスト) に落とします。

// TopicPair はトピックの編集用表現。キー重複・空キーは編集中のみ許容される。
type TopicPair struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// EditableDownload はダウンロード資料の編集用表現。
// DownloadID が nil のものは常に新規インサート対象として扱う。
type EditableDownload struct {
	DownloadID  *uuid.UUID `json:"download_id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	FileURL     string     `json:"file_url"`
	FileType    string     `json:"file_type"`
	FileSize    int64      `json:"file_size"`
}

// EditableLesson はレッスンの編集用表現。
// LessonID が nil の間は合成クライアントキー (挿入位置由来) でUI状態を追跡し、
// 保存ステップで確定IDの書き戻しを受ける。
type EditableLesson struct {
	LessonID        *uuid.UUID         `json:"lesson_id,omitempty"`
	Title           string             `json:"title" validate:"required,min=1,max=200"`
	Description     string             `json:"description"`
	VideoURL        string             `json:"video_url" validate:"required,url"`
	DurationMinutes int                `json:"duration_minutes" validate:"omitempty,min=0"`
	Topics          []TopicPair        `json:"topics"`
	Downloads       []EditableDownload `json:"downloads" validate:"max=4,dive"` // max は MaxDownloadsPerLesson と揃える
}

// IsPersisted はこのレッスンが確定IDを持つかどうかを返します
func (l *EditableLesson) IsPersisted() bool {
	return l.LessonID != nil
}

// ClientKey はUI状態 (開閉・並び) を安定的にキーするための識別子を返します。
// 確定IDがあれば "lesson-<id>"、なければ挿入位置由来の "pending-<index>"。
// 配列位置に依存しないのは永続済みレッスンのみで、未保存レッスンのキーは
// 保存時にIDが割り当てられるまでの一時的なものです。
func (l *EditableLesson) ClientKey(index int) string {
	if l.LessonID != nil {
		return "lesson-" + l.LessonID.String()
	}
	return fmt.Sprintf("pending-%d", index)
}

// TopicsMapToEditableList は永続形のトピックマップを編集用の順序付き
// リストへ変換します。マップに順序はないため、決定性のためキー昇順に並べる。
func TopicsMapToEditableList(m datatypes.JSONMap) []TopicPair {
	if len(m) == 0 {
		return []TopicPair{}
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	list := make([]TopicPair, 0, len(keys))
	for _, k := range keys {
		value := ""
		if v, ok := m[k].(string); ok {
			value = v
		}
		list = append(list, TopicPair{Key: k, Value: value})
	}
	return list
}

// EditableListToTopicsMap は編集用リストを永続形のマップへ変換します。
// トリム後に空になるキーは捨てる。重複キーは後勝ち。
// 既に永続化済みの内容を往復させても同じマップに戻る (冪等)。
func EditableListToTopicsMap(list []TopicPair) datatypes.JSONMap {
	m := datatypes.JSONMap{}
	for _, p := range list {
		key := strings.TrimSpace(p.Key)
		if key == "" {
			continue
		}
		m[key] = p.Value
	}
	return m
}

// PersistedLessonToEditable はストアのレッスン行を編集用表現へ変換します
func PersistedLessonToEditable(row *Lesson) EditableLesson {
	if row == nil {
		return EditableLesson{Topics: []TopicPair{}, Downloads: []EditableDownload{}}
	}
	id := row.LessonID
	downloads := make([]EditableDownload, 0, len(row.Downloads))
	for i := range row.Downloads {
		downloads = append(downloads, PersistedDownloadToEditable(&row.Downloads[i]))
	}
	return EditableLesson{
		LessonID:        &id,
		Title:           row.Title,
		Description:     row.Description,
		VideoURL:        row.VideoURL,
		DurationMinutes: row.DurationMinutes,
		Topics:          TopicsMapToEditableList(row.Topics),
		Downloads:       downloads,
	}
}

// PersistedDownloadToEditable はダウンロード行を編集用表現へ変換します
func PersistedDownloadToEditable(row *Download) EditableDownload {
	if row == nil {
		return EditableDownload{}
	}
	id := row.DownloadID
	return EditableDownload{
		DownloadID:  &id,
		Title:       row.Title,
		Description: row.Description,
		FileURL:     row.FileURL,
		FileType:    row.FileType,
		FileSize:    row.FileSize,
	}
}
