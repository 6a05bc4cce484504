//go:generate mockery --name CourseService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"go_course_keep/internal/config"
	"go_course_keep/internal/middleware"
	"go_course_keep/internal/model"
	"go_course_keep/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CourseService はコースのオーサリングと閲覧を担います。
// 作成時はレッスンツリーの保存 (SyncService) と下書きの破棄まで面倒を見る。
type CourseService interface {
	Create(ctx context.Context, userID uuid.UUID, deviceID string, req *model.CreateCourseRequest) (*model.Course, error)
	Update(ctx context.Context, courseID uuid.UUID, req *model.UpdateCourseRequest) (*model.Course, error)
	Publish(ctx context.Context, courseID uuid.UUID) error
	Delete(ctx context.Context, courseID uuid.UUID, req *model.DeleteCourseRequest) error
	GetByID(ctx context.Context, courseID uuid.UUID) (*model.Course, error)
	GetBySlug(ctx context.Context, slug string) (*model.Course, error)
	List(ctx context.Context, filter repository.CourseFilter) ([]*model.Course, error)
	GetEditableLessons(ctx context.Context, courseID uuid.UUID) ([]model.EditableLesson, error)
}

type courseService struct {
	db           *gorm.DB
	cfg          *config.Config
	courseRepo   repository.CourseRepository
	lessonRepo   repository.LessonRepository
	syncService  SyncService
	draftService DraftService
}

func NewCourseService(
	db *gorm.DB,
	cfg *config.Config,
	courseRepo repository.CourseRepository,
	lessonRepo repository.LessonRepository,
	syncService SyncService,
	draftService DraftService,
) CourseService {
	return &courseService{
		db:           db,
		cfg:          cfg,
		courseRepo:   courseRepo,
		lessonRepo:   lessonRepo,
		syncService:  syncService,
		draftService: draftService,
	}
}

func (s *courseService) Create(ctx context.Context, userID uuid.UUID, deviceID string, req *model.CreateCourseRequest) (*model.Course, error) {
	logger := middleware.GetLogger(ctx)

	slug := req.Slug
	if slug == "" {
		slug = model.DeriveSlug(req.Title)
	}
	if slug == "" {
		return nil, model.NewAppError("INVALID_INPUT", "タイトルからスラグを導出できません。", "title", model.ErrInvalidInput)
	}

	exists, err := s.courseRepo.CheckSlugExists(ctx, s.db, slug, nil)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "コースの作成に失敗しました。", "", err)
	}
	if exists {
		return nil, model.NewAppError("CONFLICT", "同じスラグのコースが既に存在します。", "slug", model.ErrConflict)
	}

	level := req.Level
	if level == "" {
		level = model.LevelBeginner
	}

	course := &model.Course{
		CourseID:        uuid.New(),
		Title:           req.Title,
		Slug:            slug,
		Description:     req.Description,
		HeroImageURL:    req.HeroImageURL,
		Category:        req.Category,
		Level:           level,
		DurationMinutes: req.DurationMinutes,
		Requirements:    req.Requirements,
		Skills:          req.Skills,
		IsFeatured:      req.IsFeatured,
		IsPaid:          req.IsPaid,
		Status:          model.CourseStatusDraft,
	}

	if err := s.courseRepo.Create(ctx, s.db, course); err != nil {
		if errors.Is(err, model.ErrConflict) {
			return nil, model.NewAppError("CONFLICT", "同じスラグのコースが既に存在します。", "slug", model.ErrConflict)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "コースの作成に失敗しました。", "", err)
	}

	// レッスンツリーはコース行と同じ突き合わせ処理で保存する
	if _, err := s.syncService.SyncLessons(ctx, s.db, course.CourseID, req.Lessons); err != nil {
		// コース行は残る。クライアントは同じ内容の再送で続きから収束できる
		logger.Error("Lesson sync failed during course create", "error", err, "course_id", course.CourseID.String())
		return nil, err
	}

	// 作成が確定したので下書きを両スロットとも破棄する (ベストエフォート)
	if err := s.draftService.Clear(ctx, userID, deviceID); err != nil {
		logger.Warn("Failed to clear draft after course create", "error", err, "user_id", userID.String())
	}

	logger.Info("Course created", "course_id", course.CourseID.String(), "slug", slug, "lesson_count", len(req.Lessons))
	return s.courseRepo.FindByID(ctx, s.db, course.CourseID)
}

func (s *courseService) Update(ctx context.Context, courseID uuid.UUID, req *model.UpdateCourseRequest) (*model.Course, error) {
	logger := middleware.GetLogger(ctx)

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.HeroImageURL != nil {
		updates["hero_image_url"] = *req.HeroImageURL
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Level != nil {
		updates["level"] = *req.Level
	}
	if req.DurationMinutes != nil {
		updates["duration_minutes"] = *req.DurationMinutes
	}
	if req.Requirements != nil {
		updates["requirements"] = *req.Requirements
	}
	if req.Skills != nil {
		updates["skills"] = *req.Skills
	}
	if req.IsFeatured != nil {
		updates["is_featured"] = *req.IsFeatured
	}
	if req.IsPaid != nil {
		updates["is_paid"] = *req.IsPaid
	}

	if len(updates) == 0 {
		return s.GetByID(ctx, courseID)
	}

	if err := s.courseRepo.Update(ctx, s.db, courseID, updates); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "コースが見つかりません。", "", model.ErrNotFound)
		}
		logger.Error("Failed to update course", "error", err, "course_id", courseID.String())
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "コースの更新に失敗しました。", "", err)
	}
	return s.GetByID(ctx, courseID)
}

func (s *courseService) Publish(ctx context.Context, courseID uuid.UUID) error {
	logger := middleware.GetLogger(ctx)

	// 公開はレッスンが1件以上あることを条件にする
	lessons, err := s.lessonRepo.FindByCourse(ctx, s.db, courseID)
	if err != nil {
		return model.NewAppError("INTERNAL_SERVER_ERROR", "コースの公開に失敗しました。", "", err)
	}
	if len(lessons) == 0 {
		return model.NewAppError("INVALID_INPUT", "レッスンのないコースは公開できません。", "", model.ErrInvalidInput)
	}

	if err := s.courseRepo.Update(ctx, s.db, courseID, map[string]interface{}{"status": model.CourseStatusPublished}); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("NOT_FOUND", "コースが見つかりません。", "", model.ErrNotFound)
		}
		return model.NewAppError("INTERNAL_SERVER_ERROR", "コースの公開に失敗しました。", "", err)
	}
	logger.Info("Course published", "course_id", courseID.String())
	return nil
}

// Delete はコースを削除します。レッスンごと消える破壊的操作なので、
// コース名の打ち直しと管理シークレットの二要素で確認する。
func (s *courseService) Delete(ctx context.Context, courseID uuid.UUID, req *model.DeleteCourseRequest) error {
	logger := middleware.GetLogger(ctx)

	course, err := s.courseRepo.FindByID(ctx, s.db, courseID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.NewAppError("NOT_FOUND", "コースが見つかりません。", "", model.ErrNotFound)
		}
		return model.NewAppError("INTERNAL_SERVER_ERROR", "コースの取得に失敗しました。", "", err)
	}

	// 照合は大文字小文字を区別し、前後の空白だけ許容する
	if strings.TrimSpace(req.ConfirmTitle) != course.Title {
		logger.Warn("Course delete confirmation mismatch", "course_id", courseID.String())
		return model.NewAppError("NAME_MISMATCH", "入力されたコース名が一致しません。", "confirm_title", model.ErrNameMismatch)
	}
	if subtle.ConstantTimeCompare([]byte(req.AdminSecret), []byte(s.cfg.App.AdminDeleteSecret)) != 1 {
		logger.Warn("Course delete secret mismatch", "course_id", courseID.String())
		return model.NewAppError("INVALID_CREDENTIAL", "管理シークレットが正しくありません。", "admin_secret", model.ErrInvalidCredential)
	}

	if err := s.courseRepo.Delete(ctx, s.db, courseID); err != nil {
		logger.Error("Failed to delete course", "error", err, "course_id", courseID.String())
		return model.NewAppError("INTERNAL_SERVER_ERROR", "コースの削除に失敗しました。", "", err)
	}
	logger.Info("Course deleted", "course_id", courseID.String(), "title", course.Title)
	return nil
}

func (s *courseService) GetByID(ctx context.Context, courseID uuid.UUID) (*model.Course, error) {
	course, err := s.courseRepo.FindByID(ctx, s.db, courseID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "コースが見つかりません。", "", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "コースの取得に失敗しました。", "", err)
	}
	return course, nil
}

func (s *courseService) GetBySlug(ctx context.Context, slug string) (*model.Course, error) {
	course, err := s.courseRepo.FindBySlug(ctx, s.db, slug)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewAppError("NOT_FOUND", "コースが見つかりません。", "", model.ErrNotFound)
		}
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "コースの取得に失敗しました。", "", err)
	}
	return course, nil
}

func (s *courseService) List(ctx context.Context, filter repository.CourseFilter) ([]*model.Course, error) {
	if filter.Limit <= 0 || filter.Limit > s.cfg.App.CatalogPageSize {
		filter.Limit = s.cfg.App.CatalogPageSize
	}
	courses, err := s.courseRepo.List(ctx, s.db, filter)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "コース一覧の取得に失敗しました。", "", err)
	}
	return courses, nil
}

// GetEditableLessons はコースのレッスンツリーを編集用表現 (順序付き
// トピックリスト・確定ID付き) で返します。編集画面の初期値になる。
func (s *courseService) GetEditableLessons(ctx context.Context, courseID uuid.UUID) ([]model.EditableLesson, error) {
	rows, err := s.lessonRepo.FindByCourse(ctx, s.db, courseID)
	if err != nil {
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "レッスンの取得に失敗しました。", "", err)
	}
	lessons := make([]model.EditableLesson, 0, len(rows))
	for _, row := range rows {
		lessons = append(lessons, model.PersistedLessonToEditable(row))
	}
	return lessons, nil
}
