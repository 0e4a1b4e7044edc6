package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/academy-api/internal/models"
	appErrors "github.com/noah-isme/academy-api/pkg/errors"
)

// DefaultCourseListTTL is how long a listing page stays cached.
const DefaultCourseListTTL = 300 * time.Second

type courseRepository interface {
	FindAll(ctx context.Context) ([]models.Course, error)
	FindActive(ctx context.Context, at time.Time) ([]models.Course, error)
	FindByDateRange(ctx context.Context, from, to time.Time) ([]models.Course, error)
	FindByID(ctx context.Context, id int64) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, id int64, update models.CourseUpdate) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// CreateCourseRequest captures creation payload.
type CreateCourseRequest struct {
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description" validate:"required"`
	Cover       *string   `json:"cover"`
	StartDate   time.Time `json:"start_date" validate:"required"`
	EndDate     time.Time `json:"end_date" validate:"required"`
}

// UpdateCourseRequest modifies any subset of course fields.
type UpdateCourseRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	Cover       *string    `json:"cover"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

// CourseService implements course CRUD and the cached paginated listing.
type CourseService struct {
	repo      courseRepository
	cache     *CacheService
	listTTL   time.Duration
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
	now       func() time.Time
}

// NewCourseService constructs CourseService. listTTL <= 0 uses DefaultCourseListTTL.
func NewCourseService(repo courseRepository, cache *CacheService, listTTL time.Duration, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if listTTL <= 0 {
		listTTL = DefaultCourseListTTL
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, cache: cache, listTTL: listTTL, validator: validate, logger: logger, now: time.Now}
}

// WithMetrics records store timings for listing cache misses.
func (s *CourseService) WithMetrics(metrics *MetricsService) *CourseService {
	s.metrics = metrics
	return s
}

// List returns every course.
func (s *CourseService) List(ctx context.Context) ([]models.Course, error) {
	courses, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, appErrors.Dependency(err, "failed to list courses")
	}
	return courses, nil
}

// ListActive returns courses that have not ended yet.
func (s *CourseService) ListActive(ctx context.Context) ([]models.Course, error) {
	courses, err := s.repo.FindActive(ctx, s.now())
	if err != nil {
		return nil, appErrors.Dependency(err, "failed to list active courses")
	}
	return courses, nil
}

// ListByDateRange returns courses that start and end inside [from, to].
func (s *CourseService) ListByDateRange(ctx context.Context, from, to time.Time) ([]models.Course, error) {
	if from.IsZero() || to.IsZero() {
		return nil, appErrors.Validation("start date and end date are required")
	}
	if to.Before(from) {
		return nil, appErrors.Validation("end date must not be before start date")
	}
	courses, err := s.repo.FindByDateRange(ctx, from, to)
	if err != nil {
		return nil, appErrors.Dependency(err, "failed to list courses by date range")
	}
	return courses, nil
}

// GetPaginated serves one page of courses filtered by name. A cached page is
// returned verbatim; the bool reports whether it came from the cache.
func (s *CourseService) GetPaginated(ctx context.Context, page, limit int, search string) (*models.PaginatedResult[models.Course], bool, error) {
	page, limit = normalizePage(page, limit)
	key := CourseListKey(page, limit, search)

	var cached models.PaginatedResult[models.Course]
	if res := s.cache.Get(ctx, key, &cached); res.Found {
		return &cached, true, nil
	}

	start := time.Now()
	courses, err := s.repo.FindAll(ctx)
	s.metrics.ObserveDBQuery("courses_list", time.Since(start))
	if err != nil {
		return nil, false, appErrors.Dependency(err, "failed to list courses")
	}

	result := paginate(filterCoursesByName(courses, search), page, limit)
	s.cache.Set(ctx, key, result, s.listTTL)
	return &result, false, nil
}

// Get returns a course by id.
func (s *CourseService) Get(ctx context.Context, id int64) (*models.Course, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Dependency(err, fmt.Sprintf("failed to load course %d", id))
	}
	return course, nil
}

// Create validates and stores a new course.
func (s *CourseService) Create(ctx context.Context, req CreateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}
	name := strings.TrimSpace(req.Name)
	description := strings.TrimSpace(req.Description)
	if name == "" || description == "" {
		return nil, appErrors.Validation("name and description must not be blank")
	}
	if !req.StartDate.Before(req.EndDate) {
		return nil, appErrors.Validation("start date must be before end date")
	}
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if req.StartDate.Before(today) {
		return nil, appErrors.Validation("start date must not be in the past")
	}

	course := &models.Course{
		Name:        name,
		Description: description,
		Cover:       req.Cover,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
	if err := s.repo.Create(ctx, course); err != nil {
		return nil, appErrors.Dependency(err, "failed to create course")
	}
	return course, nil
}

// Update applies a partial update. The resulting dates must keep start before end.
func (s *CourseService) Update(ctx context.Context, id int64, req UpdateCourseRequest) (*models.Course, error) {
	update := models.CourseUpdate{
		Name:        req.Name,
		Description: req.Description,
		Cover:       req.Cover,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
	if update.Empty() {
		return nil, appErrors.Validation("at least one field must be provided")
	}
	if update.Name != nil {
		trimmed := strings.TrimSpace(*update.Name)
		if trimmed == "" {
			return nil, appErrors.Validation("name must not be blank")
		}
		update.Name = &trimmed
	}
	if update.Description != nil {
		trimmed := strings.TrimSpace(*update.Description)
		if trimmed == "" {
			return nil, appErrors.Validation("description must not be blank")
		}
		update.Description = &trimmed
	}

	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	start, end := existing.StartDate, existing.EndDate
	if update.StartDate != nil {
		start = *update.StartDate
	}
	if update.EndDate != nil {
		end = *update.EndDate
	}
	if !start.Before(end) {
		return nil, appErrors.Validation("start date must be before end date")
	}

	affected, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return nil, appErrors.Dependency(err, fmt.Sprintf("failed to update course %d", id))
	}
	if affected == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	return s.Get(ctx, id)
}

// Delete removes a course.
func (s *CourseService) Delete(ctx context.Context, id int64) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return appErrors.Dependency(err, fmt.Sprintf("failed to delete course %d", id))
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	return nil
}
