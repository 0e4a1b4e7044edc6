package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/noah-isme/academy-api/internal/models"
	"github.com/noah-isme/academy-api/internal/service"
	appErrors "github.com/noah-isme/academy-api/pkg/errors"
	"github.com/noah-isme/academy-api/pkg/export"
)

type courseServiceMock struct {
	page      *models.PaginatedResult[models.Course]
	hit       bool
	err       error
	lastPage  int
	lastLimit int
	lastQuery string
	lastFrom  time.Time
	lastTo    time.Time
	course    *models.Course
	created   *service.CreateCourseRequest
}

func (m *courseServiceMock) List(ctx context.Context) ([]models.Course, error) {
	return []models.Course{}, m.err
}

func (m *courseServiceMock) ListActive(ctx context.Context) ([]models.Course, error) {
	return []models.Course{}, m.err
}

func (m *courseServiceMock) ListByDateRange(ctx context.Context, from, to time.Time) ([]models.Course, error) {
	m.lastFrom, m.lastTo = from, to
	return []models.Course{}, m.err
}

func (m *courseServiceMock) GetPaginated(ctx context.Context, page, limit int, search string) (*models.PaginatedResult[models.Course], bool, error) {
	m.lastPage, m.lastLimit, m.lastQuery = page, limit, search
	return m.page, m.hit, m.err
}

func (m *courseServiceMock) Get(ctx context.Context, id int64) (*models.Course, error) {
	if m.course == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	return m.course, nil
}

func (m *courseServiceMock) Create(ctx context.Context, req service.CreateCourseRequest) (*models.Course, error) {
	m.created = &req
	return &models.Course{ID: 1, Name: req.Name}, m.err
}

func (m *courseServiceMock) Update(ctx context.Context, id int64, req service.UpdateCourseRequest) (*models.Course, error) {
	return &models.Course{ID: id}, m.err
}

func (m *courseServiceMock) Delete(ctx context.Context, id int64) error {
	return m.err
}

type joinedServiceMock struct {
	courses  []models.CourseWithEnrollment
	lastUser int64
}

func (m *joinedServiceMock) GetUserEnrolledCourses(ctx context.Context, userID int64) ([]models.CourseWithEnrollment, error) {
	m.lastUser = userID
	return m.courses, nil
}

func (m *joinedServiceMock) GetCoursesWithEnrollmentStatus(ctx context.Context, userID int64) ([]models.CourseWithEnrollment, error) {
	m.lastUser = userID
	return m.courses, nil
}

func (m *joinedServiceMock) GetPaginatedCoursesWithEnrollmentStatus(ctx context.Context, userID int64, page, limit int, search string) (*models.PaginatedResult[models.CourseWithEnrollment], bool, error) {
	m.lastUser = userID
	return &models.PaginatedResult[models.CourseWithEnrollment]{
		Data:       m.courses,
		Pagination: models.NewPagination(page, limit, len(m.courses)),
	}, false, nil
}

type enrollmentServiceMock struct {
	created   *service.CreateEnrollmentRequest
	concluded int64
	canceled  int64
	owners    map[int64]int64
	err       error
}

func (m *enrollmentServiceMock) List(ctx context.Context) ([]models.Enrollment, error) {
	return []models.Enrollment{}, m.err
}

func (m *enrollmentServiceMock) Get(ctx context.Context, id int64) (*models.Enrollment, error) {
	if m.owners != nil {
		owner, ok := m.owners[id]
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
		}
		return &models.Enrollment{ID: id, UserID: owner}, nil
	}
	return &models.Enrollment{ID: id}, m.err
}

func (m *enrollmentServiceMock) ListByUser(ctx context.Context, userID int64) ([]models.Enrollment, error) {
	return []models.Enrollment{}, m.err
}

func (m *enrollmentServiceMock) ListByCourse(ctx context.Context, courseID int64) ([]models.Enrollment, error) {
	return []models.Enrollment{}, m.err
}

func (m *enrollmentServiceMock) ListByStatus(ctx context.Context, status models.EnrollmentStatus) ([]models.Enrollment, error) {
	if !status.Valid() {
		return nil, appErrors.Validation("invalid enrollment status")
	}
	return []models.Enrollment{}, m.err
}

func (m *enrollmentServiceMock) Create(ctx context.Context, req service.CreateEnrollmentRequest) (*models.Enrollment, error) {
	m.created = &req
	if m.err != nil {
		return nil, m.err
	}
	return &models.Enrollment{ID: 7, UserID: req.UserID, CourseID: req.CourseID, Status: req.Status, EnrollDate: *req.EnrollDate}, nil
}

func (m *enrollmentServiceMock) Update(ctx context.Context, id int64, req service.UpdateEnrollmentRequest) (*models.Enrollment, error) {
	return &models.Enrollment{ID: id}, m.err
}

func (m *enrollmentServiceMock) Conclude(ctx context.Context, id int64) (*models.Enrollment, error) {
	m.concluded = id
	return &models.Enrollment{ID: id, Status: models.EnrollmentStatusConcluded}, m.err
}

func (m *enrollmentServiceMock) Cancel(ctx context.Context, id int64) (*models.Enrollment, error) {
	m.canceled = id
	return &models.Enrollment{ID: id, Status: models.EnrollmentStatusCanceled}, m.err
}

func (m *enrollmentServiceMock) Delete(ctx context.Context, id int64) error {
	return m.err
}

type transcriptServiceMock struct {
	lastFormat export.Format
}

func (m *transcriptServiceMock) Export(ctx context.Context, userID int64, format export.Format) (*service.TranscriptFile, error) {
	m.lastFormat = format
	return &service.TranscriptFile{
		Filename:    "transcript-user-1." + string(format),
		ContentType: format.ContentType(),
		Content:     []byte("course_id,course\n"),
	}, nil
}

type profileServiceMock struct {
	profiles map[int64]models.UserProfile
}

func (m *profileServiceMock) ResolveProfile(ctx context.Context, id int64) (*models.UserProfile, error) {
	profile, ok := m.profiles[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}
	return &profile, nil
}

type metricsServiceMock struct{}

func (metricsServiceMock) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("# metrics\n"))
	})
}

func (metricsServiceMock) Snapshot() models.SystemMetrics {
	return models.SystemMetrics{CacheHits: 3, CacheMisses: 1, CacheHitRatio: 0.75}
}

type tokenValidatorMock struct {
	claims map[string]*models.JWTClaims
}

func (m tokenValidatorMock) ValidateToken(token string) (*models.JWTClaims, error) {
	claims, ok := m.claims[token]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")
	}
	return claims, nil
}

type cacheInvalidatorMock struct {
	patterns []string
	err      error
}

func (m *cacheInvalidatorMock) Invalidate(ctx context.Context, pattern string) error {
	m.patterns = append(m.patterns, pattern)
	return m.err
}
