package service

import (
	"context"
	"fmt"

	"github.com/noah-isme/academy-api/internal/models"
	appErrors "github.com/noah-isme/academy-api/pkg/errors"
)

type courseCatalog interface {
	FindAll(ctx context.Context) ([]models.Course, error)
}

type userEnrollmentSource interface {
	ListByUser(ctx context.Context, userID int64) ([]models.Enrollment, error)
}

type coursePager interface {
	GetPaginated(ctx context.Context, page, limit int, search string) (*models.PaginatedResult[models.Course], bool, error)
}

// CourseEnrollmentService joins a user's enrollments with course records in memory.
type CourseEnrollmentService struct {
	courses     courseCatalog
	enrollments userEnrollmentSource
	pager       coursePager
}

// NewCourseEnrollmentService constructs the join service. pager serves the
// cached course pages for the paginated view.
func NewCourseEnrollmentService(courses courseCatalog, enrollments userEnrollmentSource, pager coursePager) *CourseEnrollmentService {
	return &CourseEnrollmentService{courses: courses, enrollments: enrollments, pager: pager}
}

// GetUserEnrolledCourses returns one entry per enrollment whose course still
// exists, in the order the store returned the enrollments.
func (s *CourseEnrollmentService) GetUserEnrolledCourses(ctx context.Context, userID int64) ([]models.CourseWithEnrollment, error) {
	enrollments, err := s.userEnrollments(ctx, userID)
	if err != nil {
		return nil, err
	}
	courses, err := s.courses.FindAll(ctx)
	if err != nil {
		return nil, appErrors.Dependency(err, "failed to list courses")
	}

	byID := make(map[int64]models.Course, len(courses))
	for _, course := range courses {
		byID[course.ID] = course
	}

	result := make([]models.CourseWithEnrollment, 0, len(enrollments))
	for i := range enrollments {
		course, ok := byID[enrollments[i].CourseID]
		if !ok {
			continue
		}
		enrollment := enrollments[i]
		result = append(result, models.CourseWithEnrollment{Course: course, UserEnrollment: &enrollment})
	}
	return result, nil
}

// GetCoursesWithEnrollmentStatus returns every course, each carrying the
// user's enrollment when one exists.
func (s *CourseEnrollmentService) GetCoursesWithEnrollmentStatus(ctx context.Context, userID int64) ([]models.CourseWithEnrollment, error) {
	enrollments, err := s.userEnrollments(ctx, userID)
	if err != nil {
		return nil, err
	}
	courses, err := s.courses.FindAll(ctx)
	if err != nil {
		return nil, appErrors.Dependency(err, "failed to list courses")
	}
	return mergeEnrollments(courses, enrollments), nil
}

// GetPaginatedCoursesWithEnrollmentStatus merges the user's enrollments into a
// course page. The page itself may come from the cache; enrollments are always
// read from the store.
func (s *CourseEnrollmentService) GetPaginatedCoursesWithEnrollmentStatus(ctx context.Context, userID int64, page, limit int, search string) (*models.PaginatedResult[models.CourseWithEnrollment], bool, error) {
	enrollments, err := s.userEnrollments(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	coursePage, hit, err := s.pager.GetPaginated(ctx, page, limit, search)
	if err != nil {
		return nil, false, err
	}
	return &models.PaginatedResult[models.CourseWithEnrollment]{
		Data:       mergeEnrollments(coursePage.Data, enrollments),
		Pagination: coursePage.Pagination,
	}, hit, nil
}

func (s *CourseEnrollmentService) userEnrollments(ctx context.Context, userID int64) ([]models.Enrollment, error) {
	if userID <= 0 {
		return nil, appErrors.Validation("user id must be positive")
	}
	enrollments, err := s.enrollments.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Dependency(err, fmt.Sprintf("failed to list enrollments for user %d", userID))
	}
	return enrollments, nil
}

// mergeEnrollments keeps course order. At most one enrollment exists per
// (user, course), so a map lookup is enough.
func mergeEnrollments(courses []models.Course, enrollments []models.Enrollment) []models.CourseWithEnrollment {
	byCourse := make(map[int64]models.Enrollment, len(enrollments))
	for _, enrollment := range enrollments {
		byCourse[enrollment.CourseID] = enrollment
	}

	result := make([]models.CourseWithEnrollment, 0, len(courses))
	for _, course := range courses {
		item := models.CourseWithEnrollment{Course: course}
		if enrollment, ok := byCourse[course.ID]; ok {
			item.UserEnrollment = &enrollment
		}
		result = append(result, item)
	}
	return result
}
