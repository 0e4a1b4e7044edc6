package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/academy-api/internal/models"
	appErrors "github.com/noah-isme/academy-api/pkg/errors"
)

type joinFixture struct {
	courses     *CourseService
	enrollments *EnrollmentService
	join        *CourseEnrollmentService
	courseRepo  *fakeCourseRepo
	enrollRepo  *fakeEnrollmentRepo
}

func newJoinFixture(t *testing.T, names ...string) joinFixture {
	t.Helper()
	courses, courseRepo, _ := newCourseFixture(t, names...)
	enrollments, enrollRepo := newEnrollmentFixture()
	return joinFixture{
		courses:     courses,
		enrollments: enrollments,
		join:        NewCourseEnrollmentService(courseRepo, enrollRepo, courses),
		courseRepo:  courseRepo,
		enrollRepo:  enrollRepo,
	}
}

func TestEnrollConcludeScenario(t *testing.T) {
	f := newJoinFixture(t, "Intro to Go", "Rust Basics")
	ctx := context.Background()
	const userID = 42

	created, err := f.enrollments.Create(ctx, validCreate(userID, 1))
	require.NoError(t, err)

	enrolled, err := f.join.GetUserEnrolledCourses(ctx, userID)
	require.NoError(t, err)
	require.Len(t, enrolled, 1)
	assert.Equal(t, int64(1), enrolled[0].ID)
	require.NotNil(t, enrolled[0].UserEnrollment)
	assert.Equal(t, models.EnrollmentStatusInProgress, enrolled[0].UserEnrollment.Status)

	_, err = f.enrollments.Conclude(ctx, created.ID)
	require.NoError(t, err)

	enrolled, err = f.join.GetUserEnrolledCourses(ctx, userID)
	require.NoError(t, err)
	require.Len(t, enrolled, 1)
	e := enrolled[0].UserEnrollment
	assert.Equal(t, models.EnrollmentStatusConcluded, e.Status)
	require.NotNil(t, e.ConclusionDate)
	assert.True(t, e.ConclusionDate.After(e.EnrollDate))
}

func TestGetUserEnrolledCoursesDropsMissingCourses(t *testing.T) {
	f := newJoinFixture(t, "A", "B", "C")
	ctx := context.Background()

	for _, courseID := range []int64{3, 1, 2} {
		_, err := f.enrollments.Create(ctx, validCreate(7, courseID))
		require.NoError(t, err)
	}
	_, err := f.enrollments.Create(ctx, validCreate(8, 1))
	require.NoError(t, err)
	_, err = f.courseRepo.Delete(ctx, 1)
	require.NoError(t, err)

	enrolled, err := f.join.GetUserEnrolledCourses(ctx, 7)
	require.NoError(t, err)
	require.Len(t, enrolled, 2)
	assert.Equal(t, "C", enrolled[0].Name)
	assert.Equal(t, "B", enrolled[1].Name)
	for _, item := range enrolled {
		assert.Equal(t, int64(7), item.UserEnrollment.UserID)
		assert.Equal(t, item.ID, item.UserEnrollment.CourseID)
	}
}

func TestGetCoursesWithEnrollmentStatus(t *testing.T) {
	f := newJoinFixture(t, "A", "B", "C")
	ctx := context.Background()
	_, err := f.enrollments.Create(ctx, validCreate(7, 2))
	require.NoError(t, err)
	_, err = f.enrollments.Create(ctx, validCreate(9, 3))
	require.NoError(t, err)

	items, err := f.join.GetCoursesWithEnrollmentStatus(ctx, 7)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Nil(t, items[0].UserEnrollment)
	require.NotNil(t, items[1].UserEnrollment)
	assert.Equal(t, int64(2), items[1].UserEnrollment.CourseID)
	assert.Nil(t, items[2].UserEnrollment)
}

func TestPaginatedCoursesWithEnrollmentReadsFreshEnrollments(t *testing.T) {
	f := newJoinFixture(t, "Intro to Go", "Advanced Go", "Rust Basics")
	ctx := context.Background()

	page, hit, err := f.join.GetPaginatedCoursesWithEnrollmentStatus(ctx, 7, 1, 10, "go")
	require.NoError(t, err)
	assert.False(t, hit)
	require.Len(t, page.Data, 2)
	assert.Nil(t, page.Data[1].UserEnrollment)

	_, err = f.enrollments.Create(ctx, validCreate(7, 2))
	require.NoError(t, err)

	page, hit, err = f.join.GetPaginatedCoursesWithEnrollmentStatus(ctx, 7, 1, 10, "go")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 2, page.Pagination.Total)
	require.NotNil(t, page.Data[1].UserEnrollment)
	assert.Equal(t, models.EnrollmentStatusInProgress, page.Data[1].UserEnrollment.Status)
}

func TestJoinValidatesUserAndPropagatesStoreErrors(t *testing.T) {
	f := newJoinFixture(t, "A")
	ctx := context.Background()

	_, err := f.join.GetUserEnrolledCourses(ctx, 0)
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	f.enrollRepo.listErr = errStoreDown
	_, err = f.join.GetCoursesWithEnrollmentStatus(ctx, 1)
	assert.ErrorIs(t, err, appErrors.ErrDependency)

	f.enrollRepo.listErr = nil
	f.courseRepo.findErr = errStoreDown
	_, _, err = f.join.GetPaginatedCoursesWithEnrollmentStatus(ctx, 1, 1, 10, "")
	assert.ErrorIs(t, err, appErrors.ErrDependency)
}

func TestMergeEnrollmentsKeepsCourseOrder(t *testing.T) {
	now := time.Now()
	courses := []models.Course{{ID: 5}, {ID: 2}, {ID: 9}}
	enrollments := []models.Enrollment{{ID: 1, CourseID: 9, EnrollDate: now}, {ID: 2, CourseID: 5, EnrollDate: now}}

	merged := mergeEnrollments(courses, enrollments)
	require.Len(t, merged, 3)
	assert.Equal(t, int64(2), merged[0].UserEnrollment.ID)
	assert.Nil(t, merged[1].UserEnrollment)
	assert.Equal(t, int64(1), merged[2].UserEnrollment.ID)
}
