package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/academy-api/internal/models"
	"github.com/noah-isme/academy-api/internal/repository"
	appErrors "github.com/noah-isme/academy-api/pkg/errors"
)

type enrollmentRepository interface {
	FindAll(ctx context.Context) ([]models.Enrollment, error)
	FindByID(ctx context.Context, id int64) (*models.Enrollment, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Enrollment, error)
	ListByCourse(ctx context.Context, courseID int64) ([]models.Enrollment, error)
	ListByStatus(ctx context.Context, status models.EnrollmentStatus) ([]models.Enrollment, error)
	Create(ctx context.Context, enrollment *models.Enrollment) error
	Update(ctx context.Context, id int64, update models.EnrollmentUpdate) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

// CreateEnrollmentRequest is the payload for a new enrollment.
type CreateEnrollmentRequest struct {
	EnrollDate     *time.Time              `json:"enroll_date"`
	ConclusionDate *time.Time              `json:"conclusion_date"`
	UserID         int64                   `json:"user_id"`
	CourseID       int64                   `json:"course_id"`
	Status         models.EnrollmentStatus `json:"status"`
}

// UpdateEnrollmentRequest modifies any subset of enrollment fields.
// ClearConclusionDate resets the conclusion date to null.
type UpdateEnrollmentRequest struct {
	EnrollDate          *time.Time               `json:"enroll_date"`
	ConclusionDate      *time.Time               `json:"conclusion_date"`
	ClearConclusionDate bool                     `json:"clear_conclusion_date"`
	UserID              *int64                   `json:"user_id"`
	CourseID            *int64                   `json:"course_id"`
	Status              *models.EnrollmentStatus `json:"status"`
}

// EnrollmentService validates and performs enrollment lifecycle transitions.
// Writes never touch the listing cache.
type EnrollmentService struct {
	repo   enrollmentRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewEnrollmentService constructs the service.
func NewEnrollmentService(repo enrollmentRepository, logger *zap.Logger) *EnrollmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{repo: repo, logger: logger, now: time.Now}
}

// List returns every enrollment.
func (s *EnrollmentService) List(ctx context.Context) ([]models.Enrollment, error) {
	enrollments, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, appErrors.Dependency(err, "failed to list enrollments")
	}
	return enrollments, nil
}

// Get returns an enrollment by id.
func (s *EnrollmentService) Get(ctx context.Context, id int64) (*models.Enrollment, error) {
	enrollment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
		}
		return nil, appErrors.Dependency(err, fmt.Sprintf("failed to load enrollment %d", id))
	}
	return enrollment, nil
}

// ListByUser returns the enrollments held by a user.
func (s *EnrollmentService) ListByUser(ctx context.Context, userID int64) ([]models.Enrollment, error) {
	if userID <= 0 {
		return nil, appErrors.Validation("user id must be positive")
	}
	enrollments, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Dependency(err, fmt.Sprintf("failed to list enrollments for user %d", userID))
	}
	return enrollments, nil
}

// ListByCourse returns the enrollments of a course.
func (s *EnrollmentService) ListByCourse(ctx context.Context, courseID int64) ([]models.Enrollment, error) {
	if courseID <= 0 {
		return nil, appErrors.Validation("course id must be positive")
	}
	enrollments, err := s.repo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, appErrors.Dependency(err, fmt.Sprintf("failed to list enrollments for course %d", courseID))
	}
	return enrollments, nil
}

// ListByStatus returns enrollments in the given status.
func (s *EnrollmentService) ListByStatus(ctx context.Context, status models.EnrollmentStatus) ([]models.Enrollment, error) {
	if !status.Valid() {
		return nil, appErrors.Validation("invalid enrollment status")
	}
	enrollments, err := s.repo.ListByStatus(ctx, status)
	if err != nil {
		return nil, appErrors.Dependency(err, fmt.Sprintf("failed to list %s enrollments", status))
	}
	return enrollments, nil
}

// Create validates and inserts an enrollment. The store enforces one
// enrollment per (user, course); a duplicate surfaces as a conflict.
func (s *EnrollmentService) Create(ctx context.Context, req CreateEnrollmentRequest) (*models.Enrollment, error) {
	if req.UserID <= 0 {
		return nil, appErrors.Validation("user id must be positive")
	}
	if req.CourseID <= 0 {
		return nil, appErrors.Validation("course id must be positive")
	}
	if req.EnrollDate == nil || req.EnrollDate.IsZero() {
		return nil, appErrors.Validation("enroll date is required")
	}
	if !req.Status.Valid() {
		return nil, appErrors.Validation("invalid enrollment status")
	}
	if req.ConclusionDate != nil && !req.ConclusionDate.After(*req.EnrollDate) {
		return nil, appErrors.Validation("conclusion date must be after enroll date")
	}

	enrollment := &models.Enrollment{
		EnrollDate:     *req.EnrollDate,
		ConclusionDate: req.ConclusionDate,
		UserID:         req.UserID,
		CourseID:       req.CourseID,
		Status:         req.Status,
	}
	if err := s.repo.Create(ctx, enrollment); err != nil {
		return nil, storeWriteError(err, "failed to create enrollment")
	}
	s.logger.Info("enrollment created",
		zap.Int64("enrollment_id", enrollment.ID),
		zap.Int64("user_id", enrollment.UserID),
		zap.Int64("course_id", enrollment.CourseID),
	)
	return enrollment, nil
}

// Conclude marks the enrollment concluded as of now.
func (s *EnrollmentService) Conclude(ctx context.Context, id int64) (*models.Enrollment, error) {
	status := models.EnrollmentStatusConcluded
	now := s.now()
	return s.transition(ctx, id, "conclude", models.EnrollmentUpdate{Status: &status, ConclusionDate: &now})
}

// Cancel marks the enrollment canceled. The row is kept, so the (user, course)
// pair stays taken until an administrator updates or deletes it.
func (s *EnrollmentService) Cancel(ctx context.Context, id int64) (*models.Enrollment, error) {
	status := models.EnrollmentStatusCanceled
	return s.transition(ctx, id, "cancel", models.EnrollmentUpdate{Status: &status})
}

func (s *EnrollmentService) transition(ctx context.Context, id int64, op string, update models.EnrollmentUpdate) (*models.Enrollment, error) {
	affected, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return nil, appErrors.Dependency(err, fmt.Sprintf("failed to %s enrollment %d", op, id))
	}
	if affected == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
	}
	s.logger.Info("enrollment "+op, zap.Int64("enrollment_id", id), zap.String("status", string(*update.Status)))
	return s.Get(ctx, id)
}

// Update applies a partial update.
func (s *EnrollmentService) Update(ctx context.Context, id int64, req UpdateEnrollmentRequest) (*models.Enrollment, error) {
	update := models.EnrollmentUpdate{
		EnrollDate:          req.EnrollDate,
		ConclusionDate:      req.ConclusionDate,
		ClearConclusionDate: req.ClearConclusionDate,
		UserID:              req.UserID,
		CourseID:            req.CourseID,
		Status:              req.Status,
	}
	if update.Empty() {
		return nil, appErrors.Validation("at least one field must be provided")
	}
	if update.UserID != nil && *update.UserID <= 0 {
		return nil, appErrors.Validation("user id must be positive")
	}
	if update.CourseID != nil && *update.CourseID <= 0 {
		return nil, appErrors.Validation("course id must be positive")
	}
	if update.Status != nil && !update.Status.Valid() {
		return nil, appErrors.Validation("invalid enrollment status")
	}
	if update.EnrollDate != nil && update.ConclusionDate != nil && !update.ClearConclusionDate &&
		!update.ConclusionDate.After(*update.EnrollDate) {
		return nil, appErrors.Validation("conclusion date must be after enroll date")
	}

	affected, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return nil, storeWriteError(err, fmt.Sprintf("failed to update enrollment %d", id))
	}
	if affected == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
	}
	return s.Get(ctx, id)
}

// Delete removes an enrollment, freeing its (user, course) pair.
func (s *EnrollmentService) Delete(ctx context.Context, id int64) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return appErrors.Dependency(err, fmt.Sprintf("failed to delete enrollment %d", id))
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
	}
	return nil
}

// storeWriteError maps constraint failures from the store to typed errors.
func storeWriteError(err error, message string) error {
	switch {
	case errors.Is(err, repository.ErrUniqueViolation):
		return appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "user is already enrolled in this course")
	case errors.Is(err, repository.ErrForeignKeyViolation):
		return appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "user or course not found")
	default:
		return appErrors.Dependency(err, message)
	}
}
