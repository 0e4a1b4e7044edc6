package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/academy-api/internal/models"
)

const enrollmentColumns = `id, enroll_date, conclusion_date, user_id, course_id, status`

// EnrollmentRepository handles persistence of enrollments.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository constructs the repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// FindAll returns every enrollment in insertion order.
func (r *EnrollmentRepository) FindAll(ctx context.Context) ([]models.Enrollment, error) {
	return r.list(ctx, "list enrollments", "")
}

// ListByUser returns the user's enrollments in insertion order.
func (r *EnrollmentRepository) ListByUser(ctx context.Context, userID int64) ([]models.Enrollment, error) {
	return r.list(ctx, fmt.Sprintf("list enrollments for user %d", userID), "WHERE user_id = $1", userID)
}

// ListByCourse returns the enrollments of a course.
func (r *EnrollmentRepository) ListByCourse(ctx context.Context, courseID int64) ([]models.Enrollment, error) {
	return r.list(ctx, fmt.Sprintf("list enrollments for course %d", courseID), "WHERE course_id = $1", courseID)
}

// ListByStatus returns enrollments with the given status.
func (r *EnrollmentRepository) ListByStatus(ctx context.Context, status models.EnrollmentStatus) ([]models.Enrollment, error) {
	return r.list(ctx, fmt.Sprintf("list %s enrollments", status), "WHERE status = $1", status)
}

func (r *EnrollmentRepository) list(ctx context.Context, op, where string, args ...interface{}) ([]models.Enrollment, error) {
	query := fmt.Sprintf("SELECT %s FROM enrollments %s ORDER BY id", enrollmentColumns, where)
	enrollments := []models.Enrollment{}
	if err := r.db.SelectContext(ctx, &enrollments, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return enrollments, nil
}

// FindByID returns an enrollment or sql.ErrNoRows.
func (r *EnrollmentRepository) FindByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	query := fmt.Sprintf("SELECT %s FROM enrollments WHERE id = $1", enrollmentColumns)
	var enrollment models.Enrollment
	if err := r.db.GetContext(ctx, &enrollment, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find enrollment %d: %w", id, err)
	}
	return &enrollment, nil
}

// Create persists a new enrollment. A second row for the same (user, course)
// pair fails with ErrUniqueViolation.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	const query = `INSERT INTO enrollments (enroll_date, conclusion_date, user_id, course_id, status) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	row := r.db.QueryRowxContext(ctx, query, enrollment.EnrollDate, enrollment.ConclusionDate, enrollment.UserID, enrollment.CourseID, enrollment.Status)
	if err := row.Scan(&enrollment.ID); err != nil {
		return translate(err, "create enrollment")
	}
	return nil
}

// Update applies the supplied fields and reports the affected row count.
func (r *EnrollmentRepository) Update(ctx context.Context, id int64, update models.EnrollmentUpdate) (int64, error) {
	var set setClause
	if update.EnrollDate != nil {
		set.add("enroll_date", *update.EnrollDate)
	}
	if update.ClearConclusionDate {
		set.null("conclusion_date")
	} else if update.ConclusionDate != nil {
		set.add("conclusion_date", *update.ConclusionDate)
	}
	if update.UserID != nil {
		set.add("user_id", *update.UserID)
	}
	if update.CourseID != nil {
		set.add("course_id", *update.CourseID)
	}
	if update.Status != nil {
		set.add("status", *update.Status)
	}
	if set.empty() {
		return 0, nil
	}

	query, args := set.query("enrollments", id)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, translate(err, fmt.Sprintf("update enrollment %d", id))
	}
	return res.RowsAffected()
}

// Delete removes an enrollment row.
func (r *EnrollmentRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM enrollments WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete enrollment %d: %w", id, err)
	}
	return res.RowsAffected()
}
