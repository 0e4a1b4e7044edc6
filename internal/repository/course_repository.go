package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/academy-api/internal/models"
)

const courseColumns = `id, name, description, cover, start_date, end_date`

// CourseRepository provides database access for courses.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository creates a new CourseRepository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// FindAll returns every course ordered by id.
func (r *CourseRepository) FindAll(ctx context.Context) ([]models.Course, error) {
	query := fmt.Sprintf("SELECT %s FROM courses ORDER BY id", courseColumns)
	courses := []models.Course{}
	if err := r.db.SelectContext(ctx, &courses, query); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// FindActive returns courses that have not ended at the given instant.
func (r *CourseRepository) FindActive(ctx context.Context, at time.Time) ([]models.Course, error) {
	query := fmt.Sprintf("SELECT %s FROM courses WHERE end_date >= $1 ORDER BY start_date", courseColumns)
	courses := []models.Course{}
	if err := r.db.SelectContext(ctx, &courses, query, at); err != nil {
		return nil, fmt.Errorf("list active courses: %w", err)
	}
	return courses, nil
}

// FindByDateRange returns courses fully contained in [from, to].
func (r *CourseRepository) FindByDateRange(ctx context.Context, from, to time.Time) ([]models.Course, error) {
	query := fmt.Sprintf("SELECT %s FROM courses WHERE start_date >= $1 AND end_date <= $2 ORDER BY start_date", courseColumns)
	courses := []models.Course{}
	if err := r.db.SelectContext(ctx, &courses, query, from, to); err != nil {
		return nil, fmt.Errorf("list courses by date range: %w", err)
	}
	return courses, nil
}

// FindByID returns a course or sql.ErrNoRows.
func (r *CourseRepository) FindByID(ctx context.Context, id int64) (*models.Course, error) {
	query := fmt.Sprintf("SELECT %s FROM courses WHERE id = $1", courseColumns)
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find course %d: %w", id, err)
	}
	return &course, nil
}

// Create inserts the course and stores the generated id on it.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	const query = `INSERT INTO courses (name, description, cover, start_date, end_date) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, course.Name, course.Description, course.Cover, course.StartDate, course.EndDate).Scan(&course.ID); err != nil {
		return translate(err, "create course")
	}
	return nil
}

// Update applies the supplied fields and reports the affected row count.
func (r *CourseRepository) Update(ctx context.Context, id int64, update models.CourseUpdate) (int64, error) {
	var set setClause
	if update.Name != nil {
		set.add("name", *update.Name)
	}
	if update.Description != nil {
		set.add("description", *update.Description)
	}
	if update.Cover != nil {
		set.add("cover", *update.Cover)
	}
	if update.StartDate != nil {
		set.add("start_date", *update.StartDate)
	}
	if update.EndDate != nil {
		set.add("end_date", *update.EndDate)
	}
	if set.empty() {
		return 0, nil
	}

	query, args := set.query("courses", id)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, translate(err, fmt.Sprintf("update course %d", id))
	}
	return res.RowsAffected()
}

// Delete removes the course and its enrollments.
func (r *CourseRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete course %d: %w", id, err)
	}
	return res.RowsAffected()
}
