package models

import "time"

// Course is an offering students can enroll in.
type Course struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Cover       *string   `db:"cover" json:"cover,omitempty"`
	StartDate   time.Time `db:"start_date" json:"start_date"`
	EndDate     time.Time `db:"end_date" json:"end_date"`
}

// CourseUpdate lists the course columns a partial update may touch.
type CourseUpdate struct {
	Name        *string
	Description *string
	Cover       *string
	StartDate   *time.Time
	EndDate     *time.Time
}

// Empty reports whether no field was supplied.
func (u CourseUpdate) Empty() bool {
	return u.Name == nil && u.Description == nil && u.Cover == nil && u.StartDate == nil && u.EndDate == nil
}

// CourseWithEnrollment pairs a course with the requesting user's enrollment, if any.
type CourseWithEnrollment struct {
	Course
	UserEnrollment *Enrollment `json:"user_enrollment,omitempty"`
}
