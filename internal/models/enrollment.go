package models

import "time"

// EnrollmentStatus represents the lifecycle of an enrollment.
type EnrollmentStatus string

// Possible enrollment statuses.
const (
	EnrollmentStatusInProgress EnrollmentStatus = "in_progress"
	EnrollmentStatusConcluded  EnrollmentStatus = "concluded"
	EnrollmentStatusCanceled   EnrollmentStatus = "canceled"
	EnrollmentStatusFail       EnrollmentStatus = "fail"
)

// EnrollmentStatuses lists every status in declaration order.
var EnrollmentStatuses = []EnrollmentStatus{
	EnrollmentStatusInProgress,
	EnrollmentStatusConcluded,
	EnrollmentStatusCanceled,
	EnrollmentStatusFail,
}

// Valid reports whether s is one of the known statuses.
func (s EnrollmentStatus) Valid() bool {
	for _, status := range EnrollmentStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Enrollment captures a user's registration to a course.
type Enrollment struct {
	ID             int64            `db:"id" json:"id"`
	EnrollDate     time.Time        `db:"enroll_date" json:"enroll_date"`
	ConclusionDate *time.Time       `db:"conclusion_date" json:"conclusion_date,omitempty"`
	UserID         int64            `db:"user_id" json:"user_id"`
	CourseID       int64            `db:"course_id" json:"course_id"`
	Status         EnrollmentStatus `db:"status" json:"status"`
}

// EnrollmentUpdate lists the enrollment columns a partial update may touch.
// ClearConclusionDate sets the column to NULL and wins over ConclusionDate.
type EnrollmentUpdate struct {
	EnrollDate          *time.Time
	ConclusionDate      *time.Time
	ClearConclusionDate bool
	UserID              *int64
	CourseID            *int64
	Status              *EnrollmentStatus
}

// Empty reports whether no field was supplied.
func (u EnrollmentUpdate) Empty() bool {
	return u.EnrollDate == nil && u.ConclusionDate == nil && !u.ClearConclusionDate &&
		u.UserID == nil && u.CourseID == nil && u.Status == nil
}
