package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	cases := []struct {
		name               string
		page, limit, total int
		totalPages         int
		hasNext, hasPrev   bool
	}{
		{name: "empty", page: 1, limit: 25, total: 0, totalPages: 0},
		{name: "single page", page: 1, limit: 10, total: 2, totalPages: 1},
		{name: "exact fit", page: 2, limit: 5, total: 10, totalPages: 2, hasPrev: true},
		{name: "middle", page: 2, limit: 3, total: 10, totalPages: 4, hasNext: true, hasPrev: true},
		{name: "beyond last", page: 9, limit: 3, total: 10, totalPages: 4, hasPrev: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewPagination(tc.page, tc.limit, tc.total)
			assert.Equal(t, tc.page, p.Page)
			assert.Equal(t, tc.total, p.Total)
			assert.Equal(t, tc.totalPages, p.TotalPages)
			assert.Equal(t, tc.hasNext, p.HasNext)
			assert.Equal(t, tc.hasPrev, p.HasPrev)
		})
	}
}

func TestEnrollmentStatusValid(t *testing.T) {
	for _, s := range EnrollmentStatuses {
		assert.True(t, s.Valid())
	}
	assert.False(t, EnrollmentStatus("IN_PROGRESS").Valid())
	assert.False(t, EnrollmentStatus("").Valid())
}

func TestPartialUpdatesEmpty(t *testing.T) {
	assert.True(t, EnrollmentUpdate{}.Empty())
	assert.False(t, EnrollmentUpdate{ClearConclusionDate: true}.Empty())
	assert.True(t, CourseUpdate{}.Empty())
	name := "Go"
	assert.False(t, CourseUpdate{Name: &name}.Empty())
	assert.True(t, UserUpdate{}.Empty())
}
