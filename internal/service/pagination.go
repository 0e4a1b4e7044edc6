package service

import (
	"strings"

	"github.com/noah-isme/academy-api/internal/models"
)

const (
	defaultPageLimit = 25
	maxPageLimit     = 100
)

// normalizePage coerces page to at least 1 and an out-of-range limit to the default.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > maxPageLimit {
		limit = defaultPageLimit
	}
	return page, limit
}

// paginate slices items for page. A page past the end yields empty data with accurate totals.
func paginate[T any](items []T, page, limit int) models.PaginatedResult[T] {
	total := len(items)
	offset := (page - 1) * limit
	data := []T{}
	if offset < total {
		end := offset + limit
		if end > total {
			end = total
		}
		data = append(data, items[offset:end]...)
	}
	return models.PaginatedResult[T]{
		Data:       data,
		Pagination: models.NewPagination(page, limit, total),
	}
}

func filterCoursesByName(courses []models.Course, search string) []models.Course {
	term := normalizeSearch(search)
	if term == "" {
		return courses
	}
	filtered := make([]models.Course, 0, len(courses))
	for _, course := range courses {
		if strings.Contains(strings.ToLower(course.Name), term) {
			filtered = append(filtered, course)
		}
	}
	return filtered
}
