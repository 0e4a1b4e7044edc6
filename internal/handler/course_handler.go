package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/academy-api/internal/middleware"
	"github.com/noah-isme/academy-api/internal/models"
	"github.com/noah-isme/academy-api/internal/service"
	appErrors "github.com/noah-isme/academy-api/pkg/errors"
	"github.com/noah-isme/academy-api/pkg/response"
)

type courseService interface {
	List(ctx context.Context) ([]models.Course, error)
	ListActive(ctx context.Context) ([]models.Course, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]models.Course, error)
	GetPaginated(ctx context.Context, page, limit int, search string) (*models.PaginatedResult[models.Course], bool, error)
	Get(ctx context.Context, id int64) (*models.Course, error)
	Create(ctx context.Context, req service.CreateCourseRequest) (*models.Course, error)
	Update(ctx context.Context, id int64, req service.UpdateCourseRequest) (*models.Course, error)
	Delete(ctx context.Context, id int64) error
}

type courseEnrollmentService interface {
	GetUserEnrolledCourses(ctx context.Context, userID int64) ([]models.CourseWithEnrollment, error)
	GetCoursesWithEnrollmentStatus(ctx context.Context, userID int64) ([]models.CourseWithEnrollment, error)
	GetPaginatedCoursesWithEnrollmentStatus(ctx context.Context, userID int64, page, limit int, search string) (*models.PaginatedResult[models.CourseWithEnrollment], bool, error)
}

// CourseHandler exposes course catalog endpoints.
type CourseHandler struct {
	courses courseService
	joined  courseEnrollmentService
}

// NewCourseHandler constructs a CourseHandler.
func NewCourseHandler(courses courseService, joined courseEnrollmentService) *CourseHandler {
	return &CourseHandler{courses: courses, joined: joined}
}

// List godoc
// @Summary List courses
// @Tags Courses
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /courses [get]
func (h *CourseHandler) List(c *gin.Context) {
	courses, err := h.courses.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "", courses)
}

// Active godoc
// @Summary List courses that have not ended
// @Tags Courses
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /courses/active [get]
func (h *CourseHandler) Active(c *gin.Context) {
	courses, err := h.courses.ListActive(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "", courses)
}

// DateRange godoc
// @Summary List courses inside a date window
// @Tags Courses
// @Produce json
// @Param startDate query string true "Window start (YYYY-MM-DD)"
// @Param endDate query string true "Window end (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /courses/date-range [get]
func (h *CourseHandler) DateRange(c *gin.Context) {
	from, err := queryDate(c, "startDate")
	if err != nil {
		response.Error(c, err)
		return
	}
	to, err := queryDate(c, "endDate")
	if err != nil {
		response.Error(c, err)
		return
	}

	courses, err := h.courses.ListByDateRange(c.Request.Context(), from, to)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "", courses)
}

// Paginated godoc
// @Summary Paginated course listing
// @Description Served from the listing cache when available. X-Cache reports HIT or MISS.
// @Tags Courses
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param search query string false "Case-insensitive name filter"
// @Success 200 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /courses/paginated [get]
func (h *CourseHandler) Paginated(c *gin.Context) {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 0)

	result, hit, err := h.courses.GetPaginated(c.Request.Context(), page, limit, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	middleware.SetCacheHit(c, hit)
	response.JSON(c, http.StatusOK, "", result.Data, &result.Pagination, middleware.ExtractMeta(c))
}

// WithEnrollment godoc
// @Summary Courses with the caller's enrollment
// @Tags Courses
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /courses/with-enrollment [get]
func (h *CourseHandler) WithEnrollment(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	courses, err := h.joined.GetCoursesWithEnrollmentStatus(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "", courses)
}

// PaginatedWithEnrollment godoc
// @Summary Paginated courses with the caller's enrollment
// @Tags Courses
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param search query string false "Case-insensitive name filter"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /courses/paginated/with-enrollment [get]
func (h *CourseHandler) PaginatedWithEnrollment(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 0)

	result, hit, err := h.joined.GetPaginatedCoursesWithEnrollmentStatus(c.Request.Context(), claims.UserID, page, limit, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	middleware.SetCacheHit(c, hit)
	response.JSON(c, http.StatusOK, "", result.Data, &result.Pagination, middleware.ExtractMeta(c))
}

// Get godoc
// @Summary Get course
// @Tags Courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /courses/{id} [get]
func (h *CourseHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	course, err := h.courses.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "", course)
}

// Create godoc
// @Summary Create course
// @Tags Courses
// @Accept json
// @Produce json
// @Param payload body service.CreateCourseRequest true "Course payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /courses [post]
func (h *CourseHandler) Create(c *gin.Context) {
	var req service.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}

	course, err := h.courses.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "course created", course)
}

// Update godoc
// @Summary Update course
// @Tags Courses
// @Accept json
// @Produce json
// @Param id path int true "Course ID"
// @Param payload body service.UpdateCourseRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /courses/{id} [put]
func (h *CourseHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req service.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}

	course, err := h.courses.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "course updated", course)
}

// Delete godoc
// @Summary Delete course
// @Tags Courses
// @Param id path int true "Course ID"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /courses/{id} [delete]
func (h *CourseHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.courses.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
