package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/academy-api/internal/models"
	"github.com/noah-isme/academy-api/internal/service"
	appErrors "github.com/noah-isme/academy-api/pkg/errors"
	"github.com/noah-isme/academy-api/pkg/export"
	"github.com/noah-isme/academy-api/pkg/response"
)

type enrollmentService interface {
	List(ctx context.Context) ([]models.Enrollment, error)
	Get(ctx context.Context, id int64) (*models.Enrollment, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Enrollment, error)
	ListByCourse(ctx context.Context, courseID int64) ([]models.Enrollment, error)
	ListByStatus(ctx context.Context, status models.EnrollmentStatus) ([]models.Enrollment, error)
	Create(ctx context.Context, req service.CreateEnrollmentRequest) (*models.Enrollment, error)
	Update(ctx context.Context, id int64, req service.UpdateEnrollmentRequest) (*models.Enrollment, error)
	Conclude(ctx context.Context, id int64) (*models.Enrollment, error)
	Cancel(ctx context.Context, id int64) (*models.Enrollment, error)
	Delete(ctx context.Context, id int64) error
}

type transcriptService interface {
	Export(ctx context.Context, userID int64, format export.Format) (*service.TranscriptFile, error)
}

// EnrollmentHandler exposes enrollment endpoints.
type EnrollmentHandler struct {
	enrollments enrollmentService
	joined      courseEnrollmentService
	transcripts transcriptService
	profiles    profileService
	now         func() time.Time
}

// NewEnrollmentHandler constructs EnrollmentHandler.
func NewEnrollmentHandler(enrollments enrollmentService, joined courseEnrollmentService, transcripts transcriptService, profiles profileService) *EnrollmentHandler {
	return &EnrollmentHandler{
		enrollments: enrollments,
		joined:      joined,
		transcripts: transcripts,
		profiles:    profiles,
		now:         time.Now,
	}
}

// List godoc
// @Summary List enrollments
// @Tags Enrollments
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /enrollments [get]
func (h *EnrollmentHandler) List(c *gin.Context) {
	enrollments, err := h.enrollments.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "", enrollments)
}

// ByStatus godoc
// @Summary List enrollments by status
// @Tags Enrollments
// @Produce json
// @Param status query string true "in_progress, concluded, canceled or fail"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /enrollments/status [get]
func (h *EnrollmentHandler) ByStatus(c *gin.Context) {
	status := models.EnrollmentStatus(strings.ToLower(strings.TrimSpace(c.Query("status"))))
	enrollments, err := h.enrollments.ListByStatus(c.Request.Context(), status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "", enrollments)
}

// ByUser godoc
// @Summary List a user's enrollments
// @Tags Enrollments
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} response.Envelope
// @Router /enrollments/user/{userId} [get]
func (h *EnrollmentHandler) ByUser(c *gin.Context) {
	userID, err := pathID(c, "userId")
	if err != nil {
		response.Error(c, err)
		return
	}

	enrollments, err := h.enrollments.ListByUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "", enrollments)
}

// UserCourses godoc
// @Summary Courses a user is enrolled in
// @Tags Enrollments
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} response.Envelope
// @Router /enrollments/user/{userId}/courses [get]
func (h *EnrollmentHandler) UserCourses(c *gin.Context) {
	userID, err := pathID(c, "userId")
	if err != nil {
		response.Error(c, err)
		return
	}

	courses, err := h.joined.GetUserEnrolledCourses(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "", courses)
}

// ExportUserCourses godoc
// @Summary Export a user's transcript
// @Tags Enrollments
// @Produce text/csv
// @Produce application/pdf
// @Param userId path int true "User ID"
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /enrollments/user/{userId}/courses/export [get]
func (h *EnrollmentHandler) ExportUserCourses(c *gin.Context) {
	userID, err := pathID(c, "userId")
	if err != nil {
		response.Error(c, err)
		return
	}

	format, err := export.ParseFormat(strings.ToLower(c.Query("format")))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "format must be csv or pdf"))
		return
	}

	file, err := h.transcripts.Export(c.Request.Context(), userID, format)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Content)
}

// ByCourse godoc
// @Summary List a course's enrollments
// @Tags Enrollments
// @Produce json
// @Param courseId path int true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /enrollments/course/{courseId} [get]
func (h *EnrollmentHandler) ByCourse(c *gin.Context) {
	courseID, err := pathID(c, "courseId")
	if err != nil {
		response.Error(c, err)
		return
	}

	enrollments, err := h.enrollments.ListByCourse(c.Request.Context(), courseID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "", enrollments)
}

// Get godoc
// @Summary Get enrollment
// @Tags Enrollments
// @Produce json
// @Param id path int true "Enrollment ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /enrollments/{id} [get]
func (h *EnrollmentHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	enrollment, err := h.enrollments.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "", enrollment)
}

// Create godoc
// @Summary Enroll in a course
// @Description enroll_date defaults to now, status to in_progress and user_id to the caller. Enrolling another user requires admin.
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param payload body service.CreateEnrollmentRequest true "Enrollment payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /enrollments [post]
func (h *EnrollmentHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.CreateEnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}

	if req.UserID < 0 {
		response.Error(c, appErrors.Validation("user id must be positive"))
		return
	}
	if req.UserID == 0 {
		req.UserID = claims.UserID
	}
	if !h.actsFor(c, claims, req.UserID, "cannot enroll another user") {
		return
	}
	if req.EnrollDate == nil {
		now := h.now()
		req.EnrollDate = &now
	}
	if req.Status == "" {
		req.Status = models.EnrollmentStatusInProgress
	}

	enrollment, err := h.enrollments.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "enrollment created", enrollment)
}

// Update godoc
// @Summary Update enrollment
// @Tags Enrollments
// @Accept json
// @Produce json
// @Param id path int true "Enrollment ID"
// @Param payload body service.UpdateEnrollmentRequest true "Fields to change"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /enrollments/{id} [put]
func (h *EnrollmentHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req service.UpdateEnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}

	enrollment, err := h.enrollments.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "enrollment updated", enrollment)
}

// Conclude godoc
// @Summary Mark enrollment concluded
// @Tags Enrollments
// @Produce json
// @Param id path int true "Enrollment ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /enrollments/{id}/conclude [patch]
func (h *EnrollmentHandler) Conclude(c *gin.Context) {
	h.transition(c, "enrollment concluded", h.enrollments.Conclude)
}

// Cancel godoc
// @Summary Cancel enrollment
// @Description Allowed for the enrollment's owner and for admins.
// @Tags Enrollments
// @Produce json
// @Param id path int true "Enrollment ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /enrollments/{id}/cancel [patch]
func (h *EnrollmentHandler) Cancel(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	existing, err := h.enrollments.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !h.actsFor(c, claims, existing.UserID, "cannot cancel another user's enrollment") {
		return
	}

	h.transition(c, "enrollment canceled", h.enrollments.Cancel)
}

// actsFor reports whether the caller may act on userID's behalf: the caller
// is that user or an admin. On refusal the error response is already written.
func (h *EnrollmentHandler) actsFor(c *gin.Context, claims *models.JWTClaims, userID int64, denial string) bool {
	if userID == claims.UserID {
		return true
	}
	profile, err := h.profiles.ResolveProfile(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return false
	}
	if profile.Type != models.UserTypeAdmin {
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, denial))
		return false
	}
	return true
}

func (h *EnrollmentHandler) transition(c *gin.Context, message string, apply func(context.Context, int64) (*models.Enrollment, error)) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	enrollment, err := apply(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, message, enrollment)
}

// Delete godoc
// @Summary Delete enrollment
// @Tags Enrollments
// @Param id path int true "Enrollment ID"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /enrollments/{id} [delete]
func (h *EnrollmentHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.enrollments.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
