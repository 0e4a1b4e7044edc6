package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/academy-api/internal/middleware"
)

// Handlers groups every HTTP handler mounted by RegisterRoutes.
type Handlers struct {
	Auth        *AuthHandler
	Users       *UserHandler
	Courses     *CourseHandler
	Enrollments *EnrollmentHandler
	Metrics     *MetricsHandler
	Cache       *CacheHandler
}

// RegisterRoutes mounts the API under api. tokens validates bearer tokens and
// profiles resolves the caller's current type for admin checks.
func RegisterRoutes(api *gin.RouterGroup, h Handlers, tokens middleware.TokenValidator, profiles middleware.ProfileResolver) {
	authn := middleware.JWT(tokens)
	admin := middleware.RequireAdmin(profiles)

	auth := api.Group("/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.GET("/me", authn, h.Auth.Me)
	auth.POST("/refresh", authn, h.Auth.Refresh)

	users := api.Group("/users", authn, admin)
	users.GET("", h.Users.List)
	users.GET("/:id", h.Users.Get)
	users.POST("", h.Users.Create)
	users.PUT("/:id", h.Users.Update)
	users.DELETE("/:id", h.Users.Delete)

	courses := api.Group("/courses", authn)
	courses.GET("", h.Courses.List)
	courses.GET("/active", h.Courses.Active)
	courses.GET("/date-range", h.Courses.DateRange)
	courses.GET("/paginated", h.Courses.Paginated)
	courses.GET("/paginated/with-enrollment", h.Courses.PaginatedWithEnrollment)
	courses.GET("/with-enrollment", h.Courses.WithEnrollment)
	courses.GET("/:id", h.Courses.Get)
	courses.POST("", admin, h.Courses.Create)
	courses.PUT("/:id", admin, h.Courses.Update)
	courses.DELETE("/:id", admin, h.Courses.Delete)

	self := middleware.RequireSelfOrAdmin(profiles, "userId")
	enrollments := api.Group("/enrollments", authn)
	enrollments.GET("", admin, h.Enrollments.List)
	enrollments.GET("/status", admin, h.Enrollments.ByStatus)
	enrollments.GET("/user/:userId", self, h.Enrollments.ByUser)
	enrollments.GET("/user/:userId/courses", self, h.Enrollments.UserCourses)
	enrollments.GET("/user/:userId/courses/export", self, h.Enrollments.ExportUserCourses)
	enrollments.GET("/course/:courseId", admin, h.Enrollments.ByCourse)
	enrollments.GET("/:id", admin, h.Enrollments.Get)
	enrollments.POST("", h.Enrollments.Create)
	enrollments.PUT("/:id", admin, h.Enrollments.Update)
	enrollments.PATCH("/:id/conclude", admin, h.Enrollments.Conclude)
	enrollments.PATCH("/:id/cancel", h.Enrollments.Cancel)
	enrollments.DELETE("/:id", admin, h.Enrollments.Delete)

	api.GET("/metrics/summary", authn, admin, h.Metrics.Summary)
	api.DELETE("/cache", authn, admin, h.Cache.Flush)
}

// RegisterSystemRoutes mounts unauthenticated probes and the Prometheus endpoint at the root.
func RegisterSystemRoutes(r gin.IRoutes, h *MetricsHandler) {
	r.GET("/health", h.Health)
	r.GET("/ready", h.Ready)
	r.GET("/metrics", h.Prometheus)
}
