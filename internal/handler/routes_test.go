package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/academy-api/internal/models"
	"github.com/noah-isme/academy-api/internal/service"
)

type authServiceMock struct{}

func (authServiceMock) Register(ctx context.Context, req models.RegisterRequest) (*models.LoginResponse, error) {
	return &models.LoginResponse{User: models.UserProfile{Login: req.Login, Type: models.UserTypeStudent}, Token: "t"}, nil
}

func (authServiceMock) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	return &models.LoginResponse{Token: "t"}, nil
}

func (authServiceMock) Refresh(ctx context.Context, userID int64) (*models.TokenResponse, error) {
	return &models.TokenResponse{Token: "t2"}, nil
}

type userServiceMock struct {
	lastFilter models.UserFilter
}

func (m *userServiceMock) List(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	m.lastFilter = filter
	return []models.User{}, nil
}

func (m *userServiceMock) Get(ctx context.Context, id int64) (*models.User, error) {
	return &models.User{ID: id}, nil
}

func (m *userServiceMock) Create(ctx context.Context, req service.CreateUserRequest) (*models.User, error) {
	return &models.User{ID: 1, Login: req.Login}, nil
}

func (m *userServiceMock) Update(ctx context.Context, id int64, req service.UpdateUserRequest) (*models.User, error) {
	return &models.User{ID: id}, nil
}

func (m *userServiceMock) Delete(ctx context.Context, id int64) error {
	return nil
}

func newTestRouter(users *userServiceMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	profiles := &profileServiceMock{profiles: map[int64]models.UserProfile{
		1: {ID: 1, Type: models.UserTypeStudent},
		2: {ID: 2, Type: models.UserTypeAdmin},
	}}
	tokens := tokenValidatorMock{claims: map[string]*models.JWTClaims{
		"student": {UserID: 1, Type: models.UserTypeStudent},
		"admin":   {UserID: 2, Type: models.UserTypeAdmin},
	}}
	courses := &courseServiceMock{page: &models.PaginatedResult[models.Course]{Data: []models.Course{}}}
	joined := &joinedServiceMock{}
	metrics := NewMetricsHandler(metricsServiceMock{}, nil)
	cache := &cacheInvalidatorMock{}
	enrollments := &enrollmentServiceMock{owners: map[int64]int64{5: 1, 6: 2}}

	r := gin.New()
	RegisterSystemRoutes(r, metrics)
	RegisterRoutes(r.Group("/api/v1"), Handlers{
		Auth:        NewAuthHandler(authServiceMock{}, profiles),
		Users:       NewUserHandler(users),
		Courses:     NewCourseHandler(courses, joined),
		Enrollments: NewEnrollmentHandler(enrollments, joined, &transcriptServiceMock{}, profiles),
		Metrics:     metrics,
		Cache:       NewCacheHandler(cache),
	}, tokens, profiles)
	return r
}

func TestRoutesAuthorization(t *testing.T) {
	router := newTestRouter(&userServiceMock{})

	cases := []struct {
		name   string
		method string
		path   string
		token  string
		code   int
	}{
		{name: "health is public", method: http.MethodGet, path: "/health", code: http.StatusOK},
		{name: "courses need a token", method: http.MethodGet, path: "/api/v1/courses", code: http.StatusUnauthorized},
		{name: "student lists courses", method: http.MethodGet, path: "/api/v1/courses", token: "student", code: http.StatusOK},
		{name: "paginated route is not shadowed by id", method: http.MethodGet, path: "/api/v1/courses/paginated", token: "student", code: http.StatusOK},
		{name: "student cannot create courses", method: http.MethodPost, path: "/api/v1/courses", token: "student", code: http.StatusForbidden},
		{name: "student reads own enrollments", method: http.MethodGet, path: "/api/v1/enrollments/user/1", token: "student", code: http.StatusOK},
		{name: "student cannot read others", method: http.MethodGet, path: "/api/v1/enrollments/user/2", token: "student", code: http.StatusForbidden},
		{name: "admin reads anyone", method: http.MethodGet, path: "/api/v1/enrollments/user/1/courses", token: "admin", code: http.StatusOK},
		{name: "users are admin only", method: http.MethodGet, path: "/api/v1/users", token: "student", code: http.StatusForbidden},
		{name: "admin lists users", method: http.MethodGet, path: "/api/v1/users", token: "admin", code: http.StatusOK},
		{name: "bad token", method: http.MethodGet, path: "/api/v1/auth/me", token: "forged", code: http.StatusUnauthorized},
		{name: "student cancels own enrollment", method: http.MethodPatch, path: "/api/v1/enrollments/5/cancel", token: "student", code: http.StatusOK},
		{name: "student cannot cancel another's enrollment", method: http.MethodPatch, path: "/api/v1/enrollments/6/cancel", token: "student", code: http.StatusForbidden},
		{name: "admin cancels any enrollment", method: http.MethodPatch, path: "/api/v1/enrollments/5/cancel", token: "admin", code: http.StatusOK},
		{name: "cancel of missing enrollment", method: http.MethodPatch, path: "/api/v1/enrollments/99/cancel", token: "student", code: http.StatusNotFound},
		{name: "conclude stays admin only", method: http.MethodPatch, path: "/api/v1/enrollments/5/conclude", token: "student", code: http.StatusForbidden},
		{name: "cache flush is admin only", method: http.MethodDelete, path: "/api/v1/cache", token: "student", code: http.StatusForbidden},
		{name: "admin flushes cache", method: http.MethodDelete, path: "/api/v1/cache", token: "admin", code: http.StatusOK},
		{name: "me", method: http.MethodGet, path: "/api/v1/auth/me", token: "student", code: http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			if tc.token != "" {
				req.Header.Set("Authorization", "Bearer "+tc.token)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tc.code, w.Code)
		})
	}
}

func TestUserHandlerListTypeFilter(t *testing.T) {
	users := &userServiceMock{}
	router := newTestRouter(users)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users?type=professor", nil)
	req.Header.Set("Authorization", "Bearer admin")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	if assert.NotNil(t, users.lastFilter.Type) {
		assert.Equal(t, models.UserTypeInstructor, *users.lastFilter.Type)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/users?type=guest", nil)
	req.Header.Set("Authorization", "Bearer admin")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
