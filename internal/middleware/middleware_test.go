package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/academy-api/internal/models"
	appErrors "github.com/noah-isme/academy-api/pkg/errors"
)

type stubValidator struct {
	claims *models.JWTClaims
}

func (s stubValidator) ValidateToken(token string) (*models.JWTClaims, error) {
	if token != "good" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")
	}
	return s.claims, nil
}

type stubResolver struct {
	profiles map[int64]models.UserProfile
	calls    int
}

func (s *stubResolver) ResolveProfile(ctx context.Context, id int64) (*models.UserProfile, error) {
	s.calls++
	p, ok := s.profiles[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}
	return &p, nil
}

type recordingObserver struct {
	path   string
	status int
}

func (r *recordingObserver) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	r.path = path
	r.status = status
}

func newTestRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handlers...)
	return r
}

func serve(r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestJWT(t *testing.T) {
	r := newTestRouter(JWT(stubValidator{claims: &models.JWTClaims{UserID: 3}}))
	r.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": Claims(c).UserID})
	})

	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/me", "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/me", "bad").Code)

	rec := serve(r, http.MethodGet, "/me", "good")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":3}`, rec.Body.String())
}

func TestOptionalJWT(t *testing.T) {
	r := newTestRouter(OptionalJWT(stubValidator{claims: &models.JWTClaims{UserID: 3}}))
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"authenticated": Claims(c) != nil})
	})

	assert.JSONEq(t, `{"authenticated":false}`, serve(r, http.MethodGet, "/", "bad").Body.String())
	assert.JSONEq(t, `{"authenticated":true}`, serve(r, http.MethodGet, "/", "good").Body.String())
}

func TestRequireAdmin(t *testing.T) {
	resolver := &stubResolver{profiles: map[int64]models.UserProfile{
		1: {ID: 1, Type: models.UserTypeAdmin},
		2: {ID: 2, Type: models.UserTypeStudent},
	}}
	cases := []struct {
		userID int64
		want   int
	}{
		{userID: 1, want: http.StatusOK},
		{userID: 2, want: http.StatusForbidden},
		{userID: 9, want: http.StatusUnauthorized},
	}
	for _, tc := range cases {
		r := newTestRouter(JWT(stubValidator{claims: &models.JWTClaims{UserID: tc.userID, Type: models.UserTypeAdmin}}), RequireAdmin(resolver))
		r.GET("/users", func(c *gin.Context) { c.Status(http.StatusOK) })
		assert.Equal(t, tc.want, serve(r, http.MethodGet, "/users", "good").Code, "user %d", tc.userID)
	}
}

func TestRequireSelfOrAdmin(t *testing.T) {
	resolver := &stubResolver{profiles: map[int64]models.UserProfile{2: {ID: 2, Type: models.UserTypeStudent}}}
	r := newTestRouter(JWT(stubValidator{claims: &models.JWTClaims{UserID: 2}}))
	r.GET("/users/:userId/courses", RequireSelfOrAdmin(resolver, "userId"), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/users/2/courses", "good").Code)
	assert.Zero(t, resolver.calls)
	assert.Equal(t, http.StatusForbidden, serve(r, http.MethodGet, "/users/5/courses", "good").Code)
}

func TestMetricsUsesRouteTemplate(t *testing.T) {
	observer := &recordingObserver{}
	r := newTestRouter(Metrics(observer))
	r.GET("/courses/:id", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	serve(r, http.MethodGet, "/courses/17", "")
	assert.Equal(t, "/courses/:id", observer.path)
	assert.Equal(t, http.StatusTeapot, observer.status)

	serve(r, http.MethodGet, "/nope", "")
	assert.Equal(t, "unmatched", observer.path)
}

func TestResponseMeta(t *testing.T) {
	r := newTestRouter(WithResponseMeta())
	r.GET("/plain", func(c *gin.Context) { c.JSON(http.StatusOK, ExtractMeta(c)) })
	r.GET("/cached", func(c *gin.Context) {
		SetCacheHit(c, true)
		c.JSON(http.StatusOK, ExtractMeta(c))
	})

	assert.Equal(t, "null", serve(r, http.MethodGet, "/plain", "").Body.String())

	rec := serve(r, http.MethodGet, "/cached", "")
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
	var meta map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &meta))
	assert.Equal(t, true, meta["cache_hit"])
	assert.Contains(t, meta, "processing_time_ms")
}

func TestRateLimitPerClientIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	clock := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	limiter := NewIPRateLimiter(2, time.Minute)
	limiter.now = func() time.Time { return clock }

	r := gin.New()
	r.Use(RateLimit(limiter))
	r.GET("/courses", func(c *gin.Context) { c.Status(http.StatusOK) })

	call := func(remote string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/courses", nil)
		req.RemoteAddr = remote
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, call("192.0.2.1:4000").Code)
	assert.Equal(t, http.StatusOK, call("192.0.2.1:4001").Code)

	w := call("192.0.2.1:4002")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "30", w.Header().Get("Retry-After"))
	var body struct {
		Success bool             `json:"success"`
		Error   *appErrors.Error `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	require.NotNil(t, body.Error)
	assert.Equal(t, appErrors.ErrTooManyRequests.Code, body.Error.Code)

	assert.Equal(t, http.StatusOK, call("198.51.100.7:4000").Code)

	clock = clock.Add(30 * time.Second)
	assert.Equal(t, http.StatusOK, call("192.0.2.1:4003").Code)
	assert.Equal(t, http.StatusTooManyRequests, call("192.0.2.1:4004").Code)
}

func TestIPRateLimiterDropsIdleVisitors(t *testing.T) {
	clock := time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)
	limiter := NewIPRateLimiter(1, time.Hour)
	limiter.now = func() time.Time { return clock }

	assert.True(t, limiter.Allow("192.0.2.1"))
	assert.False(t, limiter.Allow("192.0.2.1"))

	clock = clock.Add(idleVisitorTTL)
	assert.True(t, limiter.Allow("198.51.100.7"))
	assert.Len(t, limiter.visitors, 1)
	assert.True(t, limiter.Allow("192.0.2.1"))
}
