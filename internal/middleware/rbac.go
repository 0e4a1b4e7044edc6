package middleware

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/academy-api/internal/models"
	appErrors "github.com/noah-isme/academy-api/pkg/errors"
	"github.com/noah-isme/academy-api/pkg/response"
)

// ProfileResolver loads the current profile of a user.
type ProfileResolver interface {
	ResolveProfile(ctx context.Context, id int64) (*models.UserProfile, error)
}

// RequireAdmin allows the request only when the caller is an admin. The type
// is resolved from the stored profile, not the token, so demotions apply
// once the cached profile is dropped.
func RequireAdmin(resolver ProfileResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, ok := resolveCaller(c, resolver)
		if !ok {
			return
		}
		if profile.Type != models.UserTypeAdmin {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "admin access required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireSelfOrAdmin allows admins, or callers whose id equals the named path parameter.
func RequireSelfOrAdmin(resolver ProfileResolver, param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := Claims(c)
		if claims == nil {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		if target, err := strconv.ParseInt(c.Param(param), 10, 64); err == nil && target == claims.UserID {
			c.Next()
			return
		}
		profile, ok := resolveCaller(c, resolver)
		if !ok {
			return
		}
		if profile.Type != models.UserTypeAdmin {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

func resolveCaller(c *gin.Context, resolver ProfileResolver) (*models.UserProfile, bool) {
	claims := Claims(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		c.Abort()
		return nil, false
	}
	profile, err := resolver.ResolveProfile(c.Request.Context(), claims.UserID)
	if err != nil {
		if appErr := appErrors.FromError(err); appErr.Code == appErrors.ErrNotFound.Code {
			err = appErrors.Clone(appErrors.ErrUnauthorized, "user no longer exists")
		}
		response.Error(c, err)
		c.Abort()
		return nil, false
	}
	return profile, true
}
