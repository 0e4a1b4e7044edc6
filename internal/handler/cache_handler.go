package handler

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/academy-api/pkg/errors"
	"github.com/noah-isme/academy-api/pkg/response"
)

type cacheInvalidator interface {
	Invalidate(ctx context.Context, pattern string) error
}

// CacheHandler exposes operator cache maintenance.
type CacheHandler struct {
	cache cacheInvalidator
}

// NewCacheHandler constructs a CacheHandler.
func NewCacheHandler(cache cacheInvalidator) *CacheHandler {
	return &CacheHandler{cache: cache}
}

// Flush godoc
// @Summary Drop cached entries
// @Description Deletes every key matching pattern. Without a pattern the whole cache is dropped.
// @Tags System
// @Produce json
// @Param pattern query string false "Redis glob, e.g. courses:paginated:*"
// @Success 200 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /cache [delete]
func (h *CacheHandler) Flush(c *gin.Context) {
	pattern := strings.TrimSpace(c.Query("pattern"))
	if pattern == "" {
		pattern = "*"
	}

	if err := h.cache.Invalidate(c.Request.Context(), pattern); err != nil {
		response.Error(c, appErrors.Dependency(err, "failed to flush cache"))
		return
	}
	response.OK(c, "cache flushed", gin.H{"pattern": pattern})
}
