package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/admission-planner-api/pkg/middleware/requestid"
)

const (
	responseMetaKey  = "response_meta"
	requestStartKey  = "response_meta_start"
	metaCacheHit     = "cache_hit"
	metaFallback     = "fallback_applied"
	metaRequestID    = "request_id"
	metaProcessingMs = "processing_time_ms"
)

// WithResponseMeta starts the request clock and allocates the metadata map handlers
// append to before rendering the envelope.
func WithResponseMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(requestStartKey, time.Now())
		c.Set(responseMetaKey, map[string]interface{}{})
		c.Next()
	}
}

// SetCacheHit records whether the search result came from cache.
func SetCacheHit(c *gin.Context, hit bool) {
	SetMeta(c, metaCacheHit, hit)
}

// SetFallbackApplied records that a search was answered with near-equivalent fields.
func SetFallbackApplied(c *gin.Context, applied bool) {
	SetMeta(c, metaFallback, applied)
}

// SetMeta stores an arbitrary metadata entry for the current response.
func SetMeta(c *gin.Context, key string, value interface{}) {
	if c == nil {
		return
	}
	meta(c)[key] = value
}

// ExtractMeta returns a copy of the collected metadata with the request id and elapsed time.
// It returns nil when nothing was collected and the request clock was never started.
func ExtractMeta(c *gin.Context) map[string]interface{} {
	if c == nil {
		return nil
	}
	stored, _ := c.Get(responseMetaKey)
	collected, _ := stored.(map[string]interface{})
	started, hasStart := c.Get(requestStartKey)
	if len(collected) == 0 && !hasStart {
		return nil
	}

	out := make(map[string]interface{}, len(collected)+2)
	for k, v := range collected {
		out[k] = v
	}
	if id := requestid.Value(c); id != "" {
		out[metaRequestID] = id
	}
	if start, ok := started.(time.Time); ok {
		out[metaProcessingMs] = time.Since(start).Milliseconds()
	}
	return out
}

func meta(c *gin.Context) map[string]interface{} {
	if stored, ok := c.Get(responseMetaKey); ok {
		if typed, ok := stored.(map[string]interface{}); ok {
			return typed
		}
	}
	fresh := map[string]interface{}{}
	c.Set(responseMetaKey, fresh)
	return fresh
}
