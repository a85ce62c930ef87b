package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// InvalidateRequest names a single key or a key prefix to drop
type InvalidateRequest struct {
	Key    string `json:"key"`
	Prefix string `json:"prefix"`
}

// GetDashboardStats handles GET /api/admin/stats
func (h *Handler) GetDashboardStats(c *gin.Context) {
	serveView(c, h.Sources.DashboardStats)
}

// GetCacheInfo handles GET /api/admin/cache
func (h *Handler) GetCacheInfo(c *gin.Context) {
	keys := h.Cache.Keys()
	fresh := make(map[string]bool, len(keys))
	for _, k := range keys {
		fresh[k] = h.Cache.Has(k)
	}
	c.JSON(http.StatusOK, gin.H{
		"keys":    keys,
		"fresh":   fresh,
		"entries": h.Cache.Len(),
		"viewers": len(h.Visibility.Viewers()),
		"visible": h.Visibility.Visible(),
	})
}

// InvalidateCache handles POST /api/admin/cache/invalidate
func (h *Handler) InvalidateCache(c *gin.Context) {
	var req InvalidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	key, prefix := strings.TrimSpace(req.Key), strings.TrimSpace(req.Prefix)

	switch {
	case key != "" && prefix != "":
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide either key or prefix, not both"})
	case key != "":
		h.Cache.Delete(key)
		c.JSON(http.StatusOK, gin.H{"message": "Cache key invalidated", "key": key})
	case prefix != "":
		removed := h.Cache.InvalidatePrefix(prefix)
		c.JSON(http.StatusOK, gin.H{"message": "Cache prefix invalidated", "prefix": prefix, "removed": removed})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "key or prefix is required"})
	}
}

// ClearCache handles DELETE /api/admin/cache
func (h *Handler) ClearCache(c *gin.Context) {
	h.Cache.Clear()
	c.JSON(http.StatusOK, gin.H{"message": "Cache cleared"})
}

// PurgeExpired handles POST /api/admin/cache/purge
func (h *Handler) PurgeExpired(c *gin.Context) {
	h.Cache.PurgeExpired()
	c.JSON(http.StatusOK, gin.H{"message": "Expired entries purged", "entries": h.Cache.Len()})
}
