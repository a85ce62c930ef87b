package handlers

import (
	"net/http"
	"strings"

	"association-site-api/internal/datasource"
	"association-site-api/internal/models"
	"association-site-api/internal/store"

	"github.com/gin-gonic/gin"
)

// CreateMediaRequest represents the request payload for adding a media item
type CreateMediaRequest struct {
	Title       string           `json:"title" binding:"required"`
	Description string           `json:"description"`
	URL         string           `json:"url" binding:"required,url"`
	Kind        models.MediaKind `json:"kind"`
	Category    string           `json:"category"`
}

// UpdateMediaRequest represents the request payload for updating a media item
type UpdateMediaRequest struct {
	Title       *string           `json:"title"`
	Description *string           `json:"description"`
	URL         *string           `json:"url" binding:"omitempty,url"`
	Kind        *models.MediaKind `json:"kind"`
	Category    *string           `json:"category"`
}

// ListMedia handles GET /api/media
// Optional query params: category, refresh=true
func (h *Handler) ListMedia(c *gin.Context) {
	if category := strings.TrimSpace(c.Query("category")); category != "" {
		serveFiltered(c, h.Sources.MediaItems, func(items []models.MediaItem) []models.MediaItem {
			return datasource.FilterCategory(items, category)
		})
		return
	}
	serveView(c, h.Sources.MediaItems)
}

// CreateMedia handles POST /api/admin/media
func (h *Handler) CreateMedia(c *gin.Context) {
	var req CreateMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Kind != "" && !req.Kind.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid kind"})
		return
	}

	item := models.MediaItem{
		Title:       req.Title,
		Description: req.Description,
		URL:         req.URL,
		Kind:        req.Kind,
		Category:    strings.TrimSpace(req.Category),
	}
	if err := store.CreateMedia(c.Request.Context(), h.DB, &item); err != nil {
		respondStoreError(c, err, "media item")
		return
	}
	h.Sources.InvalidateMedia()

	c.JSON(http.StatusCreated, item)
}

// UpdateMedia handles PUT /api/admin/media/:id
func (h *Handler) UpdateMedia(c *gin.Context) {
	var req UpdateMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Kind != nil && !req.Kind.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid kind"})
		return
	}

	item, err := store.UpdateMedia(c.Request.Context(), h.DB, c.Param("id"), store.MediaUpdate{
		Title:       req.Title,
		Description: req.Description,
		URL:         req.URL,
		Kind:        req.Kind,
		Category:    req.Category,
	})
	if err != nil {
		respondStoreError(c, err, "media item")
		return
	}
	h.Sources.InvalidateMedia()

	c.JSON(http.StatusOK, item)
}

// DeleteMedia handles DELETE /api/admin/media/:id
func (h *Handler) DeleteMedia(c *gin.Context) {
	id := c.Param("id")
	if err := store.DeleteMedia(c.Request.Context(), h.DB, id); err != nil {
		respondStoreError(c, err, "media item")
		return
	}
	h.Sources.InvalidateMedia()

	c.JSON(http.StatusOK, gin.H{
		"message": "Media item deleted successfully",
		"id":      id,
	})
}
