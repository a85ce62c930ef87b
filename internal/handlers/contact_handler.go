package handlers

import (
	"net/http"
	"strings"

	"association-site-api/internal/models"
	"association-site-api/internal/store"

	"github.com/gin-gonic/gin"
)

// ContactRequest represents a contact form submission
type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required,max=5000"`
}

// CreateContactMessage handles POST /api/contact
func (h *Handler) CreateContactMessage(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg := models.ContactMessage{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Subject: strings.TrimSpace(req.Subject),
		Message: req.Message,
	}
	if err := store.CreateContactMessage(c.Request.Context(), h.DB, &msg); err != nil {
		respondStoreError(c, err, "contact message")
		return
	}
	h.Sources.InvalidateContact()

	c.JSON(http.StatusCreated, gin.H{
		"message": "Message received",
		"id":      msg.ID,
	})
}

// ListContactMessages handles GET /api/admin/messages
// Optional query param: unread=true
// Messages are read straight from the database; they are not cached.
func (h *Handler) ListContactMessages(c *gin.Context) {
	msgs, err := store.ListContactMessages(c.Request.Context(), h.DB, c.Query("unread") == "true")
	if err != nil {
		respondStoreError(c, err, "contact messages")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"messages": msgs,
		"count":    len(msgs),
	})
}

// MarkContactMessageRead handles PATCH /api/admin/messages/:id/read
func (h *Handler) MarkContactMessageRead(c *gin.Context) {
	id := c.Param("id")
	if err := store.MarkContactMessageRead(c.Request.Context(), h.DB, id); err != nil {
		respondStoreError(c, err, "contact message")
		return
	}
	h.Sources.InvalidateContact()

	c.JSON(http.StatusOK, gin.H{"message": "Message marked as read", "id": id})
}
