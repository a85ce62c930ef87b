package handlers

import (
	"net/http"

	"association-site-api/internal/models"
	"association-site-api/internal/store"

	"github.com/gin-gonic/gin"
)

// SubscribeRequest represents a newsletter sign-up
type SubscribeRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name"`
}

// UnsubscribeRequest represents a newsletter opt-out
type UnsubscribeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// NewsletterRequest represents the payload for creating a newsletter
type NewsletterRequest struct {
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body" binding:"required"`
}

// UpdateNewsletterRequest represents the payload for editing a draft
type UpdateNewsletterRequest struct {
	Subject *string `json:"subject"`
	Body    *string `json:"body"`
}

// Subscribe handles POST /api/newsletter/subscribe
func (h *Handler) Subscribe(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A valid email is required"})
		return
	}

	sub, created, err := store.Subscribe(c.Request.Context(), h.DB, req.Email, req.Name)
	if err != nil {
		respondStoreError(c, err, "subscription")
		return
	}
	h.Sources.InvalidateSubscribers()

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, sub)
}

// Unsubscribe handles POST /api/newsletter/unsubscribe
func (h *Handler) Unsubscribe(c *gin.Context) {
	var req UnsubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A valid email is required"})
		return
	}
	if err := store.Unsubscribe(c.Request.Context(), h.DB, req.Email); err != nil {
		respondStoreError(c, err, "subscription")
		return
	}
	h.Sources.InvalidateSubscribers()

	c.JSON(http.StatusOK, gin.H{"message": "Unsubscribed successfully"})
}

// ListSubscribers handles GET /api/admin/subscribers
func (h *Handler) ListSubscribers(c *gin.Context) {
	serveView(c, h.Sources.NewsletterSubscribers)
}

// DeleteSubscriber handles DELETE /api/admin/subscribers/:id
func (h *Handler) DeleteSubscriber(c *gin.Context) {
	id := c.Param("id")
	if err := store.DeleteSubscriber(c.Request.Context(), h.DB, id); err != nil {
		respondStoreError(c, err, "subscriber")
		return
	}
	h.Sources.InvalidateSubscribers()

	c.JSON(http.StatusOK, gin.H{
		"message": "Subscriber deleted successfully",
		"id":      id,
	})
}

// ListPublishedNewsletters handles GET /api/newsletters
func (h *Handler) ListPublishedNewsletters(c *gin.Context) {
	serveView(c, h.Sources.PublishedNewsletters)
}

// ListNewsletters handles GET /api/admin/newsletters
func (h *Handler) ListNewsletters(c *gin.Context) {
	serveView(c, h.Sources.Newsletters)
}

// CreateNewsletter handles POST /api/admin/newsletters
func (h *Handler) CreateNewsletter(c *gin.Context) {
	var req NewsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	n := models.Newsletter{Subject: req.Subject, Body: req.Body}
	if err := store.CreateNewsletter(c.Request.Context(), h.DB, &n); err != nil {
		respondStoreError(c, err, "newsletter")
		return
	}
	h.Sources.InvalidateNewsletters()

	c.JSON(http.StatusCreated, n)
}

// UpdateNewsletter handles PUT /api/admin/newsletters/:id
func (h *Handler) UpdateNewsletter(c *gin.Context) {
	var req UpdateNewsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	n, err := store.UpdateNewsletter(c.Request.Context(), h.DB, c.Param("id"), store.NewsletterUpdate{
		Subject: req.Subject,
		Body:    req.Body,
	})
	if err != nil {
		respondStoreError(c, err, "newsletter")
		return
	}
	h.Sources.InvalidateNewsletters()

	c.JSON(http.StatusOK, n)
}

// SendNewsletter handles POST /api/admin/newsletters/:id/send
// Delivery itself is done by the mail provider; this records the send.
func (h *Handler) SendNewsletter(c *gin.Context) {
	n, err := store.MarkNewsletterSent(c.Request.Context(), h.DB, c.Param("id"), h.Now())
	if err != nil {
		respondStoreError(c, err, "newsletter")
		return
	}
	h.Sources.InvalidateNewsletters()

	c.JSON(http.StatusOK, n)
}

// DeleteNewsletter handles DELETE /api/admin/newsletters/:id
func (h *Handler) DeleteNewsletter(c *gin.Context) {
	id := c.Param("id")
	if err := store.DeleteNewsletter(c.Request.Context(), h.DB, id); err != nil {
		respondStoreError(c, err, "newsletter")
		return
	}
	h.Sources.InvalidateNewsletters()

	c.JSON(http.StatusOK, gin.H{
		"message": "Newsletter deleted successfully",
		"id":      id,
	})
}
