package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"association-site-api/internal/cache"
	"association-site-api/internal/datasource"
	"association-site-api/internal/datasync"
	"association-site-api/internal/realtime"
	"association-site-api/internal/store"
	"association-site-api/internal/visibility"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Handler holds the collaborators shared by every endpoint.
type Handler struct {
	DB         *gorm.DB
	Cache      cache.Cache
	Sources    *datasource.Sources
	Hub        *realtime.Hub
	Visibility *visibility.Tracker
	Now        func() time.Time
}

// New returns a Handler. Sources must be built on the same cache.
func New(db *gorm.DB, sources *datasource.Sources, hub *realtime.Hub, tracker *visibility.Tracker) *Handler {
	return &Handler{
		DB:         db,
		Cache:      sources.Cache,
		Sources:    sources,
		Hub:        hub,
		Visibility: tracker,
		Now:        time.Now,
	}
}

// serveView loads through the coordinator and writes the read contract.
// ?refresh=true forces a fetch. A hard failure answers 503 with the same body.
func serveView[T any](c *gin.Context, co *datasync.Coordinator[T]) {
	serveFiltered(c, co, nil)
}

// serveFiltered is serveView with filter applied to the loaded data.
// Loads ignore request cancellation since coordinator state is shared.
func serveFiltered[T any](c *gin.Context, co *datasync.Coordinator[T], filter func(T) T) {
	force := c.Query("refresh") == "true"
	state := co.Load(context.WithoutCancel(c.Request.Context()), force)
	if filter != nil && state.HasData {
		state.Data = filter(state.Data)
	}

	status := http.StatusOK
	if state.Outcome == datasync.OutcomeFailed {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, co.ViewOf(state))
}

// respondStoreError maps store errors to HTTP responses.
func respondStoreError(c *gin.Context, err error, what string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": what + " not found"})
	case errors.Is(err, store.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": what + " already exists"})
	case errors.Is(err, store.ErrAlreadySent):
		c.JSON(http.StatusConflict, gin.H{"error": "Newsletter has already been sent"})
	default:
		log.Printf("handlers: %s: %v", what, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process " + what})
	}
}
