package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jurbib/digest/app/database"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

func NewHandler(digestRepo database.DigestRepository, seenRepo database.SeenRepository, version string) *Handler {
	return &Handler{
		digestRepo: digestRepo,
		seenRepo:   seenRepo,
		version:    version,
	}
}

func (h *Handler) GetDigest(c *gin.Context) {
	d, ok := h.lookup(c)
	if !ok {
		return
	}

	c.Header("X-Digest-ID", d.ID)
	c.Header("X-Digest-Items", strconv.Itoa(d.ItemCount))
	c.Header("X-Last-Updated", d.CreatedAt.In(time.Local).Format(time.RFC3339))

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(d.HTML))
}

func (h *Handler) GetDigestRSS(c *gin.Context) {
	d, ok := h.lookup(c)
	if !ok {
		return
	}

	if d.RSS == "" {
		c.Status(http.StatusNotFound)
		return
	}

	c.Header("X-Digest-ID", d.ID)
	c.Header("X-Digest-Items", strconv.Itoa(d.ItemCount))

	c.Data(http.StatusOK, "application/xml; charset=utf-8", []byte(d.RSS))
}

func (h *Handler) ListDigests(c *gin.Context) {
	limit := defaultListLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxListLimit)
	}

	digests, err := h.digestRepo.List(c.Request.Context(), limit)
	if err != nil {
		slog.Error("Database error", "operation", "list_digests", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	summaries := make([]digestSummary, 0, len(digests))
	for _, d := range digests {
		summaries = append(summaries, digestSummary{
			ID:           d.ID,
			Title:        d.Title,
			CreatedAt:    d.CreatedAt.In(time.Local).Format(time.RFC3339),
			ItemCount:    d.ItemCount,
			SectionCount: d.SectionCount,
			HTML:         fmt.Sprintf("/digests/%s", d.ID),
			RSS:          fmt.Sprintf("/digests/%s/rss", d.ID),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"digests": summaries,
		"total":   len(summaries),
	})
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if count, err := h.digestRepo.Count(c.Request.Context()); err == nil {
		health["digests"] = count
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetStats(c *gin.Context) {
	ctx := c.Request.Context()

	stats := map[string]interface{}{
		"version": h.version,
	}

	digestCount, err := h.digestRepo.Count(ctx)
	if err != nil {
		slog.Error("Database error", "operation", "count_digests", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	stats["digests"] = digestCount

	seenCount, err := h.seenRepo.Count(ctx)
	if err != nil {
		slog.Error("Database error", "operation", "count_seen", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	stats["seen_items"] = seenCount

	if latest, err := h.digestRepo.Latest(ctx); err == nil && latest != nil {
		stats["latest"] = map[string]interface{}{
			"id":         latest.ID,
			"created_at": latest.CreatedAt.In(time.Local).Format(time.RFC3339),
			"items":      latest.ItemCount,
		}
	}

	c.JSON(http.StatusOK, stats)
}

// lookup resolves the :id parameter, accepting "latest", and writes the
// error response itself when it returns false.
func (h *Handler) lookup(c *gin.Context) (*database.Digest, bool) {
	id := c.Param("id")
	if id == "" {
		c.Status(http.StatusBadRequest)
		return nil, false
	}

	d, err := h.find(c.Request.Context(), id)
	if err != nil {
		slog.Error("Database error", "operation", "get_digest", "id", id, "error", err)
		c.Status(http.StatusInternalServerError)
		return nil, false
	}

	if d == nil {
		slog.Debug("Digest not found", "id", id)
		c.Status(http.StatusNotFound)
		return nil, false
	}

	return d, true
}

func (h *Handler) find(ctx context.Context, id string) (*database.Digest, error) {
	if id == "latest" {
		return h.digestRepo.Latest(ctx)
	}
	return h.digestRepo.Get(ctx, id)
}
