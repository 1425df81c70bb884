package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/umputun/corteo/pkg/domain"
	"github.com/umputun/corteo/pkg/source"
)

const (
	maxIngestBody  = 4 << 20 // 4MB
	maxListLimit   = 500
	maxPushedPosts = 1000
)

// ingestRequest is a social post batch pushed by a scraper
type ingestRequest struct {
	Source domain.SourceMeta   `json:"source"`
	Posts  []source.SocialPost `json:"posts"`
}

// statusHandler returns server status with the ingest state
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	count, err := s.store.Count(r.Context())
	if err != nil {
		log.Printf("[ERROR] failed to count events: %v", err)
		RenderError(w, r, fmt.Errorf("failed to count events"), http.StatusInternalServerError)
		return
	}

	status := map[string]any{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
		"events":  count,
		"ingest":  s.ingester.Status(),
	}
	RenderJSON(w, r, http.StatusOK, status)
}

// eventsHandler lists stored events, newest first, filtered by city and category
func (s *Server) eventsHandler(w http.ResponseWriter, r *http.Request) {
	filter := domain.EventFilter{
		City:     strings.TrimSpace(r.URL.Query().Get("city")),
		Category: domain.Category(strings.TrimSpace(r.URL.Query().Get("category"))),
	}
	if filter.Category != "" && !filter.Category.Valid() {
		RenderError(w, r, fmt.Errorf("unknown category %q", filter.Category), http.StatusBadRequest)
		return
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			RenderError(w, r, fmt.Errorf("invalid limit"), http.StatusBadRequest)
			return
		}
		filter.Limit = min(limit, maxListLimit)
	}

	events, err := s.store.List(r.Context(), filter)
	if err != nil {
		log.Printf("[ERROR] failed to list events: %v", err)
		RenderError(w, r, fmt.Errorf("failed to list events"), http.StatusInternalServerError)
		return
	}
	RenderJSON(w, r, http.StatusOK, events)
}

// ingestHandler runs a pushed batch of social posts through the pipeline and returns the batch report
func (s *Server) ingestHandler(w http.ResponseWriter, r *http.Request) {
	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RenderError(w, r, fmt.Errorf("invalid request body: %w", err), http.StatusBadRequest)
		return
	}
	req.Source.Name = strings.TrimSpace(req.Source.Name)
	if req.Source.Name == "" {
		RenderError(w, r, fmt.Errorf("source name is required"), http.StatusBadRequest)
		return
	}
	if len(req.Posts) > maxPushedPosts {
		RenderError(w, r, fmt.Errorf("too many posts, max %d", maxPushedPosts), http.StatusBadRequest)
		return
	}

	report := s.ingester.IngestBatch(r.Context(), source.RawItems(req.Posts), req.Source)
	log.Printf("[INFO] pushed batch from %s: found %d, imported %d, duplicates %d, failed %d",
		req.Source.Name, report.Found, report.Imported, report.SkippedDuplicate, report.Failed)
	RenderJSON(w, r, http.StatusOK, report)
}
