package controllers

import (
	"net/http"

	"github.com/infernolabs/scmflow/app/services"
	"github.com/infernolabs/scmflow/pkg/logger"
	"github.com/infernolabs/scmflow/pkg/response"
	"github.com/infernolabs/scmflow/pkg/sse"
)

type AnalyticsController struct {
	service *services.AnalyticsService
}

func NewAnalyticsController() *AnalyticsController {
	return &AnalyticsController{service: services.NewAnalyticsService()}
}

// NewAnalyticsControllerWith injects a custom service (tests).
func NewAnalyticsControllerWith(service *services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{service: service}
}

// Summary computes every chart aggregate in one response.
func (c *AnalyticsController) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := c.service.Summary(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("analytics summary failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Failed to compute analytics.")
		return
	}

	response.JSON(w, http.StatusOK, summary)
}

// Markers geocodes every distinct order city and returns the markers in
// one batch. With many cities this blocks for a while; the stream variant
// below delivers incrementally.
func (c *AnalyticsController) Markers(w http.ResponseWriter, r *http.Request) {
	markers, err := c.service.Markers(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("analytics markers failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Failed to resolve markers.")
		return
	}

	response.JSON(w, http.StatusOK, markers)
}

// StreamMarkers pushes each resolved marker over SSE as it completes.
// Disconnecting the client cancels the remaining lookups.
func (c *AnalyticsController) StreamMarkers(w http.ResponseWriter, r *http.Request) {
	markers, err := c.service.StreamMarkers(r.Context())
	if err != nil {
		logger.WithCtx(r.Context()).Error("analytics marker stream failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Failed to resolve markers.")
		return
	}

	stream := sse.New(w, r)
	if stream == nil {
		return
	}

	for marker := range markers {
		if err := stream.Send("marker", marker); err != nil {
			logger.WithCtx(r.Context()).Warn("marker stream send failed", "error", err)
		}
		if stream.IsClosed() {
			return
		}
	}
	_ = stream.Send("done", map[string]bool{"complete": true})
}
