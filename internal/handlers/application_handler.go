package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/openrecruit/ats-backend/internal/dtos"
	"github.com/openrecruit/ats-backend/internal/models"
	"github.com/openrecruit/ats-backend/internal/services"
)

type ApplicationHandler struct {
	Applications *services.ApplicationService
	Status       *services.StatusService
	Stats        *services.StatsService
	Email        services.EmailNotifier
	Log          *zap.Logger
}

func NewApplicationHandler(apps *services.ApplicationService, status *services.StatusService, stats *services.StatsService, email services.EmailNotifier, log *zap.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		Applications: apps,
		Status:       status,
		Stats:        stats,
		Email:        email,
		Log:          log,
	}
}

// CreateApplication is the POST /applications endpoint.
func (h *ApplicationHandler) CreateApplication(c *gin.Context) {
	var req dtos.ApplicationCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	app, err := h.Applications.Create(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/api/v1/applications/%s", app.ID))
	c.JSON(http.StatusCreated, app)
}

// GetApplication is the GET /applications/:id endpoint. The response includes
// the complete ordered status history.
func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application ID: " + c.Param("id")})
		return
	}

	app, err := h.Applications.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

// ListApplications is the GET /applications endpoint with search filters,
// sorting and pagination.
func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	var query dtos.ApplicationListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	apps, meta, err := h.Applications.List(c.Request.Context(), &query)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"applications": apps,
		"pagination":   meta,
	})
}

// DeleteApplication is the DELETE /applications/:id endpoint (soft delete).
func (h *ApplicationHandler) DeleteApplication(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application ID: " + c.Param("id")})
		return
	}

	if err := h.Applications.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateStatus is the PATCH /applications/:id/status endpoint. It runs the
// transition through the lifecycle engine and fires a candidate notification
// in the background on success.
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application ID: " + c.Param("id")})
		return
	}

	var req dtos.StatusChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	newStatus := models.ApplicationStatus(req.NewStatus)
	if !newStatus.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":    "Unknown status: " + req.NewStatus,
			"statuses": models.AllStatuses(),
		})
		return
	}

	// Fetch candidate and job up front so the notification has names even
	// though the engine returns the bare application.
	app, err := h.Applications.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	oldStatus := string(app.Status)

	updated, err := h.Status.Transition(c.Request.Context(), id, newStatus, req.ChangedBy, req.Notes)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	go h.Email.SendStatusChangeEmail(
		app.Candidate.Email,
		app.Candidate.FullName,
		oldStatus,
		string(updated.Status),
		app.Job.Title,
		req.Notes,
	)

	c.JSON(http.StatusOK, updated)
}

// AllowedTransitions is the GET /applications/statuses/:status/transitions
// endpoint: transition discovery for UI dropdowns.
func (h *ApplicationHandler) AllowedTransitions(c *gin.Context) {
	status := models.ApplicationStatus(c.Param("status"))
	if !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":    "Unknown status: " + c.Param("status"),
			"statuses": models.AllStatuses(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"current_status":      status,
		"allowed_transitions": h.Status.AllowedNext(status),
	})
}

// AdvancedStats is the GET /applications/stats/advanced endpoint.
func (h *ApplicationHandler) AdvancedStats(c *gin.Context) {
	var filter services.StatsFilter

	if raw := c.Query("job_id"); raw != "" {
		jobID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job_id: " + raw})
			return
		}
		filter.JobID = &jobID
	}
	if raw := c.Query("date_from"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date_from, expected YYYY-MM-DD: " + raw})
			return
		}
		filter.DateFrom = &from
	}
	if raw := c.Query("date_to"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date_to, expected YYYY-MM-DD: " + raw})
			return
		}
		filter.DateTo = &to
	}

	report, err := h.Stats.AdvancedStats(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}
