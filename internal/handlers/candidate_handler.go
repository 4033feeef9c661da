package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/openrecruit/ats-backend/internal/dtos"
	"github.com/openrecruit/ats-backend/internal/services"
)

type CandidateHandler struct {
	Candidates *services.CandidateService
}

func NewCandidateHandler(candidates *services.CandidateService) *CandidateHandler {
	return &CandidateHandler{Candidates: candidates}
}

func (h *CandidateHandler) CreateCandidate(c *gin.Context) {
	var req dtos.CandidateCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	candidate, err := h.Candidates.Create(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, candidate)
}

func (h *CandidateHandler) GetCandidate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid candidate ID: " + c.Param("id")})
		return
	}

	candidate, err := h.Candidates.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, candidate)
}

func (h *CandidateHandler) ListCandidates(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "50"))

	candidates, meta, err := h.Candidates.List(c.Request.Context(), page, perPage)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"candidates": candidates,
		"pagination": meta,
	})
}

func (h *CandidateHandler) UpdateCandidate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid candidate ID: " + c.Param("id")})
		return
	}

	var req dtos.CandidateUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	candidate, err := h.Candidates.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, candidate)
}

func (h *CandidateHandler) DeleteCandidate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid candidate ID: " + c.Param("id")})
		return
	}

	if err := h.Candidates.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
