package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"campusfix/internal/services"
)

type WorkTypeHandler struct {
	service services.WorkTypeService
}

func NewWorkTypeHandler(service services.WorkTypeService) *WorkTypeHandler {
	return &WorkTypeHandler{service: service}
}

// POST /worktypes
func (h *WorkTypeHandler) Create(c *gin.Context) {
	var body struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	wt, err := h.service.Create(c.Request.Context(), body.Name, body.Description)
	if err != nil {
		log.Printf("[worktype][create][err] name=%q: %v", body.Name, err)
		writeServiceError(c, err, "work type not found")
		return
	}
	log.Printf("[worktype][create][ok] id=%d name=%q", wt.ID, wt.Name)
	c.JSON(http.StatusCreated, wt)
}

// GET /worktypes
func (h *WorkTypeHandler) GetAll(c *gin.Context) {
	list, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		log.Printf("[worktype][list][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve work types"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /worktypes/:id
func (h *WorkTypeHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	wt, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err, "work type not found")
		return
	}
	c.JSON(http.StatusOK, wt)
}

// PUT /worktypes/:id
func (h *WorkTypeHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var body struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	wt, err := h.service.Update(c.Request.Context(), id, body.Name, body.Description)
	if err != nil {
		log.Printf("[worktype][update][err] id=%d: %v", id, err)
		writeServiceError(c, err, "work type not found")
		return
	}
	log.Printf("[worktype][update][ok] id=%d", id)
	c.JSON(http.StatusOK, wt)
}

// DELETE /worktypes/:id
func (h *WorkTypeHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		log.Printf("[worktype][delete][err] id=%d: %v", id, err)
		writeServiceError(c, err, "work type not found")
		return
	}
	log.Printf("[worktype][delete][ok] id=%d", id)
	c.JSON(http.StatusOK, gin.H{"message": "Work type deleted"})
}
