package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"campusfix/internal/services"
)

// AdminHandler manages the admin contact directory.
type AdminHandler struct {
	service services.AdminService
}

func NewAdminHandler(service services.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

func adminInputFromBody(c *gin.Context) (services.AdminInput, bool) {
	var body struct {
		Name        string `json:"name" binding:"required"`
		Email       string `json:"email" binding:"required,email"`
		PhoneNumber string `json:"phoneNumber"`
		Campus      string `json:"campus"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return services.AdminInput{}, false
	}
	return services.AdminInput{
		Name:        body.Name,
		Email:       body.Email,
		PhoneNumber: body.PhoneNumber,
		Campus:      body.Campus,
	}, true
}

// POST /admins
func (h *AdminHandler) Create(c *gin.Context) {
	in, ok := adminInputFromBody(c)
	if !ok {
		return
	}

	admin, err := h.service.Create(c.Request.Context(), in)
	if err != nil {
		log.Printf("[admin][create][err] email=%q: %v", in.Email, err)
		writeServiceError(c, err, "admin credential not found")
		return
	}
	log.Printf("[admin][create][ok] id=%d email=%q", admin.ID, admin.Email)
	c.JSON(http.StatusCreated, admin)
}

// GET /admins
func (h *AdminHandler) GetAll(c *gin.Context) {
	list, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		log.Printf("[admin][list][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve admins"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// GET /admins/:id
func (h *AdminHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	admin, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err, "admin credential not found")
		return
	}
	c.JSON(http.StatusOK, admin)
}

// PUT /admins/:id
func (h *AdminHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	in, ok := adminInputFromBody(c)
	if !ok {
		return
	}

	admin, err := h.service.Update(c.Request.Context(), id, in)
	if err != nil {
		log.Printf("[admin][update][err] id=%d: %v", id, err)
		writeServiceError(c, err, "admin credential not found")
		return
	}
	log.Printf("[admin][update][ok] id=%d", id)
	c.JSON(http.StatusOK, admin)
}

// DELETE /admins/:id
func (h *AdminHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		log.Printf("[admin][delete][err] id=%d: %v", id, err)
		writeServiceError(c, err, "admin credential not found")
		return
	}
	log.Printf("[admin][delete][ok] id=%d", id)
	c.JSON(http.StatusOK, gin.H{"message": "Admin deleted"})
}
