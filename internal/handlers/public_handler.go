package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"campusfix/internal/models"
	"campusfix/internal/services"
)

// PublicHandler serves the unauthenticated submission surface.
type PublicHandler struct {
	tasks     services.TaskService
	workTypes services.WorkTypeService
	uploader  Uploader
	notifier  *services.Notifier
}

func NewPublicHandler(tasks services.TaskService, workTypes services.WorkTypeService, uploader Uploader, notifier *services.Notifier) *PublicHandler {
	return &PublicHandler{tasks: tasks, workTypes: workTypes, uploader: uploader, notifier: notifier}
}

// GET /public/worktypes — taxonomy for the public submission form.
func (h *PublicHandler) GetWorkTypes(c *gin.Context) {
	list, err := h.workTypes.GetAll(c.Request.Context())
	if err != nil {
		log.Printf("[public][worktypes][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve work types"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary      Submit a maintenance request
// @Description  Anonymous submission; the task lands in Awaiting Approval until an admin reviews it
// @Tags         Public
// @Accept       mpfd
// @Produce      json
// @Success      201  {object}  models.Task
// @Failure      400  {object}  map[string]string
// @Router       /public/submit [post]
func (h *PublicHandler) Submit(c *gin.Context) {
	log.Printf("[public][submit] call from=%s", c.ClientIP())

	urls, uerr := saveUploads(c, h.uploader, publicUploadPolicy)
	if uerr != nil {
		log.Printf("[public][submit][deny] upload: %s", uerr.code)
		uerr.write(c)
		return
	}

	workTypeID, _ := strconv.ParseInt(c.PostForm("workType"), 10, 64)
	in := services.TaskInput{
		Title:           c.PostForm("title"),
		Description:     c.PostForm("description"),
		WorkTypeID:      workTypeID,
		Area:            c.PostForm("area"),
		Tags:            parseStringList(c.PostForm("tags")),
		SubmittedByName: c.PostForm("submittedByName"),
		WorkNature:      models.WorkNature(c.PostForm("workNature")),
		Images:          urls,
	}

	task, err := h.tasks.CreatePublic(c.Request.Context(), in)
	if err != nil {
		log.Printf("[public][submit][err] %v", err)
		writeServiceError(c, err, "task not found")
		return
	}
	log.Printf("[public][submit][ok] id=%d title=%q images=%d", task.ID, task.Title, len(task.Images))
	c.JSON(http.StatusCreated, gin.H{
		"message": "Request submitted. It will appear once an admin approves it.",
		"task":    task,
	})

	h.notifier.PublicSubmissionReceived(task)
}
