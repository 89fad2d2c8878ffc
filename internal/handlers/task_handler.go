package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"campusfix/internal/models"
	"campusfix/internal/pdf"
	"campusfix/internal/realtime"
	"campusfix/internal/services"
)

type TaskHandler struct {
	service   services.TaskService
	workTypes services.WorkTypeService
	uploader  Uploader
	hub       *realtime.Hub
	notifier  *services.Notifier
	pdfGen    pdf.Generator
}

func NewTaskHandler(
	service services.TaskService,
	workTypes services.WorkTypeService,
	uploader Uploader,
	hub *realtime.Hub,
	notifier *services.Notifier,
	pdfGen pdf.Generator,
) *TaskHandler {
	return &TaskHandler{
		service:   service,
		workTypes: workTypes,
		uploader:  uploader,
		hub:       hub,
		notifier:  notifier,
		pdfGen:    pdfGen,
	}
}

// taskInputFromForm collects the writable task fields from a multipart form.
func taskInputFromForm(c *gin.Context) services.TaskInput {
	workTypeID, _ := strconv.ParseInt(c.PostForm("workType"), 10, 64)
	return services.TaskInput{
		Title:           c.PostForm("title"),
		Description:     c.PostForm("description"),
		WorkTypeID:      workTypeID,
		Area:            c.PostForm("area"),
		Materials:       parseStringList(c.PostForm("materials")),
		Manpower:        c.PostForm("manpower"),
		EstimatedTime:   c.PostForm("estimatedTime"),
		Tags:            parseStringList(c.PostForm("tags")),
		SubmittedByName: c.PostForm("submittedByName"),
		WorkNature:      models.WorkNature(c.PostForm("workNature")),
	}
}

// @Summary      Create a task
// @Description  Creates an admin task in Pending status; accepts multipart with up to 5 images
// @Tags         Tasks
// @Accept       mpfd
// @Produce      json
// @Success      201  {object}  models.Task
// @Failure      400  {object}  map[string]string
// @Router       /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	userID := getUserID(c)
	log.Printf("[task][create] call by userID=%d", userID)

	urls, uerr := saveUploads(c, h.uploader, adminUploadPolicy)
	if uerr != nil {
		log.Printf("[task][create][deny] upload: %s", uerr.code)
		uerr.write(c)
		return
	}

	in := taskInputFromForm(c)
	in.Images = urls

	task, err := h.service.Create(c.Request.Context(), in, userID)
	if err != nil {
		log.Printf("[task][create][err] %v", err)
		writeServiceError(c, err, "task not found")
		return
	}
	log.Printf("[task][create][ok] id=%d title=%q", task.ID, task.Title)
	c.JSON(http.StatusCreated, task)
}

// GET /tasks
func (h *TaskHandler) GetAll(c *gin.Context) {
	log.Printf("[task][list] q=%v", c.Request.URL.RawQuery)

	filter, err := taskFilterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tasks, err := h.service.GetAll(c.Request.Context(), filter)
	if err != nil {
		log.Printf("[task][list][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve tasks"})
		return
	}
	log.Printf("[task][list][ok] count=%d", len(tasks))
	c.JSON(http.StatusOK, tasks)
}

func taskFilterFromQuery(c *gin.Context) (models.TaskFilter, error) {
	var filter models.TaskFilter
	if v, ok := c.GetQuery("status"); ok {
		st := models.TaskStatus(v)
		if !services.IsKnownStatus(st) {
			return filter, fmt.Errorf("unknown status %q", v)
		}
		filter.Status = &st
	}
	if v, ok := c.GetQuery("workType"); ok {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return filter, fmt.Errorf("invalid workType %q", v)
		}
		filter.WorkTypeID = &id
	}
	if v, ok := c.GetQuery("area"); ok {
		area := v
		filter.Area = &area
	}
	if v, ok := c.GetQuery("tags"); ok {
		filter.Tags = parseStringList(v)
	}
	if v, ok := c.GetQuery("dateFrom"); ok {
		t, err := parseDateBound(v, false)
		if err != nil {
			return filter, fmt.Errorf("invalid dateFrom %q", v)
		}
		filter.DateFrom = &t
	}
	if v, ok := c.GetQuery("dateTo"); ok {
		t, err := parseDateBound(v, true)
		if err != nil {
			return filter, fmt.Errorf("invalid dateTo %q", v)
		}
		filter.DateTo = &t
	}
	return filter, nil
}

// GET /tasks/:id
func (h *TaskHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	task, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("[task][getByID][err] id=%d: %v", id, err)
		writeServiceError(c, err, "task not found")
		return
	}
	c.JSON(http.StatusOK, task)
}

// PUT /tasks/:id — field edit; appends freshly uploaded images to the
// retained subset the client sends back in existingImages.
func (h *TaskHandler) Update(c *gin.Context) {
	userID := getUserID(c)
	log.Printf("[task][update] call by userID=%d id_param=%s", userID, c.Param("id"))

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	urls, uerr := saveUploads(c, h.uploader, adminUploadPolicy)
	if uerr != nil {
		log.Printf("[task][update][deny] upload: %s", uerr.code)
		uerr.write(c)
		return
	}

	in := services.UpdateInput{TaskInput: taskInputFromForm(c)}
	in.Images = urls
	in.ExistingImages = parseStringList(c.PostForm("existingImages"))

	task, err := h.service.Update(c.Request.Context(), id, in)
	if err != nil {
		log.Printf("[task][update][err] id=%d: %v", id, err)
		writeServiceError(c, err, "task not found")
		return
	}
	log.Printf("[task][update][ok] id=%d", id)
	c.JSON(http.StatusOK, task)
}

// DELETE /tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	userID := getUserID(c)
	log.Printf("[task][delete] call by userID=%d id_param=%s", userID, c.Param("id"))

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		log.Printf("[task][delete][err] id=%d: %v", id, err)
		writeServiceError(c, err, "task not found")
		return
	}
	log.Printf("[task][delete][ok] id=%d", id)
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}

// POST /tasks/:id/assign { "assignedTo": "J. Doe", "materials": [...], ... }
func (h *TaskHandler) Assign(c *gin.Context) {
	userID := getUserID(c)
	log.Printf("[task][assign] call by userID=%d id_param=%s", userID, c.Param("id"))

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var body struct {
		AssignedTo    string   `json:"assignedTo" binding:"required"`
		Materials     []string `json:"materials"`
		Manpower      string   `json:"manpower"`
		EstimatedTime string   `json:"estimatedTime"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.service.Assign(c.Request.Context(), id, services.AssignInput{
		AssignedTo:    body.AssignedTo,
		Materials:     body.Materials,
		Manpower:      body.Manpower,
		EstimatedTime: body.EstimatedTime,
	}, userID)
	if err != nil {
		log.Printf("[task][assign][err] id=%d: %v", id, err)
		writeServiceError(c, err, "task not found")
		return
	}
	log.Printf("[task][assign][ok] id=%d assignee=%q", id, task.AssignedTo)
	c.JSON(http.StatusOK, task)

	h.hub.TaskAssigned(task)
	h.notifier.StatusChanged(task)
}

// POST /tasks/:id/status { "status": "In Progress", "remarks": "...", "actualTime": "...", "assignedTo": "..." }
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	userID := getUserID(c)
	log.Printf("[task][status] call by userID=%d id_param=%s", userID, c.Param("id"))

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var body struct {
		Status     models.TaskStatus `json:"status" binding:"required"`
		Remarks    string            `json:"remarks"`
		ActualTime string            `json:"actualTime"`
		AssignedTo string            `json:"assignedTo"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.service.UpdateStatus(c.Request.Context(), id, services.StatusInput{
		Status:     body.Status,
		Remarks:    body.Remarks,
		ActualTime: body.ActualTime,
		AssignedTo: body.AssignedTo,
	}, userID)
	if err != nil {
		log.Printf("[task][status][err] id=%d: %v", id, err)
		writeServiceError(c, err, "task not found")
		return
	}
	log.Printf("[task][status][ok] id=%d new=%q", id, task.Status)
	c.JSON(http.StatusOK, task)

	h.hub.TaskUpdated(task)
	h.notifier.StatusChanged(task)
}

// POST /tasks/:id/approve — Awaiting Approval -> Pending
func (h *TaskHandler) Approve(c *gin.Context) {
	userID := getUserID(c)
	log.Printf("[task][approve] call by userID=%d id_param=%s", userID, c.Param("id"))

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	task, err := h.service.Approve(c.Request.Context(), id, userID)
	if err != nil {
		log.Printf("[task][approve][err] id=%d: %v", id, err)
		writeServiceError(c, err, "task not found")
		return
	}
	log.Printf("[task][approve][ok] id=%d", id)
	c.JSON(http.StatusOK, task)

	h.hub.TaskUpdated(task)
}

// POST /tasks/:id/reject — only from Awaiting Approval; removes the record.
func (h *TaskHandler) Reject(c *gin.Context) {
	userID := getUserID(c)
	log.Printf("[task][reject] call by userID=%d id_param=%s", userID, c.Param("id"))

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := h.service.Reject(c.Request.Context(), id, userID); err != nil {
		log.Printf("[task][reject][err] id=%d: %v", id, err)
		writeServiceError(c, err, "task not found")
		return
	}
	log.Printf("[task][reject][ok] id=%d", id)
	c.JSON(http.StatusOK, gin.H{"message": "Task rejected and deleted"})
}

// GET /tasks/:id/workorder — printable PDF
func (h *TaskHandler) WorkOrder(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	task, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err, "task not found")
		return
	}

	workTypeName := "Unknown"
	if wt, err := h.workTypes.GetByID(c.Request.Context(), task.WorkTypeID); err == nil {
		workTypeName = wt.Name
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=workorder-%d.pdf", task.ID))
	if err := h.pdfGen.WorkOrder(c.Writer, pdf.WorkOrderData{Task: task, WorkTypeName: workTypeName}); err != nil {
		log.Printf("[task][workorder][err] id=%d: %v", id, err)
	}
}
