package schedule

import (
	"net/http"
	"strconv"

	"fitbook/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts read routes on the authenticated group and
// mutating routes on the admin group.
func (h *Handler) RegisterRoutes(authed, admin *gin.RouterGroup) {
	authed.GET("/schedules", h.List)
	authed.GET("/schedules/:slug", h.GetBySlug)
	authed.GET("/trainers/:trainerId/schedules", h.GetByTrainer)

	admin.POST("/schedules/create", h.Create)
	admin.PATCH("/schedules/:id", h.Update)
	admin.DELETE("/schedules/:id", h.Delete)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.CreatedBy == 0 {
		req.CreatedBy = c.GetInt64("user_id")
	}

	sched, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Created(c, http.StatusCreated, "Scheduling created successfully", NewScheduleResponse(sched))
}

func (h *Handler) List(c *gin.Context) {
	schedules, err := h.service.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.OK(c, http.StatusOK, "Schedulings retrieved successfully", NewScheduleListResponse(schedules))
}

func (h *Handler) GetBySlug(c *gin.Context) {
	sched, err := h.service.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.OK(c, http.StatusOK, "Scheduling retrieved successfully", NewScheduleResponse(sched))
}

func (h *Handler) GetByTrainer(c *gin.Context) {
	trainerID, err := strconv.ParseInt(c.Param("trainerId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid trainer ID")
		return
	}

	schedules, err := h.service.GetByTrainer(c.Request.Context(), trainerID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.OK(c, http.StatusOK, "Schedules retrieved successfully", NewScheduleListResponse(schedules))
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid schedule ID")
		return
	}

	var req UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	sched, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.OK(c, http.StatusOK, "Scheduling updated successfully", NewScheduleResponse(sched))
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid schedule ID")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Scheduling deleted successfully")
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "Schedule not found")
	case ErrDuplicateTitle:
		response.Error(c, http.StatusConflict, "Schedule with this title already exists.")
	case ErrDailyLimitExceeded:
		response.Error(c, http.StatusConflict, "Schedule limit exceeded: Maximum 5 schedules allowed per day.")
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "Invalid schedule payload")
	default:
		response.Error(c, http.StatusInternalServerError, "Failed to process scheduling request")
	}
}
