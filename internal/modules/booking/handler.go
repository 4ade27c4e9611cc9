package booking

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

// RegisterRoutes mounts reads for any authenticated user, creation for
// trainees and cancellation for admins.
func (h *Handler) RegisterRoutes(authed, trainee, admin *gin.RouterGroup) {
	authed.GET("/bookings", h.List)
	authed.GET("/bookings/:id", h.GetByID)
	authed.GET("/trainers/:trainerId/bookings", h.GetByTrainer)

	trainee.POST("/bookings/create", h.Create)
	admin.PATCH("/bookings/:id", h.Cancel)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Trainee == 0 {
		req.Trainee = c.GetInt64("user_id")
	}

	b, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Created(c, http.StatusCreated, "Booking created successfully", NewBookingResponse(b))
}

func (h *Handler) List(c *gin.Context) {
	bookings, err := h.service.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.OK(c, http.StatusOK, "Bookings retrieved successfully", NewBookingListResponse(bookings))
}

func (h *Handler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid booking ID")
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.OK(c, http.StatusOK, "Booking retrieved successfully", NewBookingResponse(b))
}

func (h *Handler) GetByTrainer(c *gin.Context) {
	trainerID, err := strconv.ParseInt(c.Param("trainerId"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid trainer ID")
		return
	}

	bookings, err := h.service.GetByTrainer(c.Request.Context(), trainerID)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.OK(c, http.StatusOK, "Bookings retrieved successfully", NewBookingListResponse(bookings))
}

func (h *Handler) Cancel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid booking ID")
		return
	}

	// The body is optional: admins may cancel with or without a note.
	var req CancelBookingRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	b, err := h.service.Cancel(c.Request.Context(), id, c.GetInt64("user_id"), req.Notes)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.OK(c, http.StatusOK, "Booking cancelled successfully", NewBookingResponse(b))
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrScheduleNotFound:
		response.Error(c, http.StatusNotFound, "Schedule not found.")
	case ErrBookingNotFound:
		response.Error(c, http.StatusNotFound, "Booking not found")
	case ErrAlreadyBooked:
		response.Error(c, http.StatusConflict, "You have already booked this schedule.")
	case ErrScheduleFull:
		response.Error(c, http.StatusConflict, "The schedule is full. No more bookings allowed.")
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "Invalid booking payload")
	default:
		response.Error(c, http.StatusInternalServerError, "Failed to process booking request")
	}
}
