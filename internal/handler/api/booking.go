package api

import (
	"net/http"

	"workshop-engine/internal/domain/booking"
	reqdto "workshop-engine/internal/handler/dto/request"
	resdto "workshop-engine/internal/handler/dto/response"
	"workshop-engine/internal/infra"
	"workshop-engine/internal/pkg/errs"
	"workshop-engine/internal/usecase/commands"
	"workshop-engine/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	admission  commands.AdmissionCommands
	transition commands.TransitionCommands
	undo       commands.UndoCommands
	queries    queries.BookingQueries
}

func NewBookingHandler(
	admission commands.AdmissionCommands,
	transition commands.TransitionCommands,
	undo commands.UndoCommands,
	bookingQueries queries.BookingQueries,
) *BookingHandler {
	return &BookingHandler{
		admission:  admission,
		transition: transition,
		undo:       undo,
		queries:    bookingQueries,
	}
}

func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req reqdto.CreateBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	cmd, err := req.ToCommand()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	result, err := h.admission.Admit(c.Request.Context(), cmd)
	if err != nil {
		switch {
		case errs.Is(err, commands.ErrMechanicNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Mechanic not found",
			})
		case errs.Is(err, commands.ErrPartNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Part not found",
			})
		case errs.Is(err, commands.ErrReservationConflict):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Booking request is contending with another operation, retry",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromAdmissionResult(result))
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *BookingHandler) ListBookings(c *gin.Context) {
	var filter queries.BookingFilter

	if raw := c.Query("mechanic_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid mechanic_id format",
			})
			return
		}
		filter.MechanicID = &id
	}
	if raw := c.Query("status"); raw != "" {
		status, err := booking.ParseStatus(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Unknown status: " + raw,
			})
			return
		}
		filter.Status = &status
	}

	items, err := h.queries.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *BookingHandler) TransitionBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	var req reqdto.TransitionRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	to, err := booking.ParseStatus(req.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Unknown status: " + req.To,
		})
		return
	}

	result, err := h.transition.Transition(c.Request.Context(), id, to)
	if err != nil {
		switch {
		case errs.Is(err, commands.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		case errs.Is(err, commands.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Transition not allowed from current status",
			})
		case errs.Is(err, commands.ErrInsufficientStock):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Insufficient stock to complete booking",
			})
		case errs.Is(err, commands.ErrReservationConflict):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Transition is contending with another operation, retry",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromTransitionResult(result))
}

func (h *BookingHandler) UndoBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	result, err := h.undo.Undo(c.Request.Context(), id)
	if err != nil {
		switch {
		case errs.Is(err, commands.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		case errs.Is(err, commands.ErrNothingToUndo):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Nothing to undo for this booking",
			})
		case errs.Is(err, commands.ErrReservationConflict):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Undo is contending with another operation, retry",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromUndoResult(result))
}
