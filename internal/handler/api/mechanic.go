package api

import (
	"net/http"

	reqdto "workshop-engine/internal/handler/dto/request"
	resdto "workshop-engine/internal/handler/dto/response"
	"workshop-engine/internal/infra"
	"workshop-engine/internal/pkg/errs"
	"workshop-engine/internal/usecase/commands"
	"workshop-engine/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MechanicHandler struct {
	mechanics commands.MechanicCommands
	promotion commands.PromotionCommands
	queries   queries.MechanicQueries
}

func NewMechanicHandler(
	mechanics commands.MechanicCommands,
	promotion commands.PromotionCommands,
	mechanicQueries queries.MechanicQueries,
) *MechanicHandler {
	return &MechanicHandler{
		mechanics: mechanics,
		promotion: promotion,
		queries:   mechanicQueries,
	}
}

func (h *MechanicHandler) CreateMechanic(c *gin.Context) {
	var req reqdto.CreateMechanicRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	id, err := h.mechanics.CreateMechanic(c.Request.Context(), req.Name, req.OnDuty)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

func (h *MechanicHandler) GetMechanic(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid mechanic ID format",
		})
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Mechanic not found",
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

func (h *MechanicHandler) ListMechanics(c *gin.Context) {
	views, err := h.queries.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, views)
}

func (h *MechanicHandler) SetDuty(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid mechanic ID format",
		})
		return
	}

	var req reqdto.SetDutyRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.mechanics.SetDuty(c.Request.Context(), id, *req.OnDuty)
	if err != nil {
		switch {
		case errs.Is(err, commands.ErrMechanicNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Mechanic not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromSetDutyResult(result))
}

func (h *MechanicHandler) PromoteMechanic(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid mechanic ID format",
		})
		return
	}

	promoted, err := h.promotion.Promote(c.Request.Context(), id, nil)
	if err != nil {
		switch {
		case errs.Is(err, commands.ErrMechanicNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Mechanic not found",
			})
		case errs.Is(err, commands.ErrReservationConflict):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Promotion scan is contending with another operation, retry",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.PromotionResponse{Promoted: promoted})
}

func (h *MechanicHandler) PromoteAll(c *gin.Context) {
	promoted, err := h.promotion.PromoteAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.PromotionResponse{Promoted: promoted})
}
