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
	"github.com/shopspring/decimal"
)

type PartHandler struct {
	parts   commands.PartCommands
	queries queries.PartQueries
}

func NewPartHandler(parts commands.PartCommands, partQueries queries.PartQueries) *PartHandler {
	return &PartHandler{
		parts:   parts,
		queries: partQueries,
	}
}

func (h *PartHandler) CreatePart(c *gin.Context) {
	var req reqdto.CreatePartRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	unitPrice, err := decimal.NewFromString(req.UnitPrice)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid unit_price format",
		})
		return
	}

	id, err := h.parts.CreatePart(c.Request.Context(), req.Name, unitPrice, req.StockOnHand)
	if err != nil {
		switch {
		case errs.Is(err, commands.ErrInvalidStockAdjustment):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Stock and unit price must be non-negative",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

func (h *PartHandler) GetPart(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid part ID format",
		})
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Part not found",
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

func (h *PartHandler) ListParts(c *gin.Context) {
	views, err := h.queries.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, views)
}

func (h *PartHandler) AdjustStock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid part ID format",
		})
		return
	}

	var req reqdto.AdjustStockRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	snap, err := h.parts.AdjustStock(c.Request.Context(), id, *req.Delta)
	if err != nil {
		switch {
		case errs.Is(err, commands.ErrPartNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Part not found",
			})
		case errs.Is(err, commands.ErrInvalidStockAdjustment):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Adjustment would take stock below zero",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromPartSnapshot(snap))
}
