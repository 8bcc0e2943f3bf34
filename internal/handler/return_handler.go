package handler

import (
	"net/http"

	"backoffice/internal/service"

	"github.com/gin-gonic/gin"
)

type ReturnHandler struct {
	returnService service.ReturnService
}

func NewReturnHandler(returnService service.ReturnService) *ReturnHandler {
	return &ReturnHandler{returnService: returnService}
}

func (h *ReturnHandler) RegisterRoutes(router *gin.RouterGroup) {
	returns := router.Group("/api/returns")
	{
		returns.POST("/send-to-supplier", h.SendToSupplier)
		returns.POST("/business-loss", h.MarkBusinessLoss)
	}
}

// SendToSupplier batches damaged returns back to a supplier
// @Summary      Send returns to supplier
// @Description  Creates a supplier return batch for the pending items and removes their damaged stock
// @Tags         returns
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.SendToSupplierRequest  true  "Items and supplier"
// @Success      200      {object}  object{success=bool,batchNumber=string}
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /api/returns/send-to-supplier [post]
func (h *ReturnHandler) SendToSupplier(c *gin.Context) {
	var req service.SendToSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	res, err := h.returnService.SendToSupplier(c.Request.Context(), currentUser(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"batchNumber": res.BatchNumber,
		"batchId":     res.BatchID,
		"totalItems":  res.TotalItems,
		"totalValue":  res.TotalValue.InexactFloat64(),
		"skipped":     res.Skipped,
	})
}

// MarkBusinessLoss writes damaged returns off
// @Summary      Mark returns as business loss
// @Tags         returns
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.BusinessLossRequest  true  "Items and reason"
// @Success      200      {object}  object{success=bool,processed=int}
// @Failure      400      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /api/returns/business-loss [post]
func (h *ReturnHandler) MarkBusinessLoss(c *gin.Context) {
	var req service.BusinessLossRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	processed, err := h.returnService.MarkBusinessLoss(c.Request.Context(), currentUser(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "processed": processed})
}
