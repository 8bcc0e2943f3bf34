package handler

import (
	"net/http"

	"backoffice/internal/service"
	"backoffice/pkg/response"

	"github.com/gin-gonic/gin"
)

type CommissionHandler struct {
	commissionService service.CommissionService
}

func NewCommissionHandler(commissionService service.CommissionService) *CommissionHandler {
	return &CommissionHandler{commissionService: commissionService}
}

func (h *CommissionHandler) RegisterRoutes(router *gin.RouterGroup) {
	commissions := router.Group("/api/commissions")
	{
		commissions.GET("", h.ListCommissions)
		commissions.PUT("/:orderId/paid", h.MarkPaid)
	}
}

// ListCommissions returns a rep's commission statement
// @Summary      List rep commissions
// @Description  Delivered and completed orders of the rep with commission summed from the live order items
// @Tags         commissions
// @Security     BearerAuth
// @Produce      json
// @Param        repId  query     string  true  "Sales rep ID"
// @Success      200    {array}   service.CommissionRow
// @Failure      400    {object}  response.Response
// @Failure      500    {object}  response.Response
// @Router       /api/commissions [get]
func (h *CommissionHandler) ListCommissions(c *gin.Context) {
	repID := c.Query("repId")
	if repID == "" {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "repId is required"))
		return
	}

	rows, err := h.commissionService.CommissionFor(c.Request.Context(), repID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// MarkPaid records the payout of an order's commission
// @Summary      Mark commission paid
// @Tags         commissions
// @Security     BearerAuth
// @Produce      json
// @Param        orderId  path      string  true  "Order ID"
// @Success      200      {object}  object{success=bool}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /api/commissions/{orderId}/paid [put]
func (h *CommissionHandler) MarkPaid(c *gin.Context) {
	if err := h.commissionService.MarkPaid(c.Request.Context(), currentUser(c), c.Param("orderId")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
