package handler

import (
	"net/http"

	"backoffice/internal/service"

	"github.com/gin-gonic/gin"
)

type InvoiceHandler struct {
	invoiceService service.InvoiceService
	returnService  service.ReturnService
}

func NewInvoiceHandler(invoiceService service.InvoiceService, returnService service.ReturnService) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		returnService:  returnService,
	}
}

func (h *InvoiceHandler) RegisterRoutes(router *gin.RouterGroup) {
	invoices := router.Group("/api/invoices")
	{
		invoices.POST("/:invoiceId/recalculate", h.RecalculateInvoice)
		invoices.GET("/:invoiceId/returns", h.ListInvoiceReturns)
	}
}

// RecalculateInvoice re-derives the invoice total from its order items
// @Summary      Recalculate invoice
// @Description  Resynchronises invoice, order, commission and customer balance with the current order items
// @Tags         invoices
// @Security     BearerAuth
// @Produce      json
// @Param        invoiceId  path      string  true  "Invoice ID"
// @Success      200        {object}  object{success=bool,newTotal=number}
// @Failure      404        {object}  response.Response
// @Failure      409        {object}  response.Response
// @Failure      500        {object}  response.Response
// @Router       /api/invoices/{invoiceId}/recalculate [post]
func (h *InvoiceHandler) RecalculateInvoice(c *gin.Context) {
	res, err := h.invoiceService.Recalculate(c.Request.Context(), currentUser(c), c.Param("invoiceId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"newTotal":        res.NewTotal.InexactFloat64(),
		"previousTotal":   res.PreviousTotal.InexactFloat64(),
		"diff":            res.Diff.InexactFloat64(),
		"commissionTotal": res.CommissionTotal.InexactFloat64(),
	})
}

// ListInvoiceReturns lists the returns recorded against an invoice
// @Summary      List invoice returns
// @Tags         invoices
// @Security     BearerAuth
// @Produce      json
// @Param        invoiceId  path      string  true  "Invoice ID"
// @Success      200        {array}   service.ReturnResponse
// @Failure      404        {object}  response.Response
// @Router       /api/invoices/{invoiceId}/returns [get]
func (h *InvoiceHandler) ListInvoiceReturns(c *gin.Context) {
	returns, err := h.returnService.ListInvoiceReturns(c.Request.Context(), c.Param("invoiceId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, returns)
}
