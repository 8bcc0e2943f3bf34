package handler

import (
	"errors"
	"fmt"
	"net/http"

	"backoffice/internal/service"

	"github.com/gin-gonic/gin"
)

type PurchaseHandler struct {
	purchaseService service.PurchaseService
}

func NewPurchaseHandler(purchaseService service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

func (h *PurchaseHandler) RegisterRoutes(router *gin.RouterGroup) {
	purchases := router.Group("/api/purchases")
	{
		purchases.POST("", h.CreatePurchase)
		purchases.GET("/:id", h.GetPurchase)
		purchases.POST("/:id/reapply", h.ReapplyPurchase)
	}
}

// CreatePurchase records a supplier purchase and receives its stock
// @Summary      Create purchase
// @Description  Records the purchase, adds quantity plus free units at the location and updates product prices
// @Tags         purchases
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreatePurchaseRequest  true  "Purchase"
// @Success      201      {object}  object{message=string,id=string,purchaseNo=string}
// @Failure      400      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /api/purchases [post]
func (h *PurchaseHandler) CreatePurchase(c *gin.Context) {
	var req service.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	res, err := h.purchaseService.CreatePurchase(c.Request.Context(), currentUser(c), req)
	if err != nil {
		writeError(c, err)
		return
	}

	message := "Purchase created successfully"
	if res.Failed > 0 {
		message = fmt.Sprintf("Purchase created; %d of %d items need reapply", res.Failed, res.Applied+res.Failed)
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":    message,
		"id":         res.ID,
		"purchaseNo": res.PurchaseNo,
		"applied":    res.Applied,
		"failed":     res.Failed,
	})
}

// GetPurchase returns a purchase with its items and their apply flags
// @Summary      Get purchase
// @Tags         purchases
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Purchase ID"
// @Success      200  {object}  model.Purchase
// @Failure      404  {object}  response.Response
// @Router       /api/purchases/{id} [get]
func (h *PurchaseHandler) GetPurchase(c *gin.Context) {
	purchase, err := h.purchaseService.GetPurchase(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, purchase)
}

// ReapplyPurchase retries the stock and price steps that did not land
// @Summary      Reapply purchase
// @Tags         purchases
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Purchase ID"
// @Success      200  {object}  object{message=string,id=string,applied=int,failed=int}
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Failure      500  {object}  object{message=string,id=string,applied=int,failed=int}
// @Router       /api/purchases/{id}/reapply [post]
func (h *PurchaseHandler) ReapplyPurchase(c *gin.Context) {
	res, err := h.purchaseService.ReapplyPurchase(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrPartialFailure) && res != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": err.Error(),
				"id":      res.ID,
				"applied": res.Applied,
				"failed":  res.Failed,
			})
			return
		}
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Purchase reapplied",
		"id":      res.ID,
		"applied": res.Applied,
		"failed":  res.Failed,
	})
}
