package handler

import (
	"errors"
	"fmt"
	"net/http"

	"backoffice/internal/service"

	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	stockService service.StockService
}

func NewInventoryHandler(stockService service.StockService) *InventoryHandler {
	return &InventoryHandler{stockService: stockService}
}

func (h *InventoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	stock := router.Group("/api/stock")
	{
		stock.POST("/adjust", h.AdjustStock)
		stock.POST("/reconcile/:productId", h.ReconcileStock)
		stock.GET("/:productId", h.GetProductStock)
	}
}

// AdjustStock overwrites counted quantities at one location
// @Summary      Adjust stock
// @Description  Applies a stock-take: every listed product is set to the counted quantity at the location
// @Tags         stock
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.StockAdjustRequest  true  "Stock take"
// @Success      200      {object}  object{success=bool,message=string}
// @Failure      400      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /api/stock/adjust [post]
func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	var req service.StockAdjustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	updated, err := h.stockService.AdjustStock(c.Request.Context(), currentUser(c), req)
	if err != nil {
		if errors.Is(err, service.ErrPartialFailure) {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": err.Error(),
				"updated": updated,
			})
			return
		}
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Stock updated for %d products", updated),
	})
}

// ReconcileStock rebuilds product aggregates from location rows
// @Summary      Reconcile stock
// @Description  Recomputes the product's stock and damaged totals from its per-location rows
// @Tags         stock
// @Security     BearerAuth
// @Produce      json
// @Param        productId  path      string  true  "Product ID"
// @Success      200        {object}  service.ReconcileResult
// @Failure      404        {object}  response.Response
// @Failure      500        {object}  response.Response
// @Router       /api/stock/reconcile/{productId} [post]
func (h *InventoryHandler) ReconcileStock(c *gin.Context) {
	res, err := h.stockService.Reconcile(c.Request.Context(), currentUser(c), c.Param("productId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"productId":       res.ProductID,
		"stockQuantity":   res.StockQuantity,
		"damagedQuantity": res.DamagedQuantity,
		"stockDrift":      res.StockDrift,
		"damagedDrift":    res.DamagedDrift,
	})
}

// GetProductStock returns a product's stock by location with recent movements
// @Summary      Get product stock
// @Tags         stock
// @Security     BearerAuth
// @Produce      json
// @Param        productId  path      string  true  "Product ID"
// @Success      200        {object}  service.ProductStockResponse
// @Failure      404        {object}  response.Response
// @Router       /api/stock/{productId} [get]
func (h *InventoryHandler) GetProductStock(c *gin.Context) {
	res, err := h.stockService.GetProductStock(c.Request.Context(), c.Param("productId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
