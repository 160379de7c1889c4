package handlers

import (
	"net/http"

	"precatorio-backend/repository"

	"github.com/gin-gonic/gin"
)

// PaymentOrderHandler handles HTTP requests for payment order searches
type PaymentOrderHandler struct {
	orderRepo *repository.PaymentOrderRepository
}

// NewPaymentOrderHandler creates a new payment order handler
func NewPaymentOrderHandler(orderRepo *repository.PaymentOrderRepository) *PaymentOrderHandler {
	return &PaymentOrderHandler{orderRepo: orderRepo}
}

// ListPaymentOrders handles GET /precatorios, optionally filtered by venue
// through the foro query parameter
func (h *PaymentOrderHandler) ListPaymentOrders(c *gin.Context) {
	venue := c.Query("foro")

	if venue != "" {
		orders, err := h.orderRepo.ListByVenue(c.Request.Context(), venue)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": orders})
		return
	}

	orders, err := h.orderRepo.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": orders})
}

// GetByOrderNumber handles GET /precatorios/numero/:numero
func (h *PaymentOrderHandler) GetByOrderNumber(c *gin.Context) {
	number := c.Param("numero")

	order, err := h.orderRepo.GetByOrderNumber(c.Request.Context(), number)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": order})
}
