package handlers

import (
	"net/http"
	"strconv"
	"time"

	"precatorio-backend/models"
	"precatorio-backend/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CreditorHandler handles HTTP requests for creditors
type CreditorHandler struct {
	creditorService *service.CreditorService
}

// NewCreditorHandler creates a new creditor handler
func NewCreditorHandler(creditorService *service.CreditorService) *CreditorHandler {
	return &CreditorHandler{creditorService: creditorService}
}

// PaymentOrderRequest is the nested order payload on creditor registration
type PaymentOrderRequest struct {
	OrderNumber     string          `json:"numero_precatorio"`
	NominalValue    decimal.Decimal `json:"valor_nominal"`
	Venue           string          `json:"foro"`
	PublicationDate time.Time       `json:"data_publicacao"`
}

// CreateCreditorRequest is the creditor registration payload
type CreateCreditorRequest struct {
	Name  string              `json:"nome"`
	TaxID string              `json:"cpf_cnpj"`
	Email string              `json:"email"`
	Phone string              `json:"telefone"`
	Order PaymentOrderRequest `json:"precatorio"`
}

// CreateCreditor handles POST /credores
func (h *CreditorHandler) CreateCreditor(c *gin.Context) {
	var req CreateCreditorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "INVALID_PAYLOAD", "Invalid request body: "+err.Error())
		return
	}

	result, err := h.creditorService.CreateWithOrder(c.Request.Context(), service.CreateCreditorRequest{
		Creditor: models.Creditor{
			Name:  req.Name,
			TaxID: req.TaxID,
			Email: req.Email,
			Phone: req.Phone,
		},
		Order: models.PaymentOrder{
			OrderNumber:     req.Order.OrderNumber,
			NominalValue:    req.Order.NominalValue,
			Venue:           req.Order.Venue,
			PublicationDate: req.Order.PublicationDate,
		},
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"id":            result.Creditor.ID,
			"precatorio_id": result.Order.ID,
		},
	})
}

// GetCreditor handles GET /credores/:id, returning the aggregated details
func (h *CreditorHandler) GetCreditor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	details, err := h.creditorService.GetDetails(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    details,
	})
}

// ListCreditors handles GET /credores
func (h *CreditorHandler) ListCreditors(c *gin.Context) {
	creditors, err := h.creditorService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    creditors,
	})
}

// UpdateCreditor handles PUT /credores/:id
func (h *CreditorHandler) UpdateCreditor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req struct {
		Name  string `json:"nome"`
		TaxID string `json:"cpf_cnpj"`
		Email string `json:"email"`
		Phone string `json:"telefone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "INVALID_PAYLOAD", "Invalid request body: "+err.Error())
		return
	}

	creditor := &models.Creditor{
		ID:    id,
		Name:  req.Name,
		TaxID: req.TaxID,
		Email: req.Email,
		Phone: req.Phone,
	}
	if err := h.creditorService.Update(c.Request.Context(), creditor); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    creditor,
	})
}

// DeleteCreditor handles DELETE /credores/:id
func (h *CreditorHandler) DeleteCreditor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.creditorService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// parseID reads the :id path parameter; on failure it writes the error
// response and returns ok=false
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondBadRequest(c, "INVALID_ID", "Invalid id format")
		return 0, false
	}
	return id, true
}
