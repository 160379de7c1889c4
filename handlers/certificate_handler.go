package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"precatorio-backend/clearance"
	"precatorio-backend/models"
	"precatorio-backend/repository"
	"precatorio-backend/service"

	"github.com/gin-gonic/gin"
)

// CertificateHandler handles HTTP requests for certificate uploads,
// clearance lookups and downloads
type CertificateHandler struct {
	certificateRepo    *repository.CertificateRepository
	creditorRepo       *repository.CreditorRepository
	certificateService *service.CertificateService
	client             *clearance.Client
}

// NewCertificateHandler creates a new certificate handler
func NewCertificateHandler(
	certificateRepo *repository.CertificateRepository,
	creditorRepo *repository.CreditorRepository,
	certificateService *service.CertificateService,
	client *clearance.Client,
) *CertificateHandler {
	return &CertificateHandler{
		certificateRepo:    certificateRepo,
		creditorRepo:       creditorRepo,
		certificateService: certificateService,
		client:             client,
	}
}

// UploadCertificate handles POST /credores/:id/certidoes. Manually uploaded
// certificates always start pending with a thirty-day validity window.
func (h *CertificateHandler) UploadCertificate(c *gin.Context) {
	creditorID, ok := parseID(c)
	if !ok {
		return
	}

	if _, err := h.creditorRepo.GetByID(c.Request.Context(), creditorID); err != nil {
		respondError(c, err)
		return
	}

	certType := models.CertificateType(c.PostForm("tipo"))

	fileHeader, err := c.FormFile("arquivo")
	if err != nil {
		respondBadRequest(c, "MISSING_FILE", "File is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, fmt.Errorf("failed to open uploaded file: %w", err))
		return
	}
	defer file.Close()

	now := time.Now()
	validUntil := now.Add(repository.DefaultValidity)
	certificate := &models.Certificate{
		CreditorID: creditorID,
		Type:       certType,
		Origin:     models.CertificateOriginManual,
		Status:     models.CertificateStatusPending,
		ReceivedAt: now,
		ValidUntil: &validUntil,
	}

	if err := h.certificateRepo.Create(c.Request.Context(), certificate, file, fileHeader.Filename, fileHeader.Size); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"id":          certificate.ID,
			"tipo":        certificate.Type,
			"status":      certificate.Status,
			"arquivo_url": certificate.FileURL,
			"valida_ate":  certificate.ValidUntil,
		},
	})
}

// FetchClearanceCertificates handles POST /credores/:id/buscar-certidoes,
// fetching the four jurisdiction certificates from the clearance authority
// and storing them for the creditor
func (h *CertificateHandler) FetchClearanceCertificates(c *gin.Context) {
	creditorID, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.certificateService.FetchFromClearance(c.Request.Context(), creditorID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"obtidas":   len(result.Certificates),
			"certidoes": result.Results,
		},
	})
}

// MockLookup handles GET /api/certidoes?cpf_cnpj=..., exposing the raw
// clearance authority lookup
func (h *CertificateHandler) MockLookup(c *gin.Context) {
	taxID := c.Query("cpf_cnpj")
	if taxID == "" {
		respondBadRequest(c, "MISSING_TAX_ID", "Query parameter cpf_cnpj is required")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cpf_cnpj":  taxID,
		"certidoes": h.client.Lookup(taxID),
	})
}

// DownloadCertificate handles GET /certidoes/:id/download
func (h *CertificateHandler) DownloadCertificate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	reader, certificate, err := h.certificateRepo.Open(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", certificateDownloadName(certificate)))
	c.DataFromReader(http.StatusOK, -1, "application/pdf", reader, nil)
}

// certificateDownloadName derives a readable download filename; the stored
// name is a hash and the original base name is not persisted
func certificateDownloadName(certificate *models.Certificate) string {
	return fmt.Sprintf("certidao_%s_%d%s", certificate.Type, certificate.ID, filepath.Ext(certificate.FileURL))
}

// DeleteCertificate handles DELETE /certidoes/:id
func (h *CertificateHandler) DeleteCertificate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.certificateRepo.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
