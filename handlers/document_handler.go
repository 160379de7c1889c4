package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"precatorio-backend/models"
	"precatorio-backend/repository"

	"github.com/gin-gonic/gin"
)

// DocumentHandler handles HTTP requests for document uploads and downloads
type DocumentHandler struct {
	documentRepo *repository.DocumentRepository
	creditorRepo *repository.CreditorRepository
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(documentRepo *repository.DocumentRepository, creditorRepo *repository.CreditorRepository) *DocumentHandler {
	return &DocumentHandler{
		documentRepo: documentRepo,
		creditorRepo: creditorRepo,
	}
}

// UploadDocument handles POST /credores/:id/documentos. Ordering is fixed:
// creditor existence check, then file validation, then entity validation,
// then the write.
func (h *DocumentHandler) UploadDocument(c *gin.Context) {
	creditorID, ok := parseID(c)
	if !ok {
		return
	}

	if _, err := h.creditorRepo.GetByID(c.Request.Context(), creditorID); err != nil {
		respondError(c, err)
		return
	}

	docType := models.DocumentType(c.PostForm("tipo"))

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

	document := &models.Document{
		CreditorID:  creditorID,
		Type:        docType,
		SubmittedAt: time.Now(),
	}

	if err := h.documentRepo.Create(c.Request.Context(), document, file, fileHeader.Filename, fileHeader.Size); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"id":          document.ID,
			"tipo":        document.Type,
			"arquivo_url": document.FileURL,
			"enviado_em":  document.SubmittedAt,
		},
	})
}

// DownloadDocument handles GET /documentos/:id/download
func (h *DocumentHandler) DownloadDocument(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	reader, document, err := h.documentRepo.Open(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", documentDownloadName(document)))
	c.DataFromReader(http.StatusOK, -1, "application/octet-stream", reader, nil)
}

// documentDownloadName derives a readable download filename; the stored name
// is a hash and the original base name is not persisted
func documentDownloadName(document *models.Document) string {
	return fmt.Sprintf("documento_%s_%d%s", document.Type, document.ID, filepath.Ext(document.FileURL))
}

// DeleteDocument handles DELETE /documentos/:id
func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.documentRepo.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
