package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"precatorio-backend/models"
)

func TestDownloadNames(t *testing.T) {
	t.Run("document name carries type, id and extension", func(t *testing.T) {
		document := &models.Document{
			ID:      7,
			Type:    models.DocumentTypeIdentity,
			FileURL: "3f2a9c0d1b4e5f60718293a4b5c6d7e8.jpg",
		}
		assert.Equal(t, "documento_identity_7.jpg", documentDownloadName(document))
	})

	t.Run("certificate name carries jurisdiction, id and extension", func(t *testing.T) {
		certificate := &models.Certificate{
			ID:      12,
			Type:    models.CertificateTypeFederal,
			FileURL: "9a8b7c6d5e4f30211203f4e5d6c7b8a9.pdf",
		}
		assert.Equal(t, "certidao_federal_12.pdf", certificateDownloadName(certificate))
	})
}
