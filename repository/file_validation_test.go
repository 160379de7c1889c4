package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"precatorio-backend/models"
)

func TestValidateFile(t *testing.T) {
	t.Run("acceptable document passes", func(t *testing.T) {
		violations := ValidateFile("rg.pdf", 1024, models.DocumentAllowedExtensions(), models.DocumentMaxFileSize)
		assert.Empty(t, violations)
	})

	t.Run("extension matching is case insensitive", func(t *testing.T) {
		violations := ValidateFile("FOTO.JPG", 1024, models.DocumentAllowedExtensions(), models.DocumentMaxFileSize)
		assert.Empty(t, violations)
	})

	t.Run("disallowed extension is rejected", func(t *testing.T) {
		violations := ValidateFile("planilha.xlsx", 1024, models.CertificateAllowedExtensions(), models.CertificateMaxFileSize)
		assert.Len(t, violations, 1)
		assert.Contains(t, violations[0], "extension not allowed")
	})

	t.Run("oversized file is rejected", func(t *testing.T) {
		violations := ValidateFile("certidao.pdf", models.CertificateMaxFileSize+1, models.CertificateAllowedExtensions(), models.CertificateMaxFileSize)
		assert.Len(t, violations, 1)
		assert.Contains(t, violations[0], "file too large")
	})

	t.Run("size exactly at the limit passes", func(t *testing.T) {
		violations := ValidateFile("certidao.pdf", models.CertificateMaxFileSize, models.CertificateAllowedExtensions(), models.CertificateMaxFileSize)
		assert.Empty(t, violations)
	})

	t.Run("both violations are collected", func(t *testing.T) {
		violations := ValidateFile("video.mp4", models.DocumentMaxFileSize+1, models.DocumentAllowedExtensions(), models.DocumentMaxFileSize)
		assert.Len(t, violations, 2)
	})
}
