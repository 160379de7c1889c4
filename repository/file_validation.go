package repository

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidateFile checks an uploaded file's extension and size against the
// owning entity's constraints. Both rules are evaluated; the returned list
// holds every violation (empty means the file is acceptable). Nothing is
// written before this check passes.
func ValidateFile(filename string, size int64, allowedExtensions []string, maxSize int64) []string {
	var violations []string

	ext := strings.ToLower(filepath.Ext(filename))
	allowed := false
	for _, a := range allowedExtensions {
		if ext == a {
			allowed = true
			break
		}
	}
	if !allowed {
		violations = append(violations, fmt.Sprintf("file extension not allowed, use one of: %s", strings.Join(allowedExtensions, ", ")))
	}

	if size > maxSize {
		violations = append(violations, fmt.Sprintf("file too large, maximum is %d MiB", maxSize/1024/1024))
	}

	return violations
}
