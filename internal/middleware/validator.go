package middleware

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Input validation and sanitization utilities

var subjectPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// ValidateSubjectID validates subject ID format
func ValidateSubjectID(subject string) error {
	if subject == "" {
		return fmt.Errorf("subject ID cannot be empty")
	}
	if !subjectPattern.MatchString(subject) {
		return fmt.Errorf("invalid subject ID format (alphanumeric, dash, underscore only, max 64 chars)")
	}
	return nil
}

// ValidateRecordID checks that an analysis id is a UUID
func ValidateRecordID(id string) error {
	if id == "" {
		return fmt.Errorf("analysis ID cannot be empty")
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("invalid analysis ID format")
	}
	return nil
}

// ValidateImageContentType only lets through formats the vision models accept
func ValidateImageContentType(contentType string) error {
	switch strings.ToLower(contentType) {
	case "image/jpeg", "image/png", "image/webp", "image/heic":
		return nil
	}
	return fmt.Errorf("unsupported image type: %q (allowed: jpeg, png, webp, heic)", contentType)
}

// ValidateImageSize rejects empty images and, when max > 0, images larger than max
func ValidateImageSize(size, max int64) error {
	if size <= 0 {
		return fmt.Errorf("image is empty")
	}
	if max > 0 && size > max {
		return fmt.Errorf("image too large: %d bytes (max %d)", size, max)
	}
	return nil
}

// ValidateImageKey ensures a stored image key belongs to the subject and
// does not escape its prefix.
func ValidateImageKey(subject, key string) error {
	if key == "" {
		return fmt.Errorf("image key cannot be empty")
	}

	dangerous := []string{"..", "\\", "\x00", "\n", "\r"}
	for _, d := range dangerous {
		if strings.Contains(key, d) {
			return fmt.Errorf("invalid characters in image key")
		}
	}

	if cleaned := path.Clean(key); cleaned != key || !strings.HasPrefix(key, subject+"/") {
		return fmt.Errorf("image key must live under %s/", subject)
	}
	return nil
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	// Remove control characters
	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}

// ValidateLimit validates pagination limit
func ValidateLimit(limit int) int {
	if limit <= 0 {
		return 20 // default
	}
	if limit > 100 {
		return 100 // max limit
	}
	return limit
}
