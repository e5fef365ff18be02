package helpers

import (
	"encoding/base64"
	"net/http"
	"net/url"
	"strings"

	"github.com/farellandr/skatefund/internal/apperr"
)

type UploadConfig struct {
	MaxSizeBytes     int64
	AllowedMimeTypes []string
}

var DefaultImageUploadConfig = UploadConfig{
	MaxSizeBytes: 5 * 1024 * 1024, // 5MB
	AllowedMimeTypes: []string{
		"image/jpeg",
		"image/png",
		"image/gif",
		"image/webp",
	},
}

// ValidateImagePayload accepts an http(s) URL, a data URI or raw base64 image
// bytes. Encoded payloads are size- and type-checked against config.
func ValidateImagePayload(payload string, configs ...UploadConfig) error {
	config := DefaultImageUploadConfig
	if len(configs) > 0 {
		config = configs[0]
	}

	payload = strings.TrimSpace(payload)
	if payload == "" {
		return apperr.InvalidInput(apperr.CodeInvalidImage, "image payload is empty")
	}

	if strings.HasPrefix(payload, "http://") || strings.HasPrefix(payload, "https://") {
		if _, err := url.ParseRequestURI(payload); err != nil {
			return apperr.InvalidInput(apperr.CodeInvalidImage, "invalid image url")
		}
		return nil
	}

	encoded := payload
	if strings.HasPrefix(payload, "data:") {
		_, after, ok := strings.Cut(payload, ",")
		if !ok {
			return apperr.InvalidInput(apperr.CodeInvalidImage, "malformed data uri")
		}
		encoded = after
	}

	if int64(base64.StdEncoding.DecodedLen(len(encoded))) > config.MaxSizeBytes {
		return apperr.InvalidInput(apperr.CodeInvalidImage, "image exceeds maximum size of %d MB", config.MaxSizeBytes/(1024*1024))
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return apperr.InvalidInput(apperr.CodeInvalidImage, "image payload is not valid base64")
	}

	mimeType := http.DetectContentType(data)
	for _, allowedType := range config.AllowedMimeTypes {
		if mimeType == allowedType {
			return nil
		}
	}
	return apperr.InvalidInput(apperr.CodeInvalidImage, "invalid image type %s. Allowed types: %v", mimeType, config.AllowedMimeTypes)
}
