// Package upload turns multipart image uploads into asset folder entries.
package upload

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"lsers_hub_backend/internal/assets"
	"lsers_hub_backend/internal/common"
	"lsers_hub_backend/internal/config"

	"go.uber.org/zap"
)

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// ImageService stores uploaded images as data URLs in the asset folder.
type ImageService struct {
	assets   assets.Service
	maxBytes int64
	logger   *zap.Logger
}

func NewImageService(assets assets.Service, cfg *config.Config, logger *zap.Logger) *ImageService {
	maxBytes := cfg.UploadMaxBytes
	if maxBytes <= 0 {
		maxBytes = 5 << 20
	}
	return &ImageService{assets: assets, maxBytes: maxBytes, logger: logger.Named("upload")}
}

// MaxBytes is the largest accepted image.
func (s *ImageService) MaxBytes() int64 { return s.maxBytes }

// SaveUploadedFile reads fileHeader, checks it is a supported image within the size limit,
// and returns the new asset id.
func (s *ImageService) SaveUploadedFile(ctx context.Context, deviceID string, fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader == nil {
		return "", common.ErrBadRequest.WithDetails("A file is required.")
	}
	if fileHeader.Size > s.maxBytes {
		return "", tooLarge(s.maxBytes)
	}

	src, err := fileHeader.Open()
	if err != nil {
		s.logger.Error("Failed to open uploaded file", zap.Error(err))
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return "", tooLarge(s.maxBytes)
	}

	contentType, err := s.contentType(fileHeader, data)
	if err != nil {
		return "", err
	}

	payload := DataURL(contentType, data)
	id := s.assets.Store(ctx, deviceID, payload)
	s.logger.Info("Image uploaded",
		zap.String("device_id", deviceID),
		zap.String("asset_id", id),
		zap.String("content_type", contentType),
		zap.Int("bytes", len(data)),
	)
	return id, nil
}

// contentType sniffs the payload; the declared header is only trusted for formats the sniffer cannot tell apart.
func (s *ImageService) contentType(fileHeader *multipart.FileHeader, data []byte) (string, error) {
	sniffed := http.DetectContentType(data)
	if allowedTypes[sniffed] {
		return sniffed, nil
	}
	declared := strings.TrimSpace(strings.Split(fileHeader.Header.Get("Content-Type"), ";")[0])
	if sniffed == "application/octet-stream" && allowedTypes[declared] {
		return declared, nil
	}
	s.logger.Warn("Rejected upload", zap.String("sniffed", sniffed), zap.String("declared", declared))
	return "", common.NewAPIError(http.StatusUnsupportedMediaType, "UNSUPPORTED_MEDIA_TYPE",
		"Only JPEG, PNG, GIF and WebP images are accepted.")
}

func tooLarge(limit int64) *common.APIError {
	return common.NewAPIError(http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE",
		fmt.Sprintf("Images may not exceed %d bytes.", limit))
}

// DataURL encodes data as a base64 data URL.
func DataURL(contentType string, data []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

var errNotDataURL = errors.New("payload is not a base64 data URL")

// DecodeDataURL splits a base64 data URL into its content type and bytes.
func DecodeDataURL(payload string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(payload, "data:")
	if !ok {
		return "", nil, errNotDataURL
	}
	meta, encoded, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, errNotDataURL
	}
	contentType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, errNotDataURL
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", nil, fmt.Errorf("decoding data URL: %w", err)
	}
	return contentType, data, nil
}
