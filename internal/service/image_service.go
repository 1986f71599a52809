package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp" // register webp decoder for image.Decode

	"github.com/velobooks/velobooks-backend/internal/repository/storage"
)

const (
	MaxImageSize   = 5 * 1024 * 1024 // 5MB
	MinImageWidth  = 50
	MinImageHeight = 50
	ThumbnailWidth = 200
	DisplayWidth   = 800
	JPEGQuality    = 85

	// presignExpiry is how long generated attachment URLs stay valid
	presignExpiry = 15 * time.Minute
)

var (
	ErrImageTooLarge             = errors.New("file too large. Maximum size is 5MB")
	ErrInvalidFormat             = errors.New("invalid format. Supported: JPEG, PNG, WebP")
	ErrImageTooSmall             = errors.New("image too small. Minimum 50x50 pixels")
	ErrInvalidImageData          = errors.New("invalid image data")
	ErrImageStorageNotConfigured = errors.New("image storage not configured")
)

// AllowedExtensions maps extensions to content types
var AllowedExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// ImageMetadata contains object paths and presigned URLs for each variant
type ImageMetadata struct {
	ID            string `json:"id"`
	ThumbnailPath string `json:"thumbnailPath"`
	DisplayPath   string `json:"displayPath"`
	OriginalPath  string `json:"originalPath"`
	ThumbnailURL  string `json:"thumbnailUrl"`
	DisplayURL    string `json:"displayUrl"`
	OriginalURL   string `json:"originalUrl"`
}

// ImageService handles attachment image processing and storage
type ImageService struct {
	storage storage.ImageRepository
}

// NewImageService creates a new ImageService
func NewImageService(storage storage.ImageRepository) *ImageService {
	return &ImageService{storage: storage}
}

// IsEnabled indicates whether uploads are supported (storage configured)
func (s *ImageService) IsEnabled() bool {
	return s != nil && s.storage != nil
}

// validateAndDecode validates the image and returns the decoded image
func (s *ImageService) validateAndDecode(data []byte, filename string) (image.Image, error) {
	if len(data) > MaxImageSize {
		return nil, ErrImageTooLarge
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := AllowedExtensions[ext]; !ok {
		return nil, ErrInvalidFormat
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrInvalidImageData
	}

	bounds := img.Bounds()
	if bounds.Dx() < MinImageWidth || bounds.Dy() < MinImageHeight {
		return nil, ErrImageTooSmall
	}

	return img, nil
}

// ProcessAndUpload resizes an attachment into thumbnail, display, and original
// variants and uploads all three, returning paths plus presigned URLs.
func (s *ImageService) ProcessAndUpload(ctx context.Context, workspaceID int32, entityType string, entityID int32, data []byte, filename string) (*ImageMetadata, error) {
	if !s.IsEnabled() {
		return nil, ErrImageStorageNotConfigured
	}

	img, err := s.validateAndDecode(data, filename)
	if err != nil {
		return nil, err
	}

	imageID := uuid.New().String()

	variants := []struct {
		name     string
		maxWidth int
	}{
		{"thumb", ThumbnailWidth},
		{"display", DisplayWidth},
		{"original", 0}, // 0 keeps the original size
	}

	paths := make(map[string]string)

	for _, variant := range variants {
		var processed image.Image
		if variant.maxWidth > 0 && img.Bounds().Dx() > variant.maxWidth {
			processed = imaging.Resize(img, variant.maxWidth, 0, imaging.Lanczos)
		} else {
			processed = img
		}

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, processed, &jpeg.Options{Quality: JPEGQuality}); err != nil {
			return nil, fmt.Errorf("failed to encode image: %w", err)
		}

		objectPath := fmt.Sprintf("%d/%s/%d/%s_%s.jpg", workspaceID, entityType, entityID, imageID, variant.name)

		stored, err := s.storage.Upload(ctx, objectPath, bytes.NewReader(buf.Bytes()), "image/jpeg", int64(buf.Len()))
		if err != nil {
			s.cleanupVariants(ctx, paths)
			return nil, fmt.Errorf("failed to upload %s variant: %w", variant.name, err)
		}

		paths[variant.name] = stored
	}

	meta := &ImageMetadata{
		ID:            imageID,
		ThumbnailPath: paths["thumb"],
		DisplayPath:   paths["display"],
		OriginalPath:  paths["original"],
	}

	meta.ThumbnailURL, _ = s.storage.GeneratePresignedURL(ctx, meta.ThumbnailPath, presignExpiry)
	meta.DisplayURL, _ = s.storage.GeneratePresignedURL(ctx, meta.DisplayPath, presignExpiry)
	meta.OriginalURL, _ = s.storage.GeneratePresignedURL(ctx, meta.OriginalPath, presignExpiry)

	return meta, nil
}

// cleanupVariants removes variants already uploaded during a failed operation
func (s *ImageService) cleanupVariants(ctx context.Context, paths map[string]string) {
	for _, objectPath := range paths {
		_ = s.storage.Delete(ctx, objectPath)
	}
}

// GetPresignedURL generates a fresh presigned URL for one stored object
func (s *ImageService) GetPresignedURL(ctx context.Context, objectPath string) (string, error) {
	if !s.IsEnabled() {
		return "", ErrImageStorageNotConfigured
	}
	return s.storage.GeneratePresignedURL(ctx, objectPath, presignExpiry)
}

// Delete removes one stored object
func (s *ImageService) Delete(ctx context.Context, objectPath string) error {
	if objectPath == "" {
		return nil
	}
	if !s.IsEnabled() {
		return ErrImageStorageNotConfigured
	}
	return s.storage.Delete(ctx, objectPath)
}
