package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/velobooks/velobooks-backend/internal/middleware"
	"github.com/velobooks/velobooks-backend/internal/service"
)

// ImageHandler handles attachment image HTTP requests
type ImageHandler struct {
	imageService *service.ImageService
}

// NewImageHandler creates a new ImageHandler
func NewImageHandler(imageService *service.ImageService) *ImageHandler {
	return &ImageHandler{imageService: imageService}
}

// PresignedURLResponse carries a time-limited download URL
type PresignedURLResponse struct {
	URL string `json:"url"`
}

var allowedImageEntities = map[string]bool{
	"customer": true,
	"invoice":  true,
	"item":     true,
}

// UploadImage godoc
// @Summary Upload an image attachment
// @Description Upload an image for a customer, invoice or item. Thumbnail and
// @Description display variants are generated server side.
// @Tags images
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param entityType path string true "Entity type (customer, invoice, item)"
// @Param entityId path int true "Entity ID"
// @Param file formData file true "Image file (JPEG or PNG, max 5MB)"
// @Success 201 {object} service.ImageMetadata
// @Failure 400 {object} ProblemDetails
// @Failure 503 {object} ProblemDetails
// @Router /images/{entityType}/{entityId} [post]
func (h *ImageHandler) UploadImage(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	if h.imageService == nil || !h.imageService.IsEnabled() {
		return NewServiceUnavailableError(c, "Image storage is not configured")
	}

	entityType := c.Param("entityType")
	if !allowedImageEntities[entityType] {
		return NewValidationError(c, "Invalid entity type", []ValidationError{
			{Field: "entityType", Message: "Must be 'customer', 'invoice' or 'item'"},
		})
	}

	entityID, ok := parseIDParam(c, "entityId")
	if !ok {
		return NewValidationError(c, "Invalid entity ID", nil)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return NewValidationError(c, "Missing file", []ValidationError{
			{Field: "file", Message: "An image file is required"},
		})
	}

	if fileHeader.Size > service.MaxImageSize {
		return NewValidationError(c, "File too large", []ValidationError{
			{Field: "file", Message: "Image must be 5MB or smaller"},
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Error().Err(err).Msg("Failed to open uploaded file")
		return NewInternalError(c, "Failed to read uploaded file")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, service.MaxImageSize+1))
	if err != nil {
		log.Error().Err(err).Msg("Failed to read uploaded file")
		return NewInternalError(c, "Failed to read uploaded file")
	}

	metadata, err := h.imageService.ProcessAndUpload(c.Request().Context(), workspaceID, entityType, entityID, data, fileHeader.Filename)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrImageTooLarge):
			return NewValidationError(c, "File too large", []ValidationError{
				{Field: "file", Message: "Image must be 5MB or smaller"},
			})
		case errors.Is(err, service.ErrInvalidFormat):
			return NewValidationError(c, "Unsupported format", []ValidationError{
				{Field: "file", Message: "Only JPEG and PNG images are supported"},
			})
		case errors.Is(err, service.ErrImageTooSmall):
			return NewValidationError(c, "Image too small", []ValidationError{
				{Field: "file", Message: "Image must be at least 50x50 pixels"},
			})
		case errors.Is(err, service.ErrInvalidImageData):
			return NewValidationError(c, "Invalid image", []ValidationError{
				{Field: "file", Message: "File is not a decodable image"},
			})
		case errors.Is(err, service.ErrImageStorageNotConfigured):
			return NewServiceUnavailableError(c, "Image storage is not configured")
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to upload image")
		return NewInternalError(c, "Failed to upload image")
	}

	return c.JSON(http.StatusCreated, metadata)
}

// GetPresignedURL godoc
// @Summary Get a fresh presigned URL
// @Description Presigned URLs expire; clients exchange a stored object path
// @Description for a fresh one here.
// @Tags images
// @Produce json
// @Security BearerAuth
// @Param path query string true "Stored object path"
// @Success 200 {object} PresignedURLResponse
// @Failure 400 {object} ProblemDetails
// @Failure 503 {object} ProblemDetails
// @Router /images/presign [get]
func (h *ImageHandler) GetPresignedURL(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	objectPath := c.QueryParam("path")
	if objectPath == "" {
		return NewValidationError(c, "Missing object path", []ValidationError{
			{Field: "path", Message: "Object path is required"},
		})
	}

	url, err := h.imageService.GetPresignedURL(c.Request().Context(), objectPath)
	if err != nil {
		if errors.Is(err, service.ErrImageStorageNotConfigured) {
			return NewServiceUnavailableError(c, "Image storage is not configured")
		}
		log.Error().Err(err).Str("object_path", objectPath).Msg("Failed to presign URL")
		return NewInternalError(c, "Failed to presign URL")
	}

	return c.JSON(http.StatusOK, PresignedURLResponse{URL: url})
}

// DeleteImage godoc
// @Summary Delete a stored image object
// @Tags images
// @Security BearerAuth
// @Param path query string true "Stored object path"
// @Success 204
// @Failure 400 {object} ProblemDetails
// @Failure 503 {object} ProblemDetails
// @Router /images [delete]
func (h *ImageHandler) DeleteImage(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	objectPath := c.QueryParam("path")
	if objectPath == "" {
		return NewValidationError(c, "Missing object path", []ValidationError{
			{Field: "path", Message: "Object path is required"},
		})
	}

	if err := h.imageService.Delete(c.Request().Context(), objectPath); err != nil {
		if errors.Is(err, service.ErrImageStorageNotConfigured) {
			return NewServiceUnavailableError(c, "Image storage is not configured")
		}
		log.Error().Err(err).Str("object_path", objectPath).Msg("Failed to delete image")
		return NewInternalError(c, "Failed to delete image")
	}

	return c.NoContent(http.StatusNoContent)
}
