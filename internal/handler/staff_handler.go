package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/velobooks/velobooks-backend/internal/domain"
	"github.com/velobooks/velobooks-backend/internal/middleware"
	"github.com/velobooks/velobooks-backend/internal/service"
)

// StaffHandler handles staff location HTTP requests
type StaffHandler struct {
	staffService *service.StaffService
}

// NewStaffHandler creates a new StaffHandler
func NewStaffHandler(staffService *service.StaffService) *StaffHandler {
	return &StaffHandler{staffService: staffService}
}

// RecordPingRequest represents the staff ping request body
type RecordPingRequest struct {
	StaffName  string     `json:"staffName"`
	Latitude   float64    `json:"latitude"`
	Longitude  float64    `json:"longitude"`
	RecordedAt *time.Time `json:"recordedAt,omitempty"`
}

// RecordPing godoc
// @Summary Record a staff location ping
// @Description Record a staff check-in, typically from a field mechanic's
// @Description phone during pickups and deliveries
// @Tags staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RecordPingRequest true "Ping request"
// @Success 201 {object} domain.StaffPing
// @Failure 400 {object} ProblemDetails
// @Router /staff/pings [post]
func (h *StaffHandler) RecordPing(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	var req RecordPingRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	ping, err := h.staffService.RecordPing(workspaceID, service.RecordPingInput{
		StaffName:  req.StaffName,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		RecordedAt: req.RecordedAt,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNameRequired):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "staffName", Message: "Staff name is required"},
			})
		case errors.Is(err, domain.ErrNameTooLong):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "staffName", Message: "Staff name must be 255 characters or less"},
			})
		case errors.Is(err, domain.ErrInvalidCoordinates):
			return NewValidationError(c, "Validation failed", []ValidationError{
				{Field: "latitude", Message: "Coordinates must be valid latitude and longitude"},
			})
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to record staff ping")
		return NewInternalError(c, "Failed to record staff ping")
	}

	return c.JSON(http.StatusCreated, ping)
}

// GetLatestLocations godoc
// @Summary Latest location per staff member
// @Tags staff
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.StaffPing
// @Failure 401 {object} ProblemDetails
// @Router /staff/locations [get]
func (h *StaffHandler) GetLatestLocations(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	pings, err := h.staffService.GetLatestLocations(workspaceID)
	if err != nil {
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to get staff locations")
		return NewInternalError(c, "Failed to get staff locations")
	}

	return c.JSON(http.StatusOK, pings)
}

// GetStaffHistory godoc
// @Summary Location history for one staff member
// @Tags staff
// @Produce json
// @Security BearerAuth
// @Param name path string true "Staff name"
// @Param limit query int false "Maximum pings to return" default(50)
// @Success 200 {array} domain.StaffPing
// @Failure 400 {object} ProblemDetails
// @Router /staff/{name}/history [get]
func (h *StaffHandler) GetStaffHistory(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	staffName := c.Param("name")
	if staffName == "" {
		return NewValidationError(c, "Staff name is required", nil)
	}

	var limit int32
	if raw := c.QueryParam("limit"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || v < 0 {
			return NewValidationError(c, "Invalid limit", nil)
		}
		limit = int32(v)
	}

	pings, err := h.staffService.GetStaffHistory(workspaceID, staffName, limit)
	if err != nil {
		if errors.Is(err, domain.ErrNameRequired) {
			return NewValidationError(c, "Staff name is required", nil)
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Str("staff_name", staffName).Msg("Failed to get staff history")
		return NewInternalError(c, "Failed to get staff history")
	}

	return c.JSON(http.StatusOK, pings)
}
