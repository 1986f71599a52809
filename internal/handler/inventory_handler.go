package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/velobooks/velobooks-backend/internal/domain"
	"github.com/velobooks/velobooks-backend/internal/middleware"
	"github.com/velobooks/velobooks-backend/internal/service"
)

// InventoryHandler handles inventory item HTTP requests
type InventoryHandler struct {
	inventoryService *service.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(inventoryService *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// CreateItemRequest represents the create item request body
type CreateItemRequest struct {
	Name              string  `json:"name"`
	SKU               *string `json:"sku,omitempty"`
	UnitPrice         string  `json:"unitPrice"`
	CostPrice         string  `json:"costPrice"`
	Quantity          int32   `json:"quantity"`
	LowStockThreshold int32   `json:"lowStockThreshold"`
}

// UpdateItemRequest represents the update item request body
type UpdateItemRequest struct {
	Name              string  `json:"name"`
	SKU               *string `json:"sku,omitempty"`
	UnitPrice         string  `json:"unitPrice"`
	CostPrice         string  `json:"costPrice"`
	LowStockThreshold int32   `json:"lowStockThreshold"`
}

// AdjustStockRequest represents the stock adjustment request body
type AdjustStockRequest struct {
	Delta int32 `json:"delta"`
}

// ItemResponse represents an inventory item in API responses
type ItemResponse struct {
	ID                int32     `json:"id"`
	WorkspaceID       int32     `json:"workspaceId"`
	Name              string    `json:"name"`
	SKU               *string   `json:"sku,omitempty"`
	UnitPrice         string    `json:"unitPrice"`
	CostPrice         string    `json:"costPrice"`
	Quantity          int32     `json:"quantity"`
	LowStockThreshold int32     `json:"lowStockThreshold"`
	LowStock          bool      `json:"lowStock"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func newItemResponse(item *domain.Item) ItemResponse {
	return ItemResponse{
		ID:                item.ID,
		WorkspaceID:       item.WorkspaceID,
		Name:              item.Name,
		SKU:               item.SKU,
		UnitPrice:         item.UnitPrice.String(),
		CostPrice:         item.CostPrice.String(),
		Quantity:          item.Quantity,
		LowStockThreshold: item.LowStockThreshold,
		LowStock:          item.IsLowStock(),
		CreatedAt:         item.CreatedAt,
		UpdatedAt:         item.UpdatedAt,
	}
}

func newItemResponses(items []*domain.Item) []ItemResponse {
	out := make([]ItemResponse, len(items))
	for i, item := range items {
		out[i] = newItemResponse(item)
	}
	return out
}

func (h *InventoryHandler) parsePrices(c echo.Context, unitPrice, costPrice string) (decimal.Decimal, decimal.Decimal, error) {
	up, err := decimal.NewFromString(unitPrice)
	if err != nil {
		return decimal.Zero, decimal.Zero, NewValidationError(c, "Invalid unit price", []ValidationError{
			{Field: "unitPrice", Message: "Must be a valid decimal number"},
		})
	}
	cp, err := decimal.NewFromString(costPrice)
	if err != nil {
		return decimal.Zero, decimal.Zero, NewValidationError(c, "Invalid cost price", []ValidationError{
			{Field: "costPrice", Message: "Must be a valid decimal number"},
		})
	}
	return up, cp, nil
}

func (h *InventoryHandler) itemValidationResponse(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrNameRequired):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "name", Message: "Name is required"},
		})
	case errors.Is(err, domain.ErrNameTooLong):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "name", Message: "Name must be 255 characters or less"},
		})
	case errors.Is(err, domain.ErrInvalidAmount):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "unitPrice", Message: "Prices must not be negative"},
		})
	case errors.Is(err, domain.ErrInvalidQuantity):
		return NewValidationError(c, "Validation failed", []ValidationError{
			{Field: "quantity", Message: "Quantity must not be negative"},
		})
	}
	return nil
}

// CreateItem godoc
// @Summary Create an inventory item
// @Tags inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateItemRequest true "Item creation request"
// @Success 201 {object} ItemResponse
// @Failure 400 {object} ProblemDetails
// @Router /items [post]
func (h *InventoryHandler) CreateItem(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	var req CreateItemRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	unitPrice, costPrice, perr := h.parsePrices(c, req.UnitPrice, req.CostPrice)
	if perr != nil {
		return perr
	}

	item, err := h.inventoryService.CreateItem(workspaceID, service.CreateItemInput{
		Name:              req.Name,
		SKU:               req.SKU,
		UnitPrice:         unitPrice,
		CostPrice:         costPrice,
		Quantity:          req.Quantity,
		LowStockThreshold: req.LowStockThreshold,
	})
	if err != nil {
		if resp := h.itemValidationResponse(c, err); resp != nil {
			return resp
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to create item")
		return NewInternalError(c, "Failed to create item")
	}

	return c.JSON(http.StatusCreated, newItemResponse(item))
}

// GetItems godoc
// @Summary List inventory items
// @Tags inventory
// @Produce json
// @Security BearerAuth
// @Param lowStock query bool false "Only items at or below their threshold"
// @Success 200 {array} ItemResponse
// @Failure 401 {object} ProblemDetails
// @Router /items [get]
func (h *InventoryHandler) GetItems(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	var (
		items []*domain.Item
		err   error
	)
	if c.QueryParam("lowStock") == "true" {
		items, err = h.inventoryService.GetLowStockItems(workspaceID)
	} else {
		items, err = h.inventoryService.GetItems(workspaceID)
	}
	if err != nil {
		log.Error().Err(err).Int32("workspace_id", workspaceID).Msg("Failed to get items")
		return NewInternalError(c, "Failed to get items")
	}

	return c.JSON(http.StatusOK, newItemResponses(items))
}

// GetItem godoc
// @Summary Get an inventory item
// @Tags inventory
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Success 200 {object} ItemResponse
// @Failure 404 {object} ProblemDetails
// @Router /items/{id} [get]
func (h *InventoryHandler) GetItem(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid item ID", nil)
	}

	item, err := h.inventoryService.GetItemByID(workspaceID, id)
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return NewNotFoundError(c, "Item not found")
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Int32("item_id", id).Msg("Failed to get item")
		return NewInternalError(c, "Failed to get item")
	}

	return c.JSON(http.StatusOK, newItemResponse(item))
}

// UpdateItem godoc
// @Summary Update an inventory item
// @Description Update item details. Quantity changes only through stock
// @Description adjustments and invoicing.
// @Tags inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Param request body UpdateItemRequest true "Item update request"
// @Success 200 {object} ItemResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /items/{id} [put]
func (h *InventoryHandler) UpdateItem(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid item ID", nil)
	}

	var req UpdateItemRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	unitPrice, costPrice, perr := h.parsePrices(c, req.UnitPrice, req.CostPrice)
	if perr != nil {
		return perr
	}

	item, err := h.inventoryService.UpdateItem(workspaceID, id, service.UpdateItemInput{
		Name:              req.Name,
		SKU:               req.SKU,
		UnitPrice:         unitPrice,
		CostPrice:         costPrice,
		LowStockThreshold: req.LowStockThreshold,
	})
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return NewNotFoundError(c, "Item not found")
		}
		if resp := h.itemValidationResponse(c, err); resp != nil {
			return resp
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Int32("item_id", id).Msg("Failed to update item")
		return NewInternalError(c, "Failed to update item")
	}

	return c.JSON(http.StatusOK, newItemResponse(item))
}

// AdjustStock godoc
// @Summary Adjust item stock
// @Description Apply a signed delta to an item's quantity. The quantity can
// @Description never go below zero.
// @Tags inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Param request body AdjustStockRequest true "Stock adjustment request"
// @Success 200 {object} ItemResponse
// @Failure 404 {object} ProblemDetails
// @Failure 409 {object} ProblemDetails
// @Router /items/{id}/adjust [post]
func (h *InventoryHandler) AdjustStock(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid item ID", nil)
	}

	var req AdjustStockRequest
	if err := c.Bind(&req); err != nil {
		return NewValidationError(c, "Invalid request body", nil)
	}

	item, err := h.inventoryService.AdjustStock(workspaceID, id, req.Delta)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrItemNotFound):
			return NewNotFoundError(c, "Item not found")
		case errors.Is(err, domain.ErrInsufficientStock):
			return NewConflictError(c, "Adjustment would take stock below zero")
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Int32("item_id", id).Msg("Failed to adjust stock")
		return NewInternalError(c, "Failed to adjust stock")
	}

	return c.JSON(http.StatusOK, newItemResponse(item))
}

// DeleteItem godoc
// @Summary Delete an inventory item
// @Tags inventory
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Router /items/{id} [delete]
func (h *InventoryHandler) DeleteItem(c echo.Context) error {
	workspaceID := middleware.GetWorkspaceID(c)
	if workspaceID == 0 {
		return NewUnauthorizedError(c, "Workspace required")
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return NewValidationError(c, "Invalid item ID", nil)
	}

	if err := h.inventoryService.DeleteItem(workspaceID, id); err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return NewNotFoundError(c, "Item not found")
		}
		log.Error().Err(err).Int32("workspace_id", workspaceID).Int32("item_id", id).Msg("Failed to delete item")
		return NewInternalError(c, "Failed to delete item")
	}

	return c.NoContent(http.StatusNoContent)
}
