package service

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/velobooks/velobooks-backend/internal/domain"
	"github.com/velobooks/velobooks-backend/internal/websocket"
)

// InventoryService handles stocked item business logic
type InventoryService struct {
	itemRepo       domain.ItemRepository
	eventPublisher websocket.EventPublisher
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(itemRepo domain.ItemRepository) *InventoryService {
	return &InventoryService{itemRepo: itemRepo}
}

// SetEventPublisher sets the event publisher for real-time updates
func (s *InventoryService) SetEventPublisher(publisher websocket.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *InventoryService) publishEvent(workspaceID int32, event websocket.Event) {
	if s.eventPublisher != nil {
		s.eventPublisher.Publish(workspaceID, event)
	}
}

// CreateItemInput holds the input for creating an item
type CreateItemInput struct {
	Name              string
	SKU               *string
	UnitPrice         decimal.Decimal
	CostPrice         decimal.Decimal
	Quantity          int32
	LowStockThreshold int32
}

// CreateItem creates a new inventory item with validation
func (s *InventoryService) CreateItem(workspaceID int32, input CreateItemInput) (*domain.Item, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxNameLength {
		return nil, domain.ErrNameTooLong
	}
	if input.UnitPrice.IsNegative() || input.CostPrice.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}
	if input.Quantity < 0 || input.LowStockThreshold < 0 {
		return nil, domain.ErrInvalidQuantity
	}

	item := &domain.Item{
		WorkspaceID:       workspaceID,
		Name:              name,
		SKU:               input.SKU,
		UnitPrice:         input.UnitPrice,
		CostPrice:         input.CostPrice,
		Quantity:          input.Quantity,
		LowStockThreshold: input.LowStockThreshold,
	}

	created, err := s.itemRepo.Create(item)
	if err != nil {
		return nil, err
	}

	s.publishEvent(workspaceID, websocket.NewEvent(websocket.EventTypeCreated, websocket.EntityTypeItem, created))
	return created, nil
}

// GetItems retrieves all active items in a workspace
func (s *InventoryService) GetItems(workspaceID int32) ([]*domain.Item, error) {
	return s.itemRepo.GetAllByWorkspace(workspaceID)
}

// GetItemByID retrieves an item by ID within a workspace
func (s *InventoryService) GetItemByID(workspaceID int32, id int32) (*domain.Item, error) {
	return s.itemRepo.GetByID(workspaceID, id)
}

// GetLowStockItems returns the items at or below their low stock threshold
func (s *InventoryService) GetLowStockItems(workspaceID int32) ([]*domain.Item, error) {
	items, err := s.itemRepo.GetAllByWorkspace(workspaceID)
	if err != nil {
		return nil, err
	}

	lowStock := []*domain.Item{}
	for _, item := range items {
		if item.IsLowStock() {
			lowStock = append(lowStock, item)
		}
	}
	return lowStock, nil
}

// UpdateItemInput holds the input for updating an item
type UpdateItemInput struct {
	Name              string
	SKU               *string
	UnitPrice         decimal.Decimal
	CostPrice         decimal.Decimal
	LowStockThreshold int32
}

// UpdateItem updates an item's details. Quantity moves only through AdjustStock
// and invoicing.
func (s *InventoryService) UpdateItem(workspaceID int32, id int32, input UpdateItemInput) (*domain.Item, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}
	if len(name) > domain.MaxNameLength {
		return nil, domain.ErrNameTooLong
	}
	if input.UnitPrice.IsNegative() || input.CostPrice.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}
	if input.LowStockThreshold < 0 {
		return nil, domain.ErrInvalidQuantity
	}

	item := &domain.Item{
		Name:              name,
		SKU:               input.SKU,
		UnitPrice:         input.UnitPrice,
		CostPrice:         input.CostPrice,
		LowStockThreshold: input.LowStockThreshold,
	}

	updated, err := s.itemRepo.Update(workspaceID, id, item)
	if err != nil {
		return nil, err
	}

	s.publishEvent(workspaceID, websocket.NewEvent(websocket.EventTypeUpdated, websocket.EntityTypeItem, updated))
	return updated, nil
}

// AdjustStock moves an item's quantity by delta (positive restock, negative
// write-off). The repository refuses adjustments that would go below zero.
func (s *InventoryService) AdjustStock(workspaceID int32, id int32, delta int32) (*domain.Item, error) {
	if delta == 0 {
		return s.itemRepo.GetByID(workspaceID, id)
	}

	adjusted, err := s.itemRepo.AdjustQuantity(workspaceID, id, delta)
	if err != nil {
		return nil, err
	}

	s.publishEvent(workspaceID, websocket.NewEvent(websocket.EventTypeAdjusted, websocket.EntityTypeItem, adjusted))
	return adjusted, nil
}

// DeleteItem soft-deletes an item
func (s *InventoryService) DeleteItem(workspaceID int32, id int32) error {
	if err := s.itemRepo.SoftDelete(workspaceID, id); err != nil {
		return err
	}

	s.publishEvent(workspaceID, websocket.NewEvent(websocket.EventTypeDeleted, websocket.EntityTypeItem, map[string]int32{"id": id}))
	return nil
}
