package service

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/velobooks/velobooks-backend/internal/domain"
	"github.com/velobooks/velobooks-backend/internal/testutil"
)

func validItemInput() CreateItemInput {
	return CreateItemInput{
		Name:              "Chain 9-speed",
		UnitPrice:         decimal.NewFromInt(650),
		CostPrice:         decimal.NewFromInt(450),
		Quantity:          10,
		LowStockThreshold: 3,
	}
}

func TestCreateItem_Success(t *testing.T) {
	itemRepo := testutil.NewMockItemRepository()
	inventoryService := NewInventoryService(itemRepo)

	item, err := inventoryService.CreateItem(1, validItemInput())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if item.Name != "Chain 9-speed" {
		t.Errorf("Expected name 'Chain 9-speed', got %s", item.Name)
	}
	if item.Quantity != 10 {
		t.Errorf("Expected quantity 10, got %d", item.Quantity)
	}
}

func TestCreateItem_EmptyName(t *testing.T) {
	itemRepo := testutil.NewMockItemRepository()
	inventoryService := NewInventoryService(itemRepo)

	input := validItemInput()
	input.Name = "  "
	_, err := inventoryService.CreateItem(1, input)
	if err != domain.ErrNameRequired {
		t.Errorf("Expected ErrNameRequired, got %v", err)
	}
}

func TestCreateItem_NegativePrice(t *testing.T) {
	itemRepo := testutil.NewMockItemRepository()
	inventoryService := NewInventoryService(itemRepo)

	input := validItemInput()
	input.UnitPrice = decimal.NewFromInt(-1)
	_, err := inventoryService.CreateItem(1, input)
	if err != domain.ErrInvalidAmount {
		t.Errorf("Expected ErrInvalidAmount, got %v", err)
	}
}

func TestCreateItem_NegativeQuantity(t *testing.T) {
	itemRepo := testutil.NewMockItemRepository()
	inventoryService := NewInventoryService(itemRepo)

	input := validItemInput()
	input.Quantity = -5
	_, err := inventoryService.CreateItem(1, input)
	if err != domain.ErrInvalidQuantity {
		t.Errorf("Expected ErrInvalidQuantity, got %v", err)
	}
}

func TestUpdateItem_DoesNotTouchQuantity(t *testing.T) {
	itemRepo := testutil.NewMockItemRepository()
	inventoryService := NewInventoryService(itemRepo)

	created, err := inventoryService.CreateItem(1, validItemInput())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	updated, err := inventoryService.UpdateItem(1, created.ID, UpdateItemInput{
		Name:              "Chain 10-speed",
		UnitPrice:         decimal.NewFromInt(800),
		CostPrice:         decimal.NewFromInt(550),
		LowStockThreshold: 2,
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if updated.Name != "Chain 10-speed" {
		t.Errorf("Expected updated name, got %s", updated.Name)
	}
	if updated.Quantity != 10 {
		t.Errorf("Expected quantity preserved at 10, got %d", updated.Quantity)
	}
}

func TestAdjustStock_PositiveDelta(t *testing.T) {
	itemRepo := testutil.NewMockItemRepository()
	inventoryService := NewInventoryService(itemRepo)

	created, _ := inventoryService.CreateItem(1, validItemInput())

	item, err := inventoryService.AdjustStock(1, created.ID, 5)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if item.Quantity != 15 {
		t.Errorf("Expected quantity 15, got %d", item.Quantity)
	}
}

func TestAdjustStock_NegativeDelta(t *testing.T) {
	itemRepo := testutil.NewMockItemRepository()
	inventoryService := NewInventoryService(itemRepo)

	created, _ := inventoryService.CreateItem(1, validItemInput())

	item, err := inventoryService.AdjustStock(1, created.ID, -4)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if item.Quantity != 6 {
		t.Errorf("Expected quantity 6, got %d", item.Quantity)
	}
}

func TestAdjustStock_BelowZero(t *testing.T) {
	itemRepo := testutil.NewMockItemRepository()
	inventoryService := NewInventoryService(itemRepo)

	created, _ := inventoryService.CreateItem(1, validItemInput())

	_, err := inventoryService.AdjustStock(1, created.ID, -11)
	if err != domain.ErrInsufficientStock {
		t.Errorf("Expected ErrInsufficientStock, got %v", err)
	}

	item, _ := inventoryService.GetItemByID(1, created.ID)
	if item.Quantity != 10 {
		t.Errorf("Expected quantity untouched at 10, got %d", item.Quantity)
	}
}

func TestAdjustStock_ZeroDelta(t *testing.T) {
	itemRepo := testutil.NewMockItemRepository()
	inventoryService := NewInventoryService(itemRepo)

	created, _ := inventoryService.CreateItem(1, validItemInput())

	item, err := inventoryService.AdjustStock(1, created.ID, 0)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if item.Quantity != 10 {
		t.Errorf("Expected quantity 10, got %d", item.Quantity)
	}
}

func TestGetLowStockItems(t *testing.T) {
	itemRepo := testutil.NewMockItemRepository()
	inventoryService := NewInventoryService(itemRepo)

	itemRepo.AddItem(&domain.Item{ID: 1, WorkspaceID: 1, Name: "Chain", Quantity: 10, LowStockThreshold: 3})
	itemRepo.AddItem(&domain.Item{ID: 2, WorkspaceID: 1, Name: "Tube", Quantity: 2, LowStockThreshold: 3})
	itemRepo.AddItem(&domain.Item{ID: 3, WorkspaceID: 1, Name: "Tyre", Quantity: 3, LowStockThreshold: 3})

	low, err := inventoryService.GetLowStockItems(1)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(low) != 2 {
		t.Errorf("Expected 2 low stock items (at or below threshold), got %d", len(low))
	}
}

func TestDeleteItem_Success(t *testing.T) {
	itemRepo := testutil.NewMockItemRepository()
	inventoryService := NewInventoryService(itemRepo)

	created, _ := inventoryService.CreateItem(1, validItemInput())

	if err := inventoryService.DeleteItem(1, created.ID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if _, err := inventoryService.GetItemByID(1, created.ID); err != domain.ErrItemNotFound {
		t.Errorf("Expected ErrItemNotFound after delete, got %v", err)
	}
}
