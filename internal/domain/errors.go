package domain

import "errors"

// Domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInternalError      = errors.New("internal error")
	ErrUserNotFound       = errors.New("user not found")
	ErrWorkspaceNotFound  = errors.New("workspace not found")
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrInvoiceNotFound    = errors.New("invoice not found")
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrItemNotFound       = errors.New("inventory item not found")
	ErrNameRequired       = errors.New("name is required")
	ErrNameTooLong        = errors.New("name exceeds maximum length")
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrInvalidDirection   = errors.New("invalid payment direction")
	ErrInvalidMethod      = errors.New("invalid payment method")
	ErrInvalidCategory    = errors.New("invalid payment category")
	ErrNoInvoiceItems     = errors.New("invoice requires at least one line item")
	ErrInvalidQuantity    = errors.New("quantity must be positive")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrNotesTooLong       = errors.New("notes exceed maximum length")
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrAPITokenNotFound   = errors.New("api token not found")
	ErrTooManyAPITokens   = errors.New("token limit reached for workspace")
	ErrPreferenceNotFound = errors.New("preference not found")
)

// Validation constants
const (
	MaxNameLength  = 255
	MaxNotesLength = 1000
)
