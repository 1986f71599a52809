package testutil

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/velobooks/velobooks-backend/internal/domain"
)

// MockUserRepository is a mock implementation of domain.UserRepository
type MockUserRepository struct {
	Users map[string]*domain.User
	ByID  map[uuid.UUID]*domain.User
}

// NewMockUserRepository creates a new MockUserRepository
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users: make(map[string]*domain.User),
		ByID:  make(map[uuid.UUID]*domain.User),
	}
}

// GetByID retrieves a user by ID
func (m *MockUserRepository) GetByID(id uuid.UUID) (*domain.User, error) {
	if user, ok := m.ByID[id]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// GetByAuth0ID retrieves a user by Auth0 ID
func (m *MockUserRepository) GetByAuth0ID(auth0ID string) (*domain.User, error) {
	if user, ok := m.Users[auth0ID]; ok {
		return user, nil
	}
	return nil, domain.ErrUserNotFound
}

// CreateOrGetByAuth0ID creates or retrieves a user by Auth0 ID
func (m *MockUserRepository) CreateOrGetByAuth0ID(auth0ID, email string, name, pictureURL *string) (*domain.User, error) {
	if user, ok := m.Users[auth0ID]; ok {
		return user, nil
	}
	user := &domain.User{
		ID:         uuid.New(),
		Auth0ID:    auth0ID,
		Email:      email,
		Name:       name,
		PictureURL: pictureURL,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	m.Users[auth0ID] = user
	m.ByID[user.ID] = user
	return user, nil
}

// UpdateName updates only the user's name by Auth0 ID
func (m *MockUserRepository) UpdateName(auth0ID string, name string) (*domain.User, error) {
	user, ok := m.Users[auth0ID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	user.Name = &name
	return user, nil
}

// AddUser adds a user to the mock repository (helper for tests)
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.Users[user.Auth0ID] = user
	m.ByID[user.ID] = user
}

// MockWorkspaceRepository is a mock implementation of domain.WorkspaceRepository
type MockWorkspaceRepository struct {
	Workspaces map[int32]*domain.Workspace
	ByOwnerID  map[uuid.UUID]*domain.Workspace
	NextID     int32
}

// NewMockWorkspaceRepository creates a new MockWorkspaceRepository
func NewMockWorkspaceRepository() *MockWorkspaceRepository {
	return &MockWorkspaceRepository{
		Workspaces: make(map[int32]*domain.Workspace),
		ByOwnerID:  make(map[uuid.UUID]*domain.Workspace),
		NextID:     1,
	}
}

// GetByID retrieves a workspace by ID
func (m *MockWorkspaceRepository) GetByID(id int32) (*domain.Workspace, error) {
	if ws, ok := m.Workspaces[id]; ok {
		return ws, nil
	}
	return nil, domain.ErrWorkspaceNotFound
}

// GetByOwnerID retrieves a workspace by owner ID
func (m *MockWorkspaceRepository) GetByOwnerID(ownerID uuid.UUID) (*domain.Workspace, error) {
	if ws, ok := m.ByOwnerID[ownerID]; ok {
		return ws, nil
	}
	return nil, domain.ErrWorkspaceNotFound
}

// Create creates a new workspace
func (m *MockWorkspaceRepository) Create(workspace *domain.Workspace) (*domain.Workspace, error) {
	workspace.ID = m.NextID
	m.NextID++
	workspace.CreatedAt = time.Now()
	workspace.UpdatedAt = time.Now()
	m.Workspaces[workspace.ID] = workspace
	m.ByOwnerID[workspace.OwnerID] = workspace
	return workspace, nil
}

// AddWorkspace adds a workspace to the mock repository (helper for tests)
func (m *MockWorkspaceRepository) AddWorkspace(workspace *domain.Workspace) {
	if workspace.ID >= m.NextID {
		m.NextID = workspace.ID + 1
	}
	m.Workspaces[workspace.ID] = workspace
	m.ByOwnerID[workspace.OwnerID] = workspace
}

// MockCustomerRepository is a mock implementation of domain.CustomerRepository
type MockCustomerRepository struct {
	Customers map[int32]*domain.Customer
	NextID    int32
}

// NewMockCustomerRepository creates a new MockCustomerRepository
func NewMockCustomerRepository() *MockCustomerRepository {
	return &MockCustomerRepository{
		Customers: make(map[int32]*domain.Customer),
		NextID:    1,
	}
}

// Create creates a new customer
func (m *MockCustomerRepository) Create(customer *domain.Customer) (*domain.Customer, error) {
	customer.ID = m.NextID
	m.NextID++
	customer.CreatedAt = time.Now()
	customer.UpdatedAt = time.Now()
	m.Customers[customer.ID] = customer
	return customer, nil
}

// GetByID retrieves a customer by ID within a workspace
func (m *MockCustomerRepository) GetByID(workspaceID int32, id int32) (*domain.Customer, error) {
	c, ok := m.Customers[id]
	if !ok || c.WorkspaceID != workspaceID || c.DeletedAt != nil {
		return nil, domain.ErrCustomerNotFound
	}
	return c, nil
}

// GetByWorkspace lists customers with optional search and pagination
func (m *MockCustomerRepository) GetByWorkspace(workspaceID int32, filters *domain.CustomerFilters) (*domain.PaginatedCustomers, error) {
	var all []*domain.Customer
	for _, c := range m.Customers {
		if c.WorkspaceID != workspaceID || c.DeletedAt != nil {
			continue
		}
		if filters != nil && filters.Search != "" &&
			!strings.Contains(strings.ToLower(c.Name), strings.ToLower(filters.Search)) {
			continue
		}
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	page, pageSize := int32(1), int32(domain.DefaultPageSize)
	if filters != nil {
		if filters.Page > 0 {
			page = filters.Page
		}
		if filters.PageSize > 0 {
			pageSize = filters.PageSize
		}
	}
	return &domain.PaginatedCustomers{
		Data:       paginate(all, page, pageSize),
		Page:       page,
		PageSize:   pageSize,
		TotalItems: int64(len(all)),
		TotalPages: totalPages(int64(len(all)), pageSize),
	}, nil
}

// Update updates a customer
func (m *MockCustomerRepository) Update(workspaceID int32, id int32, customer *domain.Customer) (*domain.Customer, error) {
	existing, err := m.GetByID(workspaceID, id)
	if err != nil {
		return nil, err
	}
	customer.ID = existing.ID
	customer.WorkspaceID = workspaceID
	customer.CreatedAt = existing.CreatedAt
	customer.UpdatedAt = time.Now()
	m.Customers[id] = customer
	return customer, nil
}

// SoftDelete marks a customer as deleted
func (m *MockCustomerRepository) SoftDelete(workspaceID int32, id int32) error {
	c, err := m.GetByID(workspaceID, id)
	if err != nil {
		return err
	}
	now := time.Now()
	c.DeletedAt = &now
	return nil
}

// Count counts active customers in a workspace
func (m *MockCustomerRepository) Count(workspaceID int32) (int64, error) {
	var n int64
	for _, c := range m.Customers {
		if c.WorkspaceID == workspaceID && c.DeletedAt == nil {
			n++
		}
	}
	return n, nil
}

// AddCustomer adds a customer to the mock repository (helper for tests)
func (m *MockCustomerRepository) AddCustomer(customer *domain.Customer) {
	if customer.ID >= m.NextID {
		m.NextID = customer.ID + 1
	}
	m.Customers[customer.ID] = customer
}

// MockItemRepository is a mock implementation of domain.ItemRepository
type MockItemRepository struct {
	Items  map[int32]*domain.Item
	NextID int32
}

// NewMockItemRepository creates a new MockItemRepository
func NewMockItemRepository() *MockItemRepository {
	return &MockItemRepository{
		Items:  make(map[int32]*domain.Item),
		NextID: 1,
	}
}

// Create creates a new item
func (m *MockItemRepository) Create(item *domain.Item) (*domain.Item, error) {
	item.ID = m.NextID
	m.NextID++
	item.CreatedAt = time.Now()
	item.UpdatedAt = time.Now()
	m.Items[item.ID] = item
	return item, nil
}

// GetByID retrieves an item by ID within a workspace
func (m *MockItemRepository) GetByID(workspaceID int32, id int32) (*domain.Item, error) {
	item, ok := m.Items[id]
	if !ok || item.WorkspaceID != workspaceID || item.DeletedAt != nil {
		return nil, domain.ErrItemNotFound
	}
	return item, nil
}

// GetAllByWorkspace lists all active items sorted by name
func (m *MockItemRepository) GetAllByWorkspace(workspaceID int32) ([]*domain.Item, error) {
	var all []*domain.Item
	for _, item := range m.Items {
		if item.WorkspaceID == workspaceID && item.DeletedAt == nil {
			all = append(all, item)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all, nil
}

// Update updates an item's details, leaving quantity untouched
func (m *MockItemRepository) Update(workspaceID int32, id int32, item *domain.Item) (*domain.Item, error) {
	existing, err := m.GetByID(workspaceID, id)
	if err != nil {
		return nil, err
	}
	item.ID = existing.ID
	item.WorkspaceID = workspaceID
	item.Quantity = existing.Quantity
	item.CreatedAt = existing.CreatedAt
	item.UpdatedAt = time.Now()
	m.Items[id] = item
	return item, nil
}

// AdjustQuantity applies a signed delta, refusing to go below zero
func (m *MockItemRepository) AdjustQuantity(workspaceID int32, id int32, delta int32) (*domain.Item, error) {
	item, err := m.GetByID(workspaceID, id)
	if err != nil {
		return nil, err
	}
	if item.Quantity+delta < 0 {
		return nil, domain.ErrInsufficientStock
	}
	item.Quantity += delta
	item.UpdatedAt = time.Now()
	return item, nil
}

// SoftDelete marks an item as deleted
func (m *MockItemRepository) SoftDelete(workspaceID int32, id int32) error {
	item, err := m.GetByID(workspaceID, id)
	if err != nil {
		return err
	}
	now := time.Now()
	item.DeletedAt = &now
	return nil
}

// AddItem adds an item to the mock repository (helper for tests)
func (m *MockItemRepository) AddItem(item *domain.Item) {
	if item.ID >= m.NextID {
		m.NextID = item.ID + 1
	}
	m.Items[item.ID] = item
}

// MockInvoiceRepository is a mock implementation of domain.InvoiceRepository.
// When Items is set, Create decrements stock for linked lines and SoftDelete
// restores it, matching the transactional behavior of the real repository.
type MockInvoiceRepository struct {
	Invoices map[int32]*domain.Invoice
	Items    *MockItemRepository
	NextID   int32
	Created  int64
}

// NewMockInvoiceRepository creates a new MockInvoiceRepository
func NewMockInvoiceRepository() *MockInvoiceRepository {
	return &MockInvoiceRepository{
		Invoices: make(map[int32]*domain.Invoice),
		NextID:   1,
	}
}

// Create creates a new invoice and decrements stock for linked lines
func (m *MockInvoiceRepository) Create(invoice *domain.Invoice) (*domain.Invoice, error) {
	if m.Items != nil {
		for _, line := range invoice.Items {
			if line.ItemID == nil {
				continue
			}
			if _, err := m.Items.AdjustQuantity(invoice.WorkspaceID, *line.ItemID, -line.Quantity); err != nil {
				return nil, err
			}
		}
	}
	invoice.ID = m.NextID
	m.NextID++
	invoice.CreatedAt = time.Now()
	invoice.UpdatedAt = time.Now()
	for i := range invoice.Items {
		invoice.Items[i].ID = int32(i + 1)
		invoice.Items[i].InvoiceID = invoice.ID
	}
	m.Invoices[invoice.ID] = invoice
	m.Created++
	return invoice, nil
}

// GetByID retrieves an invoice by ID within a workspace
func (m *MockInvoiceRepository) GetByID(workspaceID int32, id int32) (*domain.Invoice, error) {
	inv, ok := m.Invoices[id]
	if !ok || inv.WorkspaceID != workspaceID || inv.DeletedAt != nil {
		return nil, domain.ErrInvoiceNotFound
	}
	return inv, nil
}

// GetByWorkspace lists invoices with optional filters and pagination
func (m *MockInvoiceRepository) GetByWorkspace(workspaceID int32, filters *domain.InvoiceFilters) (*domain.PaginatedInvoices, error) {
	var all []*domain.Invoice
	for _, inv := range m.Invoices {
		if inv.WorkspaceID != workspaceID || inv.DeletedAt != nil {
			continue
		}
		if filters != nil {
			if filters.CustomerID != nil && inv.CustomerID != *filters.CustomerID {
				continue
			}
			if filters.StartDate != nil && inv.InvoiceDate.Before(*filters.StartDate) {
				continue
			}
			if filters.EndDate != nil && inv.InvoiceDate.After(*filters.EndDate) {
				continue
			}
		}
		all = append(all, inv)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	page, pageSize := int32(1), int32(domain.DefaultPageSize)
	if filters != nil {
		if filters.Page > 0 {
			page = filters.Page
		}
		if filters.PageSize > 0 {
			pageSize = filters.PageSize
		}
	}
	return &domain.PaginatedInvoices{
		Data:       paginate(all, page, pageSize),
		Page:       page,
		PageSize:   pageSize,
		TotalItems: int64(len(all)),
		TotalPages: totalPages(int64(len(all)), pageSize),
	}, nil
}

// GetAllByCustomer lists a customer's invoices oldest first
func (m *MockInvoiceRepository) GetAllByCustomer(workspaceID int32, customerID int32) ([]*domain.Invoice, error) {
	var all []*domain.Invoice
	for _, inv := range m.Invoices {
		if inv.WorkspaceID == workspaceID && inv.CustomerID == customerID && inv.DeletedAt == nil {
			all = append(all, inv)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].InvoiceDate.Equal(all[j].InvoiceDate) {
			return all[i].InvoiceDate.Before(all[j].InvoiceDate)
		}
		return all[i].ID < all[j].ID
	})
	return all, nil
}

// SoftDelete marks an invoice as deleted and restores stock
func (m *MockInvoiceRepository) SoftDelete(workspaceID int32, id int32) error {
	inv, err := m.GetByID(workspaceID, id)
	if err != nil {
		return err
	}
	if m.Items != nil {
		for _, line := range inv.Items {
			if line.ItemID == nil {
				continue
			}
			if _, err := m.Items.AdjustQuantity(workspaceID, *line.ItemID, line.Quantity); err != nil {
				return err
			}
		}
	}
	now := time.Now()
	inv.DeletedAt = &now
	return nil
}

// NextNumber returns the next invoice sequence number, counting deleted rows
func (m *MockInvoiceRepository) NextNumber(workspaceID int32) (int64, error) {
	var n int64
	for _, inv := range m.Invoices {
		if inv.WorkspaceID == workspaceID {
			n++
		}
	}
	return n + 1, nil
}

// Totals aggregates active invoices for a workspace
func (m *MockInvoiceRepository) Totals(workspaceID int32) (*domain.InvoiceTotals, error) {
	totals := &domain.InvoiceTotals{}
	for _, inv := range m.Invoices {
		if inv.WorkspaceID == workspaceID && inv.DeletedAt == nil {
			totals.Count++
			totals.Total = totals.Total.Add(inv.Total)
		}
	}
	return totals, nil
}

// AddInvoice adds an invoice to the mock repository (helper for tests)
func (m *MockInvoiceRepository) AddInvoice(invoice *domain.Invoice) {
	if invoice.ID >= m.NextID {
		m.NextID = invoice.ID + 1
	}
	m.Invoices[invoice.ID] = invoice
}

// MockPaymentRepository is a mock implementation of domain.PaymentRepository
type MockPaymentRepository struct {
	Payments map[int32]*domain.Payment
	NextID   int32
}

// NewMockPaymentRepository creates a new MockPaymentRepository
func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{
		Payments: make(map[int32]*domain.Payment),
		NextID:   1,
	}
}

// Create creates a new payment
func (m *MockPaymentRepository) Create(payment *domain.Payment) (*domain.Payment, error) {
	payment.ID = m.NextID
	m.NextID++
	payment.CreatedAt = time.Now()
	payment.UpdatedAt = time.Now()
	m.Payments[payment.ID] = payment
	return payment, nil
}

// GetByID retrieves a payment by ID within a workspace
func (m *MockPaymentRepository) GetByID(workspaceID int32, id int32) (*domain.Payment, error) {
	p, ok := m.Payments[id]
	if !ok || p.WorkspaceID != workspaceID || p.DeletedAt != nil {
		return nil, domain.ErrPaymentNotFound
	}
	return p, nil
}

// GetByWorkspace lists payments with optional filters and pagination
func (m *MockPaymentRepository) GetByWorkspace(workspaceID int32, filters *domain.PaymentFilters) (*domain.PaginatedPayments, error) {
	var all []*domain.Payment
	for _, p := range m.Payments {
		if p.WorkspaceID != workspaceID || p.DeletedAt != nil {
			continue
		}
		if filters != nil {
			if filters.CustomerID != nil && (p.CustomerID == nil || *p.CustomerID != *filters.CustomerID) {
				continue
			}
			if filters.Direction != nil && p.Direction != *filters.Direction {
				continue
			}
			if filters.Method != nil && p.Method != *filters.Method {
				continue
			}
			if filters.StartDate != nil && p.PaymentDate.Before(*filters.StartDate) {
				continue
			}
			if filters.EndDate != nil && p.PaymentDate.After(*filters.EndDate) {
				continue
			}
		}
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	page, pageSize := int32(1), int32(domain.DefaultPageSize)
	if filters != nil {
		if filters.Page > 0 {
			page = filters.Page
		}
		if filters.PageSize > 0 {
			pageSize = filters.PageSize
		}
	}
	return &domain.PaginatedPayments{
		Data:       paginate(all, page, pageSize),
		Page:       page,
		PageSize:   pageSize,
		TotalItems: int64(len(all)),
		TotalPages: totalPages(int64(len(all)), pageSize),
	}, nil
}

// GetAllByCustomer lists a customer's payments of one direction oldest first
func (m *MockPaymentRepository) GetAllByCustomer(workspaceID int32, customerID int32, direction domain.PaymentDirection) ([]*domain.Payment, error) {
	var all []*domain.Payment
	for _, p := range m.Payments {
		if p.WorkspaceID != workspaceID || p.DeletedAt != nil || p.Direction != direction {
			continue
		}
		if p.CustomerID == nil || *p.CustomerID != customerID {
			continue
		}
		all = append(all, p)
	}
	sortPaymentsByDate(all)
	return all, nil
}

// GetAllByMethods lists payments whose method matches any of the given set
func (m *MockPaymentRepository) GetAllByMethods(workspaceID int32, methods []domain.PaymentMethod) ([]*domain.Payment, error) {
	allowed := make(map[domain.PaymentMethod]bool, len(methods))
	for _, method := range methods {
		allowed[method] = true
	}
	var all []*domain.Payment
	for _, p := range m.Payments {
		if p.WorkspaceID == workspaceID && p.DeletedAt == nil && allowed[p.Method] {
			all = append(all, p)
		}
	}
	sortPaymentsByDate(all)
	return all, nil
}

// SoftDelete marks a payment as deleted
func (m *MockPaymentRepository) SoftDelete(workspaceID int32, id int32) error {
	p, err := m.GetByID(workspaceID, id)
	if err != nil {
		return err
	}
	now := time.Now()
	p.DeletedAt = &now
	return nil
}

// NextNumber returns the next sequence number for one direction
func (m *MockPaymentRepository) NextNumber(workspaceID int32, direction domain.PaymentDirection) (int64, error) {
	var n int64
	for _, p := range m.Payments {
		if p.WorkspaceID == workspaceID && p.Direction == direction {
			n++
		}
	}
	return n + 1, nil
}

// TotalsByDirection aggregates active payments of one direction
func (m *MockPaymentRepository) TotalsByDirection(workspaceID int32, direction domain.PaymentDirection) (*domain.PaymentTotals, error) {
	totals := &domain.PaymentTotals{}
	for _, p := range m.Payments {
		if p.WorkspaceID == workspaceID && p.DeletedAt == nil && p.Direction == direction {
			totals.Count++
			totals.Total = totals.Total.Add(p.Amount)
		}
	}
	return totals, nil
}

// AddPayment adds a payment to the mock repository (helper for tests)
func (m *MockPaymentRepository) AddPayment(payment *domain.Payment) {
	if payment.ID >= m.NextID {
		m.NextID = payment.ID + 1
	}
	m.Payments[payment.ID] = payment
}

// MockAPITokenRepository is a mock implementation of domain.APITokenRepository
type MockAPITokenRepository struct {
	Tokens map[uuid.UUID]*domain.APIToken
}

// NewMockAPITokenRepository creates a new MockAPITokenRepository
func NewMockAPITokenRepository() *MockAPITokenRepository {
	return &MockAPITokenRepository{Tokens: make(map[uuid.UUID]*domain.APIToken)}
}

// Create stores a new token
func (m *MockAPITokenRepository) Create(ctx context.Context, token *domain.APIToken) error {
	token.ID = uuid.New()
	token.CreatedAt = time.Now()
	m.Tokens[token.ID] = token
	return nil
}

// GetByWorkspace lists active tokens for a workspace
func (m *MockAPITokenRepository) GetByWorkspace(ctx context.Context, workspaceID int32) ([]*domain.APIToken, error) {
	var all []*domain.APIToken
	for _, t := range m.Tokens {
		if t.WorkspaceID == workspaceID && t.RevokedAt == nil {
			all = append(all, t)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return all, nil
}

// GetByHash retrieves an active token by its hash
func (m *MockAPITokenRepository) GetByHash(ctx context.Context, hash string) (*domain.APIToken, error) {
	for _, t := range m.Tokens {
		if t.TokenHash == hash && t.RevokedAt == nil {
			return t, nil
		}
	}
	return nil, domain.ErrAPITokenNotFound
}

// Revoke marks a token as revoked
func (m *MockAPITokenRepository) Revoke(ctx context.Context, workspaceID int32, id uuid.UUID) error {
	t, ok := m.Tokens[id]
	if !ok || t.WorkspaceID != workspaceID || t.RevokedAt != nil {
		return domain.ErrAPITokenNotFound
	}
	now := time.Now()
	t.RevokedAt = &now
	return nil
}

// UpdateLastUsed records the last-used timestamp
func (m *MockAPITokenRepository) UpdateLastUsed(ctx context.Context, id uuid.UUID) error {
	t, ok := m.Tokens[id]
	if !ok {
		return domain.ErrAPITokenNotFound
	}
	now := time.Now()
	t.LastUsedAt = &now
	return nil
}

// MockStaffPingRepository is a mock implementation of domain.StaffPingRepository
type MockStaffPingRepository struct {
	Pings  []*domain.StaffPing
	NextID int32
}

// NewMockStaffPingRepository creates a new MockStaffPingRepository
func NewMockStaffPingRepository() *MockStaffPingRepository {
	return &MockStaffPingRepository{NextID: 1}
}

// Create records a ping
func (m *MockStaffPingRepository) Create(ping *domain.StaffPing) (*domain.StaffPing, error) {
	ping.ID = m.NextID
	m.NextID++
	ping.CreatedAt = time.Now()
	m.Pings = append(m.Pings, ping)
	return ping, nil
}

// GetLatestPerStaff returns the newest ping for each staff member
func (m *MockStaffPingRepository) GetLatestPerStaff(workspaceID int32) ([]*domain.StaffPing, error) {
	latest := make(map[string]*domain.StaffPing)
	for _, p := range m.Pings {
		if p.WorkspaceID != workspaceID {
			continue
		}
		if cur, ok := latest[p.StaffName]; !ok || p.RecordedAt.After(cur.RecordedAt) {
			latest[p.StaffName] = p
		}
	}
	var all []*domain.StaffPing
	for _, p := range latest {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].StaffName < all[j].StaffName })
	return all, nil
}

// GetByStaff returns a staff member's pings newest first, up to limit
func (m *MockStaffPingRepository) GetByStaff(workspaceID int32, staffName string, limit int32) ([]*domain.StaffPing, error) {
	var all []*domain.StaffPing
	for _, p := range m.Pings {
		if p.WorkspaceID == workspaceID && p.StaffName == staffName {
			all = append(all, p)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].RecordedAt.After(all[j].RecordedAt) })
	if limit > 0 && int32(len(all)) > limit {
		all = all[:limit]
	}
	return all, nil
}

// MockPreferenceRepository is a mock implementation of domain.PreferenceRepository
type MockPreferenceRepository struct {
	Prefs map[int32]map[string]*domain.Preference
}

// NewMockPreferenceRepository creates a new MockPreferenceRepository
func NewMockPreferenceRepository() *MockPreferenceRepository {
	return &MockPreferenceRepository{Prefs: make(map[int32]map[string]*domain.Preference)}
}

// Get retrieves a preference by key
func (m *MockPreferenceRepository) Get(workspaceID int32, key string) (*domain.Preference, error) {
	if p, ok := m.Prefs[workspaceID][key]; ok {
		return p, nil
	}
	return nil, domain.ErrPreferenceNotFound
}

// Set stores a preference, replacing any previous value
func (m *MockPreferenceRepository) Set(workspaceID int32, key string, value json.RawMessage) (*domain.Preference, error) {
	if m.Prefs[workspaceID] == nil {
		m.Prefs[workspaceID] = make(map[string]*domain.Preference)
	}
	p := &domain.Preference{
		WorkspaceID: workspaceID,
		Key:         key,
		Value:       value,
		UpdatedAt:   time.Now(),
	}
	m.Prefs[workspaceID][key] = p
	return p, nil
}

// Delete removes a preference by key
func (m *MockPreferenceRepository) Delete(workspaceID int32, key string) error {
	if _, ok := m.Prefs[workspaceID][key]; !ok {
		return domain.ErrPreferenceNotFound
	}
	delete(m.Prefs[workspaceID], key)
	return nil
}

func paginate[T any](all []T, page, pageSize int32) []T {
	start := int((page - 1) * pageSize)
	if start >= len(all) {
		return nil
	}
	end := start + int(pageSize)
	if end > len(all) {
		end = len(all)
	}
	return all[start:end]
}

func totalPages(totalItems int64, pageSize int32) int32 {
	if pageSize <= 0 {
		return 0
	}
	return int32((totalItems + int64(pageSize) - 1) / int64(pageSize))
}

func sortPaymentsByDate(all []*domain.Payment) {
	sort.Slice(all, func(i, j int) bool {
		if !all[i].PaymentDate.Equal(all[j].PaymentDate) {
			return all[i].PaymentDate.Before(all[j].PaymentDate)
		}
		return all[i].ID < all[j].ID
	})
}
