// Package mocks provides hand-written in-memory doubles for the usecase
// repository interfaces. Each method delegates to an optional Func field so
// tests can override single behaviors while keeping the in-memory defaults.
package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rioplata-erp/tesoreria/internal/domain"
	"github.com/rioplata-erp/tesoreria/internal/usecase"
)

// MockTransaction is a no-op usecase.Transaction.
type MockTransaction struct {
	Committed  bool
	RolledBack bool
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	t.Committed = true
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

// MockTransactionManager hands out MockTransactions.
type MockTransactionManager struct {
	mu           sync.Mutex
	BeginFunc    func(ctx context.Context) (usecase.Transaction, error)
	Transactions []*MockTransaction
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	tx := &MockTransaction{}
	m.Transactions = append(m.Transactions, tx)
	return tx, nil
}

// MockClientRepository is an in-memory implementation of ClientRepository.
type MockClientRepository struct {
	mu      sync.RWMutex
	nextID  int64
	clients map[int64]*domain.Client

	CreateFunc           func(ctx context.Context, tx usecase.Transaction, client *domain.Client) error
	GetByIDFunc          func(ctx context.Context, id int64) (*domain.Client, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id int64) (*domain.Client, error)
	UpdateSaldoFunc      func(ctx context.Context, tx usecase.Transaction, id int64, saldo decimal.Decimal, updatedAt time.Time) error
	SoftDeleteFunc       func(ctx context.Context, tx usecase.Transaction, id int64, deletedAt time.Time) error
}

func NewMockClientRepository() *MockClientRepository {
	return &MockClientRepository{clients: make(map[int64]*domain.Client)}
}

func (m *MockClientRepository) Create(ctx context.Context, tx usecase.Transaction, client *domain.Client) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, client)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	client.ID = m.nextID
	cp := *client
	m.clients[client.ID] = &cp
	return nil
}

func (m *MockClientRepository) AssignInternalCode(ctx context.Context, tx usecase.Transaction, id int64, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.clients[id]
	if !ok {
		return domain.ErrClientNotFound
	}
	c.CodigoInterno = code
	return nil
}

func (m *MockClientRepository) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.clients[id]
	if !ok || c.DeletedAt != nil {
		return nil, domain.ErrClientNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *MockClientRepository) GetByIDWithDeleted(ctx context.Context, id int64) (*domain.Client, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.clients[id]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *MockClientRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id int64) (*domain.Client, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockClientRepository) Update(ctx context.Context, tx usecase.Transaction, client *domain.Client) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.clients[client.ID]; !ok {
		return domain.ErrClientNotFound
	}
	cp := *client
	// Saldo only moves through UpdateSaldo.
	cp.Saldo = m.clients[client.ID].Saldo
	m.clients[client.ID] = &cp
	return nil
}

func (m *MockClientRepository) UpdateSaldo(ctx context.Context, tx usecase.Transaction, id int64, saldo decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateSaldoFunc != nil {
		return m.UpdateSaldoFunc(ctx, tx, id, saldo, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.clients[id]
	if !ok {
		return domain.ErrClientNotFound
	}
	c.Saldo = saldo
	c.UpdatedAt = updatedAt
	return nil
}

func (m *MockClientRepository) SoftDelete(ctx context.Context, tx usecase.Transaction, id int64, deletedAt time.Time) error {
	if m.SoftDeleteFunc != nil {
		return m.SoftDeleteFunc(ctx, tx, id, deletedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.clients[id]
	if !ok {
		return domain.ErrClientNotFound
	}
	c.DeletedAt = &deletedAt
	return nil
}

func (m *MockClientRepository) Restore(ctx context.Context, tx usecase.Transaction, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.clients[id]
	if !ok {
		return domain.ErrClientNotFound
	}
	c.DeletedAt = nil
	return nil
}

func (m *MockClientRepository) ForceDelete(ctx context.Context, tx usecase.Transaction, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.clients[id]; !ok {
		return domain.ErrClientNotFound
	}
	delete(m.clients, id)
	return nil
}

func (m *MockClientRepository) List(ctx context.Context, filter usecase.ListClientsFilter) ([]*domain.Client, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Client
	for i := int64(1); i <= m.nextID; i++ {
		c, ok := m.clients[i]
		if !ok || c.DeletedAt != nil {
			continue
		}
		if filter.OnlyClients && !c.EsCliente {
			continue
		}
		if filter.OnlyProviders && !c.EsProveedor {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

// MockMovementRepository is an in-memory implementation of
// MovementRepository preserving insertion order.
type MockMovementRepository struct {
	mu        sync.RWMutex
	nextID    int64
	movements []*domain.Movement

	CreateFunc func(ctx context.Context, tx usecase.Transaction, movement *domain.Movement) error
	DeleteFunc func(ctx context.Context, tx usecase.Transaction, id int64) error
}

func NewMockMovementRepository() *MockMovementRepository {
	return &MockMovementRepository{}
}

func (m *MockMovementRepository) Create(ctx context.Context, tx usecase.Transaction, movement *domain.Movement) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, movement)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	movement.ID = m.nextID
	cp := *movement
	m.movements = append(m.movements, &cp)
	return nil
}

func (m *MockMovementRepository) GetByID(ctx context.Context, clientID, id int64) (*domain.Movement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, mv := range m.movements {
		if mv.ID == id && mv.ClientID == clientID {
			cp := *mv
			return &cp, nil
		}
	}
	return nil, domain.ErrMovementNotFound
}

func (m *MockMovementRepository) GetLastForClient(ctx context.Context, tx usecase.Transaction, clientID int64) (*domain.Movement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := len(m.movements) - 1; i >= 0; i-- {
		if m.movements[i].ClientID == clientID {
			cp := *m.movements[i]
			return &cp, nil
		}
	}
	return nil, domain.ErrMovementNotFound
}

func (m *MockMovementRepository) Delete(ctx context.Context, tx usecase.Transaction, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, mv := range m.movements {
		if mv.ID == id {
			m.movements = append(m.movements[:i], m.movements[i+1:]...)
			return nil
		}
	}
	return domain.ErrMovementNotFound
}

func (m *MockMovementRepository) UpdateSaldo(ctx context.Context, tx usecase.Transaction, id int64, saldo decimal.Decimal) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, mv := range m.movements {
		if mv.ID == id {
			mv.Saldo = saldo
			return nil
		}
	}
	return domain.ErrMovementNotFound
}

func (m *MockMovementRepository) ListByClientAsc(ctx context.Context, tx usecase.Transaction, clientID int64) ([]*domain.Movement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Movement
	for _, mv := range m.movements {
		if mv.ClientID == clientID {
			cp := *mv
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockMovementRepository) ListByClient(ctx context.Context, clientID int64, limit, offset int) ([]*domain.Movement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var all []*domain.Movement
	for i := len(m.movements) - 1; i >= 0; i-- {
		if m.movements[i].ClientID == clientID {
			cp := *m.movements[i]
			all = append(all, &cp)
		}
	}
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (m *MockMovementRepository) SumByClient(ctx context.Context, tx usecase.Transaction, clientID int64) (decimal.Decimal, decimal.Decimal, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	totalDebe, totalHaber := decimal.Zero, decimal.Zero
	var count int64
	for _, mv := range m.movements {
		if mv.ClientID == clientID {
			totalDebe = totalDebe.Add(mv.Debe)
			totalHaber = totalHaber.Add(mv.Haber)
			count++
		}
	}
	return totalDebe, totalHaber, count, nil
}

func (m *MockMovementRepository) HasPending(ctx context.Context, tx usecase.Transaction, clientID int64) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, mv := range m.movements {
		if mv.ClientID == clientID && mv.IsPending() {
			return true, nil
		}
	}
	return false, nil
}

// MockCertificateRepository is an in-memory CertificateRepository.
type MockCertificateRepository struct {
	mu           sync.RWMutex
	nextID       int64
	certificates map[int64]*domain.Certificate
}

func NewMockCertificateRepository() *MockCertificateRepository {
	return &MockCertificateRepository{certificates: make(map[int64]*domain.Certificate)}
}

func (m *MockCertificateRepository) Create(ctx context.Context, certificate *domain.Certificate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	certificate.ID = m.nextID
	cp := *certificate
	m.certificates[certificate.ID] = &cp
	return nil
}

func (m *MockCertificateRepository) GetByID(ctx context.Context, clientID, id int64) (*domain.Certificate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.certificates[id]
	if !ok || c.ClientID != clientID {
		return nil, domain.ErrCertificateNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *MockCertificateRepository) Update(ctx context.Context, certificate *domain.Certificate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.certificates[certificate.ID]; !ok {
		return domain.ErrCertificateNotFound
	}
	cp := *certificate
	m.certificates[certificate.ID] = &cp
	return nil
}

func (m *MockCertificateRepository) Delete(ctx context.Context, clientID, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.certificates[id]
	if !ok || c.ClientID != clientID {
		return domain.ErrCertificateNotFound
	}
	delete(m.certificates, id)
	return nil
}

func (m *MockCertificateRepository) ListByClient(ctx context.Context, clientID int64) ([]*domain.Certificate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Certificate
	for i := int64(1); i <= m.nextID; i++ {
		if c, ok := m.certificates[i]; ok && c.ClientID == clientID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockCertificateRepository) ListExpiring(ctx context.Context, from, to time.Time) ([]*domain.Certificate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Certificate
	for i := int64(1); i <= m.nextID; i++ {
		c, ok := m.certificates[i]
		if !ok {
			continue
		}
		if !c.FechaVencimiento.Before(from.Truncate(24*time.Hour)) && !c.FechaVencimiento.After(to) {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

// MockClientTaxRepository is an in-memory ClientTaxRepository.
type MockClientTaxRepository struct {
	mu     sync.RWMutex
	nextID int64
	taxes  map[int64]*domain.ClientTax
}

func NewMockClientTaxRepository() *MockClientTaxRepository {
	return &MockClientTaxRepository{taxes: make(map[int64]*domain.ClientTax)}
}

func (m *MockClientTaxRepository) Create(ctx context.Context, tax *domain.ClientTax) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.taxes {
		if t.ClientID == tax.ClientID && t.TaxID == tax.TaxID && t.FechaActualizacion.Equal(tax.FechaActualizacion) {
			return domain.ErrDuplicateClientTax
		}
	}
	m.nextID++
	tax.ID = m.nextID
	cp := *tax
	m.taxes[tax.ID] = &cp
	return nil
}

func (m *MockClientTaxRepository) GetByID(ctx context.Context, clientID, id int64) (*domain.ClientTax, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.taxes[id]
	if !ok || t.ClientID != clientID {
		return nil, domain.ErrClientTaxNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *MockClientTaxRepository) Update(ctx context.Context, tax *domain.ClientTax) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.taxes[tax.ID]; !ok {
		return domain.ErrClientTaxNotFound
	}
	cp := *tax
	m.taxes[tax.ID] = &cp
	return nil
}

func (m *MockClientTaxRepository) Delete(ctx context.Context, clientID, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.taxes[id]
	if !ok || t.ClientID != clientID {
		return domain.ErrClientTaxNotFound
	}
	delete(m.taxes, id)
	return nil
}

func (m *MockClientTaxRepository) ListByClient(ctx context.Context, clientID int64) ([]*domain.ClientTax, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.ClientTax
	for i := int64(1); i <= m.nextID; i++ {
		if t, ok := m.taxes[i]; ok && t.ClientID == clientID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

// MockReceiptRepository is an in-memory ReceiptRepository.
type MockReceiptRepository struct {
	mu       sync.RWMutex
	nextID   int64
	itemID   int64
	receipts map[int64]*domain.Receipt
}

func NewMockReceiptRepository() *MockReceiptRepository {
	return &MockReceiptRepository{receipts: make(map[int64]*domain.Receipt)}
}

func (m *MockReceiptRepository) Create(ctx context.Context, tx usecase.Transaction, receipt *domain.Receipt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	receipt.ID = m.nextID
	cp := *receipt
	cp.Items = nil
	m.receipts[receipt.ID] = &cp
	return nil
}

func (m *MockReceiptRepository) AssignNumber(ctx context.Context, tx usecase.Transaction, id int64, numero string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.receipts[id]
	if !ok {
		return domain.ErrReceiptNotFound
	}
	r.NumeroRecibo = numero
	return nil
}

func (m *MockReceiptRepository) CreateItem(ctx context.Context, tx usecase.Transaction, item *domain.ReceiptItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.receipts[item.ReceiptID]
	if !ok {
		return domain.ErrReceiptNotFound
	}
	m.itemID++
	item.ID = m.itemID
	r.Items = append(r.Items, *item)
	return nil
}

func (m *MockReceiptRepository) GetByID(ctx context.Context, id int64) (*domain.Receipt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.receipts[id]
	if !ok || r.DeletedAt != nil {
		return nil, domain.ErrReceiptNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *MockReceiptRepository) List(ctx context.Context, clientID int64, limit, offset int) ([]*domain.Receipt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Receipt
	for i := m.nextID; i >= 1; i-- {
		r, ok := m.receipts[i]
		if !ok || r.DeletedAt != nil {
			continue
		}
		if clientID != 0 && r.ClientID != clientID {
			continue
		}
		cp := *r
		out = append(out, &cp)
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockReceiptRepository) SoftDelete(ctx context.Context, tx usecase.Transaction, id int64, deletedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.receipts[id]
	if !ok {
		return domain.ErrReceiptNotFound
	}
	r.DeletedAt = &deletedAt
	return nil
}
