package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rioplata-erp/tesoreria/internal/domain"
)

// ClientRepository defines data access for clients.
type ClientRepository interface {
	Create(ctx context.Context, tx Transaction, client *domain.Client) error
	AssignInternalCode(ctx context.Context, tx Transaction, id int64, code string) error
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	GetByIDWithDeleted(ctx context.Context, id int64) (*domain.Client, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id int64) (*domain.Client, error)
	Update(ctx context.Context, tx Transaction, client *domain.Client) error
	UpdateSaldo(ctx context.Context, tx Transaction, id int64, saldo decimal.Decimal, updatedAt time.Time) error
	SoftDelete(ctx context.Context, tx Transaction, id int64, deletedAt time.Time) error
	Restore(ctx context.Context, tx Transaction, id int64) error
	ForceDelete(ctx context.Context, tx Transaction, id int64) error
	List(ctx context.Context, filter ListClientsFilter) ([]*domain.Client, error)
}

// ListClientsFilter narrows and paginates client listings.
type ListClientsFilter struct {
	Search        string
	OnlyClients   bool
	OnlyProviders bool
	Limit         int
	Offset        int
}

// MovementRepository defines data access for current-account movements.
type MovementRepository interface {
	Create(ctx context.Context, tx Transaction, movement *domain.Movement) error
	GetByID(ctx context.Context, clientID, id int64) (*domain.Movement, error)
	// GetLastForClient returns the most recently inserted movement (by id)
	// for the client, or domain.ErrMovementNotFound when the ledger is empty.
	GetLastForClient(ctx context.Context, tx Transaction, clientID int64) (*domain.Movement, error)
	Delete(ctx context.Context, tx Transaction, id int64) error
	UpdateSaldo(ctx context.Context, tx Transaction, id int64, saldo decimal.Decimal) error
	// ListByClientAsc returns every movement of the client in insertion
	// order. Used to restamp the saldo chain after a structural change.
	ListByClientAsc(ctx context.Context, tx Transaction, clientID int64) ([]*domain.Movement, error)
	// ListByClient returns movements ordered by fecha descending for display.
	ListByClient(ctx context.Context, clientID int64, limit, offset int) ([]*domain.Movement, error)
	SumByClient(ctx context.Context, tx Transaction, clientID int64) (totalDebe, totalHaber decimal.Decimal, count int64, err error)
	HasPending(ctx context.Context, tx Transaction, clientID int64) (bool, error)
}

// CertificateRepository defines data access for client certificates.
type CertificateRepository interface {
	Create(ctx context.Context, certificate *domain.Certificate) error
	GetByID(ctx context.Context, clientID, id int64) (*domain.Certificate, error)
	Update(ctx context.Context, certificate *domain.Certificate) error
	Delete(ctx context.Context, clientID, id int64) error
	ListByClient(ctx context.Context, clientID int64) ([]*domain.Certificate, error)
	// ListExpiring returns certificates across all clients whose expiry date
	// falls inside [from, to].
	ListExpiring(ctx context.Context, from, to time.Time) ([]*domain.Certificate, error)
}

// ClientTaxRepository defines data access for client tax associations.
type ClientTaxRepository interface {
	Create(ctx context.Context, tax *domain.ClientTax) error
	GetByID(ctx context.Context, clientID, id int64) (*domain.ClientTax, error)
	Update(ctx context.Context, tax *domain.ClientTax) error
	Delete(ctx context.Context, clientID, id int64) error
	ListByClient(ctx context.Context, clientID int64) ([]*domain.ClientTax, error)
}

// ReceiptRepository defines data access for receipts.
type ReceiptRepository interface {
	Create(ctx context.Context, tx Transaction, receipt *domain.Receipt) error
	AssignNumber(ctx context.Context, tx Transaction, id int64, numero string) error
	CreateItem(ctx context.Context, tx Transaction, item *domain.ReceiptItem) error
	GetByID(ctx context.Context, id int64) (*domain.Receipt, error)
	List(ctx context.Context, clientID int64, limit, offset int) ([]*domain.Receipt, error)
	SoftDelete(ctx context.Context, tx Transaction, id int64, deletedAt time.Time) error
}

// Retrier retries an operation on transient database failures such as
// deadlocks between concurrent ledger writers.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
