package repositories

import (
	"context"

	"github.com/bankops-oss/maker_checker_app/internal/core/domain"
)

// ListTransactionsFilter narrows ListTransactions results. Zero values match
// everything.
type ListTransactionsFilter struct {
	Status    domain.TransactionStatus
	CreatedBy string
	Type      domain.TransactionType
}

// TransactionReader defines read operations for transaction records.
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction by its unique identifier.
	// Returns apperrors.ErrNotFound when no record exists.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves transactions matching the filter, newest first.
	ListTransactions(ctx context.Context, filter ListTransactionsFilter) ([]domain.Transaction, error)

	// ListPendingTransactions retrieves every transaction whose status is not
	// terminal (i.e. a stage is awaiting approvals).
	ListPendingTransactions(ctx context.Context) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for transaction records. Records
// are written whole (last-write-wins on the full document): the nested stages,
// approvals and history must round-trip field for field, never merged.
type TransactionWriter interface {
	// CreateTransaction persists a new transaction. The stored record must
	// round-trip to exactly the given value.
	CreateTransaction(ctx context.Context, txn domain.Transaction) error

	// UpdateTransaction replaces the stored record if and only if its version
	// still equals txn.Version, then increments the version. A mismatch
	// returns apperrors.ErrConflict so the caller can reload and retry; this
	// is the per-transaction serialization point for concurrent decisions.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error)
}

// TransactionRepositoryFacade combines all transaction repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}

// RepositoryProvider holds all repository interfaces needed by services.
type RepositoryProvider struct {
	TransactionRepo TransactionRepositoryFacade
}
