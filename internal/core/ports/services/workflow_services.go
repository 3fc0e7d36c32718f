package services

import (
	"context"

	"github.com/bankops-oss/maker_checker_app/internal/core/domain"
	"github.com/bankops-oss/maker_checker_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// WorkflowReaderSvc defines read operations for transactions in the approval workflow.
type WorkflowReaderSvc interface {
	// GetTransaction retrieves a transaction by ID.
	GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves transactions matching the filter, newest first.
	ListTransactions(ctx context.Context, filter repositories.ListTransactionsFilter) ([]domain.Transaction, error)

	// ListPendingForUser retrieves non-terminal transactions whose active stage
	// the given user is eligible to decide on.
	ListPendingForUser(ctx context.Context, user *domain.User) ([]domain.Transaction, error)
}

// WorkflowWriterSvc defines write operations for the approval workflow.
type WorkflowWriterSvc interface {
	// SubmitTransaction resolves the workflow for the given type and amount and
	// persists a new transaction created by the given maker.
	SubmitTransaction(ctx context.Context, maker *domain.User, txnType domain.TransactionType, amount decimal.Decimal, details map[string]string) (*domain.Transaction, error)

	// SubmitDecision records an approve/reject decision by the acting user on the
	// transaction's active stage and returns the updated transaction.
	SubmitDecision(ctx context.Context, transactionID string, actor *domain.User, decision domain.Decision, comments string) (*domain.Transaction, error)
}

// WorkflowSvcFacade combines all workflow service interfaces.
type WorkflowSvcFacade interface {
	WorkflowReaderSvc
	WorkflowWriterSvc
}
