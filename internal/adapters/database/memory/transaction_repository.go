// Package memory provides an in-memory transaction store. It backs the demo
// deployment mode and the service test suites; semantics mirror the pgsql
// adapter, including version checks.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/bankops-oss/maker_checker_app/internal/apperrors"
	"github.com/bankops-oss/maker_checker_app/internal/core/domain"
	portsrepo "github.com/bankops-oss/maker_checker_app/internal/core/ports/repositories"
)

// TransactionRepository is a mutex-guarded map of transaction records.
type TransactionRepository struct {
	mu   sync.RWMutex
	txns map[string]domain.Transaction
}

// NewTransactionRepository creates an empty in-memory repository.
func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{txns: make(map[string]domain.Transaction)}
}

var _ portsrepo.TransactionRepositoryFacade = (*TransactionRepository)(nil)

func (r *TransactionRepository) CreateTransaction(ctx context.Context, txn domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.txns[txn.TransactionID]; exists {
		return fmt.Errorf("%w: transaction %s", apperrors.ErrDuplicate, txn.TransactionID)
	}
	r.txns[txn.TransactionID] = txn.Clone()
	return nil
}

func (r *TransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.txns[txn.TransactionID]
	if !exists {
		return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, txn.TransactionID)
	}
	if stored.Version != txn.Version {
		return nil, fmt.Errorf("%w: transaction %s version %d is stale", apperrors.ErrConflict, txn.TransactionID, txn.Version)
	}

	updated := txn.Clone()
	updated.Version = txn.Version + 1
	r.txns[txn.TransactionID] = updated

	result := updated.Clone()
	return &result, nil
}

func (r *TransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, exists := r.txns[transactionID]
	if !exists {
		return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}
	txn := stored.Clone()
	return &txn, nil
}

func (r *TransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.ListTransactionsFilter) ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var txns []domain.Transaction
	for _, stored := range r.txns {
		if filter.Status != "" && stored.Status != filter.Status {
			continue
		}
		if filter.CreatedBy != "" && stored.CreatedBy != filter.CreatedBy {
			continue
		}
		if filter.Type != "" && stored.Type != filter.Type {
			continue
		}
		txns = append(txns, stored.Clone())
	}
	sortNewestFirst(txns)
	return txns, nil
}

func (r *TransactionRepository) ListPendingTransactions(ctx context.Context) ([]domain.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var txns []domain.Transaction
	for _, stored := range r.txns {
		if stored.Status.IsTerminal() {
			continue
		}
		txns = append(txns, stored.Clone())
	}
	sortNewestFirst(txns)
	return txns, nil
}

func sortNewestFirst(txns []domain.Transaction) {
	sort.Slice(txns, func(i, j int) bool {
		if !txns[i].CreatedAt.Equal(txns[j].CreatedAt) {
			return txns[i].CreatedAt.After(txns[j].CreatedAt)
		}
		return txns[i].TransactionID > txns[j].TransactionID
	})
}
