package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bankops-oss/maker_checker_app/internal/apperrors"
	"github.com/bankops-oss/maker_checker_app/internal/core/domain"
	portsrepo "github.com/bankops-oss/maker_checker_app/internal/core/ports/repositories"
)

// PgxTransactionRepository stores transactions as whole JSONB documents with a
// few extracted columns for filtering. The document is the source of truth;
// status, type, created_by and version are maintained alongside it so queries
// never have to unpack JSON.
type PgxTransactionRepository struct {
	pool *pgxpool.Pool
}

// NewPgxTransactionRepository creates a new repository for transaction records.
func NewPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{pool: pool}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

// CreateTransaction persists a new transaction document.
func (r *PgxTransactionRepository) CreateTransaction(ctx context.Context, txn domain.Transaction) error {
	doc, err := json.Marshal(txn)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction %s: %w", txn.TransactionID, err)
	}

	query := `
		INSERT INTO transactions (transaction_id, txn_type, status, created_by, created_at, version, document)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = r.pool.Exec(ctx, query,
		txn.TransactionID,
		txn.Type,
		txn.Status,
		txn.CreatedBy,
		txn.CreatedAt,
		txn.Version,
		doc,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", txn.TransactionID, err)
	}
	return nil
}

// UpdateTransaction replaces the document only if the stored version still
// matches, incrementing the version in the same statement. Zero rows affected
// means another writer got there first.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) (*domain.Transaction, error) {
	expectedVersion := txn.Version
	txn.Version = expectedVersion + 1

	doc, err := json.Marshal(txn)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transaction %s: %w", txn.TransactionID, err)
	}

	query := `
		UPDATE transactions
		SET txn_type = $2, status = $3, version = $4, document = $5
		WHERE transaction_id = $1 AND version = $6;
	`
	tag, err := r.pool.Exec(ctx, query,
		txn.TransactionID,
		txn.Type,
		txn.Status,
		txn.Version,
		doc,
		expectedVersion,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update transaction %s: %w", txn.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		// Either the row is gone or the version moved on; distinguish so the
		// caller can retry on conflict but not on a missing record.
		exists, err := r.exists(ctx, txn.TransactionID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, txn.TransactionID)
		}
		return nil, fmt.Errorf("%w: transaction %s version %d is stale", apperrors.ErrConflict, txn.TransactionID, expectedVersion)
	}
	return &txn, nil
}

// FindTransactionByID retrieves a transaction by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT document FROM transactions WHERE transaction_id = $1;`

	var doc []byte
	err := r.pool.QueryRow(ctx, query, transactionID).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	return unmarshalTransaction(doc)
}

// ListTransactions retrieves transactions matching the filter, newest first.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.ListTransactionsFilter) ([]domain.Transaction, error) {
	query := `SELECT document FROM transactions WHERE 1=1`
	args := []any{}
	argN := 1

	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argN)
		args = append(args, filter.Status)
		argN++
	}
	if filter.CreatedBy != "" {
		query += fmt.Sprintf(" AND created_by = $%d", argN)
		args = append(args, filter.CreatedBy)
		argN++
	}
	if filter.Type != "" {
		query += fmt.Sprintf(" AND txn_type = $%d", argN)
		args = append(args, filter.Type)
		argN++
	}
	query += " ORDER BY created_at DESC, transaction_id DESC;"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

// ListPendingTransactions retrieves every non-terminal transaction, newest first.
func (r *PgxTransactionRepository) ListPendingTransactions(ctx context.Context) ([]domain.Transaction, error) {
	query := `
		SELECT document FROM transactions
		WHERE status NOT IN ($1, $2)
		ORDER BY created_at DESC, transaction_id DESC;
	`
	rows, err := r.pool.Query(ctx, query, domain.StatusApproved, domain.StatusRejected)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending transactions: %w", err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

func (r *PgxTransactionRepository) exists(ctx context.Context, transactionID string) (bool, error) {
	var one int
	err := r.pool.QueryRow(ctx, `SELECT 1 FROM transactions WHERE transaction_id = $1;`, transactionID).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check transaction %s: %w", transactionID, err)
	}
	return true, nil
}

func unmarshalTransaction(doc []byte) (*domain.Transaction, error) {
	var txn domain.Transaction
	if err := json.Unmarshal(doc, &txn); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transaction document: %w", err)
	}
	return &txn, nil
}

func collectTransactions(rows pgx.Rows) ([]domain.Transaction, error) {
	var txns []domain.Transaction
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txn, err := unmarshalTransaction(doc)
		if err != nil {
			return nil, err
		}
		txns = append(txns, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading transaction rows: %w", err)
	}
	return txns, nil
}
