package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankops-oss/maker_checker_app/internal/adapters/database/memory"
	"github.com/bankops-oss/maker_checker_app/internal/apperrors"
	"github.com/bankops-oss/maker_checker_app/internal/core/domain"
	portsrepo "github.com/bankops-oss/maker_checker_app/internal/core/ports/repositories"
)

func sampleTransaction(id string, createdAt time.Time) domain.Transaction {
	return domain.Transaction{
		TransactionID: id,
		Type:          domain.Deposit,
		Amount:        decimal.NewFromInt(500),
		WorkflowName:  "Standard Deposit",
		Stages: []domain.StageInstance{{
			Label:             "L1_APPROVAL",
			EligibleRoles:     []string{"DEPOSIT_CHECKER_L1"},
			RequiredApprovals: 1,
			Status:            domain.StagePending,
		}},
		Status:    domain.PendingStatus("L1_APPROVAL"),
		CreatedBy: "maker1@test.com",
		CreatedAt: createdAt,
		History: []domain.HistoryEntry{{
			Action:    domain.HistoryActionSubmitted,
			UserID:    "maker1@test.com",
			Timestamp: createdAt,
		}},
		Version: 1,
	}
}

func TestCreateAndFindRoundTrip(t *testing.T) {
	repo := memory.NewTransactionRepository()
	ctx := context.Background()
	txn := sampleTransaction("txn-1", time.Now())

	require.NoError(t, repo.CreateTransaction(ctx, txn))

	found, err := repo.FindTransactionByID(ctx, "txn-1")
	require.NoError(t, err)
	assert.Equal(t, txn.TransactionID, found.TransactionID)
	assert.Equal(t, txn.Status, found.Status)
	assert.True(t, txn.Amount.Equal(found.Amount))
	assert.Len(t, found.History, 1)
}

func TestCreateDuplicate(t *testing.T) {
	repo := memory.NewTransactionRepository()
	ctx := context.Background()
	txn := sampleTransaction("txn-1", time.Now())

	require.NoError(t, repo.CreateTransaction(ctx, txn))
	err := repo.CreateTransaction(ctx, txn)
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestFindUnknown(t *testing.T) {
	repo := memory.NewTransactionRepository()

	_, err := repo.FindTransactionByID(context.Background(), "nope")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestReadsAreIsolatedFromCallerMutation(t *testing.T) {
	repo := memory.NewTransactionRepository()
	ctx := context.Background()
	txn := sampleTransaction("txn-1", time.Now())
	require.NoError(t, repo.CreateTransaction(ctx, txn))

	// Mutating the value we passed in must not affect the stored copy.
	txn.Stages[0].Status = domain.StageRejected

	found, err := repo.FindTransactionByID(ctx, "txn-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StagePending, found.Stages[0].Status)

	// Nor must mutating what we read back.
	found.Stages[0].Status = domain.StageCompleted
	again, err := repo.FindTransactionByID(ctx, "txn-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StagePending, again.Stages[0].Status)
}

func TestUpdateIncrementsVersion(t *testing.T) {
	repo := memory.NewTransactionRepository()
	ctx := context.Background()
	txn := sampleTransaction("txn-1", time.Now())
	require.NoError(t, repo.CreateTransaction(ctx, txn))

	txn.Status = domain.StatusApproved
	updated, err := repo.UpdateTransaction(ctx, txn)
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.Version)
	assert.Equal(t, domain.StatusApproved, updated.Status)

	found, err := repo.FindTransactionByID(ctx, "txn-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), found.Version)
}

func TestUpdateStaleVersion(t *testing.T) {
	repo := memory.NewTransactionRepository()
	ctx := context.Background()
	txn := sampleTransaction("txn-1", time.Now())
	require.NoError(t, repo.CreateTransaction(ctx, txn))

	// First writer wins.
	_, err := repo.UpdateTransaction(ctx, txn)
	require.NoError(t, err)

	// Second writer still holds version 1.
	_, err = repo.UpdateTransaction(ctx, txn)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestUpdateUnknown(t *testing.T) {
	repo := memory.NewTransactionRepository()

	_, err := repo.UpdateTransaction(context.Background(), sampleTransaction("ghost", time.Now()))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestListPendingExcludesTerminal(t *testing.T) {
	repo := memory.NewTransactionRepository()
	ctx := context.Background()
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	pending := sampleTransaction("txn-1", base)
	approved := sampleTransaction("txn-2", base.Add(time.Minute))
	approved.Status = domain.StatusApproved
	rejected := sampleTransaction("txn-3", base.Add(2*time.Minute))
	rejected.Status = domain.StatusRejected

	require.NoError(t, repo.CreateTransaction(ctx, pending))
	require.NoError(t, repo.CreateTransaction(ctx, approved))
	require.NoError(t, repo.CreateTransaction(ctx, rejected))

	got, err := repo.ListPendingTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "txn-1", got[0].TransactionID)
}

func TestListTransactionsOrderingAndFilters(t *testing.T) {
	repo := memory.NewTransactionRepository()
	ctx := context.Background()
	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	oldest := sampleTransaction("txn-1", base)
	middle := sampleTransaction("txn-2", base.Add(time.Minute))
	middle.CreatedBy = "maker2@test.com"
	newest := sampleTransaction("txn-3", base.Add(2*time.Minute))
	newest.Type = domain.Payment
	newest.Status = domain.StatusApproved

	for _, txn := range []domain.Transaction{oldest, middle, newest} {
		require.NoError(t, repo.CreateTransaction(ctx, txn))
	}

	all, err := repo.ListTransactions(ctx, portsrepo.ListTransactionsFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "txn-3", all[0].TransactionID)
	assert.Equal(t, "txn-2", all[1].TransactionID)
	assert.Equal(t, "txn-1", all[2].TransactionID)

	byCreator, err := repo.ListTransactions(ctx, portsrepo.ListTransactionsFilter{CreatedBy: "maker2@test.com"})
	require.NoError(t, err)
	require.Len(t, byCreator, 1)
	assert.Equal(t, "txn-2", byCreator[0].TransactionID)

	byType, err := repo.ListTransactions(ctx, portsrepo.ListTransactionsFilter{Type: domain.Payment})
	require.NoError(t, err)
	require.Len(t, byType, 1)
	assert.Equal(t, "txn-3", byType[0].TransactionID)

	byStatus, err := repo.ListTransactions(ctx, portsrepo.ListTransactionsFilter{Status: domain.StatusApproved})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, "txn-3", byStatus[0].TransactionID)
}
