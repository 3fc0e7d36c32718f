package services_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankops-oss/maker_checker_app/internal/apperrors"
	"github.com/bankops-oss/maker_checker_app/internal/core/domain"
	"github.com/bankops-oss/maker_checker_app/internal/core/rules"
	"github.com/bankops-oss/maker_checker_app/internal/core/services"
)

var (
	maker = domain.User{Email: "maker1@test.com", Name: "Deposit Maker 1", Roles: []string{rules.RoleDepositMaker}}
	l1    = domain.User{Email: "checker1@test.com", Name: "Deposit Checker L1", Roles: []string{rules.RoleDepositCheckerL1}}
	l1b   = domain.User{Email: "checker1b@test.com", Name: "Deposit Checker L1B", Roles: []string{rules.RoleDepositCheckerL1}}
	l2    = domain.User{Email: "checker2@test.com", Name: "Deposit Checker L2", Roles: []string{rules.RoleDepositCheckerL2}}
)

// mediumDeposit builds a two stage deposit pending at L1.
func mediumDeposit(t *testing.T) domain.Transaction {
	t.Helper()
	resolved, err := rules.DefaultWorkflowTable().Resolve(domain.Deposit, decimal.NewFromInt(20000))
	require.NoError(t, err)

	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	return domain.Transaction{
		TransactionID:     "txn-1",
		Type:              domain.Deposit,
		Amount:            decimal.NewFromInt(20000),
		WorkflowName:      resolved.Name,
		Stages:            resolved.Stages,
		CurrentStageIndex: 0,
		Status:            domain.PendingStatus(resolved.Stages[0].Label),
		CreatedBy:         maker.Email,
		CreatedAt:         now,
		History: []domain.HistoryEntry{{
			Action:    domain.HistoryActionSubmitted,
			UserID:    maker.Email,
			UserName:  maker.Name,
			Timestamp: now,
		}},
		Version: 1,
	}
}

func TestProcessDecisionApprovalAdvancesStage(t *testing.T) {
	txn := mediumDeposit(t)
	now := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	updated, err := services.ProcessDecision(txn, l1, domain.DecisionApprove, "checked", now)
	require.NoError(t, err)

	assert.Equal(t, domain.StageCompleted, updated.Stages[0].Status)
	assert.Equal(t, domain.StagePending, updated.Stages[1].Status)
	assert.Equal(t, 1, updated.CurrentStageIndex)
	assert.Equal(t, domain.PendingStatus(rules.StageL2Approval), updated.Status)

	require.Len(t, updated.Stages[0].Approvals, 1)
	record := updated.Stages[0].Approvals[0]
	assert.Equal(t, l1.Email, record.UserID)
	assert.Equal(t, domain.DecisionApprove, record.Decision)
	assert.Equal(t, "checked", record.Comments)

	require.Len(t, updated.History, 2)
	assert.Equal(t, "APPROVED_"+rules.StageL1Approval, updated.History[1].Action)
}

func TestProcessDecisionFinalApproval(t *testing.T) {
	txn := mediumDeposit(t)
	now := time.Now().UTC()

	afterL1, err := services.ProcessDecision(txn, l1, domain.DecisionApprove, "", now)
	require.NoError(t, err)

	final, err := services.ProcessDecision(afterL1, l2, domain.DecisionApprove, "", now)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusApproved, final.Status)
	assert.Equal(t, domain.StageCompleted, final.Stages[1].Status)
	assert.Nil(t, final.CurrentStage())
	require.Len(t, final.History, 3)
	assert.Equal(t, "APPROVED_"+rules.StageL2Approval, final.History[2].Action)
}

func TestProcessDecisionRejectionIsTerminal(t *testing.T) {
	txn := mediumDeposit(t)
	now := time.Now().UTC()

	updated, err := services.ProcessDecision(txn, l1, domain.DecisionReject, "suspicious", now)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusRejected, updated.Status)
	assert.Equal(t, domain.StageRejected, updated.Stages[0].Status)
	// The later stage never starts.
	assert.Equal(t, domain.StageNotStarted, updated.Stages[1].Status)
	assert.Equal(t, "REJECTED_"+rules.StageL1Approval, updated.History[len(updated.History)-1].Action)

	// No further decisions are accepted.
	_, err = services.ProcessDecision(updated, l2, domain.DecisionApprove, "", now)
	assert.ErrorIs(t, err, apperrors.ErrNoActiveStage)
}

func TestProcessDecisionMultiApproverStage(t *testing.T) {
	resolved, err := rules.DefaultWorkflowTable().Resolve(domain.Deposit, decimal.NewFromInt(150000))
	require.NoError(t, err)
	require.Equal(t, 2, resolved.Stages[0].RequiredApprovals)

	txn := mediumDeposit(t)
	txn.Stages = resolved.Stages
	txn.Status = domain.PendingStatus(resolved.Stages[0].Label)
	now := time.Now().UTC()

	// First approval is below the threshold: stage stays pending.
	afterFirst, err := services.ProcessDecision(txn, l1, domain.DecisionApprove, "", now)
	require.NoError(t, err)
	assert.Equal(t, domain.StagePending, afterFirst.Stages[0].Status)
	assert.Equal(t, 0, afterFirst.CurrentStageIndex)
	assert.Equal(t, domain.PendingStatus(rules.StageL1Approval), afterFirst.Status)

	// Second distinct approver completes the stage.
	afterSecond, err := services.ProcessDecision(afterFirst, l1b, domain.DecisionApprove, "", now)
	require.NoError(t, err)
	assert.Equal(t, domain.StageCompleted, afterSecond.Stages[0].Status)
	assert.Equal(t, 1, afterSecond.CurrentStageIndex)
}

func TestProcessDecisionPreconditionOrder(t *testing.T) {
	now := time.Now().UTC()

	t.Run("self approval", func(t *testing.T) {
		txn := mediumDeposit(t)
		_, err := services.ProcessDecision(txn, maker, domain.DecisionApprove, "", now)
		assert.ErrorIs(t, err, apperrors.ErrSelfApproval)
	})

	t.Run("already acted wins over self approval", func(t *testing.T) {
		// A maker who somehow recorded a decision gets AlreadyActed, not
		// SelfApproval: the checks run in order.
		txn := mediumDeposit(t)
		txn.Stages[0].Approvals = []domain.ApprovalRecord{{UserID: maker.Email, Decision: domain.DecisionApprove, Timestamp: now}}
		_, err := services.ProcessDecision(txn, maker, domain.DecisionApprove, "", now)
		assert.ErrorIs(t, err, apperrors.ErrAlreadyActed)
	})

	t.Run("double approval", func(t *testing.T) {
		txn := mediumDeposit(t)
		txn.Stages[0].RequiredApprovals = 2
		afterFirst, err := services.ProcessDecision(txn, l1, domain.DecisionApprove, "", now)
		require.NoError(t, err)
		_, err = services.ProcessDecision(afterFirst, l1, domain.DecisionApprove, "", now)
		assert.ErrorIs(t, err, apperrors.ErrAlreadyActed)
	})

	t.Run("ineligible role", func(t *testing.T) {
		txn := mediumDeposit(t)
		accountant := domain.User{Email: "accountant@test.com", Roles: []string{rules.RoleAccountant}}
		_, err := services.ProcessDecision(txn, accountant, domain.DecisionApprove, "", now)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorizedRole)
	})

	t.Run("approved transaction has no active stage", func(t *testing.T) {
		txn := mediumDeposit(t)
		txn.Status = domain.StatusApproved
		txn.Stages[0].Status = domain.StageCompleted
		_, err := services.ProcessDecision(txn, l1, domain.DecisionApprove, "", now)
		assert.ErrorIs(t, err, apperrors.ErrNoActiveStage)
	})
}

func TestProcessDecisionRejectsUnknownDecision(t *testing.T) {
	txn := mediumDeposit(t)
	_, err := services.ProcessDecision(txn, l1, domain.Decision("MAYBE"), "", time.Now())
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestProcessDecisionDoesNotMutateInput(t *testing.T) {
	txn := mediumDeposit(t)
	now := time.Now().UTC()

	_, err := services.ProcessDecision(txn, l1, domain.DecisionApprove, "", now)
	require.NoError(t, err)

	assert.Equal(t, domain.PendingStatus(rules.StageL1Approval), txn.Status)
	assert.Equal(t, 0, txn.CurrentStageIndex)
	assert.Empty(t, txn.Stages[0].Approvals)
	assert.Len(t, txn.History, 1)
}

func TestCanUserDecide(t *testing.T) {
	txn := mediumDeposit(t)

	assert.True(t, services.CanUserDecide(&txn, &l1))
	assert.False(t, services.CanUserDecide(&txn, &maker))
	assert.False(t, services.CanUserDecide(&txn, &l2)) // L2 is not eligible while L1 is active

	rejected := txn.Clone()
	rejected.Status = domain.StatusRejected
	rejected.Stages[0].Status = domain.StageRejected
	assert.False(t, services.CanUserDecide(&rejected, &l1))
}
