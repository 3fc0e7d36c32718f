package rules_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankops-oss/maker_checker_app/internal/apperrors"
	"github.com/bankops-oss/maker_checker_app/internal/core/domain"
	"github.com/bankops-oss/maker_checker_app/internal/core/rules"
)

func amount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestDefaultWorkflowTableIsExhaustive(t *testing.T) {
	require.NoError(t, rules.DefaultWorkflowTable().CheckExhaustive())
}

func TestResolveDepositTiers(t *testing.T) {
	wt := rules.DefaultWorkflowTable()

	tests := []struct {
		name       string
		amount     decimal.Decimal
		wantName   string
		wantStages int
	}{
		{"just below medium boundary", amount("9999.99"), "Standard Deposit", 1},
		{"exactly at medium boundary", amount("10000"), "Medium Deposit", 2},
		{"just below large boundary", amount("99999.99"), "Medium Deposit", 2},
		{"exactly at large boundary", amount("100000"), "Large Deposit", 3},
		{"far above large boundary", amount("5000000"), "Large Deposit", 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resolved, err := wt.Resolve(domain.Deposit, tc.amount)
			require.NoError(t, err)
			assert.Equal(t, tc.wantName, resolved.Name)
			assert.Len(t, resolved.Stages, tc.wantStages)
		})
	}
}

func TestResolveStageMaterialization(t *testing.T) {
	wt := rules.DefaultWorkflowTable()

	resolved, err := wt.Resolve(domain.Deposit, amount("100000"))
	require.NoError(t, err)
	require.Len(t, resolved.Stages, 3)

	first := resolved.Stages[0]
	assert.Equal(t, rules.StageL1Approval, first.Label)
	assert.Equal(t, 2, first.RequiredApprovals)
	assert.Equal(t, domain.StagePending, first.Status)
	assert.Empty(t, first.Approvals)

	for _, s := range resolved.Stages[1:] {
		assert.Equal(t, domain.StageNotStarted, s.Status)
	}
}

func TestResolveJournalEntryUsesAbsoluteAmount(t *testing.T) {
	wt := rules.DefaultWorkflowTable()

	small, err := wt.Resolve(domain.JournalEntry, amount("1000"))
	require.NoError(t, err)
	assert.Equal(t, "Standard Journal Entry", small.Name)
	assert.Equal(t, rules.StageManagerApproval, small.Stages[0].Label)

	// A net credit of 60000 routes by magnitude, not sign.
	large, err := wt.Resolve(domain.JournalEntry, amount("-60000"))
	require.NoError(t, err)
	assert.Equal(t, "Large Journal Entry", large.Name)
	assert.Len(t, large.Stages, 2)
}

func TestResolveUnknownType(t *testing.T) {
	wt := rules.DefaultWorkflowTable()

	_, err := wt.Resolve(domain.TransactionType("WIRE_TRANSFER"), amount("100"))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)
}

func TestResolveCoversAllTypesAcrossAmounts(t *testing.T) {
	wt := rules.DefaultWorkflowTable()

	probes := []decimal.Decimal{
		amount("0"), amount("0.01"), amount("4999.99"), amount("5000"),
		amount("24999.99"), amount("25000"), amount("49999.99"), amount("50000"),
		amount("99999.99"), amount("100000"), amount("999999999"),
	}
	for _, txnType := range domain.AllTransactionTypes {
		for _, p := range probes {
			resolved, err := wt.Resolve(txnType, p)
			require.NoErrorf(t, err, "type %s amount %s", txnType, p)
			require.NotEmpty(t, resolved.Stages, "type %s amount %s", txnType, p)
		}
	}
}

func TestCheckExhaustiveRejectsGaps(t *testing.T) {
	lo := amount("100")
	hi := amount("200")
	wt := rules.WorkflowTable{
		domain.Deposit: domain.RuleSet{
			Type: domain.Deposit,
			Candidates: []domain.WorkflowCandidate{
				{Name: "low", MaxAmount: &lo, Stages: []domain.StageTemplate{{Label: "A", EligibleRoles: []string{"R"}, RequiredApprovals: 1}}},
				// Gap: nothing covers [100, 200).
				{Name: "high", MinAmount: &hi, Stages: []domain.StageTemplate{{Label: "B", EligibleRoles: []string{"R"}, RequiredApprovals: 1}}},
			},
		},
	}

	err := wt.CheckExhaustive()
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConfiguration)
}

func TestCheckExhaustiveRejectsBoundedTail(t *testing.T) {
	hi := amount("100")
	wt := rules.WorkflowTable{
		domain.Deposit: domain.RuleSet{
			Type: domain.Deposit,
			Candidates: []domain.WorkflowCandidate{
				{Name: "only", MaxAmount: &hi, Stages: []domain.StageTemplate{{Label: "A", EligibleRoles: []string{"R"}, RequiredApprovals: 1}}},
			},
		},
	}

	assert.ErrorIs(t, wt.CheckExhaustive(), apperrors.ErrConfiguration)
}

func TestRoleTablePermissions(t *testing.T) {
	rt := rules.DefaultRoleTable()

	assert.True(t, rt.CanRoleCreate(rules.RoleDepositMaker, domain.Deposit))
	assert.False(t, rt.CanRoleCreate(rules.RoleDepositMaker, domain.Payment))
	assert.True(t, rt.CanRoleApprove(rules.RoleAccountingManager, domain.JournalEntry))
	assert.False(t, rt.CanRoleApprove(rules.RoleDepositMaker, domain.Deposit))
	assert.False(t, rt.CanRoleCreate("NO_SUCH_ROLE", domain.Deposit))
}

func TestEveryStageRoleExistsInRoleTable(t *testing.T) {
	rt := rules.DefaultRoleTable()

	for txnType, rs := range rules.DefaultWorkflowTable() {
		for _, cand := range rs.Candidates {
			for _, stage := range cand.Stages {
				for _, roleID := range stage.EligibleRoles {
					role, ok := rt.Get(roleID)
					require.Truef(t, ok, "role %s referenced by %s/%s is undefined", roleID, txnType, cand.Name)
					assert.Truef(t, role.CanApprove(txnType), "role %s cannot approve %s but gates %s", roleID, txnType, cand.Name)
				}
			}
		}
		for _, roleID := range rs.MakerRoles {
			role, ok := rt.Get(roleID)
			require.Truef(t, ok, "maker role %s for %s is undefined", roleID, txnType)
			assert.Truef(t, role.CanCreate(txnType), "maker role %s cannot create %s", roleID, txnType)
		}
	}
}
