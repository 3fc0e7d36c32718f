package rules

import (
	"github.com/bankops-oss/maker_checker_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Stage labels used across workflow definitions. The transaction status while a
// stage is active is "PENDING_" + label.
const (
	StageL1Approval      = "L1_APPROVAL"
	StageL2Approval      = "L2_APPROVAL"
	StageManagerApproval = "MANAGER_APPROVAL"
	StageRiskApproval    = "RISK_APPROVAL"
	StageSeniorApproval  = "SENIOR_APPROVAL"
)

func amt(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

// WorkflowTable maps each transaction type to its ordered rule set.
type WorkflowTable map[domain.TransactionType]domain.RuleSet

// DefaultWorkflowTable returns the built-in workflow rule table. Candidate
// tiers within each type partition [0, inf) into disjoint half-open ranges;
// CheckExhaustive verifies this at startup and in tests.
func DefaultWorkflowTable() WorkflowTable {
	return WorkflowTable{
		domain.Deposit: {
			Type:        domain.Deposit,
			Description: "Customer deposit to account",
			MakerRoles:  []string{RoleDepositMaker, RoleSeniorDepositMaker},
			Candidates: []domain.WorkflowCandidate{
				{
					Name:      "Standard Deposit",
					MaxAmount: amt(10000),
					Stages: []domain.StageTemplate{
						{Label: StageL1Approval, EligibleRoles: []string{RoleDepositCheckerL1, RoleSeniorDepositChecker}, RequiredApprovals: 1, Description: "Level 1 Approval"},
					},
				},
				{
					Name:      "Medium Deposit",
					MinAmount: amt(10000),
					MaxAmount: amt(100000),
					Stages: []domain.StageTemplate{
						{Label: StageL1Approval, EligibleRoles: []string{RoleDepositCheckerL1, RoleSeniorDepositChecker}, RequiredApprovals: 1, Description: "Level 1 Approval"},
						{Label: StageL2Approval, EligibleRoles: []string{RoleDepositCheckerL2, RoleSeniorDepositChecker}, RequiredApprovals: 1, Description: "Level 2 Approval"},
					},
				},
				{
					Name:      "Large Deposit",
					MinAmount: amt(100000),
					Stages: []domain.StageTemplate{
						{Label: StageL1Approval, EligibleRoles: []string{RoleDepositCheckerL1, RoleSeniorDepositChecker}, RequiredApprovals: 2, Description: "Level 1 Approval (2 required)"},
						{Label: StageL2Approval, EligibleRoles: []string{RoleDepositCheckerL2, RoleSeniorDepositChecker}, RequiredApprovals: 1, Description: "Level 2 Approval"},
						{Label: StageSeniorApproval, EligibleRoles: []string{RoleSeniorManager, RoleFinanceDirector}, RequiredApprovals: 1, Description: "Senior Management Approval"},
					},
				},
			},
		},
		domain.JournalEntry: {
			Type:        domain.JournalEntry,
			Description: "Manual journal entry for accounting adjustments",
			MakerRoles:  []string{RoleJournalMaker, RoleAccountant, RoleSeniorAccountant},
			// Journal entries are routed on absolute value: a net credit can
			// carry a negative sign.
			UseAbsoluteAmount: true,
			Candidates: []domain.WorkflowCandidate{
				{
					Name:      "Standard Journal Entry",
					MaxAmount: amt(50000),
					Stages: []domain.StageTemplate{
						{Label: StageManagerApproval, EligibleRoles: []string{RoleAccountingManager, RoleSeniorAccountant}, RequiredApprovals: 1, Description: "Accounting Manager Approval"},
					},
				},
				{
					Name:      "Large Journal Entry",
					MinAmount: amt(50000),
					Stages: []domain.StageTemplate{
						{Label: StageManagerApproval, EligibleRoles: []string{RoleAccountingManager, RoleSeniorAccountant}, RequiredApprovals: 1, Description: "Accounting Manager Approval"},
						{Label: StageSeniorApproval, EligibleRoles: []string{RoleFinanceDirector, RoleCFO}, RequiredApprovals: 1, Description: "Finance Director Approval"},
					},
				},
			},
		},
		domain.Payment: {
			Type:        domain.Payment,
			Description: "Outbound payment processing",
			MakerRoles:  []string{RolePaymentMaker, RoleTreasuryOfficer},
			Candidates: []domain.WorkflowCandidate{
				{
					Name:      "Small Payment",
					MaxAmount: amt(5000),
					Stages: []domain.StageTemplate{
						{Label: StageL1Approval, EligibleRoles: []string{RolePaymentChecker, RoleTreasuryManager}, RequiredApprovals: 1, Description: "Payment Verification"},
					},
				},
				{
					Name:      "Medium Payment",
					MinAmount: amt(5000),
					MaxAmount: amt(50000),
					Stages: []domain.StageTemplate{
						{Label: StageL1Approval, EligibleRoles: []string{RolePaymentChecker, RoleTreasuryManager}, RequiredApprovals: 1, Description: "Payment Verification"},
						{Label: StageL2Approval, EligibleRoles: []string{RoleTreasuryManager, RoleSeniorManager}, RequiredApprovals: 1, Description: "Treasury Manager Approval"},
					},
				},
				{
					Name:      "Large Payment",
					MinAmount: amt(50000),
					Stages: []domain.StageTemplate{
						{Label: StageL1Approval, EligibleRoles: []string{RolePaymentChecker}, RequiredApprovals: 2, Description: "Dual Payment Verification"},
						{Label: StageL2Approval, EligibleRoles: []string{RoleTreasuryManager}, RequiredApprovals: 1, Description: "Treasury Manager Approval"},
						{Label: StageSeniorApproval, EligibleRoles: []string{RoleFinanceDirector, RoleCFO}, RequiredApprovals: 1, Description: "Senior Finance Approval"},
					},
				},
			},
		},
		domain.LoanDisbursement: {
			Type:        domain.LoanDisbursement,
			Description: "Loan disbursement to customer account",
			MakerRoles:  []string{RoleLoanOfficer},
			Candidates: []domain.WorkflowCandidate{
				{
					Name:      "Standard Loan Disbursement",
					MaxAmount: amt(25000),
					Stages: []domain.StageTemplate{
						{Label: StageManagerApproval, EligibleRoles: []string{RoleLoanManager}, RequiredApprovals: 1, Description: "Loan Manager Approval"},
					},
				},
				{
					Name:      "Large Loan Disbursement",
					MinAmount: amt(25000),
					Stages: []domain.StageTemplate{
						{Label: StageManagerApproval, EligibleRoles: []string{RoleLoanManager}, RequiredApprovals: 1, Description: "Loan Manager Approval"},
						{Label: StageRiskApproval, EligibleRoles: []string{RoleRiskManager}, RequiredApprovals: 1, Description: "Risk Management Approval"},
					},
				},
			},
		},
	}
}
