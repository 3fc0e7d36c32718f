package rules

import "github.com/bankops-oss/maker_checker_app/internal/core/domain"

// Role keys referenced by users and stage templates.
const (
	RoleDepositMaker         = "DEPOSIT_MAKER"
	RoleSeniorDepositMaker   = "SENIOR_DEPOSIT_MAKER"
	RoleDepositCheckerL1     = "DEPOSIT_CHECKER_L1"
	RoleDepositCheckerL2     = "DEPOSIT_CHECKER_L2"
	RoleSeniorDepositChecker = "SENIOR_DEPOSIT_CHECKER"
	RoleJournalMaker         = "JOURNAL_MAKER"
	RoleAccountant           = "ACCOUNTANT"
	RoleSeniorAccountant     = "SENIOR_ACCOUNTANT"
	RoleAccountingManager    = "ACCOUNTING_MANAGER"
	RolePaymentMaker         = "PAYMENT_MAKER"
	RoleTreasuryOfficer      = "TREASURY_OFFICER"
	RolePaymentChecker       = "PAYMENT_CHECKER"
	RoleTreasuryManager      = "TREASURY_MANAGER"
	RoleLoanOfficer          = "LOAN_OFFICER"
	RoleLoanManager          = "LOAN_MANAGER"
	RoleRiskManager          = "RISK_MANAGER"
	RoleSeniorManager        = "SENIOR_MANAGER"
	RoleFinanceDirector      = "FINANCE_DIRECTOR"
	RoleCFO                  = "CFO"
	RoleAdmin                = "ADMIN"
)

// RoleTable is the static role/permission table. It is initialized once at
// startup and never mutated, so unsynchronized concurrent reads are safe.
type RoleTable map[string]domain.Role

// DefaultRoleTable returns the built-in role/permission table.
func DefaultRoleTable() RoleTable {
	return RoleTable{
		RoleDepositMaker: {
			RoleID:         RoleDepositMaker,
			Name:           "Deposit Maker",
			Department:     domain.DeptDeposits,
			Seniority:      domain.SeniorityStandard,
			CreatableTypes: []domain.TransactionType{domain.Deposit},
		},
		RoleSeniorDepositMaker: {
			RoleID:         RoleSeniorDepositMaker,
			Name:           "Senior Deposit Maker",
			Department:     domain.DeptDeposits,
			Seniority:      domain.SenioritySenior,
			CreatableTypes: []domain.TransactionType{domain.Deposit},
		},
		RoleDepositCheckerL1: {
			RoleID:          RoleDepositCheckerL1,
			Name:            "Deposit Checker (Level 1)",
			Department:      domain.DeptDeposits,
			Seniority:       domain.SeniorityStandard,
			ApprovableTypes: []domain.TransactionType{domain.Deposit},
		},
		RoleDepositCheckerL2: {
			RoleID:          RoleDepositCheckerL2,
			Name:            "Deposit Checker (Level 2)",
			Department:      domain.DeptDeposits,
			Seniority:       domain.SenioritySenior,
			ApprovableTypes: []domain.TransactionType{domain.Deposit},
		},
		RoleSeniorDepositChecker: {
			RoleID:          RoleSeniorDepositChecker,
			Name:            "Senior Deposit Checker",
			Department:      domain.DeptDeposits,
			Seniority:       domain.SenioritySenior,
			CreatableTypes:  []domain.TransactionType{domain.Deposit},
			ApprovableTypes: []domain.TransactionType{domain.Deposit},
		},
		RoleJournalMaker: {
			RoleID:         RoleJournalMaker,
			Name:           "Journal Entry Maker",
			Department:     domain.DeptAccounting,
			Seniority:      domain.SeniorityJunior,
			CreatableTypes: []domain.TransactionType{domain.JournalEntry},
		},
		RoleAccountant: {
			RoleID:         RoleAccountant,
			Name:           "Accountant",
			Department:     domain.DeptAccounting,
			Seniority:      domain.SeniorityStandard,
			CreatableTypes: []domain.TransactionType{domain.JournalEntry},
		},
		RoleSeniorAccountant: {
			RoleID:          RoleSeniorAccountant,
			Name:            "Senior Accountant",
			Department:      domain.DeptAccounting,
			Seniority:       domain.SenioritySenior,
			CreatableTypes:  []domain.TransactionType{domain.JournalEntry},
			ApprovableTypes: []domain.TransactionType{domain.JournalEntry},
		},
		RoleAccountingManager: {
			RoleID:          RoleAccountingManager,
			Name:            "Accounting Manager",
			Department:      domain.DeptAccounting,
			Seniority:       domain.SeniorityManager,
			CreatableTypes:  []domain.TransactionType{domain.JournalEntry},
			ApprovableTypes: []domain.TransactionType{domain.JournalEntry},
		},
		RolePaymentMaker: {
			RoleID:         RolePaymentMaker,
			Name:           "Payment Maker",
			Department:     domain.DeptTreasury,
			Seniority:      domain.SeniorityStandard,
			CreatableTypes: []domain.TransactionType{domain.Payment},
		},
		RoleTreasuryOfficer: {
			RoleID:         RoleTreasuryOfficer,
			Name:           "Treasury Officer",
			Department:     domain.DeptTreasury,
			Seniority:      domain.SeniorityStandard,
			CreatableTypes: []domain.TransactionType{domain.Payment},
		},
		RolePaymentChecker: {
			RoleID:          RolePaymentChecker,
			Name:            "Payment Checker",
			Department:      domain.DeptTreasury,
			Seniority:       domain.SeniorityStandard,
			ApprovableTypes: []domain.TransactionType{domain.Payment},
		},
		RoleTreasuryManager: {
			RoleID:          RoleTreasuryManager,
			Name:            "Treasury Manager",
			Department:      domain.DeptTreasury,
			Seniority:       domain.SeniorityManager,
			CreatableTypes:  []domain.TransactionType{domain.Payment},
			ApprovableTypes: []domain.TransactionType{domain.Payment},
		},
		RoleLoanOfficer: {
			RoleID:         RoleLoanOfficer,
			Name:           "Loan Officer",
			Department:     domain.DeptLoans,
			Seniority:      domain.SeniorityJunior,
			CreatableTypes: []domain.TransactionType{domain.LoanDisbursement},
		},
		RoleLoanManager: {
			RoleID:          RoleLoanManager,
			Name:            "Loan Manager",
			Department:      domain.DeptLoans,
			Seniority:       domain.SeniorityManager,
			ApprovableTypes: []domain.TransactionType{domain.LoanDisbursement},
		},
		RoleRiskManager: {
			RoleID:          RoleRiskManager,
			Name:            "Risk Manager",
			Department:      domain.DeptRisk,
			Seniority:       domain.SeniorityManager,
			ApprovableTypes: []domain.TransactionType{domain.LoanDisbursement},
		},
		RoleSeniorManager: {
			RoleID:          RoleSeniorManager,
			Name:            "Senior Manager",
			Department:      domain.DeptManagement,
			Seniority:       domain.SenioritySenior,
			ApprovableTypes: []domain.TransactionType{domain.Deposit, domain.Payment},
		},
		RoleFinanceDirector: {
			RoleID:          RoleFinanceDirector,
			Name:            "Finance Director",
			Department:      domain.DeptManagement,
			Seniority:       domain.SeniorityDirector,
			ApprovableTypes: []domain.TransactionType{domain.Deposit, domain.JournalEntry, domain.Payment},
		},
		RoleCFO: {
			RoleID:          RoleCFO,
			Name:            "Chief Financial Officer",
			Department:      domain.DeptManagement,
			Seniority:       domain.SeniorityExecutive,
			ApprovableTypes: []domain.TransactionType{domain.JournalEntry, domain.Payment},
			IsAdmin:         true,
		},
		RoleAdmin: {
			RoleID:          RoleAdmin,
			Name:            "System Administrator",
			Department:      domain.DeptIT,
			Seniority:       domain.SeniorityExecutive,
			CreatableTypes:  []domain.TransactionType{domain.Deposit, domain.JournalEntry, domain.Payment, domain.LoanDisbursement},
			ApprovableTypes: []domain.TransactionType{domain.Deposit, domain.JournalEntry, domain.Payment, domain.LoanDisbursement},
			IsAdmin:         true,
		},
	}
}

// Get returns the role for a key, if present.
func (t RoleTable) Get(roleID string) (domain.Role, bool) {
	r, ok := t[roleID]
	return r, ok
}

// CanRoleCreate reports whether the role key may create the transaction type.
// Unknown role keys cannot create anything.
func (t RoleTable) CanRoleCreate(roleID string, txnType domain.TransactionType) bool {
	r, ok := t[roleID]
	return ok && r.CanCreate(txnType)
}

// CanRoleApprove reports whether the role key may approve the transaction type.
func (t RoleTable) CanRoleApprove(roleID string, txnType domain.TransactionType) bool {
	r, ok := t[roleID]
	return ok && r.CanApprove(txnType)
}
