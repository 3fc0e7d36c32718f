package domain

import "github.com/shopspring/decimal"

// StageTemplate describes one approval gate in a workflow candidate. Templates
// are static configuration; StageInstance is the live copy on a transaction.
type StageTemplate struct {
	Label             string   `json:"stage"`
	EligibleRoles     []string `json:"roles"`
	RequiredApprovals int      `json:"required"`
	Description       string   `json:"description,omitempty"`
}

// Materialize builds the live stage record for a new transaction. The first
// stage of a workflow starts PENDING, all others NOT_STARTED.
func (t StageTemplate) Materialize(first bool) StageInstance {
	status := StageNotStarted
	if first {
		status = StagePending
	}
	roles := make([]string, len(t.EligibleRoles))
	copy(roles, t.EligibleRoles)
	return StageInstance{
		Label:             t.Label,
		EligibleRoles:     roles,
		RequiredApprovals: t.RequiredApprovals,
		Description:       t.Description,
		Status:            status,
		Approvals:         []ApprovalRecord{},
	}
}

// WorkflowCandidate is one amount tier of a rule set. Bounds are explicit
// comparator data so the table is serializable and can be statically checked
// for overlaps and gaps; a nil bound means unbounded on that side. The match
// interval is [MinAmount, MaxAmount).
type WorkflowCandidate struct {
	Name      string           `json:"name"`
	MinAmount *decimal.Decimal `json:"minAmount,omitempty"`
	MaxAmount *decimal.Decimal `json:"maxAmount,omitempty"`
	Stages    []StageTemplate  `json:"steps"`
}

// Matches reports whether the routing amount falls inside the candidate's tier.
func (c WorkflowCandidate) Matches(amount decimal.Decimal) bool {
	if c.MinAmount != nil && amount.LessThan(*c.MinAmount) {
		return false
	}
	if c.MaxAmount != nil && amount.GreaterThanOrEqual(*c.MaxAmount) {
		return false
	}
	return true
}

// RuleSet is the ordered list of workflow candidates for one transaction type.
// Candidates are evaluated in declared order; the first match wins. When
// UseAbsoluteAmount is set the routing amount is the absolute value, since
// journal entries may carry a negative sign for net credits.
type RuleSet struct {
	Type              TransactionType     `json:"type"`
	Description       string              `json:"description,omitempty"`
	MakerRoles        []string            `json:"makerRoles,omitempty"`
	UseAbsoluteAmount bool                `json:"useAbsoluteAmount,omitempty"`
	Candidates        []WorkflowCandidate `json:"workflows"`
}

// RoutingAmount normalizes a raw transaction amount for tier matching.
func (rs RuleSet) RoutingAmount(amount decimal.Decimal) decimal.Decimal {
	if rs.UseAbsoluteAmount {
		return amount.Abs()
	}
	return amount
}
