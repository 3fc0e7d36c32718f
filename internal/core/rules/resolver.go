package rules

import (
	"fmt"
	"sort"

	"github.com/bankops-oss/maker_checker_app/internal/apperrors"
	"github.com/bankops-oss/maker_checker_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ResolvedWorkflow is the outcome of routing a transaction through the rule
// table: the selected workflow name and its materialized stage records.
type ResolvedWorkflow struct {
	Name   string
	Stages []domain.StageInstance
}

// Resolve selects the workflow for a transaction type and amount. Candidates
// are evaluated in declared order and the first match wins. It is a pure
// function of its inputs.
//
// An unknown type or an unmatched amount is a configuration defect, reported
// as apperrors.ErrConfiguration; rule sets are authored to cover [0, inf)
// exhaustively, so the latter should be unreachable for valid inputs.
func (wt WorkflowTable) Resolve(txnType domain.TransactionType, amount decimal.Decimal) (*ResolvedWorkflow, error) {
	rs, ok := wt[txnType]
	if !ok {
		return nil, fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrConfiguration, txnType)
	}

	routing := rs.RoutingAmount(amount)
	for _, cand := range rs.Candidates {
		if !cand.Matches(routing) {
			continue
		}
		stages := make([]domain.StageInstance, len(cand.Stages))
		for i, tmpl := range cand.Stages {
			stages[i] = tmpl.Materialize(i == 0)
		}
		return &ResolvedWorkflow{Name: cand.Name, Stages: stages}, nil
	}

	return nil, fmt.Errorf("%w: no workflow matched for type %q amount %s", apperrors.ErrConfiguration, txnType, amount)
}

// CheckExhaustive verifies that every rule set partitions [0, inf) into
// disjoint, gap-free tiers in declared order. It is called at startup so an
// ill-formed table fails fast instead of surfacing as a per-transaction error.
func (wt WorkflowTable) CheckExhaustive() error {
	types := make([]string, 0, len(wt))
	for t := range wt {
		types = append(types, string(t))
	}
	sort.Strings(types)

	for _, t := range types {
		rs := wt[domain.TransactionType(t)]
		if len(rs.Candidates) == 0 {
			return fmt.Errorf("%w: type %s has no workflow candidates", apperrors.ErrConfiguration, t)
		}

		expectedMin := decimal.Zero
		for i, cand := range rs.Candidates {
			lower := decimal.Zero
			if cand.MinAmount != nil {
				lower = *cand.MinAmount
			}
			if !lower.Equal(expectedMin) {
				return fmt.Errorf("%w: type %s candidate %q starts at %s, expected %s", apperrors.ErrConfiguration, t, cand.Name, lower, expectedMin)
			}
			if cand.MaxAmount == nil {
				if i != len(rs.Candidates)-1 {
					return fmt.Errorf("%w: type %s candidate %q is unbounded but not last", apperrors.ErrConfiguration, t, cand.Name)
				}
				expectedMin = decimal.Decimal{}
				continue
			}
			if cand.MaxAmount.LessThanOrEqual(lower) {
				return fmt.Errorf("%w: type %s candidate %q has empty range", apperrors.ErrConfiguration, t, cand.Name)
			}
			expectedMin = *cand.MaxAmount
		}
		last := rs.Candidates[len(rs.Candidates)-1]
		if last.MaxAmount != nil {
			return fmt.Errorf("%w: type %s rule set does not cover amounts >= %s", apperrors.ErrConfiguration, t, last.MaxAmount)
		}

		for _, cand := range rs.Candidates {
			for _, tmpl := range cand.Stages {
				if len(tmpl.EligibleRoles) == 0 {
					return fmt.Errorf("%w: type %s workflow %q stage %s has no eligible roles", apperrors.ErrConfiguration, t, cand.Name, tmpl.Label)
				}
				if tmpl.RequiredApprovals < 0 {
					return fmt.Errorf("%w: type %s workflow %q stage %s has negative required approvals", apperrors.ErrConfiguration, t, cand.Name, tmpl.Label)
				}
			}
		}
	}
	return nil
}
