package services

import (
	"fmt"
	"time"

	"github.com/bankops-oss/maker_checker_app/internal/apperrors"
	"github.com/bankops-oss/maker_checker_app/internal/core/domain"
)

// ProcessDecision applies one approve/reject decision to a transaction and
// returns the updated value. The input transaction is never mutated; callers
// must treat the returned value as authoritative and persist it themselves.
//
// Authorization preconditions are evaluated in order, first failure wins:
//  1. an active PENDING stage exists          -> apperrors.ErrNoActiveStage
//  2. the user has not already acted on it    -> apperrors.ErrAlreadyActed
//  3. the user is not the maker               -> apperrors.ErrSelfApproval
//  4. the user holds an eligible role         -> apperrors.ErrUnauthorizedRole
func ProcessDecision(txn domain.Transaction, user domain.User, decision domain.Decision, comments string, now time.Time) (domain.Transaction, error) {
	if decision != domain.DecisionApprove && decision != domain.DecisionReject {
		return txn, fmt.Errorf("%w: unknown decision %q", apperrors.ErrValidation, decision)
	}
	if err := authorizeDecision(&txn, &user); err != nil {
		return txn, err
	}

	updated := txn.Clone()
	stage := &updated.Stages[updated.CurrentStageIndex]

	record := domain.ApprovalRecord{
		UserID:    user.Email,
		UserName:  user.Name,
		Decision:  decision,
		Timestamp: now,
		Comments:  comments,
	}
	stage.Approvals = append(stage.Approvals, record)

	action := "APPROVED_" + stage.Label
	if decision == domain.DecisionReject {
		action = "REJECTED_" + stage.Label
	}
	updated.History = append(updated.History, domain.HistoryEntry{
		Action:    action,
		UserID:    user.Email,
		UserName:  user.Name,
		Timestamp: now,
		Comments:  comments,
	})

	if decision == domain.DecisionReject {
		// Terminal: the stage is frozen and no later stage ever starts.
		stage.Status = domain.StageRejected
		updated.Status = domain.StatusRejected
		return updated, nil
	}

	// Compared with >= so a (misconfigured) required count of zero auto-passes
	// rather than wedging the stage.
	if stage.ApproveCount() >= stage.RequiredApprovals {
		stage.Status = domain.StageCompleted
		if next := updated.CurrentStageIndex + 1; next < len(updated.Stages) {
			updated.CurrentStageIndex = next
			updated.Stages[next].Status = domain.StagePending
			updated.Status = domain.PendingStatus(updated.Stages[next].Label)
		} else {
			updated.Status = domain.StatusApproved
		}
	}
	// Below the threshold the transaction stays pending at the same stage,
	// waiting for further approvers.

	return updated, nil
}

// CanUserDecide reports whether the user could currently submit a decision on
// the transaction. It restates ProcessDecision's preconditions as a filter and
// must stay consistent with them.
func CanUserDecide(txn *domain.Transaction, user *domain.User) bool {
	return authorizeDecision(txn, user) == nil
}

func authorizeDecision(txn *domain.Transaction, user *domain.User) error {
	stage := txn.CurrentStage()
	if stage == nil {
		return fmt.Errorf("%w: transaction %s is %s", apperrors.ErrNoActiveStage, txn.TransactionID, txn.Status)
	}
	if stage.HasActed(user.Email) {
		return fmt.Errorf("%w: %s already acted on stage %s", apperrors.ErrAlreadyActed, user.Email, stage.Label)
	}
	if txn.CreatedBy == user.Email {
		return fmt.Errorf("%w: %s created transaction %s", apperrors.ErrSelfApproval, user.Email, txn.TransactionID)
	}
	if !user.HasAnyRole(stage.EligibleRoles) {
		return fmt.Errorf("%w: stage %s requires one of %v", apperrors.ErrUnauthorizedRole, stage.Label, stage.EligibleRoles)
	}
	return nil
}
