package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bankops-oss/maker_checker_app/internal/apperrors"
	"github.com/bankops-oss/maker_checker_app/internal/core/domain"
	portsrepo "github.com/bankops-oss/maker_checker_app/internal/core/ports/repositories"
	portssvc "github.com/bankops-oss/maker_checker_app/internal/core/ports/services"
	"github.com/bankops-oss/maker_checker_app/internal/core/rules"
	"github.com/bankops-oss/maker_checker_app/internal/middleware"
)

// decisionRetryLimit bounds optimistic-concurrency retries when two checkers
// act on the same transaction at once.
const decisionRetryLimit = 3

// workflowService orchestrates transaction submission and approval decisions.
type workflowService struct {
	txnRepo   portsrepo.TransactionRepositoryFacade
	workflows rules.WorkflowTable
	roles     rules.RoleTable
	notifier  portssvc.PostApprovalNotifier
	now       func() time.Time
}

// WorkflowServiceOption configures optional dependencies of the workflow service.
type WorkflowServiceOption func(*workflowService)

// WithClock overrides the time source, used by tests.
func WithClock(now func() time.Time) WorkflowServiceOption {
	return func(s *workflowService) {
		s.now = now
	}
}

// NewWorkflowService creates a new workflow service.
func NewWorkflowService(txnRepo portsrepo.TransactionRepositoryFacade, workflows rules.WorkflowTable, roles rules.RoleTable, notifier portssvc.PostApprovalNotifier, opts ...WorkflowServiceOption) portssvc.WorkflowSvcFacade {
	s := &workflowService{
		txnRepo:   txnRepo,
		workflows: workflows,
		roles:     roles,
		notifier:  notifier,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ensure workflowService implements the portssvc.WorkflowSvcFacade interface
var _ portssvc.WorkflowSvcFacade = (*workflowService)(nil)

func (s *workflowService) SubmitTransaction(ctx context.Context, maker *domain.User, txnType domain.TransactionType, amount decimal.Decimal, details map[string]string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	rs, ok := s.workflows[txnType]
	if !ok {
		return nil, fmt.Errorf("%w: unknown transaction type %q", apperrors.ErrValidation, txnType)
	}

	if rs.UseAbsoluteAmount {
		if amount.IsZero() {
			return nil, fmt.Errorf("%w: amount must be non-zero", apperrors.ErrValidation)
		}
	} else if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	if !s.canCreate(maker, txnType) {
		return nil, fmt.Errorf("%w: user %s lacks permission to create %s transactions", apperrors.ErrForbidden, maker.Email, txnType)
	}

	resolved, err := s.workflows.Resolve(txnType, amount)
	if err != nil {
		logger.Error("workflow resolution failed",
			slog.String("type", string(txnType)),
			slog.String("amount", amount.String()),
			slog.String("error", err.Error()))
		return nil, err
	}

	now := s.now()
	txn := domain.Transaction{
		TransactionID:     uuid.NewString(),
		Type:              txnType,
		Amount:            amount,
		Details:           details,
		WorkflowName:      resolved.Name,
		Stages:            resolved.Stages,
		CurrentStageIndex: 0,
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
	if len(resolved.Stages) == 0 {
		// A workflow with no stages needs no checker; the transaction is
		// approved on submission.
		txn.Status = domain.StatusApproved
	} else {
		txn.Status = domain.PendingStatus(resolved.Stages[0].Label)
	}

	if err := s.txnRepo.CreateTransaction(ctx, txn); err != nil {
		return nil, fmt.Errorf("failed to persist transaction: %w", err)
	}

	logger.Info("transaction submitted",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txnType)),
		slog.String("workflow", resolved.Name),
		slog.String("status", string(txn.Status)),
		slog.String("created_by", maker.Email))

	if txn.Status == domain.StatusApproved {
		s.notifyApproved(ctx, &txn)
	}
	return &txn, nil
}

func (s *workflowService) SubmitDecision(ctx context.Context, transactionID string, actor *domain.User, decision domain.Decision, comments string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	for attempt := 0; attempt < decisionRetryLimit; attempt++ {
		current, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
		if err != nil {
			return nil, err
		}

		updated, err := ProcessDecision(*current, *actor, decision, comments, s.now())
		if err != nil {
			return nil, err
		}

		persisted, err := s.txnRepo.UpdateTransaction(ctx, updated)
		if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("concurrent update detected, retrying decision",
				slog.String("transaction_id", transactionID),
				slog.Int("attempt", attempt+1))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to persist decision: %w", err)
		}

		logger.Info("decision recorded",
			slog.String("transaction_id", transactionID),
			slog.String("decision", string(decision)),
			slog.String("actor", actor.Email),
			slog.String("status", string(persisted.Status)))

		if persisted.Status == domain.StatusApproved {
			s.notifyApproved(ctx, persisted)
		}
		return persisted, nil
	}

	return nil, fmt.Errorf("%w: transaction %s was modified concurrently", apperrors.ErrConflict, transactionID)
}

func (s *workflowService) GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	return txn, nil
}

func (s *workflowService) ListTransactions(ctx context.Context, filter portsrepo.ListTransactionsFilter) ([]domain.Transaction, error) {
	txns, err := s.txnRepo.ListTransactions(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txns, nil
}

func (s *workflowService) ListPendingForUser(ctx context.Context, user *domain.User) ([]domain.Transaction, error) {
	pending, err := s.txnRepo.ListPendingTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending transactions: %w", err)
	}

	eligible := make([]domain.Transaction, 0, len(pending))
	for i := range pending {
		if CanUserDecide(&pending[i], user) {
			eligible = append(eligible, pending[i])
		}
	}
	return eligible, nil
}

// canCreate reports whether any of the maker's roles permits creating the type.
func (s *workflowService) canCreate(user *domain.User, txnType domain.TransactionType) bool {
	for _, roleID := range user.Roles {
		if s.roles.CanRoleCreate(roleID, txnType) {
			return true
		}
	}
	return false
}

// notifyApproved hands a fully approved transaction to the downstream
// notifier. Notification failures are logged, never propagated; the
// approval itself is already committed.
func (s *workflowService) notifyApproved(ctx context.Context, txn *domain.Transaction) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyApproved(ctx, txn); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("post-approval notification failed",
			slog.String("transaction_id", txn.TransactionID),
			slog.String("error", err.Error()))
	}
}
