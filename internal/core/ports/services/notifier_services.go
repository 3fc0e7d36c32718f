package services

import (
	"context"

	"github.com/bankops-oss/maker_checker_app/internal/core/domain"
)

// PostApprovalNotifier is invoked exactly once when a transaction reaches
// its final APPROVED status, to hand it off for downstream execution.
type PostApprovalNotifier interface {
	NotifyApproved(ctx context.Context, txn *domain.Transaction) error
}
