package services

import (
	"context"

	"github.com/bankops-oss/maker_checker_app/internal/core/domain"
)

// IdentitySvcFacade defines operations against the user directory.
type IdentitySvcFacade interface {
	// AuthenticateUser verifies email and password against the directory.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)

	// FindUserByEmail retrieves a user by email.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// ListUsers retrieves all users in the directory.
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// PermissionSvcFacade computes effective permissions from role assignments.
type PermissionSvcFacade interface {
	// PermissionsFor returns the transaction types the user may create and approve.
	PermissionsFor(ctx context.Context, user *domain.User) (canCreate, canApprove []domain.TransactionType, err error)
}
