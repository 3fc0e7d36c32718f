package services

import (
	"context"

	"github.com/bankops-oss/maker_checker_app/internal/core/domain"
	portssvc "github.com/bankops-oss/maker_checker_app/internal/core/ports/services"
	"github.com/bankops-oss/maker_checker_app/internal/core/rules"
)

// permissionService answers permission queries from the static role table.
type permissionService struct {
	roles rules.RoleTable
}

// NewPermissionService creates a new permission service.
func NewPermissionService(roles rules.RoleTable) portssvc.PermissionSvcFacade {
	return &permissionService{roles: roles}
}

var _ portssvc.PermissionSvcFacade = (*permissionService)(nil)

// PermissionsFor returns the union of create and approve permissions across
// all of the user's roles, in the canonical transaction type order.
func (s *permissionService) PermissionsFor(ctx context.Context, user *domain.User) ([]domain.TransactionType, []domain.TransactionType, error) {
	canCreate := make([]domain.TransactionType, 0, len(domain.AllTransactionTypes))
	canApprove := make([]domain.TransactionType, 0, len(domain.AllTransactionTypes))

	for _, txnType := range domain.AllTransactionTypes {
		for _, roleID := range user.Roles {
			if s.roles.CanRoleCreate(roleID, txnType) {
				canCreate = append(canCreate, txnType)
				break
			}
		}
		for _, roleID := range user.Roles {
			if s.roles.CanRoleApprove(roleID, txnType) {
				canApprove = append(canApprove, txnType)
				break
			}
		}
	}
	return canCreate, canApprove, nil
}
