package services

import (
	portsrepo "github.com/bankops-oss/maker_checker_app/internal/core/ports/repositories"
	portssvc "github.com/bankops-oss/maker_checker_app/internal/core/ports/services"
	"github.com/bankops-oss/maker_checker_app/internal/core/rules"
	"github.com/bankops-oss/maker_checker_app/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// The identity directory and post-approval notifier are adapters chosen by the caller.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, identity portssvc.IdentitySvcFacade, notifier portssvc.PostApprovalNotifier) *portssvc.ServiceContainer {
	roleTable := rules.DefaultRoleTable()
	workflowTable := rules.DefaultWorkflowTable()

	container := &portssvc.ServiceContainer{}
	container.Workflow = NewWorkflowService(repos.TransactionRepo, workflowTable, roleTable, notifier)
	container.Identity = identity
	container.Permission = NewPermissionService(roleTable)
	container.Token = NewTokenService(cfg)
	container.GoogleSSO = NewGoogleOAuthHandlerService(cfg)
	return container
}
