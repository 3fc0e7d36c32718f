// Package static provides an in-process user directory seeded with the demo
// team. Production deployments replace it with a corporate identity provider;
// the directory only needs to resolve verified emails to role assignments.
package static

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/bankops-oss/maker_checker_app/internal/apperrors"
	"github.com/bankops-oss/maker_checker_app/internal/core/domain"
	portssvc "github.com/bankops-oss/maker_checker_app/internal/core/ports/services"
	"github.com/bankops-oss/maker_checker_app/internal/core/rules"
	"github.com/bankops-oss/maker_checker_app/internal/utils"
)

// Directory is a read-only user directory keyed by email.
type Directory struct {
	once     sync.Once
	hashErr  error
	users    map[string]domain.User
	password string
}

// NewDirectory creates the directory with the built-in demo users. All demo
// accounts share the given password; the bcrypt hash is computed lazily on
// first authentication.
func NewDirectory(sharedPassword string) *Directory {
	return &Directory{
		users:    demoUsers(),
		password: sharedPassword,
	}
}

var _ portssvc.IdentitySvcFacade = (*Directory)(nil)

// AuthenticateUser verifies email and password against the directory.
func (d *Directory) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	if err := d.ensureHashes(); err != nil {
		return nil, err
	}

	user, exists := d.users[email]
	if !exists || !utils.CheckPasswordHash(password, user.PasswordHash) {
		// Same error for unknown email and bad password.
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthenticated)
	}
	out := user
	return &out, nil
}

// FindUserByEmail retrieves a user by email.
func (d *Directory) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, exists := d.users[email]
	if !exists {
		return nil, fmt.Errorf("%w: user %s", apperrors.ErrNotFound, email)
	}
	out := user
	return &out, nil
}

// ListUsers retrieves all users in the directory, ordered by email.
func (d *Directory) ListUsers(ctx context.Context) ([]domain.User, error) {
	users := make([]domain.User, 0, len(d.users))
	for _, u := range d.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Email < users[j].Email })
	return users, nil
}

// ensureHashes computes the shared bcrypt hash once; deferring it keeps
// directory construction cheap for callers that never authenticate.
func (d *Directory) ensureHashes() error {
	d.once.Do(func() {
		hash, err := utils.HashPassword(d.password)
		if err != nil {
			d.hashErr = fmt.Errorf("failed to hash demo password: %w", err)
			return
		}
		for email, u := range d.users {
			u.PasswordHash = hash
			d.users[email] = u
		}
	})
	return d.hashErr
}

func demoUsers() map[string]domain.User {
	users := []domain.User{
		{Email: "maker1@test.com", Name: "Deposit Maker 1", Roles: []string{rules.RoleDepositMaker}},
		{Email: "checker1@test.com", Name: "Deposit Checker L1", Roles: []string{rules.RoleDepositCheckerL1}},
		{Email: "checker2@test.com", Name: "Deposit Checker L2", Roles: []string{rules.RoleDepositCheckerL2}},
		{Email: "accountant@test.com", Name: "Accountant", Roles: []string{rules.RoleAccountant}},
		{Email: "accounting-mgr@test.com", Name: "Accounting Manager", Roles: []string{rules.RoleAccountingManager}},
		{Email: "payment-maker@test.com", Name: "Payment Maker", Roles: []string{rules.RolePaymentMaker}},
		{Email: "payment-checker@test.com", Name: "Payment Checker", Roles: []string{rules.RolePaymentChecker}},
		{Email: "treasury-mgr@test.com", Name: "Treasury Manager", Roles: []string{rules.RoleTreasuryManager}},
		{Email: "loan-officer@test.com", Name: "Loan Officer", Roles: []string{rules.RoleLoanOfficer}},
		{Email: "loan-mgr@test.com", Name: "Loan Manager", Roles: []string{rules.RoleLoanManager}},
		{Email: "risk-mgr@test.com", Name: "Risk Manager", Roles: []string{rules.RoleRiskManager}},
		{Email: "senior-mgr@test.com", Name: "Senior Manager", Roles: []string{rules.RoleSeniorManager}},
		{Email: "finance-dir@test.com", Name: "Finance Director", Roles: []string{rules.RoleFinanceDirector}},
		{Email: "multi-role@test.com", Name: "Multi-Role User", Roles: []string{rules.RoleDepositMaker, rules.RoleDepositCheckerL1, rules.RoleJournalMaker}},
		{Email: "admin@test.com", Name: "Administrator", Roles: []string{rules.RoleAdmin}},
	}

	byEmail := make(map[string]domain.User, len(users))
	for _, u := range users {
		byEmail[u.Email] = u
	}
	return byEmail
}
