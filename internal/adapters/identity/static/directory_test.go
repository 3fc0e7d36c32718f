package static_test

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bankops-oss/maker_checker_app/internal/adapters/identity/static"
	"github.com/bankops-oss/maker_checker_app/internal/apperrors"
)

func TestAuthenticateUser(t *testing.T) {
	dir := static.NewDirectory("hunter2")
	ctx := context.Background()

	user, err := dir.AuthenticateUser(ctx, "maker1@test.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "maker1@test.com", user.Email)
	assert.NotEmpty(t, user.Roles)

	// Unknown email and wrong password fail identically so the response does
	// not reveal which accounts exist.
	_, badPwErr := dir.AuthenticateUser(ctx, "maker1@test.com", "wrong")
	_, badEmailErr := dir.AuthenticateUser(ctx, "nobody@test.com", "hunter2")
	assert.ErrorIs(t, badPwErr, apperrors.ErrUnauthenticated)
	assert.ErrorIs(t, badEmailErr, apperrors.ErrUnauthenticated)
	assert.Equal(t, badPwErr.Error(), badEmailErr.Error())
}

func TestFindUserByEmail(t *testing.T) {
	dir := static.NewDirectory("hunter2")
	ctx := context.Background()

	user, err := dir.FindUserByEmail(ctx, "accounting-mgr@test.com")
	require.NoError(t, err)
	assert.Contains(t, user.Roles, "ACCOUNTING_MANAGER")

	_, err = dir.FindUserByEmail(ctx, "ghost@test.com")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestListUsersSorted(t *testing.T) {
	dir := static.NewDirectory("hunter2")

	users, err := dir.ListUsers(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, users)

	emails := make([]string, len(users))
	for i, u := range users {
		emails[i] = u.Email
	}
	assert.True(t, sort.StringsAreSorted(emails))
}
