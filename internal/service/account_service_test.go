package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emphub/internal/domain"
	"emphub/internal/repository/memory"
	"emphub/internal/validation"
	"emphub/pkg/hasher"
	"emphub/pkg/logger"
)

type failingUserRepo struct{ err error }

func (r failingUserRepo) FindByUsernameOrEmail(context.Context, string, string) (*domain.User, error) {
	return nil, r.err
}

func (r failingUserRepo) Create(context.Context, *domain.User) error { return r.err }

func newAccountService(repo domain.UserRepository) *AccountService {
	return NewAccountService(repo, hasher.NewSHA256(), validation.New(), logger.Nop())
}

func assertKind(t *testing.T, err error, kind domain.ErrorKind, message string) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, kind, domain.KindOf(err))
	assert.Equal(t, message, domain.MessageOf(err))
}

func TestAccountService_SignupThenLogin(t *testing.T) {
	ctx := context.Background()
	store := memory.NewUserStore()
	svc := newAccountService(store)

	id, err := svc.Signup(ctx, domain.SignupInput{Username: "ada", Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Len(t, id, 24)

	user, err := store.FindByUsernameOrEmail(ctx, "ada", "")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", user.PasswordHash)
	assert.Equal(t, user.CreatedAt, user.UpdatedAt)
	assert.False(t, user.CreatedAt.IsZero())

	assert.NoError(t, svc.Login(ctx, domain.LoginInput{Username: "ada", Password: "secret1"}))
	assert.NoError(t, svc.Login(ctx, domain.LoginInput{Email: "ada@example.com", Password: "secret1"}))
}

func TestAccountService_SignupValidation(t *testing.T) {
	svc := newAccountService(memory.NewUserStore())

	tests := []struct {
		name string
		in   domain.SignupInput
		want string
	}{
		{"missing username", domain.SignupInput{Email: "bad", Password: "x"}, domain.MsgUsernameRequired},
		{"bad email", domain.SignupInput{Username: "ada", Email: "not-an-email", Password: "secret1"}, domain.MsgValidEmailRequired},
		{"short password", domain.SignupInput{Username: "ada", Email: "ada@example.com", Password: "12345"}, domain.MsgPasswordTooShort},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Signup(context.Background(), tt.in)
			assertKind(t, err, domain.KindValidation, tt.want)
		})
	}
}

func TestAccountService_SignupConflict(t *testing.T) {
	ctx := context.Background()
	store := memory.NewUserStore()
	svc := newAccountService(store)

	_, err := svc.Signup(ctx, domain.SignupInput{Username: "ada", Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)

	for _, in := range []domain.SignupInput{
		{Username: "ada", Email: "other@example.com", Password: "secret1"},
		{Username: "other", Email: "ada@example.com", Password: "secret1"},
	} {
		_, err := svc.Signup(ctx, in)
		assertKind(t, err, domain.KindConflict, domain.MsgUserExists)
	}
	assert.Equal(t, 1, store.Len())
}

func TestAccountService_SignupDuplicateKeyIsConflict(t *testing.T) {
	svc := newAccountService(failingUserRepoOnCreate{})

	_, err := svc.Signup(context.Background(), domain.SignupInput{Username: "ada", Email: "ada@example.com", Password: "secret1"})
	assertKind(t, err, domain.KindConflict, domain.MsgUserExists)
}

type failingUserRepoOnCreate struct{}

func (failingUserRepoOnCreate) FindByUsernameOrEmail(context.Context, string, string) (*domain.User, error) {
	return nil, nil
}

func (failingUserRepoOnCreate) Create(context.Context, *domain.User) error {
	return domain.ErrDuplicateKey
}

func TestAccountService_LoginIsEnumerationResistant(t *testing.T) {
	ctx := context.Background()
	svc := newAccountService(memory.NewUserStore())
	_, err := svc.Signup(ctx, domain.SignupInput{Username: "ada", Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)

	wrongPassword := svc.Login(ctx, domain.LoginInput{Username: "ada", Password: "wrong-password"})
	unknownUser := svc.Login(ctx, domain.LoginInput{Username: "nobody", Password: "secret1"})
	noIdentifier := svc.Login(ctx, domain.LoginInput{Password: "secret1"})

	for _, err := range []error{wrongPassword, unknownUser, noIdentifier} {
		assertKind(t, err, domain.KindAuthentication, domain.MsgInvalidCredentials)
	}
}

func TestAccountService_LoginRequiresPassword(t *testing.T) {
	svc := newAccountService(memory.NewUserStore())

	err := svc.Login(context.Background(), domain.LoginInput{Username: "ada"})
	assertKind(t, err, domain.KindValidation, domain.MsgPasswordRequired)
}

func TestAccountService_StoreFailureIsInternal(t *testing.T) {
	svc := newAccountService(failingUserRepo{err: errors.New("connection refused")})

	_, err := svc.Signup(context.Background(), domain.SignupInput{Username: "ada", Email: "ada@example.com", Password: "secret1"})
	assertKind(t, err, domain.KindInternal, domain.MsgServerError)

	err = svc.Login(context.Background(), domain.LoginInput{Username: "ada", Password: "secret1"})
	assertKind(t, err, domain.KindInternal, domain.MsgServerError)
}
