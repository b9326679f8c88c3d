package service

import (
	"context"
	"fmt"
	"time"

	"emphub/internal/domain"
	"emphub/internal/validation"
	"emphub/pkg/logger"
	"emphub/pkg/tracing"
)

type AccountService struct {
	repo      domain.UserRepository
	hasher    domain.PasswordHasher
	validator *validation.Validator
	logger    logger.Logger
	now       func() time.Time
}

func NewAccountService(
	repo domain.UserRepository,
	hasher domain.PasswordHasher,
	validator *validation.Validator,
	logger logger.Logger,
) *AccountService {
	return &AccountService{
		repo:      repo,
		hasher:    hasher,
		validator: validator,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *AccountService) Signup(ctx context.Context, in domain.SignupInput) (string, error) {
	ctx, span := tracing.StartSpan(ctx, "AccountService.Signup")
	defer span.End()

	if err := s.validator.Struct(in); err != nil {
		return "", report(ctx, s.logger, "signup", err)
	}

	existing, err := s.repo.FindByUsernameOrEmail(ctx, in.Username, in.Email)
	if err != nil {
		return "", report(ctx, s.logger, "signup", domain.NewInternalError(err))
	}
	if existing != nil {
		return "", report(ctx, s.logger, "signup", domain.NewConflictError(domain.MsgUserExists))
	}

	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		return "", report(ctx, s.logger, "signup", domain.NewInternalError(fmt.Errorf("hashing password: %w", err)))
	}

	now := s.now().UTC()
	user := &domain.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: digest,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return "", report(ctx, s.logger, "signup", classify(err, domain.MsgUserExists))
	}

	s.logger.InfoContext(ctx, "User created", map[string]interface{}{"user_id": user.ID, "username": user.Username})
	return user.ID, nil
}

func (s *AccountService) Login(ctx context.Context, in domain.LoginInput) error {
	ctx, span := tracing.StartSpan(ctx, "AccountService.Login")
	defer span.End()

	if err := s.validator.Struct(in); err != nil {
		return report(ctx, s.logger, "login", err)
	}

	invalid := domain.NewAuthenticationError(domain.MsgInvalidCredentials)
	if in.Username == "" && in.Email == "" {
		return report(ctx, s.logger, "login", invalid)
	}

	user, err := s.repo.FindByUsernameOrEmail(ctx, in.Username, in.Email)
	if err != nil {
		return report(ctx, s.logger, "login", domain.NewInternalError(err))
	}
	if user == nil || !s.hasher.Verify(in.Password, user.PasswordHash) {
		return report(ctx, s.logger, "login", invalid)
	}

	s.logger.InfoContext(ctx, "User logged in", map[string]interface{}{"user_id": user.ID})
	return nil
}

var _ domain.AccountService = (*AccountService)(nil)
