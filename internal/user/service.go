package user

import (
	"context"
	"errors"
	"strings"

	"bakery-be/internal/logger"
	"bakery-be/internal/utils"

	"go.uber.org/zap"
)

const defaultCountryCode = "62"

// TokenIssuer is implemented by *auth.Manager.
type TokenIssuer interface {
	Generate(userID, email, role string) (string, error)
}

type Service interface {
	Register(ctx context.Context, email, password string) (AuthResult, error)
	Login(ctx context.Context, email, password string) (AuthResult, error)
	Me(ctx context.Context) (*User, error)
	UpdateProfile(ctx context.Context, p UpdateProfileParams) (*User, error)
	SetRole(ctx context.Context, userID, role string) error
}

type service struct {
	repo   Repository
	tokens TokenIssuer
}

func NewService(repo Repository, tokens TokenIssuer) Service {
	return &service{repo: repo, tokens: tokens}
}

func (s *service) Register(ctx context.Context, email, password string) (AuthResult, error) {
	log := logger.FromCtx(ctx).With(zap.String("layer", "service"), zap.String("method", "Register"))

	email, err := normalizeEmail(email)
	if err != nil {
		return AuthResult{}, err
	}
	if len(password) < minPasswordLength {
		return AuthResult{}, ErrWeakPassword
	}

	hashed, err := HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return AuthResult{}, err
	}

	u, err := s.repo.Create(ctx, email, hashed, utils.RoleCustomer)
	if err != nil {
		if !errors.Is(err, ErrEmailExists) {
			log.Error("failed to create user", zap.String("email", email), zap.Error(err))
		}
		return AuthResult{}, err
	}

	token, err := s.tokens.Generate(u.ID, u.Email, u.Role)
	if err != nil {
		log.Error("failed to generate jwt", zap.String("user_id", u.ID), zap.Error(err))
		return AuthResult{}, err
	}

	log.Info("register service completed",
		zap.String("user_id", u.ID),
		zap.String("email", email),
	)

	return AuthResult{Token: token, User: *u}, nil
}

func (s *service) Login(ctx context.Context, email, password string) (AuthResult, error) {
	log := logger.FromCtx(ctx).With(zap.String("layer", "service"), zap.String("method", "Login"))

	email = strings.ToLower(strings.TrimSpace(email))
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			log.Info("login for unknown email")
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, err
	}

	if !CheckPasswordHash(password, u.Password) {
		log.Info("password mismatch", zap.String("user_id", u.ID))
		return AuthResult{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(u.ID, u.Email, u.Role)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Token: token, User: *u}, nil
}

func (s *service) Me(ctx context.Context) (*User, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}
	return s.repo.FindByID(ctx, userID)
}

// UpdateProfile stores the checkout defaults. Phone numbers are kept in E.164 digits.
func (s *service) UpdateProfile(ctx context.Context, p UpdateProfileParams) (*User, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}
	if p.empty() {
		return nil, ErrNoFieldsUpdate
	}

	if p.FullName != nil {
		p.FullName = utils.StrPtr(strings.TrimSpace(*p.FullName))
	}
	if p.Phone != nil {
		p.Phone = utils.StrPtr(utils.NormalizePhone(*p.Phone, defaultCountryCode))
	}
	if p.DefaultAddress != nil {
		p.DefaultAddress = utils.StrPtr(strings.TrimSpace(*p.DefaultAddress))
	}

	return s.repo.UpdateProfile(ctx, userID, p)
}

func (s *service) SetRole(ctx context.Context, userID, role string) error {
	if _, ok := utils.GetUserIDFromContext(ctx); !ok {
		return ErrUnauthorized
	}
	if !utils.IsAdmin(ctx) {
		return ErrForbidden
	}
	if role != utils.RoleCustomer && role != utils.RoleAdmin {
		return ErrInvalidRole
	}

	if err := s.repo.SetRole(ctx, userID, role); err != nil {
		return err
	}

	logger.FromCtx(ctx).Info("user role changed",
		zap.String("user_id", userID),
		zap.String("role", role),
	)
	return nil
}
