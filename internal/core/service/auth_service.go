package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/material-mover/marketplace-api/internal/core/domain"
	"github.com/material-mover/marketplace-api/internal/core/ports"
	"github.com/material-mover/marketplace-api/internal/core/token"
)

// AuthService implements signup, login and admin account management.
type AuthService struct {
	users    ports.AuthRepository
	products ports.ProductRepository
	tx       ports.TxRunner
	codec    *token.Codec
	log      zerolog.Logger
}

func NewAuthService(
	users ports.AuthRepository,
	products ports.ProductRepository,
	tx ports.TxRunner,
	codec *token.Codec,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{users: users, products: products, tx: tx, codec: codec, log: log}
}

// Register creates a buyer or seller account. The existence check and the
// insert run inside one transaction so that of two concurrent signups for the
// same email exactly one commits; the other observes ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, email, password string, role domain.Role) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, domain.ErrMissingFields
	}
	if !role.SelfAssignable() {
		return nil, domain.ErrInvalidRole
	}
	return s.createAccount(ctx, email, password, role)
}

// CreateUser is the admin-only account creation path; any role is allowed.
func (s *AuthService) CreateUser(ctx context.Context, email, password string, role domain.Role) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, domain.ErrMissingFields
	}
	if _, err := domain.ParseRole(string(role)); err != nil {
		return nil, err
	}
	return s.createAccount(ctx, email, password, role)
}

func (s *AuthService) createAccount(ctx context.Context, email, password string, role domain.Role) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var created *domain.User
	err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		existing, findErr := s.users.FindByEmail(txCtx, email)
		if findErr != nil && !errors.Is(findErr, domain.ErrUserNotFound) {
			return findErr
		}
		if existing != nil {
			return domain.ErrEmailTaken
		}
		created, findErr = s.users.Create(txCtx, user)
		return findErr
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			s.log.Info().Str("email", email).Msg("signup rejected, email taken")
		}
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("role", string(role)).Msg("account created")
	return created, nil
}

// Login verifies the credentials and issues a signed token. Unknown email and
// wrong password produce the same error so accounts cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	signed, err := s.codec.Issue(user)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return signed, user, nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.FindAll(ctx)
}

func (s *AuthService) UpdateRole(ctx context.Context, userID string, role domain.Role) (*domain.User, error) {
	if _, err := domain.ParseRole(string(role)); err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.users.UpdateRole(ctx, userID, role); err != nil {
		return nil, err
	}
	user.Role = role
	s.log.Info().Str("user_id", userID).Str("role", string(role)).Msg("role updated")
	return user, nil
}

// DeleteUser removes the account and cascades to its products. The cascade
// and the account removal run in one transaction so a failure cannot leave
// products without an owner.
func (s *AuthService) DeleteUser(ctx context.Context, userID, requesterID string) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.ID == requesterID {
		return domain.ErrSelfDelete
	}

	err = s.tx.WithTransaction(ctx, func(txCtx context.Context) error {
		if delErr := s.products.DeleteBySeller(txCtx, user.ID); delErr != nil {
			return delErr
		}
		return s.users.Delete(txCtx, user.ID)
	})
	if err != nil {
		return err
	}

	s.log.Info().Str("user_id", userID).Msg("account and owned products deleted")
	return nil
}
