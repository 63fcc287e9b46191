package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/realtorhub/homes-api/internal/pkg/metrics"
	"github.com/realtorhub/homes-api/internal/core/domain"
	"github.com/realtorhub/homes-api/internal/core/ports"
	"github.com/realtorhub/homes-api/internal/pkg/token"
)

// passwordCost is the bcrypt work factor applied to every stored password.
const passwordCost = 10

// DefaultTokenTTL matches the lifetime historically issued to clients.
const DefaultTokenTTL = 3600000 * time.Second

// AuthService implements signup, signin and role resolution.
type AuthService struct {
	repo      ports.AuthRepository
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
	now       func() time.Time
}

func NewAuthService(repo ports.AuthRepository, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) (*AuthService, error) {
	if jwtSecret == "" {
		return nil, domain.ErrMissingSigningKey
	}
	if tokenTTL <= 0 {
		tokenTTL = DefaultTokenTTL
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log, now: time.Now}, nil
}

// Signup registers a BUYER and returns a signed identity token. The user row
// is kept even when signing fails afterwards.
func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (string, error) {
	existing, err := s.repo.FindByEmail(ctx, in.Email)
	switch {
	case err == nil && existing != nil:
		metrics.SignupsTotal.WithLabelValues("conflict").Inc()
		return "", domain.ErrUserExists
	case err != nil && !errors.Is(err, domain.ErrUserNotFound):
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), passwordCost)
	if err != nil {
		return "", err
	}

	now := s.now().UTC()
	user, err := s.repo.Create(ctx, &domain.User{
		Email:        in.Email,
		Name:         in.Name,
		Phone:        in.Phone,
		PasswordHash: string(hash),
		Role:         domain.RoleBuyer,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			metrics.SignupsTotal.WithLabelValues("conflict").Inc()
		}
		return "", err
	}
	metrics.SignupsTotal.WithLabelValues("created").Inc()

	signed, err := s.generateToken(user)
	if err != nil {
		s.log.Error().Err(err).Int64("user_id", user.ID).Msg("user created but token signing failed")
		return "", err
	}

	s.log.Info().Int64("user_id", user.ID).Msg("user signed up")
	return signed, nil
}

func (s *AuthService) Signin(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", domain.ErrInvalidCredentials
	}

	return s.generateToken(user)
}

func (s *AuthService) RoleOf(ctx context.Context, userID int64) (domain.Role, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return user.Role, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	return token.Issue(s.jwtSecret, domain.UserInfo{ID: user.ID, Name: user.Name}, s.tokenTTL, s.now())
}
