package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/realtorhub/homes-api/internal/core/domain"
	"github.com/realtorhub/homes-api/internal/core/ports"
	"github.com/realtorhub/homes-api/internal/pkg/token"
)

type stubAuthRepo struct {
	users       map[string]*domain.User
	nextID      int64
	createCalls int
	findErr     error
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{users: make(map[string]*domain.User), nextID: 1}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.createCalls++
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	copy := cloneUser(user)
	copy.ID = r.nextID
	r.nextID++
	r.users[copy.Email] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubAuthRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	if u, ok := r.users[email]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubAuthRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func newAuthSvc(t *testing.T, repo ports.AuthRepository, ttl time.Duration) *AuthService {
	t.Helper()
	svc, err := NewAuthService(repo, "secret", ttl, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewAuthService: %v", err)
	}
	return svc
}

func signupInput(email string) ports.SignupInput {
	return ports.SignupInput{Email: email, Password: "pass123", Name: "Alice", Phone: "555 555 5555"}
}

func TestNewAuthService_RequiresSigningKey(t *testing.T) {
	if _, err := NewAuthService(newStubAuthRepo(), "", time.Hour, zerolog.Nop()); !errors.Is(err, domain.ErrMissingSigningKey) {
		t.Fatalf("expected ErrMissingSigningKey, got %v", err)
	}
}

func TestNewAuthService_DefaultTTL(t *testing.T) {
	svc := newAuthSvc(t, newStubAuthRepo(), 0)
	if svc.tokenTTL != DefaultTokenTTL {
		t.Fatalf("expected default ttl %v, got %v", DefaultTokenTTL, svc.tokenTTL)
	}
}

func TestAuthService_Signup_Success(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newAuthSvc(t, repo, time.Hour)

	signed, err := svc.Signup(context.Background(), signupInput("alice@example.com"))
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}

	stored := repo.users["alice@example.com"]
	if stored == nil {
		t.Fatalf("expected user to be stored")
	}
	if stored.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if cost, _ := bcrypt.Cost([]byte(stored.PasswordHash)); cost != passwordCost {
		t.Fatalf("expected bcrypt cost %d, got %d", passwordCost, cost)
	}
	if stored.Role != domain.RoleBuyer {
		t.Fatalf("expected role BUYER, got %s", stored.Role)
	}

	info, err := token.Parse("secret", signed)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if info.ID != stored.ID || info.Name != "Alice" {
		t.Fatalf("unexpected token identity: %+v", info)
	}
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newAuthSvc(t, repo, time.Hour)

	if _, err := svc.Signup(context.Background(), signupInput("a@x.com")); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}

	signed, err := svc.Signup(context.Background(), signupInput("a@x.com"))
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if signed != "" {
		t.Fatalf("no token must be issued on conflict")
	}
	if repo.createCalls != 1 {
		t.Fatalf("expected a single create call, got %d", repo.createCalls)
	}
}

func TestAuthService_Signup_EmailLookupIsExact(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newAuthSvc(t, repo, time.Hour)

	_, _ = svc.Signup(context.Background(), signupInput("a@x.com"))
	if _, err := svc.Signup(context.Background(), signupInput("A@x.com")); err != nil {
		t.Fatalf("differently cased email must not conflict, got %v", err)
	}
}

func TestAuthService_Signup_LookupError(t *testing.T) {
	repo := newStubAuthRepo()
	repo.findErr = errors.New("db down")
	svc := newAuthSvc(t, repo, time.Hour)

	if _, err := svc.Signup(context.Background(), signupInput("a@x.com")); err == nil {
		t.Fatal("expected error when lookup fails")
	}
	if repo.createCalls != 0 {
		t.Fatalf("create must not run after a failed lookup")
	}
}

func TestAuthService_Signup_TokenExpiresAfterTTL(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newAuthSvc(t, repo, 2*time.Hour)
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issued }

	signed, err := svc.Signup(context.Background(), signupInput("t@x.com"))
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	claims := &token.Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(signed, claims); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := claims.ExpiresAt.Time.Sub(issued); got != 2*time.Hour {
		t.Fatalf("expected expiry exactly 2h after issue, got %v", got)
	}

	expired := jwt.WithTimeFunc(func() time.Time { return issued.Add(2*time.Hour + time.Second) })
	if _, err := token.Parse("secret", signed, expired); err == nil {
		t.Fatal("token must be expired after the configured duration")
	}
}

func TestAuthService_Signin_Success(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newAuthSvc(t, repo, time.Hour)
	_, _ = svc.Signup(context.Background(), signupInput("carol@example.com"))

	signed, err := svc.Signin(context.Background(), "carol@example.com", "pass123")
	if err != nil {
		t.Fatalf("signin failed: %v", err)
	}
	info, err := token.Parse("secret", signed)
	if err != nil || info.Name != "Alice" {
		t.Fatalf("unexpected token: %+v %v", info, err)
	}
}

func TestAuthService_Signin_InvalidPassword(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newAuthSvc(t, repo, time.Hour)
	_, _ = svc.Signup(context.Background(), signupInput("dave@example.com"))

	if _, err := svc.Signin(context.Background(), "dave@example.com", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Signin_UnknownEmail(t *testing.T) {
	svc := newAuthSvc(t, newStubAuthRepo(), time.Hour)

	if _, err := svc.Signin(context.Background(), "ghost@example.com", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_RoleOf(t *testing.T) {
	repo := newStubAuthRepo()
	repo.users["r@x.com"] = &domain.User{ID: 9, Email: "r@x.com", Role: domain.RoleRealtor}
	svc := newAuthSvc(t, repo, time.Hour)

	role, err := svc.RoleOf(context.Background(), 9)
	if err != nil || role != domain.RoleRealtor {
		t.Fatalf("expected REALTOR, got %q (%v)", role, err)
	}
	if _, err := svc.RoleOf(context.Background(), 99); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
