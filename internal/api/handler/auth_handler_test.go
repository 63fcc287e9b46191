package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/realtorhub/homes-api/internal/api/middleware"
	"github.com/realtorhub/homes-api/internal/core/domain"
	"github.com/realtorhub/homes-api/internal/core/ports"
)

type stubAuthService struct {
	signupFn func(ctx context.Context, in ports.SignupInput) (string, error)
	signinFn func(ctx context.Context, email, password string) (string, error)
}

func (s *stubAuthService) Signup(ctx context.Context, in ports.SignupInput) (string, error) {
	return s.signupFn(ctx, in)
}

func (s *stubAuthService) Signin(ctx context.Context, email, password string) (string, error) {
	return s.signinFn(ctx, email, password)
}

func (s *stubAuthService) RoleOf(context.Context, int64) (domain.Role, error) {
	return domain.RoleBuyer, nil
}

func newAuthContext(target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(_ context.Context, in ports.SignupInput) (string, error) {
			if in.Email != "alice@example.com" || in.Name != "Alice" || in.Phone != "555 555-5555" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return "token123", nil
		},
	}
	c, rec := newAuthContext("/auth/signup", `{"email":"alice@example.com","password":"hunter22","name":"Alice","phone":"555 555-5555"}`)

	if err := NewAuthHandler(stub).Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp tokenResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Token != "token123" {
		t.Fatalf("unexpected token: %q", resp.Token)
	}
}

func TestAuthHandler_Signup_UserExists(t *testing.T) {
	stub := &stubAuthService{
		signupFn: func(context.Context, ports.SignupInput) (string, error) { return "", domain.ErrUserExists },
	}
	c, _ := newAuthContext("/auth/signup", `{"email":"bob@example.com","password":"hunter22","name":"Bob","phone":"+1 (555) 555-5555"}`)

	if err := NewAuthHandler(stub).Signup(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Signup_InvalidPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "not-json"},
		{"bad email", `{"email":"nope","password":"hunter22","name":"A","phone":"555 555-5555"}`},
		{"bad phone", `{"email":"a@example.com","password":"hunter22","name":"A","phone":"12345"}`},
		{"missing name", `{"email":"a@example.com","password":"hunter22","phone":"555 555-5555"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubAuthService{
				signupFn: func(context.Context, ports.SignupInput) (string, error) {
					t.Fatalf("should not be called")
					return "", nil
				},
			}
			c, _ := newAuthContext("/auth/signup", tt.body)

			err := NewAuthHandler(stub).Signup(c)
			var he *echo.HTTPError
			if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %v", err)
			}
		})
	}
}

func TestAuthHandler_Signin(t *testing.T) {
	stub := &stubAuthService{
		signinFn: func(_ context.Context, email, password string) (string, error) {
			if email == "alice@example.com" && password == "hunter22" {
				return "token123", nil
			}
			return "", domain.ErrInvalidCredentials
		},
	}

	c, rec := newAuthContext("/auth/signin", `{"email":"alice@example.com","password":"hunter22"}`)
	if err := NewAuthHandler(stub).Signin(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	c, _ = newAuthContext("/auth/signin", `{"email":"alice@example.com","password":"wrong"}`)
	if err := NewAuthHandler(stub).Signin(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	c, rec := newAuthContext("/auth/me", "")
	middleware.SetUser(c, domain.UserInfo{ID: 4, Name: "Alice"})

	if err := NewAuthHandler(&stubAuthService{}).Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp meResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.ID != 4 || resp.Name != "Alice" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}
