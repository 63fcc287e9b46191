package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/realtorhub/homes-api/internal/api/handler"
	"github.com/realtorhub/homes-api/internal/core/domain"
	"github.com/realtorhub/homes-api/internal/core/ports"
	"github.com/realtorhub/homes-api/internal/pkg/token"
)

const testSecret = "router-test-secret"

type routerAuthStub struct {
	roles map[int64]domain.Role
}

func (s *routerAuthStub) Signup(context.Context, ports.SignupInput) (string, error) {
	return "", nil
}

func (s *routerAuthStub) Signin(context.Context, string, string) (string, error) {
	return "", domain.ErrInvalidCredentials
}

func (s *routerAuthStub) RoleOf(_ context.Context, id int64) (domain.Role, error) {
	r, ok := s.roles[id]
	if !ok {
		return "", domain.ErrUserNotFound
	}
	return r, nil
}

// routerHomeStub owns every home as realtor 7 and counts mutations.
type routerHomeStub struct {
	mutations int
}

func (s *routerHomeStub) ListHomes(context.Context, domain.HomeFilter) ([]*domain.Home, error) {
	return []*domain.Home{}, nil
}

func (s *routerHomeStub) GetHome(_ context.Context, id int64) (*domain.Home, error) {
	if id != 5 {
		return nil, domain.ErrHomeNotFound
	}
	return &domain.Home{ID: 5, RealtorID: 7}, nil
}

func (s *routerHomeStub) GetRealtorByHomeID(_ context.Context, id int64) (*domain.User, error) {
	if id != 5 {
		return nil, domain.ErrHomeNotFound
	}
	return &domain.User{ID: 7, Role: domain.RoleRealtor}, nil
}

func (s *routerHomeStub) CreateHome(_ context.Context, in ports.CreateHomeInput) (*domain.Home, error) {
	s.mutations++
	return &domain.Home{ID: 6, RealtorID: in.RealtorID}, nil
}

func (s *routerHomeStub) UpdateHome(_ context.Context, id int64, _ domain.HomeUpdate) (*domain.Home, error) {
	s.mutations++
	return &domain.Home{ID: id, RealtorID: 7}, nil
}

func (s *routerHomeStub) DeleteHome(context.Context, int64) error {
	s.mutations++
	return nil
}

func (s *routerHomeStub) AddImage(context.Context, int64, ports.ImageUpload) (*domain.Home, error) {
	s.mutations++
	return nil, nil
}

func bearer(t *testing.T, id int64, name string) string {
	t.Helper()
	tok, err := token.Issue(testSecret, domain.UserInfo{ID: id, Name: name}, time.Hour, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	return "Bearer " + tok
}

// The router registers Prometheus collectors, so it is built once.
func TestRouter_Routes(t *testing.T) {
	homes := &routerHomeStub{}
	auth := &routerAuthStub{roles: map[int64]domain.Role{
		3: domain.RoleBuyer,
		7: domain.RoleRealtor,
		9: domain.RoleRealtor,
	}}
	e := NewRouter(Deps{
		AuthService: auth,
		HomeService: homes,
		JWTSecret:   testSecret,
		Pingers:     map[string]handler.Pinger{},
		Logger:      zerolog.Nop(),
	})

	createBody := `{"address":"1 Main","numberOfBedrooms":2,"numberOfBathrooms":1,"city":"Austin","price":10,"landSize":10,"propertyType":"CONDO"}`

	tests := []struct {
		name          string
		method, path  string
		auth          string
		body          string
		wantCode      int
		wantMutations int
	}{
		{"public list", http.MethodGet, "/home?city=Austin", "", "", http.StatusOK, 0},
		{"bad price filter", http.MethodGet, "/home?minPrice=lots", "", "", http.StatusBadRequest, 0},
		{"non integer id", http.MethodGet, "/home/abc", "", "", http.StatusBadRequest, 0},
		{"unknown home", http.MethodGet, "/home/404", "", "", http.StatusNotFound, 0},
		{"create anonymous", http.MethodPost, "/home", "", createBody, http.StatusUnauthorized, 0},
		{"create as buyer", http.MethodPost, "/home", bearer(t, 3, "Bea"), createBody, http.StatusForbidden, 0},
		{"create as realtor", http.MethodPost, "/home", bearer(t, 7, "Rita"), createBody, http.StatusCreated, 1},
		{"update by other realtor", http.MethodPut, "/home/5", bearer(t, 9, "Mallory"), `{"price":1}`, http.StatusUnauthorized, 1},
		{"delete by other realtor", http.MethodDelete, "/home/5", bearer(t, 9, "Mallory"), "", http.StatusUnauthorized, 1},
		{"update by owner", http.MethodPut, "/home/5", bearer(t, 7, "Rita"), `{"price":1}`, http.StatusOK, 2},
		{"delete by owner", http.MethodDelete, "/home/5", bearer(t, 7, "Rita"), "", http.StatusOK, 3},
		{"me", http.MethodGet, "/auth/me", bearer(t, 3, "Bea"), "", http.StatusOK, 3},
		{"signin bad credentials", http.MethodPost, "/auth/signin", "", `{"email":"a@example.com","password":"x"}`, http.StatusBadRequest, 3},
		{"liveness", http.MethodGet, "/health", "", "", http.StatusOK, 3},
		{"metrics", http.MethodGet, "/metrics", "", "", http.StatusOK, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d: %s", tt.wantCode, rec.Code, rec.Body.String())
			}
			if homes.mutations != tt.wantMutations {
				t.Fatalf("expected %d mutations so far, got %d", tt.wantMutations, homes.mutations)
			}
		})
	}
}
