package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/material-mover/marketplace-api/internal/api/middleware"
	"github.com/material-mover/marketplace-api/internal/core/domain"
)

// stubAuthService implements ports.AuthService with overridable behaviour per
// test case.
type stubAuthService struct {
	register   func(ctx context.Context, email, password string, role domain.Role) (*domain.User, error)
	login      func(ctx context.Context, email, password string) (string, *domain.User, error)
	listUsers  func(ctx context.Context) ([]*domain.User, error)
	createUser func(ctx context.Context, email, password string, role domain.Role) (*domain.User, error)
	updateRole func(ctx context.Context, userID string, role domain.Role) (*domain.User, error)
	deleteUser func(ctx context.Context, userID, requesterID string) error
}

func (s *stubAuthService) Register(ctx context.Context, email, password string, role domain.Role) (*domain.User, error) {
	return s.register(ctx, email, password, role)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.login(ctx, email, password)
}

func (s *stubAuthService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.listUsers(ctx)
}

func (s *stubAuthService) CreateUser(ctx context.Context, email, password string, role domain.Role) (*domain.User, error) {
	return s.createUser(ctx, email, password, role)
}

func (s *stubAuthService) UpdateRole(ctx context.Context, userID string, role domain.Role) (*domain.User, error) {
	return s.updateRole(ctx, userID, role)
}

func (s *stubAuthService) DeleteUser(ctx context.Context, userID, requesterID string) error {
	return s.deleteUser(ctx, userID, requesterID)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestAuthHandler_Signup_Success(t *testing.T) {
	svc := &stubAuthService{
		register: func(_ context.Context, email, password string, role domain.Role) (*domain.User, error) {
			if email != "a@x.com" || password != "pw123456" || role != domain.RoleSeller {
				t.Fatalf("unexpected register args: %s %s %s", email, password, role)
			}
			return &domain.User{ID: "user_1", Email: email, Role: role, CreatedAt: time.Now()}, nil
		},
	}
	h := NewAuthHandler(svc)

	e := newTestEcho()
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/auth/signup",
		`{"email":"a@x.com","password":"pw123456","role":"seller"}`), rec)

	if err := h.Signup(c); err != nil {
		t.Fatalf("signup: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp signupResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Message != "User created" || resp.Role != "seller" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestAuthHandler_Signup_RejectsAdminRole(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	e := newTestEcho()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/auth/signup",
		`{"email":"a@x.com","password":"pw123456","role":"admin"}`), httptest.NewRecorder())

	err := h.Signup(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for admin self-signup, got %v", err)
	}
}

func TestAuthHandler_Signup_InvalidPayload(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	e := newTestEcho()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/auth/signup",
		`{"email":"not-an-email","password":"pw","role":"buyer"}`), httptest.NewRecorder())

	err := h.Signup(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Signup_DuplicateEmailPropagates(t *testing.T) {
	svc := &stubAuthService{
		register: func(_ context.Context, _, _ string, _ domain.Role) (*domain.User, error) {
			return nil, domain.ErrEmailTaken
		},
	}
	h := NewAuthHandler(svc)

	e := newTestEcho()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/auth/signup",
		`{"email":"a@x.com","password":"pw123456","role":"buyer"}`), httptest.NewRecorder())

	// The central error handler maps ErrEmailTaken to 409; the handler itself
	// returns the domain error untouched.
	if err := h.Signup(c); err != domain.ErrEmailTaken {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	svc := &stubAuthService{
		login: func(_ context.Context, email, password string) (string, *domain.User, error) {
			return "signed-token", &domain.User{ID: "user_1", Email: email, Role: domain.RoleBuyer}, nil
		},
	}
	h := NewAuthHandler(svc)

	e := newTestEcho()
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/auth/login",
		`{"email":"a@x.com","password":"pw123456"}`), rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp loginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Token != "signed-token" || resp.Role != "buyer" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestAuthHandler_Login_FailurePropagates(t *testing.T) {
	svc := &stubAuthService{
		login: func(_ context.Context, _, _ string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(svc)

	e := newTestEcho()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/auth/login",
		`{"email":"a@x.com","password":"wrong1"}`), httptest.NewRecorder())

	if err := h.Login(c); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_ListUsers_StripsHashes(t *testing.T) {
	svc := &stubAuthService{
		listUsers: func(_ context.Context) ([]*domain.User, error) {
			return []*domain.User{
				{ID: "user_1", Email: "a@x.com", Role: domain.RoleBuyer, PasswordHash: "$2a$10$secret"},
			}, nil
		},
	}
	h := NewAuthHandler(svc)

	e := newTestEcho()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/auth/users", nil), rec)

	if err := h.ListUsers(c); err != nil {
		t.Fatalf("list users: %v", err)
	}
	if strings.Contains(rec.Body.String(), "secret") {
		t.Fatalf("password hash leaked into response: %s", rec.Body.String())
	}

	var resp userListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Users) != 1 || resp.Users[0].Email != "a@x.com" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestAuthHandler_CreateUser_AdminRoleAllowed(t *testing.T) {
	svc := &stubAuthService{
		createUser: func(_ context.Context, email, _ string, role domain.Role) (*domain.User, error) {
			return &domain.User{ID: "user_9", Email: email, Role: role}, nil
		},
	}
	h := NewAuthHandler(svc)

	e := newTestEcho()
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/auth/create-user",
		`{"email":"root@x.com","password":"pw123456","role":"admin"}`), rec)

	if err := h.CreateUser(c); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestAuthHandler_UpdateRole(t *testing.T) {
	svc := &stubAuthService{
		updateRole: func(_ context.Context, userID string, role domain.Role) (*domain.User, error) {
			if userID != "user_2" || role != domain.RoleSeller {
				t.Fatalf("unexpected args: %s %s", userID, role)
			}
			return &domain.User{ID: userID, Email: "b@x.com", Role: role}, nil
		},
	}
	h := NewAuthHandler(svc)

	e := newTestEcho()
	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/api/auth/update-role",
		`{"userId":"user_2","role":"seller"}`), rec)

	if err := h.UpdateRole(c); err != nil {
		t.Fatalf("update role: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_DeleteUser_PassesRequester(t *testing.T) {
	var gotUserID, gotRequester string
	svc := &stubAuthService{
		deleteUser: func(_ context.Context, userID, requesterID string) error {
			gotUserID, gotRequester = userID, requesterID
			return nil
		},
	}
	h := NewAuthHandler(svc)

	e := newTestEcho()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodDelete, "/api/auth/users/user_2", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("user_2")
	c.Set(middleware.CtxUserID, "admin_1")
	c.Set(middleware.CtxRole, domain.RoleAdmin)

	if err := h.DeleteUser(c); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if gotUserID != "user_2" || gotRequester != "admin_1" {
		t.Fatalf("unexpected args: userID=%s requester=%s", gotUserID, gotRequester)
	}
}

func TestAuthHandler_DeleteUser_RequiresIdentity(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	e := newTestEcho()
	c := e.NewContext(httptest.NewRequest(http.MethodDelete, "/api/auth/users/user_2", nil), httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("user_2")

	err := h.DeleteUser(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without identity, got %v", err)
	}
}
