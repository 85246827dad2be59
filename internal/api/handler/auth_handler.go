package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/material-mover/marketplace-api/internal/api/metrics"
	"github.com/material-mover/marketplace-api/internal/core/domain"
	"github.com/material-mover/marketplace-api/internal/core/ports"
)

// AuthHandler handles signup, login and admin account management.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Signup creates a buyer or seller account.
//
// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Signup details"
// @Success      201   {object}  signupResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), req.Email, req.Password, domain.Role(req.Role))
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			metrics.SignupConflictsTotal.Inc()
		}
		return err
	}

	metrics.SignupsTotal.WithLabelValues(string(user.Role)).Inc()
	return c.JSON(http.StatusCreated, signupResponse{Message: "User created", Role: string(user.Role)})
}

// Login authenticates a user and returns a signed credential.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	signed, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{Token: signed, Role: string(user.Role)})
}

// ListUsers returns all accounts, hashes stripped.
//
// @Summary      List users (admin)
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userListResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/auth/users [get]
func (h *AuthHandler) ListUsers(c echo.Context) error {
	users, err := h.authService.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	return c.JSON(http.StatusOK, userListResponse{Users: out})
}

// CreateUser creates an account with any role.
//
// @Summary      Create user (admin)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "New account"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/auth/create-user [post]
func (h *AuthHandler) CreateUser(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.CreateUser(c.Request().Context(), req.Email, req.Password, domain.Role(req.Role))
	if err != nil {
		return err
	}

	resp := toUserResponse(user)
	return c.JSON(http.StatusCreated, messageResponse{Message: "User created", User: &resp})
}

// UpdateRole changes an account's role.
//
// @Summary      Update user role (admin)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateRoleRequest  true  "Role change"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/auth/update-role [post]
func (h *AuthHandler) UpdateRole(c echo.Context) error {
	var req updateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.UpdateRole(c.Request().Context(), req.UserID, domain.Role(req.Role))
	if err != nil {
		return err
	}

	resp := toUserResponse(user)
	return c.JSON(http.StatusOK, messageResponse{Message: "Role updated", User: &resp})
}

// DeleteUser removes an account and its products.
//
// @Summary      Delete user and owned products (admin)
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /api/auth/users/{id} [delete]
func (h *AuthHandler) DeleteUser(c echo.Context) error {
	requesterID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	if err := h.authService.DeleteUser(c.Request().Context(), c.Param("id"), requesterID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "User and associated products deleted"})
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}
