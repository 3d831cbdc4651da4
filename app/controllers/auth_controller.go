// Package controllers maps HTTP requests onto the service layer and
// service errors back onto the wire contract.
package controllers

import (
	"errors"
	"net/http"

	"github.com/infernolabs/scmflow/app/services"
	"github.com/infernolabs/scmflow/pkg/bind"
	"github.com/infernolabs/scmflow/pkg/logger"
	"github.com/infernolabs/scmflow/pkg/middleware"
	"github.com/infernolabs/scmflow/pkg/response"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController() *AuthController {
	return &AuthController{service: services.NewAuthService()}
}

// NewAuthControllerWith injects a custom service (tests).
func NewAuthControllerWith(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register creates a user account. Every failure, duplicate username
// included, surfaces as the same opaque 500 so the endpoint leaks
// nothing about existing accounts.
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusInternalServerError, "User registration failed")
		return
	}

	if err := c.service.Register(r.Context(), body.Username, body.Password); err != nil {
		logger.WithCtx(r.Context()).Warn("registration failed", "username", body.Username, "error", err)
		response.Error(w, http.StatusInternalServerError, "User registration failed")
		return
	}

	response.Message(w, http.StatusCreated, "User registered successfully")
}

// Login checks the credentials and returns a signed token. Unknown user
// and wrong password are reported distinctly, 404 vs 401.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusInternalServerError, "Login failed")
		return
	}

	token, err := c.service.Login(r.Context(), body.Username, body.Password)
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		response.Error(w, http.StatusNotFound, "User not found")
		return
	case errors.Is(err, services.ErrInvalidCredentials):
		response.Error(w, http.StatusUnauthorized, "Invalid credentials")
		return
	case err != nil:
		logger.WithCtx(r.Context()).Error("login failed", "username", body.Username, "error", err)
		response.Error(w, http.StatusInternalServerError, "Login failed")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"token": token})
}

// Protected echoes the verified claims back to the caller. The auth
// middleware has already rejected missing or invalid tokens.
func (c *AuthController) Protected(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	if claims == nil {
		response.Error(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"message": "Access granted",
		"user":    claims,
	})
}
