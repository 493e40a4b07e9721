package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kendall-kelly/cafe-tropis-api/middleware"
	"github.com/kendall-kelly/cafe-tropis-api/services"
)

// StaffAuthenticator talks to the identity provider on behalf of staff
type StaffAuthenticator interface {
	PasswordLogin(ctx context.Context, email, password string) (*services.Auth0Tokens, error)
	GetUserInfo(ctx context.Context, accessToken string) (*services.Auth0UserInfo, error)
}

// AuthController handles staff login and session checks
type AuthController struct {
	auth StaffAuthenticator
}

// NewAuthController creates a new AuthController
func NewAuthController(auth StaffAuthenticator) *AuthController {
	return &AuthController{auth: auth}
}

// LoginRequest represents the request body for staff login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/v1/admin/login - exchanges credentials for tokens
func (ctl *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	tokens, err := ctl.auth.PasswordLogin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err, "Failed to log in")
		return
	}

	respondSuccess(c, http.StatusOK, tokens)
}

// Session handles GET /api/v1/admin/session - returns the signed-in staff member.
// A 401 tells the client to go back to the login screen.
func (ctl *AuthController) Session(c *gin.Context) {
	accessToken, err := middleware.GetAccessToken(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "MISSING_TOKEN", "Access token not found")
		return
	}

	userInfo, err := ctl.auth.GetUserInfo(c.Request.Context(), accessToken)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch user information from Auth0")
		return
	}

	respondSuccess(c, http.StatusOK, userInfo)
}
