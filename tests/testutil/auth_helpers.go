package testutil

import (
	"strings"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"

	"github.com/kendall-kelly/cafe-tropis-api/middleware"
)

// MockValidatedClaims creates validated claims for a staff member with the given scopes
func MockValidatedClaims(subject, issuer string, scopes []string) *validator.ValidatedClaims {
	return &validator.ValidatedClaims{
		RegisteredClaims: validator.RegisteredClaims{
			Issuer:  issuer,
			Subject: subject,
		},
		CustomClaims: &middleware.CustomClaims{
			Scope: strings.Join(scopes, " "),
		},
	}
}

// MockAuthMiddleware stands in for EnsureValidToken, setting the same context
// keys a validated token would
func MockAuthMiddleware(userID, accessToken string, scopes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, userID)
		c.Set(middleware.ContextAccessToken, accessToken)
		c.Set(middleware.ContextValidatedClaims, MockValidatedClaims(userID, "https://test.auth0.com/", scopes))
		c.Next()
	}
}
