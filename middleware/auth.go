package middleware

import (
	"context"
	"net/http"
	"strings"

	"studybuddy/services/identity"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	ContextUserID  = "userID"
	ContextEmail   = "email"
	ContextIDToken = "idToken"
)

// TokenVerifier checks an ID token. identity.Provider and
// *identity.CachedProvider satisfy it.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*identity.Token, error)
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": "Insufficient authorization",
		"code":  0,
	})
}

// FirebaseAuth verifies the bearer ID token and stores the caller's uid and
// email in the context.
func FirebaseAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			unauthorized(c)
			return
		}
		idToken := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if idToken == "" {
			unauthorized(c)
			return
		}

		tok, err := verifier.VerifyIDToken(c.Request.Context(), idToken)
		if err != nil || tok == nil || tok.UID == "" {
			zap.L().Debug("FirebaseAuth: token rejected", zap.String("ip", getClientIP(c)), zap.Error(err))
			unauthorized(c)
			return
		}

		c.Set(ContextUserID, tok.UID)
		c.Set(ContextEmail, tok.Email)
		c.Set(ContextIDToken, idToken)
		c.Next()
	}
}
