package middleware

import (
	"strings"

	"hotel-booking/apperrors"
	"hotel-booking/services"
	"hotel-booking/utils"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// TokenVerifier turns a bearer token into the caller's identity.
type TokenVerifier interface {
	Verify(token string) (services.Identity, error)
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// Authenticate requires a valid bearer token: a missing or malformed header
// and an invalid or expired token both answer 401 with different codes.
func Authenticate(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			utils.JSONError(c, apperrors.ErrUnauthorized)
			return
		}

		identity, err := verifier.Verify(token)
		if err != nil {
			utils.JSONError(c, apperrors.As(err))
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// RequireRole must run after Authenticate.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := CurrentIdentity(c)
		if !ok {
			utils.JSONError(c, apperrors.ErrUnauthorized)
			return
		}
		if identity.Role != role {
			utils.JSONError(c, apperrors.ErrForbidden)
			return
		}
		c.Next()
	}
}

func CurrentIdentity(c *gin.Context) (services.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return services.Identity{}, false
	}
	identity, ok := v.(services.Identity)
	return identity, ok
}
