package middleware

import (
	"crypto/subtle"
	"net/http"

	"gatepass/internal/domain"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// PoliceAuth gates verification endpoints behind the shared device secret
// presented in domain.PoliceAuthHeader. When secretHash is set it wins and
// is compared with bcrypt; otherwise the plaintext secret is compared in
// constant time. A missing or wrong header is always 403: an unauthorized
// device, not a data error.
func PoliceAuth(secret, secretHash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		presented := c.GetHeader(domain.PoliceAuthHeader)

		if !authorized(presented, secret, secretHash) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":      "access denied: police authorization required",
				"request_id": GetRequestID(c),
			})
			return
		}
		c.Next()
	}
}

func authorized(presented, secret, secretHash string) bool {
	if presented == "" {
		return false
	}
	if secretHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(secretHash), []byte(presented)) == nil
	}
	if secret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(presented), []byte(secret)) == 1
}
