package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/ritual-service/internal/adapters/http/dto"
)

// HeaderInternalSecret carries the shared secret of service-to-service calls.
const HeaderInternalSecret = "X-Internal-Secret"

// RequireInternalSecret guards endpoints meant for trusted callers such as
// schedulers or operators. With no secret configured the endpoints are closed.
func RequireInternalSecret(secret string) gin.HandlerFunc {
	want := []byte(secret)

	return func(c *gin.Context) {
		if len(want) == 0 {
			dto.AbortWithErrorCode(c, dto.ErrorCodeForbidden, "internal endpoints are disabled")
			return
		}

		got := []byte(c.GetHeader(HeaderInternalSecret))
		if subtle.ConstantTimeCompare(got, want) != 1 {
			dto.AbortWithErrorCode(c, dto.ErrorCodeUnauthorized, "invalid internal secret")
			return
		}

		c.Next()
	}
}
