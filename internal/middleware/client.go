// internal/middleware/client.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// ClientCookie carries the browser's storage origin.
	ClientCookie = "hodu_client"
	// ClientHeader lets non-browser callers pick their origin explicitly.
	ClientHeader = "X-Client-ID"

	clientCookieMaxAge = 365 * 24 * 60 * 60
)

// ClientSession assigns every caller a stable storage origin. The id comes from
// the X-Client-ID header, then the cookie; a missing or malformed id is replaced
// by a fresh one and the cookie is (re)issued.
func ClientSession(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := c.GetHeader(ClientHeader); validClientID(id) {
			c.Set("client_id", id)
			c.Next()
			return
		}

		id, err := c.Cookie(ClientCookie)
		if err != nil || !validClientID(id) {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(ClientCookie, id, clientCookieMaxAge, "/", "", secure, true)
		}

		c.Set("client_id", id)
		c.Next()
	}
}

func validClientID(id string) bool {
	if id == "" {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}
