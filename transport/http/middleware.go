package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/JinhyeokFang/capstone"
)

const (
	accountContextKey = "capstone.account"
	requestIDHeader   = "X-Request-Id"
)

// RequestID tags every request with a UUID, honoring one supplied by an
// upstream proxy.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(requestIDHeader, id)
		c.Set(requestIDHeader, id)
		c.Next()
	}
}

// BearerAuth validates the Authorization header and stores the resolved
// account in the request context.
func BearerAuth(engine *capstone.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				errorBody{Code: "UNAUTHORIZED", Message: "missing bearer token"})
			return
		}

		account, err := engine.CurrentUser(c.Request.Context(), token)
		if err != nil {
			c.Abort()
			writeError(c, err)
			return
		}

		c.Set(accountContextKey, account)
		c.Next()
	}
}

func currentAccount(c *gin.Context) *capstone.Account {
	v, ok := c.Get(accountContextKey)
	if !ok {
		return nil
	}
	account, _ := v.(*capstone.Account)
	return account
}
