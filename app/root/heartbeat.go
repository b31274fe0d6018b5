package root

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func Heartbeat(c *gin.Context) {
	c.Status(http.StatusOK)
}

// Validate only runs behind the auth gate, so reaching it at all means the
// token and verification state are good
func Validate(c *gin.Context) {
	c.Status(http.StatusOK)
}
