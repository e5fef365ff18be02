package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/farellandr/skatefund/internal/helpers"
	"github.com/farellandr/skatefund/internal/services"
)

// Deps is what every handler needs from the process.
type Deps struct {
	Services  *services.Services
	Errors    helpers.ErrorMapper
	JWTSecret string
	TokenTTL  time.Duration
}

const depsKey = "deps"

func DepsMiddleware(deps *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(depsKey, deps)
		c.Next()
	}
}

func GetDeps(c *gin.Context) *Deps {
	deps, exists := c.Get(depsKey)
	if !exists {
		return nil
	}
	return deps.(*Deps)
}
