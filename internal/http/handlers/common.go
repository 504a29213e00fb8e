package handlers

import (
	"net/http"
	"sync"

	intconfig "gatepass/internal/config"
	"gatepass/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

var (
	cfgMu sync.RWMutex
	cfg   intconfig.Env
)

// Setup stores the loaded environment for handler use. Called once by the
// router before any route is mounted.
func Setup(env intconfig.Env) {
	cfgMu.Lock()
	defer cfgMu.Unlock()
	cfg = env
}

func envCfg() intconfig.Env {
	cfgMu.RLock()
	defer cfgMu.RUnlock()
	return cfg
}

// RespondError sends a standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string, err error) {
	payload := gin.H{
		"message":    message,
		"request_id": middleware.GetRequestID(c),
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures the body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "empty body", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}
