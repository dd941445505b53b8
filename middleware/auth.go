package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/oscarfollett-cpu/vf-dentist-mcp/config"
)

// builtinOpenPaths bypass credential checks so the calling platform can fetch
// capability metadata without a key.
var builtinOpenPaths = []string{
	"/",
	"/status",
	"/mcp.json",
	"/.well-known/mcp.json",
}

// APIKeyAuth gates every request on the configured shared secret. The
// credential is accepted under any of the configured header conventions.
func APIKeyAuth(cfg *config.Config, logger *zap.Logger) gin.HandlerFunc {
	open := make(map[string]struct{})
	for _, p := range builtinOpenPaths {
		open[p] = struct{}{}
	}
	for _, p := range cfg.HandshakePaths {
		open[p] = struct{}{}
	}
	for _, p := range cfg.OpenPaths {
		open[p] = struct{}{}
	}

	return func(c *gin.Context) {
		// CORS preflight is never credentialed.
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		if _, ok := open[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		credential := extractCredential(c, cfg)

		// A bare request with no credential and no body is a platform
		// handshake probe. Anything carrying a body must authenticate.
		if credential == "" && c.Request.ContentLength == 0 {
			c.Next()
			return
		}

		if cfg.APIKey == "" {
			logger.Error("API key not configured; rejecting protected request",
				zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "server misconfigured"})
			return
		}

		if subtle.ConstantTimeCompare([]byte(credential), []byte(cfg.APIKey)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Next()
	}
}

// extractCredential checks the configured header conventions in order:
// shared-secret header, bearer header (with or without the "Bearer " prefix),
// then the alternate token header.
func extractCredential(c *gin.Context, cfg *config.Config) string {
	if v := c.GetHeader(cfg.SharedSecretHeader); v != "" {
		return v
	}
	if v := c.GetHeader(cfg.BearerHeader); v != "" {
		return strings.TrimPrefix(v, "Bearer ")
	}
	return c.GetHeader(cfg.AltTokenHeader)
}
