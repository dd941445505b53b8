package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// fallbackManifest is served when no manifest file is deployed alongside the
// binary, so the platform handshake still succeeds.
var fallbackManifest = []byte(`{"name":"dentist-booking","description":"Dental appointment booking","version":"1.0.0"}`)

// ManifestHandler serves the static capability manifest.
type ManifestHandler struct {
	body []byte
}

// NewManifestHandler loads the manifest document once at startup.
func NewManifestHandler(path string, logger *zap.Logger) *ManifestHandler {
	body, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("manifest file not found, serving fallback document",
			zap.String("path", path), zap.Error(err))
		body = fallbackManifest
	}
	return &ManifestHandler{body: body}
}

// Serve handles GET /mcp.json and GET /.well-known/mcp.json.
func (h *ManifestHandler) Serve(c *gin.Context) {
	c.Data(http.StatusOK, "application/json", h.body)
}
