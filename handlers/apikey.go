package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ideagen/ideagen/backend/go-services/internal/config"
	"github.com/ideagen/ideagen/backend/go-services/internal/upstream"
	"github.com/ideagen/ideagen/backend/go-services/pkg/apperr"
	"github.com/ideagen/ideagen/backend/go-services/pkg/logger"
	"github.com/ideagen/ideagen/backend/go-services/pkg/metrics"
)

const (
	apiKeyPrefix    = "sk-or-v1-"
	apiKeyMinLength = 20
)

// ValidateKeyRequest is the credential check body. APIKey is untyped so a
// non-string value can be told apart from a missing one.
type ValidateKeyRequest struct {
	APIKey interface{} `json:"apiKey"`
}

// APIKeyHandler checks a user's provider key by listing the models it can see.
type APIKeyHandler struct {
	cfg config.UpstreamConfig
}

func NewAPIKeyHandler(cfg config.UpstreamConfig) *APIKeyHandler {
	return &APIKeyHandler{cfg: cfg}
}

func (h *APIKeyHandler) Register(rg gin.IRoutes) {
	rg.POST("/api/validate-api-key", h.Validate)
}

func (h *APIKeyHandler) Validate(c *gin.Context) {
	var req ValidateKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperr.JSON(c, apperr.Wrap(apperr.KindInvalidRequest, "Invalid request body", err))
		return
	}
	if req.APIKey == nil || req.APIKey == "" {
		apperr.JSON(c, apperr.New(apperr.KindInvalidRequest, "API key is required"))
		return
	}
	key, ok := req.APIKey.(string)
	if !ok || len(key) < apiKeyMinLength {
		apperr.JSON(c, apperr.New(apperr.KindInvalidRequest, "API key format is invalid"))
		return
	}
	if !strings.HasPrefix(key, apiKeyPrefix) {
		apperr.JSON(c, apperr.New(apperr.KindInvalidRequest, "Not an OpenRouter API key. It must start with '"+apiKeyPrefix+"'"))
		return
	}

	models, err := upstream.NewClient(h.cfg, key).ListModels(c.Request.Context())
	if err != nil {
		metrics.UpstreamErrors.WithLabelValues("models").Inc()
		logger.Warnf("api key validation failed upstream: status=%d err=%v", upstream.StatusOf(err), err)
		switch upstream.StatusOf(err) {
		case http.StatusUnauthorized:
			apperr.JSON(c, apperr.Wrap(apperr.KindUpstreamRejected, "API key is invalid", err).WithStatus(http.StatusUnauthorized))
		case http.StatusForbidden:
			apperr.JSON(c, apperr.Wrap(apperr.KindUpstreamRejected, "API key lacks permission", err).WithStatus(http.StatusForbidden))
		default:
			apperr.JSON(c, apperr.Wrap(apperr.KindUpstreamFailure, "Failed to validate API key", err))
		}
		return
	}

	family := strings.ToLower(h.cfg.ModelFamily)
	available := family == ""
	for _, m := range models.Models {
		if available {
			break
		}
		available = strings.Contains(strings.ToLower(m.ID), family)
	}
	if !available {
		apperr.JSON(c, apperr.New(apperr.KindForbidden, "The configured model family is not available to this API key"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"message":         "API key is valid",
		"availableModels": len(models.Models),
		"modelAvailable":  true,
	})
}
