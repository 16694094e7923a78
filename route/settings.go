package route

import (
	"net/http"

	"git.thinkinpower.net/bincheck/mod"
	"github.com/gin-gonic/gin"
	logger "github.com/sirupsen/logrus"
)

type apiKeyRequest struct {
	ApiKey *string `json:"api_key" binding:"required"`
}

type apiKeyMode struct {
	Premium bool `json:"premium"`
}

func (h *Handler) apiKeyGet(c *gin.Context) {
	key, err := h.credentials.Get(c.Request.Context())
	if err != nil {
		logger.WithError(err).Warn("credential read failed")
	}
	succeed(c, apiKeyMode{Premium: key != ""})
}

// apiKeyPut stores the key exactly as sent; an empty key switches back to the free tier.
func (h *Handler) apiKeyPut(c *gin.Context) {
	var req apiKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, mod.ResponseCodeMissingParams, "api_key is required")
		return
	}
	key := *req.ApiKey
	if err := h.credentials.Save(c.Request.Context(), key); err != nil {
		logger.WithError(err).Error("credential save failed")
		fail(c, http.StatusInternalServerError, mod.ResponseCodeFailure, "api key not saved")
		return
	}
	logger.WithField("premium", key != "").Info("api key updated")
	succeed(c, apiKeyMode{Premium: key != ""})
}
