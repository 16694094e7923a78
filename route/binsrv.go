package route

import (
	"net/http"

	"git.thinkinpower.net/bincheck/event"
	"git.thinkinpower.net/bincheck/mod"
	"git.thinkinpower.net/bincheck/resolve"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	logger "github.com/sirupsen/logrus"
)

// lookupStatus maps a failed resolution to the HTTP status and envelope code.
func lookupStatus(kind resolve.Kind) (int, int) {
	switch kind {
	case resolve.KindInvalidFormat:
		return http.StatusBadRequest, mod.ResponseCodeInvalidParams
	case resolve.KindNotFound:
		return http.StatusNotFound, mod.ResponseCodeNotFound
	case resolve.KindRateLimited:
		return http.StatusTooManyRequests, mod.ResponseCodeRateLimited
	case resolve.KindNetworkUnavailable:
		return http.StatusServiceUnavailable, mod.ResponseCodeNetworkUnavailable
	case resolve.KindUpstreamError:
		return http.StatusBadGateway, mod.ResponseCodeUpstreamError
	}
	return http.StatusInternalServerError, mod.ResponseCodeFailure
}

func (h *Handler) binQuery(c *gin.Context) {
	record, err := h.resolver.Check(c.Request.Context(), c.Param("bin"))
	if err != nil {
		var lookupErr *resolve.LookupError
		if !errors.As(err, &lookupErr) {
			lookupErr = &resolve.LookupError{Cause: err}
		}
		status, code := lookupStatus(lookupErr.Kind)
		fail(c, status, code, lookupErr.Error())
		return
	}

	if err = h.publisher.PublishBinChecked(c.Request.Context(), event.NewBinChecked(record)); err != nil {
		logger.WithError(err).WithField("bin", record.Bin).Warn("bin.checked not published")
	}
	succeed(c, record)
}

func (h *Handler) binCached(c *gin.Context) {
	bin := c.Param("bin")
	if err := resolve.ValidateBin(bin); err != nil {
		fail(c, http.StatusBadRequest, mod.ResponseCodeInvalidParams, err.Error())
		return
	}
	record, err := h.resolver.LookupCached(c.Request.Context(), bin)
	if err != nil {
		logger.WithError(err).Error("cached lookup failed")
		fail(c, http.StatusInternalServerError, mod.ResponseCodeFailure, "history unavailable")
		return
	}
	if record == nil {
		fail(c, http.StatusNotFound, mod.ResponseCodeNotFound, "BIN not in history")
		return
	}
	succeed(c, record)
}
