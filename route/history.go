package route

import (
	"context"
	"io"
	"net/http"

	"git.thinkinpower.net/bincheck/bdata"
	"git.thinkinpower.net/bincheck/mod"
	"github.com/gin-gonic/gin"
	logger "github.com/sirupsen/logrus"
)

func (h *Handler) collect(c *gin.Context) ([]mod.BinRecord, error) {
	records := make([]mod.BinRecord, 0)
	for record, err := range h.resolver.ListAll(c.Request.Context()) {
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func (h *Handler) historyList(c *gin.Context) {
	var (
		records []mod.BinRecord
		err     error
	)
	if q := c.Query("q"); q != "" {
		records, err = h.resolver.Search(c.Request.Context(), q)
	} else {
		records, err = h.collect(c)
	}
	if err != nil {
		logger.WithError(err).Error("history read failed")
		fail(c, http.StatusInternalServerError, mod.ResponseCodeFailure, "history unavailable")
		return
	}
	succeed(c, records)
}

func (h *Handler) historyClear(c *gin.Context) {
	if err := h.resolver.ClearAll(c.Request.Context()); err != nil {
		logger.WithError(err).Error("history clear failed")
		fail(c, http.StatusInternalServerError, mod.ResponseCodeFailure, "history not cleared")
		return
	}
	c.JSON(http.StatusOK, mod.ResponseValue{Code: mod.ResponseCodeSuccess, Msg: mod.MsgSuccess})
}

// historyStream sends a "history" event with the whole list on connect and
// after every change, until the client goes away or the handler shuts down.
func (h *Handler) historyStream(c *gin.Context) {
	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()
	defer context.AfterFunc(h.closing, cancel)()

	updates, err := h.feed.Subscribe(ctx)
	if err != nil {
		logger.WithError(err).Error("history subscribe failed")
		fail(c, http.StatusInternalServerError, mod.ResponseCodeFailure, "history unavailable")
		return
	}
	c.Stream(func(w io.Writer) bool {
		records, ok := <-updates
		if !ok {
			return false
		}
		c.SSEvent("history", records)
		return true
	})
}

func (h *Handler) historyExport(c *gin.Context) {
	records, err := h.collect(c)
	if err != nil {
		logger.WithError(err).Error("history export failed")
		fail(c, http.StatusInternalServerError, mod.ResponseCodeFailure, "history unavailable")
		return
	}
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="bin_history.csv"`)
	c.Status(http.StatusOK)
	if err = bdata.WriteCSV(c.Writer, records); err != nil {
		logger.WithError(err).Warn("history export interrupted")
	}
}
