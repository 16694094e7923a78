package route

import (
	"context"
	"net/http"
	"time"

	"git.thinkinpower.net/bincheck/credential"
	"git.thinkinpower.net/bincheck/data"
	"git.thinkinpower.net/bincheck/event"
	"git.thinkinpower.net/bincheck/mod"
	"git.thinkinpower.net/bincheck/resolve"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HistoryFeed streams the full history on every change.
type HistoryFeed interface {
	Subscribe(ctx context.Context) (<-chan []mod.BinRecord, error)
}

type Handler struct {
	resolver    *resolve.Resolver
	feed        HistoryFeed
	credentials credential.Store
	publisher   event.Publisher

	// closing is cancelled by Shutdown and ends every open history stream.
	closing context.Context
	stop    context.CancelFunc
}

func NewHandler(resolver *resolve.Resolver, feed HistoryFeed, credentials credential.Store, publisher event.Publisher) *Handler {
	if publisher == nil {
		publisher = &event.EventProducerFallback{}
	}
	closing, stop := context.WithCancel(context.Background())
	return &Handler{
		resolver:    resolver,
		feed:        feed,
		credentials: credentials,
		publisher:   publisher,
		closing:     closing,
		stop:        stop,
	}
}

// Shutdown ends long-lived responses so http.Server.Shutdown can drain.
// Register it with http.Server.RegisterOnShutdown.
func (h *Handler) Shutdown() {
	h.stop()
}

func Register(r *gin.Engine, h *Handler) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	g := r.Group("/bincheck")
	{
		g.GET("/index", func(context *gin.Context) {
			context.String(http.StatusOK, "Hello bincheck, date: %s", time.Now().Format(data.DateTimePattern))
		})

		g.GET("/query/:bin", h.binQuery)
		g.GET("/cached/:bin", h.binCached)

		g.GET("/history", h.historyList)
		g.DELETE("/history", h.historyClear)
		g.GET("/history/stream", h.historyStream)
		g.GET("/history/export", h.historyExport)

		g.GET("/settings/apikey", h.apiKeyGet)
		g.PUT("/settings/apikey", h.apiKeyPut)
	}
}

func fail(c *gin.Context, status, code int, msg string) {
	c.JSON(status, mod.ResponseValue{Code: code, Msg: msg})
}

func succeed(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, mod.ResponseData{ResponseValue: mod.ResponseValue{Code: mod.ResponseCodeSuccess, Msg: mod.MsgSuccess}, Data: payload})
}
