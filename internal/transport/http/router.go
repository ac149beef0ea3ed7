package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Gunvolt24/consumer_handler/internal/domain"
	"github.com/Gunvolt24/consumer_handler/internal/ports"
	"github.com/Gunvolt24/consumer_handler/internal/registry"
	"github.com/Gunvolt24/consumer_handler/pkg/httpx"
)

const (
	defaultLimit = 20
	maxLimit     = 100

	defaultTimeout = 2 * time.Second
)

// Handler — health и чтение журнала сообщений.
type Handler struct {
	consumers ports.ConsumerStatusReader
	journal   ports.MessageReadService // nil — эндпоинты журнала не регистрируются
	log       ports.Logger
	timeout   time.Duration
}

// NewHandler — timeout ограничивает запросы к журналу; <= 0 — 2s.
func NewHandler(consumers ports.ConsumerStatusReader, journal ports.MessageReadService, log ports.Logger, timeout time.Duration) *Handler {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Handler{consumers: consumers, journal: journal, log: log, timeout: timeout}
}

// NewRouter — otelServiceName != "" включает otelgin.
func NewRouter(h *Handler, otelServiceName string) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Recovery())
	if otelServiceName != "" {
		r.Use(otelgin.Middleware(otelServiceName))
	}
	r.Use(httpx.RequestIDMiddleware())
	r.Use(httpx.RequestLogger(h.log, "/metrics", "/ping", "/healthz"))

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/healthz", h.healthz)

	r.GET("/consumers", h.listConsumers)
	if h.journal != nil {
		r.GET("/consumers/:name/messages", h.listMessages)
		r.GET("/consumers/:name/messages/:id", h.getMessage)
	}

	r.NoRoute(func(c *gin.Context) { c.JSON(http.StatusNotFound, gin.H{"error": "not found"}) })
	r.NoMethod(func(c *gin.Context) { c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"}) })

	return r
}

type healthResponse struct {
	Status    string                  `json:"status"`
	Consumers []domain.ConsumerStatus `json:"consumers"`
}

// healthz — 503, как только хотя бы одному консьюмеру запрошена остановка:
// процесс скоро выйдет, трафик на него больше не нужен.
func (h *Handler) healthz(c *gin.Context) {
	statuses := h.consumers.ConsumerStatuses()

	code, status := http.StatusOK, "ok"
	for _, s := range statuses {
		if s.StopRequested {
			code, status = http.StatusServiceUnavailable, "stopping"
			break
		}
	}
	c.JSON(code, healthResponse{Status: status, Consumers: statuses})
}

func (h *Handler) listConsumers(c *gin.Context) {
	c.JSON(http.StatusOK, h.consumers.ConsumerStatuses())
}

func (h *Handler) getMessage(c *gin.Context) {
	name, id := registry.NormalizeName(c.Param("name")), c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	msg, err := h.journal.GetMessage(ctx, name, id)
	if err != nil {
		h.log.Errorf(ctx, "GetMessage failed consumer=%s id=%s err=%v", name, id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if msg == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
		return
	}
	c.JSON(http.StatusOK, msg)
}

func (h *Handler) listMessages(c *gin.Context) {
	name := registry.NormalizeName(c.Param("name"))
	page, err := httpx.ParsePage(c, defaultLimit, maxLimit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	msgs, err := h.journal.MessagesByConsumer(ctx, name, page.Limit, page.Offset)
	if err != nil {
		h.log.Errorf(ctx, "MessagesByConsumer failed consumer=%s err=%v", name, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, msgs)
}
