package handlers

import (
	"context"
	"net/http"

	"callreport-api/config"
	"callreport-api/deposits"
	"callreport-api/ffiec"
	"callreport-api/logging"
	"callreport-api/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DepositService interface {
	Lookup(ctx context.Context, q deposits.Query) deposits.Outcome
	ReportingPeriods(ctx context.Context, creds ffiec.Credentials) ([]models.ReportingPeriod, error)
}

type LookupStore interface {
	Recent(ctx context.Context, limit int, status string) ([]models.Lookup, error)
}

type Handler struct {
	service DepositService
	lookups LookupStore
	style   string
	logger  *zap.Logger
}

// New creates a Handler. lookups may be nil, which disables /api/lookups.
func New(service DepositService, lookups LookupStore, style string, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		lookups: lookups,
		style:   style,
		logger:  logger,
	}
}

// Router wires every route onto a fresh gin engine.
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(logging.RequestID(), logging.Middleware(h.logger), gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/bank_deposit", h.GetDeposit)
	r.GET("/reporting_periods", h.GetReportingPeriods)

	api := r.Group("/api")
	{
		api.GET("/lookups", h.GetLookups)
	}

	return r
}

func credentials(c *gin.Context) ffiec.Credentials {
	return ffiec.Credentials{
		Username: c.Query("user"),
		Token:    c.Query("token"),
	}
}

func (h *Handler) statusStyle() bool {
	return h.style == config.StyleStatus
}
