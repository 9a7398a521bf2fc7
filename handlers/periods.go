package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"callreport-api/ffiec"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handler) GetReportingPeriods(c *gin.Context) {
	periods, err := h.service.ReportingPeriods(c.Request.Context(), credentials(c))
	if err != nil {
		_ = c.Error(err)
		if errors.Is(err, ffiec.ErrMissingCredentials) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
			return
		}
		h.logger.Error("failed to list reporting periods", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reporting_periods": periods})
}

func (h *Handler) GetLookups(c *gin.Context) {
	if h.lookups == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "lookup journal is disabled"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	status := c.Query("status")

	lookups, err := h.lookups.Recent(c.Request.Context(), limit, status)
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
		return
	}

	c.JSON(http.StatusOK, lookups)
}
