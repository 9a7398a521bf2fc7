package handlers

import (
	"net/http"
	"strconv"

	"callreport-api/deposits"
	"callreport-api/logging"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetDeposit(c *gin.Context) {
	q := deposits.Query{
		Credentials:     credentials(c),
		BankName:        c.Query("bank_name"),
		State:           c.Query("state"),
		ReportingPeriod: c.Query("reporting_period"),
		MDRM:            c.Query("mdrm"),
		RequestID:       c.GetString(logging.RequestIDKey),
	}
	debug, _ := strconv.ParseBool(c.DefaultQuery("debug", "false"))

	out := h.service.Lookup(c.Request.Context(), q)
	if out.Err != nil {
		_ = c.Error(out.Err)
	}

	code, body := h.render(out)
	if debug && body["detail"] == nil {
		body["debug"] = gin.H{
			"bank_name":        q.BankName,
			"state":            q.State,
			"reporting_period": q.ReportingPeriod,
			"mdrm":             out.MDRM,
			"request_id":       q.RequestID,
		}
	}

	c.JSON(code, body)
}

// render maps an outcome onto an HTTP status and body for the configured
// response style.
func (h *Handler) render(out deposits.Outcome) (int, gin.H) {
	switch out.Status {
	case deposits.StatusInvalidRequest:
		return http.StatusUnprocessableEntity, gin.H{"detail": out.Message}
	case deposits.StatusUpstreamError:
		return http.StatusInternalServerError, gin.H{"detail": out.Message}
	}

	if h.statusStyle() && out.Status != deposits.StatusSuccess {
		if out.DataEmpty() {
			return http.StatusNotFound, gin.H{"detail": out.Message}
		}
		return http.StatusInternalServerError, gin.H{"detail": out.Message}
	}

	body := gin.H{
		"status":         out.Status,
		"message":        out.Message,
		"selected_filer": nil,
		"deposit_data":   nil,
	}
	if out.Filer != nil {
		body["selected_filer"] = out.Filer
	}
	if out.Status == deposits.StatusSuccess {
		body["deposit_data"] = out.Records
	}

	return http.StatusOK, body
}
