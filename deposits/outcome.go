package deposits

import "callreport-api/models"

// Status is the terminal state of one lookup.
type Status string

const (
	StatusSuccess        Status = "success"
	StatusNoFilers       Status = "no_filers"
	StatusBankNotFound   Status = "bank_not_found"
	StatusNoRSSD         Status = "no_rssd"
	StatusNoData         Status = "no_data"
	StatusNoTimeSeries   Status = "no_timeseries"
	StatusNoDeposit      Status = "no_deposit"
	StatusInvalidRequest Status = "invalid_request"
	StatusUpstreamError  Status = "upstream_error"
)

// Outcome is what Lookup returns. Filer is set once a filer was resolved;
// Records only on success. Err is set for invalid_request and upstream_error.
type Outcome struct {
	Status  Status
	Message string
	Filer   *models.Filer
	Records []models.TimeSeriesRecord
	MDRM    string
	Err     error
}

// DataEmpty reports whether the lookup ended because upstream had nothing
// for the request, as opposed to a failure.
func (o Outcome) DataEmpty() bool {
	switch o.Status {
	case StatusNoFilers, StatusBankNotFound, StatusNoData, StatusNoTimeSeries, StatusNoDeposit:
		return true
	}
	return false
}
