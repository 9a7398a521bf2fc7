package models

// Filer is an institution that submitted a call report for a period.
type Filer struct {
	IDRSSD         string `json:"id_rssd"`
	Name           string `json:"name"`
	State          string `json:"state"`
	City           string `json:"city,omitempty"`
	Address        string `json:"address,omitempty"`
	ZIP            string `json:"zip,omitempty"`
	FDICCertNumber string `json:"fdic_cert_number,omitempty"`
	OCCChartNumber string `json:"occ_chart_number,omitempty"`
	OTSDockNumber  string `json:"ots_dock_number,omitempty"`
	PrimaryABARout string `json:"primary_aba_rout_number,omitempty"`
	FilingType     string `json:"filing_type,omitempty"`
	HasFiled       bool   `json:"has_filed_for_reporting_period"`
}
