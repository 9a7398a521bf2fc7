package models

import "time"

type ReportingPeriod struct {
	Date string `json:"date"`
}

// Lookup is one journaled /bank_deposit request. Credentials are never stored.
type Lookup struct {
	ID              string    `json:"id" gorm:"primaryKey"`
	RequestID       string    `json:"request_id" gorm:"index"`
	BankName        string    `json:"bank_name"`
	State           string    `json:"state"`
	ReportingPeriod string    `json:"reporting_period" gorm:"index"`
	MDRM            string    `json:"mdrm"`
	Status          string    `json:"status" gorm:"index"`
	Message         string    `json:"message"`
	FilerRSSD       string    `json:"filer_rssd"`
	FilerName       string    `json:"filer_name"`
	RecordCount     int       `json:"record_count"`
	DurationMs      int64     `json:"duration_ms"`
	CreatedAt       time.Time `json:"created_at" gorm:"index"`
}
