package models

import "github.com/shopspring/decimal"

// Data types reported by the CDR for a single MDRM value.
const (
	DataTypeInt    = "int"
	DataTypeFloat  = "float"
	DataTypeBool   = "bool"
	DataTypeString = "str"
)

// TimeSeriesRecord is one MDRM value from a filer's call report. Exactly one
// of the typed data fields is set, as named by DataType.
type TimeSeriesRecord struct {
	MDRM            string           `json:"mdrm"`
	RSSD            string           `json:"rssd"`
	Quarter         string           `json:"quarter"`
	DataType        string           `json:"data_type"`
	IntData         *int64           `json:"int_data,omitempty"`
	FloatData       *decimal.Decimal `json:"float_data,omitempty"`
	BoolData        *bool            `json:"bool_data,omitempty"`
	StrData         *string          `json:"str_data,omitempty"`
	ShortDefinition string           `json:"short_definition,omitempty"`
	Schedule        string           `json:"schedule,omitempty"`
	LineNumber      string           `json:"line_number,omitempty"`
}

// Value returns whichever typed field is populated, or nil.
func (r TimeSeriesRecord) Value() any {
	switch {
	case r.IntData != nil:
		return *r.IntData
	case r.FloatData != nil:
		return *r.FloatData
	case r.BoolData != nil:
		return *r.BoolData
	case r.StrData != nil:
		return *r.StrData
	}
	return nil
}
