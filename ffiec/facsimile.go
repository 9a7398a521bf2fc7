package ffiec

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"callreport-api/models"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// SDF column headers.
const (
	sdfCallDate   = "Call Date"
	sdfRSSD       = "Bank RSSD Identifier"
	sdfMDRM       = "MDRM #"
	sdfValue      = "Value"
	sdfDefinition = "Short Definition"
	sdfSchedule   = "Call Schedule"
	sdfLine       = "Line Number"
)

// ListTimeSeries fetches the call report facsimile for one institution and
// period, in SDF form, and returns one record per reported MDRM value.
func (c *Client) ListTimeSeries(ctx context.Context, creds Credentials, rssd string, period civil.Date) ([]models.TimeSeriesRecord, error) {
	body, err := c.do(ctx, creds, "/RetrieveFacsimile", map[string]string{
		"dataSeries":             SeriesCall,
		"reportingPeriodEndDate": FormatPeriod(period),
		"fiIdType":               "ID_RSSD",
		"fiId":                   rssd,
		"facsimileFormat":        "SDF",
	})
	if err != nil {
		return nil, fmt.Errorf("retrieve facsimile: %w", err)
	}

	sdf, err := decodeFacsimile(body)
	if err != nil {
		return nil, err
	}

	return ParseSDF(bytes.NewReader(sdf), period)
}

// decodeFacsimile unwraps the base64 payload, which the CDR sends either as a
// JSON string or raw.
func decodeFacsimile(body []byte) ([]byte, error) {
	payload := string(bytes.TrimSpace(body))
	var s string
	if err := json.Unmarshal(body, &s); err == nil {
		payload = s
	}
	if payload == "" {
		return nil, nil
	}

	out, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode facsimile: %w", err)
	}
	return out, nil
}

// ParseSDF reads a semicolon-delimited facsimile. Columns are located by
// header name and rows without an MDRM are skipped. A zero period leaves the
// quarter as the raw Call Date.
func ParseSDF(r io.Reader, period civil.Date) ([]models.TimeSeriesRecord, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []models.TimeSeriesRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read sdf header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	if _, ok := cols[sdfMDRM]; !ok {
		return nil, fmt.Errorf("sdf header missing %q column", sdfMDRM)
	}

	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	quarter := quarterOf(period)
	records := []models.TimeSeriesRecord{}
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read sdf row: %w", err)
		}

		mdrm := field(row, sdfMDRM)
		if mdrm == "" {
			continue
		}

		rec := models.TimeSeriesRecord{
			MDRM:            mdrm,
			RSSD:            field(row, sdfRSSD),
			Quarter:         quarter,
			ShortDefinition: field(row, sdfDefinition),
			Schedule:        field(row, sdfSchedule),
			LineNumber:      field(row, sdfLine),
		}
		if rec.Quarter == "" {
			rec.Quarter = field(row, sdfCallDate)
		}
		setValue(&rec, field(row, sdfValue))
		records = append(records, rec)
	}

	return records, nil
}

// setValue infers the data type of a raw SDF value.
func setValue(rec *models.TimeSeriesRecord, raw string) {
	switch strings.ToLower(raw) {
	case "true", "false":
		b := strings.EqualFold(raw, "true")
		rec.DataType = models.DataTypeBool
		rec.BoolData = &b
		return
	}

	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		rec.DataType = models.DataTypeInt
		rec.IntData = &n
		return
	}

	if d, err := decimal.NewFromString(raw); err == nil {
		rec.DataType = models.DataTypeFloat
		rec.FloatData = &d
		return
	}

	rec.DataType = models.DataTypeString
	rec.StrData = &raw
}

func quarterOf(d civil.Date) string {
	if d == (civil.Date{}) {
		return ""
	}
	return fmt.Sprintf("%d-Q%d", d.Year, (int(d.Month)-1)/3+1)
}
