package ffiec

import (
	"context"
	"fmt"
	"strings"
	"time"

	"callreport-api/models"

	"cloud.google.com/go/civil"
)

const periodLayout = "01/02/2006"

// ParsePeriod parses a reporting period in mm/dd/yyyy form. Single-digit
// months and days are accepted.
func ParsePeriod(s string) (civil.Date, error) {
	t, err := time.Parse("1/2/2006", strings.TrimSpace(s))
	if err != nil {
		return civil.Date{}, fmt.Errorf("reporting period %q: want mm/dd/yyyy", s)
	}
	return civil.DateOf(t), nil
}

// FormatPeriod renders d as mm/dd/yyyy.
func FormatPeriod(d civil.Date) string {
	return d.In(time.UTC).Format(periodLayout)
}

// ListReportingPeriods returns the call report periods the CDR has data for,
// in the order the CDR lists them.
func (c *Client) ListReportingPeriods(ctx context.Context, creds Credentials) ([]models.ReportingPeriod, error) {
	var raw []string
	err := c.get(ctx, creds, "/RetrieveReportingPeriods", map[string]string{
		"dataSeries": SeriesCall,
	}, &raw)
	if err != nil {
		return nil, fmt.Errorf("retrieve reporting periods: %w", err)
	}

	periods := make([]models.ReportingPeriod, 0, len(raw))
	for _, s := range raw {
		d, err := ParsePeriod(s)
		if err != nil {
			c.logger.Sugar().Warnf("skipping unparseable reporting period %q", s)
			continue
		}
		periods = append(periods, models.ReportingPeriod{Date: FormatPeriod(d)})
	}

	return periods, nil
}
