package ffiec

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"callreport-api/models"

	"cloud.google.com/go/civil"
)

type reporterJSON struct {
	IDRSSD                     json.Number `json:"ID_RSSD"`
	FDICCertNumber             json.Number `json:"FDICCertNumber"`
	OCCChartNumber             json.Number `json:"OCCChartNumber"`
	OTSDockNumber              json.Number `json:"OTSDockNumber"`
	PrimaryABARoutNumber       json.Number `json:"PrimaryABARoutNumber"`
	Name                       string      `json:"Name"`
	State                      string      `json:"State"`
	City                       string      `json:"City"`
	Address                    string      `json:"Address"`
	ZIP                        string      `json:"ZIP"`
	FilingType                 string      `json:"FilingType"`
	HasFiledForReportingPeriod bool        `json:"HasFiledForReportingPeriod"`
}

func (r reporterJSON) filer() models.Filer {
	return models.Filer{
		IDRSSD:         nonZero(r.IDRSSD),
		Name:           strings.TrimSpace(r.Name),
		State:          strings.TrimSpace(r.State),
		City:           strings.TrimSpace(r.City),
		Address:        strings.TrimSpace(r.Address),
		ZIP:            strings.TrimSpace(r.ZIP),
		FDICCertNumber: nonZero(r.FDICCertNumber),
		OCCChartNumber: nonZero(r.OCCChartNumber),
		OTSDockNumber:  nonZero(r.OTSDockNumber),
		PrimaryABARout: nonZero(r.PrimaryABARoutNumber),
		FilingType:     strings.TrimSpace(r.FilingType),
		HasFiled:       r.HasFiledForReportingPeriod,
	}
}

// nonZero drops the 0 the CDR uses for unassigned identifiers.
func nonZero(n json.Number) string {
	s := strings.TrimSpace(n.String())
	if s == "0" {
		return ""
	}
	return s
}

// ListFilers returns the panel of call report filers for period.
func (c *Client) ListFilers(ctx context.Context, creds Credentials, period civil.Date) ([]models.Filer, error) {
	var raw []reporterJSON
	err := c.get(ctx, creds, "/RetrievePanelOfReporters", map[string]string{
		"dataSeries":             SeriesCall,
		"reportingPeriodEndDate": FormatPeriod(period),
	}, &raw)
	if err != nil {
		return nil, fmt.Errorf("retrieve panel of reporters: %w", err)
	}

	filers := make([]models.Filer, 0, len(raw))
	for _, r := range raw {
		filers = append(filers, r.filer())
	}

	return filers, nil
}
