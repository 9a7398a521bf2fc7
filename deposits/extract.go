package deposits

import (
	"fmt"
	"strings"

	"callreport-api/models"
)

// MatchMode selects how MDRM codes are compared.
type MatchMode int

const (
	MatchFold MatchMode = iota
	MatchExact
)

// ParseMatchMode maps "fold" and "exact" to a MatchMode.
func ParseMatchMode(s string) (MatchMode, error) {
	switch s {
	case "fold", "":
		return MatchFold, nil
	case "exact":
		return MatchExact, nil
	}
	return MatchFold, fmt.Errorf("unknown match mode %q", s)
}

func (m MatchMode) equal(a, b string) bool {
	if m == MatchExact {
		return a == b
	}
	return strings.EqualFold(a, b)
}

// Extract returns the records whose MDRM equals code, in input order. The
// result is empty, never nil, when nothing matches.
func Extract(records []models.TimeSeriesRecord, code string, mode MatchMode) []models.TimeSeriesRecord {
	out := []models.TimeSeriesRecord{}
	for _, r := range records {
		if mode.equal(r.MDRM, code) {
			out = append(out, r)
		}
	}
	return out
}
