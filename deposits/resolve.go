// Package deposits resolves a filing institution by name and extracts its
// call report metrics.
package deposits

import (
	"strings"

	"callreport-api/models"
)

// Resolve returns the first filer whose name contains bankName and, when
// state is non-empty, whose state contains state. Both comparisons ignore
// case. The second result is false when nothing matches.
func Resolve(filers []models.Filer, bankName, state string) (models.Filer, bool) {
	name := strings.ToLower(bankName)
	st := strings.ToLower(state)

	for _, f := range filers {
		if !strings.Contains(strings.ToLower(f.Name), name) {
			continue
		}
		if st != "" && !strings.Contains(strings.ToLower(f.State), st) {
			continue
		}
		return f, true
	}

	return models.Filer{}, false
}
