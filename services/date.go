package services

import (
	"fmt"
	"strings"
	"time"
)

// dateLayouts are tried in order: ISO first, then the local day/month/year
var dateLayouts = []string{"2006-01-02", "02/01/2006"}

// ParseDate parses a calendar date as UTC midnight. It accepts 2024-03-15 and 15/03/2024.
func ParseDate(dateStr string) (time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, dateStr); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or DD/MM/YYYY", dateStr)
}
