package csvio

import (
	"fmt"
	"strconv"
	"strings"
)

// NormalizeDate canonicalizes an imported date to "YYYY-MM-DD".
// Spreadsheet exports arrive either slash- or dash-separated and often
// without zero padding ("2024/3/5"); storage and exports always use the
// padded dash form.
func NormalizeDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	sep := "-"
	if strings.Contains(s, "/") {
		sep = "/"
	}
	parts := strings.Split(s, sep)
	if len(parts) != 3 {
		return "", fmt.Errorf("invalid date %q", s)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil || year < 1000 || year > 9999 {
		return "", fmt.Errorf("invalid year in date %q", s)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return "", fmt.Errorf("invalid month in date %q", s)
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil || day < 1 || day > 31 {
		return "", fmt.Errorf("invalid day in date %q", s)
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), nil
}
