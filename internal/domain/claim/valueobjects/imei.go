package valueobjects

import (
	"fmt"
	"strings"
)

// IMEI is a 15-digit device identifier. Only the shape is checked, not
// the Luhn digit.
type IMEI string

func NewIMEI(s string) (IMEI, error) {
	s = strings.Join(strings.Fields(s), "")
	s = strings.ReplaceAll(s, "-", "")
	if len(s) != 15 {
		return "", fmt.Errorf("invalid IMEI: must be 15 digits, got %d characters", len(s))
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("invalid IMEI: must contain digits only")
		}
	}
	return IMEI(s), nil
}

func (i IMEI) String() string {
	return string(i)
}

// Masked hides all but the last four digits.
func (i IMEI) Masked() string {
	if len(i) < 4 {
		return string(i)
	}
	return strings.Repeat("*", len(i)-4) + string(i[len(i)-4:])
}
