// SPDX-License-Identifier: MIT

package xmltv

import (
	"fmt"
	"strings"
	"time"
)

// TimeLayout is the XMLTV timestamp format: YYYYMMDDHHMMSS +ZZZZ.
const TimeLayout = "20060102150405 -0700"

// FormatTime renders t in XMLTV form.
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}

// ParseTime parses an XMLTV timestamp. Some feeds omit the offset;
// those are taken as UTC.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	if t, err := time.Parse(TimeLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("20060102150405", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}
