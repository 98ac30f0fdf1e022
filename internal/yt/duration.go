package yt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sosodev/duration"
)

// maxDuration bounds accepted durations well inside time.Duration's range.
const maxDuration = 100 * 365 * 24 * time.Hour

// ParseDuration converts an ISO-8601 duration such as "PT5M30S" to whole seconds,
// truncating any fraction. An empty input yields nil. Anything else that does not
// parse is a data-contract violation and is returned as an E_INVALID_DURATION error.
func ParseDuration(iso string) (*int64, error) {
	if iso == "" {
		return nil, nil
	}
	// The parser accepts designators with no component after them, such as "P" or "PT".
	if !strings.ContainsAny(iso, "0123456789") || strings.HasSuffix(iso, "P") || strings.HasSuffix(iso, "T") {
		return nil, invalidDuration(iso, errors.New("no duration component"))
	}
	d, err := duration.Parse(iso)
	if err != nil {
		return nil, invalidDuration(iso, err)
	}
	if d.Negative || approxSeconds(d) > maxDuration.Seconds() {
		return nil, invalidDuration(iso, errors.New("out of range"))
	}
	secs := int64(d.ToTimeDuration() / time.Second)
	if secs < 0 {
		return nil, invalidDuration(iso, errors.New("out of range"))
	}
	return &secs, nil
}

// approxSeconds sizes d in float space so overflow is caught before converting.
func approxSeconds(d *duration.Duration) float64 {
	const day = 24 * 60 * 60
	return d.Years*365.25*day +
		d.Months*30.5*day +
		d.Weeks*7*day +
		d.Days*day +
		d.Hours*60*60 +
		d.Minutes*60 +
		d.Seconds
}

func invalidDuration(iso string, err error) error {
	return wrapError(CodeInvalidDuration, false, fmt.Errorf("parse duration %q: %w", iso, err))
}
