package helpers

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// DateLayout is the wire format of calendar dates (date of birth,
// experience start and end).
const DateLayout = "2006-01-02"

// ParseDuration parses a configured duration such as a token lifetime, the
// rate limit window or the dashboard cache TTL. Unparsable and non-positive
// values fall back to defaultDuration.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		// Runs during bootstrap, possibly before the logger is configured.
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	if duration <= 0 {
		log.Warn().Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Duration must be positive, using default")
		return defaultDuration
	}
	return duration
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// ParseOptionalDate parses a nullable YYYY-MM-DD date.
func ParseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
