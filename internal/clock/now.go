package clock

import (
	"fmt"
	"strings"
	"time"

	_ "time/tzdata"
)

// Layout is the local timestamp format persisted in the registros table.
const Layout = "2006-01-02 15:04:05"

var location = time.Local

var Now = func() time.Time {
	return time.Now()
}

func SetNow(now time.Time) {
	Now = func() time.Time {
		return now
	}
}

// SetLocation loads the IANA zone used for every stamped timestamp.
func SetLocation(name string) error {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return fmt.Errorf("clock.SetLocation(): %w", err)
	}
	location = loc
	return nil
}

func Location() *time.Location {
	return location
}

// Stamp returns the current local time formatted with Layout.
func Stamp() string {
	return Now().In(location).Format(Layout)
}

// accepted caller formats; the second and third are what an HTML datetime-local input sends
var inputLayouts = []string{
	Layout,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// Normalize parses a caller supplied timestamp and rewrites it in Layout.
func Normalize(value string) (string, error) {
	value = strings.TrimSpace(value)
	for _, layout := range inputLayouts {
		if t, err := time.ParseInLocation(layout, value, location); err == nil {
			return t.Format(Layout), nil
		}
	}
	return "", fmt.Errorf("unsupported timestamp %q, expected %s", value, Layout)
}
