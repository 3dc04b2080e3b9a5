package humantime

import (
	"fmt"
	"time"
)

// accepted source timestamp layouts, most common first.
var layouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
}

func ordinalSuffix(day int) string {
	if day >= 11 && day <= 13 {
		return "th"
	}

	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

// Format renders an ISO-8601 timestamp string as a display string, such as
// "1st April 2021 - 9:30 PM UTC". The source wall-clock fields are rendered
// as-is and labeled UTC, any offset in the input is not converted. If the
// input can not be parsed, the input is returned unchanged.
func Format(s string) string {
	var parsed time.Time
	var parseErr error

	for _, layout := range layouts {
		parsed, parseErr = time.Parse(layout, s)
		if parseErr == nil {
			break
		}
	}

	if parseErr != nil {
		return s
	}

	return fmt.Sprintf(
		"%d%s %s %d - %s UTC",
		parsed.Day(),
		ordinalSuffix(parsed.Day()),
		parsed.Month().String(),
		parsed.Year(),
		parsed.Format("3:04 PM"),
	)
}
