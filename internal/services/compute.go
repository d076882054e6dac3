package services

import (
	"fmt"
	"math"
	"strings"
	"time"
)

var clockLayouts = []string{"15:04", "15:04:05"}

// ClassDuration returns end-start in hours for same-day wall-clock times.
func ClassDuration(start, end string) (float64, error) {
	from, err := parseClock(start)
	if err != nil {
		return 0, err
	}
	to, err := parseClock(end)
	if err != nil {
		return 0, err
	}
	if !to.After(from) {
		return 0, Validation(fmt.Sprintf("end time %s must be after start time %s", end, start))
	}
	return to.Sub(from).Hours(), nil
}

// normalizeClock validates a wall-clock time and returns it zero-padded, so
// stored start and end times sort as text.
func normalizeClock(value string) (string, error) {
	t, err := parseClock(value)
	if err != nil {
		return "", err
	}
	if t.Second() != 0 {
		return t.Format("15:04:05"), nil
	}
	return t.Format("15:04"), nil
}

func parseClock(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, Validation(fmt.Sprintf("invalid clock time %q", value))
}

// GradePercentage returns score/max*100. A zero, negative or non-finite
// maximum is rejected.
func GradePercentage(score, max float64) (float64, error) {
	if math.IsNaN(max) || math.IsInf(max, 0) || max <= 0 {
		return 0, Validation("invalid evaluation maximum")
	}
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0, Validation("invalid evaluation score")
	}
	return score / max * 100, nil
}

func parseDate(value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, Validation(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", value))
	}
	return t, nil
}

// normalizeDate validates a YYYY-MM-DD date and returns it trimmed.
func normalizeDate(value string) (string, error) {
	t, err := parseDate(value)
	if err != nil {
		return "", err
	}
	return t.Format("2006-01-02"), nil
}
