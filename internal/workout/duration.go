package workout

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidDuration = errors.New("invalid duration")

// EncodeMinutes renders a minute count in the HH:MM:SS interval encoding
// used by the posts table.
func EncodeMinutes(minutes int) string {
	return fmt.Sprintf("%02d:%02d:00", minutes/60, minutes%60)
}

// ParseMinutes reads the minutes typed into the new-post form.
func ParseMinutes(input string) (int, error) {
	minutes, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || minutes <= 0 {
		return 0, ErrInvalidDuration
	}
	return minutes, nil
}

// FormatDuration turns an interval such as "01:15:00" into "1 hr 15 min".
// Values that are not in HH:MM[:SS] form are returned unchanged.
func FormatDuration(duration string) string {
	hours, minutes, _, err := splitInterval(duration)
	if err != nil {
		return duration
	}
	if hours == 0 {
		return fmt.Sprintf("%d min", minutes)
	}
	return fmt.Sprintf("%d hr %d min", hours, minutes)
}

// IntervalMinutes converts an HH:MM:SS interval to whole minutes.
func IntervalMinutes(duration string) (int, error) {
	hours, minutes, _, err := splitInterval(duration)
	if err != nil {
		return 0, err
	}
	return hours*60 + minutes, nil
}

// ValidInterval reports whether duration is a positive HH:MM:SS interval.
func ValidInterval(duration string) bool {
	if strings.Count(duration, ":") != 2 {
		return false
	}
	hours, minutes, seconds, err := splitInterval(duration)
	if err != nil || minutes > 59 || seconds > 59 {
		return false
	}
	return hours+minutes+seconds > 0
}

func splitInterval(duration string) (int, int, int, error) {
	parts := strings.Split(strings.TrimSpace(duration), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, 0, 0, ErrInvalidDuration
	}

	values := make([]int, 3)
	for i, part := range parts {
		value, err := strconv.Atoi(part)
		if err != nil || value < 0 {
			return 0, 0, 0, ErrInvalidDuration
		}
		values[i] = value
	}
	return values[0], values[1], values[2], nil
}
