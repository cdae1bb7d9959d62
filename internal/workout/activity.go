// Package workout holds the activity vocabulary and duration encoding shared
// by the API server and the terminal client.
package workout

import "strings"

type ActivityType string

const (
	Running        ActivityType = "Running"
	Walking        ActivityType = "Walking"
	Cycling        ActivityType = "Cycling"
	Swimming       ActivityType = "Swimming"
	WeightTraining ActivityType = "Weight Training"
	Yoga           ActivityType = "Yoga"
	HIIT           ActivityType = "HIIT"
	Other          ActivityType = "Other"
)

// ActivityTypes lists the selectable activity types in display order.
var ActivityTypes = []ActivityType{
	Running,
	Walking,
	Cycling,
	Swimming,
	WeightTraining,
	Yoga,
	HIIT,
	Other,
}

// ParseActivityType matches value against the enumeration, ignoring case and
// surrounding whitespace.
func ParseActivityType(value string) (ActivityType, bool) {
	trimmed := strings.TrimSpace(value)
	for _, activityType := range ActivityTypes {
		if strings.EqualFold(string(activityType), trimmed) {
			return activityType, true
		}
	}
	return "", false
}

// Valid reports whether a is exactly one of the enumerated values.
func (a ActivityType) Valid() bool {
	for _, activityType := range ActivityTypes {
		if a == activityType {
			return true
		}
	}
	return false
}

func ActivityTypeNames() []string {
	names := make([]string, 0, len(ActivityTypes))
	for _, activityType := range ActivityTypes {
		names = append(names, string(activityType))
	}
	return names
}
