// Package screens holds the terminal client's views. Each screen keeps its
// own display state, issues single request/response calls through the
// backend client and renders itself as plain text.
package screens

import (
	"math"
	"strconv"
	"strings"

	"github.com/ogc16/FitnessApp/internal/navigation"
)

type Navigator interface {
	Replace(route navigation.Route)
	Back() bool
}

func buttonLabel(loading bool, idle, busy string) string {
	if loading {
		return busy
	}
	return idle
}

// optionalFloat returns nil for blank, unparseable or non-finite input.
func optionalFloat(value string) *float64 {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return nil
	}
	return &parsed
}

func optionalInt(value string) *int {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return nil
	}
	return &parsed
}

func optionalString(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// authorName is the local part of an email address.
func authorName(email string) string {
	name, _, _ := strings.Cut(email, "@")
	return name
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func formatKM(distance float64) string {
	return formatNumber(distance) + " km"
}
