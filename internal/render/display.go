package render

import (
	"fmt"
	"time"
)

// DepthColors maps hypocenter depth to (stroke, fill) marker colors:
// shallow quakes red, intermediate orange, deep blue.
func DepthColors(depthKm float64) (string, string) {
	switch {
	case depthKm < 70:
		return "#dc2626", "#ef4444"
	case depthKm < 300:
		return "#ea580c", "#f97316"
	default:
		return "#2563eb", "#3b82f6"
	}
}

// MagRadius maps magnitude to a circle marker radius in pixels.
func MagRadius(mag float64) int {
	r := int(mag * 3)
	if r < 4 {
		return 4
	}
	return r
}

// FormatTime renders a timestamp for the table, minute precision.
func FormatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04")
}

// FormatTimeRelative renders a coarse relative timestamp ("3d ago").
func FormatTimeRelative(t time.Time) string {
	delta := time.Since(t)
	if delta < 0 {
		delta = 0
	}

	days := int(delta.Hours() / 24)
	switch {
	case days > 365:
		return fmt.Sprintf("%dy ago", days/365)
	case days > 30:
		return fmt.Sprintf("%dmo ago", days/30)
	case days > 0:
		return fmt.Sprintf("%dd ago", days)
	case delta >= time.Hour:
		return fmt.Sprintf("%dh ago", int(delta.Hours()))
	default:
		return fmt.Sprintf("%dm ago", int(delta.Minutes()))
	}
}
