// Package preview renders a generated document inside a zoomable, sandboxed
// viewer page.
package preview

import (
	"math"
	"strconv"
	"strings"
)

// Zoom is a preview scale in tenths: 10 is 100%.
type Zoom int

const (
	MinZoom     Zoom = 2
	MaxZoom     Zoom = 30
	DefaultZoom Zoom = 10
)

func clamp(z Zoom) Zoom {
	switch {
	case z < MinZoom:
		return MinZoom
	case z > MaxZoom:
		return MaxZoom
	}
	return z
}

// In steps up by 0.1, stopping at 3.0.
func (z Zoom) In() Zoom { return clamp(z + 1) }

// Out steps down by 0.1, stopping at 0.2.
func (z Zoom) Out() Zoom { return clamp(z - 1) }

// Reset returns 1.0.
func (Zoom) Reset() Zoom { return DefaultZoom }

// Factor is the CSS scale factor.
func (z Zoom) Factor() float64 { return float64(z) / 10 }

// Percent is the scale as a whole percentage.
func (z Zoom) Percent() int { return int(z) * 10 }

// String formats the zoom as a query value, e.g. "1.1".
func (z Zoom) String() string {
	return strconv.FormatFloat(z.Factor(), 'f', 1, 64)
}

// ParseZoom reads a scale factor such as "1.25", rounds it to the nearest
// tenth and clamps it. Empty or invalid input gives 1.0.
func ParseZoom(s string) Zoom {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "x"))
	if s == "" {
		return DefaultZoom
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return DefaultZoom
	}
	return clamp(Zoom(math.Round(f * 10)))
}
