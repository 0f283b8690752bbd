package nasch

import "image/color"

// Palette returns the render palette for the tagged cell values: index 0
// is the empty-cell color, index v+1 the color for velocity v.
func (s *Simulator) Palette() []color.RGBA {
	return VelocityPalette(s.cfg.MaxVelocity)
}

// VelocityPalette maps velocities onto a red-yellow-green ramp over
// v/vmax, with empty road drawn black. Jams show up as dark red bands on
// the space-time diagram, free flow as green diagonals.
func VelocityPalette(maxVelocity int) []color.RGBA {
	palette := make([]color.RGBA, maxVelocity+2)
	palette[0] = color.RGBA{A: 255}
	for v := 0; v <= maxVelocity; v++ {
		palette[v+1] = velocityColor(v, maxVelocity)
	}
	return palette
}

func velocityColor(v, maxVelocity int) color.RGBA {
	if maxVelocity <= 0 {
		return color.RGBA{R: 255, A: 255}
	}
	t := float64(v) / float64(maxVelocity)
	if t <= 0.5 {
		return color.RGBA{R: 255, G: uint8(510*t + 0.5), A: 255}
	}
	return color.RGBA{R: uint8(510*(1-t) + 0.5), G: 255, A: 255}
}
