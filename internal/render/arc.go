package render

import "math"

// DrawArc plots one point per whole degree in [startAngle, endAngle). The
// coordinates are truncated toward zero; callers order the angles.
func DrawArc(p Pixeler, xc, yc, radius, startAngle, endAngle int) {
	r := float64(radius)
	for angle := startAngle; angle < endAngle; angle++ {
		rad := float64(angle) * math.Pi / 180
		x := int(float64(xc) + r*math.Cos(rad))
		y := int(float64(yc) + r*math.Sin(rad))
		p.Pixel(x, y)
	}
}
