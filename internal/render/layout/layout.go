// Package layout carves a display into the regions the native pages draw in.
package layout

import "image"

// Bounds is the full surface rectangle.
func Bounds(width, height int) image.Rectangle {
	return Normalize(image.Rect(0, 0, width, height))
}

// Inset shrinks rect by paddingPx on all sides.
func Inset(rect image.Rectangle, paddingPx int) image.Rectangle {
	if paddingPx <= 0 {
		return rect
	}
	rect = Normalize(rect)
	if rect.Dx() < 2*paddingPx || rect.Dy() < 2*paddingPx {
		c := Center(rect, 0, 0)
		return image.Rectangle{Min: c.Min, Max: c.Min}
	}
	return image.Rect(rect.Min.X+paddingPx, rect.Min.Y+paddingPx, rect.Max.X-paddingPx, rect.Max.Y-paddingPx)
}

// Normalize ensures Min is <= Max on both axes.
func Normalize(rect image.Rectangle) image.Rectangle {
	if rect.Min.X > rect.Max.X {
		rect.Min.X, rect.Max.X = rect.Max.X, rect.Min.X
	}
	if rect.Min.Y > rect.Max.Y {
		rect.Min.Y, rect.Max.Y = rect.Max.Y, rect.Min.Y
	}
	return rect
}

// SplitHorizontal cuts topPx rows off the top of rect.
// topPx is clamped to [0, rect.Dy()].
func SplitHorizontal(rect image.Rectangle, topPx int) (top, bottom image.Rectangle) {
	rect = Normalize(rect)
	topPx = clamp(topPx, 0, rect.Dy())
	top = image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+topPx)
	bottom = image.Rect(rect.Min.X, rect.Min.Y+topPx, rect.Max.X, rect.Max.Y)
	return top, bottom
}

// SplitBottom cuts bottomPx rows off the bottom of rect.
func SplitBottom(rect image.Rectangle, bottomPx int) (top, bottom image.Rectangle) {
	rect = Normalize(rect)
	return SplitHorizontal(rect, rect.Dy()-clamp(bottomPx, 0, rect.Dy()))
}

// SplitVertical cuts leftPx columns off the left of rect.
// leftPx is clamped to [0, rect.Dx()].
func SplitVertical(rect image.Rectangle, leftPx int) (left, right image.Rectangle) {
	rect = Normalize(rect)
	leftPx = clamp(leftPx, 0, rect.Dx())
	left = image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+leftPx, rect.Max.Y)
	right = image.Rect(rect.Min.X+leftPx, rect.Min.Y, rect.Max.X, rect.Max.Y)
	return left, right
}

// Center places a w x h box in the middle of rect. The box may overflow rect;
// drawing clips it.
func Center(rect image.Rectangle, w, h int) image.Rectangle {
	rect = Normalize(rect)
	x := rect.Min.X + (rect.Dx()-w)/2
	y := rect.Min.Y + (rect.Dy()-h)/2
	return image.Rect(x, y, x+w, y+h)
}

// AlignRight places a w x h box against the right edge of rect, centred
// vertically.
func AlignRight(rect image.Rectangle, w, h int) image.Rectangle {
	rect = Normalize(rect)
	x := rect.Max.X - w
	y := rect.Min.Y + (rect.Dy()-h)/2
	return image.Rect(x, y, x+w, y+h)
}

// AlignLeft is the mirror of AlignRight.
func AlignLeft(rect image.Rectangle, w, h int) image.Rectangle {
	rect = Normalize(rect)
	y := rect.Min.Y + (rect.Dy()-h)/2
	return image.Rect(rect.Min.X, y, rect.Min.X+w, y+h)
}

// FitSquare returns the largest square centred in rect.
func FitSquare(rect image.Rectangle) image.Rectangle {
	rect = Normalize(rect)
	size := rect.Dx()
	if rect.Dy() < size {
		size = rect.Dy()
	}
	return Center(rect, size, size)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
