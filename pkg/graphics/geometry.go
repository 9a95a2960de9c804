package graphics

// Offset represents a 2D point in logical pixels.
type Offset struct {
	X float64
	Y float64
}

// Size represents width and height dimensions in logical pixels.
type Size struct {
	Width  float64
	Height float64
}

// IsPortrait reports whether the size is taller than it is wide.
func (s Size) IsPortrait() bool {
	return s.Height > s.Width
}

// EdgeInsets holds padding on each side of a box.
type EdgeInsets struct {
	Top, Bottom, Left, Right float64
}

// WithVertical returns a copy with top and bottom replaced.
func (e EdgeInsets) WithVertical(v float64) EdgeInsets {
	e.Top = v
	e.Bottom = v
	return e
}
