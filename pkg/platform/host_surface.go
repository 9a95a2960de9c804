package platform

import "github.com/go-drift/videooverlay/pkg/graphics"

// HostStyle is the subset of the host container style the player patches.
type HostStyle struct {
	Background graphics.Color
	Padding    graphics.EdgeInsets
}

// HostSurfaceService patches the scroll view and container hosting the
// player without re-rendering them.
type HostSurfaceService struct {
	channel *MethodChannel
}

// HostSurface is the process-wide host surface service.
var HostSurface = &HostSurfaceService{channel: NewMethodChannel("videooverlay/host_surface")}

// SetScrollEnabled enables or disables scrolling of the host scroll view.
func (s *HostSurfaceService) SetScrollEnabled(enabled bool) {
	invokeAndReport(s.channel, "platform.HostSurface.SetScrollEnabled", "setScrollEnabled", map[string]any{"enabled": enabled})
}

// ScrollTo scrolls the host scroll view to the given offset without animation.
func (s *HostSurfaceService) ScrollTo(x, y float64) {
	invokeAndReport(s.channel, "platform.HostSurface.ScrollTo", "scrollTo", map[string]any{"x": x, "y": y, "animated": false})
}

// SetStyle patches the host container background and padding.
func (s *HostSurfaceService) SetStyle(style HostStyle) {
	invokeAndReport(s.channel, "platform.HostSurface.SetStyle", "setStyle", map[string]any{
		"backgroundColor": uint32(style.Background),
		"paddingTop":      style.Padding.Top,
		"paddingBottom":   style.Padding.Bottom,
		"paddingLeft":     style.Padding.Left,
		"paddingRight":    style.Padding.Right,
	})
}
