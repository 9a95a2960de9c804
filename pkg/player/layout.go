package player

import (
	"github.com/go-drift/videooverlay/pkg/graphics"
	"github.com/go-drift/videooverlay/pkg/log"
	"github.com/go-drift/videooverlay/pkg/platform"
)

// DimensionsChanged recomputes the player geometry and patches the host
// surface after a rotation or resize.
func (c *Controller) DimensionsChanged(window graphics.Size) {
	if !c.alive() {
		return
	}
	host := c.svc.Host

	if window.IsPortrait() {
		c.update(func(s *State) {
			s.Screen = window
			s.PlayerSize = graphics.Size{Width: window.Width, Height: c.cfg.Height}
		})
		host.SetScrollEnabled(true)
		host.SetStyle(c.defaultHostStyle())
	} else {
		width := window.Width
		if c.svc.Device.HasNotch() {
			width -= NotchInset
		}
		c.update(func(s *State) {
			s.Screen = window
			s.PlayerSize = graphics.Size{Width: width, Height: window.Height}
		})
		host.SetScrollEnabled(false)
		host.ScrollTo(0, 0)
		host.SetStyle(platform.HostStyle{
			Background: graphics.ColorBlack,
			Padding:    c.defaultHostStyle().Padding.WithVertical(0),
		})
	}

	c.logger.Debug().
		Float64(log.FieldWidth, c.state.PlayerSize.Width).
		Float64(log.FieldHeight, c.state.PlayerSize.Height).
		Bool("portrait", window.IsPortrait()).
		Msg("layout updated")
}

// defaultHostStyle is the portrait host style. The padding compensation only
// applies on Android.
func (c *Controller) defaultHostStyle() platform.HostStyle {
	style := platform.HostStyle{Background: c.cfg.HostBackground}
	if c.svc.Device.Family() == platform.FamilyAndroid {
		style.Padding.Top = c.cfg.PlatformPaddingCompensation
	}
	return style
}
