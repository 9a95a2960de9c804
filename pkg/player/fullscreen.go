package player

// ToggleFullScreen enters or leaves fullscreen. Immersive mode, the status
// bar, the orientation lock and the absolute layout flag always move
// together. Leaving defers the portrait lock by ResetDelay.
func (c *Controller) ToggleFullScreen() {
	if !c.alive() || !c.cfg.FullscreenEnabled {
		return
	}
	c.stopTimer(&c.guards.orientation)

	if !c.state.FullScreen {
		c.svc.Immersive.On()
		c.svc.StatusBar.SetHidden(true)
		c.svc.Orientation.LockToLandscape()
		c.update(func(s *State) {
			s.FullScreen = true
			s.Absolute = true
		})
		return
	}

	c.svc.Immersive.Off()
	c.svc.StatusBar.SetHidden(false)
	c.update(func(s *State) {
		s.FullScreen = false
		s.Absolute = false
	})
	c.schedule(&c.guards.orientation, ResetDelay, c.svc.Orientation.LockToPortrait)
}
