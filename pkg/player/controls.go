package player

// TapSurface toggles the controls. Taps inside TapGuardWindow of the last
// accepted tap are ignored.
func (c *Controller) TapSurface() {
	if !c.alive() || c.guards.tap != nil {
		return
	}
	c.schedule(&c.guards.tap, TapGuardWindow, func() {})

	visible := !c.state.ControlsVisible
	c.update(func(s *State) { s.ControlsVisible = visible })
	if visible {
		c.armHide()
	} else {
		c.stopTimer(&c.guards.hide)
	}
}

// ControlsTouchStarted keeps the controls open while a finger is down.
func (c *Controller) ControlsTouchStarted() {
	if !c.alive() {
		return
	}
	c.stopTimer(&c.guards.hide)
}

// ControlsTouchEnded restarts the inactivity countdown.
func (c *Controller) ControlsTouchEnded() {
	if !c.alive() || !c.state.ControlsVisible {
		return
	}
	c.armHide()
}

// armHide replaces any pending hide timer.
func (c *Controller) armHide() {
	c.schedule(&c.guards.hide, AutoHideDelay, func() {
		if c.state.SeekBarBusy {
			return
		}
		c.update(func(s *State) { s.ControlsVisible = false })
	})
}
