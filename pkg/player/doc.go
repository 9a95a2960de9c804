// Package player implements the playback UI state machine behind the video
// overlay.
//
// A [Controller] owns a single [State] and mutates it in response to decoder
// callbacks, OS notifications, timers and user input on the control surface.
// Collaborators (decoder, orientation lock, immersive mode, status bar, system
// volume, window dimensions, device capabilities, host surface and the timer
// scheduler) are injected through [Services]; [DefaultServices] wires them to
// the native bridge in package platform.
//
// The controller is owned by the UI thread. Every exported method must be
// called there, and every collaborator delivers its callbacks there.
//
//	c := player.New(cfg, player.DefaultServices(), player.WithOnChange(render))
//	if err := c.Mount(ctx); err != nil {
//	    return err
//	}
//	defer c.Unmount()
//
// Rendering is a pure function of state: see [BuildView].
package player
