package platform

// OrientationService locks the screen orientation. Calls are fire-and-forget:
// no completion is consumed and failures are only reported.
type OrientationService struct {
	channel *MethodChannel
}

// Orientation is the process-wide orientation lock service.
var Orientation = &OrientationService{channel: NewMethodChannel("videooverlay/orientation")}

// LockToPortrait locks the screen to portrait.
func (s *OrientationService) LockToPortrait() {
	invokeAndReport(s.channel, "platform.Orientation.LockToPortrait", "lock", map[string]any{"orientation": "portrait"})
}

// LockToLandscape locks the screen to landscape.
func (s *OrientationService) LockToLandscape() {
	invokeAndReport(s.channel, "platform.Orientation.LockToLandscape", "lock", map[string]any{"orientation": "landscape"})
}

// Unlock releases any orientation lock.
func (s *OrientationService) Unlock() {
	invokeAndReport(s.channel, "platform.Orientation.Unlock", "unlock", nil)
}
