package platform

// ImmersiveService toggles OS chrome suppression (Android immersive sticky
// mode; hides the home indicator on iOS).
type ImmersiveService struct {
	channel *MethodChannel
}

// Immersive is the process-wide immersive-mode service.
var Immersive = &ImmersiveService{channel: NewMethodChannel("videooverlay/immersive")}

// On hides the navigation and system bars.
func (s *ImmersiveService) On() {
	invokeAndReport(s.channel, "platform.Immersive.On", "setEnabled", map[string]any{"enabled": true})
}

// Off restores the navigation and system bars.
func (s *ImmersiveService) Off() {
	invokeAndReport(s.channel, "platform.Immersive.Off", "setEnabled", map[string]any{"enabled": false})
}
