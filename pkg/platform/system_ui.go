package platform

import "github.com/go-drift/videooverlay/pkg/graphics"

// StatusBarStyle indicates the status bar icon color scheme.
type StatusBarStyle string

const (
	StatusBarStyleDefault StatusBarStyle = "default"
	StatusBarStyleLight   StatusBarStyle = "light"
	StatusBarStyleDark    StatusBarStyle = "dark"
)

// SystemUIStyle describes system bar and window styling.
type SystemUIStyle struct {
	StatusBarHidden bool
	StatusBarStyle  StatusBarStyle
	BackgroundColor *graphics.Color // Android only (no-op on iOS)
}

var systemUIChannel = NewMethodChannel("videooverlay/system_ui")

// SetSystemUI updates the system UI appearance.
func SetSystemUI(style SystemUIStyle) error {
	statusStyle := style.StatusBarStyle
	if statusStyle == "" {
		statusStyle = StatusBarStyleDefault
	}

	args := map[string]any{
		"statusBarHidden": style.StatusBarHidden,
		"statusBarStyle":  string(statusStyle),
	}
	if style.BackgroundColor != nil {
		args["backgroundColor"] = uint32(*style.BackgroundColor)
	}

	_, err := systemUIChannel.Invoke("setStyle", args)
	return err
}

// StatusBarService shows and hides the status bar.
type StatusBarService struct {
	// Style is applied along with visibility changes.
	Style StatusBarStyle
}

// StatusBar is the process-wide status bar service.
var StatusBar = &StatusBarService{Style: StatusBarStyleLight}

// SetHidden shows or hides the status bar. Failures are reported, not returned.
func (s *StatusBarService) SetHidden(hidden bool) {
	invokeAndReport(systemUIChannel, "platform.StatusBar.SetHidden", "setStyle", map[string]any{
		"statusBarHidden": hidden,
		"statusBarStyle":  string(s.Style),
	})
}
