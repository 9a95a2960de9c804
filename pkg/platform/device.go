package platform

import (
	"runtime"
	"sync"

	"github.com/go-drift/videooverlay/pkg/errors"
)

// Family identifies the target platform family.
type Family string

const (
	FamilyAndroid Family = "android"
	FamilyIOS     Family = "ios"
	FamilyOther   Family = "other"
)

// FamilyFor maps a GOOS value to a platform family.
func FamilyFor(goos string) Family {
	switch goos {
	case "android":
		return FamilyAndroid
	case "ios":
		return FamilyIOS
	default:
		return FamilyOther
	}
}

// DeviceService answers device capability queries. Answers are fetched once
// and cached, so queries are cheap enough for layout code.
type DeviceService struct {
	channel *MethodChannel

	mu       sync.Mutex
	notch    bool
	notchSet bool
}

// Device is the process-wide device capability service.
var Device = &DeviceService{channel: NewMethodChannel("videooverlay/device")}

// HasNotch reports whether the display has a cutout. Unknown is treated as no notch.
func (s *DeviceService) HasNotch() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.notchSet {
		return s.notch
	}
	raw, err := s.channel.Invoke("hasNotch", nil)
	if err != nil {
		errors.Report(&errors.OverlayError{
			Op:      "platform.Device.HasNotch",
			Kind:    errors.KindPlatform,
			Channel: s.channel.Name(),
			Err:     err,
		})
		return false
	}
	s.notch = raw == true || raw == "true"
	s.notchSet = true
	return s.notch
}

// Family returns the platform family of the running binary.
func (s *DeviceService) Family() Family {
	return FamilyFor(runtime.GOOS)
}

func (s *DeviceService) reset() {
	s.mu.Lock()
	s.notch = false
	s.notchSet = false
	s.mu.Unlock()
}
