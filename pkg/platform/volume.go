package platform

import (
	"context"
	"sync"

	"github.com/go-drift/videooverlay/pkg/errors"
)

const volumeEventsChannelName = "videooverlay/volume/events"

// VolumeService queries and observes the OS media volume (0.0 to 1.0).
type VolumeService struct {
	channel *MethodChannel
	stream  *Stream[float64]

	mu    sync.RWMutex
	last  float64
	known bool
}

// Volume is the process-wide system volume service.
var Volume = newVolumeService()

func newVolumeService() *VolumeService {
	s := &VolumeService{channel: NewMethodChannel("videooverlay/volume")}
	s.stream = NewStream(NewEventChannel(volumeEventsChannelName), parseVolume)
	return s
}

// Volume asks the OS for the current volume. The native call runs on its own
// goroutine; when ctx is done first, ctx.Err() is returned and the late
// answer is discarded.
func (s *VolumeService) Volume(ctx context.Context) (float64, error) {
	type result struct {
		v   float64
		err error
	}
	ch := make(chan result, 1)
	go func() {
		raw, err := s.channel.Invoke("getVolume", nil)
		if err != nil {
			ch <- result{err: err}
			return
		}
		v, err := parseVolume(raw)
		ch <- result{v: v, err: err}
	}()

	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case r := <-ch:
		if r.err == nil {
			s.remember(r.v)
		}
		return r.v, r.err
	}
}

// Last returns the most recently observed volume, if any.
func (s *VolumeService) Last() (float64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last, s.known
}

// Listen registers a handler for OS volume changes. The handler runs on the
// UI thread. Call the returned function to remove it.
func (s *VolumeService) Listen(handler func(volume float64)) (cancel func()) {
	return s.stream.Listen(func(v float64) {
		s.remember(v)
		Dispatch(func() { handler(v) })
	})
}

func (s *VolumeService) remember(v float64) {
	s.mu.Lock()
	s.last = v
	s.known = true
	s.mu.Unlock()
}

func (s *VolumeService) reset() {
	s.mu.Lock()
	s.last = 0
	s.known = false
	s.mu.Unlock()
}

// parseVolume accepts either a bare number or {"volume": number}.
func parseVolume(data any) (float64, error) {
	if v, ok := number(data); ok {
		return v, nil
	}
	if v, ok := asPayload(data).num("volume"); ok {
		return v, nil
	}
	return 0, &errors.ParseError{Channel: volumeEventsChannelName, DataType: "volume", Got: data}
}
