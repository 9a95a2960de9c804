package platform

import (
	"sync"

	"github.com/go-drift/videooverlay/pkg/errors"
	"github.com/go-drift/videooverlay/pkg/graphics"
)

const windowEventsChannelName = "videooverlay/window/events"

// WindowService tracks the window dimensions reported on rotation and resize.
type WindowService struct {
	channel *MethodChannel
	events  *EventChannel

	mu       sync.RWMutex
	size     graphics.Size
	known    bool
	handlers map[int]func(graphics.Size)
	nextID   int
	sub      *Subscription
}

// Window is the process-wide window dimension service.
var Window = &WindowService{
	channel:  NewMethodChannel("videooverlay/window"),
	events:   NewEventChannel(windowEventsChannelName),
	handlers: make(map[int]func(graphics.Size)),
}

// Size returns the current window size, querying native when no change event
// has been seen yet.
func (s *WindowService) Size() graphics.Size {
	s.mu.RLock()
	size, known := s.size, s.known
	s.mu.RUnlock()
	if known {
		return size
	}

	raw, err := s.channel.Invoke("getSize", nil)
	if err != nil {
		errors.Report(&errors.OverlayError{
			Op:      "platform.Window.Size",
			Kind:    errors.KindPlatform,
			Channel: s.channel.Name(),
			Err:     err,
		})
		return graphics.Size{}
	}
	size, ok := parseSize(raw)
	if !ok {
		return graphics.Size{}
	}
	s.mu.Lock()
	s.size, s.known = size, true
	s.mu.Unlock()
	return size
}

// Listen registers a handler for dimension changes. Handlers run on the UI
// thread. Call the returned function to remove it.
func (s *WindowService) Listen(handler func(graphics.Size)) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.handlers[id] = handler
	listen := s.sub == nil
	s.mu.Unlock()

	if listen {
		sub := s.events.Listen(EventHandler{OnEvent: s.onEvent})
		s.mu.Lock()
		s.sub = sub
		s.mu.Unlock()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.handlers, id)
			var sub *Subscription
			if len(s.handlers) == 0 {
				sub = s.sub
				s.sub = nil
			}
			s.mu.Unlock()
			if sub != nil {
				sub.Cancel()
			}
		})
	}
}

func (s *WindowService) onEvent(data any) {
	size, ok := parseSize(data)
	if !ok {
		errors.Report(&errors.OverlayError{
			Op:      "window.parseEvent",
			Kind:    errors.KindParsing,
			Channel: windowEventsChannelName,
			Err:     &errors.ParseError{Channel: windowEventsChannelName, DataType: "Size", Got: data},
		})
		return
	}

	s.mu.Lock()
	s.size, s.known = size, true
	handlers := make([]func(graphics.Size), 0, len(s.handlers))
	for _, h := range s.handlers {
		handlers = append(handlers, h)
	}
	s.mu.Unlock()

	Dispatch(func() {
		for _, h := range handlers {
			h(size)
		}
	})
}

func (s *WindowService) reset() {
	s.mu.Lock()
	s.size = graphics.Size{}
	s.known = false
	s.handlers = make(map[int]func(graphics.Size))
	s.sub = nil
	s.mu.Unlock()
}

func parseSize(data any) (graphics.Size, bool) {
	m := asPayload(data)
	w, okW := m.num("width")
	h, okH := m.num("height")
	if !okW || !okH {
		return graphics.Size{}, false
	}
	return graphics.Size{Width: w, Height: h}, true
}
