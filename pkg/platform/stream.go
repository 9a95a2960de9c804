package platform

import "github.com/go-drift/videooverlay/pkg/errors"

// Stream provides a typed multi-subscriber view of an EventChannel.
// Each listener receives every parsed event independently.
type Stream[T any] struct {
	eventChannel *EventChannel
	parser       func(data any) (T, error)
}

// NewStream creates a Stream wrapping an EventChannel.
// The parser converts raw event data to the typed value.
func NewStream[T any](channel *EventChannel, parser func(data any) (T, error)) *Stream[T] {
	return &Stream[T]{
		eventChannel: channel,
		parser:       parser,
	}
}

// Listen subscribes to events and returns the subscription's cancel function.
// Parse and stream errors are reported via errors.Report.
func (s *Stream[T]) Listen(handler func(T)) (cancel func()) {
	name := s.eventChannel.Name()
	sub := s.eventChannel.Listen(EventHandler{
		OnEvent: func(data any) {
			val, err := s.parser(data)
			if err != nil {
				errors.Report(&errors.OverlayError{
					Op:      "stream.parse",
					Kind:    errors.KindParsing,
					Channel: name,
					Err:     err,
				})
				return
			}
			handler(val)
		},
		OnError: func(err error) {
			errors.Report(&errors.OverlayError{
				Op:      "stream.error",
				Kind:    errors.KindPlatform,
				Channel: name,
				Err:     err,
			})
		},
	})
	return sub.Cancel
}
