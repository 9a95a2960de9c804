package platform

import (
	"sync"

	"github.com/go-drift/videooverlay/pkg/errors"
)

// MediaSource describes what the decoder should load.
type MediaSource struct {
	URI     string            `json:"uri" yaml:"uri" mapstructure:"uri"`
	Headers map[string]string `json:"headers,omitempty" yaml:"headers,omitempty" mapstructure:"headers"`
}

// BufferConfig holds the decoder buffering thresholds in milliseconds.
type BufferConfig struct {
	MinBufferMs                      int `json:"minBufferMs"`
	MaxBufferMs                      int `json:"maxBufferMs"`
	BufferForPlaybackMs              int `json:"bufferForPlaybackMs"`
	BufferForPlaybackAfterRebufferMs int `json:"bufferForPlaybackAfterRebufferMs"`
}

// DefaultBufferConfig is the fixed buffering policy handed to every decoder.
var DefaultBufferConfig = BufferConfig{
	MinBufferMs:                      15000,
	MaxBufferMs:                      50000,
	BufferForPlaybackMs:              2500,
	BufferForPlaybackAfterRebufferMs: 5000,
}

// DecoderEvents receives decoder callbacks on the UI thread.
type DecoderEvents interface {
	OnLoad(duration float64)
	OnProgress(currentTime, seekableDuration float64)
	OnBuffer(isBuffering bool)
	OnReadyForDisplay()
	OnEnd()
	OnError(err *DecodeError)
}

const (
	decoderChannelName       = "videooverlay/video_decoder"
	decoderEventsChannelName = "videooverlay/video_decoder/events"
)

// decoderRegistry routes native decoder events to live decoders by view ID.
type decoderRegistry struct {
	mu      sync.RWMutex
	views   map[int64]*VideoDecoder
	nextID  int64
	channel *MethodChannel
	events  *EventChannel
	sub     *Subscription
}

var decoders = &decoderRegistry{
	views:   make(map[int64]*VideoDecoder),
	channel: NewMethodChannel(decoderChannelName),
	events:  NewEventChannel(decoderEventsChannelName),
}

func (r *decoderRegistry) add(d *VideoDecoder) int64 {
	r.mu.Lock()
	r.nextID++
	id := r.nextID
	r.views[id] = d
	listen := r.sub == nil || r.sub.IsCanceled()
	r.mu.Unlock()

	if listen {
		sub := r.events.Listen(EventHandler{OnEvent: r.route})
		r.mu.Lock()
		r.sub = sub
		r.mu.Unlock()
	}
	return id
}

func (r *decoderRegistry) remove(id int64) {
	r.mu.Lock()
	delete(r.views, id)
	var sub *Subscription
	if len(r.views) == 0 {
		sub = r.sub
		r.sub = nil
	}
	r.mu.Unlock()
	if sub != nil {
		sub.Cancel()
	}
}

func (r *decoderRegistry) get(id int64) *VideoDecoder {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.views[id]
}

func (r *decoderRegistry) reset() {
	r.mu.Lock()
	r.views = make(map[int64]*VideoDecoder)
	r.nextID = 0
	r.sub = nil
	r.mu.Unlock()
}

// route parses a native decoder event and forwards it to the owning decoder.
func (r *decoderRegistry) route(data any) {
	m := asPayload(data)
	id, ok := m.id("viewId")
	if m == nil || !ok {
		errors.Report(&errors.OverlayError{
			Op:      "decoder.parseEvent",
			Kind:    errors.KindParsing,
			Channel: decoderEventsChannelName,
			Err:     &errors.ParseError{Channel: decoderEventsChannelName, DataType: "DecoderEvent", Got: data},
		})
		return
	}
	d := r.get(id)
	if d == nil {
		// Late event for a disposed decoder.
		return
	}
	d.handleEvent(m.text("event"), m)
}
