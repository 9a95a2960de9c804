package errors

import (
	"github.com/go-drift/videooverlay/pkg/log"
)

// LogHandler is an ErrorHandler that writes errors to the structured logger.
type LogHandler struct {
	// Verbose enables detailed output including stack traces.
	Verbose bool
}

// HandleError logs an OverlayError.
func (h *LogHandler) HandleError(err *OverlayError) {
	if err == nil {
		return
	}
	l := log.WithComponent("errors")
	ev := l.Error().
		Str(log.FieldOp, err.Op).
		Str(log.FieldKind, err.Kind.String()).
		Err(err.Err)
	if err.Channel != "" {
		ev = ev.Str(log.FieldChannel, err.Channel)
	}
	if h.Verbose && err.StackTrace != "" {
		ev = ev.Str("stack", err.StackTrace)
	}
	ev.Msg("overlay error")
}

// HandlePanic logs a PanicError.
func (h *LogHandler) HandlePanic(err *PanicError) {
	if err == nil {
		return
	}
	l := log.WithComponent("errors")
	ev := l.Error().Interface("value", err.Value)
	if err.Op != "" {
		ev = ev.Str(log.FieldOp, err.Op)
	}
	if h.Verbose && err.StackTrace != "" {
		ev = ev.Str("stack", err.StackTrace)
	}
	ev.Msg("overlay panic")
}
