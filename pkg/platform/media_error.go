package platform

// Canonical decoder error codes. Native implementations map platform-specific
// failures to these codes. The player treats all of them the same way.
const (
	// ErrCodeSourceError indicates the media source could not be loaded.
	// Covers network failures, invalid URLs, unsupported formats, and
	// container parsing errors.
	ErrCodeSourceError = "source_error"

	// ErrCodeDecoderError indicates the media could not be decoded or rendered.
	ErrCodeDecoderError = "decoder_error"

	// ErrCodePlaybackFailed indicates a general playback failure that
	// does not fit a more specific category.
	ErrCodePlaybackFailed = "playback_failed"
)

// DecodeError is the single error kind surfaced by the decoder boundary.
// Code is informational; it does not change how the failure is handled.
type DecodeError struct {
	Code    string
	Message string
}

func (e *DecodeError) Error() string {
	if e.Message == "" {
		return "decode error: " + e.Code
	}
	return "decode error: " + e.Code + ": " + e.Message
}
