// Package platform connects the overlay to the native host. Go calls native
// services (orientation lock, immersive mode, status bar, system volume, the
// video decoder surface) through method channels and receives asynchronous
// notifications (decoder events, volume and window changes) through event
// channels. Every external collaborator the player needs has a channel-backed
// implementation here.
package platform

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// MessageCodec encodes and decodes platform channel payloads.
type MessageCodec interface {
	Encode(value any) ([]byte, error)
	Decode(data []byte) (any, error)
}

// JSONCodec is the wire format shared with the native host. Numbers decode
// as json.Number so that view ids survive the round trip exactly.
type JSONCodec struct{}

// Encode serializes value as JSON.
func (JSONCodec) Encode(value any) ([]byte, error) {
	return json.Marshal(value)
}

// Decode parses a single JSON value. Empty input decodes to nil.
func (JSONCodec) Decode(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var result any
	if err := dec.Decode(&result); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("platform: trailing data after JSON value")
	}
	return result, nil
}

// DefaultCodec is the codec used by platform channels.
var DefaultCodec MessageCodec = JSONCodec{}

// Standard errors for platform channel operations.
var (
	// ErrChannelNotFound indicates the requested platform channel does not exist.
	ErrChannelNotFound = errors.New("platform channel not found")

	// ErrMethodNotFound indicates the method is not implemented on the native side.
	ErrMethodNotFound = errors.New("method not implemented")

	// ErrPlatformUnavailable indicates no native bridge is connected or the
	// feature is not available on this device.
	ErrPlatformUnavailable = errors.New("platform feature unavailable")

	// ErrDisposed is returned by commands on a disposed decoder.
	ErrDisposed = errors.New("platform: decoder disposed")
)

// ChannelError represents an error returned from native code.
type ChannelError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func (e *ChannelError) Error() string {
	if e.Message != "" {
		return e.Code + ": " + e.Message
	}
	return e.Code
}

// NewChannelError creates a new ChannelError with the given code and message.
func NewChannelError(code, message string) *ChannelError {
	return &ChannelError{Code: code, Message: message}
}
