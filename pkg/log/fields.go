package log

// Canonical field name constants for structured logging.
const (
	FieldComponent = "component"
	FieldInstance  = "instance"
	FieldEvent     = "event"
	FieldOp        = "op"
	FieldKind      = "kind"
	FieldChannel   = "channel"

	// State fields
	FieldOldState = "old_state"
	FieldNewState = "new_state"

	// Media fields
	FieldSource   = "source"
	FieldPosition = "position"
	FieldDuration = "duration"
	FieldVolume   = "volume"
	FieldCode     = "code"

	// Layout fields
	FieldWidth  = "width"
	FieldHeight = "height"
)
