package logging

// Common structured log field keys to keep logs searchable/consistent.
const (
	FieldService    = "service"
	FieldVersion    = "version"
	FieldProvider   = "provider"
	FieldRequestID  = "request_id"
	FieldPath       = "path"
	FieldMethod     = "method"
	FieldStatusCode = "status_code"
	FieldGamePk     = "game_pk"
	FieldPhase      = "phase"
	FieldPlayIndex  = "play_index"
	FieldEventID    = "event_id"
	FieldDate       = "date"
	FieldCount      = "count"
	FieldDelay      = "delay"
	FieldDurationMS = "duration_ms"
)
