package logger

import (
	"strings"

	"go.uber.org/zap"
)

// Structured field keys shared by the engine, filters and reports.
const (
	FieldEntityID   = "entity_id"
	FieldPositionID = "position_id"
	FieldOverall    = "overall"
	FieldFilter     = "filter"
	FieldRunID      = "run_id"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		value := strings.TrimSpace(field.Value)
		if key == "" || value == "" {
			continue
		}
		result = append(result, zap.String(key, value))
	}
	return result
}

// WithFields attaches fields to l, defaulting to a no-op logger when l is nil.
func WithFields(l *zap.Logger, fields ...zap.Field) *zap.Logger {
	if l == nil {
		l = zap.NewNop()
	}
	if len(fields) == 0 {
		return l
	}
	return l.With(fields...)
}

// MatchFields identifies one scored pair in a log entry.
func MatchFields(entityID, positionID string, overall float64) []zap.Field {
	fields := StringFields(
		StringField{Key: FieldEntityID, Value: entityID},
		StringField{Key: FieldPositionID, Value: positionID},
	)
	return append(fields, zap.Float64(FieldOverall, overall))
}
