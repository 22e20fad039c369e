package logger

import "time"

// Field is one structured key/value pair.
type Field struct {
	Key   string
	Value any
}

// Field constructors.
func String(key, val string) Field          { return Field{Key: key, Value: val} }
func Int(key string, val int) Field         { return Field{Key: key, Value: val} }
func Float64(key string, val float64) Field { return Field{Key: key, Value: val} }
func Bool(key string, val bool) Field       { return Field{Key: key, Value: val} }
func Any(key string, val any) Field         { return Field{Key: key, Value: val} }
func Error(err error) Field                 { return Field{Key: "error", Value: err} }

// Duration logs d in milliseconds.
func Duration(key string, d time.Duration) Field {
	return Field{Key: key, Value: float64(d.Microseconds()) / 1000}
}

// Keys shared across packages so log lines can be joined.
func EventID(id int) Field       { return Int("event_id", id) }
func RunID(id string) Field      { return String("run_id", id) }
func Strategy(name string) Field { return String("strategy", name) }
