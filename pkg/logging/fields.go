package logging

import "time"

// Common field constructors.

func String(key, value string) Field { return Field{Key: key, Value: value} }

func Int(key string, value int) Field { return Field{Key: key, Value: value} }

func Float64(key string, value float64) Field { return Field{Key: key, Value: value} }

func Bool(key string, value bool) Field { return Field{Key: key, Value: value} }

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value.String()}
}

func Error(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Domain helpers.

func Component(name string) Field { return String("component", name) }

func Node(id string) Field { return String("node", id) }

func Kind(kind string) Field { return String("kind", kind) }

func BuildID(id string) Field { return String("build_id", id) }

func Nodes(n int) Field { return Int("nodes", n) }

func Edges(n int) Field { return Int("edges", n) }

func Paths(n int) Field { return Int("paths", n) }

func Severity(s float64) Field { return Float64("severity", s) }

func Latency(d time.Duration) Field { return Duration("latency", d) }
