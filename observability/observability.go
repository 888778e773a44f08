package observability

import (
	"fmt"
	"io"
	"sort"
	"sync"
)

// Logger is the minimal structured logging contract used across the library.
// Implementations must be safe for concurrent use.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
}

type Field interface {
	Key() string
	Value() interface{}
}

type stringField struct{ key, val string }

func (f stringField) Key() string        { return f.key }
func (f stringField) Value() interface{} { return f.val }

type intField struct {
	key string
	val int
}

func (f intField) Key() string        { return f.key }
func (f intField) Value() interface{} { return f.val }

type int64Field struct {
	key string
	val int64
}

func (f int64Field) Key() string        { return f.key }
func (f int64Field) Value() interface{} { return f.val }

type errorField struct {
	key string
	err error
}

func (f errorField) Key() string        { return f.key }
func (f errorField) Value() interface{} { return f.err }

func String(key, value string) Field      { return stringField{key, value} }
func Int(key string, value int) Field     { return intField{key, value} }
func Int64(key string, value int64) Field { return int64Field{key, value} }
func Error(key string, err error) Field   { return errorField{key, err} }

type NopLogger struct{}

func (NopLogger) Debug(string, ...Field) {}
func (NopLogger) Info(string, ...Field)  {}
func (NopLogger) Warn(string, ...Field)  {}
func (NopLogger) Error(string, ...Field) {}
func (NopLogger) With(...Field) Logger   { return NopLogger{} }

// Level orders log severities for WriterLogger filtering.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	default:
		return "ERROR"
	}
}

// WriterLogger emits one line per event in "LEVEL msg key=value ..." form.
// The CLI surfaces install it over stderr; library code defaults to NopLogger
// so importers stay silent unless they opt in.
type WriterLogger struct {
	mu     sync.Mutex
	out    io.Writer
	bound  []Field
	MinLvl Level
}

// NewWriterLogger returns a logger writing to out at LevelInfo and above.
func NewWriterLogger(out io.Writer) *WriterLogger {
	return &WriterLogger{out: out, MinLvl: LevelInfo}
}

func (w *WriterLogger) log(lvl Level, msg string, fields []Field) {
	if lvl < w.MinLvl {
		return
	}
	all := make([]Field, 0, len(w.bound)+len(fields))
	all = append(all, w.bound...)
	all = append(all, fields...)
	sort.SliceStable(all, func(i, j int) bool { return all[i].Key() < all[j].Key() })
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintf(w.out, "%s %s", lvl, msg)
	for _, f := range all {
		fmt.Fprintf(w.out, " %s=%v", f.Key(), f.Value())
	}
	fmt.Fprintln(w.out)
}

func (w *WriterLogger) Debug(msg string, fields ...Field) { w.log(LevelDebug, msg, fields) }
func (w *WriterLogger) Info(msg string, fields ...Field)  { w.log(LevelInfo, msg, fields) }
func (w *WriterLogger) Warn(msg string, fields ...Field)  { w.log(LevelWarn, msg, fields) }
func (w *WriterLogger) Error(msg string, fields ...Field) { w.log(LevelError, msg, fields) }

func (w *WriterLogger) With(fields ...Field) Logger {
	bound := make([]Field, 0, len(w.bound)+len(fields))
	bound = append(bound, w.bound...)
	bound = append(bound, fields...)
	return &WriterLogger{out: w.out, bound: bound, MinLvl: w.MinLvl}
}

// Standard metric names emitted by the library.
const (
	MetricBatchDuration  = "ocr.batch.duration"
	MetricDocumentCount  = "ocr.documents.count"
	MetricFailureCount   = "ocr.failures.count"
	MetricPageCount      = "ocr.pages.count"
	MetricRasterDuration = "ocr.raster.duration"
	MetricRecognizeTime  = "ocr.recognize.duration"
)
