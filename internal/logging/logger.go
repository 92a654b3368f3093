// Package logging is Trailproof's structured logging collaborator: a
// JSON-line warning emitter over the standard log package, silenced by
// setting TRAILPROOF_LOG_LEVEL above "warn". The library surfaces
// exactly one warning site through it — a skipped corrupt line in a
// JSONL-backed store — per the specification's "external collaborator"
// scoping of the logging backend, so the package exposes only that one
// level rather than the teacher's full debug/info/warn/error/critical
// ladder.
package logging

import (
	"encoding/json"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

// Fields captures structured context for a warning entry.
type Fields struct {
	Component string `json:"component,omitempty"`
	Path      string `json:"path,omitempty"`
	Line      int    `json:"line"`
	Error     string `json:"error,omitempty"`
}

type entry struct {
	Timestamp string `json:"ts"`
	Level     string `json:"level"`
	Message   string `json:"msg"`
	Fields
}

var (
	suppressOnce sync.Once
	suppressed   bool
)

func init() {
	log.SetFlags(0)
}

// Warn emits a JSON-line warning unless TRAILPROOF_LOG_LEVEL names
// something above "warn" (error, critical, or off).
func Warn(msg string, fields Fields) {
	if warnSuppressed() {
		return
	}

	out := entry{
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Level:     "warn",
		Message:   msg,
		Fields:    fields,
	}
	payload, err := json.Marshal(out)
	if err != nil {
		log.Printf("{\"level\":\"error\",\"msg\":\"log_marshal_failed\",\"error\":%q}", err.Error())
		return
	}
	log.Print(string(payload))
}

func warnSuppressed() bool {
	suppressOnce.Do(func() {
		switch strings.ToLower(os.Getenv("TRAILPROOF_LOG_LEVEL")) {
		case "error", "critical", "off":
			suppressed = true
		}
	})
	return suppressed
}
