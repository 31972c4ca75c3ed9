// Package debug gates verbose wire logging behind named categories.
//
// A category names one subsystem (requester, account, session, mcp,
// config); CHARAI_DEBUG selects which ones log, comma separated, with
// "all" as a catch-all. CHARAI_LOG_LEVEL picks the slog level, where
// TRACE sits below DEBUG and additionally unlocks Raw body dumps.
// Environment values win over config file values so a deployed binary
// can be made chatty without touching its config.
package debug

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// LevelTrace unlocks full request/response body output. It sits below
// slog.LevelDebug so ordinary debug logging does not drag bodies along.
const LevelTrace = slog.LevelDebug - 4

// Read-only after Init; Log and Enabled never mutate it.
var categories map[string]bool

func init() {
	categories = parseCategories(os.Getenv("CHARAI_DEBUG"))
}

// Init applies config-file values, keeping any environment overrides on
// top, and installs the process-wide slog handler at the chosen level.
func Init(configCategories, configLevel string) {
	cats := os.Getenv("CHARAI_DEBUG")
	if cats == "" {
		cats = configCategories
	}
	categories = parseCategories(cats)

	level := os.Getenv("CHARAI_LOG_LEVEL")
	if level == "" {
		level = configLevel
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})))
}

// Enabled reports whether the category logs.
func Enabled(category string) bool {
	return categories["all"] || categories[category]
}

// Log emits one debug line when the category is enabled. Disabled
// categories cost a map lookup and nothing else.
func Log(category, msg string, args ...any) {
	if !Enabled(category) {
		return
	}
	slog.Debug(msg, append([]any{"debug", category}, args...)...)
}

// Raw dumps text to stderr with no slog framing, for copy-paste-ready
// HTTP bodies. It needs both the category and TRACE level active.
func Raw(category, text string) {
	if !Enabled(category) || !slog.Default().Enabled(nil, LevelTrace) {
		return
	}
	fmt.Fprintln(os.Stderr, text)
}

// ParseLevel maps a level name to its slog.Level, defaulting to INFO on
// anything unrecognized.
func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return LevelTrace
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseCategories(s string) map[string]bool {
	m := make(map[string]bool)
	for _, cat := range strings.Split(s, ",") {
		if cat = strings.TrimSpace(strings.ToLower(cat)); cat != "" {
			m[cat] = true
		}
	}
	return m
}
