package log

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"strings"
)

// sensitiveKeys contains attribute keys that are always redacted.
// These keys commonly carry credentials that must not reach log output.
var sensitiveKeys = map[string]bool{
	// HTTP headers
	"authorization":       true,
	"cookie":              true,
	"set-cookie":          true,
	"x-api-key":           true,
	"x-auth-token":        true,
	"proxy-authorization": true,

	// Authentication
	"password":      true,
	"passwd":        true,
	"secret":        true,
	"token":         true,
	"api_key":       true,
	"apikey":        true,
	"api-key":       true,
	"access_token":  true,
	"refresh_token": true,

	// Session
	"session":    true,
	"session_id": true,
	"sessionid":  true,

	// Credentials
	"credential":  true,
	"credentials": true,
	"auth":        true,
}

// emailPattern matches email-shaped substrings inside attribute values.
// The character classes mirror the extraction grammar used by the
// harvester so anything the crawler can collect is also masked here.
var emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]{1,64}@[A-Za-z0-9.\-]+\.[A-Za-z]{2,24}`)

// RedactedValue is the string used to replace credential values.
const RedactedValue = "***REDACTED***"

// MaskHandler wraps an slog.Handler to mask harvested addresses and
// redact credentials. It intercepts log records and rewrites attribute
// values before passing them to the underlying handler.
//
// Design decision: We use a handler wrapper rather than a custom logger
// because:
//  1. It integrates seamlessly with standard slog APIs
//  2. It works with any underlying handler (text, JSON, etc.)
//  3. Callers keep using plain *slog.Logger throughout the codebase
type MaskHandler struct {
	// handler is the underlying slog handler that receives masked records.
	handler slog.Handler
}

// NewMaskHandler creates a new MaskHandler wrapping the given handler.
// All log attributes are masked before being passed to the underlying
// handler. If handler is nil, slog.Default().Handler() is used.
func NewMaskHandler(handler slog.Handler) *MaskHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &MaskHandler{handler: handler}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *MaskHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle masks the record's attributes and passes it to the underlying handler.
func (h *MaskHandler) Handle(ctx context.Context, r slog.Record) error {
	masked := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		masked.AddAttrs(h.maskAttr(a))
		return true
	})

	return h.handler.Handle(ctx, masked)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are masked before being added.
func (h *MaskHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	maskedAttrs := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		maskedAttrs[i] = h.maskAttr(a)
	}
	return &MaskHandler{handler: h.handler.WithAttrs(maskedAttrs)}
}

// WithGroup returns a new handler with the given group name.
func (h *MaskHandler) WithGroup(name string) slog.Handler {
	return &MaskHandler{handler: h.handler.WithGroup(name)}
}

// maskAttr masks a single attribute, recursively handling groups.
func (h *MaskHandler) maskAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		maskedAttrs := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			maskedAttrs[i] = h.maskAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(maskedAttrs...)}
	}

	// Credential-bearing keys are fully redacted.
	if sensitiveKeys[strings.ToLower(a.Key)] {
		return slog.String(a.Key, RedactedValue)
	}

	// Email-shaped substrings keep one leading character of the local
	// part so operators can still correlate log lines with the report.
	if a.Value.Kind() == slog.KindString {
		strVal := a.Value.String()
		if emailPattern.MatchString(strVal) {
			return slog.String(a.Key, MaskEmails(strVal))
		}
	}

	return a
}

// MaskEmails replaces every email-shaped substring in s with a masked
// form that keeps the first character of the local part and the full
// domain ("owner@sample.test" becomes "o***@sample.test").
func MaskEmails(s string) string {
	return emailPattern.ReplaceAllStringFunc(s, func(addr string) string {
		at := strings.LastIndexByte(addr, '@')
		if at <= 0 {
			return "***"
		}
		return addr[:1] + "***" + addr[at:]
	})
}

// NewLogger creates a new slog.Logger with address masking.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
//
// Returns a *slog.Logger that can be used with slog.SetDefault() or
// passed to components that accept *slog.Logger.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	textHandler := slog.NewTextHandler(w, opts)
	return slog.New(NewMaskHandler(textHandler))
}

// NewJSONLogger creates a new slog.Logger with address masking that
// outputs JSON format. Useful for structured log aggregation.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	jsonHandler := slog.NewJSONHandler(w, opts)
	return slog.New(NewMaskHandler(jsonHandler))
}
