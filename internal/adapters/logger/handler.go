package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/muesli/termenv"
	"go.rigtool.dev/rig/internal/ui/output"
	"go.rigtool.dev/rig/internal/ui/style"
)

// PrettyHandler is a slog.Handler for terminal output: a level marker, the
// message, and dimmed key=value attributes on a single line. Colors degrade
// through the shared termenv profile, so NO_COLOR yields plain text.
type PrettyHandler struct {
	out   *termenv.Output
	level slog.Leveler
	attrs []slog.Attr
	group string
}

// NewPrettyHandler creates a PrettyHandler writing to w. A nil writer falls
// back to stderr; a nil opts defaults to LevelInfo.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	level := slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level.Level()
	}

	levelVar := &slog.LevelVar{}
	levelVar.Set(level)

	return &PrettyHandler{
		out:   output.New(w),
		level: levelVar,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and outputs the log record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder

	// Watch mode emits one line per manifest change; the clock makes the
	// sequence readable after the fact.
	if !r.Time.IsZero() {
		b.WriteString(h.out.String(r.Time.Format("15:04:05")).Faint().String())
		b.WriteByte(' ')
	}

	mark, color := levelMark(r.Level)
	msg := r.Message
	if mark != "" {
		msg = mark + " " + msg
	}
	b.WriteString(h.out.String(msg).Foreground(color).String())

	writeAttr := func(attr slog.Attr) {
		b.WriteByte(' ')
		b.WriteString(h.out.String(formatAttr(h.group, attr)).Faint().String())
	}
	for _, attr := range h.attrs {
		writeAttr(attr)
	}
	r.Attrs(func(attr slog.Attr) bool {
		writeAttr(attr)
		return true
	})

	b.WriteByte('\n')
	_, err := h.out.WriteString(b.String())
	return err
}

// levelMark maps a level to its marker icon and color. Info records carry no
// marker so routine watch output stays quiet.
func levelMark(level slog.Level) (string, termenv.Color) {
	switch level {
	case slog.LevelWarn:
		return style.Warning, termenv.RGBColor(string(style.Yellow))
	case slog.LevelError:
		return style.Cross, termenv.RGBColor(string(style.Red))
	default:
		return "", termenv.RGBColor(string(style.Slate))
	}
}

// WithAttrs returns a new Handler with the given attributes appended.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, len(h.attrs)+len(attrs))
	copy(newAttrs, h.attrs)
	copy(newAttrs[len(h.attrs):], attrs)

	return &PrettyHandler{
		out:   h.out,
		level: h.level,
		attrs: newAttrs,
		group: h.group,
	}
}

// WithGroup returns a new Handler with the given group name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	return &PrettyHandler{
		out:   h.out,
		level: h.level,
		attrs: h.attrs,
		group: name,
	}
}

// formatAttr renders one attribute as key=value, prefixing the key with the
// group name when one is set. Values containing spaces are quoted so the
// line stays splittable.
func formatAttr(group string, attr slog.Attr) string {
	key := attr.Key
	if group != "" {
		key = group + "." + key
	}
	value := attr.Value.String()
	if strings.ContainsAny(value, " \t") {
		value = strconv.Quote(value)
	}
	return key + "=" + value
}
