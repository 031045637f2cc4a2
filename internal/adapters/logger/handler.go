package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/preppy/internal/ui/output"
	"go.trai.ch/preppy/internal/ui/style"
)

// PrettyHandler is a slog.Handler that writes one colored line per record.
type PrettyHandler struct {
	out   *termenv.Output
	level slog.Leveler
	attrs []slog.Attr
	group string
}

// NewPrettyHandler creates a PrettyHandler writing to w (stderr when nil).
// opts.Level is kept by reference, so a *slog.LevelVar changes the level live.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{
		out:   output.New(w),
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// levelStyle is the icon and color of the lines written at one level.
type levelStyle struct {
	icon  string
	color string
}

func styleFor(level slog.Level) levelStyle {
	switch {
	case level >= slog.LevelError:
		return levelStyle{icon: style.Cross, color: string(style.Red)}
	case level >= slog.LevelWarn:
		return levelStyle{icon: style.Warning, color: string(style.Yellow)}
	case level >= slog.LevelInfo:
		return levelStyle{color: string(style.White)}
	default:
		return levelStyle{icon: style.Pointer, color: string(style.Muted)}
	}
}

// Handle writes the record as the message, prefixed with the level icon, and
// its attributes as faint key=value pairs. Continuation lines of multi-line
// messages (error chains) are written uncolored.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	ls := styleFor(r.Level)

	first, rest, multiline := strings.Cut(r.Message, "\n")
	if ls.icon != "" {
		first = ls.icon + " " + first
	}

	var b strings.Builder
	b.WriteString(h.out.String(first).Foreground(termenv.RGBColor(ls.color)).String())

	attrParts := make([]string, 0, len(h.attrs)+r.NumAttrs())
	for _, attr := range h.attrs {
		attrParts = append(attrParts, formatAttr(h.group, attr))
	}
	r.Attrs(func(attr slog.Attr) bool {
		attrParts = append(attrParts, formatAttr(h.group, attr))
		return true
	})
	if len(attrParts) > 0 {
		b.WriteString(" ")
		b.WriteString(h.out.String(strings.Join(attrParts, " ")).Faint().String())
	}

	if multiline {
		b.WriteString("\n")
		b.WriteString(rest)
	}
	b.WriteString("\n")

	_, err := h.out.WriteString(b.String())
	return err
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

func formatAttr(group string, attr slog.Attr) string {
	key := attr.Key
	if group != "" {
		key = group + "." + key
	}
	return key + "=" + attr.Value.String()
}
