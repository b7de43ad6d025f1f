// Package glossy is a slog handler for humans at a terminal, with an
// alternate mode that sends structured records to the systemd journal.
package glossy

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"github.com/coreos/go-systemd/v22/journal"
)

var bufPool = sync.Pool{
	New: func() any { return new(bytes.Buffer) },
}

var (
	styleTime  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#222222", Dark: "#AAAAAA"})
	styleKey   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#222222", Dark: "#AAAAAA"})
	styleValue = lipgloss.NewStyle()

	styleError = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#AA0000", Dark: "#EE0000"})
	styleWarn  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#AAAA00", Dark: "#EEEE00"})
	styleInfo  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#3333AA", Dark: "#5555EE"})
	styleDebug = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#00AA00", Dark: "#00EE00"})
)

func styleLevel(level slog.Level) lipgloss.Style {
	switch {
	case level >= slog.LevelError:
		return styleError
	case level >= slog.LevelWarn:
		return styleWarn
	case level >= slog.LevelInfo:
		return styleInfo
	case level >= slog.LevelDebug:
		return styleDebug
	default:
		return lipgloss.NewStyle()
	}
}

func levelToPriority(level slog.Level) journal.Priority {
	switch {
	case level >= slog.LevelError:
		return journal.PriErr
	case level >= slog.LevelWarn:
		return journal.PriWarning
	case level >= slog.LevelInfo:
		return journal.PriInfo
	default:
		return journal.PriDebug
	}
}

// UseJournal reports whether stderr is connected to the systemd journal.
func UseJournal() bool {
	ok, err := journal.StderrIsJournalStream()
	return ok && (err == nil)
}

type Handler struct {
	UseJournal bool
	Level      slog.Leveler

	// Out receives terminal output. It defaults to os.Stderr.
	Out io.Writer

	mu     *sync.Mutex
	attrs  []slog.Attr
	prefix string
}

func quoteIfNecessary(str string) string {
	if str == "" {
		return `""`
	}
	for _, c := range str {
		if unicode.IsSpace(c) || !unicode.IsPrint(c) {
			return strconv.Quote(str)
		}
	}
	return str
}

func (h Handler) Enabled(ctx context.Context, level slog.Level) bool {
	threshold := slog.LevelInfo
	if h.Level != nil {
		threshold = h.Level.Level()
	}
	return level >= threshold
}

func (h Handler) Handle(ctx context.Context, r slog.Record) error {
	attrs := slices.Clip(h.attrs)
	r.Attrs(func(a slog.Attr) bool {
		attrs = appendAttr(attrs, h.prefix, a)
		return true
	})

	if h.UseJournal {
		return h.handleJournal(r, attrs)
	}

	buf := bufPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		bufPool.Put(buf)
	}()

	if !r.Time.IsZero() {
		buf.WriteString(styleTime.Render(r.Time.Format(time.StampMilli)))
		buf.WriteByte(' ')
	}
	fmt.Fprintf(
		buf,
		"%v %v\n",
		styleLevel(r.Level).Render(r.Level.String()),
		r.Message,
	)
	for _, attr := range attrs {
		fmt.Fprintf(
			buf,
			"\t%v=%v\n",
			styleKey.Render(quoteIfNecessary(attr.Key)),
			styleValue.Render(quoteIfNecessary(attr.Value.String())),
		)
	}

	out := h.Out
	if out == nil {
		out = os.Stderr
	}
	if h.mu != nil {
		h.mu.Lock()
		defer h.mu.Unlock()
	}
	_, err := buf.WriteTo(out)
	return err
}

func (h Handler) handleJournal(r slog.Record, attrs []slog.Attr) error {
	vars := make(map[string]string, len(attrs))
	for _, attr := range attrs {
		vars[journalKey(attr.Key)] = attr.Value.String()
	}

	return journal.Send(r.Message, levelToPriority(r.Level), vars)
}

// journalKey converts an attribute key into a valid journal field name,
// which may only contain uppercase letters, digits and underscores.
func journalKey(key string) string {
	key = strings.Map(func(c rune) rune {
		switch {
		case (c >= 'A') && (c <= 'Z'), (c >= '0') && (c <= '9'):
			return c
		case (c >= 'a') && (c <= 'z'):
			return unicode.ToUpper(c)
		default:
			return '_'
		}
	}, key)
	return strings.TrimLeft(key, "_")
}

func (h Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	next := slices.Clip(h.attrs)
	for _, a := range attrs {
		next = appendAttr(next, h.prefix, a)
	}
	h.attrs = next
	return h
}

func (h Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h.prefix += name + "."
	return h
}

// Synchronized returns a copy of h whose terminal writes are serialized.
// Handlers derived from the copy share the same lock.
func (h Handler) Synchronized() Handler {
	h.mu = new(sync.Mutex)
	return h
}

// appendAttr flattens a into attrs, qualifying keys with prefix.
func appendAttr(attrs []slog.Attr, prefix string, a slog.Attr) []slog.Attr {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return attrs
	}

	if a.Value.Kind() != slog.KindGroup {
		a.Key = prefix + a.Key
		return append(attrs, a)
	}

	group := a.Value.Group()
	if len(group) == 0 {
		return attrs
	}
	if a.Key != "" {
		prefix += a.Key + "."
	}
	for _, ga := range group {
		attrs = appendAttr(attrs, prefix, ga)
	}
	return attrs
}
