package logging

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap/zapcore"
)

// ringSize is how many entries the in-process buffer retains. The log pane
// renders at most a screenful, so a couple hundred entries of scrollback is
// plenty.
const ringSize = 256

// Entry is one captured log record, pre-rendered for display.
type Entry struct {
	Time    time.Time
	Level   zapcore.Level
	Message string
}

var ring = &ringBuffer{}

type ringBuffer struct {
	mu      sync.Mutex
	entries []Entry
}

func (r *ringBuffer) append(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
	if len(r.entries) > ringSize {
		r.entries = r.entries[len(r.entries)-ringSize:]
	}
}

// Recent returns up to n captured entries, oldest first. n <= 0 returns
// everything retained.
func Recent(n int) []Entry {
	ring.mu.Lock()
	defer ring.mu.Unlock()
	entries := ring.entries
	if n > 0 && len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	return append([]Entry(nil), entries...)
}

// ResetRing drops all captured entries. Used by tests.
func ResetRing() {
	ring.mu.Lock()
	ring.entries = nil
	ring.mu.Unlock()
}

// ringCore is a zapcore.Core that captures entries into the ring buffer.
// Structured fields are flattened into the message text since the log pane
// renders plain lines.
type ringCore struct {
	zapcore.LevelEnabler
	fields []zapcore.Field
}

func newRingCore(enab zapcore.LevelEnabler) zapcore.Core {
	return &ringCore{LevelEnabler: enab}
}

func (c *ringCore) With(fields []zapcore.Field) zapcore.Core {
	clone := &ringCore{LevelEnabler: c.LevelEnabler}
	clone.fields = append(append([]zapcore.Field(nil), c.fields...), fields...)
	return clone
}

func (c *ringCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *ringCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	// Never append into c.fields: its backing array may be shared with
	// sibling cores cloned from the same parent.
	all := make([]zapcore.Field, 0, len(c.fields)+len(fields))
	all = append(all, c.fields...)
	all = append(all, fields...)

	msg := ent.Message
	if suffix := renderFields(all); suffix != "" {
		msg += " " + suffix
	}
	ring.append(Entry{Time: ent.Time, Level: ent.Level, Message: msg})
	return nil
}

func (c *ringCore) Sync() error { return nil }

// renderFields flattens structured fields into "k=v" pairs sorted by key.
func renderFields(fields []zapcore.Field) string {
	if len(fields) == 0 {
		return ""
	}
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range fields {
		f.AddTo(enc)
	}
	keys := make([]string, 0, len(enc.Fields))
	for k := range enc.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%v", k, enc.Fields[k]))
	}
	return strings.Join(pairs, " ")
}
