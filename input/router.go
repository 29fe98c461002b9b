package input

import (
	"log"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/termcalc/calc"
	"github.com/lixenwraith/termcalc/clipboard"
)

// Multi-key literal chords, matched against the rolling accumulator
const (
	copyChord  = "cControl"
	pasteChord = "vControl"

	chordLimit = 16
)

// Router classifies raw keys and applies them to one calculator buffer
// A Router and its Buffer form one session and must be driven from a single goroutine
type Router struct {
	buf    *calc.Buffer
	table  *KeyTable
	sink   clipboard.Sink
	source clipboard.Source

	// Rolling accumulator for chord detection
	chord []rune
}

// Option configures a Router
type Option func(*Router)

// WithKeyTable replaces the default bindings
func WithKeyTable(kt *KeyTable) Option {
	return func(r *Router) {
		if kt != nil {
			r.table = kt
		}
	}
}

// WithClipboard sets both copy sink and paste source
func WithClipboard(c clipboard.Clipboard) Option {
	return func(r *Router) {
		r.sink = c
		r.source = c
	}
}

// WithSink sets only the copy target
func WithSink(s clipboard.Sink) Option {
	return func(r *Router) {
		r.sink = s
	}
}

// WithSource sets only the paste origin
func WithSource(s clipboard.Source) Option {
	return func(r *Router) {
		r.source = s
	}
}

// NewRouter creates a router driving buf
func NewRouter(buf *calc.Buffer, opts ...Option) *Router {
	r := &Router{
		buf:   buf,
		table: DefaultKeyTable(),
		chord: make([]rune, 0, chordLimit),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Buffer returns the session buffer
func (r *Router) Buffer() *calc.Buffer {
	return r.buf
}

// KeyTable returns the active bindings
func (r *Router) KeyTable() *KeyTable {
	return r.table
}

// Display returns the current display string without changing state
func (r *Router) Display() string {
	return r.buf.Render()
}

// Classify maps a raw symbol to a command, CommandNone when unbound
func (r *Router) Classify(raw string) Command {
	cmd, _ := r.table.Lookup(raw)
	return cmd
}

// ClassifyKey maps a terminal key event to a command
// Printable runes go through the symbol table
func (r *Router) ClassifyKey(key tcell.Key, ch rune) Command {
	if key == tcell.KeyRune {
		return r.Classify(string(ch))
	}
	cmd, _ := r.table.LookupKey(key)
	return cmd
}

// Feed classifies and dispatches one raw symbol
// Unbound symbols feed the chord accumulator and otherwise leave the display unchanged
func (r *Router) Feed(raw string) string {
	if cmd, ok := r.table.Lookup(raw); ok {
		return r.Dispatch(cmd)
	}

	switch r.accumulate(raw) {
	case copyChord:
		return r.Dispatch(Command{Type: CommandCopy})
	case pasteChord:
		// Paste text arrives separately through PasteText
		return r.Display()
	}
	return r.Display()
}

// accumulate appends raw to the chord buffer and returns a completed chord
// The buffer is kept only while its tail can still grow into a chord
func (r *Router) accumulate(raw string) string {
	r.chord = append(r.chord, []rune(raw)...)
	if len(r.chord) > chordLimit {
		r.chord = append(r.chord[:0], r.chord[len(r.chord)-chordLimit:]...)
	}

	s := string(r.chord)
	for _, c := range []string{copyChord, pasteChord} {
		if strings.Contains(s, c) {
			r.chord = r.chord[:0]
			return c
		}
	}

	for i := range s {
		tail := s[i:]
		if strings.HasPrefix(copyChord, tail) || strings.HasPrefix(pasteChord, tail) {
			r.chord = append(r.chord[:0], []rune(tail)...)
			return ""
		}
	}
	r.chord = r.chord[:0]
	return ""
}

// Dispatch applies a command and returns the display string
func (r *Router) Dispatch(cmd Command) string {
	switch cmd.Type {
	case CommandDigit:
		return r.buf.PushDigit(cmd.Digit)
	case CommandDot:
		return r.buf.PushDot()
	case CommandOperator:
		return r.buf.PushOperator(cmd.Operator)
	case CommandPercent:
		return r.buf.Percent()
	case CommandEquals:
		return r.buf.Equals()
	case CommandAllClear:
		return r.buf.AllClear()
	case CommandClearEntry:
		return r.buf.ClearEntry()
	case CommandCopy:
		return r.copy()
	case CommandPaste:
		return r.paste()
	}
	return r.Display()
}

// copy hands the display to the sink; failures never affect the buffer
func (r *Router) copy() string {
	display := r.Display()
	if r.sink == nil {
		return display
	}
	if err := r.sink.Write(display); err != nil {
		log.Printf("clipboard copy: %v", err)
	}
	return display
}

func (r *Router) paste() string {
	if r.source == nil {
		return r.Display()
	}
	text, err := r.source.Read()
	if err != nil {
		log.Printf("clipboard paste: %v", err)
		return r.Display()
	}
	return r.PasteText(text)
}

// PasteText loads external text as a completed operand
// Text that is not a decimal number is ignored
func (r *Router) PasteText(text string) string {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		log.Printf("paste ignored, not a number: %q", text)
		return r.Display()
	}
	return r.buf.Load(v)
}
