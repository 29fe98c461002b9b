package input

import (
	"errors"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/termcalc/calc"
	"github.com/lixenwraith/termcalc/clipboard"
)

func feedAll(r *Router, keys ...string) string {
	var s string
	for _, k := range keys {
		s = r.Feed(k)
	}
	return s
}

func TestClassifyWireTable(t *testing.T) {
	r := NewRouter(calc.NewBuffer())

	tests := []struct {
		raw  string
		want Command
	}{
		{"ac", Command{Type: CommandAllClear}},
		{"Escape", Command{Type: CommandAllClear}},
		{"ce", Command{Type: CommandClearEntry}},
		{"Backspace", Command{Type: CommandClearEntry}},
		{"percent", Command{Type: CommandPercent}},
		{"%", Command{Type: CommandPercent}},
		{"division", Operator(calc.OpDiv)},
		{"/", Operator(calc.OpDiv)},
		{"multiplication", Operator(calc.OpMul)},
		{"*", Operator(calc.OpMul)},
		{"subtraction", Operator(calc.OpSub)},
		{"-", Operator(calc.OpSub)},
		{"sum", Operator(calc.OpAdd)},
		{"+", Operator(calc.OpAdd)},
		{"equal", Command{Type: CommandEquals}},
		{"=", Command{Type: CommandEquals}},
		{"Enter", Command{Type: CommandEquals}},
		{"dot", Command{Type: CommandDot}},
		{".", Command{Type: CommandDot}},
		{",", Command{Type: CommandDot}},
		{"0", Digit('0')},
		{"9", Digit('9')},
		{"Shift", Command{}},
		{"c", Command{}},
		{"", Command{}},
	}

	for _, tt := range tests {
		if got := r.Classify(tt.raw); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestClassifyKey(t *testing.T) {
	r := NewRouter(calc.NewBuffer())

	tests := []struct {
		key  tcell.Key
		ch   rune
		want Command
	}{
		{tcell.KeyRune, '7', Digit('7')},
		{tcell.KeyRune, '+', Operator(calc.OpAdd)},
		{tcell.KeyRune, 'q', Command{}},
		{tcell.KeyEnter, 0, Command{Type: CommandEquals}},
		{tcell.KeyEscape, 0, Command{Type: CommandAllClear}},
		{tcell.KeyBackspace2, 0, Command{Type: CommandClearEntry}},
		{tcell.KeyCtrlC, 0, Command{Type: CommandCopy}},
		{tcell.KeyCtrlV, 0, Command{Type: CommandPaste}},
		{tcell.KeyCtrlS, 0, Command{Type: CommandToggleSound}},
		{tcell.KeyCtrlQ, 0, Command{Type: CommandQuit}},
		{tcell.KeyF5, 0, Command{}},
	}

	for _, tt := range tests {
		if got := r.ClassifyKey(tt.key, tt.ch); got != tt.want {
			t.Errorf("ClassifyKey(%v, %q) = %v, want %v", tt.key, tt.ch, got, tt.want)
		}
	}
}

func TestFeedSequence(t *testing.T) {
	r := NewRouter(calc.NewBuffer())

	steps := []struct {
		raw  string
		want string
	}{
		{"1", "1"},
		{"2", "12"},
		{"sum", "12+"},
		{"3", "12+3"},
		{"Enter", "15"},
		{"=", "18"},
		{"Shift", "18"},
		{"multiplication", "18*"},
		{"dot", "18*0."},
		{"5", "18*0.5"},
		{"equal", "9"},
		{"Escape", "0"},
	}
	for i, s := range steps {
		if got := r.Feed(s.raw); got != s.want {
			t.Fatalf("step %d Feed(%q) = %q, want %q", i, s.raw, got, s.want)
		}
	}
}

func TestFeedErrorDisplay(t *testing.T) {
	r := NewRouter(calc.NewBuffer())
	if got := feedAll(r, "8", "division", "0", "equal"); got != calc.Sentinel {
		t.Fatalf("8/0 = %q", got)
	}
	if got := r.Feed("1"); got != calc.Sentinel {
		t.Errorf("digit after error displayed %q", got)
	}
	if got := r.Feed("ac"); got != "0" {
		t.Errorf("ac after error displayed %q", got)
	}
}

func TestChordCopies(t *testing.T) {
	mem := clipboard.NewMemory()
	r := NewRouter(calc.NewBuffer(), WithClipboard(mem))

	feedAll(r, "4", "2")
	if got := feedAll(r, "c", "Control"); got != "42" {
		t.Fatalf("chord changed display to %q", got)
	}
	text, err := mem.Read()
	if err != nil || text != "42" {
		t.Errorf("clipboard = %q, %v", text, err)
	}
}

func TestChordSurvivesMappedKeys(t *testing.T) {
	mem := clipboard.NewMemory()
	r := NewRouter(calc.NewBuffer(), WithClipboard(mem))

	feedAll(r, "c", "7", "Control")
	if text, _ := mem.Read(); text != "7" {
		t.Errorf("clipboard = %q, want 7", text)
	}
}

func TestChordBrokenByUnmappedKey(t *testing.T) {
	mem := clipboard.NewMemory()
	r := NewRouter(calc.NewBuffer(), WithClipboard(mem))

	feedAll(r, "1", "c", "x", "Control")
	if _, err := mem.Read(); !errors.Is(err, clipboard.ErrEmpty) {
		t.Errorf("broken chord copied, err = %v", err)
	}

	// Repeated prefix still completes
	feedAll(r, "c", "c", "Control")
	if text, _ := mem.Read(); text != "1" {
		t.Errorf("clipboard = %q after cc+Control", text)
	}
}

func TestPasteChordLeavesDisplay(t *testing.T) {
	mem := clipboard.NewMemory()
	mem.Write("99")
	r := NewRouter(calc.NewBuffer(), WithClipboard(mem))

	if got := feedAll(r, "3", "v", "Control"); got != "3" {
		t.Errorf("paste chord display = %q, want 3", got)
	}
	if text, _ := mem.Read(); text != "99" {
		t.Errorf("paste chord wrote clipboard: %q", text)
	}
}

func TestDispatchPaste(t *testing.T) {
	tests := []struct {
		name string
		clip string
		keys []string
		want string
	}{
		{"number", "12.5", nil, "12.5"},
		{"trimmed", " 3\n", []string{"9", "sum"}, "9+3"},
		{"replaces operand", "7", []string{"1", "2"}, "7"},
		{"not a number", "abc", []string{"4"}, "4"},
		{"not finite", "NaN", []string{"4"}, "4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := clipboard.NewMemory()
			mem.Write(tt.clip)
			r := NewRouter(calc.NewBuffer(), WithClipboard(mem))
			feedAll(r, tt.keys...)
			if got := r.Dispatch(Command{Type: CommandPaste}); got != tt.want {
				t.Errorf("paste %q = %q, want %q", tt.clip, got, tt.want)
			}
		})
	}
}

func TestClipboardFailuresKeepDisplay(t *testing.T) {
	r := NewRouter(calc.NewBuffer(), WithClipboard(clipboard.None{}))
	r.Feed("5")
	if got := r.Dispatch(Command{Type: CommandCopy}); got != "5" {
		t.Errorf("failed copy display = %q", got)
	}
	if got := r.Dispatch(Command{Type: CommandPaste}); got != "5" {
		t.Errorf("failed paste display = %q", got)
	}

	bare := NewRouter(calc.NewBuffer())
	bare.Feed("6")
	if got := bare.Dispatch(Command{Type: CommandCopy}); got != "6" {
		t.Errorf("copy without sink = %q", got)
	}
}

func TestFrontEndCommandsDoNotTouchBuffer(t *testing.T) {
	r := NewRouter(calc.NewBuffer())
	r.Feed("1")
	for _, cmd := range []Command{{Type: CommandToggleSound}, {Type: CommandQuit}, {}} {
		if got := r.Dispatch(cmd); got != "1" {
			t.Errorf("Dispatch(%v) = %q", cmd, got)
		}
	}
}

func TestRoutersAreIndependent(t *testing.T) {
	a := NewRouter(calc.NewBuffer())
	b := NewRouter(calc.NewBuffer())
	feedAll(a, "2", "sum", "2", "equal")
	feedAll(b, "c")
	if a.Display() != "4" || b.Display() != "0" {
		t.Errorf("displays %q %q", a.Display(), b.Display())
	}
}
