package calc

import (
	"errors"
	"testing"
)

// apply drives a buffer with shorthand keys and returns every display
// Keys: digits, ".", "+", "-", "*", "/", "%", "=", "AC", "CE"
func apply(t *testing.T, b *Buffer, keys ...string) []string {
	t.Helper()
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		var s string
		switch k {
		case ".":
			s = b.PushDot()
		case "%":
			s = b.Percent()
		case "=":
			s = b.Equals()
		case "AC":
			s = b.AllClear()
		case "CE":
			s = b.ClearEntry()
		default:
			if op, ok := ParseOperator(k); ok {
				s = b.PushOperator(op)
			} else if len(k) == 1 && k[0] >= '0' && k[0] <= '9' {
				s = b.PushDigit(rune(k[0]))
			} else {
				t.Fatalf("unknown key %q", k)
			}
		}
		out = append(out, s)
	}
	return out
}

func TestBufferSequences(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want []string
	}{
		{"digits concatenate", []string{"1", "2", "3"}, []string{"1", "12", "123"}},
		{"leading zero kept", []string{"0", "5"}, []string{"0", "05"}},
		{"dot on empty", []string{".", "5"}, []string{"0.", "0.5"}},
		{"dot idempotent", []string{"1", ".", ".", "2", "."}, []string{"1", "1.", "1.", "1.2", "1.2"}},
		{"dot after operator", []string{"5", "+", "."}, []string{"5", "5+", "5+0."}},
		{"dot on second operand", []string{"5", "+", "2", ".", "."}, []string{"5", "5+", "5+2", "5+2.", "5+2."}},
		{"operator replaced", []string{"5", "+", "*", "-"}, []string{"5", "5+", "5*", "5-"}},
		{"chain folds", []string{"2", "+", "3", "*", "4", "="}, []string{"2", "2+", "2+3", "5*", "5*4", "20"}},
		{"repeat equals", []string{"2", "+", "3", "=", "=", "="}, []string{"2", "2+", "2+3", "5", "8", "11"}},
		{"repeat equals subtraction", []string{"1", "0", "-", "4", "=", "="}, []string{"1", "10", "10-", "10-4", "6", "2"}},
		{"equals on empty", []string{"="}, []string{"0"}},
		{"equals without memory", []string{"7", "="}, []string{"7", "7"}},
		{"equals after operator reuses operand", []string{"5", "+", "="}, []string{"5", "5+", "10"}},
		{"percent bare", []string{"5", "0", "%"}, []string{"5", "50", "0.5"}},
		{"percent multiply", []string{"1", "0", "0", "*", "2", "0", "%"}, []string{"1", "10", "100", "100*", "100*2", "100*20", "20"}},
		{"percent divide rewrites", []string{"2", "0", "0", "/", "5", "0", "%"}, []string{"2", "20", "200", "200/", "200/5", "200/50", "10000"}},
		{"percent addition evaluates", []string{"1", "0", "+", "5", "%"}, []string{"1", "10", "10+", "10+5", "15"}},
		{"percent pending operator", []string{"8", "*", "%"}, []string{"8", "8*", "8*"}},
		{"negative result", []string{"2", "-", "5", "="}, []string{"2", "2-", "2-5", "-3"}},
		{"digit extends result", []string{"2", "+", "3", "=", "1"}, []string{"2", "2+", "2+3", "5", "51"}},
		{"clear entry pops", []string{"1", "+", "2", "CE", "CE", "CE"}, []string{"1", "1+", "1+2", "1+", "1", "0"}},
		{"all clear", []string{"1", "+", "AC"}, []string{"1", "1+", "0"}},
		{"ten digits fit", []string{"9", "9", "9", "9", "9", "*", "9", "9", "9", "9", "9", "="},
			[]string{"9", "99", "999", "9999", "99999", "99999*", "99999*9", "99999*99", "99999*999", "99999*9999", "ERROR", "ERROR"}},
		{"large product", []string{"9", "9", "9", "9", "9", "*", "=", "="}, []string{"9", "99", "999", "9999", "99999", "99999*", "9999800001", "ERROR"}},
		{"repeating decimal overflows", []string{"1", "/", "3", "="}, []string{"1", "1/", "1/3", "ERROR"}},
		{"float noise overflows", []string{"0", ".", "1", "+", "0", ".", "2", "="}, []string{"0", "0.", "0.1", "0.1+", "0.1+0", "0.1+0.", "0.1+0.2", "ERROR"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := apply(t, NewBuffer(), tt.keys...)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d displays, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("step %d (%q): got %q, want %q", i, tt.keys[i], got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBufferOperatorTwiceKeepsLength(t *testing.T) {
	b := NewBuffer()
	apply(t, b, "4", "+", "*")
	if b.Len() != 2 {
		t.Fatalf("Len after two operators = %d, want 2", b.Len())
	}
	toks := b.Tokens()
	if toks[1].Op != OpMul {
		t.Errorf("pending operator = %v, want *", toks[1].Op)
	}
}

func TestBufferNeverExceedsThreeTokens(t *testing.T) {
	b := NewBuffer()
	keys := []string{"1", "+", "2", "+", "3", "*", "4", "-", "5", "/", "6", "%", "7", "+", "="}
	for _, k := range keys {
		apply(t, b, k)
		if b.Len() > 3 {
			t.Fatalf("after %q Len = %d", k, b.Len())
		}
		for i, tok := range b.Tokens() {
			if (i%2 == 0) != tok.IsNumber() {
				t.Fatalf("after %q token %d has wrong kind: %+v", k, i, tok)
			}
		}
	}
}

func TestBufferDivisionByZero(t *testing.T) {
	b := NewBuffer()
	got := apply(t, b, "5", "/", "0", "=")
	if got[3] != Sentinel {
		t.Fatalf("5/0= displayed %q", got[3])
	}
	if !errors.Is(b.Err(), ErrDivisionByZero) {
		t.Errorf("Err = %v, want ErrDivisionByZero", b.Err())
	}

	// Latched until all clear
	for _, k := range []string{"1", ".", "+", "%", "=", "CE"} {
		if s := apply(t, b, k)[0]; s != Sentinel {
			t.Errorf("key %q in error state displayed %q", k, s)
		}
	}
	if s := b.AllClear(); s != "0" {
		t.Errorf("AllClear = %q, want 0", s)
	}
	if b.Err() != nil {
		t.Errorf("Err after AllClear = %v", b.Err())
	}
	if s := apply(t, b, "3")[0]; s != "3" {
		t.Errorf("after recovery got %q", s)
	}
}

func TestBufferDivisionByZeroOnChain(t *testing.T) {
	b := NewBuffer()
	got := apply(t, b, "5", "/", "0", "+")
	if got[3] != Sentinel || !errors.Is(b.Err(), ErrDivisionByZero) {
		t.Errorf("chained 5/0+ = %q, err %v", got[3], b.Err())
	}
}

func TestBufferInvalidStart(t *testing.T) {
	for _, k := range []string{"+", "-", "*", "/", "%"} {
		b := NewBuffer()
		if s := apply(t, b, k)[0]; s != Sentinel {
			t.Errorf("%q on empty buffer displayed %q", k, s)
		}
		if !errors.Is(b.Err(), ErrInvalidStart) {
			t.Errorf("%q on empty buffer: Err = %v", k, b.Err())
		}
	}
}

func TestBufferOverflowLatches(t *testing.T) {
	b := NewBuffer()
	got := apply(t, b, "1", "2", "3", "4", "5", "6", "7", "8", "9", "0", "1")
	if got[9] != "1234567890" {
		t.Errorf("ten digits displayed %q", got[9])
	}
	if got[10] != Sentinel {
		t.Errorf("eleven digits displayed %q", got[10])
	}
	if !errors.Is(b.Err(), ErrOverflow) {
		t.Errorf("Err = %v, want ErrOverflow", b.Err())
	}
}

func TestBufferClearEntryKeepsMemory(t *testing.T) {
	b := NewBuffer()
	apply(t, b, "2", "+", "3", "=")

	op, num, ok := b.Memory()
	if !ok || op != OpAdd || num != "3" {
		t.Fatalf("memory = %v %q %v", op, num, ok)
	}

	got := apply(t, b, "CE", "4", "+", "5", "CE")
	if got[4] != "4+" {
		t.Errorf("after CE got %q, want 4+", got[4])
	}
	if op, num, _ := b.Memory(); op != OpAdd || num != "3" {
		t.Errorf("CE changed memory to %v %q", op, num)
	}

	// Pending operator completes with remembered operand
	if s := b.Equals(); s != "7" {
		t.Errorf("4+ = with memory 3 gave %q", s)
	}
}

func TestBufferMemorySurvivesAllClear(t *testing.T) {
	b := NewBuffer()
	apply(t, b, "2", "*", "3", "=", "AC")
	got := apply(t, b, "4", "=")
	if got[1] != "12" {
		t.Errorf("4= after AC replayed to %q, want 12", got[1])
	}
}

func TestBufferLoad(t *testing.T) {
	tests := []struct {
		name  string
		keys  []string
		value float64
		want  string
	}{
		{"empty", nil, 12.5, "12.5"},
		{"replaces operand", []string{"9", "9"}, 3, "3"},
		{"after operator", []string{"9", "+"}, 3, "9+3"},
		{"replaces second operand", []string{"9", "+", "1"}, 0.25, "9+0.25"},
		{"negative", nil, -4, "-4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuffer()
			apply(t, b, tt.keys...)
			if got := b.Load(tt.value); got != tt.want {
				t.Errorf("Load(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestBufferRenderIsPure(t *testing.T) {
	b := NewBuffer()
	apply(t, b, "1", "+", "2")
	for i := 0; i < 3; i++ {
		if s := b.Render(); s != "1+2" {
			t.Fatalf("Render = %q", s)
		}
	}
	if b.Len() != 3 {
		t.Errorf("Render mutated buffer, Len = %d", b.Len())
	}
}

func TestBuffersAreIndependent(t *testing.T) {
	a, c := NewBuffer(), NewBuffer()
	apply(t, a, "1", "+", "1", "=")
	apply(t, c, "7")
	if a.Render() != "2" || c.Render() != "7" {
		t.Errorf("buffers share state: %q %q", a.Render(), c.Render())
	}
	if _, _, ok := c.Memory(); ok {
		t.Error("second buffer inherited memory")
	}
}
