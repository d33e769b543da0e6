package http11

import (
	"errors"
	"strings"
	"testing"
)

func TestParseMethodKnown(t *testing.T) {
	tests := []struct {
		name     string
		expected Method
	}{
		{"GET", MethodGET},
		{"POST", MethodPOST},
		{"PUT", MethodPUT},
		{"DELETE", MethodDELETE},
		{"PATCH", MethodPATCH},
		{"HEAD", MethodHEAD},
		{"OPTIONS", MethodOPTIONS},
		{"CONNECT", MethodCONNECT},
		{"TRACE", MethodTRACE},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseMethod([]byte(tt.name))
			if err != nil {
				t.Fatalf("ParseMethod(%q) failed: %v", tt.name, err)
			}
			if m != tt.expected {
				t.Errorf("ParseMethod(%q) = %v, want %v", tt.name, m, tt.expected)
			}
			if m.IsExtension() {
				t.Errorf("ParseMethod(%q).IsExtension() = true", tt.name)
			}
			if got := m.AsText(); got != tt.name {
				t.Errorf("AsText() = %q, want %q", got, tt.name)
			}
		})
	}
}

func TestParseMethodExtension(t *testing.T) {
	tests := []struct {
		name   string
		token  string
		inline bool
	}{
		{"Lowercase get", "get", true},
		{"Mixed case", "GeT", true},
		{"Near miss length 3", "GEX", true},
		{"Near miss length 7", "OPTIONZ", true},
		{"WebDAV", "PROPFIND", true},
		{"Symbols", "M-SEARCH", true},
		{"All symbols", "!#$%&'*+-.^_`|~", true},
		{"Exactly inline max", strings.Repeat("A", InlineMethodMax), true},
		{"One past inline max", strings.Repeat("A", InlineMethodMax+1), false},
		{"Long", "VERSION-CONTROL-EXTENDED", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseMethod([]byte(tt.token))
			if err != nil {
				t.Fatalf("ParseMethod(%q) failed: %v", tt.token, err)
			}
			if !m.IsExtension() {
				t.Errorf("IsExtension() = false for %q", tt.token)
			}
			if m.IsInline() != tt.inline {
				t.Errorf("IsInline() = %v, want %v", m.IsInline(), tt.inline)
			}
			if got := m.AsText(); got != tt.token {
				t.Errorf("AsText() = %q, want %q", got, tt.token)
			}
			if got := m.String(); got != tt.token {
				t.Errorf("String() = %q, want %q", got, tt.token)
			}
		})
	}
}

func TestParseMethodInvalid(t *testing.T) {
	long := strings.Repeat("X", 20)

	tests := []struct {
		name  string
		token []byte
	}{
		{"Empty", []byte("")},
		{"Nil", nil},
		{"Space", []byte("GE T")},
		{"At sign first", []byte("@GET")},
		{"At sign last", []byte("GET@")},
		{"Control char", []byte("G\x01T")},
		{"Tab", []byte("\tGET")},
		{"DEL", []byte("GET\x7f")},
		{"High byte", []byte("GET\x80")},
		{"Parenthesis", []byte("GET(")},
		{"Colon", []byte("GE:T")},
		{"Long with space first", []byte(" " + long)},
		{"Long with at sign middle", []byte(long[:10] + "@" + long[10:])},
		{"Long with NUL last", []byte(long + "\x00")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMethod(tt.token)
			if !errors.Is(err, ErrInvalidMethod) {
				t.Errorf("ParseMethod(%q) error = %v, want ErrInvalidMethod", tt.token, err)
			}
		})
	}
}

func TestMethodCharTable(t *testing.T) {
	for c := 0; c < 256; c++ {
		b := byte(c)
		want := (b >= '0' && b <= '9') || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') ||
			strings.IndexByte(tokenSymbols, b) >= 0

		_, err := ParseMethod([]byte{'X', b, 'X'})
		if got := err == nil; got != want {
			t.Errorf("byte 0x%02x: valid = %v, want %v", c, got, want)
		}
		if want && methodChars[c] != b {
			t.Errorf("methodChars[0x%02x] = 0x%02x, want identity", c, methodChars[c])
		}
	}
}

func TestMethodSafeIdempotent(t *testing.T) {
	tests := []struct {
		token      string
		safe       bool
		idempotent bool
	}{
		{"GET", true, true},
		{"HEAD", true, true},
		{"OPTIONS", true, true},
		{"TRACE", true, true},
		{"PUT", false, true},
		{"DELETE", false, true},
		{"POST", false, false},
		{"PATCH", false, false},
		{"CONNECT", false, false},
		{"get", false, false},
		{"PROPFIND", false, false},
		{strings.Repeat("Q", 30), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			m := MustParseMethod(tt.token)
			if m.IsSafe() != tt.safe {
				t.Errorf("IsSafe() = %v, want %v", m.IsSafe(), tt.safe)
			}
			if m.IsIdempotent() != tt.idempotent {
				t.Errorf("IsIdempotent() = %v, want %v", m.IsIdempotent(), tt.idempotent)
			}
		})
	}
}

func TestMethodEquality(t *testing.T) {
	a := MustParseMethod("PURGE")
	b, err := ParseMethod([]byte("PURGE"))
	if err != nil {
		t.Fatal(err)
	}
	if a != b || !a.Equal(b) {
		t.Errorf("equal inline extensions compare unequal")
	}

	long := strings.Repeat("Z", 40)
	c := MustParseMethod(long)
	d := MustParseMethod(long)
	if c != d || !c.Equal(d) {
		t.Errorf("equal allocated extensions compare unequal")
	}

	if a.Equal(c) || a.Equal(MethodGET) || MethodGET.Equal(a) {
		t.Errorf("distinct methods compare equal")
	}
	if !MethodPOST.EqualString("POST") || !a.EqualString("PURGE") {
		t.Errorf("EqualString mismatch")
	}
	if MethodDELETE.Compare(MethodGET) >= 0 || MethodGET.Compare(MethodGET) != 0 {
		t.Errorf("Compare does not order by text")
	}

	seen := map[Method]int{}
	seen[MustParseMethod("PURGE")]++
	seen[b]++
	seen[MustParseMethod(long)]++
	seen[d]++
	seen[MethodGET]++
	if len(seen) != 3 || seen[a] != 2 || seen[c] != 2 {
		t.Errorf("map keys disagree with text equality: %v", seen)
	}
}

func TestMethodZeroValueIsGET(t *testing.T) {
	var m Method
	if m != MethodGET || m.AsText() != "GET" {
		t.Errorf("zero Method = %q, want GET", m.AsText())
	}
}

func TestMustParseMethodPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("MustParseMethod did not panic on invalid token")
		}
	}()
	MustParseMethod("BAD METHOD")
}

func TestMethodRoundTrip(t *testing.T) {
	tokens := []string{"GET", "PATCH", "a", "LINK", "UNLINK", "MKCALENDAR", "x-custom.v2~beta"}
	for _, tok := range tokens {
		m := MustParseMethod(tok)
		again := MustParseMethod(m.AsText())
		if again != m {
			t.Errorf("round trip of %q changed the value", tok)
		}
	}
}

func TestParseMethodAllocations(t *testing.T) {
	inputs := [][]byte{[]byte("GET"), []byte("OPTIONS"), []byte("PROPFIND")}
	for _, in := range inputs {
		allocs := testing.AllocsPerRun(100, func() {
			m, _ := ParseMethod(in)
			_ = m.IsSafe()
		})
		if allocs != 0 {
			t.Errorf("ParseMethod(%q): %v allocs/op, want 0", in, allocs)
		}
	}
}

func TestMethodAsTextAllocations(t *testing.T) {
	tests := []struct {
		token     string
		maxAllocs float64
	}{
		{"GET", 0},
		{"CONNECT", 0},
		{"VERSION-CONTROL-EXTENDED", 0},
		{"PROPFIND", 1},
	}

	for _, tt := range tests {
		m := MustParseMethod(tt.token)
		var got string
		allocs := testing.AllocsPerRun(100, func() {
			got = m.AsText()
		})
		if got != tt.token {
			t.Errorf("AsText() = %q, want %q", got, tt.token)
		}
		if allocs > tt.maxAllocs {
			t.Errorf("AsText(%q): %v allocs/op, want <= %v", tt.token, allocs, tt.maxAllocs)
		}
	}
}

func TestMethodValueReceivers(t *testing.T) {
	// AsText works on non-addressable values such as map keys and returns.
	counts := map[Method]int{MustParseMethod("PURGE"): 1, MethodGET: 2}
	for m := range counts {
		if m.AsText() != "PURGE" && m.AsText() != "GET" {
			t.Errorf("unexpected key %q", m.AsText())
		}
	}
	if MustParseMethod("MKCOL").AsText() != "MKCOL" {
		t.Errorf("AsText on a returned value")
	}
	if !MustParseMethod("PURGE").EqualString("PURGE") || MustParseMethod("PURGE").EqualString("PURG") {
		t.Errorf("EqualString on inline extension")
	}
}
