package bytestr

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

func TestFromUTF8(t *testing.T) {
	tests := []struct {
		name    string
		input   []byte
		wantErr bool
	}{
		{"ASCII", []byte("GET /index.html"), false},
		{"Empty", []byte{}, false},
		{"Multibyte", []byte("héllo wörld"), false},
		{"Truncated sequence", []byte{'a', 0xC3}, true},
		{"Lone continuation", []byte{0x80}, true},
		{"Invalid start byte", []byte{0xFF, 'x'}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := FromUTF8(NewBytes(tt.input))
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidEncoding)
				return
			}
			require.NoError(t, err)
			require.Equal(t, string(tt.input), s.String())
			require.Equal(t, len(tt.input), s.Len())
		})
	}
}

func TestByteStrSharesStorage(t *testing.T) {
	buf := []byte("Host: localhost:4221")
	s, err := FromUTF8(NewBytes(buf))
	require.NoError(t, err)

	value := s.Slice(6, s.Len())
	require.Equal(t, "localhost:4221", value.String())

	str := value.String()
	require.Equal(t, unsafe.Pointer(&buf[6]), unsafe.Pointer(unsafe.StringData(str)))
}

func TestByteStrSliceRuneBoundary(t *testing.T) {
	s := FromStatic("añb")

	require.Equal(t, "añ", s.Slice(0, 3).String())
	require.Equal(t, "b", s.Slice(3, 4).String())
	require.Equal(t, "", s.Slice(4, 4).String())

	require.Panics(t, func() { s.Slice(2, 4) })
	require.Panics(t, func() { s.Slice(0, 2) })
}

func TestFromUTF8UncheckedValid(t *testing.T) {
	s := FromUTF8Unchecked(StaticBytes("curl/7.64.1"))
	require.Equal(t, "curl/7.64.1", s.String())
}

func TestFromUTF8UncheckedDebug(t *testing.T) {
	if !debugChecks {
		t.Skip("requires -tags rippledebug")
	}
	require.Panics(t, func() { FromUTF8Unchecked(NewBytes([]byte{0xFF})) })
}

func TestFromUTF8UncheckedValidating(t *testing.T) {
	invalid := [][]byte{{0xFF}, {'a', 0xC3}, {0xED, 0xA0, 0x80}}
	for _, b := range invalid {
		require.Panics(t, func() { fromUTF8Unchecked(NewBytes(b), true) }, "%q", b)
	}

	s := fromUTF8Unchecked(StaticBytes("héllo"), true)
	require.Equal(t, "héllo", s.String())

	// Without validation the bytes are wrapped as given.
	raw := fromUTF8Unchecked(NewBytes([]byte{0xFF}), false)
	require.Equal(t, 1, raw.Len())
}

func TestByteStrEqualAndCompare(t *testing.T) {
	a := FromString("abc")
	b, err := FromUTF8(CopyBytes([]byte("abc")))
	require.NoError(t, err)

	require.True(t, a.Equal(b))
	require.True(t, a.EqualString("abc"))
	require.Equal(t, 0, a.Compare(b))
	require.Equal(t, -1, a.Compare(FromStatic("abd")))
	require.Equal(t, 1, FromStatic("b").Compare(a))
}

func TestEmptyByteStr(t *testing.T) {
	s := NewByteStr()
	require.True(t, s.IsEmpty())
	require.Equal(t, "", s.String())
	require.Equal(t, 0, s.Bytes().Len())
}

func TestByteStrAllocations(t *testing.T) {
	s := FromStatic("localhost:4221")
	allocs := testing.AllocsPerRun(100, func() {
		_ = s.Slice(0, 9).String()
	})
	require.Zero(t, allocs)
}
