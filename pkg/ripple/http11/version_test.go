package http11

import "testing"

func TestVersionString(t *testing.T) {
	tests := []struct {
		v            Version
		want         string
		major, minor int
	}{
		{HTTP09, "HTTP/0.9", 0, 9},
		{HTTP10, "HTTP/1.0", 1, 0},
		{HTTP11, "HTTP/1.1", 1, 1},
		{HTTP2, "HTTP/2.0", 2, 0},
		{HTTP3, "HTTP/3.0", 3, 0},
		{Version(0), "", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.v.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
			if tt.v.Major() != tt.major || tt.v.Minor() != tt.minor {
				t.Errorf("Major/Minor = %d.%d, want %d.%d", tt.v.Major(), tt.v.Minor(), tt.major, tt.minor)
			}
		})
	}
}
