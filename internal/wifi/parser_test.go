package wifi

import (
	"reflect"
	"testing"
)

func TestParseScanLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Network
		ok   bool
	}{
		{
			name: "connected secured network",
			line: "*:HomeNet:84:WPA2",
			want: Network{SSID: "HomeNet", Signal: 84, Connected: true, Secured: true},
			ok:   true,
		},
		{
			name: "open network",
			line: ":Guest:40:--",
			want: Network{SSID: "Guest", Signal: 40},
			ok:   true,
		},
		{
			name: "empty security column means open",
			line: ":Guest:40:",
			want: Network{SSID: "Guest", Signal: 40},
			ok:   true,
		},
		{
			name: "escaped colon in ssid",
			line: ":Cafe\\:Lounge:55:WPA1 WPA2",
			want: Network{SSID: "Cafe:Lounge", Signal: 55, Secured: true},
			ok:   true,
		},
		{
			name: "escaped backslash in ssid",
			line: ":Back\\\\slash:20:WPA2",
			want: Network{SSID: "Back\\slash", Signal: 20, Secured: true},
			ok:   true,
		},
		{
			name: "hidden ssid",
			line: ":\x00:10:WPA2",
			want: Network{SSID: "\x00", Signal: 10, Secured: true},
			ok:   true,
		},
		{
			name: "malformed signal degrades to zero",
			line: ":Odd:not-a-number:WPA2",
			want: Network{SSID: "Odd", Secured: true},
			ok:   true,
		},
		{
			name: "too few fields rejected",
			line: "*:JustTwo",
			ok:   false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseScanLine(tt.line)
			if ok != tt.ok {
				t.Fatalf("parseScanLine(%q) ok = %v, want %v", tt.line, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("parseScanLine(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestSplitEscapedTrailingBackslash(t *testing.T) {
	got := splitEscaped("a:b\\", ':')
	want := []string{"a", "b\\"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("splitEscaped = %q, want %q", got, want)
	}
}

func TestUnescape(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{`Cafe\:Lounge`, "Cafe:Lounge"},
		{`back\\slash`, `back\slash`},
		{`trailing\`, `trailing\`},
		{"", ""},
	}
	for _, tc := range cases {
		if got := unescape(tc.in); got != tc.want {
			t.Errorf("unescape(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSortNetworks(t *testing.T) {
	nets := []Network{
		{SSID: "Weak", Signal: 12},
		{SSID: "Strong", Signal: 90},
		{SSID: "Current", Signal: 45, Connected: true},
		{SSID: "AlsoStrong", Signal: 90},
	}
	SortNetworks(nets)

	want := []string{"Current", "Strong", "AlsoStrong", "Weak"}
	for i, ssid := range want {
		if nets[i].SSID != ssid {
			t.Fatalf("position %d: got %q, want %q (order %v)", i, nets[i].SSID, ssid, nets)
		}
	}
}
