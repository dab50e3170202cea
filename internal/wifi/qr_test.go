package wifi

import "testing"

func TestFormatQRPayload(t *testing.T) {
	tests := []struct {
		name     string
		ssid     string
		password string
		hidden   bool
		auth     Auth
		want     string
	}{
		{
			name:     "plain",
			ssid:     "HomeNet",
			password: "hunter2",
			auth:     AuthWPA,
			want:     "WIFI:T:WPA;S:HomeNet;P:hunter2;H:false;;",
		},
		{
			name:     "reserved characters escaped",
			ssid:     "My;Net",
			password: "p:ss",
			auth:     AuthWPA,
			want:     "WIFI:T:WPA;S:My\\;Net;P:p\\:ss;H:false;;",
		},
		{
			name: "open network",
			ssid: "Guest",
			auth: AuthNopass,
			want: "WIFI:T:nopass;S:Guest;P:;H:false;;",
		},
		{
			name:     "hidden network",
			ssid:     "Secret",
			password: "pw",
			hidden:   true,
			auth:     AuthWPA,
			want:     "WIFI:T:WPA;S:Secret;P:pw;H:true;;",
		},
		{
			name:     "backslash and quote escaped",
			ssid:     `a\b"c`,
			password: "x,y",
			auth:     AuthWPA,
			want:     `WIFI:T:WPA;S:a\\b\"c;P:x\,y;H:false;;`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatQRPayload(tt.ssid, tt.password, tt.hidden, tt.auth)
			if got != tt.want {
				t.Errorf("FormatQRPayload = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestQRPayloadRoundTrip(t *testing.T) {
	cases := []struct {
		ssid     string
		password string
		hidden   bool
		auth     Auth
	}{
		{"HomeNet", "hunter2", false, AuthWPA},
		{"My;Net", "p:ss", false, AuthWPA},
		{`we\ird"name`, "a,b;c:d", true, AuthWEP},
		{"Guest", "", false, AuthNopass},
	}
	for _, c := range cases {
		payload := FormatQRPayload(c.ssid, c.password, c.hidden, c.auth)
		ssid, password, hidden, auth, err := ParseQRPayload(payload)
		if err != nil {
			t.Fatalf("ParseQRPayload(%q): %v", payload, err)
		}
		if ssid != c.ssid || password != c.password || hidden != c.hidden || auth != c.auth {
			t.Errorf("round trip of %q: got (%q, %q, %v, %q), want (%q, %q, %v, %q)",
				payload, ssid, password, hidden, auth, c.ssid, c.password, c.hidden, c.auth)
		}
	}
}

func TestParseQRPayloadRejectsGarbage(t *testing.T) {
	for _, payload := range []string{"", "WIFI:", "http://example.com", "WIFI:T:WPA;S:x;P:y;H:false"} {
		if _, _, _, _, err := ParseQRPayload(payload); err == nil {
			t.Errorf("ParseQRPayload(%q): expected error, got nil", payload)
		}
	}
}

func TestAuthFor(t *testing.T) {
	if got := AuthFor(true); got != AuthWPA {
		t.Errorf("AuthFor(true) = %q, want %q", got, AuthWPA)
	}
	if got := AuthFor(false); got != AuthNopass {
		t.Errorf("AuthFor(false) = %q, want %q", got, AuthNopass)
	}
}
