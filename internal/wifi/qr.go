package wifi

import (
	"fmt"
	"strings"
)

// Auth is the authentication tag of a Wi-Fi QR payload.
type Auth string

const (
	AuthWPA    Auth = "WPA"
	AuthWEP    Auth = "WEP"
	AuthNopass Auth = "nopass"
)

// AuthFor returns the QR auth tag the share dialog uses: WPA for secured
// networks, nopass otherwise.
func AuthFor(secured bool) Auth {
	if secured {
		return AuthWPA
	}
	return AuthNopass
}

// FormatQRPayload builds the standard Wi-Fi QR string
//
//	WIFI:T:<auth>;S:<ssid>;P:<password>;H:<true|false>;;
//
// consumed by phone cameras. Occurrences of \ ; , : " inside ssid or
// password are backslash-escaped.
func FormatQRPayload(ssid, password string, hidden bool, auth Auth) string {
	return fmt.Sprintf("WIFI:T:%s;S:%s;P:%s;H:%t;;",
		auth, escapeQR(ssid), escapeQR(password), hidden)
}

func escapeQR(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\', ';', ',', ':', '"':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ParseQRPayload reverses FormatQRPayload. It exists so tests can assert
// the round-trip property and callers can validate payloads.
func ParseQRPayload(payload string) (ssid, password string, hidden bool, auth Auth, err error) {
	const prefix = "WIFI:"
	if !strings.HasPrefix(payload, prefix) || !strings.HasSuffix(payload, ";;") {
		return "", "", false, "", fmt.Errorf("not a Wi-Fi QR payload: %q", payload)
	}
	body := payload[len(prefix) : len(payload)-2]

	for _, field := range splitEscaped(body, ';') {
		if field == "" {
			continue
		}
		key, value, ok := strings.Cut(field, ":")
		if !ok {
			return "", "", false, "", fmt.Errorf("malformed QR field %q", field)
		}
		switch key {
		case "T":
			auth = Auth(value)
		case "S":
			ssid = value
		case "P":
			password = value
		case "H":
			hidden = value == "true"
		}
	}
	return ssid, password, hidden, auth, nil
}
