package wifi

import (
	"strconv"
	"strings"
)

// parseScanLine parses one record of
//
//	nmcli -t -f IN-USE,SSID,SIGNAL,SECURITY device wifi list
//
// Terse mode separates fields with colons and escapes literal colons and
// backslashes with a backslash; the escapes are reversed here. Lines with
// fewer than four fields are rejected. A malformed signal value degrades
// to 0 rather than discarding the record.
func parseScanLine(line string) (Network, bool) {
	fields := splitEscaped(line, ':')
	if len(fields) < 4 {
		return Network{}, false
	}

	signal, err := strconv.Atoi(strings.TrimSpace(fields[2]))
	if err != nil {
		signal = 0
	}

	security := fields[3]
	return Network{
		SSID:      fields[1],
		Signal:    signal,
		Connected: fields[0] == "*",
		Secured:   security != "" && security != "--",
	}, true
}

// unescape resolves nmcli terse-mode backslash escapes in a single field.
// nmcli escapes ":" and "\" even in one-column listings.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			b.WriteByte(c)
			escaped = false
		case c == '\\':
			escaped = true
		default:
			b.WriteByte(c)
		}
	}
	if escaped {
		b.WriteByte('\\')
	}
	return b.String()
}

// splitEscaped splits s on sep, honouring backslash escapes: "\:" yields a
// literal separator inside a field and "\\" a literal backslash.
func splitEscaped(s string, sep byte) []string {
	var fields []string
	var cur strings.Builder
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			cur.WriteByte(c)
			escaped = false
		case c == '\\':
			escaped = true
		case c == sep:
			fields = append(fields, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	if escaped {
		// Trailing lone backslash; keep it literal.
		cur.WriteByte('\\')
	}
	fields = append(fields, cur.String())
	return fields
}
