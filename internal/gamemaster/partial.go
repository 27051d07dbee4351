package gamemaster

import "strings"

// extractPartialField pulls a string field's value out of a JSON prefix that
// may still be growing. The model contract places the field first in the
// document, so its value becomes readable long before the JSON is complete.
// Returns false while the field's opening quote has not arrived or the
// decoded value is still empty.
func extractPartialField(buf, field string) (string, bool) {
	marker := `"` + field + `"`
	idx := strings.Index(strings.ToLower(buf), strings.ToLower(marker))
	if idx < 0 {
		return "", false
	}

	// Skip the colon and surrounding whitespace after the marker.
	idx += len(marker)
	for idx < len(buf) && (buf[idx] == ':' || buf[idx] == ' ' || buf[idx] == '\n' || buf[idx] == '\r') {
		idx++
	}
	if idx >= len(buf) || buf[idx] != '"' {
		return "", false
	}
	idx++

	var sb strings.Builder
	for idx < len(buf) {
		ch := buf[idx]
		if ch == '\\' && idx+1 < len(buf) {
			switch next := buf[idx+1]; next {
			case '"':
				sb.WriteByte('"')
			case '\\':
				sb.WriteByte('\\')
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			default:
				// Lenient unescaping: unknown pairs keep the escaped
				// character, so \uXXXX comes out as uXXXX.
				sb.WriteByte(next)
			}
			idx += 2
			continue
		}
		if ch == '"' {
			break // closing quote, value complete
		}
		sb.WriteByte(ch)
		idx++
	}

	if sb.Len() == 0 {
		return "", false
	}
	return sb.String(), true
}
