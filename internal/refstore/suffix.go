package refstore

import "strings"

// SuffixKey normalizes a supplier-issued drop-ship identifier, or a
// full stock lens account number, into the canonical customer key: the
// trailing 5 characters with separators removed and leading zeros
// stripped. "H00241-00123" and "00123" both resolve to "123".
//
// The function is total over any input. Malformed values produce a key
// that simply misses in the reference store; they never fail here.
func SuffixKey(raw string) string {
	s := strings.TrimSpace(raw)
	if len(s) > 5 {
		s = s[len(s)-5:]
	}
	s = strings.ReplaceAll(s, "-", "")
	return strings.TrimLeft(s, "0")
}
